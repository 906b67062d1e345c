// Package service answers list, stats and show queries over a store snapshot
package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"grocer/internal/core/frequency"
	"grocer/internal/core/normalize"
	perr "grocer/internal/platform/errors"
	ptime "grocer/internal/platform/time"
	"grocer/internal/services/catalog/domain"
	importdomain "grocer/internal/services/groceryimport/domain"
)

// TopN is the size of the most-purchased list in Stats
const TopN = 10

// Service implements domain.CatalogPort
type Service struct {
	Source domain.ItemSource

	// Today is swapped in tests
	Today func() ptime.Day
}

// New constructs the catalog service
func New(src domain.ItemSource) *Service {
	if src == nil {
		panic("catalog.Service requires an item source")
	}
	return &Service{Source: src, Today: ptime.Today}
}

// Items returns the raw snapshot, used by export
func (s *Service) Items(ctx context.Context) ([]importdomain.Item, error) {
	return s.Source.LoadItems(ctx)
}

// List returns item summaries filtered by category and ordered by q.Sort
func (s *Service) List(ctx context.Context, q domain.ListQuery) ([]domain.ItemSummary, error) {
	key := q.Sort
	if key == "" {
		key = domain.SortFrequency
	}
	if _, err := domain.ParseSortKey(string(key)); err != nil {
		return nil, err
	}

	items, err := s.Source.LoadItems(ctx)
	if err != nil {
		return nil, err
	}

	out := summarizeAll(items, s.Today())
	if q.Category != "" {
		out = slices.DeleteFunc(out, func(sum domain.ItemSummary) bool {
			return !normalize.SameItem(sum.Category, q.Category)
		})
	}
	sortSummaries(out, key)
	return out, nil
}

// Stats returns counts, the most purchased items and the overdue list
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	items, err := s.Source.LoadItems(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	all := summarizeAll(items, s.Today())
	perCat := map[string]int{}
	st := domain.Stats{UniqueItems: len(all)}
	for _, sum := range all {
		perCat[sum.Category]++
		st.TotalPurchases += sum.TotalPurchases
	}

	st.ByCategory = make([]domain.CategoryCount, 0, len(perCat))
	for c, n := range perCat {
		st.ByCategory = append(st.ByCategory, domain.CategoryCount{Category: c, Items: n})
	}
	slices.SortFunc(st.ByCategory, func(a, b domain.CategoryCount) int {
		return cmp.Or(cmp.Compare(b.Items, a.Items), cmp.Compare(a.Category, b.Category))
	})

	sortSummaries(all, domain.SortFrequency)
	st.Top = slices.Clone(all[:min(TopN, len(all))])

	st.Overdue = []domain.ItemSummary{}
	for _, sum := range all {
		if sum.Overdue {
			st.Overdue = append(st.Overdue, sum)
		}
	}
	sortSummaries(st.Overdue, domain.SortNext)
	return st, nil
}

// Show finds one item by exact id or unique id prefix
func (s *Service) Show(ctx context.Context, idOrPrefix string) (domain.ItemDetail, error) {
	needle := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if needle == "" {
		return domain.ItemDetail{}, perr.WithField(perr.InvalidArgf("item id is required"), "id")
	}

	items, err := s.Source.LoadItems(ctx)
	if err != nil {
		return domain.ItemDetail{}, err
	}

	var matches []importdomain.Item
	for _, it := range items {
		id := strings.ToLower(it.ID)
		if id == needle {
			matches = []importdomain.Item{it}
			break
		}
		if strings.HasPrefix(id, needle) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return domain.ItemDetail{}, perr.NotFoundf("no item matches %q", idOrPrefix)
	case 1:
	default:
		return domain.ItemDetail{}, perr.WithField(
			perr.InvalidArgf("%q matches %d items; use a longer prefix", idOrPrefix, len(matches)), "id")
	}

	it := matches[0]
	today := s.Today()
	sum := summarize(it, frequency.Summarize(it.Events(), today))

	hist := slices.Clone(it.Purchases)
	slices.SortStableFunc(hist, func(a, b importdomain.Purchase) int { return b.Date.Compare(a.Date) })

	return domain.ItemDetail{
		ItemSummary: sum,
		ASIN:        it.ASIN,
		DaysOverdue: sum.DaysOverdue(today),
		History:     hist,
	}, nil
}

// summarizeAll drops items that were never purchased
func summarizeAll(items []importdomain.Item, today ptime.Day) []domain.ItemSummary {
	all := frequency.SummarizeAll(items, today)
	out := make([]domain.ItemSummary, 0, len(all))
	for _, s := range all {
		out = append(out, summarize(s.Subject, s.Summary))
	}
	return out
}

func summarize(it importdomain.Item, sum frequency.Summary) domain.ItemSummary {
	cat := it.Category
	if cat == "" {
		cat = "other"
	}
	return domain.ItemSummary{
		ID:       it.ID,
		Name:     it.CanonicalName,
		Category: cat,
		Brand:    it.Brand,
		UnitSize: it.UnitSize,
		Summary:  sum,
	}
}

// sortSummaries orders in place; name breaks every tie so output is deterministic
func sortSummaries(xs []domain.ItemSummary, key domain.SortKey) {
	byName := func(a, b domain.ItemSummary) int {
		return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.ID, b.ID))
	}
	var less func(a, b domain.ItemSummary) int
	switch key {
	case domain.SortName:
		less = byName
	case domain.SortLast:
		less = func(a, b domain.ItemSummary) int {
			return cmp.Or(b.LastPurchase.Compare(a.LastPurchase), byName(a, b))
		}
	case domain.SortNext:
		less = func(a, b domain.ItemSummary) int {
			switch {
			case a.PredictedNext == nil && b.PredictedNext == nil:
				return byName(a, b)
			case a.PredictedNext == nil:
				return 1
			case b.PredictedNext == nil:
				return -1
			}
			return cmp.Or(a.PredictedNext.Compare(*b.PredictedNext), byName(a, b))
		}
	default:
		less = func(a, b domain.ItemSummary) int {
			return cmp.Or(cmp.Compare(b.TotalPurchases, a.TotalPurchases), byName(a, b))
		}
	}
	slices.SortFunc(xs, less)
}
