// Package frequency derives purchase cadence from a dated event history.
// It is pure: the caller supplies "today" so results are reproducible
package frequency

import (
	"cmp"
	"math"
	"slices"
	"strings"

	ptime "grocer/internal/platform/time"
)

// Event is one dated purchase of an item
type Event struct {
	Date     ptime.Day
	Quantity int
}

// Summary is the derived cadence of one item; nil pointers mean undefined
type Summary struct {
	TotalPurchases  int        `json:"total_purchases"`
	TotalUnits      int        `json:"total_units"`
	FirstPurchase   ptime.Day  `json:"first_purchase"`
	LastPurchase    ptime.Day  `json:"last_purchase"`
	AvgIntervalDays *float64   `json:"avg_interval_days,omitempty"`
	PredictedNext   *ptime.Day `json:"predicted_next,omitempty"`
	Overdue         bool       `json:"overdue"`
}

// HasPrediction reports whether a next purchase date could be derived
func (s Summary) HasPrediction() bool { return s.PredictedNext != nil }

// DaysOverdue returns how many days today is past the prediction, 0 when not overdue
func (s Summary) DaysOverdue(today ptime.Day) int {
	if !s.Overdue || s.PredictedNext == nil {
		return 0
	}
	return today.DaysSince(*s.PredictedNext)
}

// Summarize computes the cadence of events as of today.
// Events are stably sorted by date only; same-day events give zero-day intervals, which count
func Summarize(events []Event, today ptime.Day) Summary {
	if len(events) == 0 {
		return Summary{}
	}

	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int { return a.Date.Compare(b.Date) })

	s := Summary{
		TotalPurchases: len(sorted),
		FirstPurchase:  sorted[0].Date,
		LastPurchase:   sorted[len(sorted)-1].Date,
	}
	for _, e := range sorted {
		s.TotalUnits += max(e.Quantity, 1)
	}
	if len(sorted) < 2 {
		return s
	}

	total := 0
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].Date.DaysSince(sorted[i-1].Date)
	}
	avg := float64(total) / float64(len(sorted)-1)
	next := s.LastPurchase.AddDays(int(math.RoundToEven(avg)))

	s.AvgIntervalDays = &avg
	s.PredictedNext = &next
	s.Overdue = today.After(next)
	return s
}

// Subject is anything with a name and a purchase history
type Subject interface {
	Name() string
	Events() []Event
}

// Summarized pairs a subject with its cadence
type Summarized[T Subject] struct {
	Subject T
	Summary
}

// SummarizeAll summarizes every subject with at least one event, most purchased
// first. Ties keep input order after a case-insensitive name comparison
func SummarizeAll[T Subject](subjects []T, today ptime.Day) []Summarized[T] {
	out := make([]Summarized[T], 0, len(subjects))
	for _, sub := range subjects {
		ev := sub.Events()
		if len(ev) == 0 {
			continue
		}
		out = append(out, Summarized[T]{Subject: sub, Summary: Summarize(ev, today)})
	}
	slices.SortStableFunc(out, func(a, b Summarized[T]) int {
		return cmp.Or(
			cmp.Compare(b.TotalPurchases, a.TotalPurchases),
			cmp.Compare(strings.ToLower(a.Subject.Name()), strings.ToLower(b.Subject.Name())),
		)
	})
	return out
}
