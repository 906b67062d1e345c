// Package render draws catalog views and import results for the terminal with lipgloss.
// Colors are dropped automatically when the writer is not a terminal
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	ptime "grocer/internal/platform/time"
	catalog "grocer/internal/services/catalog/domain"
	importdomain "grocer/internal/services/groceryimport/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	accent  = lipgloss.Color("#8BC34A")
	warning = lipgloss.Color("#FFC107")
	danger  = lipgloss.Color("#E53935")
	muted   = lipgloss.Color("#6B7280")
)

// Styles groups the styles a Printer uses; all are bound to one lipgloss renderer
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
	Bad    lipgloss.Style
	Panel  lipgloss.Style
	Border lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:  r.NewStyle().Bold(true).Foreground(accent),
		Header: r.NewStyle().Bold(true).Padding(0, 1),
		Cell:   r.NewStyle().Padding(0, 1),
		Muted:  r.NewStyle().Foreground(muted),
		Good:   r.NewStyle().Foreground(accent),
		Warn:   r.NewStyle().Foreground(warning),
		Bad:    r.NewStyle().Foreground(danger).Bold(true),
		Panel:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Border: r.NewStyle().Foreground(muted),
	}
}

// Printer writes rendered views to w
type Printer struct {
	w      io.Writer
	styles Styles
	today  ptime.Day
}

// New returns a Printer for w; the color profile is detected from w
func New(w io.Writer) *Printer {
	return &Printer{w: w, styles: newStyles(lipgloss.NewRenderer(w)), today: ptime.Today()}
}

// WithToday pins "today" for overdue counts; used by tests
func (p *Printer) WithToday(d ptime.Day) *Printer {
	p.today = d
	return p
}

func (p *Printer) println(s string) { _, _ = fmt.Fprintln(p.w, s) }

func (p *Printer) table(headers []string, rows [][]string, cellStyle func(row, col int) lipgloss.Style) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.Header
			}
			if cellStyle != nil {
				return cellStyle(row, col)
			}
			return p.styles.Cell
		}).
		String()
}

// ImportResult prints the counters of one import run
func (p *Printer) ImportResult(res importdomain.ImportResult) {
	lines := []string{
		p.styles.Title.Render("Import complete") + " " + p.styles.Muted.Render(res.Source),
		kv("layout", res.Layout.String()),
		kv("rows examined", strconv.Itoa(res.Examined)),
		kv("not groceries", strconv.Itoa(res.Filtered)),
		kv("already imported", strconv.Itoa(res.Skipped)),
		kv("applied", p.styles.Good.Render(strconv.Itoa(res.Applied))),
		kv("new items", strconv.Itoa(res.ItemsCreated)),
	}
	if res.Rejected > 0 {
		lines = append(lines, kv("rejected rows", p.styles.Warn.Render(strconv.Itoa(res.Rejected))))
	}
	if res.NormalizerFailures > 0 {
		lines = append(lines, kv("normalizer failures", p.styles.Warn.Render(strconv.Itoa(res.NormalizerFailures))))
	}
	p.println(p.styles.Panel.Render(strings.Join(lines, "\n")))
}

// Items prints the item listing
func (p *Printer) Items(items []catalog.ItemSummary) {
	if len(items) == 0 {
		p.println(p.styles.Muted.Render("No items yet. Run `grocer import <file>` first."))
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			shortID(it.ID), it.Name, it.Category,
			strconv.Itoa(it.TotalPurchases), interval(it), it.LastPurchase.String(), p.next(it),
		})
	}
	p.println(p.table([]string{"ID", "Item", "Category", "Bought", "Every", "Last", "Next"}, rows, nil))
}

// Stats prints the overview, the most purchased items and the overdue list
func (p *Printer) Stats(st catalog.Stats) {
	head := []string{
		p.styles.Title.Render("Purchase overview"),
		kv("unique items", strconv.Itoa(st.UniqueItems)),
		kv("purchases", strconv.Itoa(st.TotalPurchases)),
	}
	p.println(p.styles.Panel.Render(strings.Join(head, "\n")))

	if len(st.ByCategory) > 0 {
		rows := make([][]string, 0, len(st.ByCategory))
		for _, c := range st.ByCategory {
			rows = append(rows, []string{c.Category, strconv.Itoa(c.Items)})
		}
		p.println(p.styles.Title.Render("By category"))
		p.println(p.table([]string{"Category", "Items"}, rows, nil))
	}

	if len(st.Top) > 0 {
		rows := make([][]string, 0, len(st.Top))
		for i, it := range st.Top {
			rows = append(rows, []string{strconv.Itoa(i + 1), it.Name, strconv.Itoa(it.TotalPurchases), interval(it)})
		}
		p.println(p.styles.Title.Render("Most purchased"))
		p.println(p.table([]string{"#", "Item", "Bought", "Every"}, rows, nil))
	}

	if len(st.Overdue) == 0 {
		p.println(p.styles.Good.Render("Nothing overdue."))
		return
	}
	rows := make([][]string, 0, len(st.Overdue))
	for _, it := range st.Overdue {
		rows = append(rows, []string{it.Name, it.PredictedNext.String(), strconv.Itoa(it.DaysOverdue(p.today)) + "d"})
	}
	p.println(p.styles.Bad.Render("Overdue"))
	p.println(p.table([]string{"Item", "Expected", "Late"}, rows, func(_, col int) lipgloss.Style {
		if col == 2 {
			return p.styles.Cell.Foreground(danger)
		}
		return p.styles.Cell
	}))
}

// Item prints one item and its purchase history
func (p *Printer) Item(d catalog.ItemDetail) {
	lines := []string{
		p.styles.Title.Render(d.Name) + " " + p.styles.Muted.Render(d.ID),
		kv("category", d.Category),
	}
	for _, f := range [][2]string{{"brand", d.Brand}, {"size", d.UnitSize}, {"asin", d.ASIN}} {
		if f[1] != "" {
			lines = append(lines, kv(f[0], f[1]))
		}
	}
	lines = append(lines,
		kv("purchases", fmt.Sprintf("%d (%d units)", d.TotalPurchases, d.TotalUnits)),
		kv("every", interval(d.ItemSummary)),
		kv("next", p.next(d.ItemSummary)),
	)
	if d.DaysOverdue > 0 {
		lines = append(lines, kv("overdue", p.styles.Bad.Render(fmt.Sprintf("%d days", d.DaysOverdue))))
	}
	p.println(p.styles.Panel.Render(strings.Join(lines, "\n")))

	rows := make([][]string, 0, len(d.History))
	for _, h := range d.History {
		rows = append(rows, []string{h.Date.String(), h.OrderID, strconv.Itoa(h.Quantity), money(h.PricePerUnit), h.RawTitle})
	}
	if len(rows) > 0 {
		p.println(p.table([]string{"Date", "Order", "Qty", "Price", "Title"}, rows, nil))
	}
}

// Exported confirms an export
func (p *Printer) Exported(path string, items, purchases int) {
	p.println(p.styles.Good.Render("Exported") + fmt.Sprintf(" %d items, %d purchases to %s", items, purchases, path))
}

func (p *Printer) next(it catalog.ItemSummary) string {
	if it.PredictedNext == nil {
		return "-"
	}
	s := it.PredictedNext.String()
	if it.Overdue {
		return p.styles.Bad.Render(s + " !")
	}
	return s
}

func interval(it catalog.ItemSummary) string {
	if it.AvgIntervalDays == nil {
		return "-"
	}
	return strconv.FormatFloat(*it.AvgIntervalDays, 'f', 1, 64) + "d"
}

func money(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func kv(k, v string) string { return fmt.Sprintf("%-20s %s", k+":", v) }

// shortID trims ids to a prefix that show accepts
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
