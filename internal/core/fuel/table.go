package fuel

import (
	"sort"
	"time"
)

// Table is the loaded fuel log, sorted ascending by date.
// Undated entries sit after every dated one. A Table is never mutated
// after NewTable returns.
type Table struct {
	Entries []Entry

	// HasFuelType reports whether the source carried the optional fuel type
	// column. Mode queries are only answerable when it is set.
	HasFuelType bool
}

// NewTable derives per-entry metrics and stable-sorts entries by date.
// Entries with equal dates keep their input order.
func NewTable(entries []Entry, hasFuelType bool) *Table {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	for i := range sorted {
		sorted[i].Derive()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		if !a.Valid {
			return false
		}
		if !b.Valid {
			return true
		}
		return a.Time.Before(b.Time)
	})
	return &Table{Entries: sorted, HasFuelType: hasFuelType}
}

// Len returns the number of entries, undated ones included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// Dated returns the entries that carry a valid date, in table order.
func (t *Table) Dated() []Entry {
	if t == nil {
		return nil
	}
	n := len(t.Entries) - t.Undated()
	return t.Entries[:n]
}

// Undated counts entries whose date failed to parse.
func (t *Table) Undated() int {
	if t == nil {
		return 0
	}
	count := 0
	for i := len(t.Entries) - 1; i >= 0 && !t.Entries[i].Date.Valid; i-- {
		count++
	}
	return count
}

// Bounds returns the earliest and latest valid dates.
// ok is false when the table has no dated entries.
func (t *Table) Bounds() (first, last time.Time, ok bool) {
	dated := t.Dated()
	if len(dated) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return dated[0].Date.Time, dated[len(dated)-1].Date.Time, true
}
