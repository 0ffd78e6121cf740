// Package dataset loads the healthcare-records file into an immutable
// in-memory table.
//
// The table is built once at startup and injected into the analytics layer;
// nothing mutates it afterwards, so readers need no locking.
package dataset

import "time"

// Record is a single patient-visit row.
//
// Billing is only meaningful when BillingKnown is true: the source column
// occasionally holds non-numeric text, and such rows are kept with the
// amount marked unknown rather than dropped.
type Record struct {
	Gender       string
	Age          int
	Condition    string
	Provider     string
	Billing      float64
	BillingKnown bool
	Admitted     time.Time
	YearMonth    string // "2006-01", derived from Admitted
}

// Table is the ordered, read-only collection of records.
type Table struct {
	records []Record
}

// NewTable wraps a record slice. The table takes ownership of the slice;
// callers must not modify it afterwards.
func NewTable(records []Record) *Table {
	return &Table{records: records}
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns the underlying rows. Read-only by convention.
func (t *Table) Records() []Record { return t.records }

// Genders returns the distinct gender values in first-seen order.
func (t *Table) Genders() []string {
	return t.distinct(func(r Record) string { return r.Gender })
}

// Conditions returns the distinct medical conditions in first-seen order.
func (t *Table) Conditions() []string {
	return t.distinct(func(r Record) string { return r.Condition })
}

// Providers returns the distinct insurance providers in first-seen order.
func (t *Table) Providers() []string {
	return t.distinct(func(r Record) string { return r.Provider })
}

func (t *Table) distinct(key func(Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.records {
		v := key(r)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
