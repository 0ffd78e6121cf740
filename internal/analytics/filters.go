package analytics

import "healthdash/internal/dataset"

// filterGender returns the rows matching the selected gender exactly.
// An empty selection means "no filter" and passes the full set through.
func filterGender(rows []dataset.Record, gender string) []dataset.Record {
	if gender == "" {
		return rows
	}
	var out []dataset.Record
	for _, r := range rows {
		if r.Gender == gender {
			out = append(out, r)
		}
	}
	return out
}

// filterCondition returns the rows matching the selected medical condition
// exactly; empty selection passes everything through.
func filterCondition(rows []dataset.Record, condition string) []dataset.Record {
	if condition == "" {
		return rows
	}
	var out []dataset.Record
	for _, r := range rows {
		if r.Condition == condition {
			out = append(out, r)
		}
	}
	return out
}

// distinctInOrder returns the unique non-empty values of key across rows in
// first-seen order.
func distinctInOrder(rows []dataset.Record, key func(dataset.Record) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v := key(r)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
