package appointment

import "strings"

// FilterAndPaginate filters an ordered record list by a free-text search term
// and an optional exact-match ISO date, then slices the result into a
// 1-indexed fixed-size page. It returns the page items and the total number
// of pages (ceil(filtered/pageSize), 0 when nothing matched).
//
// A record matches the search term when any of patient name, disease, doctor
// or reason contains it, case-insensitively. An empty term matches
// everything, as does an empty date filter. A page beyond the last yields an
// empty page rather than an error; clamping is the caller's concern.
func FilterAndPaginate(records []Record, search, dateFilter string, page, pageSize int) ([]Record, int) {
	return Paginate(Filter(records, search, dateFilter), page, pageSize)
}

// Filter applies only the matching rules, preserving input order.
func Filter(records []Record, search, dateFilter string) []Record {
	term := strings.ToLower(strings.TrimSpace(search))

	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		if term != "" && !matchesSearch(rec, term) {
			continue
		}
		if dateFilter != "" && rec.Date != dateFilter {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// Paginate slices a filtered list into the requested 1-indexed page.
func Paginate(filtered []Record, page, pageSize int) ([]Record, int) {
	if pageSize <= 0 {
		return []Record{}, 0
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if page < 1 || start >= len(filtered) {
		return []Record{}, totalPages
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}

func matchesSearch(rec Record, term string) bool {
	for _, field := range []string{rec.PatientName, rec.PatientDisease, rec.Doctor, rec.Reason} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
