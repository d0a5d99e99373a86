package services

import (
	"sort"
	"strings"
)

// FaultRow is a fault record as shown in the faults table.
type FaultRow struct {
	ID          string
	Title       string
	Description string
	Category    string
	Priority    string
	Status      string
	Property    string
	Unit        string
	Contractor  string
	ReportedAt  string
}

// FilterFaults returns the faults matching the free-text query and the
// selected category tags. The query is matched case-insensitively against
// title, description, property and unit. A fault passes the tag filter when
// its category is any of the selected tags; no tags selected means no tag
// filtering. Input order is preserved.
func FilterFaults(faults []FaultRow, query string, tags []string) []FaultRow {
	q := strings.ToLower(strings.TrimSpace(query))

	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			tagSet[strings.ToLower(t)] = true
		}
	}

	out := make([]FaultRow, 0, len(faults))
	for _, f := range faults {
		if len(tagSet) > 0 && !tagSet[strings.ToLower(f.Category)] {
			continue
		}
		if q != "" && !faultMatches(f, q) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func faultMatches(f FaultRow, q string) bool {
	for _, field := range []string{f.Title, f.Description, f.Property, f.Unit} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// TagCount is one category chip with the number of faults carrying it.
type TagCount struct {
	Tag      string
	Count    int
	Selected bool
}

// FaultTagCounts counts faults per category over the known categories, in
// FaultCategories order, followed by any unknown categories sorted by name.
func FaultTagCounts(faults []FaultRow, selected []string) []TagCount {
	counts := make(map[string]int)
	for _, f := range faults {
		counts[strings.ToLower(f.Category)]++
	}

	sel := make(map[string]bool, len(selected))
	for _, s := range selected {
		sel[strings.ToLower(s)] = true
	}

	known := make(map[string]bool, len(FaultCategories))
	out := make([]TagCount, 0, len(FaultCategories))
	for _, c := range FaultCategories {
		known[c] = true
		out = append(out, TagCount{Tag: c, Count: counts[c], Selected: sel[c]})
	}

	var extra []string
	for c := range counts {
		if !known[c] && c != "" {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		out = append(out, TagCount{Tag: c, Count: counts[c], Selected: sel[c]})
	}
	return out
}
