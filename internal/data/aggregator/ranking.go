package aggregator

import (
	"sort"
	"strings"

	"github.com/penwyp/go-geo-replay/internal/core/model"
)

// CountByCategory tallies records per normalized category label. Labels are
// trimmed and upper-cased so "Ayto. Madrid " and "AYTO. MADRID" count as
// one; records without a category are skipped.
func CountByCategory(records []model.TimedRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		label := strings.ToUpper(strings.TrimSpace(r.Category))
		if label == "" {
			continue
		}
		counts[label]++
	}
	return counts
}

// TopCategories returns the n largest categories among the given records,
// counts descending with an alphabetical tie-break so the ranking is stable
// across calls. n <= 0 returns every category.
func TopCategories(records []model.TimedRecord, n int) []model.CategoryCount {
	counts := CountByCategory(records)

	ranking := make([]model.CategoryCount, 0, len(counts))
	for label, count := range counts {
		ranking = append(ranking, model.CategoryCount{Category: label, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Category < ranking[j].Category
	})

	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}
