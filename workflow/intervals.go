package workflow

import (
	"sort"

	"github.com/mmdatafocus/dwh_backend/models"
)

// BuildProductIntervals derives each product version's validity end date.
// Versions are partitioned by product key; within a partition they are
// sorted ascending by ValidFrom and each version is closed the day before
// the next one starts. The last version in a partition stays open (nil
// ValidTo). By construction the timeline per key is non-overlapping and
// gap-free.
//
// Ordering rules, all deterministic:
//   - partitions are emitted in first-seen key order
//   - the sort within a partition is stable, so versions with equal (or nil)
//     ValidFrom keep bronze ingestion order
//   - a nil ValidFrom sorts before any real date; a version followed by a
//     nil-start version gets a nil ValidTo, since no closing date is known
func BuildProductIntervals(products []models.Product) []models.Product {
	groups := make(map[string][]models.Product, len(products))
	keyOrder := make([]string, 0, len(products))
	for _, p := range products {
		if _, seen := groups[p.Key]; !seen {
			keyOrder = append(keyOrder, p.Key)
		}
		groups[p.Key] = append(groups[p.Key], p)
	}

	out := make([]models.Product, 0, len(products))
	for _, key := range keyOrder {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i].ValidFrom, group[j].ValidFrom
			if a == nil {
				return b != nil
			}
			if b == nil {
				return false
			}
			return a.Before(*b)
		})
		for i := range group {
			if i == len(group)-1 {
				group[i].ValidTo = nil
				continue
			}
			next := group[i+1].ValidFrom
			if next == nil {
				group[i].ValidTo = nil
				continue
			}
			end := next.AddDate(0, 0, -1)
			group[i].ValidTo = &end
		}
		out = append(out, group...)
	}
	return out
}
