package workflow

import (
	"github.com/mmdatafocus/dwh_backend/models"
)

// DedupeCustomers collapses every raw version of a customer id into the one
// with the latest recency key: a last-writer-wins fold, not a merge. A
// candidate only displaces the current best when its recency is strictly
// later, so ties keep the first-encountered version and the output is
// reproducible for a given input order. Output follows first-seen id order.
func DedupeCustomers(candidates []CustomerCandidate) []models.Customer {
	best := make(map[int]CustomerCandidate, len(candidates))
	order := make([]int, 0, len(candidates))

	for _, c := range candidates {
		id := c.Record.ID
		cur, seen := best[id]
		if !seen {
			best[id] = c
			order = append(order, id)
			continue
		}
		if c.Recency.After(cur.Recency) {
			best[id] = c
		}
	}

	out := make([]models.Customer, 0, len(order))
	for _, id := range order {
		out = append(out, best[id].Record)
	}
	return out
}
