package kds

import "sort"

// SortLive orders tickets for the live kitchen view: recalled tickets
// surface before everything else, then oldest first, with the ticket ID
// as a stable final tie-break for identical timestamps. Draft and
// bumped tickets are excluded.
func SortLive(tickets []KdsTicket) []KdsTicket {
	live := make([]KdsTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.IsLive() {
			live = append(live, t)
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		a, b := live[i], live[j]
		if a.IsRecalled != b.IsRecalled {
			return a.IsRecalled
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return live
}
