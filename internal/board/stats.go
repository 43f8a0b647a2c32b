package board

import "trellis/internal/model"

// Summary holds the dashboard aggregates: exact partitions of the
// ticket set by status and by priority. The four status counts always
// sum to Total.
type Summary struct {
	Total      int
	ByStatus   map[model.Status]int
	ByPriority map[model.Priority]int
}

// Summarize computes the aggregates over the full (unfiltered)
// snapshot.
func Summarize(tickets []model.Ticket) Summary {
	summary := Summary{
		Total:      len(tickets),
		ByStatus:   make(map[model.Status]int, len(model.Statuses)),
		ByPriority: make(map[model.Priority]int, len(model.Priorities)),
	}
	for _, status := range model.Statuses {
		summary.ByStatus[status] = 0
	}
	for _, priority := range model.Priorities {
		summary.ByPriority[priority] = 0
	}
	for _, t := range tickets {
		summary.ByStatus[t.Status]++
		summary.ByPriority[t.Priority]++
	}
	return summary
}
