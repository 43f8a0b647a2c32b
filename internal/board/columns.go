package board

import "trellis/internal/model"

// Columns are the four fixed status buckets in display order.
var Columns = model.Statuses

// Group partitions tickets into the four columns, preserving snapshot
// order within each. Every column is present in the result even when
// empty.
func Group(tickets []model.Ticket) map[model.Status][]model.Ticket {
	grouped := make(map[model.Status][]model.Ticket, len(Columns))
	for _, status := range Columns {
		grouped[status] = nil
	}
	for _, t := range tickets {
		grouped[t.Status] = append(grouped[t.Status], t)
	}
	return grouped
}

// ColumnIndex returns the display position of a status, or -1.
func ColumnIndex(status model.Status) int {
	for i, s := range Columns {
		if s == status {
			return i
		}
	}
	return -1
}
