// Package board is the in-memory view over the last fetched ticket
// snapshot: filtering, the four-column projection, the drag state
// machine, and the derived aggregates the dashboard and calendar
// render. Everything here is a pure projection; the server owns the
// authoritative ticket state.
package board

import (
	"strings"

	"trellis/internal/model"
)

// PriorityAll widens the priority filter to every ticket.
const PriorityAll = "All"

// PriorityFilters lists the filter choices in cycle order.
var PriorityFilters = [4]string{
	PriorityAll,
	string(model.PriorityLow),
	string(model.PriorityMedium),
	string(model.PriorityHigh),
}

// Filter narrows the visible ticket set. Visibility is the conjunction
// of both predicates: a ticket shows iff it matches the search text
// and the priority selection.
type Filter struct {
	// Query is matched case-insensitively as a substring of the
	// title and description. Empty matches everything.
	Query string

	// Priority is one of PriorityFilters. Empty is treated as All.
	Priority string
}

// Matches reports whether a single ticket is visible under the filter.
func (f Filter) Matches(t model.Ticket) bool {
	return f.matchesQuery(t) && f.matchesPriority(t)
}

func (f Filter) matchesQuery(t model.Ticket) bool {
	if f.Query == "" {
		return true
	}
	query := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query)
}

func (f Filter) matchesPriority(t model.Ticket) bool {
	if f.Priority == "" || f.Priority == PriorityAll {
		return true
	}
	return string(t.Priority) == f.Priority
}

// Apply returns the tickets visible under the filter, preserving
// snapshot order.
func (f Filter) Apply(tickets []model.Ticket) []model.Ticket {
	if f.Query == "" && (f.Priority == "" || f.Priority == PriorityAll) {
		return tickets
	}
	var visible []model.Ticket
	for _, t := range tickets {
		if f.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// NextPriority returns the filter choice after current, wrapping.
func NextPriority(current string) string {
	for i, p := range PriorityFilters {
		if p == current {
			return PriorityFilters[(i+1)%len(PriorityFilters)]
		}
	}
	return PriorityAll
}
