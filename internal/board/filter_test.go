package board

import (
	"testing"

	"trellis/internal/model"
)

func testTickets() []model.Ticket {
	return []model.Ticket{
		{ID: 1, Title: "Fix login redirect", Description: "Redirect loops on expired token", Status: model.StatusBacklog, Priority: model.PriorityHigh},
		{ID: 2, Title: "Board polish", Description: "Tighten card spacing", Status: model.StatusTodo, Priority: model.PriorityLow},
		{ID: 3, Title: "Calendar view", Description: "Month grid with due dates", Status: model.StatusTodo, Priority: model.PriorityMedium},
		{ID: 4, Title: "Release notes", Description: "", Status: model.StatusDone, Priority: model.PriorityLow},
	}
}

func TestFilterEmptyIsIdentity(t *testing.T) {
	tickets := testTickets()
	filter := Filter{Query: "", Priority: PriorityAll}

	visible := filter.Apply(tickets)
	if len(visible) != len(tickets) {
		t.Fatalf("empty filter returned %d of %d tickets", len(visible), len(tickets))
	}
	for i := range tickets {
		if visible[i].ID != tickets[i].ID {
			t.Errorf("ticket %d reordered under identity filter", tickets[i].ID)
		}
	}
}

func TestFilterMatchesTitleCaseInsensitive(t *testing.T) {
	filter := Filter{Query: "LOGIN"}
	if !filter.Matches(testTickets()[0]) {
		t.Error("query 'LOGIN' should match title 'Fix login redirect'")
	}
}

func TestFilterMatchesDescription(t *testing.T) {
	filter := Filter{Query: "card spacing"}
	if !filter.Matches(testTickets()[1]) {
		t.Error("query should match against the description")
	}
}

func TestFilterIsConjunction(t *testing.T) {
	tickets := testTickets()

	tests := []struct {
		name     string
		filter   Filter
		wantIDs  []int
	}{
		{"query only", Filter{Query: "view"}, []int{3}},
		{"priority only", Filter{Priority: string(model.PriorityLow)}, []int{2, 4}},
		{"both, overlapping", Filter{Query: "board", Priority: string(model.PriorityLow)}, []int{2}},
		{"both, disjoint", Filter{Query: "login", Priority: string(model.PriorityLow)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := tt.filter.Apply(tickets)
			if len(visible) != len(tt.wantIDs) {
				t.Fatalf("got %d tickets, want %d", len(visible), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if visible[i].ID != id {
					t.Errorf("position %d: got ticket %d, want %d", i, visible[i].ID, id)
				}
			}

			// The conjunction property itself: every ticket's
			// visibility equals matchesQuery AND matchesPriority.
			for _, ticket := range tickets {
				want := tt.filter.matchesQuery(ticket) && tt.filter.matchesPriority(ticket)
				if got := tt.filter.Matches(ticket); got != want {
					t.Errorf("ticket %d: Matches=%v, conjunction=%v", ticket.ID, got, want)
				}
			}
		})
	}
}

func TestNextPriorityCycles(t *testing.T) {
	seen := map[string]bool{}
	current := PriorityAll
	for range PriorityFilters {
		seen[current] = true
		current = NextPriority(current)
	}
	if current != PriorityAll {
		t.Errorf("cycle did not return to All, ended at %q", current)
	}
	if len(seen) != len(PriorityFilters) {
		t.Errorf("cycle visited %d filters, want %d", len(seen), len(PriorityFilters))
	}
}

func TestNextPriorityUnknownResetsToAll(t *testing.T) {
	if got := NextPriority("bogus"); got != PriorityAll {
		t.Errorf("NextPriority(bogus) = %q, want All", got)
	}
}
