package board

import (
	"testing"

	"trellis/internal/model"
)

func dragTickets() []model.Ticket {
	return []model.Ticket{
		{ID: 1, Title: "A", Status: model.StatusTodo, Priority: model.PriorityLow},
		{ID: 2, Title: "B", Status: model.StatusTodo, Priority: model.PriorityLow},
		{ID: 3, Title: "C", Status: model.StatusDone, Priority: model.PriorityHigh},
	}
}

func TestDragStartRecordsTicket(t *testing.T) {
	state, change := Transition(Idle, DragStart{TicketID: 1}, dragTickets())
	if change != nil {
		t.Fatal("starting a drag must not emit a mutation")
	}
	if !state.Active || state.TicketID != 1 {
		t.Fatalf("got state %+v, want Dragging(1)", state)
	}
}

func TestDragStartWhileDraggingIgnored(t *testing.T) {
	state, change := Transition(Dragging(1), DragStart{TicketID: 2}, dragTickets())
	if change != nil {
		t.Fatal("second grab must not emit a mutation")
	}
	if state.TicketID != 1 {
		t.Fatalf("second grab replaced the dragged ticket: %+v", state)
	}
}

func TestDropOnColumn(t *testing.T) {
	tests := []struct {
		name       string
		state      DragState
		target     DropTarget
		wantChange *StatusChange
	}{
		{
			name:       "different column issues one mutation",
			state:      Dragging(1),
			target:     DropTarget{Column: model.StatusDone},
			wantChange: &StatusChange{TicketID: 1, Status: model.StatusDone},
		},
		{
			name:   "same column issues nothing",
			state:  Dragging(1),
			target: DropTarget{Column: model.StatusTodo},
		},
		{
			name:   "unknown column identifier resolves to nothing",
			state:  Dragging(1),
			target: DropTarget{Column: model.Status("Archived")},
		},
		{
			name:  "no target at all",
			state: Dragging(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, change := Transition(tt.state, Drop{Target: tt.target}, dragTickets())
			if state != Idle {
				t.Errorf("drop must always end Idle, got %+v", state)
			}
			if tt.wantChange == nil {
				if change != nil {
					t.Fatalf("unexpected mutation %+v", change)
				}
				return
			}
			if change == nil {
				t.Fatal("expected a mutation, got none")
			}
			if *change != *tt.wantChange {
				t.Errorf("got %+v, want %+v", *change, *tt.wantChange)
			}
		})
	}
}

func TestDropOnCardUsesThatCardsStatus(t *testing.T) {
	// Ticket 1 (Todo) dropped onto ticket 3 (Done).
	state, change := Transition(Dragging(1), Drop{Target: DropTarget{CardID: 3}}, dragTickets())
	if state != Idle {
		t.Fatalf("drop must end Idle, got %+v", state)
	}
	if change == nil || change.Status != model.StatusDone || change.TicketID != 1 {
		t.Fatalf("got %+v, want move of 1 to Done", change)
	}
}

func TestDropOnCardWithSameStatusIssuesNothing(t *testing.T) {
	// Ticket 1 (Todo) dropped onto ticket 2 (also Todo).
	_, change := Transition(Dragging(1), Drop{Target: DropTarget{CardID: 2}}, dragTickets())
	if change != nil {
		t.Fatalf("same-status card drop issued %+v", change)
	}
}

func TestDropOnUnknownCardIssuesNothing(t *testing.T) {
	_, change := Transition(Dragging(1), Drop{Target: DropTarget{CardID: 99}}, dragTickets())
	if change != nil {
		t.Fatalf("unknown card drop issued %+v", change)
	}
}

func TestDropOfUnknownTicketIssuesNothing(t *testing.T) {
	// The dragged ticket vanished from the snapshot (deleted by
	// another session between grab and drop).
	_, change := Transition(Dragging(99), Drop{Target: DropTarget{Column: model.StatusDone}}, dragTickets())
	if change != nil {
		t.Fatalf("drop of vanished ticket issued %+v", change)
	}
}

func TestCancelReturnsToIdle(t *testing.T) {
	state, change := Transition(Dragging(1), DragCancel{}, dragTickets())
	if state != Idle || change != nil {
		t.Fatalf("cancel: state=%+v change=%+v", state, change)
	}
}

func TestDropWhileIdleIsNoop(t *testing.T) {
	state, change := Transition(Idle, Drop{Target: DropTarget{Column: model.StatusDone}}, dragTickets())
	if state != Idle || change != nil {
		t.Fatalf("idle drop: state=%+v change=%+v", state, change)
	}
}
