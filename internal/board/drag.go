package board

import "trellis/internal/model"

// DragState is the two-state drag interaction machine. The zero value
// is Idle; Active with a TicketID is Dragging. While dragging, no
// network calls occur — the mutation, if any, is emitted as a command
// on drop.
type DragState struct {
	Active   bool
	TicketID int
}

// Idle is the rest state.
var Idle = DragState{}

// Dragging builds the active state for a grabbed ticket.
func Dragging(ticketID int) DragState {
	return DragState{Active: true, TicketID: ticketID}
}

// DragEvent is an input to the machine: a grab, a drop, or a cancel.
type DragEvent interface {
	isDragEvent()
}

// DragStart begins a drag on a card.
type DragStart struct {
	TicketID int
}

// Drop releases the dragged card over a target. A zero Target means
// the card was released outside every column and card.
type Drop struct {
	Target DropTarget
}

// DragCancel abandons the drag (e.g. escape).
type DragCancel struct{}

func (DragStart) isDragEvent()  {}
func (Drop) isDragEvent()       {}
func (DragCancel) isDragEvent() {}

// DropTarget identifies what the card was released over. Column takes
// precedence; when empty, CardID (if non-zero) resolves to that card's
// current column.
type DropTarget struct {
	Column model.Status
	CardID int
}

// StatusChange is the side-effect command a drop can emit: issue
// exactly one status-update request for the dragged ticket.
type StatusChange struct {
	TicketID int
	Status   model.Status
}

// Transition applies one event to the drag machine. It returns the
// next state and, for a drop that resolves to a different status than
// the dragged ticket's current one, the mutation to issue. Drops
// always return to Idle regardless of resolution; an unresolved
// target produces no mutation and the card settles back into its
// column on the next render.
func Transition(state DragState, event DragEvent, tickets []model.Ticket) (DragState, *StatusChange) {
	switch event := event.(type) {
	case DragStart:
		if state.Active {
			// Already dragging; ignore a second grab.
			return state, nil
		}
		return Dragging(event.TicketID), nil

	case DragCancel:
		return Idle, nil

	case Drop:
		if !state.Active {
			return Idle, nil
		}
		target, ok := resolveTarget(event.Target, tickets)
		if !ok {
			return Idle, nil
		}
		dragged, ok := findTicket(tickets, state.TicketID)
		if !ok || dragged.Status == target {
			return Idle, nil
		}
		return Idle, &StatusChange{TicketID: state.TicketID, Status: target}
	}
	return state, nil
}

// resolveTarget maps a drop target to a column status: a column
// identifier is used directly, a card resolves to that card's current
// status, and anything else resolves to nothing.
func resolveTarget(target DropTarget, tickets []model.Ticket) (model.Status, bool) {
	if target.Column != "" {
		if _, err := model.ParseStatus(string(target.Column)); err == nil {
			return target.Column, true
		}
		return "", false
	}
	if target.CardID != 0 {
		if over, ok := findTicket(tickets, target.CardID); ok {
			return over.Status, true
		}
	}
	return "", false
}

func findTicket(tickets []model.Ticket, id int) (model.Ticket, bool) {
	for _, t := range tickets {
		if t.ID == id {
			return t, true
		}
	}
	return model.Ticket{}, false
}
