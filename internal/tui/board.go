package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"trellis/internal/board"
	"trellis/internal/cache"
	"trellis/internal/model"
)

// — board state —————————————————————————————————————————————————————————————

type boardState int

const (
	boardNormal boardState = iota
	boardSearch
	boardMoveMenu
	boardDeleteConfirm
	boardCreate
)

// boardUI is the board screen's local state: cursor, filter, and the
// drag machine. The ticket data itself always comes from the cache.
type boardUI struct {
	state  boardState
	filter board.Filter
	search textinput.Model

	// Cursor over the filtered columns.
	cursorCol int
	cursorRow int

	// Drag interaction. While dragging, dragCol/dragCardIdx track the
	// prospective drop target: a column, or a card within it.
	drag        board.DragState
	dragCol     int
	dragCardIdx int // -1 targets the whole column

	menuIndex int
	confirmID int
	form      createForm
}

func newBoardUI() boardUI {
	search := textinput.New()
	search.Placeholder = "Search issues..."
	search.CharLimit = 100
	search.Prompt = "/ "
	return boardUI{
		filter: board.Filter{Priority: board.PriorityAll},
		search: search,
		form:   newCreateForm(),
	}
}

// clampCursor keeps the cursor on an existing card after the visible
// set changes (refetch, filter edit).
func (b boardUI) clampCursor(visible []model.Ticket) boardUI {
	grouped := board.Group(visible)
	if b.cursorCol < 0 {
		b.cursorCol = 0
	}
	if b.cursorCol >= len(board.Columns) {
		b.cursorCol = len(board.Columns) - 1
	}
	cards := grouped[board.Columns[b.cursorCol]]
	if b.cursorRow >= len(cards) {
		b.cursorRow = len(cards) - 1
	}
	if b.cursorRow < 0 {
		b.cursorRow = 0
	}
	return b
}

// selected returns the card under the cursor, or nil.
func (b boardUI) selected(visible []model.Ticket) *model.Ticket {
	grouped := board.Group(visible)
	cards := grouped[board.Columns[b.cursorCol]]
	if b.cursorRow < 0 || b.cursorRow >= len(cards) {
		return nil
	}
	t := cards[b.cursorRow]
	return &t
}

// — update ——————————————————————————————————————————————————————————————————

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.notifOpen {
		return m.updateNotifications(msg)
	}

	switch m.board.state {
	case boardSearch:
		return m.updateBoardSearch(msg)
	case boardMoveMenu:
		return m.updateBoardMoveMenu(msg)
	case boardDeleteConfirm:
		return m.updateBoardDeleteConfirm(msg)
	case boardCreate:
		return m.updateCreate(msg)
	}
	if m.board.drag.Active {
		return m.updateBoardDragging(msg)
	}
	return m.updateBoardNormal(msg)
}

func (m Model) updateBoardNormal(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if next, cmd, handled := m.handleNav(keyMsg); handled {
		return next, cmd
	}

	visible := m.visibleTickets()

	switch {
	case keyMatches(keyMsg, keys.Left):
		if m.board.cursorCol > 0 {
			m.board.cursorCol--
			m.board = m.board.clampCursor(visible)
		}
	case keyMatches(keyMsg, keys.Right):
		if m.board.cursorCol < len(board.Columns)-1 {
			m.board.cursorCol++
			m.board = m.board.clampCursor(visible)
		}
	case keyMatches(keyMsg, keys.Up):
		if m.board.cursorRow > 0 {
			m.board.cursorRow--
		}
	case keyMatches(keyMsg, keys.Down):
		m.board.cursorRow++
		m.board = m.board.clampCursor(visible)

	case keyMatches(keyMsg, keys.Grab):
		t := m.board.selected(visible)
		if t == nil {
			return m, nil
		}
		// Idle -> Dragging. No network call happens until the drop.
		m.board.drag, _ = transitionDrag(m.board.drag, board.DragStart{TicketID: t.ID}, nil)
		m.board.dragCol = m.board.cursorCol
		m.board.dragCardIdx = -1
		m.alert = ""

	case keyMatches(keyMsg, keys.Search):
		m.board.state = boardSearch
		m.board.search.SetValue(m.board.filter.Query)
		m.board.search.Focus()
		return m, textinput.Blink

	case keyMatches(keyMsg, keys.FilterCycle):
		m.board.filter.Priority = board.NextPriority(m.board.filter.Priority)
		m.board = m.board.clampCursor(m.visibleTickets())

	case keyMatches(keyMsg, keys.New):
		m.board.state = boardCreate
		m.board.form = newCreateForm()
		if m.cache.Stale(cache.Users) {
			return m, tea.Batch(textinput.Blink, fetchUsers(m.api))
		}
		return m, textinput.Blink

	case keyMatches(keyMsg, keys.Move):
		if t := m.board.selected(visible); t != nil {
			m.board.state = boardMoveMenu
			m.board.confirmID = t.ID
			m.board.menuIndex = 0
		}

	case keyMatches(keyMsg, keys.Delete):
		if t := m.board.selected(visible); t != nil {
			m.board.state = boardDeleteConfirm
			m.board.confirmID = t.ID
		}

	case keyMatches(keyMsg, keys.Notifications):
		m.notifOpen = true
		if m.cache.Stale(cache.Logs) {
			return m, fetchLogs(m.api)
		}
	}
	return m, nil
}

func (m Model) updateBoardDragging(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	visible := m.visibleTickets()
	grouped := board.Group(visible)

	switch {
	case keyMatches(keyMsg, keys.Cancel):
		// Dragging -> Idle with no mutation; the card stays where
		// the last snapshot put it.
		m.board.drag, _ = transitionDrag(m.board.drag, board.DragCancel{}, nil)

	case keyMatches(keyMsg, keys.Left):
		if m.board.dragCol > 0 {
			m.board.dragCol--
			m.board.dragCardIdx = -1
		}
	case keyMatches(keyMsg, keys.Right):
		if m.board.dragCol < len(board.Columns)-1 {
			m.board.dragCol++
			m.board.dragCardIdx = -1
		}
	case keyMatches(keyMsg, keys.Up):
		if m.board.dragCardIdx > -1 {
			m.board.dragCardIdx--
		}
	case keyMatches(keyMsg, keys.Down):
		cards := grouped[board.Columns[m.board.dragCol]]
		if m.board.dragCardIdx < len(cards)-1 {
			m.board.dragCardIdx++
		}

	case keyMatches(keyMsg, keys.Grab), keyMatches(keyMsg, keys.Confirm):
		tickets, _ := m.snapshotTickets()
		target := m.dropTarget(grouped)
		next, change := transitionDrag(m.board.drag, board.Drop{Target: target}, tickets)
		m.board.drag = next
		if change != nil {
			return m, updateStatusCmd(m.api, change.TicketID, change.Status)
		}
	}
	return m, nil
}

// dropTarget resolves the current drag cursor to a drop target: a
// specific card when one is highlighted, otherwise the column.
func (m Model) dropTarget(grouped map[model.Status][]model.Ticket) board.DropTarget {
	column := board.Columns[m.board.dragCol]
	cards := grouped[column]
	if m.board.dragCardIdx >= 0 && m.board.dragCardIdx < len(cards) {
		return board.DropTarget{CardID: cards[m.board.dragCardIdx].ID}
	}
	return board.DropTarget{Column: column}
}

// transitionDrag is the state machine entry point; kept as a seam so
// board tests and the interaction share one transition function.
func transitionDrag(state board.DragState, event board.DragEvent, tickets []model.Ticket) (board.DragState, *board.StatusChange) {
	return board.Transition(state, event, tickets)
}

func (m Model) updateBoardSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMatches(keyMsg, keys.Cancel):
			m.board.state = boardNormal
			m.board.search.Reset()
			m.board.search.Blur()
			m.board.filter.Query = ""
			m.board = m.board.clampCursor(m.visibleTickets())
			return m, nil
		case keyMatches(keyMsg, keys.Confirm):
			m.board.state = boardNormal
			m.board.search.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.board.search, cmd = m.board.search.Update(msg)
	m.board.filter.Query = m.board.search.Value()
	m.board = m.board.clampCursor(m.visibleTickets())
	return m, cmd
}

// moveOptions are the statuses a ticket can move to: every column but
// its current one.
func moveOptions(current model.Status) []model.Status {
	var options []model.Status
	for _, s := range board.Columns {
		if s != current {
			options = append(options, s)
		}
	}
	return options
}

func (m Model) updateBoardMoveMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	tickets, _ := m.snapshotTickets()
	current, found := ticketByID(tickets, m.board.confirmID)
	if !found {
		m.board.state = boardNormal
		return m, nil
	}
	options := moveOptions(current.Status)

	switch {
	case keyMatches(keyMsg, keys.Cancel):
		m.board.state = boardNormal
	case keyMatches(keyMsg, keys.Up):
		if m.board.menuIndex > 0 {
			m.board.menuIndex--
		}
	case keyMatches(keyMsg, keys.Down):
		if m.board.menuIndex < len(options)-1 {
			m.board.menuIndex++
		}
	case keyMatches(keyMsg, keys.Confirm):
		m.board.state = boardNormal
		return m, updateStatusCmd(m.api, current.ID, options[m.board.menuIndex])
	}
	return m, nil
}

func (m Model) updateBoardDeleteConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "esc", "n", "N":
		m.board.state = boardNormal
	case "enter", "y", "Y":
		m.board.state = boardNormal
		return m, deleteTicketCmd(m.api, m.board.confirmID)
	}
	return m, nil
}

func ticketByID(tickets []model.Ticket, id int) (model.Ticket, bool) {
	for _, t := range tickets {
		if t.ID == id {
			return t, true
		}
	}
	return model.Ticket{}, false
}

// — view ————————————————————————————————————————————————————————————————————

func (m Model) viewBoard() string {
	tickets, loaded := m.snapshotTickets()
	if !loaded {
		return lipgloss.NewStyle().Padding(1, 2).Render("Loading board…")
	}

	visible := m.board.filter.Apply(tickets)
	grouped := board.Group(visible)

	columnWidth := m.width/len(board.Columns) - 1
	if columnWidth < 18 {
		columnWidth = 18
	}

	columns := make([]string, 0, len(board.Columns))
	for i, status := range board.Columns {
		columns = append(columns, m.renderColumn(i, status, grouped[status], columnWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderFilterBar(len(visible)),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
	)
}

func (m Model) renderFilterBar(matching int) string {
	var left string
	if m.board.state == boardSearch {
		left = m.board.search.View()
	} else if m.board.filter.Query != "" {
		left = dimStyle.Render("search: ") + m.board.filter.Query
	} else {
		left = dimStyle.Render("/ to search")
	}

	priority := dimStyle.Render("  filter: ") + m.board.filter.Priority
	count := dimStyle.Render(fmt.Sprintf("  %d matching issues", matching))
	return lipgloss.NewStyle().Padding(0, 1).Render(left + priority + count)
}

func (m Model) renderColumn(index int, status model.Status, cards []model.Ticket, width int) string {
	dropTarget := m.board.drag.Active && m.board.dragCol == index

	head := columnHeadStyle.Render(strings.ToUpper(string(status))) +
		dimStyle.Render(fmt.Sprintf(" %d", len(cards)))
	if dropTarget && m.board.dragCardIdx < 0 {
		head = titleStyle.Render("▸ ") + head
	}

	lines := []string{head}

	// Cap the stack so tall columns do not push the footer off
	// screen.
	maxCards := (m.bodyHeight() - 3) / 6
	if maxCards < 1 {
		maxCards = 1
	}

	shown := cards
	if len(shown) > maxCards {
		shown = shown[:maxCards]
	}
	for i, t := range shown {
		lines = append(lines, m.renderCard(index, i, t, width-4))
	}
	if hidden := len(cards) - len(shown); hidden > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  +%d more", hidden)))
	}
	if len(cards) == 0 {
		lines = append(lines, dimStyle.Render("  No issues found"))
	}

	style := columnStyle
	if dropTarget {
		style = dropColumnStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCard(columnIndex, row int, t model.Ticket, width int) string {
	dragged := m.board.drag.Active && m.board.drag.TicketID == t.ID
	dropCard := m.board.drag.Active &&
		m.board.dragCol == columnIndex && m.board.dragCardIdx == row
	selected := !m.board.drag.Active &&
		m.board.cursorCol == columnIndex && m.board.cursorRow == row

	inner := width - 2
	if inner < 8 {
		inner = 8
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(t.Ref()) + "\n")
	b.WriteString(boldStyle.Render(ansi.Truncate(t.Title, inner, "…")) + "\n")

	badges := priorityStyle(t.Priority).Render(string(t.Priority))
	if t.DueDate != nil {
		badges += dimStyle.Render("  " + t.DueDate.Local().Format("Jan 2"))
	}
	b.WriteString(badges + "\n")
	b.WriteString(dimStyle.Render(ansi.Truncate(t.Assignee(), inner, "…")))

	style := cardStyle
	switch {
	case dragged:
		style = ghostCardStyle
	case dropCard, selected:
		style = selectedCardStyle
	}
	return style.Width(width).Render(b.String())
}

// — modals ——————————————————————————————————————————————————————————————————

func (m Model) renderDeleteConfirmOver(base string) string {
	tickets, _ := m.snapshotTickets()
	var b strings.Builder
	b.WriteString(errStyle.Render("Delete Issue") + "\n\n")
	if t, ok := ticketByID(tickets, m.board.confirmID); ok {
		b.WriteString(labelStyle.Render("Issue    ") + t.Ref() + "\n")
		b.WriteString(labelStyle.Render("Title    ") + ansi.Truncate(t.Title, 40, "…") + "\n\n")
	}
	b.WriteString("This removes the ticket from the board for everyone.\n")
	b.WriteString("\n" + dimStyle.Render("y/Enter to confirm · Esc/n to cancel"))

	modal := deleteModalStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("0")),
	)
}

func (m Model) renderMoveMenuOver(base string) string {
	tickets, _ := m.snapshotTickets()
	current, ok := ticketByID(tickets, m.board.confirmID)
	if !ok {
		return base
	}

	var b strings.Builder
	b.WriteString(boldStyle.Render("Move "+current.Ref()) + "\n\n")
	for i, status := range moveOptions(current.Status) {
		cursor := "  "
		line := "Move to " + string(status)
		if i == m.board.menuIndex {
			cursor = titleStyle.Render("▸ ")
			line = boldStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("Enter move · Esc cancel"))

	modal := modalStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("0")),
	)
}
