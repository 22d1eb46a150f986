package schedule

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Slot is one column of a time poll: a stable identity plus the recurring
// weekly point it represents.
type Slot struct {
	ID    uuid.UUID
	Point WeeklyTimePoint
}

// SlotResponse is one member's stored availability for one slot. The store
// guarantees at most one row per (UserID, SlotID); BuildMatrix relies on that
// and does not deduplicate.
type SlotResponse struct {
	UserID    uuid.UUID
	Nickname  string
	SlotID    uuid.UUID
	Available bool
}

// Participant identifies a matrix row.
type Participant struct {
	UserID   uuid.UUID
	Nickname string
}

// MatrixRow is one participant's availability across all slots. Cells align
// with AvailabilityMatrix.Slots by index. A cell is true only for an explicit
// positive response: explicit "unavailable" and "never responded" render the
// same way, which mirrors how responses are displayed — the distinction only
// exists on the write path, where a stored false lets a member revoke an
// earlier yes.
type MatrixRow struct {
	Participant
	Available []bool
}

// AvailabilityMatrix is the display-ready grid for a time poll: columns are
// the poll's slots in authoring order, rows are responders sorted by nickname.
type AvailabilityMatrix struct {
	Slots []Slot
	Rows  []MatrixRow
}

// Row returns the row for the given participant, if present.
func (m AvailabilityMatrix) Row(userID uuid.UUID) (MatrixRow, bool) {
	for _, row := range m.Rows {
		if row.UserID == userID {
			return row, true
		}
	}
	return MatrixRow{}, false
}

// BuildMatrix flattens per-slot responses into participant rows.
//
// Rows are the distinct responders across all slots, ordered by nickname
// (ties broken by user ID, so the order is deterministic for equal names).
// The viewer always gets a row, even with no stored responses, so the UI can
// pre-populate their editable cells. Columns keep the input slot order and
// are never re-sorted. Responses referencing unknown slots are ignored.
func BuildMatrix(slots []Slot, responses []SlotResponse, viewer Participant) AvailabilityMatrix {
	colIndex := make(map[uuid.UUID]int, len(slots))
	for i, s := range slots {
		colIndex[s.ID] = i
	}

	rows := make(map[uuid.UUID]*MatrixRow)
	rowFor := func(p Participant) *MatrixRow {
		if row, ok := rows[p.UserID]; ok {
			return row
		}
		row := &MatrixRow{
			Participant: p,
			Available:   make([]bool, len(slots)),
		}
		rows[p.UserID] = row
		return row
	}

	if viewer.UserID != uuid.Nil {
		rowFor(viewer)
	}

	for _, r := range responses {
		col, ok := colIndex[r.SlotID]
		if !ok {
			continue
		}
		row := rowFor(Participant{UserID: r.UserID, Nickname: r.Nickname})
		row.Available[col] = r.Available
	}

	out := AvailabilityMatrix{Slots: slots, Rows: make([]MatrixRow, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, *row)
	}
	sort.Slice(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if c := strings.Compare(a.Nickname, b.Nickname); c != 0 {
			return c < 0
		}
		return a.UserID.String() < b.UserID.String()
	})

	return out
}
