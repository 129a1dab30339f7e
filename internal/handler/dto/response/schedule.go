package response

import (
	"time"

	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PlacementResponse struct {
	OK           bool       `json:"ok"`
	Reason       string     `json:"reason,omitempty"`
	ConflictWith *uuid.UUID `json:"conflict_with,omitempty"`
	Overridable  bool       `json:"overridable"`
}

type FreeSlotResponse struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

type BoardCardResponse struct {
	*AppointmentResponse
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

type BoardRowResponse struct {
	StaffID   uuid.UUID           `json:"staff_id"`
	StaffName string              `json:"staff_name"`
	Role      string              `json:"role"`
	Holiday   bool                `json:"holiday"`
	Cards     []BoardCardResponse `json:"cards"`
	FreeSlots []FreeSlotResponse  `json:"free_slots"`
}

type DayBoardResponse struct {
	Date     string             `json:"date"`
	OpensAt  time.Time          `json:"opens_at"`
	ClosesAt time.Time          `json:"closes_at"`
	Rows     []BoardRowResponse `json:"rows"`
	Notes    []NoteResponse     `json:"notes"`
}

type DropResponse struct {
	Start    time.Time `json:"start"`
	Fraction float64   `json:"fraction"`
}

func FromPlacementView(v *queries.PlacementView) *PlacementResponse {
	var res PlacementResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromFreeSlots(slots []queries.FreeSlotView) []FreeSlotResponse {
	res := make([]FreeSlotResponse, len(slots))
	_ = copier.Copy(&res, &slots)
	return res
}

func FromDayBoardView(v *queries.DayBoardView) *DayBoardResponse {
	res := &DayBoardResponse{
		Date:     v.Date,
		OpensAt:  v.OpensAt,
		ClosesAt: v.ClosesAt,
		Rows:     make([]BoardRowResponse, len(v.Rows)),
		Notes:    FromNoteViews(v.Notes),
	}
	for i, row := range v.Rows {
		cards := make([]BoardCardResponse, len(row.Cards))
		for j := range row.Cards {
			card := row.Cards[j]
			cards[j] = BoardCardResponse{
				AppointmentResponse: FromAppointmentView(&card.AppointmentView),
				Left:                card.Left,
				Width:               card.Width,
			}
		}
		res.Rows[i] = BoardRowResponse{
			StaffID:   row.Staff.ID,
			StaffName: row.Staff.Name,
			Role:      row.Staff.Role,
			Holiday:   row.Holiday,
			Cards:     cards,
			FreeSlots: FromFreeSlots(row.FreeSlots),
		}
	}
	return res
}

func FromDropView(v *queries.DropView) *DropResponse {
	return &DropResponse{Start: v.Start, Fraction: v.Fraction}
}
