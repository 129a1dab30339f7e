// Package bulletin holds the day notes staff share on the schedule board.
package bulletin

import (
	"strings"
	"time"

	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyNote    = errs.New("note must not be empty")
	ErrNoteTooLong  = errs.New("note is too long")
	ErrDateRequired = errs.New("note date is required")
)

const MaxNoteRunes = 500

// Note is append-only. Date is the "2006-01-02" business day it belongs to.
type Note struct {
	id        uuid.UUID
	shopID    uuid.UUID
	date      string
	content   string
	createdAt time.Time
}

func NewNote(shopID uuid.UUID, date, content string, now time.Time) (*Note, error) {
	if date == "" {
		return nil, ErrDateRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyNote
	}
	if n := len([]rune(content)); n > MaxNoteRunes {
		return nil, errs.Wrapf(ErrNoteTooLong, "%d runes", n)
	}
	return &Note{
		id:        uuid.New(),
		shopID:    shopID,
		date:      date,
		content:   content,
		createdAt: now,
	}, nil
}

func (n *Note) ID() uuid.UUID {
	return n.id
}

func (n *Note) ShopID() uuid.UUID {
	return n.shopID
}

func (n *Note) Date() string {
	return n.date
}

func (n *Note) Content() string {
	return n.content
}

func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}
