package sqlite

import (
	"time"

	"github.com/zjrosen/inkwell/internal/editor"
)

// Position is the remembered editor state for one file.
type Position struct {
	Path      string
	Cursor    editor.Cursor
	ScrollPx  int
	UpdatedAt time.Time
}

// PositionModel is the database row for the positions table.
type PositionModel struct {
	Path      string
	Line      int
	Col       int
	ScrollPx  int
	UpdatedAt int64 // Unix timestamp
}

func toPositionModel(p Position) PositionModel {
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return PositionModel{
		Path:      p.Path,
		Line:      max(p.Cursor.Line, 0),
		Col:       max(p.Cursor.Col, 0),
		ScrollPx:  max(p.ScrollPx, 0),
		UpdatedAt: updated.Unix(),
	}
}

func (m PositionModel) toDomain() Position {
	return Position{
		Path:      m.Path,
		Cursor:    editor.Cursor{Line: m.Line, Col: m.Col},
		ScrollPx:  m.ScrollPx,
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}
}
