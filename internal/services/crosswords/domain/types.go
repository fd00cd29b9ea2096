// Package domain holds the crossword entity, its projections and the error kinds callers branch on
package domain

import (
	"encoding/json"

	ptime "crossword/internal/platform/time"
)

// Crossword is one stored puzzle; ID is unique across every series
type Crossword struct {
	ID            string          `json:"id" validate:"required,max=200" example:"crosswords/quick/16000"`
	Series        string          `json:"series" validate:"required,series" example:"quick"`
	Date          ptime.Date      `json:"date" validate:"required" example:"2024-01-01"`
	CrosswordJSON json.RawMessage `json:"crossword_json" validate:"required"`
}

// Metadata is the listing projection of a Crossword, without the document
type Metadata struct {
	ID     string     `json:"id" example:"crosswords/quick/16000"`
	Series string     `json:"series" example:"quick"`
	Date   ptime.Date `json:"date" example:"2024-01-01"`
}
