// Package guardian models the Guardian crossword document and checks it is usable
package guardian

import (
	"encoding/json"
	"fmt"
	"time"

	"crossword/internal/core/normalize"
	perr "crossword/internal/platform/errors"
	pstrings "crossword/internal/platform/strings"
	ptime "crossword/internal/platform/time"
	"crossword/internal/platform/validate"
)

// Direction is the way an entry runs through the grid
type Direction string

const (
	// Across entries run left to right
	Across Direction = "across"
	// Down entries run top to bottom
	Down Direction = "down"
)

// Crossword is one Guardian puzzle as published on theguardian.com
// unknown fields are ignored on decode
type Crossword struct {
	ID                    string     `json:"id" validate:"required"`
	Number                int        `json:"number"`
	Name                  string     `json:"name" validate:"required"`
	Creator               *Creator   `json:"creator,omitempty" validate:"omitempty"`
	Date                  int64      `json:"date" validate:"required"` // epoch millis
	WebPublicationDate    int64      `json:"webPublicationDate,omitempty"`
	Entries               []Entry    `json:"entries" validate:"required,min=1,dive"`
	SolutionAvailable     bool       `json:"solutionAvailable"`
	DateSolutionAvailable int64      `json:"dateSolutionAvailable,omitempty"`
	Dimensions            Dimensions `json:"dimensions"`
	CrosswordType         string     `json:"crosswordType" validate:"required"`
	PDF                   string     `json:"pdf,omitempty" validate:"omitempty,url"`
	Instructions          string     `json:"instructions,omitempty"`
}

// Creator is the setter
type Creator struct {
	Name   string `json:"name" validate:"required"`
	WebURL string `json:"webUrl,omitempty" validate:"omitempty,url"`
}

// Entry is one clue and where its answer sits in the grid
type Entry struct {
	ID                 string           `json:"id" validate:"required"`
	Number             int              `json:"number"`
	HumanNumber        string           `json:"humanNumber"`
	Clue               string           `json:"clue" validate:"required"`
	Direction          Direction        `json:"direction" validate:"required,oneof=across down"`
	Length             int              `json:"length" validate:"min=1"`
	Group              []string         `json:"group,omitempty"`
	Position           Position         `json:"position"`
	SeparatorLocations map[string][]int `json:"separatorLocations,omitempty"`
	Solution           string           `json:"solution,omitempty"`
}

// Position is a zero based grid cell
type Position struct {
	X int `json:"x" validate:"min=0"`
	Y int `json:"y" validate:"min=0"`
}

// Dimensions is the grid size
type Dimensions struct {
	Cols int `json:"cols" validate:"min=1"`
	Rows int `json:"rows" validate:"min=1"`
}

// Parse decodes raw and validates the result.
// Decode failures carry ErrorCodeJSON, failed checks ErrorCodeValidation with the field set
func Parse(raw []byte) (Crossword, error) {
	var c Crossword
	if err := json.Unmarshal(raw, &c); err != nil {
		return Crossword{}, perr.Wrap(err, perr.ErrorCodeJSON, "guardian: decode crossword")
	}
	if err := c.Validate(); err != nil {
		return Crossword{}, err
	}
	return c, nil
}

// Validate runs the struct tags, then checks every entry fits the grid
func (c *Crossword) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	for i, e := range c.Entries {
		endX, endY := e.Position.X, e.Position.Y
		if e.Direction == Across {
			endX += e.Length - 1
		} else {
			endY += e.Length - 1
		}
		if endX >= c.Dimensions.Cols || endY >= c.Dimensions.Rows {
			err := perr.Newf(perr.ErrorCodeValidation, "entry %s runs off the %dx%d grid", e.ID, c.Dimensions.Cols, c.Dimensions.Rows)
			return perr.WithField(err, fmt.Sprintf("entries[%d].position", i))
		}
	}
	return nil
}

// PublishedOn is the puzzle date at UTC midnight
func (c Crossword) PublishedOn() time.Time { return ptime.FromEpochMillis(c.Date) }

// Series is the slug of the crossword type, e.g. "quick" or "quick-cryptic"
func (c Crossword) Series() string { return normalize.Series(c.CrosswordType) }

// Record is what a Guardian document becomes when stored
type Record struct {
	ID     string
	Series string
	Date   time.Time
	JSON   json.RawMessage
}

// ToRecord parses raw and derives the row to store. The document is kept byte for byte.
// A non-empty series replaces the crossword type; either way the result is slugged
func ToRecord(raw []byte, series string) (Record, error) {
	c, err := Parse(raw)
	if err != nil {
		return Record{}, err
	}
	slug := normalize.Series(pstrings.FirstNonEmpty(series, c.CrosswordType))
	if !validate.IsSeries(slug) {
		return Record{}, perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "guardian: no usable series in %q", pstrings.FirstNonEmpty(series, c.CrosswordType)),
			"crosswordType",
		)
	}
	return Record{
		ID:     c.ID,
		Series: slug,
		Date:   c.PublishedOn(),
		JSON:   append(json.RawMessage(nil), raw...),
	}, nil
}
