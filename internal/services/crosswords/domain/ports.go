package domain

import (
	"context"

	"crossword/internal/core/guardian"
)

// Reader is the read side of the crossword store
type Reader interface {
	IDsForSeries(ctx context.Context, series string) ([]string, error)
	MetadataForSeries(ctx context.Context, series string) ([]Metadata, error)
	BySeriesAndID(ctx context.Context, id, series string) (guardian.Crossword, error)
}

// Writer inserts crosswords; all rows of one call land together or not at all
type Writer interface {
	Store(ctx context.Context, xs []Crossword) (int, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Reader
	Writer
}
