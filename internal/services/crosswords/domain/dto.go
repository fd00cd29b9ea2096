package domain

// StoreInput is the body of a bulk store request
type StoreInput struct {
	Crosswords []Crossword `json:"crosswords" validate:"required,dive"`
}

// StoreResult reports how many rows one store call inserted
type StoreResult struct {
	Inserted int `json:"inserted" example:"1"`
}
