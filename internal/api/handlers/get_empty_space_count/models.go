package get_empty_space_count

// EmptySpaceCountResponse HTTP response model
type EmptySpaceCountResponse struct {
	Date        string `json:"date"` // "2024-01-10"
	EmptySpaces int    `json:"emptySpaces"`
}
