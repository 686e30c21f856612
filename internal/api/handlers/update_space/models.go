package update_space

// UpdateSpaceRequest HTTP request model
type UpdateSpaceRequest struct {
	IsDeleted *bool `json:"isDeleted" validate:"required"`
}
