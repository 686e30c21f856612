package get_spaces_by_ids

// GetSpacesByIDsRequest HTTP request model
type GetSpacesByIDsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
}
