package get_space_free

// SpaceFreeResponse HTTP response model
type SpaceFreeResponse struct {
	SpaceID int64  `json:"spaceId"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Free    bool   `json:"free"`
}
