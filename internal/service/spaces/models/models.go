package models

import (
	"github.com/m04kA/SMC-ParkingService/internal/clock"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SpaceResponse ответ с данными места
type SpaceResponse struct {
	ID        int64  `json:"id"`
	IsDeleted bool   `json:"isDeleted"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SpaceListResponse список мест
type SpaceListResponse struct {
	Spaces []SpaceResponse `json:"spaces"`
	Total  int             `json:"total"`
}

// FromDomainSpace конвертирует доменную модель в ответ
func FromDomainSpace(s *domain.ParkingSpace) *SpaceResponse {
	return &SpaceResponse{
		ID:        s.ID,
		IsDeleted: s.IsDeleted,
		CreatedAt: clock.Format(s.CreatedAt),
		UpdatedAt: clock.Format(s.UpdatedAt),
	}
}

// FromDomainSpaceList конвертирует список мест в ответ
func FromDomainSpaceList(spaces []*domain.ParkingSpace) *SpaceListResponse {
	items := make([]SpaceResponse, 0, len(spaces))
	for _, s := range spaces {
		items = append(items, *FromDomainSpace(s))
	}
	return &SpaceListResponse{Spaces: items, Total: len(items)}
}
