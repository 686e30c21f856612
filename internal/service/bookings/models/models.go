package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/clock"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// AddBookingRequest запрос на создание бронирования от имени ActingUserID
type AddBookingRequest struct {
	ActingUserID int64
	UserID       int64
	Interval     domain.Interval
	SpaceID      *int64 // Предпочтительное место (опционально)
}

// UpdateBookingRequest запрос на изменение бронирования
type UpdateBookingRequest struct {
	BookingID    int64
	ActingUserID int64
	UserID       int64 // Новый владелец
	Interval     domain.Interval
	SpaceID      *int64 // Предпочтительное место, по умолчанию текущее
}

// FillDaysRequest запрос на создание бронирования на каждый день диапазона.
// Дата Start и End задает диапазон дней, время - окно внутри каждого дня.
type FillDaysRequest struct {
	ActingUserID int64
	UserID       int64
	Start        time.Time
	End          time.Time
	SpaceID      *int64
}

// RemoveDaysRequest запрос на удаление бронирований пользователя в диапазоне
type RemoveDaysRequest struct {
	ActingUserID int64
	UserID       int64
	Start        time.Time
	End          time.Time
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	SpaceID   int64  `json:"spaceId"`
	Start     string `json:"start"` // "2024-01-01-00-00-00"
	End       string `json:"end"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		SpaceID:   b.SpaceID,
		Start:     clock.Format(b.Start),
		End:       clock.Format(b.End),
		CreatedAt: clock.Format(b.CreatedAt),
		UpdatedAt: clock.Format(b.UpdatedAt),
	}
}

// FromDomainBookingList конвертирует список бронирований в ответ
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: items, Total: len(items)}
}
