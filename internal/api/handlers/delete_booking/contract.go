package delete_booking

import "context"

type BookingService interface {
	DeleteBooking(ctx context.Context, bookingID, actingUserID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
