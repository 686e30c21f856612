package domain

// Time format constants
const (
	DateFormat      = "2006-01-02"          // YYYY-MM-DD
	TimestampFormat = "2006-01-02-15-04-05" // yyyy-MM-dd-HH-mm-ss, default wire format
)

// Defaults for booking operations
const (
	DefaultFillConcurrency = 4
	MaxFillDays            = 366
	MaxIDsPerRequest       = 500
)
