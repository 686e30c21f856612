package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestResolver() *Resolver {
	now := time.Date(2024, 3, 15, 14, 30, 12, 0, time.UTC)
	return NewResolver(fixedClock{now: now}, time.UTC)
}

func TestResolve_Keywords(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		token string
		want  time.Time
	}{
		{TokenNow, time.Date(2024, 3, 15, 14, 30, 12, 0, time.UTC)},
		{TokenToday, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{TokenTomorrow, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)},
		{TokenEndOfToday, time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := r.Resolve(tt.token)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestResolve_KeywordsAreCaseSensitive(t *testing.T) {
	r := newTestResolver()

	_, err := r.Resolve("Today")
	require.ErrorIs(t, err, domain.ErrParse)
}

func TestResolve_Layouts(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		token string
		want  time.Time
	}{
		{"2024-01-03", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"2024-01-03-10-20-30", time.Date(2024, 1, 3, 10, 20, 30, 0, time.UTC)},
		{"2024-01-03T10:20", time.Date(2024, 1, 3, 10, 20, 0, 0, time.UTC)},
		{"2024-01-03 10:20:30", time.Date(2024, 1, 3, 10, 20, 30, 0, time.UTC)},
		// смещение отбрасывается, настенное время сохраняется
		{"2024-01-03T10:20:30+02:00", time.Date(2024, 1, 3, 10, 20, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := r.Resolve(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestResolve_InvalidToken(t *testing.T) {
	r := newTestResolver()

	for _, token := range []string{"", "   ", "yesterday", "2024-13-01", "01/02/2024"} {
		_, err := r.Resolve(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
		assert.ErrorIs(t, err, domain.ErrParse, token)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	r := newTestResolver()

	timestamps := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		time.Date(1999, 12, 31, 7, 5, 3, 0, time.UTC),
		time.Date(2030, 6, 15, 12, 0, 1, 999_000_000, time.UTC).Truncate(time.Second),
	}

	for _, ts := range timestamps {
		formatted := Format(ts)
		got, err := r.Resolve(formatted)
		require.NoError(t, err)
		assert.Equal(t, ts, got, formatted)
	}
}

func TestFormat_CustomLayout(t *testing.T) {
	ts := time.Date(2024, 1, 3, 10, 20, 30, 0, time.UTC)

	assert.Equal(t, "2024-01-03-10-20-30", Format(ts))
	assert.Equal(t, "2024-01-03", Format(ts, domain.DateFormat))
}

func TestResolveRange(t *testing.T) {
	r := newTestResolver()

	start, end, err := r.ResolveRange("today", "2024-03-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), end)

	_, _, err = r.ResolveRange("today", "soon")
	require.ErrorIs(t, err, domain.ErrParse)
}

func TestResolve_KeywordsMatchDatesOutsideUTC(t *testing.T) {
	berlin := time.FixedZone("CET", 60*60)
	// 23:30 UTC is already the next day in CET
	r := NewResolver(fixedClock{now: time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC)}, berlin)

	today, err := r.Resolve(TokenToday)
	require.NoError(t, err)
	date, err := r.Resolve("2024-03-15")
	require.NoError(t, err)
	assert.True(t, date.Equal(today), "today=%s date=%s", today, date)
	assert.Equal(t, time.UTC, today.Location())

	tomorrow, err := r.Resolve(TokenTomorrow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), tomorrow)

	now, err := r.Resolve(TokenNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 30, 0, 0, time.UTC), now)
	assert.Equal(t, now, r.Now())
}
