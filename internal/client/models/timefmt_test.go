package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateIn(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)

	assert.Equal(t, "4 Desember 2025, 17.00", FormatDateIn("2025-12-04T17:00:00", loc))
	assert.Equal(t, "4 Desember 2025, 17.00", FormatDateIn("2025-12-04T10:00:00Z", loc))
	assert.Equal(t, "1 Januari 2024, 09.05", FormatDateIn("2024-01-01 09:05", loc))
	assert.Equal(t, "-", FormatDateIn("", loc))
	assert.Equal(t, "Tanggal tidak valid", FormatDateIn("kemarin", loc))
}

func TestFormatTimeAgoAt(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 12, 10, 12, 0, 0, 0, loc)
	at := func(d time.Duration) string {
		return now.Add(-d).Format(time.RFC3339)
	}

	assert.Equal(t, "Baru saja", FormatTimeAgoAt(at(30*time.Second), now, loc))
	assert.Equal(t, "Baru saja", FormatTimeAgoAt(now.Add(time.Hour).Format(time.RFC3339), now, loc))
	assert.Equal(t, "5 menit yang lalu", FormatTimeAgoAt(at(5*time.Minute+10*time.Second), now, loc))
	assert.Equal(t, "3 jam yang lalu", FormatTimeAgoAt(at(3*time.Hour), now, loc))
	assert.Equal(t, "2 hari yang lalu", FormatTimeAgoAt(at(50*time.Hour), now, loc))
	assert.Equal(t, "3 Des 2025", FormatTimeAgoAt("2025-12-03T12:00:00Z", now, loc))
	assert.Equal(t, "-", FormatTimeAgoAt("", now, loc))
	assert.Equal(t, "-", FormatTimeAgoAt("bukan tanggal", now, loc))
}
