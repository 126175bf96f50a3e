package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	want := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	t.Run("string", func(t *testing.T) {
		got, err := ParseISO("2024-02-03T04:05:06Z")
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("fractional seconds", func(t *testing.T) {
		got, err := ParseISO("2024-02-03T04:05:06.25+02:00")
		require.NoError(t, err)
		assert.Equal(t, int64(250_000_000), int64(got.Nanosecond()))
	})

	t.Run("already a time", func(t *testing.T) {
		got, err := ParseISO(want)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ParseISO(42)
		require.Error(t, err)
	})

	t.Run("garbage string", func(t *testing.T) {
		_, err := ParseISO("last tuesday")
		require.Error(t, err)
	})
}

func TestFormatISO_RoundTrip(t *testing.T) {
	offset := time.FixedZone("X", -5*3600)
	original := time.Date(2024, 7, 8, 9, 10, 11, 123456789, offset)

	got, err := ParseISO(FormatISO(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(got))
}

func TestSaturatingAdd(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(time.Hour), SaturatingAdd(base, time.Hour))

	nearMax := MaxTime.Add(-time.Minute)
	assert.Equal(t, MaxTime, SaturatingAdd(nearMax, 24*time.Hour), "overflow must clamp to MaxTime")
}
