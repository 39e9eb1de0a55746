package stream

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "12.50", want: "12.5"},
		{value: "$12.50", want: "12.5"},
		{value: "$1,300.00", want: "1300"},
		{value: " $0.10 ", want: "0.1"},
		{value: "-$3.10", want: "-3.1"},
		{value: "$-3.10", want: "-3.1"},
		{value: "($3.10)", want: "-3.1"},
		{value: "12.50 €", want: "12.5"},
		{value: "£7", want: "7"},
		{value: "+4.99", want: "4.99"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parsePrice(tt.value)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestParsePriceKeepsCents(t *testing.T) {
	sum := decimal.Zero
	for i := 0; i < 10; i++ {
		price, err := parsePrice("$0.10")
		require.NoError(t, err)
		sum = sum.Add(price)
	}
	assert.Equal(t, "1.00", sum.StringFixed(2))
	assert.True(t, sum.Equal(decimal.NewFromInt(1)))
}

func TestParsePriceRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "$", "abc", "1.2.3", "1e3", "--1", "12-"} {
		t.Run(value, func(t *testing.T) {
			_, err := parsePrice(value)
			assert.Error(t, err)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	local := time.FixedZone("LOCAL", -5*60*60)

	tests := []struct {
		name       string
		value      string
		wantTime   time.Time
		wantOffset int
	}{
		{
			name:       "rfc3339 with offset",
			value:      "2020-03-01T21:15:00+02:00",
			wantTime:   time.Date(2020, 3, 1, 19, 15, 0, 0, time.UTC),
			wantOffset: 2 * 60 * 60,
		},
		{
			name:       "utc designator",
			value:      "2020-03-01T21:15:00Z",
			wantTime:   time.Date(2020, 3, 1, 21, 15, 0, 0, time.UTC),
			wantOffset: 0,
		},
		{
			name:       "space separator with offset",
			value:      "2020-03-01 21:15:00+02:00",
			wantTime:   time.Date(2020, 3, 1, 19, 15, 0, 0, time.UTC),
			wantOffset: 2 * 60 * 60,
		},
		{
			name:       "fractional seconds",
			value:      "2020-03-01T21:15:00.250+02:00",
			wantTime:   time.Date(2020, 3, 1, 19, 15, 0, 250_000_000, time.UTC),
			wantOffset: 2 * 60 * 60,
		},
		{
			name:       "no offset uses location",
			value:      "2020-03-01 21:15:00",
			wantTime:   time.Date(2020, 3, 1, 21, 15, 0, 0, local),
			wantOffset: -5 * 60 * 60,
		},
		{
			name:       "no seconds",
			value:      "2020-03-01T21:15",
			wantTime:   time.Date(2020, 3, 1, 21, 15, 0, 0, local),
			wantOffset: -5 * 60 * 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.value, local, false)
			require.NoError(t, err)
			assert.True(t, tt.wantTime.Equal(got), "got %s", got)
			_, offset := got.Zone()
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, 21, got.Hour())
		})
	}
}

func TestParseTimestampSerialDates(t *testing.T) {
	_, err := parseTimestamp("43831.5", time.UTC, false)
	assert.Error(t, err)

	got, err := parseTimestamp("43831.5", time.UTC, true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC), got)
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "yesterday", "2020-13-01T00:00:00Z", "01/02/2020"} {
		t.Run(value, func(t *testing.T) {
			_, err := parseTimestamp(value, time.UTC, false)
			assert.Error(t, err)
		})
	}
}
