package timespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Timestamp
	}{
		{"5", Timestamp{5, 0}},
		{"+5", Timestamp{5, 0}},
		{"1.5", Timestamp{1, 500_000_000}},
		{"0.000000001", Timestamp{0, 1}},
		{".25", Timestamp{0, 250_000_000}},
		{"4.", Timestamp{4, 0}},
		{"-2", Timestamp{-2, 0}},
		{"-1.5", Timestamp{-2, 500_000_000}},
		{"-0.000000001", Timestamp{-1, 999_999_999}},
		{"3:500000000", Timestamp{3, 500_000_000}},
		{"0:1000000000", Timestamp{0, 1_000_000_000}},
		{"5:-2000000000", Timestamp{5, -2_000_000_000}},
		{" 7 ", Timestamp{7, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "-", ".", "+.", "-.", "abc", "1.2.3", "1.x", "1.+5", "1.0000000001", "--5", "1:x", "x:1"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.Error(t, err)
		})
	}
}

func TestParse_RoundTripsString(t *testing.T) {
	for _, want := range []Timestamp{{5, 0}, {1, 500_000_000}, {-1, 250_000_000}, {-3, 0}} {
		got, err := Parse(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.Equal(t, Timestamp{2, 0}, MustParse("2"))
}
