package timespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedLength(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		max  int
		want int
	}{
		{"nil buffer", nil, 10, 0},
		{"empty buffer", []byte{}, 10, 0},
		{"terminated", []byte("abc\x00def"), 10, 3},
		{"capped by max", []byte("abcdef"), 3, 3},
		{"capped by slice", []byte("abc"), 10, 3},
		{"leading terminator", []byte("\x00abc"), 10, 0},
		{"zero max", []byte("abc"), 0, 0},
		{"negative max", []byte("abc"), -1, 0},
		{"terminator beyond max", []byte("abcd\x00"), 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundedLength(tt.buf, tt.max))
		})
	}
}
