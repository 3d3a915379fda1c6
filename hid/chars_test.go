package hid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharToCode(t *testing.T) {
	tests := []struct {
		name string
		char byte
		want uint8
	}{
		{"lowercase letter", 'a', KeyA},
		{"uppercase letter shares the key", 'A', KeyA},
		{"digit", '5', Key5},
		{"shifted digit symbol", '%', Key5},
		{"space", ' ', KeySpace},
		{"newline", '\n', KeyEnter},
		{"carriage return", '\r', KeyEnter},
		{"unsupported", 0x07, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CharToCode(tc.char))
		})
	}
}

func TestNeedsShift(t *testing.T) {
	assert.False(t, NeedsShift('a'))
	assert.True(t, NeedsShift('A'))
	assert.True(t, NeedsShift('!'))
	assert.False(t, NeedsShift('1'))
	assert.True(t, NeedsShift('?'))
	assert.False(t, NeedsShift('/'))
}

func TestShiftCharsStayMapped(t *testing.T) {
	// Every character that needs shift must also resolve to a key.
	for c := range ShiftChars {
		assert.NotZero(t, CharToCode(c), "char %q", string(c))
	}
}

func TestKeyByName(t *testing.T) {
	code, ok := KeyByName("Enter")
	require.True(t, ok)
	assert.Equal(t, uint8(KeyEnter), code)

	_, ok = KeyByName("NoSuchKey")
	assert.False(t, ok)
}

func TestKeyNameRoundTrip(t *testing.T) {
	for code, name := range KeyName {
		got, ok := KeyByName(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, code, got)
	}
}
