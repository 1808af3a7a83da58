package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	b := []byte{0x4e, 0x45, 0x53, 0x1a, 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	h, err := parseHeader(b)
	require.NoError(t, err)
	assert.EqualValues(t, 2, h.prgSize)
	assert.EqualValues(t, 1, h.chrSize)
	assert.EqualValues(t, 1, h.flags6)
}

func TestParseHeaderShort(t *testing.T) {
	_, err := parseHeader([]byte{0x4e, 0x45, 0x53})
	assert.ErrorIs(t, err, ErrShortImage)
}

func TestParseHeaderBadMagic(t *testing.T) {
	b := make([]byte, 16)
	copy(b, "BOB\x1a")
	_, err := parseHeader(b)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestMirrorMode(t *testing.T) {
	cases := []struct {
		flags6 uint8
		want   Mirror
	}{
		{0x00, MirrorHorizontal},
		{0x01, MirrorVertical},
		{0x08, MirrorFourScreen},
		{0x09, MirrorFourScreen}, // four-screen bit wins regardless of bit 0
	}

	for _, tc := range cases {
		h := header{flags6: tc.flags6}
		assert.Equal(t, tc.want, h.mirrorMode())
	}
}

func TestHasTrainer(t *testing.T) {
	cases := []struct {
		flags6 uint8
		want   bool
	}{
		{0xFF, true},
		{0x04, true},
		{0x0A, false},
	}
	for _, tc := range cases {
		h := header{flags6: tc.flags6}
		assert.Equal(t, tc.want, h.hasTrainer())
	}
}

func TestHasPlayChoice(t *testing.T) {
	assert.True(t, header{flags7: 0x02}.hasPlayChoice())
	assert.False(t, header{flags7: 0x01}.hasPlayChoice())
}

func TestPRGRAMSize(t *testing.T) {
	cases := []struct {
		flags6, flags8 uint8
		wantHas        bool
		wantSize       uint8
	}{
		{0, 0, false, 0},
		{flag6BatteryBacked, 0, true, 1},
		{flag6BatteryBacked, 4, true, 4},
	}
	for _, tc := range cases {
		h := header{flags6: tc.flags6, flags8: tc.flags8}
		assert.Equal(t, tc.wantHas, h.hasPRGRAM())
		assert.Equal(t, tc.wantSize, h.prgRAMSize())
	}
}

func TestMapperNumber(t *testing.T) {
	h := header{flags6: 0x10, flags7: 0x20}
	assert.EqualValues(t, 0x21, h.mapperNumber())
}
