package cdpregap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rabidaudio/cdpregap"
)

func TestDecodeSubchannelQ_fieldLayout(t *testing.T) {
	raw := []byte{
		0x41,       // control=4, adr=1
		0x02,       // track 2 (BCD)
		0x00,       // index 0
		0x01, 0x30, 0x12, // min=1 sec=30 frame=12 (BCD)
		0x00,       // reserved zero
		0x03, 0x45, 0x67, // amin=3 asec=45 aframe=67 (BCD)
		0x00, 0x00, // crc placeholder, not checked by this test
		0xAA, 0xBB, 0xCC, 0xDD, // reserved
	}
	q, err := cdpregap.DecodeSubchannelQ(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 4, q.Control)
	assert.EqualValues(t, 1, q.ADR)
	assert.EqualValues(t, 2, q.Track)
	assert.EqualValues(t, 0, q.Index)
	assert.EqualValues(t, 1, q.Min)
	assert.EqualValues(t, 30, q.Sec)
	assert.EqualValues(t, 12, q.Frame)
	assert.EqualValues(t, 3, q.AMin)
	assert.EqualValues(t, 45, q.ASec)
	assert.EqualValues(t, 67, q.AFrame)
}

func TestBCD_decode_legalAndIllegal(t *testing.T) {
	raw := make([]byte, cdpregap.SubqLen)
	raw[1] = 0x99 // legal BCD: 10*9+9 = 99
	q, err := cdpregap.DecodeSubchannelQ(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 99, q.Track)

	raw[1] = 0xA5 // illegal BCD range, passes through unchanged
	q, err = cdpregap.DecodeSubchannelQ(raw)
	require.NoError(t, err)
	assert.EqualValues(t, 0xA5, q.Track)
}

func TestDecodeSubchannelQ_shortBuffer(t *testing.T) {
	_, err := cdpregap.DecodeSubchannelQ(make([]byte, 4))
	assert.Error(t, err)
}

func TestVerifySubchannelQ_roundTrip(t *testing.T) {
	q := cdpregap.SubchannelQ{
		Control: 4, ADR: 1,
		Track: 3, Index: 1,
		Min: 2, Sec: 3, Frame: 4,
		AMin: 5, ASec: 6, AFrame: 7,
	}
	raw := cdpregap.EncodeSubchannelQ(q)
	assert.True(t, cdpregap.VerifySubchannelQ(raw))

	decoded, err := cdpregap.DecodeSubchannelQ(raw)
	require.NoError(t, err)
	assert.Equal(t, q.Control, decoded.Control)
	assert.Equal(t, q.ADR, decoded.ADR)
	assert.Equal(t, q.Track, decoded.Track)
	assert.Equal(t, q.Index, decoded.Index)
}

// Property: for any synthesized record with legal BCD-range fields,
// encode then decode round-trips and the CRC verifies.
func TestProperty_encodeDecodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := cdpregap.SubchannelQ{
			Control: byte(rapid.IntRange(0, 15).Draw(t, "control")),
			ADR:     byte(rapid.IntRange(0, 15).Draw(t, "adr")),
			Track:   cdpregap.TrackNumber(rapid.IntRange(0, 99).Draw(t, "track")),
			Index:   byte(rapid.IntRange(0, 99).Draw(t, "index")),
			Min:     byte(rapid.IntRange(0, 99).Draw(t, "min")),
			Sec:     byte(rapid.IntRange(0, 59).Draw(t, "sec")),
			Frame:   byte(rapid.IntRange(0, 74).Draw(t, "frame")),
			AMin:    byte(rapid.IntRange(0, 99).Draw(t, "amin")),
			ASec:    byte(rapid.IntRange(0, 59).Draw(t, "asec")),
			AFrame:  byte(rapid.IntRange(0, 74).Draw(t, "aframe")),
		}
		raw := cdpregap.EncodeSubchannelQ(q)
		require.True(t, cdpregap.VerifySubchannelQ(raw))
		// EncodeSubchannelQ computes the CRC itself; the record that
		// round-trips carries that verified CRC.
		q.CRC = uint16(raw[10])<<8 | uint16(raw[11])

		decoded, err := cdpregap.DecodeSubchannelQ(raw)
		require.NoError(t, err)
		assert.Equal(t, q, decoded)
	})
}

// Property: flipping any single bit in bytes 0-9 breaks CRC
// verification (probabilistic for CRC-16, but overwhelmingly likely).
func TestProperty_singleBitFlipBreaksCRC(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := cdpregap.SubchannelQ{
			Control: byte(rapid.IntRange(0, 15).Draw(t, "control")),
			ADR:     byte(rapid.IntRange(0, 15).Draw(t, "adr")),
			Track:   cdpregap.TrackNumber(rapid.IntRange(0, 99).Draw(t, "track")),
			Index:   byte(rapid.IntRange(0, 99).Draw(t, "index")),
			Min:     byte(rapid.IntRange(0, 99).Draw(t, "min")),
			Sec:     byte(rapid.IntRange(0, 59).Draw(t, "sec")),
			Frame:   byte(rapid.IntRange(0, 74).Draw(t, "frame")),
			AMin:    byte(rapid.IntRange(0, 99).Draw(t, "amin")),
			ASec:    byte(rapid.IntRange(0, 59).Draw(t, "asec")),
			AFrame:  byte(rapid.IntRange(0, 74).Draw(t, "aframe")),
		}
		raw := cdpregap.EncodeSubchannelQ(q)
		require.True(t, cdpregap.VerifySubchannelQ(raw))

		byteIdx := rapid.IntRange(0, 9).Draw(t, "byteIdx")
		bitIdx := rapid.IntRange(0, 7).Draw(t, "bitIdx")
		raw[byteIdx] ^= 1 << uint(bitIdx)

		assert.False(t, cdpregap.VerifySubchannelQ(raw))
	})
}

// Property: legal BCD nibbles decode to their binary value directly.
func TestProperty_bcdDecodeRule(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := byte(rapid.IntRange(0, 0x99).Draw(t, "legal"))
		// restrict to legal BCD nibbles (0-9 in each nibble)
		hi := x / 11 % 10
		lo := x % 10
		legal := hi<<4 | lo
		raw := make([]byte, cdpregap.SubqLen)
		raw[1] = legal
		q, err := cdpregap.DecodeSubchannelQ(raw)
		require.NoError(t, err)
		assert.EqualValues(t, 10*int(hi)+int(lo), q.Track)

		illegal := byte(0xA0 + rapid.IntRange(0, 0x5F).Draw(t, "illegalOffset"))
		raw[1] = illegal
		q, err = cdpregap.DecodeSubchannelQ(raw)
		require.NoError(t, err)
		assert.EqualValues(t, illegal, q.Track)
	})
}
