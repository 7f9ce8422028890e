/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// The bcmap format ships no public test fixtures (the real Adobe blobs
// are out of scope here; see DESIGN.md), so these tests build synthetic
// streams with the helpers below, each the structural inverse of the
// corresponding bcmapStream reader method.

func encodeNumber(n uint64) []byte {
	if n == 0 {
		return []byte{0}
	}
	var groups []byte
	for n > 0 {
		groups = append([]byte{byte(n & 0x7f)}, groups...)
		n >>= 7
	}
	for i := 0; i < len(groups)-1; i++ {
		groups[i] |= 0x80
	}
	return groups
}

func encodeSigned(v int32) []byte {
	var n uint64
	if v >= 0 {
		n = uint64(v) * 2
	} else {
		n = uint64(-v)*2 - 1
	}
	return encodeNumber(n)
}

// encodeHexRaw pads/truncates buf to size+1 bytes, the direct (non
// varint-encoded) wire form consumed by bcmapStream.readHex.
func encodeHexRaw(buf []byte, size int) []byte {
	out := make([]byte, size+1)
	copy(out, buf)
	return out
}

// encodeHexNumber produces the varint wire form bcmapStream.readHexNumber
// decodes back into the size+1 byte big-endian buffer buf.
func encodeHexNumber(buf []byte, size int) []byte {
	var v uint64
	for i := 0; i <= size; i++ {
		var b byte
		if i < len(buf) {
			b = buf[i]
		}
		v = v<<8 | uint64(b)
	}
	return encodeNumber(v)
}

func encodeString(s string) []byte {
	out := encodeNumber(uint64(len(s)))
	for i := 0; i < len(s); i++ {
		out = append(out, encodeNumber(uint64(s[i]))...)
	}
	return out
}

func buildRecord(typeVal byte, sequence bool, dataSize int, subitems int, body []byte) []byte {
	lead := typeVal<<5 | byte(dataSize)
	if sequence {
		lead |= 0x10
	}
	out := append([]byte{lead}, encodeNumber(uint64(subitems))...)
	return append(out, body...)
}

func TestParseBinaryHeaderVertical(t *testing.T) {
	stream := []byte{1} // header byte, vertical bit set, no records
	cm, err := ParseBinary(stream)
	require.NoError(t, err)
	require.True(t, cm.IsVertical())
}

func TestParseBinaryCodespaceRange(t *testing.T) {
	body := append(encodeHexRaw([]byte{0x00, 0x00}, 1), encodeHexNumber([]byte{0xFF, 0xFF}, 1)...)
	record := buildRecord(recCodespaceRange, false, 1, 1, body)
	stream := append([]byte{0}, record...)

	cm, err := ParseBinary(stream)
	require.NoError(t, err)

	code, n := cm.ReadCode([]byte{0x12, 0x34}, 0)
	require.Equal(t, 2, n)
	require.Equal(t, CharCode(0x1234), code)
}

func TestParseBinaryCIDCharIdempotent(t *testing.T) {
	body := append(encodeHexRaw([]byte{0x05}, 0), encodeNumber(77)...)
	record := buildRecord(recCIDChar, false, 0, 1, body)
	stream := append([]byte{0}, record...)

	cm, err := ParseBinary(stream)
	require.NoError(t, err)

	v, ok := cm.Lookup(5)
	require.True(t, ok)
	require.Equal(t, CharCode(77), v)

	_, ok = cm.Lookup(6)
	require.False(t, ok)
}

func TestParseBinaryCIDCharContinuation(t *testing.T) {
	var body []byte
	body = append(body, encodeHexRaw([]byte{0x05}, 0)...)
	body = append(body, encodeNumber(10)...)
	body = append(body, encodeHexNumber([]byte{0x00}, 0)...) // zero delta to char
	body = append(body, encodeSigned(0)...)                  // zero delta to code

	record := buildRecord(recCIDChar, false, 0, 2, body)
	stream := append([]byte{0}, record...)

	cm, err := ParseBinary(stream)
	require.NoError(t, err)

	v, ok := cm.Lookup(5)
	require.True(t, ok)
	require.Equal(t, CharCode(10), v)

	v, ok = cm.Lookup(6)
	require.True(t, ok)
	require.Equal(t, CharCode(11), v)
}

func TestParseBinaryCIDRangeSequence(t *testing.T) {
	var body []byte
	body = append(body, encodeHexRaw([]byte{0x10}, 0)...)
	body = append(body, encodeHexNumber([]byte{0x02}, 0)...) // end = start(0x10) + 0x02 = 0x12
	body = append(body, encodeNumber(100)...)
	body = append(body, encodeHexNumber([]byte{0x02}, 0)...) // second end = (prior end + 1)(0x13) + 0x02 = 0x15
	body = append(body, encodeNumber(200)...)

	record := buildRecord(recCIDRange, true, 0, 2, body)
	stream := append([]byte{0}, record...)

	cm, err := ParseBinary(stream)
	require.NoError(t, err)

	for code, want := CharCode(0x10), CharCode(100); code <= 0x12; code, want = code+1, want+1 {
		v, ok := cm.Lookup(code)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	for code, want := CharCode(0x13), CharCode(200); code <= 0x15; code, want = code+1, want+1 {
		v, ok := cm.Lookup(code)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestParseBinaryBfRange(t *testing.T) {
	var body []byte
	body = append(body, encodeHexRaw([]byte{0x00, 0x06}, ucs2Size)...)
	body = append(body, encodeHexNumber([]byte{0x00, 0x05}, ucs2Size)...) // end = 0x0006+0x0005 = 0x000B
	body = append(body, encodeHexRaw([]byte{0x00}, 0)...)

	record := buildRecord(recBfRange, false, 0, 1, body)
	stream := append([]byte{0}, record...)

	cm, err := ParseBinary(stream)
	require.NoError(t, err)

	v, ok := cm.Lookup(0x06)
	require.True(t, ok)
	require.Equal(t, CharCode(0), v)

	v, ok = cm.Lookup(0x0B)
	require.True(t, ok)
	require.Equal(t, CharCode(5), v)
}

func TestParseBinaryMetadataUseCMap(t *testing.T) {
	lead := byte(recMetadata<<5) | metaUseCMap
	record := append([]byte{lead}, encodeString("90ms-RKSJ-H")...)
	stream := append([]byte{0}, record...)

	cm, err := ParseBinary(stream)
	require.NoError(t, err)
	require.Equal(t, "90ms-RKSJ-H", cm.UseCMap())
}

func TestParseBinaryMetadataComment(t *testing.T) {
	lead := byte(recMetadata<<5) | metaComment
	record := append([]byte{lead}, encodeString("a comment")...)
	stream := append([]byte{0}, record...)

	cm, err := ParseBinary(stream)
	require.NoError(t, err)
	require.Equal(t, "", cm.UseCMap())
}

func TestParseBinaryUnknownRecordType(t *testing.T) {
	lead := byte(6 << 5) // type 6 is not assigned
	stream := []byte{0, lead, 0} // header, lead byte, zero subitem count

	cm, err := ParseBinary(stream)
	require.Error(t, err)
	require.Nil(t, cm)
}

func TestParseBinaryTruncatedHeader(t *testing.T) {
	cm, err := ParseBinary(nil)
	require.Error(t, err)
	require.Nil(t, cm)
}

func TestParseBinaryTruncatedRecord(t *testing.T) {
	// codespacerange record lead byte + subitem count, but no payload.
	stream := []byte{0, recCodespaceRange << 5, 1}

	cm, err := ParseBinary(stream)
	require.Error(t, err)
	require.Nil(t, cm)
}
