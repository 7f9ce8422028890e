/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"github.com/unidoc/pdfcmap/internal/bitwise"
)

// bcmap record types, packed into the top 3 bits of each record's lead
// byte (spec.md §4.4).
const (
	recCodespaceRange = 0
	recNotDefRange    = 1
	recCIDChar        = 2
	recCIDRange       = 3
	recBfChar         = 4
	recBfRange        = 5
	recMetadata       = 7
)

// bcmap metadata sub-types, packed into the low 5 bits of a type-7
// record's lead byte.
const (
	metaComment = 0
	metaUseCMap = 1
)

// ucs2Size is the fixed one-byte-encoded-length-minus-one used for the
// UCS-2 half of bfchar/bfrange records (spec.md §4.4).
const ucs2Size = 1

// ParseBinary decodes a bcmap stream into a CMap. The format has no
// published specification; this decoder is ported structurally from the
// reference reader in hayro-interpret (see DESIGN.md), since none of the
// Go example code implements it.
//
// ParseBinary fails closed: any truncated record or unknown record type
// aborts the whole decode and returns a nil CMap (spec.md §4.4, §7).
func ParseBinary(data []byte) (*CMap, error) {
	s := newBcmapStream(data)

	header, ok := s.readByte()
	if !ok {
		return nil, wrapf(ErrUnexpectedEOF, "ParseBinary", "reading header byte")
	}

	cm := New()
	cm.vertical = header&1 != 0

	var start, end, char, charCode, tmp [maxHexSize + 1]byte

	for {
		b, ok := s.readByte()
		if !ok {
			break // clean EOF between records
		}

		typeVal := (b >> 5) & 0x7
		if typeVal == recMetadata {
			if err := decodeMetadata(s, cm, b&0x1f); err != nil {
				return nil, err
			}
			continue
		}

		sequence := b&0x10 != 0
		dataSize := int(b & 15)
		if dataSize+1 > maxHexSize {
			return nil, wrapf(ErrBadDataSize, "ParseBinary", "dataSize=%d", dataSize)
		}

		subitems, err := s.readNumber()
		if err != nil {
			return nil, wrapf(err, "ParseBinary", "reading subitem count")
		}

		switch typeVal {
		case recCodespaceRange:
			err = decodeCodespaceRange(s, cm, dataSize, int(subitems), start[:], end[:])
		case recNotDefRange:
			err = decodeNotDefRange(s, dataSize, int(subitems), start[:], end[:])
		case recCIDChar:
			err = decodeCIDChar(s, cm, dataSize, int(subitems), sequence, char[:], tmp[:])
		case recCIDRange:
			err = decodeCIDRange(s, cm, dataSize, int(subitems), sequence, start[:], end[:])
		case recBfChar:
			err = decodeBfChar(s, cm, dataSize, int(subitems), sequence, char[:], charCode[:], tmp[:])
		case recBfRange:
			err = decodeBfRange(s, cm, dataSize, int(subitems), sequence, start[:], end[:], charCode[:])
		default:
			err = wrapf(ErrUnknownRecordType, "ParseBinary", "type=%d", typeVal)
		}
		if err != nil {
			return nil, err
		}
	}

	return cm, nil
}

// decodeMetadata handles a type-7 record: a comment (discarded) or a
// usecmap target name, recorded the same way the textual parser records
// it (spec.md §4.4, §9).
func decodeMetadata(s *bcmapStream, cm *CMap, subtype byte) error {
	switch subtype {
	case metaComment:
		if _, err := s.readString(); err != nil {
			return wrapf(err, "ParseBinary", "metadata comment")
		}
	case metaUseCMap:
		name, err := s.readString()
		if err != nil {
			return wrapf(err, "ParseBinary", "metadata usecmap")
		}
		cm.useCMap = name
	}
	return nil
}

func decodeCodespaceRange(s *bcmapStream, cm *CMap, dataSize, subitems int, start, end []byte) error {
	if err := s.readHex(start, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "codespacerange start")
	}
	if err := s.readHexNumber(end, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "codespacerange end")
	}
	addHex(end, start, dataSize)
	cm.AddCodespaceRange(dataSize+1, hexToInt(start, dataSize), hexToInt(end, dataSize))

	for i := 1; i < subitems; i++ {
		incHex(end, dataSize)
		if err := s.readHexNumber(start, dataSize); err != nil {
			return wrapf(err, "ParseBinary", "codespacerange start[%d]", i)
		}
		addHex(start, end, dataSize)
		if err := s.readHexNumber(end, dataSize); err != nil {
			return wrapf(err, "ParseBinary", "codespacerange end[%d]", i)
		}
		addHex(end, start, dataSize)
		cm.AddCodespaceRange(dataSize+1, hexToInt(start, dataSize), hexToInt(end, dataSize))
	}
	return nil
}

// decodeNotDefRange decodes an unmapped-range record. Its spans are
// discarded: the value table has no concept of an explicit "not defined"
// entry distinct from an absent one (spec.md §3).
func decodeNotDefRange(s *bcmapStream, dataSize, subitems int, start, end []byte) error {
	if err := s.readHex(start, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "notdefrange start")
	}
	if err := s.readHexNumber(end, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "notdefrange end")
	}
	addHex(end, start, dataSize)
	if _, err := s.readNumber(); err != nil {
		return wrapf(err, "ParseBinary", "notdefrange code")
	}

	for i := 1; i < subitems; i++ {
		incHex(end, dataSize)
		if err := s.readHexNumber(start, dataSize); err != nil {
			return wrapf(err, "ParseBinary", "notdefrange start[%d]", i)
		}
		addHex(start, end, dataSize)
		if err := s.readHexNumber(end, dataSize); err != nil {
			return wrapf(err, "ParseBinary", "notdefrange end[%d]", i)
		}
		addHex(end, start, dataSize)
		if _, err := s.readNumber(); err != nil {
			return wrapf(err, "ParseBinary", "notdefrange code[%d]", i)
		}
	}
	return nil
}

func decodeCIDChar(s *bcmapStream, cm *CMap, dataSize, subitems int, sequence bool, char, tmp []byte) error {
	if err := s.readHex(char, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "cidchar char")
	}
	code, err := s.readNumber()
	if err != nil {
		return wrapf(err, "ParseBinary", "cidchar code")
	}
	cm.MapOne(hexToInt(char, dataSize), CharCode(code))

	for i := 1; i < subitems; i++ {
		incHex(char, dataSize)
		if !sequence {
			if err := s.readHexNumber(tmp, dataSize); err != nil {
				return wrapf(err, "ParseBinary", "cidchar delta char[%d]", i)
			}
			addHex(char, tmp, dataSize)
		}
		delta, err := s.readSigned()
		if err != nil {
			return wrapf(err, "ParseBinary", "cidchar delta[%d]", i)
		}
		code = uint32(int64(code) + int64(delta) + 1)
		cm.MapOne(hexToInt(char, dataSize), CharCode(code))
	}
	return nil
}

func decodeCIDRange(s *bcmapStream, cm *CMap, dataSize, subitems int, sequence bool, start, end []byte) error {
	if err := s.readHex(start, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "cidrange start")
	}
	if err := s.readHexNumber(end, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "cidrange end")
	}
	addHex(end, start, dataSize)
	code, err := s.readNumber()
	if err != nil {
		return wrapf(err, "ParseBinary", "cidrange code")
	}
	if !cm.MapCIDRange(hexToInt(start, dataSize), hexToInt(end, dataSize), CharCode(code)) {
		return ErrRangeTooLarge
	}

	for i := 1; i < subitems; i++ {
		incHex(end, dataSize)
		if !sequence {
			if err := s.readHexNumber(start, dataSize); err != nil {
				return wrapf(err, "ParseBinary", "cidrange start[%d]", i)
			}
			addHex(start, end, dataSize)
		} else {
			copy(start, end)
		}
		if err := s.readHexNumber(end, dataSize); err != nil {
			return wrapf(err, "ParseBinary", "cidrange end[%d]", i)
		}
		addHex(end, start, dataSize)
		code, err = s.readNumber()
		if err != nil {
			return wrapf(err, "ParseBinary", "cidrange code[%d]", i)
		}
		if !cm.MapCIDRange(hexToInt(start, dataSize), hexToInt(end, dataSize), CharCode(code)) {
			return ErrRangeTooLarge
		}
	}
	return nil
}

func decodeBfChar(s *bcmapStream, cm *CMap, dataSize, subitems int, sequence bool, char, charCode, tmp []byte) error {
	if err := s.readHex(char, ucs2Size); err != nil {
		return wrapf(err, "ParseBinary", "bfchar char")
	}
	if err := s.readHex(charCode, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "bfchar dst")
	}
	cm.MapOne(hexToInt(char, ucs2Size), bfStringValue(hexToStr(charCode, dataSize)))

	for i := 1; i < subitems; i++ {
		incHex(char, ucs2Size)
		if !sequence {
			if err := s.readHexNumber(tmp, ucs2Size); err != nil {
				return wrapf(err, "ParseBinary", "bfchar delta char[%d]", i)
			}
			addHex(char, tmp, ucs2Size)
		}
		incHex(charCode, dataSize)
		if err := s.readHexSigned(tmp, dataSize); err != nil {
			return wrapf(err, "ParseBinary", "bfchar delta dst[%d]", i)
		}
		addHex(charCode, tmp, dataSize)
		cm.MapOne(hexToInt(char, ucs2Size), bfStringValue(hexToStr(charCode, dataSize)))
	}
	return nil
}

func decodeBfRange(s *bcmapStream, cm *CMap, dataSize, subitems int, sequence bool, start, end, charCode []byte) error {
	if err := s.readHex(start, ucs2Size); err != nil {
		return wrapf(err, "ParseBinary", "bfrange start")
	}
	if err := s.readHexNumber(end, ucs2Size); err != nil {
		return wrapf(err, "ParseBinary", "bfrange end")
	}
	addHex(end, start, ucs2Size)
	if err := s.readHex(charCode, dataSize); err != nil {
		return wrapf(err, "ParseBinary", "bfrange dst")
	}
	if !cm.MapBfRange(hexToInt(start, ucs2Size), hexToInt(end, ucs2Size), hexToStr(charCode, dataSize)) {
		return ErrRangeTooLarge
	}

	for i := 1; i < subitems; i++ {
		incHex(end, ucs2Size)
		if !sequence {
			if err := s.readHexNumber(start, ucs2Size); err != nil {
				return wrapf(err, "ParseBinary", "bfrange start[%d]", i)
			}
			addHex(start, end, ucs2Size)
		} else {
			copy(start, end)
		}
		if err := s.readHexNumber(end, ucs2Size); err != nil {
			return wrapf(err, "ParseBinary", "bfrange end[%d]", i)
		}
		addHex(end, start, ucs2Size)
		if err := s.readHex(charCode, dataSize); err != nil {
			return wrapf(err, "ParseBinary", "bfrange dst[%d]", i)
		}
		if !cm.MapBfRange(hexToInt(start, ucs2Size), hexToInt(end, ucs2Size), hexToStr(charCode, dataSize)) {
			return ErrRangeTooLarge
		}
	}
	return nil
}

// hexToInt packs the big-endian buffer a[0..=size] into a CharCode
// (spec.md §4.4).
func hexToInt(a []byte, size int) CharCode {
	var n CharCode
	for i := 0; i <= size; i++ {
		if i < len(a) {
			n = n<<8 | CharCode(a[i])
		}
	}
	return n
}

// hexToStr returns the raw bytes a[0..=size] as a destination string for
// MapBfRange/MapOne (spec.md §4.4, §4.5).
func hexToStr(a []byte, size int) []byte {
	n := size + 1
	if n > len(a) {
		n = len(a)
	}
	out := make([]byte, n)
	copy(out, a[:n])
	return out
}

// addHex adds b into a in place, both treated as big-endian
// arbitrary-precision integers of size+1 bytes, discarding any overflow
// carry out of the top byte (spec.md §4.4).
func addHex(a, b []byte, size int) {
	var c uint32
	for i := size; i >= 0; i-- {
		if i < len(a) && i < len(b) {
			c += uint32(a[i]) + uint32(b[i])
			a[i] = byte(c & 0xFF)
			c >>= 8
		}
	}
}

// incHex increments a in place by one, as a big-endian
// arbitrary-precision integer of size+1 bytes (spec.md §4.4).
func incHex(a []byte, size int) {
	c := uint32(1)
	for i := size; i >= 0 && c > 0; i-- {
		if i < len(a) {
			c += uint32(a[i])
			a[i] = byte(c & 0xFF)
			c >>= 8
		}
	}
}

// bcmapStream is the byte-oriented cursor over a bcmap blob: a base-128
// varint reader layered on top of internal/bitwise.Reader, plus the
// multi-precision hex helpers unique to this wire format (spec.md §4.4).
type bcmapStream struct {
	r       *bitwise.Reader
	scratch []byte
}

func newBcmapStream(data []byte) *bcmapStream {
	return &bcmapStream{r: bitwise.NewReader(data)}
}

func (s *bcmapStream) readByte() (byte, bool) {
	return s.r.ReadByte()
}

// readNumber reads a base-128 variable-length unsigned integer: each
// byte contributes its low 7 bits, most-significant group first: a
// cleared high bit marks the final byte (spec.md §4.4).
func (s *bcmapStream) readNumber() (uint32, error) {
	var n uint32
	for {
		b, ok := s.readByte()
		if !ok {
			return 0, ErrUnexpectedEOF
		}
		n = n<<7 | uint32(b&0x7f)
		if b&0x80 == 0 {
			return n, nil
		}
	}
}

// readSigned reads a readNumber value n and undoes its zig-zag encoding:
// an even n decodes to n>>1, an odd n to ^(n>>1), i.e. -(n>>1)-1
// (spec.md §4.4).
func (s *bcmapStream) readSigned() (int32, error) {
	n, err := s.readNumber()
	if err != nil {
		return 0, err
	}
	if n&1 != 0 {
		return ^int32(n >> 1), nil
	}
	return int32(n >> 1), nil
}

// readHex copies size+1 raw bytes verbatim into num (spec.md §4.4).
func (s *bcmapStream) readHex(num []byte, size int) error {
	if s.r.Len() < size+1 {
		return wrapf(ErrUnexpectedEOF, "bcmapStream.readHex", "at offset %d", s.r.Pos())
	}
	for i := 0; i <= size; i++ {
		b, _ := s.readByte()
		if i < len(num) {
			num[i] = b
		}
	}
	return nil
}

// readHexNumber reads a base-128 varint whose digits are reassembled
// into a size+1 byte big-endian buffer, 7 bits at a time starting from
// the least significant end: the inverse of treating the buffer as one
// large base-128 number (spec.md §4.4).
func (s *bcmapStream) readHexNumber(num []byte, size int) error {
	s.scratch = s.scratch[:0]
	for {
		b, ok := s.readByte()
		if !ok {
			return ErrUnexpectedEOF
		}
		s.scratch = append(s.scratch, b&0x7f)
		if b&0x80 == 0 {
			break
		}
	}

	var buffer uint32
	bufferSize := 0
	for i := size; i >= 0; i-- {
		for bufferSize < 8 && len(s.scratch) > 0 {
			last := len(s.scratch) - 1
			val := s.scratch[last]
			s.scratch = s.scratch[:last]
			buffer |= uint32(val) << bufferSize
			bufferSize += 7
		}
		if i < len(num) {
			num[i] = byte(buffer & 0xFF)
		}
		buffer >>= 8
		if bufferSize >= 8 {
			bufferSize -= 8
		} else {
			bufferSize = 0
		}
	}
	return nil
}

// readHexSigned reads a readHexNumber value whose lowest bit (of byte
// size) is a zig-zag sign flag applied across the whole buffer (spec.md
// §4.4).
func (s *bcmapStream) readHexSigned(num []byte, size int) error {
	if err := s.readHexNumber(num, size); err != nil {
		return err
	}
	var sign byte
	if size < len(num) && num[size]&1 != 0 {
		sign = 0xFF
	}
	var c uint32
	for i := 0; i <= size; i++ {
		if i < len(num) {
			c = (c&1)<<8 | uint32(num[i])
			num[i] = byte((c >> 1) ^ uint32(sign))
		}
	}
	return nil
}

// readString reads a readNumber length prefix followed by that many
// readNumber-encoded byte values, used for the type-7 metadata records
// (spec.md §4.4).
func (s *bcmapStream) readString() (string, error) {
	n, err := s.readNumber()
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := s.readNumber()
		if err != nil {
			return "", err
		}
		if v <= 0xFF {
			buf = append(buf, byte(v))
		}
	}
	return string(buf), nil
}
