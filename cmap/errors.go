/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"golang.org/x/xerrors"
)

// Sentinel errors returned by the parsers. Callers compare against
// these with xerrors.Is; ParseText and ParseBinary never return a
// partial CMap alongside an error (spec.md §7).
var (
	// ErrBadCMap is returned for generic structural violations that
	// don't warrant their own sentinel.
	ErrBadCMap = xerrors.New("cmap: malformed CMap")

	// ErrRangeTooLarge is returned when a range directive or record's
	// high-low span exceeds maxMapRange.
	ErrRangeTooLarge = xerrors.New("cmap: range exceeds maximum size")

	// ErrUnexpectedEOF is returned when the binary stream runs out of
	// bytes in the middle of a record.
	ErrUnexpectedEOF = xerrors.New("cmap: unexpected end of bcmap stream")

	// ErrBadDataSize is returned when a bcmap record header declares a
	// dataSize that would overflow the fixed scratch buffers.
	ErrBadDataSize = xerrors.New("cmap: invalid bcmap data size")

	// ErrUnknownRecordType is returned for a bcmap record type outside
	// 0-5 and 7.
	ErrUnknownRecordType = xerrors.New("cmap: unknown bcmap record type")
)

// wrapf annotates err with a process name and formatted message,
// matching the teacher's golang.org/x/xerrors-based error wrapping
// convention (see extractor/text.go's use of xerrors.Is upstream).
func wrapf(err error, process, format string, args ...interface{}) error {
	return xerrors.Errorf(process+": "+format+": %w", append(args, err)...)
}
