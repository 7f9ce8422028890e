/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package bitwise

// ByteReader is the interface that allows to read single bytes and
// track a position in the underlying buffer.
type ByteReader interface {
	// ReadByte returns the next byte, or ok=false at end of stream.
	ReadByte() (b byte, ok bool)

	// Pos returns the current offset into the buffer.
	Pos() int

	// Len returns the number of unread bytes remaining.
	Len() int
}
