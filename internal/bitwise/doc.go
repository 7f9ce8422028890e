/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package bitwise provides a small sequential, forward-only byte cursor
// over an in-memory buffer: read one byte at a time and track position.
// It underlies the bcmap binary decoder's base-128 varint and hex-delta
// primitives, none of which ever need to split a byte into individual
// bits or back up over already-read input.
package bitwise
