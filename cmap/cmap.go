/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package cmap implements a PDF Character Map (CMap) engine: translating
// raw byte sequences from a PDF text-showing operator into Character
// Identifiers (CIDs) or Unicode scalar values. It accepts CMaps in
// either their textual (PostScript-subset) or binary ("bcmap")
// representation, and supplies the built-in Identity-H / Identity-V
// maps without parsing any input.
package cmap

import (
	"github.com/unidoc/pdfcmap/common"
)

// CharCode is a packed, big-endian 1-4 byte input code, or an output
// value (a CID or a Unicode scalar). Both share the same 32-bit space
// per spec.md §3.
type CharCode uint32

// CodeRange is an inclusive (Low, High) bound for codes of a particular
// byte length.
type CodeRange struct {
	Low  CharCode
	High CharCode
}

// CMap is the in-memory value table: codespace ranges plus a mapping
// from input code to output value. A CMap is built once by a parser and
// is safe for concurrent reads thereafter (spec.md §3, §5).
type CMap struct {
	name     string
	vertical bool

	// codespaceRanges is indexed by (byte length - 1): index 0 holds
	// 1-byte codespace ranges, index 3 holds 4-byte ranges. Order within
	// each slice is insertion order, which is observable via ReadCode's
	// tie-break rule (spec.md §4.2).
	codespaceRanges [maxCodeLen][]CodeRange

	table map[CharCode]CharCode

	// useCMap records the usecmap target name encountered while
	// parsing, if any. The engine does not resolve CMap inheritance
	// (spec.md §9); this is recorded so a future caller could.
	useCMap string
}

// New returns an empty CMap: no codespace ranges, an empty map, no
// name, horizontal writing mode.
func New() *CMap {
	return &CMap{table: make(map[CharCode]CharCode)}
}

// IdentityH returns the built-in Identity-H CMap: horizontal writing
// mode, a single 2-byte codespace range covering 0..=0xFFFF, and an
// empty map (so Lookup falls back to the identity rule).
func IdentityH() *CMap {
	cm := New()
	cm.name = "Identity-H"
	cm.vertical = false
	cm.AddCodespaceRange(2, 0, 0xFFFF)
	return cm
}

// IdentityV returns the built-in Identity-V CMap: same as IdentityH but
// with vertical writing mode set.
func IdentityV() *CMap {
	cm := New()
	cm.name = "Identity-V"
	cm.vertical = true
	cm.AddCodespaceRange(2, 0, 0xFFFF)
	return cm
}

// Name returns the CMap's declared name.
func (cm *CMap) Name() string {
	return cm.name
}

// IsVertical reports the CMap's writing mode.
func (cm *CMap) IsVertical() bool {
	return cm.vertical
}

// UseCMap returns the usecmap target name recorded while parsing, or
// the empty string if none was encountered (spec.md §9).
func (cm *CMap) UseCMap() string {
	return cm.useCMap
}

// AddCodespaceRange appends (low, high) to the codespace sequence for
// n-byte codes. Calls with n outside 1..=4 are silently ignored
// (spec.md §4.1).
func (cm *CMap) AddCodespaceRange(n int, low, high CharCode) {
	if n < 1 || n > maxCodeLen {
		common.Log.Debug("AddCodespaceRange: ignoring out-of-range byte length %d", n)
		return
	}
	cm.codespaceRanges[n-1] = append(cm.codespaceRanges[n-1], CodeRange{Low: low, High: high})
}

// isIdentityCMap reports whether cm is one of the built-in identity
// CMaps with no overriding entries (spec.md §3).
func (cm *CMap) isIdentityCMap() bool {
	return (cm.name == "Identity-H" || cm.name == "Identity-V") && len(cm.table) == 0
}

// Lookup returns the value mapped to code. If code has no entry and cm
// is an (unmodified) identity CMap, code itself is returned for
// code <= 0xFFFF. Lookup never fails; the second return value reports
// whether a value was produced (spec.md §4.1, §7).
func (cm *CMap) Lookup(code CharCode) (CharCode, bool) {
	if v, ok := cm.table[code]; ok {
		return v, true
	}
	if cm.isIdentityCMap() && code <= 0xFFFF {
		return code, true
	}
	return 0, false
}

// MapOne sets the mapping for a single source code, overwriting any
// prior value (spec.md §4.1).
func (cm *CMap) MapOne(src, dst CharCode) {
	cm.table[src] = dst
}

// MapCIDRange maps every code in [low, high] to consecutive CIDs
// starting at dstLow. It fails (returning false, leaving cm unchanged)
// when high-low exceeds the maximum range size (spec.md §3, §4.1).
func (cm *CMap) MapCIDRange(low, high, dstLow CharCode) bool {
	if high < low || high-low > maxMapRange {
		common.Log.Debug("MapCIDRange: range too large low=0x%x high=0x%x", low, high)
		return false
	}
	dst := dstLow
	for src := low; ; src++ {
		cm.table[src] = dst
		dst++
		if src == high {
			break
		}
	}
	return true
}

// MapBfRange maps every code in [low, high] to the first code point of
// dstLow, incrementing dstLow as a big-endian arbitrary-precision
// integer (with carry) after each step. A single-byte string that
// overflows 0xFF stops incrementing; every subsequent code then maps to
// the same (saturated) value (spec.md §4.1, §4.5). It fails when
// high-low exceeds the maximum range size.
func (cm *CMap) MapBfRange(low, high CharCode, dstLow []byte) bool {
	if high < low || high-low > maxMapRange {
		common.Log.Debug("MapBfRange: range too large low=0x%x high=0x%x", low, high)
		return false
	}
	cur := append([]byte(nil), dstLow...)
	for src := low; ; src++ {
		cm.table[src] = bfStringValue(cur)
		incBfString(cur)
		if src == high {
			break
		}
	}
	return true
}

// MapBfRangeToArray maps each code in [low, high] to the corresponding
// entry of values, stopping early if values is shorter than the range
// (spec.md §4.1).
func (cm *CMap) MapBfRangeToArray(low, high CharCode, values []CharCode) {
	for i := 0; low+CharCode(i) <= high && i < len(values); i++ {
		cm.table[low+CharCode(i)] = values[i]
	}
}

// bfStringValue returns the numeric code point of the first byte of s,
// or 0 for an empty string (spec.md §4.5).
func bfStringValue(s []byte) CharCode {
	if len(s) == 0 {
		return 0
	}
	return CharCode(s[0])
}

// incBfString increments s in place as a big-endian arbitrary-precision
// integer with carry from the rightmost byte. A single-byte string that
// is already 0xFF is left unchanged, matching spec.md §4.1's carry rule.
func incBfString(s []byte) {
	if len(s) == 0 {
		return
	}
	if len(s) == 1 {
		if s[0] != 0xFF {
			s[0]++
		}
		return
	}
	for i := len(s) - 1; i >= 0; i-- {
		s[i]++
		if s[i] != 0 {
			return
		}
	}
}
