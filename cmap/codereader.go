/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

// ReadCode consumes 1-4 bytes from data starting at offset to identify
// one input code, honoring cm's codespace ranges. It returns the
// accumulated code and the number of bytes consumed.
//
// If offset is at or past the end of data, or no codespace range
// matches after exhausting the available bytes (up to 4), ReadCode
// returns (0, 1): a single byte is consumed with a sentinel zero code so
// the caller can advance and continue (spec.md §4.2, §9).
func (cm *CMap) ReadCode(data []byte, offset int) (CharCode, int) {
	if offset >= len(data) {
		return 0, 1
	}

	var code CharCode
	limit := maxCodeLen
	if avail := len(data) - offset; avail < limit {
		limit = avail
	}
	for n := 0; n < limit; n++ {
		code = code<<8 | CharCode(data[offset+n])
		for _, r := range cm.codespaceRanges[n] {
			if code >= r.Low && code <= r.High {
				return code, n + 1
			}
		}
	}
	return 0, 1
}
