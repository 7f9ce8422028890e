/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

// ParseText parses a textual (PostScript-subset) CMap and returns the
// resulting value table. It accepts surrounding PDF CMap boilerplate
// (CIDInit findresource begin, dict delimiters, begin/end/def/...) by
// ignoring it (spec.md §4.3, §6).
//
// ParseText never returns a partial CMap: a directive-less input yields
// an empty CMap, and any hard structural failure (currently: a
// begincidrange/beginbfrange whose span exceeds the maximum range size,
// a begincodespacerange entry with an empty high bound, or a malformed
// beginbfrange third token) returns a nil CMap and a non-nil error
// (spec.md §7).
//
// Grounded on the teacher's internal/cmap/cmap_parser.go (directive
// dispatch loop shape) and hayro-interpret's parse_cmap (the exact
// directive semantics spec.md §4.3 describes, since the teacher's
// parser targets a richer dual-map data model out of scope here; see
// DESIGN.md).
func ParseText(data []byte) (*CMap, error) {
	cm := New()
	tzr := newTokenizer(data)
	var prevName string

	for {
		tk := tzr.nextToken()
		switch tk.kind {
		case tokEOF:
			return cm, nil

		case tokName:
			switch tk.Text {
			case kwCMapName:
				parseCMapNameDirective(tzr, cm)
			case kwWMode:
				parseWModeDirective(tzr, cm)
			}
			prevName = tk.Text

		case tokCommand:
			switch tk.Text {
			case kwBeginCodespaceRange:
				if err := parseCodespaceRange(tzr, cm); err != nil {
					return nil, err
				}
			case kwBeginBfChar:
				parseBfChar(tzr, cm)
			case kwBeginBfRange:
				if err := parseBfRange(tzr, cm); err != nil {
					return nil, err
				}
			case kwBeginCIDChar:
				parseCIDChar(tzr, cm)
			case kwBeginCIDRange:
				if err := parseCIDRange(tzr, cm); err != nil {
					return nil, err
				}
			case kwEndCMap:
				return cm, nil
			case kwUseCMap:
				if prevName != "" {
					cm.useCMap = prevName
				}
			default:
				// def, dict, begin, end, findresource, <<, >>, pop,
				// currentdict, defineresource, and any other unrecognized
				// command: tolerated noise (spec.md §4.3, §7).
			}

		default:
			// Standalone Integer/String/HexString tokens outside any
			// recognized directive: tolerated noise.
		}
	}
}

// packBytes builds a 32-bit code by left-shift-by-8 accumulation of each
// byte, masking to the low 8 bits (spec.md §4.3's pack()).
func packBytes(b []byte) CharCode {
	var code CharCode
	for _, v := range b {
		code = code<<8 | CharCode(v&0xFF)
	}
	return code
}

func parseCMapNameDirective(tzr *tokenizer, cm *CMap) {
	tk := tzr.nextToken()
	if tk.kind == tokName {
		cm.name = tk.Text
	}
}

func parseWModeDirective(tzr *tokenizer, cm *CMap) {
	tk := tzr.nextToken()
	if tk.kind == tokInteger {
		cm.vertical = tk.Integer != 0
	}
}

// parseCodespaceRange implements the begincodespacerange directive
// (spec.md §4.3).
func parseCodespaceRange(tzr *tokenizer, cm *CMap) error {
	for {
		low := tzr.nextToken()
		if low.kind == tokEOF {
			return nil
		}
		if low.isCommand(kwEndCodespaceRange) {
			return nil
		}
		if len(low.Bytes) == 0 {
			// An entry with an empty low bound is skipped whole: its high
			// bound is read and discarded.
			if high := tzr.nextToken(); high.kind == tokEOF || high.isCommand(kwEndCodespaceRange) {
				return nil
			}
			continue
		}

		high := tzr.nextToken()
		if high.kind == tokEOF {
			return nil
		}
		if len(high.Bytes) == 0 {
			return ErrBadCMap
		}

		cm.AddCodespaceRange(len(high.Bytes), packBytes(low.Bytes), packBytes(high.Bytes))
	}
}

// parseBfChar implements the beginbfchar directive (spec.md §4.3, §4.5).
func parseBfChar(tzr *tokenizer, cm *CMap) {
	for {
		src := tzr.nextToken()
		if src.kind == tokEOF {
			return
		}
		if src.isCommand(kwEndBfChar) {
			return
		}

		dst := tzr.nextToken()
		if dst.kind == tokEOF {
			return
		}
		if dst.isCommand(kwEndBfChar) {
			return
		}

		var value CharCode
		if len(dst.Bytes) <= 2 {
			value = packBytes(dst.Bytes)
		} else {
			value = bfStringValue(dst.Bytes)
		}
		cm.MapOne(packBytes(src.Bytes), value)
	}
}

// parseBfRange implements the beginbfrange directive (spec.md §4.3,
// §4.5).
func parseBfRange(tzr *tokenizer, cm *CMap) error {
	for {
		lowTok := tzr.nextToken()
		if lowTok.kind == tokEOF {
			return nil
		}
		if lowTok.isCommand(kwEndBfRange) {
			return nil
		}
		low := packBytes(lowTok.Bytes)

		highTok := tzr.nextToken()
		if highTok.kind == tokEOF {
			return nil
		}
		high := packBytes(highTok.Bytes)

		third := tzr.nextToken()
		if third.kind == tokEOF {
			return nil
		}

		switch third.kind {
		case tokInteger:
			if !cm.MapBfRange(low, high, []byte{byte(third.Integer)}) {
				return ErrRangeTooLarge
			}
		case tokString, tokHexString:
			if !cm.MapBfRange(low, high, third.Bytes) {
				return ErrRangeTooLarge
			}
		case tokCommand:
			if third.Text != kwArrayOpen {
				return ErrBadCMap
			}
			values, err := parseBfRangeArray(tzr)
			if err != nil {
				return err
			}
			cm.MapBfRangeToArray(low, high, values)
		default:
			return ErrBadCMap
		}
	}
}

func parseBfRangeArray(tzr *tokenizer) ([]CharCode, error) {
	var values []CharCode
	for {
		tk := tzr.nextToken()
		if tk.kind == tokEOF {
			return values, nil
		}
		if tk.isCommand(kwArrayClose) {
			return values, nil
		}
		switch tk.kind {
		case tokInteger:
			values = append(values, CharCode(tk.Integer))
		case tokString, tokHexString:
			values = append(values, bfStringValue(tk.Bytes))
		}
	}
}

// parseCIDChar implements the begincidchar directive (spec.md §4.3).
func parseCIDChar(tzr *tokenizer, cm *CMap) {
	for {
		src := tzr.nextToken()
		if src.kind == tokEOF {
			return
		}
		if src.isCommand(kwEndCIDChar) {
			return
		}

		dst := tzr.nextToken()
		if dst.kind == tokEOF {
			return
		}
		if dst.kind != tokInteger {
			continue
		}
		cm.MapOne(packBytes(src.Bytes), CharCode(dst.Integer))
	}
}

// parseCIDRange implements the begincidrange directive (spec.md §4.3).
func parseCIDRange(tzr *tokenizer, cm *CMap) error {
	for {
		lowTok := tzr.nextToken()
		if lowTok.kind == tokEOF {
			return nil
		}
		if lowTok.isCommand(kwEndCIDRange) {
			return nil
		}
		low := packBytes(lowTok.Bytes)

		highTok := tzr.nextToken()
		if highTok.kind == tokEOF {
			return nil
		}
		high := packBytes(highTok.Bytes)

		dstTok := tzr.nextToken()
		if dstTok.kind == tokEOF {
			return nil
		}
		if dstTok.kind != tokInteger {
			continue
		}

		if !cm.MapCIDRange(low, high, CharCode(dstTok.Integer)) {
			return ErrRangeTooLarge
		}
	}
}
