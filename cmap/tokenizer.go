/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"strconv"
)

// tokenizer scans the PostScript subset used by textual CMaps (spec.md
// §4.3, Subcomponent A). It is grounded on the teacher's
// internal/cmap/parser.go (same delimiter handling, same hex-string
// padding-on-odd-digit rule) combined with hayro-interpret's CMapLexer
// (same single-byte-at-a-time scan and the decision to keep, not decode,
// backslash escapes in parenthesized strings).
type tokenizer struct {
	data []byte
	pos  int
}

func newTokenizer(data []byte) *tokenizer {
	return &tokenizer{data: data}
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f':
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '[', ']', '<', '>', '(', ')', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (t *tokenizer) peek() (byte, bool) {
	if t.pos >= len(t.data) {
		return 0, false
	}
	return t.data[t.pos], true
}

func (t *tokenizer) next() (byte, bool) {
	b, ok := t.peek()
	if ok {
		t.pos++
	}
	return b, ok
}

func (t *tokenizer) skipWhitespaceAndComments() {
	for {
		b, ok := t.peek()
		if !ok {
			return
		}
		if isWhitespace(b) {
			t.pos++
			continue
		}
		if b == '%' {
			for {
				b, ok := t.next()
				if !ok || b == '\r' || b == '\n' {
					break
				}
			}
			continue
		}
		return
	}
}

// nextToken returns the next token in the stream, or a tokEOF token once
// the input is exhausted.
func (t *tokenizer) nextToken() token {
	t.skipWhitespaceAndComments()

	b, ok := t.peek()
	if !ok {
		return token{kind: tokEOF}
	}

	switch {
	case b == '/':
		return t.scanName()
	case b == '(':
		return t.scanString()
	case b == '<':
		return t.scanAngle()
	case b == '[':
		t.pos++
		return token{kind: tokCommand, Text: kwArrayOpen}
	case b == ']':
		t.pos++
		return token{kind: tokCommand, Text: kwArrayClose}
	case b == '>':
		return t.scanGT()
	default:
		return t.scanBare()
	}
}

// scanGT reads a lone or doubled '>'. A stray single '>' outside a hex
// string has no PostScript meaning; it is surfaced as a one-byte
// Command token so the directive interpreter can ignore it as tolerated
// noise (spec.md §7).
func (t *tokenizer) scanGT() token {
	t.pos++
	if b, ok := t.peek(); ok && b == '>' {
		t.pos++
		return token{kind: tokCommand, Text: ">>"}
	}
	return token{kind: tokCommand, Text: ">"}
}

// scanName reads a /identifier, terminating on whitespace or any of
// "[]<>(){}/%" (spec.md §4.3).
func (t *tokenizer) scanName() token {
	t.pos++ // consume '/'
	start := t.pos
	for {
		b, ok := t.peek()
		if !ok || isWhitespace(b) || isDelimiter(b) {
			break
		}
		t.pos++
	}
	return token{kind: tokName, Text: string(t.data[start:t.pos])}
}

// scanString reads a parenthesized PostScript string. Nested parens are
// tracked; a backslash escape keeps both the backslash and the escaped
// byte literally in the output (spec.md §4.3, §9 Open Question).
func (t *tokenizer) scanString() token {
	t.pos++ // consume '('
	depth := 1
	var out []byte
	for {
		b, ok := t.next()
		if !ok {
			break
		}
		switch b {
		case '\\':
			out = append(out, b)
			if nb, ok := t.next(); ok {
				out = append(out, nb)
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return token{kind: tokString, Bytes: out}
			}
		}
		out = append(out, b)
	}
	return token{kind: tokString, Bytes: out}
}

// scanAngle handles both "<<" (dict-begin, emitted as a Command token)
// and "<hex string>".
func (t *tokenizer) scanAngle() token {
	t.pos++ // consume '<'
	if b, ok := t.peek(); ok && b == '<' {
		t.pos++
		return token{kind: tokCommand, Text: "<<"}
	}
	return t.scanHexString()
}

// scanHexString reads the remainder of a hex string up to the closing
// '>'. Non-hex bytes are skipped; a trailing lone hex digit is treated
// as if followed by '0' (spec.md §4.3).
func (t *tokenizer) scanHexString() token {
	var digits []byte
	for {
		b, ok := t.next()
		if !ok || b == '>' {
			break
		}
		if isHexDigit(b) {
			digits = append(digits, b)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, len(digits)/2)
	for i := range out {
		v, _ := strconv.ParseUint(string(digits[2*i:2*i+2]), 16, 8)
		out[i] = byte(v)
	}
	return token{kind: tokHexString, Bytes: out}
}

// scanBare reads an Integer or a Command: any whitespace-delimited word
// that isn't one of the special-cased leading bytes above (spec.md
// §4.3).
func (t *tokenizer) scanBare() token {
	start := t.pos
	for {
		b, ok := t.peek()
		if !ok || isWhitespace(b) || isDelimiter(b) {
			break
		}
		t.pos++
	}
	word := string(t.data[start:t.pos])
	if word == "" {
		// A stray delimiter byte we don't special-case (e.g. a bare
		// '}'): consume it so the scan always makes progress.
		if _, ok := t.next(); !ok {
			return token{kind: tokEOF}
		}
		return t.nextToken()
	}
	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		return token{kind: tokInteger, Integer: n}
	}
	return token{kind: tokCommand, Text: word}
}
