/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

// tokenKind identifies the kind of token produced by the tokenizer
// (spec.md §4.3, Subcomponent A).
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokInteger
	tokName
	tokString
	tokHexString
	tokCommand
)

// token is the tokenizer's single output type. Only the fields relevant
// to its kind are populated.
type token struct {
	kind tokenKind

	// Integer holds the decoded value for tokInteger.
	Integer int64

	// Text holds the identifier for tokName, the raw command word for
	// tokCommand (including the literal delimiters "<<", ">>", "[", "]"),
	// and is unused otherwise.
	Text string

	// Bytes holds the decoded byte payload for tokString and
	// tokHexString. Each byte of a hex string is one "character" for
	// spec.md's len_chars sizing rule, so len(Bytes) doubles as that
	// count; a trailing odd hex digit is padded into its own byte by
	// the tokenizer before it ever reaches here.
	Bytes []byte
}

func (t token) isCommand(name string) bool {
	return t.kind == tokCommand && t.Text == name
}
