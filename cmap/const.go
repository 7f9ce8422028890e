/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

// Textual CMap directive keywords recognized by the parser. Any other
// command token is tolerated noise and ignored (spec.md §4.3, §7).
const (
	kwCMapName            = "CMapName"
	kwWMode               = "WMode"
	kwBeginCodespaceRange = "begincodespacerange"
	kwEndCodespaceRange   = "endcodespacerange"
	kwBeginBfChar         = "beginbfchar"
	kwEndBfChar           = "endbfchar"
	kwBeginBfRange        = "beginbfrange"
	kwEndBfRange          = "endbfrange"
	kwBeginCIDChar        = "begincidchar"
	kwEndCIDChar          = "endcidchar"
	kwBeginCIDRange       = "begincidrange"
	kwEndCIDRange         = "endcidrange"
	kwEndCMap             = "endcmap"
	kwUseCMap             = "usecmap"
	kwArrayOpen           = "["
	kwArrayClose          = "]"
)

// maxCodeLen is the widest input code the engine understands: 4 bytes.
const maxCodeLen = 4

// maxMapRange is the largest (high - low) this engine will expand into
// the value table for a single range directive or record (spec.md §3).
const maxMapRange = 1<<24 - 1

// maxHexSize is the largest hex field, in bytes (a record's dataSize+1),
// the binary decoder accepts; its scratch buffers hold maxHexSize+1
// bytes (spec.md §4.4, §5).
const maxHexSize = 16
