/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTextBfChar(t *testing.T) {
	cm, err := ParseText([]byte("2 beginbfchar\n<03> <00>\n<04> <01>\nendbfchar"))
	require.NoError(t, err)

	v, ok := cm.Lookup(0x03)
	require.True(t, ok)
	require.Equal(t, CharCode(0x00), v)

	v, ok = cm.Lookup(0x04)
	require.True(t, ok)
	require.Equal(t, CharCode(0x01), v)

	_, ok = cm.Lookup(0x05)
	require.False(t, ok)
}

func TestParseTextBfRange(t *testing.T) {
	cm, err := ParseText([]byte("1 beginbfrange\n<06> <0B> 0\nendbfrange"))
	require.NoError(t, err)

	v, ok := cm.Lookup(0x06)
	require.True(t, ok)
	require.Equal(t, CharCode(0x00), v)

	v, ok = cm.Lookup(0x0B)
	require.True(t, ok)
	require.Equal(t, CharCode(0x05), v)

	_, ok = cm.Lookup(0x05)
	require.False(t, ok)
	_, ok = cm.Lookup(0x0C)
	require.False(t, ok)
}

func TestParseTextBfRangeArray(t *testing.T) {
	cm, err := ParseText([]byte("1 beginbfrange\n<0D> <12> [ 0 1 2 3 4 5 ]\nendbfrange"))
	require.NoError(t, err)

	v, ok := cm.Lookup(0x0D)
	require.True(t, ok)
	require.Equal(t, CharCode(0x00), v)

	v, ok = cm.Lookup(0x12)
	require.True(t, ok)
	require.Equal(t, CharCode(0x05), v)
}

func TestParseTextCIDRange(t *testing.T) {
	cm, err := ParseText([]byte("1 begincidrange\n<0016> <001B> 0\nendcidrange"))
	require.NoError(t, err)

	v, ok := cm.Lookup(0x16)
	require.True(t, ok)
	require.Equal(t, CharCode(0), v)

	v, ok = cm.Lookup(0x1B)
	require.True(t, ok)
	require.Equal(t, CharCode(5), v)
}

func TestParseTextCodespaceRangeFourByte(t *testing.T) {
	cm, err := ParseText([]byte("1 begincodespacerange\n<8EA1A1A1> <8EA1FEFE>\nendcodespacerange"))
	require.NoError(t, err)

	code, n := cm.ReadCode([]byte{0x8E, 0xA1, 0xA1, 0xA1}, 0)
	require.Equal(t, 4, n)
	require.Equal(t, CharCode(0x8EA1A1A1), code)
}

func TestParseTextWModeVertical(t *testing.T) {
	cm, err := ParseText([]byte("/WMode 1 def\n1 begincidrange\n<0000> <0001> 0\nendcidrange"))
	require.NoError(t, err)
	require.True(t, cm.IsVertical())
}

func TestParseTextCMapName(t *testing.T) {
	cm, err := ParseText([]byte("/CMapName /Adobe-Identity-UCS def\n"))
	require.NoError(t, err)
	require.Equal(t, "Adobe-Identity-UCS", cm.Name())
}

func TestParseTextIgnoresBoilerplate(t *testing.T) {
	data := `
	/CIDInit /ProcSet findresource begin
	12 dict begin
	begincmap
	/CIDSystemInfo
	<<  /Registry (Adobe)
	/Ordering (UCS)
	/Supplement 0
	>> def
	/CMapName /Adobe-Identity-UCS def
	/CMapType 2 def
	1 begincodespacerange
	<0000> <FFFF>
	endcodespacerange
	2 beginbfchar
	<0003> <0020>
	<0007> <0024>
	endbfchar
	endcmap
	CMapName currentdict /CMap defineresource pop
	end
	end
	`
	cm, err := ParseText([]byte(data))
	require.NoError(t, err)
	require.Equal(t, "Adobe-Identity-UCS", cm.Name())

	v, ok := cm.Lookup(0x0003)
	require.True(t, ok)
	require.Equal(t, CharCode(0x0020), v)
}

func TestParseTextUseCMap(t *testing.T) {
	cm, err := ParseText([]byte("/90ms-RKSJ-H usecmap\n"))
	require.NoError(t, err)
	require.Equal(t, "90ms-RKSJ-H", cm.UseCMap())
}

func TestParseTextCIDRangeTooLargeAborts(t *testing.T) {
	data := "1 begincidrange\n<00000000> <02000000> 0\nendcidrange"
	cm, err := ParseText([]byte(data))
	require.Error(t, err)
	require.Nil(t, cm)
}

func TestParseTextEmptyCodespaceLowSkipped(t *testing.T) {
	data := "2 begincodespacerange\n<> <FF>\n<00> <FF>\nendcodespacerange"
	cm, err := ParseText([]byte(data))
	require.NoError(t, err)

	code, n := cm.ReadCode([]byte{0x42}, 0)
	require.Equal(t, 1, n)
	require.Equal(t, CharCode(0x42), code)
}

func TestParseTextBfRangeMalformedThirdTokenAborts(t *testing.T) {
	data := "1 beginbfrange\n<00> <01> /NotAllowed\nendbfrange"
	cm, err := ParseText([]byte(data))
	require.Error(t, err)
	require.Nil(t, cm)
}

func TestParseTextIdentityHLookupUniversalProperty(t *testing.T) {
	cm := IdentityH()
	for code := CharCode(0); code <= 0xFFFF; code += 4096 {
		v, ok := cm.Lookup(code)
		require.True(t, ok)
		require.Equal(t, code, v)
	}
	_, ok := cm.Lookup(0x10001)
	require.False(t, ok)
}
