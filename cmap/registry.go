/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package cmap

// AssetSource supplies the raw bytes of a predefined CMap by name. The
// engine itself ships no CMap blobs — bundling the 100+ prebuilt Adobe
// CJK maps is out of scope (spec.md §1) — so callers that want
// predefined-name resolution plug in their own asset store (an embedded
// filesystem, a network fetch, a generated Go package of blobs) through
// this interface.
type AssetSource interface {
	// Asset returns the raw bcmap bytes stored under name, or a non-nil
	// error if name is not present.
	Asset(name string) ([]byte, error)

	// AssetExists reports whether name is present without fetching it.
	AssetExists(name string) bool
}

// identityCMapFactories maps the two built-in names the engine can
// resolve without ever consulting an AssetSource.
var identityCMapFactories = map[string]func() *CMap{
	"Identity-H": IdentityH,
	"Identity-V": IdentityV,
}

// LoadPredefinedCMap resolves name to a CMap. Identity-H and Identity-V
// are served directly; any other name is looked up in src and decoded as
// a bcmap blob via ParseBinary (SPEC_FULL.md §6).
func LoadPredefinedCMap(src AssetSource, name string) (*CMap, error) {
	if factory, ok := identityCMapFactories[name]; ok {
		return factory(), nil
	}

	if !src.AssetExists(name) {
		return nil, wrapf(ErrBadCMap, "LoadPredefinedCMap", "unknown predefined CMap %q", name)
	}
	data, err := src.Asset(name)
	if err != nil {
		return nil, wrapf(err, "LoadPredefinedCMap", "loading asset %q", name)
	}
	cm, err := ParseBinary(data)
	if err != nil {
		return nil, wrapf(err, "LoadPredefinedCMap", "decoding %q", name)
	}
	return cm, nil
}
