// Package fontkit provides font registration, matching and text shaping.
//
// # Overview
//
// fontkit keeps a registry of fonts described by FontKey (family, weight,
// italic, stretch and optional variation axes). Fonts are added from memory
// buffers or discovered on disk, matched with a progressive filter pipeline,
// and shaped into per-character metrics suitable for layout.
//
// # Quick Start
//
//	import "github.com/typekit/fontkit"
//
//	kit := fontkit.New()
//	keys, err := kit.AddFontFromBuffer(buf)
//	if err != nil {
//		// handle err
//	}
//
//	face := kit.Query(fontkit.NewFontKey("Go"))
//	metrics, err := kit.Measure(fontkit.NewFontKey("Go"), "Hello")
//
// # Matching
//
// Query narrows candidates one property at a time, in order: family,
// italic, weight, stretch, then variation axes. A filter that would
// eliminate every remaining candidate is discarded, so a request never
// fails merely because one property has no exact match. Ties are broken
// by numeric distance on weight and stretch, then by registration order.
//
// # Shaping
//
// Measure resolves a face, reorders bidirectional text into visual order,
// applies Arabic presentation forms and kern pairs, and returns a
// TextMetrics holding one PositionedChar per rune. Characters missing
// from the matched font can be spliced in from a fallback chain and an
// emoji font.
//
// # Layout
//
// The layout subpackage wraps shaped spans into lines within a pixel
// width, merges soft-wrapped lines back together, and truncates overflow
// with an ellipsis span.
//
// # Memory
//
// Font buffers are retained until an optional LRU budget is exceeded,
// at which point the least recently used file-backed fonts are unloaded
// and transparently reloaded on next use. WithCachePath enables
// persisting registered buffers so searches survive restarts.
package fontkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
