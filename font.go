package fontkit

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Font is one loaded font resource: a buffer (possibly evicted), the
// variants it provides and the parser that understands it. A variable
// font carries one variant per named instance; a collection carries the
// variants of every sub-face.
//
// Font is safe for concurrent use. The buffer pointer is swapped
// atomically so readers never see a half-released buffer.
type Font struct {
	mu       sync.Mutex // guards reloads from disk
	path     string
	buffer   atomic.Pointer[[]byte]
	variants []*VariationData
	parser   Parser

	// hitIndex is the value of the registry hit counter at the last
	// load; the eviction policy treats smaller values as colder.
	hitIndex atomic.Uint32
	counter  *atomic.Uint32
}

// newFont parses a buffer into a Font. The buffer is retained.
func newFont(data []byte, parser Parser, counter *atomic.Uint32) (*Font, error) {
	data, err := normalizeBuffer(data)
	if err != nil {
		return nil, err
	}
	n, err := parser.NumFaces(data)
	if err != nil {
		return nil, err
	}

	f := &Font{parser: parser, counter: counter}
	for i := 0; i < n; i++ {
		h, err := parser.Parse(data, i)
		if err != nil {
			return nil, err
		}
		variants, err := buildVariants(h, uint32(i))
		if err != nil {
			return nil, err
		}
		f.variants = append(f.variants, variants...)
	}
	f.buffer.Store(&data)
	f.bump()
	return f, nil
}

// Variants returns the selectable variants of this font.
func (f *Font) Variants() []*VariationData { return f.variants }

// Path returns the backing file, or "" for buffer-only fonts.
func (f *Font) Path() string { return f.path }

// Loaded reports whether the buffer is currently resident.
func (f *Font) Loaded() bool { return f.buffer.Load() != nil }

// bufferSize returns the resident buffer size in bytes, 0 when evicted.
func (f *Font) bufferSize() int {
	if b := f.buffer.Load(); b != nil {
		return len(*b)
	}
	return 0
}

func (f *Font) bump() {
	if f.counter != nil {
		f.hitIndex.Store(f.counter.Add(1))
	}
}

// load makes the buffer resident, reloading it from the backing file if
// it was evicted. Every call marks the font as recently used.
func (f *Font) load() error {
	f.bump()
	if f.buffer.Load() != nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.buffer.Load() != nil {
		return nil
	}
	if f.path == "" {
		return ErrFontUnloaded
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("fontkit: reload %s: %w", f.path, err)
	}
	data, err = normalizeBuffer(data)
	if err != nil {
		return err
	}
	f.buffer.Store(&data)
	return nil
}

// unload drops the buffer. It can be made resident again via load when a
// backing file is known.
func (f *Font) unload() {
	f.buffer.Store(nil)
}

// Face selects the variant best matching key and opens it. The same
// progressive filters used by registry queries narrow the variant list.
func (f *Font) Face(key FontKey) (*Face, error) {
	idxs := make([]int, len(f.variants))
	for i := range idxs {
		idxs[i] = i
	}
	survivors := runFilters(idxs, filtersForKey(key), func(idx int, flt filter) bool {
		return f.variants[idx].fulfils(flt)
	})
	if len(survivors) == 0 {
		return nil, ErrFontNotFound
	}
	winner := survivors[0]
	if len(survivors) > 1 {
		winner = closestCandidate(key, survivors, func(idx int) FontKey {
			return f.variants[idx].Key.Defaulted()
		})
	}
	return f.faceFor(f.variants[winner])
}

// faceFor opens a specific variant, loading the buffer if needed and
// pinning the variant's variation coordinates.
func (f *Font) faceFor(v *VariationData) (*Face, error) {
	if err := f.load(); err != nil {
		return nil, err
	}
	buf := f.buffer.Load()
	if buf == nil {
		return nil, ErrFontUnloaded
	}
	h, err := f.parser.Parse(*buf, int(v.Index))
	if err != nil {
		return nil, err
	}
	for _, vv := range v.Key.Variations {
		h.SetVariation(vv.Axis, vv.Value)
	}
	return &Face{font: f, variant: v, handle: h}, nil
}

// Face is a font variant opened for metric queries. Faces are lightweight
// and not safe for concurrent use; open one per goroutine.
type Face struct {
	font    *Font
	variant *VariationData
	handle  FaceHandle
}

// Key returns the resolved identity of the selected variant.
func (fa *Face) Key() FontKey { return fa.variant.Key }

// Font returns the owning font resource.
func (fa *Face) Font() *Font { return fa.font }

// Handle exposes the backend face for raw metric access.
func (fa *Face) Handle() FaceHandle { return fa.handle }

// Path returns the backing file of the owning font, if any.
func (fa *Face) Path() string { return fa.font.path }

// HasGlyph reports whether the face maps r to a real glyph.
func (fa *Face) HasGlyph(r rune) bool {
	_, ok := fa.handle.GlyphIndex(r)
	return ok
}

// UnitsPerEm returns the face design grid.
func (fa *Face) UnitsPerEm() uint16 { return fa.handle.UnitsPerEm() }

// Measure shapes text against this face alone, without fallback.
func (fa *Face) Measure(text string) *TextMetrics {
	return shapeText(fa.handle, text)
}
