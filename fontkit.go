package fontkit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// FontKit is a font registry: fonts go in as buffers or directory scans,
// and come back out as faces selected by progressive key matching.
// Shaping results are cached per (font, text) pair, and resident buffer
// memory can be capped with an LRU eviction policy.
//
// FontKit is safe for concurrent use.
type FontKit struct {
	mu      sync.RWMutex
	entries map[keyID]*fontEntry
	seq     uint64

	cfg        config
	parser     Parser
	hitCounter atomic.Uint32
	shapeCache *cache[shapeKey, *TextMetrics]
}

// fontEntry binds one resolved variant key to its font, remembering the
// registration order for deterministic tie-breaks.
type fontEntry struct {
	key     FontKey
	variant *VariationData
	font    *Font
	seq     uint64
}

// New creates an empty registry.
func New(opts ...Option) *FontKit {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FontKit{
		entries:    make(map[keyID]*fontEntry),
		cfg:        cfg,
		parser:     getParser(cfg.parserName),
		shapeCache: newCache[shapeKey, *TextMetrics](cfg.shapeCacheLimit),
	}
}

// SetFallback installs or replaces the fallback resolver; see
// WithFallback.
func (k *FontKit) SetFallback(fn func(FontKey) *FontKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cfg.fallback = fn
}

// SetEmojiFont installs or replaces the emoji font key; see
// WithEmojiFont.
func (k *FontKit) SetEmojiFont(key FontKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cfg.emoji = &key
}

// AddFontFromBuffer registers every variant found in a font buffer and
// returns their resolved keys. When a cache directory is configured the
// buffer is also persisted so it can be evicted and reloaded later.
// A variant whose key collides with an already registered one replaces
// it.
func (k *FontKit) AddFontFromBuffer(data []byte) ([]FontKey, error) {
	font, err := newFont(data, k.parser, &k.hitCounter)
	if err != nil {
		return nil, err
	}
	k.persist(font)
	keys := k.register(font)
	k.checkLRU()
	return keys, nil
}

// persist writes the font buffer under the cache directory, one file per
// variant key, and remembers the first file as the font's backing path.
// Existing files are reused, not rewritten.
func (k *FontKit) persist(f *Font) {
	if k.cfg.cachePath == "" {
		return
	}
	buf := f.buffer.Load()
	if buf == nil {
		return
	}
	for _, v := range f.variants {
		name := filepath.Join(k.cfg.cachePath, v.Key.cacheFileName())
		if _, err := os.Stat(name); err != nil {
			if err := os.WriteFile(name, *buf, 0o644); err != nil {
				Logger().Warn("fontkit: persist failed", "file", name, "error", err)
				continue
			}
		}
		if f.path == "" {
			f.path = name
		}
	}
}

// register inserts the font's variants into the key index.
func (k *FontKit) register(f *Font) []FontKey {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys := make([]FontKey, 0, len(f.variants))
	for _, v := range f.variants {
		k.seq++
		k.entries[v.Key.Defaulted().id()] = &fontEntry{key: v.Key, variant: v, font: f, seq: k.seq}
		keys = append(keys, v.Key)
	}
	k.shapeCache.clear()
	return keys
}

// fontExts are the file extensions considered during directory scans.
var fontExts = map[string]bool{
	".ttf":   true,
	".otf":   true,
	".ttc":   true,
	".woff":  true,
	".woff2": true,
}

// SearchFontsFromPath walks a directory tree and registers every font
// file it can parse. Unparsable files are logged and skipped; only the
// walk itself can fail. Fonts registered this way stay file-backed: their
// buffers can always be evicted and reloaded.
func (k *FontKit) SearchFontsFromPath(root string) ([]FontKey, error) {
	var keys []FontKey
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fontExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			Logger().Warn("fontkit: unreadable font file", "path", path, "error", rerr)
			return nil
		}
		font, perr := newFont(data, k.parser, &k.hitCounter)
		if perr != nil {
			Logger().Warn("fontkit: skipping font file", "path", path, "error", perr)
			return nil
		}
		font.path = path
		keys = append(keys, k.register(font)...)
		return nil
	})
	if err != nil {
		return keys, fmt.Errorf("fontkit: scanning %s: %w", root, err)
	}
	k.checkLRU()
	return keys, nil
}

// Remove drops every registered variant whose key equals key after
// defaulting.
func (k *FontKit) Remove(key FontKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	id := key.Defaulted().id()
	delete(k.entries, id)
	k.shapeCache.clear()
}

// Keys returns the resolved keys of all registered variants, in
// registration order.
func (k *FontKit) Keys() []FontKey {
	k.mu.RLock()
	defer k.mu.RUnlock()
	all := k.sortedEntries()
	keys := make([]FontKey, len(all))
	for i, e := range all {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of registered variants.
func (k *FontKit) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.entries)
}

// sortedEntries returns the entries in registration order. Caller must
// hold the lock.
func (k *FontKit) sortedEntries() []*fontEntry {
	all := make([]*fontEntry, 0, len(k.entries))
	for _, e := range k.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })
	return all
}

// Query selects the best matching face for key, or nil when nothing
// matches. Matching narrows the candidate set filter by filter (family,
// then italic, weight, stretch and variations when requested); remaining
// ties resolve to the candidate closest in weight, then stretch, then
// registration order.
func (k *FontKit) Query(key FontKey) *Face {
	if key.Family == "" {
		return nil
	}

	k.mu.RLock()
	candidates := k.sortedEntries()
	k.mu.RUnlock()
	if len(candidates) == 0 {
		return nil
	}

	idxs := make([]int, len(candidates))
	for i := range idxs {
		idxs[i] = i
	}
	survivors := runFilters(idxs, filtersForKey(key), func(idx int, f filter) bool {
		return candidates[idx].variant.fulfils(f)
	})
	if len(survivors) == 0 {
		return nil
	}
	winner := survivors[0]
	if len(survivors) > 1 {
		winner = closestCandidate(key, survivors, func(idx int) FontKey {
			return candidates[idx].key.Defaulted()
		})
	}

	e := candidates[winner]
	face, err := e.font.faceFor(e.variant)
	if err != nil {
		Logger().Warn("fontkit: face open failed", "key", e.key.String(), "error", err)
		return nil
	}
	k.checkLRU()
	return face
}

// ExactMatch behaves like Query but additionally rejects any result whose
// defaulted key differs from the defaulted request.
func (k *FontKit) ExactMatch(key FontKey) *Face {
	face := k.Query(key)
	if face == nil {
		return nil
	}
	if face.Key().Defaulted().id() != key.Defaulted().id() {
		return nil
	}
	return face
}

// Measure shapes text against the font matching key. When no font
// matches the key at all, the fallback font and then the emoji font are
// asked to shape the whole text instead. Characters the chosen font
// cannot map are re-shaped against the fallback font and the emoji font,
// in that order, and spliced in positionally. Results are cached per
// (resolved key, text).
func (k *FontKit) Measure(key FontKey, text string) (*TextMetrics, error) {
	ck := shapeKey{font: key.Defaulted().id(), text: text}
	if m, ok := k.shapeCache.get(ck); ok {
		return m.Clone(), nil
	}

	k.mu.RLock()
	fallback := k.cfg.fallback
	emoji := k.cfg.emoji
	k.mu.RUnlock()

	face := k.Query(key)
	if face == nil && fallback != nil {
		if fk := fallback(key); fk != nil {
			face = k.Query(*fk)
		}
	}
	if face == nil && emoji != nil {
		face = k.Query(*emoji)
	}
	if face == nil {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, key.String())
	}
	m := face.Measure(text)

	if m.HasMissing() && fallback != nil {
		if fk := fallback(key); fk != nil {
			k.spliceMissing(m, *fk, text)
		}
	}
	if m.HasMissing() && emoji != nil {
		k.spliceMissing(m, *emoji, text)
	}

	k.shapeCache.set(ck, m.Clone())
	return m, nil
}

// spliceMissing re-shapes text with the font matching key and substitutes
// its entries at every position the current metrics are missing. The two
// shapings run the same pipeline, so positions line up unless the donor
// font shapes to a different character count, in which case the splice is
// skipped.
func (k *FontKit) spliceMissing(m *TextMetrics, key FontKey, text string) {
	face := k.Query(key)
	if face == nil {
		Logger().Warn("fontkit: fallback font not found", "key", key.String())
		return
	}
	donor := face.Measure(text)
	if donor.Count() != m.Count() {
		Logger().Warn("fontkit: fallback shaping mismatch",
			"key", key.String(), "want", m.Count(), "got", donor.Count())
		return
	}
	for i := range m.positions {
		if m.positions[i].Metrics.Missing && !donor.positions[i].Metrics.Missing {
			level := m.positions[i].Level
			m.positions[i] = donor.positions[i]
			m.positions[i].Level = level
		}
	}
}

// uniqueFonts returns the distinct fonts behind all entries.
func (k *FontKit) uniqueFonts() []*Font {
	k.mu.RLock()
	defer k.mu.RUnlock()
	seen := make(map[*Font]bool, len(k.entries))
	fonts := make([]*Font, 0, len(k.entries))
	for _, e := range k.entries {
		if !seen[e.font] {
			seen[e.font] = true
			fonts = append(fonts, e.font)
		}
	}
	return fonts
}

// ResidentBytes returns the total size of currently loaded font buffers.
func (k *FontKit) ResidentBytes() int {
	total := 0
	for _, f := range k.uniqueFonts() {
		total += f.bufferSize()
	}
	return total
}

// checkLRU evicts cold font buffers until resident memory fits under the
// configured cap. Only file-backed fonts are evicted: dropping a
// buffer-only font would lose it for good. After each eviction every hit
// index is rebased by the victim's index so the counters never wrap.
func (k *FontKit) checkLRU() {
	limit := int(k.cfg.lruLimitKB) * 1024
	if limit == 0 {
		return
	}
	fonts := k.uniqueFonts()

	total := 0
	resident := 0
	for _, f := range fonts {
		if s := f.bufferSize(); s > 0 {
			total += s
			resident++
		}
	}

	// The coldest buffer goes first, but never the last one standing:
	// at least one font stays resident while any entries exist.
	for total > limit && resident > 1 {
		var victim *Font
		var victimIdx uint32
		for _, f := range fonts {
			if f.bufferSize() == 0 || f.path == "" {
				continue
			}
			if hi := f.hitIndex.Load(); victim == nil || hi < victimIdx {
				victim = f
				victimIdx = hi
			}
		}
		if victim == nil {
			return
		}
		victim.unload()
		resident--
		Logger().Debug("fontkit: evicted font buffer", "path", victim.path)

		for _, f := range fonts {
			if hi := f.hitIndex.Load(); hi >= victimIdx {
				f.hitIndex.Store(hi - victimIdx)
			}
		}
		if c := k.hitCounter.Load(); c >= victimIdx {
			k.hitCounter.Store(c - victimIdx)
		}

		newTotal := 0
		for _, f := range fonts {
			newTotal += f.bufferSize()
		}
		if newTotal >= total {
			return
		}
		total = newTotal
	}
}
