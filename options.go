package fontkit

// Option configures a FontKit.
type Option func(*config)

// config holds registry configuration.
type config struct {
	lruLimitKB      uint32
	cachePath       string
	parserName      string
	shapeCacheLimit int
	fallback        func(FontKey) *FontKey
	emoji           *FontKey
}

// defaultConfig returns the default registry configuration.
func defaultConfig() config {
	return config{
		shapeCacheLimit: 256,
		parserName:      defaultParserName,
	}
}

// WithLRULimit caps the total resident buffer size in kilobytes. When the
// cap is exceeded, cold font buffers are evicted; evicted fonts reload
// transparently from their backing files. A limit of 0 (default)
// disables eviction.
func WithLRULimit(kb uint32) Option {
	return func(c *config) { c.lruLimitKB = kb }
}

// WithCachePath sets a directory where added font buffers are persisted,
// one file per font named after its resolved key. Persisted fonts can be
// evicted under memory pressure and reloaded lazily.
func WithCachePath(dir string) Option {
	return func(c *config) { c.cachePath = dir }
}

// WithParser selects the font parser backend. The default is "gotext"
// (github.com/go-text/typesetting); "xsfnt" uses golang.org/x/image.
// Custom backends can be registered with RegisterParser.
func WithParser(name string) Option {
	return func(c *config) { c.parserName = name }
}

// WithShapeCacheLimit sets the maximum number of cached shaping results.
// A value of 0 disables the limit.
func WithShapeCacheLimit(n int) Option {
	return func(c *config) { c.shapeCacheLimit = n }
}

// WithFallback installs a fallback resolver: when shaping hits characters
// the primary font cannot map, the resolver's font is asked for them.
// Return nil to decline.
func WithFallback(fn func(FontKey) *FontKey) Option {
	return func(c *config) { c.fallback = fn }
}

// WithEmojiFont names the font used as a last resort for characters that
// neither the primary nor the fallback font can map.
func WithEmojiFont(key FontKey) Option {
	return func(c *config) { c.emoji = &key }
}
