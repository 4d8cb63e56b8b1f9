package text

import "golang.org/x/image/font/gofont/goregular"

// Option configures a Measurer.
type Option func(*config)

type config struct {
	fontData  []byte
	cacheSize int
	quantize  bool
	language  string
}

func defaultConfig() config {
	return config{
		fontData:  goregular.TTF,
		cacheSize: 1024,
		quantize:  true,
		language:  "en",
	}
}

// WithFont sets the TTF/OTF data used for shaping. The default is Go Regular.
func WithFont(data []byte) Option {
	return func(c *config) {
		c.fontData = data
	}
}

// WithCacheSize sets the number of memoized line widths.
func WithCacheSize(n int) Option {
	return func(c *config) {
		c.cacheSize = n
	}
}

// WithQuantize controls rounding of the requested size to whole pixels
// before shaping. It is on by default to match what a glyph rasterizer
// actually produces.
func WithQuantize(on bool) Option {
	return func(c *config) {
		c.quantize = on
	}
}

// WithLanguage sets the BCP 47 language tag passed to the shaper.
func WithLanguage(tag string) Option {
	return func(c *config) {
		c.language = tag
	}
}
