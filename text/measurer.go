package text

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/canvas/internal/cache"
)

// widthKey identifies a memoized measurement. The size is stored as its
// IEEE 754 bit pattern so equal sizes match exactly.
type widthKey struct {
	line     string
	sizeBits uint32
}

// Measurer reports line advance widths using HarfBuzz shaping.
//
// Measurer is safe for concurrent use. The parsed font.Font is read-only;
// each shaping call gets its own lightweight font.Face and a pooled
// HarfbuzzShaper.
type Measurer struct {
	font     *font.Font
	data     []byte
	quantize bool
	lang     language.Language

	shaperPool sync.Pool
	widths     *cache.Cache[widthKey, float32]
}

// NewMeasurer parses the configured font and returns a Measurer.
func NewMeasurer(opts ...Option) (*Measurer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.fontData) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(cfg.fontData))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &Measurer{
		font:     face.Font,
		data:     cfg.fontData,
		quantize: cfg.quantize,
		lang:     language.NewLanguage(cfg.language),
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		widths: cache.New[widthKey, float32](cfg.cacheSize),
	}, nil
}

var (
	defaultOnce     sync.Once
	defaultMeasurer *Measurer
	defaultErr      error
)

// Default returns a shared Measurer for Go Regular.
func Default() (*Measurer, error) {
	defaultOnce.Do(func() {
		defaultMeasurer, defaultErr = NewMeasurer()
	})
	return defaultMeasurer, defaultErr
}

// FontData returns the raw font file the measurer shapes with, so a
// renderer can rasterize with the same outlines.
func (m *Measurer) FontData() []byte { return m.data }

// PixelSize returns the size actually used for a requested size: rounded
// to a whole pixel (minimum 1) when quantization is on.
func (m *Measurer) PixelSize(size float32) float32 {
	if !m.quantize {
		return size
	}
	px := float32(math.Round(float64(size)))
	if px < 1 {
		px = 1
	}
	return px
}

// MeasureLine returns the advance width of line at the given size.
// Newlines are not interpreted; split multi-line text first.
func (m *Measurer) MeasureLine(line string, size float32) float32 {
	if line == "" || size <= 0 {
		return 0
	}
	px := m.PixelSize(size)
	key := widthKey{line: line, sizeBits: math.Float32bits(px)}
	return m.widths.GetOrCreate(key, func() float32 {
		return m.shape(line, px)
	})
}

// CacheStats exposes the width cache statistics.
func (m *Measurer) CacheStats() cache.Stats {
	return m.widths.Stats()
}

func (m *Measurer) shape(line string, px float32) float32 {
	runes := []rune(line)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: lineDirection(line),
		Face:      font.NewFace(m.font),
		Size:      fixed.Int26_6(px * 64),
		Script:    detectScript(runes),
		Language:  m.lang,
	}

	hb := m.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	m.shaperPool.Put(hb)

	adv := float32(out.Advance) / 64
	if adv < 0 {
		adv = -adv
	}
	return adv
}

// lineDirection resolves the paragraph direction of a single line: RTL
// when the bidi algorithm produces a single right-to-left run.
func lineDirection(line string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(line); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() != 1 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
