package canvas

import (
	"strings"
	"unicode/utf8"
)

// LineHeightFactor is the ratio of line pitch to font size for text labels.
const LineHeightFactor = 1.2

// TextMeasurer reports the advance width of a single line of text at a
// pixel font size. Implementations may rasterize at a slightly different
// size than requested (integer pixel sizes, hinting), so widths are not
// guaranteed to scale exactly linearly with size.
type TextMeasurer interface {
	MeasureLine(line string, size float32) float32
}

// FixedAdvance is a TextMeasurer where every rune advances by the given
// fraction of the font size. It is deterministic and font-free.
type FixedAdvance float32

// MeasureLine implements TextMeasurer.
func (f FixedAdvance) MeasureLine(line string, size float32) float32 {
	return float32(utf8.RuneCountInString(line)) * float32(f) * size
}

// Lines splits label content into lines. Empty content has one empty line.
func Lines(content string) []string {
	return strings.Split(content, "\n")
}

// TextSize returns the unscaled width and height of a text label.
// Height is lineCount × fontSize × LineHeightFactor.
func TextSize(m TextMeasurer, content string, fontSize float32) (w, h float32) {
	lines := Lines(content)
	for _, line := range lines {
		w = max32(w, m.MeasureLine(line, fontSize))
	}
	h = float32(len(lines)) * fontSize * LineHeightFactor
	return w, h
}

// Bounds computes the element's bounding box from its transform and
// payload. For text, rectangles and images the top edge equals
// Transform.Position.Y and the left edge equals Transform.Position.X.
// Arrows are bounded by their polyline, grown by half the larger of line
// thickness and head size.
func (e *Element) Bounds(m TextMeasurer) Rect {
	p := e.Transform.Position
	s := e.Transform.Scale
	switch d := e.Data.(type) {
	case *Text:
		w, h := TextSize(m, d.Content, d.FontSize)
		return topLeftRect(p, w*s.X, h*s.Y)
	case *Rectangle:
		return topLeftRect(p, d.Width*s.X, d.Height*s.Y)
	case *Image:
		return topLeftRect(p, float32(d.PixelWidth)*s.X, float32(d.PixelHeight)*s.Y)
	case *Arrow:
		r := RectFromPoints(d.Points(p, s)...)
		return r.Outset(max32(d.Thickness, d.HeadSize) / 2)
	default:
		return Rect{X: p.X, Y: p.Y}
	}
}

func topLeftRect(p Vec2, w, h float32) Rect {
	return Rect{X: p.X, Y: p.Y - h, W: w, H: h}
}
