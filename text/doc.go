// Package text measures text labels for the canvas.
//
// A Measurer shapes one line at a time with go-text/typesetting's HarfBuzz
// port and reports its advance width. Like a glyph rasterizer, it works at
// whole pixel sizes by default, so a label resized to 37.4px is measured as
// 37px. Callers must tolerate a few pixels of difference between the
// geometric prediction (size × scale) and the measured box.
//
//	m, err := text.NewMeasurer()             // Go Regular
//	w := m.MeasureLine("Hello, canvas", 24)  // width in pixels
//
// Results are memoized in an LRU keyed by line and pixel size.
package text
