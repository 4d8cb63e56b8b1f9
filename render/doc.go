// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws a canvas scene through a pluggable Backend.
//
// Draw walks the scene in z-order, converts each visible element to
// viewport pixels with the camera and issues one call per element kind.
// World-space elements come first; screen-space overlays are drawn last so
// they stay on top. Backends never see world coordinates.
//
// Two backends are provided:
//
//   - Recorder keeps the issued calls as typed commands for inspection
//   - Raster rasterizes into an *image.RGBA using golang.org/x/image
//
// Usage:
//
//	r := render.NewRaster()
//	if err := render.Draw(scene, cam, r); err != nil {
//	    return err
//	}
//	err := r.SavePNG("frame.png")
//
// Screen-space elements are positioned in viewport pixels with Y growing
// downwards, and are not affected by the camera.
package render
