// Package imageio turns raw image file bytes into textures for image
// elements.
//
// PNG, JPEG and GIF are decoded by the standard library; BMP, WebP and TIFF
// by golang.org/x/image. Decoded pixels are converted to premultiplied
// RGBA once, at import time, so render backends can draw them directly.
//
//	data, _ := os.ReadFile("photo.webp")
//	tex, format, err := imageio.Decode(data)
//	if err != nil { ... }
//	id, err := scene.AddImage(pos, tex, data, "photo.webp")
package imageio
