// Package persist saves and loads the world-space content of a scene as a
// YAML document.
//
// Loading goes through the scene's public constructors, so every element
// gets a freshly computed bounding box and the same invariants as one
// created interactively. Stored ids are kept and the scene's id counter is
// moved past them. Screen-space overlays are never written.
//
// Image elements store their original file bytes (base64) and are decoded
// again on load.
package persist
