// Package voxel meshes and draws cubic chunks of blocks.
//
// A chunk derives per-face visibility from its blocks, merges visible faces
// into larger quads, and at draw time projects only its eight corners through
// the camera transform. The rest of its (D+1)^3 lattice is filled by linear
// interpolation, and only faces pointing toward the camera are submitted to
// the renderer.
package voxel
