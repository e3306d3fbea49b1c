// Package quarkgl provides a minimal, predictable fixed-point software 3D pipeline for
// Spark userland.
//
// Pipeline (fixed):
//
//	Indexed vertices → Transform → Near clip → Perspective → Rasterization (z-test) → Target.
//
// All math is Q16.16 (Scalar); there is no floating point on the hot path. The renderer
// draws into a caller-provided Target and reuses its depth buffer between frames.
//
// DrawArray accepts positions that the caller already transformed (resetProcessed=false),
// which lets callers share one projected vertex lattice across many primitives.
package quarkgl
