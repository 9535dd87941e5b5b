// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package noise provides deterministic 3D gradient and cellular noise.
//
// Every function is pure: repeated evaluation at identical floating-point
// inputs reproduces bit-identical results. This is what makes rendered
// animation seekable — re-evaluating a frame at the same (position, time)
// must reproduce the same pixel. The same algorithms exist as a WGSL
// preamble in the effects package; the two contexts differ only in
// precision and octave budget.
package noise

import "math"

// Vec3 is a point in noise space. The z component usually carries time.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Hash3 maps a point to a pseudo-random value in [0, 1).
// The construction mirrors the canonical GLSL fract(sin(dot)) hash so the
// CPU and shader contexts agree on cell randomness.
func Hash3(p Vec3) float64 {
	d := p.X*127.1 + p.Y*311.7 + p.Z*74.7
	return fract(math.Sin(d) * 43758.5453123)
}

// hash3v maps a point to three independent pseudo-random values in [0, 1).
func hash3v(p Vec3) Vec3 {
	return Vec3{
		X: Hash3(p),
		Y: Hash3(Vec3{p.X + 19.19, p.Y + 47.31, p.Z + 101.7}),
		Z: Hash3(Vec3{p.X - 31.33, p.Y - 17.07, p.Z - 61.1}),
	}
}

// grad returns a pseudo-random gradient component in [-1, 1).
func grad(p Vec3) float64 {
	return Hash3(p)*2 - 1
}

// White3D returns uncorrelated white noise in [-1, 1].
func White3D(p Vec3) float64 {
	return Hash3(p)*2 - 1
}

// Value3D returns trilinearly interpolated value noise in [-1, 1].
func Value3D(p Vec3) float64 {
	ix, fx := math.Floor(p.X), 0.0
	iy, fy := math.Floor(p.Y), 0.0
	iz, fz := math.Floor(p.Z), 0.0
	fx, fy, fz = p.X-ix, p.Y-iy, p.Z-iz

	ux, uy, uz := fade(fx), fade(fy), fade(fz)

	c := func(dx, dy, dz float64) float64 {
		return Hash3(Vec3{ix + dx, iy + dy, iz + dz})
	}

	x00 := lerp(c(0, 0, 0), c(1, 0, 0), ux)
	x10 := lerp(c(0, 1, 0), c(1, 1, 0), ux)
	x01 := lerp(c(0, 0, 1), c(1, 0, 1), ux)
	x11 := lerp(c(0, 1, 1), c(1, 1, 1), ux)

	y0 := lerp(x00, x10, uy)
	y1 := lerp(x01, x11, uy)

	return clamp1(lerp(y0, y1, uz)*2 - 1)
}

// Perlin3D returns classic gradient (Perlin) noise in [-1, 1].
func Perlin3D(p Vec3) float64 {
	ix := math.Floor(p.X)
	iy := math.Floor(p.Y)
	iz := math.Floor(p.Z)
	fx := p.X - ix
	fy := p.Y - iy
	fz := p.Z - iz

	ux, uy, uz := fade(fx), fade(fy), fade(fz)

	dot := func(dx, dy, dz float64) float64 {
		cell := Vec3{ix + dx, iy + dy, iz + dz}
		g := hash3v(cell)
		// Gradient components in [-1, 1).
		gx, gy, gz := g.X*2-1, g.Y*2-1, g.Z*2-1
		return gx*(fx-dx) + gy*(fy-dy) + gz*(fz-dz)
	}

	x00 := lerp(dot(0, 0, 0), dot(1, 0, 0), ux)
	x10 := lerp(dot(0, 1, 0), dot(1, 1, 0), ux)
	x01 := lerp(dot(0, 0, 1), dot(1, 0, 1), ux)
	x11 := lerp(dot(0, 1, 1), dot(1, 1, 1), ux)

	y0 := lerp(x00, x10, uy)
	y1 := lerp(x01, x11, uy)

	// Normalization for random gradients in the unit cube.
	return clamp1(lerp(y0, y1, uz) * 1.154)
}

// Simplex3D returns simplex noise in [-1, 1].
//
// This is the skew/unskew formulation over a tetrahedral grid with
// hash-derived gradients, matching the WGSL port in the effects package.
func Simplex3D(p Vec3) float64 {
	const f3 = 1.0 / 3.0
	const g3 = 1.0 / 6.0

	s := (p.X + p.Y + p.Z) * f3
	i := math.Floor(p.X + s)
	j := math.Floor(p.Y + s)
	k := math.Floor(p.Z + s)

	t := (i + j + k) * g3
	x0 := p.X - (i - t)
	y0 := p.Y - (j - t)
	z0 := p.Z - (k - t)

	// Rank the components to pick the simplex traversal order.
	var i1, j1, k1, i2, j2, k2 float64
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= z0 && z0 > y0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case z0 > x0 && x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case y0 > x0 && x0 >= z0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	case y0 >= z0 && z0 > x0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	}

	x1 := x0 - i1 + g3
	y1 := y0 - j1 + g3
	z1 := z0 - k1 + g3
	x2 := x0 - i2 + 2*g3
	y2 := y0 - j2 + 2*g3
	z2 := z0 - k2 + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	contrib := func(x, y, z, ci, cj, ck float64) float64 {
		t := 0.6 - x*x - y*y - z*z
		if t < 0 {
			return 0
		}
		g := hash3v(Vec3{i + ci, j + cj, k + ck})
		gx, gy, gz := g.X*2-1, g.Y*2-1, g.Z*2-1
		t *= t
		return t * t * (gx*x + gy*y + gz*z)
	}

	n := contrib(x0, y0, z0, 0, 0, 0) +
		contrib(x1, y1, z1, i1, j1, k1) +
		contrib(x2, y2, z2, i2, j2, k2) +
		contrib(x3, y3, z3, 1, 1, 1)

	return clamp1(n * 32.0)
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

// clamp1 clamps v to [-1, 1]. The gradient formulations above stay inside
// the interval analytically; the clamp pins down floating-point spill at
// the extremes so the FBM amplitude bound holds exactly.
func clamp1(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
