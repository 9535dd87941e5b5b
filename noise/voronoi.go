// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package noise

import "math"

// Voronoi evaluates 2D cellular noise over a grid of jittered feature
// points, with the z component of p animating the jitter. cellSize scales
// the cell grid; values <= 0 are treated as 1.
//
// It returns the distance to the nearest feature point (minDist) and an
// approximation of the distance to the nearest cell edge (edgeDist).
// Both are non-negative; minDist is bounded by the cell diagonal.
func Voronoi(p Vec3, cellSize float64) (minDist, edgeDist float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	px := p.X / cellSize
	py := p.Y / cellSize

	ix := math.Floor(px)
	iy := math.Floor(py)
	fx := px - ix
	fy := py - iy

	minDist = math.MaxFloat64
	second := math.MaxFloat64

	for dy := -1.0; dy <= 1; dy++ {
		for dx := -1.0; dx <= 1; dx++ {
			cell := Vec3{ix + dx, iy + dy, 0}
			j := hash3v(cell)
			// Feature point drifts on a small circle over time so the
			// cells breathe without ever leaving their cell.
			ox := dx + 0.5 + 0.4*math.Sin(p.Z+6.2831*j.X)
			oy := dy + 0.5 + 0.4*math.Sin(p.Z+6.2831*j.Y)
			ddx := ox - fx
			ddy := oy - fy
			d := ddx*ddx + ddy*ddy
			if d < minDist {
				second = minDist
				minDist = d
			} else if d < second {
				second = d
			}
		}
	}

	minDist = math.Sqrt(minDist)
	// Half the gap between the two nearest features approximates the
	// perpendicular distance to the shared edge.
	edgeDist = (math.Sqrt(second) - minDist) * 0.5
	return minDist, edgeDist
}

// Worley returns cellular noise in [-1, 1] derived from the Voronoi
// minimum distance: -1 at a feature point rising toward 1 at the far
// corners of a cell.
func Worley(p Vec3, cellSize float64) float64 {
	minDist, _ := Voronoi(p, cellSize)
	// minDist is at most ~sqrt(2) half-diagonals for jittered cells.
	v := minDist*2 - 1
	return clamp1(v)
}
