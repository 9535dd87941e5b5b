package effects

import (
	"math"

	"github.com/gogpu/fx/noise"
)

// CPU evaluators for the overlay and distortion effects. Each mirrors the
// WGSL source of the same effect. Overlay evaluators return near-zero
// output for "no effect" pixels so additive composition leaves the
// backdrop untouched.

func evalPassthrough(u, v float64, _ *Uniforms, content Sampler) (r, g, b, a float64) {
	if content != nil {
		return content.Sample(u, v)
	}
	return 0, 0, 0, 0
}

// centered returns the pixel offset from the effect center, corrected for
// the region's aspect ratio so rings stay circular.
func centered(u, v float64, un *Uniforms) (dx, dy float64) {
	aspect := 1.0
	if un.Resolution[1] > 0 {
		aspect = un.Resolution[0] / un.Resolution[1]
	}
	return (u - un.Center[0]) * aspect, v - un.Center[1]
}

func evalScoreBurst(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	dx, dy := centered(u, v, un)
	dist := math.Hypot(dx, dy)

	radius := un.Progress * 0.9
	fade := 1 - un.Progress
	ring := smoothstep(0.08, 0.0, math.Abs(dist-radius))

	// Per-ray spark strength, fixed per instance.
	angle := math.Atan2(dy, dx)/(2*math.Pi) + 0.5
	ray := noise.Hash3(noise.V3(math.Floor(angle*24), 7.0, 13.0))
	spark := ring * ray * ray

	str := un.Intensity * fade
	pc := un.PrimaryColor
	sc := un.SecondaryColor
	r = (pc[0]*ring + sc[0]*spark) * str
	g = (pc[1]*ring + sc[1]*spark) * str
	b = (pc[2]*ring + sc[2]*spark) * str
	return r, g, b, clamp01((ring + spark) * str)
}

func evalGoalFlash(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	fade := (1 - un.Progress) * (1 - un.Progress)
	flicker := 0.9 + 0.1*math.Sin(un.Time*40)
	str := un.Intensity * fade * flicker
	pc := un.PrimaryColor
	return pc[0] * str, pc[1] * str, pc[2] * str, clamp01(str)
}

func evalSlideWipe(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	const w = 0.12
	pos := un.Progress*(1+2*w) - w
	band := smoothstep(w, 0, math.Abs(u-pos))
	str := band * un.Intensity
	pc := un.PrimaryColor
	return pc[0] * str, pc[1] * str, pc[2] * str, clamp01(str)
}

func evalDissolve(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	n := (noise.Value3D(noise.V3(u*9, v*9, 3.17)) + 1) * 0.5
	edge := smoothstep(0.08, 0.0, math.Abs(n-un.Progress))
	str := edge * un.Intensity * (1 - un.Progress*0.5)
	pc := un.PrimaryColor
	return pc[0] * str, pc[1] * str, pc[2] * str, clamp01(str)
}

func evalConfetti(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	const columns = 24.0
	col := math.Floor(u * columns)
	jitter := noise.Hash3(noise.V3(col, 1.0, 9.0))
	speed := 0.6 + 0.8*noise.Hash3(noise.V3(col, 2.0, 9.0))

	// Particle falls from the top; fract keeps it recycling within the
	// effect's lifetime.
	particleY := fract(jitter + un.Progress*1.4*speed)
	dy := math.Abs(v - particleY)
	dx := math.Abs(u*columns - col - 0.5)

	dot := smoothstep(0.035, 0.0, dy) * smoothstep(0.45, 0.1, dx)
	fade := 1 - un.Progress
	str := dot * un.Intensity * fade

	c := un.PrimaryColor
	if noise.Hash3(noise.V3(col, 3.0, 9.0)) > 0.5 {
		c = un.SecondaryColor
	}
	return c[0] * str, c[1] * str, c[2] * str, clamp01(str)
}

func evalFireworks(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	for i := 0.0; i < 3; i++ {
		local := clamp01((un.Progress - i*0.22) / 0.55)
		if local <= 0 || local >= 1 {
			continue
		}
		cx := 0.2 + 0.6*noise.Hash3(noise.V3(i, 11.0, 5.0))
		cy := 0.2 + 0.5*noise.Hash3(noise.V3(i, 17.0, 5.0))
		dx := u - cx
		dy := v - cy
		dist := math.Hypot(dx, dy)

		radius := local * 0.35
		ring := smoothstep(0.05, 0.0, math.Abs(dist-radius))
		angle := math.Atan2(dy, dx)
		ray := noise.Hash3(noise.V3(math.Floor(angle*8), i, 23.0))
		spark := ring * step(0.35, ray)
		str := spark * un.Intensity * (1 - local)

		c := un.PrimaryColor
		if math.Mod(i, 2) == 1 {
			c = un.SecondaryColor
		}
		r += c[0] * str
		g += c[1] * str
		b += c[2] * str
		a += str
	}
	return r, g, b, clamp01(a)
}

func evalShockwave(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	dx, dy := centered(u, v, un)
	dist := math.Hypot(dx, dy)

	radius := un.Progress * 1.1
	fade := 1 - un.Progress
	const fringe = 0.012
	ringR := smoothstep(0.03, 0.0, math.Abs(dist-radius-fringe))
	ringG := smoothstep(0.03, 0.0, math.Abs(dist-radius))
	ringB := smoothstep(0.03, 0.0, math.Abs(dist-radius+fringe))

	str := un.Intensity * fade
	pc := un.PrimaryColor
	return pc[0] * ringR * str, pc[1] * ringG * str, pc[2] * ringB * str,
		clamp01(ringG * str)
}

func evalPulseGlow(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	dx, dy := centered(u, v, un)
	d2 := dx*dx + dy*dy

	breath := 0.6 + 0.4*math.Sin(un.Time*2*math.Pi)
	envelope := math.Sin(un.Progress * math.Pi)
	glow := math.Exp(-d2/0.08) * breath * envelope * un.Intensity

	pc := un.PrimaryColor
	return pc[0] * glow, pc[1] * glow, pc[2] * glow, clamp01(glow)
}

func evalShimmer(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	diag := (u + v) * 0.5
	band := smoothstep(0.16, 0.0, math.Abs(diag-un.Progress))

	sparkle := 0.0
	if noise.Hash3(noise.V3(math.Floor(u*140), math.Floor(v*140), math.Floor(un.Time*30))) > 0.92 {
		sparkle = band
	}

	str := un.Intensity
	pc := un.PrimaryColor
	sc := un.SecondaryColor
	r = (pc[0]*band*0.6 + sc[0]*sparkle) * str
	g = (pc[1]*band*0.6 + sc[1]*sparkle) * str
	b = (pc[2]*band*0.6 + sc[2]*sparkle) * str
	return r, g, b, clamp01((band*0.6 + sparkle) * str)
}

func evalRipple(u, v float64, un *Uniforms, content Sampler) (r, g, b, a float64) {
	if content == nil {
		return 0, 0, 0, 0
	}
	dx, dy := centered(u, v, un)
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		return content.Sample(u, v)
	}

	damp := 1 - un.Progress
	offset := math.Sin(dist*42-un.Time*6*math.Pi) * 0.02 * un.Intensity * damp
	return content.Sample(u+offset*dx/dist, v+offset*dy/dist)
}

func evalHeatHaze(u, v float64, un *Uniforms, content Sampler) (r, g, b, a float64) {
	if content == nil {
		return 0, 0, 0, 0
	}
	oct := noise.ClampOctaves(4, octaveLimit(un))
	ox := noise.FBM(noise.V3(u*6, v*6-un.Time*1.4, 0.7), noise.Simplex3D, oct)
	oy := noise.FBM(noise.V3(u*6+5.2, v*6-un.Time*1.4, 2.3), noise.Simplex3D, oct)
	amt := 0.015 * un.Intensity
	return content.Sample(u+ox*amt, v+oy*amt)
}

func evalGlitch(u, v float64, un *Uniforms, content Sampler) (r, g, b, a float64) {
	if content == nil {
		return 0, 0, 0, 0
	}
	slice := math.Floor(v * 16)
	h := noise.Hash3(noise.V3(slice, math.Floor(un.Time*20), 3.0))
	if h < 0.7 {
		return content.Sample(u, v)
	}

	dx := (h - 0.85) * 0.25 * un.Intensity
	split := 0.008 * un.Intensity
	r, _, _, _ = content.Sample(u+dx+split, v)
	_, g, _, _ = content.Sample(u+dx, v)
	_, _, b, a = content.Sample(u+dx-split, v)
	return r, g, b, a
}

func octaveLimit(un *Uniforms) int {
	if un.OctaveLimit > 0 {
		return un.OctaveLimit
	}
	return noise.MaxOctaves
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}
