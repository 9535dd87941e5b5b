package effects

import (
	"math"

	"github.com/gogpu/fx/noise"
)

// evalLiquid renders the continuous generative pattern: domain-warped
// fractal noise with hue cycling, vignette and grain.
//
// Time enters only through the loop phase. The sample trajectory is a
// closed circle in noise space — (cos φ, sin φ) offsets — so the pattern
// returns exactly to its starting point every loop, which is what makes
// exported loops seamless.
func evalLiquid(u, v float64, un *Uniforms, _ Sampler) (r, g, b, a float64) {
	p := un.Pattern
	oct := noise.ClampOctaves(p.Octaves, octaveLimit(un))
	base := p.Noise.base(p.CellSize)

	aspect := 1.0
	if un.Resolution[1] > 0 {
		aspect = un.Resolution[0] / un.Resolution[1]
	}
	scale := p.NoiseScale
	if scale <= 0 {
		scale = 1
	}

	const orbit = 1.3 // radius of the closed loop trajectory in noise space
	q := noise.V3(
		u*scale*aspect+math.Cos(un.Phase)*orbit,
		v*scale+math.Sin(un.Phase)*orbit,
		p.Seed,
	)

	// Two-pass domain warp.
	w1 := noise.FBM(q, base, oct)
	w2 := noise.FBM(q.Add(noise.V3(5.2, 1.3, 0)), base, oct)
	f := noise.FBM(q.Add(noise.V3(w1, w2, 0).Scale(p.DistortionAmount)), base, oct)

	hue := p.ColorShift + p.ColorSpeed*(un.Phase/(2*math.Pi))*360 + f*60
	val := p.Brightness * (0.55 + 0.45*f)

	// Cellular kinds darken toward cell edges for a mosaic look.
	if p.Noise == NoiseVoronoi || p.Noise == NoiseWorley {
		_, edge := noise.Voronoi(q, p.CellSize)
		val *= clamp01(edge * p.CellEdge * 4)
	}

	if p.Vignette > 0 {
		d := math.Hypot(u-0.5, v-0.5)
		val *= 1 - p.Vignette*smoothstep(0.35, 0.85, d)
	}
	if p.Grain > 0 {
		val += noise.White3D(noise.V3(u*531, v*917, un.Phase)) * p.Grain * 0.06
	}

	r, g, b = noise.HSVToRGB(hue, p.Saturation, clamp01(val))

	// Tint toward the configured colors when the effect carries them.
	pc := un.PrimaryColor
	sc := un.SecondaryColor
	if pc[3] > 0 || sc[3] > 0 {
		t := clamp01((f + 1) * 0.5)
		r = mix(r, mix(pc[0], sc[0], t), 0.35)
		g = mix(g, mix(pc[1], sc[1], t), 0.35)
		b = mix(b, mix(pc[2], sc[2], t), 0.35)
	}

	return r, g, b, clamp01(un.Intensity)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
