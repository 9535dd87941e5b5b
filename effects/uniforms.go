package effects

import "github.com/gogpu/fx/noise"

// Uniform names shared by the WGSL sources and the program manager's
// presence map. A program only exposes the subset its shader declares;
// writing any other name is a silent no-op.
const (
	UniformTime           = "time"
	UniformProgress       = "progress"
	UniformIntensity      = "intensity"
	UniformPrimaryColor   = "primaryColor"
	UniformSecondaryColor = "secondaryColor"
	UniformCenter         = "center"
	UniformResolution     = "resolution"
	UniformPhase          = "phase"
	UniformSeed           = "seed"
	UniformColorShift     = "colorShift"
	UniformColorSpeed     = "colorSpeed"
	UniformNoiseScale     = "noiseScale"
	UniformDistortion     = "distortionAmount"
	UniformSaturation     = "saturation"
	UniformBrightness     = "brightness"
	UniformVignette       = "vignette"
	UniformGrain          = "grain"
	UniformCellSize       = "cellSize"
	UniformCellEdge       = "cellEdge"
	UniformOctaves        = "octaves"
	UniformNoiseKind      = "noiseKind"
)

// NoiseKind selects the base noise of a generative pattern.
type NoiseKind uint8

// Pattern noise kinds, in persisted-name order.
const (
	NoiseSimplex NoiseKind = iota
	NoisePerlin
	NoiseValue
	NoiseVoronoi
	NoiseWorley
	NoiseWhite
)

// ParseNoiseKind maps a persisted noise-type name to its kind.
// Unknown names fall back to simplex.
func ParseNoiseKind(name string) NoiseKind {
	switch name {
	case "perlin":
		return NoisePerlin
	case "value":
		return NoiseValue
	case "voronoi":
		return NoiseVoronoi
	case "worley":
		return NoiseWorley
	case "white":
		return NoiseWhite
	default:
		return NoiseSimplex
	}
}

// String returns the persisted name of the noise kind.
func (k NoiseKind) String() string {
	switch k {
	case NoisePerlin:
		return "perlin"
	case NoiseValue:
		return "value"
	case NoiseVoronoi:
		return "voronoi"
	case NoiseWorley:
		return "worley"
	case NoiseWhite:
		return "white"
	default:
		return "simplex"
	}
}

// base returns the scalar noise function for the kind. Voronoi-family
// kinds take their cell size from the pattern.
func (k NoiseKind) base(cellSize float64) noise.Func {
	switch k {
	case NoisePerlin:
		return noise.Perlin3D
	case NoiseValue:
		return noise.Value3D
	case NoiseVoronoi:
		return func(p noise.Vec3) float64 {
			minDist, _ := noise.Voronoi(p, cellSize)
			d := minDist*2 - 1
			if d > 1 {
				d = 1
			}
			return d
		}
	case NoiseWorley:
		return func(p noise.Vec3) float64 { return noise.Worley(p, cellSize) }
	case NoiseWhite:
		return noise.White3D
	default:
		return noise.Simplex3D
	}
}

// Pattern carries the generative-pattern parameter set in resolved,
// numeric form. The preset package owns the persisted representation and
// its defaults; by the time a Pattern reaches an evaluator every field is
// populated.
type Pattern struct {
	Seed             float64
	ColorShift       float64 // base hue offset, degrees
	ColorSpeed       float64 // hue cycles per loop; 0 means static hue
	DistortionAmount float64 // domain warp strength
	NoiseScale       float64
	Speed            float64
	Octaves          int
	Saturation       float64
	Brightness       float64
	Vignette         float64
	Grain            float64
	Noise            NoiseKind
	CellSize         float64
	CellEdge         float64
	LoopDuration     float64 // seconds, > 0
}

// Uniforms is the full uniform surface of the effect shaders. Each
// compiled program consumes only the subset its source declares.
//
// Colors are RGBA components in [0, 1]. Center is in [0, 1]^2 of the
// render region. Resolution is in device pixels. Phase is the generative
// loop phase in [0, 2π); see the loop invariant on Pattern.LoopDuration.
type Uniforms struct {
	Time           float64
	Progress       float64
	Intensity      float64
	PrimaryColor   [4]float64
	SecondaryColor [4]float64
	Center         [2]float64
	Resolution     [2]float64
	Phase          float64
	Pattern        Pattern

	// OctaveLimit caps FBM octaves; preview contexts pass
	// noise.PreviewMaxOctaves. Zero means the full budget.
	OctaveLimit int
}

// Sampler provides read access to the captured content texture for
// distortion evaluators. Coordinates are normalized to [0, 1] and clamped
// at the edges.
type Sampler interface {
	Sample(u, v float64) (r, g, b, a float64)
}

// Evaluator is the CPU form of an effect fragment shader. u and v are the
// normalized pixel coordinate; content is nil for overlay and generative
// effects. The returned components are not premultiplied and are clamped
// by the caller.
type Evaluator func(u, v float64, un *Uniforms, content Sampler) (r, g, b, a float64)
