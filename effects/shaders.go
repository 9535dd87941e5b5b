// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package effects

// WGSL sources for the GPU rendering context. Every program shares the
// quad vertex stage; each fragment stage declares a Uniforms struct with
// exactly the fields it consumes — the program manager parses that block
// to build its uniform presence map.
//
// The noise preamble is the WGSL port of the noise package. The two must
// evolve together; they differ only in precision (f32 vs float64) and in
// the octave budget applied by the caller.

// VertexSource returns the shared full-screen-quad vertex stage. The quad
// is four vertices drawn as a triangle strip.
func VertexSource() string { return quadVertexWGSL }

const quadVertexWGSL = `
struct VSOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> VSOut {
    var out: VSOut;
    out.pos = vec4<f32>(pos, 0.0, 1.0);
    out.uv = vec2<f32>(pos.x * 0.5 + 0.5, 0.5 - pos.y * 0.5);
    return out;
}
`

// noisePreambleWGSL mirrors the noise package: hash, value, simplex,
// cellular and FBM. Loops are bounded by the octave uniform, which the
// CPU side clamps before upload.
const noisePreambleWGSL = `
fn hash3(p: vec3<f32>) -> f32 {
    let d = dot(p, vec3<f32>(127.1, 311.7, 74.7));
    return fract(sin(d) * 43758.5453123);
}

fn hash3v(p: vec3<f32>) -> vec3<f32> {
    return vec3<f32>(
        hash3(p),
        hash3(p + vec3<f32>(19.19, 47.31, 101.7)),
        hash3(p - vec3<f32>(31.33, 17.07, 61.1)));
}

fn value_noise(p: vec3<f32>) -> f32 {
    let i = floor(p);
    let f = fract(p);
    let u = f * f * f * (f * (f * 6.0 - 15.0) + 10.0);
    let x00 = mix(hash3(i), hash3(i + vec3<f32>(1.0, 0.0, 0.0)), u.x);
    let x10 = mix(hash3(i + vec3<f32>(0.0, 1.0, 0.0)), hash3(i + vec3<f32>(1.0, 1.0, 0.0)), u.x);
    let x01 = mix(hash3(i + vec3<f32>(0.0, 0.0, 1.0)), hash3(i + vec3<f32>(1.0, 0.0, 1.0)), u.x);
    let x11 = mix(hash3(i + vec3<f32>(0.0, 1.0, 1.0)), hash3(i + vec3<f32>(1.0, 1.0, 1.0)), u.x);
    return clamp(mix(mix(x00, x10, u.y), mix(x01, x11, u.y), u.z) * 2.0 - 1.0, -1.0, 1.0);
}

fn grad_dot(cell: vec3<f32>, d: vec3<f32>) -> f32 {
    let g = hash3v(cell) * 2.0 - vec3<f32>(1.0);
    return dot(g, d);
}

fn perlin_noise(p: vec3<f32>) -> f32 {
    let i = floor(p);
    let f = fract(p);
    let u = f * f * f * (f * (f * 6.0 - 15.0) + 10.0);
    let x00 = mix(grad_dot(i, f), grad_dot(i + vec3<f32>(1.0, 0.0, 0.0), f - vec3<f32>(1.0, 0.0, 0.0)), u.x);
    let x10 = mix(grad_dot(i + vec3<f32>(0.0, 1.0, 0.0), f - vec3<f32>(0.0, 1.0, 0.0)),
                  grad_dot(i + vec3<f32>(1.0, 1.0, 0.0), f - vec3<f32>(1.0, 1.0, 0.0)), u.x);
    let x01 = mix(grad_dot(i + vec3<f32>(0.0, 0.0, 1.0), f - vec3<f32>(0.0, 0.0, 1.0)),
                  grad_dot(i + vec3<f32>(1.0, 0.0, 1.0), f - vec3<f32>(1.0, 0.0, 1.0)), u.x);
    let x11 = mix(grad_dot(i + vec3<f32>(0.0, 1.0, 1.0), f - vec3<f32>(0.0, 1.0, 1.0)),
                  grad_dot(i + vec3<f32>(1.0, 1.0, 1.0), f - vec3<f32>(1.0, 1.0, 1.0)), u.x);
    return clamp(mix(mix(x00, x10, u.y), mix(x01, x11, u.y), u.z) * 1.154, -1.0, 1.0);
}

fn simplex_noise(p: vec3<f32>) -> f32 {
    let f3 = 1.0 / 3.0;
    let g3 = 1.0 / 6.0;
    let s = (p.x + p.y + p.z) * f3;
    let ijk = floor(p + vec3<f32>(s));
    let t = (ijk.x + ijk.y + ijk.z) * g3;
    let d0 = p - (ijk - vec3<f32>(t));

    var e = step(vec3<f32>(0.0), d0 - d0.yzx);
    let i1 = e * (1.0 - e.zxy);
    let i2 = 1.0 - e.zxy * (1.0 - e);

    let d1 = d0 - i1 + vec3<f32>(g3);
    let d2 = d0 - i2 + vec3<f32>(2.0 * g3);
    let d3 = d0 - vec3<f32>(1.0) + vec3<f32>(3.0 * g3);

    var n = 0.0;
    var t0 = 0.6 - dot(d0, d0);
    if (t0 > 0.0) { t0 = t0 * t0; n = n + t0 * t0 * grad_dot(ijk, d0); }
    var t1 = 0.6 - dot(d1, d1);
    if (t1 > 0.0) { t1 = t1 * t1; n = n + t1 * t1 * grad_dot(ijk + i1, d1); }
    var t2 = 0.6 - dot(d2, d2);
    if (t2 > 0.0) { t2 = t2 * t2; n = n + t2 * t2 * grad_dot(ijk + i2, d2); }
    var t3 = 0.6 - dot(d3, d3);
    if (t3 > 0.0) { t3 = t3 * t3; n = n + t3 * t3 * grad_dot(ijk + vec3<f32>(1.0), d3); }
    return clamp(n * 32.0, -1.0, 1.0);
}

fn voronoi_noise(p: vec3<f32>, cellSize: f32) -> vec2<f32> {
    let cs = max(cellSize, 1e-4);
    let q = p.xy / cs;
    let i = floor(q);
    let f = fract(q);
    var minDist = 1e9;
    var second = 1e9;
    for (var dy = -1; dy <= 1; dy = dy + 1) {
        for (var dx = -1; dx <= 1; dx = dx + 1) {
            let cell = vec3<f32>(i + vec2<f32>(f32(dx), f32(dy)), 0.0);
            let j = hash3v(cell);
            let o = vec2<f32>(f32(dx), f32(dy)) + vec2<f32>(0.5)
                + 0.4 * sin(vec2<f32>(p.z) + 6.2831 * j.xy);
            let dd = o - f;
            let d = dot(dd, dd);
            if (d < minDist) { second = minDist; minDist = d; }
            else if (d < second) { second = d; }
        }
    }
    let m = sqrt(minDist);
    return vec2<f32>(m, (sqrt(second) - m) * 0.5);
}

fn worley_noise(p: vec3<f32>, cellSize: f32) -> f32 {
    return clamp(voronoi_noise(p, cellSize).x * 2.0 - 1.0, -1.0, 1.0);
}

fn base_noise(p: vec3<f32>, kind: u32, cellSize: f32) -> f32 {
    switch kind {
        case 1u: { return perlin_noise(p); }
        case 2u: { return value_noise(p); }
        case 3u: { return clamp(voronoi_noise(p, cellSize).x * 2.0 - 1.0, -1.0, 1.0); }
        case 4u: { return worley_noise(p, cellSize); }
        case 5u: { return hash3(p) * 2.0 - 1.0; }
        default: { return simplex_noise(p); }
    }
}

fn fbm(p: vec3<f32>, kind: u32, cellSize: f32, octaves: u32) -> f32 {
    var sum = 0.0;
    var amplitude = 0.5;
    var freq = 1.0;
    // Octave count is clamped on the CPU; the hard bound here is the last
    // line of defense against a driver watchdog reset.
    let n = min(octaves, 8u);
    for (var i = 0u; i < n; i = i + 1u) {
        sum = sum + base_noise(p * freq, kind, cellSize) * amplitude;
        amplitude = amplitude * 0.5;
        freq = freq * 2.0;
    }
    return sum;
}
`

const passthroughFragmentWGSL = `
@group(0) @binding(1) var contentTex: texture_2d<f32>;
@group(0) @binding(2) var contentSampler: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(contentTex, contentSampler, uv);
}
`

const scoreBurstFragmentWGSL = `
struct Uniforms {
    time: f32,
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
    secondaryColor: vec4<f32>,
    center: vec2<f32>,
    resolution: vec2<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
` + noisePreambleWGSL + `
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let aspect = u.resolution.x / max(u.resolution.y, 1.0);
    let d = vec2<f32>((uv.x - u.center.x) * aspect, uv.y - u.center.y);
    let dist = length(d);

    let radius = u.progress * 0.9;
    let fade = 1.0 - u.progress;
    let ring = smoothstep(0.08, 0.0, abs(dist - radius));

    let angle = atan2(d.y, d.x) / 6.2831853 + 0.5;
    let ray = hash3(vec3<f32>(floor(angle * 24.0), 7.0, 13.0));
    let spark = ring * ray * ray;

    let str = u.intensity * fade;
    let rgb = (u.primaryColor.rgb * ring + u.secondaryColor.rgb * spark) * str;
    return vec4<f32>(rgb, clamp((ring + spark) * str, 0.0, 1.0));
}
`

const goalFlashFragmentWGSL = `
struct Uniforms {
    time: f32,
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let fade = (1.0 - u.progress) * (1.0 - u.progress);
    let flicker = 0.9 + 0.1 * sin(u.time * 40.0);
    let str = u.intensity * fade * flicker;
    return vec4<f32>(u.primaryColor.rgb * str, clamp(str, 0.0, 1.0));
}
`

const slideWipeFragmentWGSL = `
struct Uniforms {
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let w = 0.12;
    let pos = u.progress * (1.0 + 2.0 * w) - w;
    let band = smoothstep(w, 0.0, abs(uv.x - pos));
    let str = band * u.intensity;
    return vec4<f32>(u.primaryColor.rgb * str, clamp(str, 0.0, 1.0));
}
`

const dissolveFragmentWGSL = `
struct Uniforms {
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
` + noisePreambleWGSL + `
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let n = (value_noise(vec3<f32>(uv * 9.0, 3.17)) + 1.0) * 0.5;
    let edge = smoothstep(0.08, 0.0, abs(n - u.progress));
    let str = edge * u.intensity * (1.0 - u.progress * 0.5);
    return vec4<f32>(u.primaryColor.rgb * str, clamp(str, 0.0, 1.0));
}
`

const confettiFragmentWGSL = `
struct Uniforms {
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
    secondaryColor: vec4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
` + noisePreambleWGSL + `
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let columns = 24.0;
    let col = floor(uv.x * columns);
    let jitter = hash3(vec3<f32>(col, 1.0, 9.0));
    let speed = 0.6 + 0.8 * hash3(vec3<f32>(col, 2.0, 9.0));

    let particleY = fract(jitter + u.progress * 1.4 * speed);
    let dy = abs(uv.y - particleY);
    let dx = abs(uv.x * columns - col - 0.5);

    let dot_ = smoothstep(0.035, 0.0, dy) * smoothstep(0.45, 0.1, dx);
    let str = dot_ * u.intensity * (1.0 - u.progress);

    var c = u.primaryColor.rgb;
    if (hash3(vec3<f32>(col, 3.0, 9.0)) > 0.5) { c = u.secondaryColor.rgb; }
    return vec4<f32>(c * str, clamp(str, 0.0, 1.0));
}
`

const fireworksFragmentWGSL = `
struct Uniforms {
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
    secondaryColor: vec4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
` + noisePreambleWGSL + `
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    var acc = vec4<f32>(0.0);
    for (var i = 0.0; i < 3.0; i = i + 1.0) {
        let local = clamp((u.progress - i * 0.22) / 0.55, 0.0, 1.0);
        if (local <= 0.0 || local >= 1.0) { continue; }
        let c = vec2<f32>(
            0.2 + 0.6 * hash3(vec3<f32>(i, 11.0, 5.0)),
            0.2 + 0.5 * hash3(vec3<f32>(i, 17.0, 5.0)));
        let d = uv - c;
        let dist = length(d);

        let ring = smoothstep(0.05, 0.0, abs(dist - local * 0.35));
        let ray = hash3(vec3<f32>(floor(atan2(d.y, d.x) * 8.0), i, 23.0));
        let spark = ring * step(0.35, ray);
        let str = spark * u.intensity * (1.0 - local);

        var col = u.primaryColor.rgb;
        if (i == 1.0) { col = u.secondaryColor.rgb; }
        acc = acc + vec4<f32>(col * str, str);
    }
    return vec4<f32>(acc.rgb, clamp(acc.a, 0.0, 1.0));
}
`

const shockwaveFragmentWGSL = `
struct Uniforms {
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
    center: vec2<f32>,
    resolution: vec2<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let aspect = u.resolution.x / max(u.resolution.y, 1.0);
    let d = vec2<f32>((uv.x - u.center.x) * aspect, uv.y - u.center.y);
    let dist = length(d);

    let radius = u.progress * 1.1;
    let fade = 1.0 - u.progress;
    let fringe = 0.012;
    let ringR = smoothstep(0.03, 0.0, abs(dist - radius - fringe));
    let ringG = smoothstep(0.03, 0.0, abs(dist - radius));
    let ringB = smoothstep(0.03, 0.0, abs(dist - radius + fringe));

    let str = u.intensity * fade;
    let rgb = u.primaryColor.rgb * vec3<f32>(ringR, ringG, ringB) * str;
    return vec4<f32>(rgb, clamp(ringG * str, 0.0, 1.0));
}
`

const pulseGlowFragmentWGSL = `
struct Uniforms {
    time: f32,
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
    center: vec2<f32>,
    resolution: vec2<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let aspect = u.resolution.x / max(u.resolution.y, 1.0);
    let d = vec2<f32>((uv.x - u.center.x) * aspect, uv.y - u.center.y);
    let d2 = dot(d, d);

    let breath = 0.6 + 0.4 * sin(u.time * 6.2831853);
    let envelope = sin(u.progress * 3.14159265);
    let glow = exp(-d2 / 0.08) * breath * envelope * u.intensity;
    return vec4<f32>(u.primaryColor.rgb * glow, clamp(glow, 0.0, 1.0));
}
`

const shimmerFragmentWGSL = `
struct Uniforms {
    time: f32,
    progress: f32,
    intensity: f32,
    primaryColor: vec4<f32>,
    secondaryColor: vec4<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
` + noisePreambleWGSL + `
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let diag = (uv.x + uv.y) * 0.5;
    let band = smoothstep(0.16, 0.0, abs(diag - u.progress));

    var sparkle = 0.0;
    if (hash3(vec3<f32>(floor(uv * 140.0), floor(u.time * 30.0))) > 0.92) {
        sparkle = band;
    }

    let rgb = (u.primaryColor.rgb * band * 0.6 + u.secondaryColor.rgb * sparkle) * u.intensity;
    return vec4<f32>(rgb, clamp((band * 0.6 + sparkle) * u.intensity, 0.0, 1.0));
}
`

const rippleFragmentWGSL = `
struct Uniforms {
    time: f32,
    progress: f32,
    intensity: f32,
    center: vec2<f32>,
    resolution: vec2<f32>,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var contentTex: texture_2d<f32>;
@group(0) @binding(2) var contentSampler: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let aspect = u.resolution.x / max(u.resolution.y, 1.0);
    let d = vec2<f32>((uv.x - u.center.x) * aspect, uv.y - u.center.y);
    let dist = max(length(d), 1e-6);

    let damp = 1.0 - u.progress;
    let offset = sin(dist * 42.0 - u.time * 18.849556) * 0.02 * u.intensity * damp;
    return textureSample(contentTex, contentSampler, uv + offset * d / dist);
}
`

const heatHazeFragmentWGSL = `
struct Uniforms {
    time: f32,
    intensity: f32,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var contentTex: texture_2d<f32>;
@group(0) @binding(2) var contentSampler: sampler;
` + noisePreambleWGSL + `
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let ox = fbm(vec3<f32>(uv.x * 6.0, uv.y * 6.0 - u.time * 1.4, 0.7), 0u, 1.0, 4u);
    let oy = fbm(vec3<f32>(uv.x * 6.0 + 5.2, uv.y * 6.0 - u.time * 1.4, 2.3), 0u, 1.0, 4u);
    let amt = 0.015 * u.intensity;
    return textureSample(contentTex, contentSampler, uv + vec2<f32>(ox, oy) * amt);
}
`

const glitchFragmentWGSL = `
struct Uniforms {
    time: f32,
    intensity: f32,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var contentTex: texture_2d<f32>;
@group(0) @binding(2) var contentSampler: sampler;
` + noisePreambleWGSL + `
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let slice = floor(uv.y * 16.0);
    let h = hash3(vec3<f32>(slice, floor(u.time * 20.0), 3.0));
    if (h < 0.7) {
        return textureSample(contentTex, contentSampler, uv);
    }
    let dx = (h - 0.85) * 0.25 * u.intensity;
    let split = 0.008 * u.intensity;
    let r = textureSample(contentTex, contentSampler, uv + vec2<f32>(dx + split, 0.0));
    let g = textureSample(contentTex, contentSampler, uv + vec2<f32>(dx, 0.0));
    let b = textureSample(contentTex, contentSampler, uv + vec2<f32>(dx - split, 0.0));
    return vec4<f32>(r.r, g.g, b.b, g.a);
}
`

const liquidFragmentWGSL = `
struct Uniforms {
    intensity: f32,
    primaryColor: vec4<f32>,
    secondaryColor: vec4<f32>,
    resolution: vec2<f32>,
    phase: f32,
    seed: f32,
    colorShift: f32,
    colorSpeed: f32,
    noiseScale: f32,
    distortionAmount: f32,
    saturation: f32,
    brightness: f32,
    vignette: f32,
    grain: f32,
    cellSize: f32,
    cellEdge: f32,
    octaves: u32,
    noiseKind: u32,
};
@group(0) @binding(0) var<uniform> u: Uniforms;
` + noisePreambleWGSL + `
fn hsv2rgb(h: f32, s: f32, v: f32) -> vec3<f32> {
    let c = v * s;
    let hp = fract(h / 360.0) * 6.0;
    let x = c * (1.0 - abs(fract(hp * 0.5) * 2.0 - 1.0));
    var rgb = vec3<f32>(0.0);
    if (hp < 1.0) { rgb = vec3<f32>(c, x, 0.0); }
    else if (hp < 2.0) { rgb = vec3<f32>(x, c, 0.0); }
    else if (hp < 3.0) { rgb = vec3<f32>(0.0, c, x); }
    else if (hp < 4.0) { rgb = vec3<f32>(0.0, x, c); }
    else if (hp < 5.0) { rgb = vec3<f32>(x, 0.0, c); }
    else { rgb = vec3<f32>(c, 0.0, x); }
    return rgb + vec3<f32>(v - c);
}

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let aspect = u.resolution.x / max(u.resolution.y, 1.0);
    let orbit = 1.3;
    let q = vec3<f32>(
        uv.x * u.noiseScale * aspect + cos(u.phase) * orbit,
        uv.y * u.noiseScale + sin(u.phase) * orbit,
        u.seed);

    let w1 = fbm(q, u.noiseKind, u.cellSize, u.octaves);
    let w2 = fbm(q + vec3<f32>(5.2, 1.3, 0.0), u.noiseKind, u.cellSize, u.octaves);
    let f = fbm(q + vec3<f32>(w1, w2, 0.0) * u.distortionAmount, u.noiseKind, u.cellSize, u.octaves);

    let hue = u.colorShift + u.colorSpeed * (u.phase / 6.2831853) * 360.0 + f * 60.0;
    var val = u.brightness * (0.55 + 0.45 * f);

    if (u.noiseKind == 3u || u.noiseKind == 4u) {
        let edge = voronoi_noise(q, u.cellSize).y;
        val = val * clamp(edge * u.cellEdge * 4.0, 0.0, 1.0);
    }
    if (u.vignette > 0.0) {
        let d = length(uv - vec2<f32>(0.5));
        val = val * (1.0 - u.vignette * smoothstep(0.35, 0.85, d));
    }
    if (u.grain > 0.0) {
        val = val + (hash3(vec3<f32>(uv * vec2<f32>(531.0, 917.0), u.phase)) * 2.0 - 1.0) * u.grain * 0.06;
    }

    var rgb = hsv2rgb(hue, u.saturation, clamp(val, 0.0, 1.0));
    let t = clamp((f + 1.0) * 0.5, 0.0, 1.0);
    let tint = mix(u.primaryColor.rgb, u.secondaryColor.rgb, t);
    if (u.primaryColor.a > 0.0 || u.secondaryColor.a > 0.0) {
        rgb = mix(rgb, tint, 0.35);
    }
    return vec4<f32>(rgb, clamp(u.intensity, 0.0, 1.0));
}
`
