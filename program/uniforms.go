package program

import "strings"

// parseUniformNames extracts the field names of the shader's Uniforms
// struct. The result is the program's uniform presence set: SetUniforms
// stages values only for names in it, everything else is a silent no-op.
//
// The sources come from the closed catalog, so the parse is a plain scan:
// find the "struct Uniforms {" block and take the identifier before each
// ':'. A source without the block (the passthrough shader) has no
// uniforms at all.
func parseUniformNames(fragmentSrc string) map[string]struct{} {
	names := make(map[string]struct{})

	i := strings.Index(fragmentSrc, "struct Uniforms")
	if i < 0 {
		return names
	}
	rest := fragmentSrc[i:]
	open := strings.IndexByte(rest, '{')
	closing := strings.IndexByte(rest, '}')
	if open < 0 || closing < 0 || closing < open {
		return names
	}

	for _, line := range strings.Split(rest[open+1:closing], "\n") {
		line = strings.TrimSpace(line)
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			continue
		}
		name := strings.TrimSpace(line[:colon])
		if name == "" || strings.HasPrefix(name, "//") {
			continue
		}
		names[name] = struct{}{}
	}
	return names
}

// samplesContent reports whether the fragment source binds the content
// texture. Distortion shaders and the passthrough shader do; overlay and
// generative shaders do not.
func samplesContent(fragmentSrc string) bool {
	return strings.Contains(fragmentSrc, "contentTex")
}
