// gx_lighting.go - Materials, lights and per-vertex lighting

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

func (e *GeometryEngine) cmdDifAmb(params []uint32) {
	p := params[0]
	e.diffuseColor = rgb5ToRgb6(p & 0x7FFF)
	e.ambientColor = rgb5ToRgb6((p >> 16) & 0x7FFF)
	if p&MATERIAL_SET_VERTEX_COLOR != 0 {
		e.vertexColor = e.diffuseColor
	}
}

func (e *GeometryEngine) cmdSpeEmi(params []uint32) {
	p := params[0]
	e.specularColor = rgb5ToRgb6(p & 0x7FFF)
	e.emissionColor = rgb5ToRgb6((p >> 16) & 0x7FFF)
	e.shininessEnabled = p&MATERIAL_SHININESS_TABLE != 0
}

// unpackVector widens three packed 1.0.9 components to 1.3.12.
func unpackVector(p uint32) Vertex {
	return Vertex{
		X: signExtend10(p) << 3,
		Y: signExtend10(p>>10) << 3,
		Z: signExtend10(p>>20) << 3,
	}
}

// cmdLightVector stores a light direction in view space, along with the
// half-angle vector between it and the line of sight (0, 0, -1).
func (e *GeometryEngine) cmdLightVector(params []uint32) {
	l := &e.lights[params[0]>>30]
	v := unpackVector(params[0])
	l.vector = transformVertex(&v, &e.direction)
	l.half = Vertex{
		X: l.vector.X / 2,
		Y: l.vector.Y / 2,
		Z: (l.vector.Z - FX_ONE) / 2,
	}
}

func (e *GeometryEngine) cmdLightColor(params []uint32) {
	e.lights[params[0]>>30].color = rgb5ToRgb6(params[0] & 0x7FFF)
}

// cmdShininess loads the 128-entry specular table, four entries per word,
// low byte first.
func (e *GeometryEngine) cmdShininess(params []uint32) {
	for i, p := range params {
		for j := 0; j < 4; j++ {
			e.shininess[i*4+j] = uint8(p >> (8 * j))
		}
	}
}

func (e *GeometryEngine) cmdNormal(params []uint32) {
	normal := unpackVector(params[0])
	if e.textureCoordMode == TEXCOORD_NORMAL {
		e.projectTexCoord(&normal)
	}
	n := transformVertex(&normal, &e.direction)
	e.vertexColor = e.evaluateVertex(&n)
}

func clampLevel(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > FX_ONE {
		return FX_ONE
	}
	return v
}

func clampChannel(v int32) int32 {
	if v > 0x3F {
		return 0x3F
	}
	return v
}

// evaluateVertex returns the lit RGB666 color for a view-space normal:
// emission plus the specular, diffuse and ambient terms of every enabled
// light.
func (e *GeometryEngine) evaluateVertex(normal *Vertex) uint32 {
	r, g, b := unpackRGB6(e.emissionColor)
	dr, dg, db := unpackRGB6(e.diffuseColor)
	ar, ag, ab := unpackRGB6(e.ambientColor)
	sr, sg, sb := unpackRGB6(e.specularColor)

	for i := 0; i < GX_NUM_LIGHTS; i++ {
		if e.enabledLights&(1<<i) == 0 {
			continue
		}
		l := &e.lights[i]
		lr, lg, lb := unpackRGB6(l.color)

		diffuse := clampLevel(-dotProduct(&l.vector, normal))

		shine := clampLevel(-dotProduct(&l.half, normal))
		shine = (shine * shine) >> FX_SHIFT

		var specular int32
		if e.shininessEnabled {
			index := shine >> 5
			if index >= GX_SHININESS_ENTRIES {
				index = GX_SHININESS_ENTRIES - 1
			}
			specular = int32(e.shininess[index])
		} else {
			specular = shine >> 4
			if specular > 0xFF {
				specular = 0xFF
			}
		}

		r += (sr*lr*specular)>>14 + (dr*lr*diffuse)>>18 + (ar*lr)>>6
		g += (sg*lg*specular)>>14 + (dg*lg*diffuse)>>18 + (ag*lg)>>6
		b += (sb*lb*specular)>>14 + (db*lb*diffuse)>>18 + (ab*lb)>>6
	}

	return packRGB6(clampChannel(r), clampChannel(g), clampChannel(b))
}
