// gx_assembler.go - Vertex submission, primitive assembly and culling

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

func (e *GeometryEngine) cmdColor(params []uint32) {
	e.vertexColor = rgb5ToRgb6(params[0] & 0x7FFF)
}

func (e *GeometryEngine) cmdTexCoord(params []uint32) {
	e.texS = int16(params[0])
	e.texT = int16(params[0] >> 16)

	if e.textureCoordMode == TEXCOORD_TEXCOORD {
		// (S, T, 1/16, 1/16) * texture matrix, all in 1/16 texel units
		s, t := int64(e.texS), int64(e.texT)
		m := &e.texture
		e.vtxS = int16((s*int64(m[0]) + t*int64(m[4]) + int64(m[8]) + int64(m[12])) >> FX_SHIFT)
		e.vtxT = int16((s*int64(m[1]) + t*int64(m[5]) + int64(m[9]) + int64(m[13])) >> FX_SHIFT)
		return
	}
	e.vtxS, e.vtxT = e.texS, e.texT
}

// projectTexCoord adds a 1.3.12 vector projected through the texture matrix
// to the written texture coordinates.
func (e *GeometryEngine) projectTexCoord(v *Vertex) {
	x, y, z := int64(v.X), int64(v.Y), int64(v.Z)
	m := &e.texture
	e.vtxS = e.texS + int16((x*int64(m[0])+y*int64(m[4])+z*int64(m[8]))>>20)
	e.vtxT = e.texT + int16((x*int64(m[1])+y*int64(m[5])+z*int64(m[9]))>>20)
}

func (e *GeometryEngine) cmdVtx16(params []uint32) {
	e.savedVertex.X = int32(int16(params[0]))
	e.savedVertex.Y = int32(int16(params[0] >> 16))
	e.savedVertex.Z = int32(int16(params[1]))
	e.addVertex()
}

func (e *GeometryEngine) cmdVtx10(params []uint32) {
	p := params[0]
	e.savedVertex.X = int32(int16(uint16(p&0x3FF) << 6))
	e.savedVertex.Y = int32(int16(uint16((p>>10)&0x3FF) << 6))
	e.savedVertex.Z = int32(int16(uint16((p>>20)&0x3FF) << 6))
	e.addVertex()
}

func (e *GeometryEngine) cmdVtxXY(params []uint32) {
	e.savedVertex.X = int32(int16(params[0]))
	e.savedVertex.Y = int32(int16(params[0] >> 16))
	e.addVertex()
}

func (e *GeometryEngine) cmdVtxXZ(params []uint32) {
	e.savedVertex.X = int32(int16(params[0]))
	e.savedVertex.Z = int32(int16(params[0] >> 16))
	e.addVertex()
}

func (e *GeometryEngine) cmdVtxYZ(params []uint32) {
	e.savedVertex.Y = int32(int16(params[0]))
	e.savedVertex.Z = int32(int16(params[0] >> 16))
	e.addVertex()
}

func (e *GeometryEngine) cmdVtxDiff(params []uint32) {
	p := params[0]
	e.savedVertex.X += signExtend10(p)
	e.savedVertex.Y += signExtend10(p >> 10)
	e.savedVertex.Z += signExtend10(p >> 20)
	e.addVertex()
}

func (e *GeometryEngine) cmdPolygonAttr(params []uint32) {
	e.polygonAttr = params[0]
}

func (e *GeometryEngine) cmdTexImageParam(params []uint32) {
	p := params[0]
	sp := &e.savedPolygon
	sp.TextureAddr = (p & TEX_ADDR_MASK) << 3
	sp.RepeatS = p&TEX_REPEAT_S != 0
	sp.RepeatT = p&TEX_REPEAT_T != 0
	sp.FlipS = p&TEX_FLIP_S != 0
	sp.FlipT = p&TEX_FLIP_T != 0
	sp.SizeS = int((p >> TEX_SIZE_S_SHIFT) & TEX_SIZE_MASK)
	sp.SizeT = int((p >> TEX_SIZE_T_SHIFT) & TEX_SIZE_MASK)
	sp.TextureFormat = int((p >> TEX_FORMAT_SHIFT) & TEX_FORMAT_MASK)
	sp.Transparent0 = p&TEX_TRANSPARENT0 != 0
	sp.PaletteAddr = e.paletteAddress()
	e.textureCoordMode = int(p >> TEX_COORD_SHIFT)
}

func (e *GeometryEngine) cmdPlttBase(params []uint32) {
	e.paletteBase = params[0] & TEX_PLTT_BASE_MASK
	e.savedPolygon.PaletteAddr = e.paletteAddress()
}

// paletteAddress scales the palette base by the current texture format:
// 4-color palettes are addressed in 8-byte steps, all others in 16.
func (e *GeometryEngine) paletteAddress() uint32 {
	if e.savedPolygon.TextureFormat == TEX_FORMAT_4COLOR {
		return e.paletteBase << 3
	}
	return e.paletteBase << 4
}

func (e *GeometryEngine) cmdBeginVtxs(params []uint32) {
	e.polygonType = int(params[0] & 3)
	e.windowCount = 0
	e.vertexCount = 0

	// Polygon attributes only take effect here
	attr := e.polygonAttr
	e.enabledLights = uint8(attr & POLY_ATTR_LIGHTS)
	e.renderBack = attr&POLY_ATTR_RENDER_BACK != 0
	e.renderFront = attr&POLY_ATTR_RENDER_FRONT != 0
	e.farClip = attr&POLY_ATTR_FAR_CLIP != 0

	sp := &e.savedPolygon
	sp.Mode = int((attr >> POLY_ATTR_MODE_SHIFT) & POLY_ATTR_MODE_MASK)
	sp.TransNewDepth = attr&POLY_ATTR_TRANS_DEPTH != 0
	sp.DepthTestEqual = attr&POLY_ATTR_DEPTH_EQUAL != 0
	sp.Fog = attr&POLY_ATTR_FOG != 0
	sp.Alpha = uint8((attr >> POLY_ATTR_ALPHA_SHIFT) & POLY_ATTR_ALPHA_MASK)
	sp.ID = int((attr >> POLY_ATTR_ID_SHIFT) & POLY_ATTR_ID_MASK)
}

// cmdEndVtxs drops any partial primitive. The primitive type stays in effect.
func (e *GeometryEngine) cmdEndVtxs(_ []uint32) {
	e.windowCount = 0
	e.vertexCount = 0
}

func (e *GeometryEngine) cmdSwapBuffers(params []uint32) {
	in := e.buffers.in()
	in.manualSort = params[0]&SWAP_MANUAL_SORT != 0
	wBuffer := params[0]&SWAP_W_BUFFER != 0
	for i := 0; i < in.polygonCount; i++ {
		in.polygons[i].WBuffer = wBuffer
	}

	e.windowCount = 0
	e.vertexCount = 0
	e.state = GX_HALTED
}

// cmdViewport latches the screen rectangle. Y coordinates arrive bottom-up.
func (e *GeometryEngine) cmdViewport(params []uint32) {
	p := params[0]
	x1 := int(p & 0xFF)
	y1 := int((p >> 8) & 0xFF)
	x2 := int((p >> 16) & 0xFF)
	y2 := int((p >> 24) & 0xFF)
	e.viewport = Viewport{
		X:      x1,
		Y:      GX_SCREEN_HEIGHT - 1 - y2,
		Width:  x2 - x1 + 1,
		Height: y2 - y1 + 1,
	}
}

// addVertex transforms the saved vertex into clip space and feeds it to the
// primitive being assembled.
func (e *GeometryEngine) addVertex() {
	v := e.savedVertex
	v.W = FX_ONE
	if e.textureCoordMode == TEXCOORD_VERTEX {
		e.projectTexCoord(&v)
	}

	out := transformVertex(&v, e.currentClip())
	out.S, out.T = e.vtxS, e.vtxT
	out.Color = e.vertexColor

	e.window[e.windowCount] = out
	e.windowCount++
	e.vertexCount++

	w := &e.window
	switch e.polygonType {
	case PRIM_TRIANGLES:
		if e.windowCount == 3 {
			e.addPolygon(w[:3])
			e.windowCount = 0
		}

	case PRIM_QUADS:
		if e.windowCount == 4 {
			e.addPolygon(w[:4])
			e.windowCount = 0
		}

	case PRIM_TRIANGLE_STRIP:
		if e.windowCount == 3 {
			// Every second triangle has its first two vertices swapped so
			// the whole strip keeps one winding
			if e.vertexCount%2 == 0 {
				e.addPolygon([]Vertex{w[1], w[0], w[2]})
			} else {
				e.addPolygon(w[:3])
			}
			w[0], w[1] = w[1], w[2]
			e.windowCount = 2
		}

	case PRIM_QUAD_STRIP:
		if e.windowCount == 4 {
			e.addPolygon([]Vertex{w[0], w[1], w[3], w[2]})
			w[0], w[1] = w[2], w[3]
			e.windowCount = 2
		}
	}
}

// addPolygon culls, clips and stores one primitive. A polygon that does not
// fit in the building arena is dropped and the engine halts until the frame
// is swapped out.
func (e *GeometryEngine) addPolygon(verts []Vertex) {
	in := e.buffers.in()
	if in.polygonCount >= GX_MAX_POLYGONS {
		Logger().Debug("gx: polygon arena full", "polygons", in.polygonCount)
		e.state = GX_HALTED
		return
	}

	facing := windingSign(&verts[0], &verts[1], &verts[2])
	if facing >= 0 && !e.renderFront || facing < 0 && !e.renderBack {
		return
	}

	if !e.farClip {
		for i := range verts {
			if verts[i].Z > verts[i].W {
				return
			}
		}
	}

	var clipped [GX_MAX_CLIP_VERTICES]Vertex
	n, wasClipped := clipPolygon(verts, &clipped)
	if wasClipped {
		// A polygon touching a plane with everything else outside clips
		// down to a point or an edge
		n = dropRepeatedVertices(clipped[:n])
		if n < 3 {
			return
		}
	}
	if n == 0 {
		return
	}

	p := e.savedPolygon
	p.Clockwise = facing < 0
	p.Crossed = len(verts) == 4 && quadCrossed(verts)
	p.WShift = wShift(clipped[:n])
	p.Viewport = e.viewport
	if !in.appendPolygon(p, clipped[:n]) {
		Logger().Debug("gx: vertex arena full",
			"vertices", in.vertexCount,
			"need", n)
		e.state = GX_HALTED
	}
}

// windingSign returns the orientation of triangle a-b-c after perspective
// division: +1 counter-clockwise (front facing), -1 clockwise, 0 degenerate.
// Degenerate polygons are kept and treated as front facing, so they are
// culled only when front faces are not rendered; the rasterizer draws them
// as lines.
// It evaluates the homogeneous determinant of (x, y, w) so no division is
// needed; values are scaled down first to keep the products in 64 bits.
func windingSign(a, b, c *Vertex) int {
	vals := [9]int64{
		int64(a.X), int64(a.Y), int64(a.W),
		int64(b.X), int64(b.Y), int64(b.W),
		int64(c.X), int64(c.Y), int64(c.W),
	}
	var peak int64
	for _, v := range vals {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	shift := 0
	for peak >= 1<<19 {
		peak >>= 1
		shift++
	}
	for i := range vals {
		vals[i] >>= shift
	}

	x0, y0, w0 := vals[0], vals[1], vals[2]
	x1, y1, w1 := vals[3], vals[4], vals[5]
	x2, y2, w2 := vals[6], vals[7], vals[8]
	det := x0*(y1*w2-w1*y2) - y0*(x1*w2-w1*x2) + w0*(x1*y2-y1*x2)

	sign := 0
	switch {
	case det > 0:
		sign = 1
	case det < 0:
		sign = -1
	}
	// An odd number of negative W values mirrors the projection
	if (a.W < 0) != (b.W < 0) != (c.W < 0) {
		sign = -sign
	}
	return sign
}

// quadCrossed reports whether a quad's corners disagree on orientation,
// meaning two of its edges intersect.
func quadCrossed(v []Vertex) bool {
	first := 0
	for i := 0; i < 4; i++ {
		s := windingSign(&v[i], &v[(i+1)%4], &v[(i+2)%4])
		if s == 0 {
			continue
		}
		if first == 0 {
			first = s
		} else if s != first {
			return true
		}
	}
	return false
}

// wShift returns the power-of-two scale (in steps of 4 bits) that brings the
// largest W of a polygon into 16 bits for the rasterizer's depth math.
func wShift(verts []Vertex) int {
	var peak int64
	for i := range verts {
		w := int64(verts[i].W)
		if w < 0 {
			w = -w
		}
		if w > peak {
			peak = w
		}
	}
	if peak == 0 {
		return 0
	}
	shift := 0
	for peak > 0xFFFF {
		peak >>= 4
		shift += 4
	}
	for peak < 0x1000 {
		peak <<= 4
		shift -= 4
	}
	return shift
}
