package main

import "testing"

func TestTriangleExposedAfterSwap(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxFrontTriangle(t, e)

	if e.PolygonCount() != 0 {
		t.Fatal("polygon exposed before swap")
	}
	if got := e.ReadRAMCount(); got != 1|3<<16 {
		t.Fatalf("RAM_COUNT = 0x%08X, want 1 polygon 3 vertices", got)
	}

	gxFinishFrame(t, e, 0)
	if e.PolygonCount() != 1 || e.VertexCount() != 3 {
		t.Fatalf("exposed %d polygons %d vertices, want 1 and 3", e.PolygonCount(), e.VertexCount())
	}
	if e.ReadRAMCount() != 0 {
		t.Fatalf("building arena not empty after swap: 0x%08X", e.ReadRAMCount())
	}

	p := &e.Polygons()[0]
	if p.Clockwise {
		t.Fatal("counter-clockwise triangle marked clockwise")
	}
	if p.Alpha != 31 {
		t.Fatalf("alpha = %d, want 31", p.Alpha)
	}
	verts := e.Vertices(p)
	if len(verts) != 3 || verts[1].X != 2048 || verts[2].Y != 2048 || verts[0].W != FX_ONE {
		t.Fatalf("vertices = %+v", verts)
	}
	if verts[0].Color != packRGB6(63, 63, 63) {
		t.Fatalf("default vertex color = 0x%05X, want white", verts[0].Color)
	}
}

func TestBackFaceCulling(t *testing.T) {
	tests := []struct {
		name      string
		attr      uint32
		clockwise bool
		want      int
	}{
		{"front visible", POLY_ATTR_RENDER_FRONT, false, 1},
		{"front culled", POLY_ATTR_RENDER_BACK, false, 0},
		{"back visible", POLY_ATTR_RENDER_BACK, true, 1},
		{"back culled", POLY_ATTR_RENDER_FRONT, true, 0},
		{"neither side", 0, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			gxBegin(t, e, tc.attr|31<<POLY_ATTR_ALPHA_SHIFT, PRIM_TRIANGLES)
			gxVertex(t, e, 0, 0, 0)
			if tc.clockwise {
				gxVertex(t, e, 0, 2048, 0)
				gxVertex(t, e, 2048, 0, 0)
			} else {
				gxVertex(t, e, 2048, 0, 0)
				gxVertex(t, e, 0, 2048, 0)
			}
			gxFinishFrame(t, e, 0)

			if got := e.PolygonCount(); got != tc.want {
				t.Fatalf("polygons = %d, want %d", got, tc.want)
			}
			if tc.want == 1 && e.Polygons()[0].Clockwise != tc.clockwise {
				t.Fatalf("Clockwise = %v, want %v", e.Polygons()[0].Clockwise, tc.clockwise)
			}
		})
	}
}

func TestQuads(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_QUADS)
	gxVertex(t, e, 0, 0, 0)
	gxVertex(t, e, 2048, 0, 0)
	gxVertex(t, e, 2048, 2048, 0)
	gxVertex(t, e, 0, 2048, 0)
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 1 {
		t.Fatalf("polygons = %d, want 1", e.PolygonCount())
	}
	p := &e.Polygons()[0]
	if p.VertexCount != 4 || p.Crossed {
		t.Fatalf("quad has %d vertices crossed %v", p.VertexCount, p.Crossed)
	}
}

func TestTriangleStripWinding(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLE_STRIP)
	for _, v := range [][2]int32{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}} {
		gxVertex(t, e, v[0]*1024, v[1]*1024, 0)
	}
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 3 {
		t.Fatalf("polygons = %d, want 3", e.PolygonCount())
	}
	for i, p := range e.Polygons() {
		if !p.Clockwise {
			t.Errorf("strip triangle %d changed winding", i)
		}
	}

	// The second triangle is emitted as v2, v1, v3
	verts := e.Vertices(&e.Polygons()[1])
	if verts[0].X != 1024 || verts[0].Y != 0 || verts[1].X != 0 || verts[1].Y != 1024 {
		t.Fatalf("second strip triangle = %+v", verts)
	}
}

func TestQuadStrip(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_QUAD_STRIP)
	for _, v := range [][2]int32{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}} {
		gxVertex(t, e, v[0]*1024, v[1]*1024, 0)
	}
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 2 {
		t.Fatalf("polygons = %d, want 2", e.PolygonCount())
	}
	for i, p := range e.Polygons() {
		if p.VertexCount != 4 || p.Crossed {
			t.Errorf("quad %d: %d vertices crossed %v", i, p.VertexCount, p.Crossed)
		}
	}
}

func TestEndVtxsDropsPartialPrimitive(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxVertex(t, e, 0, 0, 0)
	gxVertex(t, e, 2048, 0, 0)
	gxExec(t, e, GX_CMD_END_VTXS)

	// The primitive type stays in effect; assembly starts over
	gxFrontTriangle(t, e)
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 1 {
		t.Fatalf("polygons = %d, want 1", e.PolygonCount())
	}
	if v := e.Vertices(&e.Polygons()[0])[0]; v.X != 0 || v.Y != 0 {
		t.Fatalf("first vertex = %+v, want origin", v)
	}
}

func TestAttributesLatchedAtBegin(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides|5<<POLY_ATTR_ID_SHIFT, PRIM_TRIANGLES)
	gxExec(t, e, GX_CMD_POLYGON_ATTR, POLY_ATTR_RENDER_FRONT|7<<POLY_ATTR_ALPHA_SHIFT)
	gxFrontTriangle(t, e)
	gxFinishFrame(t, e, 0)

	p := &e.Polygons()[0]
	if p.Alpha != 31 || p.ID != 5 {
		t.Fatalf("alpha %d id %d, want 31 and 5", p.Alpha, p.ID)
	}
}

func TestClippedTriangle(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxVertex(t, e, 0, 0, 0)
	gxVertex(t, e, 8192, 0, 0)
	gxVertex(t, e, 0, 2048, 0)
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 1 {
		t.Fatalf("polygons = %d, want 1", e.PolygonCount())
	}
	verts := e.Vertices(&e.Polygons()[0])
	if len(verts) != 4 {
		t.Fatalf("clipped triangle has %d vertices, want 4", len(verts))
	}
	for i := range verts {
		if !insideFrustum(&verts[i]) {
			t.Errorf("vertex %d outside the frustum: %+v", i, verts[i])
		}
	}
}

func TestTriangleOutsideDiscarded(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxVertex(t, e, 8192, 0, 0)
	gxVertex(t, e, 12288, 0, 0)
	gxVertex(t, e, 8192, 2048, 0)
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 0 {
		t.Fatalf("polygons = %d, want 0", e.PolygonCount())
	}
}

func TestFarPlane(t *testing.T) {
	for _, farClip := range []bool{false, true} {
		e := newTestEngine(t)
		attr := uint32(attrBothSides)
		if farClip {
			attr |= POLY_ATTR_FAR_CLIP
		}
		gxBegin(t, e, attr, PRIM_TRIANGLES)
		gxVertex(t, e, 0, 0, 0)
		gxVertex(t, e, 2048, 0, 8192)
		gxVertex(t, e, 0, 2048, 0)
		gxFinishFrame(t, e, 0)

		want := 0
		if farClip {
			want = 1
		}
		if e.PolygonCount() != want {
			t.Fatalf("far clip %v: polygons = %d, want %d", farClip, e.PolygonCount(), want)
		}
		if farClip && e.Polygons()[0].VertexCount != 4 {
			t.Fatalf("far-clipped triangle has %d vertices, want 4", e.Polygons()[0].VertexCount)
		}
	}
}

func TestViewportLatchedPerPolygon(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxFrontTriangle(t, e)
	gxExec(t, e, GX_CMD_VIEWPORT, 127<<16|95<<24)
	gxFrontTriangle(t, e)
	gxFinishFrame(t, e, 0)

	polys := e.Polygons()
	if len(polys) != 2 {
		t.Fatalf("polygons = %d, want 2", len(polys))
	}
	full := Viewport{Width: GX_SCREEN_WIDTH, Height: GX_SCREEN_HEIGHT}
	if polys[0].Viewport != full {
		t.Fatalf("first viewport = %+v, want %+v", polys[0].Viewport, full)
	}
	want := Viewport{X: 0, Y: 96, Width: 128, Height: 96}
	if polys[1].Viewport != want {
		t.Fatalf("second viewport = %+v, want %+v", polys[1].Viewport, want)
	}

	x, y := want.Project(&Vertex{X: 0, Y: 0, W: FX_ONE})
	if x != 64 || y != 144 {
		t.Fatalf("Project(origin) = (%v, %v), want (64, 144)", x, y)
	}
}

func TestSwapBuffersFlags(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxFrontTriangle(t, e)
	gxFinishFrame(t, e, SWAP_MANUAL_SORT|SWAP_W_BUFFER)

	if !e.ManualSort() {
		t.Fatal("manual sort not exposed")
	}
	if !e.Polygons()[0].WBuffer {
		t.Fatal("W-buffer flag not applied")
	}
	if e.Polygons()[0].WShift != 0 {
		t.Fatalf("WShift = %d, want 0 for W = 1.0", e.Polygons()[0].WShift)
	}
}

func TestVertexFormats(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)

	// 1.0 in 1.3.6
	gxExec(t, e, GX_CMD_VTX_10, 0x040)
	// Y only
	gxExec(t, e, GX_CMD_VTX_XZ, packXY(0, 0))
	gxExec(t, e, GX_CMD_VTX_YZ, packXY(2048, 0))
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 1 {
		t.Fatalf("polygons = %d, want 1", e.PolygonCount())
	}
	verts := e.Vertices(&e.Polygons()[0])
	if verts[0].X != FX_ONE {
		t.Fatalf("VTX_10 x = %d, want %d", verts[0].X, FX_ONE)
	}
	if verts[1].X != 0 || verts[1].Y != 0 {
		t.Fatalf("VTX_XZ vertex = %+v", verts[1])
	}
	if verts[2].X != 0 || verts[2].Y != 2048 {
		t.Fatalf("VTX_YZ vertex = %+v", verts[2])
	}
}

func TestVtxDiff(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_POS_TEST, packXY(100, 200), packXY(300, 0))
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxExec(t, e, GX_CMD_VTX_DIFF, 0x3FF|1<<10|2<<20)

	if e.savedVertex.X != 99 || e.savedVertex.Y != 201 || e.savedVertex.Z != 302 {
		t.Fatalf("saved vertex = %+v, want (99, 201, 302)", e.savedVertex)
	}
}

func TestColorAndTexCoord(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	gxExec(t, e, GX_CMD_COLOR, 0x001F)
	gxExec(t, e, GX_CMD_TEXCOORD, packXY(16, 32))
	gxFrontTriangle(t, e)
	gxFinishFrame(t, e, 0)

	v := e.Vertices(&e.Polygons()[0])[0]
	if v.Color != packRGB6(63, 0, 0) {
		t.Fatalf("color = 0x%05X, want red", v.Color)
	}
	if v.S != 16 || v.T != 32 {
		t.Fatalf("texcoord = (%d, %d), want (16, 32)", v.S, v.T)
	}
}

func TestTexCoordTransform(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_MTX_MODE, MTX_MODE_TEXTURE)
	gxExec(t, e, GX_CMD_MTX_SCALE, 2*FX_ONE, FX_ONE, FX_ONE)
	gxExec(t, e, GX_CMD_TEXIMAGE_PARAM, TEXCOORD_TEXCOORD<<TEX_COORD_SHIFT)
	gxExec(t, e, GX_CMD_TEXCOORD, packXY(16, 32))

	if e.vtxS != 32 || e.vtxT != 32 {
		t.Fatalf("transformed texcoord = (%d, %d), want (32, 32)", e.vtxS, e.vtxT)
	}
}

func TestTexImageParamAndPalette(t *testing.T) {
	e := newTestEngine(t)
	param := uint32(0x1234) | TEX_REPEAT_S | TEX_FLIP_T |
		3<<TEX_SIZE_S_SHIFT | 1<<TEX_SIZE_T_SHIFT |
		TEX_FORMAT_4COLOR<<TEX_FORMAT_SHIFT | TEX_TRANSPARENT0
	gxExec(t, e, GX_CMD_TEXIMAGE_PARAM, param)
	gxExec(t, e, GX_CMD_PLTT_BASE, 0x10)

	sp := &e.savedPolygon
	if sp.TextureAddr != 0x1234<<3 {
		t.Fatalf("texture address = 0x%X, want 0x%X", sp.TextureAddr, 0x1234<<3)
	}
	if !sp.RepeatS || sp.RepeatT || sp.FlipS || !sp.FlipT || !sp.Transparent0 {
		t.Fatalf("texture flags = %+v", sp)
	}
	if sp.TextureWidth() != 64 || sp.TextureHeight() != 16 {
		t.Fatalf("texture size = %dx%d, want 64x16", sp.TextureWidth(), sp.TextureHeight())
	}
	// 4-color palettes use 8-byte steps
	if sp.PaletteAddr != 0x80 {
		t.Fatalf("palette address = 0x%X, want 0x80", sp.PaletteAddr)
	}
}

func TestPolygonArenaFull(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	for i := 0; i < GX_MAX_POLYGONS; i++ {
		gxFrontTriangle(t, e)
	}
	if e.ShouldSwap() {
		t.Fatal("engine halted with room left for the last polygon")
	}
	if got := e.ReadRAMCount() & 0xFFFF; got != GX_MAX_POLYGONS {
		t.Fatalf("polygon count = %d, want %d", got, GX_MAX_POLYGONS)
	}

	// One more polygon does not fit: it is dropped and the frame ends
	gxFrontTriangle(t, e)
	if e.State() != GX_HALTED || !e.ShouldSwap() {
		t.Fatalf("state = %s after the polygon arena filled, want halted", e.State())
	}
	if got := e.ReadRAMCount() & 0xFFFF; got != GX_MAX_POLYGONS {
		t.Fatalf("polygon count = %d, want %d", got, GX_MAX_POLYGONS)
	}

	e.SwapBuffers()
	if e.PolygonCount() != GX_MAX_POLYGONS {
		t.Fatalf("exposed polygons = %d, want %d", e.PolygonCount(), GX_MAX_POLYGONS)
	}
	if e.State() != GX_IDLE {
		t.Fatalf("state after swap = %s, want idle", e.State())
	}
}

// arenaQuad returns the corners of the i-th small counter-clockwise quad of
// a grid that stays inside the view volume.
func arenaQuad(i int) [4][2]int32 {
	x := int32(i%64) * 32
	y := int32(i/64) * 32
	return [4][2]int32{{x, y}, {x + 16, y}, {x + 16, y + 16}, {x, y + 16}}
}

func TestVertexArenaFull(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_QUADS)

	quads := GX_MAX_VERTICES / 4
	for i := 0; i < quads; i++ {
		for _, c := range arenaQuad(i) {
			gxVertex(t, e, c[0], c[1], 0)
		}
	}
	if e.ShouldSwap() {
		t.Fatal("engine halted before the vertex arena overflowed")
	}

	// The next quad overflows the vertex arena
	for _, c := range arenaQuad(quads) {
		gxVertex(t, e, c[0], c[1], 0)
	}
	if e.State() != GX_HALTED {
		t.Fatalf("state = %s after the vertex arena filled, want halted", e.State())
	}
	if got := e.ReadRAMCount() >> 16; got != GX_MAX_VERTICES {
		t.Fatalf("vertex count = %d, want %d", got, GX_MAX_VERTICES)
	}
	if got := e.ReadRAMCount() & 0xFFFF; got != uint32(quads) {
		t.Fatalf("polygon count = %d, want %d", got, quads)
	}

	// Further submissions wait behind the halt
	extra := arenaQuad(quads + 1)
	for _, c := range extra {
		gxVertex(t, e, c[0]+8, c[1]+8, 0)
	}
	if got := e.ReadRAMCount() >> 16; got != GX_MAX_VERTICES {
		t.Fatalf("vertex count grew to %d while halted", got)
	}

	e.SwapBuffers()
	if e.VertexCount() != GX_MAX_VERTICES || e.PolygonCount() != quads {
		t.Fatalf("exposed %d vertices %d polygons", e.VertexCount(), e.PolygonCount())
	}
	polys := e.Polygons()
	for _, i := range []int{0, quads - 1} {
		verts := e.Vertices(&polys[i])
		if len(verts) != 4 {
			t.Fatalf("polygon %d has %d vertices, want 4", i, len(verts))
		}
		for j, c := range arenaQuad(i) {
			if verts[j].X != c[0] || verts[j].Y != c[1] || verts[j].W != FX_ONE {
				t.Fatalf("polygon %d vertex %d = %+v, want (%d, %d)", i, j, verts[j], c[0], c[1])
			}
		}
	}

	// The held quad lands in the next frame
	e.RunPending()
	if got := e.ReadRAMCount(); got != 1|4<<16 {
		t.Fatalf("RAM_COUNT after resuming = 0x%08X, want 1 polygon 4 vertices", got)
	}
}

func TestClipCollapsedToPointDropped(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)
	// Only the first vertex touches the right plane
	gxVertex(t, e, 4096, 0, 0)
	gxVertex(t, e, 8192, -2048, 0)
	gxVertex(t, e, 8192, 2048, 0)
	gxFinishFrame(t, e, 0)

	if e.PolygonCount() != 0 {
		t.Fatalf("polygons = %d, want 0 for a triangle that clips to a point", e.PolygonCount())
	}
}

func TestDegeneratePolygonCulling(t *testing.T) {
	tests := []struct {
		name string
		attr uint32
		want int
	}{
		{"front rendered", POLY_ATTR_RENDER_FRONT, 1},
		{"back only", POLY_ATTR_RENDER_BACK, 0},
		{"neither side", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			gxBegin(t, e, tc.attr|31<<POLY_ATTR_ALPHA_SHIFT, PRIM_TRIANGLES)
			// A line: the third vertex repeats the second
			gxVertex(t, e, 0, 0, 0)
			gxVertex(t, e, 2048, 2048, 0)
			gxVertex(t, e, 2048, 2048, 0)
			gxFinishFrame(t, e, 0)

			if got := e.PolygonCount(); got != tc.want {
				t.Fatalf("polygons = %d, want %d", got, tc.want)
			}
			if tc.want == 1 && e.Polygons()[0].Clockwise {
				t.Fatal("degenerate polygon marked clockwise")
			}
		})
	}
}

func TestWindingSign(t *testing.T) {
	a := Vertex{X: 0, Y: 0, W: FX_ONE}
	b := Vertex{X: FX_ONE, Y: 0, W: FX_ONE}
	c := Vertex{X: 0, Y: FX_ONE, W: FX_ONE}

	if got := windingSign(&a, &b, &c); got != 1 {
		t.Fatalf("ccw winding = %d, want 1", got)
	}
	if got := windingSign(&a, &c, &b); got != -1 {
		t.Fatalf("cw winding = %d, want -1", got)
	}
	d := Vertex{X: 2 * FX_ONE, Y: 0, W: FX_ONE}
	if got := windingSign(&a, &b, &d); got != 0 {
		t.Fatalf("collinear winding = %d, want 0", got)
	}

	// Large coordinates must not overflow
	big := int32(1 << 30)
	a = Vertex{X: -big, Y: -big, W: big}
	b = Vertex{X: big, Y: -big, W: big}
	c = Vertex{X: 0, Y: big, W: big}
	if got := windingSign(&a, &b, &c); got != 1 {
		t.Fatalf("large ccw winding = %d, want 1", got)
	}
}

func TestQuadCrossed(t *testing.T) {
	square := []Vertex{
		{X: 0, Y: 0, W: FX_ONE},
		{X: FX_ONE, Y: 0, W: FX_ONE},
		{X: FX_ONE, Y: FX_ONE, W: FX_ONE},
		{X: 0, Y: FX_ONE, W: FX_ONE},
	}
	if quadCrossed(square) {
		t.Fatal("square reported as crossed")
	}

	bowtie := []Vertex{square[0], square[2], square[1], square[3]}
	if !quadCrossed(bowtie) {
		t.Fatal("bowtie not reported as crossed")
	}
}

func TestWShift(t *testing.T) {
	tests := []struct {
		w    int32
		want int
	}{
		{0, 0},
		{0x1000, 0},
		{0xFFFF, 0},
		{0x10000, 4},
		{0x1000000, 12},
		{0x100, -4},
		{-0x10000, 4},
	}
	for _, tc := range tests {
		if got := wShift([]Vertex{{W: tc.w}}); got != tc.want {
			t.Errorf("wShift(0x%X) = %d, want %d", tc.w, got, tc.want)
		}
	}
}
