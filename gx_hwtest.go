// gx_hwtest.go - BOX_TEST, POS_TEST and VEC_TEST

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

// boxFaces lists the corners of each face of a box, indexed by corner number
// (bit 0 = +width, bit 1 = +height, bit 2 = +depth).
var boxFaces = [6][4]int{
	{0, 1, 3, 2}, // front
	{4, 5, 7, 6}, // back
	{0, 1, 5, 4}, // bottom
	{2, 3, 7, 6}, // top
	{0, 2, 6, 4}, // left
	{1, 3, 7, 5}, // right
}

// cmdBoxTest sets GXSTAT_BOX_RESULT when any face of the box survives
// clipping against the view volume.
func (e *GeometryEngine) cmdBoxTest(params []uint32) {
	x := int32(int16(params[0]))
	y := int32(int16(params[0] >> 16))
	z := int32(int16(params[1]))
	w := int32(int16(params[1] >> 16))
	h := int32(int16(params[2]))
	d := int32(int16(params[2] >> 16))

	clip := e.currentClip()
	var corners [8]Vertex
	for i := range corners {
		c := Vertex{X: x, Y: y, Z: z, W: FX_ONE}
		if i&1 != 0 {
			c.X += w
		}
		if i&2 != 0 {
			c.Y += h
		}
		if i&4 != 0 {
			c.Z += d
		}
		corners[i] = transformVertex(&c, clip)
	}

	e.gxStat &^= GXSTAT_BOX_RESULT
	var face [4]Vertex
	var out [GX_MAX_CLIP_VERTICES]Vertex
	for _, f := range boxFaces {
		for i, c := range f {
			face[i] = corners[c]
		}
		if n, _ := clipPolygon(face[:], &out); n > 0 {
			e.gxStat |= GXSTAT_BOX_RESULT
			return
		}
	}
}

// cmdPosTest sets the current vertex and stores its clip-space position.
func (e *GeometryEngine) cmdPosTest(params []uint32) {
	e.savedVertex.X = int32(int16(params[0]))
	e.savedVertex.Y = int32(int16(params[0] >> 16))
	e.savedVertex.Z = int32(int16(params[1]))

	v := e.savedVertex
	v.W = FX_ONE
	r := transformVertex(&v, e.currentClip())
	e.posResult = [4]int32{r.X, r.Y, r.Z, r.W}
}

// cmdVecTest transforms a vector by the direction matrix. Results are 4.12,
// sign-expanded from bit 12 to 16 bits.
func (e *GeometryEngine) cmdVecTest(params []uint32) {
	v := unpackVector(params[0])
	r := transformVertex(&v, &e.direction)
	for i, c := range [3]int32{r.X, r.Y, r.Z} {
		e.vecResult[i] = int16(int32(uint32(c)<<19) >> 19)
	}
}
