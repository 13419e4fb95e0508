// gx_math.go - Fixed-point matrix and vector helpers for the geometry engine

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

import "math/bits"

// Matrix is a 4x4 fixed-point matrix (20.12), stored row-major.
// Vertices are row vectors: v' = v * M, translation lives in elements 12..14.
type Matrix [16]int32

// Vertex is a clip-space vertex as produced by the geometry engine.
type Vertex struct {
	X, Y, Z, W int32
	S, T       int16
	Color      uint32 // RGB666: b<<12 | g<<6 | r
}

// IdentityMatrix returns the 20.12 identity matrix.
func IdentityMatrix() Matrix {
	return Matrix{
		FX_ONE, 0, 0, 0,
		0, FX_ONE, 0, 0,
		0, 0, FX_ONE, 0,
		0, 0, 0, FX_ONE,
	}
}

// multiplyMatrix returns a * b. Each element accumulates in 64 bits and is
// shifted down by FX_SHIFT, truncating like the hardware multiplier.
func multiplyMatrix(a, b *Matrix) Matrix {
	var m Matrix
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			sum := int64(a[y*4+0])*int64(b[0*4+x]) +
				int64(a[y*4+1])*int64(b[1*4+x]) +
				int64(a[y*4+2])*int64(b[2*4+x]) +
				int64(a[y*4+3])*int64(b[3*4+x])
			m[y*4+x] = int32(sum >> FX_SHIFT)
		}
	}
	return m
}

// transformVertex returns the position of v multiplied by m. Attributes other
// than X/Y/Z/W are not touched.
func transformVertex(v *Vertex, m *Matrix) Vertex {
	x, y, z, w := int64(v.X), int64(v.Y), int64(v.Z), int64(v.W)
	return Vertex{
		X: int32((x*int64(m[0]) + y*int64(m[4]) + z*int64(m[8]) + w*int64(m[12])) >> FX_SHIFT),
		Y: int32((x*int64(m[1]) + y*int64(m[5]) + z*int64(m[9]) + w*int64(m[13])) >> FX_SHIFT),
		Z: int32((x*int64(m[2]) + y*int64(m[6]) + z*int64(m[10]) + w*int64(m[14])) >> FX_SHIFT),
		W: int32((x*int64(m[3]) + y*int64(m[7]) + z*int64(m[11]) + w*int64(m[15])) >> FX_SHIFT),
	}
}

// dotProduct is the 3-component fixed-point dot product of two vectors.
func dotProduct(a, b *Vertex) int32 {
	return int32((int64(a.X)*int64(b.X) + int64(a.Y)*int64(b.Y) + int64(a.Z)*int64(b.Z)) >> FX_SHIFT)
}

// mulDiv computes a*b/c with a 128-bit intermediate. c must be positive and
// the quotient must fit in 64 bits; the result truncates toward zero.
func mulDiv(a, b, c int64) int64 {
	neg := false
	if a < 0 {
		a, neg = -a, !neg
	}
	if b < 0 {
		b, neg = -b, !neg
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	q, _ := bits.Div64(hi, lo, uint64(c))
	if neg {
		return -int64(q)
	}
	return int64(q)
}

// lerp32 moves from a toward b by num/den.
func lerp32(a, b int32, num, den int64) int32 {
	return a + int32(mulDiv(int64(b)-int64(a), num, den))
}

// intersection synthesizes the vertex where the edge in->out crosses a plane.
// dIn >= 0 and dOut < 0 are the signed distances of the endpoints; the weight
// applied from the inside vertex is dIn / (dIn - dOut).
func intersection(in, out *Vertex, dIn, dOut int64) Vertex {
	den := dIn - dOut
	if den == 0 {
		return *in
	}
	v := Vertex{
		X: lerp32(in.X, out.X, dIn, den),
		Y: lerp32(in.Y, out.Y, dIn, den),
		Z: lerp32(in.Z, out.Z, dIn, den),
		W: lerp32(in.W, out.W, dIn, den),
		S: int16(lerp32(int32(in.S), int32(out.S), dIn, den)),
		T: int16(lerp32(int32(in.T), int32(out.T), dIn, den)),
	}
	for shift := uint(0); shift <= 12; shift += 6 {
		c1 := int32(in.Color>>shift) & 0x3F
		c2 := int32(out.Color>>shift) & 0x3F
		v.Color |= uint32(lerp32(c1, c2, dIn, den)&0x3F) << shift
	}
	return v
}

// rgb5ToRgb6 widens an RGB555 color to the engine's RGB666 format.
func rgb5ToRgb6(color uint32) uint32 {
	r := color & 0x1F
	g := (color >> 5) & 0x1F
	b := (color >> 10) & 0x1F
	r = r*2 + (r+31)/32
	g = g*2 + (g+31)/32
	b = b*2 + (b+31)/32
	return b<<12 | g<<6 | r
}

// packRGB6 packs three 6-bit channels.
func packRGB6(r, g, b int32) uint32 {
	return uint32(b&0x3F)<<12 | uint32(g&0x3F)<<6 | uint32(r&0x3F)
}

// unpackRGB6 splits an RGB666 color into channels.
func unpackRGB6(c uint32) (r, g, b int32) {
	return int32(c & 0x3F), int32((c >> 6) & 0x3F), int32((c >> 12) & 0x3F)
}

// signExtend10 sign-extends a 10-bit field to int32.
func signExtend10(v uint32) int32 {
	return int32(int16(uint16(v&0x3FF)<<6)) >> 6
}
