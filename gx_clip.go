// gx_clip.go - Homogeneous frustum clipping

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

// Clip planes, in the order they are applied
const (
	clipLeft = iota
	clipRight
	clipBottom
	clipTop
	clipNear
	clipFar
	clipPlaneCount
)

// planeDistance is the signed distance of v from a clip plane; the inside
// of the frustum is >= 0 for every plane.
func planeDistance(v *Vertex, plane int) int64 {
	w := int64(v.W)
	switch plane {
	case clipLeft:
		return w + int64(v.X)
	case clipRight:
		return w - int64(v.X)
	case clipBottom:
		return w + int64(v.Y)
	case clipTop:
		return w - int64(v.Y)
	case clipNear:
		return w + int64(v.Z)
	default:
		return w - int64(v.Z)
	}
}

// clipEdge returns the point where in->out crosses plane, snapped exactly
// onto the plane so rounding never leaves it outside.
func clipEdge(in, out *Vertex, dIn, dOut int64, plane int) Vertex {
	v := intersection(in, out, dIn, dOut)
	switch plane {
	case clipLeft:
		v.X = -v.W
	case clipRight:
		v.X = v.W
	case clipBottom:
		v.Y = -v.W
	case clipTop:
		v.Y = v.W
	case clipNear:
		v.Z = -v.W
	case clipFar:
		v.Z = v.W
	}
	return v
}

func insideFrustum(v *Vertex) bool {
	for plane := 0; plane < clipPlaneCount; plane++ {
		if planeDistance(v, plane) < 0 {
			return false
		}
	}
	return true
}

// clipPolygon clips a convex polygon against -w <= x, y, z <= w. The result
// is written to out and its vertex count returned; clipped reports whether
// any vertex was outside. A polygon entirely outside yields zero vertices.
// Output is capped at GX_MAX_CLIP_VERTICES, which a triangle or convex quad
// never exceeds.
func clipPolygon(in []Vertex, out *[GX_MAX_CLIP_VERTICES]Vertex) (n int, clipped bool) {
	n = copy(out[:], in)

	inside := true
	for i := 0; i < n; i++ {
		if !insideFrustum(&out[i]) {
			inside = false
			break
		}
	}
	if inside {
		return n, false
	}

	var scratch [GX_MAX_CLIP_VERTICES]Vertex
	src, dst := out, &scratch

	for plane := 0; plane < clipPlaneCount && n > 0; plane++ {
		m := 0
		emit := func(v Vertex) {
			if m < GX_MAX_CLIP_VERTICES {
				dst[m] = v
				m++
			}
		}

		for i := 0; i < n; i++ {
			cur := &src[i]
			prev := &src[(i+n-1)%n]
			dCur := planeDistance(cur, plane)
			dPrev := planeDistance(prev, plane)

			if dCur >= 0 {
				if dPrev < 0 {
					emit(clipEdge(cur, prev, dCur, dPrev, plane))
				}
				emit(*cur)
			} else if dPrev >= 0 {
				emit(clipEdge(prev, cur, dPrev, dCur, plane))
			}
		}

		n = m
		src, dst = dst, src
	}

	if src != out {
		copy(out[:n], src[:n])
	}
	return n, true
}

// dropRepeatedVertices removes vertices whose position repeats the one
// before it, treating the run as a closed loop, and returns the new length.
func dropRepeatedVertices(verts []Vertex) int {
	n := 0
	for i := range verts {
		if n > 0 && samePosition(&verts[i], &verts[n-1]) {
			continue
		}
		verts[n] = verts[i]
		n++
	}
	for n > 1 && samePosition(&verts[n-1], &verts[0]) {
		n--
	}
	return n
}

func samePosition(a, b *Vertex) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z && a.W == b.W
}
