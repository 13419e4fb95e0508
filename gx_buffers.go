// gx_buffers.go - Double-buffered vertex and polygon arenas

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

// Polygon is one entry of the polygon list handed to the rasterizer. Its
// vertices are the run [VertexStart, VertexStart+VertexCount) of the arena it
// was built in.
type Polygon struct {
	VertexStart int
	VertexCount int
	Clockwise   bool
	Crossed     bool

	Mode           int
	TransNewDepth  bool
	DepthTestEqual bool
	Fog            bool
	Alpha          uint8
	ID             int

	TextureAddr   uint32
	PaletteAddr   uint32
	SizeS, SizeT  int // Texel size is 8 << SizeS
	RepeatS       bool
	RepeatT       bool
	FlipS, FlipT  bool
	TextureFormat int
	Transparent0  bool

	WBuffer  bool
	WShift   int
	Viewport Viewport // Latched when the polygon was assembled
}

// TextureWidth returns the S dimension in texels.
func (p *Polygon) TextureWidth() int { return 8 << p.SizeS }

// TextureHeight returns the T dimension in texels.
func (p *Polygon) TextureHeight() int { return 8 << p.SizeT }

// Viewport is the screen rectangle set by the VIEWPORT command.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Project maps a clip-space vertex to screen coordinates (Y down). Vertices
// with W == 0 map to the viewport origin.
func (vp Viewport) Project(v *Vertex) (x, y float64) {
	if v.W == 0 {
		return float64(vp.X), float64(vp.Y)
	}
	w := float64(v.W)
	x = (float64(v.X)+w)*float64(vp.Width)/(2*w) + float64(vp.X)
	y = (w-float64(v.Y))*float64(vp.Height)/(2*w) + float64(vp.Y)
	return x, y
}

type arenaRole int

const (
	arenaBuilding arenaRole = iota
	arenaExposed
)

// gxArena holds one frame worth of geometry.
type gxArena struct {
	role         arenaRole
	vertices     [GX_MAX_VERTICES]Vertex
	polygons     [GX_MAX_POLYGONS]Polygon
	vertexCount  int
	polygonCount int

	manualSort bool
}

// gxDoubleBuffer owns both arenas. building indexes the arena the pipeline
// writes; the other one is exposed to the renderer.
type gxDoubleBuffer struct {
	arenas   [2]gxArena
	building int
}

func newDoubleBuffer() *gxDoubleBuffer {
	db := &gxDoubleBuffer{}
	db.arenas[0].role = arenaBuilding
	db.arenas[1].role = arenaExposed
	return db
}

func (db *gxDoubleBuffer) in() *gxArena  { return &db.arenas[db.building] }
func (db *gxDoubleBuffer) out() *gxArena { return &db.arenas[db.building^1] }

// swap exposes the building arena and recycles the previously exposed one.
func (db *gxDoubleBuffer) swap() {
	db.building ^= 1
	db.arenas[db.building].role = arenaBuilding
	db.arenas[db.building^1].role = arenaExposed
	in := db.in()
	in.vertexCount = 0
	in.polygonCount = 0
}

// reset empties both arenas.
func (db *gxDoubleBuffer) reset() {
	for i := range db.arenas {
		db.arenas[i].vertexCount = 0
		db.arenas[i].polygonCount = 0
		db.arenas[i].manualSort = false
	}
	db.building = 0
	db.arenas[0].role = arenaBuilding
	db.arenas[1].role = arenaExposed
}

// appendPolygon stores a polygon together with its vertex run. It reports
// false, leaving the arena untouched, when either arena is out of room.
func (a *gxArena) appendPolygon(p Polygon, verts []Vertex) bool {
	if a.polygonCount >= GX_MAX_POLYGONS || a.vertexCount+len(verts) > GX_MAX_VERTICES {
		return false
	}
	p.VertexStart = a.vertexCount
	p.VertexCount = len(verts)
	copy(a.vertices[a.vertexCount:], verts)
	a.vertexCount += len(verts)
	a.polygons[a.polygonCount] = p
	a.polygonCount++
	return true
}
