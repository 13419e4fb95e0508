// gx_engine.go - 3D Geometry Engine: register interface and frame state machine

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

/*
gx_engine.go - Command-driven 3D Geometry Engine

The geometry engine sits between the CPU and the 3D rasterizer. Software writes
commands into a 256-entry FIFO (plus a 4-entry pipe), either through the packed
GX_FIFO port or through the dedicated per-command ports. The engine decodes each
command, transforms vertices through its matrix stacks, lights and clips them,
and assembles polygons into the building half of a double buffer. SWAP_BUFFERS
halts the engine until the host signals a new frame; SwapBuffers then exposes the
finished polygon list to the renderer.

Architecture:
- gx_fifo.go:      command queue, dispatch table, GX_FIFO packed port
- gx_matrix.go:    projection/coordinate/direction/texture matrices and stacks
- gx_assembler.go: vertex submission, primitive topologies, culling
- gx_clip.go:      homogeneous frustum clipping
- gx_lighting.go:  materials, lights and per-vertex lighting
- gx_hwtest.go:    box, position and vector tests
- gx_buffers.go:   double-buffered vertex/polygon arenas

Scheduling:
The engine never runs by itself. The host polls PollIsReady and calls
RunPending (typically once per CPU slice). A write that finds the queue full
stalls by draining synchronously, as the real CPU would stall on the bus.
*/

package main

// GXState is the dispatcher state.
type GXState int

const (
	GX_IDLE GXState = iota
	GX_RUNNING
	GX_HALTED
)

func (s GXState) String() string {
	switch s {
	case GX_IDLE:
		return "idle"
	case GX_RUNNING:
		return "running"
	case GX_HALTED:
		return "halted"
	}
	return "unknown"
}

// GXHost is the engine's handle to the surrounding machine.
type GXHost interface {
	RaiseIRQ(line uint)
	RequestDMA(mode uint)
}

type gxLight struct {
	vector Vertex
	half   Vertex
	color  uint32
}

// GeometryEngine implements the 3D geometry engine. One instance owns all
// of its register state; any number can coexist.
type GeometryEngine struct {
	host  GXHost
	state GXState

	// Command queue (FIFO + PIPE)
	queue  gxQueue
	params [GX_MAX_PARAMS]uint32

	// GX_FIFO packed port
	packedCommands uint32
	packedParams   int

	// Shadow values of the per-command ports, indexed by opcode
	ports [0x80]uint32

	// Matrices
	matrixMode      int
	projection      Matrix
	projectionStack Matrix
	projectionPtr   int
	coordinate      Matrix
	direction       Matrix
	coordStack      [GX_COORD_STACK_DEPTH]Matrix
	dirStack        [GX_COORD_STACK_DEPTH]Matrix
	coordinatePtr   int
	texture         Matrix
	textureStack    Matrix
	texturePtr      int
	clip            Matrix
	clipDirty       bool

	buffers *gxDoubleBuffer

	// Vertex assembly
	savedVertex      Vertex // Last submitted position (object space)
	savedPolygon     Polygon
	vertexColor      uint32
	texS, texT       int16 // TEXCOORD as written
	vtxS, vtxT       int16 // Texture coordinates applied to vertices
	textureCoordMode int
	window           [4]Vertex
	windowCount      int
	vertexCount      int
	polygonType      int
	paletteBase      uint32

	polygonAttr   uint32
	enabledLights uint8
	renderBack    bool
	renderFront   bool
	farClip       bool

	// Lighting
	diffuseColor     uint32
	ambientColor     uint32
	specularColor    uint32
	emissionColor    uint32
	shininessEnabled bool
	lights           [GX_NUM_LIGHTS]gxLight
	shininess        [GX_SHININESS_ENTRIES]uint8

	viewport Viewport

	// Status and results
	gxStat    uint32
	posResult [4]int32
	vecResult [3]int16
}

// NewGeometryEngine creates an engine in its power-on state. host may be nil
// when no IRQ or DMA delivery is needed.
func NewGeometryEngine(host GXHost) *GeometryEngine {
	e := &GeometryEngine{
		host:    host,
		buffers: newDoubleBuffer(),
	}
	e.Reset()
	return e
}

// State returns the dispatcher state.
func (e *GeometryEngine) State() GXState {
	return e.state
}

// ShouldSwap reports whether the engine is waiting for a buffer swap.
func (e *GeometryEngine) ShouldSwap() bool {
	return e.state == GX_HALTED
}

// SwapBuffers exposes the frame built since the last swap. It is a no-op
// unless a SWAP_BUFFERS command has halted the engine.
func (e *GeometryEngine) SwapBuffers() {
	if e.state != GX_HALTED {
		return
	}
	in := e.buffers.in()
	Logger().Debug("gx: swap buffers",
		"polygons", in.polygonCount,
		"vertices", in.vertexCount)

	e.buffers.swap()
	e.state = GX_IDLE
	if e.queue.count > 0 {
		e.state = GX_RUNNING
	}
	e.afterDispatch()
}

// Polygons returns the exposed polygon list. The slice aliases engine memory
// and is only valid until the next SwapBuffers.
func (e *GeometryEngine) Polygons() []Polygon {
	out := e.buffers.out()
	return out.polygons[:out.polygonCount]
}

// PolygonCount returns the number of exposed polygons.
func (e *GeometryEngine) PolygonCount() int {
	return e.buffers.out().polygonCount
}

// Vertices returns the vertex run of an exposed polygon.
func (e *GeometryEngine) Vertices(p *Polygon) []Vertex {
	out := e.buffers.out()
	end := p.VertexStart + p.VertexCount
	if p.VertexStart < 0 || end > out.vertexCount {
		return nil
	}
	return out.vertices[p.VertexStart:end]
}

// VertexCount returns the number of vertices in the exposed frame.
func (e *GeometryEngine) VertexCount() int {
	return e.buffers.out().vertexCount
}

// ManualSort reports whether the exposed frame asked for translucent
// polygons to be drawn in submission order.
func (e *GeometryEngine) ManualSort() bool {
	return e.buffers.out().manualSort
}

// HandleRead services CPU reads of the result and status registers.
func (e *GeometryEngine) HandleRead(addr uint32) uint32 {
	addr &^= 3
	switch {
	case addr == GX_STAT:
		return e.ReadGXStat()
	case addr == GX_RAM_COUNT:
		return e.ReadRAMCount()
	case addr >= GX_POS_RESULT && addr < GX_POS_RESULT+16:
		return e.ReadPosResult(int(addr-GX_POS_RESULT) / 4)
	case addr >= GX_VEC_RESULT && addr < GX_VEC_RESULT+8:
		i := int(addr-GX_VEC_RESULT) / 2
		value := e.ReadVecResult(i)
		if i+1 < 3 {
			value |= e.ReadVecResult(i+1) << 16
		}
		return value
	case addr >= GX_CLIPMTX_RESULT && addr < GX_CLIPMTX_RESULT+64:
		return e.ReadClipMatrix(int(addr-GX_CLIPMTX_RESULT) / 4)
	case addr >= GX_VECMTX_RESULT && addr < GX_VECMTX_RESULT+36:
		return e.ReadDirectionMatrix(int(addr-GX_VECMTX_RESULT) / 4)
	}
	return 0
}

// HandleWrite services CPU writes. mask selects the byte lanes being written.
func (e *GeometryEngine) HandleWrite(addr uint32, mask uint32, value uint32) {
	addr &^= 3
	switch {
	case addr >= GX_FIFO && addr <= GX_FIFO_END:
		e.WriteGXFifo(mask, value)
	case addr >= GX_CMD_PORT_FIRST && addr <= GX_CMD_PORT_LAST:
		command := uint8((addr - GX_BASE) >> 2)
		if gxCommandTable[command].handler != nil {
			e.writeCommandPort(command, mask, value)
		}
	case addr == GX_STAT:
		e.WriteGXStat(mask, value)
	}
}

// writeCommandPort merges a partial write into the port's shadow value and
// queues the command.
func (e *GeometryEngine) writeCommandPort(command uint8, mask, value uint32) {
	e.ports[command] = e.ports[command]&^mask | value&mask
	e.Enqueue(command, e.ports[command])
}

// ReadGXStat returns the status register with live FIFO and engine bits.
func (e *GeometryEngine) ReadGXStat() uint32 {
	stat := e.gxStat & (GXSTAT_IRQ_MODE | GXSTAT_STACK_ERROR | GXSTAT_FIFO_OVERFLOW | GXSTAT_BOX_RESULT)
	stat |= uint32(e.coordinatePtr) << GXSTAT_COORD_LEVEL_SHIFT & GXSTAT_COORD_LEVEL
	if e.projectionPtr > 0 {
		stat |= GXSTAT_PROJ_LEVEL
	}

	count := e.fifoCount()
	stat |= uint32(count) << GXSTAT_FIFO_COUNT_SHIFT
	if count >= GX_FIFO_DEPTH {
		stat |= GXSTAT_FIFO_FULL
	}
	if count < GX_FIFO_HALF {
		stat |= GXSTAT_FIFO_HALF
	}
	if count == 0 {
		stat |= GXSTAT_FIFO_EMPTY
	}
	if e.state != GX_IDLE || e.queue.count > 0 {
		stat |= GXSTAT_BUSY
	}
	return stat
}

// WriteGXStat acknowledges errors (bit 15) and sets the IRQ mode.
func (e *GeometryEngine) WriteGXStat(mask, value uint32) {
	value &= mask
	if value&GXSTAT_STACK_ERROR != 0 {
		e.gxStat &^= GXSTAT_STACK_ERROR | GXSTAT_FIFO_OVERFLOW
		e.projectionPtr = 0
	}
	writable := mask & GXSTAT_WRITABLE
	e.gxStat = e.gxStat&^writable | value&writable
	e.checkIRQ()
}

// ReadRAMCount returns the building frame's polygon count (bits 0-11) and
// vertex count (bits 16-28).
func (e *GeometryEngine) ReadRAMCount() uint32 {
	in := e.buffers.in()
	return uint32(in.polygonCount) | uint32(in.vertexCount)<<16
}

// ReadFIFOCount returns the number of entries waiting in the command FIFO.
func (e *GeometryEngine) ReadFIFOCount() uint32 {
	return uint32(e.fifoCount())
}

// ReadPosResult returns one component of the last POS_TEST.
func (e *GeometryEngine) ReadPosResult(index int) uint32 {
	if index < 0 || index >= len(e.posResult) {
		return 0
	}
	return uint32(e.posResult[index])
}

// ReadVecResult returns one component of the last VEC_TEST.
func (e *GeometryEngine) ReadVecResult(index int) uint32 {
	if index < 0 || index >= len(e.vecResult) {
		return 0
	}
	return uint32(uint16(e.vecResult[index]))
}

// checkIRQ raises the GXFIFO interrupt when the configured condition holds.
func (e *GeometryEngine) checkIRQ() {
	if e.host == nil {
		return
	}
	count := e.fifoCount()
	switch (e.gxStat & GXSTAT_IRQ_MODE) >> GXSTAT_IRQ_MODE_SHIFT {
	case GX_IRQ_LESS_HALF:
		if count < GX_FIFO_HALF {
			e.host.RaiseIRQ(GX_IRQ_LINE_FIFO)
		}
	case GX_IRQ_EMPTY:
		if count == 0 {
			e.host.RaiseIRQ(GX_IRQ_LINE_FIFO)
		}
	}
}

// afterDispatch refreshes the host-visible side effects of FIFO occupancy.
func (e *GeometryEngine) afterDispatch() {
	if e.host != nil && e.fifoCount() < GX_FIFO_HALF {
		e.host.RequestDMA(GX_DMA_MODE_FIFO)
	}
	e.checkIRQ()
}
