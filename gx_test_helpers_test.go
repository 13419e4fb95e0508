package main

import "testing"

// recordingHost captures the interrupts and DMA requests an engine makes.
type recordingHost struct {
	irqs []uint
	dmas []uint
}

func (h *recordingHost) RaiseIRQ(line uint)   { h.irqs = append(h.irqs, line) }
func (h *recordingHost) RequestDMA(mode uint) { h.dmas = append(h.dmas, mode) }

func newTestEngine(t *testing.T) *GeometryEngine {
	t.Helper()
	return NewGeometryEngine(nil)
}

// gxExec queues one command with its parameters and drains the engine.
func gxExec(t *testing.T, e *GeometryEngine, command uint8, params ...uint32) {
	t.Helper()
	want := gxParamCount(command)
	if want < 0 {
		t.Fatalf("opcode 0x%02X is not a command", command)
	}
	if len(params) != want {
		t.Fatalf("%s takes %d parameters, test passed %d", gxCommandName(command), want, len(params))
	}
	if want == 0 {
		params = []uint32{0}
	}
	for _, p := range params {
		if !e.Enqueue(command, p) {
			t.Fatalf("%s rejected", gxCommandName(command))
		}
	}
	e.RunPending()
}

// packXY packs two signed 16-bit values into one parameter word.
func packXY(x, y int32) uint32 {
	return uint32(uint16(int16(x))) | uint32(uint16(int16(y)))<<16
}

// gxVertex submits a VTX_16 vertex.
func gxVertex(t *testing.T, e *GeometryEngine, x, y, z int32) {
	t.Helper()
	gxExec(t, e, GX_CMD_VTX_16, packXY(x, y), packXY(z, 0))
}

const attrBothSides = POLY_ATTR_RENDER_FRONT | POLY_ATTR_RENDER_BACK | 31<<POLY_ATTR_ALPHA_SHIFT

// gxBegin sets the polygon attributes and starts a primitive.
func gxBegin(t *testing.T, e *GeometryEngine, attr uint32, prim int) {
	t.Helper()
	gxExec(t, e, GX_CMD_POLYGON_ATTR, attr)
	gxExec(t, e, GX_CMD_BEGIN_VTXS, uint32(prim))
}

// gxFinishFrame issues SWAP_BUFFERS and exposes the frame.
func gxFinishFrame(t *testing.T, e *GeometryEngine, flags uint32) {
	t.Helper()
	gxExec(t, e, GX_CMD_SWAP_BUFFERS, flags)
	if e.State() != GX_HALTED {
		t.Fatalf("state after SWAP_BUFFERS = %s, want halted", e.State())
	}
	e.SwapBuffers()
}

// gxFrontTriangle submits a counter-clockwise triangle well inside the view
// volume.
func gxFrontTriangle(t *testing.T, e *GeometryEngine) {
	t.Helper()
	gxVertex(t, e, 0, 0, 0)
	gxVertex(t, e, 2048, 0, 0)
	gxVertex(t, e, 0, 2048, 0)
}
