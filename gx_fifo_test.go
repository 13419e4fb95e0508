package main

import "testing"

func TestGXParamCount(t *testing.T) {
	tests := []struct {
		command uint8
		want    int
	}{
		{GX_CMD_NOP, -1},
		{0x05, -1},
		{GX_CMD_MTX_PUSH, 0},
		{GX_CMD_MTX_MODE, 1},
		{GX_CMD_VTX_16, 2},
		{GX_CMD_MTX_SCALE, 3},
		{GX_CMD_MTX_MULT_3x3, 9},
		{GX_CMD_MTX_LOAD_4x3, 12},
		{GX_CMD_MTX_LOAD_4x4, 16},
		{GX_CMD_SHININESS, 32},
		{GX_CMD_END_VTXS, 0},
		{GX_CMD_VEC_TEST, 1},
	}
	for _, tc := range tests {
		if got := gxParamCount(tc.command); got != tc.want {
			t.Errorf("gxParamCount(%s) = %d, want %d", gxCommandName(tc.command), got, tc.want)
		}
	}
}

func TestGXCommandTableComplete(t *testing.T) {
	n := 0
	for op := range gxCommandTable {
		if gxCommandTable[op].handler != nil {
			n++
		}
	}
	if n != 36 {
		t.Fatalf("command table has %d commands, want 36", n)
	}
}

func TestEnqueueStartsEngine(t *testing.T) {
	e := newTestEngine(t)
	if e.State() != GX_IDLE {
		t.Fatalf("initial state = %s, want idle", e.State())
	}

	e.Enqueue(GX_CMD_MTX_IDENTITY, 0)
	if e.State() != GX_RUNNING {
		t.Fatalf("state after enqueue = %s, want running", e.State())
	}
	if !e.PollIsReady() {
		t.Fatal("PollIsReady = false with a zero-parameter command queued")
	}

	e.RunPending()
	if e.State() != GX_IDLE {
		t.Fatalf("state after drain = %s, want idle", e.State())
	}
	if e.queue.count != 0 {
		t.Fatalf("queue count = %d, want 0", e.queue.count)
	}
}

func TestCommandWaitsForParameters(t *testing.T) {
	e := newTestEngine(t)
	e.Enqueue(GX_CMD_MTX_MODE, MTX_MODE_COORDINATE)
	e.RunPending()

	e.Enqueue(GX_CMD_MTX_TRANS, FX_ONE)
	e.Enqueue(GX_CMD_MTX_TRANS, 2*FX_ONE)
	if e.PollIsReady() {
		t.Fatal("PollIsReady = true with 2 of 3 parameters queued")
	}
	e.RunPending()
	if e.queue.count != 2 {
		t.Fatalf("queue count = %d, want 2 (parameters held)", e.queue.count)
	}

	e.Enqueue(GX_CMD_MTX_TRANS, 3*FX_ONE)
	if !e.PollIsReady() {
		t.Fatal("PollIsReady = false with all parameters queued")
	}
	e.RunPending()

	if e.coordinate[12] != FX_ONE || e.coordinate[13] != 2*FX_ONE || e.coordinate[14] != 3*FX_ONE {
		t.Fatalf("translation = (%d, %d, %d), want (1, 2, 3) in 20.12",
			e.coordinate[12], e.coordinate[13], e.coordinate[14])
	}
}

func TestIncompleteCommandDiscarded(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_MTX_MODE, MTX_MODE_COORDINATE)

	e.Enqueue(GX_CMD_MTX_TRANS, FX_ONE)
	e.Enqueue(GX_CMD_MTX_TRANS, FX_ONE)
	e.Enqueue(GX_CMD_MTX_PUSH, 0)
	e.RunPending()

	if e.queue.count != 0 {
		t.Fatalf("queue count = %d, want 0", e.queue.count)
	}
	if e.coordinate != IdentityMatrix() {
		t.Fatalf("partial MTX_TRANS was applied: %v", e.coordinate)
	}
	if e.coordinatePtr != 1 {
		t.Fatalf("coordinate stack level = %d, want 1 (PUSH ran)", e.coordinatePtr)
	}
}

func TestUnknownOpcodeDropped(t *testing.T) {
	e := newTestEngine(t)
	e.Enqueue(0x05, 0x1234)
	e.Enqueue(GX_CMD_NOP, 0)
	e.Enqueue(GX_CMD_MTX_PUSH, 0)
	e.RunPending()

	if e.queue.count != 0 || e.State() != GX_IDLE {
		t.Fatalf("queue count %d state %s, want empty idle", e.queue.count, e.State())
	}
	if e.projectionPtr != 1 {
		t.Fatalf("projection level = %d, want 1", e.projectionPtr)
	}
}

func TestFullQueueStallsAndDrains(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < GX_QUEUE_CAPACITY; i++ {
		if !e.Enqueue(GX_CMD_MTX_IDENTITY, 0) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	if got := e.ReadGXStat(); got&GXSTAT_FIFO_FULL == 0 {
		t.Fatalf("GXSTAT = 0x%08X, want FIFO full", got)
	}

	// The next write stalls until the engine drains
	if !e.Enqueue(GX_CMD_MTX_IDENTITY, 0) {
		t.Fatal("enqueue on full running queue rejected")
	}
	if e.queue.count != 1 {
		t.Fatalf("queue count after stall = %d, want 1", e.queue.count)
	}
	if e.ReadGXStat()&GXSTAT_FIFO_OVERFLOW != 0 {
		t.Fatal("overflow flagged although the stall drained the queue")
	}
}

func TestFullQueueWhileHaltedOverflows(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_SWAP_BUFFERS, 0)

	for i := 0; i < GX_QUEUE_CAPACITY; i++ {
		if !e.Enqueue(GX_CMD_MTX_IDENTITY, 0) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	if e.Enqueue(GX_CMD_MTX_IDENTITY, 0) {
		t.Fatal("enqueue on full halted queue accepted")
	}

	stat := e.ReadGXStat()
	if stat&GXSTAT_FIFO_OVERFLOW == 0 {
		t.Fatalf("GXSTAT = 0x%08X, want overflow bit", stat)
	}
	if count := (stat & GXSTAT_FIFO_COUNT) >> GXSTAT_FIFO_COUNT_SHIFT; count != GX_FIFO_DEPTH {
		t.Fatalf("GXSTAT FIFO count = %d, want %d", count, GX_FIFO_DEPTH)
	}

	// Acknowledging clears the sticky bit
	e.WriteGXStat(0xFFFFFFFF, GXSTAT_STACK_ERROR)
	if e.ReadGXStat()&GXSTAT_FIFO_OVERFLOW != 0 {
		t.Fatal("overflow bit survived acknowledge")
	}

	// Swapping resumes the queued work
	e.SwapBuffers()
	if e.State() != GX_RUNNING {
		t.Fatalf("state after swap = %s, want running", e.State())
	}
	e.RunPending()
	if e.queue.count != 0 {
		t.Fatalf("queue count = %d, want 0", e.queue.count)
	}
}

func TestFIFOCountExcludesPipe(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_SWAP_BUFFERS, 0)

	for i := 0; i < GX_PIPE_DEPTH; i++ {
		e.Enqueue(GX_CMD_MTX_IDENTITY, 0)
	}
	if got := e.ReadFIFOCount(); got != 0 {
		t.Fatalf("FIFO count with full PIPE = %d, want 0", got)
	}
	e.Enqueue(GX_CMD_MTX_IDENTITY, 0)
	if got := e.ReadFIFOCount(); got != 1 {
		t.Fatalf("FIFO count = %d, want 1", got)
	}
	stat := e.ReadGXStat()
	if stat&GXSTAT_FIFO_EMPTY != 0 || stat&GXSTAT_FIFO_HALF == 0 || stat&GXSTAT_BUSY == 0 {
		t.Fatalf("GXSTAT = 0x%08X, want busy, less than half, not empty", stat)
	}
}

func TestPackedFIFO(t *testing.T) {
	e := newTestEngine(t)

	// MTX_MODE(1), MTX_IDENTITY packed in one word
	e.WriteGXFifo(0xFFFFFFFF, uint32(GX_CMD_MTX_IDENTITY)<<8|GX_CMD_MTX_MODE)
	if e.queue.count != 0 {
		t.Fatalf("queue count after command word = %d, want 0", e.queue.count)
	}
	e.WriteGXFifo(0xFFFFFFFF, MTX_MODE_COORDINATE)
	if e.queue.count != 2 {
		t.Fatalf("queue count = %d, want 2 (MTX_MODE + MTX_IDENTITY)", e.queue.count)
	}
	e.RunPending()
	if e.matrixMode != MTX_MODE_COORDINATE {
		t.Fatalf("matrix mode = %d, want %d", e.matrixMode, MTX_MODE_COORDINATE)
	}
}

func TestPackedFIFOLeadingZeroParamCommands(t *testing.T) {
	e := newTestEngine(t)

	// MTX_PUSH, NOP, MTX_MODE: the push is queued immediately and the
	// zero opcode skipped
	e.WriteGXFifo(0xFFFFFFFF, uint32(GX_CMD_MTX_MODE)<<16|GX_CMD_MTX_PUSH)
	if e.queue.count != 1 {
		t.Fatalf("queue count = %d, want 1", e.queue.count)
	}
	e.WriteGXFifo(0xFFFFFFFF, MTX_MODE_TEXTURE)
	e.RunPending()

	if e.projectionPtr != 1 {
		t.Fatalf("projection level = %d, want 1", e.projectionPtr)
	}
	if e.matrixMode != MTX_MODE_TEXTURE {
		t.Fatalf("matrix mode = %d, want %d", e.matrixMode, MTX_MODE_TEXTURE)
	}
	if e.packedCommands != 0 {
		t.Fatalf("packed commands left = 0x%X, want 0", e.packedCommands)
	}
}

func TestPackedFIFOMultiParam(t *testing.T) {
	e := newTestEngine(t)
	gxBegin(t, e, attrBothSides, PRIM_TRIANGLES)

	e.WriteGXFifo(0xFFFFFFFF, uint32(GX_CMD_VTX_16)<<16|uint32(GX_CMD_VTX_16)<<8|GX_CMD_VTX_16)
	for _, p := range []uint32{
		packXY(0, 0), 0,
		packXY(2048, 0), 0,
		packXY(0, 2048), 0,
	} {
		e.WriteGXFifo(0xFFFFFFFF, p)
	}
	e.RunPending()

	if got := e.ReadRAMCount(); got != 1|3<<16 {
		t.Fatalf("RAM_COUNT = 0x%08X, want 1 polygon 3 vertices", got)
	}
}
