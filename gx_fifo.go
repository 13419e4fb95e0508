// gx_fifo.go - Geometry command queue, dispatch table and GX_FIFO port

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

// gxEntry is one FIFO slot: an opcode together with one parameter word.
// Zero-parameter commands occupy a single slot with an unused parameter.
type gxEntry struct {
	command uint8
	param   uint32
}

// gxQueue is a fixed ring covering the 256-entry FIFO and the 4-entry PIPE.
type gxQueue struct {
	entries [GX_QUEUE_CAPACITY]gxEntry
	head    int
	count   int
}

func (q *gxQueue) push(e gxEntry) {
	q.entries[(q.head+q.count)%GX_QUEUE_CAPACITY] = e
	q.count++
}

func (q *gxQueue) peek(i int) *gxEntry {
	return &q.entries[(q.head+i)%GX_QUEUE_CAPACITY]
}

func (q *gxQueue) discard(n int) {
	if n > q.count {
		n = q.count
	}
	q.head = (q.head + n) % GX_QUEUE_CAPACITY
	q.count -= n
}

func (q *gxQueue) reset() {
	q.head = 0
	q.count = 0
}

// gxCommand describes one opcode: how many parameter words it consumes and
// the handler that executes it.
type gxCommand struct {
	name    string
	params  int
	handler func(e *GeometryEngine, params []uint32)
}

// gxCommandTable is indexed by opcode. Entries with a nil handler are not
// commands; queued entries for them are dropped.
var gxCommandTable [256]gxCommand

func init() {
	set := func(op uint8, name string, params int, h func(*GeometryEngine, []uint32)) {
		gxCommandTable[op] = gxCommand{name: name, params: params, handler: h}
	}

	set(GX_CMD_MTX_MODE, "MTX_MODE", 1, (*GeometryEngine).cmdMtxMode)
	set(GX_CMD_MTX_PUSH, "MTX_PUSH", 0, (*GeometryEngine).cmdMtxPush)
	set(GX_CMD_MTX_POP, "MTX_POP", 1, (*GeometryEngine).cmdMtxPop)
	set(GX_CMD_MTX_STORE, "MTX_STORE", 1, (*GeometryEngine).cmdMtxStore)
	set(GX_CMD_MTX_RESTORE, "MTX_RESTORE", 1, (*GeometryEngine).cmdMtxRestore)
	set(GX_CMD_MTX_IDENTITY, "MTX_IDENTITY", 0, (*GeometryEngine).cmdMtxIdentity)
	set(GX_CMD_MTX_LOAD_4x4, "MTX_LOAD_4x4", 16, (*GeometryEngine).cmdMtxLoad4x4)
	set(GX_CMD_MTX_LOAD_4x3, "MTX_LOAD_4x3", 12, (*GeometryEngine).cmdMtxLoad4x3)
	set(GX_CMD_MTX_MULT_4x4, "MTX_MULT_4x4", 16, (*GeometryEngine).cmdMtxMult4x4)
	set(GX_CMD_MTX_MULT_4x3, "MTX_MULT_4x3", 12, (*GeometryEngine).cmdMtxMult4x3)
	set(GX_CMD_MTX_MULT_3x3, "MTX_MULT_3x3", 9, (*GeometryEngine).cmdMtxMult3x3)
	set(GX_CMD_MTX_SCALE, "MTX_SCALE", 3, (*GeometryEngine).cmdMtxScale)
	set(GX_CMD_MTX_TRANS, "MTX_TRANS", 3, (*GeometryEngine).cmdMtxTrans)

	set(GX_CMD_COLOR, "COLOR", 1, (*GeometryEngine).cmdColor)
	set(GX_CMD_NORMAL, "NORMAL", 1, (*GeometryEngine).cmdNormal)
	set(GX_CMD_TEXCOORD, "TEXCOORD", 1, (*GeometryEngine).cmdTexCoord)
	set(GX_CMD_VTX_16, "VTX_16", 2, (*GeometryEngine).cmdVtx16)
	set(GX_CMD_VTX_10, "VTX_10", 1, (*GeometryEngine).cmdVtx10)
	set(GX_CMD_VTX_XY, "VTX_XY", 1, (*GeometryEngine).cmdVtxXY)
	set(GX_CMD_VTX_XZ, "VTX_XZ", 1, (*GeometryEngine).cmdVtxXZ)
	set(GX_CMD_VTX_YZ, "VTX_YZ", 1, (*GeometryEngine).cmdVtxYZ)
	set(GX_CMD_VTX_DIFF, "VTX_DIFF", 1, (*GeometryEngine).cmdVtxDiff)
	set(GX_CMD_POLYGON_ATTR, "POLYGON_ATTR", 1, (*GeometryEngine).cmdPolygonAttr)
	set(GX_CMD_TEXIMAGE_PARAM, "TEXIMAGE_PARAM", 1, (*GeometryEngine).cmdTexImageParam)
	set(GX_CMD_PLTT_BASE, "PLTT_BASE", 1, (*GeometryEngine).cmdPlttBase)

	set(GX_CMD_DIF_AMB, "DIF_AMB", 1, (*GeometryEngine).cmdDifAmb)
	set(GX_CMD_SPE_EMI, "SPE_EMI", 1, (*GeometryEngine).cmdSpeEmi)
	set(GX_CMD_LIGHT_VECTOR, "LIGHT_VECTOR", 1, (*GeometryEngine).cmdLightVector)
	set(GX_CMD_LIGHT_COLOR, "LIGHT_COLOR", 1, (*GeometryEngine).cmdLightColor)
	set(GX_CMD_SHININESS, "SHININESS", 32, (*GeometryEngine).cmdShininess)

	set(GX_CMD_BEGIN_VTXS, "BEGIN_VTXS", 1, (*GeometryEngine).cmdBeginVtxs)
	set(GX_CMD_END_VTXS, "END_VTXS", 0, (*GeometryEngine).cmdEndVtxs)
	set(GX_CMD_SWAP_BUFFERS, "SWAP_BUFFERS", 1, (*GeometryEngine).cmdSwapBuffers)
	set(GX_CMD_VIEWPORT, "VIEWPORT", 1, (*GeometryEngine).cmdViewport)

	set(GX_CMD_BOX_TEST, "BOX_TEST", 3, (*GeometryEngine).cmdBoxTest)
	set(GX_CMD_POS_TEST, "POS_TEST", 2, (*GeometryEngine).cmdPosTest)
	set(GX_CMD_VEC_TEST, "VEC_TEST", 1, (*GeometryEngine).cmdVecTest)
}

// gxParamCount returns the number of parameter words an opcode takes, or -1
// for opcodes that are not commands.
func gxParamCount(command uint8) int {
	cmd := &gxCommandTable[command]
	if cmd.handler == nil {
		return -1
	}
	return cmd.params
}

// gxCommandName returns the mnemonic of an opcode.
func gxCommandName(command uint8) string {
	if name := gxCommandTable[command].name; name != "" {
		return name
	}
	return "UNKNOWN"
}

// fifoCount returns the entries held in the FIFO proper. The first four
// queued entries sit in the PIPE and are not counted.
func (e *GeometryEngine) fifoCount() int {
	if e.queue.count <= GX_PIPE_DEPTH {
		return 0
	}
	return e.queue.count - GX_PIPE_DEPTH
}

// Enqueue appends one command entry. A full queue stalls the writer: the
// pending commands are drained synchronously first. If the engine is halted
// and nothing can drain, the entry is rejected, GXSTAT_FIFO_OVERFLOW is set
// and false is returned.
func (e *GeometryEngine) Enqueue(command uint8, param uint32) bool {
	if e.queue.count >= GX_QUEUE_CAPACITY {
		if e.state == GX_RUNNING {
			e.RunPending()
		}
		if e.queue.count >= GX_QUEUE_CAPACITY {
			e.gxStat |= GXSTAT_FIFO_OVERFLOW
			Logger().Debug("gx: fifo full, entry rejected",
				"command", gxCommandName(command),
				"state", e.state.String())
			return false
		}
	}

	e.queue.push(gxEntry{command: command, param: param})
	if e.state == GX_IDLE {
		e.state = GX_RUNNING
	}
	return true
}

// PollIsReady reports whether RunPending would make progress.
func (e *GeometryEngine) PollIsReady() bool {
	if e.state != GX_RUNNING || e.queue.count == 0 {
		return false
	}
	head := e.queue.peek(0)
	n := gxParamCount(head.command)
	if n <= 1 {
		return true
	}
	for i := 1; i < n; i++ {
		if i >= e.queue.count {
			return false
		}
		if e.queue.peek(i).command != head.command {
			// The run is malformed; dispatch will drop it
			return true
		}
	}
	return true
}

// RunPending executes queued commands until the queue empties, the head
// command is still waiting for parameters, or SWAP_BUFFERS halts the engine.
func (e *GeometryEngine) RunPending() {
	for e.state == GX_RUNNING {
		if !e.runCommand() {
			break
		}
	}
	if e.state == GX_RUNNING && e.queue.count == 0 {
		e.state = GX_IDLE
	}
	e.afterDispatch()
}

// runCommand dispatches the head of the queue. It returns false when the
// head cannot run yet.
func (e *GeometryEngine) runCommand() bool {
	if e.queue.count == 0 {
		return false
	}
	head := e.queue.peek(0)
	command := head.command
	cmd := &gxCommandTable[command]

	if cmd.handler == nil {
		if command != GX_CMD_NOP {
			Logger().Debug("gx: unknown command dropped", "opcode", command)
		}
		e.queue.discard(1)
		return true
	}

	if cmd.params == 0 {
		e.queue.discard(1)
		cmd.handler(e, nil)
		return true
	}

	for i := 0; i < cmd.params; i++ {
		if i >= e.queue.count {
			return false
		}
		entry := e.queue.peek(i)
		if entry.command != command {
			// Another opcode arrived before the parameters were complete.
			// The partial run is discarded and the newcomer becomes the head.
			Logger().Debug("gx: incomplete command discarded",
				"command", cmd.name,
				"have", i,
				"want", cmd.params,
				"next", gxCommandName(entry.command))
			e.queue.discard(i)
			return true
		}
		e.params[i] = entry.param
	}
	e.queue.discard(cmd.params)
	cmd.handler(e, e.params[:cmd.params])
	return true
}

// WriteGXFifo accepts a word on the packed GX_FIFO port. A word that arrives
// with no packed command pending holds up to four opcodes, lowest byte first.
// Following words are parameters for the lowest opcode; zero-parameter
// opcodes are queued as soon as they reach the front. Zero opcodes are
// skipped.
func (e *GeometryEngine) WriteGXFifo(mask, value uint32) {
	value &= mask

	if e.packedCommands == 0 {
		e.packedCommands = value
		e.packedParams = 0
	} else {
		command := uint8(e.packedCommands)
		e.Enqueue(command, value)
		e.packedParams++
		if e.packedParams < gxParamCount(command) {
			return
		}
		e.packedCommands >>= 8
		e.packedParams = 0
	}

	// Flush leading opcodes that take no parameters (or are unknown)
	for e.packedCommands != 0 {
		command := uint8(e.packedCommands)
		if command != GX_CMD_NOP && gxParamCount(command) > 0 {
			return
		}
		if command != GX_CMD_NOP {
			e.Enqueue(command, 0)
		}
		e.packedCommands >>= 8
	}
}
