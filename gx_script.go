// gx_script.go - Lua scripting front end for the geometry engine

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
gx_script.go - Lua command scripts

Scripts drive the machine through the same register surface a CPU program
would use. A global table "gx" exposes:

  gx.write(addr, value [, size])   bus store (size 8, 16 or 32; default 32)
  gx.read(addr [, size])           bus load
  gx.cmd(opcode, params...)        write params to the opcode's command port
  gx.fifo(words...)                write words to the packed GX_FIFO port
  gx.poke(addr, words...)          store words in main RAM
  gx.dma(src, count)               stream count words from src into GX_FIFO
  gx.run()                         drain the engine; returns its state name
  gx.vblank()                      end the frame; returns true if swapped
  gx.polygons()                    exposed polygon count
  gx.vertex(poly, index)           x, y, z, w, color of an exposed vertex
  gx.stat()                        GXSTAT
  gx.fx(number)                    20.12 fixed-point encoding of number
  gx.reset()                       hard reset
  gx.log(message)                  info log line

gx.op holds every opcode by mnemonic (gx.op.VTX_16 == 0x23), gx.reg holds the
register addresses. A script may define a global function frame(n); the host
calls it once per frame before the vertical blank.
*/

package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ScriptHost owns a Lua state bound to one machine. It is not safe for
// concurrent use.
type ScriptHost struct {
	L *lua.LState
	m *Machine
}

// NewScriptHost creates a Lua state with the gx module installed.
func NewScriptHost(m *Machine) *ScriptHost {
	s := &ScriptHost{L: lua.NewState(), m: m}
	s.install()
	return s
}

// Close releases the Lua state.
func (s *ScriptHost) Close() {
	s.L.Close()
}

// RunFile executes a script file.
func (s *ScriptHost) RunFile(path string) error {
	if err := s.L.DoFile(path); err != nil {
		return fmt.Errorf("script: %s: %w", path, err)
	}
	return nil
}

// RunString executes a chunk of Lua source.
func (s *ScriptHost) RunString(src string) error {
	if err := s.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// SetOutput redirects Lua's print to w.
func (s *ScriptHost) SetOutput(w io.Writer) {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(w, strings.Join(parts, "\t"))
		return 0
	}))
}

// HasFrameFunc reports whether the script defined frame(n).
func (s *ScriptHost) HasFrameFunc() bool {
	return s.L.GetGlobal("frame").Type() == lua.LTFunction
}

// CallFrame runs the script's frame function, if any, for frame n.
func (s *ScriptHost) CallFrame(n int) error {
	fn := s.L.GetGlobal("frame")
	if fn.Type() != lua.LTFunction {
		return nil
	}
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LNumber(n)); err != nil {
		return fmt.Errorf("script: frame %d: %w", n, err)
	}
	return nil
}

// checkU32 reads argument n as a 32-bit register value. Negative numbers
// wrap to their two's complement encoding.
func checkU32(L *lua.LState, n int) uint32 {
	v := float64(L.CheckNumber(n))
	if v < math.MinInt32 || v > math.MaxUint32 {
		L.ArgError(n, "value out of 32-bit range")
	}
	return uint32(int64(v))
}

func (s *ScriptHost) install() {
	L := s.L
	mod := L.NewTable()

	fns := map[string]lua.LGFunction{
		"write":    s.luaWrite,
		"read":     s.luaRead,
		"cmd":      s.luaCmd,
		"fifo":     s.luaFifo,
		"poke":     s.luaPoke,
		"dma":      s.luaDMA,
		"run":      s.luaRun,
		"vblank":   s.luaVBlank,
		"polygons": s.luaPolygons,
		"vertex":   s.luaVertex,
		"stat":     s.luaStat,
		"fx":       luaFx,
		"reset":    s.luaReset,
		"log":      luaLog,
	}
	for name, fn := range fns {
		L.SetField(mod, name, L.NewFunction(fn))
	}

	ops := L.NewTable()
	for op := range gxCommandTable {
		if cmd := &gxCommandTable[op]; cmd.handler != nil {
			L.SetField(ops, cmd.name, lua.LNumber(op))
		}
	}
	L.SetField(mod, "op", ops)

	regs := L.NewTable()
	for name, addr := range map[string]uint32{
		"FIFO":      GX_FIFO,
		"STAT":      GX_STAT,
		"RAM_COUNT": GX_RAM_COUNT,
		"POS":       GX_POS_RESULT,
		"VEC":       GX_VEC_RESULT,
		"CLIPMTX":   GX_CLIPMTX_RESULT,
		"VECMTX":    GX_VECMTX_RESULT,
		"IME":       IRQ_IME,
		"IE":        IRQ_IE,
		"IF":        IRQ_IF,
		"RAM":       MAIN_RAM_BASE,
	} {
		L.SetField(regs, name, lua.LNumber(addr))
	}
	L.SetField(mod, "reg", regs)

	L.SetGlobal("gx", mod)
}

func (s *ScriptHost) luaWrite(L *lua.LState) int {
	addr := checkU32(L, 1)
	value := checkU32(L, 2)
	switch size := L.OptInt(3, 32); size {
	case 8:
		s.m.Bus.Write8(addr, uint8(value))
	case 16:
		s.m.Bus.Write16(addr, uint16(value))
	case 32:
		s.m.Bus.Write32(addr, value)
	default:
		L.ArgError(3, "size must be 8, 16 or 32")
	}
	return 0
}

func (s *ScriptHost) luaRead(L *lua.LState) int {
	addr := checkU32(L, 1)
	var value uint32
	switch size := L.OptInt(2, 32); size {
	case 8:
		value = uint32(s.m.Bus.Read8(addr))
	case 16:
		value = uint32(s.m.Bus.Read16(addr))
	case 32:
		value = s.m.Bus.Read32(addr)
	default:
		L.ArgError(2, "size must be 8, 16 or 32")
	}
	L.Push(lua.LNumber(value))
	return 1
}

func (s *ScriptHost) luaCmd(L *lua.LState) int {
	op := L.CheckInt(1)
	if op < 0 || op > 0xFF || gxCommandTable[op].handler == nil {
		L.ArgError(1, fmt.Sprintf("unknown command 0x%02X", op))
	}
	port := uint32(GX_BASE + op*4)
	params := gxCommandTable[op].params
	if params == 0 {
		s.m.Bus.Write32(port, 0)
		return 0
	}
	if top := L.GetTop() - 1; top != params {
		L.RaiseError("%s takes %d parameters, got %d", gxCommandTable[op].name, params, top)
	}
	for i := 0; i < params; i++ {
		s.m.Bus.Write32(port, checkU32(L, i+2))
	}
	return 0
}

func (s *ScriptHost) luaFifo(L *lua.LState) int {
	for i := 1; i <= L.GetTop(); i++ {
		s.m.Bus.Write32(GX_FIFO, checkU32(L, i))
	}
	return 0
}

func (s *ScriptHost) luaPoke(L *lua.LState) int {
	addr := checkU32(L, 1)
	words := make([]uint32, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		words = append(words, checkU32(L, i))
	}
	s.m.Bus.LoadWords(addr, words)
	return 0
}

func (s *ScriptHost) luaDMA(L *lua.LState) int {
	s.m.Bus.StartGXFIFODMA(checkU32(L, 1), checkU32(L, 2))
	return 0
}

func (s *ScriptHost) luaRun(L *lua.LState) int {
	s.m.Step()
	L.Push(lua.LString(s.m.GX.State().String()))
	return 1
}

func (s *ScriptHost) luaVBlank(L *lua.LState) int {
	L.Push(lua.LBool(s.m.VBlank()))
	return 1
}

func (s *ScriptHost) luaPolygons(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.GX.PolygonCount()))
	return 1
}

func (s *ScriptHost) luaVertex(L *lua.LState) int {
	polys := s.m.GX.Polygons()
	pi := L.CheckInt(1)
	if pi < 0 || pi >= len(polys) {
		L.ArgError(1, "polygon index out of range")
	}
	verts := s.m.GX.Vertices(&polys[pi])
	vi := L.CheckInt(2)
	if vi < 0 || vi >= len(verts) {
		L.ArgError(2, "vertex index out of range")
	}
	v := verts[vi]
	L.Push(lua.LNumber(v.X))
	L.Push(lua.LNumber(v.Y))
	L.Push(lua.LNumber(v.Z))
	L.Push(lua.LNumber(v.W))
	L.Push(lua.LNumber(v.Color))
	return 5
}

func (s *ScriptHost) luaStat(L *lua.LState) int {
	L.Push(lua.LNumber(s.m.GX.ReadGXStat()))
	return 1
}

func (s *ScriptHost) luaReset(L *lua.LState) int {
	s.m.HardReset()
	return 0
}

func luaFx(L *lua.LState) int {
	v := float64(L.CheckNumber(1))
	L.Push(lua.LNumber(uint32(int32(math.Round(v * FX_ONE)))))
	return 1
}

func luaLog(L *lua.LState) int {
	Logger().Info("script", "message", L.CheckString(1))
	return 0
}
