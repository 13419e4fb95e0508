package main

import (
	"encoding/binary"
	"testing"
)

func TestBusRAMReadWrite(t *testing.T) {
	bus := NewSystemBus()
	addr := uint32(MAIN_RAM_BASE + 0x100)

	bus.Write32(addr, 0xDEADBEEF)
	if got := bus.Read32(addr); got != 0xDEADBEEF {
		t.Fatalf("Read32 = 0x%08X, want 0xDEADBEEF", got)
	}
	if got := bus.Read16(addr + 2); got != 0xDEAD {
		t.Fatalf("Read16 = 0x%04X, want 0xDEAD", got)
	}
	if got := bus.Read8(addr); got != 0xEF {
		t.Fatalf("Read8 = 0x%02X, want 0xEF", got)
	}

	bus.Write8(addr+1, 0x12)
	bus.Write16(addr+2, 0x3456)
	if got := bus.Read32(addr); got != 0x345612EF {
		t.Fatalf("Read32 after narrow writes = 0x%08X, want 0x345612EF", got)
	}

	// Little-endian storage
	if got := binary.LittleEndian.Uint32(bus.memory[0x100:]); got != 0x345612EF {
		t.Fatalf("memory word = 0x%08X", got)
	}
}

func TestBusUnmappedAccess(t *testing.T) {
	bus := NewSystemBus()
	bus.Write32(0x01000000, 0x12345678)
	if got := bus.Read32(0x01000000); got != 0 {
		t.Fatalf("unmapped read = 0x%08X, want 0", got)
	}
	// Last word of RAM is reachable, the next one is not
	bus.Write32(MAIN_RAM_END-3, 0xCAFEBABE)
	if got := bus.Read32(MAIN_RAM_END - 3); got != 0xCAFEBABE {
		t.Fatalf("last RAM word = 0x%08X", got)
	}
	if got := bus.Read32(MAIN_RAM_END + 1); got != 0 {
		t.Fatalf("read past RAM = 0x%08X, want 0", got)
	}
}

func TestBusIOByteLanes(t *testing.T) {
	bus := NewSystemBus()

	var gotAddr, gotMask, gotValue uint32
	bus.MapIO(0x04001000, 0x0400100F,
		func(addr uint32) uint32 { return 0x11223344 },
		func(addr, mask, value uint32) {
			gotAddr, gotMask, gotValue = addr, mask, value
		})

	bus.Write8(0x04001006, 0xAB)
	if gotAddr != 0x04001004 || gotMask != 0x00FF0000 || gotValue != 0x00AB0000 {
		t.Fatalf("Write8 -> addr 0x%08X mask 0x%08X value 0x%08X", gotAddr, gotMask, gotValue)
	}
	bus.Write16(0x04001002, 0xBEEF)
	if gotAddr != 0x04001000 || gotMask != 0xFFFF0000 || gotValue != 0xBEEF0000 {
		t.Fatalf("Write16 -> addr 0x%08X mask 0x%08X value 0x%08X", gotAddr, gotMask, gotValue)
	}

	if got := bus.Read8(0x04001001); got != 0x33 {
		t.Fatalf("Read8 lane 1 = 0x%02X, want 0x33", got)
	}
	if got := bus.Read16(0x04001002); got != 0x1122 {
		t.Fatalf("Read16 high half = 0x%04X, want 0x1122", got)
	}
}

func TestBusGXStatByteWrite(t *testing.T) {
	m := NewMachine()
	// IRQ mode 2 lives in the top byte
	m.Bus.Write8(GX_STAT+3, 0x80)
	stat := m.Bus.Read32(GX_STAT)
	if mode := (stat & GXSTAT_IRQ_MODE) >> GXSTAT_IRQ_MODE_SHIFT; mode != GX_IRQ_EMPTY {
		t.Fatalf("IRQ mode = %d, want %d", mode, GX_IRQ_EMPTY)
	}
	if m.Bus.Read32(IRQ_IF)&(1<<GX_IRQ_LINE_FIFO) == 0 {
		t.Fatal("empty FIFO IRQ not raised when enabled")
	}
}

func TestBusIRQRegisters(t *testing.T) {
	bus := NewSystemBus()
	var raised []uint
	bus.OnIRQ = func(line uint) { raised = append(raised, line) }

	bus.RaiseIRQ(GX_IRQ_LINE_FIFO)
	if len(raised) != 1 || raised[0] != GX_IRQ_LINE_FIFO {
		t.Fatalf("OnIRQ calls = %v", raised)
	}
	if bus.IRQPending() {
		t.Fatal("IRQPending with IME and IE clear")
	}

	bus.Write32(IRQ_IME, 1)
	bus.Write32(IRQ_IE, 1<<GX_IRQ_LINE_FIFO)
	if !bus.IRQPending() {
		t.Fatal("IRQPending = false with line enabled")
	}

	// Writing 1 acknowledges
	bus.Write32(IRQ_IF, 1<<GX_IRQ_LINE_FIFO)
	if bus.Read32(IRQ_IF) != 0 || bus.IRQPending() {
		t.Fatal("IF bit survived acknowledge")
	}
}

func TestBusImmediateDMA(t *testing.T) {
	bus := NewSystemBus()
	bus.LoadWords(MAIN_RAM_BASE, []uint32{0x11111111, 0x22222222, 0x33333333})

	bus.Write32(DMA_BASE+DMA_SAD, MAIN_RAM_BASE)
	bus.Write32(DMA_BASE+DMA_DAD, MAIN_RAM_BASE+0x100)
	bus.Write32(DMA_BASE+DMA_CNT, 2|DMA_CNT_WORD|DMA_CNT_ENABLE)

	if got := bus.Read32(MAIN_RAM_BASE + 0x100); got != 0x11111111 {
		t.Fatalf("word 0 = 0x%08X", got)
	}
	if got := bus.Read32(MAIN_RAM_BASE + 0x104); got != 0x22222222 {
		t.Fatalf("word 1 = 0x%08X", got)
	}
	if got := bus.Read32(MAIN_RAM_BASE + 0x108); got != 0 {
		t.Fatalf("DMA copied past its count: 0x%08X", got)
	}
	if bus.Read32(DMA_BASE+DMA_CNT)&DMA_CNT_ENABLE != 0 {
		t.Fatal("enable bit still set after transfer")
	}
}

func TestBusDMACompletionIRQ(t *testing.T) {
	bus := NewSystemBus()
	ch := uint32(2)
	base := uint32(DMA_BASE) + ch*DMA_CHANNEL_SIZE
	bus.Write32(base+DMA_SAD, MAIN_RAM_BASE)
	bus.Write32(base+DMA_DAD, MAIN_RAM_BASE+0x40)
	bus.Write32(base+DMA_CNT, 1|GX_DMA_MODE_FIFO<<DMA_CNT_MODE_SHIFT|DMA_CNT_IRQ|DMA_CNT_ENABLE)

	if bus.Read32(IRQ_IF) != 0 {
		t.Fatal("FIFO-mode DMA ran before it was requested")
	}
	bus.RequestDMA(GX_DMA_MODE_FIFO)
	if bus.Read32(IRQ_IF)&(1<<(DMA_IRQ_LINE_FIRST+ch)) == 0 {
		t.Fatalf("IF = 0x%08X, want DMA channel %d bit", bus.Read32(IRQ_IF), ch)
	}
}

func TestBusDMAFeedsGeometryFIFO(t *testing.T) {
	m := NewMachine()
	words := []uint32{
		uint32(GX_CMD_BEGIN_VTXS)<<8 | GX_CMD_POLYGON_ATTR,
		attrBothSides,
		PRIM_TRIANGLES,
		uint32(GX_CMD_VTX_16)<<16 | uint32(GX_CMD_VTX_16)<<8 | GX_CMD_VTX_16,
		packXY(0, 0), 0,
		packXY(2048, 0), 0,
		packXY(0, 2048), 0,
		GX_CMD_SWAP_BUFFERS,
		0,
	}
	m.Bus.LoadWords(MAIN_RAM_BASE, words)
	m.Bus.StartGXFIFODMA(MAIN_RAM_BASE, uint32(len(words)))

	if !m.VBlank() {
		t.Fatal("frame not exposed")
	}
	if m.GX.PolygonCount() != 1 {
		t.Fatalf("polygons = %d, want 1", m.GX.PolygonCount())
	}
	if m.Bus.Read32(DMA_BASE+DMA_CNT)&DMA_CNT_ENABLE != 0 {
		t.Fatal("DMA channel still enabled after the transfer")
	}
}

func TestBusDMALongTransferInBursts(t *testing.T) {
	m := NewMachine()
	// 300 MTX_IDENTITY commands, four per packed word, then SWAP_BUFFERS
	var words []uint32
	packed := uint32(GX_CMD_MTX_IDENTITY) * 0x01010101
	for i := 0; i < 75; i++ {
		words = append(words, packed)
	}
	words = append(words, GX_CMD_SWAP_BUFFERS, 0)
	m.Bus.LoadWords(MAIN_RAM_BASE, words)
	m.Bus.StartGXFIFODMA(MAIN_RAM_BASE, uint32(len(words)))

	if !m.VBlank() {
		t.Fatal("frame not exposed after a multi-burst transfer")
	}
	if m.GX.ReadGXStat()&GXSTAT_FIFO_OVERFLOW != 0 {
		t.Fatal("FIFO overflowed during DMA")
	}
}
