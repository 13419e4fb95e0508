// memory_bus.go - Memory bus for the IntuitionGX host

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
memory_bus.go - Memory Bus for the IntuitionGX geometry host

This module implements the memory bus that connects the CPU side of the host
(scripts, the console and DMA) to main RAM and to the memory-mapped geometry
engine. It provides a unified interface for 8, 16 and 32-bit accesses,
including byte-lane masking for narrow writes to 32-bit I/O registers.

Core Features:

    4MB of main memory at 0x02000000 allocated as a contiguous block.
    Memory-mapped I/O via a page mapping table with fixed page sizes.
    Little-endian read/write operations.
    An interrupt controller (IME/IE/IF) the geometry engine raises lines on.
    A four-channel DMA controller that feeds GX_FIFO when the engine asks.

Technical Details:

    The SystemBus struct fulfils the MemoryBus interface and the GXHost
    interface, so a GeometryEngine can be wired to it directly.
    I/O regions are registered with a start and end address along with
    callbacks (onRead and onWrite). onWrite receives the byte-lane mask of
    the access, so an 8-bit store to a 32-bit register only touches its lane.
    Page keys are calculated with PAGE_MASK and PAGE_SIZE.

Concurrency:

    A sync.RWMutex protects main memory and the mapping table. It is never
    held while an I/O callback runs: callbacks may re-enter the bus (the
    geometry engine requests DMA, which writes GX_FIFO through the bus).
*/

package main

import (
	"encoding/binary"
	"sync"
)

const (
	PAGE_SIZE = 0x100
	PAGE_MASK = 0xFFFFFF00
	WORD_SIZE = 4
)

type MemoryBus interface {
	/*
		MemoryBus defines the interface for memory operations
		within the host. It provides methods to read and write
		8, 16 and 32-bit values as well as to reset the memory state.

		Implementations must support memory-mapped I/O.
	*/

	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, value uint8)
	Write16(addr uint32, value uint16)
	Write32(addr uint32, value uint32)
	Reset()
}

type IORegion struct {
	/*
		IORegion represents a memory-mapped I/O region within the system.
		Each region is defined by its start and end addresses and includes
		callback functions to handle read and write operations.

		Callbacks always see word-aligned addresses. Writes carry a mask
		selecting the byte lanes being stored.
	*/
	start   uint32
	end     uint32
	onRead  func(addr uint32) uint32
	onWrite func(addr uint32, mask uint32, value uint32)
}

type dmaChannel struct {
	src     uint32
	dst     uint32
	control uint32
	// Words left in a geometry FIFO transfer
	remaining uint32
}

type SystemBus struct {
	/*
		SystemBus implements the MemoryBus and GXHost interfaces and serves
		as the primary memory bus for the host.

		It maintains a contiguous block of main memory, a mapping of
		memory-mapped I/O regions, the interrupt registers and the DMA
		channels.
	*/

	memory  []byte
	mutex   sync.RWMutex
	mapping map[uint32][]IORegion

	ime uint32
	ie  uint32
	irf uint32 // IF

	dma       [DMA_CHANNELS]dmaChannel
	dmaActive bool

	// OnIRQ, when set, is called each time a line is raised.
	OnIRQ func(line uint)
}

func NewSystemBus() *SystemBus {
	/*
		NewSystemBus initialises and returns a new SystemBus instance.

		The function allocates main memory, initialises the I/O mapping
		table and maps the interrupt and DMA registers.
	*/

	bus := &SystemBus{
		memory:  make([]byte, MAIN_RAM_SIZE),
		mapping: make(map[uint32][]IORegion),
	}
	bus.MapIO(IRQ_REGION_BASE, IRQ_REGION_END, bus.readIRQ, bus.writeIRQ)
	bus.MapIO(DMA_BASE, DMA_END, bus.readDMA, bus.writeDMA)
	return bus
}

// AttachGeometryEngine maps an engine's register space onto the bus.
func (bus *SystemBus) AttachGeometryEngine(gx *GeometryEngine) {
	bus.MapIO(GX_BASE, GX_END, gx.HandleRead, gx.HandleWrite)
}

func (bus *SystemBus) MapIO(start, end uint32, onRead func(addr uint32) uint32, onWrite func(addr uint32, mask uint32, value uint32)) {
	/*
		MapIO registers a new memory-mapped I/O region with the system bus.
		The region is specified by its start and end addresses and associated
		read/write callback functions.

		The function appends the region to the mapping for each page it
		spans.
	*/

	region := IORegion{
		start:   start,
		end:     end,
		onRead:  onRead,
		onWrite: onWrite,
	}

	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	firstPage := start & PAGE_MASK
	lastPage := end & PAGE_MASK
	for page := firstPage; page <= lastPage; page += PAGE_SIZE {
		bus.mapping[page] = append(bus.mapping[page], region)
	}
}

func (bus *SystemBus) findRegion(addr uint32) (IORegion, bool) {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()

	for _, region := range bus.mapping[addr&PAGE_MASK] {
		if addr >= region.start && addr <= region.end {
			return region, true
		}
	}
	return IORegion{}, false
}

// ramOffset returns the offset of addr in main memory for a size-byte access.
func ramOffset(addr uint32, size uint32) (uint32, bool) {
	if addr < MAIN_RAM_BASE {
		return 0, false
	}
	off := addr - MAIN_RAM_BASE
	if off > MAIN_RAM_SIZE-size {
		return 0, false
	}
	return off, true
}

// writeIO dispatches a write of value (already shifted into its lane) to the
// region covering addr. It reports whether a region handled it.
func (bus *SystemBus) writeIO(addr uint32, mask uint32, value uint32) bool {
	region, ok := bus.findRegion(addr)
	if !ok {
		return false
	}
	if region.onWrite != nil {
		region.onWrite(addr&^3, mask, value)
	}
	return true
}

// readIO returns the word at addr&^3 from the region covering addr.
func (bus *SystemBus) readIO(addr uint32) (uint32, bool) {
	region, ok := bus.findRegion(addr)
	if !ok {
		return 0, false
	}
	if region.onRead == nil {
		return 0, true
	}
	return region.onRead(addr &^ 3), true
}

func (bus *SystemBus) Write32(addr uint32, value uint32) {
	/*
		Write32 performs a 32-bit write. I/O regions receive the full lane
		mask; anything else goes to main RAM. Unmapped addresses are ignored.
	*/

	addr &^= 3
	if bus.writeIO(addr, 0xFFFFFFFF, value) {
		return
	}

	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	if off, ok := ramOffset(addr, 4); ok {
		binary.LittleEndian.PutUint32(bus.memory[off:off+WORD_SIZE], value)
	}
}

func (bus *SystemBus) Write16(addr uint32, value uint16) {
	addr &^= 1
	shift := (addr & 2) * 8
	if bus.writeIO(addr, 0xFFFF<<shift, uint32(value)<<shift) {
		return
	}

	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	if off, ok := ramOffset(addr, 2); ok {
		binary.LittleEndian.PutUint16(bus.memory[off:off+2], value)
	}
}

func (bus *SystemBus) Write8(addr uint32, value uint8) {
	shift := (addr & 3) * 8
	if bus.writeIO(addr, 0xFF<<shift, uint32(value)<<shift) {
		return
	}

	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	if off, ok := ramOffset(addr, 1); ok {
		bus.memory[off] = value
	}
}

func (bus *SystemBus) Read32(addr uint32) uint32 {
	/*
		Read32 performs a 32-bit read. If the address is within a registered
		I/O region the onRead callback supplies the value; otherwise the
		value comes from main RAM. Unmapped addresses read as zero.
	*/

	addr &^= 3
	if value, ok := bus.readIO(addr); ok {
		return value
	}

	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	if off, ok := ramOffset(addr, 4); ok {
		return binary.LittleEndian.Uint32(bus.memory[off : off+WORD_SIZE])
	}
	return 0
}

func (bus *SystemBus) Read16(addr uint32) uint16 {
	addr &^= 1
	if value, ok := bus.readIO(addr); ok {
		return uint16(value >> ((addr & 2) * 8))
	}

	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	if off, ok := ramOffset(addr, 2); ok {
		return binary.LittleEndian.Uint16(bus.memory[off : off+2])
	}
	return 0
}

func (bus *SystemBus) Read8(addr uint32) uint8 {
	if value, ok := bus.readIO(addr); ok {
		return uint8(value >> ((addr & 3) * 8))
	}

	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	if off, ok := ramOffset(addr, 1); ok {
		return bus.memory[off]
	}
	return 0
}

// LoadWords copies little-endian words into main RAM starting at addr.
func (bus *SystemBus) LoadWords(addr uint32, words []uint32) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	for i, w := range words {
		if off, ok := ramOffset(addr+uint32(i)*4, 4); ok {
			binary.LittleEndian.PutUint32(bus.memory[off:off+WORD_SIZE], w)
		}
	}
}

// =============================================================================
// Interrupts
// =============================================================================

// RaiseIRQ sets the request flag for line. Part of GXHost.
func (bus *SystemBus) RaiseIRQ(line uint) {
	bus.mutex.Lock()
	bus.irf |= 1 << line
	cb := bus.OnIRQ
	bus.mutex.Unlock()

	if cb != nil {
		cb(line)
	}
}

// IRQPending reports whether an enabled interrupt is requested while IME is on.
func (bus *SystemBus) IRQPending() bool {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	return bus.ime&1 != 0 && bus.ie&bus.irf != 0
}

func (bus *SystemBus) readIRQ(addr uint32) uint32 {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	switch addr {
	case IRQ_IME:
		return bus.ime
	case IRQ_IE:
		return bus.ie
	case IRQ_IF:
		return bus.irf
	}
	return 0
}

func (bus *SystemBus) writeIRQ(addr uint32, mask uint32, value uint32) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	switch addr {
	case IRQ_IME:
		bus.ime = bus.ime&^mask | value&mask&1
	case IRQ_IE:
		bus.ie = bus.ie&^mask | value&mask
	case IRQ_IF:
		// Writing 1 acknowledges
		bus.irf &^= value & mask
	}
}

// =============================================================================
// DMA
// =============================================================================

func (bus *SystemBus) readDMA(addr uint32) uint32 {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	off := addr - DMA_BASE
	ch := &bus.dma[off/DMA_CHANNEL_SIZE]
	switch off % DMA_CHANNEL_SIZE {
	case DMA_SAD:
		return ch.src
	case DMA_DAD:
		return ch.dst
	default:
		return ch.control
	}
}

func (bus *SystemBus) writeDMA(addr uint32, mask uint32, value uint32) {
	bus.mutex.Lock()
	off := addr - DMA_BASE
	index := off / DMA_CHANNEL_SIZE
	ch := &bus.dma[index]
	start := false
	switch off % DMA_CHANNEL_SIZE {
	case DMA_SAD:
		ch.src = ch.src&^mask | value&mask
	case DMA_DAD:
		ch.dst = ch.dst&^mask | value&mask
	default:
		was := ch.control & DMA_CNT_ENABLE
		ch.control = ch.control&^mask | value&mask
		if was == 0 && ch.control&DMA_CNT_ENABLE != 0 {
			ch.remaining = ch.control & DMA_CNT_COUNT_MASK
			start = (ch.control>>DMA_CNT_MODE_SHIFT)&DMA_CNT_MODE_MASK == 0
		}
	}
	bus.mutex.Unlock()

	// Mode 0 transfers start immediately
	if start {
		bus.runDMA(int(index), ^uint32(0))
	}
}

// RequestDMA starts every enabled channel waiting on mode. Part of GXHost.
// Geometry FIFO transfers move at most DMA_MAX_BURST_WORDS per request.
func (bus *SystemBus) RequestDMA(mode uint) {
	bus.mutex.Lock()
	if bus.dmaActive {
		bus.mutex.Unlock()
		return
	}
	var ready []int
	for i := range bus.dma {
		ch := &bus.dma[i]
		if ch.control&DMA_CNT_ENABLE != 0 && uint((ch.control>>DMA_CNT_MODE_SHIFT)&DMA_CNT_MODE_MASK) == mode {
			ready = append(ready, i)
		}
	}
	bus.mutex.Unlock()

	for _, i := range ready {
		burst := ^uint32(0)
		if mode == GX_DMA_MODE_FIFO {
			burst = DMA_MAX_BURST_WORDS
		}
		bus.runDMA(i, burst)
	}
}

// StartGXFIFODMA arms channel 0 to stream words from src into GX_FIFO and
// kicks the first burst.
func (bus *SystemBus) StartGXFIFODMA(src uint32, words uint32) {
	bus.Write32(DMA_BASE+DMA_SAD, src)
	bus.Write32(DMA_BASE+DMA_DAD, GX_FIFO)
	bus.Write32(DMA_BASE+DMA_CNT, words&DMA_CNT_COUNT_MASK|
		GX_DMA_MODE_FIFO<<DMA_CNT_MODE_SHIFT|DMA_CNT_WORD|DMA_CNT_ENABLE)
	bus.RequestDMA(GX_DMA_MODE_FIFO)
}

// runDMA copies up to burst words on channel i. The bus lock is dropped
// around each word so destination callbacks can re-enter the bus.
func (bus *SystemBus) runDMA(i int, burst uint32) {
	bus.mutex.Lock()
	if bus.dmaActive {
		bus.mutex.Unlock()
		return
	}
	bus.dmaActive = true
	ch := &bus.dma[i]
	n := ch.remaining
	if n > burst {
		n = burst
	}
	src, dst := ch.src, ch.dst
	bus.mutex.Unlock()

	fixedDst := dst >= GX_FIFO && dst <= GX_FIFO_END
	for k := uint32(0); k < n; k++ {
		w := bus.Read32(src)
		bus.Write32(dst, w)
		src += 4
		if !fixedDst {
			dst += 4
		}
	}

	bus.mutex.Lock()
	ch.src, ch.dst = src, dst
	ch.remaining -= n
	done := ch.remaining == 0
	irq := false
	if done {
		ch.control &^= DMA_CNT_ENABLE
		irq = ch.control&DMA_CNT_IRQ != 0
	}
	bus.dmaActive = false
	bus.mutex.Unlock()

	if irq {
		bus.RaiseIRQ(uint(DMA_IRQ_LINE_FIRST + i))
	}
}
