// registers.go - Centralized I/O register address map for IntuitionGX

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
registers.go - Master I/O Register Address Map

This file provides a centralized reference for the memory-mapped regions the
geometry engine host exposes. The geometry engine's own register constants live
in gx_constants.go.

MEMORY MAP OVERVIEW
===================

Address Range           Size    Device              Constants File
---------------------------------------------------------------------------
0x02000000-0x023FFFFF   4MB     Main RAM            registers.go
0x040000B0-0x040000DF   48B     DMA channels 0-3    registers.go
0x04000208-0x04000217   16B     IME / IE / IF       registers.go
0x04000400-0x0400043F   64B     GX_FIFO             gx_constants.go
0x04000440-0x040005CB   396B    GX command ports    gx_constants.go
0x04000600-0x040006A3   164B    GX status/results   gx_constants.go

I/O REGION DETAILS
==================

DMA (0x040000B0-0x040000DF)
  Per channel i at DMA_BASE + i*12: SAD, DAD, CNT
  CNT bits 0-20 word count, 27-29 start mode (7 = geometry FIFO),
  bit 26 word transfer, bit 30 IRQ, bit 31 enable

Interrupts (0x04000208-0x04000217)
  IME (bit 0 master enable), IE (enable mask), IF (request flags,
  write 1 to acknowledge). The geometry FIFO raises bit 21.

Geometry engine (0x04000400-0x040006A3) - gx_engine.go
  GX_FIFO packed commands, one port per command,
  GXSTAT, RAM_COUNT, POS/VEC test results, clip/direction matrix readback
*/

package main

// =============================================================================
// Memory Regions
// =============================================================================

const (
	MAIN_RAM_BASE = 0x02000000
	MAIN_RAM_SIZE = 0x00400000 // 4MB
	MAIN_RAM_END  = MAIN_RAM_BASE + MAIN_RAM_SIZE - 1

	IO_REGION_BASE = 0x04000000
	IO_REGION_END  = 0x04FFFFFF
)

// =============================================================================
// DMA Controller
// =============================================================================

const (
	DMA_BASE         = 0x040000B0
	DMA_CHANNELS     = 4
	DMA_CHANNEL_SIZE = 12
	DMA_END          = DMA_BASE + DMA_CHANNELS*DMA_CHANNEL_SIZE - 1

	DMA_SAD = 0x0 // Source address
	DMA_DAD = 0x4 // Destination address
	DMA_CNT = 0x8 // Word count and control

	DMA_CNT_COUNT_MASK  = 0x1FFFFF
	DMA_CNT_MODE_SHIFT  = 27
	DMA_CNT_MODE_MASK   = 0x7
	DMA_CNT_WORD        = 1 << 26
	DMA_CNT_IRQ         = 1 << 30
	DMA_CNT_ENABLE      = 1 << 31
	DMA_IRQ_LINE_FIRST  = 8 // Channel i raises IF bit 8+i
	DMA_MAX_BURST_WORDS = GX_DMA_BURST
)

// =============================================================================
// Interrupt Controller
// =============================================================================

const (
	IRQ_IME = 0x04000208
	IRQ_IE  = 0x04000210
	IRQ_IF  = 0x04000214

	IRQ_REGION_BASE = IRQ_IME
	IRQ_REGION_END  = IRQ_IF + 3
)

// =============================================================================
// Helper Functions
// =============================================================================

// IsIOAddress returns true if the address is in the I/O region
func IsIOAddress(addr uint32) bool {
	return addr >= IO_REGION_BASE && addr <= IO_REGION_END
}

// IsMainRAMAddress returns true if the address is in main RAM
func IsMainRAMAddress(addr uint32) bool {
	return addr >= MAIN_RAM_BASE && addr <= MAIN_RAM_END
}

// GetIORegion returns the device name for an I/O address
func GetIORegion(addr uint32) string {
	switch {
	case addr >= DMA_BASE && addr <= DMA_END:
		return "DMA"
	case addr >= IRQ_REGION_BASE && addr <= IRQ_REGION_END:
		return "IRQ"
	case addr >= GX_FIFO && addr <= GX_FIFO_END:
		return "GXFIFO"
	case addr >= GX_CMD_PORT_FIRST && addr <= GX_CMD_PORT_LAST+3:
		return "GXCommand"
	case addr >= GX_STAT && addr <= GX_END:
		return "GXStatus"
	default:
		return "Unknown"
	}
}
