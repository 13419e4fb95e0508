// gx_constants.go - Geometry engine register map, opcodes and status bits

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
gx_constants.go - 3D Geometry Engine Register Definitions

Register addresses follow the handheld's ARM9 I/O map. Every geometry command
has a dedicated port in the 0x04000440-0x040005CB range; the command opcode is
the port offset from GX_FIFO divided by four. Writes to GX_FIFO itself use the
packed-command protocol (one word of up to four opcodes followed by their
parameters).

Fixed-point formats used throughout:
  Matrix elements, positions  signed 20.12 (FX_ONE = 1 << 12)
  Vertex input                signed 1.3.12 (VTX_16), 1.3.6 (VTX_10)
  Normals / light vectors     signed 1.0.9, widened to 1.3.12 internally
  Texture coordinates         signed 1.11.4
  Colors                      RGB555 in, RGB666 internally (b<<12 | g<<6 | r)
*/

package main

// Fixed point
const (
	FX_SHIFT = 12
	FX_ONE   = 1 << FX_SHIFT
)

// Geometry engine register space
const (
	GX_BASE = 0x04000400
	GX_END  = 0x040006A3

	GX_FIFO     = GX_BASE + 0x000 // Packed command port (0x04000400-0x0400043F)
	GX_FIFO_END = GX_BASE + 0x03F
)

// Command ports
const (
	GX_MTX_MODE       = 0x04000440
	GX_MTX_PUSH       = 0x04000444
	GX_MTX_POP        = 0x04000448
	GX_MTX_STORE      = 0x0400044C
	GX_MTX_RESTORE    = 0x04000450
	GX_MTX_IDENTITY   = 0x04000454
	GX_MTX_LOAD_4x4   = 0x04000458
	GX_MTX_LOAD_4x3   = 0x0400045C
	GX_MTX_MULT_4x4   = 0x04000460
	GX_MTX_MULT_4x3   = 0x04000464
	GX_MTX_MULT_3x3   = 0x04000468
	GX_MTX_SCALE      = 0x0400046C
	GX_MTX_TRANS      = 0x04000470
	GX_COLOR          = 0x04000480
	GX_NORMAL         = 0x04000484
	GX_TEXCOORD       = 0x04000488
	GX_VTX_16         = 0x0400048C
	GX_VTX_10         = 0x04000490
	GX_VTX_XY         = 0x04000494
	GX_VTX_XZ         = 0x04000498
	GX_VTX_YZ         = 0x0400049C
	GX_VTX_DIFF       = 0x040004A0
	GX_POLYGON_ATTR   = 0x040004A4
	GX_TEXIMAGE_PARAM = 0x040004A8
	GX_PLTT_BASE      = 0x040004AC
	GX_DIF_AMB        = 0x040004C0
	GX_SPE_EMI        = 0x040004C4
	GX_LIGHT_VECTOR   = 0x040004C8
	GX_LIGHT_COLOR    = 0x040004CC
	GX_SHININESS      = 0x040004D0
	GX_BEGIN_VTXS     = 0x04000500
	GX_END_VTXS       = 0x04000504
	GX_SWAP_BUFFERS   = 0x04000540
	GX_VIEWPORT       = 0x04000580
	GX_BOX_TEST       = 0x040005C0
	GX_POS_TEST       = 0x040005C4
	GX_VEC_TEST       = 0x040005C8

	GX_CMD_PORT_FIRST = GX_MTX_MODE
	GX_CMD_PORT_LAST  = GX_VEC_TEST
)

// Status and result registers
const (
	GX_STAT           = 0x04000600
	GX_RAM_COUNT      = 0x04000604
	GX_POS_RESULT     = 0x04000620 // 4 words
	GX_VEC_RESULT     = 0x04000630 // 3 halfwords
	GX_CLIPMTX_RESULT = 0x04000640 // 16 words
	GX_VECMTX_RESULT  = 0x04000680 // 9 words
)

// Command opcodes
const (
	GX_CMD_NOP            = 0x00
	GX_CMD_MTX_MODE       = 0x10
	GX_CMD_MTX_PUSH       = 0x11
	GX_CMD_MTX_POP        = 0x12
	GX_CMD_MTX_STORE      = 0x13
	GX_CMD_MTX_RESTORE    = 0x14
	GX_CMD_MTX_IDENTITY   = 0x15
	GX_CMD_MTX_LOAD_4x4   = 0x16
	GX_CMD_MTX_LOAD_4x3   = 0x17
	GX_CMD_MTX_MULT_4x4   = 0x18
	GX_CMD_MTX_MULT_4x3   = 0x19
	GX_CMD_MTX_MULT_3x3   = 0x1A
	GX_CMD_MTX_SCALE      = 0x1B
	GX_CMD_MTX_TRANS      = 0x1C
	GX_CMD_COLOR          = 0x20
	GX_CMD_NORMAL         = 0x21
	GX_CMD_TEXCOORD       = 0x22
	GX_CMD_VTX_16         = 0x23
	GX_CMD_VTX_10         = 0x24
	GX_CMD_VTX_XY         = 0x25
	GX_CMD_VTX_XZ         = 0x26
	GX_CMD_VTX_YZ         = 0x27
	GX_CMD_VTX_DIFF       = 0x28
	GX_CMD_POLYGON_ATTR   = 0x29
	GX_CMD_TEXIMAGE_PARAM = 0x2A
	GX_CMD_PLTT_BASE      = 0x2B
	GX_CMD_DIF_AMB        = 0x30
	GX_CMD_SPE_EMI        = 0x31
	GX_CMD_LIGHT_VECTOR   = 0x32
	GX_CMD_LIGHT_COLOR    = 0x33
	GX_CMD_SHININESS      = 0x34
	GX_CMD_BEGIN_VTXS     = 0x40
	GX_CMD_END_VTXS       = 0x41
	GX_CMD_SWAP_BUFFERS   = 0x50
	GX_CMD_VIEWPORT       = 0x60
	GX_CMD_BOX_TEST       = 0x70
	GX_CMD_POS_TEST       = 0x71
	GX_CMD_VEC_TEST       = 0x72
)

// GXSTAT bits
const (
	GXSTAT_TEST_BUSY      = 1 << 0
	GXSTAT_BOX_RESULT     = 1 << 1
	GXSTAT_COORD_LEVEL    = 0x1F << 8
	GXSTAT_PROJ_LEVEL     = 1 << 13
	GXSTAT_STACK_BUSY     = 1 << 14
	GXSTAT_STACK_ERROR    = 1 << 15
	GXSTAT_FIFO_COUNT     = 0x1FF << 16
	GXSTAT_FIFO_FULL      = 1 << 24
	GXSTAT_FIFO_HALF      = 1 << 25 // Less than half full
	GXSTAT_FIFO_EMPTY     = 1 << 26
	GXSTAT_BUSY           = 1 << 27
	GXSTAT_FIFO_OVERFLOW  = 1 << 28 // Sticky: entry rejected while halted
	GXSTAT_IRQ_MODE       = 3 << 30
	GXSTAT_IRQ_MODE_SHIFT = 30

	GXSTAT_COORD_LEVEL_SHIFT = 8
	GXSTAT_FIFO_COUNT_SHIFT  = 16

	GXSTAT_WRITABLE = GXSTAT_IRQ_MODE
	GXSTAT_RESET    = GXSTAT_FIFO_EMPTY | GXSTAT_FIFO_HALF
)

// GXFIFO IRQ modes
const (
	GX_IRQ_NEVER     = 0
	GX_IRQ_LESS_HALF = 1
	GX_IRQ_EMPTY     = 2
)

// Host interrupt line and DMA start mode used by the engine
const (
	GX_IRQ_LINE_FIFO = 21
	GX_DMA_MODE_FIFO = 7
	GX_DMA_BURST     = 112 // Words transferred per GXFIFO DMA request
)

// Capacities
const (
	GX_FIFO_DEPTH        = 256
	GX_PIPE_DEPTH        = 4
	GX_QUEUE_CAPACITY    = GX_FIFO_DEPTH + GX_PIPE_DEPTH
	GX_FIFO_HALF         = GX_FIFO_DEPTH / 2
	GX_MAX_VERTICES      = 6144
	GX_MAX_POLYGONS      = 2048
	GX_MAX_CLIP_VERTICES = 10
	GX_COORD_STACK_DEPTH = 31
	GX_PROJ_STACK_DEPTH  = 1
	GX_MAX_PARAMS        = 32
	GX_NUM_LIGHTS        = 4
	GX_SHININESS_ENTRIES = 128
)

// Matrix modes
const (
	MTX_MODE_PROJECTION = 0
	MTX_MODE_COORDINATE = 1
	MTX_MODE_DIRECTION  = 2 // Coordinate and direction together
	MTX_MODE_TEXTURE    = 3
)

// BEGIN_VTXS primitive types
const (
	PRIM_TRIANGLES      = 0
	PRIM_QUADS          = 1
	PRIM_TRIANGLE_STRIP = 2
	PRIM_QUAD_STRIP     = 3
)

// POLYGON_ATTR bits
const (
	POLY_ATTR_LIGHTS       = 0xF
	POLY_ATTR_MODE_SHIFT   = 4
	POLY_ATTR_MODE_MASK    = 0x3
	POLY_ATTR_RENDER_BACK  = 1 << 6
	POLY_ATTR_RENDER_FRONT = 1 << 7
	POLY_ATTR_TRANS_DEPTH  = 1 << 11
	POLY_ATTR_FAR_CLIP     = 1 << 12
	POLY_ATTR_DEPTH_EQUAL  = 1 << 14
	POLY_ATTR_FOG          = 1 << 15
	POLY_ATTR_ALPHA_SHIFT  = 16
	POLY_ATTR_ALPHA_MASK   = 0x1F
	POLY_ATTR_ID_SHIFT     = 24
	POLY_ATTR_ID_MASK      = 0x3F
)

// Polygon modes
const (
	POLY_MODE_MODULATION = 0
	POLY_MODE_DECAL      = 1
	POLY_MODE_TOON       = 2
	POLY_MODE_SHADOW     = 3
)

// TEXIMAGE_PARAM fields
const (
	TEX_ADDR_MASK      = 0xFFFF
	TEX_REPEAT_S       = 1 << 16
	TEX_REPEAT_T       = 1 << 17
	TEX_FLIP_S         = 1 << 18
	TEX_FLIP_T         = 1 << 19
	TEX_SIZE_S_SHIFT   = 20
	TEX_SIZE_T_SHIFT   = 23
	TEX_SIZE_MASK      = 0x7
	TEX_FORMAT_SHIFT   = 26
	TEX_FORMAT_MASK    = 0x7
	TEX_TRANSPARENT0   = 1 << 29
	TEX_COORD_SHIFT    = 30
	TEX_FORMAT_4COLOR  = 2
	TEX_PLTT_BASE_MASK = 0x1FFF
)

// Texture coordinate transformation modes
const (
	TEXCOORD_NONE     = 0
	TEXCOORD_TEXCOORD = 1
	TEXCOORD_NORMAL   = 2
	TEXCOORD_VERTEX   = 3
)

// Material bits
const (
	MATERIAL_SET_VERTEX_COLOR = 1 << 15 // DIF_AMB
	MATERIAL_SHININESS_TABLE  = 1 << 15 // SPE_EMI
)

// SWAP_BUFFERS bits
const (
	SWAP_MANUAL_SORT = 1 << 0
	SWAP_W_BUFFER    = 1 << 1
)

// Default viewport (full screen)
const (
	GX_SCREEN_WIDTH  = 256
	GX_SCREEN_HEIGHT = 192
)
