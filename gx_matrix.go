// gx_matrix.go - Matrix modes, stacks and matrix commands

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

// currentClip returns coordinate * projection, recomputing it only after one
// of its inputs changed.
func (e *GeometryEngine) currentClip() *Matrix {
	if e.clipDirty {
		e.clip = multiplyMatrix(&e.coordinate, &e.projection)
		e.clipDirty = false
	}
	return &e.clip
}

// ReadClipMatrix returns element i (0-15) of the current clip matrix.
func (e *GeometryEngine) ReadClipMatrix(i int) uint32 {
	if i < 0 || i >= 16 {
		return 0
	}
	return uint32(e.currentClip()[i])
}

// ReadDirectionMatrix returns element i (0-8) of the upper 3x3 of the
// direction matrix, row-major.
func (e *GeometryEngine) ReadDirectionMatrix(i int) uint32 {
	if i < 0 || i >= 9 {
		return 0
	}
	return uint32(e.direction[(i/3)*4+i%3])
}

// stackError flags a push or pop outside the stack bounds.
func (e *GeometryEngine) stackError(op string) {
	e.gxStat |= GXSTAT_STACK_ERROR
	Logger().Debug("gx: matrix stack error",
		"op", op,
		"mode", e.matrixMode,
		"coordinate", e.coordinatePtr,
		"projection", e.projectionPtr)
}

func (e *GeometryEngine) cmdMtxMode(params []uint32) {
	e.matrixMode = int(params[0] & 3)
}

func (e *GeometryEngine) cmdMtxPush(_ []uint32) {
	switch e.matrixMode {
	case MTX_MODE_PROJECTION:
		if e.projectionPtr >= GX_PROJ_STACK_DEPTH {
			e.stackError("push")
			return
		}
		e.projectionStack = e.projection
		e.projectionPtr++

	case MTX_MODE_COORDINATE, MTX_MODE_DIRECTION:
		if e.coordinatePtr >= GX_COORD_STACK_DEPTH {
			e.stackError("push")
			return
		}
		e.coordStack[e.coordinatePtr] = e.coordinate
		e.dirStack[e.coordinatePtr] = e.direction
		e.coordinatePtr++

	case MTX_MODE_TEXTURE:
		if e.texturePtr >= 1 {
			e.stackError("push")
			return
		}
		e.textureStack = e.texture
		e.texturePtr++
	}
}

func (e *GeometryEngine) cmdMtxPop(params []uint32) {
	switch e.matrixMode {
	case MTX_MODE_PROJECTION:
		if e.projectionPtr == 0 {
			e.stackError("pop")
			return
		}
		e.projectionPtr--
		e.projection = e.projectionStack
		e.clipDirty = true

	case MTX_MODE_COORDINATE, MTX_MODE_DIRECTION:
		// Signed 6-bit offset; negative values move the pointer up
		offset := int(int32(params[0]<<26) >> 26)
		ptr := e.coordinatePtr - offset
		if ptr < 0 {
			e.stackError("pop")
			e.coordinatePtr = 0
			return
		}
		if ptr >= GX_COORD_STACK_DEPTH {
			e.stackError("pop")
			return
		}
		e.coordinatePtr = ptr
		e.coordinate = e.coordStack[ptr]
		e.direction = e.dirStack[ptr]
		e.clipDirty = true

	case MTX_MODE_TEXTURE:
		if e.texturePtr == 0 {
			e.stackError("pop")
			return
		}
		e.texturePtr--
		e.texture = e.textureStack
	}
}

func (e *GeometryEngine) cmdMtxStore(params []uint32) {
	switch e.matrixMode {
	case MTX_MODE_PROJECTION:
		e.projectionStack = e.projection

	case MTX_MODE_COORDINATE, MTX_MODE_DIRECTION:
		index := int(params[0] & 0x1F)
		if index >= GX_COORD_STACK_DEPTH {
			e.stackError("store")
			return
		}
		e.coordStack[index] = e.coordinate
		e.dirStack[index] = e.direction

	case MTX_MODE_TEXTURE:
		e.textureStack = e.texture
	}
}

func (e *GeometryEngine) cmdMtxRestore(params []uint32) {
	switch e.matrixMode {
	case MTX_MODE_PROJECTION:
		e.projection = e.projectionStack
		e.clipDirty = true

	case MTX_MODE_COORDINATE, MTX_MODE_DIRECTION:
		index := int(params[0] & 0x1F)
		if index >= GX_COORD_STACK_DEPTH {
			e.stackError("restore")
			return
		}
		e.coordinate = e.coordStack[index]
		e.direction = e.dirStack[index]
		e.clipDirty = true

	case MTX_MODE_TEXTURE:
		e.texture = e.textureStack
	}
}

// loadMatrix replaces the matrix selected by the current mode.
func (e *GeometryEngine) loadMatrix(m *Matrix) {
	switch e.matrixMode {
	case MTX_MODE_PROJECTION:
		e.projection = *m
		e.clipDirty = true
	case MTX_MODE_COORDINATE:
		e.coordinate = *m
		e.clipDirty = true
	case MTX_MODE_DIRECTION:
		e.coordinate = *m
		e.direction = *m
		e.clipDirty = true
	case MTX_MODE_TEXTURE:
		e.texture = *m
	}
}

// multMatrix sets current = m * current for the selected matrix. In direction
// mode a scale only touches the coordinate matrix.
func (e *GeometryEngine) multMatrix(m *Matrix, scale bool) {
	switch e.matrixMode {
	case MTX_MODE_PROJECTION:
		e.projection = multiplyMatrix(m, &e.projection)
		e.clipDirty = true
	case MTX_MODE_COORDINATE:
		e.coordinate = multiplyMatrix(m, &e.coordinate)
		e.clipDirty = true
	case MTX_MODE_DIRECTION:
		e.coordinate = multiplyMatrix(m, &e.coordinate)
		if !scale {
			e.direction = multiplyMatrix(m, &e.direction)
		}
		e.clipDirty = true
	case MTX_MODE_TEXTURE:
		e.texture = multiplyMatrix(m, &e.texture)
	}
}

// matrix4x3 expands 12 parameters into a 4x4 matrix with an implicit
// (0, 0, 0, 1) column.
func matrix4x3(params []uint32) Matrix {
	m := IdentityMatrix()
	for row := 0; row < 4; row++ {
		for col := 0; col < 3; col++ {
			m[row*4+col] = int32(params[row*3+col])
		}
	}
	return m
}

// matrix3x3 expands 9 parameters into a 4x4 matrix without translation.
func matrix3x3(params []uint32) Matrix {
	m := IdentityMatrix()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[row*4+col] = int32(params[row*3+col])
		}
	}
	return m
}

func (e *GeometryEngine) cmdMtxIdentity(_ []uint32) {
	m := IdentityMatrix()
	e.loadMatrix(&m)
}

func (e *GeometryEngine) cmdMtxLoad4x4(params []uint32) {
	var m Matrix
	for i := range m {
		m[i] = int32(params[i])
	}
	e.loadMatrix(&m)
}

func (e *GeometryEngine) cmdMtxLoad4x3(params []uint32) {
	m := matrix4x3(params)
	e.loadMatrix(&m)
}

func (e *GeometryEngine) cmdMtxMult4x4(params []uint32) {
	var m Matrix
	for i := range m {
		m[i] = int32(params[i])
	}
	e.multMatrix(&m, false)
}

func (e *GeometryEngine) cmdMtxMult4x3(params []uint32) {
	m := matrix4x3(params)
	e.multMatrix(&m, false)
}

func (e *GeometryEngine) cmdMtxMult3x3(params []uint32) {
	m := matrix3x3(params)
	e.multMatrix(&m, false)
}

func (e *GeometryEngine) cmdMtxScale(params []uint32) {
	m := IdentityMatrix()
	m[0] = int32(params[0])
	m[5] = int32(params[1])
	m[10] = int32(params[2])
	e.multMatrix(&m, true)
}

func (e *GeometryEngine) cmdMtxTrans(params []uint32) {
	m := IdentityMatrix()
	m[12] = int32(params[0])
	m[13] = int32(params[1])
	m[14] = int32(params[2])
	e.multMatrix(&m, false)
}
