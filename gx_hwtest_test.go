package main

import "testing"

func TestPosTest(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_MTX_MODE, MTX_MODE_COORDINATE)
	gxExec(t, e, GX_CMD_MTX_TRANS, 0, 0, uint32(0xFFFFF000)) // z - 1.0
	gxExec(t, e, GX_CMD_POS_TEST, packXY(FX_ONE, 2048), packXY(0, 0))

	want := [4]int32{FX_ONE, 2048, -FX_ONE, FX_ONE}
	for i, w := range want {
		if got := int32(e.HandleRead(GX_POS_RESULT + uint32(i)*4)); got != w {
			t.Errorf("POS_RESULT[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestVecTest(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_VEC_TEST, packVector(511, -512, 0))

	if got := e.ReadVecResult(0); got != 511<<3 {
		t.Fatalf("VEC_RESULT x = 0x%04X, want 0x%04X", got, 511<<3)
	}
	if got := e.ReadVecResult(1); got != 0xF000 {
		t.Fatalf("VEC_RESULT y = 0x%04X, want 0xF000", got)
	}

	// Register reads pair halfwords
	if got := e.HandleRead(GX_VEC_RESULT); got != 0xF000<<16|511<<3 {
		t.Fatalf("VEC_RESULT word 0 = 0x%08X", got)
	}
	if got := e.HandleRead(GX_VEC_RESULT + 4); got != 0 {
		t.Fatalf("VEC_RESULT word 1 = 0x%08X, want 0", got)
	}
}

func TestBoxTest(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z int32
		w, h, d int32
		want    bool
	}{
		{"centered", -2048, -2048, -2048, 4096, 4096, 4096, true},
		{"right of view", 8192, 0, 0, 4096, 4096, 4096, false},
		{"behind far plane", 0, 0, 8192, 1024, 1024, 1024, false},
		{"straddling edge", 3072, 0, 0, 4096, 1024, 1024, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			gxExec(t, e, GX_CMD_BOX_TEST,
				packXY(tc.x, tc.y), packXY(tc.z, tc.w), packXY(tc.h, tc.d))

			got := e.ReadGXStat()&GXSTAT_BOX_RESULT != 0
			if got != tc.want {
				t.Fatalf("box result = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBoxTestResultCleared(t *testing.T) {
	e := newTestEngine(t)
	gxExec(t, e, GX_CMD_BOX_TEST, packXY(-2048, -2048), packXY(-2048, 4096), packXY(4096, 4096))
	if e.ReadGXStat()&GXSTAT_BOX_RESULT == 0 {
		t.Fatal("visible box not reported")
	}
	gxExec(t, e, GX_CMD_BOX_TEST, packXY(8192, 0), packXY(0, 4096), packXY(4096, 4096))
	if e.ReadGXStat()&GXSTAT_BOX_RESULT != 0 {
		t.Fatal("box result not cleared by a hidden box")
	}
}
