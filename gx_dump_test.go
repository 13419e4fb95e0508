package main

import (
	"strings"
	"testing"
)

func TestFrameDump(t *testing.T) {
	m := NewMachine()
	submitTriangleFrame(t, m)
	m.VBlank()

	dump := FrameDump(m.GX)
	for _, want := range []string{
		"frame: 1 polygons, 3 vertices",
		"poly 0: 3 verts ccw",
		"  v0: ",
		"  v2: ",
	} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
	if strings.Contains(dump, "  v3: ") {
		t.Errorf("dump has a fourth vertex:\n%s", dump)
	}
}

func TestFrameDumpEmpty(t *testing.T) {
	e := newTestEngine(t)
	if got := FrameDump(e); got != "frame: 0 polygons, 0 vertices, manual sort false\n" {
		t.Fatalf("dump = %q", got)
	}
}
