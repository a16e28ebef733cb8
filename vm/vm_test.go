package vm

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func words(ws ...int32) []byte {
	buf := make([]byte, len(ws)*4)
	for idx, w := range ws {
		binary.LittleEndian.PutUint32(buf[idx*4:], uint32(w))
	}
	return buf
}

func TestMovAddDump(t *testing.T) {
	// r0 = 2; r1 = 3; r0 = r0 + r1
	img := words(
		int32(OpMovRegI32), int32(R0), 2,
		int32(OpMovRegI32), int32(R1), 3,
		int32(OpAddI32), int32(R0), int32(R1),
	)
	i, err := New(img, MemSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if i.Reg[R0] != 5 {
		t.Errorf("r0 = %d, want 5", i.Reg[R0])
	}
	var buf bytes.Buffer
	if err := i.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("r0 = 5\n")) {
		t.Errorf("dump does not report r0 = 5:\n%s", buf.String())
	}
}

func TestPushPop(t *testing.T) {
	img := words(
		int32(OpMovRegI32), int32(R0), 42,
		int32(OpPushI32), int32(R0),
		int32(OpMovRegI32), int32(R0), 0,
		int32(OpPopI32), int32(R1),
	)
	i, err := New(img, MemSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if i.Reg[R1] != 42 {
		t.Errorf("r1 = %d, want 42", i.Reg[R1])
	}
	if i.Reg[SP] != i.initialSP {
		t.Errorf("sp = %d, want %d (stack balanced)", i.Reg[SP], i.initialSP)
	}
}

func TestDivisionByZeroHalts(t *testing.T) {
	img := words(
		int32(OpMovRegI32), int32(R0), 10,
		int32(OpMovRegI32), int32(R1), 0,
		int32(OpDivI32), int32(R0), int32(R1),
		int32(OpMovRegI32), int32(R0), 99, // must not execute
	)
	i, err := New(img, MemSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run returned error instead of clean halt: %v", err)
	}
	if !i.Halted() {
		t.Fatal("expected Halted() to be true")
	}
	if i.Reg[R0] != 10 {
		t.Errorf("r0 = %d, want 10 (unchanged, halted before overwrite)", i.Reg[R0])
	}
}

func TestJumpSkipsMov(t *testing.T) {
	// jmp over a mov that would otherwise clobber r0.
	img := words(
		int32(OpJmp), 20, // jump to byte offset 20 (word index 5)
		int32(OpMovRegI32), int32(R0), 99,
		int32(OpMovRegI32), int32(R0), 7,
	)
	i, err := New(img, MemSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if i.Reg[R0] != 7 {
		t.Errorf("r0 = %d, want 7", i.Reg[R0])
	}
}

func TestOutOfBoundsMemoryAccess(t *testing.T) {
	img := words(
		int32(OpMovRegI32), int32(R0), 1000,
		int32(OpMovRegI32), int32(R1), 5,
		int32(OpMovMemRegI32), int32(R0), 0, int32(R1),
	)
	i, err := New(img, MemSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = i.Run()
	if err == nil {
		t.Fatal("expected out-of-bounds error")
	}
	if _, ok := err.(*Error); !ok {
		t.Errorf("expected *vm.Error, got %T", err)
	}
}

func TestCompareAlwaysWritesR0(t *testing.T) {
	// r1 = 5; r0 = 1; cmpless.i32 r1 r0 (5 < 1 is false) must write to r0,
	// not to the first operand register (r1).
	img := words(
		int32(OpMovRegI32), int32(R1), 5,
		int32(OpMovRegI32), int32(R0), 1,
		int32(OpCmpLessI32), int32(R1), int32(R0),
	)
	i, err := New(img, MemSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if i.Reg[R0] != 0 {
		t.Errorf("r0 = %d, want 0 (5 < 1 is false)", i.Reg[R0])
	}
	if i.Reg[R1] != 5 {
		t.Errorf("r1 = %d, want 5 (operand register untouched)", i.Reg[R1])
	}
}

func TestLocalVariableAddressing(t *testing.T) {
	// Mirrors the compiler's declaration/read convention: a local at
	// symtab offset 0 is reserved with push.i32, then read back through
	// mov.reg.mem.i32 r1 [sp-4] (mOffset after one push is -4).
	img := words(
		int32(OpMovRegI32), int32(R0), 14,
		int32(OpPushI32), int32(R0),
		int32(OpMovRegMemI32), int32(R1), int32(SP), -4,
	)
	i, err := New(img, MemSize(64))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if i.Reg[R1] != 14 {
		t.Errorf("r1 = %d, want 14", i.Reg[R1])
	}
}

func TestDump(t *testing.T) {
	img := words(int32(OpMovRegI32), int32(R0), 3)
	i, err := New(img, MemSize(32))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var buf bytes.Buffer
	if err := i.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty dump")
	}
}
