package asm_test

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/scsvm/scs/asm"
	"github.com/scsvm/scs/vm"
)

func words(t *testing.T, img []byte) []int32 {
	t.Helper()
	if len(img)%4 != 0 {
		t.Fatalf("image length %d not a multiple of 4", len(img))
	}
	out := make([]int32, len(img)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(img[i*4:]))
	}
	return out
}

func TestAssembleArithmetic(t *testing.T) {
	src := "mov.reg.i32 r0 2\nmov.reg.i32 r1 3\nadd.i32 r0 r1\n"
	img, err := asm.Assemble("t.asm", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	got := words(t, img)
	want := []int32{
		int32(vm.OpMovRegI32), int32(vm.R0), 2,
		int32(vm.OpMovRegI32), int32(vm.R1), 3,
		int32(vm.OpAddI32), int32(vm.R0), int32(vm.R1),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d words, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestAssembleLabelForwardAndBackwardJump(t *testing.T) {
	src := "jmp skip\nmov.reg.i32 r0 99\nskip:\nmov.reg.i32 r0 1\njz skip\n"
	img, err := asm.Assemble("t.asm", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	got := words(t, img)
	// jmp's operand must resolve to the byte offset of "skip:", i.e. word
	// index 5 * 4 = 20 (jmp=2 words, the skipped mov=3 words).
	if got[1] != 20 {
		t.Errorf("jmp target = %d, want 20", got[1])
	}
	// The backward jz after "skip:" (words 8-9) resolves to the same offset.
	if got[9] != 20 {
		t.Errorf("jz target = %d, want 20", got[9])
	}
}

func TestAssembleUndefinedLabel(t *testing.T) {
	_, err := asm.Assemble("t.asm", strings.NewReader("jmp nowhere\n"))
	if err == nil {
		t.Fatal("expected error for undefined label")
	}
	if !strings.Contains(err.Error(), "undefined label") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := asm.Assemble("t.asm", strings.NewReader("frobnicate r0 r1\n"))
	if err == nil {
		t.Fatal("expected error for unknown mnemonic")
	}
	if _, ok := err.(*asm.Error); !ok {
		t.Errorf("expected *asm.Error, got %T", err)
	}
}

func TestAssembleUnknownRegister(t *testing.T) {
	_, err := asm.Assemble("t.asm", strings.NewReader("push.i32 r9\n"))
	if err == nil {
		t.Fatal("expected error for unknown register")
	}
}

func TestAssembleStackOffsetCorrection(t *testing.T) {
	// Two declarations, each reserved with push.i32, then a read of the
	// first local using its raw symbol-table offset (0). After two pushes
	// the assembler's running correction is -8, so the assembled offset
	// must come out as 0 + -8 = -8.
	src := "push.i32 r0\npush.i32 r0\nmov.reg.mem.i32 r1 [sp+0]\n"
	img, err := asm.Assemble("t.asm", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	got := words(t, img)
	// mov.reg.mem.i32 starts at word index 4 (two 2-word pushes before it):
	// opcode, dst-reg, addr-reg, offset.
	off := got[7]
	if off != -8 {
		t.Errorf("encoded offset = %d, want -8", off)
	}
}

func TestAssembleMemWrite(t *testing.T) {
	src := "mov.mem.reg.i32 [sp+0] r0\n"
	img, err := asm.Assemble("t.asm", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	got := words(t, img)
	want := []int32{int32(vm.OpMovMemRegI32), int32(vm.SP), 0, int32(vm.R0)}
	if len(got) != len(want) {
		t.Fatalf("got %d words, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
