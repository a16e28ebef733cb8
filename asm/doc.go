// This file is part of scs, a small compiler, assembler and virtual
// machine toolchain.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package asm assembles the textual instruction listing the compiler
// produces into the binary image the vm package executes.
//
// Supported mnemonics, one instruction per line, operands separated by
// spaces:
//
//	mnemonic		operands			description
//	------------------	-----------------------	---------------------------
//	add.i32			Ra Rb				Ra += Rb
//	sub.i32			Ra Rb				Ra -= Rb
//	mul.i32			Ra Rb				Ra *= Rb
//	div.i32			Ra Rb				Ra /= Rb (halts cleanly on Rb==0)
//	push.i32		Ra				push Ra onto the stack
//	pop.i32			Ra				pop the stack into Ra
//	mov.reg.i32		Ra imm				Ra = imm
//	mov.reg.reg		Ra Rb				Ra = Rb
//	neg.i32			Ra				Ra = -Ra
//	mov.mem.reg.i32		[Raddr+N] Rsrc			mem[Raddr+N] = Rsrc
//	mov.reg.mem.i32		Rdst [Raddr+N]			Rdst = mem[Raddr+N]
//	cmpleq.i32 etc.		Ra Rb				r0 = (Ra <= Rb) etc.
//	jmp / jz / jnz		LABEL				unconditional / conditional jump
//
// Registers are named r0, r1, ip and sp. Address operands are written as
// [REG+N] or [REG-N] with a decimal offset; the assembler adds a running
// correction (incremented on every pop.i32, decremented on every push.i32)
// to every parsed offset so that symbol-table offsets, which are computed
// relative to the initial stack pointer, stay correct relative to the live
// stack pointer at the point the instruction executes.
//
// Label definitions are a bare identifier followed by ':' on its own line.
// Forward references are allowed; every label used in a jump must be
// defined somewhere in the same source, or assembly fails.
package asm
