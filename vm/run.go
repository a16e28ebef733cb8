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

package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

func (i *Instance) readWord(byteOff int32) int32 {
	if byteOff < 0 || int(byteOff)+4 > len(i.Mem) {
		panic(&Error{IP: int(i.Reg[IP]), Msg: fmt.Sprintf("out of bounds memory read at %d", byteOff)})
	}
	return int32(binary.LittleEndian.Uint32(i.Mem[byteOff : byteOff+4]))
}

func (i *Instance) writeWord(byteOff, v int32) {
	if byteOff < 0 || int(byteOff)+4 > len(i.Mem) {
		panic(&Error{IP: int(i.Reg[IP]), Msg: fmt.Sprintf("out of bounds memory write at %d", byteOff)})
	}
	binary.LittleEndian.PutUint32(i.Mem[byteOff:byteOff+4], uint32(v))
}

func (i *Instance) fetch(n int32) int32 {
	w := i.readWord(i.Reg[IP]*4 + n*4)
	return w
}

func (i *Instance) reg(n int32) *int32 {
	r := Reg(i.fetch(n))
	if r < 0 || int(r) >= len(i.Reg) {
		panic(&Error{IP: int(i.Reg[IP]), Msg: fmt.Sprintf("invalid register index %d", r)})
	}
	return &i.Reg[r]
}

// Run executes instructions starting at the current ip until the image is
// exhausted, the program divides by zero (a clean halt, not an error), or a
// memory access goes out of bounds (returned as an *Error).
//
// On a nil return ip equals the image length in words, whether the image
// ran to its end or stopped on a division by zero; in the latter case
// Halted reports true. On an *Error, ip is the failing instruction.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			if ve, ok := e.(*Error); ok {
				err = ve
				return
			}
			err = errors.Errorf("%v", e)
		}
	}()

	top := i.initialSP / 4
	for i.Reg[IP] < top {
		op := Op(i.fetch(0))
		words := int32(OperandWords(op))

		switch op {
		case OpAddI32:
			dst, src := i.reg(1), i.reg(2)
			*dst += *src
		case OpSubI32:
			dst, src := i.reg(1), i.reg(2)
			*dst -= *src
		case OpMulI32:
			dst, src := i.reg(1), i.reg(2)
			*dst *= *src
		case OpDivI32:
			dst, src := i.reg(1), i.reg(2)
			if *src == 0 {
				fmt.Println("division by zero: halting")
				i.halted = true
				i.Reg[IP] = top
				return nil
			}
			*dst /= *src
		case OpPushI32:
			src := i.reg(1)
			i.writeWord(i.Reg[SP], *src)
			i.Reg[SP] += 4
		case OpPopI32:
			i.Reg[SP] -= 4
			dst := i.reg(1)
			*dst = i.readWord(i.Reg[SP])
		case OpMovRegI32:
			dst := i.reg(1)
			*dst = i.fetch(2)
		case OpMovRegReg:
			dst, src := i.reg(1), i.reg(2)
			*dst = *src
		case OpNegI32:
			dst := i.reg(1)
			*dst = -*dst
		case OpMovMemRegI32:
			addrReg, off, src := i.reg(1), i.fetch(2), i.reg(3)
			i.writeWord(*addrReg+off, *src)
		case OpMovRegMemI32:
			dst, addrReg, off := i.reg(1), i.reg(2), i.fetch(3)
			*dst = i.readWord(*addrReg + off)
		case OpCmpLeqI32:
			a, b := *i.reg(1), *i.reg(2)
			i.Reg[R0] = boolToI32(a <= b)
		case OpCmpGeqI32:
			a, b := *i.reg(1), *i.reg(2)
			i.Reg[R0] = boolToI32(a >= b)
		case OpCmpLessI32:
			a, b := *i.reg(1), *i.reg(2)
			i.Reg[R0] = boolToI32(a < b)
		case OpCmpGreaterI32:
			a, b := *i.reg(1), *i.reg(2)
			i.Reg[R0] = boolToI32(a > b)
		case OpCmpEqI32:
			a, b := *i.reg(1), *i.reg(2)
			i.Reg[R0] = boolToI32(a == b)
		case OpCmpNeqI32:
			a, b := *i.reg(1), *i.reg(2)
			i.Reg[R0] = boolToI32(a != b)
		case OpJmp:
			i.Reg[IP] = i.fetch(1) / 4
			i.insCount++
			continue
		case OpJz:
			target := i.fetch(1)
			i.Reg[IP] += 1 + words
			if i.Reg[R0] == 0 {
				i.Reg[IP] = target / 4
			}
			i.insCount++
			continue
		case OpJnz:
			target := i.fetch(1)
			i.Reg[IP] += 1 + words
			if i.Reg[R0] != 0 {
				i.Reg[IP] = target / 4
			}
			i.insCount++
			continue
		default:
			panic(&Error{IP: int(i.Reg[IP]), Msg: fmt.Sprintf("unknown opcode %d", op)})
		}

		i.Reg[IP] += 1 + words
		i.insCount++
	}
	return nil
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
