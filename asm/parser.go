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

package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scsvm/scs/vm"
)

// labelUse records where, in the pass-1 word buffer, a label's resolved
// byte offset must be patched in during pass 2.
type labelUse struct {
	wordIndex int
	line      int
}

type label struct {
	byteOffset int // -1 until defined
	uses       []labelUse
}

// parser holds the state of one assembly run: the in-memory word buffer
// pass 1 builds, the label table, and the running stack-offset correction.
type parser struct {
	name    string
	words   []int32
	labels  map[string]*label
	mOffset int32
	line    int
}

func newParser(name string) *parser {
	return &parser{name: name, labels: make(map[string]*label)}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &Error{File: p.name, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// write appends a word to the output buffer and returns its index.
func (p *parser) write(v int32) int {
	p.words = append(p.words, v)
	return len(p.words) - 1
}

func (p *parser) labelFor(name string) *label {
	l, ok := p.labels[name]
	if !ok {
		l = &label{byteOffset: -1}
		p.labels[name] = l
	}
	return l
}

// parseRegister resolves a register name operand.
func (p *parser) parseRegister(tok string) (vm.Reg, error) {
	r, ok := vm.LookupReg(tok)
	if !ok {
		return 0, p.errorf("unknown register %q", tok)
	}
	return r, nil
}

// parseImmediate resolves a decimal integer operand.
func (p *parser) parseImmediate(tok string) (int32, error) {
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, p.errorf("invalid immediate %q", tok)
	}
	return int32(n), nil
}

// parseAddr resolves a bracketed "[REG+N]" / "[REG-N]" operand, adding the
// assembler's running stack-offset correction to the parsed offset.
func (p *parser) parseAddr(tok string) (vm.Reg, int32, error) {
	if len(tok) < 4 || tok[0] != '[' || tok[len(tok)-1] != ']' {
		return 0, 0, p.errorf("malformed address operand %q", tok)
	}
	body := tok[1 : len(tok)-1]
	idx := strings.IndexAny(body, "+-")
	if idx <= 0 {
		return 0, 0, p.errorf("malformed address operand %q", tok)
	}
	regName, offTok := body[:idx], body[idx:]
	reg, err := p.parseRegister(regName)
	if err != nil {
		return 0, 0, err
	}
	off, err := strconv.ParseInt(offTok, 10, 32)
	if err != nil {
		return 0, 0, p.errorf("invalid address offset in %q", tok)
	}
	return reg, int32(off) + p.mOffset, nil
}

// regReg parses two register operands common to arithmetic/compare/mov.reg.reg.
func (p *parser) regReg(fields []string) (vm.Reg, vm.Reg, error) {
	if len(fields) != 2 {
		return 0, 0, p.errorf("expected 2 register operands, got %d", len(fields))
	}
	a, err := p.parseRegister(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := p.parseRegister(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseLines implements pass 1: it appends every instruction's words to
// p.words, records label definitions and jump use-sites, and returns the
// first error encountered. Jump operands stay placeholders until
// patchLabels runs.
func (p *parser) parseLines(lines []string) error {
	for lineNo, raw := range lines {
		p.line = lineNo + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			name := strings.TrimSuffix(line, ":")
			if name == "" {
				return p.errorf("empty label name")
			}
			l := p.labelFor(name)
			if l.byteOffset != -1 {
				return p.errorf("label %q redefined", name)
			}
			l.byteOffset = len(p.words) * 4
			continue
		}

		fields := strings.Fields(line)
		mnemonic, operands := fields[0], fields[1:]
		op, ok := vm.Lookup(mnemonic)
		if !ok {
			return p.errorf("unknown mnemonic %q", mnemonic)
		}

		if err := p.assembleInstruction(op, operands); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) assembleInstruction(op vm.Op, operands []string) error {
	switch op {
	case vm.OpAddI32, vm.OpSubI32, vm.OpMulI32, vm.OpDivI32, vm.OpMovRegReg,
		vm.OpCmpLeqI32, vm.OpCmpGeqI32, vm.OpCmpLessI32, vm.OpCmpGreaterI32, vm.OpCmpEqI32, vm.OpCmpNeqI32:
		a, b, err := p.regReg(operands)
		if err != nil {
			return err
		}
		p.write(int32(op))
		p.write(int32(a))
		p.write(int32(b))

	case vm.OpPushI32:
		if len(operands) != 1 {
			return p.errorf("push.i32 expects 1 operand, got %d", len(operands))
		}
		r, err := p.parseRegister(operands[0])
		if err != nil {
			return err
		}
		p.write(int32(op))
		p.write(int32(r))
		p.mOffset -= 4

	case vm.OpPopI32:
		if len(operands) != 1 {
			return p.errorf("pop.i32 expects 1 operand, got %d", len(operands))
		}
		r, err := p.parseRegister(operands[0])
		if err != nil {
			return err
		}
		p.write(int32(op))
		p.write(int32(r))
		p.mOffset += 4

	case vm.OpNegI32:
		if len(operands) != 1 {
			return p.errorf("neg.i32 expects 1 operand, got %d", len(operands))
		}
		r, err := p.parseRegister(operands[0])
		if err != nil {
			return err
		}
		p.write(int32(op))
		p.write(int32(r))

	case vm.OpMovRegI32:
		if len(operands) != 2 {
			return p.errorf("mov.reg.i32 expects 2 operands, got %d", len(operands))
		}
		r, err := p.parseRegister(operands[0])
		if err != nil {
			return err
		}
		imm, err := p.parseImmediate(operands[1])
		if err != nil {
			return err
		}
		p.write(int32(op))
		p.write(int32(r))
		p.write(imm)

	case vm.OpMovMemRegI32:
		if len(operands) != 2 {
			return p.errorf("mov.mem.reg.i32 expects 2 operands, got %d", len(operands))
		}
		addrReg, off, err := p.parseAddr(operands[0])
		if err != nil {
			return err
		}
		src, err := p.parseRegister(operands[1])
		if err != nil {
			return err
		}
		p.write(int32(op))
		p.write(int32(addrReg))
		p.write(off)
		p.write(int32(src))

	case vm.OpMovRegMemI32:
		if len(operands) != 2 {
			return p.errorf("mov.reg.mem.i32 expects 2 operands, got %d", len(operands))
		}
		dst, err := p.parseRegister(operands[0])
		if err != nil {
			return err
		}
		addrReg, off, err := p.parseAddr(operands[1])
		if err != nil {
			return err
		}
		p.write(int32(op))
		p.write(int32(dst))
		p.write(int32(addrReg))
		p.write(off)

	case vm.OpJmp, vm.OpJz, vm.OpJnz:
		if len(operands) != 1 {
			return p.errorf("%s expects a label operand, got %d", op, len(operands))
		}
		p.write(int32(op))
		l := p.labelFor(operands[0])
		idx := p.write(0)
		l.uses = append(l.uses, labelUse{wordIndex: idx, line: p.line})

	default:
		return p.errorf("unsupported opcode %s", op)
	}
	return nil
}

// patchLabels implements pass 2: every jump's placeholder word is replaced
// with the byte offset its label resolved to in pass 1.
func (p *parser) patchLabels() error {
	for name, l := range p.labels {
		for _, use := range l.uses {
			if l.byteOffset == -1 {
				return &Error{File: p.name, Line: use.line, Msg: "undefined label " + name}
			}
			p.words[use.wordIndex] = int32(l.byteOffset)
		}
	}
	return nil
}
