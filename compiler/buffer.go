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

package compiler

import (
	"fmt"
	"strings"
)

// codeBufferStack lets the parser reorder emission for right-associative
// assignment chains. The bottom buffer
// accumulates the final assembly; it is never pushed or popped. A new
// buffer is pushed whenever an l-value followed by '=' is recognized, the
// right-hand side is parsed into it (so its evaluation code lands first),
// and the store instruction for that l-value is appended only after the
// recursive parse returns — so popping and merging upward naturally
// produces "evaluate once, then store right-to-left" order without
// building an AST.
type codeBufferStack struct {
	bufs []*strings.Builder
}

func newCodeBufferStack() *codeBufferStack {
	return &codeBufferStack{bufs: []*strings.Builder{{}}}
}

// push starts a new, empty buffer on top of the stack.
func (s *codeBufferStack) push() {
	s.bufs = append(s.bufs, &strings.Builder{})
}

// pop merges the top buffer's contents into the buffer beneath it. The
// stack must never be popped down to empty; the bottom buffer always
// remains.
func (s *codeBufferStack) pop() {
	n := len(s.bufs)
	top := s.bufs[n-1]
	s.bufs = s.bufs[:n-1]
	s.bufs[len(s.bufs)-1].WriteString(top.String())
}

// emit writes a formatted instruction line to the current top buffer.
func (s *codeBufferStack) emit(format string, args ...interface{}) {
	fmt.Fprintf(s.bufs[len(s.bufs)-1], format, args...)
	if !strings.HasSuffix(format, "\n") {
		s.bufs[len(s.bufs)-1].WriteByte('\n')
	}
}

// result returns the fully merged assembly text. Valid only once every
// push has been matched by a pop.
func (s *codeBufferStack) result() string {
	return s.bufs[0].String()
}
