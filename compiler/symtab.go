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

// symtab maps declared local names to their byte offset from the stack
// pointer at the start of the program. It grows monotonically: offsets are
// assigned in declaration order, are multiples of 4, and are never reused
// or reclaimed (locals are never freed).
type symtab struct {
	offsets map[string]int32
	next    int32
}

func newSymtab() *symtab {
	return &symtab{offsets: make(map[string]int32)}
}

// declare registers a new local at the current offset and advances it by
// 4. It returns false, and declares nothing, if name was already declared:
// the compiler turns that into a name error rather than a silent no-op.
func (s *symtab) declare(name string) (int32, bool) {
	if _, exists := s.offsets[name]; exists {
		return 0, false
	}
	off := s.next
	s.offsets[name] = off
	s.next += 4
	return off, true
}

func (s *symtab) lookup(name string) (int32, bool) {
	off, ok := s.offsets[name]
	return off, ok
}
