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

// Package vm implements the register-based virtual machine that executes
// assembled binary images.
//
// The machine has four registers (r0, r1, ip and sp), a single flat byte
// addressable memory, and a small fixed instruction set: arithmetic,
// register/memory moves, comparisons and jumps. ip addresses the memory in
// 32-bit words; sp is a plain byte offset into memory, initialized to the
// end of the loaded image and growing upward into the rest of memory as
// values are pushed.
//
// Memory accesses are bounds-checked: any access outside of [0, len(Mem))
// aborts execution with an *Error rather than corrupting unrelated memory
// or panicking into the caller. Division by zero is not a bounds error; it
// halts the machine cleanly, matching div.i32's documented behavior.
package vm
