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
	"fmt"
	"io"
)

// Dump writes the register file and the stack slots between the initial sp
// (just past the loaded image) and the current sp to w, matching the
// post-execution report.
func (i *Instance) Dump(w io.Writer) error {
	regs := [...]string{"r0", "r1", "ip", "sp"}
	for idx, name := range regs {
		if _, err := fmt.Fprintf(w, "%s = %d\n", name, i.Reg[idx]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "instructions executed: %d\n", i.insCount); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "stack:"); err != nil {
		return err
	}
	for off := i.initialSP; off+4 <= i.Reg[SP]; off += 4 {
		if _, err := fmt.Fprintf(w, " %d", i.readWord(off)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
