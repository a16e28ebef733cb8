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

const defaultMemSize = 65536

// Option configures an Instance at construction time.
type Option func(*Instance) error

// MemSize sets the size in bytes of the instance's memory. The image is
// loaded at offset 0; sp starts just past the loaded image and grows
// upward into the remaining memory as values are pushed.
func MemSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return &Error{Msg: "mem size must be positive"}
		}
		i.memSize = size
		return nil
	}
}

// Instance is a virtual machine instance: four registers and a flat byte
// addressable memory loaded with an assembled image.
type Instance struct {
	Reg       [4]int32
	Mem       []byte
	memSize   int
	initialSP int32
	insCount  int64
	halted    bool
}

// New creates a VM instance with image loaded at the start of memory. ip is
// set to 0 and sp to the image's byte length.
func New(image []byte, opts ...Option) (*Instance, error) {
	i := &Instance{}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	if i.memSize == 0 {
		i.memSize = defaultMemSize
	}
	if len(image) > i.memSize {
		return nil, &Error{Msg: "image larger than memory"}
	}
	i.Mem = make([]byte, i.memSize)
	copy(i.Mem, image)
	i.Reg[R0] = 0
	i.Reg[R1] = 0
	i.Reg[IP] = 0
	i.Reg[SP] = int32(len(image))
	i.initialSP = i.Reg[SP]
	return i, nil
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// Halted reports whether the machine stopped on a clean division-by-zero
// halt rather than running off the end of the image or hitting an error.
func (i *Instance) Halted() bool { return i.halted }
