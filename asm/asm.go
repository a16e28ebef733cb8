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
	"bufio"
	"encoding/binary"
	"io"
)

// Assemble reads assembly text from r and returns the assembled binary
// image. name identifies the source in error messages.
func Assemble(name string, r io.Reader) ([]byte, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	p := newParser(name)
	if err := p.parseLines(lines); err != nil {
		return nil, err
	}
	if err := p.patchLabels(); err != nil {
		return nil, err
	}

	img := make([]byte, len(p.words)*4)
	for idx, w := range p.words {
		binary.LittleEndian.PutUint32(img[idx*4:], uint32(w))
	}
	return img, nil
}
