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
	"os"
)

// LoadImage reads a binary image file: a flat sequence of little-endian
// 32-bit words, no header. The length must be a multiple of 4.
func LoadImage(fileName string) ([]byte, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("load %s: image size %d is not a multiple of 4", fileName, len(b))
	}
	return b, nil
}

// SaveImage writes an assembled image to fileName.
func SaveImage(fileName string, image []byte) error {
	return os.WriteFile(fileName, image, 0666)
}
