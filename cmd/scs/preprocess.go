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

package main

import (
	"fmt"
	"strings"
)

// preprocess inserts a "<|>LINE|FILE<|>" debug marker at the start of
// every physical line of src. It does not strip comments, inline
// includes, or evaluate #define/#ifdef — those belong to an external
// preprocessor; this is only the minimal stand-in needed to make the
// lexer's documented input contract (source with debug markers already
// present) satisfiable from a plain .scs file on the command line.
func preprocess(name, src string) string {
	lines := strings.Split(src, "\n")
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "<|>%d|%s<|>%s\n", i+1, name, line)
	}
	return b.String()
}
