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
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/scsvm/scs/asm"
	"github.com/scsvm/scs/compiler"
	"github.com/scsvm/scs/internal/scsio"
	"github.com/scsvm/scs/lexer"
	"github.com/scsvm/scs/vm"
)

var debug bool

func stem(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func fail(stage string, err error) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%s: %+v\n", stage, err)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %v\n", stage, err)
	}
	os.Exit(1)
}

// writeStageFile opens name and writes content through an ErrWriter, so the
// (in practice single) write for a stage's intermediate file shares the same
// checked-once-at-the-end idiom as a stage that issues several.
func writeStageFile(name, content string) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "failed to create "+name)
	}
	defer f.Close()

	ew := scsio.NewErrWriter(f)
	io.WriteString(ew, content)
	if ew.Err != nil {
		return errors.Wrap(ew.Err, "failed to write "+name)
	}
	return nil
}

func main() {
	srcName := flag.String("src", "", "`filename` of the source program (required)")
	preName := flag.String("pre", "", "`filename` for the preprocessed-text intermediate file (default <stem>_preprocessed.txt)")
	tokName := flag.String("tok", "", "`filename` for the tokenized-dump intermediate file (default <stem>_tokenized.txt)")
	asmName := flag.String("asm", "", "`filename` for the assembly-text intermediate file (default <stem>_assembly.txt)")
	binName := flag.String("bin", "", "`filename` for the binary image (default <stem>.scbin)")
	memSize := flag.Int("mem", 65536, "VM memory size in bytes")
	flag.BoolVar(&debug, "debug", false, "print the full error cause chain on failure")
	flag.Parse()

	if *srcName == "" {
		fmt.Fprintln(os.Stderr, "scs: -src is required")
		os.Exit(1)
	}

	st := stem(*srcName)
	if *preName == "" {
		*preName = st + "_preprocessed.txt"
	}
	if *tokName == "" {
		*tokName = st + "_tokenized.txt"
	}
	if *asmName == "" {
		*asmName = st + "_assembly.txt"
	}
	if *binName == "" {
		*binName = st + ".scbin"
	}

	src, err := os.ReadFile(*srcName)
	if err != nil {
		fail("read", errors.Wrap(err, "failed to read source"))
	}

	pre := preprocess(*srcName, string(src))
	if err := writeStageFile(*preName, pre); err != nil {
		fail("preprocess", err)
	}

	toks, err := lexer.Lex(*srcName, pre)
	if err != nil {
		fail("lex", err)
	}
	if err := writeStageFile(*tokName, toks.Dump()); err != nil {
		fail("lex", err)
	}

	asmText, err := compiler.Compile(toks)
	if err != nil {
		fail("compile", err)
	}
	if err := writeStageFile(*asmName, asmText); err != nil {
		fail("compile", err)
	}

	img, err := asm.Assemble(*asmName, strings.NewReader(asmText))
	if err != nil {
		fail("assemble", err)
	}
	if err := vm.SaveImage(*binName, img); err != nil {
		fail("assemble", errors.Wrap(err, "failed to write binary image"))
	}

	inst, err := vm.New(img, vm.MemSize(*memSize))
	if err != nil {
		fail("vm", err)
	}
	if err := inst.Run(); err != nil {
		fail("vm", err)
	}

	if err := inst.Dump(os.Stdout); err != nil {
		fail("vm", errors.Wrap(err, "failed to print final dump"))
	}
}
