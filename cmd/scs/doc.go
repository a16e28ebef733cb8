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

// The scs command line tool runs the full lexer -> compiler -> assembler
// -> VM pipeline over a single source file, writing each stage's
// intermediate artifact to disk and printing the VM's final register and
// stack dump on success.
//
// Usage:
//
//	-src filename
//		  source program to run (required)
//	-pre filename
//		  preprocessed-text intermediate file (default <stem>_preprocessed.txt)
//	-tok filename
//		  tokenized-dump intermediate file (default <stem>_tokenized.txt)
//	-asm filename
//		  assembly-text intermediate file (default <stem>_assembly.txt)
//	-bin filename
//		  binary image file (default <stem>.scbin)
//	-mem int
//		  VM memory size in bytes (default 65536)
//	-debug
//		  print the full error cause chain on failure
//
// The source file is plain source: scs always runs it through a minimal
// preprocessor (preprocess.go) that inserts a debug marker at the start of
// every line. It does not strip comments or expand includes/macros.
// Default intermediate file names are built from the source file's base
// name and are written in the current directory.
//
// On any stage error, scs prints the stage name and the error (with
// source file:line when available) to stderr and exits with status 1.
package main
