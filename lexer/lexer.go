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

// Package lexer turns preprocessed source text into the parallel token
// stream the compiler consumes: a sequence of token kinds, a sequence of
// lexeme strings, and a token-index → source-position map.
//
// The scan strategy is a "punctuate around known lexemes" trick: at
// every position the scanner checks
// whether a known multi-character operator or a boundary-checked keyword
// starts there, and if so brackets it with '#' separators before
// continuing. Splitting the annotated text on '#' then yields candidate
// token text with operators and keywords cleanly separated from
// surrounding identifiers and numbers, without needing a character class
// table for every punctuation rule.
package lexer

import (
	"strconv"
	"strings"

	"github.com/scsvm/scs/token"
)

// Error is returned for the first unrecognized token. The lexer does not
// attempt to recover past it.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// Result holds the three parallel artifacts the lexer produces.
type Result struct {
	Kinds   []token.Kind
	Lexemes []string
	Debug   map[int]token.Position
}

// Token returns the i'th token as a token.Token.
func (r *Result) Token(i int) token.Token {
	return token.Token{Kind: r.Kinds[i], Lexeme: r.Lexemes[i]}
}

// Len returns the number of tokens in the result.
func (r *Result) Len() int { return len(r.Kinds) }

// separator pairs a literal lexeme with the kind it produces. Entries are
// checked in order, so multi-character operators must precede any
// single-character operator that is their prefix (e.g. "<=" before "<").
type separator struct {
	text string
	kind token.Kind
}

var operators = []separator{
	{"<=", token.LEqual},
	{">=", token.GEqual},
	{"==", token.Equal},
	{"!=", token.NotEqual},
	{"<", token.Less},
	{">", token.Greater},
	{"=", token.Assign},
	{"+", token.Add},
	{"-", token.Sub},
	{"*", token.Mul},
	{"/", token.Div},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{";", token.Punct},
}

var keywords = []separator{
	{"int", token.Type},
	{"if", token.If},
	{"else", token.Else},
	{"do", token.Do},
	{"while", token.While},
	{"for", token.For},
}

func isIdentRune(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// annotate performs a single left-to-right scan:
// it toggles literal mode on unescaped quotes, passes debug markers
// through verbatim, and brackets every recognized operator or
// boundary-checked keyword with '#' separators.
func annotate(src string) string {
	var b strings.Builder
	b.Grow(len(src) * 2)

	inDebug := false
	inLiteral := false
	n := len(src)

	for i := 0; i < n; {
		if i+3 <= n && src[i:i+3] == "<|>" {
			if inDebug {
				b.WriteString("<|>")
				b.WriteByte('#')
			} else {
				b.WriteByte('#')
				b.WriteString("<|>")
			}
			inDebug = !inDebug
			i += 3
			continue
		}
		if inDebug {
			b.WriteByte(src[i])
			i++
			continue
		}

		c := src[i]
		if c == '\n' {
			b.WriteByte(' ')
			i++
			continue
		}
		if (c == '\'' || c == '"') && (i == 0 || src[i-1] != '\\') {
			inLiteral = !inLiteral
			b.WriteByte(c)
			i++
			continue
		}
		if inLiteral {
			b.WriteByte(c)
			i++
			continue
		}

		if text, ok := matchOperator(src, i); ok {
			b.WriteByte('#')
			b.WriteString(text)
			b.WriteByte('#')
			i += len(text)
			continue
		}
		if text, ok := matchKeyword(src, i); ok {
			b.WriteByte('#')
			b.WriteString(text)
			b.WriteByte('#')
			i += len(text)
			continue
		}

		b.WriteByte(c)
		i++
	}
	return b.String()
}

func matchOperator(src string, i int) (string, bool) {
	for _, op := range operators {
		if strings.HasPrefix(src[i:], op.text) {
			return op.text, true
		}
	}
	return "", false
}

// matchKeyword recognizes int/if/else/do/while/for only when the
// characters on both sides (if any) are not identifier characters
// (letters, digits, '_'), so that identifiers like "integer" or "ifx" are
// never split.
func matchKeyword(src string, i int) (string, bool) {
	for _, kw := range keywords {
		if !strings.HasPrefix(src[i:], kw.text) {
			continue
		}
		end := i + len(kw.text)
		if i > 0 && isIdentRune(src[i-1]) {
			continue
		}
		if end < len(src) && isIdentRune(src[end]) {
			continue
		}
		return kw.text, true
	}
	return "", false
}

func operatorKind(text string) (token.Kind, bool) {
	for _, op := range operators {
		if op.text == text {
			return op.kind, true
		}
	}
	return 0, false
}

func keywordKind(text string) (token.Kind, bool) {
	for _, kw := range keywords {
		if kw.text == text {
			return kw.kind, true
		}
	}
	return 0, false
}

func isIdent(s string) bool {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentRune(s[i]) {
			return false
		}
	}
	return true
}

// isValue recognizes decimal integer literals. Floating-point, char and
// string literal forms are out of scope for this language; the
// classification order below stops at integers, which is the only kind
// actually used downstream.
func isValue(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// parseDebugMarker decodes a "<|>LINE|FILE<|>" piece into a token.Position.
func parseDebugMarker(piece string) (token.Position, bool) {
	if !strings.HasPrefix(piece, "<|>") || !strings.HasSuffix(piece, "<|>") || len(piece) < 6 {
		return token.Position{}, false
	}
	body := piece[3 : len(piece)-3]
	sep := strings.IndexByte(body, '|')
	if sep < 0 {
		return token.Position{}, false
	}
	line, err := strconv.Atoi(body[:sep])
	if err != nil {
		return token.Position{}, false
	}
	return token.Position{File: body[sep+1:], Line: line}, true
}

// Lex tokenizes preprocessed source text. name identifies the source for
// error messages when no debug marker has been seen yet.
func Lex(name, src string) (*Result, error) {
	annotated := annotate(src)

	var pieces []string
	for _, p := range strings.Split(annotated, "#") {
		p = strings.TrimSpace(p)
		if p != "" {
			pieces = append(pieces, p)
		}
	}

	res := &Result{Debug: make(map[int]token.Position)}
	pos := token.Position{File: name, Line: 1}

	for _, piece := range pieces {
		if dbg, ok := parseDebugMarker(piece); ok {
			pos = dbg
			continue
		}

		if piece == "int" {
			res.append(token.Type, piece)
		} else if kind, ok := keywordKind(piece); ok {
			res.append(kind, "")
		} else if isValue(piece) {
			res.append(token.Value, piece)
		} else if isIdent(piece) {
			res.append(token.Ident, piece)
		} else if kind, ok := operatorKind(piece); ok {
			res.append(kind, "")
		} else {
			return nil, &Error{Pos: pos, Msg: "invalid token: " + piece}
		}
		res.Debug[len(res.Kinds)-1] = pos
	}

	return res, nil
}

func (r *Result) append(k token.Kind, lexeme string) {
	r.Kinds = append(r.Kinds, k)
	r.Lexemes = append(r.Lexemes, lexeme)
}

// Dump renders the tokenized-dump format: one token's printable
// name per token, with the lexeme value for Ident/Value/Type.
func (r *Result) Dump() string {
	var b strings.Builder
	for i, k := range r.Kinds {
		if k.HasLexeme() {
			b.WriteString(r.Lexemes[i])
		} else {
			b.WriteString(k.String())
		}
		b.WriteByte(' ')
	}
	return b.String()
}
