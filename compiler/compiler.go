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

// Package compiler implements a hand-written recursive-descent parser and
// code generator: it reads a lexer.Result and writes assembly text
// consumed by package asm. The result of every expression is left in r0.
// Only an assignment looks past the current token (an identifier followed
// by '=' starts a right-associative assignment chain); nothing backtracks.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/scsvm/scs/lexer"
	"github.com/scsvm/scs/token"
)

// eof is a sentinel kind returned by peekKind past the end of the token
// stream; it never matches any real token.Kind value.
const eof = token.Kind(-1)

type compiler struct {
	toks   *lexer.Result
	pos    int
	sym    *symtab
	buf    *codeBufferStack
	labels int
}

// Compile turns a token stream into assembly text. Compilation stops at
// the first unexpected token, premature end of stream, or use of an
// undeclared (or redeclared) identifier.
func Compile(toks *lexer.Result) (string, error) {
	c := &compiler{toks: toks, sym: newSymtab(), buf: newCodeBufferStack()}
	if err := c.program(); err != nil {
		return "", err
	}
	return c.buf.result(), nil
}

func (c *compiler) program() error {
	for !c.atEnd() {
		if err := c.statement(); err != nil {
			return err
		}
	}
	return nil
}

// statement implements the grammar's "expression" production: a
// declaration, a control-flow construct, or a bare assignment. Declarations
// and bare assignments are terminated by ';'; control-flow constructs are
// not.
func (c *compiler) statement() error {
	switch {
	case c.at(token.Type):
		if err := c.declaration(); err != nil {
			return err
		}
		return c.expect(token.Punct, "';'")
	case c.at(token.If), c.at(token.While), c.at(token.Do):
		return c.control()
	case c.at(token.For):
		return c.errorf("for loops are not supported")
	default:
		if err := c.assign(); err != nil {
			return err
		}
		return c.expect(token.Punct, "';'")
	}
}

// declaration handles `type ident ('=' assign)?`. The initializer, if
// any, is evaluated before the name is added to the symbol table, so a
// self-referential initializer (`int x = x;`) is caught as a use of an
// undeclared identifier rather than silently reading garbage. Without an
// initializer the reserved slot is explicitly zero-initialized.
func (c *compiler) declaration() error {
	if err := c.expect(token.Type, "'int'"); err != nil {
		return err
	}
	if !c.at(token.Ident) {
		return c.errorf("expected identifier, got %s", c.peekKind())
	}
	name := c.lexeme()
	c.pos++

	if c.at(token.Assign) {
		c.pos++
		if err := c.assign(); err != nil {
			return err
		}
	} else {
		c.buf.emit("mov.reg.i32 r0 0")
	}

	if _, ok := c.sym.declare(name); !ok {
		return c.errorf("%q already declared", name)
	}
	c.buf.emit("push.i32 r0")
	return nil
}

func (c *compiler) control() error {
	switch {
	case c.at(token.If):
		return c.ifStmt()
	case c.at(token.While):
		return c.whileStmt()
	case c.at(token.Do):
		return c.doWhileStmt()
	default:
		return c.errorf("unexpected token %s", c.peekKind())
	}
}

// body parses a block when one is opened with '{', or a single statement
// otherwise.
func (c *compiler) body() error {
	if c.at(token.LBrace) {
		return c.block()
	}
	return c.statement()
}

func (c *compiler) block() error {
	if err := c.expect(token.LBrace, "'{'"); err != nil {
		return err
	}
	for !c.at(token.RBrace) {
		if c.atEnd() {
			return c.errorf("unexpected end of input, expected '}'")
		}
		if err := c.statement(); err != nil {
			return err
		}
	}
	return c.expect(token.RBrace, "'}'")
}

// ifStmt follows the grammar's `if (eq-op) then (else)?` convention: the
// condition is an eq-op, not a full assignment. A missing else branch
// allocates exactly one label instead of a spare unused one.
func (c *compiler) ifStmt() error {
	c.pos++ // 'if'
	if err := c.expect(token.LParen, "'('"); err != nil {
		return err
	}
	if err := c.eqOp(); err != nil {
		return err
	}
	if err := c.expect(token.RParen, "')'"); err != nil {
		return err
	}

	lelse := c.newLabel()
	c.buf.emit("jz %s", lelse)
	if err := c.body(); err != nil {
		return err
	}

	if c.at(token.Else) {
		c.pos++
		lend := c.newLabel()
		c.buf.emit("jmp %s", lend)
		c.buf.emit("%s:", lelse)
		if err := c.body(); err != nil {
			return err
		}
		c.buf.emit("%s:", lend)
		return nil
	}

	c.buf.emit("%s:", lelse)
	return nil
}

func (c *compiler) whileStmt() error {
	c.pos++ // 'while'
	if err := c.expect(token.LParen, "'('"); err != nil {
		return err
	}

	lrepeat := c.newLabel()
	c.buf.emit("%s:", lrepeat)
	if err := c.assign(); err != nil {
		return err
	}
	if err := c.expect(token.RParen, "')'"); err != nil {
		return err
	}

	lbreak := c.newLabel()
	c.buf.emit("jz %s", lbreak)
	if err := c.body(); err != nil {
		return err
	}
	c.buf.emit("jmp %s", lrepeat)
	c.buf.emit("%s:", lbreak)
	return nil
}

func (c *compiler) doWhileStmt() error {
	c.pos++ // 'do'
	lrepeat := c.newLabel()
	c.buf.emit("%s:", lrepeat)
	if err := c.body(); err != nil {
		return err
	}
	if err := c.expect(token.While, "'while'"); err != nil {
		return err
	}
	if err := c.expect(token.LParen, "'('"); err != nil {
		return err
	}
	if err := c.assign(); err != nil {
		return err
	}
	if err := c.expect(token.RParen, "')'"); err != nil {
		return err
	}

	// A C-style trailing ';' after the condition is accepted but not
	// required.
	if c.at(token.Punct) {
		c.pos++
	}

	lbreak := c.newLabel()
	c.buf.emit("jz %s", lbreak)
	c.buf.emit("jnz %s", lrepeat)
	c.buf.emit("%s:", lbreak)
	return nil
}

// assign implements the right-associative assignment chain. Seeing an
// identifier immediately followed by '=' pushes a fresh buffer, recurses
// into the right-hand side (which lands its evaluation code in that
// buffer), appends this level's store only after the recursive call
// returns, and merges the buffer upward — so a chain `a = b = c = expr`
// evaluates expr once and then stores into c, then b, then a.
func (c *compiler) assign() error {
	if c.at(token.Ident) && c.atAhead(1, token.Assign) {
		name := c.lexeme()
		c.pos += 2 // ident, '='

		off, ok := c.sym.lookup(name)
		if !ok {
			return c.errorf("%q used before declaration", name)
		}

		c.buf.push()
		if err := c.assign(); err != nil {
			return err
		}
		c.buf.emit("mov.mem.reg.i32 [sp+%d] r0", off)
		c.buf.pop()
		return nil
	}
	return c.eqOp()
}

// eqOp handles '==' and '!=', which are symmetric: operand order does
// not affect the result, so both emit in r0/r1 order.
func (c *compiler) eqOp() error {
	if err := c.compareOp(); err != nil {
		return err
	}
	for c.at(token.Equal) || c.at(token.NotEqual) {
		op := c.peekKind()
		c.pos++
		c.buf.emit("push.i32 r0")
		if err := c.compareOp(); err != nil {
			return err
		}
		c.buf.emit("pop.i32 r1")
		if op == token.Equal {
			c.buf.emit("cmpeq.i32 r0 r1")
		} else {
			c.buf.emit("cmpneq.i32 r0 r1")
		}
	}
	return nil
}

// compareOp handles the relational operators, which are not symmetric:
// r1 holds the LHS and r0 the RHS, so the comparison is emitted r1 r0.
func (c *compiler) compareOp() error {
	if err := c.addOp(); err != nil {
		return err
	}
	for c.at(token.LEqual) || c.at(token.GEqual) || c.at(token.Less) || c.at(token.Greater) {
		op := c.peekKind()
		c.pos++
		c.buf.emit("push.i32 r0")
		if err := c.addOp(); err != nil {
			return err
		}
		c.buf.emit("pop.i32 r1")
		switch op {
		case token.LEqual:
			c.buf.emit("cmpleq.i32 r1 r0")
		case token.GEqual:
			c.buf.emit("cmpgeq.i32 r1 r0")
		case token.Less:
			c.buf.emit("cmpless.i32 r1 r0")
		case token.Greater:
			c.buf.emit("cmpgreater.i32 r1 r0")
		}
	}
	return nil
}

func (c *compiler) addOp() error {
	if err := c.mulOp(); err != nil {
		return err
	}
	for c.at(token.Add) || c.at(token.Sub) {
		op := c.peekKind()
		c.pos++
		c.buf.emit("push.i32 r0")
		if err := c.mulOp(); err != nil {
			return err
		}
		c.buf.emit("pop.i32 r1")
		if op == token.Add {
			c.buf.emit("add.i32 r0 r1")
		} else {
			c.buf.emit("sub.i32 r0 r1")
			c.buf.emit("neg.i32 r0")
		}
	}
	return nil
}

func (c *compiler) mulOp() error {
	if err := c.factor(); err != nil {
		return err
	}
	for c.at(token.Mul) || c.at(token.Div) {
		op := c.peekKind()
		c.pos++
		c.buf.emit("push.i32 r0")
		if err := c.factor(); err != nil {
			return err
		}
		c.buf.emit("pop.i32 r1")
		if op == token.Mul {
			c.buf.emit("mul.i32 r0 r1")
		} else {
			c.buf.emit("div.i32 r1 r0")
			c.buf.emit("mov.reg.reg r0 r1")
		}
	}
	return nil
}

func (c *compiler) factor() error {
	switch {
	case c.at(token.LParen):
		c.pos++
		if err := c.assign(); err != nil {
			return err
		}
		return c.expect(token.RParen, "')'")
	case c.at(token.Ident):
		name := c.lexeme()
		off, ok := c.sym.lookup(name)
		if !ok {
			return c.errorf("%q used before declaration", name)
		}
		c.pos++
		c.buf.emit("mov.reg.mem.i32 r0 [sp+%d]", off)
		return nil
	case c.at(token.Value):
		v := c.lexeme()
		if _, err := strconv.Atoi(v); err != nil {
			return c.errorf("invalid integer literal %q", v)
		}
		c.pos++
		c.buf.emit("mov.reg.i32 r0 %s", v)
		return nil
	default:
		return c.errorf("unexpected token %s", c.peekKind())
	}
}

func (c *compiler) newLabel() string {
	l := fmt.Sprintf("L%d", c.labels)
	c.labels++
	return l
}

func (c *compiler) atEnd() bool { return c.pos >= c.toks.Len() }

func (c *compiler) peekKind() token.Kind {
	if c.atEnd() {
		return eof
	}
	return c.toks.Kinds[c.pos]
}

func (c *compiler) at(k token.Kind) bool { return !c.atEnd() && c.toks.Kinds[c.pos] == k }

func (c *compiler) atAhead(n int, k token.Kind) bool {
	i := c.pos + n
	return i < c.toks.Len() && c.toks.Kinds[i] == k
}

func (c *compiler) lexeme() string { return c.toks.Lexemes[c.pos] }

func (c *compiler) expect(k token.Kind, what string) error {
	if !c.at(k) {
		return c.errorf("expected %s, got %s", what, c.peekKind())
	}
	c.pos++
	return nil
}

// pos_ recovers the debug position of the current token, falling back to
// the previous one at end of stream so errors at premature EOF still
// point somewhere useful.
func (c *compiler) pos_() token.Position {
	if p, ok := c.toks.Debug[c.pos]; ok {
		return p
	}
	if c.pos > 0 {
		if p, ok := c.toks.Debug[c.pos-1]; ok {
			return p
		}
	}
	return token.Position{}
}

func (c *compiler) errorf(format string, args ...interface{}) error {
	return &Error{Pos: c.pos_(), Msg: fmt.Sprintf(format, args...)}
}
