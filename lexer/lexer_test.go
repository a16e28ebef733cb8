package lexer_test

import (
	"testing"

	"github.com/scsvm/scs/lexer"
	"github.com/scsvm/scs/token"
)

func TestLexBasic(t *testing.T) {
	src := "<|>1|t.scs<|>int x;x=2+3*4;"
	r, err := lexer.Lex("t.scs", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{
		token.Type, token.Ident, token.Punct,
		token.Ident, token.Assign, token.Value, token.Add, token.Value, token.Mul, token.Value, token.Punct,
	}
	if r.Len() != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", r.Len(), len(want), r.Kinds)
	}
	for i, k := range want {
		if r.Kinds[i] != k {
			t.Errorf("token %d: got %v, want %v", i, r.Kinds[i], k)
		}
	}
	if r.Lexemes[1] != "x" {
		t.Errorf("ident lexeme: got %q", r.Lexemes[1])
	}
	if r.Lexemes[5] != "2" {
		t.Errorf("value lexeme: got %q", r.Lexemes[5])
	}
}

func TestLexKeywordBoundary(t *testing.T) {
	// "iffy" must not be split into "if" + "fy".
	r, err := lexer.Lex("t.scs", "int iffy;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kinds[1] != token.Ident || r.Lexemes[1] != "iffy" {
		t.Errorf("expected ident 'iffy', got %v %q", r.Kinds[1], r.Lexemes[1])
	}
}

func TestLexMultiCharOperators(t *testing.T) {
	r, err := lexer.Lex("t.scs", "a<=b>=c==d!=e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{
		token.Ident, token.LEqual, token.Ident, token.GEqual,
		token.Ident, token.Equal, token.Ident, token.NotEqual, token.Ident,
	}
	if r.Len() != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", r.Len(), len(want), r.Kinds)
	}
	for i, k := range want {
		if r.Kinds[i] != k {
			t.Errorf("token %d: got %v, want %v", i, r.Kinds[i], k)
		}
	}
}

func TestLexInvalidToken(t *testing.T) {
	_, err := lexer.Lex("t.scs", "int x; x = 1 @ 2;")
	if err == nil {
		t.Fatal("expected error for invalid token")
	}
	if _, ok := err.(*lexer.Error); !ok {
		t.Errorf("expected *lexer.Error, got %T", err)
	}
}

func TestLexDebugInfo(t *testing.T) {
	src := "<|>1|a.scs<|>int x;\n<|>2|a.scs<|>x=1;"
	r, err := lexer.Lex("a.scs", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := r.Debug[0]; p.Line != 1 || p.File != "a.scs" {
		t.Errorf("token 0 debug info: %+v", p)
	}
	last := r.Len() - 1
	if p := r.Debug[last]; p.Line != 2 {
		t.Errorf("token %d debug info: %+v", last, p)
	}
}
