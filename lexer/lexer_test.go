package lexer

import (
	"testing"

	"github.com/miniql/miniql/token"
)

func TestLexerBasicTokens(t *testing.T) {
	l := New("SELECT * FROM users WHERE id = 1;")
	want := []token.Token{
		token.SELECT, token.ASTERISK, token.FROM, token.IDENT, token.WHERE,
		token.IDENT, token.EQ, token.INT, token.SEMICOLON, token.EOF,
	}
	for i, w := range want {
		got := l.Next()
		if got.Type != w {
			t.Fatalf("token %d: got %v, want %v", i, got.Type, w)
		}
	}
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	l := New("select From Where")
	for _, want := range []token.Token{token.SELECT, token.FROM, token.WHERE} {
		got := l.Next()
		if got.Type != want {
			t.Fatalf("got %v, want %v", got.Type, want)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	l := New("<> != <= >= < > =")
	want := []token.Token{token.NEQ, token.NEQ, token.LTE, token.GTE, token.LT, token.GT, token.EQ}
	for i, w := range want {
		got := l.Next()
		if got.Type != w {
			t.Fatalf("token %d: got %v, want %v", i, got.Type, w)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`'it''s'`, "it's"},
		{`"say ""hi"""`, `say "hi"`},
		{`'line\nbreak'`, "line\nbreak"},
		{`'tab\there'`, "tab\there"},
	}
	for _, c := range cases {
		l := New(c.in)
		got := l.Next()
		if got.Type != token.STRING {
			t.Fatalf("%q: got type %v, want STRING", c.in, got.Type)
		}
		if got.Value != c.want {
			t.Fatalf("%q: got %q, want %q", c.in, got.Value, c.want)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		in   string
		typ  token.Token
		want string
	}{
		{"123", token.INT, "123"},
		{"-5", token.INT, "-5"},
		{"3.14", token.FLOAT, "3.14"},
		{".5", token.FLOAT, ".5"},
	}
	for _, c := range cases {
		l := New(c.in)
		got := l.Next()
		if got.Type != c.typ || got.Value != c.want {
			t.Fatalf("%q: got %v %q, want %v %q", c.in, got.Type, got.Value, c.typ, c.want)
		}
	}
}

func TestLexerMinusIsOperatorWhenNotBeforeDigit(t *testing.T) {
	l := New("a - b")
	l.Next() // a
	got := l.Next()
	if got.Type != token.MINUS {
		t.Fatalf("got %v, want MINUS", got.Type)
	}
}

func TestLexerComments(t *testing.T) {
	l := New("SELECT 1 -- trailing comment\nFROM t /* block\ncomment */ WHERE 1=1")
	want := []token.Token{token.SELECT, token.INT, token.FROM, token.IDENT, token.WHERE, token.INT, token.EQ, token.INT, token.EOF}
	for i, w := range want {
		got := l.Next()
		if got.Type != w {
			t.Fatalf("token %d: got %v, want %v", i, got.Type, w)
		}
	}
}

func TestLexerUnterminatedBlockCommentRunsToEOF(t *testing.T) {
	l := New("SELECT 1 /* never closes")
	if got := l.Next(); got.Type != token.SELECT {
		t.Fatalf("got %v, want SELECT", got.Type)
	}
	if got := l.Next(); got.Type != token.INT {
		t.Fatalf("got %v, want INT", got.Type)
	}
	if got := l.Next(); got.Type != token.EOF {
		t.Fatalf("got %v, want EOF", got.Type)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	l := New("SELECT # FROM t")
	l.Next() // SELECT
	got := l.Next()
	if got.Type != token.ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", got.Type)
	}
}

func TestLexerPositions(t *testing.T) {
	l := New("SELECT\n  name")
	l.Next() // SELECT
	got := l.Next()
	if got.Pos.Line != 2 || got.Pos.Column != 3 {
		t.Fatalf("got line %d col %d, want line 2 col 3", got.Pos.Line, got.Pos.Column)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("SELECT FROM")
	p1 := l.Peek()
	p2 := l.Peek()
	if p1.Type != p2.Type {
		t.Fatalf("peek not idempotent: %v vs %v", p1.Type, p2.Type)
	}
	n := l.Next()
	if n.Type != token.SELECT {
		t.Fatalf("got %v, want SELECT after peek", n.Type)
	}
}

func TestGetPutPool(t *testing.T) {
	l := Get("SELECT 1")
	if got := l.Next(); got.Type != token.SELECT {
		t.Fatalf("got %v, want SELECT", got.Type)
	}
	Put(l)

	l2 := Get("DELETE FROM t")
	if got := l2.Next(); got.Type != token.DELETE {
		t.Fatalf("got %v, want DELETE", got.Type)
	}
	Put(l2)
}
