package main

import (
	"bufio"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestNumbers(t *testing.T) {
	testRead(t, "1", Number(1))
	testRead(t, "7", Number(7))
	testRead(t, "  7   ", Number(7))
	testRead(t, "-123", Number(-123))
	testRead(t, "+5", Number(5))
	testRead(t, "2.5", Number(2.5))
	testRead(t, "1e3", Number(1000))
}

func TestIdentifiers(t *testing.T) {
	for _, s := range []string{"a", "aa", ".", ".<", ".>", "$", "@", "<<", ">>", "=", "_a", "a_", "a_a-a_", ":=", "{}", "#", "^", "?", "abc5"} {
		testRead(t, s, Identifier(s))
	}
}

func TestDashes(t *testing.T) {
	testRead(t, "-", Identifier("-"))
	testRead(t, "-abc", Identifier("-abc"))
	testRead(t, "->>", Identifier("->>"))
}

func TestLists(t *testing.T) {
	testRead(t, "(a)", NewList(id("a")))
	testRead(t, "(a b c)", NewList(id("a"), id("b"), id("c")))
	testRead(t, "()", Nil)
	testRead(t, "( )", Nil)
	testRead(t, "(())", NewList(Nil))
	testRead(t, "((a))", NewList(NewList(id("a"))))
	testRead(t, "(a (b c))", NewList(id("a"), NewList(id("b"), id("c"))))
	testRead(t, "( a )", NewList(id("a")))
	testRead(t, "(+ 1 (+ 2 3))", NewList(id("+"), Number(1), NewList(id("+"), Number(2), Number(3))))
	testRead(t, "  ( +   1   (+   2 3   )   )  ", NewList(id("+"), Number(1), NewList(id("+"), Number(2), Number(3))))
	testRead(t, "(* -3 6)", NewList(id("*"), Number(-3), Number(6)))
	testRead(t, "(()())", NewList(Nil, Nil))
}

func TestQuoteSugar(t *testing.T) {
	testRead(t, "'a", NewList(quoteOperator, id("a")))
	testRead(t, "('a)", NewList(NewList(quoteOperator, id("a"))))
	testRead(t, "('a 'b)", NewList(NewList(quoteOperator, id("a")), NewList(quoteOperator, id("b"))))
	testRead(t, "(a 'b c)", NewList(id("a"), NewList(quoteOperator, id("b")), id("c")))
	testRead(t, "'(a b)", NewList(quoteOperator, NewList(id("a"), id("b"))))
	testRead(t, "'()", NewList(quoteOperator, Nil))
}

func TestStrings(t *testing.T) {
	testRead(t, `"abc"`, String("abc"))
	testRead(t, `   "abc"   `, String("abc"))
	testRead(t, `"abc (with parens)"`, String("abc (with parens)"))
	testRead(t, `"abc\"def"`, String(`abc"def`))
	testRead(t, `""`, String(""))
	testRead(t, `"\\"`, String(`\`))
	testRead(t, `"\n"`, String("\n"))
	testRead(t, `"'"`, String("'"))
	testRead(t, `";"`, String(";"))
	testRead(t, `"a b"`, String("a b"))
}

func TestComments(t *testing.T) {
	testRead(t, "1 ; comment after expression", Number(1))
	testRead(t, "; comment before\n1", Number(1))
	testRead(t, "(a ; inside a list\n b)", NewList(id("a"), id("b")))
	testRead(t, "(a ; before the close\n)", NewList(id("a")))
}

func TestReadErrors(t *testing.T) {
	testReadError(t, "(")
	testReadError(t, ")")
	testReadError(t, "(a")
	testReadError(t, "(a b")
	testReadError(t, `"abc`)
	testReadError(t, `"`)
	testReadError(t, `"\"`)
	testReadError(t, "(1 \"abc")
	testReadError(t, "(' a)")
	testReadError(t, "[1 2]")
	testReadError(t, "1x")
}

func TestReadEOF(t *testing.T) {
	_, err := read("   ; only a comment")
	if err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestParse(t *testing.T) {
	programs := []string{
		"(a)",
		"(a b)",
		"(a b c)",
		"()",
		"(())",
		"((a))",
		"(a (b))",
		"(a (b c))",
		"('a)",
		"('a 'b)",
		"(a 'b c)",
		"( a )",
		"(? 't 'a 'b)",
		"(? 't 'a)",
	}
	for _, program := range programs {
		if _, err := Parse(program); err != nil {
			t.Errorf("program %s: %v", program, err)
		}
	}

	faulty := []string{"(", ")", "(a", "a)", "(a b", "(a b c", "(' a)", "a", "'a", "(a) (b)", "", "1"}
	for _, program := range faulty {
		if _, err := Parse(program); err == nil {
			t.Errorf("program %q: expected error", program)
		}
	}
}

func TestParseIncomplete(t *testing.T) {
	for _, program := range []string{"(", "(a (b", `(a "b`, "", "(a '"} {
		_, err := Parse(program)
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("program %q: expected unexpected EOF, got %v", program, err)
		}
	}
	_, err := Parse("(a))")
	if err == nil || errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected a hard error for extra ), got %v", err)
	}
}

func testRead(t *testing.T, input string, output Exp) {
	t.Helper()
	actual, err := read(input)
	if err != nil {
		t.Errorf("\nInput: %q\nExpected: %v - %v\nActual: Error - %s\n",
			input, reflect.TypeOf(output), Print(output), err)
		return
	}
	if !Equals(actual, output) {
		t.Errorf("\nInput: %q\nExpected: %v - %v\nActual: %v - %v\n",
			input,
			reflect.TypeOf(output), Print(output),
			reflect.TypeOf(actual), Print(actual))
	}
}

func testReadError(t *testing.T, input string) {
	t.Helper()
	actual, err := read(input)
	if err == nil {
		t.Errorf("\nInput: %q\nExpected: Error\nActual: %v %v\n", input, reflect.TypeOf(actual), actual)
	}
}

func read(input string) (Exp, error) {
	return Read(bufio.NewReader(strings.NewReader(input)))
}

func TestParseComments(t *testing.T) {
	form, err := Parse("(a b) ; trailing comment")
	if err != nil {
		t.Fatal(err)
	}
	if !Equals(form, NewList(id("a"), id("b"))) {
		t.Errorf("unexpected form %v", form)
	}
	if _, err := Parse("; leading\n(a)"); err != nil {
		t.Error(err)
	}
}
