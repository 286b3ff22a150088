package main

import "testing"

func TestEqual(t *testing.T) {
	shouldEqual(t, Number(1), Number(1))
	shouldEqual(t, Number(2.5), Number(2.5))
	shouldEqual(t, String("blah"), String("blah"))
	shouldEqual(t, Identifier("+"), Identifier("+"))
	shouldEqual(t, Nil, Nil)
	shouldEqual(t, NewList(Number(1), String("blah"), id("x")), NewList(Number(1), String("blah"), id("x")))
	shouldEqual(t, NewList(NewList(id("a")), Nil), NewList(NewList(id("a")), Nil))
}

func TestNotEqual(t *testing.T) {
	shouldNotEqual(t, Number(1), Number(2))
	shouldNotEqual(t, String("blah"), String("bloo"))
	shouldNotEqual(t, Identifier("+"), Identifier("-"))
	shouldNotEqual(t, NewList(Number(1), Number(2)), NewList(Number(1), Number(3)))
	shouldNotEqual(t, NewList(Number(1), Number(2)), NewList(Number(1)))
	shouldNotEqual(t, NewList(Number(1)), NewList(Number(1), Number(2)))
	shouldNotEqual(t, NewList(Nil), Nil)
}

func TestTypeMismatch(t *testing.T) {
	shouldNotEqual(t, Number(1), String("1"))
	shouldNotEqual(t, Identifier("blah"), String("blah"))
	shouldNotEqual(t, Identifier("a"), NewList(id("a")))
	shouldNotEqual(t, Nil, String(""))
	shouldNotEqual(t, Nil, Number(0))
}

func TestSharedTails(t *testing.T) {
	shared := NewList(id("b"), id("c"))
	shouldEqual(t, Cons(id("a"), shared), Cons(id("a"), shared))
	shouldNotEqual(t, Cons(id("a"), shared), Cons(id("z"), shared))
}

func shouldEqual(t *testing.T, val1, val2 Exp) {
	t.Helper()
	if !Equals(val1, val2) {
		t.Errorf("\n%v | %v - Expected: equal", val1, val2)
	}
}

func shouldNotEqual(t *testing.T, val1, val2 Exp) {
	t.Helper()
	if Equals(val1, val2) {
		t.Errorf("\n%v | %v - Expected: not equal", val1, val2)
	}
}
