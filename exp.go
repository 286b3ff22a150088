package main

import "fmt"

// Exp is either an atom or a list
type Exp interface {
	fmt.Stringer
	exp()
}

// Atom is an indivisible leaf value
type Atom interface {
	Exp
	atom()
}

type Identifier string
type Number float64
type String string

func (Identifier) exp() {}
func (Identifier) atom() {}
func (Number) exp() {}
func (Number) atom() {}
func (String) exp() {}
func (String) atom() {}

func (i Identifier) String() string { return Print(i) }
func (n Number) String() string { return Print(n) }
func (s String) String() string { return Print(s) }

// List is a persistent singly linked list. The nil *List is the empty list.
type List struct {
	head Exp
	tail *List
}

// Nil is the empty list, also used as false and as the value of unbound names
var Nil *List

func (*List) exp() {}

func (l *List) String() string { return Print(l) }

// Cons prepends head to tail without modifying tail
func Cons(head Exp, tail *List) *List {
	return &List{head: head, tail: tail}
}

// NewList builds a list holding the given elements in order
func NewList(items ...Exp) *List {
	l := Nil
	for i := len(items) - 1; i >= 0; i-- {
		l = Cons(items[i], l)
	}
	return l
}

func (l *List) IsNil() bool {
	return l == nil
}

func (l *List) Hd() (Exp, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: head of ()", ErrConsExpected)
	}
	return l.head, nil
}

func (l *List) Tl() (*List, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: tail of ()", ErrConsExpected)
	}
	return l.tail, nil
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return 1 + l.tail.Len()
}

// Nth returns the element at position n (zero based)
func (l *List) Nth(n int) (Exp, error) {
	rest, err := l.Slice(n)
	if err != nil {
		return nil, err
	}
	if rest == nil {
		return nil, fmt.Errorf("%w: index %d of list with %d elements", ErrIndexOutOfRange, n, l.Len())
	}
	return rest.head, nil
}

// Slice returns the list without its first start elements. The result shares
// structure with l.
func (l *List) Slice(start int) (*List, error) {
	if start < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrIndexOutOfRange, start)
	}
	rest := l
	for i := 0; i < start; i++ {
		if rest == nil {
			return nil, fmt.Errorf("%w: index %d of list with %d elements", ErrIndexOutOfRange, start, l.Len())
		}
		rest = rest.tail
	}
	return rest, nil
}

// Extend returns the elements of l followed by those of other. Neither operand
// is modified and other is shared by the result.
func (l *List) Extend(other *List) *List {
	if l == nil {
		return other
	}
	if other == nil {
		return l
	}
	return Cons(l.head, l.tail.Extend(other))
}

// Items copies the elements into a slice
func (l *List) Items() []Exp {
	items := make([]Exp, 0, l.Len())
	for ; l != nil; l = l.tail {
		items = append(items, l.head)
	}
	return items
}

func AsAtom(e Exp) (Atom, error) {
	a, isAtom := e.(Atom)
	if !isAtom {
		return nil, fmt.Errorf("%w: expected an atom, got %v", ErrTypeMismatch, e)
	}
	return a, nil
}

func AsList(e Exp) (*List, error) {
	l, isList := e.(*List)
	if !isList {
		return nil, fmt.Errorf("%w: expected a list, got %v", ErrTypeMismatch, e)
	}
	return l, nil
}

func AsIdentifier(e Exp) (Identifier, error) {
	id, isIdent := e.(Identifier)
	if !isIdent {
		return "", fmt.Errorf("%w: expected an identifier, got %v", ErrTypeMismatch, e)
	}
	return id, nil
}

func AsNumber(e Exp) (Number, error) {
	n, isNumber := e.(Number)
	if !isNumber {
		return 0, fmt.Errorf("%w: expected a number, got %v", ErrTypeMismatch, e)
	}
	return n, nil
}

func AsString(e Exp) (String, error) {
	s, isString := e.(String)
	if !isString {
		return "", fmt.Errorf("%w: expected a string, got %v", ErrTypeMismatch, e)
	}
	return s, nil
}
