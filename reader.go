package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var macros map[rune]func(r *bufio.Reader) (Exp, error)

// errSkip is returned by macros that consume input without producing a value
var errSkip = errors.New("skip")

func init() {
	macros = map[rune]func(r *bufio.Reader) (Exp, error){
		'"':  stringReader,
		';':  commentReader,
		'(':  listReader,
		')':  unmatchedDelimiterReader,
		'\'': quoteReader,
		'[':  unsupportedDelimiterReader,
		']':  unsupportedDelimiterReader,
	}
}

func isWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

func isMacro(ch rune) bool {
	_, ismacro := macros[ch]
	return ismacro
}

// Parse reads exactly one top-level form: a parenthesized list or ().
func Parse(src string) (Exp, error) {
	r := bufio.NewReader(strings.NewReader(src))

	ch, err := skipSpaceAndComments(r)
	if err == io.EOF {
		return nil, fmt.Errorf("expected a list: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}
	if ch != '(' {
		return nil, fmt.Errorf("expected a list, found %q", ch)
	}
	r.UnreadRune()

	val, err := Read(r)
	if err != nil {
		return nil, err
	}

	ch, err = skipSpaceAndComments(r)
	if err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected input after form: %q", ch)
	}
	return val, nil
}

// Read reads the next expression. It returns io.EOF when the input holds no
// further expressions and an error wrapping io.ErrUnexpectedEOF when the input
// ends inside one.
func Read(r *bufio.Reader) (Exp, error) {
	for {
		ch, err := skipSpace(r)
		if err != nil {
			return nil, err
		}

		macroFn, isMacro := macros[ch]
		if isMacro {
			ret, err := macroFn(r)
			if err == errSkip {
				continue
			}
			return ret, err
		}

		if unicode.IsDigit(ch) {
			return readNumber(r, ch)
		}

		if ch == '+' || ch == '-' {
			ch2, _, err := r.ReadRune()
			if err == nil {
				r.UnreadRune()
				if unicode.IsDigit(ch2) {
					return readNumber(r, ch)
				}
			}
		}

		return Identifier(readToken(r, ch)), nil
	}
}

// skipSpace returns the first rune that is not whitespace
func skipSpace(r *bufio.Reader) (rune, error) {
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return 0, err
		}
		if !isWhitespace(ch) {
			return ch, nil
		}
	}
}

func skipSpaceAndComments(r *bufio.Reader) (rune, error) {
	for {
		ch, err := skipSpace(r)
		if err != nil || ch != ';' {
			return ch, err
		}
		commentReader(r)
	}
}

func readToken(r *bufio.Reader, initch rune) string {
	var sb strings.Builder
	sb.WriteRune(initch)

	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return sb.String()
		}
		if isWhitespace(ch) || isMacro(ch) {
			r.UnreadRune()
			return sb.String()
		}
		sb.WriteRune(ch)
	}
}

func readNumber(r *bufio.Reader, initch rune) (Exp, error) {
	token := readToken(r, initch)
	f, err := strconv.ParseFloat(token, 64)
	if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)) {
		return nil, fmt.Errorf("invalid number: %s", token)
	}
	return Number(f), nil
}

func stringReader(r *bufio.Reader) (Exp, error) {
	var raw strings.Builder

	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return nil, fmt.Errorf("unterminated string: %w", io.ErrUnexpectedEOF)
		}
		if ch == '"' {
			break
		}
		raw.WriteRune(ch)
		if ch == '\\' {
			ch, _, err = r.ReadRune()
			if err != nil {
				return nil, fmt.Errorf("unterminated string: %w", io.ErrUnexpectedEOF)
			}
			raw.WriteRune(ch)
		}
	}

	var sb strings.Builder
	s := raw.String()
	for len(s) > 0 {
		ch, _, tail, err := strconv.UnquoteChar(s, '"')
		if err != nil {
			return nil, fmt.Errorf("invalid escape in string %q", raw.String())
		}
		sb.WriteRune(ch)
		s = tail
	}
	return String(sb.String()), nil
}

func commentReader(r *bufio.Reader) (Exp, error) {
	for {
		ch, _, err := r.ReadRune()
		if err != nil || ch == '\n' || ch == '\r' {
			return nil, errSkip
		}
	}
}

func quoteReader(r *bufio.Reader) (Exp, error) {
	ch, _, err := r.ReadRune()
	if err != nil {
		return nil, fmt.Errorf("nothing to quote: %w", io.ErrUnexpectedEOF)
	}
	r.UnreadRune()
	if isWhitespace(ch) || ch == ')' || ch == ';' {
		return nil, fmt.Errorf("nothing to quote before %q", ch)
	}

	quoted, err := Read(r)
	if err == io.EOF {
		return nil, fmt.Errorf("nothing to quote: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}
	return NewList(quoteOperator, quoted), nil
}

func listReader(r *bufio.Reader) (Exp, error) {
	var items []Exp
	for {
		ch, err := skipSpace(r)
		if err == io.EOF {
			return nil, fmt.Errorf("unterminated list: %w", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, err
		}
		if ch == ')' {
			return NewList(items...), nil
		}
		if ch == ';' {
			commentReader(r)
			continue
		}
		r.UnreadRune()

		item, err := Read(r)
		if err == io.EOF {
			return nil, fmt.Errorf("unterminated list: %w", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func unmatchedDelimiterReader(r *bufio.Reader) (Exp, error) {
	return nil, errors.New("unmatched delimiter )")
}

func unsupportedDelimiterReader(r *bufio.Reader) (Exp, error) {
	return nil, errors.New("square brackets are not supported")
}
