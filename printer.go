package main

import (
	"math"
	"strconv"
	"strings"
)

const quoteOperator = Identifier("'")

// Print renders an expression in the form the reader accepts back
func Print(val Exp) string {
	var sb strings.Builder
	writeExp(&sb, val)
	return sb.String()
}

func writeExp(sb *strings.Builder, val Exp) {
	switch t := val.(type) {
	case Identifier:
		sb.WriteString(string(t))
	case Number:
		sb.WriteString(formatNumber(float64(t)))
	case String:
		sb.WriteString(strconv.Quote(string(t)))
	case *List:
		if quoted, isQuote := quotedExp(t); isQuote {
			sb.WriteByte('\'')
			writeExp(sb, quoted)
			return
		}
		sb.WriteByte('(')
		for l := t; l != nil; l = l.tail {
			if l != t {
				sb.WriteByte(' ')
			}
			writeExp(sb, l.head)
		}
		sb.WriteByte(')')
	}
}

// formatNumber writes infinities as overflowing literals, which the reader
// turns back into infinities. NaN has no literal and prints as NaN.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "1e999"
	case math.IsInf(f, -1):
		return "-1e999"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quotedExp matches (' x) and returns x
func quotedExp(l *List) (Exp, bool) {
	if l == nil || l.head != quoteOperator {
		return nil, false
	}
	if l.tail == nil || l.tail.tail != nil {
		return nil, false
	}
	return l.tail.head, true
}
