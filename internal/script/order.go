package script

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Order selects how the keys of one side are compared.
type Order string

const (
	// Lexical compares keys byte-wise.
	Lexical Order = "lexical"
	// Numeric compares keys as numbers. Keys that do not parse as a number,
	// NaN included, sort after every number, lexically among themselves.
	Numeric Order = "numeric"
	// Fold compares keys case-insensitively.
	Fold Order = "fold"
)

var ErrUnknownOrder = errors.New("unknown key order")

// ParseOrder returns the Order named s. The empty string means Lexical.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(s)); o {
	case "":
		return Lexical, nil
	case Lexical, Numeric, Fold:
		return o, nil
	}
	return "", errors.Wrapf(ErrUnknownOrder, "%q", s)
}

// Less returns the comparison function for o.
func (o Order) Less() func(a, b string) bool {
	switch o {
	case Numeric:
		return numericLess
	case Fold:
		return foldLess
	}
	return lexicalLess
}

func lexicalLess(a, b string) bool {
	return a < b
}

func foldLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// number parses s for the numeric order. NaN is not a number here: it is
// unordered against every float and would break the ordering.
func number(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func numericLess(a, b string) bool {
	x, okA := number(a)
	y, okB := number(b)
	switch {
	case okA && okB:
		return x < y
	case okA:
		return true
	case okB:
		return false
	}
	return a < b
}
