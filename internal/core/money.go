// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed by users
// and formatting them the way the dashboard displays reais.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string to a float amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. When
// both appear, the last one is the decimal separator and the other is a
// thousands separator ("8.600,50" and "8,600.50" both parse to 8600.5).
// With dots only, groups of exactly three digits after a non-zero leading
// group of up to three digits are read as thousands, the way reais are
// written ("8.600" is 8600, "1.234.567" is 1234567). Anything else keeps
// the dot as the decimal separator ("1.5", "0.500", "1234.567").
// Signs are accepted: the ledger does not reject negative amounts.
//
// Examples:
//
//	ParseAmount("1200")     -> 1200, nil
//	ParseAmount("1.744,00") -> 1744, nil
//	ParseAmount("8.600")    -> 8600, nil
//	ParseAmount("585.00")   -> 585, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, ErrInvalidAmount
		}
		s = strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && dotThousands(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	if s == "" || strings.Count(s, ".") > 1 {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if r != '.' && !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return sign * v, nil
}

// dotThousands reports whether s, holding digits and dots only, reads as
// dot-grouped thousands.
func dotThousands(s string) bool {
	groups := strings.Split(s, ".")
	lead := groups[0]
	if len(lead) == 0 || len(lead) > 3 || lead[0] == '0' {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// maxFormatBRL bounds FormatBRL so the cents fit in an int64.
const maxFormatBRL = 1e15

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 8.600,00".
// Amounts that round to zero carry no sign; magnitudes beyond 1e15 are
// clamped.
func FormatBRL(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(-maxFormatBRL, math.Min(maxFormatBRL, v))
	cents := int64(math.Round(v * 100))
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + leftPad2(cents%100)
	if neg {
		return "-" + out
	}
	return out
}

func leftPad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
