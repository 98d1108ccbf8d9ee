package ordering

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects how exhibit numbers are rendered.
type Style string

const (
	StyleLetters Style = "letters"
	StyleNumbers Style = "numbers"
	StyleRoman   Style = "roman"
)

// ValidStyle reports whether s is one of the three closed numbering styles.
func ValidStyle(s Style) bool {
	switch s {
	case StyleLetters, StyleNumbers, StyleRoman:
		return true
	}
	return false
}

// Number renders the exhibit label for a zero-based position in the given
// style. Letters continue past Z with a two-letter scheme: 26 renders "AA",
// 51 renders "AZ". Unknown styles fall back to letters.
func Number(index int, style Style) string {
	switch style {
	case StyleNumbers:
		return strconv.Itoa(index + 1)
	case StyleRoman:
		return Roman(index + 1)
	default:
		return letters(index)
	}
}

// Renumber produces the full label sequence for n exhibits in the given
// style. Idempotent by construction: labels depend only on position.
func Renumber(n int, style Style) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = Number(i, style)
	}
	return labels
}

func letters(index int) string {
	if index < 26 {
		return string(rune('A' + index))
	}
	first := rune('A' + index/26 - 1)
	second := rune('A' + index%26)
	return string(first) + string(second)
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman converts a positive integer to an uppercase Roman numeral using
// standard subtractive notation.
func Roman(num int) string {
	var sb strings.Builder
	for _, rv := range romanValues {
		for num >= rv.value {
			sb.WriteString(rv.symbol)
			num -= rv.value
		}
	}
	return sb.String()
}

// ParseStyle validates a numbering style string, returning an error naming
// the allowed values for anything outside the closed set.
func ParseStyle(s string) (Style, error) {
	style := Style(s)
	if !ValidStyle(style) {
		return "", fmt.Errorf("unknown numbering style %q: expected letters, numbers, or roman", s)
	}
	return style, nil
}
