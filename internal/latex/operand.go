package latex

import (
	"strconv"
	"strings"
)

// Markup used for operand digits.
const (
	// BlankDigit occupies the width of a digit without printing anything.
	BlankDigit = `\phantom{0}`

	// DigitSpacing separates adjacent digit positions.
	DigitSpacing = `\,`
)

// Operand renders n as exactly digits digit positions. Unused leading positions
// are blank so operands of different magnitude line up. A number wider than
// digits is rendered without padding.
func Operand(digits, n int) string {
	s := strconv.Itoa(n)

	positions := make([]string, 0, max(digits, len(s)))
	for range digits - len(s) {
		positions = append(positions, BlankDigit)
	}
	for _, r := range s {
		positions = append(positions, string(r))
	}

	return strings.Join(positions, DigitSpacing)
}

// Positions counts the digit positions, blank or printed, in a rendered operand.
func Positions(operand string) int {
	if operand == "" {
		return 0
	}
	return strings.Count(operand, DigitSpacing) + 1
}
