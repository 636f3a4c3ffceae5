package codec

import (
	"math/big"
	"strings"
)

// Pack turns a message into a single non-negative integer by concatenating the
// two-digit code of every symbol and reading the result as one base-10 number.
// Symbols outside the alphabet degrade to UnknownCode rather than failing. The
// empty message packs to zero.
//
// Reading the digit string as an integer collapses leading zeros, so the
// packed value alone does not identify the message: Unpack additionally needs
// the digit length recorded at encode time.
func (a *Alphabet) Pack(message string) *big.Int {
	n := &big.Int{}
	if message == "" {
		return n
	}

	code := &strings.Builder{}
	code.Grow(2 * len(message))
	for _, r := range message {
		code.WriteString(a.CodeOf(r))
	}

	if _, ok := n.SetString(code.String(), 10); !ok {
		panic("codec: alphabet produced a non-numeric code")
	}
	return n
}

// Unpack is the inverse of Pack. digits must be the rendered digit length of n
// at pack time: n is rendered in base 10, padded with leading zeros back to
// that width and split into two-digit groups, each mapped back to its symbol.
// An odd width means the leading code lost its zero digit to integer parsing,
// so one more zero is restored to keep the groups aligned from the right.
//
// A digits value of zero stands for the empty message. No other validation is
// performed; a wrong digit length silently mis-groups the codes.
func (a *Alphabet) Unpack(n *big.Int, digits int) string {
	if digits <= 0 {
		return ""
	}

	s := n.Text(10)
	if pad := digits - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}

	message := &strings.Builder{}
	message.Grow(len(s) / 2)
	for i := 0; i < len(s); i += 2 {
		code := int(s[i]-'0')*10 + int(s[i+1]-'0')
		message.WriteRune(a.RuneOf(code))
	}
	return message.String()
}

// digitLen returns the number of digits in the base-10 rendering of n. Zero
// renders as "0" and counts as one digit.
func digitLen(n *big.Int) int {
	return len(n.Text(10))
}
