package codec

import (
	"fmt"
	"github.com/pkg/errors"
	"strings"
)

const (
	// cb54 is the classic character set: letters in both cases plus the question
	// mark and the space. Symbol positions are 1-based, so 'a' maps to 01 and
	// the space to 54.
	cb54 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ? "

	// cb94 extends the classic set with the ten digits and thirty common
	// punctuation marks, continuing the numbering up to 94.
	cb94 = cb54 + "0123456789" + "!\"#$%&'()*+,-./:;<=>@[\\]^_{|}~"
)

// UnknownCode is the code produced for any symbol outside the alphabet. There
// is no reverse mapping for it, which makes the substitution lossy -- decoding
// brings back the Sentinel, not the original symbol.
const UnknownCode = "00"

// Sentinel is the rune produced when a code has no reverse mapping.
const Sentinel = '?'

// Alphabet is a fixed bijection between a set of symbols and two-digit decimal
// codes. It is built once and never modified afterwards, so it can be shared
// freely between goroutines.
type Alphabet struct {
	name  string
	codes map[rune]string
	runes map[int]rune
}

// Classic is the 54-symbol alphabet: lower- and uppercase letters, '?' and
// the space.
var Classic = mustAlphabet("classic", cb54)

// Extended is the 94-symbol alphabet: Classic plus digits and punctuation.
var Extended = mustAlphabet("extended", cb94)

// NewAlphabet builds an alphabet from an ordered symbol string. The first
// symbol receives the code 01. At most 99 symbols fit the two-digit code
// space, and a symbol may appear only once.
func NewAlphabet(name, symbols string) (*Alphabet, error) {
	runes := []rune(symbols)
	if len(runes) == 0 {
		return nil, errors.Errorf("alphabet %q has no symbols", name)
	}
	if len(runes) > 99 {
		return nil, errors.Errorf("alphabet %q has %d symbols, only 99 fit two-digit codes", name, len(runes))
	}

	a := &Alphabet{
		name:  name,
		codes: make(map[rune]string, len(runes)),
		runes: make(map[int]rune, len(runes)),
	}
	for i, r := range runes {
		if _, ok := a.codes[r]; ok {
			return nil, errors.Errorf("alphabet %q repeats the symbol %q", name, r)
		}
		a.codes[r] = fmt.Sprintf("%02d", i+1)
		a.runes[i+1] = r
	}
	return a, nil
}

func mustAlphabet(name, symbols string) *Alphabet {
	a, err := NewAlphabet(name, symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// AlphabetByName resolves the name of one of the built-in alphabets, as used
// on the command line and in configuration files.
func AlphabetByName(name string) (*Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Classic.name:
		return Classic, nil
	case Extended.name:
		return Extended, nil
	}
	return nil, errors.Errorf("unknown alphabet %q, pick %q or %q", name, Classic.name, Extended.name)
}

// Name is the user-friendly name of this alphabet.
func (a *Alphabet) Name() string {
	return a.name
}

// Size returns the number of mapped symbols.
func (a *Alphabet) Size() int {
	return len(a.codes)
}

func (a *Alphabet) String() string {
	return fmt.Sprintf("%v(%v)", a.name, len(a.codes))
}

// CodeOf returns the two-digit code of a symbol, or UnknownCode for symbols
// outside the alphabet.
func (a *Alphabet) CodeOf(r rune) string {
	if code, ok := a.codes[r]; ok {
		return code
	}
	return UnknownCode
}

// RuneOf is the reverse of CodeOf for codes 1..Size. Every other value,
// including the 0 behind UnknownCode, comes back as the Sentinel.
func (a *Alphabet) RuneOf(code int) rune {
	if r, ok := a.runes[code]; ok {
		return r
	}
	return Sentinel
}
