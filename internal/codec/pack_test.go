package codec

import (
	"github.com/stretchr/testify/require"
	"math/big"
	"testing"
)

func Test_Pack_DropsLeadingZero(t *testing.T) {
	// "hi" concatenates to "0809"; the integer keeps only "809".
	n := Classic.Pack("hi")
	require.Equal(t, "809", n.Text(10))
	require.Equal(t, 3, digitLen(n))
}

func Test_Pack_EmptyMessage(t *testing.T) {
	n := Classic.Pack("")
	require.Equal(t, 0, n.Sign())
}

func Test_Pack_UnknownSymbols(t *testing.T) {
	// "a€b" packs as "01" + "00" + "02".
	n := Classic.Pack("a€b")
	require.Equal(t, "10002", n.Text(10))
}

// Test_Unpack_RestoresLeadingZero feeds Unpack an odd digit count, which
// happens whenever the leading symbol maps to a code below 10.
func Test_Unpack_RestoresLeadingZero(t *testing.T) {
	n := big.NewInt(809)
	require.Equal(t, "hi", Classic.Unpack(n, 3))
}

func Test_Unpack_ZeroDigits(t *testing.T) {
	require.Equal(t, "", Classic.Unpack(big.NewInt(0), 0))
	require.Equal(t, "", Classic.Unpack(big.NewInt(809), -1))
}

func Test_Unpack_PadsShortNumbers(t *testing.T) {
	// A run of 'a' renders with an odd digit count, so the grouping pass
	// needs one extra zero up front.
	n := Classic.Pack("aaaa")
	require.Equal(t, "1010101", n.Text(10))
	require.Equal(t, "aaaa", Classic.Unpack(n, 7))

	// Asking for more digits than the rendering carries pads the number
	// out on the left before grouping.
	require.Equal(t, "?ab", Classic.Unpack(big.NewInt(102), 5))
}

func Test_PackUnpack_RoundTrip(t *testing.T) {
	tests := []struct {
		label    string
		alphabet *Alphabet
		message  string
		expected string
	}{
		{"plain", Classic, "secret", "secret"},
		{"spaced", Classic, "Meet me at noon", "Meet me at noon"},
		{"question", Classic, "why?", "why?"},
		{"leading low code", Classic, "abc", "abc"},
		{"digits degrade", Classic, "got 99?", "got ???"},
		{"digits survive", Extended, "got 99?", "got 99?"},
		{"punctuation", Extended, "Hello, world!", "Hello, world!"},
		{"unicode degrades", Extended, "naïve", "na?ve"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			n := tt.alphabet.Pack(tt.message)
			got := tt.alphabet.Unpack(n, digitLen(n))
			require.Equal(t, tt.expected, got)
		})
	}
}

func Test_DigitLen(t *testing.T) {
	require.Equal(t, 1, digitLen(big.NewInt(0)))
	require.Equal(t, 1, digitLen(big.NewInt(9)))
	require.Equal(t, 2, digitLen(big.NewInt(10)))
	require.Equal(t, 3, digitLen(big.NewInt(809)))
}
