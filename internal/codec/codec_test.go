package codec

import (
	"fmt"
	"github.com/cockroachdb/apd/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"strconv"
	"strings"
	"testing"
)

func mustCodec(t *testing.T, s Settings) *Codec {
	c, err := New(s)
	require.NoError(t, err)
	return c
}

func Test_Codec_Defaults(t *testing.T) {
	c := mustCodec(t, Settings{})
	require.Equal(t, Classic, c.Alphabet())
	require.Equal(t, uint32(DefaultPrecision), c.ctx.Precision)
	require.Equal(t, 0, c.threshold.Cmp(apd.New(10, 0)))
}

// Test_Codec_EncodeHi pins down the concrete numbers: "hi" packs to 809, the
// tagged integer 809003 folds under ten at the sixth root, and the combined
// key reads 603.
func Test_Codec_EncodeHi(t *testing.T) {
	c := mustCodec(t, Settings{})

	e, err := c.Encode("hi")
	require.NoError(t, err)
	require.Equal(t, int64(603), e.F2)

	// The display factor is quantized to four decimal places and floored,
	// so it sits at most one step of the last place below the full factor.
	require.Equal(t, int32(-4), e.F1.Exponent)
	require.True(t, e.F1.Cmp(e.FFull) <= 0)
	gap := new(apd.Decimal)
	_, err = c.ctx.Sub(gap, e.FFull, e.F1)
	require.NoError(t, err)
	require.True(t, gap.Cmp(apd.New(1, -4)) < 0)

	decoded, err := c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "hi", decoded)
}

func Test_Codec_RoundTrip(t *testing.T) {
	tests := []struct {
		label    string
		alphabet *Alphabet
		message  string
	}{
		{"two symbols", Classic, "hi"},
		{"single symbol", Classic, "a"},
		{"sentence", Classic, "Meet me behind the chapel at midnight?"},
		{"pangram", Classic, "The quick brown fox jumps over the lazy dog?"},
		{"longest", Classic, strings.Repeat("x", 49)},
		{"mixed case", Classic, "sPoNgEbOb CaSe"},
		{"digits and marks", Extended, "Flight 714 to Sydney!"},
		{"symbols", Extended, "(a+b)*c = d/e"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			c := mustCodec(t, Settings{Alphabet: tt.alphabet})

			e, err := c.Encode(tt.message)
			require.NoError(t, err)

			// The key splits into the root exponent and the digit length
			// of the packed integer.
			require.Equal(t, int64(digitLen(tt.alphabet.Pack(tt.message))), e.F2%tagRadix)
			require.True(t, e.F2/tagRadix >= 1)

			// The full factor has been folded under the threshold.
			require.True(t, e.FFull.Cmp(apd.New(10, 0)) < 0)

			decoded, err := c.Decode(e.FFull, e.F2)
			require.NoError(t, err)
			require.Equal(t, tt.message, decoded)
		})
	}
}

func Test_Codec_EmptyMessage(t *testing.T) {
	c := mustCodec(t, Settings{})

	e, err := c.Encode("")
	require.NoError(t, err)
	require.Equal(t, int64(100), e.F2)
	require.True(t, e.FFull.IsZero())

	decoded, err := c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "", decoded)
}

// Test_Codec_AllUnknownMessage covers the packed value collapsing to zero for
// a non-empty message: the length tag still records one digit, which keeps
// the case distinct from the empty message.
func Test_Codec_AllUnknownMessage(t *testing.T) {
	c := mustCodec(t, Settings{})

	e, err := c.Encode("€")
	require.NoError(t, err)
	require.Equal(t, int64(101), e.F2)

	decoded, err := c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "?", decoded)
}

func Test_Codec_UnknownSymbolDegradation(t *testing.T) {
	classic := mustCodec(t, Settings{})
	extended := mustCodec(t, Settings{Alphabet: Extended})

	e, err := classic.Encode("got 99?")
	require.NoError(t, err)
	decoded, err := classic.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "got ???", decoded)

	e, err = extended.Encode("got 99?")
	require.NoError(t, err)
	decoded, err = extended.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "got 99?", decoded)
}

func Test_Codec_MessageTooLong(t *testing.T) {
	c := mustCodec(t, Settings{})

	// Forty-nine symbols pack into ninety-eight digits and still fit the
	// two-digit tag.
	e, err := c.Encode(strings.Repeat("x", 49))
	require.NoError(t, err)
	decoded, err := c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("x", 49), decoded)

	// The fiftieth symbol pushes the length to one hundred.
	_, err = c.Encode(strings.Repeat("x", 50))
	require.Error(t, err)
	require.Equal(t, ErrMessageTooLong, errors.Cause(err))
}

func Test_Codec_PrecisionExceeded(t *testing.T) {
	c := mustCodec(t, Settings{Precision: 30})

	_, err := c.Encode("abcdefghijklmnop")
	require.Error(t, err)
	require.Equal(t, ErrPrecisionExceeded, errors.Cause(err))

	// Short messages still fit and round-trip at the reduced precision.
	e, err := c.Encode("hi")
	require.NoError(t, err)
	decoded, err := c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "hi", decoded)
}

// Test_Codec_DisplayFactorDrifts shows why the four-decimal factor is for
// display only: with a large root exponent the truncated digits blow up into
// a completely different integer, while the full factor restores the message
// exactly. With a tiny exponent the slack in the length tag still absorbs the
// truncation error, which is why short messages appear to survive it.
func Test_Codec_DisplayFactorDrifts(t *testing.T) {
	c := mustCodec(t, Settings{})
	message := "The quick brown fox jumps over the lazy dog?"

	e, err := c.Encode(message)
	require.NoError(t, err)

	exact, err := c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, message, exact)

	drifted, err := c.Decode(e.F1, e.F2)
	require.NoError(t, err)
	require.NotEqual(t, message, drifted)

	e, err = c.Encode("a")
	require.NoError(t, err)
	short, err := c.Decode(e.F1, e.F2)
	require.NoError(t, err)
	require.Equal(t, "a", short)
}

func Test_Codec_DecodeValidation(t *testing.T) {
	c := mustCodec(t, Settings{})

	_, err := c.Decode(apd.New(5, 0), 99)
	require.Error(t, err)

	_, err = c.Decode(apd.New(5, 0), 0)
	require.Error(t, err)

	_, err = c.Decode(apd.New(-5, 0), 603)
	require.Error(t, err)
}

func Test_Codec_DecodeStrings(t *testing.T) {
	c := mustCodec(t, Settings{})

	e, err := c.Encode("hi")
	require.NoError(t, err)

	decoded, err := c.DecodeStrings(e.FFull.Text('f'), strconv.FormatInt(e.F2, 10))
	require.NoError(t, err)
	require.Equal(t, "hi", decoded)

	_, err = c.DecodeStrings("not a number", "603")
	require.Error(t, err)

	_, err = c.DecodeStrings("9.6527", "six hundred")
	require.Error(t, err)
}

func Test_Codec_SettingsValidation(t *testing.T) {
	_, err := New(Settings{Threshold: "1"})
	require.Error(t, err)

	_, err = New(Settings{Threshold: "0.25"})
	require.Error(t, err)

	_, err = New(Settings{Threshold: "pancakes"})
	require.Error(t, err)

	_, err = New(Settings{Precision: 20000})
	require.Error(t, err)

	_, err = New(Settings{Precision: 20000, Threshold: "pancakes"})
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
}

func Test_Codec_CustomAlphabet(t *testing.T) {
	vowels, err := NewAlphabet("vowels", "aeiou")
	require.NoError(t, err)
	c := mustCodec(t, Settings{Alphabet: vowels})

	e, err := c.Encode("eau")
	require.NoError(t, err)
	decoded, err := c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "eau", decoded)

	e, err = c.Encode("eat")
	require.NoError(t, err)
	decoded, err = c.Decode(e.FFull, e.F2)
	require.NoError(t, err)
	require.Equal(t, "ea?", decoded)
}

// A single Codec is immutable and must be shareable between goroutines.
func Test_Codec_ConcurrentUse(t *testing.T) {
	c := mustCodec(t, Settings{Alphabet: Extended})

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			message := fmt.Sprintf("message %02d, keep it to yourself!", i)
			e, err := c.Encode(message)
			if err != nil {
				return err
			}
			decoded, err := c.Decode(e.FFull, e.F2)
			if err != nil {
				return err
			}
			if decoded != message {
				return errors.Errorf("round-trip changed %q into %q", message, decoded)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
