// Package codec implements a reversible text-to-number transform: a message
// becomes one large integer which successive rooting then folds into a small
// decimal factor. The factor and a combined key of the root exponent and the
// digit length are enough to reconstruct the message exactly, provided the
// factor keeps its full working precision.
package codec

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"math/big"
	"strconv"
)

const (
	// DefaultPrecision is the working precision in significant decimal digits.
	// Two hundred digits cover every message the two-digit length tag can
	// still describe.
	DefaultPrecision = 200

	// DefaultThreshold is the value the root reduction folds under.
	DefaultThreshold = "10"

	// maximumPrecision bounds the configurable working precision; root
	// extraction cost grows quadratically with it.
	maximumPrecision = 10000

	// tagRadix is the size of the length-tag field inside the combined key:
	// the key is r*tagRadix + length, so the length must stay below it.
	tagRadix = 100
)

// ErrMessageTooLong is returned by Encode when the packed integer needs a
// length tag of three or more digits. The combined key has room for two, and
// silently wrapping the value would produce an undecodable result.
var ErrMessageTooLong = errors.New("message too long for the two-digit length tag")

// ErrPrecisionExceeded is returned by Encode when the tagged integer carries
// more digits than the working precision. Such a value would still reduce, but
// the decode side could no longer restore it exactly.
var ErrPrecisionExceeded = errors.New("message too long for the configured precision")

// Settings configure a Codec. The zero value selects the Classic alphabet,
// DefaultPrecision digits of working precision and a reduction threshold of
// DefaultThreshold.
type Settings struct {
	// Alphabet maps symbols to two-digit codes. Nil selects Classic.
	Alphabet *Alphabet

	// Precision is the number of significant decimal digits carried through
	// the root arithmetic. It also bounds the message size that survives a
	// round-trip: the tagged integer must fit into this many digits.
	Precision uint32

	// Threshold is the value the root reduction folds under, given as an
	// exact decimal string. It must be greater than one or the reduction
	// would never terminate.
	Threshold string
}

// Codec turns messages into root-reduced factors and back. A Codec is
// immutable once created and safe for concurrent use. Encoding and decoding
// of the same message must happen with the same settings -- in particular the
// same precision -- or the round-trip breaks.
type Codec struct {
	alphabet  *Alphabet
	ctx       *apd.Context
	threshold *apd.Decimal
}

// New creates a Codec from the given settings, filling in defaults for zero
// fields and validating the rest.
func New(s Settings) (*Codec, error) {
	alphabet := s.Alphabet
	if alphabet == nil {
		alphabet = Classic
	}
	precision := s.Precision
	if precision == 0 {
		precision = DefaultPrecision
	}
	threshold := s.Threshold
	if threshold == "" {
		threshold = DefaultThreshold
	}

	var errs error
	if precision > maximumPrecision {
		errs = multierror.Append(errs, errors.Errorf("precision %d is too large, allows at most %d", precision, maximumPrecision))
	}
	t, _, err := apd.NewFromString(threshold)
	if err != nil {
		errs = multierror.Append(errs, errors.Wrapf(err, "could not parse threshold %q", threshold))
	} else if t.Cmp(apd.New(1, 0)) <= 0 {
		errs = multierror.Append(errs, errors.Errorf("threshold %v must be greater than one", t))
	}
	if errs != nil {
		return nil, errs
	}

	return &Codec{
		alphabet: alphabet,
		ctx: &apd.Context{
			Precision:   precision,
			MaxExponent: apd.MaxExponent,
			MinExponent: apd.MinExponent,
			Rounding:    apd.RoundHalfEven,
			Traps:       apd.DefaultTraps,
		},
		threshold: t,
	}, nil
}

// Alphabet returns the alphabet this codec packs and unpacks with.
func (c *Codec) Alphabet() *Alphabet {
	return c.alphabet
}

// Encoded is the result of a single Encode call.
//
// F1 and FFull are the same root-reduction factor at two different
// precisions. F1 is floored to four decimal places and meant for display or
// for quoting the result in a compact form; FFull carries the full working
// precision and is the only factor that reliably decodes back to the original
// message. F2 combines the root exponent r and the digit length L of the
// packed integer as r*100 + L.
type Encoded struct {
	F1    *apd.Decimal
	F2    int64
	FFull *apd.Decimal
}

// Encode maps a message to its root-reduced form. Symbols outside the
// alphabet are packed as UnknownCode and decode back as the Sentinel; this is
// a documented degradation, not an error. Messages whose packed form outgrows
// the two-digit length tag or the working precision are rejected with
// ErrMessageTooLong or ErrPrecisionExceeded.
func (c *Codec) Encode(message string) (*Encoded, error) {
	n := c.alphabet.Pack(message)

	// The digit length restores leading zeros on decode. Zero marks the empty
	// message; a non-empty all-zero code still counts its single digit.
	length := 0
	if message != "" {
		length = digitLen(n)
	}
	if length >= tagRadix {
		return nil, errors.Wrapf(ErrMessageTooLong, "%d digits", length)
	}

	m := tag(n, length)
	if digitLen(m) > int(c.ctx.Precision) {
		return nil, errors.Wrapf(ErrPrecisionExceeded, "%d digits at precision %d", digitLen(m), c.ctx.Precision)
	}

	md, _, err := apd.NewFromString(m.Text(10))
	if err != nil {
		return nil, errors.Wrap(err, "could not read the tagged integer as a decimal")
	}

	fFull, r, err := reduce(c.ctx, md, c.threshold)
	if err != nil {
		return nil, err
	}

	fctx := *c.ctx
	fctx.Rounding = apd.RoundFloor
	f1 := new(apd.Decimal)
	if _, err := fctx.Quantize(f1, fFull, -4); err != nil {
		return nil, errors.Wrap(err, "could not floor the display factor")
	}

	return &Encoded{
		F1:    f1,
		F2:    int64(r)*tagRadix + int64(length),
		FFull: fFull,
	}, nil
}

// Decode reconstructs a message from a factor and the combined key. The
// factor should be the full-precision FFull of the matching Encode; passing
// the four-decimal F1 is accepted but the restored value drifts away from the
// original once the root exponent grows past a couple of steps.
func (c *Codec) Decode(factor *apd.Decimal, f2 int64) (string, error) {
	if f2 < tagRadix {
		return "", errors.Errorf("key %d has an empty root-exponent field", f2)
	}
	if factor.Sign() < 0 {
		return "", errors.Errorf("factor %s must not be negative", factor)
	}

	r := int(f2 / tagRadix)
	length := int(f2 % tagRadix)

	m, err := restore(c.ctx, factor, r)
	if err != nil {
		return "", err
	}
	return c.alphabet.Unpack(untag(m, length), length), nil
}

// DecodeStrings decodes from exact decimal-string representations, the form
// numeric values should travel in to keep their precision. Unparseable input
// surfaces as an error.
func (c *Codec) DecodeStrings(factor, f2 string) (string, error) {
	f, _, err := apd.NewFromString(factor)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse factor %q", factor)
	}
	key, err := strconv.ParseInt(f2, 10, 64)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse key %q", f2)
	}
	return c.Decode(f, key)
}

// tag appends length to n as a literal decimal suffix occupying length
// digits: n*10^length + length. The tagged value stays uniquely recoverable
// because the suffix field is wide enough for the length itself.
func tag(n *big.Int, length int) *big.Int {
	m := &big.Int{}
	m.Mul(n, pow10(length))
	return m.Add(m, big.NewInt(int64(length)))
}

// untag drops the length suffix again: floor(m / 10^length).
func untag(m *big.Int, length int) *big.Int {
	return new(big.Int).Div(m, pow10(length))
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
