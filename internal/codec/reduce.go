package codec

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"math/big"
)

// reduce folds a non-negative integer value below threshold by successive
// rooting: it walks r = 2, 3, ... and computes m^(1/r) until the result drops
// under threshold, always taking the root of the full-precision m rather than
// refining the previous iterate. A value already below threshold comes back
// unchanged with r = 1.
//
// The loop terminates for any threshold above one, which New enforces.
func reduce(ctx *apd.Context, m, threshold *apd.Decimal) (*apd.Decimal, int, error) {
	f := new(apd.Decimal).Set(m)
	r := 1

	one := apd.New(1, 0)
	inv := new(apd.Decimal)
	for f.Cmp(threshold) >= 0 {
		r++
		if _, err := ctx.Quo(inv, one, apd.New(int64(r), 0)); err != nil {
			return nil, 0, errors.Wrapf(err, "could not invert the root exponent %d", r)
		}
		if _, err := ctx.Pow(f, m, inv); err != nil {
			return nil, 0, errors.Wrapf(err, "could not take the %d-th root", r)
		}
	}
	return f, r, nil
}

// restore raises factor to the r-th power and floors the result to an integer.
// It inverts reduce exactly only when factor still carries the full working
// precision: a factor cut to a few decimal places drags an error into the
// power that grows with r, and the floored result drifts away from the
// original value.
func restore(ctx *apd.Context, factor *apd.Decimal, r int) (*big.Int, error) {
	raised := new(apd.Decimal)
	if _, err := ctx.Pow(raised, factor, apd.New(int64(r), 0)); err != nil {
		return nil, errors.Wrapf(err, "could not raise the factor to the power of %d", r)
	}

	floored := new(apd.Decimal)
	if _, err := ctx.Floor(floored, raised); err != nil {
		return nil, errors.Wrap(err, "could not floor the restored value")
	}

	m := &big.Int{}
	if _, ok := m.SetString(floored.Text('f'), 10); !ok {
		return nil, errors.Errorf("could not read %q back as an integer", floored.Text('f'))
	}
	return m, nil
}
