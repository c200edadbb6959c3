// Copyright (c) 2012 VMware, Inc.

package tower

import (
	"math/big"

	"github.com/pkg/errors"
)

// maxExponent bounds n in 2^(2^n). Such a factor takes 2^n bits, 32 MiB at
// the bound; much further and math/big runs out of memory or panics.
const maxExponent = 28

// Factor returns 2^(2^(h-k)), the k-th factor of Prod(i, h).
func Factor(k, h int) (*big.Int, error) {
	shift, err := exponent(h - k)
	if err != nil {
		return nil, errors.Wrapf(err, "factor(%d, %d)", k, h)
	}
	return new(big.Int).Lsh(big.NewInt(1), shift), nil
}

// Prod returns the product of 2^(2^(h-k)) for k in 1..i.
//
// An index below 1 is the empty product and yields 1 whatever h is. An index
// above h would need a fractional factor and fails with ErrDomain, as does a
// first factor larger than 2^(2^maxExponent).
func Prod(i, h int) (*big.Int, error) {
	if i >= 1 && i > h {
		return nil, errors.Wrapf(ErrDomain, "prod(%d, %d) index above height", i, h)
	}

	result := big.NewInt(1)
	for k := 1; k <= i; k++ {
		shift, err := exponent(h - k)
		if err != nil {
			return nil, errors.Wrapf(err, "prod(%d, %d) factor %d", i, h, k)
		}
		// multiplying by 2^(2^n) is a left shift by 2^n
		result.Lsh(result, shift)
	}
	return result, nil
}

// Prod2 returns 2^(2^(2-i)), the closed form that matches the i-th factor of
// Prod(i, 2). Indexes above 2 give irrational values and fail with ErrDomain.
func Prod2(i int) (*big.Int, error) {
	v, err := Factor(i, 2)
	if err != nil {
		return nil, errors.Wrapf(err, "prod2(%d)", i)
	}
	return v, nil
}

func (l *Level) Get(i, h int) error {
	l.Index = i
	l.Height = h
	l.Prod, l.Prod2 = nil, nil

	prod, err := Prod(i, h)
	if err != nil {
		return err
	}
	l.Prod = prod

	prod2, err := Prod2(i)
	if err != nil {
		return err
	}
	l.Prod2 = prod2

	return nil
}

func exponent(n int) (uint, error) {
	if n < 0 {
		return 0, errors.Wrapf(ErrDomain, "2^%d is not an integer", n)
	}
	if n > maxExponent {
		return 0, errors.Wrapf(ErrDomain, "2^(2^%d) is too large", n)
	}
	return uint(1) << uint(n), nil
}
