package types

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var weiPerBNB = decimal.New(1, 18)

// BNBToWei converts a decimal BNB amount ("0.5") into integer wei. Amounts
// with more than 18 fractional digits are rejected rather than truncated.
func BNBToWei(amount string) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrapf(err, "parse amount %q", amount)
	}
	if d.Sign() <= 0 {
		return nil, errors.Errorf("amount %q must be positive", amount)
	}
	wei := d.Mul(weiPerBNB)
	if !wei.IsInteger() {
		return nil, errors.Errorf("amount %q has sub-wei precision", amount)
	}
	return wei.BigInt(), nil
}

// WeiToBNB renders integer wei as a decimal BNB string for responses. Uses
// an exponent shift, not division, so all 18 fractional digits survive.
func WeiToBNB(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -18).String()
}
