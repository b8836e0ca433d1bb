package engine

import (
	"math/big"

	"rwalend/internal/domain/loan"
)

const secondsPerYear = 31_536_000

var basisPoints = big.NewInt(10_000)

// totalRepayment = principal + principal*rateBps*durationSeconds/(10000*secondsPerYear),
// simple non-compounding interest with integer truncation. Computed through
// math/big so principal*rateBps*duration cannot overflow mid-expression; the
// final total must still fit the int64 amount range.
func totalRepayment(principal, rateBps, durationSeconds int64) (int64, error) {
	interest := new(big.Int).Mul(big.NewInt(principal), big.NewInt(rateBps))
	interest.Mul(interest, big.NewInt(durationSeconds))
	interest.Quo(interest, new(big.Int).Mul(basisPoints, big.NewInt(secondsPerYear)))

	total := interest.Add(interest, big.NewInt(principal))
	if !total.IsInt64() {
		return 0, loan.ErrAmountOverflow
	}
	return total.Int64(), nil
}

// platformFee = principal * feeBps / 10000, truncated. feeBps is capped at
// 1000 so the product stays well inside int64 for any accepted principal.
func platformFee(principal, feeBps int64) int64 {
	fee := new(big.Int).Mul(big.NewInt(principal), big.NewInt(feeBps))
	fee.Quo(fee, basisPoints)
	return fee.Int64()
}
