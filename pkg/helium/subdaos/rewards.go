package subdaos

import (
	"math/big"
)

const (
	EpochLength = 24 * 60 * 60
	// DcDecimals is the number of decimals of the data credit mint.
	DcDecimals = 8
	// utilityScoreDecimals is the fixed point precision of utility scores.
	utilityScoreDecimals = 12
	// dcPerUsd is the number of whole data credits bought by one dollar.
	dcPerUsd = 100_000
)

// CurrentEpoch returns the epoch containing unixTime.
func CurrentEpoch(unixTime int64) uint64 {
	if unixTime < 0 {
		return 0
	}
	return uint64(unixTime / EpochLength)
}

// EpochStart returns the unix time an epoch begins at.
func EpochStart(epoch uint64) int64 {
	return int64(epoch) * EpochLength
}

// UtilityScore computes the fixed point utility of a sub-DAO for an epoch:
//
//	sqrt(dcBurned in USD) * sqrt(devices * activationFee)
//
// with dcBurned in raw data credit units and 12 decimals of precision,
// truncated. The square roots are merged so the result is exact.
func UtilityScore(dcBurned, devices, activationFee uint64) *big.Int {
	// usd = dcBurned / (10^8 * 10^5), score = sqrt(usd * devices * fee) * 10^12
	// so score = sqrt(dcBurned * devices * fee * 10^(24-13))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(2*utilityScoreDecimals-DcDecimals), nil)
	scale.Div(scale, big.NewInt(dcPerUsd))

	v := new(big.Int).SetUint64(dcBurned)
	v.Mul(v, new(big.Int).SetUint64(devices))
	v.Mul(v, new(big.Int).SetUint64(activationFee))
	v.Mul(v, scale)
	return v.Sqrt(v)
}

// RewardShare is the part of epochRewards owed to a sub-DAO holding utility
// out of totalUtility, rounded down.
func RewardShare(epochRewards uint64, utility, totalUtility *big.Int) uint64 {
	if totalUtility == nil || utility == nil || totalUtility.Sign() <= 0 {
		return 0
	}
	share := new(big.Int).SetUint64(epochRewards)
	share.Mul(share, utility)
	share.Quo(share, totalUtility)
	if !share.IsUint64() {
		return epochRewards
	}
	return share.Uint64()
}
