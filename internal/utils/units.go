package utils

import (
	"math"

	"github.com/gagliardetto/solana-go"
)

// LamportsToSol converts lamports to SOL.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / float64(solana.LAMPORTS_PER_SOL)
}

// TokenAmountToFloat scales a raw token amount by the mint decimals.
func TokenAmountToFloat(amount uint64, decimals uint8) float64 {
	return float64(amount) / math.Pow10(int(decimals))
}
