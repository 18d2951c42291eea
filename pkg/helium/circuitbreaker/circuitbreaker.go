// Package circuitbreaker reads the windowed circuit breakers guarding Helium
// mints and token accounts.
package circuitbreaker

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

var ProgramID = solana.MustPublicKeyFromBase58("circAbx64bbsscPbQzZAUvuXpHqrCe6fLMzc2uKXz9g")

type ThresholdType uint8

const (
	ThresholdPercent ThresholdType = iota
	ThresholdAbsolute
)

func (t ThresholdType) String() string {
	switch t {
	case ThresholdPercent:
		return "percent"
	case ThresholdAbsolute:
		return "absolute"
	}
	return fmt.Sprintf("ThresholdType(%d)", uint8(t))
}

type WindowedCircuitBreakerConfigV0 struct {
	WindowSizeSeconds uint64
	ThresholdType     ThresholdType
	Threshold         uint64
}

type WindowV0 struct {
	LastAggregatedValue uint64
	LastUnixTimestamp   int64
}

type MintWindowedCircuitBreakerV0 struct {
	Mint          solana.PublicKey
	Authority     solana.PublicKey
	MintAuthority solana.PublicKey
	Config        WindowedCircuitBreakerConfigV0
	LastWindow    WindowV0
	BumpSeed      uint8
}

type AccountWindowedCircuitBreakerV0 struct {
	TokenAccount solana.PublicKey
	Authority    solana.PublicKey
	Owner        solana.PublicKey
	Config       WindowedCircuitBreakerConfigV0
	LastWindow   WindowV0
	BumpSeed     uint8
}

// State is what monitors export from either breaker kind.
type State struct {
	Level         uint64
	Limit         uint64
	ThresholdType ThresholdType
}

// Tripped is only known for absolute thresholds; percent thresholds depend on
// the guarded supply or balance.
func (s State) Tripped() bool {
	return s.ThresholdType == ThresholdAbsolute && s.Level >= s.Limit
}

func stateOf(cfg WindowedCircuitBreakerConfigV0, window WindowV0) State {
	return State{
		Level:         window.LastAggregatedValue,
		Limit:         cfg.Threshold,
		ThresholdType: cfg.ThresholdType,
	}
}

func (b MintWindowedCircuitBreakerV0) State() State {
	return stateOf(b.Config, b.LastWindow)
}

func (b AccountWindowedCircuitBreakerV0) State() State {
	return stateOf(b.Config, b.LastWindow)
}

func MintWindowedBreakerKey(mint solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{[]byte("mint_windowed_breaker"), mint[:]}, ProgramID)
	return key, err
}

func AccountWindowedBreakerKey(tokenAccount solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{[]byte("account_windowed_breaker"), tokenAccount[:]}, ProgramID)
	return key, err
}

func DecodeMintWindowedBreaker(data []byte) (MintWindowedCircuitBreakerV0, error) {
	var out MintWindowedCircuitBreakerV0
	err := codec.DecodeAccount(data, "MintWindowedCircuitBreakerV0", &out)
	return out, err
}

func DecodeAccountWindowedBreaker(data []byte) (AccountWindowedCircuitBreakerV0, error) {
	var out AccountWindowedCircuitBreakerV0
	err := codec.DecodeAccount(data, "AccountWindowedCircuitBreakerV0", &out)
	return out, err
}
