package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

func TestBreakerKeys(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	key, err := MintWindowedBreakerKey(mint)
	require.NoError(t, err)
	expected, _, err := solana.FindProgramAddress([][]byte{[]byte("mint_windowed_breaker"), mint[:]}, ProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, key)

	accountKey, err := AccountWindowedBreakerKey(mint)
	require.NoError(t, err)
	assert.NotEqual(t, key, accountKey)
}

func TestDecodeMintWindowedBreaker(t *testing.T) {
	in := MintWindowedCircuitBreakerV0{
		Mint:          solana.NewWallet().PublicKey(),
		Authority:     solana.NewWallet().PublicKey(),
		MintAuthority: solana.NewWallet().PublicKey(),
		Config: WindowedCircuitBreakerConfigV0{
			WindowSizeSeconds: 86400,
			ThresholdType:     ThresholdAbsolute,
			Threshold:         5_000,
		},
		LastWindow: WindowV0{LastAggregatedValue: 1_200, LastUnixTimestamp: 1_670_000_000},
		BumpSeed:   254,
	}
	data, err := codec.EncodeAccount("MintWindowedCircuitBreakerV0", in)
	require.NoError(t, err)

	out, err := DecodeMintWindowedBreaker(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = DecodeAccountWindowedBreaker(data)
	require.True(t, errors.Is(err, codec.ErrInvalidDiscriminator))
}

func TestDecodeAccountWindowedBreaker(t *testing.T) {
	in := AccountWindowedCircuitBreakerV0{
		TokenAccount: solana.NewWallet().PublicKey(),
		Authority:    solana.NewWallet().PublicKey(),
		Owner:        solana.NewWallet().PublicKey(),
		Config: WindowedCircuitBreakerConfigV0{
			WindowSizeSeconds: 3600,
			ThresholdType:     ThresholdPercent,
			Threshold:         20,
		},
		LastWindow: WindowV0{LastAggregatedValue: 7, LastUnixTimestamp: 1},
		BumpSeed:   1,
	}
	data, err := codec.EncodeAccount("AccountWindowedCircuitBreakerV0", in)
	require.NoError(t, err)

	out, err := DecodeAccountWindowedBreaker(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestState(t *testing.T) {
	for _, tt := range []struct {
		name    string
		cfg     WindowedCircuitBreakerConfigV0
		level   uint64
		tripped bool
	}{
		{"absolute below", WindowedCircuitBreakerConfigV0{ThresholdType: ThresholdAbsolute, Threshold: 10}, 9, false},
		{"absolute reached", WindowedCircuitBreakerConfigV0{ThresholdType: ThresholdAbsolute, Threshold: 10}, 10, true},
		{"percent never trips", WindowedCircuitBreakerConfigV0{ThresholdType: ThresholdPercent, Threshold: 10}, 1_000, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := MintWindowedCircuitBreakerV0{Config: tt.cfg, LastWindow: WindowV0{LastAggregatedValue: tt.level}}.State()
			assert.Equal(t, tt.level, s.Level)
			assert.Equal(t, tt.cfg.Threshold, s.Limit)
			assert.Equal(t, tt.tripped, s.Tripped())
		})
	}
	assert.Equal(t, "absolute", ThresholdAbsolute.String())
}
