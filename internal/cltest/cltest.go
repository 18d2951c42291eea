package cltest

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/require"

	"github.com/helium/helium-ops/pkg/solana/client"
)

// Chain specific fixtures for monitor and CLI tests.

// RandomKey returns a fresh random public key.
func RandomKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// MintData returns the SPL token layout of a mint with the given supply and decimals.
func MintData(t testing.TB, supply uint64, decimals uint8) []byte {
	return encode(t, token.Mint{
		Supply:        supply,
		Decimals:      decimals,
		IsInitialized: true,
	})
}

// TokenAccountData returns the SPL token layout of a token account.
func TokenAccountData(t testing.TB, mint, owner solana.PublicKey, amount uint64) []byte {
	return encode(t, token.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  token.Initialized,
	})
}

// Account wraps data in a client.Account owned by owner.
func Account(addr, owner solana.PublicKey, slot, lamports uint64, data []byte) client.Account {
	return client.Account{
		Address:  addr,
		Slot:     slot,
		Lamports: lamports,
		Owner:    owner,
		Data:     data,
	}
}

func encode(t testing.TB, v bin.BinaryMarshaler) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, v.MarshalWithEncoder(bin.NewBinEncoder(buf)))
	return buf.Bytes()
}
