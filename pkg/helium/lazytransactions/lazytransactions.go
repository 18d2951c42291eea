// Package lazytransactions holds the lazy-transactions program addresses.
package lazytransactions

import (
	"github.com/gagliardetto/solana-go"
)

var ProgramID = solana.MustPublicKeyFromBase58("1atrmQs3eq1N2FEYWu6tyTXbCjP4uQwExpjtnhXtS8h")

// LazySignerKey derives the signer executing the lazy transactions of name.
func LazySignerKey(name string) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{[]byte("lazy_signer"), []byte(name)}, ProgramID)
	return key, err
}
