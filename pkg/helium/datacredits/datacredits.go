// Package datacredits holds the data-credits program addresses.
package datacredits

import (
	"github.com/gagliardetto/solana-go"
)

var ProgramID = solana.MustPublicKeyFromBase58("credMBJhYFzfn7NxBMdU4aUqFggAjgztaCcv2Fo6fPT")

// AccountPayerKey derives the account paying rent for accounts created while
// burning data credits.
func AccountPayerKey() (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{[]byte("account_payer")}, ProgramID)
	return key, err
}

// DataCreditsKey derives the program config account of the dc mint.
func DataCreditsKey(dcMint solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{[]byte("dc"), dcMint[:]}, ProgramID)
	return key, err
}
