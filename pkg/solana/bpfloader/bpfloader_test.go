package bpfloader

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpgradeInstruction(t *testing.T) {
	program := solana.NewWallet().PublicKey()
	buffer := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	ix, err := NewUpgradeInstruction(program, buffer, authority, authority)
	require.NoError(t, err)
	assert.Equal(t, solana.BPFLoaderUpgradeableProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 0, 0, 0}, data)

	programData, err := ProgramDataKey(program)
	require.NoError(t, err)
	accounts := ix.Accounts()
	require.Len(t, accounts, 7)
	assert.Equal(t, solana.Meta(programData).WRITE(), accounts[0])
	assert.Equal(t, solana.Meta(program).WRITE(), accounts[1])
	assert.Equal(t, solana.Meta(buffer).WRITE(), accounts[2])
	assert.Equal(t, solana.Meta(authority).WRITE(), accounts[3])
	assert.Equal(t, solana.SysVarRentPubkey, accounts[4].PublicKey)
	assert.Equal(t, solana.SysVarClockPubkey, accounts[5].PublicKey)
	assert.Equal(t, solana.Meta(authority).SIGNER(), accounts[6])
}

func TestProgramDataKey(t *testing.T) {
	program := solana.NewWallet().PublicKey()
	key, err := ProgramDataKey(program)
	require.NoError(t, err)
	expected, _, err := solana.FindProgramAddress([][]byte{program[:]}, solana.BPFLoaderUpgradeableProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, key)
}
