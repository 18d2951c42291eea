package entitymanager

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/helium/helium-ops/pkg/solana/client"
	"github.com/helium/helium-ops/pkg/solana/client/mocks"
	"github.com/helium/helium-ops/pkg/solana/codec"
)

func makerAccount(t *testing.T, name string) client.Account {
	data, err := codec.EncodeAccount("MakerV0", MakerV0{
		IssuingAuthority: solana.NewWallet().PublicKey(),
		Name:             name,
	})
	require.NoError(t, err)
	return client.Account{Address: solana.NewWallet().PublicKey(), Owner: ProgramID, Data: data}
}

func TestListMakers(t *testing.T) {
	ctx := context.Background()
	reader := mocks.NewReaderWriter(t)
	good := makerAccount(t, "Helium Mobile")
	bad := client.Account{Address: solana.NewWallet().PublicKey(), Data: []byte{1, 2, 3}}
	reader.On("ProgramAccounts", mock.Anything, ProgramID, codec.DiscriminatorFilter("MakerV0")).
		Return([]client.Account{good, bad}, nil).Once()

	makers, err := ListMakers(ctx, reader)
	require.Len(t, makers, 1)
	assert.Equal(t, good.Address, makers[0].Address)
	assert.Equal(t, "Helium Mobile", makers[0].Name)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.Contains(t, err.Error(), bad.Address.String())
}

func TestListMakers_RPCError(t *testing.T) {
	reader := mocks.NewReaderWriter(t)
	reader.On("ProgramAccounts", mock.Anything, ProgramID, mock.Anything).
		Return(nil, errors.New("rpc down")).Once()

	makers, err := ListMakers(context.Background(), reader)
	require.Error(t, err)
	assert.Nil(t, makers)
}

func TestMakerKey(t *testing.T) {
	dao := solana.NewWallet().PublicKey()
	key, err := MakerKey(dao, "Nova Labs")
	require.NoError(t, err)
	expected, _, err := solana.FindProgramAddress([][]byte{[]byte("maker"), dao[:], []byte("Nova Labs")}, ProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, key)
}
