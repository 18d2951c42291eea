package switchboard

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

func TestClusterFromEndpoint(t *testing.T) {
	assert.Equal(t, Devnet, ClusterFromEndpoint("https://api.devnet.solana.com"))
	assert.Equal(t, Mainnet, ClusterFromEndpoint("https://api.mainnet-beta.solana.com"))
	assert.Equal(t, Mainnet, ClusterFromEndpoint("https://rpc.helium.io"))
	assert.Equal(t, DevnetProgramID, Devnet.ProgramID())
	assert.Equal(t, MainnetProgramID, Mainnet.ProgramID())
}

func TestAggregatorQueue(t *testing.T) {
	queue := solana.NewWallet().PublicKey()
	data := codec.NewDiscriminator("AggregatorAccountData").Bytes()
	data = append(data, make([]byte, 32+128+32)...)
	data = append(data, queue[:]...)
	data = append(data, make([]byte, 64)...)

	got, err := AggregatorQueue(data)
	require.NoError(t, err)
	assert.Equal(t, queue, got)

	_, err = AggregatorQueue(data[:queueOffset+10])
	require.ErrorIs(t, err, codec.ErrInvalidEncoding)

	_, err = AggregatorQueue(append([]byte{0}, data[1:]...))
	require.ErrorIs(t, err, codec.ErrInvalidDiscriminator)
}

func TestLeaseKey(t *testing.T) {
	queue := solana.NewWallet().PublicKey()
	aggregator := solana.NewWallet().PublicKey()
	lease, err := LeaseKey(MainnetProgramID, queue, aggregator)
	require.NoError(t, err)
	expected, _, err := solana.FindProgramAddress([][]byte{[]byte("LeaseAccountData"), queue[:], aggregator[:]}, MainnetProgramID)
	require.NoError(t, err)
	assert.Equal(t, expected, lease)

	devnetLease, err := LeaseKey(DevnetProgramID, queue, aggregator)
	require.NoError(t, err)
	assert.NotEqual(t, lease, devnetLease)
}
