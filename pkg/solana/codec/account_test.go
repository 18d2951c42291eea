package codec_test

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

type testAccount struct {
	Authority solana.PublicKey
	Amount    uint64
	Label     string
	Enabled   bool
	Limit     *uint32 `bin:"optional"`
	Keys      []solana.PublicKey
}

func TestDecodeAccount(t *testing.T) {
	limit := uint32(12)
	in := testAccount{
		Authority: solana.NewWallet().PublicKey(),
		Amount:    1_000_000,
		Label:     "treasury",
		Enabled:   true,
		Limit:     &limit,
		Keys:      []solana.PublicKey{solana.NewWallet().PublicKey()},
	}
	data, err := codec.EncodeAccount("TestAccountV0", in)
	require.NoError(t, err)
	assert.Equal(t, codec.NewDiscriminator("TestAccountV0").Bytes(), data[:8])

	var out testAccount
	require.NoError(t, codec.DecodeAccount(data, "TestAccountV0", &out))
	assert.Equal(t, in, out)

	t.Run("wrong account type", func(t *testing.T) {
		err := codec.DecodeAccount(data, "OtherAccountV0", &out)
		require.True(t, errors.Is(err, codec.ErrInvalidDiscriminator))
	})

	t.Run("truncated data", func(t *testing.T) {
		err := codec.DecodeAccount(data[:20], "TestAccountV0", &out)
		require.True(t, errors.Is(err, codec.ErrInvalidEncoding))
	})
}

func TestEncodeAccount(t *testing.T) {
	data, err := codec.EncodeAccount("TestAccountV0", testAccount{})
	require.NoError(t, err)
	assert.Equal(t, codec.NewDiscriminator("TestAccountV0").Bytes(), data[:8])
	var out testAccount
	require.NoError(t, codec.DecodeAccount(data, "TestAccountV0", &out))

	_, err = codec.EncodeAccount("BrokenV0", struct{ Hook func() }{Hook: func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding BrokenV0")
}

func TestDiscriminatorFilter(t *testing.T) {
	f := codec.DiscriminatorFilter("MakerV0")
	require.NotNil(t, f.Memcmp)
	assert.Equal(t, uint64(0), f.Memcmp.Offset)
	assert.Equal(t, solana.Base58(codec.NewDiscriminator("MakerV0").Bytes()), f.Memcmp.Bytes)
	assert.Zero(t, f.DataSize)
}

func FuzzDecodeAccount(f *testing.F) {
	valid, err := codec.EncodeAccount("TestAccountV0", testAccount{Label: "seed", Keys: []solana.PublicKey{{}}})
	require.NoError(f, err)
	f.Add(valid)
	f.Add([]byte{})
	f.Add(codec.NewDiscriminator("TestAccountV0").Bytes())
	f.Fuzz(func(t *testing.T, data []byte) {
		var out testAccount
		_ = codec.DecodeAccount(data, "TestAccountV0", &out)
	})
}
