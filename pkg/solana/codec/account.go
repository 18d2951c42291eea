package codec

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// DecodeAccount checks the discriminator of the Anchor account type name and
// borsh decodes the remaining data into v.
func DecodeAccount(data []byte, name string, v interface{}) error {
	body, err := NewDiscriminator(name).Decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	if err = bin.NewBorshDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding %s: %s", ErrInvalidEncoding, name, err)
	}
	return nil
}

// EncodeAccount is the inverse of DecodeAccount, mostly useful to build
// fixtures.
func EncodeAccount(name string, v interface{}) ([]byte, error) {
	body, err := bin.MarshalBorsh(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	out, err := NewDiscriminator(name).Encode(nil, make([]byte, 0, discriminatorLength+len(body)))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return append(out, body...), nil
}

// DiscriminatorFilter matches program accounts of the Anchor account type name.
func DiscriminatorFilter(name string) rpc.RPCFilter {
	return rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: 0,
			Bytes:  solana.Base58(NewDiscriminator(name).Bytes()),
		},
	}
}
