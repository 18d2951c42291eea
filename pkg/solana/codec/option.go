package codec

import (
	"encoding/binary"
	"math/big"

	bin "github.com/gagliardetto/binary"
)

// OptionalUint128 is a borsh Option<u128>. Fields with their own unmarshaler
// bypass the optional tag of gagliardetto/binary, so the option byte is read
// and written here.
type OptionalUint128 struct {
	Value *bin.Uint128
}

func SomeUint128(v bin.Uint128) OptionalUint128 {
	return OptionalUint128{Value: &v}
}

func (o OptionalUint128) IsSome() bool {
	return o.Value != nil
}

// BigInt returns nil when the option is empty.
func (o OptionalUint128) BigInt() *big.Int {
	if o.Value == nil {
		return nil
	}
	return o.Value.BigInt()
}

func (o OptionalUint128) String() string {
	if o.Value == nil {
		return "none"
	}
	return o.Value.String()
}

func (o *OptionalUint128) UnmarshalWithDecoder(dec *bin.Decoder) error {
	ok, err := dec.ReadOption()
	if err != nil {
		return err
	}
	if !ok {
		o.Value = nil
		return nil
	}
	v, err := dec.ReadUint128(binary.LittleEndian)
	if err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o OptionalUint128) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteOption(o.Value != nil); err != nil {
		return err
	}
	if o.Value == nil {
		return nil
	}
	return enc.WriteUint128(*o.Value, binary.LittleEndian)
}
