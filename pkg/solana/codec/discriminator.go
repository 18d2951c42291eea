package codec

import (
	"bytes"
	"crypto/sha256"
	"fmt"
)

const discriminatorLength = 8

// Discriminator is the 8 byte prefix Anchor writes before account data and
// instruction arguments.
type Discriminator struct {
	hashPrefix []byte
}

// NewDiscriminator returns the account discriminator for the account type name.
func NewDiscriminator(name string) Discriminator {
	return newDiscriminator("account:" + name)
}

// NewInstructionDiscriminator returns the discriminator of a global
// instruction, name is the snake case instruction name.
func NewInstructionDiscriminator(name string) Discriminator {
	return newDiscriminator("global:" + name)
}

func newDiscriminator(preimage string) Discriminator {
	sum := sha256.Sum256([]byte(preimage))
	return Discriminator{hashPrefix: sum[:discriminatorLength]}
}

func (d Discriminator) Bytes() []byte {
	out := make([]byte, discriminatorLength)
	copy(out, d.hashPrefix)
	return out
}

// Encode appends the discriminator to into. A non nil raw value must match it.
func (d Discriminator) Encode(raw *[]byte, into []byte) ([]byte, error) {
	// inject if not specified
	if raw == nil {
		return append(into, d.hashPrefix...), nil
	}
	if !bytes.Equal(*raw, d.hashPrefix) {
		return nil, fmt.Errorf("%w: expected %x got %x", ErrInvalidDiscriminator, d.hashPrefix, *raw)
	}
	return append(into, *raw...), nil
}

// Decode checks the discriminator at the start of encoded and returns the
// remaining bytes.
func (d Discriminator) Decode(encoded []byte) ([]byte, error) {
	if len(encoded) < discriminatorLength {
		return nil, fmt.Errorf("%w: %d bytes is too short for a discriminator", ErrInvalidEncoding, len(encoded))
	}
	raw := encoded[:discriminatorLength]
	if !bytes.Equal(raw, d.hashPrefix) {
		return nil, fmt.Errorf("%w: expected %x got %x", ErrInvalidDiscriminator, d.hashPrefix, raw)
	}
	return encoded[discriminatorLength:], nil
}

func (d Discriminator) Size() int {
	return discriminatorLength
}
