// Package codec encodes and decodes Anchor program data: 8 byte account and
// instruction discriminators followed by borsh serialized fields.
package codec

import "errors"

var (
	ErrInvalidType          = errors.New("invalid type")
	ErrInvalidEncoding      = errors.New("invalid encoding")
	ErrInvalidDiscriminator = errors.New("invalid discriminator")
)
