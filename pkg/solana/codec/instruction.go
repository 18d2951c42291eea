package codec

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// EncodeInstructionData builds Anchor instruction data: the global
// discriminator of name followed by each argument borsh encoded in order.
func EncodeInstructionData(name string, args ...interface{}) ([]byte, error) {
	buf := bytes.NewBuffer(NewInstructionDiscriminator(name).Bytes())
	enc := bin.NewBorshEncoder(buf)
	for i, arg := range args {
		if err := enc.Encode(arg); err != nil {
			return nil, fmt.Errorf("encoding argument %d of %s: %w", i, name, err)
		}
	}
	return buf.Bytes(), nil
}
