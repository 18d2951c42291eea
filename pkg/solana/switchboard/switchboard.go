// Package switchboard locates the lease accounts funding Switchboard
// aggregator updates.
package switchboard

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

type Cluster string

const (
	Devnet  Cluster = "devnet"
	Mainnet Cluster = "mainnet-beta"
)

var (
	DevnetProgramID  = solana.MustPublicKeyFromBase58("2TfB33aLaneQb5TNVwyDz3jSZXS6jdW2ARw1Dgf84XCG")
	MainnetProgramID = solana.MustPublicKeyFromBase58("SW1TCH7qEPTdLsDHRgPuMQjbQxKdH2aBStViMFnt64f")
)

const aggregatorAccountName = "AggregatorAccountData"

// queueOffset skips the discriminator, name, metadata and reserved fields of
// an aggregator account.
const queueOffset = 8 + 32 + 128 + 32

// ClusterFromEndpoint guesses the cluster served by an RPC endpoint.
func ClusterFromEndpoint(endpoint string) Cluster {
	if strings.Contains(endpoint, "devnet") {
		return Devnet
	}
	return Mainnet
}

func (c Cluster) ProgramID() solana.PublicKey {
	if c == Devnet {
		return DevnetProgramID
	}
	return MainnetProgramID
}

// AggregatorQueue reads the oracle queue an aggregator account reports to.
func AggregatorQueue(data []byte) (solana.PublicKey, error) {
	if _, err := codec.NewDiscriminator(aggregatorAccountName).Decode(data); err != nil {
		return solana.PublicKey{}, fmt.Errorf("decoding aggregator: %w", err)
	}
	if len(data) < queueOffset+solana.PublicKeyLength {
		return solana.PublicKey{}, fmt.Errorf("%w: aggregator account is %d bytes", codec.ErrInvalidEncoding, len(data))
	}
	return solana.PublicKeyFromBytes(data[queueOffset : queueOffset+solana.PublicKeyLength]), nil
}

// LeaseKey derives the lease account of aggregator on queue.
func LeaseKey(programID, queue, aggregator solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{[]byte("LeaseAccountData"), queue[:], aggregator[:]}, programID)
	return key, err
}
