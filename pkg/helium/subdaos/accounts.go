package subdaos

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

type EmissionScheduleItem struct {
	StartUnixTime     int64
	EmissionsPerEpoch uint64
}

type DaoV0 struct {
	HntMint          solana.PublicKey
	DcMint           solana.PublicKey
	Authority        solana.PublicKey
	NumSubDaos       uint32
	EmissionSchedule []EmissionScheduleItem
	BumpSeed         uint8
}

type SubDaoV0 struct {
	Dao                    solana.PublicKey
	DntMint                solana.PublicKey
	Treasury               solana.PublicKey
	RewardsEscrow          solana.PublicKey
	TotalDevices           uint64
	Authority              solana.PublicKey
	ActiveDeviceAggregator solana.PublicKey
	DcBurnAuthority        solana.PublicKey
	OnboardingDcFee        uint64
	EmissionSchedule       []EmissionScheduleItem
	BumpSeed               uint8
}

type SubDaoEpochInfoV0 struct {
	Epoch           uint64
	SubDao          solana.PublicKey
	DcBurned        uint64
	TotalDevices    uint64
	UtilityScore    codec.OptionalUint128
	RewardsIssuedAt *int64 `bin:"optional"`
	BumpSeed        uint8
}

type DaoEpochInfoV0 struct {
	Epoch                      uint64
	Dao                        solana.PublicKey
	TotalRewards               uint64
	NumUtilityScoresCalculated uint32
	TotalUtilityScore          bin.Uint128
	DoneCalculating            bool
	DoneIssuingRewards         bool
	BumpSeed                   uint8
}

func DecodeDao(data []byte) (DaoV0, error) {
	var out DaoV0
	err := codec.DecodeAccount(data, "DaoV0", &out)
	return out, err
}

func DecodeSubDao(data []byte) (SubDaoV0, error) {
	var out SubDaoV0
	err := codec.DecodeAccount(data, "SubDaoV0", &out)
	return out, err
}

func DecodeSubDaoEpochInfo(data []byte) (SubDaoEpochInfoV0, error) {
	var out SubDaoEpochInfoV0
	err := codec.DecodeAccount(data, "SubDaoEpochInfoV0", &out)
	return out, err
}

func DecodeDaoEpochInfo(data []byte) (DaoEpochInfoV0, error) {
	var out DaoEpochInfoV0
	err := codec.DecodeAccount(data, "DaoEpochInfoV0", &out)
	return out, err
}
