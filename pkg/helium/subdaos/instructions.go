package subdaos

import (
	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/helium/circuitbreaker"
	"github.com/helium/helium-ops/pkg/solana/codec"
)

type CalculateUtilityScoreArgsV0 struct {
	Epoch uint64
}

type IssueRewardsArgsV0 struct {
	Epoch uint64
}

type CalculateUtilityScoreAccounts struct {
	Payer  solana.PublicKey
	Dao    solana.PublicKey
	SubDao solana.PublicKey
}

// NewCalculateUtilityScoreV0Instruction computes the utility score of a
// sub-DAO for epoch and adds it to the DAO total.
func NewCalculateUtilityScoreV0Instruction(epoch uint64, accounts CalculateUtilityScoreAccounts) (solana.Instruction, error) {
	daoEpochInfo, err := DaoEpochInfoKey(accounts.Dao, epoch)
	if err != nil {
		return nil, err
	}
	subDaoEpochInfo, err := SubDaoEpochInfoKey(accounts.SubDao, epoch)
	if err != nil {
		return nil, err
	}
	data, err := codec.EncodeInstructionData("calculate_utility_score_v0", CalculateUtilityScoreArgsV0{Epoch: epoch})
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(accounts.Payer).SIGNER().WRITE(),
		solana.Meta(accounts.Dao),
		solana.Meta(accounts.SubDao).WRITE(),
		solana.Meta(daoEpochInfo).WRITE(),
		solana.Meta(subDaoEpochInfo).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.SysVarClockPubkey),
	}, data), nil
}

type IssueRewardsAccounts struct {
	Dao      solana.PublicKey
	SubDao   solana.PublicKey
	HntMint  solana.PublicKey
	Treasury solana.PublicKey
}

// NewIssueRewardsV0Instruction mints the sub-DAO share of the epoch emissions
// into its treasury, through the treasury mint circuit breaker.
func NewIssueRewardsV0Instruction(epoch uint64, accounts IssueRewardsAccounts) (solana.Instruction, error) {
	daoEpochInfo, err := DaoEpochInfoKey(accounts.Dao, epoch)
	if err != nil {
		return nil, err
	}
	subDaoEpochInfo, err := SubDaoEpochInfoKey(accounts.SubDao, epoch)
	if err != nil {
		return nil, err
	}
	hntBreaker, err := circuitbreaker.MintWindowedBreakerKey(accounts.HntMint)
	if err != nil {
		return nil, err
	}
	data, err := codec.EncodeInstructionData("issue_rewards_v0", IssueRewardsArgsV0{Epoch: epoch})
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(accounts.Dao),
		solana.Meta(accounts.SubDao).WRITE(),
		solana.Meta(daoEpochInfo).WRITE(),
		solana.Meta(subDaoEpochInfo).WRITE(),
		solana.Meta(hntBreaker).WRITE(),
		solana.Meta(accounts.HntMint).WRITE(),
		solana.Meta(accounts.Treasury).WRITE(),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(circuitbreaker.ProgramID),
		solana.Meta(solana.SysVarClockPubkey),
	}, data), nil
}
