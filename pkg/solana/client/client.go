package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/helium/helium-ops/pkg/solana/config"
	"github.com/helium/helium-ops/pkg/solana/logger"
)

const (
	DevnetGenesisHash  = "EtWTRABZaYq6iMfeYKouRu166VU2xqa1wcaWoxPkrZBG"
	TestnetGenesisHash = "4uhcVJyU9pJkvQyS88uRDiswHXSCkY3zQawwpjk2NsNY"
	MainnetGenesisHash = "5eykt4UsFv8P8NJdTREpY1vzqKqZKvdpKuc147dw2N9d"
)

// ErrAccountNotFound is returned by AccountInfo when the address holds no account.
var ErrAccountNotFound = errors.New("account not found")

// Account is a point-in-time copy of an on-chain account.
type Account struct {
	Address    solana.PublicKey
	Slot       uint64
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
}

// Exists reports whether the account holds lamports. Accounts drained to zero
// lamports are purged by the runtime.
func (a Account) Exists() bool {
	return a.Lamports > 0
}

//go:generate mockery --name ReaderWriter --output ./mocks/
type ReaderWriter interface {
	Writer
	Reader
}

type Reader interface {
	AccountReader
	Balance(ctx context.Context, addr solana.PublicKey) (uint64, error)
	TokenSupply(ctx context.Context, mint solana.PublicKey) (*rpc.UiTokenAmount, error)
	TokenAccountBalance(ctx context.Context, account solana.PublicKey) (*rpc.UiTokenAmount, error)
	ProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...rpc.RPCFilter) ([]Account, error)
	LatestBlockhash(ctx context.Context) (*rpc.GetLatestBlockhashResult, error)
	ChainID(ctx context.Context) (string, error)
}

// AccountReader is the narrow read surface used by the account watcher.
type AccountReader interface {
	AccountInfo(ctx context.Context, addr solana.PublicKey) (Account, error)
}

type Writer interface {
	SendTx(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	SignatureStatuses(ctx context.Context, sigs []solana.Signature) ([]*rpc.SignatureStatusesResult, error)
}

var _ ReaderWriter = (*Client)(nil)

type Client struct {
	rpc             *rpc.Client
	skipPreflight   bool // to enable or disable preflight checks
	commitment      rpc.CommitmentType
	contextDuration time.Duration
	log             logger.Logger

	// provides a duplicate function call suppression mechanism
	requestGroup *singleflight.Group
}

func NewClient(endpoint string, cfg config.Config, log logger.Logger) *Client {
	return &Client{
		rpc:             rpc.New(endpoint),
		skipPreflight:   cfg.SkipPreflight(),
		commitment:      cfg.Commitment(),
		contextDuration: cfg.ReadTimeout(),
		log:             log,
		requestGroup:    &singleflight.Group{},
	}
}

func (c *Client) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	v, err, _ := c.requestGroup.Do(fmt.Sprintf("GetBalance(%s)", addr.String()), func() (interface{}, error) {
		return c.rpc.GetBalance(ctx, addr, c.commitment)
	})
	if err != nil {
		return 0, errors.Wrap(err, "error in GetBalance")
	}
	res := v.(*rpc.GetBalanceResult)
	return res.Value, nil
}

func (c *Client) AccountInfo(ctx context.Context, addr solana.PublicKey) (Account, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	v, err, _ := c.requestGroup.Do(fmt.Sprintf("GetAccountInfo(%s)", addr.String()), func() (interface{}, error) {
		return c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: c.commitment,
		})
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return Account{Address: addr}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, errors.Wrapf(err, "error in GetAccountInfo for %s", addr)
	}
	res := v.(*rpc.GetAccountInfoResult)
	if res == nil || res.Value == nil {
		return Account{Address: addr}, ErrAccountNotFound
	}
	return accountFromRPC(addr, res.Context.Slot, res.Value), nil
}

func (c *Client) TokenSupply(ctx context.Context, mint solana.PublicKey) (*rpc.UiTokenAmount, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	res, err := c.rpc.GetTokenSupply(ctx, mint, c.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "error in GetTokenSupply")
	}
	if res == nil || res.Value == nil {
		return nil, errors.New("nil pointer in GetTokenSupply")
	}
	return res.Value, nil
}

func (c *Client) TokenAccountBalance(ctx context.Context, account solana.PublicKey) (*rpc.UiTokenAmount, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	res, err := c.rpc.GetTokenAccountBalance(ctx, account, c.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "error in GetTokenAccountBalance")
	}
	if res == nil || res.Value == nil {
		return nil, errors.New("nil pointer in GetTokenAccountBalance")
	}
	return res.Value, nil
}

// ProgramAccounts lists every account owned by program matching all filters.
func (c *Client) ProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...rpc.RPCFilter) ([]Account, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	res, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, &rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
		Filters:    filters,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error in GetProgramAccounts")
	}
	accounts := make([]Account, 0, len(res))
	for _, keyed := range res {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		accounts = append(accounts, accountFromRPC(keyed.Pubkey, 0, keyed.Account))
	}
	return accounts, nil
}

func (c *Client) LatestBlockhash(ctx context.Context) (*rpc.GetLatestBlockhashResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	v, err, _ := c.requestGroup.Do("GetLatestBlockhash", func() (interface{}, error) {
		return c.rpc.GetLatestBlockhash(ctx, c.commitment)
	})
	if err != nil {
		return nil, errors.Wrap(err, "error in GetLatestBlockhash")
	}
	return v.(*rpc.GetLatestBlockhashResult), nil
}

func (c *Client) ChainID(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()
	v, err, _ := c.requestGroup.Do("GetGenesisHash", func() (interface{}, error) {
		return c.rpc.GetGenesisHash(ctx)
	})
	if err != nil {
		return "", errors.Wrap(err, "error in GetGenesisHash")
	}
	hash := v.(solana.Hash)

	var network string
	switch hash.String() {
	case DevnetGenesisHash:
		network = "devnet"
	case TestnetGenesisHash:
		network = "testnet"
	case MainnetGenesisHash:
		network = "mainnet"
	default:
		c.log.Warnf("unknown genesis hash - assuming solana chain is 'localnet'")
		network = "localnet"
	}
	return network, nil
}

func (c *Client) SendTx(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	opts := rpc.TransactionOpts{
		SkipPreflight:       c.skipPreflight,
		PreflightCommitment: c.commitment,
	}
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, opts)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "error in SendTransactionWithOpts")
	}
	return sig, nil
}

// https://docs.solana.com/developing/clients/jsonrpc-api#getsignaturestatuses
func (c *Client) SignatureStatuses(ctx context.Context, sigs []solana.Signature) ([]*rpc.SignatureStatusesResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.contextDuration)
	defer cancel()

	// searchTransactionHistory = false
	res, err := c.rpc.GetSignatureStatuses(ctx, false, sigs...)
	if err != nil {
		return nil, errors.Wrap(err, "error in GetSignatureStatuses")
	}

	if res == nil || res.Value == nil {
		return nil, errors.New("nil pointer in GetSignatureStatuses")
	}
	return res.Value, nil
}

func accountFromRPC(addr solana.PublicKey, slot uint64, acc *rpc.Account) Account {
	var data []byte
	if acc.Data != nil {
		data = acc.Data.GetBinary()
	}
	return Account{
		Address:    addr,
		Slot:       slot,
		Lamports:   acc.Lamports,
		Owner:      acc.Owner,
		Data:       data,
		Executable: acc.Executable,
	}
}
