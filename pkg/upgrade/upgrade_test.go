package upgrade

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/helium/helium-ops/internal/cltest"
	"github.com/helium/helium-ops/internal/testutils"
	"github.com/helium/helium-ops/pkg/solana/bpfloader"
	"github.com/helium/helium-ops/pkg/solana/client"
	"github.com/helium/helium-ops/pkg/solana/client/mocks"
	"github.com/helium/helium-ops/pkg/solana/codec"
	"github.com/helium/helium-ops/pkg/solana/fees"
	"github.com/helium/helium-ops/pkg/solana/squads"
)

func TestOptions_Parse(t *testing.T) {
	program, buffer := cltest.RandomKey(), cltest.RandomKey()

	for _, tt := range []struct {
		name string
		opts Options
		err  error
	}{
		{"missing program", Options{BufferID: buffer.String()}, ErrMissingProgramID},
		{"missing buffer", Options{ProgramID: program.String()}, ErrMissingBufferID},
		{"bad program", Options{ProgramID: "not-a-key", BufferID: buffer.String()}, nil},
		{"bad multisig", Options{ProgramID: program.String(), BufferID: buffer.String(), Multisig: "0OIl"}, nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Parse()
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}

	p, err := Options{ProgramID: program.String(), BufferID: buffer.String(), AuthorityIndex: 1}.Parse()
	require.NoError(t, err)
	assert.Equal(t, program, p.ProgramID)
	assert.Equal(t, buffer, p.BufferID)
	assert.Nil(t, p.Multisig)
}

func TestParams_Authority(t *testing.T) {
	wallet, multisig := cltest.RandomKey(), cltest.RandomKey()

	authority, err := Params{}.Authority(wallet)
	require.NoError(t, err)
	assert.Equal(t, wallet, authority)

	authority, err = Params{Multisig: &multisig, AuthorityIndex: 1}.Authority(wallet)
	require.NoError(t, err)
	expected, err := squads.AuthorityKey(multisig, 1)
	require.NoError(t, err)
	assert.Equal(t, expected, authority)
}

func TestInstructions(t *testing.T) {
	p := Params{ProgramID: cltest.RandomKey(), BufferID: cltest.RandomKey()}
	authority := cltest.RandomKey()

	ixs, err := Instructions(KindIdl, p, authority, authority)
	require.NoError(t, err)
	require.Len(t, ixs, 2)
	for _, ix := range ixs {
		assert.Equal(t, p.ProgramID, ix.ProgramID())
	}

	ixs, err = Instructions(KindProgram, p, authority, authority)
	require.NoError(t, err)
	require.Len(t, ixs, 1)
	assert.Equal(t, solana.BPFLoaderUpgradeableProgramID, ixs[0].ProgramID())

	_, err = Instructions(Kind(7), p, authority, authority)
	require.Error(t, err)
}

type senderFixture struct {
	client *mocks.ReaderWriter
	wallet solana.PrivateKey
	sender *Sender
	out    *bytes.Buffer
	// programs invoked by each submitted transaction
	sent [][]solana.PublicKey
}

func newSenderFixture(t *testing.T) *senderFixture {
	wallet, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	f := &senderFixture{client: mocks.NewReaderWriter(t), wallet: wallet, out: &bytes.Buffer{}}
	f.sender = NewSender(f.client, wallet, 10*time.Millisecond, testutils.WaitTimeout(t), f.out, zerolog.Nop())
	return f
}

func (f *senderFixture) expectSends(t *testing.T) {
	f.client.On("LatestBlockhash", mock.Anything).Return(&rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash(cltest.RandomKey())},
	}, nil)
	f.client.On("SendTx", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		tx := args.Get(1).(*solana.Transaction)
		assert.NoError(t, tx.VerifySignatures())
		var programs []solana.PublicKey
		for _, ix := range tx.Message.Instructions {
			program, err := tx.Message.Program(ix.ProgramIDIndex)
			assert.NoError(t, err)
			programs = append(programs, program)
		}
		f.sent = append(f.sent, programs)
	}).Return(solana.Signature{1}, nil)
	f.client.On("SignatureStatuses", mock.Anything, mock.Anything).Return([]*rpc.SignatureStatusesResult{
		{ConfirmationStatus: rpc.ConfirmationStatusConfirmed},
	}, nil)
}

func (f *senderFixture) upgradeInstruction(t *testing.T) solana.Instruction {
	ix, err := bpfloader.NewUpgradeInstruction(cltest.RandomKey(), cltest.RandomKey(), f.wallet.PublicKey(), f.wallet.PublicKey())
	require.NoError(t, err)
	return ix
}

func TestRun_Wallet(t *testing.T) {
	f := newSenderFixture(t)
	f.expectSends(t)
	p := Params{ProgramID: cltest.RandomKey(), BufferID: cltest.RandomKey()}
	var out bytes.Buffer

	require.NoError(t, Run(testutils.Context(t), KindIdl, p, f.sender, &out))
	assert.Equal(t, f.wallet.PublicKey().String()+"\n", out.String())
	require.Len(t, f.sent, 1)
	assert.Equal(t, []solana.PublicKey{p.ProgramID, p.ProgramID}, f.sent[0])
	assert.NotEmpty(t, f.out.String())
}

func TestRun_Multisig(t *testing.T) {
	for _, execute := range []bool{false, true} {
		f := newSenderFixture(t)
		f.expectSends(t)
		multisig := cltest.RandomKey()
		data, err := codec.EncodeAccount("Ms", squads.Multisig{Threshold: 2, TransactionIndex: 4, Keys: []solana.PublicKey{f.wallet.PublicKey()}})
		require.NoError(t, err)
		f.client.On("AccountInfo", mock.Anything, multisig).Return(cltest.Account(multisig, squads.ProgramID, 1, 1, data), nil).Once()

		p := Params{ProgramID: cltest.RandomKey(), BufferID: cltest.RandomKey(), Multisig: &multisig, AuthorityIndex: 1, ExecuteTransaction: execute}
		var out bytes.Buffer
		require.NoError(t, Run(testutils.Context(t), KindIdl, p, f.sender, &out))

		authority, err := squads.AuthorityKey(multisig, 1)
		require.NoError(t, err)
		assert.Equal(t, authority.String()+"\n", out.String())

		// create, one add per instruction, activate and approve, then execute
		expected := 4
		if execute {
			expected = 5
		}
		require.Len(t, f.sent, expected)
		for _, programs := range f.sent {
			for _, program := range programs {
				assert.Equal(t, squads.ProgramID, program)
			}
		}
		assert.Len(t, f.sent[3], 2)
	}
}

func TestSender_WithBudget(t *testing.T) {
	f := newSenderFixture(t)
	f.expectSends(t)
	f.sender.WithBudget(fees.Budget{Price: 1_000, Limit: 200_000})

	ix := f.upgradeInstruction(t)
	_, err := f.sender.Send(testutils.Context(t), "upgrade-program", []solana.Instruction{ix})
	require.NoError(t, err)
	require.Len(t, f.sent, 1)
	assert.Equal(t, []solana.PublicKey{fees.ComputeBudgetProgram, fees.ComputeBudgetProgram, solana.BPFLoaderUpgradeableProgramID}, f.sent[0])
}

func TestRun_DryRun(t *testing.T) {
	f := newSenderFixture(t)
	p := Params{ProgramID: cltest.RandomKey(), BufferID: cltest.RandomKey(), DryRun: true}
	var out bytes.Buffer

	require.NoError(t, Run(testutils.Context(t), KindProgram, p, f.sender, &out))
	assert.NotEmpty(t, f.out.String())
	f.client.AssertNotCalled(t, "SendTx", mock.Anything, mock.Anything)
}

func TestSender_Retry(t *testing.T) {
	f := newSenderFixture(t)
	f.client.On("LatestBlockhash", mock.Anything).Return(&rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash(cltest.RandomKey())},
	}, nil)
	f.client.On("SendTx", mock.Anything, mock.Anything).Return(solana.Signature{}, errors.New("Blockhash not found")).Once()
	f.client.On("SendTx", mock.Anything, mock.Anything).Return(solana.Signature{2}, nil).Once()
	f.client.On("SignatureStatuses", mock.Anything, mock.Anything).Return([]*rpc.SignatureStatusesResult{nil}, nil).Once()
	f.client.On("SignatureStatuses", mock.Anything, mock.Anything).Return([]*rpc.SignatureStatusesResult{
		{ConfirmationStatus: rpc.ConfirmationStatusFinalized},
	}, nil).Once()

	sig, err := f.sender.Send(testutils.Context(t), "upgrade-program", []solana.Instruction{f.upgradeInstruction(t)})
	require.NoError(t, err)
	assert.Equal(t, solana.Signature{2}, sig)
}

func TestSender_Errors(t *testing.T) {
	t.Run("fatal send is not retried", func(t *testing.T) {
		f := newSenderFixture(t)
		ix := f.upgradeInstruction(t)
		f.client.On("LatestBlockhash", mock.Anything).Return(&rpc.GetLatestBlockhashResult{
			Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash(cltest.RandomKey())},
		}, nil).Once()
		f.client.On("SendTx", mock.Anything, mock.Anything).Return(solana.Signature{}, errors.New("Transaction simulation failed: custom program error")).Once()

		_, err := f.sender.Send(testutils.Context(t), "upgrade-program", []solana.Instruction{ix})
		require.Error(t, err)
		assert.Equal(t, client.Fatal, client.ClassifySendError(err))
	})

	t.Run("failed transaction", func(t *testing.T) {
		f := newSenderFixture(t)
		ix := f.upgradeInstruction(t)
		f.client.On("LatestBlockhash", mock.Anything).Return(&rpc.GetLatestBlockhashResult{
			Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash(cltest.RandomKey())},
		}, nil).Once()
		f.client.On("SendTx", mock.Anything, mock.Anything).Return(solana.Signature{3}, nil).Once()
		f.client.On("SignatureStatuses", mock.Anything, mock.Anything).Return([]*rpc.SignatureStatusesResult{
			{Err: map[string]interface{}{"InstructionError": []interface{}{0, "IncorrectAuthority"}}},
		}, nil).Once()

		_, err := f.sender.Send(testutils.Context(t), "upgrade-program", []solana.Instruction{ix})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "IncorrectAuthority")
	})

	t.Run("unknown signer", func(t *testing.T) {
		f := newSenderFixture(t)
		f.client.On("LatestBlockhash", mock.Anything).Return(&rpc.GetLatestBlockhashResult{
			Value: &rpc.LatestBlockhashResult{Blockhash: solana.Hash(cltest.RandomKey())},
		}, nil).Once()
		ix, err := bpfloader.NewUpgradeInstruction(cltest.RandomKey(), cltest.RandomKey(), cltest.RandomKey(), f.wallet.PublicKey())
		require.NoError(t, err)

		_, err = f.sender.Send(testutils.Context(t), "upgrade-program", []solana.Instruction{ix})
		require.Error(t, err)
		f.client.AssertNotCalled(t, "SendTx", mock.Anything, mock.Anything)
	})
}
