package client

import (
	"regexp"
)

// SendErrorCode tells a sender what to do after a failed SendTx.
type SendErrorCode int

const (
	Successful SendErrorCode = iota
	// Retryable errors can succeed on a fresh blockhash or after a short wait.
	Retryable
	// Fatal errors will fail again with the same instructions and signers.
	Fatal
	InsufficientFunds
	Unsupported
	// AlreadyProcessed means the signature has landed, the send is done.
	AlreadyProcessed
	ExceedsComputeLimit
)

func (c SendErrorCode) String() string {
	switch c {
	case Successful:
		return "successful"
	case Retryable:
		return "retryable"
	case Fatal:
		return "fatal"
	case InsufficientFunds:
		return "insufficient_funds"
	case Unsupported:
		return "unsupported"
	case AlreadyProcessed:
		return "already_processed"
	case ExceedsComputeLimit:
		return "exceeds_compute_limit"
	}
	return "unknown"
}

// Solana transaction error messages
// https://github.com/anza-xyz/agave/blob/master/sdk/src/transaction/error.rs
var sendErrorPatterns = []struct {
	pattern *regexp.Regexp
	code    SendErrorCode
}{
	{regexp.MustCompile(`This transaction has already been processed`), AlreadyProcessed},
	{regexp.MustCompile(`Blockhash not found`), Retryable},
	{regexp.MustCompile(`Account in use`), Retryable},
	{regexp.MustCompile(`Transactions are currently disabled due to cluster maintenance`), Retryable},
	{regexp.MustCompile(`Program cache hit max limit`), Retryable},
	{regexp.MustCompile(`Insufficient funds for fee`), InsufficientFunds},
	{regexp.MustCompile(`Transaction results in an account \(\d+\) with insufficient funds for rent`), InsufficientFunds},
	{regexp.MustCompile(`Attempt to debit an account but found no record of a prior credit\.`), InsufficientFunds},
	{regexp.MustCompile(`This account may not be used to pay transaction fees`), Unsupported},
	{regexp.MustCompile(`Transaction version is unsupported`), Unsupported},
	{regexp.MustCompile(`Transaction would exceed max Block Cost Limit`), ExceedsComputeLimit},
	{regexp.MustCompile(`Transaction would exceed max account limit within the block`), ExceedsComputeLimit},
	{regexp.MustCompile(`exceeded CUs meter at BPF instruction`), ExceedsComputeLimit},
	{regexp.MustCompile(`Attempt to load a program that does not exist`), Fatal},
	{regexp.MustCompile(`Transaction did not pass signature verification`), Fatal},
	{regexp.MustCompile(`Transaction failed to sanitize accounts offsets correctly`), Fatal},
	{regexp.MustCompile(`Transaction contains a duplicate instruction \(\d+\) that is not allowed`), Fatal},
	{regexp.MustCompile(`Error processing Instruction \d+: .+`), Fatal},
	{regexp.MustCompile(`Transaction simulation failed`), Fatal},
}

// ClassifySendError maps a SendTx error to the action a sender should take.
// Unrecognized errors are treated as retryable.
func ClassifySendError(err error) SendErrorCode {
	if err == nil {
		return Successful
	}
	msg := err.Error()
	for _, p := range sendErrorPatterns {
		if p.pattern.MatchString(msg) {
			return p.code
		}
	}
	return Retryable
}
