package block

import "fmt"

type ErrorCode string

const (
	ErrDecoding                  ErrorCode = "BLOCK_ERR_DECODING"
	ErrInvalidIndex              ErrorCode = "BLOCK_ERR_INVALID_INDEX"
	ErrInvalidDifficulty         ErrorCode = "BLOCK_ERR_INVALID_DIFFICULTY"
	ErrInvalidNonce              ErrorCode = "BLOCK_ERR_INVALID_NONCE"
	ErrInvalidTimestamp          ErrorCode = "BLOCK_ERR_INVALID_TIMESTAMP"
	ErrInvalidPreviousHash       ErrorCode = "BLOCK_ERR_INVALID_PREVIOUS_HASH"
	ErrInvalidTxHash             ErrorCode = "BLOCK_ERR_INVALID_TX_HASH"
	ErrInvalidTxSignature        ErrorCode = "TX_ERR_INVALID_SIGNATURE"
	ErrInvalidTxPublicKey        ErrorCode = "TX_ERR_INVALID_PUBLIC_KEY"
	ErrInvalidTxNonce            ErrorCode = "TX_ERR_INVALID_NONCE"
	ErrInvalidTxUpdatedAddresses ErrorCode = "TX_ERR_INVALID_UPDATED_ADDRESSES"
	ErrMinerRequired             ErrorCode = "BLOCK_ERR_MINER_REQUIRED"
	ErrCancelled                 ErrorCode = "BLOCK_ERR_CANCELLED"
)

// BlockError is the error carrier for the checks this package makes
// itself, from a wrongly sized hash field through a failing proof-of-work
// check to an action touching an address outside its declared set.
// Errors raised by other packages pass through unwrapped: a malformed
// encoding or missing wire field surfaces as a *codec.DecodingError, a
// cancelled Mine as hashcash.ErrCancelled, and a transaction's own
// Validate or action error as whatever that transaction returned.
type BlockError struct {
	Code ErrorCode
	Msg  string
}

func (e *BlockError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func blockerr(code ErrorCode, format string, args ...any) error {
	return &BlockError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
