package block

import (
	"iter"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/codec"
)

// Transaction is the contract a block's payload must satisfy. The block
// core only ever needs to order, hash, and replay transactions; it has
// no opinion on what an action is or does. A concrete implementation
// (see txfixture for a reference one) supplies the rest.
type Transaction interface {
	// ID is this transaction's content-addressed identifier, used both
	// for §4.4 ordering and for the id sort that fixes the order of the
	// tx_hash list.
	ID() account.Hash

	// Signer is the account that authored this transaction.
	Signer() account.Address

	// Nonce orders same-signer transactions within a block.
	Nonce() int64

	// UpdatedAddresses is the set of addresses this transaction
	// declares it may write to. Evaluate rejects a transaction whose
	// actions touch any address outside this set.
	UpdatedAddresses() account.AddressSet

	// Validate performs structural/signature checks that do not
	// require chain state: well-formedness, signature verification
	// against the declared signer, anything checkable in isolation.
	Validate() error

	// Serialize returns this transaction's own canonical wire bytes.
	// When signed is false, the signature field (if any) is omitted,
	// the form a transaction is hashed in before it carries a
	// signature.
	Serialize(signed bool) []byte

	// ToCanonicalValue is Serialize without the final encode step,
	// used by the block to fold each transaction's signed form into the
	// list it hashes for tx_hash.
	ToCanonicalValue(signed bool) codec.Value

	// EvaluateActionsGradually runs this transaction's actions one at
	// a time against initialDelta, yielding one ActionEvaluation per
	// action as it completes. The sequence stops at the first action
	// that returns an error, yielding that error as its final element.
	EvaluateActionsGradually(
		preEvaluationHash account.Hash,
		blockIndex int64,
		initialDelta *account.AccountStateDelta,
		miner account.Address,
		previousStates account.StateTrie,
	) iter.Seq2[ActionEvaluation, error]
}

// ActionEvaluation is one action's result within a transaction's
// evaluation sequence: the resulting account-state delta plus the
// signer it belongs to, the shape Block.Evaluate accumulates.
type ActionEvaluation struct {
	Signer       account.Address
	BlockIndex   int64
	OutputStates account.OutputStates
}

// TxActionEvaluation pairs an ActionEvaluation with the transaction that
// produced it, the shape Block.EvaluateActionsPerTx streams.
type TxActionEvaluation struct {
	Transaction Transaction
	Evaluation  ActionEvaluation
}

// TransactionDecoder parses a transaction's own wire bytes, as embedded
// in a RawBlock's transaction list. Decode has no way to know what a
// transaction looks like on the wire; the caller supplies this.
type TransactionDecoder func(raw []byte, signed bool) (Transaction, error)
