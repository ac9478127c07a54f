package txfixture

import (
	"bytes"
	"iter"
	"sort"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/block"
	"ledgerchain.dev/core/codec"
	"ledgerchain.dev/core/crypto"
)

// Transaction is a signer-authenticated sequence of Actions: a
// reference payload for the block package's Transaction interface.
type Transaction struct {
	id        account.Hash
	from      account.Address
	nonce     int64
	actions   []Action
	declared  account.AddressSet
	publicKey []byte
	signature []byte
	provider  crypto.Provider
}

// New builds and signs a Transaction. privateKey/publicKey are a
// secp256k1 keypair as DevStdCryptoProvider expects; from must be the
// address addressFromPublicKey derives from publicKey.
func New(provider crypto.Provider, privateKey, publicKey []byte, from account.Address, nonce int64, actions []Action, declared account.AddressSet) (*Transaction, error) {
	tx := &Transaction{
		from:      from,
		nonce:     nonce,
		actions:   actions,
		declared:  declared,
		publicKey: publicKey,
		provider:  provider,
	}

	digest := provider.SHA3_256(tx.Serialize(false))
	sig, err := provider.Sign(privateKey, digest)
	if err != nil {
		return nil, err
	}
	tx.signature = sig
	tx.id = account.Hash(provider.SHA3_256(tx.Serialize(true)))
	return tx, nil
}

func (tx *Transaction) ID() account.Hash                     { return tx.id }
func (tx *Transaction) Signer() account.Address              { return tx.from }
func (tx *Transaction) Nonce() int64                         { return tx.nonce }
func (tx *Transaction) UpdatedAddresses() account.AddressSet { return tx.declared }

// Validate checks the signature and the address/public-key binding;
// it does no action evaluation and consults no chain state.
func (tx *Transaction) Validate() error {
	expected := addressFromPublicKey(tx.provider, tx.publicKey)
	if expected != tx.from {
		return &block.BlockError{Code: block.ErrInvalidTxPublicKey, Msg: "signer address does not match public key"}
	}
	digest := tx.provider.SHA3_256(tx.Serialize(false))
	if !tx.provider.Verify(tx.publicKey, digest, tx.signature) {
		return &block.BlockError{Code: block.ErrInvalidTxSignature, Msg: "signature does not verify"}
	}
	if tx.nonce < 0 {
		return &block.BlockError{Code: block.ErrInvalidTxNonce, Msg: "nonce must be >= 0"}
	}
	return nil
}

func (tx *Transaction) ToCanonicalValue(signed bool) codec.Value {
	actions := make(codec.List, len(tx.actions))
	for i, a := range tx.actions {
		actions[i] = a.toCanonicalValue()
	}

	addrs := make([]account.Address, 0, len(tx.declared))
	for a := range tx.declared {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return bytes.Compare(addrs[i][:], addrs[j][:]) < 0 })
	updated := make(codec.List, len(addrs))
	for i, a := range addrs {
		updated[i] = codec.Bytes(a[:])
	}

	d := codec.Dict{
		"from":              codec.Bytes(tx.from[:]),
		"nonce":             codec.Integer(tx.nonce),
		"actions":           actions,
		"updated_addresses": updated,
		"public_key":        codec.Bytes(tx.publicKey),
	}
	if signed {
		d["signature"] = codec.Bytes(tx.signature)
	}
	return d
}

func (tx *Transaction) Serialize(signed bool) []byte {
	return codec.Encode(tx.ToCanonicalValue(signed))
}

// EvaluateActionsGradually applies this transaction's actions in order
// against initialDelta. previousStates and miner are accepted to
// satisfy block.Transaction but unused by this reference
// implementation, which neither reads prior-block state nor pays the
// miner.
func (tx *Transaction) EvaluateActionsGradually(
	preEvaluationHash account.Hash,
	blockIndex int64,
	initialDelta *account.AccountStateDelta,
	miner account.Address,
	previousStates account.StateTrie,
) iter.Seq2[block.ActionEvaluation, error] {
	return func(yield func(block.ActionEvaluation, error) bool) {
		delta := initialDelta
		for _, a := range tx.actions {
			next, err := applyAction(delta, tx.from, a)
			if err != nil {
				yield(block.ActionEvaluation{}, err)
				return
			}
			delta = next
			ev := block.ActionEvaluation{Signer: tx.from, BlockIndex: blockIndex, OutputStates: delta}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

func addressFromPublicKey(provider crypto.Provider, pubkey []byte) account.Address {
	h := provider.SHA3_256(pubkey)
	var a account.Address
	copy(a[:], h[:len(a)])
	return a
}
