package block

import (
	"bytes"
	"math/big"
	"sort"
	"sync"
	"time"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/codec"
	"ledgerchain.dev/core/hashcash"
)

// Block is a mined (or re-wrapped) block: a header plus its
// transactions in the §4.4 evaluation order.
type Block struct {
	Header       BlockHeader
	Transactions []Transaction

	mu          sync.Mutex
	bytesLen    int
	bytesLenSet bool
}

// NewBlockParams are the inputs to NewBlock. PreEvaluationHash and
// StateRootHash are both optional: when PreEvaluationHash is nil it is
// computed fresh from the other fields (the path an unmined draft block
// takes, and the path Mine takes, recomputing it from the nonce its
// proof-of-work search found); when supplied, it is trusted as-is, the
// path Deserialize (which read it off the wire) takes. Hash is always
// computed fresh.
type NewBlockParams struct {
	Index             int64
	Difficulty        int64
	TotalDifficulty   *big.Int
	Nonce             []byte
	Miner             *account.Address
	PreviousHash      *account.Hash
	Timestamp         time.Time
	Transactions      []Transaction
	PreEvaluationHash *account.Hash
	StateRootHash     *account.Hash
	BytesLength       int
}

// NewBlock builds a Block from its parts: it sorts transactions by id
// to compute tx_hash, derives (or trusts) the pre-evaluation hash,
// computes the final hash, and reorders the transactions per §4.4.
func NewBlock(p NewBlockParams) (*Block, error) {
	idSorted := sortByID(p.Transactions)
	txHash := computeTxHash(idSorted)

	header := BlockHeader{
		Index:        p.Index,
		Difficulty:   p.Difficulty,
		Nonce:        p.Nonce,
		Miner:        p.Miner,
		PreviousHash: p.PreviousHash,
		Timestamp:    p.Timestamp,
		TxHash:       txHash,
	}
	if p.TotalDifficulty != nil {
		header.TotalDifficulty = new(big.Int).Set(p.TotalDifficulty)
	}

	if p.PreEvaluationHash != nil {
		header.PreEvaluationHash = *p.PreEvaluationHash
	} else {
		header.PreEvaluationHash = account.Hash(hashcash.Hash(header.SerializeForHash(nil)))
	}
	header.StateRootHash = p.StateRootHash
	header.Hash = account.Hash(hashcash.Hash(header.SerializeForHash(header.StateRootHash)))

	ordered := reorderBySignerXOR(idSorted, header.PreEvaluationHash)

	b := &Block{Header: header, Transactions: ordered}
	if p.BytesLength > 0 {
		b.bytesLen = p.BytesLength
		b.bytesLenSet = true
	}
	return b, nil
}

// sortByID returns a new slice of txs ordered by ascending id.
func sortByID(txs []Transaction) []Transaction {
	out := append([]Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ID(), out[j].ID()
		return bytes.Compare(a[:], b[:]) < 0
	})
	return out
}

// computeTxHash hashes the signed canonical forms of the id-sorted
// transactions, encoded as a list. An empty transaction list has no
// tx_hash at all.
func computeTxHash(idSorted []Transaction) *account.Hash {
	if len(idSorted) == 0 {
		return nil
	}
	values := make(codec.List, 0, len(idSorted))
	for _, tx := range idSorted {
		values = append(values, tx.ToCanonicalValue(true))
	}
	h := account.Hash(hashcash.Hash(codec.Encode(values)))
	return &h
}

// reorderBySignerXOR implements §4.4: group id-sorted transactions by
// signer, compute each signer's flattened_txid as the XOR of its
// members' ids, order signers ascending by flattened_txid XOR
// preEvaluationHash, and order each signer's own transactions ascending
// by nonce.
func reorderBySignerXOR(idSorted []Transaction, preEvaluationHash account.Hash) []Transaction {
	groups := map[account.Address][]Transaction{}
	var signers []account.Address
	for _, tx := range idSorted {
		s := tx.Signer()
		if _, ok := groups[s]; !ok {
			signers = append(signers, s)
		}
		groups[s] = append(groups[s], tx)
	}

	type signerKey struct {
		signer account.Address
		key    [32]byte
	}
	keys := make([]signerKey, 0, len(signers))
	for _, s := range signers {
		var flattened [32]byte
		for _, tx := range groups[s] {
			id := tx.ID()
			for i := range flattened {
				flattened[i] ^= id[i]
			}
		}
		var key [32]byte
		for i := range key {
			key[i] = flattened[i] ^ preEvaluationHash[i]
		}
		keys = append(keys, signerKey{signer: s, key: key})
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].key[:], keys[j].key[:]) < 0
	})

	out := make([]Transaction, 0, len(idSorted))
	for _, k := range keys {
		group := append([]Transaction(nil), groups[k.signer]...)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Nonce() < group[j].Nonce()
		})
		out = append(out, group...)
	}
	return out
}

func hashPtrEqual(a, b *account.Hash) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Validate checks structural validity: the header in isolation, every
// transaction in isolation, that tx_hash matches the transactions
// actually carried, and that the transactions are in §4.4 order for
// this block's own pre-evaluation hash. It does not evaluate actions;
// Evaluate does that after calling Validate itself.
func (b *Block) Validate(currentTime time.Time) error {
	if err := b.Header.Validate(currentTime); err != nil {
		return err
	}
	for _, tx := range b.Transactions {
		if err := tx.Validate(); err != nil {
			return err
		}
	}

	idSorted := sortByID(b.Transactions)
	expectedTxHash := computeTxHash(idSorted)
	if !hashPtrEqual(expectedTxHash, b.Header.TxHash) {
		return blockerr(ErrInvalidTxHash, "tx_hash does not match the block's transactions")
	}

	expectedOrder := reorderBySignerXOR(idSorted, b.Header.PreEvaluationHash)
	if len(expectedOrder) != len(b.Transactions) {
		return blockerr(ErrInvalidTxHash, "transaction count changed during ordering check")
	}
	for i := range expectedOrder {
		if expectedOrder[i].ID() != b.Transactions[i].ID() {
			return blockerr(ErrInvalidTxHash, "transactions are not in canonical §4.4 order")
		}
	}
	return nil
}
