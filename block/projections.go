package block

import (
	"math/big"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/codec"
)

// RawBlock is the wire projection of a Block (§4.8, §6): the header
// dict plus each transaction's own signed bytes, in id order rather
// than the §4.4 evaluation order, so that the wire form doesn't change
// shape depending on which block a transaction happened to land in.
type RawBlock struct {
	Header           BlockHeader
	TransactionBytes [][]byte
}

// ToRawBlock projects b into its wire form.
func (b *Block) ToRawBlock() RawBlock {
	idSorted := sortByID(b.Transactions)
	txBytes := make([][]byte, len(idSorted))
	for i, tx := range idSorted {
		txBytes[i] = tx.Serialize(true)
	}
	return RawBlock{Header: b.Header, TransactionBytes: txBytes}
}

func (r RawBlock) toCanonicalValue() codec.Dict {
	txs := make(codec.List, len(r.TransactionBytes))
	for i, tb := range r.TransactionBytes {
		txs[i] = codec.Bytes(tb)
	}
	return codec.Dict{
		"header":       r.Header.toCanonicalValue(),
		"transactions": txs,
	}
}

// BlockDigest is the lightweight projection of a Block used when the
// full transaction bodies aren't needed: the header plus each
// transaction's id, in the block's §4.4 evaluation order.
type BlockDigest struct {
	Header BlockHeader
	TxIDs  []account.Hash
}

// ToBlockDigest projects b into its digest form.
func (b *Block) ToBlockDigest() BlockDigest {
	ids := make([]account.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		ids[i] = tx.ID()
	}
	return BlockDigest{Header: b.Header, TxIDs: ids}
}

// Serialize returns b's canonical wire bytes. The length is memoised on
// first call; Deserialize seeds it directly since it already has the
// bytes in hand.
func (b *Block) Serialize() []byte {
	out := codec.Encode(b.ToRawBlock().toCanonicalValue())
	b.mu.Lock()
	if !b.bytesLenSet {
		b.bytesLen = len(out)
		b.bytesLenSet = true
	}
	b.mu.Unlock()
	return out
}

// BytesLength returns b's serialized length, computing and caching it
// via Serialize if it hasn't been already.
func (b *Block) BytesLength() int {
	b.mu.Lock()
	set := b.bytesLenSet
	length := b.bytesLen
	b.mu.Unlock()
	if set {
		return length
	}
	b.Serialize()
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bytesLen
}

// Deserialize parses a RawBlock's wire bytes back into a Block.
//
// total_difficulty is never part of a block's own wire form: it is
// cumulative chain state, not a property of the block in isolation.
// previousTotalDifficulty should be the caller's chain-level bookkeeping
// for the block this one builds on; passing nil leaves TotalDifficulty
// holding only this block's own difficulty.
func Deserialize(data []byte, decodeTx TransactionDecoder, previousTotalDifficulty *big.Int) (*Block, error) {
	v, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	dict, ok := v.(codec.Dict)
	if !ok {
		return nil, blockerr(ErrDecoding, "block must be a dict")
	}

	headerDict, err := dict.RequireDict("header")
	if err != nil {
		return nil, err
	}
	header, err := headerFromCanonicalValue(headerDict)
	if err != nil {
		return nil, err
	}

	txList, err := dict.RequireList("transactions")
	if err != nil {
		return nil, err
	}
	txs := make([]Transaction, len(txList))
	for i, v := range txList {
		raw, ok := v.(codec.Bytes)
		if !ok {
			return nil, blockerr(ErrDecoding, "transaction %d is not a byte string", i)
		}
		tx, err := decodeTx(raw, true)
		if err != nil {
			return nil, err
		}
		txs[i] = tx
	}

	totalDifficulty := big.NewInt(header.Difficulty)
	if previousTotalDifficulty != nil {
		totalDifficulty = new(big.Int).Add(previousTotalDifficulty, totalDifficulty)
	}

	return NewBlock(NewBlockParams{
		Index:             header.Index,
		Difficulty:        header.Difficulty,
		TotalDifficulty:   totalDifficulty,
		Nonce:             header.Nonce,
		Miner:             header.Miner,
		PreviousHash:      header.PreviousHash,
		Timestamp:         header.Timestamp,
		Transactions:      txs,
		PreEvaluationHash: &header.PreEvaluationHash,
		StateRootHash:     header.StateRootHash,
		BytesLength:       len(data),
	})
}
