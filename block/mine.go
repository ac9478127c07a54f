package block

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/hashcash"
)

// MineParams are the inputs to Mine.
type MineParams struct {
	Index                   int64
	Difficulty              int64
	PreviousTotalDifficulty *big.Int
	Miner                   *account.Address
	PreviousHash            *account.Hash
	Timestamp               time.Time
	Transactions            []Transaction
}

// Mine searches for a nonce satisfying Difficulty and returns the
// resulting Block.
//
// Recomputing the whole header dict on every nonce attempt would mean
// re-encoding every field just to change one byte string. Instead, the
// nonce's encoded form (its ASCII-decimal length, ':', the nonce bytes
// itself) is the only part of SerializeForHash's output that varies
// between attempts, and a bencode dict's key order is fixed, so that
// span sits at a single fixed offset in the dict's bytes regardless of
// nonce length: encoding the empty nonce and a one-byte nonce and
// diffing their outputs locates it directly, because the encoded empty
// byte string is always the two bytes "0:".
func Mine(ctx context.Context, p MineParams) (*Block, error) {
	idSorted := sortByID(p.Transactions)
	txHash := computeTxHash(idSorted)

	base := BlockHeader{
		Index:        p.Index,
		Difficulty:   p.Difficulty,
		Miner:        p.Miner,
		PreviousHash: p.PreviousHash,
		Timestamp:    p.Timestamp,
		TxHash:       txHash,
	}

	emptyHeader := base
	emptyHeader.Nonce = []byte{}
	emptyStamp := emptyHeader.SerializeForHash(nil)

	oneByteHeader := base
	oneByteHeader.Nonce = []byte{0}
	oneByteStamp := oneByteHeader.SerializeForHash(nil)

	offset := longestCommonPrefix(emptyStamp, oneByteStamp)
	prefix := append([]byte(nil), emptyStamp[:offset]...)
	suffix := append([]byte(nil), emptyStamp[offset+2:]...)

	stamp := func(nonce []byte) []byte {
		out := make([]byte, 0, len(prefix)+len(suffix)+len(nonce)+8)
		out = append(out, prefix...)
		out = strconv.AppendInt(out, int64(len(nonce)), 10)
		out = append(out, ':')
		out = append(out, nonce...)
		out = append(out, suffix...)
		return out
	}

	nonce, err := hashcash.Answer(ctx, stamp, p.Difficulty)
	if err != nil {
		return nil, err
	}

	totalDifficulty := big.NewInt(p.Difficulty)
	if p.PreviousTotalDifficulty != nil {
		totalDifficulty = new(big.Int).Add(p.PreviousTotalDifficulty, totalDifficulty)
	}

	return NewBlock(NewBlockParams{
		Index:           p.Index,
		Difficulty:      p.Difficulty,
		TotalDifficulty: totalDifficulty,
		Nonce:           nonce,
		Miner:           p.Miner,
		PreviousHash:    p.PreviousHash,
		Timestamp:       p.Timestamp,
		Transactions:    p.Transactions,
	})
}

func longestCommonPrefix(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
