package block

import (
	"math/big"
	"time"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/codec"
	"ledgerchain.dev/core/hashcash"
)

// BlockHeader is the flat, transaction-free projection of a Block: every
// scalar field plus the three hashes that commit to the rest of it.
// SerializeForHash and Validate both operate purely on these fields, so
// a header can be checked for internal consistency without ever seeing
// the transaction list it commits to.
type BlockHeader struct {
	Index             int64
	Difficulty        int64
	TotalDifficulty   *big.Int
	Nonce             []byte
	Miner             *account.Address
	PreviousHash      *account.Hash
	Timestamp         time.Time
	TxHash            *account.Hash
	PreEvaluationHash account.Hash
	StateRootHash     *account.Hash
	Hash              account.Hash
}

// SerializeForHash returns the canonical dict §4.4 hashes to produce
// either the pre-evaluation hash (stateRootHash nil) or the final block
// hash (stateRootHash the block's own). Absent optional fields omit
// their key entirely rather than encoding a placeholder.
func (h BlockHeader) SerializeForHash(stateRootHash *account.Hash) []byte {
	d := codec.Dict{
		"difficulty": codec.Integer(h.Difficulty),
		"index":      codec.Integer(h.Index),
		"nonce":      codec.Bytes(h.Nonce),
		"timestamp":  codec.Bytes([]byte(formatTimestamp(h.Timestamp))),
	}
	if h.PreviousHash != nil {
		d["previous_hash"] = codec.Bytes(h.PreviousHash[:])
	}
	if h.Miner != nil {
		d["reward_beneficiary"] = codec.Bytes(h.Miner[:])
	}
	if stateRootHash != nil {
		d["state_root_hash"] = codec.Bytes(stateRootHash[:])
	}
	if h.TxHash != nil {
		d["transaction_fingerprint"] = codec.Bytes(h.TxHash[:])
	}
	return codec.Encode(d)
}

// Validate checks this header in isolation: the scalar invariants in
// §4.3 plus the proof-of-work check, which recomputes the pre-evaluation
// hash from the header's own fields and requires it both match the
// stored value and satisfy the declared difficulty. It does not touch
// the transaction list; Block.Validate layers tx_hash and ordering
// checks on top.
func (h BlockHeader) Validate(currentTime time.Time) error {
	if h.Index < 0 {
		return blockerr(ErrInvalidIndex, "index %d must be >= 0", h.Index)
	}
	if h.Difficulty < 0 {
		return blockerr(ErrInvalidDifficulty, "difficulty %d must be >= 0", h.Difficulty)
	}
	if (h.Difficulty == 0) != (h.Index == 0) {
		return blockerr(ErrInvalidDifficulty, "difficulty must be zero iff index is zero (index=%d difficulty=%d)", h.Index, h.Difficulty)
	}
	if h.Timestamp.After(currentTime.Add(15 * time.Second)) {
		return blockerr(ErrInvalidTimestamp, "timestamp %s is more than 15s ahead of %s", formatTimestamp(h.Timestamp), formatTimestamp(currentTime))
	}
	if h.Index > 0 && h.PreviousHash == nil {
		return blockerr(ErrInvalidPreviousHash, "previous_hash required when index > 0")
	}
	if h.Index == 0 && h.PreviousHash != nil {
		return blockerr(ErrInvalidPreviousHash, "previous_hash must be absent at genesis")
	}

	recomputed := hashcash.Hash(h.SerializeForHash(nil))
	if account.Hash(recomputed) != h.PreEvaluationHash {
		return blockerr(ErrInvalidNonce, "pre_evaluation_hash does not match the header's own fields")
	}
	if h.Difficulty > 0 && !hashcash.Satisfies(recomputed, hashcash.Threshold(h.Difficulty)) {
		return blockerr(ErrInvalidNonce, "nonce does not satisfy difficulty %d", h.Difficulty)
	}
	return nil
}

// toCanonicalValue is the wire-format header dict (§6): the scalar
// fields plus all four hashes, keyed differently from SerializeForHash
// since this dict is transport, not a hash preimage.
func (h BlockHeader) toCanonicalValue() codec.Dict {
	d := codec.Dict{
		"difficulty":          codec.Integer(h.Difficulty),
		"index":               codec.Integer(h.Index),
		"nonce":               codec.Bytes(h.Nonce),
		"timestamp":           codec.Bytes([]byte(formatTimestamp(h.Timestamp))),
		"hash":                codec.Bytes(h.Hash[:]),
		"pre_evaluation_hash": codec.Bytes(h.PreEvaluationHash[:]),
	}
	if h.PreviousHash != nil {
		d["previous_hash"] = codec.Bytes(h.PreviousHash[:])
	}
	if h.Miner != nil {
		d["reward_beneficiary"] = codec.Bytes(h.Miner[:])
	}
	if h.StateRootHash != nil {
		d["state_root_hash"] = codec.Bytes(h.StateRootHash[:])
	}
	if h.TxHash != nil {
		d["tx_hash"] = codec.Bytes(h.TxHash[:])
	}
	return d
}

func headerFromCanonicalValue(d codec.Dict) (BlockHeader, error) {
	var h BlockHeader

	difficulty, err := d.RequireInteger("difficulty")
	if err != nil {
		return h, err
	}
	index, err := d.RequireInteger("index")
	if err != nil {
		return h, err
	}
	nonce, err := d.RequireBytes("nonce")
	if err != nil {
		return h, err
	}
	timestampBytes, err := d.RequireBytes("timestamp")
	if err != nil {
		return h, err
	}
	timestamp, err := parseTimestamp(string(timestampBytes))
	if err != nil {
		return h, err
	}
	hashBytes, err := d.RequireBytes("hash")
	if err != nil {
		return h, err
	}
	preEvalBytes, err := d.RequireBytes("pre_evaluation_hash")
	if err != nil {
		return h, err
	}

	h.Difficulty = int64(difficulty)
	h.Index = int64(index)
	h.Nonce = append([]byte(nil), nonce...)
	h.Timestamp = timestamp
	if err := copyHash(&h.Hash, hashBytes); err != nil {
		return h, err
	}
	if err := copyHash(&h.PreEvaluationHash, preEvalBytes); err != nil {
		return h, err
	}

	if b, ok, err := d.GetBytes("previous_hash"); err != nil {
		return h, err
	} else if ok {
		var hv account.Hash
		if err := copyHash(&hv, b); err != nil {
			return h, err
		}
		h.PreviousHash = &hv
	}
	if b, ok, err := d.GetBytes("reward_beneficiary"); err != nil {
		return h, err
	} else if ok {
		var a account.Address
		if err := copyAddress(&a, b); err != nil {
			return h, err
		}
		h.Miner = &a
	}
	if b, ok, err := d.GetBytes("state_root_hash"); err != nil {
		return h, err
	} else if ok {
		var hv account.Hash
		if err := copyHash(&hv, b); err != nil {
			return h, err
		}
		h.StateRootHash = &hv
	}
	if b, ok, err := d.GetBytes("tx_hash"); err != nil {
		return h, err
	} else if ok {
		var hv account.Hash
		if err := copyHash(&hv, b); err != nil {
			return h, err
		}
		h.TxHash = &hv
	}

	return h, nil
}

func copyHash(dst *account.Hash, b []byte) error {
	if len(b) != len(dst) {
		return blockerr(ErrDecoding, "hash field is %d bytes, want %d", len(b), len(dst))
	}
	copy(dst[:], b)
	return nil
}

func copyAddress(dst *account.Address, b []byte) error {
	if len(b) != len(dst) {
		return blockerr(ErrDecoding, "address field is %d bytes, want %d", len(b), len(dst))
	}
	copy(dst[:], b)
	return nil
}
