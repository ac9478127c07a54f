// Package hashcash implements the block core's proof-of-work primitive:
// a SHA-256 digest function and a nonce search that finds the smallest
// nonce satisfying a difficulty target.
package hashcash

import (
	"context"
	"crypto/sha256"
	"errors"
	"math/big"
)

// ErrCancelled is returned by Answer when ctx is cancelled before a
// satisfying nonce is found. No partial result is returned alongside it.
var ErrCancelled = errors.New("hashcash: search cancelled")

// pollInterval bounds how often Answer checks ctx between hash attempts.
// Checking on every attempt would dominate runtime at high difficulty;
// checking too rarely would make cancellation unresponsive.
const pollInterval = 2048

// Hash returns the SHA-256 digest of b.
func Hash(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// StampFunc builds the byte buffer to hash for a candidate nonce.
type StampFunc func(nonce []byte) []byte

// Answer searches, in order of increasing nonce length and then
// increasing big-endian value within a length, for the first nonce such
// that Hash(stamp(nonce)) interpreted as a big-endian unsigned integer
// is strictly less than 2^256 / difficulty. difficulty <= 0 is treated
// as "any nonce satisfies" and returns immediately with an empty nonce.
//
// ctx is polled at bounded intervals; on cancellation Answer returns
// ErrCancelled with no nonce.
func Answer(ctx context.Context, stamp StampFunc, difficulty int64) ([]byte, error) {
	if difficulty <= 0 {
		return []byte{}, nil
	}
	threshold := Threshold(difficulty)

	nonce := []byte{}
	attempts := 0
	for {
		digest := Hash(stamp(nonce))
		if Satisfies(digest, threshold) {
			return nonce, nil
		}

		attempts++
		if attempts%pollInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ErrCancelled
			default:
			}
		}

		next, overflow := incrementNonce(nonce)
		if overflow {
			nonce = make([]byte, len(nonce)+1)
		} else {
			nonce = next
		}
	}
}

// Threshold returns 2^256 / difficulty as used by Satisfies.
func Threshold(difficulty int64) *big.Int {
	max := new(big.Int).Lsh(big.NewInt(1), 256)
	return new(big.Int).Div(max, big.NewInt(difficulty))
}

// Satisfies reports whether digest, read as a big-endian unsigned
// integer, is strictly less than threshold.
func Satisfies(digest [32]byte, threshold *big.Int) bool {
	v := new(big.Int).SetBytes(digest[:])
	return v.Cmp(threshold) < 0
}

// incrementNonce treats nonce as a big-endian unsigned counter and
// returns the next value. overflow is true when every byte wrapped
// around to zero, meaning the caller must grow the nonce by one byte.
func incrementNonce(nonce []byte) (next []byte, overflow bool) {
	next = append([]byte(nil), nonce...)
	for i := len(next) - 1; i >= 0; i-- {
		if next[i] != 0xff {
			next[i]++
			return next, false
		}
		next[i] = 0
	}
	return next, true
}
