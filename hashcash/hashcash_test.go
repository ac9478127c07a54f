package hashcash

import (
	"context"
	"testing"
	"time"
)

func TestAnswerZeroDifficultyIsImmediate(t *testing.T) {
	calls := 0
	stamp := func(nonce []byte) []byte {
		calls++
		return nonce
	}
	nonce, err := Answer(context.Background(), stamp, 0)
	if err != nil {
		t.Fatalf("Answer error: %v", err)
	}
	if len(nonce) != 0 {
		t.Fatalf("nonce = %x, want empty", nonce)
	}
	if calls != 0 {
		t.Fatalf("stamp called %d times, want 0", calls)
	}
}

func TestAnswerFindsSmallestLengthNonce(t *testing.T) {
	// difficulty 2 requires the top bit clear; trivially satisfied by
	// many nonces. The search must still return the smallest in the
	// length-then-value order, which here is the empty nonce whenever
	// the empty stamp already satisfies the target.
	stamp := func(nonce []byte) []byte {
		return append([]byte("prefix:"), nonce...)
	}
	nonce, err := Answer(context.Background(), stamp, 2)
	if err != nil {
		t.Fatalf("Answer error: %v", err)
	}
	digest := Hash(stamp(nonce))
	if !Satisfies(digest, Threshold(2)) {
		t.Fatalf("returned nonce %x does not satisfy difficulty", nonce)
	}
	// The nonce one byte shorter (its own prefix) must have failed the
	// check.
	if len(nonce) > 0 {
		shorter := nonce[:len(nonce)-1]
		if Satisfies(Hash(stamp(shorter)), Threshold(2)) {
			t.Fatalf("a shorter nonce %x also satisfies difficulty; search did not return the minimal one", shorter)
		}
	}
}

func TestAnswerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stamp := func(nonce []byte) []byte { return nonce }
	// Difficulty high enough that pollInterval attempts happen before a
	// solution is found in practice; cancellation is checked regardless
	// of whether a solution would eventually be found.
	_, err := Answer(ctx, stamp, 1<<62)
	if err != ErrCancelled {
		t.Fatalf("Answer error = %v, want ErrCancelled", err)
	}
}

func TestIncrementNonceSequence(t *testing.T) {
	nonce := []byte{}
	seen := make(map[string]bool)
	for i := 0; i < 300; i++ {
		seen[string(nonce)] = true
		next, overflow := incrementNonce(nonce)
		if overflow {
			nonce = make([]byte, len(nonce)+1)
		} else {
			nonce = next
		}
	}
	if !seen[""] {
		t.Fatalf("empty nonce never produced")
	}
	if !seen[string([]byte{0xff})] {
		t.Fatalf("single-byte max nonce never produced")
	}
	if !seen[string([]byte{0x00, 0x00})] {
		t.Fatalf("did not grow to two bytes")
	}
}

func TestAnswerRespectsDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	stamp := func(nonce []byte) []byte { return nonce }
	start := time.Now()
	_, err := Answer(ctx, stamp, 1<<62)
	if err != ErrCancelled {
		t.Fatalf("Answer error = %v, want ErrCancelled", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("Answer took too long to observe cancellation")
	}
}
