// Package statetrie is a bbolt-backed stand-in for the real state trie
// account.StateTrie describes. It exists so that block evaluation can be
// exercised against something durable in tests and examples without this
// repository owning the real trie implementation, which lives elsewhere.
package statetrie

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/big"

	bolt "go.etcd.io/bbolt"

	"ledgerchain.dev/core/account"
)

var (
	bucketState    = []byte("state_by_address")
	bucketBalances = []byte("balance_by_key")
)

// Trie is a durable account.StateTrie. State values are gob-encoded, so
// any concrete type a caller stores must be registered with
// encoding/gob (via gob.Register) before it round-trips through Put and
// Get.
type Trie struct {
	db *bolt.DB
}

// Open opens (creating if absent) a bbolt-backed trie at path.
func Open(path string) (*Trie, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("statetrie: open: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketState, bucketBalances} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("statetrie: create buckets: %w", err)
	}
	return &Trie{db: db}, nil
}

// Close releases the underlying database handle.
func (t *Trie) Close() error {
	if t == nil || t.db == nil {
		return nil
	}
	return t.db.Close()
}

// GetState implements account.StateTrie.
func (t *Trie) GetState(addr account.Address) (any, bool) {
	var raw []byte
	_ = t.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketState).Get(addr[:])
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if raw == nil {
		return nil, false
	}
	var value any
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&value); err != nil {
		return nil, false
	}
	return value, true
}

// PutState stores addr's state. value's concrete type must already be
// registered with encoding/gob.
func (t *Trie) PutState(addr account.Address, value any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&value); err != nil {
		return fmt.Errorf("statetrie: encode state: %w", err)
	}
	return t.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put(addr[:], buf.Bytes())
	})
}

// GetBalance implements account.StateTrie.
func (t *Trie) GetBalance(addr account.Address, currency account.Currency) account.Amount {
	key := balanceKey(addr, currency)
	var raw []byte
	_ = t.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketBalances).Get(key)
		if v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if raw == nil {
		return account.ZeroAmount(currency)
	}
	return account.Amount{Currency: currency, Quantity: new(big.Int).SetBytes(raw)}
}

// PutBalance stores addr's balance in amount.Currency.
func (t *Trie) PutBalance(addr account.Address, amount account.Amount) error {
	key := balanceKey(addr, amount.Currency)
	val := amount.Quantity.Bytes()
	return t.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBalances).Put(key, val)
	})
}

func balanceKey(addr account.Address, currency account.Currency) []byte {
	key := make([]byte, len(addr)+len(currency))
	copy(key, addr[:])
	copy(key[len(addr):], currency)
	return key
}
