// Package account defines the account-model contracts the block core
// evaluates transactions against: addresses, currencies, balances, and
// the account-state delta that threads state across a block's actions.
// The state trie and the concrete Transaction implementation are
// external collaborators; this package only fixes their shape.
package account

import "math/big"

// Address is a 20-byte account identifier.
type Address [20]byte

// Bytes returns a's bytes as a freshly allocated slice, safe to use
// after a itself goes out of scope.
func (a Address) Bytes() []byte {
	out := make([]byte, len(a))
	copy(out, a[:])
	return out
}

// Hash is a 32-byte digest, used for transaction ids and block hashes.
type Hash [32]byte

// Bytes returns h's bytes as a freshly allocated slice, safe to use
// after h itself goes out of scope.
func (h Hash) Bytes() []byte {
	out := make([]byte, len(h))
	copy(out, h[:])
	return out
}

// Currency identifies a unit of value. The block core treats it as an
// opaque comparable key; how a currency is minted or priced is entirely
// a concern of the Transaction/action implementation.
type Currency string

// Amount pairs a quantity with the currency it denominates.
type Amount struct {
	Currency Currency
	Quantity *big.Int
}

// ZeroAmount returns the zero amount of c.
func ZeroAmount(c Currency) Amount {
	return Amount{Currency: c, Quantity: big.NewInt(0)}
}

// StateGetter looks up an address's raw account state. The default used
// by Block.Evaluate returns (nil, false) for every address.
type StateGetter func(Address) (any, bool)

// BalanceGetter looks up an address's balance in a currency. The default
// used by Block.Evaluate returns the zero amount for every query.
type BalanceGetter func(Address, Currency) Amount

// AddressSet is an unordered set of addresses, used for UpdatedAddresses
// on both Transaction and AccountStateDelta.
type AddressSet map[Address]struct{}

// NewAddressSet builds an AddressSet from the given addresses.
func NewAddressSet(addrs ...Address) AddressSet {
	s := make(AddressSet, len(addrs))
	for _, a := range addrs {
		s[a] = struct{}{}
	}
	return s
}

// Contains reports whether a is a member of s.
func (s AddressSet) Contains(a Address) bool {
	_, ok := s[a]
	return ok
}

// Union returns a new set containing every address in s or other.
func (s AddressSet) Union(other AddressSet) AddressSet {
	out := make(AddressSet, len(s)+len(other))
	for a := range s {
		out[a] = struct{}{}
	}
	for a := range other {
		out[a] = struct{}{}
	}
	return out
}

// Subtract returns the addresses in s that are not in other.
func (s AddressSet) Subtract(other AddressSet) AddressSet {
	out := make(AddressSet, len(s))
	for a := range s {
		if !other.Contains(a) {
			out[a] = struct{}{}
		}
	}
	return out
}

// IsSubsetOf reports whether every address in s is also in other.
func (s AddressSet) IsSubsetOf(other AddressSet) bool {
	for a := range s {
		if !other.Contains(a) {
			return false
		}
	}
	return true
}

// StateTrie is the post-execution state/balance store a Transaction
// consults while evaluating its actions. Its real implementation (a
// merkle-ish trie keyed by address) lives outside this repository;
// internal/statetrie provides a minimal stand-in for tests.
type StateTrie interface {
	GetState(Address) (any, bool)
	GetBalance(Address, Currency) Amount
}
