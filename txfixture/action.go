// Package txfixture is a reference Transaction implementation: a
// signer-authenticated, multi-action transaction over the account
// model the block package evaluates against. It exists to exercise
// and test the block package end to end; a production system supplies
// its own Transaction that knows its own action semantics.
package txfixture

import (
	"fmt"
	"math/big"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/codec"
)

// Kind identifies what an Action does.
type Kind int

const (
	// Transfer moves Amount of Currency from the transaction's signer
	// to Recipient.
	Transfer Kind = iota
	// SetData writes Data to the account state at DataKey.
	SetData
)

// Action is one effect a Transaction applies, in order, against the
// account state.
type Action struct {
	Kind      Kind
	Recipient account.Address
	Currency  account.Currency
	Amount    *big.Int
	DataKey   account.Address
	Data      string
}

func (a Action) toCanonicalValue() codec.Value {
	switch a.Kind {
	case Transfer:
		amount := a.Amount
		if amount == nil {
			amount = big.NewInt(0)
		}
		return codec.Dict{
			"kind":      codec.Bytes("transfer"),
			"recipient": codec.Bytes(a.Recipient[:]),
			"currency":  codec.Bytes([]byte(a.Currency)),
			"amount":    codec.Bytes(amount.Bytes()),
		}
	case SetData:
		return codec.Dict{
			"kind": codec.Bytes("set_data"),
			"key":  codec.Bytes(a.DataKey[:]),
			"data": codec.Bytes([]byte(a.Data)),
		}
	default:
		panic("txfixture: unknown action kind")
	}
}

func actionFromCanonicalValue(v codec.Value) (Action, error) {
	d, ok := v.(codec.Dict)
	if !ok {
		return Action{}, fmt.Errorf("txfixture: action is not a dict")
	}
	kindBytes, err := d.RequireBytes("kind")
	if err != nil {
		return Action{}, err
	}
	switch string(kindBytes) {
	case "transfer":
		recipientBytes, err := d.RequireBytes("recipient")
		if err != nil {
			return Action{}, err
		}
		currencyBytes, err := d.RequireBytes("currency")
		if err != nil {
			return Action{}, err
		}
		amountBytes, err := d.RequireBytes("amount")
		if err != nil {
			return Action{}, err
		}
		var recipient account.Address
		if len(recipientBytes) != len(recipient) {
			return Action{}, fmt.Errorf("txfixture: recipient is %d bytes, want %d", len(recipientBytes), len(recipient))
		}
		copy(recipient[:], recipientBytes)
		return Action{
			Kind:      Transfer,
			Recipient: recipient,
			Currency:  account.Currency(currencyBytes),
			Amount:    new(big.Int).SetBytes(amountBytes),
		}, nil
	case "set_data":
		keyBytes, err := d.RequireBytes("key")
		if err != nil {
			return Action{}, err
		}
		dataBytes, err := d.RequireBytes("data")
		if err != nil {
			return Action{}, err
		}
		var key account.Address
		if len(keyBytes) != len(key) {
			return Action{}, fmt.Errorf("txfixture: data key is %d bytes, want %d", len(keyBytes), len(key))
		}
		copy(key[:], keyBytes)
		return Action{Kind: SetData, DataKey: key, Data: string(dataBytes)}, nil
	default:
		return Action{}, fmt.Errorf("txfixture: unknown action kind %q", kindBytes)
	}
}

func applyAction(delta *account.AccountStateDelta, signer account.Address, a Action) (*account.AccountStateDelta, error) {
	switch a.Kind {
	case Transfer:
		from := delta.GetBalance(signer, a.Currency)
		if from.Quantity.Cmp(a.Amount) < 0 {
			return nil, fmt.Errorf("txfixture: insufficient %s balance: have %s, need %s", a.Currency, from.Quantity, a.Amount)
		}
		to := delta.GetBalance(a.Recipient, a.Currency)
		delta = delta.SetBalance(signer, account.Amount{Currency: a.Currency, Quantity: new(big.Int).Sub(from.Quantity, a.Amount)})
		delta = delta.SetBalance(a.Recipient, account.Amount{Currency: a.Currency, Quantity: new(big.Int).Add(to.Quantity, a.Amount)})
		return delta, nil
	case SetData:
		return delta.SetState(a.DataKey, a.Data), nil
	default:
		return nil, fmt.Errorf("txfixture: unknown action kind %d", a.Kind)
	}
}
