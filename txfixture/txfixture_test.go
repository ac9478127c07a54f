package txfixture

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/block"
	"ledgerchain.dev/core/crypto"
)

func newKeypair(t *testing.T) (priv, pub []byte, addr account.Address) {
	t.Helper()
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey error: %v", err)
	}
	provider := crypto.DevStdCryptoProvider{}
	pub = key.PubKey().SerializeCompressed()
	addr = addressFromPublicKey(provider, pub)
	return key.Serialize(), pub, addr
}

func TestTransactionSignAndValidate(t *testing.T) {
	provider := crypto.DevStdCryptoProvider{}
	priv, pub, from := newKeypair(t)
	recipient := account.Address{9}

	tx, err := New(provider, priv, pub, from, 0, []Action{
		{Kind: Transfer, Recipient: recipient, Currency: "USD", Amount: big.NewInt(10)},
	}, account.NewAddressSet(recipient, from))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestTransactionValidateRejectsTamperedSignature(t *testing.T) {
	provider := crypto.DevStdCryptoProvider{}
	priv, pub, from := newKeypair(t)

	tx, err := New(provider, priv, pub, from, 0, nil, account.AddressSet{})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	tx.signature[0] ^= 0xff
	if err := tx.Validate(); err == nil {
		t.Fatalf("expected Validate to reject a tampered signature")
	}
}

func TestEvaluateActionsGraduallyTransfersBalance(t *testing.T) {
	provider := crypto.DevStdCryptoProvider{}
	priv, pub, from := newKeypair(t)
	recipient := account.Address{9}

	tx, err := New(provider, priv, pub, from, 0, []Action{
		{Kind: Transfer, Recipient: recipient, Currency: "USD", Amount: big.NewInt(10)},
	}, account.NewAddressSet(recipient, from))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	stateGetter := func(account.Address) (any, bool) { return nil, false }
	balanceGetter := func(a account.Address, c account.Currency) account.Amount {
		if a == from && c == "USD" {
			return account.Amount{Currency: c, Quantity: big.NewInt(100)}
		}
		return account.ZeroAmount(c)
	}
	delta := account.NewAccountStateDelta(stateGetter, balanceGetter, from)

	var last account.OutputStates
	for ev, err := range tx.EvaluateActionsGradually(account.Hash{}, 1, delta, account.Address{}, nil) {
		if err != nil {
			t.Fatalf("evaluation error: %v", err)
		}
		last = ev.OutputStates
	}
	if last == nil {
		t.Fatalf("no evaluations produced")
	}
	got := last.GetBalance(recipient, "USD")
	if got.Quantity.Cmp(big.NewInt(10)) != 0 {
		t.Fatalf("recipient balance = %v, want 10", got.Quantity)
	}
	gotFrom := last.GetBalance(from, "USD")
	if gotFrom.Quantity.Cmp(big.NewInt(90)) != 0 {
		t.Fatalf("sender balance = %v, want 90", gotFrom.Quantity)
	}
}

func TestEvaluateActionsGraduallyRejectsInsufficientBalance(t *testing.T) {
	provider := crypto.DevStdCryptoProvider{}
	priv, pub, from := newKeypair(t)
	recipient := account.Address{9}

	tx, err := New(provider, priv, pub, from, 0, []Action{
		{Kind: Transfer, Recipient: recipient, Currency: "USD", Amount: big.NewInt(1000)},
	}, account.NewAddressSet(recipient, from))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	delta := account.NewAccountStateDelta(
		func(account.Address) (any, bool) { return nil, false },
		func(a account.Address, c account.Currency) account.Amount { return account.ZeroAmount(c) },
		from,
	)

	var sawErr bool
	for _, err := range tx.EvaluateActionsGradually(account.Hash{}, 1, delta, account.Address{}, nil) {
		if err != nil {
			sawErr = true
		}
	}
	if !sawErr {
		t.Fatalf("expected an insufficient-balance error")
	}
}

func TestMineAndEvaluateBlockWithFixtureTransactions(t *testing.T) {
	provider := crypto.DevStdCryptoProvider{}
	priv, pub, from := newKeypair(t)
	recipient := account.Address{9}
	miner := account.Address{1}
	prevHash := account.Hash{1}

	tx, err := New(provider, priv, pub, from, 0, []Action{
		{Kind: Transfer, Recipient: recipient, Currency: "USD", Amount: big.NewInt(5)},
	}, account.NewAddressSet(recipient, from))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	blk, err := block.Mine(context.Background(), block.MineParams{
		Index:        1,
		Difficulty:   2,
		Miner:        &miner,
		PreviousHash: &prevHash,
		Timestamp:    time.Now(),
		Transactions: []block.Transaction{tx},
	})
	if err != nil {
		t.Fatalf("Mine error: %v", err)
	}

	opts := block.EvaluateOptions{
		BalanceGetter: func(a account.Address, c account.Currency) account.Amount {
			if a == from && c == "USD" {
				return account.Amount{Currency: c, Quantity: big.NewInt(50)}
			}
			return account.ZeroAmount(c)
		},
	}
	evals, err := blk.Evaluate(time.Now(), opts)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("len(evals) = %d, want 1", len(evals))
	}

	data := blk.Serialize()
	decoded, err := block.Deserialize(data, NewDecoder(provider), nil)
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if err := decoded.Validate(time.Now()); err != nil {
		t.Fatalf("Validate decoded block: %v", err)
	}
}
