package txfixture

import (
	"fmt"

	"ledgerchain.dev/core/account"
	"ledgerchain.dev/core/block"
	"ledgerchain.dev/core/codec"
	"ledgerchain.dev/core/crypto"
)

// NewDecoder returns a block.TransactionDecoder that parses the wire
// form Transaction.Serialize produces, verifying nothing itself — the
// caller is expected to call Validate on the result, as block.Validate
// already does for every transaction in a block.
func NewDecoder(provider crypto.Provider) block.TransactionDecoder {
	return func(raw []byte, signed bool) (block.Transaction, error) {
		v, err := codec.Decode(raw)
		if err != nil {
			return nil, err
		}
		d, ok := v.(codec.Dict)
		if !ok {
			return nil, fmt.Errorf("txfixture: transaction is not a dict")
		}

		fromBytes, err := d.RequireBytes("from")
		if err != nil {
			return nil, err
		}
		nonce, err := d.RequireInteger("nonce")
		if err != nil {
			return nil, err
		}
		actionsList, err := d.RequireList("actions")
		if err != nil {
			return nil, err
		}
		updatedList, err := d.RequireList("updated_addresses")
		if err != nil {
			return nil, err
		}
		publicKey, err := d.RequireBytes("public_key")
		if err != nil {
			return nil, err
		}

		var from account.Address
		if len(fromBytes) != len(from) {
			return nil, fmt.Errorf("txfixture: from is %d bytes, want %d", len(fromBytes), len(from))
		}
		copy(from[:], fromBytes)

		actions := make([]Action, len(actionsList))
		for i, av := range actionsList {
			a, err := actionFromCanonicalValue(av)
			if err != nil {
				return nil, err
			}
			actions[i] = a
		}

		declared := account.AddressSet{}
		for _, uv := range updatedList {
			ub, ok := uv.(codec.Bytes)
			if !ok {
				return nil, fmt.Errorf("txfixture: updated_addresses element is not a byte string")
			}
			var a account.Address
			if len(ub) != len(a) {
				return nil, fmt.Errorf("txfixture: updated address is %d bytes, want %d", len(ub), len(a))
			}
			copy(a[:], ub)
			declared[a] = struct{}{}
		}

		tx := &Transaction{
			from:      from,
			nonce:     int64(nonce),
			actions:   actions,
			declared:  declared,
			publicKey: append([]byte(nil), publicKey...),
			provider:  provider,
		}

		if signed {
			sigBytes, err := d.RequireBytes("signature")
			if err != nil {
				return nil, err
			}
			tx.signature = append([]byte(nil), sigBytes...)
		}
		tx.id = account.Hash(provider.SHA3_256(tx.Serialize(true)))

		return tx, nil
	}
}
