package account

// OutputStates is the read surface an AccountStateDelta exposes once an
// action has run: the getters the next action (or the next transaction)
// should see, plus the set of addresses it touched.
type OutputStates interface {
	GetState(Address) (any, bool)
	GetBalance(Address, Currency) Amount
	UpdatedAddresses() AddressSet
}

// AccountStateDelta is an immutable snapshot of state/balance writes
// layered on top of a base StateGetter/BalanceGetter pair. Each Set*
// call returns a new delta; the receiver is never mutated in place, so
// a delta handed to one action is safe to keep using after a later
// action has produced a descendant of it.
type AccountStateDelta struct {
	stateGetter   StateGetter
	balanceGetter BalanceGetter
	signer        Address
	states        map[Address]any
	balances      map[balanceKey]Amount
	updated       AddressSet
}

type balanceKey struct {
	addr     Address
	currency Currency
}

// NewAccountStateDelta builds the initial delta an evaluation pipeline
// starts a transaction from: no writes yet, reads falling through to
// the given getters.
func NewAccountStateDelta(stateGetter StateGetter, balanceGetter BalanceGetter, signer Address) *AccountStateDelta {
	return &AccountStateDelta{
		stateGetter:   stateGetter,
		balanceGetter: balanceGetter,
		signer:        signer,
		states:        map[Address]any{},
		balances:      map[balanceKey]Amount{},
		updated:       AddressSet{},
	}
}

// Signer returns the address that authored the transaction this delta
// belongs to.
func (d *AccountStateDelta) Signer() Address {
	return d.signer
}

// GetState returns addr's state, consulting this delta's own writes
// before falling through to the base getter.
func (d *AccountStateDelta) GetState(addr Address) (any, bool) {
	if v, ok := d.states[addr]; ok {
		return v, true
	}
	return d.stateGetter(addr)
}

// GetBalance returns addr's balance in currency, consulting this
// delta's own writes before falling through to the base getter.
func (d *AccountStateDelta) GetBalance(addr Address, currency Currency) Amount {
	if v, ok := d.balances[balanceKey{addr, currency}]; ok {
		return v
	}
	return d.balanceGetter(addr, currency)
}

// UpdatedAddresses returns the addresses this delta (and its ancestors)
// have written to.
func (d *AccountStateDelta) UpdatedAddresses() AddressSet {
	out := make(AddressSet, len(d.updated))
	for a := range d.updated {
		out[a] = struct{}{}
	}
	return out
}

// SetState returns a new delta with addr's state set to value.
func (d *AccountStateDelta) SetState(addr Address, value any) *AccountStateDelta {
	next := d.clone()
	next.states[addr] = value
	next.updated[addr] = struct{}{}
	return next
}

// SetBalance returns a new delta with addr's balance in amount.Currency
// set to amount.
func (d *AccountStateDelta) SetBalance(addr Address, amount Amount) *AccountStateDelta {
	next := d.clone()
	next.balances[balanceKey{addr, amount.Currency}] = amount
	next.updated[addr] = struct{}{}
	return next
}

// AsGetters exposes this delta's current view as a (StateGetter,
// BalanceGetter) pair, suitable for seeding the next action's or the
// next transaction's initial delta.
func (d *AccountStateDelta) AsGetters() (StateGetter, BalanceGetter) {
	return d.GetState, d.GetBalance
}

func (d *AccountStateDelta) clone() *AccountStateDelta {
	states := make(map[Address]any, len(d.states))
	for k, v := range d.states {
		states[k] = v
	}
	balances := make(map[balanceKey]Amount, len(d.balances))
	for k, v := range d.balances {
		balances[k] = v
	}
	updated := make(AddressSet, len(d.updated))
	for a := range d.updated {
		updated[a] = struct{}{}
	}
	return &AccountStateDelta{
		stateGetter:   d.stateGetter,
		balanceGetter: d.balanceGetter,
		signer:        d.signer,
		states:        states,
		balances:      balances,
		updated:       updated,
	}
}
