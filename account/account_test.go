package account

import "testing"

func addr(b byte) Address {
	var a Address
	a[19] = b
	return a
}

func TestAddressSetOperations(t *testing.T) {
	s := NewAddressSet(addr(1), addr(2))
	if !s.Contains(addr(1)) || s.Contains(addr(3)) {
		t.Fatalf("Contains mismatch")
	}
	u := s.Union(NewAddressSet(addr(3)))
	if len(u) != 3 {
		t.Fatalf("Union size = %d, want 3", len(u))
	}
	diff := u.Subtract(s)
	if len(diff) != 1 || !diff.Contains(addr(3)) {
		t.Fatalf("Subtract = %v, want {3}", diff)
	}
	if !NewAddressSet(addr(1)).IsSubsetOf(s) {
		t.Fatalf("IsSubsetOf should be true")
	}
	if NewAddressSet(addr(9)).IsSubsetOf(s) {
		t.Fatalf("IsSubsetOf should be false")
	}
}

func TestAccountStateDeltaReadsThroughToBase(t *testing.T) {
	stateGetter := func(a Address) (any, bool) {
		if a == addr(5) {
			return "base-state", true
		}
		return nil, false
	}
	balanceGetter := func(a Address, c Currency) Amount {
		return ZeroAmount(c)
	}
	d := NewAccountStateDelta(stateGetter, balanceGetter, addr(1))

	if v, ok := d.GetState(addr(5)); !ok || v != "base-state" {
		t.Fatalf("GetState fallthrough mismatch: %v %v", v, ok)
	}
	if len(d.UpdatedAddresses()) != 0 {
		t.Fatalf("fresh delta should have no updated addresses")
	}
}

func TestAccountStateDeltaSetStateIsImmutable(t *testing.T) {
	d := NewAccountStateDelta(func(Address) (any, bool) { return nil, false },
		func(Address, Currency) Amount { return ZeroAmount("X") }, addr(1))

	d2 := d.SetState(addr(2), "hello")
	if _, ok := d.GetState(addr(2)); ok {
		t.Fatalf("original delta must not observe d2's write")
	}
	v, ok := d2.GetState(addr(2))
	if !ok || v != "hello" {
		t.Fatalf("d2.GetState mismatch: %v %v", v, ok)
	}
	if !d2.UpdatedAddresses().Contains(addr(2)) {
		t.Fatalf("d2 should record addr(2) as updated")
	}
	if d.UpdatedAddresses().Contains(addr(2)) {
		t.Fatalf("d must not record addr(2) as updated")
	}
}

func TestAccountStateDeltaChaining(t *testing.T) {
	d := NewAccountStateDelta(func(Address) (any, bool) { return nil, false },
		func(Address, Currency) Amount { return ZeroAmount("X") }, addr(1))
	d1 := d.SetState(addr(2), 1)
	d2 := d1.SetState(addr(3), 2)
	if !d2.UpdatedAddresses().Contains(addr(2)) || !d2.UpdatedAddresses().Contains(addr(3)) {
		t.Fatalf("d2 should carry forward ancestor writes: %v", d2.UpdatedAddresses())
	}
}
