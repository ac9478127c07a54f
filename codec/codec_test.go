package codec

import "testing"

func TestEncodeCanonicalForms(t *testing.T) {
	cases := []struct {
		name string
		val  Value
		want string
	}{
		{"empty_bytes", Bytes(nil), "0:"},
		{"bytes", Bytes("spam"), "4:spam"},
		{"zero", Integer(0), "i0e"},
		{"positive", Integer(3), "i3e"},
		{"negative", Integer(-3), "i-3e"},
		{"empty_list", List{}, "le"},
		{"list", List{Bytes("a"), Integer(1)}, "l1:ai1ee"},
		{"empty_dict", Dict{}, "de"},
		{"dict_sorted", Dict{"b": Integer(2), "a": Integer(1)}, "d1:ai1e1:bi2ee"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(Encode(tc.val))
			if got != tc.want {
				t.Fatalf("Encode(%v) = %q, want %q", tc.val, got, tc.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	cases := []Value{
		Bytes("hello world"),
		Integer(0),
		Integer(-12345),
		List{Bytes("x"), List{Integer(1), Integer(2)}},
		Dict{"id": Bytes([]byte{0x01, 0x02}), "nonce": Integer(7)},
	}
	for _, v := range cases {
		enc := Encode(v)
		got, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%x) error: %v", enc, err)
		}
		if string(Encode(got)) != string(enc) {
			t.Fatalf("round trip mismatch: got %x want %x", Encode(got), enc)
		}
	}
}

func TestDecodeRejectsNonCanonical(t *testing.T) {
	cases := map[string]string{
		"leading_zero_length":  "04:spam",
		"leading_zero_integer": "i03e",
		"negative_zero":        "i-0e",
		"trailing_bytes":       "i1ee",
		"unsorted_dict_keys":   "d1:bi1e1:ai2ee",
		"duplicate_dict_keys":  "d1:ai1e1:ai2ee",
		"unknown_tag":          "x",
		"unterminated_list":    "li1e",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(raw)); err == nil {
				t.Fatalf("Decode(%q) succeeded, want DecodingError", raw)
			}
		})
	}
}

func TestDecodeRejectsTruncatedByteString(t *testing.T) {
	if _, err := Decode([]byte("10:short")); err == nil {
		t.Fatalf("Decode of truncated byte string succeeded")
	}
}

func TestDictKeysSorted(t *testing.T) {
	d := Dict{"z": Integer(1), "a": Integer(2), "m": Integer(3)}
	keys := d.Keys()
	want := []string{"a", "m", "z"}
	for i, k := range keys {
		if k != want[i] {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
	}
}
