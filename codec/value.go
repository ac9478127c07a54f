// Package codec implements the canonical dictionary encoding consumed by
// the block core for hashing and wire transport: byte strings, integers,
// lists, and dictionaries with byte-lexicographically sorted keys. Every
// value has exactly one encoding; the decoder accepts nothing else.
package codec

import "sort"

// Value is the small value language the codec encodes and decodes.
// Exactly one of the concrete types below should be used at a time;
// Value itself carries no behavior beyond being a marker interface.
type Value interface {
	isValue()
}

// Bytes is a canonical byte string: length-prefixed ASCII decimal,
// a literal ':', then the raw bytes.
type Bytes []byte

// Integer is a canonical signed integer: 'i', decimal ASCII (no leading
// zeros, "-0" forbidden), 'e'.
type Integer int64

// List is an ordered sequence of values: 'l', each encoded value in
// order, 'e'.
type List []Value

// Dict is a dictionary whose keys are byte strings. Encoding sorts keys
// by raw-byte lexicographic order of the key bytes themselves (not of
// their length-prefixed encoding); decoding
// rejects a dictionary whose keys are not already in that order.
type Dict map[string]Value

func (Bytes) isValue()   {}
func (Integer) isValue() {}
func (List) isValue()    {}
func (Dict) isValue()    {}

// Keys returns d's keys sorted by raw-byte lexicographic order, the
// order canonical encoding requires.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
