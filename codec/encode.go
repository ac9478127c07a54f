package codec

import (
	"strconv"
)

// Encode returns the unique canonical encoding of v.
//
// Byte strings encode as their ASCII-decimal length, ':', then the raw
// bytes. Integers encode as 'i', decimal ASCII, 'e'. Lists encode as
// 'l', each member's encoding in order, 'e'. Dicts encode as 'd', each
// key/value pair with the key byte string followed by its value, keys
// in sorted order, 'e'.
func Encode(v Value) []byte {
	return appendValue(nil, v)
}

func appendValue(dst []byte, v Value) []byte {
	switch x := v.(type) {
	case Bytes:
		return appendBytes(dst, x)
	case Integer:
		return appendInteger(dst, x)
	case List:
		return appendList(dst, x)
	case Dict:
		return appendDict(dst, x)
	default:
		panic("codec: unknown Value type")
	}
}

func appendBytes(dst []byte, b Bytes) []byte {
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, ':')
	return append(dst, b...)
}

func appendInteger(dst []byte, n Integer) []byte {
	dst = append(dst, 'i')
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, 'e')
}

func appendList(dst []byte, l List) []byte {
	dst = append(dst, 'l')
	for _, v := range l {
		dst = appendValue(dst, v)
	}
	return append(dst, 'e')
}

func appendDict(dst []byte, d Dict) []byte {
	dst = append(dst, 'd')
	for _, k := range d.Keys() {
		dst = appendBytes(dst, Bytes(k))
		dst = appendValue(dst, d[k])
	}
	return append(dst, 'e')
}
