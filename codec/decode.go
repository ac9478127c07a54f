package codec

// Decode parses the canonical encoding at the front of b and requires
// that decoding consume the entire slice. Trailing bytes, a malformed
// length, unsorted dictionary keys, or an unrecognized tag all fail
// with a *DecodingError.
func Decode(b []byte) (Value, error) {
	c := &cursor{b: b}
	v, err := c.readValue()
	if err != nil {
		return nil, err
	}
	if c.pos != len(c.b) {
		return nil, decodingErrorf("trailing bytes after value")
	}
	return v, nil
}

type cursor struct {
	b   []byte
	pos int
}

func (c *cursor) remaining() int {
	return len(c.b) - c.pos
}

func (c *cursor) peek() (byte, bool) {
	if c.remaining() <= 0 {
		return 0, false
	}
	return c.b[c.pos], true
}

func (c *cursor) readValue() (Value, error) {
	tag, ok := c.peek()
	if !ok {
		return nil, decodingErrorf("unexpected end of input")
	}
	switch {
	case tag == 'i':
		return c.readInteger()
	case tag == 'l':
		return c.readList()
	case tag == 'd':
		return c.readDict()
	case tag >= '0' && tag <= '9':
		return c.readBytes()
	default:
		return nil, decodingErrorf("unknown tag %q", tag)
	}
}

// readBytes parses "<decimal>:<raw bytes>" with no leading zeros in the
// length (except the literal length 0).
func (c *cursor) readBytes() (Bytes, error) {
	n, err := c.readLength()
	if err != nil {
		return nil, err
	}
	if c.remaining() < int(n) {
		return nil, decodingErrorf("byte string length exceeds input")
	}
	if _, ok := c.peek(); !ok && n != 0 {
		return nil, decodingErrorf("missing ':' separator")
	}
	start := c.pos
	c.pos += int(n)
	out := make([]byte, n)
	copy(out, c.b[start:c.pos])
	return out, nil
}

// readLength reads the ASCII-decimal length prefix of a byte string and
// consumes the following ':'.
func (c *cursor) readLength() (int64, error) {
	start := c.pos
	for {
		b, ok := c.peek()
		if !ok {
			return 0, decodingErrorf("unterminated byte string length")
		}
		if b == ':' {
			break
		}
		if b < '0' || b > '9' {
			return 0, decodingErrorf("invalid byte string length digit %q", b)
		}
		c.pos++
	}
	digits := c.b[start:c.pos]
	c.pos++ // consume ':'
	if len(digits) == 0 {
		return 0, decodingErrorf("empty byte string length")
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, decodingErrorf("byte string length has leading zero")
	}
	var n int64
	for _, d := range digits {
		n = n*10 + int64(d-'0')
		if n < 0 {
			return 0, decodingErrorf("byte string length overflow")
		}
	}
	return n, nil
}

// readInteger parses "i<decimal>e". Leading zeros and "-0" are rejected.
func (c *cursor) readInteger() (Integer, error) {
	c.pos++ // consume 'i'
	start := c.pos
	neg := false
	if b, ok := c.peek(); ok && b == '-' {
		neg = true
		c.pos++
	}
	digitsStart := c.pos
	for {
		b, ok := c.peek()
		if !ok {
			return 0, decodingErrorf("unterminated integer")
		}
		if b == 'e' {
			break
		}
		if b < '0' || b > '9' {
			return 0, decodingErrorf("invalid integer digit %q", b)
		}
		c.pos++
	}
	digits := c.b[digitsStart:c.pos]
	if len(digits) == 0 {
		return 0, decodingErrorf("empty integer")
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, decodingErrorf("integer has leading zero")
	}
	if neg && len(digits) == 1 && digits[0] == '0' {
		return 0, decodingErrorf("negative zero is not canonical")
	}
	var n int64
	for _, d := range digits {
		n = n*10 + int64(d-'0')
	}
	if neg {
		n = -n
	}
	_ = start
	c.pos++ // consume 'e'
	return Integer(n), nil
}

func (c *cursor) readList() (List, error) {
	c.pos++ // consume 'l'
	out := List{}
	for {
		b, ok := c.peek()
		if !ok {
			return nil, decodingErrorf("unterminated list")
		}
		if b == 'e' {
			c.pos++
			return out, nil
		}
		v, err := c.readValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (c *cursor) readDict() (Dict, error) {
	c.pos++ // consume 'd'
	out := Dict{}
	var prevKey string
	havePrev := false
	for {
		b, ok := c.peek()
		if !ok {
			return nil, decodingErrorf("unterminated dict")
		}
		if b == 'e' {
			c.pos++
			return out, nil
		}
		if b < '0' || b > '9' {
			return nil, decodingErrorf("dict key must be a byte string")
		}
		key, err := c.readBytes()
		if err != nil {
			return nil, err
		}
		keyStr := string(key)
		if havePrev && keyStr <= prevKey {
			return nil, decodingErrorf("dict keys out of canonical order")
		}
		prevKey = keyStr
		havePrev = true
		v, err := c.readValue()
		if err != nil {
			return nil, err
		}
		out[keyStr] = v
	}
}
