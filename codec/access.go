package codec

// Helpers for pulling typed fields out of a decoded Dict. Block
// deserialization uses these instead of repeating type assertions at
// every call site.

func (d Dict) GetBytes(key string) (Bytes, bool, error) {
	v, ok := d[key]
	if !ok {
		return nil, false, nil
	}
	b, ok := v.(Bytes)
	if !ok {
		return nil, true, decodingErrorf("field %q is not a byte string", key)
	}
	return b, true, nil
}

func (d Dict) GetInteger(key string) (Integer, bool, error) {
	v, ok := d[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.(Integer)
	if !ok {
		return 0, true, decodingErrorf("field %q is not an integer", key)
	}
	return n, true, nil
}

func (d Dict) GetList(key string) (List, bool, error) {
	v, ok := d[key]
	if !ok {
		return nil, false, nil
	}
	l, ok := v.(List)
	if !ok {
		return nil, true, decodingErrorf("field %q is not a list", key)
	}
	return l, true, nil
}

func (d Dict) GetDict(key string) (Dict, bool, error) {
	v, ok := d[key]
	if !ok {
		return nil, false, nil
	}
	m, ok := v.(Dict)
	if !ok {
		return nil, true, decodingErrorf("field %q is not a dict", key)
	}
	return m, true, nil
}

// RequireBytes is GetBytes but fails if the key is absent.
func (d Dict) RequireBytes(key string) (Bytes, error) {
	b, ok, err := d.GetBytes(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, decodingErrorf("missing field %q", key)
	}
	return b, nil
}

// RequireInteger is GetInteger but fails if the key is absent.
func (d Dict) RequireInteger(key string) (Integer, error) {
	n, ok, err := d.GetInteger(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, decodingErrorf("missing field %q", key)
	}
	return n, nil
}

// RequireDict is GetDict but fails if the key is absent.
func (d Dict) RequireDict(key string) (Dict, error) {
	m, ok, err := d.GetDict(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, decodingErrorf("missing field %q", key)
	}
	return m, nil
}

// RequireList is GetList but fails if the key is absent.
func (d Dict) RequireList(key string) (List, error) {
	l, ok, err := d.GetList(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, decodingErrorf("missing field %q", key)
	}
	return l, nil
}
