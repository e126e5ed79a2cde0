package tlaudit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	errInvalidUTF8  = errors.New("document is not valid UTF-8")
	errTrailingData = errors.New("unexpected data after top-level value")
)

// object is a decoded JSON object that remembers the order of its keys, so
// buckets and object sections are walked in document order.
type object struct {
	keys   []string
	values map[string]any
}

// get returns the value stored under key. Safe on a nil object.
func (o *object) get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// each calls fn for every member in document order. Safe on a nil object.
func (o *object) each(fn func(key string, value any)) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}

// decodeDocument parses a JSON document into *object, []any, string,
// float64, bool or nil values.
func decodeDocument(data []byte) (any, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &object{values: make(map[string]any)}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key is %T, not string", kt)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			// Last value wins, first position is kept.
			if _, dup := obj.values[key]; !dup {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = val
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		list := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// lookup walks nested objects by key. It reports false as soon as a step is
// missing or the current node is not an object.
func lookup(node any, keys ...string) (any, bool) {
	for _, k := range keys {
		obj, ok := node.(*object)
		if !ok {
			return nil, false
		}
		if node, ok = obj.get(k); !ok {
			return nil, false
		}
	}
	return node, true
}

// objectAt returns the object at the path, or nil.
func objectAt(node any, keys ...string) *object {
	v, ok := lookup(node, keys...)
	if !ok {
		return nil
	}
	obj, _ := v.(*object)
	return obj
}

// listAt returns the list at the path, or nil.
func listAt(node any, keys ...string) []any {
	v, ok := lookup(node, keys...)
	if !ok {
		return nil
	}
	list, _ := v.([]any)
	return list
}

// stringAt returns the string at the path, or "".
func stringAt(node any, keys ...string) string {
	v, ok := lookup(node, keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// literalValue reads properties.<prop>.expr.Literal.Value.
func literalValue(node any, prop string) string {
	return stringAt(node, "properties", prop, "expr", "Literal", "Value")
}
