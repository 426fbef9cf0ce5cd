package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// Value is a dynamically typed JSON value used for item generation
// parameters, whose shape differs per skill.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []Value
	m    map[string]Value
}

func Null() Value                  { return Value{} }
func Bool(b bool) Value            { return Value{kind: KindBool, b: b} }
func Number(n float64) Value       { return Value{kind: KindNumber, n: n} }
func String(s string) Value        { return Value{kind: KindString, s: s} }
func List(items ...Value) Value    { return Value{kind: KindList, list: items} }
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }
func (v Value) Kind() Kind         { return v.kind }
func (v Value) IsNull() bool       { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

func (v Value) AsMap() (map[string]Value, bool) {
	return v.m, v.kind == KindMap
}

// String renders the value compactly for display.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.m[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindMap:
		if v.m == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v.m)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("value: empty input")
	}

	switch data[0] {
	case 'n':
		*v = Null()
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("value: %w", err)
		}
		*v = Bool(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("value: %w", err)
		}
		*v = String(s)
	case '[':
		var items []Value
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = List(items...)
	case '{':
		var m map[string]Value
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*v = Map(m)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("value: %w", err)
		}
		*v = Number(n)
	}
	return nil
}
