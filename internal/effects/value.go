package effects

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

// ValueKind tags the variant held by a Value.
type ValueKind string

const (
	KindVoid    ValueKind = "void"
	KindBool    ValueKind = "bool"
	KindU32     ValueKind = "u32"
	KindU64     ValueKind = "u64"
	KindI128    ValueKind = "i128"
	KindSymbol  ValueKind = "symbol"
	KindString  ValueKind = "string"
	KindBytes   ValueKind = "bytes"
	KindAddress ValueKind = "address"
	KindVec     ValueKind = "vec"
	KindMap     ValueKind = "map"
)

// Value is a decoded contract value. Decoding from the binary encoding is
// done by an external collaborator; the engine only inspects the decoded
// form. Raw retains the original encoded bytes so deferred results can be
// reported verbatim.
type Value struct {
	Kind    ValueKind
	Bool    bool
	U32     uint32
	U64     uint64
	I128    *big.Int
	Sym     string
	Str     string
	Bytes   []byte
	Address string
	Vec     []Value
	Entries []MapEntry
	Raw     []byte
}

// MapEntry is one key/value pair of a map-valued Value.
type MapEntry struct {
	Key Value
	Val Value
}

// Void returns the void sentinel value.
func Void() Value { return Value{Kind: KindVoid} }

// Sym returns a symbol value.
func Sym(s string) Value { return Value{Kind: KindSymbol, Sym: s} }

// Str returns a string value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Addr returns an address value.
func Addr(a string) Value { return Value{Kind: KindAddress, Address: a} }

// I128 returns a 128-bit integer value.
func I128(v *big.Int) Value { return Value{Kind: KindI128, I128: v} }

// I128FromInt64 returns a 128-bit integer value from an int64.
func I128FromInt64(v int64) Value { return Value{Kind: KindI128, I128: big.NewInt(v)} }

// U32Val returns a 32-bit unsigned value.
func U32Val(v uint32) Value { return Value{Kind: KindU32, U32: v} }

// BytesVal returns a byte-string value.
func BytesVal(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// VecVal returns a vector value.
func VecVal(items ...Value) Value { return Value{Kind: KindVec, Vec: items} }

// IsVoid reports whether v is the void sentinel.
func (v Value) IsVoid() bool { return v.Kind == "" || v.Kind == KindVoid }

// BigAmount extracts an integer amount from a numeric value.
func (v Value) BigAmount() (*big.Int, bool) {
	switch v.Kind {
	case KindI128:
		if v.I128 == nil {
			return nil, false
		}
		return v.I128, true
	case KindU64:
		return new(big.Int).SetUint64(v.U64), true
	case KindU32:
		return big.NewInt(int64(v.U32)), true
	}
	return nil, false
}

// Equal reports deep equality of two values. Raw bytes are ignored; two
// values decode equal even if their encodings differ.
func (v Value) Equal(o Value) bool {
	if v.IsVoid() && o.IsVoid() {
		return true
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindU32:
		return v.U32 == o.U32
	case KindU64:
		return v.U64 == o.U64
	case KindI128:
		if v.I128 == nil || o.I128 == nil {
			return v.I128 == o.I128
		}
		return v.I128.Cmp(o.I128) == 0
	case KindSymbol:
		return v.Sym == o.Sym
	case KindString:
		return v.Str == o.Str
	case KindBytes:
		return bytes.Equal(v.Bytes, o.Bytes)
	case KindAddress:
		return v.Address == o.Address
	case KindVec:
		if len(v.Vec) != len(o.Vec) {
			return false
		}
		for i := range v.Vec {
			if !v.Vec[i].Equal(o.Vec[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Entries) != len(o.Entries) {
			return false
		}
		for i := range v.Entries {
			if !v.Entries[i].Key.Equal(o.Entries[i].Key) || !v.Entries[i].Val.Equal(o.Entries[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}

// MapGet looks up a map value by symbol key.
func (v Value) MapGet(sym string) (Value, bool) {
	if v.Kind != KindMap {
		return Value{}, false
	}
	for _, e := range v.Entries {
		if e.Key.Kind == KindSymbol && e.Key.Sym == sym {
			return e.Val, true
		}
	}
	return Value{}, false
}

// jsonValue is the wire form of Value used by fixtures and output.
type jsonValue struct {
	Type  ValueKind       `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
	Raw   string          `json:"raw,omitempty"`
}

// MarshalJSON renders the value in its tagged wire form.
func (v Value) MarshalJSON() ([]byte, error) {
	out := jsonValue{Type: v.Kind}
	if v.Kind == "" {
		out.Type = KindVoid
	}
	if len(v.Raw) > 0 {
		out.Raw = base64.StdEncoding.EncodeToString(v.Raw)
	}
	var inner any
	switch out.Type {
	case KindVoid:
		inner = nil
	case KindBool:
		inner = v.Bool
	case KindU32:
		inner = v.U32
	case KindU64:
		inner = v.U64
	case KindI128:
		if v.I128 == nil {
			return nil, fmt.Errorf("i128 value without integer payload")
		}
		inner = v.I128.String()
	case KindSymbol:
		inner = v.Sym
	case KindString:
		inner = v.Str
	case KindBytes:
		inner = base64.StdEncoding.EncodeToString(v.Bytes)
	case KindAddress:
		inner = v.Address
	case KindVec:
		inner = v.Vec
	case KindMap:
		inner = v.Entries
	default:
		return nil, fmt.Errorf("unknown value kind %q", v.Kind)
	}
	if inner != nil {
		raw, err := json.Marshal(inner)
		if err != nil {
			return nil, err
		}
		out.Value = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the tagged wire form.
func (v *Value) UnmarshalJSON(data []byte) error {
	var in jsonValue
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	v.Kind = in.Type
	if in.Raw != "" {
		raw, err := base64.StdEncoding.DecodeString(in.Raw)
		if err != nil {
			return fmt.Errorf("raw: %w", err)
		}
		v.Raw = raw
	}
	switch in.Type {
	case KindVoid, "":
		v.Kind = KindVoid
		return nil
	case KindBool:
		return json.Unmarshal(in.Value, &v.Bool)
	case KindU32:
		return json.Unmarshal(in.Value, &v.U32)
	case KindU64:
		return json.Unmarshal(in.Value, &v.U64)
	case KindI128:
		var s string
		if err := json.Unmarshal(in.Value, &s); err != nil {
			return err
		}
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return fmt.Errorf("invalid i128 %q", s)
		}
		v.I128 = i
		return nil
	case KindSymbol:
		return json.Unmarshal(in.Value, &v.Sym)
	case KindString:
		return json.Unmarshal(in.Value, &v.Str)
	case KindBytes:
		var s string
		if err := json.Unmarshal(in.Value, &s); err != nil {
			return err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return err
		}
		v.Bytes = b
		return nil
	case KindAddress:
		return json.Unmarshal(in.Value, &v.Address)
	case KindVec:
		return json.Unmarshal(in.Value, &v.Vec)
	case KindMap:
		return json.Unmarshal(in.Value, &v.Entries)
	}
	return fmt.Errorf("unknown value kind %q", in.Type)
}

// MarshalJSON renders a map entry as a {key, value} pair.
func (e MapEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key Value `json:"key"`
		Val Value `json:"value"`
	}{e.Key, e.Val})
}

// UnmarshalJSON parses a {key, value} pair.
func (e *MapEntry) UnmarshalJSON(data []byte) error {
	var in struct {
		Key Value `json:"key"`
		Val Value `json:"value"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.Key = in.Key
	e.Val = in.Val
	return nil
}
