package jsontree

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the JSON type name for the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// ErrShape is matched by every ShapeError via errors.Is.
var ErrShape = errors.New("unexpected JSON shape")

// ShapeError reports that a value had a different kind than an accessor expected.
type ShapeError struct {
	Want Kind
	Got  Kind
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

// Is makes errors.Is(err, ErrShape) true for any ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node in a JSON document. The zero value is JSON null.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	items   []*Value
	members []Member
}

// NewNull returns a null value.
func NewNull() *Value { return &Value{kind: Null} }

// NewBool returns a boolean value.
func NewBool(b bool) *Value { return &Value{kind: Bool, boolean: b} }

// NewNumber returns a number value holding the literal n.
func NewNumber(n json.Number) *Value { return &Value{kind: Number, number: n} }

// NewInt returns a number value for an integer.
func NewInt(n int64) *Value {
	return &Value{kind: Number, number: json.Number(strconv.FormatInt(n, 10))}
}

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: String, str: s} }

// NewArray returns an array holding items in order.
func NewArray(items ...*Value) *Value {
	return &Value{kind: Array, items: append([]*Value{}, items...)}
}

// NewObject returns an object holding members in order.
func NewObject(members ...Member) *Value {
	return &Value{kind: Object, members: append([]Member{}, members...)}
}

// Kind reports the variant held by v. A nil *Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// IsNull reports whether v is JSON null (or a nil pointer).
func (v *Value) IsNull() bool {
	return v.Kind() == Null
}

func (v *Value) expect(k Kind) error {
	if v.Kind() != k {
		return &ShapeError{Want: k, Got: v.Kind()}
	}
	return nil
}

// AsBool returns the boolean held by v.
func (v *Value) AsBool() (bool, error) {
	if err := v.expect(Bool); err != nil {
		return false, err
	}
	return v.boolean, nil
}

// AsNumber returns the number literal held by v.
func (v *Value) AsNumber() (json.Number, error) {
	if err := v.expect(Number); err != nil {
		return "", err
	}
	return v.number, nil
}

// AsString returns the string held by v.
func (v *Value) AsString() (string, error) {
	if err := v.expect(String); err != nil {
		return "", err
	}
	return v.str, nil
}

// AsArray returns the items of an array. The slice is shared with v;
// use Append to grow the array.
func (v *Value) AsArray() ([]*Value, error) {
	if err := v.expect(Array); err != nil {
		return nil, err
	}
	return v.items, nil
}

// Members returns the members of an object in source order.
func (v *Value) Members() ([]Member, error) {
	if err := v.expect(Object); err != nil {
		return nil, err
	}
	return v.members, nil
}

// Get returns the value of the last member named key, matching how
// encoding/json resolves duplicate keys.
func (v *Value) Get(key string) (*Value, bool, error) {
	if err := v.expect(Object); err != nil {
		return nil, false, err
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			return v.members[i].Value, true, nil
		}
	}
	return nil, false, nil
}

// Set replaces the value of the last member named key, or appends a new
// member at the end of the object when none exists.
func (v *Value) Set(key string, val *Value) error {
	if err := v.expect(Object); err != nil {
		return err
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			v.members[i].Value = val
			return nil
		}
	}
	v.members = append(v.members, Member{Key: key, Value: val})
	return nil
}

// Append adds items to the end of an array.
func (v *Value) Append(items ...*Value) error {
	if err := v.expect(Array); err != nil {
		return err
	}
	v.items = append(v.items, items...)
	return nil
}

// Len returns the number of items or members; zero for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return NewNull()
	}
	c := &Value{kind: v.kind, boolean: v.boolean, number: v.number, str: v.str}
	if v.items != nil {
		c.items = make([]*Value, len(v.items))
		for i, item := range v.items {
			c.items[i] = item.Clone()
		}
	}
	if v.members != nil {
		c.members = make([]Member, len(v.members))
		for i, m := range v.members {
			c.members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	return c
}

// Equal reports whether a and b hold the same JSON value. Object member
// order is ignored and numbers are compared numerically, so two documents
// that differ only in formatting are equal.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Null:
		return true
	case Bool:
		return a.boolean == b.boolean
	case Number:
		return numbersEqual(a.number, b.number)
	case String:
		return a.str == b.str
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Object:
		return objectsEqual(a, b)
	}
	return false
}

func objectsEqual(a, b *Value) bool {
	keys := make(map[string]struct{}, len(a.members))
	for _, m := range a.members {
		keys[m.Key] = struct{}{}
	}
	for _, m := range b.members {
		if _, ok := keys[m.Key]; !ok {
			return false
		}
	}
	for key := range keys {
		av, _, _ := a.Get(key)
		bv, ok, _ := b.Get(key)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	af, _, errA := big.ParseFloat(string(a), 10, 256, big.ToNearestEven)
	bf, _, errB := big.ParseFloat(string(b), 10, 256, big.ToNearestEven)
	if errA != nil || errB != nil {
		return false
	}
	return af.Cmp(bf) == 0
}
