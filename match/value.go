// Package match matches sample text against a Format Tree and binds every
// declared variable to the tokens it reads.
package match

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies a sample token.
type Kind int

const (
	Int Kind = iota + 1
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var maxInt = new(big.Int).Lsh(big.NewInt(1), 64)

// Value is one classified token.
type Value struct {
	Kind  Kind
	Raw   string
	Int   *big.Int
	Float decimal.Decimal
}

// Classify decides the kind of a token. Integers have no leading zero (except
// "0" itself) and are below 2^64; floats contain a dot; everything else is a
// string.
func Classify(token string) Value {
	if token == "0" || !strings.HasPrefix(token, "0") {
		if n, ok := new(big.Int).SetString(token, 10); ok && n.Cmp(maxInt) < 0 {
			return Value{Kind: Int, Raw: token, Int: n}
		}
	}

	if strings.Contains(token, ".") {
		if f, err := decimal.NewFromString(token); err == nil {
			return Value{Kind: Float, Raw: token, Float: f}
		}
	}

	return Value{Kind: String, Raw: token}
}

// IntValue builds an integer value.
func IntValue(n int64) Value {
	return Value{Kind: Int, Raw: fmt.Sprint(n), Int: big.NewInt(n)}
}

func (v Value) String() string {
	return v.Raw
}

// Binding holds the values read for one variable, keyed by their zero based
// index tuple. Scalars use the empty tuple.
type Binding struct {
	indices [][]int64
	values  map[string]Value
}

// NewBinding returns an empty binding.
func NewBinding() *Binding {
	return &Binding{values: map[string]Value{}}
}

// ScalarBinding returns a binding holding a single scalar.
func ScalarBinding(v Value) *Binding {
	b := NewBinding()
	b.Set(nil, v)

	return b
}

func indexKey(index []int64) string {
	parts := make([]string, len(index))
	for i, ix := range index {
		parts[i] = fmt.Sprint(ix)
	}

	return strings.Join(parts, ",")
}

// Set stores v at index, replacing an existing value.
func (b *Binding) Set(index []int64, v Value) {
	key := indexKey(index)
	if _, ok := b.values[key]; !ok {
		b.indices = append(b.indices, slices.Clone(index))
	}

	b.values[key] = v
}

// Get returns the value at index.
func (b *Binding) Get(index []int64) (Value, bool) {
	v, ok := b.values[indexKey(index)]
	return v, ok
}

// Scalar returns the value at the empty index.
func (b *Binding) Scalar() (Value, bool) {
	return b.Get(nil)
}

// Indices lists the bound index tuples in the order they were read.
func (b *Binding) Indices() [][]int64 {
	return b.indices
}

// Values lists the bound values in the order they were read.
func (b *Binding) Values() []Value {
	values := make([]Value, len(b.indices))
	for i, index := range b.indices {
		values[i] = b.values[indexKey(index)]
	}

	return values
}

// Len is the number of bound values.
func (b *Binding) Len() int {
	return len(b.indices)
}
