// Package variables lists the variables declared by a Format Tree together
// with their dimensions, index bases and dependencies.
package variables

import (
	"fmt"
	"strings"
)

// VarType is the scalar type of a variable.
type VarType int

const (
	// IndexInt is an integer used as a size or index by another variable.
	IndexInt VarType = iota + 1
	ValueInt
	Float
	Char
	String
)

var varTypeNames = map[VarType]string{
	IndexInt: "index_int",
	ValueInt: "value_int",
	Float:    "float",
	Char:     "char",
	String:   "string",
}

func (t VarType) String() string {
	if name, ok := varTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("VarType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t VarType) MarshalText() ([]byte, error) {
	if _, ok := varTypeNames[t]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVarType, int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *VarType) UnmarshalText(text []byte) error {
	for typ, name := range varTypeNames {
		if strings.EqualFold(name, string(text)) {
			*t = typ
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownVarType, text)
}

// IsInt reports whether t is one of the integer types.
func (t VarType) IsInt() bool {
	return t == IndexInt || t == ValueInt
}

// VarDecl describes one declared variable. Dims[k] is the length of the k-th
// axis and Bases[k] the smallest index written for it; Depending lists the
// variables whose values Dims refer to. Type is nil until it is known.
type VarDecl struct {
	Name      string   `json:"name" yaml:"name"`
	Type      *VarType `json:"type,omitempty" yaml:"type,omitempty"`
	Dims      []string `json:"dims,omitempty" yaml:"dims,omitempty"`
	Bases     []string `json:"bases,omitempty" yaml:"bases,omitempty"`
	Depending []string `json:"depending,omitempty" yaml:"depending,omitempty"`
}

// WithType returns a copy of d with its type set.
func (d VarDecl) WithType(t VarType) VarDecl {
	d.Type = &t
	return d
}

// Decls is an ordered list of declarations, in the order their items appear
// in the tree.
type Decls []VarDecl

// Get finds a declaration by name.
func (ds Decls) Get(name string) (VarDecl, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}

	return VarDecl{}, false
}

// Names lists the declared names in order.
func (ds Decls) Names() []string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.Name
	}

	return names
}
