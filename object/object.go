package object

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"strings"

	"monkey/ast"

	"src.elv.sh/pkg/persistent/vector"
)

type ObjectType string

const (
	INTEGER_OBJ = "INTEGER"
	BOOLEAN_OBJ = "BOOLEAN"
	STRING_OBJ  = "STRING"
	NULL_OBJ    = "NULL"

	ARRAY_OBJ = "ARRAY"
	HASH_OBJ  = "HASH"

	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"

	// These two are signals used by the evaluator rather than values proper.
	ERROR_OBJ        = "ERROR"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

type HashKey struct {
	Type  ObjectType
	Value uint64
}

type Hashable interface {
	Object
	HashKey() HashKey
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) HashKey() HashKey {
	return HashKey{Type: i.Type(), Value: uint64(i.Value)}
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) HashKey() HashKey {
	var value uint64
	if b.Value {
		value = 1
	}
	return HashKey{Type: b.Type(), Value: value}
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }
func (s *String) HashKey() HashKey {
	h := fnv.New64a()
	h.Write([]byte(s.Value))
	return HashKey{Type: s.Type(), Value: h.Sum64()}
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

// Arrays are persistent: operations which "change" an array give back a new one which
// shares structure with the old, and the old one is left as it was.
type Array struct {
	Elements vector.Vector
}

func NewArray(elements []Object) *Array {
	vec := vector.Empty
	for _, e := range elements {
		vec = vec.Conj(e)
	}
	return &Array{Elements: vec}
}

func (ao *Array) Type() ObjectType { return ARRAY_OBJ }
func (ao *Array) Inspect() string {
	var out bytes.Buffer

	elements := []string{}
	for _, e := range ao.Slice() {
		elements = append(elements, e.Inspect())
	}

	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")

	return out.String()
}

func (ao *Array) Len() int { return ao.Elements.Len() }

func (ao *Array) Index(i int) (Object, bool) {
	if i < 0 || i >= ao.Elements.Len() {
		return nil, false
	}
	el, ok := ao.Elements.Index(i)
	if !ok {
		return nil, false
	}
	return el.(Object), true
}

func (ao *Array) Slice() []Object {
	result := make([]Object, 0, ao.Elements.Len())
	for it := ao.Elements.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(Object))
	}
	return result
}

// Everything but the first element. The caller checks that there is a first element.
func (ao *Array) Rest() *Array {
	return &Array{Elements: ao.Elements.SubVector(1, ao.Elements.Len())}
}

func (ao *Array) Push(obj Object) *Array {
	return &Array{Elements: ao.Elements.Conj(obj)}
}

type HashPair struct {
	Key   Object
	Value Object
}

type Hash struct {
	Pairs map[HashKey]HashPair
	Order []HashKey // insertion order, for Inspect
}

func NewHash() *Hash {
	return &Hash{Pairs: make(map[HashKey]HashPair)}
}

// Rebinding an existing key keeps its original position.
func (h *Hash) Set(key Hashable, value Object) {
	hk := key.HashKey()
	if _, ok := h.Pairs[hk]; !ok {
		h.Order = append(h.Order, hk)
	}
	h.Pairs[hk] = HashPair{Key: key, Value: value}
}

func (h *Hash) Get(key Hashable) (Object, bool) {
	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string {
	var out bytes.Buffer

	pairs := []string{}
	for _, hk := range h.Order {
		pair := h.Pairs[hk]
		pairs = append(pairs, pair.Key.Inspect()+": "+pair.Value.Inspect())
	}

	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")

	return out.String()
}

// A closure: the environment is the one the function literal was evaluated in, shared
// and not copied, so the function sees later changes to it.
type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	return "fn(" + ast.ParameterList(f.Parameters) + ") " + f.Body.String()
}

type BuiltinFunction func(args ...Object) Object

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }

type Error struct {
	Message string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }

type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }
