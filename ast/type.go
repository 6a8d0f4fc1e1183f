package ast

import "strings"

// Prim enumerates the primitive types of spec §3 "Type".
type Prim int

const (
	PrimInvalid Prim = iota
	Int
	Float
	String
	Bool
	Void
	ErrorPrim
)

func (p Prim) String() string {
	switch p {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case Bool:
		return "Bool"
	case Void:
		return "Void"
	case ErrorPrim:
		return "Error"
	default:
		return "<invalid>"
	}
}

// TypeTag discriminates the shape of a Type value.
type TypeTag int

const (
	TagPrimitive TypeTag = iota
	TagArray
	TagHashMap
	TagStruct
	TagEnum
	TagResult
	TagFunc
	TagAnyOf
	TagUnresolved // used transiently by the checker while resolving a name
)

// Type is a recursive value representing a declared or inferred Nail type
// (spec §3). It is a plain value type (comparable by field, not identity) so
// the checker can unify two Types with ==-free structural comparison via
// Equal.
type Type struct {
	Tag     TypeTag
	Prim    Prim     // valid when Tag == TagPrimitive
	Elem    *Type    // valid when Tag == TagArray or TagResult (inner type)
	Key     *Type    // valid when Tag == TagHashMap
	Value   *Type    // valid when Tag == TagHashMap
	Name    string   // valid when Tag == TagStruct, TagEnum, or TagUnresolved
	Params  []Type   // valid when Tag == TagFunc
	Return  *Type    // valid when Tag == TagFunc
	AnyOf   []Type   // valid when Tag == TagAnyOf
}

func Primitive(p Prim) Type { return Type{Tag: TagPrimitive, Prim: p} }

func Array(elem Type) Type { return Type{Tag: TagArray, Elem: &elem} }

func HashMap(key, value Type) Type { return Type{Tag: TagHashMap, Key: &key, Value: &value} }

func StructRef(name string) Type { return Type{Tag: TagStruct, Name: name} }

func EnumRef(name string) Type { return Type{Tag: TagEnum, Name: name} }

func Result(inner Type) Type { return Type{Tag: TagResult, Elem: &inner} }

func Func(params []Type, ret Type) Type { return Type{Tag: TagFunc, Params: params, Return: &ret} }

func AnyOf(alts ...Type) Type { return Type{Tag: TagAnyOf, AnyOf: alts} }

// Unresolved is a placeholder for a type name not yet looked up in the
// global symbol table.
func Unresolved(name string) Type { return Type{Tag: TagUnresolved, Name: name} }

// IsZero reports whether t was never assigned (the checker uses this to
// detect "no type inferred yet", distinct from an explicit Void).
func (t Type) IsZero() bool { return t.Tag == TagPrimitive && t.Prim == PrimInvalid }

// IsVoid reports whether t is exactly Void.
func (t Type) IsVoid() bool { return t.Tag == TagPrimitive && t.Prim == Void }

// IsResult reports whether t is a T!e result type.
func (t Type) IsResult() bool { return t.Tag == TagResult }

// Concrete reports whether t is storable as a hashmap key/value, array
// element, or struct field (spec §3 invariants): a primitive other than
// Void/Error, a collection of concretes, or a named struct/enum.
func (t Type) Concrete() bool {
	switch t.Tag {
	case TagPrimitive:
		return t.Prim != Void && t.Prim != ErrorPrim && t.Prim != PrimInvalid
	case TagArray:
		return t.Elem.Concrete()
	case TagHashMap:
		return t.Key.Concrete() && t.Value.Concrete()
	case TagStruct, TagEnum:
		return true
	default:
		return false
	}
}

// Equal reports structural equality, used by the checker to unify types.
func (t Type) Equal(other Type) bool {
	if t.Tag != other.Tag {
		return false
	}
	switch t.Tag {
	case TagPrimitive:
		return t.Prim == other.Prim
	case TagArray:
		return t.Elem.Equal(*other.Elem)
	case TagHashMap:
		return t.Key.Equal(*other.Key) && t.Value.Equal(*other.Value)
	case TagStruct, TagEnum, TagUnresolved:
		return t.Name == other.Name
	case TagResult:
		return t.Elem.Equal(*other.Elem)
	case TagFunc:
		if len(t.Params) != len(other.Params) || !t.Return.Equal(*other.Return) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	case TagAnyOf:
		if len(t.AnyOf) != len(other.AnyOf) {
			return false
		}
		for i := range t.AnyOf {
			if !t.AnyOf[i].Equal(other.AnyOf[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Accepts reports whether a value of type 'arg' may be passed where 'param'
// is declared, handling any-of alternatives (spec §4.F "Call").
func (param Type) Accepts(arg Type) bool {
	if param.Tag == TagAnyOf {
		for _, alt := range param.AnyOf {
			if alt.Equal(arg) {
				return true
			}
		}
		return false
	}
	return param.Equal(arg)
}

// String renders a Type for diagnostics, using the Nail collection and result
// shapes with primitive names spelled out, e.g. "a:Int" for an array of Int or
// "Int!e" for a fallible Int.
func (t Type) String() string {
	switch t.Tag {
	case TagPrimitive:
		return t.Prim.String()
	case TagArray:
		return "a:" + t.Elem.String()
	case TagHashMap:
		return "h:" + t.Key.String() + ":" + t.Value.String()
	case TagStruct, TagEnum, TagUnresolved:
		return t.Name
	case TagResult:
		return t.Elem.String() + "!e"
	case TagFunc:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
	case TagAnyOf:
		parts := make([]string, len(t.AnyOf))
		for i, p := range t.AnyOf {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, "|") + ")"
	default:
		return "<unresolved>"
	}
}
