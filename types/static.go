package types

import (
	"sort"
	"strings"
)

// Type is a static type as seen by the checker. Values never carry one;
// the checker derives types from annotations and literals.
type Type interface {
	String() string
	staticType()
}

// Kind enumerates the primitive static types
type Kind int

const (
	KindAny Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindNull
	KindUndefined
	KindVoid
)

// Primitive is one of the built-in scalar types
type Primitive struct {
	Kind Kind
}

var (
	AnyType       Type = &Primitive{Kind: KindAny}
	NumberType    Type = &Primitive{Kind: KindNumber}
	StringType    Type = &Primitive{Kind: KindString}
	BooleanType   Type = &Primitive{Kind: KindBoolean}
	NullType      Type = &Primitive{Kind: KindNull}
	UndefinedType Type = &Primitive{Kind: KindUndefined}
	VoidType      Type = &Primitive{Kind: KindVoid}
)

var primitiveNames = map[string]Type{
	"any":       AnyType,
	"number":    NumberType,
	"string":    StringType,
	"boolean":   BooleanType,
	"null":      NullType,
	"undefined": UndefinedType,
	"void":      VoidType,
}

// LookupPrimitive resolves a type name used in an annotation
func LookupPrimitive(name string) (Type, bool) {
	t, ok := primitiveNames[name]
	return t, ok
}

func (p *Primitive) staticType() {}

func (p *Primitive) String() string {
	switch p.Kind {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindVoid:
		return "void"
	default:
		return "any"
	}
}

// Union is a type whose values belong to any one of its members
type Union struct {
	Members []Type
}

func (u *Union) staticType() {}

func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		if _, ok := m.(*Func); ok {
			parts[i] = "(" + m.String() + ")"
		} else {
			parts[i] = m.String()
		}
	}
	return strings.Join(parts, " | ")
}

// Field is one property of an object type
type Field struct {
	Name     string
	Type     Type
	Optional bool
	ReadOnly bool // builtin members scripts may read but not assign
}

// Object is a structural record type
type Object struct {
	Fields []Field
}

func (o *Object) staticType() {}

func (o *Object) String() string {
	if len(o.Fields) == 0 {
		return "{}"
	}
	parts := make([]string, len(o.Fields))
	for i, f := range o.Fields {
		opt, ro := "", ""
		if f.Optional {
			opt = "?"
		}
		if f.ReadOnly {
			ro = "readonly "
		}
		parts[i] = ro + f.Name + opt + ": " + f.Type.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Field looks up a property by name
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// AddField appends an optional property; used when extensible records
// are enabled and a script inserts an undeclared field.
func (o *Object) AddField(name string, t Type) {
	o.Fields = append(o.Fields, Field{Name: name, Type: t, Optional: true})
}

// Param is one function parameter
type Param struct {
	Name     string
	Type     Type
	Optional bool
}

// Func is a function signature
type Func struct {
	Params   []Param
	Result   Type
	Variadic bool // accepts any number of arguments of any type
}

func (f *Func) staticType() {}

func (f *Func) String() string {
	if f.Variadic {
		return "(...args: any[]) => " + f.Result.String()
	}
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		opt := ""
		if p.Optional {
			opt = "?"
		}
		parts[i] = p.Name + opt + ": " + p.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ") => " + f.Result.String()
}

// RequiredParams counts the parameters a call must supply
func (f *Func) RequiredParams() int {
	n := 0
	for _, p := range f.Params {
		if !p.Optional {
			n++
		}
	}
	return n
}

// NewUnion builds a union, flattening nested unions and dropping
// duplicates. A single member collapses to itself; any absorbs everything.
func NewUnion(ts ...Type) Type {
	var members []Type
	seen := make(map[string]bool)
	var add func(t Type)
	add = func(t Type) {
		if u, ok := t.(*Union); ok {
			for _, m := range u.Members {
				add(m)
			}
			return
		}
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		members = append(members, t)
	}
	for _, t := range ts {
		if t == nil {
			continue
		}
		if IsAny(t) {
			return AnyType
		}
		add(t)
	}
	switch len(members) {
	case 0:
		return UndefinedType
	case 1:
		return members[0]
	}
	// null and undefined read best at the end: string | null | undefined
	sort.SliceStable(members, func(i, j int) bool {
		return nullishRank(members[i]) < nullishRank(members[j])
	})
	return &Union{Members: members}
}

func nullishRank(t Type) int {
	if p, ok := t.(*Primitive); ok {
		switch p.Kind {
		case KindNull:
			return 1
		case KindUndefined:
			return 2
		}
	}
	return 0
}

// IsAny reports whether t is the any type
func IsAny(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind == KindAny
}

// IsKind reports whether t is exactly the given primitive
func IsKind(t Type, k Kind) bool {
	p, ok := t.(*Primitive)
	return ok && p.Kind == k
}

// Includes reports whether t admits values of the given primitive kind
func Includes(t Type, k Kind) bool {
	switch tt := t.(type) {
	case *Primitive:
		if tt.Kind == KindAny {
			return true
		}
		if k == KindUndefined && tt.Kind == KindVoid {
			return true
		}
		return tt.Kind == k
	case *Union:
		for _, m := range tt.Members {
			if Includes(m, k) {
				return true
			}
		}
	}
	return false
}

// IsNullable reports whether t admits null or undefined (any does not count)
func IsNullable(t Type) bool {
	if IsAny(t) {
		return false
	}
	return Includes(t, KindNull) || Includes(t, KindUndefined)
}

// RemoveNullish strips null, undefined and void from t
func RemoveNullish(t Type) Type {
	u, ok := t.(*Union)
	if !ok {
		if IsKind(t, KindNull) || IsKind(t, KindUndefined) || IsKind(t, KindVoid) {
			return nil
		}
		return t
	}
	var kept []Type
	for _, m := range u.Members {
		if r := RemoveNullish(m); r != nil {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return NewUnion(kept...)
}

// Assignable reports whether a value of type src may be stored where dst
// is expected.
func Assignable(src, dst Type) bool {
	if IsAny(src) || IsAny(dst) {
		return true
	}
	if su, ok := src.(*Union); ok {
		for _, m := range su.Members {
			if !Assignable(m, dst) {
				return false
			}
		}
		return true
	}
	if du, ok := dst.(*Union); ok {
		for _, m := range du.Members {
			if Assignable(src, m) {
				return true
			}
		}
		return false
	}

	switch d := dst.(type) {
	case *Primitive:
		s, ok := src.(*Primitive)
		if !ok {
			return false
		}
		if d.Kind == KindVoid {
			return s.Kind == KindVoid || s.Kind == KindUndefined
		}
		return s.Kind == d.Kind
	case *Object:
		s, ok := src.(*Object)
		if !ok {
			return false
		}
		for _, df := range d.Fields {
			sf, found := s.Field(df.Name)
			if !found {
				if df.Optional {
					continue
				}
				return false
			}
			want := df.Type
			if df.Optional {
				want = NewUnion(df.Type, UndefinedType)
			}
			got := sf.Type
			if sf.Optional {
				got = NewUnion(sf.Type, UndefinedType)
			}
			if !Assignable(got, want) {
				return false
			}
		}
		return true
	case *Func:
		s, ok := src.(*Func)
		if !ok {
			return false
		}
		if d.Variadic || s.Variadic {
			return true
		}
		if s.RequiredParams() > len(d.Params) {
			return false
		}
		for i, sp := range s.Params {
			if i >= len(d.Params) {
				break
			}
			if !Assignable(d.Params[i].Type, sp.Type) {
				return false
			}
		}
		if IsKind(d.Result, KindVoid) {
			return true
		}
		return Assignable(s.Result, d.Result)
	}
	return false
}
