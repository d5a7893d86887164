// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the source type system and the AST node hierarchy
// for the contract language.
//
// Design:
//   - types are algebraic, structurally compared with Equals, and shared
//     by value; they are not interned, so equal types may be distinct
//     values.
//   - AST nodes are a tagged struct hierarchy (not an interface-per-node
//     virtual dispatch tree): a single Node/Expression/Statement/Declaration
//     marker-interface pattern.
package ast

import (
	"fmt"
	"strings"
)

// Kind categorizes the fundamental shape of a Type.
type Kind int

const (
	KindBool Kind = iota
	KindInteger
	KindFixedBytes
	KindBytes
	KindString
	KindAddress
	KindArray
	KindMapping
	KindFunction
	KindUserDefined
)

// Mutability applies to functions and to Address (payable vs non-payable).
type Mutability int

const (
	Pure Mutability = iota
	View
	NonPayable
	Payable
)

func (m Mutability) String() string {
	switch m {
	case Pure:
		return "pure"
	case View:
		return "view"
	case Payable:
		return "payable"
	default:
		return "nonpayable"
	}
}

// DataLocation is where a reference-kind value physically lives.
type DataLocation int

const (
	Unspecified DataLocation = iota
	Storage
	Memory
	CallData
)

func (d DataLocation) String() string {
	switch d {
	case Storage:
		return "storage"
	case Memory:
		return "memory"
	case CallData:
		return "calldata"
	default:
		return ""
	}
}

// Type is the interface every source-language type implements. Types are
// immutable once constructed and compared structurally through Equals.
type Type interface {
	Kind() Kind
	String() string
	Equals(other Type) bool
	// CanonicalName is the ABI canonical type name used to build a
	// function's canonical signature: "uint" becomes "uint256", "int"
	// becomes "int256", "address payable" becomes "address", everything
	// else is spelled as-is.
	CanonicalName() string
	// IsReferenceKind reports whether a value of this type may carry an
	// explicit DataLocation.
	IsReferenceKind() bool
}

// ---- Bool -------------------------------------------------------------

type BoolType struct{}

func (BoolType) Kind() Kind             { return KindBool }
func (BoolType) String() string         { return "bool" }
func (BoolType) CanonicalName() string  { return "bool" }
func (BoolType) IsReferenceKind() bool  { return false }
func (t BoolType) Equals(o Type) bool   { _, ok := o.(BoolType); return ok }

// ---- Integer ------------------------------------------------------------

// IntKind is a signed or unsigned width, a multiple of 8 from 8 to 256.
type IntKind struct {
	Signed bool
	Bits   int // 8..256, multiple of 8
	// IsDefaultKeyword records whether the source spelled the bare
	// "uint"/"int" keyword (implying 256) rather than an explicit width,
	// since canonicalization treats them identically but the parser needs
	// to remember which keyword text produced this kind for diagnostics.
	IsDefaultKeyword bool
}

func (k IntKind) String() string {
	prefix := "uint"
	if k.Signed {
		prefix = "int"
	}
	if k.IsDefaultKeyword {
		return prefix
	}
	return fmt.Sprintf("%s%d", prefix, k.Bits)
}

type IntegerType struct {
	IntKind IntKind
}

func (IntegerType) Kind() Kind            { return KindInteger }
func (t IntegerType) String() string      { return t.IntKind.String() }
func (t IntegerType) IsReferenceKind() bool { return false }
func (t IntegerType) CanonicalName() string {
	prefix := "uint"
	if t.IntKind.Signed {
		prefix = "int"
	}
	return fmt.Sprintf("%s%d", prefix, t.IntKind.Bits)
}
func (t IntegerType) Equals(o Type) bool {
	other, ok := o.(IntegerType)
	return ok && other.IntKind.Signed == t.IntKind.Signed && other.IntKind.Bits == t.IntKind.Bits
}

// NewIntegerType builds the canonical Integer type for a given signedness
// and bit width, defaulting bits to 256 when isDefault is set (the bare
// "uint"/"int" keyword).
func NewIntegerType(signed bool, bits int, isDefault bool) IntegerType {
	if isDefault {
		bits = 256
	}
	return IntegerType{IntKind: IntKind{Signed: signed, Bits: bits, IsDefaultKeyword: isDefault}}
}

// ---- FixedBytes -----------------------------------------------------------

// ByteKind ranges from 1 through 32.
type ByteKind struct{ N int }

type FixedBytesType struct{ ByteKind ByteKind }

func (FixedBytesType) Kind() Kind             { return KindFixedBytes }
func (t FixedBytesType) String() string       { return fmt.Sprintf("bytes%d", t.ByteKind.N) }
func (t FixedBytesType) CanonicalName() string { return t.String() }
func (FixedBytesType) IsReferenceKind() bool   { return false }
func (t FixedBytesType) Equals(o Type) bool {
	other, ok := o.(FixedBytesType)
	return ok && other.ByteKind.N == t.ByteKind.N
}

// ---- Bytes / String (dynamic) ---------------------------------------------

type BytesType struct{}

func (BytesType) Kind() Kind             { return KindBytes }
func (BytesType) String() string         { return "bytes" }
func (BytesType) CanonicalName() string  { return "bytes" }
func (BytesType) IsReferenceKind() bool  { return true }
func (t BytesType) Equals(o Type) bool   { _, ok := o.(BytesType); return ok }

type StringType struct{}

func (StringType) Kind() Kind             { return KindString }
func (StringType) String() string         { return "string" }
func (StringType) CanonicalName() string  { return "string" }
func (StringType) IsReferenceKind() bool  { return true }
func (t StringType) Equals(o Type) bool   { _, ok := o.(StringType); return ok }

// ---- Address ----------------------------------------------------------

type AddressType struct{ Mutability Mutability }

func (AddressType) Kind() Kind      { return KindAddress }
func (t AddressType) String() string {
	if t.Mutability == Payable {
		return "address payable"
	}
	return "address"
}
func (t AddressType) CanonicalName() string { return "address" }
func (AddressType) IsReferenceKind() bool   { return false }
func (t AddressType) Equals(o Type) bool {
	other, ok := o.(AddressType)
	return ok && other.Mutability == t.Mutability
}

// ---- Array (fixed-size or dynamic) -----------------------------------

// ArrayType is a fixed-size array (Len >= 0) or a dynamic array (Len < 0).
type ArrayType struct {
	Elem     Type
	Len      int // -1 means dynamic
	Location DataLocation
}

func (ArrayType) Kind() Kind { return KindArray }
func (t ArrayType) String() string {
	if t.Len < 0 {
		return t.Elem.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", t.Elem.String(), t.Len)
}
func (t ArrayType) CanonicalName() string {
	if t.Len < 0 {
		return t.Elem.CanonicalName() + "[]"
	}
	return fmt.Sprintf("%s[%d]", t.Elem.CanonicalName(), t.Len)
}
func (ArrayType) IsReferenceKind() bool { return true }
func (t ArrayType) Equals(o Type) bool {
	other, ok := o.(ArrayType)
	return ok && other.Len == t.Len && other.Elem.Equals(t.Elem)
}

// IsDynamic reports whether this array's ABI encoding requires a head
// offset/length pair rather than a fixed number of static slots.
func (t ArrayType) IsDynamic() bool { return t.Len < 0 }

// ---- Mapping (storage-only reference type) -----------------------------

type MappingType struct {
	Key   Type
	Value Type
}

func (MappingType) Kind() Kind { return KindMapping }
func (t MappingType) String() string {
	return fmt.Sprintf("mapping(%s => %s)", t.Key.String(), t.Value.String())
}
func (t MappingType) CanonicalName() string { return t.String() } // never externally callable
func (MappingType) IsReferenceKind() bool   { return true }
func (t MappingType) Equals(o Type) bool {
	other, ok := o.(MappingType)
	return ok && other.Key.Equals(t.Key) && other.Value.Equals(t.Value)
}

// ---- Function -----------------------------------------------------------

type FunctionType struct {
	Params     []Type
	Returns    []Type
	Mutability Mutability
}

func (FunctionType) Kind() Kind { return KindFunction }
func (t FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	s := "function(" + strings.Join(parts, ",") + ")"
	if len(t.Returns) > 0 {
		rp := make([]string, len(t.Returns))
		for i, r := range t.Returns {
			rp[i] = r.String()
		}
		s += " returns (" + strings.Join(rp, ",") + ")"
	}
	return s
}
func (t FunctionType) CanonicalName() string { return t.String() }
func (FunctionType) IsReferenceKind() bool   { return false }
func (t FunctionType) Equals(o Type) bool {
	other, ok := o.(FunctionType)
	if !ok || len(other.Params) != len(t.Params) || len(other.Returns) != len(t.Returns) {
		return false
	}
	for i := range t.Params {
		if !other.Params[i].Equals(t.Params[i]) {
			return false
		}
	}
	for i := range t.Returns {
		if !other.Returns[i].Equals(t.Returns[i]) {
			return false
		}
	}
	return true
}

// CanonicalSignature builds "name(type1,type2,...)".
func CanonicalSignature(name string, params []Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.CanonicalName()
	}
	return name + "(" + strings.Join(parts, ",") + ")"
}

// ---- UserDefined (unresolved contract/struct/enum name) ------------------

type UserDefinedType struct{ Name string }

func (UserDefinedType) Kind() Kind             { return KindUserDefined }
func (t UserDefinedType) String() string       { return t.Name }
func (t UserDefinedType) CanonicalName() string { return t.Name }
func (UserDefinedType) IsReferenceKind() bool   { return true }
func (t UserDefinedType) Equals(o Type) bool {
	other, ok := o.(UserDefinedType)
	return ok && other.Name == t.Name
}
