// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ast

import "testing"

func TestIntegerCanonicalName(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{NewIntegerType(false, 0, true), "uint256"},
		{NewIntegerType(true, 0, true), "int256"},
		{NewIntegerType(false, 8, false), "uint8"},
		{NewIntegerType(false, 256, false), "uint256"},
		{NewIntegerType(true, 128, false), "int128"},
	}
	for _, tc := range cases {
		if got := tc.typ.CanonicalName(); got != tc.want {
			t.Errorf("CanonicalName() = %q, want %q", got, tc.want)
		}
	}
}

func TestIntegerEquality(t *testing.T) {
	a := NewIntegerType(false, 0, true)  // bare "uint" -> uint256
	b := NewIntegerType(false, 256, false)
	if !a.Equals(b) {
		t.Errorf("bare uint should equal explicit uint256")
	}
}

func TestFixedBytesCanonicalName(t *testing.T) {
	fb := FixedBytesType{ByteKind: ByteKind{N: 32}}
	if fb.CanonicalName() != "bytes32" {
		t.Errorf("CanonicalName() = %q, want bytes32", fb.CanonicalName())
	}
}

func TestAddressMutability(t *testing.T) {
	if (AddressType{Mutability: Payable}).String() != "address payable" {
		t.Errorf("payable address should print 'address payable'")
	}
	if (AddressType{Mutability: NonPayable}).String() != "address" {
		t.Errorf("bare address should print 'address'")
	}
	if (AddressType{Mutability: Payable}).Equals(AddressType{Mutability: NonPayable}) {
		t.Errorf("payable and non-payable address types must not be equal")
	}
}

func TestArrayCanonicalName(t *testing.T) {
	dyn := ArrayType{Elem: NewIntegerType(false, 256, false), Len: -1}
	if dyn.CanonicalName() != "uint256[]" {
		t.Errorf("dynamic array canonical name = %q, want uint256[]", dyn.CanonicalName())
	}
	fixed := ArrayType{Elem: NewIntegerType(false, 256, false), Len: 3}
	if fixed.CanonicalName() != "uint256[3]" {
		t.Errorf("fixed array canonical name = %q, want uint256[3]", fixed.CanonicalName())
	}
	if !dyn.IsDynamic() || fixed.IsDynamic() {
		t.Errorf("IsDynamic() mismatch: dyn=%v fixed=%v", dyn.IsDynamic(), fixed.IsDynamic())
	}
}

func TestCanonicalSignature(t *testing.T) {
	sig := CanonicalSignature("f", []Type{NewIntegerType(false, 0, true)})
	if sig != "f(uint256)" {
		t.Errorf("CanonicalSignature() = %q, want f(uint256)", sig)
	}
	sig2 := CanonicalSignature("f", []Type{NewIntegerType(false, 256, false)})
	if sig != sig2 {
		t.Errorf("bare uint and uint256 must produce identical signatures: %q vs %q", sig, sig2)
	}
}

func TestReferenceKindClassification(t *testing.T) {
	if NewIntegerType(false, 256, false).IsReferenceKind() {
		t.Errorf("integers are value types, not reference kind")
	}
	if !(BytesType{}).IsReferenceKind() {
		t.Errorf("bytes is a reference-kind type")
	}
	if !(ArrayType{Elem: BoolType{}, Len: 4}).IsReferenceKind() {
		t.Errorf("arrays are reference-kind types")
	}
}
