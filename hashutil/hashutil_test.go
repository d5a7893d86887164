// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package hashutil

import "testing"

// TestSelectorSetUint256 pins the exact selector for `set(uint256)`.
func TestSelectorSetUint256(t *testing.T) {
	got := SelectorUint32("set(uint256)")
	const want = 0x60fe47b1
	if got != want {
		t.Fatalf("selector(set(uint256)) = %#08x, want %#08x", got, want)
	}
}

// TestSelectorGet pins the exact selector for `get()`.
func TestSelectorGet(t *testing.T) {
	got := SelectorUint32("get()")
	const want = 0x6d4ce63c
	if got != want {
		t.Fatalf("selector(get()) = %#08x, want %#08x", got, want)
	}
}

func TestKeccak256IsDeterministic(t *testing.T) {
	a := Keccak256([]byte("hello"))
	b := Keccak256([]byte("hello"))
	if a != b {
		t.Fatal("Keccak256 is not deterministic across calls")
	}
}

func TestKeccak256DiffersFromSHA256(t *testing.T) {
	k := Keccak256([]byte("hello"))
	s := SHA256([]byte("hello"))
	if k == s {
		t.Fatal("Keccak256 and SHA256 unexpectedly collided")
	}
}

func TestEventTopicMatchesSelectorHash(t *testing.T) {
	sig := "Transfer(address,address,uint256)"
	topic := EventTopic(sig)
	full := Keccak256([]byte(sig))
	if topic != full {
		t.Fatal("EventTopic should be the full Keccak-256 digest, not truncated")
	}
}
