// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package hashutil wires function-selector and event-topic hashing to a
// real Keccak-256 implementation.
package hashutil

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes data with Keccak-256 (not NIST SHA3-256 — the source
// language and the EVM both specify the pre-NIST-finalization Keccak
// padding, which sha3.NewLegacyKeccak256 implements).
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SHA256 hashes data with SHA-256, the second hash the environment
// interface exposes as its `sha256` host function. NIST SHA-256 has no
// Keccak-family relationship to the sha3 package above, so this one
// function uses crypto/sha256 from the standard library.
func SHA256(data ...[]byte) [32]byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Selector computes the 4-byte function selector for a canonical
// signature: the first four bytes of the Keccak-256 hash of the ASCII
// signature.
func Selector(canonicalSignature string) [4]byte {
	digest := Keccak256([]byte(canonicalSignature))
	var sel [4]byte
	copy(sel[:], digest[:4])
	return sel
}

// SelectorUint32 is Selector read as a big-endian uint32, for direct comparison
// against a dispatcher's decoded call-data selector.
func SelectorUint32(canonicalSignature string) uint32 {
	sel := Selector(canonicalSignature)
	return binary.BigEndian.Uint32(sel[:])
}

// EventTopic computes the first (implicit) topic of a log entry: the
// Keccak-256 hash of the event's canonical signature, per the
// non-anonymous event rule.
func EventTopic(canonicalSignature string) [32]byte {
	return Keccak256([]byte(canonicalSignature))
}
