// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package environment describes the fixed host-function interface every
// lowered contract calls into, adapted from a Go-side State/Block/
// Transaction/Log model to the extern-function declarations the code
// generator emits into the IR module.
package environment

import "github.com/probechain/solc/ir"

// Block mirrors the block header fields the environment interface's
// getBlock* functions expose to a running contract.
type Block struct {
	Number     uint64
	Timestamp  uint64
	GasLimit   uint64
	Difficulty [32]byte
	Coinbase   [20]byte
	Hash       [32]byte
}

// Transaction mirrors the transaction context the environment interface's
// getCaller/getCallValue/getTxGasPrice/getTxOrigin functions expose.
type Transaction struct {
	Origin   [20]byte
	Caller   [20]byte
	Value    [32]byte
	GasPrice [32]byte
	CallData []byte
}

// Log is one entry produced by the `log0`..`log4` environment functions.
type Log struct {
	Topics [][32]byte
	Data   []byte
}

// State is the storage-backed key/value interface `storageLoad` and
// `storageStore` address, scoped to a single contract's own storage since
// a lowered module never addresses another contract's storage directly.
type State interface {
	StorageLoad(key [32]byte) [32]byte
	StorageStore(key [32]byte, value [32]byte)
}

// Function describes one fixed environment function's signature in terms
// a caller (the codegen) reasons about with Go types, before it is
// lowered to the corresponding ir.ExternFunc declaration.
type Function struct {
	Name    string
	Params  []ir.TypeRef
	Returns ir.TypeRef
}

// wordPtr and word are shorthands: every environment function's pointer
// arguments are opaque linear-memory offsets, and its word-sized
// arguments are the target's native word.
const wordPtr = ir.TypePtr

// Functions returns the fixed, target-independent environment interface.
// word is the target's native word type (i256 for EVM, i64 for EWASM)
// used for length/offset/value parameters.
func Functions(word ir.TypeRef) []Function {
	return []Function{
		{"callDataCopy", []ir.TypeRef{wordPtr, word, word}, ir.TypeVoid},
		{"getCallDataSize", nil, word},
		{"finish", []ir.TypeRef{wordPtr, word}, ir.TypeVoid},
		{"revert", []ir.TypeRef{wordPtr, word}, ir.TypeVoid},
		{"log0", []ir.TypeRef{wordPtr, word}, ir.TypeVoid},
		{"log1", []ir.TypeRef{wordPtr, word, wordPtr}, ir.TypeVoid},
		{"log2", []ir.TypeRef{wordPtr, word, wordPtr, wordPtr}, ir.TypeVoid},
		{"log3", []ir.TypeRef{wordPtr, word, wordPtr, wordPtr, wordPtr}, ir.TypeVoid},
		{"log4", []ir.TypeRef{wordPtr, word, wordPtr, wordPtr, wordPtr, wordPtr}, ir.TypeVoid},
		{"getCallValue", []ir.TypeRef{wordPtr}, ir.TypeVoid},
		{"getCaller", []ir.TypeRef{wordPtr}, ir.TypeVoid},
		{"getGasLeft", nil, word},
		{"returnDataCopy", []ir.TypeRef{wordPtr, word, word}, ir.TypeVoid},
		{"storageLoad", []ir.TypeRef{wordPtr, wordPtr}, ir.TypeVoid},
		{"storageStore", []ir.TypeRef{wordPtr, wordPtr}, ir.TypeVoid},
		{"getTxGasPrice", []ir.TypeRef{wordPtr}, ir.TypeVoid},
		{"getTxOrigin", []ir.TypeRef{wordPtr}, ir.TypeVoid},
		{"getBlockCoinbase", []ir.TypeRef{wordPtr}, ir.TypeVoid},
		{"getBlockDifficulty", []ir.TypeRef{wordPtr}, ir.TypeVoid},
		{"getBlockGasLimit", nil, word},
		{"getBlockNumber", nil, word},
		{"getBlockTimestamp", nil, word},
		{"getBlockHash", []ir.TypeRef{word, wordPtr}, word},
		{"keccak256", []ir.TypeRef{wordPtr, word, wordPtr}, ir.TypeVoid},
		{"sha256", []ir.TypeRef{wordPtr, word, wordPtr}, ir.TypeVoid},
		{"bswap256", []ir.TypeRef{wordPtr, wordPtr}, ir.TypeVoid},
		{"memcpy", []ir.TypeRef{wordPtr, wordPtr, word}, ir.TypeVoid},
		{"print32", []ir.TypeRef{wordPtr}, ir.TypeVoid},
	}
}

// DeclareAll registers every environment function as an extern
// declaration on b, so the driver need not repeat the fixed list.
func DeclareAll(b *ir.Builder, word ir.TypeRef) {
	for _, fn := range Functions(word) {
		b.DeclareExtern(fn.Name, fn.Params, fn.Returns)
	}
}
