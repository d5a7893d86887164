// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package scanner

import (
	"testing"

	"github.com/probechain/solc/token"
)

func consumeAll(t *testing.T, source string) []token.Token {
	t.Helper()
	s := New("test.sol", source)
	var out []token.Token
	for {
		tok := s.Consume()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestScannerLexesContractSkeleton(t *testing.T) {
	toks := consumeAll(t, `contract C { function get() public returns (uint256) { return 1; } }`)
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.KW_CONTRACT, token.IDENTIFIER, token.LBRACE,
		token.KW_FUNCTION, token.IDENTIFIER, token.LPAREN, token.RPAREN,
		token.KW_PUBLIC, token.KW_RETURNS, token.LPAREN, token.KW_UINT, token.RPAREN,
		token.LBRACE, token.KW_RETURN, token.NUMBER, token.SEMICOLON, token.RBRACE,
		token.RBRACE, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(kinds), kinds)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Fatalf("token %d: expected %s, got %s", i, k, kinds[i])
		}
	}
}

func TestScannerSkipsLineAndBlockComments(t *testing.T) {
	toks := consumeAll(t, "// a comment\nuint /* inline */ x;")
	if toks[0].Kind != token.KW_UINT {
		t.Fatalf("expected line comment to be skipped, got first token %s", toks[0].Kind)
	}
	if toks[1].Kind != token.IDENTIFIER || toks[1].Literal != "x" {
		t.Fatalf("expected block comment to be skipped, got %v", toks[1])
	}
}

func TestScannerStringLiteralStripsDelimiters(t *testing.T) {
	toks := consumeAll(t, `"hello"`)
	if toks[0].Kind != token.STRING_LITERAL {
		t.Fatalf("expected a string literal, got %s", toks[0].Kind)
	}
	if toks[0].Literal != "hello" {
		t.Fatalf("expected delimiters stripped, got %q", toks[0].Literal)
	}
}

func TestScannerPeekDoesNotConsume(t *testing.T) {
	s := New("test.sol", "uint x;")
	first := s.Peek()
	second := s.Peek()
	if first.Kind != second.Kind || first.Literal != second.Literal {
		t.Fatalf("Peek should be idempotent, got %v then %v", first, second)
	}
	consumed := s.Consume()
	if consumed.Kind != first.Kind {
		t.Fatalf("Consume should return what was peeked")
	}
}

func TestScannerEnterTokenStreamReplaysThenFallsBack(t *testing.T) {
	s := New("test.sol", "uint y;")
	replay := []token.Token{{Kind: token.IDENTIFIER, Literal: "replayed"}}
	s.EnterTokenStream(replay)
	if got := s.Consume(); got.Literal != "replayed" {
		t.Fatalf("expected the replayed token first, got %v", got)
	}
	if got := s.Peek(); got.Kind != token.KW_UINT {
		t.Fatalf("expected the scanner to fall back to the live source, got %s", got.Kind)
	}
}

func TestScannerLexesBareCaretAsXor(t *testing.T) {
	toks := consumeAll(t, "a ^ b")
	if toks[1].Kind != token.CARET {
		t.Fatalf("expected a bare '^' to lex as CARET, got %s", toks[1].Kind)
	}
}
