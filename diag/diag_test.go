// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package diag

import (
	"strings"
	"testing"

	"github.com/probechain/solc/token"
)

func TestReportChaining(t *testing.T) {
	eng := NewEngine()
	loc := token.Position{File: "t.sol", Line: 3, Column: 5}
	eng.Report(loc, ErrExpected).Arg("';'")

	if !eng.HasErrors() {
		t.Fatalf("HasErrors() should be true after a Report")
	}
	got := eng.Diagnostics()[0].String()
	if !strings.Contains(got, "expected ';'") {
		t.Errorf("String() = %q, want it to contain \"expected ';'\"", got)
	}
}

func TestWarningsDoNotCountAsErrors(t *testing.T) {
	eng := NewEngine()
	eng.ReportSeverity(token.Position{}, WarnConstantRemoved, Warning)
	if eng.HasErrors() {
		t.Errorf("a Warning-severity diagnostic should not trip HasErrors()")
	}
}

func TestExpectedAfterTwoArgs(t *testing.T) {
	eng := NewEngine()
	eng.Report(token.Position{}, ErrExpectedAfter).Arg("identifier").Arg("'function'")
	got := eng.Diagnostics()[0].String()
	if !strings.Contains(got, "expected identifier after 'function'") {
		t.Errorf("String() = %q", got)
	}
}
