// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diag implements the diagnostics interface the parser and scope
// report through: a collect-and-continue pattern with a chainable builder
// and typed diagnostic IDs, so callers can write
// `eng.Report(loc, id).Arg(x).Arg(y)` instead of formatting error strings
// inline.
package diag

import (
	"fmt"
	"strings"

	"github.com/probechain/solc/token"
)

// ID enumerates the diagnostic identifiers the core reports.
type ID int

const (
	ErrExpected ID = iota
	ErrExpectedAfter
	ErrExpectedContractKind
	ErrExpectedVisibility
	ErrExpectedStateMutability
	ErrExpectedContractPart
	ErrExpectedEvent
	ErrUnknownPragma
	ErrUnimplementedToken
	ErrMultipleVariableLocation
	ErrLocationWithoutTypename
	ErrExtraneousTokenBeforeSemi
	ErrTrailingComma
	WarnConstantRemoved
	ErrTooManyIndexedParams
)

var messages = map[ID]string{
	ErrExpected:                  "expected %s",
	ErrExpectedAfter:             "expected %s after %s",
	ErrExpectedContractKind:      "expected 'contract', 'interface' or 'library'",
	ErrExpectedVisibility:        "expected a visibility specifier",
	ErrExpectedStateMutability:   "expected a state-mutability specifier",
	ErrExpectedContractPart:      "expected a contract member declaration",
	ErrExpectedEvent:             "expected event declaration",
	ErrUnknownPragma:             "unknown pragma ignored",
	ErrUnimplementedToken:        "unimplemented construct: %s",
	ErrMultipleVariableLocation:  "multiple data location specifiers",
	ErrLocationWithoutTypename:   "data location can only be specified for a type",
	ErrExtraneousTokenBeforeSemi: "extraneous token before ';'",
	ErrTrailingComma:             "trailing comma",
	WarnConstantRemoved:          "constant modifier removed",
	ErrTooManyIndexedParams:      "more than 3 indexed parameters in a non-anonymous event",
}

// Severity classifies a diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

// Diagnostic is one reported message, produced by Engine.Report and
// finished by a chain of Arg calls.
type Diagnostic struct {
	Loc      token.Position
	ID       ID
	Severity Severity
	args     []interface{}
}

// Arg appends one formatting argument and returns the receiver, so callers
// can chain `eng.Report(loc, id).Arg(x).Arg(y)`.
func (d *Diagnostic) Arg(a interface{}) *Diagnostic {
	d.args = append(d.args, a)
	return d
}

func (d *Diagnostic) String() string {
	format := messages[d.ID]
	msg := format
	if strings.Contains(format, "%") && len(d.args) > 0 {
		msg = fmt.Sprintf(format, d.args...)
	}
	prefix := "error"
	switch d.Severity {
	case Warning:
		prefix = "warning"
	case Fatal:
		prefix = "fatal error"
	}
	return fmt.Sprintf("%s: %s: %s", d.Loc, prefix, msg)
}

// Engine collects diagnostics and never panics on Report; callers decide
// whether to abort based on the returned Diagnostic's Severity.
type Engine struct {
	diags []*Diagnostic
}

// NewEngine creates an empty diagnostics engine.
func NewEngine() *Engine { return &Engine{} }

// Report records a new diagnostic at Error severity and returns it for
// chaining. Use ReportSeverity for warnings/fatals.
func (e *Engine) Report(loc token.Position, id ID) *Diagnostic {
	return e.ReportSeverity(loc, id, Error)
}

func (e *Engine) ReportSeverity(loc token.Position, id ID, sev Severity) *Diagnostic {
	d := &Diagnostic{Loc: loc, ID: id, Severity: sev}
	e.diags = append(e.diags, d)
	return d
}

// Diagnostics returns every diagnostic reported so far, in report order.
func (e *Engine) Diagnostics() []*Diagnostic { return e.diags }

// HasErrors reports whether any diagnostic at Error or Fatal severity was
// recorded.
func (e *Engine) HasErrors() bool {
	for _, d := range e.diags {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}
