// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package codegen lowers a parsed, scope-resolved AST to the ir package's
// module representation. Emission order per contract is constructor,
// dispatcher, functions, fallback — events contribute no standalone function
// but their canonical signatures are consulted by `emit` lowering in
// body.go.
package codegen

import (
	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/diag"
	"github.com/probechain/solc/environment"
	"github.com/probechain/solc/ir"
	"github.com/probechain/solc/typecache"
)

// DispatcherEntryName is the platform's entry-point function name, whose
// body is the selector dispatcher.
const DispatcherEntryName = "main"

// Compiler holds the state shared across every contract in a source unit.
type Compiler struct {
	diags  *diag.Engine
	target ir.Target
	word   ir.TypeRef
}

// New creates a Compiler targeting target.
func New(target ir.Target) *Compiler {
	return &Compiler{diags: diag.NewEngine(), target: target, word: target.WordType()}
}

// Diagnostics returns every diagnostic code generation has reported so far.
func (c *Compiler) Diagnostics() *diag.Engine { return c.diags }

// Compile lowers every contract declared in unit into one ir.Module.
// Interfaces and libraries are skipped and contribute nothing to the
// module.
func Compile(unit *ast.SourceUnit, target ir.Target) (*ir.Module, *diag.Engine) {
	c := New(target)
	b := ir.NewBuilder(moduleName(unit), target)
	environment.DeclareAll(b, c.word)

	for _, decl := range unit.Declarations {
		cd, ok := decl.(*ast.ContractDecl)
		if !ok || cd.Kind != ast.Contract {
			continue
		}
		c.compileContract(b, cd)
	}
	return b.Module(), c.diags
}

func moduleName(unit *ast.SourceUnit) string {
	for _, decl := range unit.Declarations {
		if cd, ok := decl.(*ast.ContractDecl); ok && cd.Kind == ast.Contract {
			return cd.Name
		}
	}
	return "module"
}

func (c *Compiler) compileContract(b *ir.Builder, cd *ast.ContractDecl) {
	cache := typecache.New()
	cache.AssignAll(cd.StateVariables())

	if cd.Constructor != nil {
		c.compileFunction(b, cd, cache, cd.Constructor)
	}
	c.compileDispatcher(b, cd, cache)
	for _, fn := range allNonSpecialFunctions(cd) {
		c.compileFunction(b, cd, cache, fn)
	}
	if cd.Fallback != nil {
		c.compileFunction(b, cd, cache, cd.Fallback)
	}
	// Events contribute no IR function of their own; they are consulted
	// directly by name from emit-statement lowering in body.go.
}

// allNonSpecialFunctions returns every ordinary (non-constructor,
// non-fallback) function member in declaration order.
func allNonSpecialFunctions(cd *ast.ContractDecl) []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	for _, m := range cd.Members {
		if fn, ok := m.(*ast.FunctionDecl); ok {
			out = append(out, fn)
		}
	}
	return out
}

func functionIRName(fn *ast.FunctionDecl) string {
	if fn.IsConstructor {
		return ast.ConstructorName
	}
	if fn.IsFallback {
		return ast.FallbackName
	}
	return fn.Name
}

func (c *Compiler) compileFunction(b *ir.Builder, cd *ast.ContractDecl, cache *typecache.Cache, fn *ast.FunctionDecl) {
	ret := c.word
	if len(fn.ReturnParams) == 0 {
		ret = ir.TypeVoid
	}
	irFn := b.StartFunction(functionIRName(fn), nil, ret)

	fc := c.newFuncCompiler(b, cd, cache, fn)
	params := make([]ir.Value, len(fn.Params))
	for i, p := range fn.Params {
		v := b.NewValue(c.word)
		params[i] = v
		fc.declareLocal(p, v)
	}
	irFn.Params = params
	fc.compileBody()
}
