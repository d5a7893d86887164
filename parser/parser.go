// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent / precedence-climbing
// parser for the contract language.
//
// Design overview:
//   - Declarations are parsed with straightforward recursive descent.
//   - Expressions are parsed with a Pratt (precedence-climbing) scheme.
//   - Errors are collected rather than aborting; after reporting one the
//     parser keeps going from its current token so later declarations
//     still get parsed.
//   - A two-token (cur/peek) lookahead window sits directly on top of the
//     scanner.
package parser

import (
	"strconv"
	"strings"

	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/diag"
	"github.com/probechain/solc/scanner"
	"github.com/probechain/solc/scope"
	"github.com/probechain/solc/token"
)

// lexedMethod buffers a not-yet-parsed function body, deferred so that
// bodies are only walked once every contract-level name is known.
type lexedMethod struct {
	fn     *ast.FunctionDecl
	tokens []token.Token
}

// Parser holds the mutable state of one parse.
type Parser struct {
	lex     *scanner.Scanner
	cur     token.Token
	peek    token.Token
	diags   *diag.Engine
	actions *scope.Actions

	pending []*lexedMethod
}

func newParser(filename, source string) *Parser {
	p := &Parser{
		lex:     scanner.New(filename, source),
		diags:   diag.NewEngine(),
		actions: scope.NewActions(),
	}
	p.advance()
	p.advance()
	return p
}

// Parse tokenizes and parses source, returning the root SourceUnit and the
// diagnostics engine that collected every error/warning along the way.
func Parse(filename, source string) (*ast.SourceUnit, *diag.Engine) {
	p := newParser(filename, source)
	unit := p.parseSourceUnit()
	return unit, p.diags
}

// ---------------------------------------------------------------------------
// Token navigation
// ---------------------------------------------------------------------------

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Consume()
}

func (p *Parser) at(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekAt(k token.Kind) bool { return p.peek.Kind == k }

// expect consumes cur if it matches k, reporting a diagnostic and leaving
// cur untouched otherwise.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.cur.Kind != k {
		p.diags.Report(p.cur.Pos, diag.ErrExpected).Arg(k.String())
		return p.cur, false
	}
	t := p.cur
	p.advance()
	return t, true
}

// expectSemi absorbs a stray ')' or ']' immediately before ';' rather than
// reporting it twice.
func (p *Parser) expectSemi() {
	if p.at(token.RPAREN) || p.at(token.RBRACKET) {
		p.diags.Report(p.cur.Pos, diag.ErrExtraneousTokenBeforeSemi)
		p.advance()
	}
	p.expect(token.SEMICOLON)
}

// recover skips tokens until a semicolon or closing brace, restoring the
// parser to a position where the next declaration/statement can be tried.
func (p *Parser) recover() {
	for !p.at(token.SEMICOLON) && !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.advance()
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
}

func isTypeStartToken(k token.Kind) bool {
	return k.IsElementaryTypeKeyword() || k == token.KW_MAPPING || k == token.IDENTIFIER
}

// ---------------------------------------------------------------------------
// Top-level loop
// ---------------------------------------------------------------------------

func (p *Parser) parseSourceUnit() *ast.SourceUnit {
	unit := &ast.SourceUnit{}
	for !p.at(token.EOF) {
		switch {
		case p.at(token.KW_PRAGMA):
			unit.Declarations = append(unit.Declarations, p.parsePragma())
		case p.at(token.KW_IMPORT):
			for !p.at(token.SEMICOLON) && !p.at(token.EOF) {
				p.advance()
			}
			if p.at(token.SEMICOLON) {
				p.advance()
			}
		case p.at(token.KW_CONTRACT), p.at(token.KW_INTERFACE), p.at(token.KW_LIBRARY):
			unit.Declarations = append(unit.Declarations, p.parseContractDefinition())
		default:
			p.advance()
		}
	}
	return unit
}

func (p *Parser) parsePragma() *ast.PragmaDirective {
	tok := p.cur
	p.advance()
	var toks []token.Token
	for !p.at(token.SEMICOLON) && !p.at(token.EOF) {
		toks = append(toks, p.cur)
		p.advance()
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return &ast.PragmaDirective{Token: tok, Tokens: toks}
}

// ---------------------------------------------------------------------------
// 4.2.2 Contract definition
// ---------------------------------------------------------------------------

func (p *Parser) parseContractDefinition() *ast.ContractDecl {
	kindTok := p.cur
	var kind ast.ContractKind
	switch kindTok.Kind {
	case token.KW_INTERFACE:
		kind = ast.Interface
	case token.KW_LIBRARY:
		kind = ast.Library
	default:
		kind = ast.Contract
	}
	p.advance()

	nameTok, _ := p.expect(token.IDENTIFIER)
	cd := &ast.ContractDecl{Token: kindTok, Kind: kind, Name: nameTok.Literal}

	if p.at(token.KW_IS) {
		p.advance()
		for {
			base := &ast.InheritanceSpecifier{Token: p.cur}
			nameTok, _ := p.expect(token.IDENTIFIER)
			base.BaseName = nameTok.Literal
			if p.at(token.LPAREN) {
				p.advance()
				for !p.at(token.RPAREN) && !p.at(token.EOF) {
					base.Arguments = append(base.Arguments, p.parseExpression())
					if p.at(token.COMMA) {
						p.advance()
					}
				}
				p.expect(token.RPAREN)
			}
			cd.BaseContracts = append(cd.BaseContracts, base)
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}

	p.expect(token.LBRACE)
	p.actions.PushScope(0)

	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		switch {
		case p.at(token.KW_FUNCTION), p.at(token.KW_CONSTRUCTOR):
			p.parseFunctionDefinition(cd)
		case p.at(token.KW_STRUCT), p.at(token.KW_ENUM), p.at(token.KW_MODIFIER), p.at(token.KW_USING):
			p.diags.Report(p.cur.Pos, diag.ErrUnimplementedToken).Arg(p.cur.Kind.String())
			for !p.at(token.RBRACE) && !p.at(token.EOF) {
				p.advance()
			}
		case p.at(token.KW_EVENT):
			p.parseEventDefinition(cd)
		case isTypeStartToken(p.cur.Kind):
			vd := p.parseVariableDeclaration(varDeclOptions{
				isStateVariable:   true,
				allowInitialValue: true,
			})
			p.expectSemi()
			cd.Members = append(cd.Members, vd)
		default:
			p.diags.Report(p.cur.Pos, diag.ErrExpectedContractPart)
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	// Buffered bodies are parsed while the contract scope is still open.
	for _, lm := range p.pending {
		p.parseLexedMethodDef(lm)
	}
	p.pending = nil
	p.actions.PopScope()
	return cd
}

// ---------------------------------------------------------------------------
// Function definitions
// ---------------------------------------------------------------------------

func (p *Parser) parseFunctionDefinition(cd *ast.ContractDecl) {
	isCtor := p.at(token.KW_CONSTRUCTOR)
	fnTok := p.cur
	p.advance()

	fn := &ast.FunctionDecl{Token: fnTok}
	isFallback := false
	switch {
	case isCtor:
		fn.Name = ast.ConstructorName
		fn.IsConstructor = true
	case p.at(token.LPAREN):
		fn.Name = ast.FallbackName
		fn.IsFallback = true
		isFallback = true
	default:
		nameTok, _ := p.expect(token.IDENTIFIER)
		fn.Name = nameTok.Literal
	}

	p.expect(token.LPAREN)
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		fn.Params = append(fn.Params, p.parseVariableDeclaration(varDeclOptions{
			allowEmptyName:         true,
			allowLocationSpecifier: true,
		}))
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)

modifierLoop:
	for {
		switch p.cur.Kind {
		case token.KW_PUBLIC:
			fn.Visibility = ast.VisPublic
			p.advance()
		case token.KW_PRIVATE:
			fn.Visibility = ast.VisPrivate
			p.advance()
		case token.KW_INTERNAL:
			fn.Visibility = ast.VisInternal
			p.advance()
		case token.KW_EXTERNAL:
			fn.Visibility = ast.VisExternal
			p.advance()
		case token.KW_PURE:
			fn.StateMutability = ast.Pure
			p.advance()
		case token.KW_VIEW:
			fn.StateMutability = ast.View
			p.advance()
		case token.KW_PAYABLE:
			fn.StateMutability = ast.Payable
			p.advance()
		case token.KW_CONSTANT:
			p.diags.ReportSeverity(p.cur.Pos, diag.WarnConstantRemoved, diag.Warning)
			p.advance()
		case token.IDENTIFIER:
			mi := &ast.ModifierInvocation{Token: p.cur, Name: p.cur.Literal}
			p.advance()
			if p.at(token.LPAREN) {
				p.advance()
				for !p.at(token.RPAREN) && !p.at(token.EOF) {
					mi.Args = append(mi.Args, p.parseExpression())
					if p.at(token.COMMA) {
						p.advance()
					}
				}
				p.expect(token.RPAREN)
			}
			fn.Modifiers = append(fn.Modifiers, mi)
		case token.KW_RETURNS:
			p.advance()
			p.expect(token.LPAREN)
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				fn.ReturnParams = append(fn.ReturnParams, p.parseVariableDeclaration(varDeclOptions{
					allowEmptyName:         true,
					allowLocationSpecifier: true,
				}))
				if p.at(token.COMMA) {
					p.advance()
				}
			}
			p.expect(token.RPAREN)
		default:
			break modifierLoop
		}
	}

	p.actions.CreateFunctionDecl(fn)

	if p.at(token.LBRACE) {
		tokens := p.consumeAndStoreUntilBrace()
		p.pending = append(p.pending, &lexedMethod{fn: fn, tokens: tokens})
	} else {
		p.expect(token.SEMICOLON)
	}

	switch {
	case isCtor:
		cd.Constructor = fn
	case isFallback:
		cd.Fallback = fn
	default:
		cd.Members = append(cd.Members, fn)
	}
}

// consumeAndStoreUntilBrace buffers a balanced `{ ... }` body, including
// the outer braces, without descending into it.
func (p *Parser) consumeAndStoreUntilBrace() []token.Token {
	var toks []token.Token
	depthBrace, depthParen, depthBracket := 0, 0, 0
	for {
		switch p.cur.Kind {
		case token.LBRACE:
			depthBrace++
		case token.RBRACE:
			depthBrace--
		case token.LPAREN:
			depthParen++
		case token.RPAREN:
			depthParen--
		case token.LBRACKET:
			depthBracket++
		case token.RBRACKET:
			depthBracket--
		case token.EOF:
			return toks
		}
		toks = append(toks, p.cur)
		done := depthBrace == 0 && depthParen == 0 && depthBracket == 0 && len(toks) > 0
		p.advance()
		if done {
			return toks
		}
	}
}

// parseLexedMethodDef re-scopes and parses one buffered body, replaying its
// token stream through a scanner of its own, so the live token stream is
// left untouched. Names inside the body see every contract-scope
// declaration, including ones declared textually after this function.
func (p *Parser) parseLexedMethodDef(lm *lexedMethod) {
	saveLex, saveCur, savePeek := p.lex, p.cur, p.peek
	p.lex = scanner.New("", "")
	p.lex.EnterTokenStream(lm.tokens)
	p.cur = p.lex.Consume()
	p.peek = p.lex.Consume()

	p.actions.PushScope(scope.FunctionScope)
	for _, param := range lm.fn.Params {
		if param.Name != "" {
			p.actions.AddDecl(param.Name, param)
		}
	}
	for _, ret := range lm.fn.ReturnParams {
		if ret.Name != "" {
			p.actions.AddDecl(ret.Name, ret)
		}
	}
	p.actions.SetFnReturnTypes(returnTypesOf(lm.fn))

	lm.fn.Body = p.parseBlock()

	p.actions.EraseFnReturnTypes()
	p.actions.PopScope()

	p.lex, p.cur, p.peek = saveLex, saveCur, savePeek
}

func returnTypesOf(fn *ast.FunctionDecl) []ast.Type {
	out := make([]ast.Type, len(fn.ReturnParams))
	for i, r := range fn.ReturnParams {
		out[i] = r.Type
	}
	return out
}

// ---------------------------------------------------------------------------
// Event definitions
// ---------------------------------------------------------------------------

func (p *Parser) parseEventDefinition(cd *ast.ContractDecl) {
	evTok := p.cur
	p.advance()
	nameTok, _ := p.expect(token.IDENTIFIER)
	ev := &ast.EventDecl{Token: evTok, Name: nameTok.Literal}

	p.expect(token.LPAREN)
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		ev.Params = append(ev.Params, p.parseVariableDeclaration(varDeclOptions{
			allowEmptyName: true,
			allowIndexed:   true,
		}))
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)

	if p.at(token.KW_ANONYMOUS) {
		ev.Anonymous = true
		p.advance()
	}
	p.expectSemi()

	limit := 3
	if !ev.Anonymous {
		if len(ev.IndexedParams()) > limit {
			p.diags.Report(evTok.Pos, diag.ErrTooManyIndexedParams)
		}
	}

	p.actions.CreateEventDecl(ev)
	cd.Events = append(cd.Events, ev)
}

// ---------------------------------------------------------------------------
// Variable-declaration options and type-name parsing
// ---------------------------------------------------------------------------

type varDeclOptions struct {
	allowVar               bool
	allowIndexed           bool
	allowEmptyName         bool
	allowInitialValue      bool
	allowLocationSpecifier bool
	isStateVariable        bool
}

func (p *Parser) parseVariableDeclaration(opts varDeclOptions) *ast.VarDecl {
	startTok := p.cur
	typ := p.parseTypeName(true) // `var` is always a recognized fallback token

	loc := ast.Unspecified
	locCount := 0
locLoop:
	for opts.allowLocationSpecifier {
		var l ast.DataLocation
		switch p.cur.Kind {
		case token.KW_MEMORY:
			l = ast.Memory
		case token.KW_STORAGE:
			l = ast.Storage
		case token.KW_CALLDATA:
			l = ast.CallData
		default:
			break locLoop
		}
		if locCount > 0 {
			p.diags.Report(p.cur.Pos, diag.ErrMultipleVariableLocation)
		}
		loc = l
		locCount++
		p.advance()
	}
	if locCount > 0 && typ == nil {
		p.diags.Report(startTok.Pos, diag.ErrLocationWithoutTypename)
	}

	visibility := ast.VisDefault
	isConstant := false
	indexed := false
modLoop:
	for {
		switch p.cur.Kind {
		case token.KW_PUBLIC:
			visibility = ast.VisPublic
		case token.KW_PRIVATE:
			visibility = ast.VisPrivate
		case token.KW_INTERNAL:
			visibility = ast.VisInternal
		case token.KW_CONSTANT:
			isConstant = true
		case token.KW_INDEXED:
			if !opts.allowIndexed {
				break modLoop
			}
			indexed = true
		default:
			break modLoop
		}
		p.advance()
	}

	name := ""
	if p.at(token.IDENTIFIER) || p.at(token.RAW_IDENTIFIER) {
		name = p.cur.Literal
		p.advance()
	} else if !opts.allowEmptyName {
		p.diags.Report(p.cur.Pos, diag.ErrExpected).Arg("identifier")
	}

	vd := &ast.VarDecl{
		Token:           startTok,
		Type:            typ,
		Name:            name,
		Visibility:      visibility,
		IsStateVariable: opts.isStateVariable,
		IsIndexed:       indexed,
		IsConstant:      isConstant,
		DataLocation:    loc,
	}

	if opts.allowInitialValue && p.at(token.ASSIGN) {
		p.advance()
		vd.InitialValue = p.parseExpression()
	}
	if isConstant && vd.InitialValue == nil {
		p.diags.Report(startTok.Pos, diag.ErrExpectedAfter).Arg("initializer").Arg("constant")
	}

	if name != "" {
		p.actions.AddDecl(name, vd)
	}
	return vd
}

// parseTypeName parses one elementary, mapping, array, or user-defined type
// name. Returns nil for the `var` keyword, which defers type inference to
// code generation.
func (p *Parser) parseTypeName(allowVar bool) ast.Type {
	var typ ast.Type
	switch {
	case allowVar && p.at(token.KW_VAR):
		p.advance()
		return nil
	case p.at(token.KW_BOOL):
		p.advance()
		typ = ast.BoolType{}
	case p.at(token.KW_ADDRESS):
		p.advance()
		mut := ast.NonPayable
		if p.at(token.KW_PAYABLE) {
			p.advance()
			mut = ast.Payable
		}
		typ = ast.AddressType{Mutability: mut}
	case p.at(token.KW_BYTES):
		p.advance()
		typ = ast.BytesType{}
	case p.at(token.KW_STRING):
		p.advance()
		typ = ast.StringType{}
	case p.at(token.KW_UINT):
		typ = parseIntKindLiteral(p.cur.Literal, false)
		p.advance()
	case p.at(token.KW_INT):
		typ = parseIntKindLiteral(p.cur.Literal, true)
		p.advance()
	case p.at(token.KW_BYTESN):
		typ = parseFixedBytesLiteral(p.cur.Literal)
		p.advance()
	case p.at(token.KW_MAPPING):
		p.advance()
		p.expect(token.LPAREN)
		key := p.parseTypeName(false)
		p.expect(token.FATARROW)
		value := p.parseTypeName(true)
		p.expect(token.RPAREN)
		typ = ast.MappingType{Key: key, Value: value}
	case p.at(token.IDENTIFIER):
		typ = ast.UserDefinedType{Name: p.cur.Literal}
		p.advance()
	default:
		p.diags.Report(p.cur.Pos, diag.ErrExpected).Arg("type name")
		return nil
	}

	for p.at(token.LBRACKET) {
		p.advance()
		length := -1
		if !p.at(token.RBRACKET) {
			if lit, ok := p.parseExpression().(*ast.NumberLit); ok {
				if n, err := strconv.Atoi(lit.Raw); err == nil {
					length = n
				}
			}
		}
		p.expect(token.RBRACKET)
		typ = ast.ArrayType{Elem: typ, Len: length, Location: ast.Unspecified}
	}
	return typ
}

func parseIntKindLiteral(lit string, signed bool) ast.IntegerType {
	prefix := "uint"
	if signed {
		prefix = "int"
	}
	if lit == prefix {
		return ast.NewIntegerType(signed, 0, true)
	}
	n, _ := strconv.Atoi(strings.TrimPrefix(lit, prefix))
	return ast.NewIntegerType(signed, n, false)
}

func parseFixedBytesLiteral(lit string) ast.FixedBytesType {
	n, _ := strconv.Atoi(strings.TrimPrefix(lit, "bytes"))
	return ast.FixedBytesType{ByteKind: ast.ByteKind{N: n}}
}
