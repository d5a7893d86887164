// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Statement grammar and the simple-statement / declaration disambiguation
// that distinguishes a local declaration from a bare expression statement.
package parser

import (
	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/diag"
	"github.com/probechain/solc/scope"
	"github.com/probechain/solc/token"
)

func (p *Parser) parseBlock() *ast.Block {
	tok, _ := p.expect(token.LBRACE)
	block := &ast.Block{Token: tok}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		block.Stmts = append(block.Stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.LBRACE:
		return p.parseBlock()
	case token.KW_IF:
		return p.parseIfStmt()
	case token.KW_WHILE:
		return p.parseWhileStmt()
	case token.KW_DO:
		return p.parseDoWhileStmt()
	case token.KW_FOR:
		return p.parseForStmt()
	case token.KW_CONTINUE:
		tok := p.cur
		p.advance()
		if !p.actions.InLoop() {
			p.diags.Report(tok.Pos, diag.ErrExpected).Arg("continue inside a loop")
		}
		p.expectSemi()
		return &ast.ContinueStmt{Token: tok}
	case token.KW_BREAK:
		tok := p.cur
		p.advance()
		if !p.actions.InLoop() {
			p.diags.Report(tok.Pos, diag.ErrExpected).Arg("break inside a loop")
		}
		p.expectSemi()
		return &ast.BreakStmt{Token: tok}
	case token.KW_RETURN:
		tok := p.cur
		p.advance()
		var val ast.Expression
		if !p.at(token.SEMICOLON) {
			val = p.parseExpression()
		}
		rs, err := p.actions.CreateReturnStmt(tok, val)
		if err != nil {
			p.diags.Report(tok.Pos, diag.ErrExpected).Arg("return outside a function with declared returns")
		}
		p.expectSemi()
		return rs
	case token.KW_EMIT:
		tok := p.cur
		p.advance()
		callee := p.parseLHS()
		call, ok := callee.(*ast.CallExpr)
		if !ok {
			p.diags.Report(tok.Pos, diag.ErrExpected).Arg("an event call")
			call = &ast.CallExpr{Callee: callee}
		}
		p.expectSemi()
		return &ast.EmitStmt{Token: tok, Call: call}
	case token.KW_ASSEMBLY:
		tok := p.cur
		p.advance()
		p.diags.Report(tok.Pos, diag.ErrUnimplementedToken).Arg("assembly")
		p.consumeAndStoreUntilBrace()
		return &ast.ExprStmt{Token: tok, Expr: &ast.Identifier{Token: tok, Name: "<assembly>"}}
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()
	var els ast.Statement
	if p.at(token.KW_ELSE) {
		p.advance()
		els = p.parseStatement()
	}
	return &ast.IfStmt{Token: tok, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.actions.PushScope(scope.BreakScope | scope.ContinueScope)
	body := p.parseStatement()
	p.actions.PopScope()
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStmt() *ast.WhileStmt {
	tok := p.cur
	p.advance()
	p.actions.PushScope(scope.BreakScope | scope.ContinueScope)
	body := p.parseStatement()
	p.actions.PopScope()
	p.expect(token.KW_WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expectSemi()
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body, IsDoWhile: true}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	tok := p.cur
	p.advance()
	p.expect(token.LPAREN)
	p.actions.PushScope(scope.BreakScope | scope.ContinueScope)

	var init ast.Statement
	if p.at(token.SEMICOLON) {
		p.advance()
	} else {
		init = p.parseSimpleStatement()
	}

	var cond ast.Expression
	if !p.at(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)

	var step ast.Statement
	if !p.at(token.RPAREN) {
		stepTok := p.cur
		step = &ast.ExprStmt{Token: stepTok, Expr: p.parseExpression()}
	}
	p.expect(token.RPAREN)

	body := p.parseStatement()
	p.actions.PopScope()
	return &ast.ForStmt{Token: tok, Init: init, Cond: cond, Step: step, Body: body}
}

// ---------------------------------------------------------------------------
// Simple-statement disambiguation
// ---------------------------------------------------------------------------

func (p *Parser) parseSimpleStatement() ast.Statement {
	startTok := p.cur

	if p.at(token.LPAREN) && p.looksLikeTupleDecl() {
		return p.parseTupleDeclStatement(startTok)
	}
	if p.classifySimpleStatement() {
		return p.parseLocalDeclStatement(startTok)
	}
	expr := p.parseExpression()
	p.expectSemi()
	return &ast.ExprStmt{Token: startTok, Expr: expr}
}

// looksLikeTupleDecl recognizes the tuple-shaped multi-variable declaration
// `(T1 a, T2 b) = expr;` by checking whether a type or `var` immediately
// follows the opening paren.
func (p *Parser) looksLikeTupleDecl() bool {
	return isTypeStartToken(p.peek.Kind) || p.peek.Kind == token.KW_VAR
}

func (p *Parser) parseTupleDeclStatement(startTok token.Token) *ast.DeclStmt {
	p.advance() // consume '('
	var vars []*ast.VarDecl
	for {
		vars = append(vars, p.parseVariableDeclaration(varDeclOptions{
			allowEmptyName:         true,
			allowLocationSpecifier: true,
		}))
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	p.expect(token.ASSIGN)
	init := p.parseExpression()
	p.expectSemi()
	return &ast.DeclStmt{Token: startTok, Vars: vars, Init: init}
}

func (p *Parser) parseLocalDeclStatement(startTok token.Token) *ast.DeclStmt {
	vd := p.parseVariableDeclaration(varDeclOptions{allowLocationSpecifier: true})
	var init ast.Expression
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	}
	p.expectSemi()
	return &ast.DeclStmt{Token: startTok, Vars: []*ast.VarDecl{vd}, Init: init}
}

// classifySimpleStatement decides between VariableDeclaration and
// Expression for a bare, non-tuple simple statement. `mapping`/`var` are
// unconditionally declarations; an elementary type
// followed by a mutability keyword, or a type/identifier followed
// directly by a name-like token, is a declaration; anything followed by
// `[` or `.` is the ambiguous case resolved by classifyAfterPath.
func (p *Parser) classifySimpleStatement() bool {
	switch p.cur.Kind {
	case token.KW_MAPPING, token.KW_VAR:
		return true
	}
	if !isTypeStartToken(p.cur.Kind) {
		return false
	}
	if p.cur.Kind.IsElementaryTypeKeyword() {
		switch p.peek.Kind {
		case token.KW_PURE, token.KW_VIEW, token.KW_PAYABLE:
			return true
		case token.IDENTIFIER, token.RAW_IDENTIFIER, token.KW_MEMORY, token.KW_STORAGE, token.KW_CALLDATA:
			return true
		case token.LBRACKET, token.DOT:
			return p.classifyAfterPath()
		default:
			return false
		}
	}
	// p.cur is a plain IDENTIFIER.
	switch p.peek.Kind {
	case token.IDENTIFIER, token.RAW_IDENTIFIER, token.KW_MEMORY, token.KW_STORAGE, token.KW_CALLDATA:
		return true
	case token.LBRACKET, token.DOT:
		return p.classifyAfterPath()
	default:
		return false
	}
}

// classifyAfterPath resolves the ambiguous case of a single trailing
// `[expr]` or `.field` suffix — e.g. `x[7*20+3] a;` (declaration) versus
// `x[7*20+3] = 9;` (expression). It buffers the suffix plus the token that
// follows it, decides from that follow token, then replays the buffered
// tokens through the scanner so parsing continues unaffected either way.
// Chained suffixes (`x[i].y[j] a;`) are not disambiguated by this pass and
// fall through to the expression path.
func (p *Parser) classifyAfterPath() bool {
	var buffered []token.Token
	buffered = append(buffered, p.peek)

	if p.peek.Kind == token.LBRACKET {
		depth := 1
		for depth > 0 {
			t := p.lex.Consume()
			buffered = append(buffered, t)
			switch t.Kind {
			case token.LBRACKET:
				depth++
			case token.RBRACKET:
				depth--
			case token.EOF:
				depth = 0
			}
		}
	} else if p.peek.Kind == token.DOT {
		t := p.lex.Consume() // the field name
		buffered = append(buffered, t)
	}

	decision := p.lex.Consume()
	buffered = append(buffered, decision)

	isDecl := decision.Kind == token.IDENTIFIER || decision.Kind == token.RAW_IDENTIFIER ||
		decision.Kind == token.KW_MEMORY || decision.Kind == token.KW_STORAGE || decision.Kind == token.KW_CALLDATA

	p.lex.EnterTokenStream(buffered)
	p.peek = p.lex.Consume()
	return isDecl
}
