// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Expression grammar: precedence climbing over a binary-operator table,
// with the ternary and assignment forms handled at the top level.
package parser

import (
	"github.com/probechain/solc/ast"
	"github.com/probechain/solc/diag"
	"github.com/probechain/solc/token"
)

type precedence int

const (
	precOr precedence = iota + 1
	precAnd
	precCmp
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdd
	precMul
	precExp
)

var infixPrecedence = map[token.Kind]precedence{
	token.OR:      precOr,
	token.AND:     precAnd,
	token.EQ:      precCmp,
	token.NEQ:     precCmp,
	token.LT:      precCmp,
	token.GT:      precCmp,
	token.LTE:     precCmp,
	token.GTE:     precCmp,
	token.PIPE:    precBitOr,
	token.CARET:   precBitXor,
	token.AMP:     precBitAnd,
	token.SHL:     precShift,
	token.SHR:     precShift,
	token.PLUS:    precAdd,
	token.MINUS:   precAdd,
	token.STAR:    precMul,
	token.SLASH:   precMul,
	token.PERCENT: precMul,
	token.DBLSTAR: precExp,
}

func isAssignOp(k token.Kind) bool {
	switch k {
	case token.ASSIGN, token.PLUSEQ, token.MINUSEQ, token.STAREQ, token.SLASHEQ,
		token.PERCENTEQ, token.AMPEQ, token.PIPEEQ, token.CARETEQ, token.SHLEQ, token.SHREQ:
		return true
	}
	return false
}

func isPrefixOp(k token.Kind) bool {
	switch k {
	case token.INC, token.DEC, token.PLUS, token.MINUS, token.BANG, token.TILDE, token.AMP, token.STAR:
		return true
	}
	return false
}

// parseExpression is `parse_binary(min) [? then : else] [= rhs]`.
func (p *Parser) parseExpression() ast.Expression {
	lhs := p.parseBinary(precOr)

	if p.at(token.QUESTION) {
		qTok := p.cur
		p.advance()
		then := p.parseExpression()
		p.expect(token.COLON)
		els := p.parseExpression()
		lhs = &ast.TernaryExpr{Token: qTok, Cond: lhs, Then: then, Else: els}
	}

	if isAssignOp(p.cur.Kind) {
		opTok := p.cur
		op := opTok.Literal
		p.advance()
		rhs := p.parseExpression()
		be, err := p.actions.CreateBinOp(opTok, op, lhs, rhs)
		if err != nil {
			p.diags.Report(opTok.Pos, diag.ErrExpected).Arg("assignable operand")
		}
		return be
	}
	return lhs
}

// parseBinary repeatedly folds infix operators of precedence >= min,
// right-recursing at prec+1 for left-associativity (prec for `**`, which
// is right-associative).
func (p *Parser) parseBinary(min precedence) ast.Expression {
	lhs := p.parseUnary()
	for {
		prec, ok := infixPrecedence[p.cur.Kind]
		if !ok || prec < min {
			return lhs
		}
		opTok := p.cur
		op := opTok.Literal
		p.advance()

		next := prec + 1
		if opTok.Kind == token.DBLSTAR {
			next = prec
		}
		rhs := p.parseBinary(next)

		be, err := p.actions.CreateBinOp(opTok, op, lhs, rhs)
		if err != nil {
			p.diags.Report(opTok.Pos, diag.ErrExpected).Arg("compatible operand types")
		}
		lhs = be
	}
}

// parseUnary handles prefix `++ -- + - ! ~ & *` and, after the postfix
// expression, recognizes trailing `++`/`--`.
func (p *Parser) parseUnary() ast.Expression {
	if isPrefixOp(p.cur.Kind) {
		opTok := p.cur
		op := opTok.Literal
		p.advance()
		sub := p.parseUnary()
		return &ast.UnaryExpr{Token: opTok, Operator: op, Sub: sub, IsPrefix: true}
	}
	e := p.parseLHS()
	if p.at(token.INC) || p.at(token.DEC) {
		opTok := p.cur
		op := opTok.Literal
		p.advance()
		return &ast.UnaryExpr{Token: opTok, Operator: op, Sub: e, IsPrefix: false}
	}
	return e
}

// parseLHS accumulates `[index]`, `.member`, and `(args)` suffixes onto a
// primary expression.
func (p *Parser) parseLHS() ast.Expression {
	e := p.parsePrimary()
	for {
		switch p.cur.Kind {
		case token.LBRACKET:
			brTok := p.cur
			p.advance()
			idx := p.parseExpression()
			p.expect(token.RBRACKET)
			ne, err := p.actions.CreateIndexAccess(e, idx)
			ne.Token = brTok
			if err != nil {
				p.diags.Report(brTok.Pos, diag.ErrExpected).Arg("indexable operand")
			}
			e = ne
		case token.DOT:
			p.advance()
			fieldTok, _ := p.expect(token.IDENTIFIER)
			e = p.actions.CreateMemberExpr(e, fieldTok)
		case token.LPAREN:
			p.advance()
			var args []ast.Expression
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				args = append(args, p.parseExpression())
				if p.at(token.COMMA) {
					p.advance()
				}
			}
			p.expect(token.RPAREN)
			e = p.actions.CreateCallExpr(e, args)
		default:
			return e
		}
	}
}

// parsePrimary handles elementary-type explicit casts, literals,
// identifiers, `new T`, and parenthesized expressions.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur

	if tok.Kind.IsElementaryTypeKeyword() && p.peekAt(token.LPAREN) {
		return p.parseExplicitCast()
	}

	switch tok.Kind {
	case token.KW_TRUE:
		p.advance()
		return &ast.BooleanLit{Token: tok, Value: true}
	case token.KW_FALSE:
		p.advance()
		return &ast.BooleanLit{Token: tok, Value: false}
	case token.NUMBER:
		p.advance()
		return &ast.NumberLit{Token: tok, Raw: tok.Literal}
	case token.STRING_LITERAL:
		p.advance()
		return &ast.StringLit{Token: tok, Value: unescapeString(tok.Literal)}
	case token.HEX_STRING_LITERAL:
		p.advance()
		return &ast.StringLit{Token: tok, Value: decodeHexLiteral(tok.Literal), IsHex: true}
	case token.IDENTIFIER, token.RAW_IDENTIFIER:
		p.advance()
		id, err := p.actions.CreateIdentifier(tok)
		if err != nil {
			p.diags.Report(tok.Pos, diag.ErrExpected).Arg("a declared name")
		}
		return id
	case token.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return &ast.ParenExpr{Token: tok, Sub: inner}
	case token.KW_NEW:
		p.advance()
		t := p.parseTypeName(false)
		return &ast.NewExpr{Token: tok, NewType: t}
	default:
		p.diags.Report(tok.Pos, diag.ErrExpected).Arg("an expression")
		if !p.at(token.EOF) {
			p.advance()
		}
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}
}

// parseExplicitCast handles `T(x)` where T is an elementary type keyword.
// `address(x)` always targets a payable address, matching the source
// language's rule that the cast result may be sent value.
func (p *Parser) parseExplicitCast() ast.Expression {
	castTok := p.cur
	var target ast.Type
	switch castTok.Kind {
	case token.KW_BOOL:
		target = ast.BoolType{}
	case token.KW_ADDRESS:
		target = ast.AddressType{Mutability: ast.Payable}
	case token.KW_BYTES:
		target = ast.BytesType{}
	case token.KW_STRING:
		target = ast.StringType{}
	case token.KW_UINT:
		target = parseIntKindLiteral(castTok.Literal, false)
	case token.KW_INT:
		target = parseIntKindLiteral(castTok.Literal, true)
	case token.KW_BYTESN:
		target = parseFixedBytesLiteral(castTok.Literal)
	}
	p.advance() // consume the type keyword
	p.advance() // consume '('
	sub := p.parseExpression()
	p.expect(token.RPAREN)
	e := &ast.ExplicitCastExpr{Token: castTok, Sub: sub, Kind: ast.CastExplicit, To: target}
	e.SetType(target)
	return e
}
