package syntax

import "github.com/dhamidi/noa/diagnostic"

func (p *parser) parseExpression() *Node {
	p.poll()
	return p.parseAssignment()
}

// parseAssignment is right associative: a = b = c is a = (b = c).
func (p *parser) parseAssignment() *Node {
	left := p.parseLogicalOr()
	if !p.peekKind().IsAssignment() {
		return left
	}
	op := p.advance()
	p.poll()
	right := p.parseAssignment()
	node := NewNode(NodeAssignmentExpression, left, op, right)
	if !isAssignable(left) {
		p.reportOn(left, diagnostic.InvalidAssignmentTarget)
	}
	return node
}

func isAssignable(n *Node) bool {
	switch n.Kind {
	case NodeNameExpression, NodeMemberExpression:
		return true
	case NodeParenthesizedExpression:
		inner, ok := n.Slot(1).(*Node)
		return ok && isAssignable(inner)
	}
	return false
}

// parseBinary parses a left-associative chain of operators at one
// precedence level.
func (p *parser) parseBinary(next func() *Node, ops ...TokenKind) *Node {
	left := next()
	for p.check(ops...) {
		p.poll()
		op := p.advance()
		right := next()
		left = NewNode(NodeBinaryExpression, left, op, right)
	}
	return left
}

func (p *parser) parseLogicalOr() *Node {
	return p.parseBinary(p.parseLogicalAnd, TokenOrOr)
}

func (p *parser) parseLogicalAnd() *Node {
	return p.parseBinary(p.parseEquality, TokenAndAnd)
}

func (p *parser) parseEquality() *Node {
	return p.parseBinary(p.parseRelational, TokenEq, TokenNotEq)
}

func (p *parser) parseRelational() *Node {
	return p.parseBinary(p.parseAdditive, TokenLt, TokenLtEq, TokenGt, TokenGtEq)
}

func (p *parser) parseAdditive() *Node {
	return p.parseBinary(p.parseMultiplicative, TokenPlus, TokenMinus)
}

func (p *parser) parseMultiplicative() *Node {
	return p.parseBinary(p.parseUnary, TokenStar, TokenSlash, TokenPercent)
}

func (p *parser) parseUnary() *Node {
	p.poll()
	if p.check(TokenMinus, TokenBang) {
		op := p.advance()
		operand := p.parseUnary()
		return NewNode(NodeUnaryExpression, op, operand)
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() *Node {
	expr := p.parsePrimary()
	for {
		switch p.peekKind() {
		case TokenLParen:
			args := p.parseArgumentList()
			expr = NewNode(NodeCallExpression, expr, args)
		case TokenDot:
			dot := p.advance()
			name := p.expect(TokenName)
			expr = NewNode(NodeMemberExpression, expr, dot, name)
		default:
			return expr
		}
	}
}

func (p *parser) parseArgumentList() *Node {
	lparen := p.advance()
	var items []Green
	for canStartExpression(p.peekKind()) {
		p.poll()
		progress := p.mustProgress()
		items = append(items, p.parseExpression())
		if comma := p.match(TokenComma); comma != nil {
			items = append(items, comma)
		} else if canStartExpression(p.peekKind()) {
			items = append(items, p.missing(TokenComma))
		} else {
			break
		}
		progress()
	}
	rparen := p.expect(TokenRParen)
	return NewNode(NodeArgumentList, lparen, NewNode(NodeSeparatedList, items...), rparen)
}

func (p *parser) parsePrimary() *Node {
	switch p.peekKind() {
	case TokenNumber, TokenTrue, TokenFalse, TokenNil:
		return NewNode(NodeLiteralExpression, p.advance())
	case TokenStringStart:
		return p.parseString()
	case TokenName:
		if p.peekN(1).Kind == TokenArrow {
			name := p.advance()
			params := NewNode(NodeParameterList, nil, NewNode(NodeSeparatedList, name), nil)
			return p.finishLambda(params)
		}
		return NewNode(NodeNameExpression, p.advance())
	case TokenLParen:
		return p.parseParenthesized()
	case TokenIf:
		// Statement-position ifs never get here, so this if is a value.
		return p.valueIf(p.parseIf())
	case TokenLBrace, TokenLoop, TokenWhile:
		return p.parseBlockLike()
	case TokenBreak:
		kw := p.advance()
		return NewNode(NodeBreakExpression, kw, p.optionalValue())
	case TokenContinue:
		return NewNode(NodeContinueExpression, p.advance())
	case TokenReturn:
		kw := p.advance()
		return NewNode(NodeReturnExpression, kw, p.optionalValue())
	}
	return p.missingExpression()
}

func (p *parser) optionalValue() Green {
	if canStartExpression(p.peekKind()) {
		return p.parseExpression()
	}
	return nil
}

// missingExpression substitutes an expression placeholder. The diagnostic
// covers the text of the token that was found instead.
func (p *parser) missingExpression() *Node {
	found := p.peek()
	tok := NewMissingToken()
	p.report(tok, PartialDiagnostic{
		Template: diagnostic.ExpectedExpression,
		Args:     []any{describeToken(found)},
		Offset:   -(p.pendingWidth() + found.LeadingWidth()),
		Width:    found.TextWidth(),
	})
	return NewNode(NodeMissingExpression, tok)
}

func (p *parser) parseBlockLike() *Node {
	switch p.peekKind() {
	case TokenIf:
		return p.parseIf()
	case TokenLoop:
		kw := p.advance()
		return NewNode(NodeLoopExpression, kw, p.parseBlock())
	case TokenWhile:
		kw := p.advance()
		cond := p.parseExpression()
		return NewNode(NodeWhileExpression, kw, cond, p.parseBlock())
	}
	return p.parseBlock()
}

func (p *parser) parseIf() *Node {
	kw := p.advance()
	cond := p.parseExpression()
	then := p.parseBlock()

	var clause Green
	if elseKw := p.match(TokenElse); elseKw != nil {
		var body *Node
		if p.check(TokenIf) {
			body = p.parseIf()
		} else {
			body = p.parseBlock()
		}
		clause = NewNode(NodeElseClause, elseKw, body)
	}
	return NewNode(NodeIfExpression, kw, cond, then, clause)
}

// parseParenthesized resolves the ambiguity at '('. It first tries a lambda
// parameter list on a fork of the cursor; if the fork does not end in a
// well-formed list followed by '=>', the fork is dropped and the same
// tokens are parsed again as a unit, parenthesized or tuple expression.
func (p *parser) parseParenthesized() *Node {
	saved := p.cur
	if params := p.tryParameterList(); params != nil && p.check(TokenArrow) {
		return p.finishLambda(params)
	}
	p.cur = saved

	lparen := p.advance()
	if p.check(TokenRParen) {
		return NewNode(NodeUnitExpression, lparen, p.advance())
	}

	first := p.parseExpression()
	if !p.check(TokenComma) {
		return NewNode(NodeParenthesizedExpression, lparen, first, p.expect(TokenRParen))
	}

	items := []Green{first}
	for {
		p.poll()
		comma := p.match(TokenComma)
		if comma == nil {
			break
		}
		items = append(items, comma)
		if p.check(TokenRParen) || !canStartExpression(p.peekKind()) {
			break
		}
		items = append(items, p.parseExpression())
	}
	rparen := p.expect(TokenRParen)
	tuple := NewNode(NodeTupleExpression, lparen, NewNode(NodeSeparatedList, items...), rparen)
	p.reportOn(tuple, diagnostic.TuplesUnsupported)
	return tuple
}

// tryParameterList parses a parenthesized name list on the current cursor
// and returns nil as soon as a token rules it out.
func (p *parser) tryParameterList() *Node {
	lparen := p.advance()
	var items []Green
	for !p.check(TokenRParen) {
		p.poll()
		name := p.match(TokenName)
		if name == nil {
			return nil
		}
		items = append(items, name)
		if p.check(TokenRParen) {
			break
		}
		comma := p.match(TokenComma)
		if comma == nil {
			return nil
		}
		items = append(items, comma)
	}
	rparen := p.advance()
	return NewNode(NodeParameterList, lparen, NewNode(NodeSeparatedList, items...), rparen)
}

func (p *parser) finishLambda(params *Node) *Node {
	arrow := p.advance()
	body := p.parseExpression()
	return NewNode(NodeLambdaExpression, params, arrow, body)
}

// parseString parses a string literal. The lexer has already reported a
// string that runs into end of file, so the closing tokens are supplied
// silently there.
func (p *parser) parseString() *Node {
	start := p.advance()
	var parts []Green
	for p.check(TokenStringText, TokenInterpolationStart) {
		p.poll()
		if p.check(TokenStringText) {
			parts = append(parts, p.advance())
			continue
		}
		open := p.advance()
		expr := p.parseExpression()
		if expr.Kind == NodeMissingExpression && !p.check(TokenInterpolationEnd, TokenStringEnd, TokenEOF) {
			// The placeholder already reports the token found.
			p.fold(TriviaUnexpectedToken)
		}
		p.skipUntil(func(k TokenKind) bool {
			return k == TokenInterpolationEnd || k == TokenStringEnd
		})
		parts = append(parts, NewNode(NodeInterpolation, open, expr, p.expectInString(TokenInterpolationEnd)))
	}
	end := p.expectInString(TokenStringEnd)
	return NewNode(NodeStringExpression, start, NewNode(NodeList, parts...), end)
}

func (p *parser) expectInString(kind TokenKind) *Token {
	if p.check(TokenEOF) {
		return NewMissingToken()
	}
	return p.expect(kind)
}
