package syntax

import (
	"context"

	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/source"
)

type parser struct {
	done     <-chan struct{}
	tokens   []*Token
	lexDiags diagnosticTable

	cur cursor
	log []logEntry
}

// Parse lexes and parses src as a program. It always returns a tree for
// any input; the only error is the cancellation of ctx, in which case no
// tree is returned.
func Parse(ctx context.Context, src *source.Source) (*Tree, error) {
	return parseWith(ctx, src, (*parser).parseProgram)
}

// ParseExpression parses src as a single expression whose value is used.
func ParseExpression(ctx context.Context, src *source.Source) (*Tree, error) {
	return parseWith(ctx, src, (*parser).parseExpressionRoot)
}

func parseWith(ctx context.Context, src *source.Source, rule func(*parser) *Node) (*Tree, error) {
	tokens, err := Lex(ctx, src)
	if err != nil {
		return nil, err
	}
	return parseTokens(ctx, tokens, rule)
}

func parseTokens(ctx context.Context, tokens *TokenList, rule func(*parser) *Node) (tree *Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			tree, err = nil, ctx.Err()
		}
	}()

	p := &parser{
		done:     ctx.Done(),
		tokens:   tokens.tokens,
		lexDiags: tokens.diags,
	}
	root := rule(p)

	table := diagnosticTable{}
	for _, e := range p.log[:p.cur.logLen] {
		table.add(e.anchor, e.partial)
	}
	return newTree(tokens.source, root, table), nil
}

func (p *parser) parseProgram() *Node {
	var stmts []Green
	for !p.check(TokenEOF) {
		p.poll()
		progress := p.mustProgress()
		if stmt, _ := p.parseStatement(TokenEOF); stmt != nil {
			stmts = append(stmts, stmt)
		}
		progress()
	}
	eof := p.advance()
	return NewNode(NodeProgram, NewNode(NodeList, stmts...), eof)
}

func (p *parser) parseExpressionRoot() *Node {
	expr := p.parseExpression()
	p.skipUntil(func(TokenKind) bool { return false })
	eof := p.advance()
	return NewNode(NodeExpressionRoot, expr, eof)
}

// parseStatement parses one statement of a list closed by closing. The
// second result is true when the returned expression is the value of the
// enclosing block. A nil statement means only unexpected tokens were found.
func (p *parser) parseStatement(closing TokenKind) (Green, bool) {
	p.poll()

	switch p.peekKind() {
	case TokenLet:
		return p.parseLetDeclaration(), false
	case TokenFunc:
		return p.parseFuncDeclaration(), false
	case TokenSemicolon:
		return NewNode(NodeEmptyStatement, p.advance()), false
	case TokenLBrace, TokenIf, TokenLoop, TokenWhile:
		// Block-like expressions end the statement at their closing brace.
		expr := p.parseBlockLike()
		if closing == TokenRBrace && p.check(TokenRBrace) {
			return p.valueIf(expr), true
		}
		return NewNode(NodeExpressionStatement, expr, nil), false
	}

	if !canStartExpression(p.peekKind()) {
		p.skipUntil(func(k TokenKind) bool {
			return k == closing || canStartStatement(k)
		})
		return nil, false
	}

	expr := p.parseExpression()
	if closing == TokenRBrace && p.check(TokenRBrace) {
		return expr, true
	}

	// An expression cut off by end of file has already been reported.
	if p.check(TokenEOF) && LastToken(expr).IsMissing() {
		return NewNode(NodeExpressionStatement, expr, nil), false
	}

	var semi *Token
	switch expr.Kind {
	case NodeCallExpression, NodeAssignmentExpression, NodeReturnExpression,
		NodeBreakExpression, NodeContinueExpression:
		semi = p.expect(TokenSemicolon)
	case NodeBlock, NodeIfExpression, NodeLoopExpression, NodeWhileExpression:
	case NodeMissingExpression:
		semi = p.match(TokenSemicolon)
	default:
		p.reportOn(expr, diagnostic.InvalidExpressionStatement, describeNode(expr))
		semi = p.expect(TokenSemicolon)
	}
	return NewNode(NodeExpressionStatement, expr, semi), false
}

func (p *parser) parseLetDeclaration() *Node {
	let := p.advance()
	mut := p.match(TokenMut)
	name := p.expect(TokenName)
	eq := p.expect(TokenAssign)
	value := p.parseExpression()
	semi := p.expect(TokenSemicolon)
	return NewNode(NodeLetDeclaration, let, mut, name, eq, value, semi)
}

func (p *parser) parseFuncDeclaration() *Node {
	fn := p.advance()
	name := p.expect(TokenName)
	params := p.parseParameterList()
	body := p.parseBlock()
	return NewNode(NodeFuncDeclaration, fn, name, params, body)
}

// parseParameterList parses "(" [Name {"," Name} [","]] ")". Tokens that
// cannot be parameters are skipped one at a time by the progress guard.
func (p *parser) parseParameterList() *Node {
	lparen := p.expect(TokenLParen)
	if lparen.IsMissing() {
		return NewNode(NodeParameterList, lparen, NewNode(NodeSeparatedList), NewMissingToken())
	}

	var items []Green
	for !p.check(TokenRParen, TokenLBrace, TokenEOF) {
		p.poll()
		progress := p.mustProgress()
		if name := p.match(TokenName); name != nil {
			items = append(items, name)
			if comma := p.match(TokenComma); comma != nil {
				items = append(items, comma)
			} else if p.check(TokenName) {
				items = append(items, p.missing(TokenComma))
			}
		}
		progress()
	}
	rparen := p.expect(TokenRParen)
	return NewNode(NodeParameterList, lparen, NewNode(NodeSeparatedList, items...), rparen)
}

// parseBlock parses "{" {Statement} [Tail] "}".
func (p *parser) parseBlock() *Node {
	p.poll()

	lbrace := p.expect(TokenLBrace)
	if lbrace.IsMissing() {
		return NewNode(NodeBlock, lbrace, NewNode(NodeList), nil, NewMissingToken())
	}

	var stmts []Green
	var tail Green
	for tail == nil && !p.check(TokenRBrace, TokenEOF) {
		p.poll()
		progress := p.mustProgress()
		stmt, isTail := p.parseStatement(TokenRBrace)
		switch {
		case isTail:
			tail = stmt
		case stmt != nil:
			stmts = append(stmts, stmt)
		}
		progress()
	}
	rbrace := p.expect(TokenRBrace)
	return NewNode(NodeBlock, lbrace, NewNode(NodeList, stmts...), tail, rbrace)
}

// valueIf completes an if expression whose value is used: a tail, an
// operand, an argument or any other expression position. The innermost if
// of an else-if chain without a final else receives a zero-width empty else
// block and an ElseOmitted diagnostic.
func (p *parser) valueIf(n *Node) *Node {
	if n.Kind != NodeIfExpression {
		return n
	}

	if clause, ok := n.Slot(3).(*Node); ok {
		body, ok := clause.Slot(1).(*Node)
		if !ok || body.Kind != NodeIfExpression {
			return n
		}
		completed := p.valueIf(body)
		if completed == body {
			return n
		}
		return NewNode(NodeIfExpression, n.Slot(0), n.Slot(1), n.Slot(2),
			NewNode(NodeElseClause, clause.Slot(0), completed))
	}

	empty := NewNode(NodeBlock, NewMissingToken(), NewNode(NodeList), nil, NewMissingToken())
	out := NewNode(NodeIfExpression, n.Slot(0), n.Slot(1), n.Slot(2), NewNode(NodeElseClause, nil, empty))
	p.reportOn(out, diagnostic.ElseOmitted)
	return out
}

// canStartStatement is the synchronization set for statement lists.
func canStartStatement(k TokenKind) bool {
	switch k {
	case TokenLet, TokenFunc, TokenSemicolon:
		return true
	}
	return canStartExpression(k)
}

func canStartExpression(k TokenKind) bool {
	switch k {
	case TokenName, TokenNumber, TokenStringStart, TokenTrue, TokenFalse, TokenNil,
		TokenLParen, TokenLBrace, TokenIf, TokenLoop, TokenWhile,
		TokenBreak, TokenContinue, TokenReturn, TokenMinus, TokenBang:
		return true
	}
	return false
}

func describeNode(n *Node) string {
	switch n.Kind {
	case NodeLiteralExpression, NodeStringExpression:
		return "literal"
	case NodeNameExpression:
		return "name"
	case NodeBinaryExpression:
		return "binary expression"
	case NodeUnaryExpression:
		return "unary expression"
	case NodeMemberExpression:
		return "member access"
	case NodeLambdaExpression:
		return "lambda"
	case NodeTupleExpression:
		return "tuple"
	case NodeUnitExpression:
		return "unit value"
	case NodeParenthesizedExpression:
		return "parenthesized expression"
	}
	return "expression"
}
