package syntax

import "fmt"

type TokenKind int

const (
	// TokenError is the kind of the zero-width placeholder substituted for a
	// missing token.
	TokenError TokenKind = iota
	TokenEOF

	// Literals
	TokenName
	TokenNumber
	TokenStringStart
	TokenStringText
	TokenStringEnd
	TokenInterpolationStart
	TokenInterpolationEnd

	// Delimiters
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon
	TokenDot
	TokenArrow

	// Assignment
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign

	// Operators
	TokenOrOr
	TokenAndAnd
	TokenEq
	TokenNotEq
	TokenLt
	TokenLtEq
	TokenGt
	TokenGtEq
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenBang

	// Keywords
	TokenLet
	TokenMut
	TokenFunc
	TokenIf
	TokenElse
	TokenLoop
	TokenWhile
	TokenBreak
	TokenContinue
	TokenReturn
	TokenTrue
	TokenFalse
	TokenNil
)

var tokenKindNames = map[TokenKind]string{
	TokenError:              "Error",
	TokenEOF:                "EOF",
	TokenName:               "Name",
	TokenNumber:             "Number",
	TokenStringStart:        "StringStart",
	TokenStringText:         "StringText",
	TokenStringEnd:          "StringEnd",
	TokenInterpolationStart: "InterpolationStart",
	TokenInterpolationEnd:   "InterpolationEnd",
	TokenLParen:             "LParen",
	TokenRParen:             "RParen",
	TokenLBrace:             "LBrace",
	TokenRBrace:             "RBrace",
	TokenComma:              "Comma",
	TokenSemicolon:          "Semicolon",
	TokenDot:                "Dot",
	TokenArrow:              "Arrow",
	TokenAssign:             "Assign",
	TokenPlusAssign:         "PlusAssign",
	TokenMinusAssign:        "MinusAssign",
	TokenStarAssign:         "StarAssign",
	TokenSlashAssign:        "SlashAssign",
	TokenPercentAssign:      "PercentAssign",
	TokenOrOr:               "OrOr",
	TokenAndAnd:             "AndAnd",
	TokenEq:                 "Eq",
	TokenNotEq:              "NotEq",
	TokenLt:                 "Lt",
	TokenLtEq:               "LtEq",
	TokenGt:                 "Gt",
	TokenGtEq:               "GtEq",
	TokenPlus:               "Plus",
	TokenMinus:              "Minus",
	TokenStar:               "Star",
	TokenSlash:              "Slash",
	TokenPercent:            "Percent",
	TokenBang:               "Bang",
	TokenLet:                "Let",
	TokenMut:                "Mut",
	TokenFunc:               "Func",
	TokenIf:                 "If",
	TokenElse:               "Else",
	TokenLoop:               "Loop",
	TokenWhile:              "While",
	TokenBreak:              "Break",
	TokenContinue:           "Continue",
	TokenReturn:             "Return",
	TokenTrue:               "True",
	TokenFalse:              "False",
	TokenNil:                "Nil",
}

// fixedText holds the only spelling of every kind that has one.
var fixedText = map[TokenKind]string{
	TokenEOF:                "",
	TokenStringStart:        `"`,
	TokenStringEnd:          `"`,
	TokenInterpolationStart: "{",
	TokenInterpolationEnd:   "}",
	TokenLParen:             "(",
	TokenRParen:             ")",
	TokenLBrace:             "{",
	TokenRBrace:             "}",
	TokenComma:              ",",
	TokenSemicolon:          ";",
	TokenDot:                ".",
	TokenArrow:              "=>",
	TokenAssign:             "=",
	TokenPlusAssign:         "+=",
	TokenMinusAssign:        "-=",
	TokenStarAssign:         "*=",
	TokenSlashAssign:        "/=",
	TokenPercentAssign:      "%=",
	TokenOrOr:               "||",
	TokenAndAnd:             "&&",
	TokenEq:                 "==",
	TokenNotEq:              "!=",
	TokenLt:                 "<",
	TokenLtEq:               "<=",
	TokenGt:                 ">",
	TokenGtEq:               ">=",
	TokenPlus:               "+",
	TokenMinus:              "-",
	TokenStar:               "*",
	TokenSlash:              "/",
	TokenPercent:            "%",
	TokenBang:               "!",
	TokenLet:                "let",
	TokenMut:                "mut",
	TokenFunc:               "func",
	TokenIf:                 "if",
	TokenElse:               "else",
	TokenLoop:               "loop",
	TokenWhile:              "while",
	TokenBreak:              "break",
	TokenContinue:           "continue",
	TokenReturn:             "return",
	TokenTrue:               "true",
	TokenFalse:              "false",
	TokenNil:                "nil",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Text returns the fixed spelling of k, or "" for kinds whose text is read
// from the source.
func (k TokenKind) Text() string {
	return fixedText[k]
}

// HasFixedText reports whether every token of kind k is spelled the same way.
func (k TokenKind) HasFixedText() bool {
	_, ok := fixedText[k]
	return ok
}

// Describe renders k for diagnostics.
func (k TokenKind) Describe() string {
	switch k {
	case TokenEOF:
		return "end of file"
	case TokenError:
		return "missing token"
	case TokenName:
		return "name"
	case TokenNumber:
		return "number"
	case TokenStringStart:
		return "string"
	case TokenStringText:
		return "string text"
	case TokenStringEnd:
		return "closing '\"'"
	case TokenInterpolationStart:
		return "interpolation"
	case TokenInterpolationEnd:
		return "closing '}' of interpolation"
	}
	if k >= TokenLet {
		return "keyword '" + k.Text() + "'"
	}
	return "'" + k.Text() + "'"
}

func (k TokenKind) IsKeyword() bool {
	return k >= TokenLet && k <= TokenNil
}

func (k TokenKind) IsAssignment() bool {
	return k >= TokenAssign && k <= TokenPercentAssign
}

var keywords = map[string]TokenKind{
	"let":      TokenLet,
	"mut":      TokenMut,
	"func":     TokenFunc,
	"if":       TokenIf,
	"else":     TokenElse,
	"loop":     TokenLoop,
	"while":    TokenWhile,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"nil":      TokenNil,
}

// LookupKeyword returns the keyword kind for name, or TokenName.
func LookupKeyword(name string) TokenKind {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	return TokenName
}

type NodeKind int

const (
	// Lists
	NodeList NodeKind = iota
	NodeSeparatedList

	// Roots
	NodeProgram
	NodeExpressionRoot

	// Declarations and statements
	NodeLetDeclaration
	NodeFuncDeclaration
	NodeParameterList
	NodeEmptyStatement
	NodeExpressionStatement

	// Expressions
	NodeBlock
	NodeLiteralExpression
	NodeNameExpression
	NodeStringExpression
	NodeInterpolation
	NodeUnaryExpression
	NodeBinaryExpression
	NodeAssignmentExpression
	NodeCallExpression
	NodeArgumentList
	NodeMemberExpression
	NodeUnitExpression
	NodeParenthesizedExpression
	NodeTupleExpression
	NodeLambdaExpression
	NodeIfExpression
	NodeElseClause
	NodeLoopExpression
	NodeWhileExpression
	NodeBreakExpression
	NodeContinueExpression
	NodeReturnExpression
	NodeMissingExpression
)

var nodeKindNames = map[NodeKind]string{
	NodeList:                    "List",
	NodeSeparatedList:           "SeparatedList",
	NodeProgram:                 "Program",
	NodeExpressionRoot:          "ExpressionRoot",
	NodeLetDeclaration:          "LetDeclaration",
	NodeFuncDeclaration:         "FuncDeclaration",
	NodeParameterList:           "ParameterList",
	NodeEmptyStatement:          "EmptyStatement",
	NodeExpressionStatement:     "ExpressionStatement",
	NodeBlock:                   "Block",
	NodeLiteralExpression:       "LiteralExpression",
	NodeNameExpression:          "NameExpression",
	NodeStringExpression:        "StringExpression",
	NodeInterpolation:           "Interpolation",
	NodeUnaryExpression:         "UnaryExpression",
	NodeBinaryExpression:        "BinaryExpression",
	NodeAssignmentExpression:    "AssignmentExpression",
	NodeCallExpression:          "CallExpression",
	NodeArgumentList:            "ArgumentList",
	NodeMemberExpression:        "MemberExpression",
	NodeUnitExpression:          "UnitExpression",
	NodeParenthesizedExpression: "ParenthesizedExpression",
	NodeTupleExpression:         "TupleExpression",
	NodeLambdaExpression:        "LambdaExpression",
	NodeIfExpression:            "IfExpression",
	NodeElseClause:              "ElseClause",
	NodeLoopExpression:          "LoopExpression",
	NodeWhileExpression:         "WhileExpression",
	NodeBreakExpression:         "BreakExpression",
	NodeContinueExpression:      "ContinueExpression",
	NodeReturnExpression:        "ReturnExpression",
	NodeMissingExpression:       "MissingExpression",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// IsList reports whether nodes of kind k have a variable number of slots.
func (k NodeKind) IsList() bool {
	return k == NodeList || k == NodeSeparatedList
}

// slotCounts fixes the slot layout of every non-list kind. Slot meanings
// are documented on the typed views in nodes.go.
var slotCounts = map[NodeKind]int{
	NodeProgram:                 2,
	NodeExpressionRoot:          2,
	NodeLetDeclaration:          6,
	NodeFuncDeclaration:         4,
	NodeParameterList:           3,
	NodeEmptyStatement:          1,
	NodeExpressionStatement:     2,
	NodeBlock:                   4,
	NodeLiteralExpression:       1,
	NodeNameExpression:          1,
	NodeStringExpression:        3,
	NodeInterpolation:           3,
	NodeUnaryExpression:         2,
	NodeBinaryExpression:        3,
	NodeAssignmentExpression:    3,
	NodeCallExpression:          2,
	NodeArgumentList:            3,
	NodeMemberExpression:        3,
	NodeUnitExpression:          2,
	NodeParenthesizedExpression: 3,
	NodeTupleExpression:         3,
	NodeLambdaExpression:        3,
	NodeIfExpression:            4,
	NodeElseClause:              2,
	NodeLoopExpression:          2,
	NodeWhileExpression:         3,
	NodeBreakExpression:         2,
	NodeContinueExpression:      1,
	NodeReturnExpression:        2,
	NodeMissingExpression:       1,
}

// SlotCount returns the fixed number of slots for k, or -1 for list kinds.
func (k NodeKind) SlotCount() int {
	if k.IsList() {
		return -1
	}
	return slotCounts[k]
}
