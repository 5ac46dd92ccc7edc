package syntax

import "iter"

// List is a typed view over a NodeList.
type List[T any] struct {
	node *SyntaxNode
	cast func(SyntaxElement) T
}

// NewList views node, which must be a NodeList, through cast.
func NewList[T any](node *SyntaxNode, cast func(SyntaxElement) T) List[T] {
	return List[T]{node: node, cast: cast}
}

func (l List[T]) Node() *SyntaxNode { return l.node }

func (l List[T]) Len() int {
	if l.node == nil {
		return 0
	}
	return l.node.green.SlotCount()
}

func (l List[T]) At(i int) T {
	return l.cast(l.node.Child(i))
}

func (l List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range l.Len() {
			if !yield(l.At(i)) {
				return
			}
		}
	}
}

// SeparatedList is a typed view over a NodeSeparatedList, whose slots
// alternate between elements and separators.
type SeparatedList[T any] struct {
	node *SyntaxNode
	cast func(SyntaxElement) T
}

func NewSeparatedList[T any](node *SyntaxNode, cast func(SyntaxElement) T) SeparatedList[T] {
	return SeparatedList[T]{node: node, cast: cast}
}

func (l SeparatedList[T]) Node() *SyntaxNode { return l.node }

// Len is the number of elements, not counting separators.
func (l SeparatedList[T]) Len() int {
	if l.node == nil {
		return 0
	}
	return (l.node.green.SlotCount() + 1) / 2
}

func (l SeparatedList[T]) At(i int) T {
	return l.cast(l.node.Child(2 * i))
}

// SeparatorCount includes a trailing separator.
func (l SeparatedList[T]) SeparatorCount() int {
	if l.node == nil {
		return 0
	}
	return l.node.green.SlotCount() / 2
}

// Separator returns the separator after element i, or nil.
func (l SeparatedList[T]) Separator(i int) *SyntaxToken {
	return l.node.ChildToken(2*i + 1)
}

// HasTrailingSeparator reports whether the list ends in a separator.
func (l SeparatedList[T]) HasTrailingSeparator() bool {
	n := l.node.green.SlotCount()
	return n > 0 && n%2 == 0
}

func (l SeparatedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range l.Len() {
			if !yield(l.At(i)) {
				return
			}
		}
	}
}

func asNode(e SyntaxElement) *SyntaxNode {
	n, _ := e.(*SyntaxNode)
	return n
}

func asToken(e SyntaxElement) *SyntaxToken {
	t, _ := e.(*SyntaxToken)
	return t
}

func asElement(e SyntaxElement) SyntaxElement { return e }

// Program: Statements, EOF.
type Program struct{ *SyntaxNode }

func (n Program) Statements() List[*SyntaxNode] {
	return NewList(n.ChildNode(0), asNode)
}
func (n Program) EndOfFile() *SyntaxToken { return n.ChildToken(1) }

// ExpressionRoot: Expression, EOF.
type ExpressionRoot struct{ *SyntaxNode }

func (n ExpressionRoot) Expression() *SyntaxNode  { return n.ChildNode(0) }
func (n ExpressionRoot) EndOfFile() *SyntaxToken { return n.ChildToken(1) }

// LetDeclaration: let, mut?, Name, =, Value, ;.
type LetDeclaration struct{ *SyntaxNode }

func (n LetDeclaration) LetKeyword() *SyntaxToken { return n.ChildToken(0) }
func (n LetDeclaration) MutKeyword() *SyntaxToken { return n.ChildToken(1) }
func (n LetDeclaration) Name() *SyntaxToken       { return n.ChildToken(2) }
func (n LetDeclaration) Equals() *SyntaxToken     { return n.ChildToken(3) }
func (n LetDeclaration) Value() *SyntaxNode       { return n.ChildNode(4) }
func (n LetDeclaration) Semicolon() *SyntaxToken  { return n.ChildToken(5) }
func (n LetDeclaration) IsMutable() bool          { return n.MutKeyword() != nil }

// FuncDeclaration: func, Name, ParameterList, Block.
type FuncDeclaration struct{ *SyntaxNode }

func (n FuncDeclaration) FuncKeyword() *SyntaxToken { return n.ChildToken(0) }
func (n FuncDeclaration) Name() *SyntaxToken        { return n.ChildToken(1) }
func (n FuncDeclaration) Parameters() ParameterList {
	return ParameterList{n.ChildNode(2)}
}
func (n FuncDeclaration) Body() Block { return Block{n.ChildNode(3)} }

// ParameterList: (?, Names, )?. The parentheses are absent for the single
// parameter of x => e.
type ParameterList struct{ *SyntaxNode }

func (n ParameterList) OpenParen() *SyntaxToken { return n.ChildToken(0) }
func (n ParameterList) Names() SeparatedList[*SyntaxToken] {
	return NewSeparatedList(n.ChildNode(1), asToken)
}
func (n ParameterList) CloseParen() *SyntaxToken { return n.ChildToken(2) }

// ExpressionStatement: Expression, ;?.
type ExpressionStatement struct{ *SyntaxNode }

func (n ExpressionStatement) Expression() *SyntaxNode { return n.ChildNode(0) }
func (n ExpressionStatement) Semicolon() *SyntaxToken { return n.ChildToken(1) }

// Block: {, Statements, Tail?, }.
type Block struct{ *SyntaxNode }

func (n Block) OpenBrace() *SyntaxToken { return n.ChildToken(0) }
func (n Block) Statements() List[*SyntaxNode] {
	return NewList(n.ChildNode(1), asNode)
}
func (n Block) Tail() *SyntaxNode         { return n.ChildNode(2) }
func (n Block) CloseBrace() *SyntaxToken { return n.ChildToken(3) }

// LiteralExpression: Number, true, false or nil.
type LiteralExpression struct{ *SyntaxNode }

func (n LiteralExpression) Token() *SyntaxToken { return n.ChildToken(0) }

// NameExpression: Name.
type NameExpression struct{ *SyntaxNode }

func (n NameExpression) Name() *SyntaxToken { return n.ChildToken(0) }

// StringExpression: ", Parts, ". Parts are StringText tokens and
// Interpolation nodes.
type StringExpression struct{ *SyntaxNode }

func (n StringExpression) Start() *SyntaxToken { return n.ChildToken(0) }
func (n StringExpression) Parts() List[SyntaxElement] {
	return NewList(n.ChildNode(1), asElement)
}
func (n StringExpression) End() *SyntaxToken { return n.ChildToken(2) }

// Interpolation: {, Expression, }.
type Interpolation struct{ *SyntaxNode }

func (n Interpolation) Open() *SyntaxToken      { return n.ChildToken(0) }
func (n Interpolation) Expression() *SyntaxNode { return n.ChildNode(1) }
func (n Interpolation) Close() *SyntaxToken     { return n.ChildToken(2) }

// UnaryExpression: Operator, Operand.
type UnaryExpression struct{ *SyntaxNode }

func (n UnaryExpression) Operator() *SyntaxToken { return n.ChildToken(0) }
func (n UnaryExpression) Operand() *SyntaxNode   { return n.ChildNode(1) }

// BinaryExpression: Left, Operator, Right.
type BinaryExpression struct{ *SyntaxNode }

func (n BinaryExpression) Left() *SyntaxNode      { return n.ChildNode(0) }
func (n BinaryExpression) Operator() *SyntaxToken { return n.ChildToken(1) }
func (n BinaryExpression) Right() *SyntaxNode     { return n.ChildNode(2) }

// AssignmentExpression: Target, Operator, Value.
type AssignmentExpression struct{ *SyntaxNode }

func (n AssignmentExpression) Target() *SyntaxNode    { return n.ChildNode(0) }
func (n AssignmentExpression) Operator() *SyntaxToken { return n.ChildToken(1) }
func (n AssignmentExpression) Value() *SyntaxNode     { return n.ChildNode(2) }

// CallExpression: Callee, ArgumentList.
type CallExpression struct{ *SyntaxNode }

func (n CallExpression) Callee() *SyntaxNode { return n.ChildNode(0) }
func (n CallExpression) Arguments() ArgumentList {
	return ArgumentList{n.ChildNode(1)}
}

// ArgumentList: (, Arguments, ).
type ArgumentList struct{ *SyntaxNode }

func (n ArgumentList) OpenParen() *SyntaxToken { return n.ChildToken(0) }
func (n ArgumentList) Arguments() SeparatedList[*SyntaxNode] {
	return NewSeparatedList(n.ChildNode(1), asNode)
}
func (n ArgumentList) CloseParen() *SyntaxToken { return n.ChildToken(2) }

// MemberExpression: Receiver, ., Name.
type MemberExpression struct{ *SyntaxNode }

func (n MemberExpression) Receiver() *SyntaxNode { return n.ChildNode(0) }
func (n MemberExpression) Dot() *SyntaxToken     { return n.ChildToken(1) }
func (n MemberExpression) Name() *SyntaxToken    { return n.ChildToken(2) }

// UnitExpression: (, ).
type UnitExpression struct{ *SyntaxNode }

// ParenthesizedExpression: (, Expression, ).
type ParenthesizedExpression struct{ *SyntaxNode }

func (n ParenthesizedExpression) Expression() *SyntaxNode { return n.ChildNode(1) }

// TupleExpression: (, Elements, ).
type TupleExpression struct{ *SyntaxNode }

func (n TupleExpression) Elements() SeparatedList[*SyntaxNode] {
	return NewSeparatedList(n.ChildNode(1), asNode)
}

// LambdaExpression: ParameterList, =>, Body.
type LambdaExpression struct{ *SyntaxNode }

func (n LambdaExpression) Parameters() ParameterList {
	return ParameterList{n.ChildNode(0)}
}
func (n LambdaExpression) Arrow() *SyntaxToken { return n.ChildToken(1) }
func (n LambdaExpression) Body() *SyntaxNode   { return n.ChildNode(2) }

// IfExpression: if, Condition, Block, ElseClause?.
type IfExpression struct{ *SyntaxNode }

func (n IfExpression) IfKeyword() *SyntaxToken { return n.ChildToken(0) }
func (n IfExpression) Condition() *SyntaxNode  { return n.ChildNode(1) }
func (n IfExpression) Then() Block             { return Block{n.ChildNode(2)} }

func (n IfExpression) Else() (ElseClause, bool) {
	clause := n.ChildNode(3)
	return ElseClause{clause}, clause != nil
}

// ElseClause: else?, Block or IfExpression. The keyword is absent when
// the clause was supplied for an if used as a value.
type ElseClause struct{ *SyntaxNode }

func (n ElseClause) ElseKeyword() *SyntaxToken { return n.ChildToken(0) }
func (n ElseClause) Body() *SyntaxNode         { return n.ChildNode(1) }
func (n ElseClause) IsSynthesized() bool       { return n.ElseKeyword() == nil }

// LoopExpression: loop, Block.
type LoopExpression struct{ *SyntaxNode }

func (n LoopExpression) Body() Block { return Block{n.ChildNode(1)} }

// WhileExpression: while, Condition, Block.
type WhileExpression struct{ *SyntaxNode }

func (n WhileExpression) Condition() *SyntaxNode { return n.ChildNode(1) }
func (n WhileExpression) Body() Block            { return Block{n.ChildNode(2)} }

// BreakExpression: break, Value?.
type BreakExpression struct{ *SyntaxNode }

func (n BreakExpression) Value() *SyntaxNode { return n.ChildNode(1) }

// ReturnExpression: return, Value?.
type ReturnExpression struct{ *SyntaxNode }

func (n ReturnExpression) Value() *SyntaxNode { return n.ChildNode(1) }
