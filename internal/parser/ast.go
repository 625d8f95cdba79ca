// Package parser implements the Cpp2 recursive descent parser and the
// parse tree it produces. The tree owns its shape; tokens are referenced
// by pointer into the externally owned token slice, which must outlive the
// tree. Variant nodes expose their active alternative through a total
// Active or Kind query.
package parser

import (
	"github.com/cpp2-lang/cpp2go/internal/lexer"
	"github.com/cpp2-lang/cpp2go/internal/source"
)

// Node is the base interface for all parse tree nodes.
type Node interface {
	// Position returns the position of the node's leftmost token, or the
	// zero position for synthetic nodes.
	Position() source.Position
	// Visit performs a pre-order walk rooted at this node, bracketing it
	// with the visitor's Start and End callbacks at the given depth.
	Visit(v Visitor, depth int)
}

// PassingStyle is the parameter or argument direction qualifier.
type PassingStyle int

// Passing styles.
const (
	PassingIn PassingStyle = iota
	PassingInout
	PassingOut
	PassingMove
	PassingForward
)

// String returns the surface spelling of the passing style.
func (ps PassingStyle) String() string {
	switch ps {
	case PassingIn:
		return "in"
	case PassingInout:
		return "inout"
	case PassingOut:
		return "out"
	case PassingMove:
		return "move"
	case PassingForward:
		return "forward"
	}
	return "in"
}

// ====== Expressions ======

// PrimaryKind identifies the active alternative of a PrimaryExpression.
type PrimaryKind int

// Primary expression alternatives.
const (
	PrimaryEmpty PrimaryKind = iota
	PrimaryIdentifier
	PrimaryExpressionList
)

// PrimaryExpression is a single identifier, keyword or literal token, or a
// parenthesized expression-list. At most one field is set.
type PrimaryExpression struct {
	Identifier *lexer.Token
	List       *ExpressionList
}

// Active returns the active alternative.
func (n *PrimaryExpression) Active() PrimaryKind {
	switch {
	case n.Identifier != nil:
		return PrimaryIdentifier
	case n.List != nil:
		return PrimaryExpressionList
	}
	return PrimaryEmpty
}

// Position returns the position of the node's leftmost token.
func (n *PrimaryExpression) Position() source.Position {
	switch n.Active() {
	case PrimaryIdentifier:
		return n.Identifier.Position()
	case PrimaryExpressionList:
		return n.List.Position()
	}
	return source.Position{}
}

// Visit implements Node.
func (n *PrimaryExpression) Visit(v Visitor, depth int) {
	v.StartPrimaryExpression(n, depth)
	switch n.Active() {
	case PrimaryIdentifier:
		v.StartToken(n.Identifier, depth+1)
	case PrimaryExpressionList:
		n.List.Visit(v, depth+1)
	}
	v.EndPrimaryExpression(n, depth)
}

// PostfixTerm is one applied postfix operation. ExprList holds the
// arguments of subscript and call terms; it is nil for an empty call, for
// an empty (diagnosed) subscript, for . terms and for the unary postfix
// operators.
type PostfixTerm struct {
	Op       *lexer.Token
	ExprList *ExpressionList
}

// PostfixExpression is a primary expression with postfix terms applied in
// source order.
type PostfixExpression struct {
	Expr *PrimaryExpression
	Ops  []PostfixTerm
}

// Position returns the position of the node's leftmost token.
func (n *PostfixExpression) Position() source.Position {
	return n.Expr.Position()
}

// Visit implements Node.
func (n *PostfixExpression) Visit(v Visitor, depth int) {
	v.StartPostfixExpression(n, depth)
	n.Expr.Visit(v, depth+1)
	for i := range n.Ops {
		v.StartToken(n.Ops[i].Op, depth+1)
		if n.Ops[i].ExprList != nil {
			n.Ops[i].ExprList.Visit(v, depth+1)
		}
	}
	v.EndPostfixExpression(n, depth)
}

// PrefixExpression is a sequence of prefix operator tokens, outermost
// first, wrapping a postfix expression.
type PrefixExpression struct {
	Ops  []*lexer.Token
	Expr *PostfixExpression
}

// Position returns the position of the node's leftmost token.
func (n *PrefixExpression) Position() source.Position {
	if len(n.Ops) > 0 {
		return n.Ops[0].Position()
	}
	return n.Expr.Position()
}

// Visit implements Node.
func (n *PrefixExpression) Visit(v Visitor, depth int) {
	v.StartPrefixExpression(n, depth)
	for _, op := range n.Ops {
		v.StartToken(op, depth+1)
	}
	n.Expr.Visit(v, depth+1)
	v.EndPrefixExpression(n, depth)
}

// BinaryTerm is one (operator, right operand) pair of a binary expression.
type BinaryTerm struct {
	Op   *lexer.Token
	Expr Node
}

// BinaryExpression is one level of the precedence ladder: a left operand
// and a sequence of same-level terms, all left-associative. Name is the
// level's display tag ("additive", "logical-or", ...) used only by
// visitors. Operands are always nodes of the next inner level; the parse
// functions are the only constructors, so precedence is encoded
// structurally.
type BinaryExpression struct {
	Name  string
	Expr  Node
	Terms []BinaryTerm
}

// Position returns the position of the node's leftmost token.
func (n *BinaryExpression) Position() source.Position {
	return n.Expr.Position()
}

// Visit implements Node.
func (n *BinaryExpression) Visit(v Visitor, depth int) {
	v.StartBinaryExpression(n, depth)
	n.Expr.Visit(v, depth+1)
	for i := range n.Terms {
		v.StartToken(n.Terms[i].Op, depth+1)
		n.Terms[i].Expr.Visit(v, depth+1)
	}
	v.EndBinaryExpression(n, depth)
}

// Expression owns one assignment-expression, the outermost ladder level.
type Expression struct {
	Expr *BinaryExpression
}

// Position returns the position of the node's leftmost token.
func (n *Expression) Position() source.Position {
	return n.Expr.Position()
}

// Visit implements Node.
func (n *Expression) Visit(v Visitor, depth int) {
	v.StartExpression(n, depth)
	n.Expr.Visit(v, depth+1)
	v.EndExpression(n, depth)
}

// ExpressionListTerm is one expression of a list with its passing style.
// Only out is recognizable inside an expression-list.
type ExpressionListTerm struct {
	Pass PassingStyle
	Expr *Expression
}

// ExpressionList is an ordered sequence of expression-list terms.
type ExpressionList struct {
	Terms []ExpressionListTerm
}

// Position returns the position of the node's leftmost token.
func (n *ExpressionList) Position() source.Position {
	if len(n.Terms) > 0 && n.Terms[0].Expr != nil {
		return n.Terms[0].Expr.Position()
	}
	return source.Position{}
}

// Visit implements Node.
func (n *ExpressionList) Visit(v Visitor, depth int) {
	v.StartExpressionList(n, depth)
	for i := range n.Terms {
		if n.Terms[i].Expr != nil {
			n.Terms[i].Expr.Visit(v, depth+1)
		}
	}
	v.EndExpressionList(n, depth)
}

// ====== Identifiers ======

// UnqualifiedID wraps a single identifier or keyword token. Keywords are
// admitted so fundamental type names can appear as type references.
type UnqualifiedID struct {
	Identifier *lexer.Token
}

// Position returns the position of the node's leftmost token.
func (n *UnqualifiedID) Position() source.Position {
	return n.Identifier.Position()
}

// Visit implements Node.
func (n *UnqualifiedID) Visit(v Visitor, depth int) {
	v.StartUnqualifiedID(n, depth)
	v.StartToken(n.Identifier, depth+1)
	v.EndUnqualifiedID(n, depth)
}

// QualifiedID is a non-empty sequence of unqualified-ids separated by ::.
type QualifiedID struct {
	IDs []*UnqualifiedID
}

// Position returns the position of the node's leftmost token.
func (n *QualifiedID) Position() source.Position {
	if len(n.IDs) > 0 {
		return n.IDs[0].Position()
	}
	return source.Position{}
}

// Visit implements Node.
func (n *QualifiedID) Visit(v Visitor, depth int) {
	v.StartQualifiedID(n, depth)
	for _, id := range n.IDs {
		id.Visit(v, depth+1)
	}
	v.EndQualifiedID(n, depth)
}

// IDKind identifies the active alternative of an IDExpression.
type IDKind int

// ID expression alternatives.
const (
	IDEmpty IDKind = iota
	IDQualified
	IDUnqualified
)

// IDExpression is a qualified or unqualified id. The empty state stands
// for an elided type in object declarations.
type IDExpression struct {
	Qualified   *QualifiedID
	Unqualified *UnqualifiedID
}

// Active returns the active alternative.
func (n *IDExpression) Active() IDKind {
	switch {
	case n.Qualified != nil:
		return IDQualified
	case n.Unqualified != nil:
		return IDUnqualified
	}
	return IDEmpty
}

// Position returns the position of the node's leftmost token.
func (n *IDExpression) Position() source.Position {
	switch n.Active() {
	case IDQualified:
		return n.Qualified.Position()
	case IDUnqualified:
		return n.Unqualified.Position()
	}
	return source.Position{}
}

// Visit implements Node.
func (n *IDExpression) Visit(v Visitor, depth int) {
	v.StartIDExpression(n, depth)
	switch n.Active() {
	case IDQualified:
		n.Qualified.Visit(v, depth+1)
	case IDUnqualified:
		n.Unqualified.Visit(v, depth+1)
	}
	v.EndIDExpression(n, depth)
}

// ====== Statements ======

// ExpressionStatement owns one expression.
type ExpressionStatement struct {
	Expr *Expression
}

// Position returns the position of the node's leftmost token.
func (n *ExpressionStatement) Position() source.Position {
	return n.Expr.Position()
}

// Visit implements Node.
func (n *ExpressionStatement) Visit(v Visitor, depth int) {
	v.StartExpressionStatement(n, depth)
	n.Expr.Visit(v, depth+1)
	v.EndExpressionStatement(n, depth)
}

// CompoundStatement is a braced statement sequence. A synthetic empty
// compound statement has the zero position.
type CompoundStatement struct {
	Pos        source.Position
	Statements []*Statement
}

// Position returns the opening brace position.
func (n *CompoundStatement) Position() source.Position {
	return n.Pos
}

// Visit implements Node.
func (n *CompoundStatement) Visit(v Visitor, depth int) {
	v.StartCompoundStatement(n, depth)
	for _, s := range n.Statements {
		s.Visit(v, depth+1)
	}
	v.EndCompoundStatement(n, depth)
}

// SelectionStatement is an if statement. FalseBranch is always non-nil;
// when the source has no else it is a synthetic empty compound statement
// at the zero position.
type SelectionStatement struct {
	IsConstexpr bool
	Identifier  *lexer.Token
	Condition   *Expression
	TrueBranch  *CompoundStatement
	FalseBranch *CompoundStatement
}

// Position returns the position of the if keyword.
func (n *SelectionStatement) Position() source.Position {
	return n.Identifier.Position()
}

// Visit implements Node.
func (n *SelectionStatement) Visit(v Visitor, depth int) {
	v.StartSelectionStatement(n, depth)
	v.StartToken(n.Identifier, depth+1)
	n.Condition.Visit(v, depth+1)
	n.TrueBranch.Visit(v, depth+1)
	if n.FalseBranch != nil {
		n.FalseBranch.Visit(v, depth+1)
	}
	v.EndSelectionStatement(n, depth)
}

// StatementKind identifies the active alternative of a Statement.
type StatementKind int

// Statement alternatives.
const (
	StatementEmpty StatementKind = iota
	StatementExpression
	StatementCompound
	StatementSelection
	StatementDeclaration
)

// Statement is the variant over the statement productions. Exactly one
// field is set in a constructed statement.
type Statement struct {
	Expression  *ExpressionStatement
	Compound    *CompoundStatement
	Selection   *SelectionStatement
	Declaration *Declaration
}

// Active returns the active alternative.
func (n *Statement) Active() StatementKind {
	switch {
	case n.Expression != nil:
		return StatementExpression
	case n.Compound != nil:
		return StatementCompound
	case n.Selection != nil:
		return StatementSelection
	case n.Declaration != nil:
		return StatementDeclaration
	}
	return StatementEmpty
}

// Position returns the position of the node's leftmost token.
func (n *Statement) Position() source.Position {
	switch n.Active() {
	case StatementExpression:
		return n.Expression.Position()
	case StatementCompound:
		return n.Compound.Position()
	case StatementSelection:
		return n.Selection.Position()
	case StatementDeclaration:
		return n.Declaration.Position()
	}
	return source.Position{}
}

// Visit implements Node.
func (n *Statement) Visit(v Visitor, depth int) {
	v.StartStatement(n, depth)
	switch n.Active() {
	case StatementExpression:
		n.Expression.Visit(v, depth+1)
	case StatementCompound:
		n.Compound.Visit(v, depth+1)
	case StatementSelection:
		n.Selection.Visit(v, depth+1)
	case StatementDeclaration:
		n.Declaration.Visit(v, depth+1)
	}
	v.EndStatement(n, depth)
}

// ====== Declarations ======

// ParameterModifier is the this-specifier of a parameter declaration.
type ParameterModifier int

// Parameter modifiers.
const (
	ModifierNone ParameterModifier = iota
	ModifierImplicit
	ModifierVirtual
	ModifierOverride
	ModifierFinal
)

// String returns the surface spelling of the modifier, or "" for none.
func (m ParameterModifier) String() string {
	switch m {
	case ModifierImplicit:
		return "implicit"
	case ModifierVirtual:
		return "virtual"
	case ModifierOverride:
		return "override"
	case ModifierFinal:
		return "final"
	}
	return ""
}

// ParameterDeclaration is one parameter: direction, modifier and the
// underlying declaration.
type ParameterDeclaration struct {
	Pos         source.Position
	Pass        PassingStyle
	Mod         ParameterModifier
	Declaration *Declaration
}

// Position returns the position the parameter started at.
func (n *ParameterDeclaration) Position() source.Position {
	return n.Pos
}

// Visit implements Node.
func (n *ParameterDeclaration) Visit(v Visitor, depth int) {
	v.StartParameterDeclaration(n, depth)
	n.Declaration.Visit(v, depth+1)
	v.EndParameterDeclaration(n, depth)
}

// ParameterDeclarationList is a parenthesized parameter sequence.
type ParameterDeclarationList struct {
	PosOpenParen  source.Position
	PosCloseParen source.Position
	Parameters    []*ParameterDeclaration
}

// Position returns the opening parenthesis position.
func (n *ParameterDeclarationList) Position() source.Position {
	return n.PosOpenParen
}

// Visit implements Node.
func (n *ParameterDeclarationList) Visit(v Visitor, depth int) {
	v.StartParameterDeclarationList(n, depth)
	for _, p := range n.Parameters {
		p.Visit(v, depth+1)
	}
	v.EndParameterDeclarationList(n, depth)
}

// DeclarationKind identifies the type alternative of a Declaration.
type DeclarationKind int

// Declaration kinds.
const (
	DeclarationFunction DeclarationKind = iota
	DeclarationObject
)

// Declaration is a named declaration: a function when the type is a
// parameter-declaration-list, otherwise an object whose type is an
// id-expression (possibly empty when elided). Initializer is nil for
// declarations without one.
type Declaration struct {
	Identifier   *UnqualifiedID
	FunctionType *ParameterDeclarationList
	ObjectType   *IDExpression
	Initializer  *Statement
}

// Kind returns whether this declares a function or an object.
func (n *Declaration) Kind() DeclarationKind {
	if n.FunctionType != nil {
		return DeclarationFunction
	}
	return DeclarationObject
}

// Position returns the position of the declared name.
func (n *Declaration) Position() source.Position {
	return n.Identifier.Position()
}

// Visit implements Node.
func (n *Declaration) Visit(v Visitor, depth int) {
	v.StartDeclaration(n, depth)
	n.Identifier.Visit(v, depth+1)
	switch n.Kind() {
	case DeclarationFunction:
		n.FunctionType.Visit(v, depth+1)
	case DeclarationObject:
		n.ObjectType.Visit(v, depth+1)
	}
	if n.Initializer != nil {
		n.Initializer.Visit(v, depth+1)
	}
	v.EndDeclaration(n, depth)
}

// TranslationUnit is the root of the parse tree.
type TranslationUnit struct {
	Declarations []*Declaration
}

// Position returns the position of the first declaration, or the zero
// position for an empty unit.
func (n *TranslationUnit) Position() source.Position {
	if len(n.Declarations) > 0 {
		return n.Declarations[0].Position()
	}
	return source.Position{}
}

// Visit implements Node.
func (n *TranslationUnit) Visit(v Visitor, depth int) {
	v.StartTranslationUnit(n, depth)
	for _, d := range n.Declarations {
		d.Visit(v, depth+1)
	}
	v.EndTranslationUnit(n, depth)
}
