package parser

import "github.com/cpp2-lang/cpp2go/internal/lexer"

// Visitor receives Start and End callbacks during a pre-order walk of the
// parse tree. Every node is bracketed by its Start/End pair; tokens that
// appear directly inside a node (operators, identifiers, the leading if)
// are delivered to StartToken between the surrounding calls, in source
// order. Concrete visitors embed BaseVisitor and override only the
// methods for the node kinds they observe.
type Visitor interface {
	StartToken(t *lexer.Token, depth int)

	StartPrimaryExpression(n *PrimaryExpression, depth int)
	EndPrimaryExpression(n *PrimaryExpression, depth int)
	StartPostfixExpression(n *PostfixExpression, depth int)
	EndPostfixExpression(n *PostfixExpression, depth int)
	StartPrefixExpression(n *PrefixExpression, depth int)
	EndPrefixExpression(n *PrefixExpression, depth int)
	StartBinaryExpression(n *BinaryExpression, depth int)
	EndBinaryExpression(n *BinaryExpression, depth int)
	StartExpression(n *Expression, depth int)
	EndExpression(n *Expression, depth int)
	StartExpressionList(n *ExpressionList, depth int)
	EndExpressionList(n *ExpressionList, depth int)

	StartUnqualifiedID(n *UnqualifiedID, depth int)
	EndUnqualifiedID(n *UnqualifiedID, depth int)
	StartQualifiedID(n *QualifiedID, depth int)
	EndQualifiedID(n *QualifiedID, depth int)
	StartIDExpression(n *IDExpression, depth int)
	EndIDExpression(n *IDExpression, depth int)

	StartExpressionStatement(n *ExpressionStatement, depth int)
	EndExpressionStatement(n *ExpressionStatement, depth int)
	StartCompoundStatement(n *CompoundStatement, depth int)
	EndCompoundStatement(n *CompoundStatement, depth int)
	StartSelectionStatement(n *SelectionStatement, depth int)
	EndSelectionStatement(n *SelectionStatement, depth int)
	StartStatement(n *Statement, depth int)
	EndStatement(n *Statement, depth int)

	StartParameterDeclaration(n *ParameterDeclaration, depth int)
	EndParameterDeclaration(n *ParameterDeclaration, depth int)
	StartParameterDeclarationList(n *ParameterDeclarationList, depth int)
	EndParameterDeclarationList(n *ParameterDeclarationList, depth int)
	StartDeclaration(n *Declaration, depth int)
	EndDeclaration(n *Declaration, depth int)
	StartTranslationUnit(n *TranslationUnit, depth int)
	EndTranslationUnit(n *TranslationUnit, depth int)
}

// BaseVisitor provides no-op implementations of every Visitor method so
// concrete visitors only override what they need.
type BaseVisitor struct{}

func (BaseVisitor) StartToken(t *lexer.Token, depth int) {}

func (BaseVisitor) StartPrimaryExpression(n *PrimaryExpression, depth int) {}
func (BaseVisitor) EndPrimaryExpression(n *PrimaryExpression, depth int)   {}
func (BaseVisitor) StartPostfixExpression(n *PostfixExpression, depth int) {}
func (BaseVisitor) EndPostfixExpression(n *PostfixExpression, depth int)   {}
func (BaseVisitor) StartPrefixExpression(n *PrefixExpression, depth int)   {}
func (BaseVisitor) EndPrefixExpression(n *PrefixExpression, depth int)     {}
func (BaseVisitor) StartBinaryExpression(n *BinaryExpression, depth int)   {}
func (BaseVisitor) EndBinaryExpression(n *BinaryExpression, depth int)     {}
func (BaseVisitor) StartExpression(n *Expression, depth int)               {}
func (BaseVisitor) EndExpression(n *Expression, depth int)                 {}
func (BaseVisitor) StartExpressionList(n *ExpressionList, depth int)       {}
func (BaseVisitor) EndExpressionList(n *ExpressionList, depth int)         {}

func (BaseVisitor) StartUnqualifiedID(n *UnqualifiedID, depth int) {}
func (BaseVisitor) EndUnqualifiedID(n *UnqualifiedID, depth int)   {}
func (BaseVisitor) StartQualifiedID(n *QualifiedID, depth int)     {}
func (BaseVisitor) EndQualifiedID(n *QualifiedID, depth int)       {}
func (BaseVisitor) StartIDExpression(n *IDExpression, depth int)   {}
func (BaseVisitor) EndIDExpression(n *IDExpression, depth int)     {}

func (BaseVisitor) StartExpressionStatement(n *ExpressionStatement, depth int) {}
func (BaseVisitor) EndExpressionStatement(n *ExpressionStatement, depth int)   {}
func (BaseVisitor) StartCompoundStatement(n *CompoundStatement, depth int)     {}
func (BaseVisitor) EndCompoundStatement(n *CompoundStatement, depth int)       {}
func (BaseVisitor) StartSelectionStatement(n *SelectionStatement, depth int)   {}
func (BaseVisitor) EndSelectionStatement(n *SelectionStatement, depth int)     {}
func (BaseVisitor) StartStatement(n *Statement, depth int)                     {}
func (BaseVisitor) EndStatement(n *Statement, depth int)                       {}

func (BaseVisitor) StartParameterDeclaration(n *ParameterDeclaration, depth int)         {}
func (BaseVisitor) EndParameterDeclaration(n *ParameterDeclaration, depth int)           {}
func (BaseVisitor) StartParameterDeclarationList(n *ParameterDeclarationList, depth int) {}
func (BaseVisitor) EndParameterDeclarationList(n *ParameterDeclarationList, depth int)   {}
func (BaseVisitor) StartDeclaration(n *Declaration, depth int)                           {}
func (BaseVisitor) EndDeclaration(n *Declaration, depth int)                             {}
func (BaseVisitor) StartTranslationUnit(n *TranslationUnit, depth int)                   {}
func (BaseVisitor) EndTranslationUnit(n *TranslationUnit, depth int)                     {}
