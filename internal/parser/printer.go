package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/cpp2-lang/cpp2go/internal/lexer"
)

// ParseTreePrinter writes an indented rendering of the parse tree to a
// text stream: one line per node carrying its grammar category, one line
// per token carrying its text, each indented by two spaces per depth.
// All state is held per instance, so printers can run concurrently over
// different trees.
type ParseTreePrinter struct {
	BaseVisitor
	w io.Writer

	// Stack of expression lists currently being walked, innermost last.
	// Each frame tracks which term the next expression child belongs to,
	// so nested lists print their passing styles correctly.
	lists []listFrame
}

type listFrame struct {
	list *ExpressionList
	term int
}

// NewParseTreePrinter creates a printer writing to w.
func NewParseTreePrinter(w io.Writer) *ParseTreePrinter {
	return &ParseTreePrinter{w: w}
}

func (pr *ParseTreePrinter) line(depth int, text string) {
	fmt.Fprintf(pr.w, "%s%s\n", strings.Repeat("  ", depth), text)
}

func (pr *ParseTreePrinter) StartToken(t *lexer.Token, depth int) {
	pr.line(depth, t.Literal)
}

func (pr *ParseTreePrinter) StartPrimaryExpression(n *PrimaryExpression, depth int) {
	pr.line(depth, "primary-expression")
}

func (pr *ParseTreePrinter) StartPostfixExpression(n *PostfixExpression, depth int) {
	pr.line(depth, "postfix-expression")
}

func (pr *ParseTreePrinter) StartPrefixExpression(n *PrefixExpression, depth int) {
	pr.line(depth, "prefix-expression")
}

func (pr *ParseTreePrinter) StartBinaryExpression(n *BinaryExpression, depth int) {
	pr.line(depth, n.Name+"-expression")
}

func (pr *ParseTreePrinter) StartExpression(n *Expression, depth int) {
	pr.line(depth, "expression")
	if len(pr.lists) == 0 {
		return
	}
	// This expression is the next term of the innermost expression-list.
	frame := &pr.lists[len(pr.lists)-1]
	for frame.term < len(frame.list.Terms) && frame.list.Terms[frame.term].Expr == nil {
		frame.term++
	}
	if frame.term < len(frame.list.Terms) {
		if frame.list.Terms[frame.term].Pass == PassingOut {
			pr.line(depth+1, "out")
		}
		frame.term++
	}
}

func (pr *ParseTreePrinter) StartExpressionList(n *ExpressionList, depth int) {
	pr.line(depth, "expression-list")
	pr.lists = append(pr.lists, listFrame{list: n})
}

func (pr *ParseTreePrinter) EndExpressionList(n *ExpressionList, depth int) {
	pr.lists = pr.lists[:len(pr.lists)-1]
}

func (pr *ParseTreePrinter) StartUnqualifiedID(n *UnqualifiedID, depth int) {
	pr.line(depth, "unqualified-id")
}

func (pr *ParseTreePrinter) StartQualifiedID(n *QualifiedID, depth int) {
	pr.line(depth, "qualified-id")
}

func (pr *ParseTreePrinter) StartIDExpression(n *IDExpression, depth int) {
	pr.line(depth, "id-expression")
}

func (pr *ParseTreePrinter) StartExpressionStatement(n *ExpressionStatement, depth int) {
	pr.line(depth, "expression-statement")
}

func (pr *ParseTreePrinter) StartCompoundStatement(n *CompoundStatement, depth int) {
	pr.line(depth, "compound-statement")
}

func (pr *ParseTreePrinter) StartSelectionStatement(n *SelectionStatement, depth int) {
	pr.line(depth, "selection-statement")
	pr.line(depth+1, fmt.Sprintf("is_constexpr: %t", n.IsConstexpr))
}

func (pr *ParseTreePrinter) StartStatement(n *Statement, depth int) {
	pr.line(depth, "statement")
}

func (pr *ParseTreePrinter) StartParameterDeclaration(n *ParameterDeclaration, depth int) {
	pr.line(depth, "parameter-declaration")
	text := n.Pass.String()
	if n.Mod != ModifierNone {
		text += " " + n.Mod.String()
	}
	pr.line(depth+1, text)
}

func (pr *ParseTreePrinter) StartParameterDeclarationList(n *ParameterDeclarationList, depth int) {
	pr.line(depth, "parameter-declaration-list")
}

func (pr *ParseTreePrinter) StartDeclaration(n *Declaration, depth int) {
	pr.line(depth, "declaration")
}

func (pr *ParseTreePrinter) StartTranslationUnit(n *TranslationUnit, depth int) {
	pr.line(depth, "translation-unit")
}
