package parser

import (
	"github.com/cpp2-lang/cpp2go/internal/lexer"
	"github.com/cpp2-lang/cpp2go/internal/source"
)

// ====== Operator categorization ======

// IsPrefixOperator reports whether t is a prefix operator.
func IsPrefixOperator(t lexer.TokenType) bool {
	return t == lexer.TokenNot
}

// IsPostfixOperator reports whether t is a unary postfix operator.
func IsPostfixOperator(t lexer.TokenType) bool {
	switch t {
	case lexer.TokenPlusPlus, lexer.TokenMinusMinus, lexer.TokenCaret,
		lexer.TokenAmpersand, lexer.TokenTilde, lexer.TokenDollar:
		return true
	}
	return false
}

// IsAssignmentOperator reports whether t is an assignment operator.
// The bitwise compound assignments are intentionally absent.
func IsAssignmentOperator(t lexer.TokenType) bool {
	switch t {
	case lexer.TokenAssignment, lexer.TokenMultiplyEq, lexer.TokenSlashEq,
		lexer.TokenModuloEq, lexer.TokenPlusEq, lexer.TokenMinusEq,
		lexer.TokenRightShiftEq, lexer.TokenLeftShiftEq:
		return true
	}
	return false
}

// ====== Parser ======

// Parser parses sections of Cpp2 code into one accumulating translation
// unit. Diagnostics are appended to the externally owned error list the
// parser was created with; they are never thrown. The token slice passed
// to Parse must stay alive and unmodified for as long as the tree is used,
// because tree nodes reference its tokens by pointer.
type Parser struct {
	errors *[]source.Error
	tree   *TranslationUnit

	// Cursor state, valid only for the duration of one Parse call.
	tokens []lexer.Token
	pos    int
}

// New creates a parser that appends diagnostics to errors.
func New(errors *[]source.Error) *Parser {
	return &Parser{
		errors: errors,
		tree:   &TranslationUnit{},
	}
}

// Parse parses one section's worth of tokens and splices the resulting
// declarations onto the stored translation unit. Call it repeatedly for
// the Cpp2 sections of a translation unit to build the whole tree. It
// returns true iff the call consumed all tokens and produced no
// diagnostics.
func (p *Parser) Parse(tokens []lexer.Token) bool {
	p.tokens = tokens
	p.pos = 0
	before := len(*p.errors)

	tu := p.translationUnit()
	p.tree.Declarations = append(p.tree.Declarations, tu.Declarations...)

	if !p.atEnd() {
		p.error("unexpected text at end of Cpp2 code section")
		return false
	}
	return len(*p.errors) == before
}

// Tree returns the accumulated translation unit.
func (p *Parser) Tree() *TranslationUnit {
	return p.tree
}

// Visit walks the accumulated translation unit with v.
func (p *Parser) Visit(v Visitor) {
	p.tree.Visit(v, 0)
}

// ====== Error reporting ======

// error appends a diagnostic at the current token, naming its text after
// the message. At end of input the last token is used instead.
func (p *Parser) error(msg string) {
	tok := p.peek(0)
	if tok == nil {
		tok = p.peek(-1)
	}
	if tok == nil {
		*p.errors = append(*p.errors, source.Error{Message: msg})
		return
	}
	*p.errors = append(*p.errors, source.Error{
		Pos:     tok.Position(),
		Message: msg + " at " + tok.Literal,
	})
}

// ====== Token navigation: only these functions read pos ======

// curr returns the current token. Precondition: !p.atEnd().
func (p *Parser) curr() *lexer.Token {
	return &p.tokens[p.pos]
}

// peek returns the token at the given offset from the current position,
// or nil when out of bounds. The offset may be negative.
func (p *Parser) peek(num int) *lexer.Token {
	if i := p.pos + num; 0 <= i && i < len(p.tokens) {
		return &p.tokens[i]
	}
	return nil
}

// atEnd reports whether all tokens have been consumed.
func (p *Parser) atEnd() bool {
	return p.pos == len(p.tokens)
}

// next advances the cursor, saturating at the end of the slice.
func (p *Parser) next() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// currIs reports whether the current token has the given type.
func (p *Parser) currIs(t lexer.TokenType) bool {
	return !p.atEnd() && p.curr().Type == t
}

// currIsKeyword reports whether the current token is a keyword with the
// given spelling.
func (p *Parser) currIsKeyword(text string) bool {
	return !p.atEnd() && p.curr().Type == lexer.TokenKeyword && p.curr().Literal == text
}

// currIsIdentifier reports whether the current token is an identifier
// with the given spelling.
func (p *Parser) currIsIdentifier(text string) bool {
	return !p.atEnd() && p.curr().Type == lexer.TokenIdentifier && p.curr().Literal == text
}

// ====== Parsers for unary expressions ======

// primary-expression:
//
//	identifier, keyword or literal
//	( expression-list )
func (p *Parser) primaryExpression() *PrimaryExpression {
	if p.atEnd() {
		return nil
	}

	switch p.curr().Type {
	case lexer.TokenIdentifier,
		lexer.TokenKeyword,
		lexer.TokenDecimalLiteral,
		lexer.TokenFloatLiteral,
		lexer.TokenStringLiteral,
		lexer.TokenCharacterLiteral,
		lexer.TokenBinaryLiteral,
		lexer.TokenHexadecimalLiteral:
		n := &PrimaryExpression{Identifier: p.curr()}
		p.next()
		return n
	}

	if p.currIs(lexer.TokenLeftParen) {
		p.next()
		list := p.expressionList()
		if list == nil {
			p.error("unexpected text - ( is not followed by an expression-list")
			p.next()
			return nil
		}
		if !p.currIs(lexer.TokenRightParen) {
			p.error("unexpected text - expression-list is not terminated by )")
			p.next()
			return nil
		}
		p.next()
		return &PrimaryExpression{List: list}
	}

	return nil
}

// postfix-expression:
//
//	primary-expression
//	postfix-expression postfix-operator
//	postfix-expression [ expression-list ]
//	postfix-expression ( expression-list? )
func (p *Parser) postfixExpression() *PostfixExpression {
	expr := p.primaryExpression()
	if expr == nil {
		return nil
	}
	n := &PostfixExpression{Expr: expr}

	for !p.atEnd() &&
		(IsPostfixOperator(p.curr().Type) ||
			p.curr().Type == lexer.TokenLeftBracket ||
			p.curr().Type == lexer.TokenLeftParen ||
			p.curr().Type == lexer.TokenDot) {
		term := PostfixTerm{Op: p.curr()}
		p.next()

		switch term.Op.Type {
		case lexer.TokenLeftBracket:
			term.ExprList = p.expressionList()
			if term.ExprList == nil {
				p.error("subscript expression [ ] must not be empty")
			}
			if !p.currIs(lexer.TokenRightBracket) {
				p.error("unexpected text - [ is not properly matched by ]")
			}
			p.next()

		case lexer.TokenLeftParen:
			term.ExprList = p.expressionList()
			if !p.currIs(lexer.TokenRightParen) {
				p.error("unexpected text - ( is not properly matched by )")
			}
			p.next()
		}

		// TODO: member access for lexer.TokenDot

		n.Ops = append(n.Ops, term)
	}
	return n
}

// prefix-expression:
//
//	postfix-expression
//	prefix-operator prefix-expression
func (p *Parser) prefixExpression() *PrefixExpression {
	n := &PrefixExpression{}
	for !p.atEnd() && IsPrefixOperator(p.curr().Type) {
		n.Ops = append(n.Ops, p.curr())
		p.next()
	}
	if n.Expr = p.postfixExpression(); n.Expr != nil {
		return n
	}
	return nil
}

// ====== Parsers for binary expressions ======

// binaryExpression parses one precedence level:
//
//	term { op term }*
//
// On a missing right operand after an operator it diagnoses and returns
// what was built so far.
func (p *Parser) binaryExpression(name string, isValidOp func(*lexer.Token) bool, term func() Node) *BinaryExpression {
	expr := term()
	if expr == nil {
		return nil
	}
	n := &BinaryExpression{Name: name, Expr: expr}

	for !p.atEnd() && isValidOp(p.curr()) {
		t := BinaryTerm{Op: p.curr()}
		p.next()

		if t.Expr = term(); t.Expr == nil {
			p.error("invalid expression after " + t.Op.Literal)
			return n
		}
		n.Terms = append(n.Terms, t)
	}
	return n
}

// The precedence ladder, outermost level last. Each level's term function
// returns an untyped nil on failure so binaryExpression sees a plain nil
// Node.

func (p *Parser) isAsExpression() *BinaryExpression {
	return p.binaryExpression("is-as",
		func(t *lexer.Token) bool {
			return t.Type == lexer.TokenKeyword && (t.Literal == "is" || t.Literal == "as")
		},
		func() Node {
			if n := p.prefixExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) multiplicativeExpression() *BinaryExpression {
	return p.binaryExpression("multiplicative",
		func(t *lexer.Token) bool {
			return t.Type == lexer.TokenMultiply || t.Type == lexer.TokenSlash || t.Type == lexer.TokenModulo
		},
		func() Node {
			if n := p.isAsExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) additiveExpression() *BinaryExpression {
	return p.binaryExpression("additive",
		func(t *lexer.Token) bool {
			return t.Type == lexer.TokenPlus || t.Type == lexer.TokenMinus
		},
		func() Node {
			if n := p.multiplicativeExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) shiftExpression() *BinaryExpression {
	return p.binaryExpression("shift",
		func(t *lexer.Token) bool {
			return t.Type == lexer.TokenLeftShift || t.Type == lexer.TokenRightShift
		},
		func() Node {
			if n := p.additiveExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) compareExpression() *BinaryExpression {
	return p.binaryExpression("compare",
		func(t *lexer.Token) bool { return t.Type == lexer.TokenSpaceship },
		func() Node {
			if n := p.shiftExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) relationalExpression() *BinaryExpression {
	return p.binaryExpression("relational",
		func(t *lexer.Token) bool {
			return t.Type == lexer.TokenLess || t.Type == lexer.TokenLessEq ||
				t.Type == lexer.TokenGreater || t.Type == lexer.TokenGreaterEq
		},
		func() Node {
			if n := p.compareExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) equalityExpression() *BinaryExpression {
	return p.binaryExpression("equality",
		func(t *lexer.Token) bool {
			return t.Type == lexer.TokenEqualComparison || t.Type == lexer.TokenNotEqualComparison
		},
		func() Node {
			if n := p.relationalExpression(); n != nil {
				return n
			}
			return nil
		})
}

// The bitwise and/xor/or levels are deliberately not part of the ladder.

func (p *Parser) logicalAndExpression() *BinaryExpression {
	return p.binaryExpression("logical-and",
		func(t *lexer.Token) bool { return t.Type == lexer.TokenLogicalAnd },
		func() Node {
			if n := p.equalityExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) logicalOrExpression() *BinaryExpression {
	return p.binaryExpression("logical-or",
		func(t *lexer.Token) bool { return t.Type == lexer.TokenLogicalOr },
		func() Node {
			if n := p.logicalAndExpression(); n != nil {
				return n
			}
			return nil
		})
}

func (p *Parser) assignmentExpression() *BinaryExpression {
	return p.binaryExpression("assignment",
		func(t *lexer.Token) bool { return IsAssignmentOperator(t.Type) },
		func() Node {
			if n := p.logicalOrExpression(); n != nil {
				return n
			}
			return nil
		})
}

// expression:
//
//	assignment-expression
func (p *Parser) expression() *Expression {
	expr := p.assignmentExpression()
	if expr == nil {
		return nil
	}
	return &Expression{Expr: expr}
}

// expression-list:
//
//	expression
//	expression-list , expression
//
// The leading identifier out sets the term's passing style. This is one of
// the two designated backtracking points: when no expression follows, the
// cursor is restored and no diagnostic is emitted.
func (p *Parser) expressionList() *ExpressionList {
	startPos := p.pos
	pass := PassingIn

	if p.currIsIdentifier("out") {
		pass = PassingOut
		p.next()
	}
	x := p.expression()
	if x == nil {
		p.pos = startPos // backtrack
		return nil
	}
	n := &ExpressionList{}
	n.Terms = append(n.Terms, ExpressionListTerm{Pass: pass, Expr: x})

	// Now we have at least one expression, so see if there are more...
	for p.currIs(lexer.TokenComma) {
		p.next()
		pass = PassingIn
		if p.currIsIdentifier("out") {
			pass = PassingOut
			p.next()
		}
		n.Terms = append(n.Terms, ExpressionListTerm{Pass: pass, Expr: p.expression()})
	}
	return n
}

// ====== Parsers for identifiers ======

// unqualified-id:
//
//	identifier or keyword (fundamental type names are keywords)
func (p *Parser) unqualifiedID() *UnqualifiedID {
	if !p.currIs(lexer.TokenIdentifier) && !p.currIs(lexer.TokenKeyword) {
		return nil
	}
	n := &UnqualifiedID{Identifier: p.curr()}
	p.next()
	return n
}

// qualified-id:
//
//	unqualified-id { :: unqualified-id }+
//
// When the first id is not followed by :: the cursor is restored so the
// unqualified alternative can try.
func (p *Parser) qualifiedID() *QualifiedID {
	startPos := p.pos
	id := p.unqualifiedID()
	if id == nil || !p.currIs(lexer.TokenScope) {
		p.pos = startPos // backtrack
		return nil
	}

	n := &QualifiedID{IDs: []*UnqualifiedID{id}}
	for p.currIs(lexer.TokenScope) {
		p.next()
		id = p.unqualifiedID()
		if id == nil {
			p.error("invalid text, :: should be followed by a nested name")
			return nil
		}
		n.IDs = append(n.IDs, id)
	}
	return n
}

// id-expression:
//
//	qualified-id
//	unqualified-id
func (p *Parser) idExpression() *IDExpression {
	if id := p.qualifiedID(); id != nil {
		return &IDExpression{Qualified: id}
	}
	if id := p.unqualifiedID(); id != nil {
		return &IDExpression{Unqualified: id}
	}
	return nil
}

// ====== Parsers for statements ======

// expression-statement:
//
//	expression ;
//	expression
func (p *Parser) expressionStatement(semicolonRequired bool) *ExpressionStatement {
	expr := p.expression()
	if expr == nil {
		return nil
	}
	if semicolonRequired && !p.currIs(lexer.TokenSemicolon) {
		p.error("expression-statement does not end with semicolon")
		return nil
	}
	if p.currIs(lexer.TokenSemicolon) {
		p.next()
	}
	return &ExpressionStatement{Expr: expr}
}

// selection-statement:
//
//	if constexpr-opt expression compound-statement
//	if constexpr-opt expression compound-statement else compound-statement
func (p *Parser) selectionStatement() *SelectionStatement {
	if !p.currIsKeyword("if") {
		return nil
	}
	n := &SelectionStatement{Identifier: p.curr()}
	p.next()

	if p.currIsKeyword("constexpr") {
		n.IsConstexpr = true
		p.next()
	}

	if n.Condition = p.expression(); n.Condition == nil {
		p.error("invalid if condition")
		return nil
	}

	if n.TrueBranch = p.compoundStatement(); n.TrueBranch == nil {
		p.error("invalid if branch body")
		return nil
	}

	if !p.currIsKeyword("else") {
		// Add an empty else branch to simplify processing elsewhere.
		// The zero position signifies it is implicit.
		n.FalseBranch = &CompoundStatement{}
	} else {
		p.next()
		if n.FalseBranch = p.compoundStatement(); n.FalseBranch == nil {
			p.error("invalid else branch body")
			return nil
		}
	}

	return n
}

// statement:
//
//	selection-statement
//	compound-statement
//	declaration
//	expression-statement
func (p *Parser) statement(semicolonRequired bool) *Statement {
	if s := p.selectionStatement(); s != nil {
		return &Statement{Selection: s}
	}
	if s := p.compoundStatement(); s != nil {
		return &Statement{Compound: s}
	}
	if s := p.declaration(true); s != nil {
		return &Statement{Declaration: s}
	}
	if s := p.expressionStatement(semicolonRequired); s != nil {
		return &Statement{Expression: s}
	}
	return nil
}

// compound-statement:
//
//	{ statement-seq-opt }
func (p *Parser) compoundStatement() *CompoundStatement {
	if !p.currIs(lexer.TokenLeftBrace) {
		return nil
	}
	n := &CompoundStatement{Pos: p.curr().Position()}
	p.next()

	for !p.currIs(lexer.TokenRightBrace) {
		s := p.statement(true)
		if s == nil {
			p.error("invalid statement in compound-statement")
			return nil
		}
		n.Statements = append(n.Statements, s)
	}

	p.next()
	return n
}

// ====== Parsers for declarations ======

// parameter-declaration:
//
//	parameter-direction-opt this-specifier-opt declaration
func (p *Parser) parameterDeclaration() *ParameterDeclaration {
	if p.atEnd() {
		return nil
	}
	n := &ParameterDeclaration{Pos: p.curr().Position(), Pass: PassingIn}

	if p.currIs(lexer.TokenIdentifier) {
		switch p.curr().Literal {
		case "in":
			// defaulted above
			p.next()
		case "inout":
			n.Pass = PassingInout
			p.next()
		case "out":
			n.Pass = PassingOut
			p.next()
		case "move":
			n.Pass = PassingMove
			p.next()
		case "forward":
			n.Pass = PassingForward
			p.next()
		}
	}

	if p.currIs(lexer.TokenIdentifier) {
		switch p.curr().Literal {
		case "implicit":
			n.Mod = ModifierImplicit
			p.next()
		case "virtual":
			n.Mod = ModifierVirtual
			p.next()
		case "override":
			n.Mod = ModifierOverride
			p.next()
		case "final":
			n.Mod = ModifierFinal
			p.next()
		}
	}

	if n.Declaration = p.declaration(false); n.Declaration == nil {
		return nil
	}
	return n
}

// parameter-declaration-list:
//
//	( parameter-declaration { , parameter-declaration }* )
func (p *Parser) parameterDeclarationList() *ParameterDeclarationList {
	if !p.currIs(lexer.TokenLeftParen) {
		return nil
	}
	n := &ParameterDeclarationList{PosOpenParen: p.curr().Position()}
	p.next()

	for param := p.parameterDeclaration(); param != nil; param = p.parameterDeclaration() {
		n.Parameters = append(n.Parameters, param)

		if p.currIs(lexer.TokenRightParen) {
			break
		}
		if !p.currIs(lexer.TokenComma) {
			p.error("expected , in parameter list")
			return nil
		}
		p.next()
	}

	if !p.currIs(lexer.TokenRightParen) {
		p.error("invalid parameter list")
		p.next()
		return nil
	}
	n.PosCloseParen = p.curr().Position()
	p.next()
	return n
}

// declaration:
//
//	identifier : parameter-declaration-list = statement
//	identifier : id-expression-opt = statement
//	identifier : id-expression
//
// This is the second designated backtracking point: when the identifier is
// not followed by :, the cursor is restored so another alternative can
// try.
func (p *Parser) declaration(semicolonRequired bool) *Declaration {
	if p.atEnd() {
		return nil
	}

	startPos := p.pos

	n := &Declaration{}
	if n.Identifier = p.unqualifiedID(); n.Identifier == nil {
		return nil
	}

	// The next token must be :
	if !p.currIs(lexer.TokenColon) {
		p.pos = startPos // backtrack
		return nil
	}
	p.next()

	// Next is an optional type
	if t := p.parameterDeclarationList(); t != nil {
		n.FunctionType = t
	} else if t := p.idExpression(); t != nil {
		n.ObjectType = t
	} else {
		n.ObjectType = &IDExpression{} // elided type
	}

	// Next is optionally = followed by an initializer
	if !p.currIs(lexer.TokenAssignment) {
		// Then there may be a semicolon; if there is one, eat it
		if p.currIs(lexer.TokenSemicolon) {
			p.next()
		} else if semicolonRequired {
			p.error("missing semicolon at end of declaration")
			return nil
		}
		return n
	}

	// There was an =, so eat it and continue
	p.next()

	if n.Initializer = p.statement(semicolonRequired); n.Initializer == nil {
		p.error("ill-formed initializer")
		p.next()
		return nil
	}

	return n
}

// translation-unit:
//
//	declaration-seq-opt
func (p *Parser) translationUnit() *TranslationUnit {
	n := &TranslationUnit{}
	for d := p.declaration(true); d != nil; d = p.declaration(true) {
		n.Declarations = append(n.Declarations, d)
	}
	return n
}
