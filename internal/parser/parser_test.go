package parser

import (
	"strings"
	"testing"

	"github.com/cpp2-lang/cpp2go/internal/lexer"
	"github.com/cpp2-lang/cpp2go/internal/source"
)

// tokenize lexes input, failing the test on lexer diagnostics.
func tokenize(t *testing.T, input string) []lexer.Token {
	t.Helper()
	var errs []source.Error
	tokens := lexer.Tokenize(input, &errs)
	if len(errs) > 0 {
		t.Fatalf("lexer errors for %q: %v", input, errs)
	}
	return tokens
}

// parseUnit parses input as a translation unit.
func parseUnit(t *testing.T, input string) (*Parser, bool, []source.Error) {
	t.Helper()
	var errs []source.Error
	p := New(&errs)
	ok := p.Parse(tokenize(t, input))
	return p, ok, errs
}

// descendToName walks the leftmost ladder spine until it reaches the
// binary level with the given display name.
func descendToName(t *testing.T, n Node, name string) *BinaryExpression {
	t.Helper()
	for {
		be, ok := n.(*BinaryExpression)
		if !ok {
			t.Fatalf("reached %T before finding %q level", n, name)
		}
		if be.Name == name {
			return be
		}
		n = be.Expr
	}
}

// primaryOf walks the leftmost spine of an expression down to its
// primary, requiring every binary level and the unary strata on the way
// to carry no operators.
func primaryOf(t *testing.T, n Node) *PrimaryExpression {
	t.Helper()
	for {
		switch x := n.(type) {
		case *BinaryExpression:
			if len(x.Terms) != 0 {
				t.Fatalf("%s level has %d terms, want 0", x.Name, len(x.Terms))
			}
			n = x.Expr
		case *PrefixExpression:
			if len(x.Ops) != 0 {
				t.Fatalf("prefix level has %d ops, want 0", len(x.Ops))
			}
			n = x.Expr
		case *PostfixExpression:
			if len(x.Ops) != 0 {
				t.Fatalf("postfix level has %d ops, want 0", len(x.Ops))
			}
			return x.Expr
		case *PrimaryExpression:
			return x
		default:
			t.Fatalf("unexpected node %T on spine", n)
		}
	}
}

func hasError(errs []source.Error, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestObjectDeclarationWithInitializer(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : int = 0;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}

	tree := p.Tree()
	if len(tree.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(tree.Declarations))
	}
	d := tree.Declarations[0]
	if d.Identifier.Identifier.Literal != "x" {
		t.Errorf("name = %q, want x", d.Identifier.Identifier.Literal)
	}
	if d.Kind() != DeclarationObject {
		t.Fatalf("kind = %v, want object", d.Kind())
	}
	if d.ObjectType.Active() != IDUnqualified || d.ObjectType.Unqualified.Identifier.Literal != "int" {
		t.Errorf("type is not unqualified int")
	}
	if d.Initializer == nil || d.Initializer.Active() != StatementExpression {
		t.Fatalf("initializer is not an expression-statement")
	}
	prim := primaryOf(t, d.Initializer.Expression.Expr.Expr)
	if prim.Active() != PrimaryIdentifier || prim.Identifier.Literal != "0" {
		t.Errorf("initializer primary = %v, want literal 0", prim.Identifier)
	}
}

func TestObjectDeclarationWithoutInitializer(t *testing.T) {
	p, ok, errs := parseUnit(t, "y : int;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	d := p.Tree().Declarations[0]
	if d.Initializer != nil {
		t.Error("expected no initializer")
	}
	if d.Kind() != DeclarationObject {
		t.Error("expected object kind")
	}
}

func TestFunctionDeclarationWithSelection(t *testing.T) {
	p, ok, errs := parseUnit(t, "main : () = { if x == 1 { } else { } }")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}

	d := p.Tree().Declarations[0]
	if d.Kind() != DeclarationFunction {
		t.Fatalf("kind = %v, want function", d.Kind())
	}
	if len(d.FunctionType.Parameters) != 0 {
		t.Errorf("got %d parameters, want 0", len(d.FunctionType.Parameters))
	}
	if d.Initializer.Active() != StatementCompound {
		t.Fatalf("initializer is not a compound-statement")
	}

	body := d.Initializer.Compound
	if len(body.Statements) != 1 || body.Statements[0].Active() != StatementSelection {
		t.Fatalf("body does not hold a single selection-statement")
	}

	sel := body.Statements[0].Selection
	if sel.IsConstexpr {
		t.Error("is_constexpr = true, want false")
	}
	eq := descendToName(t, sel.Condition.Expr, "equality")
	if len(eq.Terms) != 1 || eq.Terms[0].Op.Literal != "==" {
		t.Fatalf("condition equality level terms = %v", eq.Terms)
	}
	left := primaryOf(t, eq.Expr)
	if left.Identifier.Literal != "x" {
		t.Errorf("condition left = %q, want x", left.Identifier.Literal)
	}
	if len(sel.TrueBranch.Statements) != 0 {
		t.Error("true branch is not empty")
	}
	if !sel.FalseBranch.Pos.IsValid() {
		t.Error("explicit else branch should carry a source position")
	}
}

func TestSyntheticElseBranch(t *testing.T) {
	p, ok, errs := parseUnit(t, "main : () = { if x { } }")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	sel := p.Tree().Declarations[0].Initializer.Compound.Statements[0].Selection
	if sel.FalseBranch == nil {
		t.Fatal("false branch is nil, want synthetic empty compound")
	}
	if sel.FalseBranch.Pos.IsValid() {
		t.Errorf("synthetic branch position = %v, want zero", sel.FalseBranch.Pos)
	}
	if len(sel.FalseBranch.Statements) != 0 {
		t.Error("synthetic branch is not empty")
	}
}

func TestConstexprSelection(t *testing.T) {
	p, ok, errs := parseUnit(t, "main : () = { if constexpr x { } }")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	sel := p.Tree().Declarations[0].Initializer.Compound.Statements[0].Selection
	if !sel.IsConstexpr {
		t.Error("is_constexpr = false, want true")
	}
}

func TestUnparseableReturnStatement(t *testing.T) {
	// return is not in the grammar; the compound statement diagnoses it.
	_, ok, errs := parseUnit(t, "f : (a: int, b: int) = { return a + b; }")
	if ok {
		t.Error("Parse reported success")
	}
	if !hasError(errs, "invalid statement in compound-statement") {
		t.Errorf("missing compound-statement diagnostic, got %v", errs)
	}
}

func TestColonEqIsNotADeclaration(t *testing.T) {
	p, ok, errs := parseUnit(t, "a := b + c * d;")
	if ok {
		t.Error("Parse reported success")
	}
	if len(p.Tree().Declarations) != 0 {
		t.Errorf("got %d declarations, want 0", len(p.Tree().Declarations))
	}
	if !hasError(errs, "unexpected text at end of Cpp2 code section") {
		t.Errorf("missing trailing-text diagnostic, got %v", errs)
	}
}

func TestParameterPassingStylesAndModifiers(t *testing.T) {
	input := "g : (a: int, inout b: int, out c: int, move d: int, forward e: int, implicit f: int, virtual h: int) = 0;"
	p, ok, errs := parseUnit(t, input)
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}

	params := p.Tree().Declarations[0].FunctionType.Parameters
	want := []struct {
		name string
		pass PassingStyle
		mod  ParameterModifier
	}{
		{"a", PassingIn, ModifierNone},
		{"b", PassingInout, ModifierNone},
		{"c", PassingOut, ModifierNone},
		{"d", PassingMove, ModifierNone},
		{"e", PassingForward, ModifierNone},
		{"f", PassingIn, ModifierImplicit},
		{"h", PassingIn, ModifierVirtual},
	}
	if len(params) != len(want) {
		t.Fatalf("got %d parameters, want %d", len(params), len(want))
	}
	for i, w := range want {
		got := params[i]
		if name := got.Declaration.Identifier.Identifier.Literal; name != w.name {
			t.Errorf("param %d name = %q, want %q", i, name, w.name)
		}
		if got.Pass != w.pass || got.Mod != w.mod {
			t.Errorf("param %d = (%v, %v), want (%v, %v)", i, got.Pass, got.Mod, w.pass, w.mod)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	p, ok, errs := parseUnit(t, "")
	if !ok || len(errs) > 0 {
		t.Fatalf("empty input should succeed, got %v", errs)
	}
	if len(p.Tree().Declarations) != 0 {
		t.Error("expected zero declarations")
	}
}

func TestLoneSemicolon(t *testing.T) {
	_, ok, errs := parseUnit(t, ";")
	if ok {
		t.Error("Parse reported success")
	}
	if !hasError(errs, "unexpected text at end of Cpp2 code section") {
		t.Errorf("missing trailing-text diagnostic, got %v", errs)
	}
}

func TestEmptySubscript(t *testing.T) {
	_, _, errs := parseUnit(t, "x : int = a[];")
	if !hasError(errs, "subscript expression [ ] must not be empty") {
		t.Errorf("missing subscript diagnostic, got %v", errs)
	}
}

func TestEmptyCallArguments(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : int = f();")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}

	expr := p.Tree().Declarations[0].Initializer.Expression.Expr
	spine := descendToName(t, expr.Expr, "is-as").Expr.(*PrefixExpression).Expr
	if len(spine.Ops) != 1 {
		t.Fatalf("got %d postfix terms, want 1", len(spine.Ops))
	}
	term := spine.Ops[0]
	if term.Op.Type != lexer.TokenLeftParen {
		t.Errorf("postfix op = %s, want LEFT_PAREN", term.Op.Type)
	}
	if term.ExprList != nil {
		t.Errorf("empty call should carry a nil expression-list, got %v", term.ExprList)
	}
}

func TestQualifiedID(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : a::b::c;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	typ := p.Tree().Declarations[0].ObjectType
	if typ.Active() != IDQualified {
		t.Fatalf("type is not a qualified-id")
	}
	var names []string
	for _, id := range typ.Qualified.IDs {
		names = append(names, id.Identifier.Literal)
	}
	if got := strings.Join(names, ","); got != "a,b,c" {
		t.Errorf("qualified ids = %s, want a,b,c", got)
	}
}

func TestScopeWithoutNestedName(t *testing.T) {
	_, _, errs := parseUnit(t, "x : a::1;")
	if !hasError(errs, "invalid text, :: should be followed by a nested name") {
		t.Errorf("missing nested-name diagnostic, got %v", errs)
	}
}

func TestOutArgument(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : int = f(out y, 2);")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	expr := p.Tree().Declarations[0].Initializer.Expression.Expr
	post := descendToName(t, expr.Expr, "is-as").Expr.(*PrefixExpression).Expr
	list := post.Ops[0].ExprList
	if list == nil || len(list.Terms) != 2 {
		t.Fatalf("call list = %v, want two terms", list)
	}
	if list.Terms[0].Pass != PassingOut {
		t.Errorf("term 0 pass = %v, want out", list.Terms[0].Pass)
	}
	if list.Terms[1].Pass != PassingIn {
		t.Errorf("term 1 pass = %v, want in", list.Terms[1].Pass)
	}
}

func TestBareOutIsNotAnExpression(t *testing.T) {
	// Outside an expression-list, out is an ordinary identifier. At the
	// top level only declarations are tried: out is not followed by :, so
	// the declaration head backtracks and all of "out x;" is left over as
	// trailing text.
	_, ok, errs := parseUnit(t, "out x;")
	if ok {
		t.Error("Parse reported success")
	}
	if len(errs) == 0 {
		t.Error("expected diagnostics")
	}
}

func TestParenthesizedGrouping(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : int = ( 1 + 2 ) * 3;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}

	expr := p.Tree().Declarations[0].Initializer.Expression.Expr
	mul := descendToName(t, expr.Expr, "multiplicative")
	if len(mul.Terms) != 1 || mul.Terms[0].Op.Literal != "*" {
		t.Fatalf("multiplicative terms = %v, want one * term", mul.Terms)
	}

	left := primaryOf(t, mul.Expr)
	if left.Active() != PrimaryExpressionList {
		t.Fatalf("left operand is not a parenthesized expression-list")
	}
	inner := left.List.Terms[0].Expr
	add := descendToName(t, inner.Expr, "additive")
	if len(add.Terms) != 1 || add.Terms[0].Op.Literal != "+" {
		t.Errorf("inner additive terms = %v, want one + term", add.Terms)
	}

	right := primaryOf(t, mul.Terms[0].Expr)
	if right.Identifier.Literal != "3" {
		t.Errorf("right operand = %q, want 3", right.Identifier.Literal)
	}
}

func TestPrecedenceLadderShape(t *testing.T) {
	// Operators of an inner level appear strictly below the outer level.
	p, ok, errs := parseUnit(t, "x : int = a || b && c == d < e << f + g * h is i;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}

	expr := p.Tree().Declarations[0].Initializer.Expression.Expr
	levels := []struct {
		name string
		op   string
	}{
		{"logical-or", "||"},
		{"logical-and", "&&"},
		{"equality", "=="},
		{"relational", "<"},
		{"shift", "<<"},
		{"additive", "+"},
		{"multiplicative", "*"},
		{"is-as", "is"},
	}

	n := Node(expr.Expr)
	for _, lv := range levels {
		be := descendToName(t, n, lv.name)
		if len(be.Terms) != 1 || be.Terms[0].Op.Literal != lv.op {
			t.Fatalf("%s level terms = %v, want one %q term", lv.name, be.Terms, lv.op)
		}
		// The next inner operator must be inside this level's term.
		n = be.Terms[0].Expr
	}
}

func TestLeftAssociativity(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : int = 1 - 2 - 3;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	add := descendToName(t, p.Tree().Declarations[0].Initializer.Expression.Expr.Expr, "additive")
	if len(add.Terms) != 2 {
		t.Fatalf("additive terms = %d, want 2 (left-associative flat list)", len(add.Terms))
	}
}

func TestPrefixExpression(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : bool = !!b;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	pre := descendToName(t, p.Tree().Declarations[0].Initializer.Expression.Expr.Expr, "is-as").Expr.(*PrefixExpression)
	if len(pre.Ops) != 2 {
		t.Fatalf("got %d prefix ops, want 2", len(pre.Ops))
	}
	if pre.Position() != pre.Ops[0].Position() {
		t.Error("prefix position should be the first operator's position")
	}
}

func TestPostfixOperators(t *testing.T) {
	p, ok, errs := parseUnit(t, "x : int = a++;")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}
	post := descendToName(t, p.Tree().Declarations[0].Initializer.Expression.Expr.Expr, "is-as").Expr.(*PrefixExpression).Expr
	if len(post.Ops) != 1 || post.Ops[0].Op.Literal != "++" || post.Ops[0].ExprList != nil {
		t.Errorf("postfix ops = %v, want a bare ++ term", post.Ops)
	}
}

func TestMissingSemicolon(t *testing.T) {
	_, ok, errs := parseUnit(t, "x : int = 0")
	_ = ok
	if !hasError(errs, "expression-statement does not end with semicolon") &&
		!hasError(errs, "missing semicolon") {
		t.Errorf("missing semicolon diagnostic, got %v", errs)
	}
}

func TestInvalidIfCondition(t *testing.T) {
	_, _, errs := parseUnit(t, "f : () = { if { } }")
	if !hasError(errs, "invalid if condition") {
		t.Errorf("missing if-condition diagnostic, got %v", errs)
	}
}

func TestEmptyParens(t *testing.T) {
	_, _, errs := parseUnit(t, "x : int = ();")
	if !hasError(errs, "( is not followed by an expression-list") {
		t.Errorf("missing empty-parens diagnostic, got %v", errs)
	}
}

func TestErrorsCarryPositionAndText(t *testing.T) {
	_, _, errs := parseUnit(t, "x : int = a[];")
	if len(errs) == 0 {
		t.Fatal("expected diagnostics")
	}
	e := errs[0]
	if !e.Pos.IsValid() {
		t.Errorf("diagnostic position %v is not valid", e.Pos)
	}
	if !strings.Contains(e.Message, " at ") {
		t.Errorf("diagnostic %q does not name the offending token", e.Message)
	}
}

func TestAppendingParses(t *testing.T) {
	var errs []source.Error
	p := New(&errs)
	if !p.Parse(tokenize(t, "x : int = 0;")) {
		t.Fatalf("first chunk failed: %v", errs)
	}
	if !p.Parse(tokenize(t, "y : int;")) {
		t.Fatalf("second chunk failed: %v", errs)
	}
	if len(p.Tree().Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(p.Tree().Declarations))
	}

	var errsWhole []source.Error
	whole := New(&errsWhole)
	whole.Parse(tokenize(t, "x : int = 0; y : int;"))
	if len(whole.Tree().Declarations) != 2 {
		t.Fatalf("whole parse got %d declarations, want 2", len(whole.Tree().Declarations))
	}
	for i := range whole.Tree().Declarations {
		a := p.Tree().Declarations[i].Identifier.Identifier.Literal
		b := whole.Tree().Declarations[i].Identifier.Identifier.Literal
		if a != b {
			t.Errorf("declaration %d name: chunked %q, whole %q", i, a, b)
		}
	}
}

func TestBacktrackingRestoresCursor(t *testing.T) {
	var errs []source.Error
	p := New(&errs)
	p.tokens = tokenize(t, "a + b")
	p.pos = 0

	if d := p.declaration(true); d != nil {
		t.Fatal("declaration should not match")
	}
	if p.pos != 0 {
		t.Errorf("declaration backtrack left pos = %d, want 0", p.pos)
	}
	if len(errs) != 0 {
		t.Errorf("backtracking emitted diagnostics: %v", errs)
	}

	p.tokens = tokenize(t, ") x")
	p.pos = 0
	if l := p.expressionList(); l != nil {
		t.Fatal("expression-list should not match")
	}
	if p.pos != 0 {
		t.Errorf("expression-list backtrack left pos = %d, want 0", p.pos)
	}
	if len(errs) != 0 {
		t.Errorf("backtracking emitted diagnostics: %v", errs)
	}
}

func TestPositionLaw(t *testing.T) {
	p, ok, errs := parseUnit(t, "main : () = { if x == 1 { } }")
	if !ok || len(errs) > 0 {
		t.Fatalf("Parse failed: %v", errs)
	}

	d := p.Tree().Declarations[0]
	if got := d.Position(); got.Line != 1 || got.Column != 1 {
		t.Errorf("declaration position = %v, want 1:1", got)
	}
	if got := p.Tree().Position(); got != d.Position() {
		t.Errorf("unit position = %v, want %v", got, d.Position())
	}

	sel := d.Initializer.Compound.Statements[0].Selection
	if got := sel.Position(); got != sel.Identifier.Position() {
		t.Errorf("selection position = %v, want if token position", got)
	}
	// Binary node positions recurse into the leftmost operand.
	if got, want := sel.Condition.Position(), sel.Condition.Expr.Position(); got != want {
		t.Errorf("condition position = %v, want %v", got, want)
	}
}

func TestCursorLookahead(t *testing.T) {
	var errs []source.Error
	p := New(&errs)
	p.tokens = tokenize(t, "a b c")
	p.pos = 1

	if tok := p.peek(-1); tok == nil || tok.Literal != "a" {
		t.Errorf("peek(-1) = %v, want a", tok)
	}
	if tok := p.peek(1); tok == nil || tok.Literal != "c" {
		t.Errorf("peek(1) = %v, want c", tok)
	}
	if tok := p.peek(2); tok != nil {
		t.Errorf("peek(2) = %v, want nil", tok)
	}
	if tok := p.peek(-2); tok != nil {
		t.Errorf("peek(-2) = %v, want nil", tok)
	}

	p.pos = len(p.tokens) - 1
	p.next()
	if !p.atEnd() {
		t.Error("expected atEnd after advancing past the last token")
	}
	p.next() // saturates
	if p.pos != len(p.tokens) {
		t.Errorf("pos = %d after saturating advance, want %d", p.pos, len(p.tokens))
	}
}

func TestOperatorClassifier(t *testing.T) {
	if !IsPrefixOperator(lexer.TokenNot) {
		t.Error("! should be a prefix operator")
	}
	if IsPrefixOperator(lexer.TokenMinus) {
		t.Error("- is not a prefix operator")
	}

	for _, tt := range []lexer.TokenType{
		lexer.TokenPlusPlus, lexer.TokenMinusMinus, lexer.TokenCaret,
		lexer.TokenAmpersand, lexer.TokenTilde, lexer.TokenDollar,
	} {
		if !IsPostfixOperator(tt) {
			t.Errorf("%s should be a postfix operator", tt)
		}
	}

	for _, tt := range []lexer.TokenType{
		lexer.TokenAssignment, lexer.TokenMultiplyEq, lexer.TokenSlashEq,
		lexer.TokenModuloEq, lexer.TokenPlusEq, lexer.TokenMinusEq,
		lexer.TokenRightShiftEq, lexer.TokenLeftShiftEq,
	} {
		if !IsAssignmentOperator(tt) {
			t.Errorf("%s should be an assignment operator", tt)
		}
	}

	// The bitwise compound assignments are intentionally absent.
	for _, tt := range []lexer.TokenType{
		lexer.TokenAmpersandEq, lexer.TokenCaretEq, lexer.TokenPipeEq,
	} {
		if IsAssignmentOperator(tt) {
			t.Errorf("%s must not be an assignment operator", tt)
		}
	}
}

func TestBitwiseOperatorsAreNotBinary(t *testing.T) {
	// a | b does not parse as a binary expression; the | is trailing text.
	_, ok, errs := parseUnit(t, "x : int = a | b;")
	if ok {
		t.Error("Parse reported success")
	}
	if len(errs) == 0 {
		t.Error("expected diagnostics for stray |")
	}
}
