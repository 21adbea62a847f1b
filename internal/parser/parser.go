// Package parser builds the vyne AST by recursive descent.
//
// Operator precedence climbs range -> or -> and -> equality ->
// relational -> additive -> multiplicative -> postfix -> primary, every
// operator left-associative. Statements are decided by lookahead on
// their first token; identifiers are interned into the shared pool as
// they are parsed.
package parser

import (
	"fmt"

	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/lexer"
	"github.com/jcorbin/vyne/internal/strpool"
)

// Error is a compile-time diagnostic with its source line.
type Error struct {
	Line int
	Mess string
}

func (e Error) Error() string {
	return fmt.Sprintf("line %v: %v", e.Line, e.Mess)
}

// reserved native modules reject sub injection at parse time.
var reservedModules = map[string]bool{
	"vcore": true,
	"vglib": true,
}

// annotations recognised after '::' in assignments.
var annotations = map[string]ast.Type{
	"Number": ast.Number,
	"String": ast.String,
	"Array":  ast.Array,
}

// Parser consumes a token stream. The scopes stack records ::Type
// annotations per lexical scope so later assignments in the same scope
// can be checked statically.
type Parser struct {
	tokens []lexer.Token
	pos    int
	pool   *strpool.Pool

	scopes     []map[uint32]ast.Type
	groupDepth int
}

// New returns a parser over tokens, interning names through pool.
func New(tokens []lexer.Token, pool *strpool.Pool) *Parser {
	return &Parser{tokens: tokens, pool: pool}
}

// Parse consumes the whole stream into a Program.
func Parse(tokens []lexer.Token, pool *strpool.Pool) (prog *ast.Program, err error) {
	return New(tokens, pool).Program()
}

// Program parses statements until end of input.
func (p *Parser) Program() (prog *ast.Program, err error) {
	defer p.catch(&err)
	p.pushScope()
	defer p.popScope()

	prog = &ast.Program{}
	if len(p.tokens) > 0 {
		prog.Line = p.tokens[0].Line
	}
	for p.peek().Kind != lexer.End {
		prog.Stmts = append(prog.Stmts, p.statement())
	}
	return prog, nil
}

func (p *Parser) catch(err *error) {
	switch e := recover().(type) {
	case nil:
	case Error:
		*err = e
	default:
		panic(e)
	}
}

func (p *Parser) failf(line int, mess string, args ...interface{}) {
	panic(Error{Line: line, Mess: fmt.Sprintf(mess, args...)})
}

//// token plumbing

func (p *Parser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return lexer.Token{Kind: lexer.End}
}

func (p *Parser) lookAhead(distance int) lexer.Token {
	if i := p.pos + distance; i < len(p.tokens) {
		return p.tokens[i]
	}
	return lexer.Token{Kind: lexer.End}
}

func (p *Parser) next() lexer.Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) consume(expected lexer.Kind) lexer.Token {
	t := p.peek()
	if t.Kind != expected {
		p.failf(t.Line, "unexpected token: expected %v, but got %v instead", expected, t.Kind)
	}
	return p.next()
}

// semicolon terminates every statement unless the next token closes a
// block or ends the input.
func (p *Parser) semicolon() {
	switch t := p.peek(); t.Kind {
	case lexer.Semicolon:
		p.next()
	case lexer.End, lexer.RBrace:
	default:
		p.failf(t.Line, "expected ';' at end of statement, but got %v instead", t.Kind)
	}
}

// optionalSemicolon eats a trailing semicolon after a brace-closed
// statement without requiring one.
func (p *Parser) optionalSemicolon() {
	if p.peek().Kind == lexer.Semicolon {
		p.next()
	}
}

//// lexical scopes for ::Type annotations

func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, map[uint32]ast.Type{})
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) annotate(id uint32, t ast.Type) {
	p.scopes[len(p.scopes)-1][id] = t
}

func (p *Parser) annotation(id uint32) ast.Type {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if t, ok := p.scopes[i][id]; ok {
			return t
		}
	}
	return ast.Unknown
}

//// statements

func (p *Parser) statement() ast.Node {
	switch t := p.peek(); t.Kind {
	case lexer.Function:
		return p.functionDefinition()
	case lexer.LBrace:
		return p.block()
	case lexer.Return:
		return p.returnStatement()
	case lexer.If:
		return p.ifStatement()
	case lexer.While:
		return p.whileLoop()
	case lexer.Through:
		stmt := p.throughLoop()
		p.optionalSemicolon()
		return stmt
	case lexer.Group:
		return p.groupDefinition()
	case lexer.Break, lexer.Continue:
		return p.loopControl()
	case lexer.Module:
		return p.moduleStatement()
	case lexer.Dismiss:
		return p.dismissStatement()
	case lexer.Const:
		p.next()
		return p.assignment(true)
	case lexer.Identifier:
		if p.startsAssignment() {
			return p.assignment(false)
		}
	}

	expr := p.expression()
	p.semicolon()
	return expr
}

// startsAssignment scans ahead over `.ident` and `[...]` accesses and an
// optional ::Type annotation, looking for '='.
func (p *Parser) startsAssignment() bool {
	check := 1
	for {
		switch p.lookAhead(check).Kind {
		case lexer.Dot:
			check += 2
		case lexer.LBracket:
			depth := 1
			check++
			for depth > 0 && p.lookAhead(check).Kind != lexer.End {
				switch p.lookAhead(check).Kind {
				case lexer.LBracket:
					depth++
				case lexer.RBracket:
					depth--
				}
				check++
			}
		default:
			if p.lookAhead(check).Kind == lexer.DoubleColon {
				check += 2
			}
			return p.lookAhead(check).Kind == lexer.Assign
		}
	}
}

func (p *Parser) assignment(isConst bool) ast.Node {
	first := p.consume(lexer.Identifier)
	line := first.Line
	name := first.Text

	var scope []string
	for p.peek().Kind == lexer.Dot {
		p.next()
		member := p.consume(lexer.Identifier)
		scope = append(scope, name)
		name = member.Text
	}

	var index ast.Node
	if p.peek().Kind == lexer.LBracket {
		p.next()
		index = p.expression()
		p.consume(lexer.RBracket)
	}

	id := p.pool.Intern(name)

	declared := p.annotation(id)
	if p.peek().Kind == lexer.DoubleColon {
		p.next()
		annot := p.consume(lexer.Identifier)
		t, ok := annotations[annot.Text]
		if !ok {
			p.failf(annot.Line, "unknown type annotation '%v'", annot.Text)
		}
		declared = t
		p.annotate(id, t)
	}

	p.consume(lexer.Assign)
	rhs := p.expression()
	p.semicolon()

	if declared != ast.Unknown {
		if got := rhs.StaticType(); got != ast.Unknown && got != declared {
			p.failf(line, "'%v' is declared %v but assigned %v", name, declared, got)
		}
	}

	node := &ast.Assign{
		ID:    id,
		Name:  name,
		RHS:   rhs,
		Index: index,
		Scope: scope,
		Const: isConst,
	}
	node.Line = line
	return node
}

func (p *Parser) block() ast.Node {
	line := p.peek().Line
	p.consume(lexer.LBrace)
	p.pushScope()
	defer p.popScope()

	node := &ast.Block{}
	node.Line = line
	for p.peek().Kind != lexer.RBrace && p.peek().Kind != lexer.End {
		node.Stmts = append(node.Stmts, p.statement())
	}
	p.consume(lexer.RBrace)
	return node
}

func (p *Parser) groupDefinition() ast.Node {
	line := p.peek().Line
	p.consume(lexer.Group)
	name := p.consume(lexer.Identifier)

	p.consume(lexer.LBrace)
	p.pushScope()
	p.groupDepth++

	node := &ast.Group{Name: name.Text}
	node.Line = line
	for p.peek().Kind != lexer.RBrace && p.peek().Kind != lexer.End {
		node.Stmts = append(node.Stmts, p.statement())
	}

	p.groupDepth--
	p.popScope()
	p.consume(lexer.RBrace)
	p.optionalSemicolon()
	return node
}

func (p *Parser) functionDefinition() ast.Node {
	funcTok := p.consume(lexer.Function)
	line := funcTok.Line

	if p.groupDepth > 0 {
		p.failf(line, "cannot define a function inside a group")
	}

	var target, name string
	if p.peek().Kind == lexer.DoubleColon {
		p.next()
		target = p.consume(lexer.Identifier).Text
		name = p.consume(lexer.Identifier).Text
	} else {
		first := p.consume(lexer.Identifier)
		if p.peek().Kind == lexer.DoubleColon {
			p.next()
			target = first.Text
			name = p.consume(lexer.Identifier).Text
		} else {
			name = first.Text
		}
	}

	if reservedModules[target] {
		p.failf(line, "cannot inject function '%v' into built-in module %v", name, target)
	}

	p.consume(lexer.LParen)
	var params []uint32
	if p.peek().Kind != lexer.RParen {
		params = append(params, p.pool.Intern(p.consume(lexer.Identifier).Text))
		for p.peek().Kind == lexer.Comma {
			p.next()
			params = append(params, p.pool.Intern(p.consume(lexer.Identifier).Text))
		}
	}
	p.consume(lexer.RParen)

	p.consume(lexer.LBrace)
	p.pushScope()
	var body []ast.Node
	for p.peek().Kind != lexer.RBrace && p.peek().Kind != lexer.End {
		body = append(body, p.statement())
	}
	p.popScope()
	p.consume(lexer.RBrace)

	node := &ast.FuncDef{
		Target: target,
		ID:     p.pool.Intern(name),
		Name:   name,
		Params: params,
		Body:   body,
	}
	node.Line = line
	return node
}

func (p *Parser) returnStatement() ast.Node {
	line := p.peek().Line
	p.consume(lexer.Return)
	expr := p.expression()
	p.semicolon()

	node := &ast.ReturnStmt{Expr: expr}
	node.Line = line
	return node
}

func (p *Parser) ifStatement() ast.Node {
	line := p.peek().Line
	p.consume(lexer.If)
	cond := p.expression()
	then := p.statement()

	node := &ast.IfStmt{Cond: cond, Then: then}
	node.Line = line
	if p.peek().Kind == lexer.Else {
		p.next()
		node.Else = p.statement()
	}
	return node
}

func (p *Parser) whileLoop() ast.Node {
	line := p.peek().Line
	p.consume(lexer.While)
	cond := p.expression()
	body := p.statement()

	node := &ast.WhileStmt{Cond: cond, Body: body}
	node.Line = line
	return node
}

// throughLoop parses `through [iter::] expr (-> mode)? stmt`.
func (p *Parser) throughLoop() ast.Node {
	line := p.peek().Line
	p.consume(lexer.Through)

	iter := "_"
	if p.peek().Kind == lexer.Identifier && p.lookAhead(1).Kind == lexer.DoubleColon {
		iter = p.next().Text
		p.next()
	}

	iterable := p.expression()

	mode := ast.Loop
	if p.peek().Kind == lexer.Arrow {
		p.next()
		mode = ast.ForModeOf(p.consume(lexer.LoopMode).Text)
	}

	body := p.statement()

	node := &ast.ForStmt{Iter: iterable, Body: body, Name: iter, Mode: mode}
	node.Line = line
	return node
}

func (p *Parser) loopControl() ast.Node {
	tok := p.next()
	p.semicolon()

	var node ast.Node
	if tok.Kind == lexer.Break {
		stmt := &ast.BreakStmt{}
		stmt.Line = tok.Line
		node = stmt
	} else {
		stmt := &ast.ContinueStmt{}
		stmt.Line = tok.Line
		node = stmt
	}
	return node
}

func (p *Parser) moduleStatement() ast.Node {
	line := p.peek().Line
	p.consume(lexer.Module)
	name := p.consume(lexer.Identifier)
	p.semicolon()

	node := &ast.ModuleStmt{ID: p.pool.Intern(name.Text), Name: name.Text}
	node.Line = line
	return node
}

func (p *Parser) dismissStatement() ast.Node {
	line := p.peek().Line
	p.consume(lexer.Dismiss)
	name := p.consume(lexer.Identifier)
	p.semicolon()

	node := &ast.DismissStmt{ID: p.pool.Intern(name.Text), Name: name.Text}
	node.Line = line
	return node
}
