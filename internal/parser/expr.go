package parser

import (
	"github.com/jcorbin/vyne/internal/ast"
	"github.com/jcorbin/vyne/internal/lexer"
)

func (p *Parser) expression() ast.Node { return p.rangeExpr() }

func (p *Parser) rangeExpr() ast.Node {
	left := p.orExpr()
	for p.peek().Kind == lexer.DotDot {
		op := p.next()
		right := p.orExpr()
		node := &ast.Range{Lo: left, Hi: right}
		node.Line = op.Line
		left = node
	}
	return left
}

func (p *Parser) orExpr() ast.Node {
	return p.binary((*Parser).andExpr, lexer.Or)
}

func (p *Parser) andExpr() ast.Node {
	return p.binary((*Parser).equality, lexer.And)
}

func (p *Parser) equality() ast.Node {
	return p.binary((*Parser).relational, lexer.EqualEqual, lexer.NotEqual)
}

func (p *Parser) relational() ast.Node {
	return p.binary((*Parser).additive,
		lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual)
}

func (p *Parser) additive() ast.Node {
	return p.binary((*Parser).multiplicative,
		lexer.Add, lexer.Subtract, lexer.FloorDiv, lexer.Modulo)
}

func (p *Parser) multiplicative() ast.Node {
	return p.binary((*Parser).postfix, lexer.Multiply, lexer.Divide)
}

func (p *Parser) binary(operand func(*Parser) ast.Node, ops ...lexer.Kind) ast.Node {
	left := operand(p)
	for matchKind(p.peek().Kind, ops) {
		op := p.next()
		right := operand(p)
		node := &ast.BinOp{Op: op.Kind, L: left, R: right}
		node.Line = op.Line
		left = node
	}
	return left
}

func matchKind(k lexer.Kind, ops []lexer.Kind) bool {
	for _, op := range ops {
		if k == op {
			return true
		}
	}
	return false
}

func (p *Parser) postfix() ast.Node {
	left := p.primary()
	for p.peek().Kind == lexer.Increment || p.peek().Kind == lexer.Decrement {
		op := p.next()
		node := &ast.Postfix{Op: op.Kind, Operand: left}
		node.Line = op.Line
		left = node
	}
	return left
}

func (p *Parser) primary() ast.Node {
	switch t := p.peek(); t.Kind {
	case lexer.Number:
		p.next()
		node := &ast.Num{Val: t.Num}
		node.Line = t.Line
		return node

	case lexer.String:
		p.next()
		node := &ast.Str{Text: t.Text}
		node.Line = t.Line
		return node

	case lexer.True, lexer.False:
		p.next()
		node := &ast.Bool{Val: t.Kind == lexer.True}
		node.Line = t.Line
		return node

	case lexer.Null:
		p.next()
		node := &ast.NullLit{}
		node.Line = t.Line
		return node

	case lexer.LBracket:
		// an array literal may receive a chain of method calls
		node := p.arrayLiteral()
		for p.peek().Kind == lexer.Dot {
			p.next()
			member := p.memberName()
			m := &ast.MethodCall{Recv: node, Name: member.Text, Args: p.callArgs()}
			m.Line = member.Line
			node = m
		}
		return node

	case lexer.LParen:
		p.next()
		node := p.expression()
		p.consume(lexer.RParen)
		return node

	case lexer.BuiltIn:
		return p.builtinCall()

	case lexer.Identifier:
		return p.identifierExpr()
	}

	t := p.peek()
	p.failf(t.Line, "unexpected token in expression: %v", t.Kind)
	return nil
}

func (p *Parser) arrayLiteral() ast.Node {
	tok := p.consume(lexer.LBracket)

	node := &ast.ArrayLit{}
	node.Line = tok.Line
	if p.peek().Kind != lexer.RBracket {
		node.Elems = append(node.Elems, p.expression())
		for p.peek().Kind == lexer.Comma {
			p.next()
			node.Elems = append(node.Elems, p.expression())
		}
	}
	p.consume(lexer.RBracket)
	return node
}

func (p *Parser) builtinCall() ast.Node {
	tok := p.consume(lexer.BuiltIn)

	node := &ast.BuiltinCall{Name: tok.Text, Args: p.callArgs()}
	node.Line = tok.Line
	return node
}

func (p *Parser) callArgs() []ast.Node {
	p.consume(lexer.LParen)
	var args []ast.Node
	if p.peek().Kind != lexer.RParen {
		args = append(args, p.expression())
		for p.peek().Kind == lexer.Comma {
			p.next()
			args = append(args, p.expression())
		}
	}
	p.consume(lexer.RParen)
	return args
}

// identifierExpr parses a name followed by an optional call and a chain
// of member, method and index accesses. Bare member accesses extend the
// scope path (a.b.c resolves against group global.a.b), method calls
// become dispatch nodes, brackets become index reads.
func (p *Parser) identifierExpr() ast.Node {
	tok := p.consume(lexer.Identifier)
	line := tok.Line

	lastName := tok.Text
	var scope []string
	var node ast.Node

	if p.peek().Kind == lexer.LParen {
		call := &ast.Call{ID: p.pool.Intern(lastName), Name: lastName, Args: p.callArgs()}
		call.Line = line
		node = call
	} else {
		v := &ast.Var{ID: p.pool.Intern(lastName), Name: lastName}
		v.Line = line
		node = v
	}

	for p.peek().Kind == lexer.Dot || p.peek().Kind == lexer.LBracket {
		if p.peek().Kind == lexer.Dot {
			p.next()
			member := p.memberName()

			if p.peek().Kind == lexer.LParen {
				m := &ast.MethodCall{Recv: node, Name: member.Text, Args: p.callArgs()}
				m.Line = member.Line
				node = m
			} else {
				scope = append(scope, lastName)
				lastName = member.Text
				v := &ast.Var{
					ID:    p.pool.Intern(member.Text),
					Name:  member.Text,
					Scope: append([]string(nil), scope...),
				}
				v.Line = member.Line
				node = v
			}
		} else {
			p.next()
			index := p.expression()
			p.consume(lexer.RBracket)

			ix := &ast.Index{
				ID:    p.pool.Intern(lastName),
				Name:  lastName,
				Scope: append([]string(nil), scope...),
				Expr:  index,
			}
			ix.Line = line
			node = ix
		}
	}

	return node
}

// memberName accepts the token after a '.'. Built-in names double as
// module members (vcore.string, vmath.log), so BuiltIn tokens are
// accepted here alongside identifiers.
func (p *Parser) memberName() lexer.Token {
	t := p.peek()
	if t.Kind != lexer.Identifier && t.Kind != lexer.BuiltIn {
		p.failf(t.Line, "unexpected token: expected %v, but got %v instead",
			lexer.Identifier, t.Kind)
	}
	return p.next()
}
