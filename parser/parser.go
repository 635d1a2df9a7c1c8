// Package parser builds an executable program from the lexer's token
// stream by recursive descent. Class declarations are resolved during the
// parse, so the executor works with fully linked runtime classes.
package parser

import (
	"fmt"

	"github.com/mython-lang/mython/ast"
	"github.com/mython-lang/mython/lexer"
	"github.com/mython-lang/mython/runtime"
	"github.com/mython-lang/mython/token"
)

// SyntaxError reports a structurally valid token stream that is not a
// well-formed program.
type SyntaxError struct {
	Msg string
	Tok token.Token
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %v: %s", e.Tok, e.Msg)
}

type Parser struct {
	lex      *lexer.Lexer
	classes  map[string]*runtime.Class
	inMethod int
}

func NewParser(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex, classes: make(map[string]*runtime.Class)}
}

// Declare pre-registers a class, letting the REPL carry declarations from
// one input batch to the next.
func (p *Parser) Declare(cls *runtime.Class) {
	p.classes[cls.GetName()] = cls
}

// Classes returns every class declared so far, keyed by name.
func (p *Parser) Classes() map[string]*runtime.Class {
	return p.classes
}

// ParseProgram consumes the whole token stream and returns the program as
// a single executable statement.
func (p *Parser) ParseProgram() (ast.Statement, error) {
	program := ast.NewCompound()
	for !p.match(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Add(stmt)
	}
	return program, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.match(token.CLASS):
		return p.parseClass()
	case p.match(token.IF):
		return p.parseIf()
	default:
		stmt, err := p.parseSimpleStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.lex.Expect(token.NEWLINE); err != nil {
			return nil, err
		}
		p.lex.Next()
		return stmt, nil
	}
}

func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	switch {
	case p.match(token.PRINT):
		p.lex.Next()
		var args []ast.Statement
		if !p.match(token.NEWLINE) {
			for {
				arg, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.matchChar(',') {
					break
				}
				p.lex.Next()
			}
		}
		return ast.NewPrint(args...), nil
	case p.match(token.RETURN):
		if p.inMethod == 0 {
			return nil, p.errorf("return outside of a method body")
		}
		p.lex.Next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewReturn(expr), nil
	default:
		return p.parseAssignmentOrExpression()
	}
}

func (p *Parser) parseAssignmentOrExpression() (ast.Statement, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.matchChar('=') {
		return expr, nil
	}
	target, ok := expr.(*ast.VariableValue)
	if !ok {
		return nil, p.errorf("invalid assignment target")
	}
	p.lex.Next()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	chain := target.Chain()
	if len(chain) == 1 {
		return ast.NewAssignment(chain[0], value), nil
	}
	object := ast.NewVariableValue(chain[:len(chain)-1])
	return ast.NewFieldAssignment(object, chain[len(chain)-1], value), nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	p.lex.Next()
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeChar(':'); err != nil {
		return nil, err
	}
	ifBody, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var elseBody ast.Statement
	if p.match(token.ELSE) {
		p.lex.Next()
		if err := p.consumeChar(':'); err != nil {
			return nil, err
		}
		elseBody, err = p.parseSuite()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfElse(condition, ifBody, elseBody), nil
}

// parseSuite parses the body of an if branch or a method: either an
// indented block on the following lines, or a single simple statement on
// the same line.
func (p *Parser) parseSuite() (ast.Statement, error) {
	if !p.match(token.NEWLINE) {
		stmt, err := p.parseSimpleStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.lex.Expect(token.NEWLINE); err != nil {
			return nil, err
		}
		p.lex.Next()
		return stmt, nil
	}
	p.lex.Next()
	if _, err := p.lex.Expect(token.INDENT); err != nil {
		return nil, err
	}
	p.lex.Next()
	body := ast.NewCompound()
	for !p.match(token.DEDENT) && !p.match(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body.Add(stmt)
	}
	if _, err := p.lex.Expect(token.DEDENT); err != nil {
		return nil, err
	}
	p.lex.Next()
	return body, nil
}

func (p *Parser) parseClass() (ast.Statement, error) {
	p.lex.Next()
	nameTok, err := p.consume(token.IDENT)
	if err != nil {
		return nil, err
	}
	var parent *runtime.Class
	if p.matchChar('(') {
		p.lex.Next()
		parentTok, err := p.consume(token.IDENT)
		if err != nil {
			return nil, err
		}
		var ok bool
		parent, ok = p.classes[parentTok.Text]
		if !ok {
			return nil, p.errorf("unknown base class %s", parentTok.Text)
		}
		if err := p.consumeChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.consumeChar(':'); err != nil {
		return nil, err
	}
	if _, err := p.lex.Expect(token.NEWLINE); err != nil {
		return nil, err
	}
	p.lex.Next()
	if _, err := p.lex.Expect(token.INDENT); err != nil {
		return nil, err
	}
	p.lex.Next()
	var methods []runtime.Method
	for p.match(token.DEF) {
		method, err := p.parseMethod()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.lex.Expect(token.DEDENT); err != nil {
		return nil, err
	}
	p.lex.Next()
	cls := runtime.NewClass(nameTok.Text, methods, parent)
	p.classes[cls.GetName()] = cls
	return ast.NewClassDefinition(runtime.Own(cls)), nil
}

func (p *Parser) parseMethod() (runtime.Method, error) {
	p.lex.Next()
	nameTok, err := p.consume(token.IDENT)
	if err != nil {
		return runtime.Method{}, err
	}
	if err := p.consumeChar('('); err != nil {
		return runtime.Method{}, err
	}
	var params []string
	if !p.matchChar(')') {
		for {
			param, err := p.consume(token.IDENT)
			if err != nil {
				return runtime.Method{}, err
			}
			params = append(params, param.Text)
			if !p.matchChar(',') {
				break
			}
			p.lex.Next()
		}
	}
	if err := p.consumeChar(')'); err != nil {
		return runtime.Method{}, err
	}
	if err := p.consumeChar(':'); err != nil {
		return runtime.Method{}, err
	}
	p.inMethod++
	body, err := p.parseSuite()
	p.inMethod--
	if err != nil {
		return runtime.Method{}, err
	}
	return runtime.Method{
		Name:         nameTok.Text,
		FormalParams: params,
		Body:         ast.NewMethodBody(body),
	}, nil
}

func (p *Parser) parseExpression() (ast.Statement, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Statement, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.OR) {
		p.lex.Next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewOr(lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (ast.Statement, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.match(token.AND) {
		p.lex.Next()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewAnd(lhs, rhs)
	}
	return lhs, nil
}

func (p *Parser) parseNot() (ast.Statement, error) {
	if p.match(token.NOT) {
		p.lex.Next()
		expr, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.NewNot(expr), nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Statement, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	var comparator ast.Comparator
	switch {
	case p.match(token.EQ):
		comparator = runtime.Equal
	case p.match(token.NOTEQ):
		comparator = runtime.NotEqual
	case p.match(token.LESSOREQ):
		comparator = runtime.LessOrEqual
	case p.match(token.GREATEROREQ):
		comparator = runtime.GreaterOrEqual
	case p.matchChar('<'):
		comparator = runtime.Less
	case p.matchChar('>'):
		comparator = runtime.Greater
	default:
		return lhs, nil
	}
	p.lex.Next()
	rhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return ast.NewComparison(comparator, lhs, rhs), nil
}

func (p *Parser) parseAdditive() (ast.Statement, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.matchChar('+'):
			p.lex.Next()
			rhs, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			lhs = ast.NewAdd(lhs, rhs)
		case p.matchChar('-'):
			p.lex.Next()
			rhs, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			lhs = ast.NewSub(lhs, rhs)
		default:
			return lhs, nil
		}
	}
}

func (p *Parser) parseMultiplicative() (ast.Statement, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.matchChar('*'):
			p.lex.Next()
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = ast.NewMult(lhs, rhs)
		case p.matchChar('/'):
			p.lex.Next()
			rhs, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			lhs = ast.NewDiv(lhs, rhs)
		default:
			return lhs, nil
		}
	}
}

func (p *Parser) parseUnary() (ast.Statement, error) {
	if p.matchChar('-') {
		p.lex.Next()
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewNegate(expr), nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Statement, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.matchChar('.'):
			p.lex.Next()
			nameTok, err := p.consume(token.IDENT)
			if err != nil {
				return nil, err
			}
			if p.matchChar('(') {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = ast.NewMethodCall(expr, nameTok.Text, args...)
				continue
			}
			chain, ok := expr.(*ast.VariableValue)
			if !ok {
				return nil, p.errorf("field access on a complex expression")
			}
			extended := append(append([]string{}, chain.Chain()...), nameTok.Text)
			expr = ast.NewVariableValue(extended)
		case p.matchChar('('):
			chain, ok := expr.(*ast.VariableValue)
			if !ok || len(chain.Chain()) != 1 {
				return nil, p.errorf("only classes can be called")
			}
			name := chain.Chain()[0]
			cls, ok := p.classes[name]
			if !ok {
				return nil, p.errorf("%s is not a class", name)
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = ast.NewNewInstance(cls, args...)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Statement, error) {
	if err := p.consumeChar('('); err != nil {
		return nil, err
	}
	var args []ast.Statement
	if !p.matchChar(')') {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.matchChar(',') {
				break
			}
			p.lex.Next()
		}
	}
	if err := p.consumeChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Statement, error) {
	cur := p.lex.Current()
	switch cur.Kind {
	case token.NUMBER:
		p.lex.Next()
		return ast.NewNumberConst(cur.Num), nil
	case token.STRING:
		p.lex.Next()
		return ast.NewStringConst(cur.Text), nil
	case token.TRUE:
		p.lex.Next()
		return ast.NewBoolConst(true), nil
	case token.FALSE:
		p.lex.Next()
		return ast.NewBoolConst(false), nil
	case token.NONE:
		p.lex.Next()
		return ast.NewNoneConst(), nil
	case token.IDENT:
		p.lex.Next()
		if cur.Text == "str" && p.matchChar('(') {
			p.lex.Next()
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.consumeChar(')'); err != nil {
				return nil, err
			}
			return ast.NewStringify(arg), nil
		}
		return ast.NewVariableValue([]string{cur.Text}), nil
	case token.CHAR:
		if cur.Ch == '(' {
			p.lex.Next()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.consumeChar(')'); err != nil {
				return nil, err
			}
			return expr, nil
		}
	}
	return nil, p.errorf("unexpected token")
}

func (p *Parser) match(kind token.Kind) bool {
	return p.lex.Current().Kind == kind
}

func (p *Parser) matchChar(ch byte) bool {
	cur := p.lex.Current()
	return cur.Kind == token.CHAR && cur.Ch == ch
}

func (p *Parser) consume(kind token.Kind) (token.Token, error) {
	tok, err := p.lex.Expect(kind)
	if err != nil {
		return token.Token{}, err
	}
	p.lex.Next()
	return tok, nil
}

func (p *Parser) consumeChar(ch byte) error {
	if err := p.lex.ExpectToken(token.Char(ch)); err != nil {
		return err
	}
	p.lex.Next()
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return SyntaxError{Msg: fmt.Sprintf(format, args...), Tok: p.lex.Current()}
}
