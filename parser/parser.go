// Package parser implements a recursive-descent parser over the token
// stream produced by the lexer, building the typed AST defined by the
// ast package. It owns and updates each function's symbol table as it
// encounters parameters and variable references.
package parser

import (
	"strconv"

	"github.com/skx/subc/ast"
	"github.com/skx/subc/cerrors"
	"github.com/skx/subc/lexer"
	"github.com/skx/subc/token"
)

// maxArgs is the System V argument-register count; a call with more
// arguments than this is a parse error.
const maxArgs = 6

// unresolvedOffset marks an Ident node whose name wasn't yet in the
// symbol table when parsePrimary built it. Real offsets start at 1.
const unresolvedOffset = -1

// Parser holds parsing state for one translation unit.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	err error

	// sym is the symbol table of the function currently being
	// parsed. It is reset at the start of each function-def.
	sym *ast.SymbolTable

	// loopDepth counts lexically enclosing loops, so break/continue
	// outside of one can be rejected.
	loopDepth int
}

// New creates a Parser over the given source text.
func New(input string) *Parser {
	p := &Parser{l: lexer.New(input)}
	p.advance()
	p.advance()
	return p
}

// advance shifts the lookahead window forward by one token.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
	if p.peek.Type == token.ERROR && p.err == nil {
		p.err = cerrors.Wrap(cerrors.Lexical, "%s", p.peek.Literal)
	}
}

// ParseProgram parses the whole input into a forest of function
// definitions.
func (p *Parser) ParseProgram() ([]ast.Node, error) {
	var funcs []ast.Node

	if p.cur.Type == token.EOF {
		return nil, cerrors.Wrap(cerrors.Syntax, "the input program was empty")
	}

	for p.cur.Type != token.EOF && p.err == nil {
		fn := p.parseFunctionDef()
		if p.err != nil {
			return nil, p.err
		}
		funcs = append(funcs, fn)
	}

	if p.err != nil {
		return nil, p.err
	}
	return funcs, nil
}

// expect verifies the current token has type t, consuming it. On
// mismatch it records a syntax error and returns the zero token.
func (p *Parser) expect(t token.Type) token.Token {
	if p.err != nil {
		return token.Token{}
	}
	if p.cur.Type != t {
		p.err = cerrors.Wrap(cerrors.Syntax, "expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
		return token.Token{}
	}
	tok := p.cur
	p.advance()
	return tok
}

// parseFunctionDef parses `[int] IDENT '(' [param-list] ')' compound`.
func (p *Parser) parseFunctionDef() ast.Node {
	if p.cur.Type == token.INTTYPE {
		p.advance()
	}

	name := p.expect(token.IDENT).Literal
	p.expect(token.LPAREN)

	p.sym = ast.NewSymbolTable()

	var params []string
	for p.cur.Type != token.RPAREN && p.err == nil {
		if p.cur.Type == token.INTTYPE {
			p.advance()
		}
		pname := p.expect(token.IDENT).Literal
		if p.err != nil {
			return ast.Node{}
		}
		if _, isNew := p.sym.Declare(pname); !isNew {
			p.err = cerrors.Wrap(cerrors.Semantic, "duplicate parameter name %q", pname)
			return ast.Node{}
		}
		params = append(params, pname)

		if p.cur.Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)

	body := p.parseCompound()
	if p.err != nil {
		return ast.Node{}
	}

	return ast.Node{
		Kind:   ast.FuncDef,
		Name:   name,
		Params: params,
		Body:   &body,
		Frame:  p.sym,
	}
}

// parseCompound parses `'{' stmt* '}'`.
func (p *Parser) parseCompound() ast.Node {
	p.expect(token.LBRACE)

	var stmts []ast.Node
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF && p.err == nil {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)

	return ast.Node{Kind: ast.Compound, Stmts: stmts}
}

// parseStatement parses a single statement, per the stmt production.
func (p *Parser) parseStatement() ast.Node {
	switch p.cur.Type {

	case token.INTTYPE:
		return p.parseLocalDecl()

	case token.RETURN:
		p.advance()
		if p.cur.Type == token.SEMI {
			p.advance()
			return ast.Node{Kind: ast.Return}
		}
		e := p.parseExpr()
		p.expect(token.SEMI)
		return ast.Node{Kind: ast.Return, Left: ast.Ptr(e)}

	case token.IF:
		return p.parseIf()

	case token.WHILE:
		return p.parseWhile()

	case token.DO:
		return p.parseDoWhile()

	case token.FOR:
		return p.parseFor()

	case token.BREAK:
		p.advance()
		if p.loopDepth == 0 {
			p.err = cerrors.Wrap(cerrors.Syntax, "break outside of a loop")
			return ast.Node{}
		}
		p.expect(token.SEMI)
		return ast.Node{Kind: ast.Break}

	case token.CONTINUE:
		p.advance()
		if p.loopDepth == 0 {
			p.err = cerrors.Wrap(cerrors.Syntax, "continue outside of a loop")
			return ast.Node{}
		}
		p.expect(token.SEMI)
		return ast.Node{Kind: ast.Continue}

	case token.LBRACE:
		return p.parseCompound()

	case token.SEMI:
		p.advance()
		return ast.Node{Kind: ast.Compound}

	default:
		e := p.parseExpr()
		p.expect(token.SEMI)
		return ast.Node{Kind: ast.ExprStmt, Left: ast.Ptr(e)}
	}
}

// parseLocalDecl parses `'int' IDENT`, reserving a frame slot. The
// leading `int` is consumed here, since parseStatement dispatches on
// it without consuming it.
func (p *Parser) parseLocalDecl() ast.Node {
	p.expect(token.INTTYPE)
	name := p.expect(token.IDENT).Literal
	if p.err != nil {
		return ast.Node{}
	}
	p.sym.Declare(name)
	p.expect(token.SEMI)
	return ast.Node{Kind: ast.LocalDecl, Name: name}
}

func (p *Parser) parseIf() ast.Node {
	p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseStatement()

	node := ast.Node{Kind: ast.If, Cond: &cond, Then: &then}

	if p.cur.Type == token.ELSE {
		p.advance()
		els := p.parseStatement()
		node.Else = &els
	}
	return node
}

func (p *Parser) parseWhile() ast.Node {
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)

	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--

	return ast.Node{Kind: ast.While, Cond: &cond, Then: &body}
}

func (p *Parser) parseDoWhile() ast.Node {
	p.expect(token.DO)

	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--

	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	p.expect(token.SEMI)

	return ast.Node{Kind: ast.DoWhile, Cond: &cond, Then: &body}
}

func (p *Parser) parseFor() ast.Node {
	p.expect(token.FOR)
	p.expect(token.LPAREN)

	node := ast.Node{Kind: ast.For}

	if p.cur.Type != token.SEMI {
		init := p.parseForInit()
		node.Init = &init
	}
	p.expect(token.SEMI)

	if p.cur.Type != token.SEMI {
		cond := p.parseExpr()
		node.Cond = &cond
	}
	p.expect(token.SEMI)

	if p.cur.Type != token.RPAREN {
		step := p.parseExpr()
		node.Step = &step
	}
	p.expect(token.RPAREN)

	p.loopDepth++
	body := p.parseStatement()
	p.loopDepth--
	node.Then = &body

	return node
}

// parseForInit parses the `for` loop's init clause, which the grammar
// generalises beyond a bare expression to also allow a local
// declaration with an optional initialiser: `for (int i = 0; ...)`
// needs this even though `local-decl` elsewhere never carries an
// initialiser.
func (p *Parser) parseForInit() ast.Node {
	if p.cur.Type != token.INTTYPE {
		return p.parseExpr()
	}

	p.advance()
	name := p.expect(token.IDENT).Literal
	if p.err != nil {
		return ast.Node{}
	}
	off, _ := p.sym.Declare(name)

	if p.cur.Type != token.ASSIGN {
		return ast.Node{Kind: ast.LocalDecl, Name: name}
	}
	p.advance()
	rhs := p.parseAssign()
	lhs := ast.NewIdent(name, off)
	return ast.Node{Kind: ast.Assign, Left: ast.Ptr(lhs), Right: ast.Ptr(rhs)}
}

// --- expressions, lowest to highest precedence ---

// parseExpr is the entry point for a full expression.
func (p *Parser) parseExpr() ast.Node {
	return p.parseAssign()
}

// parseAssign implements `assign := ternary ('=' assign)?`, right
// associative.
//
// An identifier that hasn't been declared yet is left "unresolved"
// (Offset == unresolvedOffset) by parsePrimary. If it turns out to be
// an assignment target, we implicitly declare it here, the untyped
// grammar's declare-on-assign rule. If it isn't, codegen reports it as
// an undefined-variable error when it walks the tree.
func (p *Parser) parseAssign() ast.Node {
	left := p.parseTernary()

	if p.cur.Type == token.ASSIGN {
		if left.Kind != ast.Ident {
			p.err = cerrors.Wrap(cerrors.Semantic, "assignment target must be a variable")
			return ast.Node{}
		}
		if left.Offset == unresolvedOffset {
			left.Offset, _ = p.sym.Declare(left.Name)
		}
		p.advance()
		right := p.parseAssign()
		return ast.Node{Kind: ast.Assign, Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

// parseTernary implements `ternary := logor ('?' expr ':' ternary)?`.
func (p *Parser) parseTernary() ast.Node {
	cond := p.parseLogOr()

	if p.cur.Type == token.QUESTION {
		p.advance()
		then := p.parseExpr()
		p.expect(token.COLON)
		els := p.parseTernary()
		return ast.Node{Kind: ast.Conditional, Cond: &cond, Then: &then, Else: &els}
	}
	return cond
}

func (p *Parser) parseLogOr() ast.Node {
	left := p.parseLogAnd()
	for p.cur.Type == token.OR {
		p.advance()
		right := p.parseLogAnd()
		left = ast.Node{Kind: ast.ShortCircuit, Op: "||", Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseLogAnd() ast.Node {
	left := p.parseBitOr()
	for p.cur.Type == token.AND {
		p.advance()
		right := p.parseBitOr()
		left = ast.Node{Kind: ast.ShortCircuit, Op: "&&", Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Node {
	left := p.parseBitXor()
	for p.cur.Type == token.BIT_OR {
		p.advance()
		right := p.parseBitXor()
		left = ast.Node{Kind: ast.Binary, Op: "|", Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Node {
	left := p.parseBitAnd()
	for p.cur.Type == token.BIT_XOR {
		p.advance()
		right := p.parseBitAnd()
		left = ast.Node{Kind: ast.Binary, Op: "^", Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Node {
	left := p.parseEquality()
	for p.cur.Type == token.BIT_AND {
		p.advance()
		right := p.parseEquality()
		left = ast.Node{Kind: ast.Binary, Op: "&", Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseEquality() ast.Node {
	left := p.parseRelational()
	for p.cur.Type == token.EQ || p.cur.Type == token.NOT_EQ {
		op := string(p.cur.Type)
		p.advance()
		right := p.parseRelational()
		left = ast.Node{Kind: ast.Binary, Op: op, Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseRelational() ast.Node {
	left := p.parseShift()
	for p.cur.Type == token.LT || p.cur.Type == token.GT ||
		p.cur.Type == token.LT_EQ || p.cur.Type == token.GT_EQ {
		op := string(p.cur.Type)
		p.advance()
		right := p.parseShift()
		left = ast.Node{Kind: ast.Binary, Op: op, Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseShift() ast.Node {
	left := p.parseAdditive()
	for p.cur.Type == token.SHL || p.cur.Type == token.SHR {
		op := string(p.cur.Type)
		p.advance()
		right := p.parseAdditive()
		left = ast.Node{Kind: ast.Binary, Op: op, Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		op := string(p.cur.Type)
		p.advance()
		right := p.parseMultiplicative()
		left = ast.Node{Kind: ast.Binary, Op: op, Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parseUnary()
	for p.cur.Type == token.ASTERISK || p.cur.Type == token.SLASH || p.cur.Type == token.PERCENT {
		op := string(p.cur.Type)
		p.advance()
		right := p.parseUnary()
		left = ast.Node{Kind: ast.Binary, Op: op, Left: ast.Ptr(left), Right: ast.Ptr(right)}
	}
	return left
}

func (p *Parser) parseUnary() ast.Node {
	switch p.cur.Type {
	case token.PLUS, token.MINUS, token.NOT, token.BIT_NOT:
		op := string(p.cur.Type)
		p.advance()
		operand := p.parseUnary()
		return ast.Node{Kind: ast.Unary, Op: op, Left: ast.Ptr(operand)}
	default:
		return p.parsePrimary()
	}
}

// parsePrimary implements:
//
//	primary := INTEGER | IDENT '(' [arg-list] ')' | IDENT | '(' expr ')'
func (p *Parser) parsePrimary() ast.Node {
	switch p.cur.Type {

	case token.INT:
		lit := p.cur.Literal
		p.advance()
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			p.err = cerrors.Wrap(cerrors.Lexical, "malformed integer literal %q", lit)
			return ast.Node{}
		}
		return ast.NewInt(v)

	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e

	case token.IDENT:
		name := p.cur.Literal
		p.advance()

		if p.cur.Type == token.LPAREN {
			return p.parseCallArgs(name)
		}

		off, ok := p.sym.Lookup(name)
		if !ok {
			// Might be the lhs of an assignment a level up
			// (parseAssign resolves that case); otherwise this stays
			// unresolved and codegen reports an undefined-variable
			// error when it encounters it.
			off = unresolvedOffset
		}
		return ast.NewIdent(name, off)

	default:
		p.err = cerrors.Wrap(cerrors.Syntax, "unexpected token %s (%q) in expression", p.cur.Type, p.cur.Literal)
		return ast.Node{}
	}
}

// parseCallArgs parses `'(' [arg-list] ')'` after the callee name has
// already been consumed.
func (p *Parser) parseCallArgs(name string) ast.Node {
	p.expect(token.LPAREN)

	var args []ast.Node
	for p.cur.Type != token.RPAREN && p.err == nil {
		args = append(args, p.parseExpr())
		if p.cur.Type == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)

	if len(args) > maxArgs {
		p.err = cerrors.Wrap(cerrors.Syntax, "call to %q has %d arguments, at most %d are supported", name, len(args), maxArgs)
		return ast.Node{}
	}

	return ast.Node{Kind: ast.Call, Name: name, Args: args}
}
