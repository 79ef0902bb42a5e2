package parser

import "errors"

// ParseTokens builds a Program from a scanned token sequence.
//
// Syntax errors do not stop the parse: each malformed statement is reported to errh,
// dropped, and parsing resumes at the next likely statement boundary. When any error
// occurred the returned error is a non-empty ErrorList and the Program must not be run.
func ParseTokens(tokens []Token, errh ErrorHandler) (*Program, error) {
	p := newParser(tokens, errh)
	prog := p.parseProgram()
	return prog, p.errs.Err()
}

type parser struct {
	tokens  []Token
	current int

	errh ErrorHandler
	errs ErrorList
}

func newParser(tokens []Token, errh ErrorHandler) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Type: TokenEOF, Line: line})
	}
	return &parser{
		tokens: tokens,
		errh:   errh,
	}
}

func (p *parser) parseProgram() *Program {
	var stmts []Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return &Program{Stmts: stmts}
}

// declaration is the only place syntax errors are caught.
func (p *parser) declaration() Stmt {
	var (
		stmt Stmt
		err  error
	)
	if p.match(TokenVar) {
		stmt, err = p.parseVarDecl()
	} else {
		stmt, err = p.parseStatement()
	}
	if err != nil {
		var perr *Error
		if !errors.As(err, &perr) {
			perr = newTokenError(p.peek(), err.Error())
		}
		p.report(perr)
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) parseVarDecl() (Stmt, error) {
	name, err := p.expect(TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(TokenEqual) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{
		Name:        name,
		Initializer: init,
	}, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	switch {
	case p.match(TokenPrint):
		return p.parsePrintStmt()
	case p.match(TokenLeftBrace):
		stmts, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	default:
		return p.parseExpressionStmt()
	}
}

func (p *parser) parsePrintStmt() (Stmt, error) {
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expression: value}, nil
}

func (p *parser) parseExpressionStmt() (Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expression: expr}, nil
}

func (p *parser) parseBlock() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(TokenRightBrace) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.expect(TokenRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseAssignment()
}

// parseAssignment recurses on the right-hand side so that a = b = c groups as a = (b = c).
func (p *parser) parseAssignment() (Expr, error) {
	expr, err := p.parseComma()
	if err != nil {
		return nil, err
	}
	if !p.match(TokenEqual) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if v, ok := expr.(*Variable); ok {
		return &Assign{
			Name:  v.Name,
			Value: value,
		}, nil
	}
	// Reported without unwinding: the statement is still well-formed enough to continue.
	p.report(newTokenError(equals, "Invalid assignment target."))
	return expr, nil
}

func (p *parser) parseComma() (Expr, error) {
	return p.parseBinaryLevel(p.parseEquality, TokenComma)
}

func (p *parser) parseEquality() (Expr, error) {
	return p.parseBinaryLevel(p.parseComparison, TokenBangEqual, TokenEqualEqual)
}

func (p *parser) parseComparison() (Expr, error) {
	return p.parseBinaryLevel(p.parseAddition, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *parser) parseAddition() (Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplication, TokenMinus, TokenPlus)
}

func (p *parser) parseMultiplication() (Expr, error) {
	return p.parseBinaryLevel(p.parseUnary, TokenSlash, TokenStar)
}

// parseBinaryLevel folds operands of one precedence level into left-associative Binary nodes.
func (p *parser) parseBinaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &Binary{
			Left:     left,
			Operator: op,
			Right:    right,
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.match(TokenBang, TokenMinus) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{
			Operator: op,
			Right:    right,
		}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	switch {
	case p.match(TokenFalse):
		return &Literal{Value: false}, nil
	case p.match(TokenTrue):
		return &Literal{Value: true}, nil
	case p.match(TokenNil):
		return &Literal{Value: nil}, nil
	case p.match(TokenNumber, TokenString):
		return &Literal{Value: p.previous().Literal}, nil
	case p.match(TokenIdentifier):
		return &Variable{Name: p.previous()}, nil
	case p.match(TokenLeftParen):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Expression: expr}, nil
	default:
		return nil, newTokenError(p.peek(), "Expect expression.")
	}
}

// synchronize discards tokens until just after a semicolon or just before a
// token that starts a statement.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == TokenSemicolon {
			return
		}
		switch p.peek().Type {
		case TokenClass, TokenFun, TokenVar, TokenFor, TokenIf, TokenWhile, TokenPrint, TokenReturn:
			return
		}
		p.advance()
	}
}

func (p *parser) expect(tt TokenType, msg string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, newTokenError(p.peek(), msg)
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tt TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == tt
}

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) atEnd() bool {
	return p.peek().Type == TokenEOF
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *parser) report(err *Error) {
	p.errs = append(p.errs, err)
	if p.errh != nil {
		p.errh(err)
	}
}
