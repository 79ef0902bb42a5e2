package parser

import (
	"math"
	"strconv"
	"strings"
)

// Printer renders nodes in a canonical, fully parenthesised prefix form,
// e.g. (* (group (+ 1 2)) 3).
type Printer struct {
	b strings.Builder
}

// PrintExpr returns the canonical form of expr.
func PrintExpr(expr Expr) string {
	var p Printer
	p.expr(expr)
	return p.b.String()
}

// PrintProgram returns the canonical form of every statement, one per line.
func PrintProgram(prog *Program) string {
	if prog == nil {
		return ""
	}
	var p Printer
	for i, stmt := range prog.Stmts {
		if i > 0 {
			p.b.WriteByte('\n')
		}
		p.stmt(stmt)
	}
	return p.b.String()
}

func (p *Printer) expr(e Expr) {
	// Printer visit methods never fail.
	_, _ = e.Accept(p)
}

func (p *Printer) stmt(s Stmt) {
	_ = s.Accept(p)
}

func (p *Printer) paren(name string, exprs ...Expr) {
	p.b.WriteByte('(')
	p.b.WriteString(name)
	for _, e := range exprs {
		p.b.WriteByte(' ')
		p.expr(e)
	}
	p.b.WriteByte(')')
}

func (p *Printer) VisitLiteral(e *Literal) (any, error) {
	p.b.WriteString(formatLiteral(e.Value))
	return nil, nil
}

func (p *Printer) VisitGrouping(e *Grouping) (any, error) {
	p.paren("group", e.Expression)
	return nil, nil
}

func (p *Printer) VisitUnary(e *Unary) (any, error) {
	p.paren(e.Operator.Lexeme, e.Right)
	return nil, nil
}

func (p *Printer) VisitBinary(e *Binary) (any, error) {
	p.paren(e.Operator.Lexeme, e.Left, e.Right)
	return nil, nil
}

func (p *Printer) VisitVariable(e *Variable) (any, error) {
	p.b.WriteString(e.Name.Lexeme)
	return nil, nil
}

func (p *Printer) VisitAssign(e *Assign) (any, error) {
	p.paren("= "+e.Name.Lexeme, e.Value)
	return nil, nil
}

func (p *Printer) VisitExpressionStmt(s *ExpressionStmt) error {
	p.paren(";", s.Expression)
	return nil
}

func (p *Printer) VisitPrintStmt(s *PrintStmt) error {
	p.paren("print", s.Expression)
	return nil
}

func (p *Printer) VisitVarStmt(s *VarStmt) error {
	if s.Initializer == nil {
		p.paren("var " + s.Name.Lexeme)
		return nil
	}
	p.paren("var "+s.Name.Lexeme, s.Initializer)
	return nil
}

func (p *Printer) VisitBlockStmt(s *BlockStmt) error {
	p.b.WriteString("(block")
	for _, stmt := range s.Statements {
		p.b.WriteByte(' ')
		p.stmt(stmt)
	}
	p.b.WriteByte(')')
	return nil
}

func formatLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return strconv.FormatFloat(val, 'g', -1, 64)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return "<unknown>"
	}
}

var (
	_ ExprVisitor = (*Printer)(nil)
	_ StmtVisitor = (*Printer)(nil)
)
