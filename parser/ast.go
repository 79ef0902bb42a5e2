package parser

// Expr is an expression node. Accept calls the visitor method matching the node's variant.
type Expr interface {
	Accept(v ExprVisitor) (any, error)
}

// ExprVisitor exposes one operation per expression variant.
type ExprVisitor interface {
	VisitLiteral(e *Literal) (any, error)
	VisitGrouping(e *Grouping) (any, error)
	VisitUnary(e *Unary) (any, error)
	VisitBinary(e *Binary) (any, error)
	VisitVariable(e *Variable) (any, error)
	VisitAssign(e *Assign) (any, error)
}

// Stmt is a statement node.
type Stmt interface {
	Accept(v StmtVisitor) error
}

// StmtVisitor exposes one operation per statement variant.
type StmtVisitor interface {
	VisitExpressionStmt(s *ExpressionStmt) error
	VisitPrintStmt(s *PrintStmt) error
	VisitVarStmt(s *VarStmt) error
	VisitBlockStmt(s *BlockStmt) error
}

// Program is the result of parsing a whole source text.
type Program struct {
	Stmts []Stmt
}

// Literal holds a float64, string, bool or nil.
type Literal struct {
	Value any
}

func (e *Literal) Accept(v ExprVisitor) (any, error) { return v.VisitLiteral(e) }

// Grouping is a parenthesised expression.
type Grouping struct {
	Expression Expr
}

func (e *Grouping) Accept(v ExprVisitor) (any, error) { return v.VisitGrouping(e) }

// Unary represents prefix operator application.
type Unary struct {
	Operator Token
	Right    Expr
}

func (e *Unary) Accept(v ExprVisitor) (any, error) { return v.VisitUnary(e) }

// Binary represents infix operator application, including the comma operator.
type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (e *Binary) Accept(v ExprVisitor) (any, error) { return v.VisitBinary(e) }

// Variable refers to a binding by name.
type Variable struct {
	Name Token
}

func (e *Variable) Accept(v ExprVisitor) (any, error) { return v.VisitVariable(e) }

// Assign mutates an existing binding.
type Assign struct {
	Name  Token
	Value Expr
}

func (e *Assign) Accept(v ExprVisitor) (any, error) { return v.VisitAssign(e) }

// ExpressionStmt evaluates an expression for side-effects.
type ExpressionStmt struct {
	Expression Expr
}

func (s *ExpressionStmt) Accept(v StmtVisitor) error { return v.VisitExpressionStmt(s) }

// PrintStmt writes the value of an expression.
type PrintStmt struct {
	Expression Expr
}

func (s *PrintStmt) Accept(v StmtVisitor) error { return v.VisitPrintStmt(s) }

// VarStmt declares a binding in the current scope, optionally initialised.
type VarStmt struct {
	Name        Token
	Initializer Expr // may be nil
}

func (s *VarStmt) Accept(v StmtVisitor) error { return v.VisitVarStmt(s) }

// BlockStmt is a braced block introducing a new scope.
type BlockStmt struct {
	Statements []Stmt
}

func (s *BlockStmt) Accept(v StmtVisitor) error { return v.VisitBlockStmt(s) }

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Grouping)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Variable)(nil)
	_ Expr = (*Assign)(nil)

	_ Stmt = (*ExpressionStmt)(nil)
	_ Stmt = (*PrintStmt)(nil)
	_ Stmt = (*VarStmt)(nil)
	_ Stmt = (*BlockStmt)(nil)
)
