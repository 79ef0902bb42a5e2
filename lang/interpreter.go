package lang

import (
	"fmt"
	"io"

	"github.com/sergev/glox/parser"
)

// Interpreter evaluates parsed Lox programs by walking the AST.
type Interpreter struct {
	Global *Env

	env *Env // innermost scope of the statement being executed
	out io.Writer
}

// NewInterpreter constructs an interpreter rooted at a new global environment.
// Output of print statements goes to out.
func NewInterpreter(out io.Writer) *Interpreter {
	global := NewEnv(nil)
	return &Interpreter{
		Global: global,
		env:    global,
		out:    out,
	}
}

// Interpret executes statements in order. The first runtime error stops
// execution of the remaining statements and is returned as a *RuntimeError.
func (in *Interpreter) Interpret(stmts []parser.Stmt) error {
	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt parser.Stmt) error {
	return stmt.Accept(in)
}

// executeBlock runs stmts with env as the current scope and restores the
// previous scope on every exit path.
func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Env) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evaluate(expr parser.Expr) (Value, error) {
	result, err := expr.Accept(in)
	if err != nil {
		return Value{}, err
	}
	val, _ := result.(Value)
	return val, nil
}

func (in *Interpreter) VisitExpressionStmt(s *parser.ExpressionStmt) error {
	_, err := in.evaluate(s.Expression)
	return err
}

func (in *Interpreter) VisitPrintStmt(s *parser.PrintStmt) error {
	val, err := in.evaluate(s.Expression)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.out, val.String())
	return nil
}

func (in *Interpreter) VisitVarStmt(s *parser.VarStmt) error {
	val := Nil
	if s.Initializer != nil {
		var err error
		val, err = in.evaluate(s.Initializer)
		if err != nil {
			return err
		}
	}
	in.env.Define(s.Name.Lexeme, val)
	return nil
}

func (in *Interpreter) VisitBlockStmt(s *parser.BlockStmt) error {
	return in.executeBlock(s.Statements, NewEnv(in.env))
}

func (in *Interpreter) VisitLiteral(e *parser.Literal) (any, error) {
	return FromLiteral(e.Value), nil
}

func (in *Interpreter) VisitGrouping(e *parser.Grouping) (any, error) {
	return in.evaluate(e.Expression)
}

func (in *Interpreter) VisitVariable(e *parser.Variable) (any, error) {
	val, err := in.env.Get(e.Name.Lexeme)
	if err != nil {
		return nil, undefinedVariableError(e.Name)
	}
	return val, nil
}

func (in *Interpreter) VisitAssign(e *parser.Assign) (any, error) {
	val, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if err := in.env.Assign(e.Name.Lexeme, val); err != nil {
		return nil, undefinedVariableError(e.Name)
	}
	return val, nil
}

func (in *Interpreter) VisitUnary(e *parser.Unary) (any, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case parser.TokenBang:
		return BoolValue(!IsTruthy(right)), nil
	case parser.TokenMinus:
		if right.Type != TypeNumber {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return NumberValue(-right.Number()), nil
	default:
		return nil, newRuntimeError(e.Operator, fmt.Sprintf("Unknown unary operator '%s'.", e.Operator.Lexeme))
	}
}

func (in *Interpreter) VisitBinary(e *parser.Binary) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case parser.TokenComma:
		return right, nil
	case parser.TokenEqualEqual:
		return BoolValue(Equal(left, right)), nil
	case parser.TokenBangEqual:
		return BoolValue(!Equal(left, right)), nil
	case parser.TokenPlus:
		switch {
		case left.Type == TypeNumber && right.Type == TypeNumber:
			return NumberValue(left.Number() + right.Number()), nil
		case left.Type == TypeString && right.Type == TypeString:
			return StringValue(left.Str() + right.Str()), nil
		}
		return nil, newRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	}

	if left.Type != TypeNumber || right.Type != TypeNumber {
		return nil, newRuntimeError(e.Operator, "Operands must be numbers.")
	}
	l, r := left.Number(), right.Number()
	switch e.Operator.Type {
	case parser.TokenMinus:
		return NumberValue(l - r), nil
	case parser.TokenSlash:
		return NumberValue(l / r), nil
	case parser.TokenStar:
		return NumberValue(l * r), nil
	case parser.TokenGreater:
		return BoolValue(l > r), nil
	case parser.TokenGreaterEqual:
		return BoolValue(l >= r), nil
	case parser.TokenLess:
		return BoolValue(l < r), nil
	case parser.TokenLessEqual:
		return BoolValue(l <= r), nil
	default:
		return nil, newRuntimeError(e.Operator, fmt.Sprintf("Unknown binary operator '%s'.", e.Operator.Lexeme))
	}
}

var (
	_ parser.ExprVisitor = (*Interpreter)(nil)
	_ parser.StmtVisitor = (*Interpreter)(nil)
)
