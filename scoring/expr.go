package scoring

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"
)

var (
	ErrMalformedExpression = errors.New("malformed conversion expression")
	ErrNonFiniteResult     = errors.New("conversion expression produced a non-finite result")
)

// Evaluate runs a restricted arithmetic conversion expression with x
// substituted for its single free variable. The language is numeric
// literals, the four arithmetic operators, unary minus and parentheses;
// any identifier stands for the raw value. Everything else is rejected,
// as is a NaN or infinite result.
func Evaluate(expr string, x float64) (float64, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedExpression, err)
	}
	result, err := evalNode(node, x)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, ErrNonFiniteResult
	}
	return result, nil
}

func evalNode(node ast.Expr, x float64) (float64, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return 0, fmt.Errorf("%w: literal %s", ErrMalformedExpression, n.Value)
		}
		return strconv.ParseFloat(n.Value, 64)
	case *ast.Ident:
		return x, nil
	case *ast.ParenExpr:
		return evalNode(n.X, x)
	case *ast.UnaryExpr:
		v, err := evalNode(n.X, x)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.SUB:
			return -v, nil
		case token.ADD:
			return v, nil
		}
		return 0, fmt.Errorf("%w: unary operator %s", ErrMalformedExpression, n.Op)
	case *ast.BinaryExpr:
		left, err := evalNode(n.X, x)
		if err != nil {
			return 0, err
		}
		right, err := evalNode(n.Y, x)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return left + right, nil
		case token.SUB:
			return left - right, nil
		case token.MUL:
			return left * right, nil
		case token.QUO:
			return left / right, nil
		}
		return 0, fmt.Errorf("%w: operator %s", ErrMalformedExpression, n.Op)
	default:
		return 0, fmt.Errorf("%w: unsupported syntax %T", ErrMalformedExpression, node)
	}
}
