package executor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/types"
)

// evaluate computes expr's value. scope and row may both be nil (e.g.
// when evaluating INSERT VALUES, which have no row context); a
// ColumnRef in that case is always a ColumnNotFound error.
func evaluate(expr ast.Expr, s *scope, row *workingRow) (types.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return evaluateLiteral(e)

	case *ast.ColumnRef:
		if s == nil || row == nil {
			return types.Value{}, &errs.ColumnNotFound{Column: e.Column, Table: e.Table}
		}
		return s.resolveColumn(e, row)

	case *ast.ParenExpr:
		return evaluate(e.Expr, s, row)

	case *ast.BinaryExpr:
		return evaluateBinary(e, s, row)

	case *ast.UnaryExpr:
		return evaluateUnary(e, s, row)

	case *ast.StarExpr:
		return types.Value{}, fmt.Errorf("executor: * cannot be evaluated as a scalar expression")

	default:
		return types.Value{}, fmt.Errorf("executor: cannot evaluate expression of type %T", expr)
	}
}

func evaluateLiteral(l *ast.Literal) (types.Value, error) {
	switch l.Kind {
	case ast.LiteralNull:
		return types.Null, nil
	case ast.LiteralInt:
		n, err := strconv.ParseInt(l.Value, 10, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("executor: invalid integer literal %q: %w", l.Value, err)
		}
		return types.NewInt(n), nil
	case ast.LiteralFloat:
		f, err := strconv.ParseFloat(l.Value, 64)
		if err != nil {
			return types.Value{}, fmt.Errorf("executor: invalid float literal %q: %w", l.Value, err)
		}
		return types.NewReal(f), nil
	case ast.LiteralString:
		return types.NewText(l.Value), nil
	case ast.LiteralBool:
		return types.NewBool(l.Value == "true"), nil
	default:
		return types.Value{}, fmt.Errorf("executor: unknown literal kind %v", l.Kind)
	}
}

func evaluateUnary(e *ast.UnaryExpr, s *scope, row *workingRow) (types.Value, error) {
	operand, err := evaluate(e.Operand, s, row)
	if err != nil {
		return types.Value{}, err
	}
	switch e.Op {
	case ast.OpNot:
		if operand.IsNull() {
			return types.Null, nil
		}
		return types.NewBool(!operand.Bool()), nil
	case ast.OpIsNull:
		return types.NewBool(operand.IsNull()), nil
	case ast.OpIsNotNull:
		return types.NewBool(!operand.IsNull()), nil
	default:
		return types.Value{}, fmt.Errorf("executor: unknown unary operator %v", e.Op)
	}
}

func evaluateBinary(e *ast.BinaryExpr, s *scope, row *workingRow) (types.Value, error) {
	// AND/OR implement three-valued short-circuit logic and so must
	// evaluate NULL operands without the blanket-NULL rule below.
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		return evaluateAndOr(e, s, row)
	}

	left, err := evaluate(e.Left, s, row)
	if err != nil {
		return types.Value{}, err
	}
	right, err := evaluate(e.Right, s, row)
	if err != nil {
		return types.Value{}, err
	}
	if left.IsNull() || right.IsNull() {
		return types.Null, nil
	}

	switch e.Op {
	case ast.OpEq:
		return types.NewBool(types.CompareValues(left, right) == 0), nil
	case ast.OpNeq:
		return types.NewBool(types.CompareValues(left, right) != 0), nil
	case ast.OpLt:
		return types.NewBool(types.CompareValues(left, right) < 0), nil
	case ast.OpLte:
		return types.NewBool(types.CompareValues(left, right) <= 0), nil
	case ast.OpGt:
		return types.NewBool(types.CompareValues(left, right) > 0), nil
	case ast.OpGte:
		return types.NewBool(types.CompareValues(left, right) >= 0), nil
	case ast.OpLike:
		return evaluateLike(left, right)
	default:
		return types.Value{}, fmt.Errorf("executor: unknown binary operator %v", e.Op)
	}
}

func evaluateAndOr(e *ast.BinaryExpr, s *scope, row *workingRow) (types.Value, error) {
	left, err := evaluate(e.Left, s, row)
	if err != nil {
		return types.Value{}, err
	}
	right, err := evaluate(e.Right, s, row)
	if err != nil {
		return types.Value{}, err
	}

	if e.Op == ast.OpAnd {
		if (!left.IsNull() && left.Kind() == types.KindBool && !left.Bool()) ||
			(!right.IsNull() && right.Kind() == types.KindBool && !right.Bool()) {
			return types.NewBool(false), nil
		}
		if left.IsNull() || right.IsNull() {
			return types.Null, nil
		}
		return types.NewBool(left.Bool() && right.Bool()), nil
	}

	// OR
	if (!left.IsNull() && left.Kind() == types.KindBool && left.Bool()) ||
		(!right.IsNull() && right.Kind() == types.KindBool && right.Bool()) {
		return types.NewBool(true), nil
	}
	if left.IsNull() || right.IsNull() {
		return types.Null, nil
	}
	return types.NewBool(left.Bool() || right.Bool()), nil
}

// likeMetaEscaper escapes every regexp metacharacter in a LIKE pattern
// literal before the SQL wildcards % and _ are translated to .* and .,
// so pattern text like "50%off" or "a.b" compares literally instead of
// being reinterpreted as a regular expression.
var likeMetaEscaper = strings.NewReplacer(
	`\`, `\\`, `.`, `\.`, `+`, `\+`, `*`, `\*`, `?`, `\?`, `(`, `\(`, `)`, `\)`,
	`[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`, `^`, `\^`, `$`, `\$`, `|`, `\|`,
)

func evaluateLike(left, right types.Value) (types.Value, error) {
	pattern := likeMetaEscaper.Replace(right.String())
	pattern = strings.ReplaceAll(pattern, `%`, `.*`)
	pattern = strings.ReplaceAll(pattern, `_`, `.`)
	re, err := regexp.Compile("(?is)^" + pattern + "$")
	if err != nil {
		return types.Value{}, fmt.Errorf("executor: invalid LIKE pattern %q: %w", right.String(), err)
	}
	return types.NewBool(re.MatchString(left.String())), nil
}

// truthy reports whether v should be treated as true when used as a
// filter predicate (WHERE / JOIN ... ON). NULL and non-boolean values are
// never true, matching SQL's three-valued WHERE semantics.
func truthy(v types.Value) bool {
	return !v.IsNull() && v.Kind() == types.KindBool && v.Bool()
}
