package expr

// Expr is a parsed arithmetic expression. The concrete types are Variable,
// Function and Constant.
type Expr interface {
	isExpr()
}

// Op is the operator of a Function node.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Neg
)

// String returns the operator symbol.
func (o Op) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Neg:
		return "neg"
	default:
		return "?"
	}
}

// Variable is a symbol, optionally subscripted by index expressions.
type Variable struct {
	Name string
	Args []Expr
}

// Function is an arithmetic operation. Neg takes one argument, the others two.
type Function struct {
	Op   Op
	Args []Expr
}

// Constant is an integer literal.
type Constant struct {
	Value int64
}

func (Variable) isExpr() {}
func (Function) isExpr() {}
func (Constant) isExpr() {}

// Var builds a Variable.
func Var(name string, args ...Expr) Variable {
	return Variable{Name: name, Args: args}
}

// Const builds a Constant.
func Const(v int64) Constant {
	return Constant{Value: v}
}

// Binary builds a two-argument Function.
func Binary(op Op, lhs, rhs Expr) Function {
	return Function{Op: op, Args: []Expr{lhs, rhs}}
}

// Negate builds a Neg Function.
func Negate(e Expr) Function {
	return Function{Op: Neg, Args: []Expr{e}}
}

// Equal reports whether two expressions are structurally identical.
func Equal(a, b Expr) bool {
	switch a := a.(type) {
	case Variable:
		b, ok := b.(Variable)
		if !ok || a.Name != b.Name {
			return false
		}

		return equalArgs(a.Args, b.Args)
	case Function:
		b, ok := b.(Function)
		if !ok || a.Op != b.Op {
			return false
		}

		return equalArgs(a.Args, b.Args)
	case Constant:
		b, ok := b.(Constant)
		return ok && a.Value == b.Value
	default:
		return false
	}
}

func equalArgs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
