package main

import (
	"fmt"
	"io"
	"log"
	"math"
)

// operators take their arguments unevaluated and decide what to evaluate
type operator func(in *Interpreter, args *List, env Env) (Exp, Env, error)

var operators map[Identifier]operator

func init() {
	operators = map[Identifier]operator{
		"'":  quote,
		".":  cons,
		".<": head,
		".>": tail,
		"=":  eq,
		"?":  cond,
		":=": define,
		"{}": let,
		"#":  include,
		"+":  arithmetic(add),
		"-":  arithmetic(sub),
		"*":  arithmetic(mul),
		"/":  arithmetic(div),
		"^":  arithmetic(pow),
	}
}

var truth = Identifier("t")

// Interpreter carries the settings that evaluation needs beyond the
// environment: where included files are found and where tracing goes.
type Interpreter struct {
	IncludePath []string
	Log         *log.Logger
}

func NewInterpreter(includePath []string, logger *log.Logger) *Interpreter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Interpreter{IncludePath: includePath, Log: logger}
}

var defaultInterpreter = NewInterpreter(nil, nil)

// Eval evaluates val with the default interpreter
func Eval(val Exp, env Env) (Exp, Env, error) {
	return defaultInterpreter.Eval(val, env)
}

// Eval evaluates val under env and returns the result together with the
// environment to continue with. On error the returned Env is the zero value and
// must not be used.
func (in *Interpreter) Eval(val Exp, env Env) (Exp, Env, error) {
	switch t := val.(type) {
	case Number, String:
		return t, env, nil
	case Identifier:
		return env.Lookup(t), env, nil
	case *List:
		if t == nil {
			return Nil, env, nil
		}
		name, isIdent := t.head.(Identifier)
		if !isIdent {
			return nil, Env{}, fmt.Errorf("%w: operator must be an identifier, got %v", ErrTypeMismatch, t.head)
		}
		op, known := operators[name]
		if !known {
			return nil, Env{}, fmt.Errorf("%w: %s", ErrUnknownOperator, name)
		}
		return op(in, t.tail, env)
	default:
		return nil, Env{}, fmt.Errorf("%w: cannot evaluate %T", ErrTypeMismatch, val)
	}
}

// evalNth evaluates the n-th argument
func (in *Interpreter) evalNth(args *List, n int, env Env) (Exp, Env, error) {
	arg, err := args.Nth(n)
	if err != nil {
		return nil, Env{}, err
	}
	return in.Eval(arg, env)
}

func (in *Interpreter) evalList(args *List, n int, env Env) (*List, Env, error) {
	val, env, err := in.evalNth(args, n, env)
	if err != nil {
		return nil, Env{}, err
	}
	l, err := AsList(val)
	if err != nil {
		return nil, Env{}, err
	}
	return l, env, nil
}

func quote(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	val, err := args.Hd()
	if err != nil {
		return nil, Env{}, err
	}
	return val, env, nil
}

func cons(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	hd, env, err := in.evalNth(args, 0, env)
	if err != nil {
		return nil, Env{}, err
	}
	tl, env, err := in.evalList(args, 1, env)
	if err != nil {
		return nil, Env{}, err
	}
	return Cons(hd, tl), env, nil
}

func head(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	l, env, err := in.evalList(args, 0, env)
	if err != nil {
		return nil, Env{}, err
	}
	hd, err := l.Hd()
	if err != nil {
		return nil, Env{}, err
	}
	return hd, env, nil
}

func tail(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	l, env, err := in.evalList(args, 0, env)
	if err != nil {
		return nil, Env{}, err
	}
	tl, err := l.Tl()
	if err != nil {
		return nil, Env{}, err
	}
	return tl, env, nil
}

func eq(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	lhs, env, err := in.evalNth(args, 0, env)
	if err != nil {
		return nil, Env{}, err
	}
	rhs, env, err := in.evalNth(args, 1, env)
	if err != nil {
		return nil, Env{}, err
	}
	if Equals(lhs, rhs) {
		return truth, env, nil
	}
	return Nil, env, nil
}

func isFalse(val Exp) bool {
	l, isList := val.(*List)
	return isList && l == nil
}

// cond evaluates only the branch that is taken
func cond(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	test, env, err := in.evalNth(args, 0, env)
	if err != nil {
		return nil, Env{}, err
	}
	if !isFalse(test) {
		return in.evalNth(args, 1, env)
	}
	if args.Len() < 3 {
		return Nil, env, nil
	}
	return in.evalNth(args, 2, env)
}

// define is the only operator whose bindings outlive the form
func define(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	target, err := args.Nth(0)
	if err != nil {
		return nil, Env{}, err
	}
	name, err := AsIdentifier(target)
	if err != nil {
		return nil, Env{}, fmt.Errorf("cannot define: %w", err)
	}
	value, env, err := in.evalNth(args, 1, env)
	if err != nil {
		return nil, Env{}, err
	}
	in.Log.Printf("define %s = %v", name, value)
	return Nil, env.Bind(name, value), nil
}

// let evaluates its body with local bindings and hands back the outer
// environment untouched
func let(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	first, err := args.Nth(0)
	if err != nil {
		return nil, Env{}, err
	}
	bindings, err := AsList(first)
	if err != nil {
		return nil, Env{}, err
	}
	body, err := args.Nth(1)
	if err != nil {
		return nil, Env{}, err
	}

	inner := env
	for b := bindings; b != nil; b = b.tail {
		pair, err := AsList(b.head)
		if err != nil {
			return nil, Env{}, err
		}
		target, err := pair.Nth(0)
		if err != nil {
			return nil, Env{}, err
		}
		name, err := AsIdentifier(target)
		if err != nil {
			return nil, Env{}, fmt.Errorf("cannot bind: %w", err)
		}
		var value Exp
		value, inner, err = in.evalNth(pair, 1, inner)
		if err != nil {
			return nil, Env{}, err
		}
		inner = inner.Bind(name, value)
	}

	res, _, err := in.Eval(body, inner)
	if err != nil {
		return nil, Env{}, err
	}
	return res, env, nil
}

func include(in *Interpreter, args *List, env Env) (Exp, Env, error) {
	val, env, err := in.evalNth(args, 0, env)
	if err != nil {
		return nil, Env{}, err
	}
	path, err := AsString(val)
	if err != nil {
		return nil, Env{}, fmt.Errorf("cannot include: %w", err)
	}
	env, err = in.ExecuteFile(string(path), env)
	if err != nil {
		return nil, Env{}, err
	}
	return Nil, env, nil
}

func arithmetic(apply func(x, y float64) (float64, error)) operator {
	return func(in *Interpreter, args *List, env Env) (Exp, Env, error) {
		lhs, env, err := in.evalNth(args, 0, env)
		if err != nil {
			return nil, Env{}, err
		}
		rhs, env, err := in.evalNth(args, 1, env)
		if err != nil {
			return nil, Env{}, err
		}
		x, err := AsNumber(lhs)
		if err != nil {
			return nil, Env{}, err
		}
		y, err := AsNumber(rhs)
		if err != nil {
			return nil, Env{}, err
		}
		res, err := apply(float64(x), float64(y))
		if err != nil {
			return nil, Env{}, err
		}
		return Number(res), env, nil
	}
}

func add(x, y float64) (float64, error) {
	return x + y, nil
}

func sub(x, y float64) (float64, error) {
	return x - y, nil
}

func mul(x, y float64) (float64, error) {
	return x * y, nil
}

func div(x, y float64) (float64, error) {
	if y == 0 {
		return 0, fmt.Errorf("%w: %v / 0", ErrDivisionByZero, Number(x))
	}
	return x / y, nil
}

func pow(x, y float64) (float64, error) {
	return math.Pow(x, y), nil
}
