package notify

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Subscription filters are CEL expressions over the event attributes,
// e.g. `type == "payment.recorded" && lot_number.startsWith("LOT-2026")`.
// An empty expression matches everything.

var filterEnv *cel.Env

func init() {
	env, err := cel.NewEnv(
		cel.Variable("type", cel.StringType),
		cel.Variable("title", cel.StringType),
		cel.Variable("lot_number", cel.StringType),
		cel.Variable("channel", cel.StringType),
	)
	if err != nil {
		panic(fmt.Sprintf("notify: build CEL env: %v", err))
	}
	filterEnv = env
}

// CompileFilter validates and compiles a filter expression.
func CompileFilter(expr string) (cel.Program, error) {
	ast, issues := filterEnv.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}
	return filterEnv.Program(ast)
}

// EvalFilter reports whether the event matches the expression. Compile or
// evaluation failures count as a match: a broken filter must not silence a
// recipient.
func EvalFilter(expr string, e Event) (bool, error) {
	if expr == "" {
		return true, nil
	}

	prg, err := CompileFilter(expr)
	if err != nil {
		return true, err
	}

	out, _, err := prg.Eval(map[string]any{
		"type":       e.Type,
		"title":      e.Title,
		"lot_number": e.LotNumber,
		"channel":    e.Channel,
	})
	if err != nil {
		return true, fmt.Errorf("eval filter: %w", err)
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return true, fmt.Errorf("filter returned non-bool %T", out.Value())
	}
	return matched, nil
}
