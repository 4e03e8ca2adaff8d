// Package rules evaluates campaign targeting expressions written in CEL.
//
// Expressions see the display context as these variables:
//
//	device, placement, position, category, vendor_id, state, city,
//	store_type (string), store_rating (double)
package rules

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/cel-go/cel"

	"marketplace-ads/internal/core/domain"
	"marketplace-ads/internal/core/port"
)

var _ port.RuleEngine = (*CELEngine)(nil)

// CELEngine compiles expressions once and caches the programs.
type CELEngine struct {
	env      *cel.Env
	log      *slog.Logger
	programs sync.Map // expression -> cel.Program
}

func NewCELEngine(log *slog.Logger) (*CELEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("device", cel.StringType),
		cel.Variable("placement", cel.StringType),
		cel.Variable("position", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("vendor_id", cel.StringType),
		cel.Variable("state", cel.StringType),
		cel.Variable("city", cel.StringType),
		cel.Variable("store_type", cel.StringType),
		cel.Variable("store_rating", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}
	return &CELEngine{env: env, log: log}, nil
}

// Compile validates expr and caches its program.
func (e *CELEngine) Compile(expr string) error {
	_, err := e.program(expr)
	return err
}

// Match evaluates expr against dc. Expressions that fail to compile or
// evaluate do not match.
func (e *CELEngine) Match(expr string, dc domain.DisplayContext) bool {
	prg, err := e.program(expr)
	if err != nil {
		e.log.Debug("targeting rule rejected", slog.String("expression", expr), slog.Any("error", err))
		return false
	}
	out, _, err := prg.Eval(map[string]any{
		"device":       dc.Device,
		"placement":    string(dc.PlacementType),
		"position":     dc.Position,
		"category":     dc.Category,
		"vendor_id":    dc.VendorID,
		"state":        dc.Location.State,
		"city":         dc.Location.City,
		"store_type":   dc.StoreType,
		"store_rating": dc.StoreRating,
	})
	if err != nil {
		e.log.Debug("targeting rule evaluation failed", slog.String("expression", expr), slog.Any("error", err))
		return false
	}
	matched, ok := out.Value().(bool)
	return ok && matched
}

func (e *CELEngine) program(expr string) (cel.Program, error) {
	if p, ok := e.programs.Load(expr); ok {
		return p.(cel.Program), nil
	}

	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: targeting expression: %w", domain.ErrInvalidArgument, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: targeting expression must be boolean, got %s",
			domain.ErrInvalidArgument, ast.OutputType())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: targeting expression: %w", domain.ErrInvalidArgument, err)
	}
	e.programs.Store(expr, prg)
	return prg, nil
}
