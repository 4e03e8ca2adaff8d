package port

import "marketplace-ads/internal/core/domain"

// RuleEngine evaluates targeting expressions against a display context.
type RuleEngine interface {
	// Compile checks that expr is a valid boolean rule.
	Compile(expr string) error
	// Match evaluates expr. Invalid expressions never match.
	Match(expr string, dc domain.DisplayContext) bool
}
