// Package validation runs the final integrity pass over a loaded entity
// graph.
package validation

import (
	"github.com/satishbabariya/chipdb/database"
	"github.com/satishbabariya/chipdb/diagnostics"
)

// ValidateOutput reports the outcome of the integrity pass.
type ValidateOutput struct {
	Violations int
}

// Valid reports whether the graph passed every check.
func (o ValidateOutput) Valid() bool {
	return o.Violations == 0
}

// ValidationContext threads the graph and the diagnostics sink through the
// validation passes.
type ValidationContext struct {
	Db          *database.Database
	Diagnostics *diagnostics.Diagnostics

	violations int
}

// PushError records one violation in the diagnostics.
func (ctx *ValidationContext) PushError(err diagnostics.LoadError) {
	ctx.violations++
	ctx.Diagnostics.PushError(err)
}

// Validate checks the referential integrity of a fully loaded graph: every
// relation endpoint is live, every instance link lands on a type entity,
// registers, fields and modes hang off exactly one parent, and category
// members carry the attributes their kind requires. Violations are reported,
// never repaired; attributes the inference passes could not fill stay
// missing.
func Validate(db *database.Database, diags *diagnostics.Diagnostics) ValidateOutput {
	ctx := &ValidationContext{Db: db, Diagnostics: diags}
	runValidations(ctx)
	return ValidateOutput{Violations: ctx.violations}
}

// runValidations executes all validation passes.
func runValidations(ctx *ValidationContext) {
	validateGraphIntegrity(ctx)
}

// validateGraphIntegrity surfaces every structural violation the store can
// detect about itself.
func validateGraphIntegrity(ctx *ValidationContext) {
	for _, violation := range ctx.Db.CheckIntegrity() {
		ctx.PushError(diagnostics.NewValidationError(violation.Error(), diagnostics.EmptySpan()))
	}
}
