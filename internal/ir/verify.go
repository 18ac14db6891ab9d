package ir

import (
	"go.uber.org/zap"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/logging"
)

// VerifyOp verifies op's attributes, its operand and result types, and then
// the op kind's own checks.
func VerifyOp(ctx *Context, op Op) error {
	o := op.Operation()
	if err := o.Attributes.Verify(ctx); err != nil {
		return err
	}
	for _, r := range o.results {
		if r.ty.IsNil() {
			return diag.VerifyErr(o.loc, "Result %d of %s has no type", r.index, o.id)
		}
		if err := r.ty.Verify(); err != nil {
			return err
		}
	}
	return op.Verify(ctx)
}

// VerifyOps verifies each op in order and stops at the first failure. The
// failure is wrapped with the failing op's location, keeping the inner error
// and its own location as the cause.
func VerifyOps(ctx *Context, ops []Op) error {
	for _, op := range ops {
		if err := VerifyOp(ctx, op); err != nil {
			o := op.Operation()
			ctx.log.Debug("verification failed",
				zap.String(logging.FieldKind, o.id.String()),
				zap.String(logging.FieldSource, o.loc.String()),
				zap.Error(err))
			return diag.Wrap(o.loc, diag.VerificationFailed, err)
		}
	}
	return nil
}
