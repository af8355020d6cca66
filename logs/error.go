package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan joins the span and stage of ctx to err.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	span, ok := spanOf(ctx)
	if !ok {
		return err
	}
	if stage, ok := stageOf(ctx); ok {
		return errors.Join(err, fmt.Errorf("span: %s, stage: %s", span, stage))
	}
	return errors.Join(err, fmt.Errorf("span: %s", span))
}
