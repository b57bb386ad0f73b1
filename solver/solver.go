// Package solver runs a circuit's generators over a witness, in
// dependency order, and verifies the circuit's equality constraints.
package solver

import (
	"context"
	"fmt"

	"github.com/Cristian13432/succinctx/frontend"
	"github.com/Cristian13432/succinctx/logger"
	"github.com/Cristian13432/succinctx/vars"
	"golang.org/x/sync/errgroup"
)

// Solve populates w by running every generator of the circuit exactly
// once, each after all its declared dependencies hold values. Generators
// with no dependency relationship run concurrently; they share no output
// wires, which the builder enforced at registration. Equality constraints
// propagate values between wire partitions and are verified once all
// generators have run.
//
// Any generator failure aborts the attempt; there is no retry and no
// partial witness.
func Solve(ctx context.Context, c *frontend.Circuit, w *vars.Witness) error {
	log := logger.Logger()
	log.Debug().Int("generators", len(c.Generators)).Msg("witness generation started")

	pending := make([]frontend.Generator, len(c.Generators))
	copy(pending, c.Generators)

	for len(pending) > 0 {
		if err := propagate(c, w); err != nil {
			return err
		}

		var ready, blocked []frontend.Generator
		for _, g := range pending {
			if resolved(g, w) {
				ready = append(ready, g)
			} else {
				blocked = append(blocked, g)
			}
		}
		if len(ready) == 0 {
			return fmt.Errorf("%d generators have unresolvable dependencies, first is %s", len(blocked), blocked[0].ID())
		}

		eg, egCtx := errgroup.WithContext(ctx)
		for _, g := range ready {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				if err := g.RunOnce(w); err != nil {
					return fmt.Errorf("generator %s: %w", g.ID(), err)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		pending = blocked
	}

	if err := propagate(c, w); err != nil {
		return err
	}
	for i, cs := range c.Constraints {
		if !w.Has(cs.A) || !w.Has(cs.B) {
			return fmt.Errorf("constraint %d references an unassigned wire", i)
		}
		if w.Get(cs.A).Cmp(w.Get(cs.B)) != 0 {
			return fmt.Errorf("constraint %d is not satisfied: wire %d != wire %d", i, cs.A.Index(), cs.B.Index())
		}
	}

	log.Debug().Msg("witness generation done")
	return nil
}

func resolved(g frontend.Generator, w *vars.Witness) bool {
	for _, dep := range g.Dependencies() {
		if !w.Has(dep) {
			return false
		}
	}
	return true
}

// propagate copies values across equality constraints until a fixpoint:
// a wire constrained equal to an assigned wire becomes assigned. This is
// how a placeholder bound to a batched result obtains its value.
func propagate(c *frontend.Circuit, w *vars.Witness) error {
	for changed := true; changed; {
		changed = false
		for i, cs := range c.Constraints {
			switch {
			case w.Has(cs.A) && !w.Has(cs.B):
				w.Set(cs.B, w.Get(cs.A))
				changed = true
			case !w.Has(cs.A) && w.Has(cs.B):
				w.Set(cs.A, w.Get(cs.B))
				changed = true
			case w.Has(cs.A) && w.Has(cs.B):
				if w.Get(cs.A).Cmp(w.Get(cs.B)) != 0 {
					return fmt.Errorf("constraint %d is not satisfied: wire %d != wire %d", i, cs.A.Index(), cs.B.Index())
				}
			}
		}
	}
	return nil
}
