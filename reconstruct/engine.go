package reconstruct

import (
	"context"
	"fmt"
	"time"

	"github.com/hammal/compsens/sl0"
	"github.com/hammal/compsens/transform"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// engine solves independent sparse problems against one operator and writes
// D s of problem i into segment i of the output.
type engine struct {
	op     *transform.Operator
	params sl0.Parameters
	cfg    config
}

func newEngine(phi, d mat.Matrix, params sl0.Parameters, cfg config) (*engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var (
		op  *transform.Operator
		err error
	)
	if cfg.thetaPinv != nil {
		op, err = transform.NewOperator(phi, d, cfg.thetaPinv, cfg.algebra)
	} else {
		op, err = transform.BuildOperator(phi, d, cfg.algebra)
	}
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("operator built",
		zap.Int("measurements", op.Measurements()),
		zap.Int("block_length", op.BlockLength()),
		zap.Bool("precomputed_pinv", cfg.thetaPinv != nil),
	)
	return &engine{op: op, params: params, cfg: cfg}, nil
}

// run solves count problems, fetching the measurement vector of problem i
// from measurement. The first error cancels the remaining problems.
func (e *engine) run(ctx context.Context, count int, measurement func(index int) (mat.Vector, error)) (*mat.VecDense, error) {
	if count == 0 {
		return nil, ErrNoBlocks
	}
	start := time.Now()
	n := e.op.BlockLength()
	out := make([]float64, count*n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.workers)
	launched := 0
	for index := 0; index < count; index++ {
		// Stop handing out blocks once anything failed or ctx is done
		if gctx.Err() != nil {
			break
		}
		launched++
		index := index
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			y, err := measurement(index)
			if err != nil {
				return err
			}
			solver, err := sl0.New(e.params, e.cfg.solverOptions(index)...)
			if err != nil {
				return err
			}
			s, err := solver.Solve(gctx, y, e.op.Theta, e.op.ThetaPinv)
			if err != nil {
				return fmt.Errorf("reconstruct: block %d: %w", index, err)
			}
			e.op.Synthesize(out[index*n:(index+1)*n], s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if launched < count {
		return nil, fmt.Errorf("reconstruct: stopped after %d of %d blocks: %w", launched, count, context.Cause(ctx))
	}

	e.cfg.logger.Info("recovery finished",
		zap.Int("blocks", count),
		zap.Int("workers", e.cfg.workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return mat.NewVecDense(len(out), out), nil
}
