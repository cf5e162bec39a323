package client

import (
	"context"
	"fmt"

	"github.com/jackc/puddle/v2"
	"go.uber.org/zap"
)

type PoolParams struct {
	// Submitter configures every submitter of the pool.
	Submitter Params

	// Size is the maximum number of concurrent submissions.
	Size int

	Log *zap.Logger
}

// Pool spreads submissions over a bounded set of submitters. Each
// submitter keeps its single-flight behaviour.
type Pool struct {
	pool *puddle.Pool[*Submitter]
	log  *zap.Logger
}

func NewPool(params PoolParams) (*Pool, error) {
	log := params.Log
	if log == nil {
		log = zap.NewNop()
	}

	size := params.Size
	if size < 1 {
		size = 1
	}

	// fail early on a bad endpoint instead of on first acquire
	if _, err := New(params.Submitter); err != nil {
		return nil, err
	}

	pool, err := puddle.NewPool(&puddle.Config[*Submitter]{
		Constructor: func(context.Context) (*Submitter, error) {
			return New(params.Submitter)
		},
		Destructor: func(*Submitter) {},
		MaxSize:    int32(size),
	})
	if err != nil {
		return nil, err
	}

	return &Pool{
		pool: pool,
		log:  log.Named("pool"),
	}, nil
}

// Submit submits form on the next free submitter, waiting for one if
// all are busy.
func (p *Pool) Submit(ctx context.Context, form *Form) (Outcome, error) {
	res, err := p.pool.Acquire(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("error acquiring submitter: %w", err)
	}
	defer res.Release()

	return res.Value().Submit(ctx, form)
}

// Close waits for all submitters to be released and closes the pool.
func (p *Pool) Close() {
	p.pool.Close()
}
