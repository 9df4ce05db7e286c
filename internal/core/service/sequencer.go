package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

// Pacer abstracts the rate limiter that spaces out calls against the
// identity store (an in-process token bucket in production, a stub in tests).
type Pacer interface {
	Wait(ctx context.Context) error
}

// Sequencer drives the reconciler over an ordered list of inputs, one at a
// time. Sequential processing is deliberate throttling: the identity store
// rate-limits its admin API and every item triggers a full enumeration.
type Sequencer struct {
	svc   ports.ProvisioningService
	pacer Pacer
	log   zerolog.Logger
}

// NewSequencer builds a batch runner. pacer may be nil to run unpaced.
func NewSequencer(svc ports.ProvisioningService, pacer Pacer, log zerolog.Logger) *Sequencer {
	return &Sequencer{svc: svc, pacer: pacer, log: log}
}

// RunAll processes inputs strictly in order and returns one result per
// input, in the same order. A failed item is recorded and the run moves on;
// nothing short of context cancellation stops the batch, and even then every
// remaining input still gets a (failed) result.
func (q *Sequencer) RunAll(ctx context.Context, inputs []ports.ProvisionInput) []ports.BatchItemResult {
	results := make([]ports.BatchItemResult, 0, len(inputs))

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			results = append(results, ports.BatchItemResult{
				Email: in.Email,
				Err:   domain.NewProvisionError(domain.ErrorKindUnexpected, err),
			})
			continue
		}

		results = append(results, q.runOne(ctx, in))

		if q.pacer != nil && i < len(inputs)-1 {
			if err := q.pacer.Wait(ctx); err != nil {
				q.log.Warn().Err(err).Msg("batch pacing interrupted")
			}
		}
	}

	q.log.Info().Int("total", len(results)).Msg("batch run complete")
	return results
}

// runOne isolates a single item: any failure, including a panic, becomes
// that item's result instead of aborting the batch.
func (q *Sequencer) runOne(ctx context.Context, in ports.ProvisionInput) (res ports.BatchItemResult) {
	res.Email = in.Email

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = nil
			res.Err = domain.NewProvisionError(domain.ErrorKindUnexpected, fmt.Errorf("panic: %v", r))
			q.log.Error().Str("email", in.Email).Interface("panic", r).Msg("provisioning panicked")
		}
	}()

	outcome, err := q.svc.Provision(ctx, in)
	if err != nil {
		q.log.Error().Err(err).Str("email", in.Email).Str("kind", string(domain.KindOf(err))).Msg("provisioning failed")
		res.Err = err
		return res
	}

	q.log.Info().Str("email", in.Email).Str("action", string(outcome.Action)).Msg("provisioned")
	res.Outcome = outcome
	return res
}
