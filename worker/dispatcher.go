// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package worker implements the worker-proposal funding subsystem:
// operation evaluators, witness vote tallies, the funding solvency
// oracle and the per-block payout tick. All transitions are
// synchronous and deterministic; the host serializes operations in
// canonical block order and owns undo across forks through the store
// snapshots.
package worker

import (
	"github.com/pkg/errors"

	"github.com/chainworks/workerfund/log"
	"github.com/chainworks/workerfund/metrics"
	"github.com/chainworks/workerfund/op"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/workerfund"
)

var logger = log.WithContext("pkg", "worker")

// metricOps resolves the operation counter on each use, so counting
// starts once the host installs prometheus.
func metricOps() metrics.CountVecMeter {
	return metrics.CounterVec("worker_operation_count", []string{"kind", "status"})
}

// Config carries the runtime-selectable knobs of the subsystem.
type Config struct {
	// ClearVotesOnFinalization empties a techspec's approve votes when
	// the approval tally finalizes it, and its payment votes when the
	// payment tally finalizes it. Off by default: witnesses' stances
	// stay queryable after approval and payment approval. Closing a
	// techspec clears its approve votes under either setting.
	ClearVotesOnFinalization bool

	// TechspecApproveTerm bounds techspec voting, in seconds.
	TechspecApproveTerm uint64

	// ResultApproveTerm bounds payment approval of a delivered
	// result, in seconds.
	ResultApproveTerm uint64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		TechspecApproveTerm: workerfund.DefaultTechspecApproveTerm,
		ResultApproveTerm:   workerfund.DefaultResultApproveTerm,
	}
}

// Dispatcher evaluates worker operations against the entity store.
type Dispatcher struct {
	s   *store.Store
	cfg Config
}

// New creates a dispatcher over the store.
func New(s *store.Store, cfg Config) *Dispatcher {
	return &Dispatcher{s: s, cfg: cfg}
}

// Store exposes the underlying entity store.
func (d *Dispatcher) Store() *store.Store {
	return d.s
}

// Apply validates and evaluates one operation. On failure the store
// is rolled back to the pre-operation snapshot, except for the
// solvency veto, which keeps the recorded vote and refuses only the
// finalization.
func (d *Dispatcher) Apply(o op.Operation) error {
	if err := o.Validate(); err != nil {
		metricOps().AddWithLabel(1, map[string]string{"kind": o.Kind().String(), "status": "invalid"})
		return errors.WithMessage(err, "validate")
	}

	checkpoint := d.s.Snapshot()
	err := d.evaluate(o)
	if err != nil && !IsErrInsufficientFunds(err) {
		d.s.RevertTo(checkpoint)
		metricOps().AddWithLabel(1, map[string]string{"kind": o.Kind().String(), "status": "rejected"})
		return err
	}
	d.s.Commit()
	if err != nil {
		metricOps().AddWithLabel(1, map[string]string{"kind": o.Kind().String(), "status": "rejected"})
		return err
	}
	metricOps().AddWithLabel(1, map[string]string{"kind": o.Kind().String(), "status": "applied"})
	return nil
}

func (d *Dispatcher) evaluate(o op.Operation) error {
	switch o := o.(type) {
	case op.Proposal:
		return d.applyProposal(o)
	case op.ProposalDelete:
		return d.applyProposalDelete(o)
	case op.Techspec:
		return d.applyTechspec(o)
	case op.TechspecDelete:
		return d.applyTechspecDelete(o)
	case op.TechspecApprove:
		return d.applyTechspecApprove(o)
	case op.Assign:
		return d.applyAssign(o)
	case op.Result:
		return d.applyResult(o)
	case op.ResultPremade:
		return d.applyResultPremade(o)
	case op.ResultDelete:
		return d.applyResultDelete(o)
	case op.PaymentApprove:
		return d.applyPaymentApprove(o)
	}
	return errors.Errorf("unknown operation kind %v", o.Kind())
}

// headTime is the timestamp of the block being processed.
func (d *Dispatcher) headTime() uint64 {
	return d.s.Global().HeadBlockTime
}

func (d *Dispatcher) getComment(author workerfund.AccountName, permlink string) (store.Comment, error) {
	c, ok := d.s.GetComment(author, permlink)
	if !ok {
		return store.Comment{}, errors.WithMessagef(ErrMissingComment, "@%s/%s", author, permlink)
	}
	return c, nil
}

func (d *Dispatcher) getProposal(post workerfund.PostID) (store.Proposal, error) {
	p, ok := d.s.FindProposal(post)
	if !ok {
		return store.Proposal{}, errors.WithMessagef(ErrMissingProposal, "post %s", post)
	}
	return p, nil
}

func (d *Dispatcher) getTechspec(post workerfund.PostID) (store.Techspec, error) {
	t, ok := d.s.FindTechspec(post)
	if !ok {
		return store.Techspec{}, errors.WithMessagef(ErrMissingTechspec, "post %s", post)
	}
	return t, nil
}

// checkTop19Approver guards vote operations: the approver must be a
// witness holding the top-19 rank in the current schedule.
func (d *Dispatcher) checkTop19Approver(approver workerfund.AccountName) error {
	w, ok := d.s.GetWitness(approver)
	if !ok {
		return errors.WithMessagef(ErrMissingWitness, "%s", approver)
	}
	if w.Schedule != store.ScheduleTop19 {
		return errors.WithMessagef(ErrApproverNotTop19, "%s", approver)
	}
	return nil
}

// CanDeletePost reports whether the comment subsystem may delete the
// post: posts anchoring a live proposal or techspec are pinned.
func (d *Dispatcher) CanDeletePost(author workerfund.AccountName, permlink string) bool {
	id := workerfund.MakePostID(author, permlink)
	if _, ok := d.s.FindProposal(id); ok {
		return false
	}
	if _, ok := d.s.FindTechspec(id); ok {
		return false
	}
	return true
}
