// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker

import (
	"github.com/pkg/errors"

	"github.com/chainworks/workerfund/op"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/workerfund"
)

func (d *Dispatcher) applyTechspec(o op.Techspec) error {
	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	if !post.IsRootPost() {
		return errors.WithMessage(ErrNotOnPost, "worker techspec")
	}

	proposalPost, err := d.getComment(o.WorkerProposalAuthor, o.WorkerProposalPermlink)
	if err != nil {
		return err
	}
	proposal, err := d.getProposal(proposalPost.ID)
	if err != nil {
		return err
	}
	if proposal.State != store.ProposalCreated {
		return ErrProposalAlreadyApproved
	}
	if proposal.Type == store.ProposalPremadeWork {
		return ErrTechspecForPremade
	}

	if t, ok := d.s.FindTechspec(post.ID); ok {
		if t.WorkerProposalPost != proposalPost.ID {
			return ErrTechspecOfAnotherProposal
		}
		// Re-costing keeps accrued votes: witnesses who voted before
		// the modification retain their stance.
		d.s.ModifyTechspec(post.ID, func(t *store.Techspec) {
			t.SpecificationCost = o.SpecificationCost
			t.DevelopmentCost = o.DevelopmentCost
			t.PaymentsCount = o.PaymentsCount
			t.PaymentsInterval = o.PaymentsInterval
		})
		return nil
	}

	if post.CashoutTime == workerfund.TimeNever {
		return ErrOutsideCashoutWindow
	}

	d.s.CreateTechspec(store.Techspec{
		Post:               post.ID,
		WorkerProposalPost: proposal.Post,
		State:              store.TechspecCreated,
		SpecificationCost:  o.SpecificationCost,
		DevelopmentCost:    o.DevelopmentCost,
		PaymentsCount:      o.PaymentsCount,
		PaymentsInterval:   o.PaymentsInterval,
		Created:            post.Created,
		NextCashoutTime:    workerfund.TimeNever,
	})
	logger.Debug("techspec created", "post", post.ID, "proposal", proposal.Post)
	return nil
}

func (d *Dispatcher) applyTechspecDelete(o op.TechspecDelete) error {
	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	t, err := d.getTechspec(post.ID)
	if err != nil {
		return err
	}

	if t.State >= store.TechspecPayment {
		return ErrCannotDeletePayingTechspec
	}

	// A techspec nobody voted on disappears without trace; one with
	// votes closes so the record of the withdrawal stays.
	if len(d.s.ApproveVotesOfPost(t.Post)) == 0 {
		d.releaseTechspec(t)
		d.s.RemoveTechspec(t.Post)
		return nil
	}
	d.closeTechspec(t, store.TechspecClosedByAuthor)
	return nil
}

func (d *Dispatcher) applyTechspecApprove(o op.TechspecApprove) error {
	if err := d.checkTop19Approver(o.Approver); err != nil {
		return err
	}

	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	t, err := d.getTechspec(post.ID)
	if err != nil {
		return err
	}
	proposal, err := d.getProposal(t.WorkerProposalPost)
	if err != nil {
		return err
	}
	if proposal.State != store.ProposalCreated {
		return ErrProposalAlreadyApproved
	}
	if t.State != store.TechspecCreated {
		return errors.WithMessagef(ErrWrongStateForOperation, "techspec is %s", t.State)
	}

	key := store.VoteKey{Post: t.Post, Approver: o.Approver}
	existing, hasVote := d.s.FindApproveVote(key)

	if o.State == store.VoteAbstain {
		if !hasVote {
			return ErrNoVoteToWithdraw
		}
		d.s.RemoveApproveVote(key)
		return nil
	}

	if hasVote && existing.State == o.State {
		return ErrVoteUnchanged
	}
	d.s.PutApproveVote(store.ApproveVote{Post: t.Post, Approver: o.Approver, State: o.State})

	return d.finalizeTechspecApproval(t, proposal)
}

// finalizeTechspecApproval recounts the effective tally and applies
// the threshold transitions. The solvency check runs only at the
// approval threshold; its failure leaves the vote in place.
func (d *Dispatcher) finalizeTechspecApproval(t store.Techspec, proposal store.Proposal) error {
	approves, disapproves := d.TechspecTally(t.Post)

	if disapproves >= workerfund.SuperMajorVotedWitnesses {
		d.closeTechspec(t, store.TechspecClosedByWitnesses)
		return nil
	}
	if approves < workerfund.MajorVotedWitnesses {
		return nil
	}

	consumption := ConsumptionPerDay(&t)
	if err := d.checkSolvency(consumption, &t); err != nil {
		return err
	}

	d.s.ModifyGlobal(func(g *store.GlobalProperties) {
		g.WorkerConsumptionPerDay = g.WorkerConsumptionPerDay.Add(consumption)
	})
	d.s.ModifyProposal(proposal.Post, func(p *store.Proposal) {
		p.ApprovedTechspecPost = t.Post
		p.State = store.ProposalTechspec
	})
	d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
		t.State = store.TechspecApproved
		t.CountedConsumption = consumption
	})
	if d.cfg.ClearVotesOnFinalization {
		d.s.ClearApproveVotes(t.Post)
	}
	logger.Debug("techspec approved", "post", t.Post, "consumption_per_day", consumption.String())
	return nil
}

// releaseTechspec unwinds the side effects an active techspec holds
// on shared state: the global consumption counter and the proposal's
// approved slot.
func (d *Dispatcher) releaseTechspec(t store.Techspec) {
	if !t.CountedConsumption.IsZero() {
		d.s.ModifyGlobal(func(g *store.GlobalProperties) {
			g.WorkerConsumptionPerDay = g.WorkerConsumptionPerDay.Sub(t.CountedConsumption)
		})
	}
	if proposal, ok := d.s.FindProposal(t.WorkerProposalPost); ok &&
		proposal.ApprovedTechspecPost == t.Post {
		d.s.ModifyProposal(proposal.Post, func(p *store.Proposal) {
			p.ApprovedTechspecPost = workerfund.NoPost
			p.State = store.ProposalCreated
		})
	}
}

// closeTechspec finalizes a techspec into a terminal state, clears
// its approval votes and releases shared counters.
func (d *Dispatcher) closeTechspec(t store.Techspec, state store.TechspecState) {
	d.releaseTechspec(t)
	d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
		t.State = state
		t.NextCashoutTime = workerfund.TimeNever
		t.CountedConsumption = workerfund.NewAsset(0)
	})
	d.s.ClearApproveVotes(t.Post)
	logger.Debug("techspec closed", "post", t.Post, "state", state.String())
}
