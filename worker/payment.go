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

func (d *Dispatcher) applyPaymentApprove(o op.PaymentApprove) error {
	if err := d.checkTop19Approver(o.Approver); err != nil {
		return err
	}

	techspecPost, err := d.getComment(o.WorkerTechspecAuthor, o.WorkerTechspecPermlink)
	if err != nil {
		return err
	}
	t, err := d.getTechspec(techspecPost.ID)
	if err != nil {
		return err
	}
	proposal, err := d.getProposal(t.WorkerProposalPost)
	if err != nil {
		return err
	}

	switch t.State {
	case store.TechspecWip, store.TechspecWork, store.TechspecComplete, store.TechspecPayment:
	default:
		return errors.WithMessagef(ErrWrongStateForOperation, "techspec is %s, payment vote needs work, complete or paying", t.State)
	}

	if t.State == store.TechspecComplete {
		if proposal.Type == store.ProposalPremadeWork && proposal.State != store.ProposalCreated {
			return ErrProposalHasApprovedResult
		}
		resultPost, ok := d.s.GetCommentByID(t.WorkerResultPost)
		if !ok {
			return errors.WithMessagef(ErrMissingComment, "result of techspec %s", t.Post)
		}
		if d.headTime() > resultPost.Created+d.cfg.ResultApproveTerm {
			return ErrApproveTermExpired
		}
	} else if o.State == store.VoteApprove {
		return ErrCannotApproveYet
	}

	key := store.VoteKey{Post: t.Post, Approver: o.Approver}
	existing, hasVote := d.s.FindPaymentVote(key)

	if o.State == store.VoteAbstain {
		if !hasVote {
			return ErrNoVoteToWithdraw
		}
		d.s.RemovePaymentVote(key)
		return nil
	}

	if hasVote && existing.State == o.State {
		return ErrVoteUnchanged
	}
	d.s.PutPaymentVote(store.PaymentVote{Post: t.Post, Approver: o.Approver, State: o.State})

	approves, disapproves := d.PaymentTally(t.Post)

	if o.State == store.VoteDisapprove {
		if disapproves < workerfund.SuperMajorVotedWitnesses {
			return nil
		}
		// A paying techspec closes under its own verdict so the
		// payout history stays attributable.
		if t.State == store.TechspecPayment {
			d.closeTechspec(t, store.TechspecDisapprovedByWitnesses)
			return nil
		}
		d.closeTechspec(t, store.TechspecClosedByWitnesses)
		return nil
	}

	if approves < workerfund.MajorVotedWitnesses {
		return nil
	}

	d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
		t.NextCashoutTime = d.headTime() + uint64(t.PaymentsInterval)
		t.State = store.TechspecPayment
	})
	if proposal.Type == store.ProposalPremadeWork {
		d.s.ModifyProposal(proposal.Post, func(p *store.Proposal) {
			p.ApprovedTechspecPost = t.Post
			p.State = store.ProposalTechspec
		})
		// premade techspecs skip the approval phase, so their claim
		// on the consumption counter starts here
		consumption := ConsumptionPerDay(&t)
		d.s.ModifyGlobal(func(g *store.GlobalProperties) {
			g.WorkerConsumptionPerDay = g.WorkerConsumptionPerDay.Add(consumption)
		})
		d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
			t.CountedConsumption = consumption
		})
	}
	if d.cfg.ClearVotesOnFinalization {
		d.s.ClearPaymentVotes(t.Post)
	}
	logger.Debug("payment approved", "techspec", t.Post)
	return nil
}
