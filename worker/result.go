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

// checkResultPost guards the post a result is published on: it must
// be a top-level post not already serving as a techspec or a result.
func (d *Dispatcher) checkResultPost(post store.Comment) error {
	if !post.IsRootPost() {
		return errors.WithMessage(ErrNotOnPost, "worker result")
	}
	if _, ok := d.s.FindTechspecByResult(post.ID); ok {
		return ErrPostIsResult
	}
	if _, ok := d.s.FindTechspec(post.ID); ok {
		return ErrPostIsTechspec
	}
	return nil
}

func (d *Dispatcher) applyResult(o op.Result) error {
	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	if err := d.checkResultPost(post); err != nil {
		return err
	}

	techspecPost, err := d.getComment(o.Author, o.WorkerTechspecPermlink)
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
	if proposal.Type == store.ProposalPremadeWork {
		return ErrResultForPremade
	}
	if t.State != store.TechspecWork && t.State != store.TechspecWip {
		return errors.WithMessagef(ErrWrongStateForOperation, "techspec is %s, result needs work", t.State)
	}

	d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
		t.WorkerResultPost = post.ID
		t.State = store.TechspecComplete
	})
	logger.Debug("result submitted", "techspec", t.Post, "result", post.ID)
	return nil
}

func (d *Dispatcher) applyResultPremade(o op.ResultPremade) error {
	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	if err := d.checkResultPost(post); err != nil {
		return err
	}

	proposalPost, err := d.getComment(o.WorkerProposalAuthor, o.WorkerProposalPermlink)
	if err != nil {
		return err
	}
	proposal, err := d.getProposal(proposalPost.ID)
	if err != nil {
		return err
	}
	if proposal.Type != store.ProposalPremadeWork {
		return ErrNotPremadeProposal
	}
	if proposal.State != store.ProposalCreated {
		return ErrProposalAlreadyApproved
	}

	// Premade work skips the techspec approval phase: the techspec is
	// born complete with the author as worker, pending only payment
	// approval.
	d.s.CreateTechspec(store.Techspec{
		Post:               post.ID,
		WorkerProposalPost: proposalPost.ID,
		State:              store.TechspecComplete,
		Worker:             o.Author,
		WorkerResultPost:   post.ID,
		SpecificationCost:  o.SpecificationCost,
		DevelopmentCost:    o.DevelopmentCost,
		PaymentsCount:      o.PaymentsCount,
		PaymentsInterval:   o.PaymentsInterval,
		Created:            post.Created,
		NextCashoutTime:    workerfund.TimeNever,
	})
	logger.Debug("premade result submitted", "techspec", post.ID, "proposal", proposalPost.ID)
	return nil
}

func (d *Dispatcher) applyResultDelete(o op.ResultDelete) error {
	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	t, ok := d.s.FindTechspecByResult(post.ID)
	if !ok {
		return errors.WithMessagef(ErrMissingResult, "post %s", post.ID)
	}

	if t.State >= store.TechspecPayment {
		return ErrCannotDeletePayingTechspec
	}

	d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
		t.WorkerResultPost = workerfund.NoPost
		t.State = store.TechspecWip
	})
	return nil
}
