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

func (d *Dispatcher) applyProposal(o op.Proposal) error {
	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	if !post.IsRootPost() {
		return errors.WithMessage(ErrNotOnPost, "worker proposal")
	}

	if p, ok := d.s.FindProposal(post.ID); ok {
		if p.State != store.ProposalCreated {
			return ErrCannotEditApprovedProposal
		}
		d.s.ModifyProposal(post.ID, func(p *store.Proposal) {
			p.Type = o.Type
		})
		return nil
	}

	if post.CashoutTime == workerfund.TimeNever {
		return ErrOutsideCashoutWindow
	}

	d.s.CreateProposal(store.Proposal{
		Post:  post.ID,
		Type:  o.Type,
		State: store.ProposalCreated,
	})
	logger.Debug("proposal created", "post", post.ID, "type", o.Type.String())
	return nil
}

func (d *Dispatcher) applyProposalDelete(o op.ProposalDelete) error {
	post, err := d.getComment(o.Author, o.Permlink)
	if err != nil {
		return err
	}
	p, err := d.getProposal(post.ID)
	if err != nil {
		return err
	}

	if len(d.s.TechspecsOfProposal(p.Post)) > 0 {
		return ErrHasDependentTechspecs
	}

	d.s.RemoveProposal(p.Post)
	logger.Debug("proposal removed", "post", post.ID)
	return nil
}
