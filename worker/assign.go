// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker

import (
	"github.com/pkg/errors"

	"github.com/chainworks/workerfund/op"
	"github.com/chainworks/workerfund/store"
)

func (d *Dispatcher) applyAssign(o op.Assign) error {
	techspecPost, err := d.getComment(o.WorkerTechspecAuthor, o.WorkerTechspecPermlink)
	if err != nil {
		return err
	}
	t, err := d.getTechspec(techspecPost.ID)
	if err != nil {
		return err
	}

	if o.Worker.IsEmpty() {
		// unassign
		if t.State != store.TechspecWork {
			return ErrCannotUnassignFromNonWork
		}
		if o.Assigner != t.Worker && o.Assigner != techspecPost.Author {
			return ErrUnauthorizedUnassign
		}
		d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
			t.Worker = ""
			t.State = store.TechspecApproved
		})
		return nil
	}

	if t.State != store.TechspecApproved {
		return errors.WithMessagef(ErrWrongStateForOperation, "techspec is %s, assignment needs approved", t.State)
	}
	proposal, err := d.getProposal(t.WorkerProposalPost)
	if err != nil {
		return err
	}
	if proposal.Type != store.ProposalTask {
		return ErrCannotAssignToPremade
	}
	if _, ok := d.s.GetAccount(o.Worker); !ok {
		return errors.WithMessagef(ErrMissingAccount, "%s", o.Worker)
	}

	d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
		t.Worker = o.Worker
		t.State = store.TechspecWork
	})
	logger.Debug("worker assigned", "techspec", t.Post, "worker", string(o.Worker))
	return nil
}
