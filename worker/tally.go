// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker

import (
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/workerfund"
)

// TechspecTally counts the effective techspec-approval votes of a
// post. Only votes whose approver currently holds top-19 rank count;
// votes of witnesses who dropped out persist but stop weighing. This
// helper is the single source of truth for effective tallies.
func (d *Dispatcher) TechspecTally(post workerfund.PostID) (approves, disapproves uint32) {
	for _, v := range d.s.ApproveVotesOfPost(post) {
		if !d.isTop19(v.Approver) {
			continue
		}
		switch v.State {
		case store.VoteApprove:
			approves++
		case store.VoteDisapprove:
			disapproves++
		}
	}
	return
}

// PaymentTally counts the effective payment-approval votes of a post.
func (d *Dispatcher) PaymentTally(post workerfund.PostID) (approves, disapproves uint32) {
	for _, v := range d.s.PaymentVotesOfPost(post) {
		if !d.isTop19(v.Approver) {
			continue
		}
		switch v.State {
		case store.VoteApprove:
			approves++
		case store.VoteDisapprove:
			disapproves++
		}
	}
	return
}

func (d *Dispatcher) isTop19(name workerfund.AccountName) bool {
	w, ok := d.s.GetWitness(name)
	return ok && w.Schedule == store.ScheduleTop19
}

// OnScheduleRotation is the witness-schedule hook, invoked by the
// host after each schedule round. Tallies of open techspecs are
// recomputed under the new ranks; a previously finalized techspec is
// never reverted, but a techspec whose approvals now clear the
// threshold (for instance because funding arrived after a solvency
// veto) finalizes here. The sweep order is the store's canonical
// techspec order so replicas transition identically.
func (d *Dispatcher) OnScheduleRotation() {
	for _, id := range d.s.Techspecs() {
		t, ok := d.s.FindTechspec(id)
		if !ok || t.State != store.TechspecCreated {
			continue
		}
		proposal, ok := d.s.FindProposal(t.WorkerProposalPost)
		if !ok || proposal.State != store.ProposalCreated {
			continue
		}
		checkpoint := d.s.Snapshot()
		if err := d.finalizeTechspecApproval(t, proposal); err != nil {
			// the solvency veto holds; nothing was mutated
			d.s.RevertTo(checkpoint)
			continue
		}
		d.s.Commit()
	}
}
