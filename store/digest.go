// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/chainworks/workerfund/workerfund"
)

// Digest computes a canonical checksum of the worker-subsystem state:
// proposals, techspecs, both vote collections and the global record,
// each in key order. Replicas that processed the same operation
// stream must produce the same digest.
func (s *Store) Digest() [32]byte {
	h := workerfund.NewBlake2b()

	for _, id := range s.Proposals() {
		p := s.proposals[id]
		rlp.Encode(h, []any{
			p.Post.Bytes(),
			uint8(p.Type),
			uint8(p.State),
			p.ApprovedTechspecPost.Bytes(),
		})
	}
	for _, id := range s.Techspecs() {
		t := s.techspecs[id]
		rlp.Encode(h, []any{
			t.Post.Bytes(),
			t.WorkerProposalPost.Bytes(),
			uint8(t.State),
			string(t.Worker),
			t.WorkerResultPost.Bytes(),
			uint64(t.SpecificationCost.Amount),
			uint64(t.DevelopmentCost.Amount),
			uint64(t.PaymentsCount),
			uint64(t.PaymentsInterval),
			t.Created,
			t.NextCashoutTime,
			uint64(t.FinishedPaymentsCount),
			uint64(t.CountedConsumption.Amount),
		})
		for _, v := range s.ApproveVotesOfPost(id) {
			rlp.Encode(h, []any{v.Post.Bytes(), string(v.Approver), uint8(v.State)})
		}
		for _, v := range s.PaymentVotesOfPost(id) {
			rlp.Encode(h, []any{v.Post.Bytes(), string(v.Approver), uint8(v.State)})
		}
	}
	g := s.global
	rlp.Encode(h, []any{
		uint64(g.TotalWorkerFund.Amount),
		uint64(g.WorkerRevenuePerDay.Amount),
		uint64(g.WorkerConsumptionPerDay.Amount),
		g.HeadBlockTime,
	})

	var out [32]byte
	h.Sum(out[:0])
	return out
}
