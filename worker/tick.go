// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker

import (
	"github.com/chainworks/workerfund/metrics"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/workerfund"
)

// metricPayouts resolves the payout counter on each use, so counting
// starts once the host installs prometheus.
func metricPayouts() metrics.CountMeter { return metrics.Counter("worker_payout_count") }

// Tick is the per-block hook, invoked by the host between operation
// application and block finalization. It advances the head time,
// accrues fund revenue, sweeps expired techspec votings and disburses
// due installments. Everything here is a pure function of the ordered
// block stream, so replicas tick identically.
func (d *Dispatcher) Tick(headTime uint64) {
	d.s.ModifyGlobal(func(g *store.GlobalProperties) {
		g.HeadBlockTime = headTime
	})
	d.accrueRevenue()
	d.sweepExpiredVotings(headTime)
	d.processCashouts(headTime)
}

// accrueRevenue drips the per-day revenue rate into the reserve at
// block granularity. Integer division floors each drip; the residue
// is deliberately dropped rather than carried so the reserve stays a
// function of block count alone.
func (d *Dispatcher) accrueRevenue() {
	g := d.s.Global()
	drip := g.WorkerRevenuePerDay.Amount * int64(workerfund.BlockInterval) / int64(workerfund.DaySeconds)
	if drip == 0 {
		return
	}
	d.s.ModifyGlobal(func(g *store.GlobalProperties) {
		g.TotalWorkerFund = g.TotalWorkerFund.Add(workerfund.NewAsset(drip))
	})
}

// sweepExpiredVotings closes techspecs that gathered at least one
// approval but missed the threshold within the approve term.
func (d *Dispatcher) sweepExpiredVotings(headTime uint64) {
	for _, id := range d.s.Techspecs() {
		t, ok := d.s.FindTechspec(id)
		if !ok || t.State != store.TechspecCreated {
			continue
		}
		if headTime < t.Created+d.cfg.TechspecApproveTerm {
			continue
		}
		hasApprove := false
		for _, v := range d.s.ApproveVotesOfPost(id) {
			if v.State == store.VoteApprove {
				hasApprove = true
				break
			}
		}
		if !hasApprove {
			continue
		}
		d.closeTechspec(t, store.TechspecClosed)
	}
}

// processCashouts disburses one installment for every paying techspec
// whose cashout time has come, in (cashout time, post id) order.
func (d *Dispatcher) processCashouts(headTime uint64) {
	for _, id := range d.s.PayingTechspecs() {
		t, ok := d.s.FindTechspec(id)
		if !ok || t.State != store.TechspecPayment {
			continue
		}
		if headTime < t.NextCashoutTime {
			// the list is cashout-ordered, nothing further is due
			break
		}
		d.disburse(t)
	}
}

func (d *Dispatcher) disburse(t store.Techspec) {
	installment := t.SpecificationCost.Add(t.DevelopmentCost).DivScalar(int64(t.PaymentsCount))

	// The solvency oracle keeps the schedule covered; if revenue
	// accrual still lags, the reserve bounds the payout rather than
	// going negative.
	reserve := d.s.Global().TotalWorkerFund
	if installment.Cmp(reserve) > 0 {
		installment = reserve
	}

	authorShare := workerfund.NewAsset(0)
	if t.FinishedPaymentsCount == 0 {
		authorShare = t.SpecificationCost
		if authorShare.Cmp(installment) > 0 {
			authorShare = installment
		}
	}
	workerShare := installment.Sub(authorShare)

	if !authorShare.IsZero() {
		if post, ok := d.s.GetCommentByID(t.Post); ok {
			d.s.ModifyAccount(post.Author, func(a *store.Account) {
				a.Balance = a.Balance.Add(authorShare)
			})
		}
	}
	if !workerShare.IsZero() && !t.Worker.IsEmpty() {
		d.s.ModifyAccount(t.Worker, func(a *store.Account) {
			a.Balance = a.Balance.Add(workerShare)
		})
	}
	d.s.ModifyGlobal(func(g *store.GlobalProperties) {
		g.TotalWorkerFund = g.TotalWorkerFund.Sub(installment)
	})
	metricPayouts().Add(1)

	finished := t.FinishedPaymentsCount + 1
	if finished == t.PaymentsCount {
		d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
			t.FinishedPaymentsCount = finished
			t.State = store.TechspecPaymentComplete
			t.NextCashoutTime = workerfund.TimeNever
			t.CountedConsumption = workerfund.NewAsset(0)
		})
		if !t.CountedConsumption.IsZero() {
			d.s.ModifyGlobal(func(g *store.GlobalProperties) {
				g.WorkerConsumptionPerDay = g.WorkerConsumptionPerDay.Sub(t.CountedConsumption)
			})
		}
		d.s.ModifyProposal(t.WorkerProposalPost, func(p *store.Proposal) {
			p.State = store.ProposalPaymentComplete
		})
		logger.Debug("techspec paid out", "post", t.Post, "payments", finished)
		return
	}
	d.s.ModifyTechspec(t.Post, func(t *store.Techspec) {
		t.FinishedPaymentsCount = finished
		t.NextCashoutTime = t.NextCashoutTime + uint64(t.PaymentsInterval)
	})
}
