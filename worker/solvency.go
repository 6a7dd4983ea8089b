// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker

import (
	"github.com/holiman/uint256"

	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/workerfund"
)

// ConsumptionPerDay computes the per-day draw an approved techspec
// claims from the worker fund:
//
//	min(total_cost * day / payments_period, total_cost)
//
// The clamp keeps single-day techspecs from claiming more than their
// total cost.
func ConsumptionPerDay(t *store.Techspec) workerfund.Asset {
	total := t.SpecificationCost.Add(t.DevelopmentCost)
	period := uint256.NewInt(uint64(t.PaymentsInterval))
	period.Mul(period, uint256.NewInt(uint64(t.PaymentsCount)))

	perDay := uint256.NewInt(uint64(total.Amount))
	perDay.Mul(perDay, uint256.NewInt(workerfund.DaySeconds))
	perDay.Div(perDay, period)

	amount := int64(perDay.Uint64())
	if amount > total.Amount {
		amount = total.Amount
	}
	return workerfund.Asset{Amount: amount, Symbol: total.Symbol}
}

// checkSolvency verifies the worker fund can carry an additional
// techspec over its payment period: the current reserve plus the
// revenue projected over the period must cover the projected outflow
// of all approved techspecs plus the candidate. Arithmetic runs in
// the 256-bit unsigned domain; amounts are int64 so products with
// period lengths cannot overflow it.
func (d *Dispatcher) checkSolvency(consumption workerfund.Asset, t *store.Techspec) error {
	g := d.s.Global()

	period := uint256.NewInt(uint64(t.PaymentsInterval))
	period.Mul(period, uint256.NewInt(uint64(t.PaymentsCount)))
	day := uint256.NewInt(workerfund.DaySeconds)

	revenue := uint256.NewInt(uint64(g.WorkerRevenuePerDay.Amount))
	revenue.Mul(revenue, period)
	revenue.Div(revenue, day)
	revenue.Add(revenue, uint256.NewInt(uint64(g.TotalWorkerFund.Amount)))

	outflow := uint256.NewInt(uint64(g.WorkerConsumptionPerDay.Amount))
	outflow.Add(outflow, uint256.NewInt(uint64(consumption.Amount)))
	outflow.Mul(outflow, period)
	outflow.Div(outflow, day)

	if revenue.Lt(outflow) {
		return ErrInsufficientFunds
	}
	return nil
}
