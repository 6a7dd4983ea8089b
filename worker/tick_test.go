// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/workerfund/fortest"
	"github.com/chainworks/workerfund/op"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/worker"
	"github.com/chainworks/workerfund/workerfund"
)

// payingTechspecFixture builds a techspec in payment: spec 6, dev 60,
// two daily installments, alice working for author bob.
func payingTechspecFixture(t *testing.T) *fortest.Chain {
	t.Helper()
	c := newChain()
	c.CreateAccount("alice")
	c.CreateAccount("bob")
	c.CreatePost("alice", "alice-proposal")
	c.CreatePost("bob", "bob-techspec")
	c.SetFund(workerfund.NativeFromWhole(100), workerfund.NewAsset(0))

	require.NoError(t, c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "alice-proposal", Type: store.ProposalTask}))
	require.NoError(t, c.Dispatcher.Apply(op.Techspec{
		Author: "bob", Permlink: "bob-techspec",
		WorkerProposalAuthor: "alice", WorkerProposalPermlink: "alice-proposal",
		SpecificationCost: workerfund.NativeFromWhole(6),
		DevelopmentCost:   workerfund.NativeFromWhole(60),
		PaymentsCount:     2, PaymentsInterval: 86400,
	}))

	approvers := c.CreateApprovers(0, int(workerfund.MajorVotedWitnesses))
	for _, name := range approvers {
		require.NoError(t, c.Dispatcher.Apply(op.TechspecApprove{
			Approver: name, Author: "bob", Permlink: "bob-techspec", State: store.VoteApprove,
		}))
	}
	require.NoError(t, c.Dispatcher.Apply(op.Assign{
		Assigner:             "bob",
		WorkerTechspecAuthor: "bob", WorkerTechspecPermlink: "bob-techspec",
		Worker: "alice",
	}))
	c.CreatePost("bob", "bob-result")
	require.NoError(t, c.Dispatcher.Apply(op.Result{
		Author: "bob", Permlink: "bob-result", WorkerTechspecPermlink: "bob-techspec",
	}))
	for _, name := range approvers {
		require.NoError(t, c.Dispatcher.Apply(op.PaymentApprove{
			Approver:             name,
			WorkerTechspecAuthor: "bob", WorkerTechspecPermlink: "bob-techspec",
			State: store.VoteApprove,
		}))
	}
	return c
}

func balance(t *testing.T, c *fortest.Chain, name workerfund.AccountName) int64 {
	t.Helper()
	a, ok := c.Store.GetAccount(name)
	require.True(t, ok)
	return a.Balance.Amount
}

func TestPayoutTick(t *testing.T) {
	c := payingTechspecFixture(t)
	techspecPost := workerfund.MakePostID("bob", "bob-techspec")
	reserveBefore := c.Store.Global().TotalWorkerFund.Amount

	ts, ok := c.Store.FindTechspec(techspecPost)
	require.True(t, ok)
	firstCashout := ts.NextCashoutTime

	t.Run("nothing due before the cashout time", func(t *testing.T) {
		c.GenerateBlocks(3)
		assert.Equal(t, int64(0), balance(t, c, "alice"))
		assert.Equal(t, int64(0), balance(t, c, "bob"))
	})

	t.Run("first installment splits the specification share", func(t *testing.T) {
		c.FastForward(firstCashout - c.HeadTime())

		// installment 33.000: 6.000 specification to author bob,
		// 27.000 to worker alice
		assert.Equal(t, int64(6000), balance(t, c, "bob"))
		assert.Equal(t, int64(27000), balance(t, c, "alice"))

		ts, ok := c.Store.FindTechspec(techspecPost)
		require.True(t, ok)
		assert.Equal(t, store.TechspecPayment, ts.State)
		assert.Equal(t, uint16(1), ts.FinishedPaymentsCount)
		assert.Equal(t, firstCashout+uint64(ts.PaymentsInterval), ts.NextCashoutTime)
	})

	t.Run("final installment completes the techspec", func(t *testing.T) {
		c.FastForward(workerfund.DaySeconds)

		assert.Equal(t, int64(6000), balance(t, c, "bob"))
		assert.Equal(t, int64(60000), balance(t, c, "alice"))

		ts, ok := c.Store.FindTechspec(techspecPost)
		require.True(t, ok)
		assert.Equal(t, store.TechspecPaymentComplete, ts.State)
		assert.Equal(t, uint16(2), ts.FinishedPaymentsCount)
		assert.Equal(t, workerfund.TimeNever, ts.NextCashoutTime)

		p, ok := c.Store.FindProposal(ts.WorkerProposalPost)
		require.True(t, ok)
		assert.Equal(t, store.ProposalPaymentComplete, p.State)
		assert.Equal(t, techspecPost, p.ApprovedTechspecPost)

		assert.Equal(t, int64(0), c.Store.Global().WorkerConsumptionPerDay.Amount)
		checkConsumptionInvariant(t, c)
		assert.Equal(t, reserveBefore-66000, c.Store.Global().TotalWorkerFund.Amount)
	})
}

func TestRevenueAccrual(t *testing.T) {
	c := newChain()
	c.SetFund(workerfund.NewAsset(0), workerfund.NativeFromWhole(288))

	// 288.000 per day drips 0.010 per 3-second block
	c.GenerateBlocks(10)
	assert.Equal(t, int64(100), c.Store.Global().TotalWorkerFund.Amount)
}

func TestTickDeterminism(t *testing.T) {
	run := func() [32]byte {
		c := payingTechspecFixture(t)
		c.FastForward(3 * workerfund.DaySeconds)
		return c.Store.Digest()
	}
	assert.Equal(t, run(), run())
}

func TestConsumptionClamp(t *testing.T) {
	// a single-day techspec claims no more than its total cost
	ts := store.Techspec{
		SpecificationCost: workerfund.NativeFromWhole(6),
		DevelopmentCost:   workerfund.NativeFromWhole(60),
		PaymentsCount:     1,
		PaymentsInterval:  86400,
	}
	assert.Equal(t, int64(66000), worker.ConsumptionPerDay(&ts).Amount)

	ts.PaymentsCount = 40
	assert.Equal(t, int64(1650), worker.ConsumptionPerDay(&ts).Amount)
}
