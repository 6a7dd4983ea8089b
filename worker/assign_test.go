// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/workerfund/op"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/worker"
	"github.com/chainworks/workerfund/workerfund"
)

func TestAssign(t *testing.T) {
	c := approvedTechspecFixture(t)
	c.CreateAccount("carol")
	techspecPost := workerfund.MakePostID("bob", "bob-techspec")

	assign := func(assigner, w workerfund.AccountName) error {
		return c.Dispatcher.Apply(op.Assign{
			Assigner:             assigner,
			WorkerTechspecAuthor: "bob", WorkerTechspecPermlink: "bob-techspec",
			Worker: w,
		})
	}

	t.Run("unassign before work", func(t *testing.T) {
		err := assign("bob", "")
		assert.Equal(t, worker.ErrCannotUnassignFromNonWork, errors.Cause(err))
	})

	t.Run("missing worker account", func(t *testing.T) {
		err := assign("bob", "nobody")
		assert.Equal(t, worker.ErrMissingAccount, errors.Cause(err))
	})

	t.Run("assign", func(t *testing.T) {
		require.NoError(t, assign("bob", "alice"))

		ts, ok := c.Store.FindTechspec(techspecPost)
		require.True(t, ok)
		assert.Equal(t, store.TechspecWork, ts.State)
		assert.Equal(t, workerfund.AccountName("alice"), ts.Worker)
	})

	t.Run("assign twice refused", func(t *testing.T) {
		err := assign("bob", "carol")
		assert.Equal(t, worker.ErrWrongStateForOperation, errors.Cause(err))
	})

	t.Run("unassign by stranger refused", func(t *testing.T) {
		err := assign("carol", "")
		assert.Equal(t, worker.ErrUnauthorizedUnassign, errors.Cause(err))
	})

	t.Run("worker unassigns self", func(t *testing.T) {
		require.NoError(t, assign("alice", ""))

		ts, ok := c.Store.FindTechspec(techspecPost)
		require.True(t, ok)
		assert.Equal(t, store.TechspecApproved, ts.State)
		assert.True(t, ts.Worker.IsEmpty())
	})

	t.Run("author unassigns worker", func(t *testing.T) {
		require.NoError(t, assign("bob", "alice"))
		require.NoError(t, assign("bob", ""))

		ts, ok := c.Store.FindTechspec(techspecPost)
		require.True(t, ok)
		assert.Equal(t, store.TechspecApproved, ts.State)
	})
}

func TestAssignToPremade(t *testing.T) {
	c := newChain()
	c.CreateAccount("alice")
	c.CreateAccount("bob")
	c.CreatePost("alice", "alice-premade")
	c.SetFund(workerfund.NativeFromWhole(100), workerfund.NewAsset(0))

	require.NoError(t, c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "alice-premade", Type: store.ProposalPremadeWork}))
	c.CreatePost("bob", "bob-result")
	require.NoError(t, c.Dispatcher.Apply(op.ResultPremade{
		Author: "bob", Permlink: "bob-result",
		WorkerProposalAuthor: "alice", WorkerProposalPermlink: "alice-premade",
		SpecificationCost: workerfund.NativeFromWhole(6),
		DevelopmentCost:   workerfund.NativeFromWhole(60),
		PaymentsCount:     2, PaymentsInterval: 86400,
	}))

	// a premade techspec is complete, never assignable
	err := c.Dispatcher.Apply(op.Assign{
		Assigner:             "bob",
		WorkerTechspecAuthor: "bob", WorkerTechspecPermlink: "bob-result",
		Worker: "alice",
	})
	assert.Equal(t, worker.ErrWrongStateForOperation, errors.Cause(err))
}
