// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/workerfund/fortest"
	"github.com/chainworks/workerfund/op"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/worker"
	"github.com/chainworks/workerfund/workerfund"
)

func newChain() *fortest.Chain {
	return fortest.NewChain(worker.DefaultConfig())
}

func TestProposalCreate(t *testing.T) {
	c := newChain()
	c.CreateAccount("alice")
	c.CreateAccount("bob")

	t.Run("no post", func(t *testing.T) {
		err := c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "fake", Type: store.ProposalTask})
		assert.Equal(t, worker.ErrMissingComment, errors.Cause(err))
	})

	t.Run("on comment instead of post", func(t *testing.T) {
		c.CreatePost("alice", "i-am-post")
		c.CreateReply("bob", "i-am-comment", "alice")

		err := c.Dispatcher.Apply(op.Proposal{Author: "bob", Permlink: "i-am-comment", Type: store.ProposalTask})
		assert.Equal(t, worker.ErrNotOnPost, errors.Cause(err))
	})

	t.Run("normal create", func(t *testing.T) {
		require.NoError(t, c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "i-am-post", Type: store.ProposalTask}))

		p, ok := c.Store.FindProposal(workerfund.MakePostID("alice", "i-am-post"))
		require.True(t, ok)
		assert.Equal(t, store.ProposalTask, p.Type)
		assert.Equal(t, store.ProposalCreated, p.State)
		assert.True(t, p.ApprovedTechspecPost.IsNone())
	})

	t.Run("outside cashout window", func(t *testing.T) {
		post := c.CreatePost("alice", "old-post")
		post.CashoutTime = workerfund.TimeNever
		c.Store.AddComment(post)

		err := c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "old-post", Type: store.ProposalTask})
		assert.Equal(t, worker.ErrOutsideCashoutWindow, errors.Cause(err))
	})
}

func TestProposalModify(t *testing.T) {
	c := newChain()
	c.CreateAccount("alice")
	c.CreatePost("alice", "i-am-post")

	require.NoError(t, c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "i-am-post", Type: store.ProposalTask}))

	require.NoError(t, c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "i-am-post", Type: store.ProposalPremadeWork}))

	p, ok := c.Store.FindProposal(workerfund.MakePostID("alice", "i-am-post"))
	require.True(t, ok)
	assert.Equal(t, store.ProposalPremadeWork, p.Type)
	assert.Equal(t, store.ProposalCreated, p.State)
}

func TestProposalDelete(t *testing.T) {
	c := newChain()
	c.CreateAccount("alice")
	c.CreateAccount("bob")
	c.CreatePost("alice", "i-am-post")

	require.NoError(t, c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "i-am-post", Type: store.ProposalTask}))

	proposalPost := workerfund.MakePostID("alice", "i-am-post")

	t.Run("post with proposal is pinned", func(t *testing.T) {
		assert.False(t, c.Dispatcher.CanDeletePost("alice", "i-am-post"))
	})

	t.Run("delete refused while techspecs exist", func(t *testing.T) {
		c.CreatePost("bob", "bob-techspec")
		require.NoError(t, c.Dispatcher.Apply(op.Techspec{
			Author: "bob", Permlink: "bob-techspec",
			WorkerProposalAuthor: "alice", WorkerProposalPermlink: "i-am-post",
			SpecificationCost: workerfund.NativeFromWhole(6),
			DevelopmentCost:   workerfund.NativeFromWhole(60),
			PaymentsCount:     2, PaymentsInterval: 86400,
		}))

		err := c.Dispatcher.Apply(op.ProposalDelete{Author: "alice", Permlink: "i-am-post"})
		assert.Equal(t, worker.ErrHasDependentTechspecs, errors.Cause(err))

		require.NoError(t, c.Dispatcher.Apply(op.TechspecDelete{Author: "bob", Permlink: "bob-techspec"}))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Dispatcher.Apply(op.ProposalDelete{Author: "alice", Permlink: "i-am-post"}))

		_, ok := c.Store.FindProposal(proposalPost)
		assert.False(t, ok)
		assert.True(t, c.Dispatcher.CanDeletePost("alice", "i-am-post"))
	})

	t.Run("recreate after delete restores identical state", func(t *testing.T) {
		before := c.Store.Digest()
		require.NoError(t, c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "i-am-post", Type: store.ProposalTask}))
		require.NoError(t, c.Dispatcher.Apply(op.ProposalDelete{Author: "alice", Permlink: "i-am-post"}))
		assert.Equal(t, before, c.Store.Digest())
	})
}

func TestProposalEditAfterApproval(t *testing.T) {
	c := approvedTechspecFixture(t)

	err := c.Dispatcher.Apply(op.Proposal{Author: "alice", Permlink: "alice-proposal", Type: store.ProposalPremadeWork})
	assert.Equal(t, worker.ErrCannotEditApprovedProposal, errors.Cause(err))
}
