// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fortest builds chain-host fixtures for package tests: a
// store seeded with posts, accounts and a witness schedule, plus a
// block clock driving the per-block tick.
package fortest

import (
	"fmt"

	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/worker"
	"github.com/chainworks/workerfund/workerfund"
)

// GenesisTime is the head time of the fixture's first block.
const GenesisTime uint64 = 1_600_000_000

// CashoutWindow is how long fixture posts stay in their cashout
// window.
const CashoutWindow uint64 = 7 * workerfund.DaySeconds

// Chain is an in-memory chain host around the worker subsystem.
type Chain struct {
	Store      *store.Store
	Dispatcher *worker.Dispatcher

	now uint64
}

// NewChain creates a fixture at genesis.
func NewChain(cfg worker.Config) *Chain {
	s := store.New()
	c := &Chain{
		Store:      s,
		Dispatcher: worker.New(s, cfg),
		now:        GenesisTime,
	}
	c.Dispatcher.Tick(c.now)
	return c
}

// HeadTime returns the current head block time.
func (c *Chain) HeadTime() uint64 {
	return c.now
}

// GenerateBlock advances the clock one block and runs the tick.
func (c *Chain) GenerateBlock() {
	c.now += workerfund.BlockInterval
	c.Dispatcher.Tick(c.now)
}

// GenerateBlocks advances n blocks.
func (c *Chain) GenerateBlocks(n int) {
	for range n {
		c.GenerateBlock()
	}
}

// FastForward jumps the clock by sec seconds in steps of at most a
// day, running the tick after each step so cashouts and sweeps fire
// in schedule order. Revenue accrues once per step, not once per
// block.
func (c *Chain) FastForward(sec uint64) {
	target := c.now + sec
	for c.now < target {
		step := workerfund.DaySeconds
		if remaining := target - c.now; remaining < step {
			step = remaining
		}
		c.now += step
		c.Dispatcher.Tick(c.now)
	}
}

// CreateAccount seeds an account with a zero balance.
func (c *Chain) CreateAccount(name workerfund.AccountName) {
	c.Store.AddAccount(store.Account{Name: name, Balance: workerfund.NewAsset(0)})
}

// CreatePost seeds a top-level post inside its cashout window.
func (c *Chain) CreatePost(author workerfund.AccountName, permlink string) store.Comment {
	comment := store.Comment{
		ID:          workerfund.MakePostID(author, permlink),
		Author:      author,
		Permlink:    permlink,
		CashoutTime: c.now + CashoutWindow,
		Created:     c.now,
	}
	c.Store.AddComment(comment)
	return comment
}

// CreateReply seeds a comment under a parent post.
func (c *Chain) CreateReply(author workerfund.AccountName, permlink string, parentAuthor workerfund.AccountName) store.Comment {
	comment := store.Comment{
		ID:           workerfund.MakePostID(author, permlink),
		Author:       author,
		Permlink:     permlink,
		ParentAuthor: parentAuthor,
		CashoutTime:  c.now + CashoutWindow,
		Created:      c.now,
	}
	c.Store.AddComment(comment)
	return comment
}

// CreateApprovers seeds count top-19 witnesses named approver<i>,
// starting at first, and returns their names.
func (c *Chain) CreateApprovers(first, count int) []workerfund.AccountName {
	names := make([]workerfund.AccountName, 0, count)
	for i := first; i < first+count; i++ {
		name := workerfund.AccountName(fmt.Sprintf("approver%d", i))
		c.CreateAccount(name)
		c.Store.AddWitness(store.Witness{Owner: name, Schedule: store.ScheduleTop19})
		names = append(names, name)
	}
	return names
}

// SetFund seeds the fund reserve and revenue rate.
func (c *Chain) SetFund(reserve, revenuePerDay workerfund.Asset) {
	c.Store.ModifyGlobal(func(g *store.GlobalProperties) {
		g.TotalWorkerFund = reserve
		g.WorkerRevenuePerDay = revenuePerDay
	})
}
