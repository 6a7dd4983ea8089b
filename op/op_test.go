// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package op_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chainworks/workerfund/op"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/workerfund"
)

func validTechspec() op.Techspec {
	return op.Techspec{
		Author: "bob", Permlink: "techspec-permlink",
		WorkerProposalAuthor: "alice", WorkerProposalPermlink: "proposal-permlink",
		SpecificationCost: workerfund.NativeFromWhole(6000),
		DevelopmentCost:   workerfund.NativeFromWhole(60000),
		PaymentsCount:     2,
		PaymentsInterval:  86400,
	}
}

func TestTechspecValidate(t *testing.T) {
	assert.NoError(t, validTechspec().Validate())

	tests := []struct {
		name   string
		mutate func(*op.Techspec)
	}{
		{"empty author", func(o *op.Techspec) { o.Author = "" }},
		{"long permlink", func(o *op.Techspec) { o.Permlink = strings.Repeat(" ", workerfund.MaxPermlinkLength+1) }},
		{"empty proposal author", func(o *op.Techspec) { o.WorkerProposalAuthor = "" }},
		{"long proposal permlink", func(o *op.Techspec) { o.WorkerProposalPermlink = strings.Repeat(" ", workerfund.MaxPermlinkLength+1) }},
		{"non-native specification cost", func(o *op.Techspec) { o.SpecificationCost.Symbol = workerfund.DebtSymbol }},
		{"non-native development cost", func(o *op.Techspec) { o.DevelopmentCost.Symbol = workerfund.DebtSymbol }},
		{"negative specification cost", func(o *op.Techspec) { o.SpecificationCost = workerfund.NewAsset(-1) }},
		{"negative development cost", func(o *op.Techspec) { o.DevelopmentCost = workerfund.NewAsset(-1) }},
		{"zero payments count", func(o *op.Techspec) { o.PaymentsCount = 0 }},
		{"interval below a day", func(o *op.Techspec) { o.PaymentsInterval = 86400 - 1 }},
		{"single payment with long interval", func(o *op.Techspec) { o.PaymentsCount = 1; o.PaymentsInterval = 86400 + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validTechspec()
			tt.mutate(&o)
			assert.Error(t, o.Validate())
		})
	}

	t.Run("single payment with one day interval", func(t *testing.T) {
		o := validTechspec()
		o.PaymentsCount = 1
		o.PaymentsInterval = 86400
		assert.NoError(t, o.Validate())
	})
}

func TestVoteOperationsValidate(t *testing.T) {
	approve := op.TechspecApprove{
		Approver: "cyberfounder",
		Author:   "bob", Permlink: "bob-techspec",
		State: store.VoteApprove,
	}
	assert.NoError(t, approve.Validate())

	approve.State = store.VoteState(200)
	assert.Error(t, approve.Validate())

	payment := op.PaymentApprove{
		Approver:             "cyberfounder",
		WorkerTechspecAuthor: "bob", WorkerTechspecPermlink: "bob-techspec",
		State: store.VoteApprove,
	}
	assert.NoError(t, payment.Validate())

	payment.Approver = ""
	assert.Error(t, payment.Validate())
}

func TestProposalValidate(t *testing.T) {
	o := op.Proposal{Author: "alice", Permlink: "test", Type: store.ProposalPremadeWork}
	assert.NoError(t, o.Validate())

	o.Type = store.ProposalType(7)
	assert.Error(t, o.Validate())
}

func TestAssignValidate(t *testing.T) {
	o := op.Assign{
		Assigner:             "bob",
		WorkerTechspecAuthor: "bob", WorkerTechspecPermlink: "bob-techspec",
		Worker: "alice",
	}
	assert.NoError(t, o.Validate())

	// only the techspec author assigns
	o.Assigner = "carol"
	assert.Error(t, o.Validate())

	// empty worker means unassign and stays valid for non-authors;
	// the evaluator authorizes against state
	o.Worker = ""
	assert.NoError(t, o.Validate())

	o.Assigner = ""
	assert.Error(t, o.Validate())
}

func TestPostingAuthority(t *testing.T) {
	assert.Equal(t, workerfund.AccountName("alice"), op.Proposal{Author: "alice"}.PostingAuthority())
	assert.Equal(t, workerfund.AccountName("bob"), op.TechspecDelete{Author: "bob"}.PostingAuthority())
	assert.Equal(t, workerfund.AccountName("w"), op.TechspecApprove{Approver: "w"}.PostingAuthority())
	assert.Equal(t, workerfund.AccountName("w"), op.PaymentApprove{Approver: "w"}.PostingAuthority())
	assert.Equal(t, workerfund.AccountName("bob"), op.Assign{Assigner: "bob"}.PostingAuthority())
}
