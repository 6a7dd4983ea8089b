// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/chainworks/workerfund/workerfund"
)

// ProposalType distinguishes tasks from premade work.
type ProposalType uint8

const (
	ProposalTask ProposalType = iota
	ProposalPremadeWork

	proposalTypeCount
)

// IsValid reports whether the value is a defined type.
func (t ProposalType) IsValid() bool {
	return t < proposalTypeCount
}

func (t ProposalType) String() string {
	switch t {
	case ProposalTask:
		return "task"
	case ProposalPremadeWork:
		return "premade_work"
	}
	return "unknown"
}

// ProposalState is the lifecycle state of a proposal.
type ProposalState uint8

const (
	ProposalCreated ProposalState = iota
	ProposalTechspec
	ProposalPaymentComplete
	ProposalClosed
)

func (s ProposalState) String() string {
	switch s {
	case ProposalCreated:
		return "created"
	case ProposalTechspec:
		return "techspec"
	case ProposalPaymentComplete:
		return "payment_complete"
	case ProposalClosed:
		return "closed"
	}
	return "unknown"
}

// TechspecState is the lifecycle state of a techspec. The order is
// meaningful: states below TechspecPayment are pre-payment, states
// from TechspecClosed up are terminal.
type TechspecState uint8

const (
	TechspecCreated TechspecState = iota
	TechspecApproved
	TechspecWork
	TechspecWip
	TechspecComplete
	TechspecPayment
	TechspecPaymentComplete
	TechspecClosed
	TechspecClosedByAuthor
	TechspecClosedByWitnesses
	TechspecDisapprovedByWitnesses
)

// IsTerminal reports whether the state is one of the closed states.
func (s TechspecState) IsTerminal() bool {
	return s >= TechspecClosed
}

// IsActive reports whether the techspec occupies its proposal's
// approved slot.
func (s TechspecState) IsActive() bool {
	return s >= TechspecApproved && s < TechspecClosed
}

func (s TechspecState) String() string {
	switch s {
	case TechspecCreated:
		return "created"
	case TechspecApproved:
		return "approved"
	case TechspecWork:
		return "work"
	case TechspecWip:
		return "wip"
	case TechspecComplete:
		return "complete"
	case TechspecPayment:
		return "payment"
	case TechspecPaymentComplete:
		return "payment_complete"
	case TechspecClosed:
		return "closed"
	case TechspecClosedByAuthor:
		return "closed_by_author"
	case TechspecClosedByWitnesses:
		return "closed_by_witnesses"
	case TechspecDisapprovedByWitnesses:
		return "disapproved_by_witnesses"
	}
	return "unknown"
}

// VoteState is the stance of a witness vote.
type VoteState uint8

const (
	VoteApprove VoteState = iota
	VoteDisapprove
	VoteAbstain

	voteStateCount
)

// IsValid reports whether the value is a defined vote state.
func (s VoteState) IsValid() bool {
	return s < voteStateCount
}

func (s VoteState) String() string {
	switch s {
	case VoteApprove:
		return "approve"
	case VoteDisapprove:
		return "disapprove"
	case VoteAbstain:
		return "abstain"
	}
	return "unknown"
}

// WitnessSchedule is the rank tier of a witness in the current
// schedule round.
type WitnessSchedule uint8

const (
	ScheduleTop19 WitnessSchedule = iota
	ScheduleRunnerUp
	ScheduleNone
)

// Comment is the read-mostly projection of a post the subsystem
// consumes. The comment subsystem owns the full record; the host
// mirrors the fields listed here.
type Comment struct {
	ID           workerfund.PostID
	Author       workerfund.AccountName
	Permlink     string
	ParentAuthor workerfund.AccountName
	CashoutTime  uint64
	Created      uint64
	NetRshares   int64
}

// IsRootPost reports whether the comment is a top-level post.
func (c *Comment) IsRootPost() bool {
	return c.ParentAuthor.IsEmpty()
}

// Account is the balance-bearing projection of an account.
type Account struct {
	Name    workerfund.AccountName
	Balance workerfund.Asset
}

// Witness is the schedule projection of a witness.
type Witness struct {
	Owner    workerfund.AccountName
	Schedule WitnessSchedule
}

// Proposal is a community request for work anchored in a post.
type Proposal struct {
	Post                 workerfund.PostID
	Type                 ProposalType
	State                ProposalState
	ApprovedTechspecPost workerfund.PostID
}

// Techspec is a bid for a proposal: scope, cost and payment schedule.
type Techspec struct {
	Post               workerfund.PostID
	WorkerProposalPost workerfund.PostID
	State              TechspecState

	Worker           workerfund.AccountName
	WorkerResultPost workerfund.PostID

	SpecificationCost workerfund.Asset
	DevelopmentCost   workerfund.Asset
	PaymentsCount     uint16
	PaymentsInterval  uint32

	Created               uint64
	NextCashoutTime       uint64
	FinishedPaymentsCount uint16

	// CountedConsumption is the per-day amount this techspec holds in
	// the global consumption counter, zero while it holds none. Set
	// when funding is granted, cleared when the claim is released.
	CountedConsumption workerfund.Asset
}

// VoteKey is the primary key of both vote collections.
type VoteKey struct {
	Post     workerfund.PostID
	Approver workerfund.AccountName
}

// ApproveVote records a witness stance on techspec approval.
type ApproveVote struct {
	Post     workerfund.PostID
	Approver workerfund.AccountName
	State    VoteState
}

// PaymentVote records a witness stance on payment approval.
type PaymentVote struct {
	Post     workerfund.PostID
	Approver workerfund.AccountName
	State    VoteState
}

// GlobalProperties is the shared economic record of the worker fund.
type GlobalProperties struct {
	TotalWorkerFund         workerfund.Asset
	WorkerRevenuePerDay     workerfund.Asset
	WorkerConsumptionPerDay workerfund.Asset
	HeadBlockTime           uint64
}
