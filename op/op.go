// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package op defines the worker operation catalog. Operations form a
// closed tagged set: every payload implements Operation through an
// unexported marker, so evaluator dispatch over Kind is exhaustive.
// Validate is stateless and runs before any state lookup; signature
// checking against PostingAuthority happens upstream in the host.
package op

import (
	"github.com/pkg/errors"

	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/workerfund"
)

// Kind tags an operation payload.
type Kind uint8

const (
	KindProposal Kind = iota
	KindProposalDelete
	KindTechspec
	KindTechspecDelete
	KindTechspecApprove
	KindAssign
	KindResult
	KindResultPremade
	KindResultDelete
	KindPaymentApprove
)

func (k Kind) String() string {
	switch k {
	case KindProposal:
		return "proposal"
	case KindProposalDelete:
		return "proposal_delete"
	case KindTechspec:
		return "techspec"
	case KindTechspecDelete:
		return "techspec_delete"
	case KindTechspecApprove:
		return "techspec_approve"
	case KindAssign:
		return "assign"
	case KindResult:
		return "result"
	case KindResultPremade:
		return "result_premade"
	case KindResultDelete:
		return "result_delete"
	case KindPaymentApprove:
		return "payment_approve"
	}
	return "unknown"
}

// Operation is a semantic payload of the worker catalog.
type Operation interface {
	Kind() Kind
	Validate() error
	// PostingAuthority names the account whose posting authority the
	// operation requires.
	PostingAuthority() workerfund.AccountName

	isOperation()
}

// Proposal creates or retypes a worker proposal on the author's post.
type Proposal struct {
	Author   workerfund.AccountName
	Permlink string
	Type     store.ProposalType
}

func (Proposal) Kind() Kind   { return KindProposal }
func (Proposal) isOperation() {}

func (o Proposal) PostingAuthority() workerfund.AccountName { return o.Author }

func (o Proposal) Validate() error {
	if err := validateAuthorPermlink(o.Author, o.Permlink); err != nil {
		return err
	}
	if !o.Type.IsValid() {
		return errors.New("invalid proposal type")
	}
	return nil
}

// ProposalDelete removes a proposal with no dependent techspecs.
type ProposalDelete struct {
	Author   workerfund.AccountName
	Permlink string
}

func (ProposalDelete) Kind() Kind   { return KindProposalDelete }
func (ProposalDelete) isOperation() {}

func (o ProposalDelete) PostingAuthority() workerfund.AccountName { return o.Author }

func (o ProposalDelete) Validate() error {
	return validateAuthorPermlink(o.Author, o.Permlink)
}

// Techspec creates or re-costs a techspec bound to a proposal.
type Techspec struct {
	Author                 workerfund.AccountName
	Permlink               string
	WorkerProposalAuthor   workerfund.AccountName
	WorkerProposalPermlink string

	SpecificationCost workerfund.Asset
	DevelopmentCost   workerfund.Asset
	PaymentsCount     uint16
	PaymentsInterval  uint32
}

func (Techspec) Kind() Kind   { return KindTechspec }
func (Techspec) isOperation() {}

func (o Techspec) PostingAuthority() workerfund.AccountName { return o.Author }

func (o Techspec) Validate() error {
	if err := validateAuthorPermlink(o.Author, o.Permlink); err != nil {
		return err
	}
	if err := validateAuthorPermlink(o.WorkerProposalAuthor, o.WorkerProposalPermlink); err != nil {
		return err
	}
	return validateCostSchedule(o.SpecificationCost, o.DevelopmentCost, o.PaymentsCount, o.PaymentsInterval)
}

// TechspecDelete withdraws the author's techspec.
type TechspecDelete struct {
	Author   workerfund.AccountName
	Permlink string
}

func (TechspecDelete) Kind() Kind   { return KindTechspecDelete }
func (TechspecDelete) isOperation() {}

func (o TechspecDelete) PostingAuthority() workerfund.AccountName { return o.Author }

func (o TechspecDelete) Validate() error {
	return validateAuthorPermlink(o.Author, o.Permlink)
}

// TechspecApprove casts, changes or withdraws a witness vote on a
// techspec.
type TechspecApprove struct {
	Approver workerfund.AccountName
	Author   workerfund.AccountName
	Permlink string
	State    store.VoteState
}

func (TechspecApprove) Kind() Kind   { return KindTechspecApprove }
func (TechspecApprove) isOperation() {}

func (o TechspecApprove) PostingAuthority() workerfund.AccountName { return o.Approver }

func (o TechspecApprove) Validate() error {
	if err := o.Approver.Validate(); err != nil {
		return err
	}
	if err := validateAuthorPermlink(o.Author, o.Permlink); err != nil {
		return err
	}
	if !o.State.IsValid() {
		return errors.New("invalid vote state")
	}
	return nil
}

// Assign sets or clears the worker of an approved techspec.
type Assign struct {
	Assigner               workerfund.AccountName
	WorkerTechspecAuthor   workerfund.AccountName
	WorkerTechspecPermlink string
	// Worker is empty to unassign.
	Worker workerfund.AccountName
}

func (Assign) Kind() Kind   { return KindAssign }
func (Assign) isOperation() {}

func (o Assign) PostingAuthority() workerfund.AccountName { return o.Assigner }

func (o Assign) Validate() error {
	if err := o.Assigner.Validate(); err != nil {
		return err
	}
	if err := validateAuthorPermlink(o.WorkerTechspecAuthor, o.WorkerTechspecPermlink); err != nil {
		return err
	}
	// Assigning is the techspec author's call. Unassigning stays open
	// here: the worker may unassign himself, which the evaluator
	// authorizes against state.
	if !o.Worker.IsEmpty() {
		if o.Assigner != o.WorkerTechspecAuthor {
			return errors.New("worker can be assigned only by techspec author")
		}
		return o.Worker.Validate()
	}
	return nil
}

// Result publishes the worker's result post for a techspec in work.
type Result struct {
	Author                 workerfund.AccountName
	Permlink               string
	WorkerTechspecPermlink string
}

func (Result) Kind() Kind   { return KindResult }
func (Result) isOperation() {}

func (o Result) PostingAuthority() workerfund.AccountName { return o.Author }

func (o Result) Validate() error {
	if err := validateAuthorPermlink(o.Author, o.Permlink); err != nil {
		return err
	}
	return workerfund.ValidatePermlink(o.WorkerTechspecPermlink)
}

// ResultPremade publishes a finished result against a premade-work
// proposal, creating its techspec in one step.
type ResultPremade struct {
	Author                 workerfund.AccountName
	Permlink               string
	WorkerProposalAuthor   workerfund.AccountName
	WorkerProposalPermlink string

	SpecificationCost workerfund.Asset
	DevelopmentCost   workerfund.Asset
	PaymentsCount     uint16
	PaymentsInterval  uint32
}

func (ResultPremade) Kind() Kind   { return KindResultPremade }
func (ResultPremade) isOperation() {}

func (o ResultPremade) PostingAuthority() workerfund.AccountName { return o.Author }

func (o ResultPremade) Validate() error {
	if err := validateAuthorPermlink(o.Author, o.Permlink); err != nil {
		return err
	}
	if err := validateAuthorPermlink(o.WorkerProposalAuthor, o.WorkerProposalPermlink); err != nil {
		return err
	}
	return validateCostSchedule(o.SpecificationCost, o.DevelopmentCost, o.PaymentsCount, o.PaymentsInterval)
}

// ResultDelete withdraws a published result.
type ResultDelete struct {
	Author   workerfund.AccountName
	Permlink string
}

func (ResultDelete) Kind() Kind   { return KindResultDelete }
func (ResultDelete) isOperation() {}

func (o ResultDelete) PostingAuthority() workerfund.AccountName { return o.Author }

func (o ResultDelete) Validate() error {
	return validateAuthorPermlink(o.Author, o.Permlink)
}

// PaymentApprove casts, changes or withdraws a witness vote on paying
// out a techspec.
type PaymentApprove struct {
	Approver               workerfund.AccountName
	WorkerTechspecAuthor   workerfund.AccountName
	WorkerTechspecPermlink string
	State                  store.VoteState
}

func (PaymentApprove) Kind() Kind   { return KindPaymentApprove }
func (PaymentApprove) isOperation() {}

func (o PaymentApprove) PostingAuthority() workerfund.AccountName { return o.Approver }

func (o PaymentApprove) Validate() error {
	if err := o.Approver.Validate(); err != nil {
		return err
	}
	if err := validateAuthorPermlink(o.WorkerTechspecAuthor, o.WorkerTechspecPermlink); err != nil {
		return err
	}
	if !o.State.IsValid() {
		return errors.New("invalid vote state")
	}
	return nil
}

func validateAuthorPermlink(author workerfund.AccountName, permlink string) error {
	if err := author.Validate(); err != nil {
		return err
	}
	return workerfund.ValidatePermlink(permlink)
}

func validateCostSchedule(spec, dev workerfund.Asset, count uint16, interval uint32) error {
	if !spec.IsNative() || !dev.IsNative() {
		return errors.Errorf("costs must be in %s", workerfund.NativeSymbol)
	}
	if spec.IsNegative() || dev.IsNegative() {
		return errors.New("costs cannot be negative")
	}
	if count < 1 {
		return errors.New("payments count must be at least 1")
	}
	if interval < workerfund.MinPaymentsInterval {
		return errors.New("payments interval cannot be less than a day")
	}
	if count == 1 && interval != workerfund.MinPaymentsInterval {
		return errors.New("single payment requires a one day interval")
	}
	return nil
}
