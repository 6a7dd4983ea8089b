// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package worker

import "github.com/pkg/errors"

// Evaluator failures are typed and categorical. Each failure is fatal
// to its single operation: the dispatcher rolls the store back to the
// pre-operation snapshot and surfaces the reason to the host. The one
// exception is ErrInsufficientFunds, which keeps the recorded vote
// (see IsErrInsufficientFunds). Checks
// with errors.Cause / errors.Is see the sentinels below through any
// wrapping applied along the way.
var (
	// missing entities
	ErrMissingComment  = errors.New("comment not found")
	ErrMissingProposal = errors.New("worker proposal not found")
	ErrMissingTechspec = errors.New("worker techspec not found")
	ErrMissingResult   = errors.New("worker result not found")
	ErrMissingWitness  = errors.New("witness not found")
	ErrMissingAccount  = errors.New("account not found")

	// logic violations
	ErrNotOnPost                  = errors.New("allowed only on a top-level post")
	ErrOutsideCashoutWindow       = errors.New("post is outside its cashout window")
	ErrCannotEditApprovedProposal = errors.New("cannot edit proposal with approved techspec")
	ErrHasDependentTechspecs      = errors.New("cannot delete proposal with techspecs")
	ErrProposalAlreadyApproved    = errors.New("proposal already has approved techspec")
	ErrProposalHasApprovedResult  = errors.New("proposal already has approved result")
	ErrTechspecOfAnotherProposal  = errors.New("techspec is already used for another proposal")
	ErrTechspecForPremade         = errors.New("cannot create techspec for premade work proposal")
	ErrNotPremadeProposal         = errors.New("premade result requires a premade work proposal")
	ErrResultForPremade           = errors.New("premade work proposal accepts only premade results")
	ErrVoteUnchanged              = errors.New("vote already cast with this state")
	ErrNoVoteToWithdraw           = errors.New("no vote to withdraw")
	ErrApproverNotTop19           = errors.New("approver is not in top-19 of witnesses")
	ErrInsufficientFunds          = errors.New("insufficient funds to approve techspec")
	ErrApproveTermExpired         = errors.New("approve term has expired")
	ErrWrongStateForOperation     = errors.New("wrong state for operation")
	ErrCannotDeletePayingTechspec = errors.New("cannot delete paying techspec")
	ErrCannotApproveYet           = errors.New("techspec cannot be approved when paying or not finished")
	ErrCannotAssignToPremade      = errors.New("worker cannot be assigned to premade work proposal")
	ErrCannotUnassignFromNonWork  = errors.New("cannot unassign worker from finished or not started work")
	ErrUnauthorizedUnassign       = errors.New("worker can be unassigned only by techspec author or himself")
	ErrPostIsTechspec             = errors.New("post already used as techspec")
	ErrPostIsResult               = errors.New("post already used as result")
)

// IsErrInsufficientFunds reports whether the failure was the solvency
// veto. The dispatcher keeps the recorded vote on this failure; every
// other failure rolls back.
func IsErrInsufficientFunds(err error) bool {
	return errors.Cause(err) == ErrInsufficientFunds
}
