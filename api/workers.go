// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves read-only metadata views over the worker
// subsystem: proposals, techspecs, vote tallies and the fund
// counters. It never mutates state; writes enter the chain as
// operations only.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/worker"
	"github.com/chainworks/workerfund/workerfund"
)

// Workers is the worker metadata view set.
type Workers struct {
	d *worker.Dispatcher
}

// NewWorkers creates the view set over a dispatcher.
func NewWorkers(d *worker.Dispatcher) *Workers {
	return &Workers{d: d}
}

// Mount attaches the views under the path prefix.
func (ws *Workers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/fund").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(ws.handleGetFund))
	sub.Path("/proposals").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(ws.handleGetProposals))
	sub.Path("/proposals/{author}/{permlink}").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(ws.handleGetProposal))
	sub.Path("/techspecs/{author}/{permlink}").
		Methods(http.MethodGet).
		HandlerFunc(WrapHandlerFunc(ws.handleGetTechspec))
}

// JSONProposal is the wire view of a proposal.
type JSONProposal struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Post     string `json:"post"`
	Type     string `json:"type"`
	State    string `json:"state"`

	ApprovedTechspecPost string `json:"approvedTechspecPost,omitempty"`

	Techspecs []string `json:"techspecs,omitempty"`
}

// JSONTechspec is the wire view of a techspec.
type JSONTechspec struct {
	Post               string `json:"post"`
	WorkerProposalPost string `json:"workerProposalPost"`
	State              string `json:"state"`
	Worker             string `json:"worker,omitempty"`
	WorkerResultPost   string `json:"workerResultPost,omitempty"`

	SpecificationCost string `json:"specificationCost"`
	DevelopmentCost   string `json:"developmentCost"`
	PaymentsCount     uint16 `json:"paymentsCount"`
	PaymentsInterval  uint32 `json:"paymentsInterval"`

	NextCashoutTime       *uint64 `json:"nextCashoutTime,omitempty"`
	FinishedPaymentsCount uint16  `json:"finishedPaymentsCount"`

	Approves    uint32 `json:"approves"`
	Disapproves uint32 `json:"disapproves"`

	PaymentApproves    uint32 `json:"paymentApproves"`
	PaymentDisapproves uint32 `json:"paymentDisapproves"`
}

// JSONFund is the wire view of the fund counters.
type JSONFund struct {
	TotalWorkerFund         string `json:"totalWorkerFund"`
	WorkerRevenuePerDay     string `json:"workerRevenuePerDay"`
	WorkerConsumptionPerDay string `json:"workerConsumptionPerDay"`
	HeadBlockTime           uint64 `json:"headBlockTime"`
}

func (ws *Workers) handleGetFund(w http.ResponseWriter, _ *http.Request) error {
	g := ws.d.Store().Global()
	return WriteJSON(w, JSONFund{
		TotalWorkerFund:         g.TotalWorkerFund.String(),
		WorkerRevenuePerDay:     g.WorkerRevenuePerDay.String(),
		WorkerConsumptionPerDay: g.WorkerConsumptionPerDay.String(),
		HeadBlockTime:           g.HeadBlockTime,
	})
}

func (ws *Workers) handleGetProposals(w http.ResponseWriter, _ *http.Request) error {
	s := ws.d.Store()
	out := make([]JSONProposal, 0)
	for _, id := range s.Proposals() {
		p, ok := s.FindProposal(id)
		if !ok {
			continue
		}
		out = append(out, ws.jsonProposal(p))
	}
	return WriteJSON(w, out)
}

func (ws *Workers) handleGetProposal(w http.ResponseWriter, req *http.Request) error {
	post, err := postVar(req)
	if err != nil {
		return err
	}
	p, ok := ws.d.Store().FindProposal(post)
	if !ok {
		return NotFound(errors.New("no worker proposal on this post"))
	}
	return WriteJSON(w, ws.jsonProposal(p))
}

func (ws *Workers) handleGetTechspec(w http.ResponseWriter, req *http.Request) error {
	post, err := postVar(req)
	if err != nil {
		return err
	}
	t, ok := ws.d.Store().FindTechspec(post)
	if !ok {
		return NotFound(errors.New("no worker techspec on this post"))
	}

	view := JSONTechspec{
		Post:                  t.Post.String(),
		WorkerProposalPost:    t.WorkerProposalPost.String(),
		State:                 t.State.String(),
		Worker:                string(t.Worker),
		SpecificationCost:     t.SpecificationCost.String(),
		DevelopmentCost:       t.DevelopmentCost.String(),
		PaymentsCount:         t.PaymentsCount,
		PaymentsInterval:      t.PaymentsInterval,
		FinishedPaymentsCount: t.FinishedPaymentsCount,
	}
	if !t.WorkerResultPost.IsNone() {
		view.WorkerResultPost = t.WorkerResultPost.String()
	}
	if t.NextCashoutTime != workerfund.TimeNever {
		cashout := t.NextCashoutTime
		view.NextCashoutTime = &cashout
	}
	view.Approves, view.Disapproves = ws.d.TechspecTally(t.Post)
	view.PaymentApproves, view.PaymentDisapproves = ws.d.PaymentTally(t.Post)
	return WriteJSON(w, view)
}

func (ws *Workers) jsonProposal(p store.Proposal) JSONProposal {
	s := ws.d.Store()
	view := JSONProposal{
		Post:  p.Post.String(),
		Type:  p.Type.String(),
		State: p.State.String(),
	}
	if c, ok := s.GetCommentByID(p.Post); ok {
		view.Author = string(c.Author)
		view.Permlink = c.Permlink
	}
	if !p.ApprovedTechspecPost.IsNone() {
		view.ApprovedTechspecPost = p.ApprovedTechspecPost.String()
	}
	for _, id := range s.TechspecsOfProposal(p.Post) {
		view.Techspecs = append(view.Techspecs, id.String())
	}
	return view
}

func postVar(req *http.Request) (workerfund.PostID, error) {
	vars := mux.Vars(req)
	author := workerfund.AccountName(vars["author"])
	permlink := vars["permlink"]
	if err := author.Validate(); err != nil {
		return workerfund.NoPost, BadRequest(errors.WithMessage(err, "author"))
	}
	if err := workerfund.ValidatePermlink(permlink); err != nil {
		return workerfund.NoPost, BadRequest(errors.WithMessage(err, "permlink"))
	}
	return workerfund.MakePostID(author, permlink), nil
}
