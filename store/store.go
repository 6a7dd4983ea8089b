// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"bytes"
	"sort"

	"github.com/chainworks/workerfund/workerfund"
)

// Store is the in-memory entity store of the worker subsystem. It
// owns every record exclusively: lookups hand out copies and all
// mutation goes through the scoped modify primitives, which record
// preimages for snapshot/revert. The host opens a checkpoint per
// operation and per block so a failed operation or an abandoned fork
// leaves no partial state.
type Store struct {
	comments  map[workerfund.PostID]*Comment
	accounts  map[workerfund.AccountName]*Account
	witnesses map[workerfund.AccountName]*Witness

	proposals map[workerfund.PostID]*Proposal
	techspecs map[workerfund.PostID]*Techspec

	approveVotes map[VoteKey]*ApproveVote
	paymentVotes map[VoteKey]*PaymentVote

	// secondary indexes, maintained on every write
	techspecsByProposal map[workerfund.PostID]map[workerfund.PostID]struct{}
	techspecByResult    map[workerfund.PostID]workerfund.PostID
	payingTechspecs     map[workerfund.PostID]struct{}
	approveVotesByPost  map[workerfund.PostID]map[workerfund.AccountName]struct{}
	paymentVotesByPost  map[workerfund.PostID]map[workerfund.AccountName]struct{}

	global *GlobalProperties

	journal journal
}

// New creates an empty store.
func New() *Store {
	return &Store{
		comments:            make(map[workerfund.PostID]*Comment),
		accounts:            make(map[workerfund.AccountName]*Account),
		witnesses:           make(map[workerfund.AccountName]*Witness),
		proposals:           make(map[workerfund.PostID]*Proposal),
		techspecs:           make(map[workerfund.PostID]*Techspec),
		approveVotes:        make(map[VoteKey]*ApproveVote),
		paymentVotes:        make(map[VoteKey]*PaymentVote),
		techspecsByProposal: make(map[workerfund.PostID]map[workerfund.PostID]struct{}),
		techspecByResult:    make(map[workerfund.PostID]workerfund.PostID),
		payingTechspecs:     make(map[workerfund.PostID]struct{}),
		approveVotesByPost:  make(map[workerfund.PostID]map[workerfund.AccountName]struct{}),
		paymentVotesByPost:  make(map[workerfund.PostID]map[workerfund.AccountName]struct{}),
		global: &GlobalProperties{
			TotalWorkerFund:         workerfund.NewAsset(0),
			WorkerRevenuePerDay:     workerfund.NewAsset(0),
			WorkerConsumptionPerDay: workerfund.NewAsset(0),
		},
	}
}

// Snapshot opens a checkpoint and returns its handle.
func (s *Store) Snapshot() int {
	return s.journal.push()
}

// RevertTo restores every record mutated since the checkpoint and
// closes it together with any checkpoint above it.
func (s *Store) RevertTo(depth int) {
	s.journal.popTo(depth, s.restore)
}

// Commit folds the topmost checkpoint into the one below, keeping
// the mutations while the outer checkpoint stays revertable.
func (s *Store) Commit() {
	if s.journal.depth() > 0 {
		s.journal.squash()
	}
}

func (s *Store) restore(tbl table, key any, pre any) {
	switch tbl {
	case tableComments:
		s.putComment(key.(workerfund.PostID), pre)
	case tableAccounts:
		if pre == nil {
			delete(s.accounts, key.(workerfund.AccountName))
		} else {
			v := pre.(Account)
			s.accounts[key.(workerfund.AccountName)] = &v
		}
	case tableWitnesses:
		if pre == nil {
			delete(s.witnesses, key.(workerfund.AccountName))
		} else {
			v := pre.(Witness)
			s.witnesses[key.(workerfund.AccountName)] = &v
		}
	case tableProposals:
		if pre == nil {
			delete(s.proposals, key.(workerfund.PostID))
		} else {
			v := pre.(Proposal)
			s.proposals[key.(workerfund.PostID)] = &v
		}
	case tableTechspecs:
		id := key.(workerfund.PostID)
		if pre == nil {
			s.setTechspec(id, nil)
		} else {
			v := pre.(Techspec)
			s.setTechspec(id, &v)
		}
	case tableApproveVotes:
		k := key.(VoteKey)
		if pre == nil {
			s.setApproveVote(k, nil)
		} else {
			v := pre.(ApproveVote)
			s.setApproveVote(k, &v)
		}
	case tablePaymentVotes:
		k := key.(VoteKey)
		if pre == nil {
			s.setPaymentVote(k, nil)
		} else {
			v := pre.(PaymentVote)
			s.setPaymentVote(k, &v)
		}
	case tableGlobal:
		v := pre.(GlobalProperties)
		s.global = &v
	}
}

func (s *Store) putComment(id workerfund.PostID, pre any) {
	if pre == nil {
		delete(s.comments, id)
		return
	}
	v := pre.(Comment)
	s.comments[id] = &v
}

// setTechspec installs (or removes, when t is nil) a techspec and
// reconciles the secondary indexes against the previous record.
func (s *Store) setTechspec(id workerfund.PostID, t *Techspec) {
	if old, ok := s.techspecs[id]; ok {
		if set, ok := s.techspecsByProposal[old.WorkerProposalPost]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(s.techspecsByProposal, old.WorkerProposalPost)
			}
		}
		if !old.WorkerResultPost.IsNone() {
			delete(s.techspecByResult, old.WorkerResultPost)
		}
		delete(s.payingTechspecs, id)
	}
	if t == nil {
		delete(s.techspecs, id)
		return
	}
	s.techspecs[id] = t
	set, ok := s.techspecsByProposal[t.WorkerProposalPost]
	if !ok {
		set = make(map[workerfund.PostID]struct{})
		s.techspecsByProposal[t.WorkerProposalPost] = set
	}
	set[id] = struct{}{}
	if !t.WorkerResultPost.IsNone() {
		s.techspecByResult[t.WorkerResultPost] = id
	}
	if t.NextCashoutTime != workerfund.TimeNever {
		s.payingTechspecs[id] = struct{}{}
	}
}

func (s *Store) setApproveVote(k VoteKey, v *ApproveVote) {
	if _, ok := s.approveVotes[k]; ok {
		if set, ok := s.approveVotesByPost[k.Post]; ok {
			delete(set, k.Approver)
			if len(set) == 0 {
				delete(s.approveVotesByPost, k.Post)
			}
		}
	}
	if v == nil {
		delete(s.approveVotes, k)
		return
	}
	s.approveVotes[k] = v
	set, ok := s.approveVotesByPost[k.Post]
	if !ok {
		set = make(map[workerfund.AccountName]struct{})
		s.approveVotesByPost[k.Post] = set
	}
	set[k.Approver] = struct{}{}
}

func (s *Store) setPaymentVote(k VoteKey, v *PaymentVote) {
	if _, ok := s.paymentVotes[k]; ok {
		if set, ok := s.paymentVotesByPost[k.Post]; ok {
			delete(set, k.Approver)
			if len(set) == 0 {
				delete(s.paymentVotesByPost, k.Post)
			}
		}
	}
	if v == nil {
		delete(s.paymentVotes, k)
		return
	}
	s.paymentVotes[k] = v
	set, ok := s.paymentVotesByPost[k.Post]
	if !ok {
		set = make(map[workerfund.AccountName]struct{})
		s.paymentVotesByPost[k.Post] = set
	}
	set[k.Approver] = struct{}{}
}

// --- comments ---

// AddComment mirrors a post from the comment subsystem.
func (s *Store) AddComment(c Comment) {
	s.journal.note(tableComments, c.ID, s.commentPre(c.ID))
	v := c
	s.comments[c.ID] = &v
}

// RemoveComment drops a mirrored post.
func (s *Store) RemoveComment(id workerfund.PostID) {
	s.journal.note(tableComments, id, s.commentPre(id))
	delete(s.comments, id)
}

func (s *Store) commentPre(id workerfund.PostID) any {
	if old, ok := s.comments[id]; ok {
		return *old
	}
	return nil
}

// GetComment resolves a post by author and permlink.
func (s *Store) GetComment(author workerfund.AccountName, permlink string) (Comment, bool) {
	return s.GetCommentByID(workerfund.MakePostID(author, permlink))
}

// GetCommentByID resolves a post by id.
func (s *Store) GetCommentByID(id workerfund.PostID) (Comment, bool) {
	if c, ok := s.comments[id]; ok {
		return *c, true
	}
	return Comment{}, false
}

// --- accounts ---

// AddAccount mirrors an account.
func (s *Store) AddAccount(a Account) {
	if old, ok := s.accounts[a.Name]; ok {
		s.journal.note(tableAccounts, a.Name, *old)
	} else {
		s.journal.note(tableAccounts, a.Name, nil)
	}
	v := a
	s.accounts[a.Name] = &v
}

// GetAccount resolves an account by name.
func (s *Store) GetAccount(name workerfund.AccountName) (Account, bool) {
	if a, ok := s.accounts[name]; ok {
		return *a, true
	}
	return Account{}, false
}

// ModifyAccount runs fn over the account record.
func (s *Store) ModifyAccount(name workerfund.AccountName, fn func(*Account)) bool {
	a, ok := s.accounts[name]
	if !ok {
		return false
	}
	s.journal.note(tableAccounts, name, *a)
	fn(a)
	return true
}

// --- witnesses ---

// AddWitness mirrors a witness with its schedule rank.
func (s *Store) AddWitness(w Witness) {
	if old, ok := s.witnesses[w.Owner]; ok {
		s.journal.note(tableWitnesses, w.Owner, *old)
	} else {
		s.journal.note(tableWitnesses, w.Owner, nil)
	}
	v := w
	s.witnesses[w.Owner] = &v
}

// GetWitness resolves a witness by owner name.
func (s *Store) GetWitness(name workerfund.AccountName) (Witness, bool) {
	if w, ok := s.witnesses[name]; ok {
		return *w, true
	}
	return Witness{}, false
}

// SetWitnessSchedule updates the rank of an existing witness.
func (s *Store) SetWitnessSchedule(name workerfund.AccountName, sched WitnessSchedule) bool {
	w, ok := s.witnesses[name]
	if !ok {
		return false
	}
	s.journal.note(tableWitnesses, name, *w)
	w.Schedule = sched
	return true
}

// --- proposals ---

// CreateProposal inserts a new proposal record.
func (s *Store) CreateProposal(p Proposal) {
	s.journal.note(tableProposals, p.Post, nil)
	v := p
	s.proposals[p.Post] = &v
}

// FindProposal resolves a proposal by its post id.
func (s *Store) FindProposal(post workerfund.PostID) (Proposal, bool) {
	if p, ok := s.proposals[post]; ok {
		return *p, true
	}
	return Proposal{}, false
}

// ModifyProposal runs fn over the proposal record.
func (s *Store) ModifyProposal(post workerfund.PostID, fn func(*Proposal)) bool {
	p, ok := s.proposals[post]
	if !ok {
		return false
	}
	s.journal.note(tableProposals, post, *p)
	fn(p)
	return true
}

// RemoveProposal drops a proposal record.
func (s *Store) RemoveProposal(post workerfund.PostID) {
	p, ok := s.proposals[post]
	if !ok {
		return
	}
	s.journal.note(tableProposals, post, *p)
	delete(s.proposals, post)
}

// Proposals lists all proposal post ids in byte order.
func (s *Store) Proposals() []workerfund.PostID {
	return sortedPostIDs(s.proposals)
}

// --- techspecs ---

// CreateTechspec inserts a new techspec record.
func (s *Store) CreateTechspec(t Techspec) {
	s.journal.note(tableTechspecs, t.Post, nil)
	v := t
	s.setTechspec(t.Post, &v)
}

// FindTechspec resolves a techspec by its post id.
func (s *Store) FindTechspec(post workerfund.PostID) (Techspec, bool) {
	if t, ok := s.techspecs[post]; ok {
		return *t, true
	}
	return Techspec{}, false
}

// FindTechspecByResult resolves the techspec a result post belongs to.
func (s *Store) FindTechspecByResult(resultPost workerfund.PostID) (Techspec, bool) {
	id, ok := s.techspecByResult[resultPost]
	if !ok {
		return Techspec{}, false
	}
	return s.FindTechspec(id)
}

// ModifyTechspec runs fn over the techspec record and reconciles the
// secondary indexes.
func (s *Store) ModifyTechspec(post workerfund.PostID, fn func(*Techspec)) bool {
	t, ok := s.techspecs[post]
	if !ok {
		return false
	}
	s.journal.note(tableTechspecs, post, *t)
	v := *t
	fn(&v)
	s.setTechspec(post, &v)
	return true
}

// RemoveTechspec drops a techspec record.
func (s *Store) RemoveTechspec(post workerfund.PostID) {
	t, ok := s.techspecs[post]
	if !ok {
		return
	}
	s.journal.note(tableTechspecs, post, *t)
	s.setTechspec(post, nil)
}

// TechspecsOfProposal lists techspec post ids bound to the proposal,
// in byte order.
func (s *Store) TechspecsOfProposal(proposalPost workerfund.PostID) []workerfund.PostID {
	set, ok := s.techspecsByProposal[proposalPost]
	if !ok {
		return nil
	}
	ids := make([]workerfund.PostID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sortPostIDs(ids)
	return ids
}

// PayingTechspecs lists techspecs with a scheduled cashout, ordered
// by (next_cashout_time, post id) so the payout tick disburses in a
// replica-stable order.
func (s *Store) PayingTechspecs() []workerfund.PostID {
	ids := make([]workerfund.PostID, 0, len(s.payingTechspecs))
	for id := range s.payingTechspecs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.techspecs[ids[i]], s.techspecs[ids[j]]
		if a.NextCashoutTime != b.NextCashoutTime {
			return a.NextCashoutTime < b.NextCashoutTime
		}
		return bytes.Compare(ids[i].Bytes(), ids[j].Bytes()) < 0
	})
	return ids
}

// Techspecs lists all techspec post ids in byte order.
func (s *Store) Techspecs() []workerfund.PostID {
	return sortedPostIDs(s.techspecs)
}

// --- approve votes ---

// FindApproveVote resolves a techspec-approval vote.
func (s *Store) FindApproveVote(k VoteKey) (ApproveVote, bool) {
	if v, ok := s.approveVotes[k]; ok {
		return *v, true
	}
	return ApproveVote{}, false
}

// PutApproveVote creates or updates a techspec-approval vote.
func (s *Store) PutApproveVote(v ApproveVote) {
	k := VoteKey{v.Post, v.Approver}
	if old, ok := s.approveVotes[k]; ok {
		s.journal.note(tableApproveVotes, k, *old)
	} else {
		s.journal.note(tableApproveVotes, k, nil)
	}
	vv := v
	s.setApproveVote(k, &vv)
}

// RemoveApproveVote drops a techspec-approval vote.
func (s *Store) RemoveApproveVote(k VoteKey) {
	old, ok := s.approveVotes[k]
	if !ok {
		return
	}
	s.journal.note(tableApproveVotes, k, *old)
	s.setApproveVote(k, nil)
}

// ApproveVotesOfPost lists approval votes of a techspec ordered by
// approver name.
func (s *Store) ApproveVotesOfPost(post workerfund.PostID) []ApproveVote {
	set, ok := s.approveVotesByPost[post]
	if !ok {
		return nil
	}
	names := sortedNames(set)
	votes := make([]ApproveVote, 0, len(names))
	for _, n := range names {
		votes = append(votes, *s.approveVotes[VoteKey{post, n}])
	}
	return votes
}

// ClearApproveVotes removes every approval vote of a techspec.
func (s *Store) ClearApproveVotes(post workerfund.PostID) {
	for _, v := range s.ApproveVotesOfPost(post) {
		s.RemoveApproveVote(VoteKey{v.Post, v.Approver})
	}
}

// --- payment votes ---

// FindPaymentVote resolves a payment-approval vote.
func (s *Store) FindPaymentVote(k VoteKey) (PaymentVote, bool) {
	if v, ok := s.paymentVotes[k]; ok {
		return *v, true
	}
	return PaymentVote{}, false
}

// PutPaymentVote creates or updates a payment-approval vote.
func (s *Store) PutPaymentVote(v PaymentVote) {
	k := VoteKey{v.Post, v.Approver}
	if old, ok := s.paymentVotes[k]; ok {
		s.journal.note(tablePaymentVotes, k, *old)
	} else {
		s.journal.note(tablePaymentVotes, k, nil)
	}
	vv := v
	s.setPaymentVote(k, &vv)
}

// RemovePaymentVote drops a payment-approval vote.
func (s *Store) RemovePaymentVote(k VoteKey) {
	old, ok := s.paymentVotes[k]
	if !ok {
		return
	}
	s.journal.note(tablePaymentVotes, k, *old)
	s.setPaymentVote(k, nil)
}

// PaymentVotesOfPost lists payment votes of a techspec ordered by
// approver name.
func (s *Store) PaymentVotesOfPost(post workerfund.PostID) []PaymentVote {
	set, ok := s.paymentVotesByPost[post]
	if !ok {
		return nil
	}
	names := sortedNames(set)
	votes := make([]PaymentVote, 0, len(names))
	for _, n := range names {
		votes = append(votes, *s.paymentVotes[VoteKey{post, n}])
	}
	return votes
}

// ClearPaymentVotes removes every payment vote of a techspec.
func (s *Store) ClearPaymentVotes(post workerfund.PostID) {
	for _, v := range s.PaymentVotesOfPost(post) {
		s.RemovePaymentVote(VoteKey{v.Post, v.Approver})
	}
}

// --- global properties ---

// Global returns the shared economic record.
func (s *Store) Global() GlobalProperties {
	return *s.global
}

// ModifyGlobal runs fn over the shared economic record.
func (s *Store) ModifyGlobal(fn func(*GlobalProperties)) {
	s.journal.note(tableGlobal, struct{}{}, *s.global)
	fn(s.global)
}

// --- helpers ---

func sortedPostIDs[T any](m map[workerfund.PostID]T) []workerfund.PostID {
	ids := make([]workerfund.PostID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sortPostIDs(ids)
	return ids
}

func sortPostIDs(ids []workerfund.PostID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i].Bytes(), ids[j].Bytes()) < 0
	})
}

func sortedNames(set map[workerfund.AccountName]struct{}) []workerfund.AccountName {
	names := make([]workerfund.AccountName, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
