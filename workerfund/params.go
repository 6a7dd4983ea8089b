// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package workerfund

import "math"

// Constants of the worker funding protocol.
const (
	BlockInterval uint64 = 3     // time interval between two consecutive blocks, in seconds.
	DaySeconds    uint64 = 86400 // seconds per day, the unit of payment schedules.

	// ScheduledWitnesses is the size of the voting witness tier. Only
	// witnesses holding this rank may vote on worker matters.
	ScheduledWitnesses uint32 = 19

	// MajorVotedWitnesses approvals finalize a techspec or a payment.
	MajorVotedWitnesses uint32 = 11

	// SuperMajorVotedWitnesses disapprovals close a techspec.
	SuperMajorVotedWitnesses uint32 = 17

	MaxAccountNameLength = 16
	MinAccountNameLength = 3
	MaxPermlinkLength    = 256

	MinPaymentsInterval uint32 = uint32(DaySeconds)

	// DefaultTechspecApproveTerm bounds the voting period of a techspec.
	// A techspec holding at least one approval past the term is closed.
	DefaultTechspecApproveTerm uint64 = 5 * DaySeconds

	// DefaultResultApproveTerm bounds payment approval of a delivered result.
	DefaultResultApproveTerm uint64 = 5 * DaySeconds
)

// TimeNever is the sentinel for timestamps that are not scheduled.
const TimeNever uint64 = math.MaxUint64
