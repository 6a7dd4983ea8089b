// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package workerfund

import "github.com/pkg/errors"

// AccountName names an account. The subsystem stores names, never
// references into account or witness objects.
type AccountName string

// IsEmpty reports whether the name is unset.
func (n AccountName) IsEmpty() bool {
	return len(n) == 0
}

// Validate checks the chain's account naming rules.
func (n AccountName) Validate() error {
	if len(n) < MinAccountNameLength || len(n) > MaxAccountNameLength {
		return errors.Errorf("account name must be %d to %d characters", MinAccountNameLength, MaxAccountNameLength)
	}
	for i := range len(n) {
		c := n[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return errors.New("account name must start with a letter")
			}
		case c == '-' || c == '.':
			if i == 0 || i == len(n)-1 {
				return errors.New("account name cannot begin or end with a separator")
			}
		default:
			return errors.New("account name contains an invalid character")
		}
	}
	return nil
}

// ValidatePermlink checks permlink length bounds.
func ValidatePermlink(permlink string) error {
	if len(permlink) == 0 {
		return errors.New("permlink cannot be empty")
	}
	if len(permlink) > MaxPermlinkLength {
		return errors.Errorf("permlink cannot exceed %d characters", MaxPermlinkLength)
	}
	return nil
}
