// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package workerfund

import (
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// PostID is the content-addressed identity of a post, derived from
// the author and permlink pair. The zero value means "no post".
type PostID [32]byte

// NoPost is the unset PostID.
var NoPost PostID

// MakePostID derives the id of the post (author, permlink).
func MakePostID(author AccountName, permlink string) PostID {
	return PostID(Blake2b([]byte(author), []byte{0}, []byte(permlink)))
}

// IsNone reports whether the id is unset.
func (id PostID) IsNone() bool {
	return id == NoPost
}

// Bytes returns the byte slice form.
func (id PostID) Bytes() []byte {
	return id[:]
}

// String implements the stringer interface.
func (id PostID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// NewBlake2b returns a blake2b-256 hash.
func NewBlake2b() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

// Blake2b computes the blake2b-256 checksum for given data.
func Blake2b(data ...[]byte) [32]byte {
	if len(data) == 1 {
		// the quick version
		return blake2b.Sum256(data[0])
	}
	h := NewBlake2b()
	for _, b := range data {
		h.Write(b)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
