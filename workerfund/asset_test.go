// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package workerfund_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainworks/workerfund/workerfund"
)

func TestAssetString(t *testing.T) {
	assert.Equal(t, "6.000 GLS", workerfund.NativeFromWhole(6).String())
	assert.Equal(t, "0.001 GLS", workerfund.NewAsset(1).String())
	assert.Equal(t, "-1.500 GLS", workerfund.NewAsset(-1500).String())
}

func TestParseAsset(t *testing.T) {
	a, err := workerfund.ParseAsset("6.000 GLS")
	require.NoError(t, err)
	assert.Equal(t, workerfund.NativeFromWhole(6), a)

	a, err = workerfund.ParseAsset("0.042 GBG")
	require.NoError(t, err)
	assert.Equal(t, int64(42), a.Amount)
	assert.False(t, a.IsNative())

	for _, bad := range []string{"", "6 GLS", "6.0 GLS", "6.000", "x.000 GLS"} {
		_, err := workerfund.ParseAsset(bad)
		assert.Error(t, err, bad)
	}
}

func TestAssetArithmetic(t *testing.T) {
	a := workerfund.NativeFromWhole(6)
	b := workerfund.NativeFromWhole(60)

	assert.Equal(t, int64(66000), a.Add(b).Amount)
	assert.Equal(t, int64(54000), b.Sub(a).Amount)
	assert.Equal(t, int64(33000), a.Add(b).DivScalar(2).Amount)
	assert.Equal(t, -1, a.Cmp(b))

	assert.Panics(t, func() {
		a.Add(workerfund.Asset{Amount: 1, Symbol: workerfund.DebtSymbol})
	})
}

func TestAccountNameValidate(t *testing.T) {
	assert.NoError(t, workerfund.AccountName("alice").Validate())
	assert.NoError(t, workerfund.AccountName("approver18").Validate())
	assert.NoError(t, workerfund.AccountName("a-b.c").Validate())

	for _, bad := range []workerfund.AccountName{
		"", "ab", "9lives", "-dash", "dot.", "UPPER", "name!with#chars", "averyverylongname",
	} {
		assert.Error(t, bad.Validate(), string(bad))
	}
}

func TestMakePostID(t *testing.T) {
	id := workerfund.MakePostID("alice", "post")
	assert.False(t, id.IsNone())
	assert.Equal(t, id, workerfund.MakePostID("alice", "post"))
	assert.NotEqual(t, id, workerfund.MakePostID("alice", "post2"))

	// the separator keeps (author, permlink) splits unambiguous
	assert.NotEqual(t, workerfund.MakePostID("ab", "c"), workerfund.MakePostID("a", "bc"))
	assert.True(t, workerfund.NoPost.IsNone())
}
