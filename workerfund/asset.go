// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package workerfund

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Symbol identifies an asset kind.
type Symbol string

// Assets known to the chain. Worker fund accounting runs in the
// native symbol only.
const (
	NativeSymbol Symbol = "GLS"
	DebtSymbol   Symbol = "GBG"

	// AssetPrecision is the number of decimal places of every asset.
	AssetPrecision = 3
)

var assetScale int64 = 1000 // 10^AssetPrecision

// Asset is a fixed-point amount of a single symbol.
// The zero value is 0.000 of the empty symbol; use NewAsset for
// native amounts.
type Asset struct {
	Amount int64
	Symbol Symbol
}

// NewAsset returns amount satoshis of the native symbol.
func NewAsset(amount int64) Asset {
	return Asset{Amount: amount, Symbol: NativeSymbol}
}

// NativeFromWhole returns n whole units of the native symbol.
func NativeFromWhole(n int64) Asset {
	return Asset{Amount: n * assetScale, Symbol: NativeSymbol}
}

// IsNative reports whether the asset is in the chain's native symbol.
func (a Asset) IsNative() bool {
	return a.Symbol == NativeSymbol
}

// IsNegative reports whether the amount is below zero.
func (a Asset) IsNegative() bool {
	return a.Amount < 0
}

// IsZero reports whether the amount is exactly zero.
func (a Asset) IsZero() bool {
	return a.Amount == 0
}

// Add returns a + b. Panics on symbol mismatch, which is a protocol
// invariant violation rather than user input.
func (a Asset) Add(b Asset) Asset {
	a.mustMatch(b)
	return Asset{Amount: a.Amount + b.Amount, Symbol: a.Symbol}
}

// Sub returns a - b. Panics on symbol mismatch.
func (a Asset) Sub(b Asset) Asset {
	a.mustMatch(b)
	return Asset{Amount: a.Amount - b.Amount, Symbol: a.Symbol}
}

// DivScalar returns a / n rounded toward zero.
func (a Asset) DivScalar(n int64) Asset {
	return Asset{Amount: a.Amount / n, Symbol: a.Symbol}
}

// Cmp compares amounts. Panics on symbol mismatch.
func (a Asset) Cmp(b Asset) int {
	a.mustMatch(b)
	switch {
	case a.Amount < b.Amount:
		return -1
	case a.Amount > b.Amount:
		return 1
	}
	return 0
}

func (a Asset) mustMatch(b Asset) {
	if a.Symbol != b.Symbol {
		panic(fmt.Sprintf("asset symbol mismatch: %s vs %s", a.Symbol, b.Symbol))
	}
}

// String renders like "6.000 GLS".
func (a Asset) String() string {
	neg := ""
	amount := a.Amount
	if amount < 0 {
		neg = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%03d %s", neg, amount/assetScale, amount%assetScale, a.Symbol)
}

// ParseAsset converts a "6.000 GLS" style string into an Asset.
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, errors.New("asset: expected '<amount> <symbol>'")
	}
	intPart, fracPart, ok := strings.Cut(parts[0], ".")
	if !ok || len(fracPart) != AssetPrecision {
		return Asset{}, errors.Errorf("asset: amount must carry %d decimal places", AssetPrecision)
	}
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Asset{}, errors.Wrap(err, "asset: bad integer part")
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil || frac < 0 {
		return Asset{}, errors.New("asset: bad fractional part")
	}
	amount := whole*assetScale + frac
	if whole < 0 || strings.HasPrefix(intPart, "-") {
		amount = whole*assetScale - frac
	}
	return Asset{Amount: amount, Symbol: Symbol(parts[1])}, nil
}
