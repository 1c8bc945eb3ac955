package v1

import (
	"strings"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// StockProduct is the product id assumed for equity codes written without an
// explicit product, e.g. "SSE.600000".
const StockProduct = "STK"

// AdjustMode describes which price adjustment a standard code asks for.
type AdjustMode uint8

const (
	// AdjustNone means raw prices.
	AdjustNone AdjustMode = iota
	// AdjustForward means forward-adjusted prices (old data scaled down,
	// "Q" suffix on equities, "+" on rolling rule tags).
	AdjustForward
	// AdjustBackward means backward-adjusted prices (old data scaled up,
	// "H" suffix on equities, "-" on rolling rule tags).
	AdjustBackward
)

// CodeInfo is the decomposed form of a standard code.
//
// Standard codes come in three shapes:
//
//	SHFE.rb.2205    futures contract
//	SHFE.rb.HOT-    rolling contract by rule tag, optional +/- adjust suffix
//	SSE.STK.600000Q equity, optional Q/H adjust suffix (SSE.600000 shorthand)
type CodeInfo struct {
	Exchg   string
	Product string
	Code    string // contract month or equity code, empty for rolling codes
	Rule    string // rollover rule tag, empty for concrete instruments
	Adjust  AdjustMode
}

// ParseCode decomposes a standard code.
func ParseCode(stdCode string) (CodeInfo, error) {
	parts := strings.Split(stdCode, ".")
	switch len(parts) {
	case 2:
		// Equity shorthand without a product id.
		if parts[0] == "" || parts[1] == "" {
			return CodeInfo{}, errors.NewTracer(errors.CodeParseError)
		}
		code, adjust := splitEquityAdjust(parts[1])
		return CodeInfo{Exchg: parts[0], Product: StockProduct, Code: code, Adjust: adjust}, nil
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return CodeInfo{}, errors.NewTracer(errors.CodeParseError)
		}
		if parts[1] == StockProduct {
			code, adjust := splitEquityAdjust(parts[2])
			return CodeInfo{Exchg: parts[0], Product: StockProduct, Code: code, Adjust: adjust}, nil
		}
		tail := parts[2]
		if isDigits(tail) {
			return CodeInfo{Exchg: parts[0], Product: parts[1], Code: tail}, nil
		}
		// Non-numeric tail is a rollover rule tag, optionally carrying an
		// adjust suffix.
		adjust := AdjustNone
		switch tail[len(tail)-1] {
		case '+':
			adjust = AdjustForward
			tail = tail[:len(tail)-1]
		case '-':
			adjust = AdjustBackward
			tail = tail[:len(tail)-1]
		}
		if tail == "" {
			return CodeInfo{}, errors.NewTracer(errors.CodeParseError)
		}
		return CodeInfo{Exchg: parts[0], Product: parts[1], Rule: tail, Adjust: adjust}, nil
	default:
		return CodeInfo{}, errors.NewTracer(errors.CodeParseError)
	}
}

// CommodityID returns the exchange-qualified product id, e.g. "SHFE.rb".
func (c CodeInfo) CommodityID() string {
	return c.Exchg + "." + c.Product
}

// RawCode returns the instrument code as it appears in file names: product
// plus month for futures, the bare code for equities. Rolling codes have no
// raw code of their own until a leg is resolved.
func (c CodeInfo) RawCode() string {
	if c.Rule != "" {
		return ""
	}
	if c.Product == StockProduct {
		return c.Code
	}
	return c.Product + c.Code
}

// IsRolling reports whether the code refers to a rule-spliced continuous
// instrument.
func (c CodeInfo) IsRolling() bool {
	return c.Rule != ""
}

// IsEquity reports whether the code refers to an equity instrument.
func (c CodeInfo) IsEquity() bool {
	return c.Product == StockProduct
}

// StdCode reconstructs the canonical standard code without adjust suffixes.
func (c CodeInfo) StdCode() string {
	if c.Rule != "" {
		return c.Exchg + "." + c.Product + "." + c.Rule
	}
	return c.Exchg + "." + c.Product + "." + c.Code
}

func splitEquityAdjust(code string) (string, AdjustMode) {
	if len(code) < 2 {
		return code, AdjustNone
	}
	switch code[len(code)-1] {
	case 'Q':
		return code[:len(code)-1], AdjustForward
	case 'H':
		return code[:len(code)-1], AdjustBackward
	}
	return code, AdjustNone
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
