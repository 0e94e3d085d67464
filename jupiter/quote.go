// Package jupiter is a typed client for the Jupiter swap API. It covers the
// quote, swap and swap-instructions endpoints, translating between the wire
// format (decimal-string integers, base58 addresses, base64 payloads,
// shape-discriminated variant fields) and the domain model used on-chain.
package jupiter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/jup-ag/jupiter-swap-api-client/codec"
)

// SwapMode selects which side of the swap the amount is fixed on.
type SwapMode string

const (
	SwapModeExactIn  SwapMode = "ExactIn"
	SwapModeExactOut SwapMode = "ExactOut"
)

// SwapModeFromString parses the wire form of a swap mode.
func SwapModeFromString(s string) (SwapMode, error) {
	switch s {
	case string(SwapModeExactIn):
		return SwapModeExactIn, nil
	case string(SwapModeExactOut):
		return SwapModeExactOut, nil
	default:
		return "", fmt.Errorf("%q is not a valid swap mode", s)
	}
}

func (m *SwapMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := SwapModeFromString(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// QuoteRequest is the input to the quote endpoint. Mints and amount are
// required; everything else is a routing hint left to the service when unset.
type QuoteRequest struct {
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	Amount     uint64
	// SlippageBps is the tolerated adverse price movement in basis points.
	SlippageBps uint16

	SwapMode       *SwapMode
	PlatformFeeBps *uint8

	// Dexes and ExcludedDexes are comma-joined on the wire.
	Dexes         []string
	ExcludedDexes []string

	OnlyDirectRoutes           *bool
	AsLegacyTransaction        *bool
	RestrictIntermediateTokens *bool

	// MaxAccounts caps the number of accounts involved in the route. It is
	// an estimation on the service side, not an exact count.
	MaxAccounts *uint64

	// QuoteType switches the routing algorithm.
	QuoteType *string

	// QuoteArgs are free-form algorithm-specific parameters appended as
	// additional query parameters.
	QuoteArgs map[string]string
}

// QueryValues renders the request as URL query parameters in the wire
// encoding: amounts as decimal strings, addresses as base58, lists
// comma-joined.
func (r *QuoteRequest) QueryValues() url.Values {
	q := url.Values{}
	q.Set("inputMint", codec.EncodeAddress(r.InputMint))
	q.Set("outputMint", codec.EncodeAddress(r.OutputMint))
	q.Set("amount", codec.EncodeAmount(r.Amount))
	q.Set("slippageBps", strconv.Itoa(int(r.SlippageBps)))

	if r.SwapMode != nil {
		q.Set("swapMode", string(*r.SwapMode))
	}
	if r.PlatformFeeBps != nil {
		q.Set("platformFeeBps", strconv.Itoa(int(*r.PlatformFeeBps)))
	}
	if len(r.Dexes) > 0 {
		q.Set("dexes", codec.JoinList(r.Dexes))
	}
	if len(r.ExcludedDexes) > 0 {
		q.Set("excludeDexes", codec.JoinList(r.ExcludedDexes))
	}
	if r.OnlyDirectRoutes != nil {
		q.Set("onlyDirectRoutes", strconv.FormatBool(*r.OnlyDirectRoutes))
	}
	if r.AsLegacyTransaction != nil {
		q.Set("asLegacyTransaction", strconv.FormatBool(*r.AsLegacyTransaction))
	}
	if r.RestrictIntermediateTokens != nil {
		q.Set("restrictIntermediateTokens", strconv.FormatBool(*r.RestrictIntermediateTokens))
	}
	if r.MaxAccounts != nil {
		q.Set("maxAccounts", strconv.FormatUint(*r.MaxAccounts, 10))
	}
	if r.QuoteType != nil {
		q.Set("quoteType", *r.QuoteType)
	}
	for k, v := range r.QuoteArgs {
		q.Set(k, v)
	}
	return q
}

// PlatformFee is the fee taken by the integrating platform, echoed by the
// quote endpoint when platformFeeBps was requested.
type PlatformFee struct {
	Amount codec.Uint64String `json:"amount"`
	FeeBps uint8              `json:"feeBps"`
}

// SwapInfo describes one hop of the route plan.
type SwapInfo struct {
	AmmKey     solana.PublicKey `json:"ammKey"`
	Label      string           `json:"label,omitempty"`
	InputMint  solana.PublicKey `json:"inputMint"`
	OutputMint solana.PublicKey `json:"outputMint"`
	// InAmount and OutAmount are estimations of the amounts flowing through
	// this AMM.
	InAmount  codec.Uint64String `json:"inAmount"`
	OutAmount codec.Uint64String `json:"outAmount"`
	FeeAmount codec.Uint64String `json:"feeAmount"`
	FeeMint   solana.PublicKey   `json:"feeMint"`
}

// RoutePlanStep is one entry of the ordered route plan. Percent is the share
// of the input routed through this step.
type RoutePlanStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  *uint8   `json:"percent,omitempty"`
	Bps      uint16   `json:"bps,omitempty"`
}

// QuoteResponse is a priced, routed plan for the requested exchange. It is
// held by the caller and embedded verbatim into a subsequent swap request.
type QuoteResponse struct {
	InputMint            solana.PublicKey   `json:"inputMint"`
	InAmount             codec.Uint64String `json:"inAmount"`
	OutputMint           solana.PublicKey   `json:"outputMint"`
	OutAmount            codec.Uint64String `json:"outAmount"`
	OtherAmountThreshold codec.Uint64String `json:"otherAmountThreshold"`
	SwapMode             SwapMode           `json:"swapMode"`
	SlippageBps          uint16             `json:"slippageBps"`
	PlatformFee          *PlatformFee       `json:"platformFee,omitempty"`
	// PriceImpactPct is kept as an exact decimal; float rounding drift is
	// not acceptable in financial comparisons.
	PriceImpactPct decimal.Decimal `json:"priceImpactPct"`
	RoutePlan      []RoutePlanStep `json:"routePlan"`

	// ContextSlot is the chain slot the quote was computed at.
	ContextSlot uint64 `json:"contextSlot,omitempty"`
	// TimeTaken is the server-side compute time in seconds.
	TimeTaken float64 `json:"timeTaken,omitempty"`
}
