package jupiter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/jup-ag/jupiter-swap-api-client/codec"
)

// ComputeUnitPriceMicroLamports is either an explicit compute unit price or
// the literal "auto", letting the service pick one. The wire form is a bare
// number for the explicit case and the sentinel string for auto.
type ComputeUnitPriceMicroLamports struct {
	auto          bool
	microLamports uint64
}

// AutoComputeUnitPrice lets the service choose the compute unit price.
func AutoComputeUnitPrice() *ComputeUnitPriceMicroLamports {
	return &ComputeUnitPriceMicroLamports{auto: true}
}

// ComputeUnitPrice sets an explicit price in micro-lamports per compute unit.
func ComputeUnitPrice(microLamports uint64) *ComputeUnitPriceMicroLamports {
	return &ComputeUnitPriceMicroLamports{microLamports: microLamports}
}

func (p *ComputeUnitPriceMicroLamports) IsAuto() bool { return p.auto }

// MicroLamports returns the explicit price; ok is false for the auto case.
func (p *ComputeUnitPriceMicroLamports) MicroLamports() (v uint64, ok bool) {
	return p.microLamports, !p.auto
}

func (p ComputeUnitPriceMicroLamports) MarshalJSON() ([]byte, error) {
	if p.auto {
		return json.Marshal("auto")
	}
	return json.Marshal(p.microLamports)
}

func (p *ComputeUnitPriceMicroLamports) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "auto" {
			return &codec.DecodeError{
				Field: "computeUnitPriceMicroLamports",
				Value: s,
				Err:   fmt.Errorf("unknown sentinel"),
			}
		}
		*p = ComputeUnitPriceMicroLamports{auto: true}
		return nil
	}
	var v uint64
	if err := json.Unmarshal(data, &v); err == nil {
		*p = ComputeUnitPriceMicroLamports{microLamports: v}
		return nil
	}
	return &codec.DecodeError{
		Field: "computeUnitPriceMicroLamports",
		Value: string(data),
		Err:   fmt.Errorf("unrecognized variant shape"),
	}
}

// PriorityLevel names a prioritization fee percentile bucket.
type PriorityLevel string

const (
	PriorityLevelMedium   PriorityLevel = "medium"
	PriorityLevelHigh     PriorityLevel = "high"
	PriorityLevelVeryHigh PriorityLevel = "veryHigh"
)

// PriorityLevelWithMaxLamports selects a priority level with a hard cap on
// the fee paid.
type PriorityLevelWithMaxLamports struct {
	PriorityLevel PriorityLevel `json:"priorityLevel"`
	MaxLamports   uint64        `json:"maxLamports"`
	Global        bool          `json:"global"`
}

// PriorityFeeKind discriminates the PrioritizationFeeLamports variants.
type PriorityFeeKind int

const (
	// PriorityFeeAuto lets the service compute the fee.
	PriorityFeeAuto PriorityFeeKind = iota
	// PriorityFeeDisabled turns prioritization off entirely.
	PriorityFeeDisabled
	// PriorityFeeLamports pays an explicit lamport amount.
	PriorityFeeLamports
	// PriorityFeeAutoMultiplier multiplies the automatically computed fee.
	PriorityFeeAutoMultiplier
	// PriorityFeeJitoTip pays a fixed tip to the Jito block engine instead
	// of a compute budget fee.
	PriorityFeeJitoTip
	// PriorityFeePriorityLevel selects a priority level with a lamport cap.
	PriorityFeePriorityLevel
)

// PrioritizationFeeLamports is the prioritization fee paid in addition to the
// signature fee. Exactly one variant is active, selected by Kind; the wire
// shapes differ per variant (sentinel string, bare number or single-key
// object), so decoding discriminates by shape in a fixed precedence order:
// sentinel string first, then bare number, then the object keys in the order
// autoMultiplier, jitoTipLamports, priorityLevelWithMaxLamports.
type PrioritizationFeeLamports struct {
	Kind PriorityFeeKind

	// Lamports carries the amount for the Lamports and JitoTip kinds.
	Lamports uint64
	// AutoMultiplier carries the multiplier for the AutoMultiplier kind.
	AutoMultiplier uint32
	// PriorityLevel carries the selection for the PriorityLevel kind.
	PriorityLevel PriorityLevelWithMaxLamports
}

func AutoPriorityFee() *PrioritizationFeeLamports {
	return &PrioritizationFeeLamports{Kind: PriorityFeeAuto}
}

func DisabledPriorityFee() *PrioritizationFeeLamports {
	return &PrioritizationFeeLamports{Kind: PriorityFeeDisabled}
}

func ExactPriorityFee(lamports uint64) *PrioritizationFeeLamports {
	return &PrioritizationFeeLamports{Kind: PriorityFeeLamports, Lamports: lamports}
}

func AutoMultiplierPriorityFee(multiplier uint32) *PrioritizationFeeLamports {
	return &PrioritizationFeeLamports{Kind: PriorityFeeAutoMultiplier, AutoMultiplier: multiplier}
}

func JitoTipPriorityFee(lamports uint64) *PrioritizationFeeLamports {
	return &PrioritizationFeeLamports{Kind: PriorityFeeJitoTip, Lamports: lamports}
}

func PriorityLevelFee(level PriorityLevel, maxLamports uint64, global bool) *PrioritizationFeeLamports {
	return &PrioritizationFeeLamports{
		Kind: PriorityFeePriorityLevel,
		PriorityLevel: PriorityLevelWithMaxLamports{
			PriorityLevel: level,
			MaxLamports:   maxLamports,
			Global:        global,
		},
	}
}

func (p PrioritizationFeeLamports) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PriorityFeeAuto:
		return json.Marshal("auto")
	case PriorityFeeDisabled:
		return json.Marshal("disabled")
	case PriorityFeeLamports:
		return json.Marshal(p.Lamports)
	case PriorityFeeAutoMultiplier:
		return json.Marshal(map[string]uint32{"autoMultiplier": p.AutoMultiplier})
	case PriorityFeeJitoTip:
		return json.Marshal(map[string]uint64{"jitoTipLamports": p.Lamports})
	case PriorityFeePriorityLevel:
		return json.Marshal(map[string]PriorityLevelWithMaxLamports{
			"priorityLevelWithMaxLamports": p.PriorityLevel,
		})
	default:
		return nil, fmt.Errorf("unknown prioritization fee kind %d", p.Kind)
	}
}

func (p *PrioritizationFeeLamports) UnmarshalJSON(data []byte) error {
	// Sentinel strings take precedence over every other shape.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "auto":
			*p = PrioritizationFeeLamports{Kind: PriorityFeeAuto}
			return nil
		case "disabled":
			*p = PrioritizationFeeLamports{Kind: PriorityFeeDisabled}
			return nil
		default:
			return &codec.DecodeError{
				Field: "prioritizationFeeLamports",
				Value: s,
				Err:   fmt.Errorf("unknown sentinel"),
			}
		}
	}

	// Bare number.
	var lamports uint64
	if err := json.Unmarshal(data, &lamports); err == nil {
		*p = PrioritizationFeeLamports{Kind: PriorityFeeLamports, Lamports: lamports}
		return nil
	}

	// Single-key wrapper objects, probed in declaration order.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil && len(obj) == 1 {
		if raw, ok := obj["autoMultiplier"]; ok {
			var m uint32
			if err := json.Unmarshal(raw, &m); err != nil {
				return &codec.DecodeError{Field: "autoMultiplier", Value: string(raw), Err: err}
			}
			*p = PrioritizationFeeLamports{Kind: PriorityFeeAutoMultiplier, AutoMultiplier: m}
			return nil
		}
		if raw, ok := obj["jitoTipLamports"]; ok {
			var tip uint64
			if err := json.Unmarshal(raw, &tip); err != nil {
				return &codec.DecodeError{Field: "jitoTipLamports", Value: string(raw), Err: err}
			}
			*p = PrioritizationFeeLamports{Kind: PriorityFeeJitoTip, Lamports: tip}
			return nil
		}
		if raw, ok := obj["priorityLevelWithMaxLamports"]; ok {
			var lvl PriorityLevelWithMaxLamports
			if err := json.Unmarshal(raw, &lvl); err != nil {
				return &codec.DecodeError{Field: "priorityLevelWithMaxLamports", Value: string(raw), Err: err}
			}
			*p = PrioritizationFeeLamports{Kind: PriorityFeePriorityLevel, PriorityLevel: lvl}
			return nil
		}
	}

	return &codec.DecodeError{
		Field: "prioritizationFeeLamports",
		Value: string(bytes.TrimSpace(data)),
		Err:   fmt.Errorf("unrecognized variant shape"),
	}
}

// DynamicSlippageSettings bounds the slippage the service may pick when
// dynamic slippage is enabled.
type DynamicSlippageSettings struct {
	MinBps *uint16 `json:"minBps,omitempty"`
	MaxBps *uint16 `json:"maxBps,omitempty"`
}

// UIAccount is an account in the market-cache encoding.
type UIAccount struct {
	Lamports   uint64          `json:"lamports"`
	Data       json.RawMessage `json:"data"`
	Owner      string          `json:"owner"`
	Executable bool            `json:"executable"`
	RentEpoch  uint64          `json:"rentEpoch"`
	Space      *uint64         `json:"space,omitempty"`
}

// KeyedUIAccount lets the caller supply AMM state that is not in the
// service's market cache. Params is AMM dependent and passed through verbatim.
type KeyedUIAccount struct {
	Pubkey string `json:"pubkey"`
	UIAccount
	Params json.RawMessage `json:"params,omitempty"`
}

// TransactionConfig shapes the transaction the swap endpoint builds. Its
// fields are flattened into the top level of the swap request body.
type TransactionConfig struct {
	// WrapAndUnwrapSol wraps and unwraps SOL around the swap. Ignored when
	// DestinationTokenAccount is set, since that account may belong to a
	// different user the service has no authority to close.
	WrapAndUnwrapSol bool `json:"wrapAndUnwrapSol"`
	// AllowOptimizedWrappedSolTokenAccount uses seed-based account creation
	// for the wSOL account instead of the associated token account flow.
	AllowOptimizedWrappedSolTokenAccount bool `json:"allowOptimizedWrappedSolTokenAccount"`
	// FeeAccount is the referral fee token account for the output token.
	// Only pass it together with a platform fee on the quote.
	FeeAccount *solana.PublicKey `json:"feeAccount,omitempty"`
	// DestinationTokenAccount receives the swap output. When unset the
	// user's associated token account is used; when set it is assumed to be
	// initialized already.
	DestinationTokenAccount *solana.PublicKey `json:"destinationTokenAccount,omitempty"`
	// TrackingAccount is a readonly, non-signer account added for tracking
	// only; the swap never touches it.
	TrackingAccount *solana.PublicKey `json:"trackingAccount,omitempty"`
	// ComputeUnitPriceMicroLamports prioritizes the transaction; the extra
	// fee is units consumed times this price. Mutually exclusive with
	// PrioritizationFeeLamports.
	ComputeUnitPriceMicroLamports *ComputeUnitPriceMicroLamports `json:"computeUnitPriceMicroLamports,omitempty"`
	PrioritizationFeeLamports     *PrioritizationFeeLamports     `json:"prioritizationFeeLamports,omitempty"`
	// DynamicComputeUnitLimit simulates the swap to size the compute unit
	// limit, at the cost of one extra RPC round trip on the service side.
	DynamicComputeUnitLimit bool `json:"dynamicComputeUnitLimit"`
	// AsLegacyTransaction requests a legacy rather than versioned
	// transaction; pair it with the matching quote flag or the transaction
	// may grow too large.
	AsLegacyTransaction bool `json:"asLegacyTransaction"`
	// UseSharedAccounts routes through shared program accounts so no
	// intermediate token accounts or open orders accounts need creating.
	UseSharedAccounts *bool `json:"useSharedAccounts,omitempty"`
	// UseTokenLedger supports the case where a preceding instruction tops up
	// the input token account; the swap then uses the post-transfer delta.
	UseTokenLedger bool `json:"useTokenLedger"`
	// SkipUserAccountsRPCCalls assumes the user accounts do not exist and
	// emits all setup instructions without checking.
	SkipUserAccountsRPCCalls bool `json:"skipUserAccountsRpcCalls"`
	// KeyedUIAccounts provides AMM state missing from the market cache.
	KeyedUIAccounts []KeyedUIAccount `json:"keyedUiAccounts,omitempty"`
	// ProgramAuthorityID pins the program authority used for shared accounts.
	ProgramAuthorityID *uint8 `json:"programAuthorityId,omitempty"`
	// DynamicSlippage lets the service pick slippage within the given bounds.
	DynamicSlippage *DynamicSlippageSettings `json:"dynamicSlippage,omitempty"`
	// BlockhashSlotsToExpiry is the number of slots until the blockhash
	// expires.
	BlockhashSlotsToExpiry *uint8 `json:"blockhashSlotsToExpiry,omitempty"`
	// CorrectLastValidBlockHeight requests a corrected last valid block
	// height from the service.
	CorrectLastValidBlockHeight bool `json:"correctLastValidBlockHeight"`
}

// DefaultTransactionConfig is the baseline configuration: SOL is wrapped and
// unwrapped automatically and shared program accounts are enabled. Every
// other option is off. These defaults silently shape the produced
// transaction, so callers overriding them should do it deliberately.
func DefaultTransactionConfig() TransactionConfig {
	useSharedAccounts := true
	return TransactionConfig{
		WrapAndUnwrapSol:  true,
		UseSharedAccounts: &useSharedAccounts,
	}
}
