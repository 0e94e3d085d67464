package jupiter

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/jup-ag/jupiter-swap-api-client/codec"
)

// SwapRequest asks the service to build a transaction for a previously
// obtained quote. The embedded TransactionConfig fields are flattened into
// the top level of the JSON body.
type SwapRequest struct {
	UserPublicKey solana.PublicKey `json:"userPublicKey"`
	QuoteResponse QuoteResponse    `json:"quoteResponse"`
	TransactionConfig
}

// JitoPrioritization reports a Jito tip paid by the built transaction.
type JitoPrioritization struct {
	Lamports uint64 `json:"lamports"`
}

// ComputeBudgetPrioritization reports the compute budget price the built
// transaction pays.
type ComputeBudgetPrioritization struct {
	MicroLamports          uint64  `json:"microLamports"`
	EstimatedMicroLamports *uint64 `json:"estimatedMicroLamports,omitempty"`
}

// PrioritizationType reports which prioritization mechanism the service
// applied; at most one branch is set.
type PrioritizationType struct {
	Jito          *JitoPrioritization          `json:"jito,omitempty"`
	ComputeBudget *ComputeBudgetPrioritization `json:"computeBudget,omitempty"`
}

// DynamicSlippageReport describes the slippage the service settled on when
// dynamic slippage was requested.
type DynamicSlippageReport struct {
	SlippageBps uint16  `json:"slippageBps"`
	OtherAmount *uint64 `json:"otherAmount,omitempty"`
	// SimulatedIncurredSlippageBps is signed to convey positive and negative
	// slippage.
	SimulatedIncurredSlippageBps *int16           `json:"simulatedIncurredSlippageBps,omitempty"`
	AmplificationRatio           *decimal.Decimal `json:"amplificationRatio,omitempty"`
}

// SimulationError surfaces a failed service-side simulation of the built
// transaction.
type SimulationError struct {
	ErrorCode string `json:"errorCode"`
	Error     string `json:"error"`
}

// SwapResponse carries the assembled, unsigned transaction. Signing and
// broadcast are the caller's responsibility.
type SwapResponse struct {
	SwapTransaction codec.Base64Data `json:"swapTransaction"`
	// LastValidBlockHeight is the block height after which the transaction
	// is no longer valid.
	LastValidBlockHeight      uint64                 `json:"lastValidBlockHeight"`
	PrioritizationFeeLamports uint64                 `json:"prioritizationFeeLamports,omitempty"`
	ComputeUnitLimit          uint32                 `json:"computeUnitLimit,omitempty"`
	PrioritizationType        *PrioritizationType    `json:"prioritizationType,omitempty"`
	DynamicSlippageReport     *DynamicSlippageReport `json:"dynamicSlippageReport,omitempty"`
	SimulationError           *SimulationError       `json:"simulationError,omitempty"`
}

// SwapInstructionsResponse is the same swap decomposed into discrete
// instructions, for callers composing the swap into a larger transaction.
// Slot identity (setup, swap, cleanup, ...) comes entirely from the response
// field names, never from instruction content.
type SwapInstructionsResponse struct {
	TokenLedgerInstruction    solana.Instruction
	ComputeBudgetInstructions []solana.Instruction
	SetupInstructions         []solana.Instruction
	// SwapInstruction performs the swap itself.
	SwapInstruction    solana.Instruction
	CleanupInstruction solana.Instruction
	// OtherInstructions holds everything else the transaction should carry;
	// currently only the Jito tip instruction.
	OtherInstructions []solana.Instruction

	AddressLookupTableAddresses []solana.PublicKey

	PrioritizationFeeLamports uint64
	ComputeUnitLimit          uint32
	PrioritizationType        *PrioritizationType
	DynamicSlippageReport     *DynamicSlippageReport
	SimulationError           *SimulationError
}

type swapInstructionsWire struct {
	TokenLedgerInstruction      *InstructionResponse   `json:"tokenLedgerInstruction,omitempty"`
	ComputeBudgetInstructions   []InstructionResponse  `json:"computeBudgetInstructions,omitempty"`
	SetupInstructions           []InstructionResponse  `json:"setupInstructions,omitempty"`
	SwapInstruction             InstructionResponse    `json:"swapInstruction"`
	CleanupInstruction          *InstructionResponse   `json:"cleanupInstruction,omitempty"`
	OtherInstructions           []InstructionResponse  `json:"otherInstructions,omitempty"`
	AddressLookupTableAddresses []string               `json:"addressLookupTableAddresses"`
	PrioritizationFeeLamports   uint64                 `json:"prioritizationFeeLamports,omitempty"`
	ComputeUnitLimit            uint32                 `json:"computeUnitLimit,omitempty"`
	PrioritizationType          *PrioritizationType    `json:"prioritizationType,omitempty"`
	DynamicSlippageReport       *DynamicSlippageReport `json:"dynamicSlippageReport,omitempty"`
	SimulationError             *SimulationError       `json:"simulationError,omitempty"`
}

func (r *SwapInstructionsResponse) UnmarshalJSON(data []byte) error {
	var wire swapInstructionsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var out SwapInstructionsResponse
	var err error
	if out.TokenLedgerInstruction, err = instructionFromWire("tokenLedgerInstruction", wire.TokenLedgerInstruction); err != nil {
		return err
	}
	if out.ComputeBudgetInstructions, err = instructionsFromWire("computeBudgetInstructions", wire.ComputeBudgetInstructions); err != nil {
		return err
	}
	if out.SetupInstructions, err = instructionsFromWire("setupInstructions", wire.SetupInstructions); err != nil {
		return err
	}
	if out.SwapInstruction, err = wire.SwapInstruction.ToInstruction("swapInstruction"); err != nil {
		return err
	}
	if out.CleanupInstruction, err = instructionFromWire("cleanupInstruction", wire.CleanupInstruction); err != nil {
		return err
	}
	if out.OtherInstructions, err = instructionsFromWire("otherInstructions", wire.OtherInstructions); err != nil {
		return err
	}
	for i, addr := range wire.AddressLookupTableAddresses {
		pk, err := codec.DecodeAddress(fmt.Sprintf("addressLookupTableAddresses[%d]", i), addr)
		if err != nil {
			return err
		}
		out.AddressLookupTableAddresses = append(out.AddressLookupTableAddresses, pk)
	}

	out.PrioritizationFeeLamports = wire.PrioritizationFeeLamports
	out.ComputeUnitLimit = wire.ComputeUnitLimit
	out.PrioritizationType = wire.PrioritizationType
	out.DynamicSlippageReport = wire.DynamicSlippageReport
	out.SimulationError = wire.SimulationError

	*r = out
	return nil
}

func (r SwapInstructionsResponse) MarshalJSON() ([]byte, error) {
	if r.SwapInstruction == nil {
		return nil, fmt.Errorf("swap instruction is required")
	}

	wire := swapInstructionsWire{
		PrioritizationFeeLamports: r.PrioritizationFeeLamports,
		ComputeUnitLimit:          r.ComputeUnitLimit,
		PrioritizationType:        r.PrioritizationType,
		DynamicSlippageReport:     r.DynamicSlippageReport,
		SimulationError:           r.SimulationError,
	}

	var err error
	if r.TokenLedgerInstruction != nil {
		if wire.TokenLedgerInstruction, err = NewInstructionResponse(r.TokenLedgerInstruction); err != nil {
			return nil, err
		}
	}
	if wire.ComputeBudgetInstructions, err = instructionsToWire(r.ComputeBudgetInstructions); err != nil {
		return nil, err
	}
	if wire.SetupInstructions, err = instructionsToWire(r.SetupInstructions); err != nil {
		return nil, err
	}
	swapIx, err := NewInstructionResponse(r.SwapInstruction)
	if err != nil {
		return nil, err
	}
	wire.SwapInstruction = *swapIx
	if r.CleanupInstruction != nil {
		if wire.CleanupInstruction, err = NewInstructionResponse(r.CleanupInstruction); err != nil {
			return nil, err
		}
	}
	if wire.OtherInstructions, err = instructionsToWire(r.OtherInstructions); err != nil {
		return nil, err
	}

	wire.AddressLookupTableAddresses = make([]string, 0, len(r.AddressLookupTableAddresses))
	for _, pk := range r.AddressLookupTableAddresses {
		wire.AddressLookupTableAddresses = append(wire.AddressLookupTableAddresses, codec.EncodeAddress(pk))
	}

	return json.Marshal(wire)
}
