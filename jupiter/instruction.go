package jupiter

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/jup-ag/jupiter-swap-api-client/codec"
)

// AccountMetaResponse is the wire form of an instruction account reference.
// The signer/writable flags are optional on the wire and read as false when
// absent.
type AccountMetaResponse struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

// InstructionResponse is the wire form of an instruction: a base58 program
// id, an ordered account list and a base64 payload.
type InstructionResponse struct {
	ProgramID string                `json:"programId"`
	Accounts  []AccountMetaResponse `json:"accounts"`
	Data      codec.Base64Data      `json:"data"`
}

// NewInstructionResponse converts a chain-native instruction into its wire
// form.
func NewInstructionResponse(ix solana.Instruction) (*InstructionResponse, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, fmt.Errorf("instruction data: %w", err)
	}
	accounts := make([]AccountMetaResponse, 0, len(ix.Accounts()))
	for _, acc := range ix.Accounts() {
		accounts = append(accounts, AccountMetaResponse{
			Pubkey:     codec.EncodeAddress(acc.PublicKey),
			IsSigner:   acc.IsSigner,
			IsWritable: acc.IsWritable,
		})
	}
	return &InstructionResponse{
		ProgramID: codec.EncodeAddress(ix.ProgramID()),
		Accounts:  accounts,
		Data:      codec.Base64Data(data),
	}, nil
}

// ToInstruction reconstructs the chain-native instruction. The field name is
// used only for error context.
func (r *InstructionResponse) ToInstruction(field string) (solana.Instruction, error) {
	programID, err := codec.DecodeAddress(field+".programId", r.ProgramID)
	if err != nil {
		return nil, err
	}
	accounts := make([]*solana.AccountMeta, 0, len(r.Accounts))
	for i, acc := range r.Accounts {
		pubkey, err := codec.DecodeAddress(fmt.Sprintf("%s.accounts[%d].pubkey", field, i), acc.Pubkey)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, &solana.AccountMeta{
			PublicKey:  pubkey,
			IsSigner:   acc.IsSigner,
			IsWritable: acc.IsWritable,
		})
	}
	return solana.NewInstruction(programID, accounts, []byte(r.Data)), nil
}

func instructionFromWire(field string, r *InstructionResponse) (solana.Instruction, error) {
	if r == nil {
		return nil, nil
	}
	return r.ToInstruction(field)
}

func instructionsFromWire(field string, rs []InstructionResponse) ([]solana.Instruction, error) {
	if len(rs) == 0 {
		return nil, nil
	}
	ixs := make([]solana.Instruction, 0, len(rs))
	for i := range rs {
		ix, err := rs[i].ToInstruction(fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		ixs = append(ixs, ix)
	}
	return ixs, nil
}

func instructionsToWire(ixs []solana.Instruction) ([]InstructionResponse, error) {
	if len(ixs) == 0 {
		return nil, nil
	}
	out := make([]InstructionResponse, 0, len(ixs))
	for _, ix := range ixs {
		w, err := NewInstructionResponse(ix)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, nil
}
