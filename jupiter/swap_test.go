package jupiter

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swapInstructionsFixture = `{
	"tokenLedgerInstruction": null,
	"computeBudgetInstructions": [
		{
			"programId": "ComputeBudget111111111111111111111111111111",
			"accounts": [],
			"data": "AsBcFQA="
		},
		{
			"programId": "ComputeBudget111111111111111111111111111111",
			"accounts": [],
			"data": "AwQXAQAAAAAA"
		}
	],
	"setupInstructions": [
		{
			"programId": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
			"accounts": [
				{"pubkey": "2AQdpHJ2JpcEgPiATUXjQxA8QmafFegfQwSLWSprPicm", "isSigner": true, "isWritable": true}
			],
			"data": "EQ=="
		}
	],
	"swapInstruction": {
		"programId": "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
		"accounts": [
			{"pubkey": "2AQdpHJ2JpcEgPiATUXjQxA8QmafFegfQwSLWSprPicm", "isSigner": true, "isWritable": true},
			{"pubkey": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"},
			{"pubkey": "So11111111111111111111111111111111111111112", "isWritable": true}
		],
		"data": "5RfLl3rjrSoBAAAAB2QAAUBCDwAAAAAAQKa/BwAAAAAyAAA="
	},
	"cleanupInstruction": {
		"programId": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
		"accounts": [
			{"pubkey": "2AQdpHJ2JpcEgPiATUXjQxA8QmafFegfQwSLWSprPicm", "isSigner": true, "isWritable": true}
		],
		"data": "CQ=="
	},
	"otherInstructions": [],
	"addressLookupTableAddresses": ["whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"],
	"prioritizationFeeLamports": 5000,
	"computeUnitLimit": 1400000,
	"prioritizationType": {
		"computeBudget": {"microLamports": 1000, "estimatedMicroLamports": 902}
	}
}`

func TestSwapResponse_Decode(t *testing.T) {
	raw := `{"swapTransaction":"QQ==","lastValidBlockHeight":100}`

	var res SwapResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	assert.Equal(t, []byte{0x41}, []byte(res.SwapTransaction))
	assert.Equal(t, uint64(100), res.LastValidBlockHeight)
	assert.Nil(t, res.PrioritizationType)
	assert.Nil(t, res.DynamicSlippageReport)
}

func TestSwapResponse_DecodeFull(t *testing.T) {
	raw := `{
		"swapTransaction": "QUJD",
		"lastValidBlockHeight": 268520000,
		"prioritizationFeeLamports": 5000,
		"computeUnitLimit": 200000,
		"prioritizationType": {"jito": {"lamports": 5000}},
		"dynamicSlippageReport": {
			"slippageBps": 42,
			"otherAmount": 49900000000,
			"simulatedIncurredSlippageBps": -3,
			"amplificationRatio": "1.5"
		}
	}`

	var res SwapResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	assert.Equal(t, []byte("ABC"), []byte(res.SwapTransaction))
	assert.Equal(t, uint64(5000), res.PrioritizationFeeLamports)
	require.NotNil(t, res.PrioritizationType)
	require.NotNil(t, res.PrioritizationType.Jito)
	assert.Equal(t, uint64(5000), res.PrioritizationType.Jito.Lamports)
	assert.Nil(t, res.PrioritizationType.ComputeBudget)

	require.NotNil(t, res.DynamicSlippageReport)
	assert.Equal(t, uint16(42), res.DynamicSlippageReport.SlippageBps)
	require.NotNil(t, res.DynamicSlippageReport.SimulatedIncurredSlippageBps)
	assert.Equal(t, int16(-3), *res.DynamicSlippageReport.SimulatedIncurredSlippageBps)
	require.NotNil(t, res.DynamicSlippageReport.AmplificationRatio)
	assert.Equal(t, "1.5", res.DynamicSlippageReport.AmplificationRatio.String())
}

func TestSwapResponse_BadBase64(t *testing.T) {
	raw := `{"swapTransaction":"%%%","lastValidBlockHeight":100}`
	var res SwapResponse
	assert.Error(t, json.Unmarshal([]byte(raw), &res))
}

func TestSwapRequest_FlattensConfig(t *testing.T) {
	var quote QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(quoteFixture), &quote))

	req := SwapRequest{
		UserPublicKey:     solana.MustPublicKeyFromBase58(testWallet),
		QuoteResponse:     quote,
		TransactionConfig: DefaultTransactionConfig(),
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	// Config fields sit at the top level of the body, next to the quote.
	assert.Equal(t, testWallet, m["userPublicKey"])
	assert.Contains(t, m, "quoteResponse")
	assert.Equal(t, true, m["wrapAndUnwrapSol"])
	assert.Equal(t, true, m["useSharedAccounts"])
	assert.NotContains(t, m, "TransactionConfig")
	assert.NotContains(t, m, "config")
}

func TestSwapInstructions_SlotAssembly(t *testing.T) {
	var res SwapInstructionsResponse
	require.NoError(t, json.Unmarshal([]byte(swapInstructionsFixture), &res))

	// Slot identity comes from the field names, not instruction content.
	assert.Nil(t, res.TokenLedgerInstruction)
	require.Len(t, res.ComputeBudgetInstructions, 2)
	require.Len(t, res.SetupInstructions, 1)
	require.NotNil(t, res.SwapInstruction)
	require.NotNil(t, res.CleanupInstruction)
	assert.Empty(t, res.OtherInstructions)

	assert.Equal(t, computeBudget, res.ComputeBudgetInstructions[0].ProgramID().String())
	assert.Equal(t, jupiterProgram, res.SwapInstruction.ProgramID().String())
	assert.Equal(t, tokenProgram, res.CleanupInstruction.ProgramID().String())

	accounts := res.SwapInstruction.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, testWallet, accounts[0].PublicKey.String())
	assert.True(t, accounts[0].IsSigner)
	assert.True(t, accounts[0].IsWritable)
	assert.False(t, accounts[1].IsSigner)
	assert.False(t, accounts[1].IsWritable)
	assert.True(t, accounts[2].IsWritable)

	require.Len(t, res.AddressLookupTableAddresses, 1)
	assert.Equal(t, whirlpoolAmmKey, res.AddressLookupTableAddresses[0].String())

	assert.Equal(t, uint64(5000), res.PrioritizationFeeLamports)
	assert.Equal(t, uint32(1400000), res.ComputeUnitLimit)
	require.NotNil(t, res.PrioritizationType)
	require.NotNil(t, res.PrioritizationType.ComputeBudget)
	assert.Equal(t, uint64(1000), res.PrioritizationType.ComputeBudget.MicroLamports)
}

func TestSwapInstructions_RoundTrip(t *testing.T) {
	var res SwapInstructionsResponse
	require.NoError(t, json.Unmarshal([]byte(swapInstructionsFixture), &res))

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var again SwapInstructionsResponse
	require.NoError(t, json.Unmarshal(data, &again))

	assert.Equal(t, res.SwapInstruction.ProgramID(), again.SwapInstruction.ProgramID())
	assert.Equal(t, res.SwapInstruction.Accounts(), again.SwapInstruction.Accounts())
	assert.Equal(t, res.AddressLookupTableAddresses, again.AddressLookupTableAddresses)
	assert.Equal(t, res.PrioritizationFeeLamports, again.PrioritizationFeeLamports)
	assert.Len(t, again.ComputeBudgetInstructions, 2)
}

func TestSwapInstructions_BadInstructionAddress(t *testing.T) {
	raw := `{"swapInstruction": {"programId": "abc", "accounts": [], "data": ""}}`
	var res SwapInstructionsResponse
	err := json.Unmarshal([]byte(raw), &res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "swapInstruction.programId")
}
