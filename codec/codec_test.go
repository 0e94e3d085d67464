package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	solMint  = "So11111111111111111111111111111111111111112"
)

func TestAmount_RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 1_000_000, 50_000_000_000, 18446744073709551615} {
		got, err := DecodeAmount("amount", EncodeAmount(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeAmount_Malformed(t *testing.T) {
	for _, s := range []string{"", "abc", "12x", "-1", "1.5", "18446744073709551616"} {
		_, err := DecodeAmount("inAmount", s)
		require.Error(t, err, "input %q", s)

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "inAmount", decodeErr.Field)
		assert.Equal(t, s, decodeErr.Value)
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	for _, s := range []string{usdcMint, solMint} {
		pk, err := DecodeAddress("mint", s)
		require.NoError(t, err)
		assert.Equal(t, s, EncodeAddress(pk))
	}
}

func TestDecodeAddress_WrongLength(t *testing.T) {
	// "abc" is valid base58 but decodes to fewer than 32 bytes.
	_, err := DecodeAddress("inputMint", "abc")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "inputMint", decodeErr.Field)
	assert.Contains(t, decodeErr.Error(), "expected 32 bytes")
}

func TestDecodeAddress_InvalidAlphabet(t *testing.T) {
	// "0", "O", "I" and "l" are not in the base58 alphabet.
	_, err := DecodeAddress("outputMint", "0OIl")
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestBlob_RoundTrip(t *testing.T) {
	for _, b := range [][]byte{nil, {0x41}, {0x00, 0x01, 0x02, 0xff}} {
		got, err := DecodeBlob("data", EncodeBlob(b))
		require.NoError(t, err)
		assert.Equal(t, []byte(b), []byte(got))
	}
}

func TestDecodeBlob_Invalid(t *testing.T) {
	_, err := DecodeBlob("swapTransaction", "not base64!!")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "swapTransaction", decodeErr.Field)
}

func TestJoinSplitList(t *testing.T) {
	assert.Equal(t, "Orca,Raydium", JoinList([]string{"Orca", "Raydium"}))
	assert.Equal(t, []string{"Orca", "Raydium"}, SplitList("Orca,Raydium"))
	assert.Nil(t, SplitList(""))
	assert.Equal(t, "", JoinList(nil))
}

func TestUint64String_JSON(t *testing.T) {
	data, err := json.Marshal(Uint64String(1_000_000))
	require.NoError(t, err)
	assert.Equal(t, `"1000000"`, string(data))

	var v Uint64String
	require.NoError(t, json.Unmarshal([]byte(`"50000000000"`), &v))
	assert.Equal(t, Uint64String(50_000_000_000), v)

	// A bare JSON number is not the wire form; amounts travel as strings.
	err = json.Unmarshal([]byte(`1000000`), &v)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`"12x"`), &v)
	require.Error(t, err)
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestBase64Data_JSON(t *testing.T) {
	data, err := json.Marshal(Base64Data{0x41})
	require.NoError(t, err)
	assert.Equal(t, `"QQ=="`, string(data))

	var b Base64Data
	require.NoError(t, json.Unmarshal([]byte(`"QQ=="`), &b))
	assert.Equal(t, Base64Data{0x41}, b)

	assert.Error(t, json.Unmarshal([]byte(`"%%%"`), &b))
}
