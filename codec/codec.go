// Package codec holds the small per-field wire codecs shared by the request
// and response models: unsigned 64-bit amounts as decimal strings, account
// addresses as base58, binary payloads as base64 and string lists joined by
// commas. Keeping them here keeps the model types declarative.
package codec

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// AddressLength is the byte length every base58 address must decode to.
const AddressLength = 32

// DecodeError reports a wire value that could not be decoded into its domain
// form. Field and Value carry enough context to diagnose the offending input.
type DecodeError struct {
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: invalid value %q: %v", e.Field, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeAmount renders an unsigned amount as a decimal string. The service
// transmits u64 quantities as strings because some JSON consumers lose
// precision past 2^53.
func EncodeAmount(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// DecodeAmount parses a decimal-string amount back into a uint64.
func DecodeAmount(field, s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &DecodeError{Field: field, Value: s, Err: err}
	}
	return v, nil
}

// EncodeAddress renders an address as its base58 string form.
func EncodeAddress(pk solana.PublicKey) string {
	return pk.String()
}

// DecodeAddress parses a base58 address string, requiring exactly
// AddressLength bytes.
func DecodeAddress(field, s string) (solana.PublicKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return solana.PublicKey{}, &DecodeError{Field: field, Value: s, Err: err}
	}
	if len(raw) != AddressLength {
		return solana.PublicKey{}, &DecodeError{
			Field: field,
			Value: s,
			Err:   fmt.Errorf("expected %d bytes, got %d", AddressLength, len(raw)),
		}
	}
	return solana.PublicKeyFromBytes(raw), nil
}

// EncodeBlob renders raw bytes as standard padded base64. Encoding is total.
func EncodeBlob(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBlob parses a standard base64 string back into raw bytes.
func DecodeBlob(field, s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Field: field, Value: s, Err: err}
	}
	return b, nil
}

// JoinList renders a string list as a single comma-joined value, the form
// the quote endpoint expects for dex allow/deny lists.
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

// SplitList is the inverse of JoinList. An empty input yields nil.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
