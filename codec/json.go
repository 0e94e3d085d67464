package codec

import (
	"encoding/json"
	"fmt"
)

// Uint64String is a uint64 that travels as a JSON decimal string.
type Uint64String uint64

func (v Uint64String) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeAmount(uint64(v)))
}

func (v *Uint64String) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("amount: expected decimal string, got %s", data)
	}
	u, err := DecodeAmount("amount", s)
	if err != nil {
		return err
	}
	*v = Uint64String(u)
	return nil
}

// Base64Data is a byte slice that travels as a JSON base64 string
// (standard alphabet, padded).
type Base64Data []byte

func (b Base64Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeBlob(b))
}

func (b *Base64Data) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("blob: expected base64 string, got %s", data)
	}
	raw, err := DecodeBlob("data", s)
	if err != nil {
		return err
	}
	*b = raw
	return nil
}
