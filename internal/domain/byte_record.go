package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxCodePoint is the largest code point a ByteRecord can carry (one byte).
const MaxCodePoint = 0xFF

// ByteRecord is one transferred unit: a character and its radix views.
// Values are constructed once by NewByteRecord and never mutated.
type ByteRecord struct {
	Character rune
	CodePoint int
	Hex       string
	Binary    string
}

// NewByteRecord builds the record for r. Code points above MaxCodePoint
// (including utf8.RuneError produced by invalid input) are rejected.
func NewByteRecord(r rune) (ByteRecord, error) {
	if r < 0 || r > MaxCodePoint {
		return ByteRecord{}, &OpError{
			Op:   "domain.byte_record",
			Kind: KindEncoding,
			Err:  fmt.Errorf("%U: %w", r, ErrEncoding),
		}
	}

	cp := int(r)
	return ByteRecord{
		Character: r,
		CodePoint: cp,
		Hex:       fmt.Sprintf("%02X", cp),
		Binary:    fmt.Sprintf("%08b", cp),
	}, nil
}

// Checksum returns the channel diagnostic for the record.
func (b ByteRecord) Checksum() int {
	return Checksum(b.Binary)
}

// Checksum sums the binary digits of a bit string, mod 256.
// It is a diagnostic only; nothing is ever rejected on its value.
func Checksum(binary string) int {
	sum := 0
	for _, c := range binary {
		if c == '1' {
			sum++
		}
	}
	return sum % 256
}

type byteRecordJSON struct {
	Character string `json:"character"`
	CodePoint int    `json:"code_point"`
	Hex       string `json:"hex"`
	Binary    string `json:"binary"`
}

func (b ByteRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(byteRecordJSON{
		Character: string(b.Character),
		CodePoint: b.CodePoint,
		Hex:       b.Hex,
		Binary:    b.Binary,
	})
}

func (b *ByteRecord) UnmarshalJSON(data []byte) error {
	var raw byteRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r, _ := utf8.DecodeRuneInString(raw.Character)
	*b = ByteRecord{
		Character: r,
		CodePoint: raw.CodePoint,
		Hex:       raw.Hex,
		Binary:    raw.Binary,
	}
	return nil
}

// Payload is the ordered in-flight file content. Order defines reconstruction.
type Payload []ByteRecord

// EncodePayload maps every character of content to a ByteRecord, in order.
// The empty string yields an empty (non-nil) payload.
func EncodePayload(content string) (Payload, error) {
	out := make(Payload, 0, utf8.RuneCountInString(content))
	for i, r := range content {
		rec, err := NewByteRecord(r)
		if err != nil {
			return nil, &OpError{
				Op:   "domain.encode_payload",
				Kind: KindEncoding,
				Err:  fmt.Errorf("offset %d: %w", i, err),
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// Text concatenates the characters of the payload in stored order.
func (p Payload) Text() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, rec := range p {
		b.WriteRune(rec.Character)
	}
	return b.String()
}

// Clone returns a copy backed by a new array.
func (p Payload) Clone() Payload {
	if p == nil {
		return Payload{}
	}
	out := make(Payload, len(p))
	copy(out, p)
	return out
}
