package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ShortCodeAlphabet is Crockford-style base32 without I, L, O and U.
const ShortCodeAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	ShortCodeLength = 7
	UmbrellaCounter = "umbrellas"
)

// NewRentalID returns RENT-YYYYMMDD-XXXXXX with six random uppercase hex digits.
func NewRentalID(now time.Time) (string, error) {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate rental id: %w", err)
	}
	return fmt.Sprintf("RENT-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(b[:]))), nil
}

// NewShortCode returns a random code of length n drawn from ShortCodeAlphabet.
func NewShortCode(n int) (string, error) {
	max := big.NewInt(int64(len(ShortCodeAlphabet)))
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}
		sb.WriteByte(ShortCodeAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}

func UmbrellaCode(seq int64) string {
	return fmt.Sprintf("UMB-%06d", seq)
}

// QRPayload builds the short link encoded into an umbrella's QR sticker.
func QRPayload(shortlinkBase, shortCode string) string {
	return strings.TrimRight(shortlinkBase, "/") + "/u/" + shortCode
}
