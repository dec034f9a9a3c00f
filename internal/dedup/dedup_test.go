package dedup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var date = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint(1, date, decimal.RequireFromString("-4.50"), "COFFEE SHOP")
	b := Fingerprint(1, date, decimal.RequireFromString("-4.50"), "COFFEE SHOP")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprint_IgnoresFormattingDifferences(t *testing.T) {
	base := Fingerprint(1, date, decimal.RequireFromString("-4.50"), "COFFEE SHOP")

	assert.Equal(t, base, Fingerprint(1, date, decimal.RequireFromString("-4.5"), "coffee shop"))
	assert.Equal(t, base, Fingerprint(1, date, decimal.RequireFromString("-4.50"), "  Coffee   Shop  "))
}

func TestFingerprint_DistinguishesFields(t *testing.T) {
	base := Fingerprint(1, date, decimal.RequireFromString("-4.50"), "COFFEE SHOP")

	assert.NotEqual(t, base, Fingerprint(2, date, decimal.RequireFromString("-4.50"), "COFFEE SHOP"))
	assert.NotEqual(t, base, Fingerprint(1, date.AddDate(0, 0, 1), decimal.RequireFromString("-4.50"), "COFFEE SHOP"))
	assert.NotEqual(t, base, Fingerprint(1, date, decimal.RequireFromString("-4.51"), "COFFEE SHOP"))
	assert.NotEqual(t, base, Fingerprint(1, date, decimal.RequireFromString("-4.50"), "TEA SHOP"))
}

func TestDetector_SeededFromPersisted(t *testing.T) {
	d := NewDetector([]string{"aaa", "bbb"})

	assert.True(t, d.Seen("aaa"))
	assert.False(t, d.Seen("ccc"))
}

func TestDetector_WithinFileDuplicates(t *testing.T) {
	d := NewDetector(nil)

	// first occurrence survives, the rest are duplicates of it
	assert.False(t, d.Seen("fp1"))
	assert.True(t, d.Seen("fp1"))
	assert.True(t, d.Seen("fp1"))
}
