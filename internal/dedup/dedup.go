// Package dedup computes stable per-transaction fingerprints and tracks
// which fingerprints an account has already imported, across runs and within
// a single file.
package dedup

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fingerprint derives the duplicate-detection key for a transaction. It
// hashes the account, posted date, amount and normalized description rather
// than the raw row, so whitespace or column-order differences between
// repeated exports of the same statement do not defeat detection.
func Fingerprint(accountID int64, postedDate time.Time, amount decimal.Decimal, description string) string {
	data := fmt.Sprintf("%d|%s|%s|%s",
		accountID,
		postedDate.Format("2006-01-02"),
		amount.StringFixed(2),
		normalizeDescription(description))

	return fmt.Sprintf("%x", sha256.Sum256([]byte(data)))
}

func normalizeDescription(description string) string {
	return strings.Join(strings.Fields(strings.ToLower(description)), " ")
}

// Detector answers whether a fingerprint has been seen before, for one
// account. It is seeded with the account's persisted fingerprints and then
// also remembers fingerprints observed during the current file, so two
// identical rows in one file collapse to the first.
type Detector struct {
	seen map[string]struct{}
}

// NewDetector builds a detector seeded with already-persisted fingerprints.
func NewDetector(persisted []string) *Detector {
	seen := make(map[string]struct{}, len(persisted))
	for _, fp := range persisted {
		seen[fp] = struct{}{}
	}

	return &Detector{seen: seen}
}

// Seen reports whether fp was already known, and marks it known either way.
func (d *Detector) Seen(fp string) bool {
	if _, ok := d.seen[fp]; ok {
		return true
	}
	d.seen[fp] = struct{}{}

	return false
}
