package ledger

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const referencePrefix = "TXN"

// newReferenceNumber generates a correlation reference for postings that did
// not supply one: a stable prefix, the current UTC date and a short random
// suffix. Uniqueness aids external reconciliation; it is not a primary key.
func newReferenceNumber() string {
	id := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(id[:4]))
	return referencePrefix + time.Now().UTC().Format("20060102") + suffix
}
