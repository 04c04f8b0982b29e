package billing

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Invoice number prefixes by type.
const (
	numberPrefixStandard = "INV"
	numberPrefixProforma = "PRO"
)

// NewInvoiceNumber generates a candidate invoice number of the form
// "<PREFIX>-<yyyymmdd>-<4 random digits>", e.g. "INV-20260829-0417" or
// "PRO-20260829-9031".
//
// The number is only a candidate: collisions are possible and the generator
// must be paired with an existence check plus the storage-level uniqueness
// constraint on the invoice number, retrying a bounded number of times.
func NewInvoiceNumber(invoiceType InvoiceType, on time.Time) string {
	prefix := numberPrefixStandard
	if invoiceType == InvoiceTypeProforma {
		prefix = numberPrefixProforma
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, on.Format("20060102"), rand.IntN(10000))
}
