package billing_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCharge(t *testing.T, businessID kernel.UUID, amount string) *billing.Charge {
	t.Helper()

	charge, err := billing.NewCharge(
		kernel.NewUUID(), kernel.NewUUID(), businessID,
		decimal.RequireFromString(amount),
		"Delivery fee - Cafe Aroma",
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return charge
}

func TestNewInvoice(t *testing.T) {
	businessID := kernel.NewUUID()
	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	now := time.Now().UTC()

	t.Run("should derive items and total from charges", func(t *testing.T) {
		charges := []*billing.Charge{
			testCharge(t, businessID, "12.50"),
			testCharge(t, businessID, "7.25"),
			testCharge(t, businessID, "0.01"),
		}

		invoice, err := billing.NewInvoice(
			kernel.NewUUID(), businessID, "INV-20250601-0001",
			periodStart, periodEnd,
			billing.InvoiceTypeStandard, nil, "", kernel.NewUUID(), now,
			charges,
		)

		require.NoError(t, err)
		require.NoError(t, invoice.Validate())
		assert.Len(t, invoice.Items(), 3)
		assert.True(t, invoice.TotalAmount().Equal(decimal.RequireFromString("19.76")))
		assert.Equal(t, billing.InvoiceStatusDraft, invoice.Status())
		assert.Equal(t, billing.InvoiceTypeStandard, invoice.Type())

		for i, item := range invoice.Items() {
			require.NotNil(t, item.DeliveryID())
			assert.True(t, item.DeliveryID().IsEqual(charges[i].DeliveryID()))
			assert.True(t, item.Amount().Equal(charges[i].Amount()))
			assert.Equal(t, charges[i].Description(), item.Description())
		}
	})

	t.Run("should start proforma invoices in Proforma status", func(t *testing.T) {
		invoice, err := billing.NewInvoice(
			kernel.NewUUID(), businessID, "PRO-20250601-0001",
			periodStart, periodEnd,
			billing.InvoiceTypeProforma, nil, "", kernel.NewUUID(), now,
			[]*billing.Charge{testCharge(t, businessID, "5.00")},
		)

		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusProforma, invoice.Status())
	})

	t.Run("should reject an empty charge set", func(t *testing.T) {
		invoice, err := billing.NewInvoice(
			kernel.NewUUID(), businessID, "INV-20250601-0002",
			periodStart, periodEnd,
			billing.InvoiceTypeStandard, nil, "", kernel.NewUUID(), now,
			nil,
		)

		require.Error(t, err)
		assert.Nil(t, invoice)
		assert.ErrorIs(t, err, billing.ErrInvoiceHasNoCharges)
	})

	t.Run("should reject a period end before the start", func(t *testing.T) {
		invoice, err := billing.NewInvoice(
			kernel.NewUUID(), businessID, "INV-20250601-0003",
			periodEnd, periodStart,
			billing.InvoiceTypeStandard, nil, "", kernel.NewUUID(), now,
			[]*billing.Charge{testCharge(t, businessID, "5.00")},
		)

		require.Error(t, err)
		assert.Nil(t, invoice)
	})

	t.Run("should reject an unknown invoice type", func(t *testing.T) {
		invoice, err := billing.NewInvoice(
			kernel.NewUUID(), businessID, "INV-20250601-0004",
			periodStart, periodEnd,
			billing.InvoiceTypeUnknown, nil, "", kernel.NewUUID(), now,
			[]*billing.Charge{testCharge(t, businessID, "5.00")},
		)

		require.Error(t, err)
		assert.Nil(t, invoice)
	})

	t.Run("should keep due date and notes", func(t *testing.T) {
		dueDate := periodEnd.AddDate(0, 0, 14)

		invoice, err := billing.NewInvoice(
			kernel.NewUUID(), businessID, "INV-20250601-0005",
			periodStart, periodEnd,
			billing.InvoiceTypeStandard, &dueDate, "net 14", kernel.NewUUID(), now,
			[]*billing.Charge{testCharge(t, businessID, "5.00")},
		)

		require.NoError(t, err)
		require.NotNil(t, invoice.DueDate())
		assert.Equal(t, dueDate, *invoice.DueDate())
		assert.Equal(t, "net 14", invoice.Notes())
	})
}

func TestRestoreInvoice(t *testing.T) {
	businessID := kernel.NewUUID()
	periodStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	deliveryID := kernel.NewUUID()
	item, err := billing.NewInvoiceItem(kernel.NewUUID(), &deliveryID, decimal.RequireFromString("12.50"), "Delivery fee")
	require.NoError(t, err)

	t.Run("should restore a matching invoice", func(t *testing.T) {
		invoice, err := billing.RestoreInvoice(
			kernel.NewUUID(), businessID, "INV-20250601-0001",
			periodStart, periodEnd,
			decimal.RequireFromString("12.50"),
			billing.InvoiceStatusDraft, billing.InvoiceTypeStandard,
			nil, "", kernel.NewUUID(), time.Now().UTC(),
			[]billing.InvoiceItem{item},
		)

		require.NoError(t, err)
		assert.True(t, invoice.TotalAmount().Equal(decimal.RequireFromString("12.50")))
	})

	t.Run("should reject a total that does not match the items", func(t *testing.T) {
		invoice, err := billing.RestoreInvoice(
			kernel.NewUUID(), businessID, "INV-20250601-0002",
			periodStart, periodEnd,
			decimal.RequireFromString("99.99"),
			billing.InvoiceStatusDraft, billing.InvoiceTypeStandard,
			nil, "", kernel.NewUUID(), time.Now().UTC(),
			[]billing.InvoiceItem{item},
		)

		require.Error(t, err)
		assert.Nil(t, invoice)
		assert.ErrorIs(t, err, billing.ErrInvoiceTotalMismatch)
	})
}

func TestNewInvoiceNumber(t *testing.T) {
	on := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	t.Run("should format standard numbers", func(t *testing.T) {
		number := billing.NewInvoiceNumber(billing.InvoiceTypeStandard, on)
		assert.Regexp(t, regexp.MustCompile(`^INV-20250615-\d{4}$`), number)
	})

	t.Run("should format proforma numbers", func(t *testing.T) {
		number := billing.NewInvoiceNumber(billing.InvoiceTypeProforma, on)
		assert.Regexp(t, regexp.MustCompile(`^PRO-20250615-\d{4}$`), number)
	})
}

func TestInvoiceTypeFromString(t *testing.T) {
	t.Run("should parse known types", func(t *testing.T) {
		testCases := []struct {
			name     string
			expected billing.InvoiceType
		}{
			{"INVOICE", billing.InvoiceTypeStandard},
			{"PROFORMA", billing.InvoiceTypeProforma},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should parse %s", tc.name), func(t *testing.T) {
				parsed, err := billing.InvoiceTypeFromString(tc.name)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, parsed)
			})
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "UNKNOWN", "invoice", "CREDIT_NOTE"} {
			_, err := billing.InvoiceTypeFromString(name)
			require.Error(t, err)
		}
	})
}
