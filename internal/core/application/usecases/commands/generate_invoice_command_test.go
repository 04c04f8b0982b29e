package commands_test

import (
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/domain/model/billing"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateInvoiceCommand_ValidInput(t *testing.T) {
	invoiceID := kernel.NewUUID()
	businessID := kernel.NewUUID()
	periodStart, periodEnd := billingPeriod()
	dueDate := periodEnd.AddDate(0, 0, 14)
	by := staffActor()

	cmd, err := commands.NewGenerateInvoiceCommand(
		invoiceID, businessID, periodStart, periodEnd,
		billing.InvoiceTypeStandard, &dueDate, "net 14", by)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, invoiceID, cmd.InvoiceID())
	assert.Equal(t, businessID, cmd.BusinessID())
	assert.Equal(t, periodStart, cmd.PeriodStart())
	assert.Equal(t, periodEnd, cmd.PeriodEnd())
	assert.Equal(t, billing.InvoiceTypeStandard, cmd.InvoiceType())
	require.NotNil(t, cmd.DueDate())
	assert.Equal(t, dueDate, *cmd.DueDate())
	assert.Equal(t, "net 14", cmd.Notes())
	assert.Equal(t, by, cmd.By())
}

func TestNewGenerateInvoiceCommand_OptionalFieldsMayBeEmpty(t *testing.T) {
	periodStart, periodEnd := billingPeriod()

	cmd, err := commands.NewGenerateInvoiceCommand(
		kernel.NewUUID(), kernel.NewUUID(), periodStart, periodEnd,
		billing.InvoiceTypeProforma, nil, "", staffActor())
	require.NoError(t, err)
	assert.Nil(t, cmd.DueDate())
	assert.Empty(t, cmd.Notes())
}

func TestNewGenerateInvoiceCommand_ZeroPeriod(t *testing.T) {
	_, periodEnd := billingPeriod()

	_, err := commands.NewGenerateInvoiceCommand(
		kernel.NewUUID(), kernel.NewUUID(), time.Time{}, periodEnd,
		billing.InvoiceTypeStandard, nil, "", staffActor())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGenerateInvoiceCommand_InvertedPeriod(t *testing.T) {
	periodStart, periodEnd := billingPeriod()

	_, err := commands.NewGenerateInvoiceCommand(
		kernel.NewUUID(), kernel.NewUUID(), periodEnd, periodStart,
		billing.InvoiceTypeStandard, nil, "", staffActor())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGenerateInvoiceCommand_UnknownInvoiceType(t *testing.T) {
	periodStart, periodEnd := billingPeriod()

	var unknown billing.InvoiceType
	_, err := commands.NewGenerateInvoiceCommand(
		kernel.NewUUID(), kernel.NewUUID(), periodStart, periodEnd,
		unknown, nil, "", staffActor())
	require.Error(t, err)
}

func TestGenerateInvoiceCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.GenerateInvoiceCommand // zero value, not constructed via constructor

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrGenerateInvoiceCommandIsNotConstructed)
}
