// Package billing provides the domain model for the charge ledger and invoice
// generation.
//
// The package includes:
//   - Charge: the single authoritative billable amount for one delivery
//   - Invoice and InvoiceItem: a numbered aggregation of charges over a period
//   - NewInvoiceNumber: candidate generator for unique invoice numbers
//
// Key business rules:
//   - At most one charge exists per delivery; zeroing a fee removes the charge
//   - An invoice's total is the exact decimal sum of its item amounts
//   - Each delivery is billed at most once; the persistence layer enforces
//     this with a uniqueness constraint on the item's delivery reference
package billing
