// Package kernel provides core domain primitives shared by every aggregate in
// the courier platform. Currently it contains the UUID value object used as
// the identifier type for deliveries, charges, invoices, riders, and
// businesses.
//
// The package follows Domain-Driven Design principles: primitives are
// immutable value objects constructed through validating factory functions,
// and the zero value is always detectably invalid.
package kernel
