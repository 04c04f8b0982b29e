// Package commands contains the write-side business operations.
// Every handler follows the same shape: validate the command, authorize the
// actor, open a unit of work, mutate aggregates through the domain model,
// commit, and only then dispatch notifications.
package commands

import (
	"context"

	"courierhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composition it needs, which keeps
// test doubles small.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// EventRepoFactory provides access to the audit event repository within a transaction.
	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// ChargeRepoFactory provides access to the charge repository within a transaction.
	ChargeRepoFactory interface {
		ChargeRepository() ports.ChargeRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// RiderRepoFactory provides access to the rider directory within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// BusinessRepoFactory provides access to the business directory within a transaction.
	BusinessRepoFactory interface {
		BusinessRepository() ports.BusinessRepository
	}

	// DeliveryUoW serves lifecycle commands that touch a delivery, its audit
	// log, and the rider directory: assignment and pending resolution.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		EventRepoFactory
		RiderRepoFactory
	}

	// DeliveryUoWFactory creates DeliveryUoW instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// CreateDeliveryUoW adds the business directory and charge ledger to the
	// delivery scope; creation validates the business, writes the initial
	// charge for fee-bearing deliveries, and notifies its ops contact.
	CreateDeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		EventRepoFactory
		ChargeRepoFactory
		RiderRepoFactory
		BusinessRepoFactory
	}

	// CreateDeliveryUoWFactory creates CreateDeliveryUoW instances.
	CreateDeliveryUoWFactory interface {
		Create() CreateDeliveryUoW
	}

	// ProgressUoW serves rider progress updates, which write the delivery,
	// its audit event, on Delivered a charge, and on Failed look up the
	// business ops contact.
	ProgressUoW interface {
		TxManager
		DeliveryRepoFactory
		EventRepoFactory
		ChargeRepoFactory
		BusinessRepoFactory
	}

	// ProgressUoWFactory creates ProgressUoW instances.
	ProgressUoWFactory interface {
		Create() ProgressUoW
	}

	// FeeUoW serves fee corrections, which write the delivery and keep the
	// charge ledger in sync.
	FeeUoW interface {
		TxManager
		DeliveryRepoFactory
		ChargeRepoFactory
	}

	// FeeUoWFactory creates FeeUoW instances.
	FeeUoWFactory interface {
		Create() FeeUoW
	}

	// BillingUoW serves invoice generation across the charge ledger, the
	// delivery backfill set, and invoice persistence.
	BillingUoW interface {
		TxManager
		DeliveryRepoFactory
		ChargeRepoFactory
		InvoiceRepoFactory
		BusinessRepoFactory
	}

	// BillingUoWFactory creates BillingUoW instances.
	BillingUoWFactory interface {
		Create() BillingUoW
	}
)
