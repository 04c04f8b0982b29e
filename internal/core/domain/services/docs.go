// Package services contains stateless domain services that coordinate rules
// spanning more than one aggregate. Currently it provides the AccessPolicy,
// the single capability-check function consulted by every command handler.
package services
