// Package services holds DocLocker's business logic: account registration and
// authentication, and the owner-scoped document catalog layered over a
// filestore.Store.
//
// Business outcomes are reported with the sentinels in internal/common and
// should be matched with errors.Is. Anything else is an infrastructure
// failure wrapped with %w.
package services
