// Package service contains the business logic.
//
// It sits between the handler and repository layers. Every tenant-scoped
// table is served by a Resource: cached listings and mutations that drop the
// cache groups built from the table and answer with a localized
// notification. Failures come back as *errs.HTTPError carrying the failure
// notification. Balances, silo stock, rainfall summaries, lookups and
// reports have their own services.
package service
