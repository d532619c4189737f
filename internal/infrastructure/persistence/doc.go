// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer for users, sign-in nonces, contacts,
// invoices, payments and payment streams. Repositories validate domain
// entities before writing and translate missing rows and unique key
// violations into the sentinel errors of the apperr package.
package persistence
