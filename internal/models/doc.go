// Package models defines the core domain models for the phone book.
//
// The following models are used:
//   - Entry: a shared (name, phone) contact record with a unique identity
//   - User: a registered account identified by a unique username
//
// Entries are immutable after creation: there are no edit or delete flows,
// and every authenticated identity (including guests) sees the same shared
// entry set.
//
// Validation lives next to the models so that both the advisory client-side
// checks and the authoritative server-side checks share one definition.
package models
