// Package models defines the core domain models for TripSync.
//
// # Models
//
//   - Trip: A planned group trip; owns participants, activities, packing
//     items, and expenses
//   - Participant: A person on a trip, identified by an opaque unique ID
//   - Activity: A scheduled event during the trip
//   - Item: A packing-list entry, optionally assigned to a participant
//   - Expense: A shared cost fronted by one participant and split among
//     a set of sharers, equally or with explicit custom amounts
//
// # Design Principles
//
//  1. **Pure data**: Models carry no behavior beyond derived fields and
//     validation; the split/balance/settlement math lives in the ledger
//     package.
//  2. **Avoid circular references**: Relationships use ID strings, never
//     pointers. An Expense refers to its payer and sharers by participant ID.
//  3. **Permissive references**: An expense may hold a sharer ID that no
//     longer matches a trip participant (the participant was removed); that
//     is referential slack, not an error, and the ledger treats such shares
//     as contributing zero.
//  4. **Validate before commit**: Expense.Validate rejects invalid writes
//     with a descriptive sentinel error; an expense is never persisted in an
//     invalid state.
package models
