// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Cadenza's standard CBOR encoding
// configuration.
//
// Every record persisted in the ledger store — plans, subscriptions,
// the plan-id counter — is encoded through this package so that all
// writers produce identical bytes for identical values. The encoder
// uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. Determinism
// matters for a store shared across implementations: a record read,
// decoded, and re-encoded unchanged must be byte-identical.
//
// Usage:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Persisted types carry `cbor` struct tags; types that also appear in
// CLI --json output carry `json` tags only (fxamacker/cbor reads json
// tags as fallback), never both on the same field.
package codec
