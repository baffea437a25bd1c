// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitekv implements the kv.Store contract on a single
// SQLite database: one table of BLOB keys and values, byte-ordered
// range scans via the primary key index (SQLite compares BLOBs with
// memcmp, which is exactly the ordering the due-queue key encoding
// assumes), and kv.Transactional via savepoints.
//
// The store opens a single connection. The engine's execution model
// is single-invocation — one external call at a time, run to
// completion — so there is nothing for a connection pool to do here.
package sqlitekv
