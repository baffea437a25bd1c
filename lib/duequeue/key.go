// Copyright 2026 The Cadenza Authors
// SPDX-License-Identifier: Apache-2.0

package duequeue

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Key identifies one collection-queue entry. The encoded form is,
// byte-exact:
//
//	[8] due time, big-endian, sign bit flipped
//	[2] big-endian length of the plan identifier (8)
//	[8] plan identifier, big-endian
//	[*] subscriber identifier (unprefixed tail)
//
// Flipping the sign bit maps the signed due time onto the unsigned
// range monotonically — naive big-endian encoding of a signed integer
// would sort every negative time after every positive one. The length
// prefix frames the plan identifier so a scan decoder can never read
// plan bytes as subscriber bytes; it is fixed at 8 today, but the
// layout is shared with any store client and keeps non-terminal
// components self-describing. The subscriber needs no frame: it is
// the final component, so it is simply the rest of the key.
//
// Byte-lexicographic order of encoded keys therefore equals ordering
// by due time, then plan, then subscriber.
type Key struct {
	// Due is the subscription's next collection time, Unix seconds.
	Due int64

	// Plan is the owning plan's identifier.
	Plan uint64

	// Subscriber is the subscribing account's identifier.
	Subscriber string
}

const planFrameLen = 8

// signBias flips the sign bit so that unsigned comparison of the
// result matches signed comparison of the input.
func signBias(v int64) uint64 {
	return uint64(v) ^ (1 << 63)
}

// Encode serializes the key in the layout above.
func (k Key) Encode() []byte {
	buf := make([]byte, 0, 8+2+planFrameLen+len(k.Subscriber))
	buf = binary.BigEndian.AppendUint64(buf, signBias(k.Due))
	buf = binary.BigEndian.AppendUint16(buf, planFrameLen)
	buf = binary.BigEndian.AppendUint64(buf, k.Plan)
	buf = append(buf, k.Subscriber...)
	return buf
}

// DecodeKey reverses Encode. The framing must parse exactly — a key
// that is too short for its own length prefix means the index is
// corrupted, which is not a recoverable condition for the scanner.
func DecodeKey(encoded []byte) (Key, error) {
	if len(encoded) < 10 {
		return Key{}, fmt.Errorf("duequeue: key too short: %d bytes", len(encoded))
	}
	due := int64(binary.BigEndian.Uint64(encoded[:8]) ^ (1 << 63))
	planLen := int(binary.BigEndian.Uint16(encoded[8:10]))
	if planLen != planFrameLen {
		return Key{}, fmt.Errorf("duequeue: plan frame is %d bytes, want %d", planLen, planFrameLen)
	}
	if len(encoded) < 10+planLen {
		return Key{}, fmt.Errorf("duequeue: plan frame exceeds key: want %d bytes, have %d",
			planLen, len(encoded)-10)
	}
	return Key{
		Due:        due,
		Plan:       binary.BigEndian.Uint64(encoded[10 : 10+planLen]),
		Subscriber: string(encoded[10+planLen:]),
	}, nil
}

// dueUpperBound returns the exclusive upper scan bound for "due time
// <= now": the 8-byte biased encoding of now+1 alone. Every key with
// due time <= now extends a strictly smaller 8-byte prefix, so the
// bare bound sorts after all of them and before every entry at
// now+1 or later. When now is the maximum time there is no successor
// to bias, and every entry qualifies; nil leaves the scan unbounded.
func dueUpperBound(now int64) []byte {
	if now == math.MaxInt64 {
		return nil
	}
	return binary.BigEndian.AppendUint64(nil, signBias(now+1))
}
