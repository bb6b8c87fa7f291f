// SPDX-License-Identifier: GPL-3.0-or-later

// Package dnswire is a DNS client message serializer and parser.
//
// [NewQuery] and [*Query] allow constructing and encoding a DNS query
// message with a single question. [ParseResponse] decodes a raw DNS
// response into a [*Message], and [ValidateResponse] checks that such a
// message answers a given query.
//
// Decoding is bounds-checked and never panics: malformed input, including
// truncated records and looping compression pointers, yields an error
// wrapping one of [ErrTruncatedPacket], [ErrCompressionLoop],
// [ErrReservedLabel] or [ErrNameTooLong]. Record data is returned as
// opaque bytes and is not interpreted according to the record type.
//
// All functions are pure and safe for concurrent use. The package does
// not perform I/O: sending the query and receiving the response is up
// to the caller.
package dnswire
