// Package session is an in-process session store.
//
// A Store holds one record per identifier and hides records whose TTL has
// passed. Load hands out detached Session copies; nothing a handler does to a
// Session reaches the Store until it is passed back to Save. TTL is renewed
// by Save only, never by reads.
//
// A Manager adds find-or-create semantics and the Set-Cookie / Cookie header
// encoding of the identifier.
package session
