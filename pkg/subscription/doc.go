// Package subscription routes cube notifications to handlers.
//
// A Registry holds one decoder and an ordered list of handlers per channel.
// Incoming bytes are decoded exactly once per notification; the decoded
// event is then delivered to every handler of that channel in the order the
// handlers were subscribed.
//
// # Decoding
//
// NewRegistry binds the wire decoders for the Identification, Motion,
// Button, Battery and Motor channels. Any other channel (Config in
// particular) passes its payload through as a wire.RawEvent.
//
// # Failure Handling
//
// When a payload fails to decode, Dispatch returns the error and no handler
// is invoked. Handlers never observe partial results.
//
// # Concurrency
//
// Subscribe and Dispatch may be called from different goroutines. Handler
// lists are replaced on every Subscribe rather than mutated, so Dispatch
// iterates a snapshot without holding the lock while handlers run.
package subscription
