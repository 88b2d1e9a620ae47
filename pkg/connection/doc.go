// Package connection provides retry pacing for cube connection attempts.
//
// A cube that has just been switched on may not be advertising yet, and
// service discovery occasionally times out. Retry runs a connect function
// until it succeeds or the attempt budget is spent. Cancelling the context
// stops it early.
//
// # Backoff
//
// The pause after failed attempt n is
//
//	base(n) = min(250ms * 2^(n-1), 4s)
//	delay   = base(n) + random(0, base(n) * 0.25)
//
// so a three-attempt dial waits roughly 250ms and then 500ms.
package connection
