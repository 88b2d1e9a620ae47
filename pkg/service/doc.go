// Package service provides the session layer for a connected cube.
//
// A DeviceSession ties a transport.Peer to a subscription.Registry. It
// offers one method per cube command, typed reads for the readable
// channels, and per-channel subscription to decoded notifications.
//
// Example usage:
//
//	peer, err := transport.Dial(ctx, transport.DialConfig{Address: addr})
//	sess := service.NewDeviceSession(peer, service.SessionConfig{
//	    Logger: slog.Default(),
//	})
//	defer sess.Release()
//
//	service.Observe(sess, wire.ChannelButton, func(b wire.ButtonState) {
//	    fmt.Println("pressed:", b.Pressed)
//	})
//	sess.EnableNotification(wire.ChannelButton, true)
//	sess.SetMotor(50, 50, time.Second)
//
// # Notification Delivery
//
// The peer listener only enqueues the raw payload. A session-owned goroutine
// decodes each payload once and delivers it to the channel's handlers in
// arrival order. When the queue is full the payload is dropped and counted
// (see Dropped) rather than blocking the transport.
//
// A payload that fails to decode is logged and reported through
// SessionConfig.OnError; delivery of later payloads continues.
//
// # Lifecycle
//
// A session starts Connected and becomes Released after Release. Released
// is terminal: commands, reads and notification control return
// ErrSessionReleased, and no further events are delivered.
package service
