package service

import (
	"github.com/cubekit/cube-go/pkg/subscription"
	"github.com/cubekit/cube-go/pkg/wire"
)

// Observe subscribes fn to the events of a channel that have type T.
// Events of other types, such as wire.RawEvent, are skipped.
//
//	service.Observe(sess, wire.ChannelMotion, func(m wire.Motion) { ... })
func Observe[T wire.Event](s *DeviceSession, ch wire.Channel, fn func(T)) subscription.ID {
	return s.Subscribe(ch, func(ev wire.Event) {
		if v, ok := ev.(T); ok {
			fn(v)
		}
	})
}
