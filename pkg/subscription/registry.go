package subscription

import (
	"sync"
	"sync/atomic"

	"github.com/cubekit/cube-go/pkg/wire"
)

// Handler receives decoded events for one channel.
type Handler func(wire.Event)

// Decoder turns a raw channel payload into an event.
type Decoder func(data []byte) (wire.Event, error)

// ID identifies a subscription.
type ID uint32

type entry struct {
	id ID
	fn Handler
}

// Registry maps channels to a decoder and an ordered handler list.
type Registry struct {
	mu sync.RWMutex

	decoders map[wire.Channel]Decoder
	handlers map[wire.Channel][]entry

	lastID atomic.Uint32
}

// NewRegistry creates a registry with the default decoders bound.
func NewRegistry() *Registry {
	r := &Registry{
		decoders: make(map[wire.Channel]Decoder),
		handlers: make(map[wire.Channel][]entry),
	}

	r.decoders[wire.ChannelIdentification] = decodeAs(wire.DecodeIdentification)
	r.decoders[wire.ChannelMotion] = decodeAs(wire.DecodeMotion)
	r.decoders[wire.ChannelButton] = decodeAs(wire.DecodeButton)
	r.decoders[wire.ChannelBattery] = decodeAs(wire.DecodeBattery)
	r.decoders[wire.ChannelMotor] = decodeAs(wire.DecodeMotor)

	return r
}

// Bind replaces the decoder for a channel. A nil decoder restores raw
// passthrough.
func (r *Registry) Bind(ch wire.Channel, dec Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dec == nil {
		delete(r.decoders, ch)
		return
	}
	r.decoders[ch] = dec
}

// Subscribe appends a handler to the channel's list and returns its ID.
// Subscribing the same function twice delivers every event to it twice.
// A nil handler is ignored and yields ID 0.
func (r *Registry) Subscribe(ch wire.Channel, h Handler) ID {
	if h == nil {
		return 0
	}

	id := ID(r.lastID.Add(1))

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.handlers[ch]
	next := make([]entry, len(old), len(old)+1)
	copy(next, old)
	r.handlers[ch] = append(next, entry{id: id, fn: h})

	return id
}

// Count returns the number of handlers subscribed to a channel.
func (r *Registry) Count(ch wire.Channel) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[ch])
}

// Decode decodes data with the channel's decoder without delivering it.
func (r *Registry) Decode(ch wire.Channel, data []byte) (wire.Event, error) {
	r.mu.RLock()
	dec := r.decoders[ch]
	r.mu.RUnlock()

	return decode(dec, ch, data)
}

// Dispatch decodes data once and delivers the event to every handler of
// the channel in subscription order. On a decode error no handler is
// invoked and the error is returned.
func (r *Registry) Dispatch(ch wire.Channel, data []byte) error {
	ev, err := r.Decode(ch, data)
	if err != nil {
		return err
	}
	r.Deliver(ch, ev)
	return nil
}

// Deliver hands an already decoded event to the channel's handlers in
// subscription order.
func (r *Registry) Deliver(ch wire.Channel, ev wire.Event) {
	r.mu.RLock()
	handlers := r.handlers[ch]
	r.mu.RUnlock()

	for _, h := range handlers {
		h.fn(ev)
	}
}

func decode(dec Decoder, ch wire.Channel, data []byte) (wire.Event, error) {
	if dec == nil {
		return wire.RawEvent{Source: ch, Data: append([]byte(nil), data...)}, nil
	}
	return dec(data)
}

// decodeAs adapts a typed wire decoder to a Decoder.
func decodeAs[T wire.Event](fn func([]byte) (T, error)) Decoder {
	return func(data []byte) (wire.Event, error) {
		ev, err := fn(data)
		if err != nil {
			return nil, err
		}
		return ev, nil
	}
}
