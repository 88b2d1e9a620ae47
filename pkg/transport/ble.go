package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/cubekit/cube-go/pkg/connection"
	"github.com/cubekit/cube-go/pkg/wire"
)

// DefaultScanTimeout bounds one scan-and-connect attempt.
const DefaultScanTimeout = 10 * time.Second

// maxAttributeSize is the largest value a GATT attribute can hold.
const maxAttributeSize = 512

// ErrServiceNotFound is returned when the connected device does not expose
// the cube service.
var ErrServiceNotFound = errors.New("cube service not found")

// DialConfig selects the cube to connect to.
type DialConfig struct {
	// Address is the BLE address to connect to. Takes precedence over Name.
	Address string

	// Name matches the advertised local name when Address is empty.
	// With neither set, the first device advertising the cube service wins.
	Name string

	// ScanTimeout bounds each attempt. Defaults to DefaultScanTimeout.
	ScanTimeout time.Duration

	// Attempts is the number of scan-and-connect attempts.
	Attempts int

	// Logger receives connection progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// gattNotifier is the part of bluetooth.DeviceCharacteristic every desktop
// backend provides. Reads and acknowledged writes differ per OS; see
// gattCharacteristic in the ble_<os>.go files.
type gattNotifier interface {
	WriteWithoutResponse(p []byte) (int, error)
	EnableNotifications(callback func(buf []byte)) error
}

// The real characteristic must satisfy the seam on every supported OS.
var _ gattCharacteristic = bluetooth.DeviceCharacteristic{}

type gattLink interface {
	Disconnect() error
}

// BLEPeer is a Peer backed by a GATT connection.
type BLEPeer struct {
	mu sync.RWMutex

	link      gattLink
	chars     map[wire.Channel]gattCharacteristic
	listeners []Listener
	closed    bool

	logger *slog.Logger
}

// Dial scans for a cube, connects to it and discovers its characteristics.
func Dial(ctx context.Context, cfg DialConfig) (*BLEPeer, error) {
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = DefaultScanTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable adapter: %w", err)
	}

	var peer *BLEPeer
	err := connection.Retry(ctx, connection.RetryConfig{
		Attempts:       cfg.Attempts,
		AttemptTimeout: cfg.ScanTimeout,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			logger.Warn("cube connect failed", "attempt", attempt, "retryIn", delay, "error", err)
		},
	}, func(ctx context.Context) error {
		result, err := scan(ctx, adapter, cfg)
		if err != nil {
			return err
		}
		logger.Info("cube found", "address", result.Address.String(), "name", result.LocalName(), "rssi", result.RSSI)

		device, err := adapter.Connect(result.Address, bluetooth.ConnectionParams{})
		if err != nil {
			return fmt.Errorf("connect %s: %w", result.Address.String(), err)
		}

		chars, err := discover(device)
		if err != nil {
			_ = device.Disconnect()
			return err
		}

		peer = newBLEPeer(device, chars, logger)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return peer, nil
}

func newBLEPeer(link gattLink, chars map[wire.Channel]gattCharacteristic, logger *slog.Logger) *BLEPeer {
	if logger == nil {
		logger = slog.Default()
	}
	return &BLEPeer{
		link:   link,
		chars:  chars,
		logger: logger,
	}
}

// scan blocks until a matching advertisement is seen or ctx ends.
func scan(ctx context.Context, adapter *bluetooth.Adapter, cfg DialConfig) (bluetooth.ScanResult, error) {
	found := make(chan bluetooth.ScanResult, 1)
	done := make(chan error, 1)

	go func() {
		done <- adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !matches(cfg, result) {
				return
			}
			select {
			case found <- result:
			default:
			}
			_ = a.StopScan()
		})
	}()

	select {
	case result := <-found:
		<-done
		return result, nil
	case err := <-done:
		if err == nil {
			err = errors.New("scan stopped")
		}
		return bluetooth.ScanResult{}, fmt.Errorf("scan: %w", err)
	case <-ctx.Done():
		_ = adapter.StopScan()
		<-done
		return bluetooth.ScanResult{}, fmt.Errorf("scan: %w", ctx.Err())
	}
}

func matches(cfg DialConfig, result bluetooth.ScanResult) bool {
	switch {
	case cfg.Address != "":
		return strings.EqualFold(result.Address.String(), cfg.Address)
	case cfg.Name != "":
		return result.LocalName() == cfg.Name
	default:
		return result.HasServiceUUID(bleUUID(ServiceUUID))
	}
}

func discover(device bluetooth.Device) (map[wire.Channel]gattCharacteristic, error) {
	services, err := device.DiscoverServices([]bluetooth.UUID{bleUUID(ServiceUUID)})
	if err != nil {
		return nil, fmt.Errorf("discover services: %w", err)
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}

	found, err := services[0].DiscoverCharacteristics(nil)
	if err != nil {
		return nil, fmt.Errorf("discover characteristics: %w", err)
	}

	chars := make(map[wire.Channel]gattCharacteristic, len(found))
	for _, c := range found {
		if ch, ok := ChannelForUUID(c.UUID().String()); ok {
			chars[ch] = c
		}
	}
	return chars, nil
}

func bleUUID(u uuid.UUID) bluetooth.UUID {
	return bluetooth.NewUUID([16]byte(u))
}

func (p *BLEPeer) characteristic(ch wire.Channel) (gattCharacteristic, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrNotConnected
	}
	c, ok := p.chars[ch]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, ch)
	}
	return c, nil
}

// Read implements Peer. On macOS it fails with errors.ErrUnsupported.
func (p *BLEPeer) Read(ch wire.Channel) ([]byte, error) {
	c, err := p.characteristic(ch)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, maxAttributeSize)
	n, err := readValue(c, buf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ch, err)
	}
	return buf[:n], nil
}

// Write implements Peer. Where the platform backend has no acknowledged
// write, withResponse falls back to a write without response.
func (p *BLEPeer) Write(ch wire.Channel, data []byte, withResponse bool) error {
	c, err := p.characteristic(ch)
	if err != nil {
		return err
	}

	if err := writeValue(c, data, withResponse); err != nil {
		return fmt.Errorf("write %s: %w", ch, err)
	}
	return nil
}

// EnableNotification implements Peer.
func (p *BLEPeer) EnableNotification(ch wire.Channel, enable bool) error {
	c, err := p.characteristic(ch)
	if err != nil {
		return err
	}

	var callback func([]byte)
	if enable {
		callback = func(buf []byte) { p.deliver(ch, buf) }
	}
	if err := c.EnableNotifications(callback); err != nil {
		return fmt.Errorf("notifications %s: %w", ch, err)
	}

	p.logger.Debug("notifications changed", "channel", ch, "enabled", enable)
	return nil
}

// AddListener implements Peer.
func (p *BLEPeer) AddListener(l Listener) {
	if l == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// deliver hands a private copy of buf to every listener. The adapter may
// reuse buf after the callback returns.
func (p *BLEPeer) deliver(ch wire.Channel, buf []byte) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return
	}
	listeners := p.listeners
	p.mu.RUnlock()

	for _, l := range listeners {
		l(ch, append([]byte(nil), buf...))
	}
}

// Disconnect implements Peer.
func (p *BLEPeer) Disconnect() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrNotConnected
	}
	p.closed = true
	p.mu.Unlock()

	if err := p.link.Disconnect(); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}
