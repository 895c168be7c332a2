// Package broadcast carries the advisory "remote state may have changed"
// signal between running instances on the same machine. The transport is
// OSC over loopback UDP: each instance binds the first free port in a small
// window and notifies every other port in the window. Signals are
// fire-and-forget; receivers must tolerate zero, one, or duplicate
// deliveries per save.
package broadcast

import (
	"fmt"
	"net"

	"github.com/hypebeast/go-osc/osc"

	"soundeck/internal/logger"
)

// SyncAddress is the OSC address pattern carrying the signal.
const SyncAddress = "/soundeck/sync"

// Channel is the advisory pub/sub surface the sync engine uses.
type Channel interface {
	// Notify tells other instances to reload if safe. Best effort.
	Notify()
	Close() error
}

// OSCChannel is the production loopback transport.
type OSCChannel struct {
	basePort int
	span     int
	port     int
	conn     net.PacketConn
	server   *osc.Server
}

// ListenOSC binds the first free port in [basePort, basePort+span) and
// invokes onSignal for every received sync message. onSignal runs on the
// server goroutine; callers forward it onto their event loop.
func ListenOSC(basePort, span int, onSignal func()) (*OSCChannel, error) {
	if span < 2 {
		span = 2
	}

	var conn net.PacketConn
	var port int
	var err error
	for p := basePort; p < basePort+span; p++ {
		conn, err = net.ListenPacket("udp", fmt.Sprintf("127.0.0.1:%d", p))
		if err == nil {
			port = p
			break
		}
	}
	if conn == nil {
		return nil, fmt.Errorf("broadcast: no free port in [%d,%d): %w", basePort, basePort+span, err)
	}

	d := osc.NewStandardDispatcher()
	if err := d.AddMsgHandler(SyncAddress, func(msg *osc.Message) {
		onSignal()
	}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("broadcast: %w", err)
	}

	server := &osc.Server{Addr: conn.LocalAddr().String(), Dispatcher: d}
	ch := &OSCChannel{
		basePort: basePort,
		span:     span,
		port:     port,
		conn:     conn,
		server:   server,
	}

	go func() {
		logger.Info("sync channel listening", logger.Int("port", port))
		if err := server.Serve(conn); err != nil {
			logger.Debug("sync channel closed", logger.ErrorField(err))
		}
	}()

	return ch, nil
}

// Port returns the bound port, mostly for logging and tests.
func (c *OSCChannel) Port() int {
	return c.port
}

// Notify sends the sync signal to every other port in the window. Ports
// with no listener simply drop the packet.
func (c *OSCChannel) Notify() {
	for p := c.basePort; p < c.basePort+c.span; p++ {
		if p == c.port {
			continue
		}
		client := osc.NewClient("127.0.0.1", p)
		if err := client.Send(osc.NewMessage(SyncAddress)); err != nil {
			logger.Debug("sync notify failed", logger.Int("port", p), logger.ErrorField(err))
		}
	}
}

func (c *OSCChannel) Close() error {
	return c.conn.Close()
}

// Memory is an in-process channel for tests and guest mode wiring.
type Memory struct {
	peers []func()
}

func NewMemory() *Memory {
	return &Memory{}
}

// Subscribe registers a receiver. The notifying instance does not receive
// its own signals, mirroring the loopback transport.
func (m *Memory) Subscribe(fn func()) Channel {
	m.peers = append(m.peers, fn)
	idx := len(m.peers) - 1
	return &memoryPeer{hub: m, idx: idx}
}

type memoryPeer struct {
	hub *Memory
	idx int
}

func (p *memoryPeer) Notify() {
	for i, fn := range p.hub.peers {
		if i != p.idx && fn != nil {
			fn()
		}
	}
}

func (p *memoryPeer) Close() error {
	p.hub.peers[p.idx] = nil
	return nil
}
