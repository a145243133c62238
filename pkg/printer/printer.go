package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// Transports accepted by New
const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeNone    = "none"
)

// DefaultTimeout bounds dialing and writing a ticket when the caller sets no deadline
const DefaultTimeout = 5 * time.Second

var (
	// ErrNotConfigured means the terminal has no ticket printer
	ErrNotConfigured = errors.New("printer: no printer configured")
	// ErrUnreachable wraps every transport failure of a configured printer
	ErrUnreachable = errors.New("printer: printer unreachable")
)

// Config selects and addresses the ticket printer
type Config struct {
	Type    string
	USBPath string        // device node, e.g. /dev/usb/lp0
	Address string        // host:port, e.g. 192.168.1.50:9100
	Timeout time.Duration // zero means DefaultTimeout
}

// Status describes the ticket printer as seen from the terminal
type Status struct {
	Type      string `json:"type"`
	Target    string `json:"target,omitempty"`
	Connected bool   `json:"connected"`
}

// Printer sends one rendered ticket per call. Connections are opened per ticket.
type Printer interface {
	Print(ctx context.Context, ticket []byte) error
	Status(ctx context.Context) Status
	Close() error
}

// New returns the printer described by cfg
func New(cfg Config) (Printer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	switch cfg.Type {
	case TypeUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case TypeNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return &networkPrinter{address: cfg.Address, timeout: timeout}, nil
	case TypeNone, "":
		return None(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Type)
	}
}

// None returns the printer used when the terminal has no hardware. Every ticket fails with ErrNotConfigured.
func None() Printer {
	return nullPrinter{}
}

type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(ctx context.Context, ticket []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrUnreachable, p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(ticket); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnreachable, p.path, err)
	}
	return nil
}

func (p *usbPrinter) Status(context.Context) Status {
	_, err := os.Stat(p.path)
	return Status{Type: TypeUSB, Target: p.path, Connected: err == nil}
}

func (p *usbPrinter) Close() error {
	return nil
}

type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.timeout}
	return d.DialContext(ctx, "tcp", p.address)
}

func (p *networkPrinter) Print(ctx context.Context, ticket []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("%w: connect %s: %v", ErrUnreachable, p.address, err)
	}
	defer conn.Close()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(p.timeout)
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(ticket); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnreachable, p.address, err)
	}
	return nil
}

func (p *networkPrinter) Status(ctx context.Context) Status {
	status := Status{Type: TypeNetwork, Target: p.address}
	if conn, err := p.dial(ctx); err == nil {
		conn.Close()
		status.Connected = true
	}
	return status
}

func (p *networkPrinter) Close() error {
	return nil
}

type nullPrinter struct{}

func (nullPrinter) Print(context.Context, []byte) error { return ErrNotConfigured }
func (nullPrinter) Status(context.Context) Status       { return Status{Type: TypeNone} }
func (nullPrinter) Close() error                        { return nil }
