package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/retrofold/keyscan/device/keyboard"
	"github.com/retrofold/keyscan/feed"
	"github.com/retrofold/keyscan/internal/log"
	"github.com/retrofold/keyscan/machine"
)

// Serve runs the network feed adapter: each connection gets its own
// keyboard instance fed by transition packets, with scan reports and
// indicator changes streamed back.
type Serve struct {
	Addr         string `help:"Feed listen address" default:":3270" env:"KEYSCAN_ADDR"`
	DeviceConfig `embed:""`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.listenAndServe(ctx, logger, rawLogger)
}

func (s *Serve) listenAndServe(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	defer ln.Close()
	logger.Info("feed server listening", "addr", s.Addr, "model", s.Model)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error("accept failed", "error", err)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			clog := logger.With("remote", conn.RemoteAddr().String())
			if err := s.handleConn(ctx, conn, clog, rawLogger); err != nil {
				clog.Error("connection failed", "error", err)
			}
		}()
	}
	wg.Wait()
	return nil
}

// handleConn owns one keyboard instance for the lifetime of the connection.
func (s *Serve) handleConn(ctx context.Context, conn net.Conn, logger *slog.Logger, rawLogger log.RawLogger) error {
	kb, err := s.DeviceConfig.Build(logger, machine.FuncLine(func(level uint8) {
		logger.Debug("interrupt requested", "level", level)
	}))
	if err != nil {
		return err
	}

	var writeMu sync.Mutex
	send := func(p feed.Packet) {
		b, _ := p.MarshalBinary()
		rawLogger.Packet(false, b)
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := feed.WritePacket(conn, p); err != nil {
			logger.Debug("write to client failed", "error", err)
		}
	}

	kb.SetIndicatorFunc(func(ind keyboard.Indicators) {
		var click uint8
		if ind.Click {
			click = 1
		}
		send(feed.Packet{Type: feed.PacketIndicators, A: ind.LEDs, B: click})
	})

	// Firmware stand-in: poll at the scan interval and run the scan
	// protocol whenever keys are down, streaming each reported address.
	scanCtx, cancelScan := context.WithCancel(ctx)
	defer cancelScan()
	go s.scanLoop(scanCtx, kb, send)

	logger.Info("client connected")
	buf := make([]byte, feed.PacketLen)
	for {
		if _, err := io.ReadFull(conn, buf); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				logger.Info("client disconnected")
				return nil
			}
			return fmt.Errorf("read packet: %w", err)
		}
		rawLogger.Packet(true, buf)

		var p feed.Packet
		if err := p.UnmarshalBinary(buf); err != nil {
			return fmt.Errorf("unmarshal packet: %w", err)
		}
		switch p.Type {
		case feed.PacketTransition:
			kb.DeliverKeyTransition(p.A, p.B&feed.FlagDown != 0, p.B&feed.FlagRight != 0)
		case feed.PacketSynthetic:
			kb.DeliverSyntheticPress(p.A)
		case feed.PacketChar:
			kb.DeliverCharacterEvidence(rune(p.A))
		default:
			logger.Debug("ignoring unknown packet type", "type", p.Type)
		}
	}
}

func (s *Serve) scanLoop(ctx context.Context, kb *keyboard.Keyboard, send func(feed.Packet)) {
	model := kb.Model()
	if model.DataPort == 0 {
		// Pad-style models have no scan protocol; nothing to poll.
		return
	}

	ticker := time.NewTicker(s.ScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !kb.Ready() || len(kb.ActiveCodes()) == 0 {
			continue
		}

		kb.WritePort(model.DataPort, keyboard.StatusStart)
		for {
			addr := kb.ReadPort(model.DataPort)
			if addr == model.ScanEnd {
				send(feed.Packet{Type: feed.PacketScanEnd, A: addr})
				break
			}
			send(feed.Packet{Type: feed.PacketScanKey, A: addr})
		}
	}
}
