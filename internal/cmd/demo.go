package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/retrofold/keyscan/device/keyboard"
	"github.com/retrofold/keyscan/hid"
	"github.com/retrofold/keyscan/machine"
)

// Demo runs an interactive terminal session against a live keyboard
// instance. Terminals only report presses, never releases, so every key is
// delivered as a synthetic press and released by the minimum-press
// machinery; watching the active-keys line drain is the debounce algorithm
// at work.
type Demo struct {
	DeviceConfig `embed:""`
}

// demoState is the display model shared between the scan goroutine and the
// draw loop.
type demoState struct {
	mu         sync.Mutex
	lastScan   []uint8
	indicators keyboard.Indicators
	irqCount   uint64
}

// Run is called by Kong when the demo command is executed.
func (d *Demo) Run(logger *slog.Logger) error {
	st := &demoState{}

	kb, err := d.DeviceConfig.Build(logger, machine.FuncLine(func(uint8) {
		st.mu.Lock()
		st.irqCount++
		st.mu.Unlock()
	}))
	if err != nil {
		return err
	}
	kb.SetIndicatorFunc(func(ind keyboard.Indicators) {
		st.mu.Lock()
		st.indicators = ind
		st.mu.Unlock()
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	quit := make(chan struct{})
	var quitOnce sync.Once

	// Firmware stand-in, as in serve: poll and scan while keys are down.
	go func() {
		model := kb.Model()
		ticker := time.NewTicker(d.ScanInterval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
			}
			if model.DataPort == 0 || !kb.Ready() || len(kb.ActiveCodes()) == 0 {
				continue
			}
			kb.WritePort(model.DataPort, keyboard.StatusStart)
			var addrs []uint8
			for {
				addr := kb.ReadPort(model.DataPort)
				if addr == model.ScanEnd {
					break
				}
				addrs = append(addrs, addr)
			}
			st.mu.Lock()
			st.lastScan = addrs
			st.mu.Unlock()
		}
	}()

	events := make(chan tcell.Event, 16)
	go screen.ChannelEvents(events, quit)

	redraw := time.NewTicker(100 * time.Millisecond)
	defer redraw.Stop()

	for {
		select {
		case <-redraw.C:
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					quitOnce.Do(func() { close(quit) })
					return nil
				}
				d.deliverKey(kb, ev)
			}
		}
		d.draw(screen, kb, st)
	}
}

// deliverKey translates one tcell key event into raw transitions.
func (d *Demo) deliverKey(kb *keyboard.Keyboard, ev *tcell.EventKey) {
	if ev.Modifiers()&tcell.ModAlt != 0 {
		kb.DeliverKeyTransition(hid.KeyLeftAlt, true, false)
		defer kb.DeliverKeyTransition(hid.KeyLeftAlt, false, false)
	}

	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0x7F {
			return
		}
		kb.DeliverCharacterEvidence(r)
		if raw := hid.CharToCode(byte(r)); raw != 0 {
			if hid.NeedsShift(byte(r)) {
				kb.DeliverKeyTransition(hid.KeyLeftShift, true, false)
				defer kb.DeliverKeyTransition(hid.KeyLeftShift, false, false)
			}
			kb.DeliverSyntheticPress(raw)
		}
	case tcell.KeyEnter:
		kb.DeliverSyntheticPress(hid.KeyEnter)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		kb.DeliverSyntheticPress(hid.KeyBackspace)
	case tcell.KeyDelete:
		kb.DeliverSyntheticPress(hid.KeyDelete)
	case tcell.KeyTab:
		kb.DeliverSyntheticPress(hid.KeyTab)
	case tcell.KeyEscape:
		kb.DeliverSyntheticPress(hid.KeyEscape)
	case tcell.KeyUp:
		kb.DeliverSyntheticPress(hid.KeyUp)
	case tcell.KeyDown:
		kb.DeliverSyntheticPress(hid.KeyDown)
	case tcell.KeyLeft:
		kb.DeliverSyntheticPress(hid.KeyLeft)
	case tcell.KeyRight:
		kb.DeliverSyntheticPress(hid.KeyRight)
	case tcell.KeyF1:
		kb.DeliverSyntheticPress(hid.KeyF1)
	case tcell.KeyF2:
		kb.DeliverSyntheticPress(hid.KeyF2)
	case tcell.KeyF3:
		kb.DeliverSyntheticPress(hid.KeyF3)
	case tcell.KeyF4:
		kb.DeliverSyntheticPress(hid.KeyF4)
	case tcell.KeyF5:
		kb.DeliverSyntheticPress(hid.KeyF5)
	case tcell.KeyPause:
		kb.DeliverSyntheticPress(hid.KeyPause)
	}
}

func (d *Demo) draw(screen tcell.Screen, kb *keyboard.Keyboard, st *demoState) {
	st.mu.Lock()
	lastScan := st.lastScan
	ind := st.indicators
	irqs := st.irqCount
	st.mu.Unlock()

	mods := kb.Modifiers()
	var active []string
	for _, sc := range kb.ActiveCodes() {
		active = append(active, keyboard.CodeName[sc])
	}
	var scanned []string
	for _, a := range lastScan {
		scanned = append(scanned, fmt.Sprintf("%02X", a))
	}
	var leds []string
	for bit, name := range kb.Model().LEDNames {
		if ind.LEDs&(1<<bit) != 0 {
			leds = append(leds, name)
		}
	}

	lines := []string{
		fmt.Sprintf("keyscan demo - model %s (Ctrl+C to quit)", kb.Model().Name),
		"",
		fmt.Sprintf("modifiers:  %012b", mods),
		fmt.Sprintf("active:     %s", strings.Join(active, " ")),
		fmt.Sprintf("last scan:  %s", strings.Join(scanned, " ")),
		fmt.Sprintf("leds:       %s", strings.Join(leds, " ")),
		fmt.Sprintf("ready:      %v", kb.Ready()),
		fmt.Sprintf("interrupts: %d", irqs),
	}

	screen.Clear()
	style := tcell.StyleDefault
	for y, line := range lines {
		for x, r := range line {
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}
