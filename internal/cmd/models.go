package cmd

import (
	"fmt"

	"github.com/retrofold/keyscan/device/keyboard"
)

// Models lists the built-in device models and their protocol constants.
type Models struct{}

// Run is called by Kong when the models command is executed.
func (m *Models) Run() error {
	for _, name := range keyboard.ModelNames() {
		model, _ := keyboard.LookupModel(name)
		fmt.Printf("%s:\n", model.Name)
		if model.DataPort != 0 {
			fmt.Printf("  scan port:    0x%02X (irq level %d, sentinel 0x%02X)\n",
				model.DataPort, model.IRQLevel, model.ScanEnd)
			fmt.Printf("  break addr:   0x%02X\n", model.BreakAddr)
		}
		if model.ButtonPort != 0 {
			fmt.Printf("  button port:  0x%02X (%d status bits)\n",
				model.ButtonPort, len(model.StatusBits))
		}
		fmt.Printf("  min press:    %s\n", model.MinPress)
		fmt.Printf("  mapped keys:  %d (+%d soft buttons, %d aliases)\n",
			len(model.Keymap), len(model.SoftButtons), len(model.AltCodes))
		if len(model.LEDNames) > 0 {
			fmt.Printf("  leds:")
			for bit := uint(0); bit < 6; bit++ {
				if name, ok := model.LEDNames[bit]; ok {
					fmt.Printf(" %d=%s", bit, name)
				}
			}
			fmt.Println()
		}
	}
	return nil
}
