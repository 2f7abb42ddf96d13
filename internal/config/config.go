// Package config loads the controller's hardware map: which GPIO lines,
// sysfs devices and serial port each role is wired to.
//
// The START, RESET and vent buttons are requested with pull-ups, so a button
// wired to ground idles high and reads as pressed unless buttons_active_low is
// true. It defaults to false for buttons that drive the line high when
// pressed. env-controller.example.yaml at the repository root lists every key.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/env-controller/internal/eventlog"
	"github.com/sweeney/env-controller/internal/gpio"
)

// Config is the hardware map.
type Config struct {
	Chip    string  `yaml:"chip"`
	Pins    Pins    `yaml:"pins"`
	Climate Climate `yaml:"climate"`
	ADC     ADC     `yaml:"adc"`
	Serial  Serial  `yaml:"serial"`
}

// Pins are line offsets on Chip. An empty VentCoils or LCD list disables that
// peripheral.
type Pins struct {
	Fan        int `yaml:"fan"`
	Green      int `yaml:"led_green"`
	Yellow     int `yaml:"led_yellow"`
	Red        int `yaml:"led_red"`
	Blue       int `yaml:"led_blue"`
	Start      int `yaml:"start"`
	Reset      int `yaml:"reset"`
	VentButton int `yaml:"vent_button"`
	// ActiveLow inverts the three button lines. Set it for buttons that
	// short the line to ground.
	ActiveLow bool `yaml:"buttons_active_low"`
	// VentCoils are the stepper coil lines in phase order.
	VentCoils []int `yaml:"vent_coils"`
	// LCD is RS, EN, D4, D5, D6, D7.
	LCD []int `yaml:"lcd"`
}

// Climate locates the temperature/humidity sensor.
type Climate struct {
	Dir string `yaml:"iio_dir"`
}

// ADC locates the analog converter that reads the water level probe.
type ADC struct {
	Dir  string `yaml:"iio_dir"`
	Bits int    `yaml:"bits"`
}

// Serial is the event log port. An empty Device logs to stdout.
type Serial struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

const (
	numVentCoils = 4
	numLCDLines  = 6
)

// Default returns the stock wiring for a Raspberry Pi header.
func Default() Config {
	return Config{
		Chip: "gpiochip0",
		Pins: Pins{
			Fan:        17,
			Green:      5,
			Yellow:     6,
			Red:        13,
			Blue:       19,
			Start:      23,
			Reset:      24,
			VentButton: 25,
			VentCoils:  []int{12, 16, 20, 21},
			LCD:        []int{7, 8, 9, 10, 11, 22},
		},
		Climate: Climate{Dir: "/sys/bus/iio/devices/iio:device0"},
		ADC:     ADC{Dir: "/sys/bus/iio/devices/iio:device1", Bits: 10},
		Serial:  Serial{Device: "/dev/ttyS0", Baud: 19200},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// decode rejects unknown keys so a misspelt pin name is not silently ignored.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that every line is assigned once and the serial settings
// are usable.
func (c Config) Validate() error {
	if c.Chip == "" {
		return errors.New("config: chip is required")
	}
	if n := len(c.Pins.VentCoils); n != 0 && n != numVentCoils {
		return fmt.Errorf("config: vent_coils needs %d lines, got %d", numVentCoils, n)
	}
	if n := len(c.Pins.LCD); n != 0 && n != numLCDLines {
		return fmt.Errorf("config: lcd needs %d lines, got %d", numLCDLines, n)
	}

	seen := make(map[int]string)
	for _, l := range c.lines() {
		if l.offset < 0 {
			return fmt.Errorf("config: %s has negative offset %d", l.name, l.offset)
		}
		if other, ok := seen[l.offset]; ok {
			return fmt.Errorf("config: line %d assigned to both %s and %s", l.offset, other, l.name)
		}
		seen[l.offset] = l.name
	}

	if c.ADC.Bits < 0 || c.ADC.Bits > 16 {
		return fmt.Errorf("config: adc bits %d out of range", c.ADC.Bits)
	}
	if !eventlog.SupportedBaud(c.Serial.Baud) {
		return fmt.Errorf("config: unsupported baud rate %d", c.Serial.Baud)
	}
	return nil
}

type namedLine struct {
	name   string
	offset int
}

func (c Config) lines() []namedLine {
	p := c.Pins
	lines := []namedLine{
		{"fan", p.Fan},
		{"led_green", p.Green},
		{"led_yellow", p.Yellow},
		{"led_red", p.Red},
		{"led_blue", p.Blue},
		{"start", p.Start},
		{"reset", p.Reset},
		{"vent_button", p.VentButton},
	}
	for i, o := range p.VentCoils {
		lines = append(lines, namedLine{fmt.Sprintf("vent_coils[%d]", i), o})
	}
	for i, o := range p.LCD {
		lines = append(lines, namedLine{fmt.Sprintf("lcd[%d]", i), o})
	}
	return lines
}

// BoardPins returns the offsets the gpio board requests.
func (c Config) BoardPins() gpio.Pins {
	p := c.Pins
	return gpio.Pins{
		Fan:              p.Fan,
		LEDs:             [gpio.NumLEDs]int{p.Green, p.Yellow, p.Red, p.Blue},
		Start:            p.Start,
		Reset:            p.Reset,
		Vent:             p.VentButton,
		ButtonsActiveLow: p.ActiveLow,
	}
}
