package sensor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IIOClimate reads a DHT11/DHT22 through the Linux IIO sysfs interface
// (dht11 kernel driver). Values are reported in milli-units.
type IIOClimate struct {
	// Dir is the IIO device directory, e.g. /sys/bus/iio/devices/iio:device0.
	Dir string
}

// Read performs one temperature/humidity conversion.
func (c IIOClimate) Read() (Reading, error) {
	temp, err := readSysfsInt(filepath.Join(c.Dir, "in_temp_input"))
	if err != nil {
		return Reading{}, fmt.Errorf("read temperature: %w", err)
	}
	humid, err := readSysfsInt(filepath.Join(c.Dir, "in_humidityrelative_input"))
	if err != nil {
		return Reading{}, fmt.Errorf("read humidity: %w", err)
	}
	return Reading{
		Temperature: int(temp / 1000),
		Humidity:    int(humid / 1000),
	}, nil
}

// IIOADC reads raw conversions from a Linux IIO analog-to-digital converter
// and rescales them to 10 bits.
type IIOADC struct {
	Dir string
	// Bits is the converter resolution. Zero means 10.
	Bits int
}

// Read returns the channel's raw conversion scaled to 0..1023.
func (a IIOADC) Read(channel int) (uint16, error) {
	path := filepath.Join(a.Dir, fmt.Sprintf("in_voltage%d_raw", channel))
	raw, err := readSysfsInt(path)
	if err != nil {
		return 0, fmt.Errorf("read adc channel %d: %w", channel, err)
	}
	if raw < 0 {
		return 0, fmt.Errorf("read adc channel %d: negative conversion %d", channel, raw)
	}
	return scaleTo10(raw, a.Bits), nil
}

func scaleTo10(raw int64, bits int) uint16 {
	if bits <= 0 {
		bits = 10
	}
	if bits > 10 {
		raw >>= uint(bits - 10)
	} else if bits < 10 {
		raw <<= uint(10 - bits)
	}
	if raw > 1023 {
		raw = 1023
	}
	return uint16(raw)
}

func readSysfsInt(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0, ErrNoReading
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return v, nil
}
