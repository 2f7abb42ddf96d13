// Command env-controller runs the environmental control loop: it reads the
// climate and water sensors, drives the fan, indicators, display and vent, and
// logs state changes to a serial port.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sweeney/env-controller/internal/config"
	"github.com/sweeney/env-controller/internal/controller"
	"github.com/sweeney/env-controller/internal/display"
	"github.com/sweeney/env-controller/internal/eventlog"
	"github.com/sweeney/env-controller/internal/gpio"
	"github.com/sweeney/env-controller/internal/logic"
	"github.com/sweeney/env-controller/internal/sensor"
	"github.com/sweeney/env-controller/internal/status"
	"github.com/sweeney/env-controller/internal/vent"
)

// Device bring-up is retried this many times after the first attempt.
const bringUpRetries = 4

func main() {
	cfgPath := flag.String("config", "", "Hardware map YAML (empty for built-in defaults)")
	poll := flag.Duration("poll", 20*time.Millisecond, "Control loop period")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	printState := flag.Bool("print-state", false, "Print current inputs and readings and exit")
	serialDev := flag.String("serial", "", `Serial device for the event log (overrides config, "-" for stdout)`)
	baud := flag.Int("baud", 0, "Serial baud rate (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	cfg = applyOverrides(cfg, *serialDev, *baud)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if err := checkPoll(*poll); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *poll, *heartbeat, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// applyOverrides folds the serial flags into cfg. "-" selects stdout.
func applyOverrides(cfg config.Config, serialDev string, baud int) config.Config {
	switch serialDev {
	case "":
	case "-":
		cfg.Serial.Device = ""
	default:
		cfg.Serial.Device = serialDev
	}
	if baud != 0 {
		cfg.Serial.Baud = baud
	}
	return cfg
}

// checkPoll rejects loop periods the ticker cannot run with.
func checkPoll(poll time.Duration) error {
	if poll <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", poll)
	}
	return nil
}

func run(cfg config.Config, poll, heartbeat time.Duration, printState bool) error {
	cell := controller.NewStateCell(logic.StateDisabled)

	var board *gpio.RealBoard
	err := retry("init gpio", func() error {
		var err error
		board, err = gpio.NewRealBoard(cfg.Chip, cfg.BoardPins(), cell.HandleEdge)
		return err
	})
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer board.Close()

	climate := sensor.IIOClimate{Dir: cfg.Climate.Dir}
	adc := sensor.IIOADC{Dir: cfg.ADC.Dir, Bits: cfg.ADC.Bits}

	if printState {
		return printInputs(os.Stdout, board, climate, adc, cell.Load())
	}

	serial, closeSerial, err := openEventPort(cfg.Serial)
	if err != nil {
		return err
	}
	defer closeSerial()

	lcd, err := newDisplay(board, cfg.Pins.LCD)
	if err != nil {
		return err
	}
	motor, err := newVent(board, cfg.Pins.VentCoils)
	if err != nil {
		return err
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      poll.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Chip:        cfg.Chip,
		Serial:      cfg.Serial.Device,
		Baud:        cfg.Serial.Baud,
	})

	deps := controller.Deps{
		Clock:    sensor.SystemClock{},
		Acquirer: sensor.NewAcquirer(climate, adc),
		Board:    board,
		Events:   eventlog.New(serial),
		Tracker:  tracker,
	}
	// Leave the interfaces nil rather than holding typed nil pointers.
	if lcd != nil {
		deps.Display = lcd
	}
	if motor != nil {
		deps.Vent = motor
	}
	ctrl := controller.New(cell, deps)

	log.Printf("started: poll=%v heartbeat=%v chip=%s serial=%q baud=%d",
		poll, heartbeat, cfg.Chip, cfg.Serial.Device, cfg.Serial.Baud)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, tracker, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(ctrl *controller.Controller, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if err := ctrl.Shutdown(); err != nil {
				log.Printf("shutdown outputs: %v", err)
			}
			if tracker != nil {
				log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN"))
			}
			return nil

		case <-tick:
			ctrl.Step()

			if tracker == nil {
				continue
			}
			if snap, ok := tracker.CheckHeartbeat(now(), heartbeat); ok {
				log.Printf("status: %s", status.FormatStatusEvent(snap, "HEARTBEAT"))
			}
		}
	}
}

// retry runs op with exponential backoff, logging each failed attempt.
func retry(what string, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second
	return backoff.Retry(func() error {
		err := op()
		if err != nil {
			log.Printf("%s failed: %v", what, err)
		}
		return err
	}, backoff.WithMaxRetries(bo, bringUpRetries))
}

// openEventPort opens the serial event log, or stdout when no device is set.
func openEventPort(s config.Serial) (io.Writer, func(), error) {
	if s.Device == "" {
		return os.Stdout, func() {}, nil
	}
	var f *os.File
	err := retry("open serial", func() error {
		var err error
		f, err = eventlog.OpenSerial(s.Device, s.Baud)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func newDisplay(board *gpio.RealBoard, offsets []int) (*display.Screen, error) {
	if len(offsets) == 0 {
		log.Printf("display: no lines configured, disabled")
		return nil, nil
	}
	bus, err := board.OutputBus("lcd", offsets)
	if err != nil {
		return nil, fmt.Errorf("init display: %w", err)
	}
	dev, err := display.NewHD44780(bus, nil)
	if err != nil {
		return nil, fmt.Errorf("init display: %w", err)
	}
	return display.NewScreen(dev), nil
}

func newVent(board *gpio.RealBoard, offsets []int) (*vent.Stepper, error) {
	if len(offsets) == 0 {
		log.Printf("vent: no coils configured, disabled")
		return nil, nil
	}
	bus, err := board.OutputBus("vent", offsets)
	if err != nil {
		return nil, fmt.Errorf("init vent: %w", err)
	}
	s, err := vent.NewStepper(bus, vent.DefaultStepsPerRev, vent.DefaultRPM, nil)
	if err != nil {
		return nil, fmt.Errorf("init vent: %w", err)
	}
	return s, nil
}

// printInputs writes the button levels and one reading of every sensor,
// followed by the status document.
func printInputs(w io.Writer, board gpio.Board, climate sensor.Climate, adc sensor.ADC, state logic.State) error {
	start, reset, err := board.Buttons()
	if err != nil {
		return fmt.Errorf("read buttons: %w", err)
	}
	nudge, err := board.VentPressed()
	if err != nil {
		return fmt.Errorf("read vent button: %w", err)
	}
	fmt.Fprintf(w, "START: %s, RESET: %s, VENT: %s\n", levelString(start), levelString(reset), levelString(nudge))

	snap := logic.Snapshot{Time: sensor.SystemClock{}.Now(), ReadAttempted: true}
	if water, err := adc.Read(sensor.WaterChannel); err != nil {
		fmt.Fprintf(w, "WATER: error: %v\n", err)
	} else {
		snap.WaterLevel = water
		fmt.Fprintf(w, "WATER: %d\n", water)
	}
	if r, err := climate.Read(); err != nil {
		fmt.Fprintf(w, "CLIMATE: error: %v\n", err)
	} else {
		snap.Temperature, snap.Humidity, snap.ReadOK = r.Temperature, r.Humidity, true
		fmt.Fprintf(w, "CLIMATE: %s\n", logic.SensorText(snap))
	}

	tracker := status.NewTracker(time.Now(), status.Config{})
	tracker.Update(state, snap)
	fmt.Fprintf(w, "%s\n", status.FormatJSON(tracker.Snapshot()))
	return nil
}

func levelString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}
