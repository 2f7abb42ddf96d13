package logic

// Evaluate applies the sensor-driven transition rules to the current state.
// Later rules override earlier ones within the same call: the water interlock
// always wins over thermal demand. DISABLED is never left here, and ERROR is
// only cleared by Override.
func Evaluate(current State, snap Snapshot) State {
	next := current

	if next == StateIdle && snap.Temperature >= TemperatureLimit {
		next = StateRunning
	}
	if next == StateRunning && snap.Temperature < TemperatureLimit {
		next = StateIdle
	}
	if next != StateDisabled && snap.WaterLevel < WaterLevelLimit {
		next = StateError
	}
	return next
}

// Override applies an operator button press to the current state.
// RESET takes priority when both lines read active. START toggles between
// DISABLED and IDLE and acts as an emergency stop in any other state.
func Override(current State, b Buttons) State {
	switch {
	case b.Reset:
		if current == StateError {
			return StateIdle
		}
		return current
	case b.Start:
		if current == StateDisabled {
			return StateIdle
		}
		return StateDisabled
	}
	return current
}
