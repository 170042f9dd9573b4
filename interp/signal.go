package interp

// Signal is the control-flow outcome of executing a body or a leaf command.
// It is transient: the loop or function boundary that owns it consumes it
// and resets the flow to SignalNormal.
type Signal int

const (
	SignalNormal Signal = iota
	SignalBreak
	SignalContinue
	SignalReturn
)

func (s Signal) String() string {
	switch s {
	case SignalNormal:
		return "normal"
	case SignalBreak:
		return "break"
	case SignalContinue:
		return "continue"
	case SignalReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Outcome is the result of executing one leaf command: the control signal it
// requests, plus the returned value when the signal is SignalReturn.
type Outcome struct {
	Signal Signal
	Value  any
}

// Normal is the zero outcome for ordinary commands.
var Normal = Outcome{Signal: SignalNormal}
