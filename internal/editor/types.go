package editor

import "fmt"

// ModeKind is the vi mode of the query line.
type ModeKind int

const (
	Normal   ModeKind = iota // Motions and commands
	Insert                   // Typing goes into the buffer
	Operator                 // d or c pressed, waiting for a motion
)

// Mode is the editing mode. Op holds the pending operator ('d' or 'c') in Operator mode and
// is zero otherwise.
type Mode struct {
	Kind ModeKind
	Op   rune
}

// Modes the controller moves between.
var (
	ModeNormal = Mode{Kind: Normal}
	ModeInsert = Mode{Kind: Insert}
)

// OperatorMode returns the pending-operator mode for op.
func OperatorMode(op rune) Mode {
	return Mode{Kind: Operator, Op: op}
}

func (m Mode) String() string {
	switch m.Kind {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Operator:
		return fmt.Sprintf("OPERATOR(%c)", m.Op)
	default:
		return "UNKNOWN"
	}
}

// Focus is the pane that receives non-global keys.
type Focus int

const (
	InputField Focus = iota
	ResultsPane
)

func (f Focus) String() string {
	if f == ResultsPane {
		return "results"
	}
	return "input"
}

// OutputMode says what the program prints after the session ends.
type OutputMode int

const (
	OutputNone    OutputMode = iota // Quit without printing
	OutputQuery                     // Print the query text
	OutputResults                   // Print the query results
)

func (o OutputMode) String() string {
	switch o {
	case OutputQuery:
		return "query"
	case OutputResults:
		return "results"
	default:
		return "none"
	}
}

// Result is the outcome of the most recent query execution.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the execution succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
