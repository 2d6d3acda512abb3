package calc

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// NaN is written to the input buffer when an operator press fails.
const NaN = "NaN"

// inputPattern is what the editable input field accepts.
var inputPattern = regexp.MustCompile(`^-?[0-9]*\.?[0-9]*$`)

// State is a snapshot of the engine's four fields.
type State struct {
	Input       string
	Accumulator string
	Operator    Operator
	StartFresh  bool
}

// InitialState is the state of a freshly constructed engine.
var InitialState = State{Input: "0"}

// Option configures an Engine.
type Option func(*Engine)

// WithPrecision sets the number of significant digits results may carry.
func WithPrecision(digits uint32) Option {
	return func(e *Engine) {
		e.ctx = newContext(digits)
	}
}

// WithFailureHook registers fn to observe arithmetic failures. The failure is
// still absorbed into the NaN input; fn only gets to see it.
func WithFailureHook(fn func(op Operator, err error)) Option {
	return func(e *Engine) {
		e.onFailure = fn
	}
}

// Engine is the calculator state machine. It is not safe for concurrent use;
// each press must complete before the next one starts.
type Engine struct {
	input      string
	acc        string
	op         Operator
	startFresh bool

	ctx       *apd.Context
	onFailure func(Operator, error)
}

// New returns an engine in the initial state: input "0", no accumulator, no
// pending operator.
func New(opts ...Option) *Engine {
	return Restore(InitialState, opts...)
}

// Restore returns an engine holding the given state.
func Restore(s State, opts ...Option) *Engine {
	e := &Engine{
		input:      s.Input,
		acc:        s.Accumulator,
		op:         s.Operator,
		startFresh: s.StartFresh,
		ctx:        newContext(DefaultPrecision),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	return State{
		Input:       e.input,
		Accumulator: e.acc,
		Operator:    e.op,
		StartFresh:  e.startFresh,
	}
}

// Input returns the input buffer.
func (e *Engine) Input() string { return e.input }

// Accumulator returns the accumulated value as displayed, or "" when unset.
func (e *Engine) Accumulator() string { return e.acc }

// Operator returns the pending operator.
func (e *Engine) Operator() Operator { return e.op }

// StartFresh reports whether the next digit replaces the input buffer.
func (e *Engine) StartFresh() bool { return e.startFresh }

// Failed reports whether the input buffer holds the NaN sentinel.
func (e *Engine) Failed() bool { return e.input == NaN }

// Press dispatches a key to the matching operation.
func (e *Engine) Press(k Key) {
	switch k.Kind {
	case KeyDigit:
		e.PressDigit(k.Digit)
	case KeyOperator:
		e.PressOperator(k.Op)
	case KeyEquals:
		e.PressEquals()
	case KeySignToggle:
		e.PressSignToggle()
	case KeyClear:
		e.PressClear()
	}
}

// PressDigit appends a digit or decimal point to the input buffer. After an
// operator press the buffer is replaced instead, and a lone "0" is always
// replaced. A second decimal point is ignored. A NaN input only gives way
// to a fresh start; otherwise digits are dropped until Clear.
func (e *Engine) PressDigit(token string) {
	if e.startFresh {
		e.input = ""
		e.startFresh = false
	}
	if e.Failed() {
		return
	}
	if token == "." && strings.Contains(e.input, ".") {
		return
	}
	if e.input == "0" {
		e.input = ""
	}
	e.input += token
}

// PressOperator evaluates the pending operation and makes op the pending
// operator. The accumulator only takes the result when it was empty.
func (e *Engine) PressOperator(op Operator) {
	if op == None || !op.valid() {
		return
	}
	result, ok := e.evaluate()
	if !ok {
		return
	}
	if e.acc == "" {
		e.acc = result
	}
	e.op = op
	e.startFresh = true
}

// PressEquals applies the pending operator to the accumulator and the input.
// The operator stays pending, so pressing "=" again repeats the operation.
// With nothing pending the accumulator is cleared.
func (e *Engine) PressEquals() {
	if e.op == None {
		e.acc = ""
		return
	}
	result, ok := e.evaluate()
	if !ok {
		return
	}
	e.acc = result
	e.startFresh = true
}

// PressSignToggle negates the input buffer. Zero has no sign.
func (e *Engine) PressSignToggle() {
	switch {
	case e.Failed():
	case strings.HasPrefix(e.input, "-"):
		e.input = e.input[1:]
	case e.input == "0":
	default:
		e.input = "-" + e.input
	}
}

// PressClear resets the input to "0". When the input was already "0" or
// empty, the accumulator and pending operator are cleared too.
func (e *Engine) PressClear() {
	if e.input == "0" || e.input == "" {
		e.acc = ""
		e.op = None
	}
	e.input = "0"
}

// SetInput replaces the input buffer with text typed directly into the input
// field. Text that is not a partial decimal number is rejected and the buffer
// is left unchanged.
func (e *Engine) SetInput(text string) bool {
	if !inputPattern.MatchString(text) {
		return false
	}
	e.input = text
	return true
}

// evaluate computes acc <op> input. On failure the input becomes NaN and the
// failure hook is told why.
func (e *Engine) evaluate() (string, bool) {
	// A NaN operand is the earlier failure, not a new one.
	if e.Failed() {
		return "", false
	}
	result, err := e.compute()
	if err != nil {
		e.input = NaN
		if e.onFailure != nil {
			e.onFailure(e.op, err)
		}
		return "", false
	}
	return result.String(), true
}

func (e *Engine) compute() (*apd.Decimal, error) {
	left, err := parseOperand(e.acc)
	if err != nil {
		return nil, err
	}
	right, err := parseOperand(e.input)
	if err != nil {
		return nil, err
	}
	return calculate(e.ctx, left, right, e.op)
}
