package calc

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a label does not name a keypad button.
var ErrUnknownKey = errors.New("unknown key")

// Operator is an arithmetic operator awaiting its right-hand operand.
type Operator int

// Operators. None means no operator is pending.
const (
	None Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

var operatorSymbols = [...]string{
	None:     "",
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
}

var operatorNames = [...]string{
	None:     "none",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
}

func (o Operator) valid() bool {
	return o >= None && o <= Divide
}

// Symbol returns the operator as shown in the operator label. None renders
// as the empty string.
func (o Operator) Symbol() string {
	if !o.valid() {
		return ""
	}
	return operatorSymbols[o]
}

func (o Operator) String() string {
	if !o.valid() {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorNames[o]
}

// ParseOperator maps a display symbol back to its Operator. The empty string
// is None.
func ParseOperator(symbol string) (Operator, error) {
	for op, s := range operatorSymbols {
		if s == symbol {
			return Operator(op), nil
		}
	}
	return None, fmt.Errorf("parse operator %q: %w", symbol, ErrUnknownKey)
}

// KeyKind tags the variant held by a Key.
type KeyKind int

// Key kinds.
const (
	KeyDigit KeyKind = iota
	KeyOperator
	KeyEquals
	KeySignToggle
	KeyClear
)

var keyKindNames = [...]string{
	KeyDigit:      "digit",
	KeyOperator:   "operator",
	KeyEquals:     "equals",
	KeySignToggle: "sign_toggle",
	KeyClear:      "clear",
}

func (k KeyKind) String() string {
	if k < KeyDigit || k > KeyClear {
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
	return keyKindNames[k]
}

// Key is a single keypad press. Digit is set for KeyDigit ("0".."9" or "."),
// Op for KeyOperator.
type Key struct {
	Kind  KeyKind
	Digit string
	Op    Operator
}

// Fixed keys.
var (
	Equals     = Key{Kind: KeyEquals}
	SignToggle = Key{Kind: KeySignToggle}
	Clear      = Key{Kind: KeyClear}
)

// DigitKey returns the key for a digit or decimal point token.
func DigitKey(token string) Key {
	return Key{Kind: KeyDigit, Digit: token}
}

// OperatorKey returns the key for an arithmetic operator.
func OperatorKey(op Operator) Key {
	return Key{Kind: KeyOperator, Op: op}
}

// Label returns the keypad label for the key.
func (k Key) Label() string {
	switch k.Kind {
	case KeyDigit:
		return k.Digit
	case KeyOperator:
		return k.Op.Symbol()
	case KeyEquals:
		return "="
	case KeySignToggle:
		return "+/-"
	case KeyClear:
		return "Clear"
	}
	return ""
}

func (k Key) String() string {
	return k.Label()
}
