package calc

import "fmt"

// Button is one keypad button and its place in the grid.
type Button struct {
	Label   string `json:"label"`
	Kind    string `json:"kind"`
	Row     int    `json:"row"`
	Column  int    `json:"column"`
	RowSpan int    `json:"row_span"`

	key Key
}

// Key returns the key the button presses.
func (b Button) Key() Key { return b.key }

func button(k Key, row, col, span int) Button {
	return Button{
		Label:   k.Label(),
		Kind:    k.Kind.String(),
		Row:     row,
		Column:  col,
		RowSpan: span,
		key:     k,
	}
}

// keypad lists the buttons row by row. "=" and "Clear" span two rows.
var keypad = []Button{
	button(DigitKey("7"), 0, 0, 1),
	button(DigitKey("8"), 0, 1, 1),
	button(DigitKey("9"), 0, 2, 1),
	button(OperatorKey(Multiply), 0, 3, 1),
	button(Clear, 0, 4, 2),

	button(DigitKey("4"), 1, 0, 1),
	button(DigitKey("5"), 1, 1, 1),
	button(DigitKey("6"), 1, 2, 1),
	button(OperatorKey(Divide), 1, 3, 1),

	button(DigitKey("1"), 2, 0, 1),
	button(DigitKey("2"), 2, 1, 1),
	button(DigitKey("3"), 2, 2, 1),
	button(OperatorKey(Subtract), 2, 3, 1),
	button(Equals, 2, 4, 2),

	button(SignToggle, 3, 0, 1),
	button(DigitKey("0"), 3, 1, 1),
	button(DigitKey("."), 3, 2, 1),
	button(OperatorKey(Add), 3, 3, 1),
}

var keysByLabel = func() map[string]Key {
	m := make(map[string]Key, len(keypad))
	for _, b := range keypad {
		m[b.Label] = b.key
	}
	return m
}()

// Keypad returns the buttons in layout order.
func Keypad() []Button {
	out := make([]Button, len(keypad))
	copy(out, keypad)
	return out
}

// ParseKey returns the key for a button label such as "7", "+/-" or "Clear".
func ParseKey(label string) (Key, error) {
	k, ok := keysByLabel[label]
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, label)
	}
	return k, nil
}

// ParseKeys parses every label, stopping at the first unknown one.
func ParseKeys(labels []string) ([]Key, error) {
	keys := make([]Key, 0, len(labels))
	for _, l := range labels {
		k, err := ParseKey(l)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
