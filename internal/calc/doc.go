// Package calc implements the keypad calculator engine: an input buffer, an
// accumulated left-hand value, a pending operator and a start-fresh flag,
// mutated only by key presses. Arithmetic is exact base-10 decimal.
//
// The engine never renders anything. Callers read the display fields through
// the accessors after each press.
package calc
