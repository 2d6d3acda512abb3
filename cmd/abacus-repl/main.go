// Command abacus-repl drives a calculator from the terminal. Each input line
// holds whitespace-separated key labels ("12 + 3 =", "Clear", "+/-"); the
// display is printed after every line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/seantiz/abacus/internal/calc"
	"github.com/seantiz/abacus/internal/config"
)

func main() {
	cfg := config.Load()
	if err := run(os.Stdin, os.Stdout, os.Stderr, cfg.Precision); err != nil {
		log.Fatalf("abacus-repl: %v", err)
	}
}

func run(in io.Reader, out, errOut io.Writer, precision uint32) error {
	eng := calc.New(
		calc.WithPrecision(precision),
		calc.WithFailureHook(func(op calc.Operator, err error) {
			fmt.Fprintf(errOut, "%s: %v\n", op, err)
		}),
	)

	printDisplay(out, eng)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		for _, label := range strings.Fields(scanner.Text()) {
			keys, err := parseLabel(label)
			if err != nil {
				fmt.Fprintln(errOut, err)
				continue
			}
			for _, k := range keys {
				eng.Press(k)
			}
		}
		printDisplay(out, eng)
	}
	return scanner.Err()
}

// parseLabel accepts a keypad label or a run of single-character keys, so
// "12.5" presses four keys and "2*3=" presses four more. A run with any
// unknown character presses nothing.
func parseLabel(label string) ([]calc.Key, error) {
	if k, err := calc.ParseKey(label); err == nil {
		return []calc.Key{k}, nil
	}
	keys := make([]calc.Key, 0, len(label))
	for _, r := range label {
		k, err := calc.ParseKey(string(r))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", calc.ErrUnknownKey, label)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func printDisplay(w io.Writer, eng *calc.Engine) {
	fmt.Fprintf(w, "input=%s accumulator=%s operator=%s\n",
		eng.Input(), eng.Accumulator(), eng.Operator().Symbol())
}
