package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/width"

	"rowvm/internal/rowlog"
	"rowvm/vm"
)

var inputEncodings = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
}

var runCmd = &cobra.Command{
	Use:   "run <program.rvm> [input]",
	Short: "Assemble and execute a program, one record per input line",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&fieldSepFlag, "field-separator", "F", " ", "Field separator for record splitting")
	runCmd.Flags().StringVar(&encodingFlag, "encoding", "", "Input text encoding (windows-1252, iso-8859-1); default UTF-8")
}

func runRun(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	program, err := vm.Assemble(string(src))
	if err != nil {
		return fmt.Errorf("assembling program: %w", err)
	}
	rowlog.Info("assembled program", "instructions", len(program.Instructions))

	var input io.Reader = os.Stdin
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		input = f
	}

	m := vm.New(program.Instructions, program.Counts, fieldSepFlag, os.Stdout)
	defer m.Close()

	if encodingFlag != "" {
		enc, ok := inputEncodings[encodingFlag]
		if !ok {
			return fmt.Errorf("unknown --encoding %q", encodingFlag)
		}
		m.FileReader().SetEncoding(enc)
		input = enc.NewDecoder().Reader(input)
	}

	// Restoring GOGC after the run follows the teacher's RunProgram: the
	// GC is disabled for the duration of execution since every register
	// file is allocated up front and the hot loop shouldn't pay for
	// collection passes.
	prevGC := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(prevGC)

	scanner := bufio.NewScanner(input)
	ranAny := false
	for scanner.Scan() {
		ranAny = true
		line := strings.TrimSuffix(scanner.Text(), "\r")
		m.Record().SetWhole(line)
		m.ResetPC()

		if err := runOne(m); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if !ranAny {
		m.Record().SetWhole("")
		m.ResetPC()
		return runOne(m)
	}
	return nil
}

func runOne(m *vm.VM) error {
	if debugFlag {
		return runDebug(m)
	}
	return m.Run()
}

// runDebug is the single-step debugger, grounded on the teacher's
// RunProgramDebugMode: a line-oriented REPL accepting "n"/"next",
// "r"/"run", and "b <n>" to toggle a breakpoint at instruction index n.
func runDebug(m *vm.VM) error {
	reader := bufio.NewReader(os.Stdin)
	breakpoints := make(map[int]struct{})
	running := false

	printState(m)
	for {
		if !running {
			fmt.Fprint(os.Stderr, "-> ")
			line, _ := reader.ReadString('\n')
			line = strings.ToLower(strings.TrimSpace(line))
			switch {
			case line == "n" || line == "next":
			case line == "r" || line == "run":
				running = true
			case strings.HasPrefix(line, "b "):
				n, err := strconv.Atoi(strings.TrimSpace(line[2:]))
				if err != nil {
					fmt.Fprintln(os.Stderr, "bad breakpoint:", err)
					continue
				}
				if _, ok := breakpoints[n]; ok {
					delete(breakpoints, n)
				} else {
					breakpoints[n] = struct{}{}
				}
				continue
			default:
				continue
			}
		} else if _, ok := breakpoints[m.PC()]; ok {
			fmt.Fprintln(os.Stderr, "breakpoint")
			running = false
			printState(m)
			continue
		}

		halted, err := m.Step()
		if err != nil {
			return err
		}
		printState(m)
		if halted {
			return nil
		}
	}
}

// printState dumps the program counter, the instruction about to execute,
// and the current record's whole line ($0) — the one value in a debug
// session that routinely holds multi-byte input, so its column is the one
// padCol actually needs to align.
func printState(m *vm.VM) {
	op := "halted"
	if instr, ok := m.CurrentInstr(); ok {
		op = instr.Op.String()
	}
	record := m.Record().Get(0).Materialise()
	fmt.Fprintf(os.Stderr, "pc=%-4d op=%-14s $0=%s\n", m.PC(), op, padCol(record, 24))
}

// padCol pads s to at least n display columns, counting East Asian wide
// and fullwidth runes as two columns — the $0 dump above stays aligned
// even when a debugged record holds multi-byte text.
func padCol(s string, n int) string {
	w := 0
	for _, r := range s {
		p := width.LookupRune(r)
		switch p.Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}
