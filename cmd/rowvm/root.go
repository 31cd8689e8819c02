package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rowvm/internal/rowlog"
)

// rootCmd follows the teacher pack's hivectl/root.go shape: a bare Cobra
// root with persistent flags, executed from main via Execute.
var rootCmd = &cobra.Command{
	Use:   "rowvm",
	Short: "Assemble and run rowvm bytecode programs",
	Long: `rowvm assembles a textual bytecode program (see vm/compile.go for the
instruction syntax) and executes it against an input stream, one record
per line.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		rowlog.Init(rowlog.Options{Debug: debugFlag})
	},
}

var (
	debugFlag    bool
	fieldSepFlag string
	encodingFlag string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable verbose debug logging and the single-step debugger")
	rootCmd.AddCommand(runCmd)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
