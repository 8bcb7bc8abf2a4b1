// Command golisp runs Lisp programs from files or the command line,
// starts an interactive REPL, and lists the bundled example programs.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apavazza/golisp/examples"
	"github.com/apavazza/golisp/interp"
	"github.com/apavazza/golisp/repl"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "golisp",
	Short: "A small Lisp interpreter",
	Long:  `golisp interprets a small Lisp dialect: a subset of Common Lisp with a few Scheme-isms.`,
}

var (
	runExpression bool
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied via the command line or one or more .lsp files.`,
	Run: func(cmd *cobra.Command, args []string) {
		progs, err := runReadPrograms(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		stdin := bufio.NewScanner(os.Stdin)
		input := func() (string, bool) {
			if !stdin.Scan() {
				return "", false
			}
			return stdin.Text(), true
		}
		for _, prog := range progs {
			out, err := interp.Evaluate(prog, input)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if out != "" {
				fmt.Println(out)
			}
		}
	},
}

func runReadPrograms(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("run: expected a file or an expression argument")
	}
	progs := make([]string, len(args))
	if runExpression {
		copy(progs, args)
		return progs, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		progs[i] = string(b)
	}
	return progs, nil
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Run: func(cmd *cobra.Command, args []string) {
		repl.Run("> ")
	},
}

var (
	examplesRun bool
)

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List or show the bundled example programs",
	Long: `With no arguments, list the names of the bundled example programs.
With a name, print that example's source, or run it with --run.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, ex := range examples.Catalogue() {
				fmt.Println(ex.Name)
			}
			return
		}
		ex, ok := examples.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "no example named %q\n", args[0])
			os.Exit(1)
		}
		if !examplesRun {
			fmt.Print(ex.Code)
			return
		}
		out, err := interp.Evaluate(ex.Code, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if out != "" {
			fmt.Println(out)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the golisp version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("golisp " + version)
	},
}

func init() {
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	examplesCmd.Flags().BoolVarP(&examplesRun, "run", "r", false,
		"Evaluate the named example and print its output")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
