// cmd/sp/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	sp "github.com/tataRinaz/SP"
)

const (
	appName     = "sp"
	historyFile = ".sp_history"
	prompt      = ">> "
	banner      = "SP REPL — Ctrl+C to cancel input, Ctrl+D to exit. Type :help for commands."
	helpText    = `
REPL commands:
  :help            Show this help
  :quit / :exit    Exit the REPL
  :load <file>     Load & execute a file into the current session
  :reset           Reset the session (new empty environment)
`
)

// ---- main ------------------------------------------------------------------

func main() {
	var evalStr string
	flag.StringVar(&evalStr, "e", "", "Evaluate the given SP statement and exit")
	flag.Parse()

	args := flag.Args()

	switch {
	case evalStr != "":
		os.Exit(runEvalString(evalStr))
	case len(args) > 0:
		os.Exit(runFile(args[0]))
	default:
		os.Exit(runREPL())
	}
}

// ---- file & string modes ---------------------------------------------------

func runFile(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return 1
	}

	env := sp.NewEnvironment()
	last := sp.None
	for i, line := range strings.Split(string(src), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		v, err := evalLine(env, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: line %d: %v\n", appName, i+1, err)
			return 1
		}
		last = v
	}
	fmt.Println(last)
	return 0
}

func runEvalString(code string) int {
	env := sp.NewEnvironment()
	v, err := evalLine(env, code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	fmt.Println(v)
	return 0
}

// evalLine parses one statement and, when the whole line was consumed,
// evaluates it. A non-empty remainder is an error here (script modes have no
// use for trailing garbage).
func evalLine(env *sp.Environment, line string) (sp.Value, error) {
	rest, node, err := sp.ParseStatement([]byte(line))
	if err != nil {
		return sp.None, sp.WrapErrorWithSource(err, line)
	}
	if len(rest) > 0 {
		return sp.None, fmt.Errorf("trailing input %q after statement", string(rest))
	}
	v, err := node.Evaluate(env)
	if err != nil {
		return sp.None, sp.WrapErrorWithSource(err, line)
	}
	return v, nil
}

// ---- REPL ------------------------------------------------------------------

func runREPL() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	} else {
		fmt.Println("No previous history.")
	}

	env := sp.NewEnvironment()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			// Ctrl+C aborts the current input; let the user start over.
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		// REPL commands (prefixed with ':')
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if done := handleReplCommand(&env, ln, line); done {
				break
			}
			continue
		}

		if runLine(env, line) {
			ln.AppendHistory(line)
		}
	}

	// Persist history (best-effort)
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// runLine parses and evaluates one interactive line, printing what the user
// should see. It reports whether the line belongs in history: only fully
// consumed statements are recorded, whether or not evaluation succeeded.
func runLine(env *sp.Environment, line string) (record bool) {
	rest, node, err := sp.ParseStatement([]byte(line))
	if err != nil {
		fmt.Println(sp.WrapErrorWithSource(err, line))
		return false
	}

	if len(rest) > 0 {
		// Partial consumption: show what parsed, do not evaluate.
		fmt.Printf("Parsing incomplete, unparsed remainder: %q\n", string(rest))
		fmt.Printf("Line: %s\n", sp.DumpNode(node))
		return false
	}

	fmt.Printf("Line: %s\n", sp.DumpNode(node))
	v, err := node.Evaluate(env)
	if err != nil {
		fmt.Println(sp.WrapErrorWithSource(err, line))
		return true
	}
	fmt.Printf("Evaluated: %s\n", v)
	return true
}

// historyAppender is the slice of liner.State the command handler needs.
type historyAppender interface {
	AppendHistory(item string)
}

// handleReplCommand handles :help, :quit, :reset, :load.
func handleReplCommand(env **sp.Environment, hist historyAppender, line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case ":help":
		fmt.Print(helpText)

	case ":quit", ":exit":
		return true

	case ":reset":
		*env = sp.NewEnvironment()
		fmt.Println("environment reset.")

	case ":load":
		if len(fields) < 2 {
			fmt.Println("usage: :load <file>")
			return false
		}
		path := fields[1]
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("cannot read %s: %v\n", path, err)
			return false
		}
		for i, l := range strings.Split(string(src), "\n") {
			if strings.TrimSpace(l) == "" {
				continue
			}
			if _, err := evalLine(*env, l); err != nil {
				fmt.Printf("line %d: %v\n", i+1, err)
				return false
			}
		}
		hist.AppendHistory(fmt.Sprintf(":load %s", path))

	default:
		fmt.Printf("unknown command. Type :help for help.\n")
	}
	return false
}
