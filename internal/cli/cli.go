// Package cli implements the tlox command's front end: REPL, file, and
// TCP server modes over the scanner/parser/interpreter pipeline in the
// driver package.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/loxrun/tlox/driver"
	"github.com/loxrun/tlox/internal/replsrv"
)

var redColor = color.New(color.FgRed)

// Main is the CLI's real entry point, called from cmd/tlox's package
// main so it stays testable without os.Exit escaping the test binary.
func Main(args []string) int {
	switch len(args) {
	case 0:
		runREPL(os.Stdin, os.Stdout)
		return 1
	case 1:
		if args[0] == "--help" || args[0] == "-h" {
			printUsage(os.Stdout)
			return 0
		}
		return runFileArg(args[0], false)
	case 2:
		if args[0] == "server" {
			return runServer(args[1])
		}
		if args[1] == "--watch" {
			return runFileArg(args[0], true)
		}
		printUsage(os.Stderr)
		return 64
	default:
		printUsage(os.Stderr)
		return 64
	}
}

// Prompt is shown before each REPL line, matching the spec's required
// "> " prompt.
const Prompt = "> "

// runREPL reads lines with readline (history, arrow-key editing) and
// feeds each one through its own Driver.Run call, clearing HadError
// between lines so one bad line does not end the session. Typing
// ".exit" or hitting EOF ends the loop.
func runREPL(in io.Reader, out io.Writer) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      Prompt,
		HistoryFile: "",
		Stdin:       io.NopCloser(in),
		Stdout:      out,
	})
	if err != nil {
		redColor.Fprintf(os.Stderr, "tlox: %v\n", err)
		return
	}
	defer rl.Close()

	d := driver.New()
	d.Out = out
	d.Interp.Writer = out

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return
		}
		if line == ".exit" {
			return
		}
		if line == "" {
			continue
		}
		d.Run(line)
		d.ResetError()
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: tlox                 start the REPL")
	fmt.Fprintln(w, "       tlox <script>        run a .lox file ('-' reads stdin)")
	fmt.Fprintln(w, "       tlox <script> --watch re-run the file whenever it changes")
	fmt.Fprintln(w, "       tlox server <port>    run a REPL over TCP")
}

// runFileArg loads source from path ("-" means stdin), runs it once,
// and, when watch is set, re-runs it on every subsequent write to the
// file. Reading from stdin and --watch are mutually pointless together,
// so watch is only honored for a real path.
func runFileArg(path string, watch bool) int {
	source, err := readSource(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "tlox: %v\n", err)
		return 1
	}

	code := runSource(source, os.Stdout)
	if !watch || path == "-" {
		return code
	}

	if err := watchFile(path); err != nil {
		redColor.Fprintf(os.Stderr, "tlox: --watch: %v\n", err)
		return 1
	}
	return 0
}

func readSource(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// runSource feeds source through a single Driver and returns the exit
// code file mode should report.
func runSource(source string, out io.Writer) int {
	d := driver.NewWithWriter(out)
	d.Run(source)
	return d.ExitCode()
}

// watchFile blocks, re-running path on every write event until the
// process receives SIGINT/SIGTERM.
func watchFile(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stdout, "watching %s, ctrl-c to stop\n", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) {
				source, err := readSource(path)
				if err != nil {
					redColor.Fprintf(os.Stderr, "tlox: %v\n", err)
					continue
				}
				runSource(source, os.Stdout)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			redColor.Fprintf(os.Stderr, "tlox: watch: %v\n", err)
		}
	}
}

func runServer(port string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := replsrv.New(":" + port)
	if err := srv.ListenAndServe(ctx); err != nil {
		redColor.Fprintf(os.Stderr, "tlox: %v\n", err)
		return 1
	}
	return 0
}
