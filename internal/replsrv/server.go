// Package replsrv runs the interpreter behind a TCP listener so a REPL
// session can be driven over the network instead of only over stdin.
// Each connection gets its own Driver and Environment; sessions never
// share interpreter state.
package replsrv

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/loxrun/tlox/driver"
)

var (
	cyanColor = color.New(color.FgCyan)
	redColor  = color.New(color.FgRed)
)

// Prompt is written before each line read from a connected client, same
// as the stdin REPL's prompt.
const Prompt = "> "

// Server accepts connections on Addr and runs one REPL session per
// connection until ctx is cancelled.
type Server struct {
	Addr string
}

// New creates a Server bound to addr (e.g. ":8080").
func New(addr string) *Server {
	return &Server{Addr: addr}
}

// ListenAndServe opens the listener and serves connections until ctx is
// cancelled, at which point the listener is closed and ListenAndServe
// returns once all in-flight sessions have finished.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("replsrv: listen %s: %w", s.Addr, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	cyanColor.Printf("tlox REPL server listening on %s\n", s.Addr)
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return g.Wait()
			default:
				redColor.Fprintf(os.Stderr, "replsrv: accept: %v\n", err)
				continue
			}
		}
		g.Go(func() error {
			handleConn(conn)
			return nil
		})
	}
}

// handleConn runs one line-oriented REPL session for a single client
// connection, mirroring the stdin REPL's read-eval-print cycle but with
// its own Driver so concurrent sessions never see each other's
// variables.
func handleConn(conn net.Conn) {
	defer conn.Close()
	cyanColor.Fprintf(conn, "tlox REPL (%s)\n", conn.RemoteAddr())

	d := driver.NewWithWriter(conn)
	scanner := bufio.NewScanner(conn)
	for {
		fmt.Fprint(conn, Prompt)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
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
