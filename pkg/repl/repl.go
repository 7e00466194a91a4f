// Package repl is the line mode used when stdin is not a terminal: each
// input line is one chat turn and the transcript goes to the writer.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"agentbuddy/pkg/chat"

	"golang.org/x/term"
)

const maxLineSize = 1024 * 1024

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run submits every line read from in through sess and writes the user
// and assistant entries to out. Blank lines are skipped. It returns when
// in is exhausted or ctx is done, even while a read is still blocked.
// ctx is also passed to the agent, so cancelling aborts a turn in flight
// and that turn ends with the fallback reply.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess *chat.Session) error {
	lines, readErr := readLines(ctx, in)

	turns := 0
	for {
		var line string
		select {
		case <-ctx.Done():
			return fmt.Errorf("line mode canceled: %w", ctx.Err())
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					if ctx.Err() != nil {
						return fmt.Errorf("line mode canceled: %w", ctx.Err())
					}
					return fmt.Errorf("reading input: %w", err)
				}
				slog.Info("line_mode_done", "session_id", sess.ID(), "turns", turns)
				return nil
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("line mode canceled: %w", err)
		}

		reply, ok := sess.Submit(ctx, line)
		if !ok {
			continue
		}

		messages := sess.Messages()
		if turns > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return fmt.Errorf("writing transcript: %w", err)
			}
		}
		if err := chat.WriteTranscript(out, []chat.Message{messages[len(messages)-2], reply}); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
		turns++
	}
}

// readLines scans in on its own goroutine. lines is closed at EOF or on a
// read error, after which readErr yields the scanner error (or ctx.Err()
// if the reader gave up on a canceled ctx). A read blocked
// on a silent terminal keeps the goroutine parked until the process exits.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}
