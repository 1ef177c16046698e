package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-picklecache/internal/config"
	"github.com/0xRadioAc7iv/go-picklecache/internal/utils"
)

func main() {
	ctx, stop := utils.ContextWithProcessInterruptOrKill(context.Background())
	defer stop()

	app := &cli.Command{
		Name:   "picklecache-cli",
		Usage:  "interactive shell over a picklecache backing file",
		Flags:  config.Flags(),
		Action: run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	settings, err := config.FromCommand(cmd)
	if err != nil {
		return err
	}

	log := settings.Logger()
	defer log.Sync()

	cache, err := settings.OpenStringCache(log)
	if err != nil {
		return err
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Warn("closing cache", zap.Error(err))
		}
	}()

	fmt.Printf("Opened %v (%d entries)\n", cache.Path(), cache.Size())
	fmt.Println("Type commands. 'help' for information or 'exit' to quit.")

	s := &session{cache: cache}
	if err := repl(ctx, s, os.Stdin, os.Stdout); err != nil {
		return err
	}

	return s.close()
}

// repl feeds lines from in to s until exit, EOF or ctx is cancelled.
func repl(ctx context.Context, s *session, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	// On cancellation the reader stays blocked in ReadString until in yields a
	// line or EOF. run exits the process right after, so it is not joined.
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "> ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			fmt.Fprintln(out)
			select {
			case err := <-readErr:
				return fmt.Errorf("input error: %w", err)
			default:
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		resp, err := s.execute(line)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, "(error)", err)
			continue
		}

		fmt.Fprintln(out, resp)
	}
}
