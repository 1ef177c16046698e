package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/0xRadioAc7iv/go-picklecache/core"
	"github.com/0xRadioAc7iv/go-picklecache/internal/config"
	"github.com/0xRadioAc7iv/go-picklecache/internal/utils"
)

func main() {
	os.Exit(realMain(os.Args, os.Stdout))
}

func realMain(args []string, out io.Writer) int {
	ctx, stop := utils.ContextWithProcessInterruptOrKill(context.Background())
	defer stop()

	if err := newApp(out).Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, core.ErrKeyNotFound) {
			return 1
		}
		return 2
	}

	return 0
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "picklecache",
		Usage:     "inspect and edit a picklecache backing file",
		Flags:     config.Flags(),
		Writer:    out,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print the value stored under KEY",
				ArgsUsage: "KEY",
				Action:    withCache(out, cmdGet),
			},
			{
				Name:      "set",
				Usage:     "store VALUE under KEY and flush",
				ArgsUsage: "KEY VALUE",
				Action:    withCache(out, cmdSet),
			},
			{
				Name:      "delete",
				Aliases:   []string{"del", "rm"},
				Usage:     "remove KEY and flush",
				ArgsUsage: "KEY",
				Action:    withCache(out, cmdDelete),
			},
			{
				Name:   "count",
				Usage:  "print the number of entries",
				Action: withCache(out, cmdCount),
			},
			{
				Name:   "keys",
				Usage:  "print every key, sorted",
				Action: withCache(out, cmdKeys),
			},
			{
				Name:   "info",
				Usage:  "describe the backing file",
				Action: withCache(out, cmdInfo),
			},
		},
	}
}

type cacheAction func(out io.Writer, cache *core.Cache[string, string], args cli.Args) error

func withCache(out io.Writer, action cacheAction) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
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

		return action(out, cache, cmd.Args())
	}
}

func requireArgs(args cli.Args, n int, usage string) error {
	if args.Len() != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// persist flushes unless autosync already did.
func persist(cache *core.Cache[string, string]) error {
	if cache.AutoSync {
		return nil
	}
	return cache.Flush()
}

func cmdGet(out io.Writer, cache *core.Cache[string, string], args cli.Args) error {
	if err := requireArgs(args, 1, "get KEY"); err != nil {
		return err
	}

	val, err := cache.Get(args.First())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, val)
	return nil
}

func cmdSet(out io.Writer, cache *core.Cache[string, string], args cli.Args) error {
	if err := requireArgs(args, 2, "set KEY VALUE"); err != nil {
		return err
	}

	if err := cache.Set(args.Get(0), args.Get(1)); err != nil {
		return err
	}
	if err := persist(cache); err != nil {
		return err
	}

	fmt.Fprintln(out, "ok")
	return nil
}

func cmdDelete(out io.Writer, cache *core.Cache[string, string], args cli.Args) error {
	if err := requireArgs(args, 1, "delete KEY"); err != nil {
		return err
	}

	if err := cache.Delete(args.First()); err != nil {
		return err
	}
	if err := persist(cache); err != nil {
		return err
	}

	fmt.Fprintln(out, "ok")
	return nil
}

func cmdCount(out io.Writer, cache *core.Cache[string, string], _ cli.Args) error {
	fmt.Fprintln(out, cache.Size())
	return nil
}

func cmdKeys(out io.Writer, cache *core.Cache[string, string], _ cli.Args) error {
	keys := cache.Keys()
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintln(out, k)
	}
	return nil
}

func cmdInfo(out io.Writer, cache *core.Cache[string, string], _ cli.Args) error {
	fmt.Fprintf(out, "path:     %s\n", cache.Path())
	fmt.Fprintf(out, "entries:  %s\n", humanize.Comma(int64(cache.Size())))

	info, ok, err := utils.StatFile(cache.Path())
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "size:     (not written yet)")
		return nil
	}

	fmt.Fprintf(out, "size:     %s\n", humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(out, "modified: %s (%s)\n", humanize.Time(info.ModTime()), info.ModTime().Format(time.RFC3339))
	return nil
}
