package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/bipin-k/lrucache/cache"
	"github.com/bipin-k/lrucache/internal"
)

const absent = "<absent>"

type op struct {
	get   bool
	key   string
	value string
}

// parseOp reads "put:KEY=VALUE" or "get:KEY".
func parseOp(arg string) (op, error) {
	kind, rest, ok := strings.Cut(arg, ":")
	if !ok || rest == "" {
		return op{}, fmt.Errorf("malformed op %q", arg)
	}

	switch kind {
	case "get":
		return op{get: true, key: rest}, nil
	case "put":
		key, value, ok := strings.Cut(rest, "=")
		if !ok || key == "" {
			return op{}, fmt.Errorf("malformed put %q, want put:KEY=VALUE", arg)
		}
		return op{key: key, value: value}, nil
	default:
		return op{}, fmt.Errorf("unknown op %q in %q", kind, arg)
	}
}

func run(out io.Writer, c *cache.LRUCache[string, string], ops []op) {
	for _, o := range ops {
		if !o.get {
			c.Put(o.key, o.value)
			continue
		}
		if v, ok := c.Get(o.key); ok {
			fmt.Fprintf(out, "%s -> %s\n", o.key, v)
		} else {
			fmt.Fprintf(out, "%s -> %s\n", o.key, absent)
		}
	}
	fmt.Fprintf(out, "keys (MRU->LRU): %v\n", c.Keys())
}

func newRootCmd() *cobra.Command {
	var (
		capacity int
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "lrucache [flags] OP...",
		Short: "Replay put/get operations against an LRU cache",
		Long: `Replay a sequence of operations against a fixed-capacity LRU cache.
Each OP is either put:KEY=VALUE or get:KEY.`,
		Example:       "  lrucache --capacity 2 put:1=a put:2=b get:1 put:3=c get:2",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := make([]op, 0, len(args))
			for _, arg := range args {
				o, err := parseOp(arg)
				if err != nil {
					return err
				}
				ops = append(ops, o)
			}

			level := zapcore.InfoLevel
			if verbose {
				level = zapcore.DebugLevel
			}
			logger := internal.NewLogger(cmd.ErrOrStderr(), level)
			defer func() { _ = logger.Sync() }()

			c, err := cache.New[string, string](capacity, cache.WithLogger[string, string](logger))
			if err != nil {
				return fmt.Errorf("init cache: %w", err)
			}

			run(cmd.OutOrStdout(), c, ops)
			return nil
		},
	}

	cmd.Flags().IntVarP(&capacity, "capacity", "c", 2, "maximum number of resident entries")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log evictions to stderr")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
