// Command godb-decode replays captured result rows and parameters through
// the integer value codec and prints what a driver would see.
//
//	godb-decode --fixture rows.yaml --target 32
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	var fixturePath string
	var target int
	var logLevel string

	flagSet := pflag.NewFlagSet("godb-decode", pflag.ContinueOnError)
	flagSet.StringVarP(&fixturePath, "fixture", "f", "", "path to a YAML fixture of columns, rows and params")
	flagSet.IntVar(&target, "target", 0, "native integer width to decode into: 8, 16, 32 or 64 (overrides the fixture)")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if fixturePath == "" {
		return fmt.Errorf("--fixture is required")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fx, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}
	if target != 0 {
		fx.Target = target
	}
	logger.Debug("fixture loaded", "path", fixturePath, "rows", len(fx.Rows), "params", len(fx.Params), "target", fx.Target)

	return replay(os.Stdout, logger, fx)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `godb-decode: replay result rows and parameters through the integer codec.

Usage: godb-decode --fixture FILE [--target BITS]

Flags:
%s`, flagSet.FlagUsages())
}
