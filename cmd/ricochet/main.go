package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

const usage = `usage: ricochet <command> [flags]

commands:
  sweep   print solver verdicts for one shell across impact angles
  sim     fire shells through a scripted arena and report the outcome

run "ricochet <command> -h" for command flags`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "sweep":
		err = runSweep(os.Args[2:])
	case "sim":
		err = runSim(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Println(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// commonFlags registers the flags every command shares. Dotted names bind
// straight onto config keys.
func commonFlags(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	path := fs.StringP("config", "c", "", "YAML config file")
	fs.String("log.level", "info", "log level: debug, info, warn, error")
	fs.Bool("log.development", false, "console log encoder")
	fs.String("shells.catalog", "", "YAML shell catalogue merged over the presets")
	return fs, path
}
