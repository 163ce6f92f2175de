// ctxid encodes, decodes and generates search context identities.
//
// Usage:
//
//	ctxid [global options] <command> [command options]
//
// Global options:
//
//	-c, --config            YAML or JSON config file
//	-p, --protocol          peer protocol version (default: current)
//	    --session-id-since  first protocol version carrying session ids (default: 7.7.0)
//	    --log-level         debug, info, warn or error (default: warn)
//	    --log-format        text or json (default: text)
//
// Commands:
//
//	encode     encode an identity as hex, token or JSON
//	decode     decode a hex payload or token and print it as JSON
//	generate   mint identities for a session
//
// Exit codes:
//
//	0: success
//	1: failure (including malformed payloads)
//	2: usage error
//
// Examples:
//
//	ctxid encode --session sessA --id 42 --trace trace-123
//	ctxid -p 7.6.0 encode --session sessA --id 42 --format token
//	ctxid decode --format token AAAA...
//	ctxid generate --count 3
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set with -ldflags "-X main.Version=...".
var Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// usageError marks errors caused by bad arguments.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func run(args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(context.Background(), args); err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "usage error: %v\n", ue)
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "ctxid",
		Usage:     "encode, decode and generate search context identities",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON config file",
			},
			&cli.StringFlag{
				Name:    "protocol",
				Aliases: []string{"p"},
				Usage:   "peer protocol version",
			},
			&cli.StringFlag{
				Name:  "session-id-since",
				Usage: "first protocol version carrying session ids",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json",
			},
		},
		Commands: createCommands(),
		// run maps errors to exit codes; keep urfave/cli from calling os.Exit.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}
