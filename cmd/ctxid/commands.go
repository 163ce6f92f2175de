package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/searchctx"
	"github.com/hupe1980/searchctx/codec"
	"github.com/hupe1980/searchctx/wire"
	"github.com/urfave/cli/v3"
)

const (
	formatHex   = "hex"
	formatToken = "token"
	formatJSON  = "json"
)

func createCommands() []*cli.Command {
	return []*cli.Command{
		createEncodeCommand(),
		createDecodeCommand(),
		createGenerateCommand(),
	}
}

func createEncodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "encode an identity for a peer at --protocol",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "session id (required, may be empty)"},
			&cli.Int64Flag{Name: "id", Aliases: []string{"i"}, Usage: "context id"},
			&cli.StringFlag{Name: "trace", Aliases: []string{"t"}, Usage: "distributed trace id"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatHex, Usage: "hex, token or json"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			var sessionID, traceID *string
			if cmd.IsSet("session") {
				v := cmd.String("session")
				sessionID = &v
			}
			if cmd.IsSet("trace") {
				v := cmd.String("trace")
				traceID = &v
			}
			id, err := searchctx.FromParts(sessionID, cmd.Int64("id"), traceID)
			if err != nil {
				return usagef("--session is required: %v", err)
			}

			out, err := encodeID(s, id, cmd.String("format"))
			if err != nil {
				return err
			}
			s.logger.Debug("encoded context id", "context_id", id.String(), "format", cmd.String("format"))
			_, err = fmt.Fprintln(cmd.Root().Writer, out)
			return err
		},
	}
}

func encodeID(s *settings, id *searchctx.ContextID, format string) (string, error) {
	switch format {
	case formatHex:
		var buf bytes.Buffer
		if err := s.codec.Encode(wire.NewWriter(&buf, s.protocol), id); err != nil {
			return "", err
		}
		return hex.EncodeToString(buf.Bytes()), nil
	case formatToken:
		return s.codec.EncodeToken(id, s.protocol)
	case formatJSON:
		b, err := codec.Default.Marshal(id)
		return string(b), err
	default:
		return "", usagef("unknown format %q", format)
	}
}

func createDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a payload and print it as JSON",
		ArgsUsage: "<payload>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: formatHex, Usage: "hex or token"},
			&cli.BoolFlag{Name: "pretty", Usage: "indent the JSON output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return usagef("decode takes exactly one payload, got %d", cmd.Args().Len())
			}
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			id, version, err := decodeID(s, strings.TrimSpace(cmd.Args().First()), cmd.String("format"))
			if err != nil {
				return err
			}
			b, err := describe(id, version, cmd.Bool("pretty"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, string(b))
			return err
		},
	}
}

// describe renders id as JSON together with the protocol it was read at.
func describe(id *searchctx.ContextID, version wire.Version, pretty bool) ([]byte, error) {
	fields := map[string]any{
		"session_id": id.SessionID(),
		"id":         id.ID(),
		"protocol":   version.String(),
		"display":    id.String(),
	}
	if traceID, ok := id.DistributedTraceID(); ok {
		fields["trace_id"] = traceID
	}
	if pretty {
		return codec.MarshalIndent(codec.Default, fields, "  ")
	}
	return codec.Default.Marshal(fields)
}

func decodeID(s *settings, payload, format string) (*searchctx.ContextID, wire.Version, error) {
	switch format {
	case formatHex:
		raw, err := hex.DecodeString(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: hex: %w", searchctx.ErrMalformedInput, err)
		}
		br := bytes.NewReader(raw)
		id, err := s.codec.Decode(wire.NewReader(br, s.protocol))
		if err != nil {
			return nil, 0, err
		}
		if br.Len() != 0 {
			return nil, 0, fmt.Errorf("%w: %d trailing bytes", searchctx.ErrMalformedInput, br.Len())
		}
		return id, s.protocol, nil
	case formatToken:
		id, version, err := s.codec.DecodeToken(payload)
		var uv *searchctx.ErrUnsupportedVersion
		if errors.As(err, &uv) {
			s.logger.Warn("token written by unsupported peer", "token_protocol", uv.Version.String())
		}
		return id, version, err
	default:
		return nil, 0, usagef("unknown format %q", format)
	}
}

func createGenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "mint identities for a session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "session", Aliases: []string{"s"}, Usage: "session id, empty allowed (default: random UUID)"},
			&cli.Int64Flag{Name: "start", Value: 1, Usage: "first context id"},
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 1, Usage: "number of identities"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			n := cmd.Int("count")
			if n < 1 {
				return usagef("--count must be positive, got %d", n)
			}
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			opts := []searchctx.GeneratorOption{searchctx.WithStartID(cmd.Int64("start"))}
			if cmd.IsSet("session") {
				opts = append(opts, searchctx.WithSessionID(cmd.String("session")))
			}
			g := searchctx.NewGenerator(opts...)
			s.logger.Debug("generating context ids", "session_id", g.SessionID(), "count", n)

			for i := 0; i < n; i++ {
				if _, err := fmt.Fprintln(cmd.Root().Writer, g.Next(ctx)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
