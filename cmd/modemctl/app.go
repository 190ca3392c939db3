package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/cwbudde/algo-modem/detect"
	"github.com/cwbudde/algo-modem/internal/profile"
	"github.com/cwbudde/algo-modem/modem"
	"github.com/urfave/cli/v2"
)

// env holds what the global flags resolve to; commands read it after Before
// has run.
type env struct {
	stdout  io.Writer
	stderr  io.Writer
	log     *slog.Logger
	profile *profile.Profile
	cfg     modem.Config
}

func newApp(stdout, stderr io.Writer) *cli.App {
	e := &env{stdout: stdout, stderr: stderr}

	return &cli.App{
		Name:      "modemctl",
		Usage:     "encode bytes as multi-tone audio and decode them back",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "built-in profile (" + strings.Join(profile.Names(), ", ") + ") or path to a YAML profile",
				Value:   "default",
				EnvVars: []string{"MODEMCTL_PROFILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"MODEMCTL_LOG_LEVEL"},
			},
		},
		Before: e.setup,
		Commands: []*cli.Command{
			e.encodeCommand(),
			e.decodeCommand(),
			e.roundtripCommand(),
			e.infoCommand(),
			e.beaconCommand(),
			e.trackCommand(),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return cli.Exit("invalid --log-level: "+err.Error(), 1)
	}
	e.log = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	p, err := profile.Resolve(c.String("profile"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cfg, err := p.Config()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	e.profile = p
	e.cfg = cfg

	e.log.Debug("profile loaded",
		"name", p.Name,
		"sample_rate", cfg.SampleRate,
		"samples_per_frame", cfg.SamplesPerFrame,
		"bits_per_frame", cfg.PayloadFrameSize,
		"repeat", cfg.Repeat,
	)
	return nil
}

// sampleRate returns the configured rate as the integer WAV files carry.
func (e *env) sampleRate() int {
	return int(math.Round(e.cfg.SampleRate))
}

// method resolves the --method flag, falling back to the profile.
func (e *env) method(c *cli.Context) (detect.Method, error) {
	if name := c.String("method"); name != "" {
		return detect.ParseMethod(name)
	}
	return e.profile.Method()
}

func payloadFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "message text"},
		&cli.StringFlag{Name: "hex", Usage: "message as hex bytes"},
	}
}

func payloadFrom(c *cli.Context) ([]byte, error) {
	msg, hexMsg := c.String("message"), c.String("hex")
	switch {
	case msg != "" && hexMsg != "":
		return nil, fmt.Errorf("use either --message or --hex, not both")
	case hexMsg != "":
		b, err := hex.DecodeString(hexMsg)
		if err != nil {
			return nil, fmt.Errorf("invalid --hex: %w", err)
		}
		return b, nil
	default:
		return []byte(msg), nil
	}
}
