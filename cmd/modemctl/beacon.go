package main

import (
	"fmt"

	"github.com/cwbudde/algo-modem/beacon"
	"github.com/cwbudde/algo-modem/detect"
	"github.com/urfave/cli/v2"
)

func (e *env) beaconCommand() *cli.Command {
	return &cli.Command{
		Name:  "beacon",
		Usage: "Encode identifier/timestamp beacons into a WAV file",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "id", Usage: "source identifier", Required: true},
			&cli.Uint64Flag{Name: "ts", Usage: "timestamp of the first beacon", Required: true},
			&cli.IntFlag{Name: "width", Usage: "bytes per field", Value: beacon.DefaultWidth},
			&cli.IntFlag{Name: "count", Usage: "number of beacons, one after the other", Value: 1},
			&cli.Uint64Flag{Name: "step", Usage: "timestamp increment between beacons", Value: 1},
			&cli.IntFlag{Name: "gap", Usage: "samples of silence before each beacon"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output WAV path", Required: true},
		},
		Action: func(c *cli.Context) error {
			count, gap := c.Int("count"), c.Int("gap")
			if count < 1 || gap < 0 {
				return cli.Exit("--count must be positive and --gap non-negative", 1)
			}

			var pcm []float64
			b := beacon.Beacon{Identifier: c.Uint64("id"), Timestamp: c.Uint64("ts")}
			for i := 0; i < count; i++ {
				payload, err := beacon.Marshal(b, c.Int("width"))
				if err != nil {
					return cli.Exit(err.Error(), 1)
				}
				frame, err := e.modulate(payload)
				if err != nil {
					return cli.Exit("Failed to modulate: "+err.Error(), 1)
				}
				pcm = append(pcm, make([]float64, gap)...)
				pcm = append(pcm, frame...)
				e.log.Debug("beacon encoded", "beacon", b.String())
				b.Timestamp += c.Uint64("step")
			}

			if err := e.writeWAV(c.String("out"), pcm); err != nil {
				return cli.Exit("Failed to write WAV: "+err.Error(), 1)
			}
			e.log.Info("beacons encoded", "count", count)
			return nil
		},
	}
}

func (e *env) trackCommand() *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "Scan continuous WAV captures for beacons and feed them to the sync tracker",
		ArgsUsage: "file.wav [file.wav ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "method", Usage: "detection method: fft or goertzel (default from profile)"},
			&cli.IntFlag{Name: "width", Usage: "bytes per beacon field", Value: beacon.DefaultWidth},
			&cli.IntFlag{Name: "hop", Usage: "analysis hop in samples (default one frame)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("Please provide at least one WAV file", 1)
			}
			method, err := e.method(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			width := c.Int("width")
			if width < 1 || width > beacon.MaxWidth {
				return cli.Exit(fmt.Sprintf("--width must be between 1 and %d", beacon.MaxWidth), 1)
			}
			scanner, err := e.scanner(method, 2*width, c.Int("hop"))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			clock := beacon.NewClock(e.cfg.SampleRate)
			tracker := beacon.NewTracker(func(t beacon.Transition) {
				_, _ = fmt.Fprintf(e.stdout, "%s\t%s\n", t.State, t.Beacon)
				clock.Observe(t)
			})

			// Captures are laid end to end on one sample timeline.
			var offset int64
			for _, path := range c.Args().Slice() {
				pcm, err := e.readWAV(path)
				if err != nil {
					e.log.Warn("skipping file", "path", path, "err", err)
					continue
				}
				scanner.Reset()
				matches, err := scanPCM(scanner, pcm)
				if err != nil {
					return cli.Exit("Failed to scan: "+err.Error(), 1)
				}
				if len(matches) == 0 {
					e.log.Warn("no beacon decoded", "path", path)
				}
				for _, m := range matches {
					b, err := beacon.Unmarshal(m.Payload)
					if err != nil {
						e.log.Warn("not a beacon payload", "path", path, "err", err)
						continue
					}
					e.log.Debug("beacon received", "path", path, "beacon", b.String(),
						"start", m.Start, "corrections", m.Corrections)
					clock.Advance(offset + m.End)
					tracker.Tick(b)
				}
				offset += int64(len(pcm))
				clock.Advance(offset)
			}

			if ts, ok := clock.Now(); ok {
				e.log.Info("tracking finished", "state", tracker.State().String(), "timestamp", ts)
			} else {
				e.log.Info("tracking finished", "state", tracker.State().String())
			}
			return nil
		},
	}
}

// scanPCM feeds pcm to s in capture-sized blocks.
func scanPCM(s *detect.Scanner, pcm []float64) ([]detect.Match, error) {
	const block = 4096
	var all []detect.Match
	for len(pcm) > 0 {
		n := min(block, len(pcm))
		matches, err := s.ProcessBlock(pcm[:n])
		if err != nil {
			return all, err
		}
		all = append(all, matches...)
		pcm = pcm[n:]
	}
	return all, nil
}
