package main

import (
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-modem/beacon"
	"github.com/cwbudde/algo-modem/dsp/core"
	"github.com/cwbudde/algo-modem/dsp/signal"
	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/urfave/cli/v2"
)

func (e *env) encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Encode a message into a WAV file",
		Flags: append(payloadFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output WAV path", Required: true},
		),
		Action: func(c *cli.Context) error {
			payload, err := payloadFrom(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			pcm, err := e.modulate(payload)
			if err != nil {
				return cli.Exit("Failed to modulate: "+err.Error(), 1)
			}
			if err := e.writeWAV(c.String("out"), pcm); err != nil {
				return cli.Exit("Failed to write WAV: "+err.Error(), 1)
			}
			e.log.Info("encoded", "bytes", len(payload), "peak_dbfs", signal.PeakDB(pcm))
			return nil
		},
	}
}

func (e *env) decodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "Decode a message from a WAV file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "input WAV path", Required: true},
			&cli.StringFlag{Name: "method", Usage: "detection method: fft or goertzel (default from profile)"},
			&cli.BoolFlag{Name: "hex", Usage: "print the payload as hex"},
			&cli.BoolFlag{Name: "beacon", Usage: "print the payload as an identifier/timestamp beacon"},
		},
		Action: func(c *cli.Context) error {
			method, err := e.method(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			pcm, err := e.readWAV(c.String("in"))
			if err != nil {
				return cli.Exit("Failed to read WAV: "+err.Error(), 1)
			}
			payload, corrections, err := e.demodulate(pcm, method)
			if err != nil {
				return cli.Exit("Failed to decode: "+err.Error(), 1)
			}

			e.log.Info("decoded", "bytes", len(payload), "corrections", corrections)
			switch {
			case c.Bool("beacon"):
				b, err := beacon.Unmarshal(payload)
				if err != nil {
					return cli.Exit("Not a beacon payload: "+err.Error(), 1)
				}
				_, err = fmt.Fprintln(e.stdout, b)
				return err
			case c.Bool("hex"):
				_, err = fmt.Fprintln(e.stdout, hex.EncodeToString(payload))
			default:
				_, err = fmt.Fprintln(e.stdout, string(payload))
			}
			return err
		},
	}
}

func (e *env) roundtripCommand() *cli.Command {
	return &cli.Command{
		Name:  "roundtrip",
		Usage: "Encode, pass through a noisy channel, and decode",
		Flags: append(payloadFlags(),
			&cli.Float64Flag{Name: "noise", Usage: "peak amplitude of added white noise", Value: 0.05},
			&cli.Float64Flag{Name: "gain-db", Usage: "channel gain in dB"},
			&cli.Int64Flag{Name: "seed", Usage: "noise seed", Value: 1},
			&cli.Float64Flag{Name: "normalize", Usage: "normalize the received peak to this level in dBFS before detection"},
			&cli.StringFlag{Name: "method", Usage: "detection method: fft or goertzel (default from profile)"},
		),
		Action: func(c *cli.Context) error {
			payload, err := payloadFrom(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			method, err := e.method(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			pcm, err := e.modulate(payload)
			if err != nil {
				return cli.Exit("Failed to modulate: "+err.Error(), 1)
			}

			ch := signal.NewChannel(
				signal.WithGainDB(c.Float64("gain-db")),
				signal.WithNoise(c.Float64("noise")),
				signal.WithSeed(c.Int64("seed")),
			)
			received, clipped := ch.Apply(pcm)
			if clipped > 0 {
				e.log.Warn("channel clipped samples", "count", clipped)
			}
			if c.IsSet("normalize") {
				received = signal.Normalize(received, core.DBToLinear(c.Float64("normalize")))
				e.log.Debug("normalized", "peak_dbfs", signal.PeakDB(received))
			}

			got, corrections, err := e.demodulate(received, method)
			if err != nil {
				return cli.Exit("Round trip failed: "+err.Error(), 1)
			}
			if string(got) != string(payload) {
				return cli.Exit(fmt.Sprintf("Round trip mismatch: sent %x, received %x", payload, got), 1)
			}

			_, err = fmt.Fprintf(e.stdout, "ok bytes=%d corrections=%d signal_rms_dbfs=%.1f received_rms_dbfs=%.1f\n",
				len(payload), corrections, signal.RMSDB(pcm), signal.RMSDB(received))
			return err
		},
	}
}

func (e *env) infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Print the geometry and tone table of the active profile",
		Action: func(c *cli.Context) error {
			table, err := spectrum.Generate(e.cfg.Layout())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			cfg := e.cfg
			tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Profile\t%s\n", e.profile.Name)
			fmt.Fprintf(tw, "Sample rate\t%.0f Hz\n", cfg.SampleRate)
			fmt.Fprintf(tw, "Frame\t%d samples (%.2f ms)\n", cfg.SamplesPerFrame, 1000*float64(cfg.SamplesPerFrame)/cfg.SampleRate)
			fmt.Fprintf(tw, "Bits per frame\t%d\n", cfg.PayloadFrameSize)
			fmt.Fprintf(tw, "Repeat\t%d\n", cfg.Repeat)
			fmt.Fprintf(tw, "Frame capacity\t%d\n", cfg.PayloadFrames)
			fmt.Fprintf(tw, "Max payload\t%d bytes\n", cfg.MaxPayloadBytes())
			fmt.Fprintf(tw, "Bit rate\t%.1f bit/s\n", float64(cfg.PayloadFrameSize)*cfg.SampleRate/float64(cfg.SamplesPerFrame*cfg.Repeat))
			fmt.Fprintf(tw, "Fade\t%s, %d samples\n", cfg.FadeShape, cfg.RampSamples())
			fmt.Fprintln(tw)
			fmt.Fprintf(tw, "Slot\tLo bin\tLo [Hz]\tHi bin\tHi [Hz]\n")
			fmt.Fprintf(tw, "----\t------\t-------\t------\t-------\n")
			for slot := 0; slot < table.Slots(); slot++ {
				lo, hi := table.Lo(slot), table.Hi(slot)
				fmt.Fprintf(tw, "%d\t%d\t%.1f\t%d\t%.1f\n", slot, lo.Bin, lo.Frequency, hi.Bin, hi.Frequency)
			}
			return tw.Flush()
		},
	}
}
