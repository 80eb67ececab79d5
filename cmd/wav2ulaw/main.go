// Command wav2ulaw converts between 16-bit PCM WAV files and raw G.711
// μ-law files.
//
// Usage:
//
//	wav2ulaw --input speech.wav --output speech.ulaw --mode wav2ulaw --sample-rate 44100
//	wav2ulaw --input speech.ulaw --output speech.wav --mode ulaw2wav --sample-rate 44100
//	wav2ulaw --input tts.wav --output tts.ulaw --mode wav2ulaw --anti-aliasing-type 3 --chebyshev-ripple 0.5
//
// The transform runs fully in memory: on any validation or processing error
// the process exits non-zero and no output file is written.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	transcoder "github.com/tphakala/go-ulaw-transcoder"
)

var version = "0.1.0"

// CLI defines the command-line contract.
type CLI struct {
	Input  string `required:"" type:"existingfile" help:"Input file path."`
	Output string `required:"" type:"path" help:"Output file path."`
	Mode   string `required:"" enum:"wav2ulaw,ulaw2wav" help:"Conversion direction: wav2ulaw or ulaw2wav."`

	SampleRate int `name:"sample-rate" default:"0" help:"Input rate override (wav2ulaw, 0 = detect) or output rate (ulaw2wav)."`

	LowPass  float64 `name:"low-pass" default:"3400" help:"Low-pass cutoff in Hz (0 disables)."`
	HighPass float64 `name:"high-pass" default:"200" help:"High-pass cutoff in Hz (0 disables)."`

	Normalize         float64 `default:"0.95" help:"Peak normalization level (0..1]."`
	CompressRatio     float64 `name:"compress-ratio" default:"1.5" help:"Compression ratio (1.0 = none)."`
	CompressThreshold float64 `name:"compress-threshold" default:"0.5" help:"Compression threshold (0..1)."`

	WindowSize        int     `name:"window-size" default:"64" help:"Resampler window size (larger = better quality, slower)."`
	AntiAliasingRatio float64 `name:"anti-aliasing-ratio" default:"0.95" help:"Anti-aliasing cutoff relative to target Nyquist (0..1]."`
	AntiAliasingType  int     `name:"anti-aliasing-type" default:"1" help:"Anti-aliasing family: 0=Simple, 1=Butterworth, 2=Bessel, 3=Chebyshev."`
	FilterOrder       int     `name:"filter-order" default:"4" help:"Anti-aliasing filter order (2, 4 or 6)."`
	ChebyshevRipple   float64 `name:"chebyshev-ripple" default:"0" help:"Passband ripple in dB (required when type is 3)."`

	Verbose bool `short:"v" help:"Verbose output."`
	Version bool `help:"Show version information."`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("wav2ulaw"),
		kong.Description("WAV ↔ G.711 μ-law transcoder for telephone-bandwidth audio"),
		kong.UsageOnError(),
	)

	if cli.Version {
		fmt.Printf("wav2ulaw %s\n", version)
		os.Exit(0)
	}

	if err := run(cli); err != nil {
		log.Fatal(err)
	}
}

func run(cli *CLI) error {
	inputData, err := os.ReadFile(cli.Input)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", cli.Input, err)
	}

	var outputData []byte
	switch cli.Mode {
	case "wav2ulaw":
		outputData, err = convertToUlaw(cli, inputData)
	case "ulaw2wav":
		outputData, err = convertToWav(cli, inputData)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(cli.Output, outputData, 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", cli.Output, err)
	}

	if cli.Verbose {
		log.Printf("%s: %d bytes in, %d bytes out", cli.Mode, len(inputData), len(outputData))
	}
	return nil
}

func convertToUlaw(cli *CLI, inputData []byte) ([]byte, error) {
	cfg := &transcoder.Config{
		InputRate:            cli.SampleRate,
		ForceMono:            true,
		LowPassCutoff:        cli.LowPass,
		HighPassCutoff:       cli.HighPass,
		NormalizePeak:        cli.Normalize,
		CompressionRatio:     cli.CompressRatio,
		CompressionThreshold: cli.CompressThreshold,
		WindowSize:           cli.WindowSize,
		AntiAliasingRatio:    cli.AntiAliasingRatio,
		AntiAliasingType:     transcoder.FilterFamily(cli.AntiAliasingType),
		FilterOrder:          cli.FilterOrder,
		ChebyshevRipple:      cli.ChebyshevRipple,
	}

	if cli.Verbose {
		log.Printf("wav2ulaw: anti-aliasing %s order %d, window %d",
			cfg.AntiAliasingType, cfg.FilterOrder, cfg.WindowSize)
	}

	return transcoder.WavToUlaw(inputData, cfg)
}

func convertToWav(cli *CLI, inputData []byte) ([]byte, error) {
	rate := cli.SampleRate
	if rate == 0 {
		rate = transcoder.TelephonyRate
	}

	if cli.Verbose {
		log.Printf("ulaw2wav: %d μ-law samples to %d Hz, window %d",
			len(inputData), rate, cli.WindowSize)
	}

	return transcoder.UlawToWav(inputData, rate, cli.WindowSize)
}
