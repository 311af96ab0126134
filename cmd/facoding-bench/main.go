// Command facoding-bench exercises the facoding codec end to end: it
// generates a synthetic symbol stream with a chosen entropy, encodes
// it with either a static or adaptive model, reports the achieved
// compression ratio against the Shannon limit, and (optionally)
// verifies the round trip by decoding the result back.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/amaanq/facoding"
	"github.com/amaanq/facoding/internal/randsrc"
)

func main() {
	app := &cli.App{
		Name:  "facoding-bench",
		Usage: "encode and decode a synthetic stream with facoding",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "symbols", Value: 16, Usage: "alphabet size"},
			&cli.IntFlag{Name: "count", Value: 1_000_000, Usage: "number of symbols to generate"},
			&cli.Float64Flag{Name: "entropy", Value: 3.0, Usage: "target entropy in bits/symbol"},
			&cli.UintFlag{Name: "seed", Value: 1, Usage: "PRNG seed (0 uses the default seed)"},
			&cli.BoolFlag{Name: "adaptive", Value: true, Usage: "use an adaptive model instead of static"},
			&cli.BoolFlag{Name: "verify", Value: true, Usage: "decode the result and check it matches"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("facoding-bench failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := slog.Default()

	symbols := uint32(c.Uint("symbols"))
	count := c.Int("count")
	entropy := c.Float64("entropy")
	seed := uint32(c.Uint("seed"))
	adaptive := c.Bool("adaptive")
	verify := c.Bool("verify")

	if symbols < 2 || symbols > facoding.MaxAlphabet {
		return fmt.Errorf("facoding-bench: symbols must be in [2, %d]", facoding.MaxAlphabet)
	}

	src := randsrc.NewRandomDataSource()
	src.SetSeed(seed)
	achievedEntropy := src.SetTruncatedGeometric(symbols, entropy)

	logger.Info("generating synthetic stream",
		"symbols", symbols, "count", count, "requested_entropy", entropy, "achieved_entropy", achievedEntropy)

	var clock randsrc.Chronometer
	clock.Start("")

	data := make([]uint32, count)
	for i := range data {
		data[i] = src.Data()
	}

	codec := facoding.NewArithmeticCodec(uint32(count)*2+64, nil)
	codec.StartEncoder()

	if adaptive {
		model := facoding.NewAdaptiveDataModel(symbols)
		for _, d := range data {
			codec.EncodeAdaptive(d, model)
		}
	} else {
		model := facoding.NewStaticDataModelWithDistribution(symbols, src.Probability())
		for _, d := range data {
			codec.EncodeStatic(d, model)
		}
	}

	codeBytes := codec.StopEncoder()
	clock.Stop()

	idealBytes := float64(count) * achievedEntropy / 8
	ratio := float64(codeBytes) / idealBytes

	logger.Info("encoded",
		"code_bytes", codeBytes,
		"ideal_bytes", int(idealBytes),
		"ratio_to_ideal", ratio,
		"elapsed", clock.Read(),
		"model", modelName(adaptive),
	)

	if !verify {
		return nil
	}

	decodeCodec := facoding.NewArithmeticCodec(codeBytes, codec.Buffer()[:codeBytes])
	decodeCodec.StartDecoder()

	var mismatches int
	if adaptive {
		model := facoding.NewAdaptiveDataModel(symbols)
		for _, want := range data {
			if got := decodeCodec.DecodeAdaptive(model); got != want {
				mismatches++
			}
		}
	} else {
		model := facoding.NewStaticDataModelWithDistribution(symbols, src.Probability())
		for _, want := range data {
			if got := decodeCodec.DecodeStatic(model); got != want {
				mismatches++
			}
		}
	}
	decodeCodec.StopDecoder()

	if mismatches != 0 {
		return fmt.Errorf("facoding-bench: %d symbol mismatches on decode", mismatches)
	}
	logger.Info("round trip verified")
	return nil
}

func modelName(adaptive bool) string {
	if adaptive {
		return "adaptive"
	}
	return "static"
}
