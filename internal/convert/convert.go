package convert

import (
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/meteorite-cli/internal/model"
)

// File runs the whole conversion: read inputPath, filter, shuffle, write
// outputPath. Nothing is written when an error is returned.
func File(ctx context.Context, inputPath, outputPath string, opts model.ConvertOptions, rng *rand.Rand, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("reading csv file", zap.String("path", inputPath))
	f, err := os.Open(inputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &FatalError{Msg: "input file not found: " + inputPath}
	}
	if err != nil {
		return nil, eris.Wrapf(err, "convert: open %s", inputPath)
	}
	defer f.Close() //nolint:errcheck

	res, err := New(opts, logger).Run(ctx, f)
	if err != nil {
		return nil, eris.Wrapf(err, "convert: process %s", inputPath)
	}

	logger.Info("shuffling records", zap.Int("count", len(res.Records)))
	doc := Assemble(res.Records, rng)

	logger.Info("writing json output", zap.String("path", outputPath))
	if err := WriteDocument(outputPath, doc); err != nil {
		return nil, err
	}
	return res, nil
}
