package convert

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/meteorite-cli/internal/model"
)

// Result is the output of a pipeline run, in input order.
type Result struct {
	Records []model.Meteorite
	Stats   model.ConvertStats
}

// Pipeline turns meteorite CSV rows into records in a single pass.
type Pipeline struct {
	opts      model.ConvertOptions
	normalize normalizer
	logger    *zap.Logger
}

// New creates a Pipeline. The normalization strategy is fixed here from
// opts.Cleanup.
func New(opts model.ConvertOptions, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		opts:      opts,
		normalize: normalizerFor(opts.Cleanup),
		logger:    logger,
	}
}

// Run reads the CSV from r and returns the accepted records. Malformed input
// yields a *FatalError; per-row rejections are only counted and logged.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (*Result, error) {
	// A leading BOM is dropped; the rest passes through unchanged so that
	// ValidateEncoding sees invalid bytes instead of replacement characters.
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &FatalError{Line: 1, Msg: "read csv header: " + err.Error()}
	}
	if err := ValidateHeader(header); err != nil {
		return nil, err
	}

	grid := NewGridFilter(p.opts.GridSize)
	res := &Result{}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "convert: pipeline cancelled")
		}

		if p.opts.LimitEnabled() && len(res.Records) >= p.opts.Limit {
			res.Stats.LimitReached = true
			p.logger.Info("record limit reached, stopping read", zap.Int("limit", p.opts.Limit), zap.Int("line", line))
			break
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FatalError{Line: line, Msg: "malformed csv: " + csvErrorMessage(err)}
		}

		if err := ValidateRow(line, row); err != nil {
			return nil, err
		}
		if err := ValidateEncoding(line, row); err != nil {
			return nil, err
		}
		if err := ValidateID(line, row[colID]); err != nil {
			return nil, err
		}
		res.Stats.RowsProcessed++

		rec, ok := p.processRow(line, row, grid, &res.Stats)
		if !ok {
			continue
		}
		res.Records = append(res.Records, rec)
	}

	res.Stats.Accepted = len(res.Records)
	return res, nil
}

// processRow applies the location filters and normalization to a validated
// row. It returns false when the row is rejected.
func (p *Pipeline) processRow(line int, row []string, grid *GridFilter, stats *model.ConvertStats) (model.Meteorite, bool) {
	name := row[colName]
	coord := ParseCoordinate(row[colReclat], row[colReclong])

	if p.opts.Cleanup && IsInvalidLocation(coord, row[colGeoLocation]) {
		stats.RemovedCleanup++
		p.logger.Debug("clean-up: removed meteorite with invalid or missing location",
			zap.Int("line", line),
			zap.String("name", name),
		)
		return model.Meteorite{}, false
	}

	if !grid.Admit(coord.Point) {
		stats.RemovedGrid++
		p.logger.Debug("grid: removed meteorite in occupied cell",
			zap.Int("line", line),
			zap.String("name", name),
			zap.String("latitude", coord.Lat),
			zap.String("longitude", coord.Lon),
		)
		return model.Meteorite{}, false
	}

	f := p.normalize(Fields{
		Recclass: row[colRecclass],
		Mass:     row[colMass],
		Fall:     row[colFall],
		Year:     row[colYear],
	})

	rec := model.Meteorite{
		ID:        row[colID],
		Name:      name,
		Recclass:  f.Recclass,
		Mass:      f.Mass,
		Fall:      f.Fall,
		Year:      f.Year,
		Latitude:  coord.Lat,
		Longitude: coord.Lon,
	}

	p.logger.Debug("accepted meteorite",
		zap.String("name", rec.Name),
		zap.String("latitude", rec.Latitude),
		zap.String("longitude", rec.Longitude),
		zap.Bool("located", coord.Valid()),
	)
	return rec, true
}

// csvErrorMessage drops the position prefix of a csv.ParseError; callers
// report their own line number.
func csvErrorMessage(err error) string {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
