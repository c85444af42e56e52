package convert

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/meteorite-cli/internal/model"
)

const testHeader = "name,id,nametype,recclass,mass (g),fall,year,reclat,reclong,GeoLocation\n"

// csvOf prefixes rows with the expected header.
func csvOf(rows ...string) string {
	return testHeader + strings.Join(rows, "\n") + "\n"
}

// runPipeline runs the pipeline over content and fails the test on error.
func runPipeline(t *testing.T, opts model.ConvertOptions, content string) *Result {
	t.Helper()
	res, err := New(opts, zap.NewNop()).Run(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	return res
}

func namesOf(records []model.Meteorite) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}
