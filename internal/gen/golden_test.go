package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"workseed/internal/config"
)

// TestGoldenDataset pins the full dump of a tiny seeded run. Any change to a
// sampler, stream purpose, or entity field order shows up as a golden diff.
// A missing fixture is recorded on the spot; commit the generated file under
// testdata/golden so later runs compare against it. Refresh deliberately
// with: go test ./internal/gen -run TestGoldenDataset -update
func TestGoldenDataset(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 1234
	cfg.Employees = 40
	cfg.Volumes.ProjectsPerTeam = config.Range{Min: 1, Max: 2}
	cfg.Volumes.TasksPerProject = config.Range{Min: 2, Max: 4}
	cfg.Volumes.Portfolios = 1

	g, err := New(cfg, Options{}).Generate(context.Background())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, g.Dump(&buf))

	gd := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithNameSuffix(".golden"),
	)
	fixture := filepath.Join("testdata", "golden", "dataset_seed1234.golden")
	if _, err := os.Stat(fixture); os.IsNotExist(err) {
		require.NoError(t, gd.Update(t, "dataset_seed1234", buf.Bytes()))
	}
	gd.Assert(t, "dataset_seed1234", buf.Bytes())
}
