package modules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/prospectus/internal/metrics"
	"github.com/systmms/prospectus/internal/modules"
	"github.com/systmms/prospectus/pkg/module"
)

func TestRegistrySupportedTypes(t *testing.T) {
	t.Parallel()

	r := modules.NewRegistry()
	assert.Equal(t, []string{"gitlab_tag", "grep", "static"}, r.SupportedTypes())
	assert.True(t, r.IsSupported("grep"))
	assert.False(t, r.IsSupported("github_release"))
}

func TestRegistryCreate(t *testing.T) {
	t.Parallel()

	r := modules.NewRegistry()
	for _, moduleType := range r.SupportedTypes() {
		moduleType := moduleType
		t.Run(moduleType, func(t *testing.T) {
			t.Parallel()

			m, err := r.Create(moduleType, modules.Options{})
			require.NoError(t, err)
			assert.Equal(t, moduleType, m.Type())
		})
	}
}

func TestRegistryCreateUnknown(t *testing.T) {
	t.Parallel()

	_, err := modules.NewRegistry().Create("nope", modules.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module type: nope")
}

func TestRegistryCustomFactory(t *testing.T) {
	t.Parallel()

	r := modules.NewRegistry()
	r.RegisterFactory("fixed", func(opts modules.Options) (module.Module, error) {
		m := modules.NewStaticModule()
		_ = m.Configure("value", "fixed-value")
		return m, nil
	})

	m, err := r.Create("fixed", modules.Options{})
	require.NoError(t, err)

	got, err := module.Load(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "fixed-value", got)
}

func TestRegistryRecordsLoads(t *testing.T) {
	t.Parallel()

	rec := metrics.NewRecorder()
	m, err := modules.NewRegistry().Create("static", modules.Options{Metrics: rec})
	require.NoError(t, err)

	_, err = module.Load(context.Background(), m)
	require.Error(t, err)
	require.NoError(t, m.Configure("value", "ok"))
	_, err = module.Load(context.Background(), m)
	require.NoError(t, err)

	counts := map[string]float64{}
	families, err := rec.Gatherer().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "prospectus_module_loads_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" {
					counts[label.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"success": 1, "missing_configuration": 1}, counts)
}

func TestRegistryDescribe(t *testing.T) {
	t.Parallel()

	r := modules.NewRegistry()
	tests := []struct {
		moduleType string
		wantKeys   []string
		wantInSum  string
	}{
		{moduleType: "grep", wantKeys: []string{"file", "pattern"}, wantInSum: "local file"},
		{moduleType: "gitlab_tag", wantKeys: []string{"endpoint", "repo"}, wantInSum: "GitLab"},
		{moduleType: "static", wantKeys: []string{"value"}, wantInSum: "Literal"},
		{moduleType: "unregistered", wantInSum: "No description available"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.moduleType, func(t *testing.T) {
			t.Parallel()
			d := r.Describe(tt.moduleType)
			assert.Contains(t, d.Summary, tt.wantInSum)
			assert.Equal(t, tt.wantKeys, d.Keys)
			assert.NotEmpty(t, d.Details)
		})
	}
}
