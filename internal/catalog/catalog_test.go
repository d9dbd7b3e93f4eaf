package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/clim-settings-service/internal/domain"
)

func loadDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(LoadOptions{})
	require.NoError(t, err)
	return c
}

func writeOverride(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c := loadDefault(t)

	assert.Equal(t, []string{"_002", "_010", "_100", "_200"}, c.WetdayExtensions())
	assert.Len(t, c.Variables(), 30)
	assert.Len(t, c.Collections(), 13)
	assert.Len(t, c.ShapeAnnotation(), 12)

	t.Run("variable groups", func(t *testing.T) {
		temp, err := c.VariableGroup("temp")
		require.NoError(t, err)
		assert.Equal(t, "temp", temp.Name)
		assert.Equal(t, []string{"T2", "Tmax", "Tmin"}, temp.Vars)
		assert.Equal(t, []string{"srfc", "xtrm"}, temp.Files)
		assert.Equal(t, "2m Temperature", temp.Label)

		runoff, err := c.VariableGroup("runoff")
		require.NoError(t, err)
		assert.Equal(t, []string{"lsm", "hydro"}, runoff.Files)

		eva, err := c.VariableGroup("hydro_eva")
		require.NoError(t, err)
		assert.Empty(t, eva.Label)
	})

	t.Run("constraints", func(t *testing.T) {
		sc := c.Constraints()
		assert.Equal(t, 15, sc.MinLen)
		assert.Equal(t, domain.AxisRange{45, 55}, sc.Lat)
		assert.Equal(t, 300.0, sc.MaxZErr)
		assert.Equal(t, "ON", sc.Prov)
		assert.Equal(t, 1980, sc.EndAfter)
	})

	t.Run("collections", func(t *testing.T) {
		obs, err := c.Collection("obs")
		require.NoError(t, err)
		assert.Equal(t, []string{"CRU", "WSC"}, obs.Exps)
		assert.Equal(t, []string{"-", "-."}, obs.Styles)
		assert.Equal(t, "CRU", obs.Master)
		assert.Equal(t, "CRU", obs.Reference)
		assert.Empty(t, obs.Target)

		erai, err := c.Collection("erai")
		require.NoError(t, err)
		assert.Equal(t, "G & T, ERA-I", erai.Title)
		assert.Empty(t, erai.Reference)

		phys, err := c.Collection("phys")
		require.NoError(t, err)
		assert.Equal(t, "phys-ens", phys.Target)
	})

	t.Run("plot styles", func(t *testing.T) {
		assert.Equal(t, domain.PlotArgs{Marker: "o", LineStyle: " "}, c.DatasetPlotArgs()["CRU"])
		assert.Equal(t, domain.PlotArgs{Marker: "^", MarkerSize: 6, LineStyle: " "}, c.DatasetPlotArgs()["NARR"])
		assert.Equal(t, "dodgerblue", c.VariablePlotArgs()["waterflx"].Color)
		assert.Equal(t, "EC Obs.", c.PlotLabels()["Observations"])
		assert.Equal(t, "Undergr. R'off", c.PlotLabels()["ugroff"])
	})

	t.Run("experiment registries", func(t *testing.T) {
		assert.Equal(t, "g-ctrl", c.WRFExperiments()["g-ctrl"].Name)
		assert.Equal(t, []string{"Ctrl-1", "Ens-A", "Ens-B", "Ens-C"}, c.CESMEnsembles()["Ens"])
		assert.Contains(t, c.WRFEnsembles(), "g-ens")
	})
}

func TestLoad_DerivedVariableGroups(t *testing.T) {
	c := loadDefault(t)

	tests := []struct {
		group string
		want  []string
	}{
		{"wetprec", []string{"wetprec_002", "wetprec_010", "wetprec_100"}},
		{"wetdays", []string{"wetfrq_002", "wetfrq_010", "wetfrq_100"}},
		{"CWD", []string{"CWD_002", "CWD_010", "CWD_100", "CNWD"}},
		{"CDD", []string{"CDD_002", "CDD_010", "CNDD"}},
		{"precip_CDD", []string{"CNDD", "CNWD", "CDD_002", "CWD_002", "CDD_010", "CWD_010", "CDD_100", "CWD_100"}},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			g, err := c.VariableGroup(tt.group)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, g.Vars); diff != "" {
				t.Errorf("vars mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, []string{"hydro"}, g.Files)
		})
	}
}

func TestLoad_WetdayPlotArgs(t *testing.T) {
	c := loadDefault(t)
	args := c.VariablePlotArgs()

	colors := map[string]string{"_002": "steelblue", "_010": "purple", "_100": "crimson", "_200": "orange"}
	for ext, color := range colors {
		for _, prefix := range []string{"wetprec", "wetfrq", "CWD", "CDD"} {
			assert.Equal(t, color, args[prefix+ext].Color, prefix+ext)
		}
	}
}

func TestLoad_ShapeAnnotation(t *testing.T) {
	c := loadDefault(t)

	glb, err := c.ShapeRanges("GLB")
	require.NoError(t, err)

	assert.Equal(t, domain.AxisRange{245, 300}, glb["temp"], "specific overrides default")
	assert.Equal(t, domain.AxisRange{-30, 130}, glb["heat"], "default kept")
	assert.Equal(t, domain.AxisRange{-1, 29}, glb["precip_xtrm"])
	assert.Equal(t, glb["temp"], glb["temp_obs"])
	assert.Equal(t, glb["heat"], glb["heat_obs"])
	assert.Equal(t, domain.AxisRange{0.1, 0.5}, glb["aSM_obs"])

	pacific, err := c.ShapeRanges("Pacific")
	require.NoError(t, err)
	assert.Equal(t, domain.AxisRange{0, 30}, pacific["wetprec"])

	_, err = c.ShapeRanges("Atlantis")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_ShapeAnnotationSupersetOfDefaults(t *testing.T) {
	c := loadDefault(t)

	for shape, ranges := range c.ShapeAnnotation() {
		for key, def := range c.ShapeDefaults() {
			got, ok := ranges[key]
			require.True(t, ok, "%s missing default %s", shape, key)
			if specific, ok := c.ShapeSpecifics()[shape][key]; ok {
				assert.Equal(t, specific, got, "%s.%s", shape, key)
			} else {
				assert.Equal(t, def, got, "%s.%s", shape, key)
			}
		}
	}
}

func TestLoad_VariableGroupsNonEmpty(t *testing.T) {
	c := loadDefault(t)
	for name, g := range c.Variables() {
		assert.NotEmpty(t, g.Vars, name)
		assert.NotEmpty(t, g.Files, name)
	}
}

func TestLoad_CollectionRolesAreMembers(t *testing.T) {
	c := loadDefault(t)
	for name, coll := range c.Collections() {
		assert.True(t, coll.HasMember(coll.Master), "%s master %s", name, coll.Master)
		if coll.Reference != "" {
			assert.True(t, coll.HasMember(coll.Reference), "%s reference %s", name, coll.Reference)
		}
	}
}

func TestLoad_Override(t *testing.T) {
	path := writeOverride(t, `
shape_specifics:
  GLB:
    temp: [250, 310]
constraints:
  min_len: 20
plot_labels:
  g-ens: G Ens.
`)
	c, err := Load(LoadOptions{OverridePath: path})
	require.NoError(t, err)

	glb, err := c.ShapeRanges("GLB")
	require.NoError(t, err)
	assert.Equal(t, domain.AxisRange{250, 310}, glb["temp"])
	assert.Equal(t, domain.AxisRange{250, 310}, glb["temp_obs"])
	assert.Equal(t, domain.AxisRange{-0.5, 5.5}, glb["precip_net"], "sibling keys survive the merge")

	assert.Equal(t, 20, c.Constraints().MinLen)
	assert.Equal(t, 1980, c.Constraints().EndAfter)
	assert.Equal(t, "G Ens.", c.PlotLabels()["g-ens"])
}

func TestLoad_OverrideMissingFile(t *testing.T) {
	_, err := Load(LoadOptions{OverridePath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog override")
}

func TestLoad_OverrideUnknownField(t *testing.T) {
	path := writeOverride(t, "variabels:\n  temp: {vars: [T2], files: [srfc]}\n")
	_, err := Load(LoadOptions{OverridePath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode catalog")
}

func TestLoad_OverrideBreaksInvariant(t *testing.T) {
	path := writeOverride(t, `
collections:
  obs:
    master: GPCC
variables:
  Q2:
    vars: []
`)
	_, err := Load(LoadOptions{OverridePath: path})
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), `collections[obs]: master "GPCC" is not a member`)
	assert.Contains(t, err.Error(), "variables[Q2]: vars must not be empty")
}

func TestLoad_OverrideUnknownPlotStyle(t *testing.T) {
	path := writeOverride(t, "dataset_plotargs:\n  ERA5: sparkly\n")
	_, err := Load(LoadOptions{OverridePath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown plot style "sparkly"`)
}

func TestCatalog_TableAccess(t *testing.T) {
	c := loadDefault(t)

	for _, table := range TableNames {
		t.Run(table, func(t *testing.T) {
			_, err := c.Table(table)
			require.NoError(t, err)
			keys, err := c.Keys(table)
			require.NoError(t, err)
			require.NotEmpty(t, keys)
			_, err = c.Entry(table, keys[0])
			require.NoError(t, err)
		})
	}

	_, err := c.Table("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Keys("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Entry(TableVariables, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	prov, err := c.Entry(TableConstraints, "prov")
	require.NoError(t, err)
	assert.Equal(t, "ON", prov)

	sizes := c.Sizes()
	assert.Equal(t, 30, sizes[TableVariables])
	assert.Equal(t, 12, sizes[TableShapes])
}
