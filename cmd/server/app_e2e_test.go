package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/supplier-demand/internal/db"
	"github.com/diewo77/supplier-demand/internal/demand"
	"github.com/diewo77/supplier-demand/internal/server"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestRootCommandMetadata(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "supplier-demand", root.Use)
	assert.Equal(t, "Supplier demand forecast service", root.Short)
	assert.True(t, root.SilenceUsage)
	for _, name := range []string{"serve", "migrate", "seed", "check"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestCheckMigrateSeedCommands(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "demand.db"))
	t.Setenv("LOG_LEVEL", "error")

	err := run(t, "check")
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrNotReady))

	require.NoError(t, run(t, "migrate"))
	require.NoError(t, run(t, "check"))
	require.NoError(t, run(t, "seed"))
	require.NoError(t, run(t, "--seed-only"))
}

func TestExplicitEnvFileMustExist(t *testing.T) {
	err := run(t, "check", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.env")
}

func TestEnvFileIsLoaded(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_DRIVER=oracle\n"), 0o600))
	// godotenv never overrides variables that are already set.
	t.Setenv("DB_DRIVER", "")
	require.NoError(t, os.Unsetenv("DB_DRIVER"))

	err := run(t, "check", "--env-file", envFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestSupplierDemandEndToEnd(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "e2e.db")), db.GormConfig(false))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.Seed(gdb))

	srv := httptest.NewServer(server.New(gdb, server.Options{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/supplier-demand/S1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep demand.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, "S1", rep.SupplierCode)
	require.Equal(t, 2, rep.TotalMaterials)
	assert.Equal(t, "M1", rep.Demand[0].Material)
	assert.EqualValues(t, []float64{60, 120, 180},
		[]float64{rep.Demand[0].CurrentMonthDemand, rep.Demand[0].NextMonthDemand, rep.Demand[0].NextNextMonthDemand})
	assert.Equal(t, 0.6, rep.Demand[0].AllocationPercentage)
	assert.EqualValues(t, []float64{250, 300, 225},
		[]float64{rep.Demand[1].CurrentMonthDemand, rep.Demand[1].NextMonthDemand, rep.Demand[1].NextNextMonthDemand})

	// a third supplier added over the API shows up with its own share
	for path, body := range map[string]string{
		"/suppliers":         `{"supplierCode":"S3","supplierName":"Fabrikam"}`,
		"/material-supplier": `{"material":"M3","description":"Gasket","planningIndicator":"PD","plant":"1000","shares":[{"supplierCode":"S1","percentage":0.5},{"supplierCode":"S2","percentage":0.25},{"supplierCode":"S3","percentage":0.25}]}`,
		"/material-pr":       `{"material":"M3","currentMonthQty":10,"nextMonthQty":20,"nextNextMonthQty":30,"unit":"PC"}`,
	} {
		r, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		r.Body.Close()
		require.Equal(t, http.StatusCreated, r.StatusCode, path)
	}
	resp3, err := http.Get(srv.URL + "/supplier-demand/S3")
	require.NoError(t, err)
	defer resp3.Body.Close()
	var rep3 demand.Report
	require.NoError(t, json.NewDecoder(resp3.Body).Decode(&rep3))
	require.Len(t, rep3.Demand, 1)
	assert.EqualValues(t, 3, rep3.Demand[0].CurrentMonthDemand) // 2.5 rounds up
	assert.EqualValues(t, 8, rep3.Demand[0].NextNextMonthDemand)

	nf, err := http.Get(srv.URL + "/supplier-demand/ZZ")
	require.NoError(t, err)
	nf.Body.Close()
	assert.Equal(t, http.StatusNotFound, nf.StatusCode)
}
