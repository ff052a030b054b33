package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langcat/pkg/config"
	"langcat/pkg/model"
	"langcat/pkg/version"
	"langcat/pkg/view"
)

const testCatalog = `[
	{"nome":"Rust","descricao":"systems language","ano_lancamento":2010,"link":"https://rust-lang.org"},
	{"nome":"Go","descricao":"concurrent language","ano_lancamento":2009,"link":"https://go.dev"},
	{"nome":"Forgotten"}
]`

// writeConfig writes a config pointing at a catalog inside a temp dir.
func writeConfig(t *testing.T, mutate func(*config.Config)) string {
	t.Helper()
	dir := t.TempDir()

	data := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(data, []byte(testCatalog), 0o644))

	cfg := config.DefaultConfig()
	cfg.Catalog.Location = data
	cfg.Server.Address = "localhost:0"
	cfg.Log.Server.Path = filepath.Join(dir, "logs", "server.log")
	cfg.Log.Requests.Path = filepath.Join(dir, "logs", "requests.log")
	if mutate != nil {
		mutate(cfg)
	}

	path := filepath.Join(dir, "langcat.yaml")
	require.NoError(t, config.Save(path, cfg))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	searchJSON = false
	importDB = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--env-file="))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSearch(t *testing.T) {
	cfgPath := writeConfig(t, nil)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "NameMatch",
			args:     []string{"go"},
			contains: []string{"Go (2009)", "concurrent language", view.LinkLabel + " https://go.dev"},
			excludes: []string{"Rust"},
		},
		{
			name:     "AllRecords",
			contains: []string{"Rust (2010)", "Go (2009)"},
			excludes: []string{"Forgotten"},
		},
		{
			name:     "NoMatch",
			args:     []string{"zzz"},
			contains: []string{view.NoMatchesMessage},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"search", "--config", cfgPath}, tt.args...)...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSearch_JSON(t *testing.T) {
	cfgPath := writeConfig(t, func(c *config.Config) { c.Catalog.MissingFields = "default" })

	out, err := execute(t, "search", "--config", cfgPath, "--json", "o")
	require.NoError(t, err)

	var got []model.Language
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Go", got[0].Name)
	assert.Equal(t, "Forgotten", got[1].Name)
}

func TestSearch_LoadFailure(t *testing.T) {
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Catalog.Location = filepath.Join(filepath.Dir(c.Catalog.Location), "missing.json")
	})

	out, err := execute(t, "search", "--config", cfgPath, "go")
	require.Error(t, err)
	assert.Contains(t, out, view.LoadFailureMessage)
	assert.NotContains(t, out, "Go (2009)")
}

func TestImport_ThenSearchSQLite(t *testing.T) {
	cfgPath := writeConfig(t, nil)
	dataPath := filepath.Join(filepath.Dir(cfgPath), "data.json")
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	out, err := execute(t, "import", "--config", cfgPath, "--db", dbPath, dataPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 languages")

	sqlCfg := writeConfig(t, func(c *config.Config) {
		c.Catalog.Source = "sqlite"
		c.Catalog.Location = dbPath
	})
	out, err = execute(t, "search", "--config", sqlCfg, "language")
	require.NoError(t, err)
	assert.Contains(t, out, "Rust (2010)")
	assert.Contains(t, out, "Go (2009)")
	assert.Less(t, bytes.Index([]byte(out), []byte("Rust")), bytes.Index([]byte(out), []byte("Go (2009)")))
}

func TestImport_RejectPolicy(t *testing.T) {
	cfgPath := writeConfig(t, func(c *config.Config) { c.Catalog.MissingFields = "reject" })
	dataPath := filepath.Join(filepath.Dir(cfgPath), "data.json")
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	_, err := execute(t, "import", "--config", cfgPath, "--db", dbPath, dataPath)
	require.Error(t, err)
	assert.NoFileExists(t, dbPath)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "langcat "+version.Version+"\n", out)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "langcat.yaml")

	out, err := execute(t, "init-config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data.json", cfg.Catalog.Location)
}

func TestLoadEnv(t *testing.T) {
	const key = "LANGCAT_TEST_DOTENV"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o644))

	require.NoError(t, loadEnv(path))
	assert.Equal(t, "from-file", os.Getenv(key))

	assert.NoError(t, loadEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.NoError(t, loadEnv(""))
}

func TestRun(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	cfgPath := writeConfig(t, nil)

	// Cancel quickly to verify the startup sequence.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, run(ctx, cfgPath))

	logs, err := os.ReadFile(filepath.Join(filepath.Dir(cfgPath), "logs", "server.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Catalog loaded")
	assert.Contains(t, string(logs), "Startup Checks Summary")
}

func TestRun_LoadFailureKeepsServing(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Catalog.Location = filepath.Join(filepath.Dir(c.Catalog.Location), "missing.json")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, run(ctx, cfgPath))
}

func TestRun_AddressInUseFailsStartup(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfgPath := writeConfig(t, func(c *config.Config) { c.Server.Address = ln.Addr().String() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = run(ctx, cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startup checks failed")
	assert.Contains(t, err.Error(), "Server Address")
}

func TestStartupProbes(t *testing.T) {
	cfg := config.DefaultConfig()
	probes := startupProbes(cfg, nil)

	critical := map[string]bool{}
	for _, p := range probes {
		critical[p.Name] = p.Critical
	}
	assert.Equal(t, map[string]bool{"Server Address": true, "Catalog": false, "Catalog File": false}, critical)

	cfg.Catalog.Source = "http"
	assert.Len(t, startupProbes(cfg, nil), 2)
}
