package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickgao/debtwatch/internal/config"
)

func TestRunOnce_FallsBackWhenAPIDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	cfg := config.Default()
	cfg.API.BaseURL = upstream.URL

	p, err := newPipeline(cfg, nil)
	if err != nil {
		t.Fatalf("newPipeline() error: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "debt.csv")

	var out bytes.Buffer
	if err := runOnce(context.Background(), p, cfg, exportPath, &out); err != nil {
		t.Fatalf("runOnce() error: %v", err)
	}

	summary := out.String()
	for _, want := range []string{"Public debt, FR (2024)", "debt/GDP:", "112.2%", "EU rank:"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "Year,DebtBnEUR") {
		t.Errorf("export header = %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestWriteExport_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debt.json")
	if err := writeExport(path, nil, config.Default()); err == nil {
		t.Error("writeExport() accepted .json")
	}
}
