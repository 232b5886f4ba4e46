package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	main "github.com/provdir/provdir/cmd/provdir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Run("no arguments shows help and errors", func(t *testing.T) {
		m := main.NewMain()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "provdir")
	})

	t.Run("help command succeeds", func(t *testing.T) {
		m := main.NewMain()

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "scrape")
		assert.Contains(t, stdout.String(), "report")
	})

	t.Run("unknown command errors", func(t *testing.T) {
		m := main.NewMain()

		err := m.Run(context.Background(), []string{"bogus"}, &bytes.Buffer{}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("list runs end to end against a fresh database", func(t *testing.T) {
		t.Setenv("PROVDIR_DB", filepath.Join(t.TempDir(), "provdir.db"))

		m := main.NewMain()
		m.ConfigPath = filepath.Join(t.TempDir(), "no-config.yaml")

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"list"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No providers found")
	})

	t.Run("scrape wires the scraper when global flags precede the command", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><span class="text-md">No results found</span></body></html>`)
		}))
		defer srv.Close()

		t.Setenv("PROVDIR_DB", filepath.Join(t.TempDir(), "provdir.db"))

		m := main.NewMain()
		m.ConfigPath = filepath.Join(t.TempDir(), "no-config.yaml")

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"-v", "scrape", "--snapshot", "--url", srv.URL}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "extracted 0 providers")
	})

	t.Run("delete requires force end to end", func(t *testing.T) {
		t.Setenv("PROVDIR_DB", filepath.Join(t.TempDir(), "provdir.db"))

		m := main.NewMain()
		m.ConfigPath = filepath.Join(t.TempDir(), "no-config.yaml")

		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"delete", "some-id"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})
}
