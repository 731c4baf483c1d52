package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupServeEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(dir, "suggestify.db"))
	t.Setenv("BLOB_BASE_PATH", filepath.Join(dir, "blobs"))
	t.Setenv("CATALOG_CSV", "")
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	return dir
}

func runDaemon(ctx context.Context, args []string) error {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func TestServeStopsWithContext(t *testing.T) {
	dir := setupServeEnv(t)
	csv := filepath.Join(dir, "shows.csv")
	if err := os.WriteFile(csv, []byte("title,genres\nFriends,\"Comedy, Romance\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_CSV", csv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(500*time.Millisecond, cancel)
	if err := runDaemon(ctx, []string{"--addr", "127.0.0.1:0"}); err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestServeRejectsBadConfig(t *testing.T) {
	setupServeEnv(t)
	if err := runDaemon(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}

	t.Setenv("CATALOG_MATCHER", "regex")
	if err := runDaemon(context.Background(), nil); err == nil {
		t.Fatal("expected validation error for unknown matcher")
	}
}

func TestServeRejectsArgs(t *testing.T) {
	setupServeEnv(t)
	if err := runDaemon(context.Background(), []string{"extra"}); err == nil {
		t.Fatal("expected error for positional argument")
	}
}
