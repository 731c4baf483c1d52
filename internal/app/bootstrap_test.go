package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mind-engage/suggestify/internal/catalog"
	"github.com/mind-engage/suggestify/internal/config"
	"github.com/mind-engage/suggestify/internal/db"
)

func TestBatteryDefaultAndFile(t *testing.T) {
	cfg := config.Default()
	b, err := Battery(cfg)
	if err != nil || b.Len() != 5 {
		t.Fatalf("default battery: %d %v", b.Len(), err)
	}

	p := filepath.Join(t.TempDir(), "quiz.json")
	raw := `{"questions":[{"prompt":"Pick","options":[{"key":"a","text":"Laughs","genres":["Comedy"]}]}]}`
	if err := os.WriteFile(p, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.QuizBatteryPath = p
	if b, err = Battery(cfg); err != nil || b.Len() != 1 {
		t.Fatalf("file battery: %d %v", b.Len(), err)
	}

	cfg.QuizBatteryPath = filepath.Join(t.TempDir(), "missing.json")
	if _, err := Battery(cfg); err == nil {
		t.Fatalf("expected error for missing battery")
	}
}

func TestFilterFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CatalogMatcher = "token"
	cfg.RecommendLimit = 2
	f, err := Filter(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Matcher.(catalog.TokenMatcher); !ok || f.Limit != 2 {
		t.Fatalf("filter = %+v", f)
	}
	cfg.CatalogMatcher = "regex"
	if _, err := Filter(cfg); err == nil {
		t.Fatalf("expected error for unknown matcher")
	}
}

func TestCatalogSeedsStoreFromCSV(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer dbh.Close()
	store := catalog.NewSQLStore(dbh)

	cfg := config.Default()
	tbl, err := Catalog(ctx, cfg, store)
	if err != nil || tbl != nil {
		t.Fatalf("empty store: %v %v", tbl, err)
	}

	p := filepath.Join(t.TempDir(), "shows.csv")
	if err := os.WriteFile(p, []byte("title,year,genres\nFriends,1994,\"Comedy, Romance\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.CatalogCSV = p
	if tbl, err = Catalog(ctx, cfg, store); err != nil || tbl.Len() != 1 {
		t.Fatalf("csv: %v %v", tbl, err)
	}

	cfg.CatalogCSV = ""
	if tbl, err = Catalog(ctx, cfg, store); err != nil || tbl.Len() != 1 || tbl.Show(0).Title != "Friends" {
		t.Fatalf("reload from store: %v %v", tbl, err)
	}
}

func TestCatalogMissingCSV(t *testing.T) {
	cfg := config.Default()
	cfg.CatalogCSV = filepath.Join(t.TempDir(), "nope.csv")
	if _, err := Catalog(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected read error")
	}
}
