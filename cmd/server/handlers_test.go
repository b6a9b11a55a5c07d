package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"riftcast.gg/internal/persistence/matchdb"
)

func TestMatchHandlersWithIndexDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	rec := httptest.NewRecorder()
	listMatches(nil)(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("list status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/matches/m_1", nil)
	rec = httptest.NewRecorder()
	getMatch(nil)(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestMatchHandlers(t *testing.T) {
	db, err := matchdb.Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	err = db.Insert(context.Background(), matchdb.Row{
		ID: "m_1", Seed: "s/1", TeamA: "Alpha", TeamB: "Beta",
		Winner: 1, Reason: "nexus", Ticks: 500, EventCount: 1200,
		ArchivePath: "/tmp/match-m_1.jsonl.zst",
		FinishedAt:  time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	rec := httptest.NewRecorder()
	listMatches(db)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var rows []matchdb.Row
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("list body: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "m_1" {
		t.Fatalf("list rows = %+v", rows)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/matches/m_1", nil)
	rec = httptest.NewRecorder()
	getMatch(db)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var row matchdb.Row
	if err := json.Unmarshal(rec.Body.Bytes(), &row); err != nil {
		t.Fatalf("get body: %v", err)
	}
	if row.Winner != 1 || row.Reason != "nexus" {
		t.Fatalf("row = %+v", row)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/matches/m_unknown", nil)
	rec = httptest.NewRecorder()
	getMatch(db)(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing match status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/matches/", nil)
	rec = httptest.NewRecorder()
	getMatch(db)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty id status = %d", rec.Code)
	}
}
