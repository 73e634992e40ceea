package linkcheck

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"career-compass/internal/domain/catalog"
)

func TestChecker_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/python":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><head><title> Learn Python </title></head><body></body></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	entries := []catalog.Entry{
		{Keyword: "python", URL: srv.URL + "/python"},
		{Keyword: "java", URL: srv.URL + "/gone"},
		{Keyword: "broken", URL: "ftp://example.com/x"},
	}

	c := NewChecker(Options{Workers: 2, Timeout: 5 * time.Second}, log.New(io.Discard, "", 0))
	results := c.Check(context.Background(), entries)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Keyword != "python" || !results[0].OK() || results[0].Title != "Learn Python" {
		t.Fatalf("unexpected python result: %+v", results[0])
	}
	if results[1].Keyword != "java" || results[1].OK() || results[1].StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected java result: %+v", results[1])
	}
	if results[2].Keyword != "broken" || results[2].OK() || results[2].Err == "" {
		t.Fatalf("unexpected broken result: %+v", results[2])
	}
}

func TestChecker_CancelledStillReportsEveryEntry(t *testing.T) {
	entries := []catalog.Entry{
		{Keyword: "python", URL: "http://127.0.0.1:1/python"},
		{Keyword: "java", URL: "http://127.0.0.1:1/java"},
		{Keyword: "sql", URL: "http://127.0.0.1:1/sql"},
		{Keyword: "excel", URL: "http://127.0.0.1:1/excel"},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewChecker(Options{Workers: 1, Timeout: time.Second}, log.New(io.Discard, "", 0))
	results := c.Check(ctx, entries)
	if len(results) != len(entries) {
		t.Fatalf("expected %d results, got %d", len(entries), len(results))
	}
	for i, res := range results {
		if res.Keyword != entries[i].Keyword || res.URL != entries[i].URL {
			t.Fatalf("result %d out of order: %+v", i, res)
		}
		if res.OK() || res.Err != context.Canceled.Error() {
			t.Fatalf("expected cancelled result for %s, got %+v", res.Keyword, res)
		}
	}
}

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	p := newWorkerPool(3, 10, 0)
	out := p.run(context.Background())
	for i := 0; i < 10; i++ {
		p.submit(func(context.Context) Result { return Result{StatusCode: 200} })
	}
	p.close()

	n := 0
	for r := range out {
		if r.StatusCode != 200 {
			t.Fatalf("unexpected result %+v", r)
		}
		n++
	}
	if n != 10 {
		t.Fatalf("expected 10 results, got %d", n)
	}
}

func TestScheduler_InvalidSpec(t *testing.T) {
	c := NewChecker(Options{}, log.New(io.Discard, "", 0))
	if _, err := NewScheduler("not a cron", c, nil, nil); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
}

func TestScheduler_RunOnceStoresReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			_, _ = w.Write([]byte("<title>ok</title>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	logger := log.New(io.Discard, "", 0)
	entries := []catalog.Entry{
		{Keyword: "ok", URL: srv.URL + "/ok"},
		{Keyword: "gone", URL: srv.URL + "/gone"},
	}
	s, err := NewScheduler("@every 1h", NewChecker(Options{Workers: 1, Timeout: 5 * time.Second}, logger), entries, logger)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if s.Last() != nil {
		t.Fatalf("expected no report before first run")
	}

	s.runOnce()
	rep := s.Last()
	if rep == nil || rep.Total != 2 || len(rep.Broken) != 1 || rep.Broken[0].Keyword != "gone" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}
