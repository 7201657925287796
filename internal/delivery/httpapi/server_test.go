package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/repository"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	files := repository.NewFileQuestionRepository(filepath.Join("..", "..", "repository", "testdata"))
	srv := httptest.NewServer(NewServer(":0", files, zap.NewNop()).Router())
	t.Cleanup(srv.Close)

	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestListLanguages(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/lang")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Languages []string `json:"languages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"en", "fr", "xx"}
	if len(body.Languages) != len(want) {
		t.Fatalf("languages = %v, want %v", body.Languages, want)
	}
	for i := range want {
		if body.Languages[i] != want[i] {
			t.Errorf("languages[%d] = %q, want %q", i, body.Languages[i], want[i])
		}
	}
}

func TestGetPoolStatus(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"json pool", "/lang/en.json", http.StatusOK},
		{"yaml pool served as json", "/lang/fr.json", http.StatusOK},
		{"missing language", "/lang/es.json", http.StatusNotFound},
		{"invalid tag", "/lang/e_n.json", http.StatusBadRequest},
		{"invalid pool", "/lang/xx.json", http.StatusInternalServerError},
		{"no extension", "/lang/en", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status == http.StatusOK {
				if ct := resp.Header.Get("Content-Type"); ct != contentTypeJSON {
					t.Errorf("content type = %q, want %q", ct, contentTypeJSON)
				}
			}
		})
	}
}

func TestPoolRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	client := repository.NewHTTPQuestionRepository(srv.URL, time.Second)

	pool, err := client.Questions(context.Background(), "fr")
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("len(pool) = %d, want 2", len(pool))
	}
	if !pool[1].Difficulty.Matches("satoshi") || pool[1].Answer != 1 {
		t.Errorf("second question = %+v, want satoshi with answer 1", pool[1])
	}

	if _, err := client.Questions(context.Background(), "es"); err == nil {
		t.Error("expected error for missing language")
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/lang/en.json", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "https://example.org")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin = %q, want *", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	files := repository.NewFileQuestionRepository(filepath.Join("..", "..", "repository", "testdata"))
	s := NewServer("127.0.0.1:0", files, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
