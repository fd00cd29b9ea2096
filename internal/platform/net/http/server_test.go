package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"crossword/internal/platform/config"
	phttp "crossword/internal/platform/net/http"
)

func TestNewServer_Defaults(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("NOPE_"))
	if srv.Addr() != ":4000" {
		t.Fatalf("Addr = %q", srv.Addr())
	}
	t.Setenv("TAPI_ADDR", "127.0.0.1:4100")
	if got := phttp.NewServer(config.New().Prefix("TAPI_")).Addr(); got != "127.0.0.1:4100" {
		t.Fatalf("Addr override = %q", got)
	}
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	t.Setenv("TSRV_SHUTDOWN_TIMEOUT", "2s")
	srv := phttp.NewServer(config.New().Prefix("TSRV_"))
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(b) != "pong" {
		t.Fatalf("body = %q", b)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestRun_BadAddr(t *testing.T) {
	t.Setenv("TBAD_ADDR", "256.0.0.1:-1")
	if err := phttp.NewServer(config.New().Prefix("TBAD_")).Run(context.Background()); err == nil {
		t.Fatalf("expected listen error")
	}
}
