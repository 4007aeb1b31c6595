package app

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/transcriptor/component"
	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/media/mediatest"
	"github.com/kbukum/transcriptor/transcription"
)

type stubEngine struct {
	text string
	up   bool
}

func (s *stubEngine) Name() string                     { return "stub" }
func (s *stubEngine) IsAvailable(context.Context) bool { return s.up }

func (s *stubEngine) Transcribe(_ context.Context, req transcription.Request) (*transcription.Response, error) {
	return &transcription.Response{Text: "  " + s.text + " ", Language: req.Language}, nil
}

func stubEngines(engine *stubEngine) *transcription.Registry {
	r := transcription.NewRegistry()
	r.Register("stub", func(transcription.Config) (transcription.Provider, error) { return engine, nil })
	return r
}

func testConfig() *Config {
	cfg := &Config{}
	cfg.Engine.Backend = "stub"
	cfg.Server.Host = "127.0.0.1"
	return cfg
}

func newTestApp(t *testing.T, engine *stubEngine, d time.Duration) *App {
	t.Helper()
	a, err := New(testConfig(),
		WithLogger(logger.Nop()),
		WithEngines(stubEngines(engine)),
		WithMedia(mediatest.NewTools(d)),
		WithGracefulTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Name != ServiceName || cfg.Environment != "development" {
		t.Errorf("unexpected service defaults %+v", cfg.ServiceConfig)
	}
	if cfg.Server.Port != 8000 || cfg.Server.MaxBodySize != "100MB" {
		t.Errorf("unexpected server defaults %+v", cfg.Server)
	}
	if cfg.Transcriber.Language != "es" || cfg.Transcriber.ChunkSeconds != 30 {
		t.Errorf("unexpected transcriber defaults %+v", cfg.Transcriber)
	}
	if cfg.Engine.Backend != "whisper" || cfg.Engine.Model != "small" || cfg.Engine.MaxConcurrent != 1 {
		t.Errorf("unexpected engine defaults %+v", cfg.Engine)
	}
	if cfg.Media.SampleRate != 16000 || cfg.Media.FFmpegPath != "ffmpeg" {
		t.Errorf("unexpected media defaults %+v", cfg.Media)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"openai without key", func(c *Config) { c.Engine.Backend = "openai" }, "api_key"},
		{"bad sample rate", func(c *Config) { c.Media.SampleRate = 44100 }, "sample_rate"},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment"},
		{"bad body size", func(c *Config) { c.Server.MaxBodySize = "a lot" }, "max_body_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultEngines(t *testing.T) {
	got := DefaultEngines().List()
	if want := []string{"openai", "whisper"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DefaultEngines() = %v, want %v", got, want)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Engine.Backend = "nope"
	if _, err := New(cfg, WithLogger(logger.Nop()), WithMedia(mediatest.NewTools(time.Second))); err == nil {
		t.Fatal("expected error for unregistered backend")
	}
}

func TestServerTranscribesUpload(t *testing.T) {
	a := newTestApp(t, &stubEngine{text: "hola mundo", up: true}, 10*time.Second)
	srv, err := a.Server()
	if err != nil {
		t.Fatalf("Server: %v", err)
	}
	if again, _ := a.Server(); again != srv {
		t.Error("Server should be built once")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("file", "saludo.wav")
	_, _ = part.Write(mediatest.WAV(10 * time.Second))
	_ = w.Close()

	req := httptest.NewRequest("POST", "/transcribe", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var got map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["filename"] != "saludo.wav" || got["text"] != "hola mundo" {
		t.Errorf("unexpected response %v", got)
	}
}

func TestServerHealthReflectsEngine(t *testing.T) {
	for _, up := range []bool{true, false} {
		a := newTestApp(t, &stubEngine{up: up}, time.Second)
		srv, err := a.Server()
		if err != nil {
			t.Fatalf("Server: %v", err)
		}

		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))

		want := http.StatusOK
		if !up {
			want = http.StatusServiceUnavailable
		}
		if rr.Code != want {
			t.Errorf("engine up=%v: expected %d, got %d", up, want, rr.Code)
		}
	}
}

func TestRunTask(t *testing.T) {
	a := newTestApp(t, &stubEngine{text: "uno", up: false}, 5*time.Second)

	var text string
	err := a.RunTask(context.Background(), func(ctx context.Context) error {
		var err error
		text, err = a.Service.TranscribeBytes(ctx, []byte("ID3"), "mp3")
		return err
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	if text != "uno" {
		t.Errorf("expected transcript %q, got %q", "uno", text)
	}
	if a.Components.Get("http-server") != nil {
		t.Error("RunTask must not start the HTTP server")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a := newTestApp(t, &stubEngine{up: true}, time.Second)
	a.Cfg.Server.Port = 0
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestReadyCheck(t *testing.T) {
	a := newTestApp(t, &stubEngine{up: false}, time.Second)
	err := a.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "engine=unhealthy") {
		t.Fatalf("expected unhealthy engine, got %v", err)
	}
}

func TestTelemetryDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.ApplyDefaults()
	tel := newTelemetry(cfg, logger.Nop())

	ctx := context.Background()
	if err := tel.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := tel.Health(ctx); h.Status != component.StatusHealthy || h.Message != "disabled" {
		t.Errorf("unexpected health %+v", h)
	}
	if d := tel.Describe(); d.Details != "disabled" {
		t.Errorf("unexpected description %+v", d)
	}
	if err := tel.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
