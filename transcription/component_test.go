package transcription_test

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/transcriptor/component"
	"github.com/kbukum/transcriptor/transcription"
)

type availability struct {
	stubProvider
	up bool
}

func (a *availability) IsAvailable(context.Context) bool { return a.up }

func TestComponentHealth(t *testing.T) {
	cfg := transcription.Config{}
	cfg.ApplyDefaults()

	for _, up := range []bool{true, false} {
		p := &availability{stubProvider: stubProvider{name: "whisper"}, up: up}
		c := transcription.NewComponent(p, cfg, nil)

		// Start never fails on an unreachable backend.
		if err := c.Start(context.Background()); err != nil {
			t.Fatalf("Start(up=%v): %v", up, err)
		}
		h := c.Health(context.Background())
		want := component.StatusHealthy
		if !up {
			want = component.StatusUnhealthy
		}
		if h.Status != want || h.Name != "engine" {
			t.Errorf("Health(up=%v) = %+v, want %s", up, h, want)
		}
		if err := c.Stop(context.Background()); err != nil {
			t.Errorf("Stop: %v", err)
		}
	}
}

func TestComponentDescribe(t *testing.T) {
	cfg := transcription.Config{}
	cfg.ApplyDefaults()
	c := transcription.NewComponent(&stubProvider{name: "whisper"}, cfg, nil)

	d := c.Describe()
	if d.Type != "engine" || !strings.Contains(d.Details, "whisper model=small compute=int8") {
		t.Errorf("unexpected description %+v", d)
	}
}
