package component

import (
	"context"
	"fmt"
	"testing"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Type: "engine", Details: "whisper model=small"}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(&mockComponent{name: "engine"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "engine"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&mockComponent{name: "engine"})

	got := r.Get("engine")
	if got == nil || got.Name() != "engine" {
		t.Fatalf("expected registered component, got %v", got)
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
}

func TestStartAllOrder(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}

	r.Register(&mockComponent{name: "telemetry", startOrder: &order})
	r.Register(&describedComponent{mockComponent{name: "engine", startOrder: &order}})
	r.Register(&mockComponent{name: "http-server", startOrder: &order})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	want := []string{"telemetry", "engine", "http-server"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("expected start order %v, got %v", want, order)
	}
}

func TestStartAllErrorStopsSequence(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}
	stopped := []string{}
	r.Register(&mockComponent{name: "telemetry", startOrder: &order, stopOrder: &stopped})
	r.Register(&mockComponent{name: "engine", startOrder: &order, startErr: fmt.Errorf("sidecar refused")})
	r.Register(&mockComponent{name: "http-server", startOrder: &order})

	if err := r.StartAll(context.Background()); err == nil {
		t.Fatal("expected error from StartAll")
	}
	if len(order) != 2 {
		t.Errorf("components after the failure must not start, got %v", order)
	}

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(stopped) != 1 || stopped[0] != "telemetry" {
		t.Errorf("expected only started components stopped, got %v", stopped)
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}

	r.Register(&mockComponent{name: "telemetry", stopOrder: &order})
	r.Register(&mockComponent{name: "engine", stopOrder: &order})
	r.Register(&mockComponent{name: "http-server", stopOrder: &order})

	r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	want := []string{"http-server", "engine", "telemetry"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("expected reverse stop order %v, got %v", want, order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := NewRegistry(nil)
	order := []string{}
	r.Register(&mockComponent{name: "engine", stopOrder: &order})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&mockComponent{name: "telemetry", stopErr: fmt.Errorf("flush failed")})
	r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err == nil {
		t.Error("expected error from StopAll")
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(&mockComponent{
		name:   "http-server",
		health: Health{Name: "http-server", Status: StatusHealthy},
	})
	r.Register(&mockComponent{
		name:   "engine",
		health: Health{Name: "engine", Status: StatusUnhealthy, Message: "sidecar unreachable"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy || results[1].Status != StatusUnhealthy {
		t.Errorf("unexpected health %+v", results)
	}
	if Overall(results) != StatusUnhealthy {
		t.Errorf("expected overall unhealthy, got %s", Overall(results))
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name string
		in   []HealthStatus
		want HealthStatus
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []HealthStatus{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []HealthStatus{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []HealthStatus{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := make([]Health, len(tt.in))
			for i, s := range tt.in {
				hs[i] = Health{Status: s}
			}
			if got := Overall(hs); got != tt.want {
				t.Errorf("Overall = %s, want %s", got, tt.want)
			}
		})
	}
}
