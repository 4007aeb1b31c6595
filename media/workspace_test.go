package media_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/transcriptor/media"
)

func TestWorkspaceLifecycle(t *testing.T) {
	root := t.TempDir()
	ws, err := media.NewWorkspace(root, "transcriptor", nil)
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(ws.Dir()), "transcriptor-") {
		t.Errorf("unexpected workspace name %q", ws.Dir())
	}

	p, err := ws.WriteFile("input.opus", []byte("data"))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if filepath.Dir(p) != ws.Dir() {
		t.Errorf("file %q written outside workspace", p)
	}

	ws.Remove(p)
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("expected %q removed", p)
	}
	ws.Remove(p)

	ws.Close()
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("expected workspace removed")
	}
	ws.Close()
}

func TestWorkspaceUnique(t *testing.T) {
	root := t.TempDir()
	a, err := media.NewWorkspace(root, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := media.NewWorkspace(root, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if a.Dir() == b.Dir() {
		t.Fatal("concurrent requests must not share a workspace")
	}
}

func TestWorkspacePathStaysInside(t *testing.T) {
	ws, err := media.NewWorkspace(t.TempDir(), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()
	if got := ws.Path("../../etc/passwd"); filepath.Dir(got) != ws.Dir() {
		t.Errorf("path escaped workspace: %q", got)
	}
}
