package desktop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindFiles(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeFiles(t, first, map[string]string{
		"vim.desktop":                "[Desktop Entry]\n",
		"libreoffice/writer.desktop": "[Desktop Entry]\n",
		"menu.directory":             "[Desktop Entry]\n",
		"README":                     "Just text\n",
		"no-extension":               "# launcher\n[Desktop Entry]\n",
	})
	writeFiles(t, second, map[string]string{
		"firefox.desktop": "[Desktop Entry]\n",
	})

	got, err := FindFiles([]string{first, second})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(first, "libreoffice/writer.desktop"),
		filepath.Join(first, "no-extension"),
		filepath.Join(first, "vim.desktop"),
		filepath.Join(second, "firefox.desktop"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindFilesMissingDir(t *testing.T) {
	_, err := FindFiles([]string{filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Errorf("FindFiles() of a missing directory should return an error")
	}
}

func TestFindFilesSymlinks(t *testing.T) {
	store := t.TempDir()
	apps := t.TempDir()

	writeFiles(t, store, map[string]string{
		"viewer.desktop": "[Desktop Entry]\n",
		"sub/x.desktop":  "[Desktop Entry]\n",
	})

	links := map[string]string{
		"viewer.desktop":   filepath.Join(store, "viewer.desktop"),
		"dangling.desktop": filepath.Join(store, "missing.desktop"),
		"dir.desktop":      filepath.Join(store, "sub"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(apps, name)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindFiles([]string{apps})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{filepath.Join(apps, "viewer.desktop")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindFiles() mismatch (-want +got):\n%s", diff)
	}
}
