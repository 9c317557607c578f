package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/protocol"
)

func TestNormalizeKey(t *testing.T) {
	got := normalizeKey("  Tokyo Night  ")
	if got != "tokyo-night" {
		t.Fatalf("normalizeKey() = %q, want tokyo-night", got)
	}
}

func TestGetBuiltInTheme(t *testing.T) {
	got, ok := Get("  catppuccin latte ")
	if !ok {
		t.Fatal("expected built-in theme to be found")
	}
	if got.Name != "Catppuccin Latte" {
		t.Fatalf("theme name = %q, want Catppuccin Latte", got.Name)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 5 {
		t.Fatalf("expected 5 built-in themes, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

func TestResolveCustomThemeFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	themesDir := filepath.Join(home, ".config", "zencrawl", "themes")
	if err := os.MkdirAll(themesDir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}

	yaml := "name: Ocean Breeze\nbase: \"#001122\"\ntext: \"#ffffff\"\n"
	if err := os.WriteFile(filepath.Join(themesDir, "ocean.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got := Resolve("ocean breeze")
	if got.Name != "Ocean Breeze" {
		t.Fatalf("Resolve(custom) name = %q, want Ocean Breeze", got.Name)
	}
	if got.Base != "#001122" {
		t.Fatalf("base = %q, want #001122", got.Base)
	}
	// unset keys inherit from the default theme
	if got.Green != CatppuccinMocha.Green {
		t.Fatalf("green = %q, want default %q", got.Green, CatppuccinMocha.Green)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if got := Resolve("not-a-real-theme"); got.Name != CatppuccinMocha.Name {
		t.Fatalf("Resolve(unknown) name = %q, want %q", got.Name, CatppuccinMocha.Name)
	}
}

func TestLoadCustomThemeUsesFilenameWhenNameMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my-theme.yml")
	if err := os.WriteFile(path, []byte("base: \"#010203\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got, err := LoadCustomTheme(path)
	if err != nil {
		t.Fatalf("LoadCustomTheme() failed: %v", err)
	}
	if got.Name != "my-theme" {
		t.Fatalf("Name = %q, want my-theme", got.Name)
	}
}

func TestLoadCustomThemesSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"forest.yaml": "name: Forest\nbase: \"#102030\"\n",
		"broken.yaml": "name: [\n",
		"readme.txt":  "ignore me",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", name, err)
		}
	}

	themes := LoadCustomThemes(dir)
	if len(themes) != 1 {
		t.Fatalf("LoadCustomThemes() loaded %d themes, want 1", len(themes))
	}
	if got, ok := themes["forest"]; !ok || got.Base != "#102030" {
		t.Fatalf("expected Forest theme, got %#v (ok=%v)", got, ok)
	}
}

func TestKindColor(t *testing.T) {
	th := Default()
	tests := []struct {
		kind protocol.Kind
		want string
	}{
		{protocol.KindSingle, string(th.Green)},
		{protocol.KindCrawl, string(th.Peach)},
		{protocol.KindMap, string(th.Teal)},
		{protocol.KindSearch, string(th.Blue)},
		{protocol.Kind("bogus"), string(th.Text)},
	}
	for _, tt := range tests {
		if got := th.KindColor(tt.kind); string(got) != tt.want {
			t.Errorf("KindColor(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestStatusColor(t *testing.T) {
	th := Default()
	if got := th.StatusColor(history.StatusCompleted); got != th.Green {
		t.Fatalf("completed color = %q, want %q", got, th.Green)
	}
	if got := th.StatusColor(history.StatusFailed); got != th.Red {
		t.Fatalf("failed color = %q, want %q", got, th.Red)
	}
}

func TestKindStyleFallsBackToNormal(t *testing.T) {
	s := NewStyles(Default())
	if len(s.Kinds) != len(protocol.Kinds) {
		t.Fatalf("Kinds has %d styles, want %d", len(s.Kinds), len(protocol.Kinds))
	}
	if got := s.KindStyle("bogus").GetForeground(); got != s.Normal.GetForeground() {
		t.Fatalf("unknown kind foreground = %v, want normal", got)
	}
}
