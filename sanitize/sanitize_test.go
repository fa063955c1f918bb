package sanitize

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MatthiasKunnen/desktopfilter/desktop"
	"github.com/MatthiasKunnen/desktopfilter/mediatype"
)

func mustParse(t *testing.T, content string) *desktop.File {
	t.Helper()
	file, err := desktop.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}

	return file
}

func TestProcess(t *testing.T) {
	file := mustParse(t, `
# Installed by the package manager
[Desktop Entry]
MimeType=text/html;application/pdf;image/png;
Exec=viewer %U
NoDisplay=true
Name=Viewer
Name[nl]=Kijker
X-Custom=1
Type=Application
X-GNOME-UsesNotifications=true
Categories=Graphics;Viewer;
`)

	result, err := Process(file)
	if err != nil {
		t.Fatal(err)
	}

	want := `[Desktop Entry]
Type=Application
Name=Viewer
Exec=viewer %U
Categories=Graphics;Viewer;
X-GNOME-UsesNotifications=true
MimeType=image/png
`
	if diff := cmp.Diff(want, string(result.Content)); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"text/html", "application/pdf"}, essences(result.Removed)); diff != "" {
		t.Errorf("Removed mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessNoDeniedTypes(t *testing.T) {
	file := mustParse(t, `[Desktop Entry]
Name=Viewer
MimeType=image/png;image/jpeg;application/zip;
`)

	result, err := Process(file)
	if err != nil {
		t.Fatal(err)
	}

	want := "[Desktop Entry]\nName=Viewer\nMimeType=image/png;image/jpeg;application/zip\n"
	if diff := cmp.Diff(want, string(result.Content)); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}

	if len(result.Removed) != 0 {
		t.Errorf("Removed = %v, want none", result.Removed)
	}
}

func TestProcessAllDenied(t *testing.T) {
	file := mustParse(t, "[Desktop Entry]\nName=Editor\nMimeType=text/plain;text/x-markdown;\n")

	result, err := Process(file)
	if err != nil {
		t.Fatal(err)
	}

	want := "[Desktop Entry]\nName=Editor\nMimeType=\n"
	if diff := cmp.Diff(want, string(result.Content)); diff != "" {
		t.Errorf("Process() mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessIdempotent(t *testing.T) {
	file := mustParse(t, `[Desktop Entry]
Icon=viewer
Name=Viewer
Comment=View things
MimeType=application/x-ruby;image/png;application/pdf
Version=1.5
`)

	first, err := Process(file)
	if err != nil {
		t.Fatal(err)
	}

	second, err := Process(mustParse(t, string(first.Content)))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(string(first.Content), string(second.Content)); diff != "" {
		t.Errorf("Second Process() differs from first (-first +second):\n%s", diff)
	}
}

func TestProcessDoesNotModifyFile(t *testing.T) {
	file := mustParse(t, "[Desktop Entry]\nNoDisplay=true\nMimeType=text/html;\n")
	before := mustParse(t, "[Desktop Entry]\nNoDisplay=true\nMimeType=text/html;\n")

	if _, err := Process(file); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(before, file); diff != "" {
		t.Errorf("Process() modified its input (-before +after):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		groups  []string
	}{
		{name: "empty", content: "", groups: []string{}},
		{name: "wrong name", content: "[Desktop Action foo]\nName=Foo\n", groups: []string{"Desktop Action foo"}},
		{
			name:    "two groups",
			content: "[Desktop Entry]\nName=Foo\n[Desktop Action foo]\nName=Bar\n",
			groups:  []string{"Desktop Entry", "Desktop Action foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(mustParse(t, tt.content))

			var structureErr *StructureError
			if !errors.As(err, &structureErr) {
				t.Fatalf("Validate() error = %v, want *StructureError", err)
			}

			if diff := cmp.Diff(tt.groups, structureErr.Groups); diff != "" {
				t.Errorf("StructureError.Groups mismatch (-want +got):\n%s", diff)
			}

			if KindOf(err) != KindStructure {
				t.Errorf("KindOf() = %v, want %v", KindOf(err), KindStructure)
			}
		})
	}
}

func TestValidateSuccess(t *testing.T) {
	group, err := Validate(mustParse(t, "[Desktop Entry]\nName=Foo\n"))
	if err != nil {
		t.Fatal(err)
	}

	if group.Name != DesktopEntryGroup {
		t.Errorf("Validate() returned group %s", group.Name)
	}
}

func TestFilterMimeTypesMissing(t *testing.T) {
	_, _, err := FilterMimeTypes(&desktop.Group{
		Name:  DesktopEntryGroup,
		Attrs: []desktop.Attr{{Key: "Name", Value: "Foo"}},
	})

	var missingErr *MissingAttributeError
	if !errors.As(err, &missingErr) {
		t.Fatalf("FilterMimeTypes() error = %v, want *MissingAttributeError", err)
	}

	if missingErr.Key != MimeTypeKey {
		t.Errorf("MissingAttributeError.Key = %s, want %s", missingErr.Key, MimeTypeKey)
	}
}

func TestFilterMimeTypesMalformed(t *testing.T) {
	_, _, err := FilterMimeTypes(&desktop.Group{
		Name:  DesktopEntryGroup,
		Attrs: []desktop.Attr{{Key: MimeTypeKey, Value: "image/png;notamimetype;also bad;"}},
	})

	var malformedErr *MalformedMediaTypeError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("FilterMimeTypes() error = %v, want *MalformedMediaTypeError", err)
	}

	if malformedErr.Token != "notamimetype" {
		t.Errorf("MalformedMediaTypeError.Token = %q, want notamimetype", malformedErr.Token)
	}

	if !errors.Is(err, mediatype.ErrMissingSubtype) {
		t.Errorf("MalformedMediaTypeError should wrap the parse error, got %v", err)
	}
}

func TestFilterMimeTypesKeepsOrder(t *testing.T) {
	kept, removed, err := FilterMimeTypes(&desktop.Group{
		Name: DesktopEntryGroup,
		Attrs: []desktop.Attr{{
			Key:   MimeTypeKey,
			Value: "image/webp;TEXT/HTML;image/avif;text/rtf;;image/png;application/x-ruby;",
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"image/webp", "image/avif", "image/png"}, essences(kept)); diff != "" {
		t.Errorf("kept mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"text/html", "text/rtf", "application/x-ruby"}, essences(removed)); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmptyGroup(t *testing.T) {
	got := Render(&desktop.Group{Name: DesktopEntryGroup}, "")
	want := "[Desktop Entry]\nMimeType=\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderKeyOrder(t *testing.T) {
	attrs := make([]desktop.Attr, 0)
	keys := AllowedKeys()
	for i := len(keys) - 1; i >= 0; i-- {
		attrs = append(attrs, desktop.Attr{Key: keys[i], Value: strings.ToLower(keys[i])})
	}

	got := Render(&desktop.Group{Name: DesktopEntryGroup, Attrs: attrs}, "image/png")

	lines := strings.Split(strings.TrimSuffix(string(got), "\n"), "\n")
	want := []string{"[Desktop Entry]"}
	for _, key := range keys {
		want = append(want, key+"="+strings.ToLower(key))
	}
	want = append(want, "MimeType=image/png")

	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestTables(t *testing.T) {
	if Denylist().Len() != 10 {
		t.Errorf("Denylist has %d entries, want 10", Denylist().Len())
	}

	if len(AllowedKeys()) != 10 {
		t.Errorf("AllowedKeys has %d entries, want 10", len(AllowedKeys()))
	}

	keys := AllowedKeys()
	keys[0] = "MimeType"
	if AllowedKeys()[0] != "Version" {
		t.Errorf("Modifying the result of AllowedKeys() changed the table")
	}

	for _, denied := range []string{
		"application/vnd.ms-word.document.macroEnabled.12",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.oasis.opendocument.text",
		"application/xhtml+xml",
	} {
		if !Denylist().Contains(mediatype.MustParse(denied)) {
			t.Errorf("Denylist should contain %s", denied)
		}
	}
}

func essences(types []mediatype.MediaType) []string {
	result := make([]string, len(types))
	for i, m := range types {
		result[i] = m.Essence()
	}

	return result
}
