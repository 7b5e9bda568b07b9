package resource

import (
	"strings"
	"testing"
)

const testResourceYAML = `version: "1.0"
base_path: res://data
groups:
  main_menu:
    images:
      - id: IMAGE_PLAY_NORMAL
        path: images/play_normal
      - id: IMAGE_PLAY_HOVER
        path: images/play_hover.png
    masks:
      - id: MASK_PLAY
        path: images/play_normal.png
        threshold: 0.5
    texts:
      - id: TEXT_INTRO
        path: strings/intro.txt
`

func TestParseResourceConfig(t *testing.T) {
	config, err := ParseResourceConfig([]byte(testResourceYAML))
	if err != nil {
		t.Fatalf("ParseResourceConfig error: %v", err)
	}

	if config.Version != "1.0" {
		t.Errorf("Version = %q, want %q", config.Version, "1.0")
	}
	if config.BasePath != "res://data" {
		t.Errorf("BasePath = %q, want %q", config.BasePath, "res://data")
	}

	group, ok := config.Groups["main_menu"]
	if !ok {
		t.Fatal("group main_menu missing")
	}
	if len(group.Images) != 2 || len(group.Masks) != 1 || len(group.Texts) != 1 {
		t.Errorf("group sizes = (%d, %d, %d), want (2, 1, 1)", len(group.Images), len(group.Masks), len(group.Texts))
	}
	if group.Masks[0].Threshold != 0.5 {
		t.Errorf("mask threshold = %v, want 0.5", group.Masks[0].Threshold)
	}
}

func TestParseResourceConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			yaml:    "groups: [",
			wantErr: "failed to parse resource config",
		},
		{
			name: "missing path",
			yaml: `groups:
  g:
    images:
      - id: IMAGE_A
`,
			wantErr: "id and path are required",
		},
		{
			name: "duplicate id across groups",
			yaml: `groups:
  a:
    images:
      - {id: DUP, path: a.png}
  b:
    texts:
      - {id: DUP, path: b.txt}
`,
			wantErr: "duplicate resource id DUP",
		},
		{
			name: "threshold out of range",
			yaml: `groups:
  g:
    masks:
      - {id: MASK_A, path: a.png, threshold: 1.5}
`,
			wantErr: "threshold must be in [0, 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResourceConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBuildFullPath(t *testing.T) {
	tests := []struct {
		base, rel, want string
	}{
		{"res://data", "images/a.png", "res://data/images/a.png"},
		{"res://data/", "/images/a.png", "res://data/images/a.png"},
		{"assets", "images/a.png", "assets/images/a.png"},
		{"", "images/a.png", "images/a.png"},
		{"res://data", "user://notes/a", "user://notes/a"},
	}
	for _, tt := range tests {
		if got := buildFullPath(tt.base, tt.rel); got != tt.want {
			t.Errorf("buildFullPath(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}
