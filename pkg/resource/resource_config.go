package resource

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the top-level resource configuration loaded from YAML.
//
// Structure:
//
//	version: "1.0"
//	base_path: res://data
//	groups:
//	  main_menu:
//	    images: [...]
//	    masks: [...]
//	    texts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "res://data")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be loaded together.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"` // Textures
	Masks  []MaskResource  `yaml:"masks"`  // Click masks built from image alpha
	Texts  []TextResource  `yaml:"texts"`  // UTF-8 text assets
}

// ImageResource represents a single texture definition.
//
// Example:
//
//	- id: IMAGE_PLAY_NORMAL
//	  path: images/play_normal.png
type ImageResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path; ".png" is appended when there is no extension
}

// MaskResource represents a click mask built from the alpha channel of an image.
//
// Example:
//
//	- id: MASK_PLAY
//	  path: images/play_normal.png
//	  threshold: 0.5
type MaskResource struct {
	ID        string  `yaml:"id"`
	Path      string  `yaml:"path"`
	Threshold float64 `yaml:"threshold,omitempty"` // Alpha threshold, DefaultAlphaThreshold when omitted
}

// TextResource represents a UTF-8 text asset.
//
// Example:
//
//	- id: TEXT_CREDITS
//	  path: strings/credits.txt
type TextResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// resourceKind tells ResourceManager which loader an ID belongs to.
type resourceKind int

const (
	kindImage resourceKind = iota
	kindMask
	kindText
)

func (k resourceKind) String() string {
	switch k {
	case kindImage:
		return "image"
	case kindMask:
		return "mask"
	case kindText:
		return "text"
	default:
		return "unknown"
	}
}

// resourceEntry is one resolved entry of the ID lookup table.
type resourceEntry struct {
	kind      resourceKind
	path      string
	threshold float64
}

// ParseResourceConfig decodes and validates a resources.yaml document.
//
// Returns an error when the YAML is malformed, an entry has an empty ID or
// path, or the same ID is declared twice (across all groups).
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}

	seen := make(map[string]string)
	check := func(group, id, path string) error {
		if id == "" || path == "" {
			return fmt.Errorf("group %s: resource id and path are required (id=%q path=%q)", group, id, path)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("duplicate resource id %s in groups %s and %s", id, prev, group)
		}
		seen[id] = group
		return nil
	}

	for name, group := range config.Groups {
		for _, img := range group.Images {
			if err := check(name, img.ID, img.Path); err != nil {
				return nil, err
			}
		}
		for _, mask := range group.Masks {
			if err := check(name, mask.ID, mask.Path); err != nil {
				return nil, err
			}
			if mask.Threshold < 0 || mask.Threshold >= 1 {
				return nil, fmt.Errorf("group %s: mask %s threshold must be in [0, 1), got %v", name, mask.ID, mask.Threshold)
			}
		}
		for _, text := range group.Texts {
			if err := check(name, text.ID, text.Path); err != nil {
				return nil, err
			}
		}
	}

	return &config, nil
}

// buildFullPath constructs the full file path for a resource.
// Relative paths that already carry a scheme (res://, user://) are returned unchanged.
//
// Examples:
//
//	buildFullPath("res://data", "images/a.png") -> "res://data/images/a.png"
//	buildFullPath("assets", "/images/a.png")     -> "assets/images/a.png"
//	buildFullPath("", "images/a.png")            -> "images/a.png"
func buildFullPath(basePath, relativePath string) string {
	if strings.Contains(relativePath, "://") || basePath == "" {
		return relativePath
	}
	return strings.TrimSuffix(basePath, "/") + "/" + strings.TrimPrefix(relativePath, "/")
}
