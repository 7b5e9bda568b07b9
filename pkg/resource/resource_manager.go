package resource

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrConfigNotLoaded is returned by the *ByID methods before LoadResourceConfig.
var ErrConfigNotLoaded = errors.New("resource config not loaded - call LoadResourceConfig first")

// ErrUnknownResourceID is returned when an ID is not declared in the resource config,
// or is declared with a different kind (e.g. a text ID passed to LoadTextureByID).
var ErrUnknownResourceID = errors.New("resource ID not found")

// ResourceManager is responsible for centralized management of UI resources.
// It loads textures, click masks and text assets through a FileAccess, caches
// them by path, and hands out the shared instance on every later request, so
// several buttons can reference the same texture.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is meant to be used from the game
// loop goroutine only; the file Watcher respects this by queueing reloads until
// Watcher.Apply is called from the loop.
//
// Usage:
//
//	rm := NewResourceManager(resource.NewFiles(nil))
//	if err := rm.LoadResourceConfig("res://data/resources.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	tex, err := rm.LoadTextureByID("IMAGE_PLAY_NORMAL")
type ResourceManager struct {
	files        FileAccess
	textureCache map[string]*ImageTexture // path -> texture
	maskCache    map[maskKey]*BitMap      // path + threshold -> mask
	textCache    map[string]*TextAsset    // path -> text

	config      *ResourceConfig
	resourceMap map[string]resourceEntry // resource ID -> entry
}

// NewResourceManager creates a ResourceManager with empty caches.
//
// Parameters:
//   - files: The FileAccess used for every read. nil means NewFiles(nil).
func NewResourceManager(files FileAccess) *ResourceManager {
	if files == nil {
		files = NewFiles(nil)
	}
	return &ResourceManager{
		files:        files,
		textureCache: make(map[string]*ImageTexture),
		maskCache:    make(map[maskKey]*BitMap),
		textCache:    make(map[string]*TextAsset),
		resourceMap:  make(map[string]resourceEntry),
	}
}

// Files returns the FileAccess used by this manager.
func (rm *ResourceManager) Files() FileAccess {
	return rm.files
}

// decodeImage reads and decodes an image file.
// Supported formats: PNG, JPEG, BMP, WebP.
func (rm *ResourceManager) decodeImage(path string) (image.Image, error) {
	data, err := rm.files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadTexture loads a texture from the specified path and caches it.
// If the texture has already been loaded, the cached instance is returned.
//
// Error handling:
//   - Returns an error if the file cannot be read.
//   - Returns an error if the image format is not supported or the file is corrupted.
func (rm *ResourceManager) LoadTexture(path string) (*ImageTexture, error) {
	if cached, exists := rm.textureCache[path]; exists {
		return cached, nil
	}

	img, err := rm.decodeImage(path)
	if err != nil {
		return nil, err
	}

	tex := NewImageTexture(ebiten.NewImageFromImage(img))
	tex.path = path
	rm.textureCache[path] = tex
	return tex, nil
}

// GetTexture retrieves a previously loaded texture, or nil.
func (rm *ResourceManager) GetTexture(path string) *ImageTexture {
	return rm.textureCache[path]
}

// maskKey identifies a cached click mask.
type maskKey struct {
	path      string
	threshold float64
}

// ReloadTexture decodes the file again and swaps the image inside the cached
// texture. Click masks built from the same file are rebuilt in place. Every
// holder of the texture or of a mask is notified through Changed.
//
// Returns an error if the path was never loaded as a texture or a mask, or the
// new contents cannot be decoded; in both cases the cached resources keep their
// previous contents.
func (rm *ResourceManager) ReloadTexture(path string) error {
	tex, hasTexture := rm.textureCache[path]
	masks := rm.masksFor(path)
	if !hasTexture && len(masks) == 0 {
		return fmt.Errorf("texture %s is not loaded", path)
	}
	img, err := rm.decodeImage(path)
	if err != nil {
		return err
	}

	if hasTexture {
		tex.SetImage(ebiten.NewImageFromImage(img))
		log.Printf("[ResourceManager] Reloaded texture %s", path)
	}
	for key, mask := range masks {
		mask.Replace(NewBitMapFromImageAlpha(img, key.threshold))
		log.Printf("[ResourceManager] Rebuilt click mask %s@%g", path, key.threshold)
	}
	return nil
}

// masksFor returns the cached masks built from path.
func (rm *ResourceManager) masksFor(path string) map[maskKey]*BitMap {
	var masks map[maskKey]*BitMap
	for key, mask := range rm.maskCache {
		if key.path != path {
			continue
		}
		if masks == nil {
			masks = make(map[maskKey]*BitMap)
		}
		masks[key] = mask
	}
	return masks
}

// LoadedTexturePaths returns the paths of all cached textures and click-mask
// sources, sorted and without duplicates. These are the paths ReloadTexture accepts.
func (rm *ResourceManager) LoadedTexturePaths() []string {
	seen := make(map[string]struct{}, len(rm.textureCache)+len(rm.maskCache))
	for p := range rm.textureCache {
		seen[p] = struct{}{}
	}
	for key := range rm.maskCache {
		seen[key.path] = struct{}{}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// LoadClickMask builds a click mask from the alpha channel of an image and caches it.
//
// Parameters:
//   - path: Image file path.
//   - threshold: Alpha threshold in [0, 1); 0 selects DefaultAlphaThreshold.
func (rm *ResourceManager) LoadClickMask(path string, threshold float64) (*BitMap, error) {
	if threshold <= 0 {
		threshold = DefaultAlphaThreshold
	}
	key := maskKey{path: path, threshold: threshold}
	if cached, exists := rm.maskCache[key]; exists {
		return cached, nil
	}

	img, err := rm.decodeImage(path)
	if err != nil {
		return nil, err
	}

	mask := NewBitMapFromImageAlpha(img, threshold)
	rm.maskCache[key] = mask
	return mask, nil
}

// LoadText loads a UTF-8 text asset and caches it.
// Failures are not cached, so a later call retries the read.
func (rm *ResourceManager) LoadText(path string) (*TextAsset, error) {
	if cached, exists := rm.textCache[path]; exists {
		return cached, nil
	}

	ta := NewTextAsset(rm.files)
	if err := ta.Load(path); err != nil {
		return nil, err
	}
	rm.textCache[path] = ta
	return ta, nil
}

// LoadResourceConfig reads and parses a resources.yaml file and builds the ID lookup table.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := rm.files.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	config, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	rm.config = config
	rm.buildResourceMap()
	log.Printf("[ResourceManager] Loaded resource config %s (%d resources)", configPath, len(rm.resourceMap))
	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	IMAGE_PLAY_NORMAL -> res://data/images/play_normal.png
//	TEXT_CREDITS      -> res://data/strings/credits.txt
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]resourceEntry)
	if rm.config == nil {
		return
	}

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}
			rm.resourceMap[img.ID] = resourceEntry{kind: kindImage, path: fullPath}
		}
		for _, mask := range group.Masks {
			fullPath := buildFullPath(rm.config.BasePath, mask.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			rm.resourceMap[mask.ID] = resourceEntry{kind: kindMask, path: fullPath, threshold: mask.Threshold}
		}
		for _, text := range group.Texts {
			rm.resourceMap[text.ID] = resourceEntry{kind: kindText, path: buildFullPath(rm.config.BasePath, text.Path)}
		}
	}
}

// lookup resolves a resource ID of the given kind.
func (rm *ResourceManager) lookup(resourceID string, kind resourceKind) (resourceEntry, error) {
	if rm.config == nil {
		return resourceEntry{}, ErrConfigNotLoaded
	}
	entry, exists := rm.resourceMap[resourceID]
	if !exists || entry.kind != kind {
		return resourceEntry{}, fmt.Errorf("%w: %s (%s)", ErrUnknownResourceID, resourceID, kind)
	}
	return entry, nil
}

// ResolvePath returns the full path declared for a resource ID.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	entry, exists := rm.resourceMap[resourceID]
	return entry.path, exists
}

// LoadTextureByID loads a texture using its resource ID.
func (rm *ResourceManager) LoadTextureByID(resourceID string) (*ImageTexture, error) {
	entry, err := rm.lookup(resourceID, kindImage)
	if err != nil {
		return nil, err
	}
	return rm.LoadTexture(entry.path)
}

// LoadClickMaskByID loads a click mask using its resource ID.
func (rm *ResourceManager) LoadClickMaskByID(resourceID string) (*BitMap, error) {
	entry, err := rm.lookup(resourceID, kindMask)
	if err != nil {
		return nil, err
	}
	return rm.LoadClickMask(entry.path, entry.threshold)
}

// LoadTextByID loads a text asset using its resource ID.
func (rm *ResourceManager) LoadTextByID(resourceID string) (*TextAsset, error) {
	entry, err := rm.lookup(resourceID, kindText)
	if err != nil {
		return nil, err
	}
	return rm.LoadText(entry.path)
}

// LoadResourceGroup loads every resource of a group.
//
// All entries are attempted; the returned error joins every failure so a
// single broken file does not hide the others.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return ErrConfigNotLoaded
	}
	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("resource group not found: %s", groupName)
	}

	var errs []error
	for _, img := range group.Images {
		if _, err := rm.LoadTextureByID(img.ID); err != nil {
			errs = append(errs, err)
		}
	}
	for _, mask := range group.Masks {
		if _, err := rm.LoadClickMaskByID(mask.ID); err != nil {
			errs = append(errs, err)
		}
	}
	for _, text := range group.Texts {
		if _, err := rm.LoadTextByID(text.ID); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to load resource group %s: %w", groupName, errors.Join(errs...))
	}
	log.Printf("[ResourceManager] Loaded resource group %s", groupName)
	return nil
}

// GroupNames returns the names of all configured groups, sorted.
func (rm *ResourceManager) GroupNames() []string {
	if rm.config == nil {
		return nil
	}
	names := make([]string, 0, len(rm.config.Groups))
	for name := range rm.config.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
