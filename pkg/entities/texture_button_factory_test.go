package entities

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/decker502/texui/pkg/components"
	"github.com/decker502/texui/pkg/config"
	"github.com/decker502/texui/pkg/ecs"
	"github.com/decker502/texui/pkg/embedded"
	"github.com/decker502/texui/pkg/resource"
	"github.com/decker502/texui/pkg/types"
)

const factoryResourceYAML = `version: "1.0"
base_path: res://data
groups:
  menu:
    images:
      - id: IMAGE_PLAY_NORMAL
        path: images/play_normal.png
      - id: IMAGE_PLAY_HOVER
        path: images/play_hover.png
    masks:
      - id: MASK_PLAY
        path: images/play_normal.png
`

const factoryLayoutYAML = `
buttons:
  - name: play
    position: [40, 30]
    z: 1
    textures:
      normal: IMAGE_PLAY_NORMAL
      hover: IMAGE_PLAY_HOVER
      click_mask: MASK_PLAY
    scale: [2, 2]
  - name: quit
    position: [40, 100]
    size: [50, 20]
    disabled: true
    textures:
      normal: res://data/images/play_normal.png
      disabled: res://data/images/play_hover.png
`

// leftHalfPNG 左半边不透明的 PNG
func leftHalfPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{G: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func setupFactoryResources(t *testing.T) *resource.ResourceManager {
	t.Helper()
	embedded.Init(fstest.MapFS{
		"data/resources.yaml":         {Data: []byte(factoryResourceYAML)},
		"data/images/play_normal.png": {Data: leftHalfPNG(t, 20, 10)},
		"data/images/play_hover.png":  {Data: leftHalfPNG(t, 20, 10)},
	})
	t.Cleanup(func() { embedded.Init(nil) })

	rm := resource.NewResourceManager(nil)
	if err := rm.LoadResourceConfig("res://data/resources.yaml"); err != nil {
		t.Fatalf("LoadResourceConfig: %v", err)
	}
	return rm
}

func TestSpawnTextureButtonLayout(t *testing.T) {
	rm := setupFactoryResources(t)
	layout, err := config.ParseTextureButtonLayout([]byte(factoryLayoutYAML), "yaml")
	if err != nil {
		t.Fatalf("ParseTextureButtonLayout: %v", err)
	}

	em := ecs.NewEntityManager()
	pressed := false
	ids, err := SpawnTextureButtonLayout(em, rm, layout, map[string]func(){
		"play": func() { pressed = true },
	})
	if err != nil {
		t.Fatalf("SpawnTextureButtonLayout: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("spawned %d buttons, want 2", len(ids))
	}

	playID, play, ok := FindTextureButton(em, "play")
	if !ok || playID != ids["play"] {
		t.Fatal("FindTextureButton(play) failed")
	}
	comp, _ := ecs.GetComponent[*components.TextureButtonComponent](em, playID)
	if comp.ZOrder != 1 {
		t.Errorf("play ZOrder = %d, want 1", comp.ZOrder)
	}

	// 未指定尺寸时使用最小尺寸：20x10 的纹理放大两倍
	if play.Size() != types.V(40, 20) {
		t.Errorf("play size = %v, want (40,20)", play.Size())
	}
	if play.Position() != types.V(40, 30) {
		t.Errorf("play position = %v", play.Position())
	}
	if play.ClickMask() == nil {
		t.Fatal("play should have a click mask")
	}
	// 遮罩左半边可点击（本地坐标先除以缩放）
	if !play.HasPoint(types.V(10, 10)) || play.HasPoint(types.V(30, 10)) {
		t.Error("click mask hit test should follow the image alpha")
	}

	play.PressBegin()
	play.PressEnd(true)
	if !pressed {
		t.Error("handler should be wired to OnPressed")
	}

	_, quit, _ := FindTextureButton(em, "quit")
	if quit.Size() != types.V(50, 20) {
		t.Errorf("quit size = %v, want (50,20)", quit.Size())
	}
	if !quit.IsDisabled() {
		t.Error("quit should be disabled")
	}
	if tex, slot := quit.ActiveTexture(); tex == nil || slot.String() != "disabled" {
		t.Errorf("quit active slot = %v", slot)
	}

	// 同一路径的纹理被两个按钮共享
	if play.NormalTexture() != quit.NormalTexture() {
		t.Error("buttons loading the same path should share the texture")
	}
}

func TestAutoSizeFollowsMinimumSize(t *testing.T) {
	rm := setupFactoryResources(t)
	layout, err := config.ParseTextureButtonLayout([]byte(factoryLayoutYAML), "yaml")
	if err != nil {
		t.Fatal(err)
	}

	em := ecs.NewEntityManager()
	_, play, err := NewTextureButtonEntity(em, rm, &layout.Buttons[0], nil)
	if err != nil {
		t.Fatal(err)
	}

	play.SetTextureScale(types.V(1, 1))
	if play.Size() != types.V(20, 10) {
		t.Errorf("size after scale change = %v, want (20,10)", play.Size())
	}
	if play.MinimumSizeDirty() {
		t.Error("auto-sized button should consume the minimum size change")
	}
}

func TestSpawnTextureButtonLayoutFailure(t *testing.T) {
	rm := setupFactoryResources(t)
	layout, err := config.ParseTextureButtonLayout([]byte(`
buttons:
  - name: ok
    textures:
      normal: IMAGE_PLAY_NORMAL
  - name: broken
    textures:
      normal: IMAGE_DOES_NOT_EXIST
`), "yaml")
	if err != nil {
		t.Fatal(err)
	}

	em := ecs.NewEntityManager()
	if _, err := SpawnTextureButtonLayout(em, rm, layout, nil); !errors.Is(err, resource.ErrUnknownResourceID) {
		t.Fatalf("error = %v, want ErrUnknownResourceID", err)
	}

	// 已创建的按钮被标记删除
	em.RemoveMarkedEntities(nil)
	if n := len(ecs.GetEntitiesWith1[*components.TextureButtonComponent](em)); n != 0 {
		t.Errorf("%d buttons left after failed spawn, want 0", n)
	}
}

func TestLoadClickMaskThresholdOverride(t *testing.T) {
	rm := setupFactoryResources(t)

	byID, err := loadClickMask(rm, "MASK_PLAY", 0)
	if err != nil {
		t.Fatal(err)
	}
	override, err := loadClickMask(rm, "MASK_PLAY", 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if byID == override {
		t.Error("an explicit threshold should build a separate mask")
	}
	if _, err := loadClickMask(rm, "NOPE", 0.5); !errors.Is(err, resource.ErrUnknownResourceID) {
		t.Errorf("error = %v, want ErrUnknownResourceID", err)
	}
}
