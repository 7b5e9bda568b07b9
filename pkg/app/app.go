// Package app 提供纹理按钮展示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"

	"github.com/decker502/texui/pkg/config"
	"github.com/decker502/texui/pkg/ecs"
	"github.com/decker502/texui/pkg/entities"
	"github.com/decker502/texui/pkg/resource"
	"github.com/decker502/texui/pkg/systems"
	"github.com/decker502/texui/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

const (
	// ScreenWidth 逻辑屏幕宽度
	ScreenWidth = 800
	// ScreenHeight 逻辑屏幕高度
	ScreenHeight = 600

	// WelcomeNotePath 首次运行时写入用户存储的欢迎文本
	WelcomeNotePath = "user://notes/welcome"

	appName = "texui"
)

// Config 定义应用启动配置
type Config struct {
	// ResourcesPath 资源配置文件路径
	ResourcesPath string
	// LayoutPath 按钮布局文件路径（.yaml/.yml/.toml）
	LayoutPath string
	// Group 启动时预加载的资源组，为空则不预加载
	Group string
	// Watch 监听本地纹理文件变化并热重载
	Watch bool
	// Verbose 启用详细日志输出
	Verbose bool
}

// DefaultConfig 使用内置资源的默认配置
func DefaultConfig() Config {
	return Config{
		ResourcesPath: "res://data/resources.yaml",
		LayoutPath:    "res://data/texture_buttons.yaml",
		Group:         "main_menu",
	}
}

// App 实现 ebiten.Game 接口
type App struct {
	entityManager *ecs.EntityManager
	resources     *resource.ResourceManager
	files         *resource.Files
	watcher       *resource.Watcher

	buttonSystem *systems.TextureButtonSystem
	renderSystem *systems.TextureButtonRenderSystem

	intro   string
	welcome string
	status  string
	clicks  map[string]int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// OpenUserData 打开 gdata 用户存储，失败时返回 nil（user:// 路径不可用）
func OpenUserData() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: user storage disabled: %v", err)
		return nil
	}
	return m
}

// NewApp 加载资源和布局，创建按钮实体
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config, files *resource.Files) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if files == nil {
		files = resource.NewFiles(nil)
	}

	rm := resource.NewResourceManager(files)
	if err := rm.LoadResourceConfig(cfg.ResourcesPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	if cfg.Group != "" {
		if err := rm.LoadResourceGroup(cfg.Group); err != nil {
			// 组里个别文件损坏不影响启动
			log.Printf("[App] Warning: %v", err)
		}
	}

	layout, err := config.LoadTextureButtonLayout(files, cfg.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("按钮布局加载失败: %w", err)
	}

	a := &App{
		entityManager: ecs.NewEntityManager(),
		resources:     rm,
		files:         files,
		clicks:        make(map[string]int),
		status:        "点击按钮试试",
	}
	a.buttonSystem = systems.NewTextureButtonSystem(a.entityManager, utils.NewPointerTracker())
	a.renderSystem = systems.NewTextureButtonRenderSystem(a.entityManager)

	handlers := make(map[string]func(), len(layout.Buttons))
	for _, b := range layout.Buttons {
		name := b.Name
		handlers[name] = func() { a.onButtonPressed(name) }
	}
	if _, err := entities.SpawnTextureButtonLayout(a.entityManager, rm, layout, handlers); err != nil {
		return nil, err
	}

	if ta, err := rm.LoadTextByID("TEXT_INTRO"); err == nil {
		a.intro = strings.TrimSpace(ta.Value())
	} else {
		log.Printf("[App] Warning: intro text unavailable: %v", err)
	}
	a.welcome = a.loadWelcomeNote()

	if cfg.Watch {
		w, err := resource.NewWatcher(rm)
		if err != nil {
			return nil, fmt.Errorf("failed to start texture watcher: %w", err)
		}
		log.Printf("[App] Watching %d texture files", w.WatchLoaded())
		a.watcher = w
	}

	return a, nil
}

// loadWelcomeNote 从用户存储读取欢迎文本，首次运行时写入默认内容
func (a *App) loadWelcomeNote() string {
	note := resource.NewTextAsset(a.files)
	err := note.Load(WelcomeNotePath)
	if err == nil {
		return note.Value()
	}
	if !errors.Is(err, resource.ErrFileCantRead) {
		log.Printf("[App] Warning: %v", err)
		return ""
	}

	if werr := a.files.WriteUserFile(WelcomeNotePath, []byte("欢迎回来！")); werr != nil {
		log.Printf("[App] Warning: user storage unavailable: %v", werr)
		return ""
	}
	if err := note.Load(WelcomeNotePath); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	return note.Value()
}

// onButtonPressed 按钮点击回调
func (a *App) onButtonPressed(name string) {
	a.clicks[name]++
	a.status = fmt.Sprintf("%s 被点击 %d 次", name, a.clicks[name])

	if _, b, ok := entities.FindTextureButton(a.entityManager, name); ok && b.IsToggleMode() {
		state := "关"
		if b.IsPressed() {
			state = "开"
		}
		a.status += "（" + state + "）"
	}
	log.Printf("[App] %s", a.status)
}

// Status 最近一次点击的状态文本
func (a *App) Status() string {
	return a.status
}

// EntityManager 返回按钮所在的实体管理器
func (a *App) EntityManager() *ecs.EntityManager {
	return a.entityManager
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if a.watcher != nil {
		if n := a.watcher.Apply(); n > 0 {
			log.Printf("[App] Reloaded %d textures", n)
		}
	}
	a.buttonSystem.Update(1.0 / 60.0)
	a.entityManager.RemoveMarkedEntities(a.buttonSystem.ReleaseButton)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 40, G: 44, B: 52, A: 255})
	a.renderSystem.Draw(screen)

	lines := []string{a.intro, a.welcome, a.status}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 10, ScreenHeight-60)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 停止纹理监听
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Close()
}
