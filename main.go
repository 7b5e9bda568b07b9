package main

import (
	"flag"
	"log"

	"github.com/decker502/texui/pkg/app"
	"github.com/decker502/texui/pkg/embedded"
	"github.com/decker502/texui/pkg/resource"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	defaults := app.DefaultConfig()
	resourcesPath := flag.String("resources", defaults.ResourcesPath, "资源配置文件路径")
	layoutPath := flag.String("layout", defaults.LayoutPath, "按钮布局文件路径（.yaml/.yml/.toml）")
	group := flag.String("group", defaults.Group, "启动时预加载的资源组")
	watch := flag.Bool("watch", false, "监听本地纹理文件变化并热重载")
	verbose := flag.Bool("verbose", false, "详细日志")
	flag.Parse()

	embedded.Init(dataFS)

	cfg := app.Config{
		ResourcesPath: *resourcesPath,
		LayoutPath:    *layoutPath,
		Group:         *group,
		Watch:         *watch,
		Verbose:       *verbose,
	}
	gameApp, err := app.NewApp(cfg, resource.NewFiles(app.OpenUserData()))
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("texui - 纹理按钮")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
