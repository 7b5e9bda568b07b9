// cmd/check_resources/main.go
// 资源配置检查工具：加载 resources.yaml 中的每个资源组，并校验按钮布局引用的资源
//
// 用法：
//
//	go run ./cmd/check_resources --root=. --layout=res://data/texture_buttons.yaml
//	go run ./cmd/check_resources --list
package main

import (
	"flag"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/decker502/texui/pkg/config"
	"github.com/decker502/texui/pkg/ecs"
	"github.com/decker502/texui/pkg/embedded"
	"github.com/decker502/texui/pkg/entities"
	"github.com/decker502/texui/pkg/resource"
)

var (
	rootDir    = flag.String("root", ".", "作为 res:// 根目录的本地目录")
	configPath = flag.String("config", "res://data/resources.yaml", "资源配置文件路径")
	layoutList = flag.String("layout", "res://data/texture_buttons.yaml,res://data/texture_buttons.toml", "要校验的按钮布局（逗号分隔，留空跳过）")
	listFiles  = flag.Bool("list", false, "列出 res://data 下的所有文件")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "check_resources",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	embedded.Init(os.DirFS(*rootDir))

	if *listFiles {
		listEmbedded(logger)
		return
	}

	failures := 0

	rm := resource.NewResourceManager(nil)
	if err := rm.LoadResourceConfig(*configPath); err != nil {
		logger.Fatal("加载资源配置失败", "path", *configPath, "err", err)
	}

	for _, group := range rm.GroupNames() {
		start := time.Now()
		if err := rm.LoadResourceGroup(group); err != nil {
			logger.Error("资源组加载失败", "group", group, "err", err)
			failures++
			continue
		}
		logger.Info("资源组 OK", "group", group, "elapsed", time.Since(start).Round(time.Millisecond))
	}
	logger.Debug("已加载纹理", "paths", rm.LoadedTexturePaths())

	for _, p := range splitList(*layoutList) {
		if err := checkLayout(rm, p); err != nil {
			logger.Error("按钮布局校验失败", "layout", p, "err", err)
			failures++
			continue
		}
		logger.Info("按钮布局 OK", "layout", p)
	}

	if failures > 0 {
		logger.Fatal("检查未通过", "failures", failures)
	}
	logger.Info("全部资源检查通过")
}

// checkLayout 在临时的实体管理器中实例化整个布局
func checkLayout(rm *resource.ResourceManager, path string) error {
	layout, err := config.LoadTextureButtonLayout(rm.Files(), path)
	if err != nil {
		return err
	}
	em := ecs.NewEntityManager()
	_, err = entities.SpawnTextureButtonLayout(em, rm, layout, nil)
	return err
}

// listEmbedded 列出 data 目录下的所有文件及大小
func listEmbedded(logger *log.Logger) {
	err := fs.WalkDir(os.DirFS(*rootDir), "data", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := embedded.ReadFile(p)
		if err != nil {
			return err
		}
		logger.Info("res://"+p, "bytes", len(data))
		return nil
	})
	if err != nil {
		logger.Fatal("列出文件失败", "err", err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
