package resource

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable res:// 与 user:// 资源不在本地文件系统上，无法监听
var ErrNotWatchable = errors.New("path is not on the local file system")

// Watcher 监听已加载纹理的源文件，文件被修改后重新加载纹理
//
// fsnotify 事件在后台 goroutine 中收集，只记录待重载的路径；
// 真正的重载（解码、替换图片、触发 Changed）在 Apply 中完成，
// Apply 必须在游戏主循环中调用，因此纹理和控件始终只被一个 goroutine 修改。
type Watcher struct {
	rm  *ResourceManager
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	files   map[string]string // 绝对路径 -> 纹理缓存路径
	dirs    map[string]int    // 目录 -> 监听的文件数
	pending map[string]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher 创建并启动监听器
func NewWatcher(rm *ResourceManager) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		rm:      rm,
		fsw:     fsw,
		files:   make(map[string]string),
		dirs:    make(map[string]int),
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch 开始监听一个纹理路径
// 监听的是所在目录，编辑器"写临时文件再重命名"的保存方式也能被捕获
func (w *Watcher) Watch(texturePath string) error {
	if strings.Contains(texturePath, "://") {
		return fmt.Errorf("%w: %s", ErrNotWatchable, texturePath)
	}
	abs, err := filepath.Abs(texturePath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", texturePath, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.files[abs]; exists {
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = texturePath
	return nil
}

// WatchLoaded 监听 ResourceManager 中所有可监听的已加载纹理
// 返回成功监听的数量；内置资源会被跳过
func (w *Watcher) WatchLoaded() int {
	n := 0
	for _, p := range w.rm.LoadedTexturePaths() {
		if err := w.Watch(p); err != nil {
			if !errors.Is(err, ErrNotWatchable) {
				log.Printf("[Watcher] Warning: %v", err)
			}
			continue
		}
		n++
	}
	return n
}

// Pending 待重载的纹理路径（已排序）
func (w *Watcher) Pending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Apply 重载所有待处理的纹理，返回成功重载的数量
// 必须在游戏主循环中调用
func (w *Watcher) Apply() int {
	paths := w.takePending()

	n := 0
	for _, p := range paths {
		if err := w.rm.ReloadTexture(p); err != nil {
			log.Printf("[Watcher] Warning: failed to reload %s: %v", p, err)
			continue
		}
		n++
	}
	return n
}

// takePending 取出并清空待重载集合
// 取出与清空在同一临界区内完成，之后到达的事件留给下一次 Apply
func (w *Watcher) takePending() []string {
	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// enqueue 记录一个待重载的纹理路径
func (w *Watcher) enqueue(texturePath string) {
	w.mu.Lock()
	w.pending[texturePath] = struct{}{}
	w.mu.Unlock()
}

// Close 停止监听
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			texturePath, watched := w.files[abs]
			w.mu.Unlock()
			if watched {
				w.enqueue(texturePath)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] Error: %v", err)

		case <-w.done:
			return
		}
	}
}
