package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/ray/engine/core"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeShader
	AssetTypeMaterial
	AssetTypeTexture
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeShader:
		return "shader"
	case AssetTypeMaterial:
		return "material"
	case AssetTypeTexture:
		return "texture"
	}
	return "none"
}

// SystemScheme prefixes engine assets, e.g. "sys:fx/fog.yaml" lives at
// <root>/sys/fx/fog.yaml.
const SystemScheme = "sys:"

const changeQueueSize = 64

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// Change reports an asset written or removed on disk.
type Change struct {
	Path    string
	Type    AssetType
	Removed bool
}

// AssetManager indexes the asset directory and hands out raw bytes. With
// hot reload enabled a watcher goroutine queues changes; the main loop
// picks them up with Drain.
type AssetManager struct {
	root   string
	fsys   fs.FS
	assets map[string]AssetInfo

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan Change
}

func NewAssetManager(root string) *AssetManager {
	return &AssetManager{
		root:    root,
		fsys:    os.DirFS(root),
		assets:  make(map[string]AssetInfo),
		changes: make(chan Change, changeQueueSize),
		done:    make(chan struct{}),
	}
}

// Initialize indexes every known asset under the root and, with hotReload,
// starts watching it.
func (am *AssetManager) Initialize(hotReload bool) error {
	if err := fs.WalkDir(am.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			am.handleFileEvent(p)
		}
		return nil
	}); err != nil {
		err = fmt.Errorf("failed to index assets in %s: %w", am.root, err)
		core.LogError(err.Error())
		return err
	}
	core.LogInfo("indexed %d assets in %s", am.Count(), am.root)

	if !hotReload {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	am.fsnotify = watcher
	if err := am.watchRecursive(am.root, false); err != nil {
		watcher.Close()
		am.fsnotify = nil
		core.LogError(err.Error())
		return err
	}
	am.wg.Add(1)
	go am.start()
	return nil
}

// Resolve turns an asset name into its slash separated path below the root.
func Resolve(name string) string {
	if rest, ok := strings.CutPrefix(name, SystemScheme); ok {
		name = "sys/" + rest
	}
	return path.Clean(filepath.ToSlash(name))
}

func (am *AssetManager) Resolve(name string) string {
	return Resolve(name)
}

func (am *AssetManager) ReadFile(name string) ([]byte, error) {
	p := Resolve(name)
	data, err := fs.ReadFile(am.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("asset '%s': %w", name, err)
	}
	am.mutex.Lock()
	if info, ok := am.assets[p]; ok {
		info.LastLoaded = time.Now()
		am.assets[p] = info
	}
	am.mutex.Unlock()
	return data, nil
}

func (am *AssetManager) Info(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[Resolve(name)]
	return info, ok
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Drain hands every queued change to fn without blocking and returns how
// many there were. Repeated changes of one file collapse into one call.
func (am *AssetManager) Drain(fn func(Change)) int {
	seen := make(map[string]struct{})
	n := 0
	for {
		select {
		case c, ok := <-am.changes:
			if !ok {
				return n
			}
			if _, dup := seen[c.Path]; dup {
				continue
			}
			seen[c.Path] = struct{}{}
			fn(c)
			n++
		default:
			return n
		}
	}
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if am.fsnotify != nil {
		close(am.done)
		am.wg.Wait()
	}
	return nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
				continue
			}
			rel, err := filepath.Rel(am.root, e.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if typ := am.handleFileEvent(rel); typ != AssetTypeNone {
					am.notify(Change{Path: rel, Type: typ})
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if typ := am.removeAsset(rel); typ != AssetTypeNone {
					am.notify(Change{Path: rel, Type: typ, Removed: true})
				}
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(c Change) {
	select {
	case am.changes <- c:
	default:
		core.LogWarn("asset change queue full, dropping %s", c.Path)
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(dir string, unWatch bool) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return filepath.WalkDir(dir, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if unWatch {
			return am.fsnotify.Remove(walkPath)
		}
		return am.fsnotify.Add(walkPath)
	})
}

// handleFileEvent indexes a created or modified file and returns its type.
func (am *AssetManager) handleFileEvent(p string) AssetType {
	assetType := determineAssetType(p)
	if assetType == AssetTypeNone {
		return assetType
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[p] = AssetInfo{
		Path: p,
		Type: assetType,
	}
	return assetType
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(p string) AssetType {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.assets[p]
	if !ok {
		return AssetTypeNone
	}
	delete(am.assets, p)
	return info.Type
}

func determineAssetType(p string) AssetType {
	switch strings.ToLower(path.Ext(p)) {
	case ".glsl", ".vert", ".frag":
		return AssetTypeShader
	case ".yaml", ".yml":
		return AssetTypeMaterial
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return AssetTypeTexture
	default:
		return AssetTypeNone
	}
}
