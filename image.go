package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// PageSource locates one page image on disk or inside an archive. It is the
// host's viewer.Page value.
type PageSource struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

func (p PageSource) String() string {
	return p.Path
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".cbz", ".rar", ".cbr", ".7z", ".cb7":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// archiveKind normalizes comic-book archive extensions to their container
func archiveKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".cbz":
		return "zip"
	case ".rar", ".cbr":
		return "rar"
	case ".7z", ".cb7":
		return "7z"
	default:
		return ""
	}
}

// PreloadManager warms the page cache on a background goroutine. Each new
// request replaces any request still waiting.
type PreloadManager struct {
	requestChan  chan []int
	ctx          context.Context
	cancel       context.CancelFunc
	imageManager *ImageManager
	mu           sync.RWMutex
	enabled      bool
}

// NewPreloadManager creates a PreloadManager and starts its worker
func NewPreloadManager(imageManager *ImageManager) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requestChan:  make(chan []int, 1),
		ctx:          ctx,
		cancel:       cancel,
		imageManager: imageManager,
		enabled:      true,
	}
	go pm.worker()
	return pm
}

// SetEnabled enables or disables preloading
func (pm *PreloadManager) SetEnabled(enabled bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = enabled
}

// IsEnabled returns whether preloading is enabled
func (pm *PreloadManager) IsEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// Stop stops the worker
func (pm *PreloadManager) Stop() {
	pm.cancel()
}

// Request queues page indices for warming, dropping a stale pending request
func (pm *PreloadManager) Request(pages []int) {
	if !pm.IsEnabled() || len(pages) == 0 {
		return
	}

	select {
	case <-pm.requestChan:
		debugLog("Preload: replaced pending request")
	default:
	}

	select {
	case pm.requestChan <- pages:
	default:
		debugLog("Preload request channel full, skipping %v", pages)
	}
}

func (pm *PreloadManager) worker() {
	for {
		select {
		case <-pm.ctx.Done():
			return
		case pages := <-pm.requestChan:
			for _, idx := range pages {
				if pm.ctx.Err() != nil {
					return
				}
				pm.imageManager.warm(idx)
			}
		}
	}
}

// ImageManager loads page images on demand and keeps recently used ones in
// an LRU cache keyed by page path. It implements viewer.Preloader.
type ImageManager struct {
	mu         sync.RWMutex
	pages      []PageSource
	cache      *lru.Cache[string, *ebiten.Image]
	thumbnails *lru.Cache[string, *ebiten.Image]
	preloader  *PreloadManager
	loaded     atomic.Int64
	failed     atomic.Int64
}

func newImageCache(size int) *lru.Cache[string, *ebiten.Image] {
	cache, err := lru.NewWithEvict[string, *ebiten.Image](size, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		log.Printf("Error: Failed to create LRU cache of size %d: %v", size, err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, func(_ string, img *ebiten.Image) {
			if img != nil {
				img.Deallocate()
			}
		})
	}
	return cache
}

// thumbnailCacheSize bounds the scaled-down copies kept for the grid
const thumbnailCacheSize = 64

// NewImageManager creates an ImageManager; preloading runs on a background
// worker when enabled
func NewImageManager(cacheSize int, preloadEnabled bool) *ImageManager {
	m := &ImageManager{
		cache:      newImageCache(cacheSize),
		thumbnails: newImageCache(thumbnailCacheSize),
	}
	m.preloader = NewPreloadManager(m)
	m.preloader.SetEnabled(preloadEnabled)
	return m
}

// SetPages replaces the deck. Cached images survive because keys are paths.
func (m *ImageManager) SetPages(pages []PageSource) {
	m.mu.Lock()
	m.pages = pages
	m.mu.Unlock()
	debugLog("SetPages: %d pages, cache preserved (%d items)", len(pages), m.cache.Len())
}

// PagesCount returns the number of pages
func (m *ImageManager) PagesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

// Loaded returns how many images have been decoded so far; the renderer
// uses it to notice background loads.
func (m *ImageManager) Loaded() int {
	return int(m.loaded.Load())
}

// Preload queues pages for background loading
func (m *ImageManager) Preload(pages []int) {
	m.preloader.Request(pages)
}

// Stop stops the preload worker
func (m *ImageManager) Stop() {
	m.preloader.Stop()
}

func (m *ImageManager) page(idx int) (PageSource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.pages) {
		return PageSource{}, false
	}
	return m.pages[idx], true
}

// GetImage returns the decoded page, loading it if needed. A page that fails
// to load is replaced by an error placeholder so navigation is unaffected.
func (m *ImageManager) GetImage(idx int) *ebiten.Image {
	src, ok := m.page(idx)
	if !ok {
		return nil
	}

	if img, ok := m.cache.Get(src.Path); ok {
		return img
	}

	img, err := loadImage(src)
	if err != nil {
		log.Printf("Error: Failed to load page [%d/%d] %s: %v", idx+1, m.PagesCount(), src.Path, err)
		m.failed.Add(1)
		img = CreateErrorImage(400, 300, src.Path, err.Error())
	}
	m.cache.Add(src.Path, img)
	m.loaded.Add(1)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	debugLog("Cache MISS: %s (cache: %d items, memory: %dMB)", src.Path, m.cache.Len(), mem.Alloc/1024/1024)
	return img
}

// warm loads a page into the cache if it is not there yet
func (m *ImageManager) warm(idx int) {
	src, ok := m.page(idx)
	if !ok || m.cache.Contains(src.Path) {
		return
	}
	img, err := loadImage(src)
	if err != nil {
		m.failed.Add(1)
		debugLog("Preload failed for [%d] %s: %v", idx+1, src.Path, err)
		img = CreateErrorImage(400, 300, src.Path, err.Error())
	}
	m.cache.Add(src.Path, img)
	m.loaded.Add(1)
	debugLog("Preloaded [%d] %s (cache: %d items)", idx+1, src.Path, m.cache.Len())
}

// GetThumbnail returns a copy of the page scaled to fit maxW x maxH
func (m *ImageManager) GetThumbnail(idx int, maxW, maxH int) *ebiten.Image {
	src, ok := m.page(idx)
	if !ok {
		return nil
	}
	key := fmt.Sprintf("%s@%dx%d", src.Path, maxW, maxH)
	if thumb, ok := m.thumbnails.Get(key); ok {
		return thumb
	}

	full := m.GetImage(idx)
	if full == nil {
		return nil
	}
	scale := fitScale(full.Bounds().Dx(), full.Bounds().Dy(), maxW, maxH, true)
	w := max(1, int(float64(full.Bounds().Dx())*scale))
	h := max(1, int(float64(full.Bounds().Dy())*scale))
	thumb := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(scale, scale)
	thumb.DrawImage(full, op)
	m.thumbnails.Add(key, thumb)
	return thumb
}

// Image loading functions

func decodeImage(r io.Reader, path string) (*ebiten.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func loadImageFromZip(archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return decodeImage(rc, entryPath)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFromRar(archivePath, entryPath string) (*ebiten.Image, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entryPath {
			// rardecode streams; buffer so the decoder may seek back
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return decodeImage(bytes.NewReader(data), entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFrom7z(archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return decodeImage(rc, entryPath)
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImage(src PageSource) (*ebiten.Image, error) {
	if src.ArchivePath == "" {
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return decodeImage(f, src.Path)
	}

	switch archiveKind(src.ArchivePath) {
	case "zip":
		return loadImageFromZip(src.ArchivePath, src.EntryPath)
	case "rar":
		return loadImageFromRar(src.ArchivePath, src.EntryPath)
	case "7z":
		return loadImageFrom7z(src.ArchivePath, src.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(src.ArchivePath))
	}
}

// Page collection functions

func archiveEntry(archivePath, name string) PageSource {
	return PageSource{
		Path:        archivePath + ":" + name,
		ArchivePath: archivePath,
		EntryPath:   name,
	}
}

func listZip(archivePath string) ([]PageSource, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var pages []PageSource
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			pages = append(pages, archiveEntry(archivePath, f.Name))
		}
	}
	return pages, nil
}

func listRar(archivePath string) ([]PageSource, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var pages []PageSource
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && isSupportedExt(header.Name) {
			pages = append(pages, archiveEntry(archivePath, header.Name))
		}
	}
	return pages, nil
}

func list7z(archivePath string) ([]PageSource, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var pages []PageSource
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			pages = append(pages, archiveEntry(archivePath, f.Name))
		}
	}
	return pages, nil
}

func processArchive(archivePath string) ([]PageSource, error) {
	var (
		pages []PageSource
		err   error
	)
	switch archiveKind(archivePath) {
	case "zip":
		pages, err = listZip(archivePath)
	case "rar":
		pages, err = listRar(archivePath)
	case "7z":
		pages, err = list7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", filepath.Ext(archivePath))
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}
	return pages, nil
}

// sortPages sorts the given pages using the specified sort strategy.
// Returns a new sorted slice without modifying the original.
func sortPages(pages []PageSource, sortMethod int) []PageSource {
	return GetSortStrategy(sortMethod).Sort(pages)
}

// collectPages expands the command line into an ordered deck. Directories
// are walked, archives are listed, and each group is sorted on its own so
// that argument order is kept.
func collectPages(args []string, sortMethod int) ([]PageSource, error) {
	var list []PageSource
	addArchive := func(path string, into *[]PageSource) {
		pages, err := processArchive(path)
		if err != nil {
			log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
			return
		}
		*into = append(*into, sortPages(pages, sortMethod)...)
	}

	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if isSupportedExt(p) {
				list = append(list, PageSource{Path: p})
			} else if isArchiveExt(p) {
				addArchive(p, &list)
			}
			continue
		}

		var dirPages []PageSource
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			if isSupportedExt(path) {
				dirPages = append(dirPages, PageSource{Path: path})
			} else if isArchiveExt(path) {
				addArchive(path, &dirPages)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		list = append(list, sortPages(dirPages, sortMethod)...)
	}

	return list, nil
}
