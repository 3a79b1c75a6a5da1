package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var (
	ErrUnsupportedFormat = errors.New("asset: unsupported image format")
	ErrBadRegion         = errors.New("asset: bad sub-image region")
	ErrClosed            = errors.New("asset: cache closed")
)

var supportedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Cache loads images relative to a root directory and keeps them until Close
// Keys are "path" or "path|x,y,w,h" for a region of the file
type Cache struct {
	mu     sync.Mutex
	root   string
	files  map[string]image.Image // Decoded files by path
	images map[string]image.Image // Resolved keys
	closed bool
}

// NewCache creates a cache rooted at dir
func NewCache(root string) *Cache {
	return &Cache{
		root:   root,
		files:  make(map[string]image.Image),
		images: make(map[string]image.Image),
	}
}

// Image resolves a key, decoding the file on first use
func (c *Cache) Image(key string) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if img, ok := c.images[key]; ok {
		return img, nil
	}

	path, region, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	img, err := c.file(path)
	if err != nil {
		return nil, err
	}
	if region != nil {
		r := region.Add(img.Bounds().Min)
		if !r.In(img.Bounds()) {
			return nil, fmt.Errorf("%w: %v outside %v in %q", ErrBadRegion, *region, img.Bounds(), path)
		}
		si, ok := img.(subImager)
		if !ok {
			return nil, fmt.Errorf("%w: %q does not support regions", ErrUnsupportedFormat, path)
		}
		img = si.SubImage(r)
	}
	c.images[key] = img
	return img, nil
}

func (c *Cache) file(path string) (image.Image, error) {
	if img, ok := c.files[path]; ok {
		return img, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExt[ext] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	img, err := loadImage(filepath.Join(c.root, path))
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", path, err)
	}
	c.files[path] = img
	return img, nil
}

// Len returns the number of resolved keys
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Close drops every cached image, later lookups fail with ErrClosed
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.files)
	clear(c.images)
	c.closed = true
}

// ParseKey splits "path|x,y,w,h", region is nil without a suffix
func ParseKey(key string) (string, *image.Rectangle, error) {
	path, coords, found := strings.Cut(key, "|")
	if !found {
		return key, nil, nil
	}
	parts := strings.Split(coords, ",")
	if len(parts) != 4 {
		return "", nil, fmt.Errorf("%w: %q", ErrBadRegion, key)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", nil, fmt.Errorf("%w: %q: %v", ErrBadRegion, key, err)
		}
		v[i] = n
	}
	if v[0] < 0 || v[1] < 0 || v[2] <= 0 || v[3] <= 0 {
		return "", nil, fmt.Errorf("%w: %q", ErrBadRegion, key)
	}
	r := image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3])
	return path, &r, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
