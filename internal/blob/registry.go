// Package blob holds transient in-memory references backing uploaded images.
//
// Each upload gets a "blob:<uuid>" URL that stays resolvable until it is
// released. Releasing is idempotent; the registry counts releases so leaks
// and double releases can be detected after teardown.
package blob

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/wailsapp/mimetype"
)

// Scheme prefixes every URL handed out by a Registry.
const Scheme = "blob:"

var (
	ErrNotImage = errors.New("please select an image file")
	ErrEmpty    = errors.New("empty upload")
)

// Object is one live reference.
type Object struct {
	URL      string
	MIMEType string
	Data     []byte
}

// Registry owns the live references.
type Registry struct {
	mu       sync.Mutex
	objects  map[string]Object
	released int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[string]Object)}
}

// IsBlobURL reports whether url was minted by a Registry.
func IsBlobURL(url string) bool {
	return strings.HasPrefix(url, Scheme)
}

// Create stores data and returns its URL. Only image content is accepted.
func (r *Registry) Create(data []byte) (Object, error) {
	if len(data) == 0 {
		return Object{}, ErrEmpty
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Object{}, fmt.Errorf("%w (got %s)", ErrNotImage, mt.String())
	}
	obj := Object{
		URL:      Scheme + uuid.NewString(),
		MIMEType: mt.String(),
		Data:     append([]byte(nil), data...),
	}
	r.mu.Lock()
	r.objects[obj.URL] = obj
	r.mu.Unlock()
	return obj, nil
}

// Resolve returns the object behind url if it is still live.
func (r *Registry) Resolve(url string) (Object, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj, ok := r.objects[url]
	return obj, ok
}

// Release drops the reference behind url. It reports whether a live
// reference was released; unknown, foreign and already released URLs are
// ignored.
func (r *Registry) Release(url string) bool {
	if !IsBlobURL(url) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.objects[url]; !ok {
		return false
	}
	delete(r.objects, url)
	r.released++
	return true
}

// Live returns the number of references not yet released.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

// Released returns how many references have been released so far.
func (r *Registry) Released() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

// ReleaseAll drops every live reference, used on shutdown.
func (r *Registry) ReleaseAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.objects)
	clear(r.objects)
	r.released += n
	return n
}
