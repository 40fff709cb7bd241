package printf

import (
	"sync"

	"src.shprintf.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[printf] ")

// Backing is a secondary store for compiled formats, consulted on cache
// misses. Implementations must return formats equivalent to what Compile
// would return for the same text.
type Backing interface {
	// Load returns the format compiled from text, or nil if there is none.
	Load(text string) (*Format, error)
	// Save stores a compiled format.
	Save(f *Format) error
}

// Cache maps format strings to compiled formats. Entries are added but never
// removed or replaced. A Cache may be shared by several evaluators.
type Cache struct {
	mu           sync.Mutex
	formats      map[string]*Format
	backing      Backing
	compilations int
}

// NewCache creates a new Cache. The backing may be nil.
func NewCache(backing Backing) *Cache {
	return &Cache{formats: make(map[string]*Format), backing: backing}
}

// Get returns the compiled form of text, compiling it if it is not already
// in the cache. Failed compilations are not cached.
func (c *Cache) Get(text string) (*Format, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.formats[text]; ok {
		return f, nil
	}
	if c.backing != nil {
		f, err := c.backing.Load(text)
		if err != nil {
			logger.Printf("loading %q from backing: %v", text, err)
		} else if f != nil {
			c.formats[text] = f
			return f, nil
		}
	}

	f, err := Compile(text)
	c.compilations++
	if err != nil {
		return nil, err
	}
	logger.Printf("compiled %q into %d directives", text, len(f.Directives))
	c.formats[text] = f
	if c.backing != nil {
		if err := c.backing.Save(f); err != nil {
			logger.Printf("saving %q to backing: %v", text, err)
		}
	}
	return f, nil
}

// Compilations returns the number of times Get has invoked the compiler.
func (c *Cache) Compilations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compilations
}

// Len returns the number of cached formats.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.formats)
}
