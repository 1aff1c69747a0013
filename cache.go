package overdose

import (
	"os"
	"sync"
	"time"
)

// Cache memoizes prepared tables by source path for the life of the
// process. A table is rebuilt only when the file's modification time
// changes; otherwise repeated calls return the same immutable table
// without re-reading the source.
type Cache struct {
	mu     sync.Mutex
	schema *Schema
	tables map[string]*cacheEntry
}

type cacheEntry struct {
	table   *Table
	modTime time.Time
}

func NewCache(sch *Schema) *Cache {
	if sch == nil {
		sch = DefaultSchema()
	}

	return &Cache{schema: sch, tables: make(map[string]*cacheEntry)}
}

func (c *Cache) Table(path string) (*Table, error) {
	var (
		fi os.FileInfo
		e  error
	)
	if fi, e = os.Stat(path); e != nil {
		return nil, e
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.tables[path]; ok && ent.modTime.Equal(fi.ModTime()) {
		return ent.table, nil
	}

	var tbl *Table
	if tbl, e = LoadFile(path, c.schema); e != nil {
		return nil, e
	}

	c.tables[path] = &cacheEntry{table: tbl, modTime: fi.ModTime()}

	return tbl, nil
}

// Drop forgets one path; the next Table call re-reads the source.
func (c *Cache) Drop(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.tables, path)
}
