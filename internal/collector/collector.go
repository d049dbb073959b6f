// Package collector accumulates normalized alert records in memory for
// the reporting loop to drain.
package collector

import (
	"sort"
	"sync"

	"github.com/howl-sh/howl/internal/alert"
)

// Collector keeps the latest record per (cluster, alert name). It
// implements alert.Sink and is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	records map[string]map[string]alert.Record
}

func New() *Collector {
	return &Collector{
		records: make(map[string]map[string]alert.Record),
	}
}

// Put stores a record, replacing any previous record for the same alert
// in the same cluster.
func (c *Collector) Put(cluster string, rec alert.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byName, ok := c.records[cluster]
	if !ok {
		byName = make(map[string]alert.Record)
		c.records[cluster] = byName
	}
	byName[rec.Name] = rec
}

// Drain returns all stored records and clears the collector.
func (c *Collector) Drain() []alert.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.collect()
	c.records = make(map[string]map[string]alert.Record)
	return out
}

// Snapshot returns all stored records without clearing them.
func (c *Collector) Snapshot() []alert.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collect()
}

// collect flattens the record maps into a deterministic order. Caller
// holds the lock.
func (c *Collector) collect() []alert.Record {
	var out []alert.Record
	for _, byName := range c.records {
		for _, rec := range byName {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cluster != out[j].Cluster {
			return out[i].Cluster < out[j].Cluster
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Tee fans a single Put out to several sinks in order.
type Tee []alert.Sink

func (t Tee) Put(cluster string, rec alert.Record) {
	for _, s := range t {
		s.Put(cluster, rec)
	}
}
