package cache

import (
	"sync"
	"time"

	docqa "github.com/m-v-r/docqa"
)

// Key identifies one agent build: the sites-config identity plus the
// tunable parameter tuple. Identical keys reuse the same agent handle.
type Key struct {
	SitesFingerprint string
	Temperature      float32
	MaxTokens        int
	Timeout          time.Duration
	MaxSearchResults int
}

func NewKey(fingerprint string, params docqa.Params) Key {
	return Key{
		SitesFingerprint: fingerprint,
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		Timeout:          params.Timeout,
		MaxSearchResults: params.MaxSearchResults,
	}
}

// Cache memoizes agent instances per key for the life of the process.
// There is no eviction; the key space is a handful of parameter tuples.
type Cache struct {
	agents map[Key]*docqa.Agent
	mtx    sync.Mutex
}

// GetOrCreate returns the cached agent for key, building and storing one
// with build on a miss. The boolean reports a cache hit. Builds run under
// the lock so a key is only ever built once.
func (c *Cache) GetOrCreate(key Key, build func() (*docqa.Agent, error)) (*docqa.Agent, bool, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if agent, ok := c.agents[key]; ok {
		return agent, true, nil
	}

	agent, err := build()
	if err != nil {
		return nil, false, err
	}

	c.agents[key] = agent

	return agent, false, nil
}

func (c *Cache) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.agents)
}

func New() *Cache {
	return &Cache{
		agents: map[Key]*docqa.Agent{},
		mtx:    sync.Mutex{},
	}
}
