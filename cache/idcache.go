package cache

import (
	"encoding/json"
	"log"
	"os"
	"sort"
)

// IDSet is the working set of discovered movie ids. Ids are only ever added;
// nothing evicts an id once it has been discovered.
type IDSet map[int64]struct{}

// Add inserts an id into the set.
func (s IDSet) Add(id int64) {
	s[id] = struct{}{}
}

// Contains reports whether the id is in the set.
func (s IDSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Values returns the ids as a sorted slice.
func (s IDSet) Values() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IDCache persists the discovered id set across runs as a JSON array of
// integers. Order in the file is not meaningful.
type IDCache struct {
	Path string
}

func NewIDCache(path string) *IDCache {
	return &IDCache{Path: path}
}

// Load reads the persisted id set. A missing or unreadable cache file is not
// an error; it degrades to an empty set so the run starts discovery from
// zero.
func (c *IDCache) Load() IDSet {
	set := make(IDSet)

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Error loading movie IDs cache %s: %v", c.Path, err)
		}
		return set
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("Error decoding movie IDs cache %s: %v", c.Path, err)
		return set
	}

	for _, id := range ids {
		set.Add(id)
	}
	log.Printf("Loaded %d movie IDs from cache", len(set))
	return set
}

// Save persists the full current set, overwriting prior contents. Failure to
// persist is logged but does not affect the in-memory set for this run.
func (c *IDCache) Save(set IDSet) {
	data, err := json.Marshal(set.Values())
	if err != nil {
		log.Printf("Error encoding movie IDs cache: %v", err)
		return
	}

	if err := os.WriteFile(c.Path, data, 0644); err != nil {
		log.Printf("Error saving movie IDs cache %s: %v", c.Path, err)
		return
	}
	log.Printf("Saved %d movie IDs to cache", len(set))
}
