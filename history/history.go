// Package history records the tracks that started playing.
package history

import (
	"sort"
	"time"

	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/filesystem"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/where"
	"github.com/ytune-cli/ytune/youtube"
)

// Entry is one remembered track.
type Entry struct {
	youtube.Result
	PlayedAt time.Time `json:"played_at"`
	Plays    int       `json:"plays"`
}

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// now is replaced in tests.
var now = time.Now

// Get returns every entry keyed by video ID.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records that r started playing. Once more than history.limit
// entries are stored the least recently played ones are dropped.
func Save(r *youtube.Result) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	entry, ok := saved[r.ID]
	if !ok {
		entry = &Entry{}
		saved[r.ID] = entry
	}

	// titles and thumbnails change, keep the latest
	entry.Result = *r
	entry.PlayedAt = now()
	entry.Plays++

	if limit := viper.GetInt(key.HistoryLimit); limit > 0 && len(saved) > limit {
		for _, stale := range sorted(saved)[limit:] {
			delete(saved, stale.ID)
		}
	}

	return cacher.Set(saved)
}

// Recent returns up to n entries, most recently played first. n <= 0 means all.
func Recent(n int) ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := sorted(saved)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Remove forgets the track with the given video ID.
func Remove(id string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, id)
	return cacher.Set(saved)
}

func sorted(saved map[string]*Entry) []*Entry {
	entries := make([]*Entry, 0, len(saved))
	for _, e := range saved {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PlayedAt.Equal(entries[j].PlayedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].PlayedAt.After(entries[j].PlayedAt)
	})

	return entries
}
