package tui

import (
	"github.com/spf13/viper"
	"github.com/ytune-cli/ytune/icon"
	"github.com/ytune-cli/ytune/key"
	"github.com/ytune-cli/ytune/style"
	"github.com/ytune-cli/ytune/youtube"
)

// listItem implements list.Item for a search result.
type listItem struct {
	result *youtube.Result

	// playing marks the item that is the current playback target
	playing bool
}

func (t *listItem) Title() string {
	if t.playing {
		return t.result.Title + " " + icon.Get(icon.Music)
	}
	return t.result.Title
}

func (t *listItem) Description() string {
	description := t.result.Channel
	if viper.GetBool(key.TUIShowURLs) {
		description += " " + style.Faint(t.result.URL())
	}
	return description
}

func (t *listItem) FilterValue() string {
	return t.result.Title + " " + t.result.Channel
}
