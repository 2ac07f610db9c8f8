package youtube

import "github.com/ytune-cli/ytune/constant"

// Result is a single playable search hit.
type Result struct {
	ID        string `json:"id" jsonschema:"description=YouTube video ID"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail,omitempty" jsonschema:"description=Medium thumbnail URL; falls back to the default size"`
}

// URL returns the watch page of the video.
func (r *Result) URL() string {
	return constant.YouTubeWatchURL + r.ID
}

// String implements fmt.Stringer.
func (r *Result) String() string {
	return r.Title
}

type thumbnail struct {
	URL string `json:"url"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default *thumbnail `json:"default"`
				Medium  *thumbnail `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (s *searchResponse) results() []*Result {
	results := make([]*Result, 0, len(s.Items))
	for _, item := range s.Items {
		r := &Result{
			ID:      item.ID.VideoID,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
		}

		switch thumbs := item.Snippet.Thumbnails; {
		case thumbs.Medium != nil && thumbs.Medium.URL != "":
			r.Thumbnail = thumbs.Medium.URL
		case thumbs.Default != nil:
			r.Thumbnail = thumbs.Default.URL
		}

		results = append(results, r)
	}

	return results
}
