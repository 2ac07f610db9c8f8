package constant

// YouTube Data API parameters. The search request shape is fixed.
const (
	YouTubeSearchEndpoint = "https://www.googleapis.com/youtube/v3/search"
	YouTubeWatchURL       = "https://www.youtube.com/watch?v="
	YouTubeMaxResults     = 12
	YouTubeContentType    = "video"
)
