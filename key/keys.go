// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// YouTube Data API - credentials for the search endpoint.
const (
	YouTubeAPIKey = "youtube.api_key"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Playback History - these keys govern the record of played tracks.
const (
	HistorySaveOnPlay = "history.save_on_play"
	HistoryLimit      = "history.limit"
)

// Media Playback - these keys select and tune the external player backend.
const (
	PlayerBackend      = "player.backend"
	PlayerExecutable   = "player.executable"
	PlayerReadyTimeout = "player.ready_timeout"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
)

// HTTP API - these keys configure the serve command.
const (
	ServeAddress        = "serve.address"
	ServeAllowedOrigins = "serve.allowed_origins"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
