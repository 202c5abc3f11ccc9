// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog - these keys select and tune the provider that serves videos and advertisements.
const (
	CatalogSource   = "catalog.source"
	CatalogURL      = "catalog.url"
	CatalogCacheTTL = "catalog.cache_ttl"
	CatalogPageSize = "catalog.page_size"
)

// Advertising - these keys govern which ad breaks the player inserts and how.
const (
	AdsEnabled       = "ads.enabled"
	AdsSlots         = "ads.slots"
	AdsMidrollPolicy = "ads.midroll_policy"
	AdsEndTolerance  = "ads.end_tolerance"
)

// Media Playback - these keys configure the external player backend.
const (
	Player         = "player.default"
	PlayerSeekStep = "player.seek_step"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the browse screen's styling and logic.
const (
	TUIItemSpacing     = "tui.item_spacing"
	TUIShowCategories  = "tui.show_categories"
	TUIControlsTimeout = "tui.controls_timeout"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
