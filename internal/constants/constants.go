package constants

import "time"

var CacheTTL = struct {
	GlobalMaps   time.Duration
	KZGOMaps     time.Duration
	HealthReport time.Duration
	WorldRecord  time.Duration
}{
	GlobalMaps:   6 * time.Hour,   // global map pool changes rarely
	KZGOMaps:     6 * time.Hour,   // tiers / bonus counts
	HealthReport: 1 * time.Minute, // GlobalAPI status page
	WorldRecord:  2 * time.Minute, // WRs move slowly, PBs are never cached
}

var RetryConfig = struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	Jitter:      250 * time.Millisecond,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	HealthCheckInterval: 10 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

var PaginationConfig = struct {
	ItemsPerPage int
	Timeout      time.Duration
}{
	ItemsPerPage: 10,
	Timeout:      3 * time.Minute,
}

var APIConfig = struct {
	GlobalAPIBaseURL string
	GlobalAPITimeout time.Duration
	HealthBaseURL    string
	KZGOBaseURL      string
	KZGOTimeout      time.Duration
}{
	GlobalAPIBaseURL: "https://kztimerglobal.com/api/v2.0",
	GlobalAPITimeout: 10 * time.Second,
	HealthBaseURL:    "https://health.global-api.com/api/v1",
	KZGOBaseURL:      "https://kzgo.eu/api",
	KZGOTimeout:      10 * time.Second,
}

var URLConfig = struct {
	KZGOMapURL       string // + map name
	KZGOPlayerURL    string // + SteamID
	KZGOLeaderboard  string // + "?<mode>="
	SteamProfileURL  string // + SteamID64
	MapThumbnailURL  string // + map name + ".jpg"
	DefaultThumbnail string
	ReplayViewURL    string // + replay id
	ReplayDownload   string // + replay id
	HealthStatusPage string
	WorkshopSearch   string // + map name
}{
	KZGOMapURL:       "https://kzgo.eu/maps/",
	KZGOPlayerURL:    "https://kzgo.eu/players/",
	KZGOLeaderboard:  "https://kzgo.eu/leaderboards",
	SteamProfileURL:  "https://steamcommunity.com/profiles/",
	MapThumbnailURL:  "https://raw.githubusercontent.com/KZGlobalTeam/map-images/master/images/",
	DefaultThumbnail: "https://kzgo.eu/kz_default.png",
	ReplayViewURL:    "http://gokzmaptest.site.nfoservers.com/GlobalReplays/?replay=",
	ReplayDownload:   "https://kztimerglobal.com/api/v2.0/records/replay/",
	HealthStatusPage: "https://health.global-api.com/endpoints/_globalapi",
	WorkshopSearch:   "https://steamcommunity.com/workshop/browse/?appid=730&searchtext=",
}

var StringLimits = struct {
	EmbedTitle       int
	EmbedDescription int
	EmbedFieldName   int
	EmbedFieldValue  int
}{
	EmbedTitle:       256,
	EmbedDescription: 4096,
	EmbedFieldName:   256,
	EmbedFieldValue:  1024,
}

var BotInfo = struct {
	Name        string
	IconURL     string
	EmbedColor  int
	InviteScope string
}{
	Name:        "(͡ ͡° ͜ つ ͡͡°)",
	IconURL:     "https://media.discordapp.net/attachments/981130651094900756/1068608508645347408/schnose.png",
	EmbedColor:  0x7480C2,
	InviteScope: "applications.commands%20bot",
}
