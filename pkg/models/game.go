package models

// Game represents a single catalog entry for a downloadable game.
// JSON field names match the wire format served to store clients.
type Game struct {
	Name           string   `json:"Name"`
	SourceEncoded  string   `json:"base64"` // base64 re-encoding of URL, second lookup key
	Downloads      int64    `json:"downloads"`
	Genres         []string `json:"genres"`
	URL            string   `json:"URL"`
	ScreenshotsURL string   `json:"screenshots_url"`
	Description    string   `json:"description"`
	Rating         string   `json:"rating"`
	Platform       string   `json:"platform"`
	AddedAt        int64    `json:"joined"` // Unix timestamp, set at creation
	InPackMan      bool     `json:"in_pack_man"`
}

// PublicGame is the projection served to anonymous clients. It must
// never carry the download URL, the encoded source key, or the
// package-manager flag.
type PublicGame struct {
	Name           string   `json:"Name"`
	Downloads      int64    `json:"downloads"`
	Genres         []string `json:"genres"`
	ScreenshotsURL string   `json:"screenshots_url"`
	Description    string   `json:"description"`
	Rating         string   `json:"rating"`
	Platform       string   `json:"platform"`
	AddedAt        int64    `json:"joined"`
}

// InternalGame is the projection used by the admin removal flow. It
// retains the encoded source key so the caller can present a
// selectable deletion handle, but still omits URL and the flag.
type InternalGame struct {
	PublicGame
	SourceEncoded string `json:"base64"`
}

// DownloadGrant is the payload returned when a download is dispensed.
type DownloadGrant struct {
	URL       string `json:"URL"`
	InPackMan bool   `json:"in_pack_man"`
}

// TagFacets aggregates the distinct tag values across the catalog,
// each list ordered by first appearance.
type TagFacets struct {
	Genres    []string `json:"genres"`
	Ratings   []string `json:"ratings"`
	Platforms []string `json:"platforms"`
}
