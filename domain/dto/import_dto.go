package dto

// ImportURLRequest imports a single video (or livestream) by URL.
type ImportURLRequest struct {
	URL        string `json:"url"        binding:"required"`
	CategoryID int64  `json:"categoryId" binding:"required"`
}

// ImportKeywordRequest imports videos from a keyword search.
type ImportKeywordRequest struct {
	Keyword    string `json:"keyword"    binding:"required"`
	CategoryID int64  `json:"categoryId" binding:"required"`
	Limit      int64  `json:"limit"`
}

// ImportPlaylistRequest imports videos from a playlist.
type ImportPlaylistRequest struct {
	PlaylistID string `json:"playlistId" binding:"required"`
	CategoryID int64  `json:"categoryId" binding:"required"`
	Limit      int64  `json:"limit"`
}

// ImportChannelRequest imports a channel's uploads (or live broadcasts).
type ImportChannelRequest struct {
	ChannelID  string `json:"channelId"  binding:"required"`
	CategoryID int64  `json:"categoryId" binding:"required"`
	Limit      int64  `json:"limit"`
}

// ImportTrendingRequest imports the trending chart for a region.
type ImportTrendingRequest struct {
	CategoryID int64  `json:"categoryId" binding:"required"`
	Limit      int64  `json:"limit"`
	RegionCode string `json:"regionCode"`
}

// ImportResponse reports how many new records a workflow created.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message,omitempty"`
}

// ErrorResponse is the admin surface's error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
