// Package media defines shared types for the ponyget application.
package media

import "strings"

// Track is the normalized media-item record for a single audio track.
// Optional fields are pointers; nil encodes as JSON null.
type Track struct {
	ID          string      `json:"id"`
	DisplayID   *string     `json:"display_id"`
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Thumbnails  []Thumbnail `json:"thumbnails"`

	Uploader    *string `json:"uploader"`
	UploaderID  *int64  `json:"uploader_id"`
	UploaderURL *string `json:"uploader_url"`
	Channel     *string `json:"channel"`
	ChannelID   *int64  `json:"channel_id"`
	ChannelURL  *string `json:"channel_url"`
	Artist      *string `json:"artist"`

	PublishedAt *string `json:"published_at"` // Raw API value
	Timestamp   *int64  `json:"timestamp"`    // Unix seconds, UTC
	UploadDate  *string `json:"upload_date"`  // YYYYMMDD, UTC

	ViewCount *int64   `json:"view_count"`
	LikeCount *int64   `json:"like_count"`
	Duration  *float64 `json:"duration"` // Seconds
	Genre     *string  `json:"genre"`

	Formats []Format `json:"formats"`

	Extractor  string `json:"extractor"`
	WebpageURL string `json:"webpage_url"`
}

// Thumbnail is one cover image. Higher preference wins.
type Thumbnail struct {
	URL        string `json:"url"`
	Preference int    `json:"preference"`
}

// Format is one downloadable encoding of a track. Higher preference wins.
type Format struct {
	URL        *string `json:"url"`
	Ext        *string `json:"ext"`
	Name       *string `json:"format"`
	Preference int     `json:"preference"`
}

// BestFormat returns the format whose extension matches want (case-insensitive).
// With want empty or "best", or without a match, the highest-preference format is
// returned, earliest first on ties. Formats without a URL are never chosen.
func BestFormat(formats []Format, want string) *Format {
	want = strings.ToLower(strings.TrimSpace(want))

	if want != "" && want != "best" {
		for i := range formats {
			f := &formats[i]
			if f.URL != nil && f.Ext != nil && strings.ToLower(*f.Ext) == want {
				return f
			}
		}
	}

	var best *Format
	for i := range formats {
		f := &formats[i]
		if f.URL == nil {
			continue
		}
		if best == nil || f.Preference > best.Preference {
			best = f
		}
	}
	return best
}

// HistoryEntry represents a single completed download.
type HistoryEntry struct {
	ID       string // Track ID
	Title    string // Display title
	Uploader string
	Ext      string // Downloaded format extension
	Path     string // Absolute path of the downloaded file
	Size     int64  // Bytes written
}

// String returns v or "" when nil.
func String(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
