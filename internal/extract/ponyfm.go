package extract

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"ponyget/internal/httputil"
	"ponyget/internal/media"
)

const (
	ponyFMName    = "ponyfm"
	ponyFMAPIBase = "https://pony.fm/api/web/tracks/"

	lyricsSeparator = "\nLYRICS:\n\n"
)

var ponyFMTrackPattern = regexp.MustCompile(`^https?://pony\.fm/tracks/(?P<id>\d+)-(?P<display_id>[^?]+)`)

// PonyFM extracts tracks from pony.fm through its web API.
type PonyFM struct {
	client  *http.Client
	apiBase string
}

// NewPonyFM creates a Pony.fm extractor. Request policy (timeouts, proxies)
// belongs to client. An empty apiBase selects the public API.
func NewPonyFM(client *http.Client, apiBase string) *PonyFM {
	if client == nil {
		client = httputil.NewClient(0)
	}
	if apiBase == "" {
		apiBase = ponyFMAPIBase
	}
	return &PonyFM{
		client:  client,
		apiBase: apiBase,
	}
}

func (p *PonyFM) Name() string { return ponyFMName }

func (p *PonyFM) Suitable(rawURL string) bool {
	return ponyFMTrackPattern.MatchString(rawURL)
}

// matchID returns the numeric track ID embedded in rawURL.
func matchID(rawURL string) (string, bool) {
	m := ponyFMTrackPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[ponyFMTrackPattern.SubexpIndex("id")], true
}

// Extract fetches and normalizes the track behind rawURL.
func (p *PonyFM) Extract(ctx context.Context, rawURL string) (*media.Track, error) {
	id, ok := matchID(rawURL)
	if !ok {
		return nil, &NoMatchError{URL: rawURL}
	}

	apiURL := p.apiBase + id
	body, err := httputil.GetJSON(ctx, p.client, apiURL)
	if err != nil {
		dlErr := &DownloadError{ID: id, URL: apiURL, Err: err}
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) {
			dlErr.StatusCode = statusErr.StatusCode
		}
		return nil, dlErr
	}

	if !gjson.ValidBytes(body) {
		return nil, &ExtractionError{ID: id, Msg: "failed to parse JSON response"}
	}

	track, err := parseTrack(id, gjson.ParseBytes(body))
	if err != nil {
		return nil, err
	}
	track.WebpageURL = rawURL
	return track, nil
}

// parseTrack maps an API payload onto a Track. Only a missing "track"
// object is an error; every other field degrades to nil.
func parseTrack(id string, payload gjson.Result) (*media.Track, error) {
	data, ok := lookupObject(payload, "track")
	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	uploader := lookupString(data, "user.name")
	uploaderID := lookupInt(data, "user.id")
	uploaderURL := lookupString(data, "user.url")
	publishedAt := lookupString(data, "published_at")

	return &media.Track{
		ID:          id,
		DisplayID:   lookupString(data, "slug"),
		Title:       lookupString(data, "title"),
		Description: joinLyrics(lookupString(data, "description"), lookupString(data, "lyrics")),
		Thumbnails:  parseCovers(data),
		Uploader:    uploader,
		UploaderID:  uploaderID,
		UploaderURL: uploaderURL,
		Channel:     uploader,
		ChannelID:   uploaderID,
		ChannelURL:  uploaderURL,
		Artist:      uploader,
		PublishedAt: publishedAt,
		Timestamp:   unifiedTimestamp(publishedAt),
		UploadDate:  unifiedDate(publishedAt),
		ViewCount:   lookupInt(data, "stats.plays"),
		LikeCount:   lookupInt(data, "stats.favourites"),
		Duration:    lookupFloat(data, "duration"),
		Genre:       lookupString(data, "genre.name"),
		Formats:     parseFormats(data),
		Extractor:   ponyFMName,
	}, nil
}

// parseCovers walks the covers mapping in document order.
func parseCovers(data gjson.Result) []media.Thumbnail {
	thumbnails := []media.Thumbnail{}

	covers, ok := lookupObject(data, "covers")
	if !ok {
		return thumbnails
	}

	covers.ForEach(func(_, value gjson.Result) bool {
		if value.Type != gjson.String {
			return true
		}
		thumbnails = append(thumbnails, media.Thumbnail{
			URL:        value.Str,
			Preference: thumbnailPreference(value.Str),
		})
		return true
	})
	return thumbnails
}

func thumbnailPreference(url string) int {
	if strings.Contains(url, "original") {
		return -1
	}
	return -2
}

// parseFormats returns the formats best-first. Equal preferences keep API order.
func parseFormats(data gjson.Result) []media.Format {
	formats := []media.Format{}

	list, ok := lookupArray(data, "formats")
	if !ok {
		return formats
	}

	list.ForEach(func(_, entry gjson.Result) bool {
		if !entry.IsObject() {
			return true
		}
		ext := lookupString(entry, "extension")
		formats = append(formats, media.Format{
			URL:        lookupString(entry, "url"),
			Ext:        ext,
			Name:       lookupString(entry, "name"),
			Preference: formatPreference(ext),
		})
		return true
	})

	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].Preference > formats[j].Preference
	})
	return formats
}

func formatPreference(ext *string) int {
	if ext != nil && *ext == "mp3" {
		return -2
	}
	return -1
}

// joinLyrics appends lyrics to the description. A missing half reads as empty;
// without lyrics the description is returned alone.
func joinLyrics(description, lyrics *string) *string {
	switch {
	case description == nil && lyrics == nil:
		return nil
	case lyrics == nil:
		return description
	}
	joined := media.String(description) + lyricsSeparator + *lyrics
	return &joined
}
