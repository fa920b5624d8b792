package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// playerResponse mirrors the slice of ytInitialPlayerResponse we consume.
type playerResponse struct {
	VideoDetails struct {
		VideoID          string   `json:"videoId"`
		Title            string   `json:"title"`
		ShortDescription string   `json:"shortDescription"`
		LengthSeconds    string   `json:"lengthSeconds"`
		Keywords         []string `json:"keywords"`
		ChannelID        string   `json:"channelId"`
		Author           string   `json:"author"`
		ViewCount        string   `json:"viewCount"`
		Thumbnail        struct {
			Thumbnails []struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
	Microformat struct {
		PlayerMicroformatRenderer struct {
			PublishDate string `json:"publishDate"`
			UploadDate  string `json:"uploadDate"`
			LikeCount   string `json:"likeCount"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
}

var (
	likeLabelRe    = regexp.MustCompile(`"label":\s*"([\d,.KMB]+) likes?"`)
	commentCountRe = regexp.MustCompile(`"commentCount":\s*{\s*"simpleText":\s*"([^"]+)"`)
	videoIDListRe  = regexp.MustCompile(`"videoId":\s*"([0-9A-Za-z_-]{11})"`)
)

// Video extracts video metadata from a watch page's embedded player response.
func (p *YouTubeParser) Video(resp *types.Response) (*types.VideoMetadata, error) {
	var pr playerResponse
	if err := decodeEmbeddedJSON(resp.Body, "ytInitialPlayerResponse", &pr); err != nil {
		return nil, parseError(resp, "video", err)
	}
	if pr.VideoDetails.VideoID == "" {
		return nil, parseError(resp, "video", fmt.Errorf("player response has no video details"))
	}

	d := pr.VideoDetails
	meta := &types.VideoMetadata{
		VideoID:      d.VideoID,
		Title:        d.Title,
		Description:  d.ShortDescription,
		Tags:         d.Keywords,
		ChannelID:    d.ChannelID,
		ChannelTitle: d.Author,
	}
	meta.ViewCount, _ = strconv.ParseInt(d.ViewCount, 10, 64)
	meta.Duration, _ = strconv.ParseInt(d.LengthSeconds, 10, 64)
	if len(d.Thumbnail.Thumbnails) > 0 {
		meta.ThumbnailURL = d.Thumbnail.Thumbnails[len(d.Thumbnail.Thumbnails)-1].URL
	}

	mf := pr.Microformat.PlayerMicroformatRenderer
	if mf.PublishDate != "" {
		meta.UploadDate = parseDate(mf.PublishDate)
	} else if mf.UploadDate != "" {
		meta.UploadDate = parseDate(mf.UploadDate)
	}
	if mf.LikeCount != "" {
		meta.LikeCount, _ = strconv.ParseInt(mf.LikeCount, 10, 64)
	} else if m := likeLabelRe.FindSubmatch(resp.Body); m != nil {
		meta.LikeCount = parseCompactNumber(string(m[1]))
	}
	if m := commentCountRe.FindSubmatch(resp.Body); m != nil {
		meta.CommentCount = parseCompactNumber(string(m[1]))
	}

	return meta, nil
}

// VideoEntries extracts the shallow video list from a channel videos tab, in
// page order, deduplicated. Titles are left to the per-video deep fetch.
func (p *YouTubeParser) VideoEntries(resp *types.Response) ([]types.VideoEntry, error) {
	matches := videoIDListRe.FindAllSubmatch(resp.Body, -1)
	if len(matches) == 0 {
		return nil, parseError(resp, "video_entries", fmt.Errorf("no video entries in page"))
	}

	seen := make(map[string]bool, len(matches))
	entries := make([]types.VideoEntry, 0, len(matches))
	for _, m := range matches {
		id := string(m[1])
		if seen[id] {
			continue
		}
		seen[id] = true
		entries = append(entries, types.VideoEntry{VideoID: id})
	}
	return entries, nil
}
