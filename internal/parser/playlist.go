package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/antchfx/htmlquery"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

var (
	playlistBlockRe = regexp.MustCompile(`"playlistId":\s*"([0-9A-Za-z_-]+)"(?:.{0,400}?"title":\s*{\s*"simpleText":\s*"([^"]*)")?`)
	playlistCountRe = regexp.MustCompile(`"videoCountShortText":\s*{\s*"simpleText":\s*"([^"]+)"`)
)

// Playlists extracts playlist entries from a channel's playlist index page.
// The entries live in the embedded page data scripts, so the document is
// walked for script nodes and each block is matched individually.
func (p *YouTubeParser) Playlists(resp *types.Response) ([]types.PlaylistMetadata, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, parseError(resp, "playlists", err)
	}

	seen := make(map[string]bool)
	var playlists []types.PlaylistMetadata

	for _, script := range htmlquery.Find(doc, "//script") {
		text := htmlquery.InnerText(script)
		if !bytes.Contains([]byte(text), []byte("playlistId")) {
			continue
		}
		counts := playlistCountRe.FindAllStringSubmatch(text, -1)
		for i, m := range playlistBlockRe.FindAllStringSubmatch(text, -1) {
			id := m[1]
			if seen[id] || len(id) < 13 { // playlist ids are longer than video ids
				continue
			}
			seen[id] = true
			pl := types.PlaylistMetadata{
				PlaylistID:  id,
				Title:       m[2],
				LastUpdated: time.Now(),
			}
			if i < len(counts) {
				pl.VideoCount = digitsOnly(counts[i][1])
			}
			playlists = append(playlists, pl)
		}
	}

	if len(playlists) == 0 {
		return nil, parseError(resp, "playlists", fmt.Errorf("no playlists in page"))
	}
	return playlists, nil
}
