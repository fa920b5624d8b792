package parser

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

var (
	subscriberCountRe = regexp.MustCompile(`"subscriberCountText":\s*{\s*"simpleText":\s*"([^"]+)"`)
	channelViewsRe    = regexp.MustCompile(`"viewCountText":\s*{\s*"simpleText":\s*"([^"]+)"`)
	videoCountRe      = regexp.MustCompile(`"videoCountText":\s*{\s*"runs":\s*\[{\s*"text":\s*"([^"]+)"`)
	canonicalIDRe     = regexp.MustCompile(`"(?:browseId|externalId)":\s*"(UC[0-9A-Za-z_-]{22})"`)
	countryRe         = regexp.MustCompile(`"country":\s*"([^"]+)"`)
)

// Channel extracts channel metadata from a channel page: Open Graph meta
// tags for title, description and thumbnail, and the embedded page data
// script blocks for the counters.
func (p *YouTubeParser) Channel(resp *types.Response) (*types.ChannelMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, parseError(resp, "channel", err)
	}

	meta := &types.ChannelMetadata{CustomURL: resp.FinalURL}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		switch prop {
		case "og:title":
			meta.Title = content
		case "og:description":
			meta.Description = content
		case "og:image":
			meta.ThumbnailURL = content
		}
	})

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if meta.SubscriberCount == 0 {
			if m := subscriberCountRe.FindStringSubmatch(text); m != nil {
				meta.SubscriberCount = parseCompactNumber(m[1])
			}
		}
		if meta.ViewCount == 0 {
			if m := channelViewsRe.FindStringSubmatch(text); m != nil {
				meta.ViewCount = digitsOnly(m[1])
			}
		}
		if meta.VideoCount == 0 {
			if m := videoCountRe.FindStringSubmatch(text); m != nil {
				meta.VideoCount = digitsOnly(m[1])
			}
		}
		if meta.ChannelID == "" {
			if m := canonicalIDRe.FindStringSubmatch(text); m != nil {
				meta.ChannelID = m[1]
			}
		}
		if meta.Country == "" {
			if m := countryRe.FindStringSubmatch(text); m != nil {
				meta.Country = m[1]
			}
		}
	})

	if meta.Title == "" && meta.ChannelID == "" {
		return nil, parseError(resp, "channel", fmt.Errorf("no channel metadata in page"))
	}
	return meta, nil
}
