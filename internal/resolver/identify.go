// Package resolver turns user-supplied locators into logical identifiers and
// tries the alternative request shapes for each logical target in order.
package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// Identifier resolution happens before any network step; an unrecognizable
// locator fails the operation immediately and is never retried.

var bareVideoIDRe = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[?&#/]|$)`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`shorts/([0-9A-Za-z_-]{11})`),
}

var channelIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`channel/([0-9A-Za-z_-]+)`),
	regexp.MustCompile(`c/([0-9A-Za-z_.-]+)`),
	regexp.MustCompile(`user/([0-9A-Za-z_.-]+)`),
	regexp.MustCompile(`@([0-9A-Za-z_.-]+)`),
}

// VideoID extracts the 11-character video identifier from any of the common
// URL forms (watch, short link, embed, shorts). A bare 11-character ID is
// accepted as-is.
func VideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if bareVideoIDRe.MatchString(raw) {
		return raw, nil
	}
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrInvalidIdentifier, raw)
}

// ChannelHandle extracts the channel handle or id from any of the common
// channel URL forms. A bare handle (with or without a leading @) is accepted.
func ChannelHandle(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, p := range channelIDPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], nil
		}
	}
	if raw != "" && !strings.ContainsAny(raw, "/?#:") {
		return strings.TrimPrefix(raw, "@"), nil
	}
	return "", fmt.Errorf("%w: %q", types.ErrInvalidIdentifier, raw)
}

// WatchURL builds the canonical watch page URL for a video id.
func WatchURL(base, videoID string) string {
	return fmt.Sprintf("%s/watch?v=%s", strings.TrimSuffix(base, "/"), videoID)
}

// ChannelCandidates returns the ordered request shapes for a channel handle:
// the modern handle form, then the legacy custom and canonical forms.
func ChannelCandidates(base, handle string) []string {
	base = strings.TrimSuffix(base, "/")
	return []string{
		fmt.Sprintf("%s/@%s", base, handle),
		fmt.Sprintf("%s/c/%s", base, handle),
		fmt.Sprintf("%s/channel/%s", base, handle),
	}
}

// VideosCandidates returns the ordered shapes for a channel's videos tab.
func VideosCandidates(base, handle string) []string {
	shapes := ChannelCandidates(base, handle)
	for i, s := range shapes {
		shapes[i] = s + "/videos"
	}
	return shapes
}

// CommunityCandidates returns the ordered shapes for a channel's community tab.
func CommunityCandidates(base, handle string) []string {
	shapes := ChannelCandidates(base, handle)
	for i, s := range shapes {
		shapes[i] = s + "/community"
	}
	return shapes
}

// PlaylistCandidates returns the ordered shapes for a channel's playlist index.
func PlaylistCandidates(base, handle string) []string {
	shapes := ChannelCandidates(base, handle)
	for i, s := range shapes {
		shapes[i] = s + "/playlists"
	}
	return shapes
}
