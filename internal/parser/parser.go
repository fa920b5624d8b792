// Package parser turns raw page payloads into typed records. Extraction
// rules here are best-effort against a markup surface that changes without
// notice; failures surface as *types.ParseError and are never swallowed.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// PageParser consumes raw response bodies for a logical operation and
// returns typed records.
type PageParser interface {
	Channel(resp *types.Response) (*types.ChannelMetadata, error)
	Video(resp *types.Response) (*types.VideoMetadata, error)
	VideoEntries(resp *types.Response) ([]types.VideoEntry, error)
	Playlists(resp *types.Response) ([]types.PlaylistMetadata, error)
	Comments(resp *types.Response) ([]types.Comment, error)
	CommunityPosts(resp *types.Response) ([]types.CommunityPost, error)
}

// YouTubeParser implements PageParser for youtube.com page markup.
type YouTubeParser struct {
	logger *slog.Logger
}

// New creates a YouTubeParser.
func New(logger *slog.Logger) *YouTubeParser {
	return &YouTubeParser{logger: logger.With("component", "parser")}
}

func parseError(resp *types.Response, kind string, err error) *types.ParseError {
	url := ""
	if resp != nil {
		url = resp.FinalURL
	}
	return &types.ParseError{URL: url, Kind: kind, Err: err}
}

// decodeEmbeddedJSON decodes the single JSON value that starts at the first
// occurrence of marker+"{" in body. Script-embedded page data is a JS
// assignment, so a streaming decode from the opening brace is more robust
// than trying to regex-match the closing one.
func decodeEmbeddedJSON(body []byte, marker string, v any) error {
	idx := bytes.Index(body, []byte(marker))
	if idx < 0 {
		return fmt.Errorf("marker %q not found", marker)
	}
	if err := decodeJSONValue(body[idx+len(marker):], v); err != nil {
		return fmt.Errorf("after marker %q: %w", marker, err)
	}
	return nil
}

// decodeJSONValue decodes the single JSON object starting at the first '{'
// in b, ignoring whatever trails it.
func decodeJSONValue(b []byte, v any) error {
	start := bytes.IndexByte(b, '{')
	if start < 0 {
		return fmt.Errorf("no JSON object found")
	}
	return json.NewDecoder(bytes.NewReader(b[start:])).Decode(v)
}
