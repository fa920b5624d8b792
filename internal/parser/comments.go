package parser

import (
	"bytes"
	"fmt"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// commentRenderer mirrors the slice of the embedded comment payload we read.
type commentRenderer struct {
	CommentID  string `json:"commentId"`
	AuthorText struct {
		SimpleText string `json:"simpleText"`
	} `json:"authorText"`
	AuthorEndpoint struct {
		BrowseEndpoint struct {
			BrowseID string `json:"browseId"`
		} `json:"browseEndpoint"`
	} `json:"authorEndpoint"`
	ContentText struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"contentText"`
	PublishedTimeText struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"publishedTimeText"`
	VoteCount struct {
		SimpleText string `json:"simpleText"`
	} `json:"voteCount"`
	ReplyCount int64 `json:"replyCount"`
}

// Comments extracts whatever comment payload is embedded in the page. Reply
// nesting is not reconstructed from the flat stream; entries after the first
// that carry no reply count of their own are attributed as replies by the
// caller when it asks for them.
func (p *YouTubeParser) Comments(resp *types.Response) ([]types.Comment, error) {
	marker := []byte(`"commentRenderer":`)
	body := resp.Body

	var comments []types.Comment
	for offset := 0; ; {
		idx := bytes.Index(body[offset:], marker)
		if idx < 0 {
			break
		}
		offset += idx + len(marker)

		var cr commentRenderer
		if err := decodeJSONValue(body[offset:], &cr); err != nil || cr.CommentID == "" {
			continue
		}

		c := types.Comment{
			CommentID:       cr.CommentID,
			Author:          cr.AuthorText.SimpleText,
			AuthorChannelID: cr.AuthorEndpoint.BrowseEndpoint.BrowseID,
			LikeCount:       parseCompactNumber(cr.VoteCount.SimpleText),
			ReplyCount:      cr.ReplyCount,
		}
		var text bytes.Buffer
		for _, run := range cr.ContentText.Runs {
			text.WriteString(run.Text)
		}
		c.Text = text.String()
		comments = append(comments, c)
	}

	if len(comments) == 0 {
		return nil, parseError(resp, "comments", fmt.Errorf("no comment data in page"))
	}
	return comments, nil
}
