package parser

import (
	"bytes"
	"fmt"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// backstagePostRenderer mirrors the slice of the embedded community post
// payload we read.
type backstagePostRenderer struct {
	PostID      string `json:"postId"`
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
	ActionButtons struct {
		CommentActionButtonsRenderer struct {
			ReplyButton struct {
				ButtonRenderer struct {
					Text struct {
						SimpleText string `json:"simpleText"`
					} `json:"text"`
				} `json:"buttonRenderer"`
			} `json:"replyButton"`
		} `json:"commentActionButtonsRenderer"`
	} `json:"actionButtons"`
	BackstageAttachment struct {
		BackstageImageRenderer struct {
			Image struct {
				Thumbnails []struct {
					URL string `json:"url"`
				} `json:"thumbnails"`
			} `json:"image"`
		} `json:"backstageImageRenderer"`
		VideoRenderer struct {
			VideoID string `json:"videoId"`
		} `json:"videoRenderer"`
	} `json:"backstageAttachment"`
}

// CommunityPosts extracts the posts embedded in a channel's community tab.
// Like counts and reply counts are display strings on the rendered buttons,
// so whatever the page shows is what the record carries.
func (p *YouTubeParser) CommunityPosts(resp *types.Response) ([]types.CommunityPost, error) {
	marker := []byte(`"backstagePostRenderer":`)
	body := resp.Body

	var posts []types.CommunityPost
	for offset := 0; ; {
		idx := bytes.Index(body[offset:], marker)
		if idx < 0 {
			break
		}
		offset += idx + len(marker)

		var pr backstagePostRenderer
		if err := decodeJSONValue(body[offset:], &pr); err != nil || pr.PostID == "" {
			continue
		}

		post := types.CommunityPost{
			PostID:     pr.PostID,
			LikeCount:  parseCompactNumber(pr.VoteCount.SimpleText),
			ReplyCount: digitsOnly(pr.ActionButtons.CommentActionButtonsRenderer.ReplyButton.ButtonRenderer.Text.SimpleText),
		}
		var text bytes.Buffer
		for _, run := range pr.ContentText.Runs {
			text.WriteString(run.Text)
		}
		post.Text = text.String()
		for _, run := range pr.PublishedTimeText.Runs {
			if t := parseDate(run.Text); t != nil {
				post.PublishedAt = t
				break
			}
		}

		switch {
		case pr.BackstageAttachment.VideoRenderer.VideoID != "":
			post.AttachmentType = "video"
			post.AttachmentURL = "/watch?v=" + pr.BackstageAttachment.VideoRenderer.VideoID
		case len(pr.BackstageAttachment.BackstageImageRenderer.Image.Thumbnails) > 0:
			thumbs := pr.BackstageAttachment.BackstageImageRenderer.Image.Thumbnails
			post.AttachmentType = "image"
			post.AttachmentURL = thumbs[len(thumbs)-1].URL
		}
		posts = append(posts, post)
	}

	if len(posts) == 0 {
		return nil, parseError(resp, "community_posts", fmt.Errorf("no community post data in page"))
	}
	return posts, nil
}
