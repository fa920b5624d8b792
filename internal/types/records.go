package types

import "time"

// ChannelMetadata describes a channel page.
type ChannelMetadata struct {
	ChannelID       string     `json:"channel_id" bson:"channel_id"`
	Title           string     `json:"title" bson:"title"`
	Description     string     `json:"description" bson:"description"`
	SubscriberCount int64      `json:"subscriber_count" bson:"subscriber_count"`
	VideoCount      int64      `json:"video_count" bson:"video_count"`
	ViewCount       int64      `json:"view_count" bson:"view_count"`
	JoinedDate      *time.Time `json:"joined_date,omitempty" bson:"joined_date,omitempty"`
	Country         string     `json:"country" bson:"country"`
	CustomURL       string     `json:"custom_url" bson:"custom_url"`
	ThumbnailURL    string     `json:"thumbnail_url" bson:"thumbnail_url"`
}

// VideoMetadata describes a single video.
type VideoMetadata struct {
	VideoID      string     `json:"video_id" bson:"video_id"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description" bson:"description"`
	UploadDate   *time.Time `json:"upload_date,omitempty" bson:"upload_date,omitempty"`
	ViewCount    int64      `json:"view_count" bson:"view_count"`
	LikeCount    int64      `json:"like_count" bson:"like_count"`
	CommentCount int64      `json:"comment_count" bson:"comment_count"`
	Duration     int64      `json:"duration" bson:"duration"` // seconds
	Tags         []string   `json:"tags" bson:"tags"`
	ThumbnailURL string     `json:"thumbnail_url" bson:"thumbnail_url"`
	ChannelID    string     `json:"channel_id" bson:"channel_id"`
	ChannelTitle string     `json:"channel_title" bson:"channel_title"`
}

// VideoEntry is a shallow listing-page entry, before the deep fetch.
type VideoEntry struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
}

// Comment describes one comment or reply.
type Comment struct {
	CommentID       string     `json:"comment_id" bson:"comment_id"`
	Text            string     `json:"text" bson:"text"`
	Author          string     `json:"author" bson:"author"`
	AuthorChannelID string     `json:"author_channel_id" bson:"author_channel_id"`
	LikeCount       int64      `json:"like_count" bson:"like_count"`
	ReplyCount      int64      `json:"reply_count" bson:"reply_count"`
	PublishedAt     *time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	IsReply         bool       `json:"is_reply" bson:"is_reply"`
	ParentID        string     `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
}

// CommunityPost describes one post on a channel's community tab.
type CommunityPost struct {
	PostID         string     `json:"post_id" bson:"post_id"`
	Text           string     `json:"text" bson:"text"`
	PublishedAt    *time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	LikeCount      int64      `json:"like_count" bson:"like_count"`
	ReplyCount     int64      `json:"reply_count" bson:"reply_count"`
	AttachmentType string     `json:"attachment_type,omitempty" bson:"attachment_type,omitempty"`
	AttachmentURL  string     `json:"attachment_url,omitempty" bson:"attachment_url,omitempty"`
}

// PlaylistMetadata describes a playlist listing entry.
type PlaylistMetadata struct {
	PlaylistID  string    `json:"playlist_id" bson:"playlist_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	VideoCount  int64     `json:"video_count" bson:"video_count"`
	ViewCount   int64     `json:"view_count" bson:"view_count"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
	ChannelID   string    `json:"channel_id" bson:"channel_id"`
}

// RunStats is the aggregate outcome of one scrape run.
type RunStats struct {
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	TotalItems     int64     `json:"total_items"`
	ProcessedItems int64     `json:"processed_items"`
	SuccessCount   int64     `json:"success_count"`
	ErrorCount     int64     `json:"error_count"`
	RateLimitsHit  int64     `json:"rate_limits_hit"`
	TotalRequests  int64     `json:"total_requests"`
}
