package resolver

import (
	"errors"
	"testing"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

func TestVideoID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, c := range cases {
		got, err := VideoID(c.in)
		if err != nil {
			t.Errorf("VideoID(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("VideoID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVideoIDInvalid(t *testing.T) {
	for _, in := range []string{"", "not a video", "https://example.com/"} {
		if _, err := VideoID(in); !errors.Is(err, types.ErrInvalidIdentifier) {
			t.Errorf("VideoID(%q) error = %v, want ErrInvalidIdentifier", in, err)
		}
	}
}

func TestChannelHandle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"@SomeCreator", "SomeCreator"},
		{"SomeCreator", "SomeCreator"},
		{"https://www.youtube.com/@SomeCreator", "SomeCreator"},
		{"https://www.youtube.com/c/SomeCreator", "SomeCreator"},
		{"https://www.youtube.com/user/SomeCreator", "SomeCreator"},
		{"https://www.youtube.com/channel/UC1234567890abcdefghijk", "UC1234567890abcdefghijk"},
	}
	for _, c := range cases {
		got, err := ChannelHandle(c.in)
		if err != nil {
			t.Errorf("ChannelHandle(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ChannelHandle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestChannelHandleInvalid(t *testing.T) {
	for _, in := range []string{"", "https://example.com/"} {
		if _, err := ChannelHandle(in); !errors.Is(err, types.ErrInvalidIdentifier) {
			t.Errorf("ChannelHandle(%q) error = %v, want ErrInvalidIdentifier", in, err)
		}
	}
}

func TestChannelCandidatesOrder(t *testing.T) {
	got := ChannelCandidates("https://www.youtube.com/", "name")
	want := []string{
		"https://www.youtube.com/@name",
		"https://www.youtube.com/c/name",
		"https://www.youtube.com/channel/name",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d shapes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("shape[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestListingCandidates(t *testing.T) {
	for _, s := range VideosCandidates("https://yt.test", "name") {
		if s[len(s)-len("/videos"):] != "/videos" {
			t.Errorf("shape %s missing /videos suffix", s)
		}
	}
	for _, s := range PlaylistCandidates("https://yt.test", "name") {
		if s[len(s)-len("/playlists"):] != "/playlists" {
			t.Errorf("shape %s missing /playlists suffix", s)
		}
	}
	for _, s := range CommunityCandidates("https://yt.test", "name") {
		if s[len(s)-len("/community"):] != "/community" {
			t.Errorf("shape %s missing /community suffix", s)
		}
	}
}

func TestWatchURL(t *testing.T) {
	got := WatchURL("https://www.youtube.com", "dQw4w9WgXcQ")
	if got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("WatchURL = %s", got)
	}
}
