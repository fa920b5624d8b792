package storage

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

func TestWriterJSON(t *testing.T) {
	dir := t.TempDir()
	w, err := NewRunWriter(dir, "json", slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta := &types.ChannelMetadata{ChannelID: "UCtest", Title: "Test Channel", SubscriberCount: 100}
	path, err := w.Write("channel", meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "channel.json") {
		t.Errorf("path = %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got types.ChannelMetadata
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if got.ChannelID != "UCtest" || got.SubscriberCount != 100 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestWriterCSVRecordList(t *testing.T) {
	dir := t.TempDir()
	w, err := NewRunWriter(dir, "csv", slog.Default())
	if err != nil {
		t.Fatal(err)
	}

	videos := []types.VideoMetadata{
		{VideoID: "aaaaaaaaaaa", Title: "First", ViewCount: 10},
		{VideoID: "bbbbbbbbbbb", Title: "Second", ViewCount: 20},
	}
	path, err := w.Write("videos", videos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("written file is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}

	headers := rows[0]
	for i := 1; i < len(headers); i++ {
		if headers[i-1] >= headers[i] {
			t.Fatalf("headers not sorted: %v", headers)
		}
	}

	col := -1
	for i, h := range headers {
		if h == "video_id" {
			col = i
		}
	}
	if col < 0 {
		t.Fatalf("no video_id column in %v", headers)
	}
	if rows[1][col] != "aaaaaaaaaaa" || rows[2][col] != "bbbbbbbbbbb" {
		t.Errorf("rows out of order: %v", rows[1:])
	}
}

func TestWriterSpreadsheetAliasesCSV(t *testing.T) {
	dir := t.TempDir()
	w, err := NewRunWriter(dir, "spreadsheet", slog.Default())
	if err != nil {
		t.Fatal(err)
	}

	path, err := w.Write("stats", types.RunStats{TotalRequests: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Ext(path) != ".csv" {
		t.Errorf("spreadsheet format wrote %s, want a .csv file", path)
	}
}

func TestWriterSingleRecordCSV(t *testing.T) {
	dir := t.TempDir()
	w, err := NewRunWriter(dir, "csv", slog.Default())
	if err != nil {
		t.Fatal(err)
	}

	path, err := w.Write("stats", types.RunStats{TotalRequests: 7, SuccessCount: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}

	for i, h := range rows[0] {
		if h == "total_requests" && rows[1][i] != "7" {
			t.Errorf("total_requests = %q, want 7", rows[1][i])
		}
	}
}

func TestWriterCreatesRunDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "output")

	w, err := NewRunWriter(dir, "json", slog.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(w.RunDir())
	if err != nil || !info.IsDir() {
		t.Fatalf("run dir not created: %v", err)
	}
	if filepath.Dir(w.RunDir()) != dir {
		t.Errorf("run dir %s not under %s", w.RunDir(), dir)
	}
}
