package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FeedJSON serializes profiles as the upstream feed array.
func FeedJSON(profiles []FeedProfile) ([]byte, error) {
	data, err := json.Marshal(profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}
	return data, nil
}

// WriteFeedFile writes feed bytes to feed.json under dir and returns the path.
func WriteFeedFile(dir string, data []byte) (string, error) {
	path := filepath.Join(dir, "feed.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write feed file: %w", err)
	}
	return path, nil
}

// MessyFeedJSON returns a feed whose records abuse the schema the way the
// real upstream does: numeric names, a bare string where a tag list belongs,
// date strings instead of epoch millis, and unknown fields. Loading it must
// succeed with every record kept.
func MessyFeedJSON() []byte {
	return []byte(`[
  {
    "username": "bot-legacy",
    "name": 42,
    "location": null,
    "tags": "automation",
    "post_date": "2024-03-01",
    "follower_count": 9001
  },
  {
    "username": "minimalist",
    "name": "Mina",
    "tags": ["Less"]
  },
  {
    "username": "seconds-epoch",
    "name": "Old Clock",
    "location": "  Tokyo  ",
    "tags": ["Web3", 7, null, "Web3"],
    "post_date": 1700000000
  }
]`)
}
