package feedback

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wellca/wellbot/internal/observability/metrics"
)

// fixedClassifier always answers with one sentiment.
type fixedClassifier struct {
	sentiment Sentiment
}

func (f *fixedClassifier) Classify(context.Context, string) (Sentiment, error) {
	return f.sentiment, nil
}

func newTestLog(t *testing.T, classifier Classifier) (*Log, string, string) {
	t.Helper()
	dir := t.TempDir()
	ratings := filepath.Join(dir, "ratings.json")
	reviews := filepath.Join(dir, "improvements.json")
	return NewLog(ratings, reviews, classifier, metrics.New(prometheus.NewRegistry()), nil), ratings, reviews
}

func TestAddRating(t *testing.T) {
	log, ratingsPath, _ := newTestLog(t, nil)

	if _, err := log.AddRating(8); err != nil {
		t.Fatalf("add rating failed: %v", err)
	}
	if _, err := log.AddRating(3); err != nil {
		t.Fatalf("add rating failed: %v", err)
	}

	data, err := os.ReadFile(ratingsPath)
	if err != nil {
		t.Fatalf("read ratings: %v", err)
	}
	var stored []Rating
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("unmarshal ratings: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(stored))
	}
	if stored[0].Score != 8 || stored[1].Score != 3 {
		t.Errorf("ratings out of order: %+v", stored)
	}
	if stored[0].ID == "" || stored[0].ID == stored[1].ID {
		t.Error("ratings must get distinct IDs")
	}
}

func TestAddRatingOutOfRange(t *testing.T) {
	log, ratingsPath, _ := newTestLog(t, nil)

	for _, score := range []int{0, 11, -1} {
		if _, err := log.AddRating(score); err == nil {
			t.Errorf("expected error for score %d", score)
		}
	}
	if _, err := os.Stat(ratingsPath); !os.IsNotExist(err) {
		t.Error("rejected ratings must not be stored")
	}
}

func TestAddReview(t *testing.T) {
	log, _, reviewsPath := newTestLog(t, &fixedClassifier{sentiment: SentimentPositive})

	review, err := log.AddReview(context.Background(), "Great service, very fast!")
	if err != nil {
		t.Fatalf("add review failed: %v", err)
	}
	if review.Sentiment != SentimentPositive {
		t.Errorf("expected positive sentiment, got %q", review.Sentiment)
	}

	data, err := os.ReadFile(reviewsPath)
	if err != nil {
		t.Fatalf("read reviews: %v", err)
	}
	var stored []Review
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("unmarshal reviews: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 review, got %d", len(stored))
	}
	if stored[0].Suggestion != "Great service, very fast!" {
		t.Errorf("suggestion not stored: %+v", stored[0])
	}
}

func TestAddReviewAppendsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ratings := filepath.Join(dir, "ratings.json")
	reviews := filepath.Join(dir, "improvements.json")
	m := metrics.New(prometheus.NewRegistry())

	first := NewLog(ratings, reviews, &fixedClassifier{sentiment: SentimentNeutral}, m, nil)
	if _, err := first.AddReview(context.Background(), "okay"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	second := NewLog(ratings, reviews, &fixedClassifier{sentiment: SentimentNegative}, m, nil)
	if _, err := second.AddReview(context.Background(), "too slow"); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	data, err := os.ReadFile(reviews)
	if err != nil {
		t.Fatalf("read reviews: %v", err)
	}
	var stored []Review
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("unmarshal reviews: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 reviews across instances, got %d", len(stored))
	}
}
