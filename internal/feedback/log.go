// Package feedback stores service ratings and review suggestions in
// append-only JSON logs and classifies review sentiment.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellca/wellbot/internal/observability/metrics"
)

// Rating is one stored service rating.
type Rating struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is one stored improvement suggestion with its sentiment.
type Review struct {
	ID         string    `json:"id"`
	Suggestion string    `json:"suggestion"`
	Sentiment  Sentiment `json:"sentiment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Log appends ratings and reviews to their JSON files.
type Log struct {
	ratingsPath string
	reviewsPath string
	classifier  Classifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewLog creates a feedback log.
func NewLog(ratingsPath, reviewsPath string, classifier Classifier, m *metrics.Metrics, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if classifier == nil {
		classifier = &LexiconClassifier{}
	}
	return &Log{
		ratingsPath: ratingsPath,
		reviewsPath: reviewsPath,
		classifier:  classifier,
		metrics:     m,
		logger:      logger,
	}
}

// AddRating validates and stores a 1-10 service rating.
func (l *Log) AddRating(score int) (*Rating, error) {
	if score < 1 || score > 10 {
		return nil, errors.New("rating must be between 1 and 10")
	}

	rating := Rating{
		ID:        uuid.New().String(),
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	var ratings []Rating
	loadList(l.ratingsPath, &ratings, l.logger)
	ratings = append(ratings, rating)
	if err := saveList(l.ratingsPath, ratings); err != nil {
		return nil, err
	}

	l.metrics.FeedbackEntries.WithLabelValues("rating").Inc()
	l.logger.Info("rating stored", zap.Int("score", score))
	return &rating, nil
}

// AddReview classifies and stores an improvement suggestion. The review
// is stored even when classification fails; it just carries a neutral
// sentiment in that case.
func (l *Log) AddReview(ctx context.Context, suggestion string) (*Review, error) {
	if suggestion == "" {
		return nil, errors.New("review must not be empty")
	}

	sentiment, err := l.classifier.Classify(ctx, suggestion)
	if err != nil {
		l.logger.Warn("sentiment classification failed", zap.Error(err))
		sentiment = SentimentNeutral
	}

	review := Review{
		ID:         uuid.New().String(),
		Suggestion: suggestion,
		Sentiment:  sentiment,
		CreatedAt:  time.Now().UTC(),
	}

	var reviews []Review
	loadList(l.reviewsPath, &reviews, l.logger)
	reviews = append(reviews, review)
	if err := saveList(l.reviewsPath, reviews); err != nil {
		return nil, err
	}

	l.metrics.FeedbackEntries.WithLabelValues("review").Inc()
	l.logger.Info("review stored", zap.String("sentiment", string(sentiment)))
	return &review, nil
}

// loadList reads a JSON list, leaving v empty when the file is absent
// or malformed.
func loadList(path string, v interface{}, logger *zap.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("feedback file malformed, starting fresh",
			zap.String("path", path), zap.Error(err))
	}
}

func saveList(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".feedback-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write feedback: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace feedback file: %w", err)
	}
	return nil
}
