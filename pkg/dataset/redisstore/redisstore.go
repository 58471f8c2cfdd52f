// Package redisstore keeps the question archive in a Redis list so several
// runs can share one imported dataset.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/zpam/naive-classifier/pkg/dataset"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
)

// Config holds Redis connection settings
type Config struct {
	RedisURL    string `yaml:"redis_url"`
	KeyPrefix   string `yaml:"key_prefix"`
	DatabaseNum int    `yaml:"database_num"`
	BatchSize   int    `yaml:"batch_size"`
}

// DefaultConfig returns default Redis settings
func DefaultConfig() *Config {
	return &Config{
		RedisURL:    "redis://localhost:6379",
		KeyPrefix:   "naive:jeopardy",
		DatabaseNum: 0,
		BatchSize:   500,
	}
}

// Store is a dataset.Store backed by a Redis list of JSON encoded questions
type Store struct {
	client *redis.Client
	config *Config
}

var _ dataset.Store = (*Store)(nil)

// New connects to Redis and returns a store
func New(ctx context.Context, config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Redis URL")
	}
	opt.DB = config.DatabaseNum
	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "Redis connection failed")
	}

	return &Store{client: client, config: config}, nil
}

// Save appends questions to the list in pipelined batches
func (s *Store) Save(ctx context.Context, questions []*jeopardy.Question) error {
	batch := s.config.BatchSize
	if batch < 1 {
		batch = 1
	}

	key := s.questionsKey()
	for start := 0; start < len(questions); start += batch {
		end := min(start+batch, len(questions))

		pipe := s.client.Pipeline()
		for _, q := range questions[start:end] {
			data, err := json.Marshal(q)
			if err != nil {
				return errors.Wrap(err, "encoding question")
			}
			pipe.RPush(ctx, key, data)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return errors.Wrapf(err, "saving questions %d-%d", start, end)
		}
	}
	return nil
}

// Load implements dataset.Source
func (s *Store) Load(ctx context.Context) ([]*jeopardy.Question, error) {
	raw, err := s.client.LRange(ctx, s.questionsKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "loading questions")
	}

	questions := make([]*jeopardy.Question, 0, len(raw))
	for i, data := range raw {
		var q jeopardy.Question
		if err := json.Unmarshal([]byte(data), &q); err != nil {
			return nil, errors.Wrapf(err, "decoding question %d", i)
		}
		questions = append(questions, &q)
	}
	return questions, nil
}

// Count returns the number of stored questions
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, s.questionsKey()).Result()
}

// Reset deletes every stored question
func (s *Store) Reset(ctx context.Context) error {
	return s.client.Del(ctx, s.questionsKey()).Err()
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) questionsKey() string {
	return fmt.Sprintf("%s:questions", s.config.KeyPrefix)
}
