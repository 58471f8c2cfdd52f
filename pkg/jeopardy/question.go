// Package jeopardy adapts the Jeopardy! question archive to the classifier:
// the raw question record, the rounds used as labels and the builder that
// turns a question into features.
package jeopardy

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Round is the label predicted for a question
type Round string

const (
	RoundJeopardy       Round = "Jeopardy!"
	RoundDoubleJeopardy Round = "Double Jeopardy!"
	RoundFinalJeopardy  Round = "Final Jeopardy!"
	RoundTiebreaker     Round = "Tiebreaker"
)

// Rounds returns every round in tie-break order
func Rounds() []Round {
	return []Round{RoundJeopardy, RoundDoubleJeopardy, RoundFinalJeopardy, RoundTiebreaker}
}

// Question is one entry of the archive. Pointer fields distinguish a missing
// or null value from an empty string.
type Question struct {
	Category   *string `json:"category" db:"category"`
	AirDate    string  `json:"air_date" db:"air_date"`
	Question   *string `json:"question" db:"question"`
	Value      *string `json:"value" db:"value"`
	Answer     *string `json:"answer" db:"answer"`
	Round      string  `json:"round" db:"round"`
	ShowNumber string  `json:"show_number" db:"show_number"`
}

// ReadQuestions decodes a JSON array of questions
func ReadQuestions(r io.Reader) ([]*Question, error) {
	var questions []*Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, errors.Wrap(err, "decoding questions")
	}
	return questions, nil
}

// ReadQuestionsFile decodes a JSON array of questions from a file
func ReadQuestionsFile(path string) ([]*Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset")
	}
	defer f.Close()
	return ReadQuestions(f)
}

// WriteQuestions encodes questions as an indented JSON array
func WriteQuestions(w io.Writer, questions []*Question) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(questions); err != nil {
		return errors.Wrap(err, "encoding questions")
	}
	return nil
}
