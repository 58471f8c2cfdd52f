package jeopardy

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/zpam/naive-classifier/pkg/classifier"
)

// Feature names produced by Builder
const (
	FeatureCategory      = "Category of Question"
	FeatureLongQuestion  = "Amount of characters is >80"
	FeatureShortQuestion = "Amount of characters is <80"
	FeatureValue         = "Value of Question"
)

// LongQuestionLength is the length a question text must exceed to count as long
const LongQuestionLength = 80

// Builder derives features from a question: its category, whether its text
// is longer than LongQuestionLength characters, and its dollar value when
// the question has one.
type Builder struct{}

var _ classifier.Builder[*Question] = Builder{}

// Features implements classifier.Builder
func (Builder) Features(q *Question) ([]classifier.Feature, error) {
	if q == nil {
		return nil, errors.Wrap(classifier.ErrConstruction, "nil question")
	}
	if q.Category == nil {
		return nil, errors.Wrap(classifier.ErrConstruction, "question has no category")
	}
	if q.Question == nil {
		return nil, errors.Wrap(classifier.ErrConstruction, "question has no text")
	}

	features := []classifier.Feature{
		classifier.NewFeature(FeatureCategory, classifier.String(*q.Category)),
	}

	if utf8.RuneCountInString(*q.Question) > LongQuestionLength {
		features = append(features, classifier.NewFeature(FeatureLongQuestion, classifier.Bool(true)))
	} else {
		features = append(features, classifier.NewFeature(FeatureShortQuestion, classifier.Bool(true)))
	}

	if q.Value != nil {
		value, err := ParseValue(*q.Value)
		if err != nil {
			return nil, err
		}
		features = append(features, classifier.NewFeature(FeatureValue, classifier.Int(value)))
	}

	return features, nil
}

// ParseValue converts a dollar amount such as "$1,200" to 1200
func ParseValue(s string) (int64, error) {
	digits, ok := strings.CutPrefix(s, "$")
	if !ok {
		return 0, errors.Wrapf(classifier.ErrConstruction, "value %q has no $ prefix", s)
	}
	digits = strings.ReplaceAll(digits, ",", "")
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(classifier.ErrConstruction, "value %q is not a dollar amount", s)
	}
	return value, nil
}

// Build builds a labeled feature set using the question's own round
func Build(q *Question) (*classifier.FeatureSet[Round], error) {
	if q == nil {
		return nil, errors.Wrap(classifier.ErrConstruction, "nil question")
	}
	return classifier.BuildLabeled[*Question, Round](Builder{}, q, Round(q.Round))
}

// BuildUnlabeled builds a feature set for a question of unknown round
func BuildUnlabeled(q *Question) (*classifier.FeatureSet[Round], error) {
	return classifier.BuildUnlabeled[*Question, Round](Builder{}, q)
}

// Universe returns the label universe for the given rounds, or for every
// round when none are given
func Universe(rounds ...Round) (*classifier.Universe[Round], error) {
	if len(rounds) == 0 {
		rounds = Rounds()
	}
	return classifier.NewUniverse(rounds...)
}
