package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeSentimentKeywords(t *testing.T) {
	cases := []struct {
		comment string
		rating  int
		want    string
	}{
		{"The soup was delicious today", 3, "positive"},
		{"Too salty and cold", 3, "negative"},
		{"It was bad but I love the dessert", 5, "negative"}, // negative keywords win
		{"", 5, "positive"},
		{"", 1, "negative"},
		{"", 3, "neutral"},
		{"nothing much to say", 3, "neutral"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, AnalyzeSentiment(tc.comment, tc.rating),
			"comment=%q rating=%d", tc.comment, tc.rating)
	}
}
