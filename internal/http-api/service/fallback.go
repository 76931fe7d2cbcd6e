package service

import (
	"fmt"
	"math/rand"
	"strings"

	"reviewhub/internal/http-api/models"
)

// Deterministic, non-LLM enhancement used by the public quick-enhance flow
// whenever the provider call fails. Seeded so output is reproducible.

var positiveSignals = []string{
	"good", "great", "excellent", "amazing", "awesome", "love", "loved",
	"best", "friendly", "clean", "fast", "helpful", "perfect", "wonderful",
	"fantastic", "recommend", "delicious", "happy", "nice",
}

var negativeSignals = []string{
	"bad", "terrible", "awful", "worst", "slow", "rude", "dirty", "cold",
	"disappointed", "disappointing", "horrible", "poor", "never", "waste",
	"unhappy", "overpriced", "mediocre",
}

// ClassifySentiment counts signal words; ties and silence are neutral.
func ClassifySentiment(text string) models.Sentiment {
	lower := strings.ToLower(text)
	var positive, negative int
	for _, w := range positiveSignals {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeSignals {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

var fallbackOpeners = map[models.Sentiment][]string{
	models.SentimentPositive: {
		"I had a wonderful experience at %s.",
		"Visiting %s turned out to be a great decision.",
		"%s really exceeded my expectations.",
	},
	models.SentimentNeutral: {
		"I recently visited %s.",
		"My experience at %s was decent overall.",
		"I stopped by %s not long ago.",
	},
	models.SentimentNegative: {
		"My visit to %s did not go as hoped.",
		"Unfortunately, my experience at %s fell short.",
		"I left %s feeling let down.",
	},
}

var fallbackMiddles = map[models.Sentiment][]string{
	models.SentimentPositive: {
		"In my own words: %s.",
		"What stood out to me: %s.",
		"To sum up my impressions: %s.",
	},
	models.SentimentNeutral: {
		"Here is what I noticed: %s.",
		"My honest takeaway: %s.",
		"In short: %s.",
	},
	models.SentimentNegative: {
		"The main issue for me: %s.",
		"What went wrong: %s.",
		"My honest feedback: %s.",
	},
}

var fallbackClosers = map[models.Sentiment][]string{
	models.SentimentPositive: {
		"I would happily come back and recommend it to others.",
		"Definitely worth a visit.",
		"Looking forward to returning.",
	},
	models.SentimentNeutral: {
		"It may be worth a try depending on what you are looking for.",
		"A reasonable option overall.",
		"Your experience may vary.",
	},
	models.SentimentNegative: {
		"I hope they take this feedback on board.",
		"I would think twice before returning.",
		"There is real room for improvement here.",
	},
}

// FallbackEnhance composes review text from canned fragments. The same seed
// and inputs always produce the same output.
func FallbackEnhance(text, businessName string, seed int64) (string, models.Sentiment) {
	sentiment := ClassifySentiment(text)
	rng := rand.New(rand.NewSource(seed))

	if strings.TrimSpace(businessName) == "" {
		businessName = "this business"
	}
	cleaned := strings.TrimRight(strings.TrimSpace(text), ".!? ")

	opener := fallbackOpeners[sentiment][rng.Intn(len(fallbackOpeners[sentiment]))]
	middle := fallbackMiddles[sentiment][rng.Intn(len(fallbackMiddles[sentiment]))]
	closer := fallbackClosers[sentiment][rng.Intn(len(fallbackClosers[sentiment]))]

	return fmt.Sprintf("%s %s %s",
		fmt.Sprintf(opener, businessName),
		fmt.Sprintf(middle, cleaned),
		closer,
	), sentiment
}
