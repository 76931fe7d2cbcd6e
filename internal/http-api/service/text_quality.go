package service

import (
	"fmt"
	"strings"
	"unicode"
)

// QualityResult is the outcome of validating free-text feedback before it
// enters the AI pipeline.
type QualityResult struct {
	IsValid     bool     `json:"is_valid"`
	Errors      []string `json:"errors,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

const (
	minFeedbackLength = 10
	maxFeedbackLength = 5000
)

// Common and review-domain words that count as meaningful regardless of length.
var meaningfulWords = map[string]struct{}{
	"i": {}, "a": {}, "an": {}, "the": {}, "and": {}, "but": {}, "or": {},
	"is": {}, "was": {}, "are": {}, "it": {}, "to": {}, "of": {}, "for": {},
	"we": {}, "my": {}, "me": {}, "so": {}, "had": {}, "has": {}, "have": {},
	"not": {}, "too": {}, "very": {}, "with": {}, "this": {}, "that": {},
	"they": {}, "here": {}, "will": {}, "would": {}, "again": {}, "back": {},
	"food": {}, "staff": {}, "place": {}, "service": {}, "time": {},
	"good": {}, "great": {}, "nice": {}, "bad": {}, "best": {}, "love": {},
	"loved": {}, "clean": {}, "friendly": {}, "fast": {}, "slow": {},
	"price": {}, "value": {}, "quality": {}, "recommend": {}, "experience": {},
}

// Keyboard-mashing fragments that flag text as gibberish when present.
var keyboardPatterns = []string{
	"qwerty", "qwert", "werty", "asdf", "sdfg", "dfgh", "fghj", "ghjk",
	"hjkl", "jklq", "zxcv", "xcvb", "cvbn", "vbnm", "uiop", "yuio",
	"1234567890", "0987654321",
}

// ValidateReviewText checks free-text feedback for length, gibberish, and
// meaningful content. Pure function, safe to call on raw form input.
func ValidateReviewText(text string) QualityResult {
	var errs []string
	var suggestions []string

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minFeedbackLength {
		errs = append(errs, fmt.Sprintf("feedback must be at least %d characters", minFeedbackLength))
		suggestions = append(suggestions, "describe your experience in a sentence or two")
	}
	if len(trimmed) > maxFeedbackLength {
		errs = append(errs, fmt.Sprintf("feedback must be at most %d characters", maxFeedbackLength))
		suggestions = append(suggestions, "shorten your feedback to the key points")
	}

	words := strings.Fields(trimmed)
	if len(words) < 2 {
		errs = append(errs, "feedback must contain at least 2 words")
		suggestions = append(suggestions, "write a short sentence rather than a single word")
	}

	if reason, gibberish := detectGibberish(trimmed, words); gibberish {
		errs = append(errs, reason)
		suggestions = append(suggestions, "use normal words describing what you liked or disliked")
	} else if !hasMeaningfulContent(words) {
		errs = append(errs, "feedback does not contain enough meaningful words")
		suggestions = append(suggestions, "mention specifics like the service, staff, or product")
	}

	return QualityResult{
		IsValid:     len(errs) == 0,
		Errors:      errs,
		Suggestions: suggestions,
	}
}

// detectGibberish runs the heuristic battery; any single hit flags the text.
func detectGibberish(text string, words []string) (string, bool) {
	lower := strings.ToLower(text)

	for _, word := range words {
		letters := lettersOnly(strings.ToLower(word))
		if hasConsonantRun(letters, 5) {
			return "feedback looks like gibberish (long consonant run)", true
		}
		if hasVowelRun(letters, 4) {
			return "feedback looks like gibberish (long vowel run)", true
		}
	}

	if hasRepeatedRun(text, 5) {
		return "feedback looks like gibberish (repeated characters)", true
	}

	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) {
			return "feedback looks like keyboard mashing", true
		}
	}
	if hasHexRun(lower, 12) {
		return "feedback looks like gibberish (hex-like run)", true
	}
	if hasPunctuationCluster(text, 4) {
		return "feedback contains excessive punctuation", true
	}

	var letters, nonAlnum int
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r) || unicode.IsSpace(r):
		default:
			nonAlnum++
		}
	}
	if letters > 0 && float64(nonAlnum)/float64(letters) > 0.5 {
		return "feedback contains too many symbols", true
	}

	// Words longer than 3 letters with no vowel at all.
	var longWords, vowelless int
	for _, word := range words {
		letters := lettersOnly(strings.ToLower(word))
		if len(letters) <= 3 {
			continue
		}
		longWords++
		if !strings.ContainsAny(letters, "aeiou") {
			vowelless++
		}
	}
	if longWords > 0 && float64(vowelless)/float64(longWords) > 0.5 {
		return "feedback looks like gibberish (words without vowels)", true
	}

	return "", false
}

// hasMeaningfulContent requires a minimum ratio of dictionary or 4+ letter
// words: 0.3 for short texts (<= 10 words), 0.2 otherwise.
func hasMeaningfulContent(words []string) bool {
	if len(words) == 0 {
		return false
	}
	meaningful := 0
	for _, word := range words {
		letters := lettersOnly(strings.ToLower(word))
		if _, ok := meaningfulWords[letters]; ok || len(letters) >= 4 {
			meaningful++
		}
	}
	ratio := float64(meaningful) / float64(len(words))
	if len(words) <= 10 {
		return ratio >= 0.3
	}
	return ratio >= 0.2
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasConsonantRun(letters string, n int) bool {
	run := 0
	for _, r := range letters {
		if strings.ContainsRune("aeiou", r) {
			run = 0
			continue
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

func hasVowelRun(letters string, n int) bool {
	run := 0
	for _, r := range letters {
		if !strings.ContainsRune("aeiou", r) {
			run = 0
			continue
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

func hasRepeatedRun(text string, n int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

func hasHexRun(lower string, n int) bool {
	run := 0
	for _, r := range lower {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func hasPunctuationCluster(text string, n int) bool {
	run := 0
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
