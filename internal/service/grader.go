package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

// Grader scores free-text answers against the expected keyword set of
// a question. It is pure and deterministic: no state, safe for
// concurrent use.
//
// Matching is contiguous substring containment over normalized text,
// not word-boundary matching. That means a keyword matches inside a
// longer word ("cat" matches within "concatenate"); the behavior is
// deliberate and depended on by existing content.
type Grader struct{}

func NewGrader() *Grader {
	return &Grader{}
}

// Grade scores one answer. It never returns an error: empty input
// produces a zero-score incorrect result with an explanatory message.
func (g *Grader) Grade(answer string, keywords []string, difficulty entities.Difficulty) entities.GradingResult {
	difficulty = difficulty.Normalize()
	passing := difficulty.PassingScore()

	if strings.TrimSpace(answer) == "" {
		return entities.GradingResult{
			MissedKeywords: append([]string(nil), keywords...),
			TotalKeywords:  len(keywords),
			PassingScore:   passing,
			Difficulty:     difficulty,
			Message:        "No answer was given. Try to use the key expressions in a full sentence.",
		}
	}
	if len(keywords) == 0 {
		return entities.GradingResult{
			PassingScore: passing,
			Difficulty:   difficulty,
			Message:      "This question has no key expressions to check against.",
		}
	}

	normalized := normalizeText(answer)

	matched := make([]string, 0, len(keywords))
	missed := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.Contains(normalized, normalizeText(kw)) {
			matched = append(matched, kw)
		} else {
			missed = append(missed, kw)
		}
	}

	score := int(math.Round(float64(len(matched)) / float64(len(keywords)) * 100))

	result := entities.GradingResult{
		IsCorrect:       score >= passing,
		Score:           score,
		MatchedKeywords: matched,
		MissedKeywords:  missed,
		MatchedCount:    len(matched),
		TotalKeywords:   len(keywords),
		PassingScore:    passing,
		Difficulty:      difficulty,
	}
	result.Message = gradingMessage(result)

	return result
}

// GradeDialogue scores a two-party exchange. Both parties' answers are
// concatenated into one text before matching; the keyword set and the
// pass rule are the same as for a single answer.
func (g *Grader) GradeDialogue(answerA, answerB string, keywords []string, difficulty entities.Difficulty) entities.GradingResult {
	combined := strings.TrimSpace(answerA + " " + answerB)
	return g.Grade(combined, keywords, difficulty)
}

func gradingMessage(r entities.GradingResult) string {
	switch {
	case r.Score == 100:
		return fmt.Sprintf("Perfect! You used all %d key expressions.", r.TotalKeywords)
	case r.IsCorrect:
		return fmt.Sprintf("Well done, you passed with %d of %d key expressions. Missing: %s.",
			r.MatchedCount, r.TotalKeywords, strings.Join(r.MissedKeywords, ", "))
	case r.MatchedCount > 0:
		return fmt.Sprintf("Not quite: %d of %d key expressions, %d needed to pass. Try again with: %s.",
			r.MatchedCount, r.TotalKeywords, r.PassingScore, strings.Join(r.MissedKeywords, ", "))
	default:
		return "None of the key expressions were found. Review the model answer and try again."
	}
}

var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
)

var punctuationReplacer = strings.NewReplacer(
	".", " ", ",", " ", "!", " ", "?", " ", ";", " ", ":", " ",
)

// normalizeText prepares text for keyword comparison: lowercase, trim,
// straighten quotes, strip sentence punctuation and collapse runs of
// whitespace to a single space. Idempotent.
func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = quoteReplacer.Replace(s)
	s = punctuationReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
