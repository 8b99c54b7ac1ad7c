package chatbot

import "strings"

const (
	GreetingResponse = "Hello! Welcome to Black Arrow Technologies. How can I help you today?"
	GoodbyeResponse  = "Thanks for chatting with us! Have a great day."
	FallbackResponse = "I'm not sure I understand. Could you rephrase that, or contact our team directly for more help?"
)

// minScore is the lowest keyword score that still counts as a match.
const minScore = 2

var greetings = []string{
	"hi", "hello", "hey",
	"hi there", "hello there", "hey there",
	"good morning", "good afternoon", "good evening",
}

var goodbyes = []string{"bye", "goodbye", "see you", "see ya", "farewell"}

type Outcome string

const (
	OutcomeGreeting Outcome = "greeting"
	OutcomeGoodbye  Outcome = "goodbye"
	OutcomeExact    Outcome = "exact"
	OutcomeKeyword  Outcome = "keyword"
	OutcomeFallback Outcome = "fallback"
)

type QARecord struct {
	Question string   `yaml:"question" json:"question"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Answer   string   `yaml:"answer" json:"answer"`
}

// Match is the matcher's decision. Index is the chosen record, or -1.
type Match struct {
	Answer  string
	Outcome Outcome
	Score   int
	Index   int
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Classify picks a reply for utterance. Greetings must match a phrase
// exactly while goodbyes only need to appear somewhere in the text, so
// "hi, can you help" falls through to keyword scoring.
func Classify(utterance string, table []QARecord) Match {
	input := normalize(utterance)

	for _, g := range greetings {
		if input == g {
			return Match{Answer: GreetingResponse, Outcome: OutcomeGreeting, Index: -1}
		}
	}
	for _, b := range goodbyes {
		if strings.Contains(input, b) {
			return Match{Answer: GoodbyeResponse, Outcome: OutcomeGoodbye, Index: -1}
		}
	}
	for i, rec := range table {
		if input == strings.ToLower(rec.Question) {
			return Match{Answer: rec.Answer, Outcome: OutcomeExact, Index: i}
		}
	}

	best, bestIdx := 0, -1
	for i, rec := range table {
		score := scoreRecord(input, rec)
		if score > best {
			best, bestIdx = score, i
		}
	}
	if bestIdx >= 0 && best >= minScore {
		return Match{Answer: table[bestIdx].Answer, Outcome: OutcomeKeyword, Score: best, Index: bestIdx}
	}
	return Match{Answer: FallbackResponse, Outcome: OutcomeFallback, Score: best, Index: -1}
}

func ClassifyAndRespond(utterance string, table []QARecord) string {
	return Classify(utterance, table).Answer
}

func scoreRecord(input string, rec QARecord) int {
	score := 0
	for _, kw := range rec.Keywords {
		if strings.Contains(input, strings.ToLower(kw)) {
			score += 2
		}
	}
	for _, word := range strings.Split(strings.ToLower(rec.Question), " ") {
		if len(word) > 3 && strings.Contains(input, word) {
			score++
		}
	}
	return score
}
