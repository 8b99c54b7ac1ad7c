package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const servicesAnswer = "We offer web development, ads, and automation."

func servicesTable() []QARecord {
	return []QARecord{
		{
			Question: "How much does it cost?",
			Keywords: []string{"price", "cost"},
			Answer:   "Pricing depends on scope.",
		},
		{
			Question: "What services do you offer?",
			Keywords: []string{"services", "offer"},
			Answer:   servicesAnswer,
		},
	}
}

func TestClassifyExactQuestion(t *testing.T) {
	m := Classify("WHAT Services do you OFFER?", servicesTable())
	require.Equal(t, servicesAnswer, m.Answer)
	require.Equal(t, OutcomeExact, m.Outcome)
	require.Equal(t, 1, m.Index)
}

func TestClassifyKeywordScore(t *testing.T) {
	m := Classify("tell me about your services", servicesTable())
	require.Equal(t, servicesAnswer, m.Answer)
	require.Equal(t, OutcomeKeyword, m.Outcome)
	// keyword "services" plus the question word "services"
	require.Equal(t, 3, m.Score)
}

func TestClassifyFallback(t *testing.T) {
	m := Classify("xyzzy plugh", servicesTable())
	require.Equal(t, FallbackResponse, m.Answer)
	require.Equal(t, OutcomeFallback, m.Outcome)
	require.Equal(t, 0, m.Score)
	require.Equal(t, -1, m.Index)
}

func TestClassifyGreetingIsExact(t *testing.T) {
	require.Equal(t, GreetingResponse, ClassifyAndRespond("hi", servicesTable()))
	require.Equal(t, GreetingResponse, ClassifyAndRespond("  Good Morning ", servicesTable()))

	m := Classify("hi, do you offer services?", servicesTable())
	require.Equal(t, OutcomeKeyword, m.Outcome)
	require.Equal(t, servicesAnswer, m.Answer)
}

func TestClassifyGoodbyeIsSubstring(t *testing.T) {
	require.Equal(t, GoodbyeResponse, ClassifyAndRespond("thanks, bye!", servicesTable()))
	require.Equal(t, GoodbyeResponse, ClassifyAndRespond("ok thanks, bye for now", servicesTable()))
	require.Equal(t, GoodbyeResponse, ClassifyAndRespond("what services do you offer? bye", servicesTable()))
}

func TestClassifyBelowThreshold(t *testing.T) {
	table := []QARecord{{Question: "Tell me about pricing", Keywords: []string{"zzz"}, Answer: "a"}}
	m := Classify("pricing", table)
	require.Equal(t, 1, m.Score)
	require.Equal(t, OutcomeFallback, m.Outcome)
}

func TestClassifyFirstMaximumWins(t *testing.T) {
	table := []QARecord{
		{Question: "first", Keywords: []string{"website"}, Answer: "first"},
		{Question: "second", Keywords: []string{"website"}, Answer: "second"},
	}
	require.Equal(t, "first", ClassifyAndRespond("I need a website", table))
}

func TestClassifyEmptyInput(t *testing.T) {
	require.Equal(t, FallbackResponse, ClassifyAndRespond("", servicesTable()))
	require.Equal(t, FallbackResponse, ClassifyAndRespond("   ", nil))
}

func TestClassifyDeterministic(t *testing.T) {
	table := servicesTable()
	for _, in := range []string{"tell me about your services", "hi", "what does it cost", "xyzzy"} {
		require.Equal(t, ClassifyAndRespond(in, table), ClassifyAndRespond(in, table))
	}
}
