package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := map[string]string{
		"What is the time complexity?":    IntentComplexity,
		"Can you explain the complexity?": IntentComplexity,
		"how much SPACE does this use":    IntentComplexity,
		"Please explain this":             IntentExplain,
		"I don't understand line 3":       IntentExplain,
		"how to optimize":                 IntentOptimize,
		"Could it be better?":             IntentOptimize,
		"I think there is a bug":          IntentDebug,
		"Getting an error on empty input": IntentDebug,
		"hello there":                     IntentOverview,
		"":                                IntentOverview,
	}
	for message, want := range tests {
		assert.Equal(t, want, Classify(message), "message %q", message)
	}
}

func TestComplexityReplyCarriesHeaders(t *testing.T) {
	messages := []string{
		"complexity?",
		"What's the complexity here, and can you explain the code?",
		"optimize the complexity please",
		"debug my COMPLEXITY",
	}
	for _, msg := range messages {
		reply := Respond(Prompt{Message: msg, Solution: hashTwoSum, ProblemTitle: "Two Sum"})
		assert.Contains(t, reply, "**Time Complexity:** O(n)", "message %q", msg)
		assert.Contains(t, reply, "**Space Complexity:** O(n) - Additional data structures used", "message %q", msg)
		assert.Contains(t, reply, "• Hash table optimization")
	}
}

func TestExplainReplyWalksTheCode(t *testing.T) {
	reply := Respond(Prompt{Message: "explain please", Solution: hashTwoSum, ProblemTitle: "Two Sum"})

	assert.True(t, strings.HasPrefix(reply, "Let me break down your **Two Sum** solution:"))
	assert.Contains(t, reply, "2. Uses hash-based data structure for optimization")
	assert.Contains(t, reply, "3. Iterates through the data structure")
	assert.Contains(t, reply, "5. Checks condition for filtering/decision making")

	reply = Respond(Prompt{Message: "explain", Solution: "x = 1", ProblemTitle: "Trivial"})
	assert.Contains(t, reply, "The code follows a structured approach")
}

func TestOptimizeReply(t *testing.T) {
	reply := Respond(Prompt{Message: "optimize", Solution: nestedTwoSum, ProblemTitle: "Two Sum"})
	assert.Contains(t, reply, "**Current Complexity:** O(n²) time")
	assert.Contains(t, reply, "• Consider using hash maps for O(n) lookups")
	assert.Contains(t, reply, "Using a hash map could reduce time complexity to O(n).")

	reply = Respond(Prompt{Message: "optimize", Solution: hashTwoSum, ProblemTitle: "Two Sum"})
	assert.Contains(t, reply, "**Your solution is already well-optimized!**")
}

func TestDebugReplyFollowsPatterns(t *testing.T) {
	reply := Respond(Prompt{Message: "bug", Solution: pythonFib, ProblemTitle: "Fibonacci"})
	assert.Contains(t, reply, "A reachable base case for every recursive path")
	assert.NotContains(t, reply, "Hash map key collisions")
	assert.Contains(t, reply, "**Testing tip:**")
}

func TestOverviewReplyIgnoresHistory(t *testing.T) {
	p := Prompt{Message: "hi", Solution: hashTwoSum, ProblemTitle: "Two Sum"}
	plain := Respond(p)
	p.History = []Turn{{Message: "earlier question"}, {Message: "earlier answer", IsAI: true}}

	assert.Equal(t, plain, Respond(p))
	assert.Contains(t, plain, "Great question about your **Two Sum** solution!")
	assert.Contains(t, plain, "• Time: O(n)")
}

func TestRespondIsTotal(t *testing.T) {
	assert.NotEmpty(t, Respond(Prompt{}))
	assert.NotEqual(t, Apology, Respond(Prompt{Message: "complexity"}))
}
