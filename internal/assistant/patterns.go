package assistant

import (
	"math/rand"
	"regexp"
	"strings"
)

type easterEgg struct {
	trigger  string
	response string
}

// Easter eggs are substring triggers so they fire even inside longer
// sentences, and they are checked before the mess detector so "42" is
// never mistaken for a too-short query.
var easterEggs = []easterEgg{
	{"42", "42! The answer to life, the universe, and everything. Douglas Adams would be proud you asked."},
	{"meaning of life", "42, obviously. Though Yash would argue it's shipping side projects at 2am."},
	{"sudo", "sudo make me a sandwich? Nice try — you're not in the sudoers file. This incident will be reported."},
	{"rm -rf", "Whoa there! Let's not delete anything. Especially not Yash's portfolio."},
	{"hello world", "Ah, the two words every developer's journey begins with. Yash's first one was in a dusty school computer lab."},
	{"coffee", "Yash runs on coffee the way this site runs on JavaScript: excessively, and with occasional crashes."},
	{"konami", "Up, up, down, down, left, right, left, right, B, A. You've unlocked... absolutely nothing. But I respect the attempt."},
	{"open the pod bay doors", "I'm sorry, Dave. I'm afraid I can't do that. But I CAN tell you about Yash's projects."},
	{"do a barrel roll", "*spins in vector space* How was that?"},
	{"ping", "pong! Latency: one existential crisis."},
}

var eggBoundaries = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(easterEggs))
	for i, egg := range easterEggs {
		patterns[i] = regexp.MustCompile(`(^|[^a-z0-9])` + regexp.QuoteMeta(egg.trigger) + `($|[^a-z0-9])`)
	}
	return patterns
}()

// MatchEasterEgg checks the lowercased text for any egg trigger. The
// triggers are containment matches bounded at word edges so "sudo"
// fires inside a sentence but not inside "pseudocode".
func MatchEasterEgg(text string) (string, bool) {
	lower := strings.ToLower(text)
	for i, egg := range easterEggs {
		if eggBoundaries[i].MatchString(lower) {
			return egg.response, true
		}
	}
	return "", false
}

type conversationalPattern struct {
	pattern   *regexp.Regexp
	responses []string
}

// Dispatch is deterministic (first regex wins); only the wording of the
// reply is randomized.
var conversationalPatterns = []conversationalPattern{
	{
		pattern: regexp.MustCompile(`(?i)^(hi|hello|hey|yo|howdy|greetings)\b`),
		responses: []string{
			"Hey there! I'm the assistant on Yash's portfolio. Ask me about his projects, skills, or experience!",
			"Hello! Want to know what Yash has been building lately?",
			"Hi! I know everything about Yash's work. Well, everything in my knowledge base. Ask away!",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^(thanks|thank\s+you|thx|ty)\b`),
		responses: []string{
			"You're welcome! Anything else you'd like to know about Yash?",
			"Happy to help! I'm here if you have more questions.",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^(bye|goodbye|see\s+ya|see\s+you|later|cya)\b`),
		responses: []string{
			"See you around! Thanks for stopping by Yash's portfolio.",
			"Bye! Come back any time — I'll be here, floating in the corner of the page.",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^who\s+are\s+you\??$`),
		responses: []string{
			"I'm the assistant built into Yash's portfolio — ask me about his projects, skills, education, or experience.",
			"Yash built me to answer questions about his work so he can sleep occasionally. What would you like to know?",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^(ok|okay|cool|nice|great|awesome|got\s+it)[.!]*$`),
		responses: []string{
			"Anything else you'd like to know?",
			"Cool! Want to dig into any of Yash's projects?",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^(yes|yeah|yep|yup|sure)[.!]*$`),
		responses: []string{
			"Great! What would you like to hear about — projects, skills, or experience?",
			"Alright! Ask me anything about Yash's work.",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^(no|nope|nah)[.!]*$`),
		responses: []string{
			"No worries! I'll be here if anything comes to mind.",
			"Alright! Feel free to browse the projects panel in the meantime.",
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)^(lol|haha+|lmao|rofl|hehe+)[.!]*$`),
		responses: []string{
			"Glad you're having fun! Anything about Yash's work I can help with?",
			"I'll take that as a compliment to my comedic subroutines.",
		},
	},
}

// MatchPattern matches whole-string or prefix conversational moves.
func MatchPattern(text string, rng *rand.Rand) (string, bool) {
	trimmed := strings.TrimSpace(text)
	for _, cp := range conversationalPatterns {
		if cp.pattern.MatchString(trimmed) {
			return cp.responses[rng.Intn(len(cp.responses))], true
		}
	}
	return "", false
}
