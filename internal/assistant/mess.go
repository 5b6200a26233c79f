package assistant

import (
	"math/rand"
	"regexp"
	"strings"
)

// MessKind labels queries that are valid text but not genuine portfolio
// questions: keyboard mash, bare fragments, trivia, or unrelated topics.
type MessKind int

const (
	MessNone MessKind = iota
	MessGibberish
	MessTooShort
	MessTrivia
	MessOffTopic
)

// shortAllowList holds short utterances that are real conversational
// moves, not noise. They fall through to the pattern matcher.
var shortAllowList = map[string]bool{
	"hi": true, "yo": true, "ok": true, "k": true, "no": true, "ya": true,
	"hm": true, "ty": true, "sup": true, "hey": true, "yes": true,
	"bye": true, "thx": true, "lol": true, "hmm": true, "nah": true,
	"yep": true, "nope": true, "cool": true, "nice": true,
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "has": true,
	"him": true, "his": true, "how": true, "its": true, "who": true,
	"did": true, "get": true, "may": true, "she": true, "use": true,
	"that": true, "this": true, "with": true, "have": true, "from": true,
	"what": true, "your": true, "about": true, "does": true,
}

var keyboardRuns = []string{
	"asdf", "sdfg", "dfgh", "fghj", "ghjk", "hjkl",
	"qwer", "wert", "erty", "rtyu", "tyui", "yuio", "uiop",
	"zxcv", "xcvb", "cvbn", "vbnm", "qwerty", "asdfgh",
}

var (
	consonantRunPattern = regexp.MustCompile(`[bcdfghjklmnpqrstvwxz]{5,}`)
	vowelPattern        = regexp.MustCompile(`[aeiouy]`)
	alphaWordPattern    = regexp.MustCompile(`^[a-z']+$`)
)

var triviaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*what('?s|\s+is)\s+\d+\s*[-+*/x]\s*\d+`),
	regexp.MustCompile(`(?i)^\s*\d+\s*[-+*/x]\s*\d+\s*=?\s*\??\s*$`),
	regexp.MustCompile(`(?i)\bwho\s+(is|was)\s+the\s+(president|prime\s+minister|king|queen|ceo\s+of)`),
	regexp.MustCompile(`(?i)\bwhat\s+(is|are)\s+the\s+capital\s+of\b`),
	regexp.MustCompile(`(?i)^\s*define\s+\w+`),
	regexp.MustCompile(`(?i)\bhow\s+many\s+\w+\s+(are\s+(there\s+)?in|does)\b`),
	regexp.MustCompile(`(?i)\bwhat\s+time\s+is\s+it\b`),
	regexp.MustCompile(`(?i)\bwhat\s+(day|date|year)\s+is\s+(it|today)\b`),
}

var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(trump|biden|modi|election|parliament|congress|politics|political)\b`),
	regexp.MustCompile(`(?i)\b(weather|temperature|forecast|raining|snowing)\b`),
	regexp.MustCompile(`(?i)\b(kardashian|taylor\s+swift|celebrity|celebrities|bollywood|hollywood)\b`),
	regexp.MustCompile(`(?i)\b(football|soccer|cricket|ipl|nba|nfl|world\s+cup|premier\s+league)\b`),
	regexp.MustCompile(`(?i)\b(fortnite|minecraft|valorant|playstation|xbox|video\s+game)\b`),
	regexp.MustCompile(`(?i)\b(bitcoin|ethereum|crypto|dogecoin|nft)\b`),
	regexp.MustCompile(`(?i)\b(bible|quran|church|temple|religion|religious)\b`),
	regexp.MustCompile(`(?i)\b(girlfriend|boyfriend|dating|tinder|marry\s+me)\b`),
	regexp.MustCompile(`(?i)\b(stock\s+market|invest(ing|ment)?\s+advice|lottery)\b`),
}

// portfolioMention keeps off-topic words from hijacking a genuinely
// relevant question ("did Yash build a cricket score tracker?").
var portfolioMention = regexp.MustCompile(`(?i)\b(yash|portfolio|project|projects|skill|skills|work|built|build|develop|developer|experience|education|resume|hire|contact)\b`)

// ClassifyMess runs after safety and easter eggs. Evaluation order is
// gibberish, tooShort, trivia, offTopic; first match wins.
func ClassifyMess(text string) MessKind {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if isGibberish(lower) {
		return MessGibberish
	}
	if len(trimmed) < 3 && !shortAllowList[lower] {
		return MessTooShort
	}
	for _, pattern := range triviaPatterns {
		if pattern.MatchString(trimmed) {
			return MessTrivia
		}
	}
	if !portfolioMention.MatchString(trimmed) {
		for _, pattern := range offTopicPatterns {
			if pattern.MatchString(trimmed) {
				return MessOffTopic
			}
		}
	}
	return MessNone
}

func isGibberish(lower string) bool {
	if len(lower) <= 2 {
		return !shortAllowList[lower] && lower != ""
	}
	if hasRepeatedRun(lower) {
		return true
	}
	words := strings.Fields(lower)
	for _, word := range words {
		stripped := strings.Trim(word, ".,!?;:'\"")
		if len(stripped) > 4 && alphaWordPattern.MatchString(stripped) && !vowelPattern.MatchString(stripped) {
			return true
		}
		if consonantRunPattern.MatchString(stripped) {
			return true
		}
		for _, run := range keyboardRuns {
			if strings.Contains(stripped, run) {
				return true
			}
		}
	}
	if uniqueCharRatio(lower) > 0.9 {
		return true
	}
	// Long queries made mostly of filler or junk words read as noise.
	if len(words) > 4 && meaningfulWordRatio(words) < 0.25 {
		return true
	}
	return false
}

// hasRepeatedRun reports whether text contains the same rune five or
// more times in a row. Go's RE2 engine has no backreferences, so the
// equivalent pattern `(.)\1{4,}` cannot be expressed as a regexp.
func hasRepeatedRun(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= 5 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

func uniqueCharRatio(text string) float64 {
	compact := strings.ReplaceAll(text, " ", "")
	if len(compact) <= 5 {
		return 0
	}
	unique := make(map[rune]bool)
	total := 0
	for _, r := range compact {
		unique[r] = true
		total++
	}
	return float64(len(unique)) / float64(total)
}

func meaningfulWordRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	meaningful := 0
	for _, word := range words {
		stripped := strings.Trim(word, ".,!?;:'\"")
		if len(stripped) > 2 && alphaWordPattern.MatchString(stripped) && !stopwords[stripped] && vowelPattern.MatchString(stripped) {
			meaningful++
		}
	}
	return float64(meaningful) / float64(len(words))
}

var messResponses = map[MessKind][]string{
	MessGibberish: {
		"My keyboard-smash detector just lit up. Try asking me something about Yash's projects!",
		"I speak several languages, but not that one. Ask me about Yash's work?",
		"Hmm, that looks like your cat walked across the keyboard. Want to hear about Yash's skills instead?",
	},
	MessTooShort: {
		"That's a bit brief for me. Ask me something about Yash's projects or experience!",
		"Give me a little more to work with! What would you like to know about Yash?",
	},
	MessTrivia: {
		"I'm flattered, but I'm not that kind of assistant. I only know about Yash's portfolio!",
		"My trivia knowledge stops at Yash's resume. Ask me about his projects instead!",
		"For general knowledge you'll want a search engine. For Yash's work, you want me.",
	},
	MessOffTopic: {
		"That's outside my wheelhouse. I'm here to talk about Yash's projects, skills, and experience!",
		"I'd love to chat about that, but my expertise is strictly Yash-shaped. What about his work interests you?",
		"Not my department! Try asking about Yash's projects, education, or experience.",
	},
}

func messResponse(kind MessKind, rng *rand.Rand) string {
	pool := messResponses[kind]
	if len(pool) == 0 {
		return "I'm not sure what to do with that. Ask me about Yash's projects, skills, or experience!"
	}
	return pool[rng.Intn(len(pool))]
}
