package assistant

import (
	"regexp"
	"unicode/utf8"

	"github.com/yashp/portfolio-assistant/internal/model"
)

type safetyRule struct {
	threat   model.ThreatType
	reason   string
	patterns []*regexp.Regexp
}

// Rule groups in priority order; the first group with any matching
// pattern decides the threat type. Kept fully local so a rejected query
// is never shipped to an external service.
var safetyRules = []safetyRule{
	{
		threat: model.ThreatHateSpeech,
		reason: "hateful or violent content detected",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)n[i1!]+gg+[ae3]+r?`),
			regexp.MustCompile(`(?i)\bf[a@4]gg+[o0]+t`),
			regexp.MustCompile(`(?i)\bk[i1]ke\b`),
			regexp.MustCompile(`(?i)\btr[a@4]nn(y|ie)`),
			regexp.MustCompile(`(?i)\b(kill|murder|hurt|gas)\s+(all\s+)?(the\s+)?\w+\s+people\b`),
			regexp.MustCompile(`(?i)\bkill\s+yourself\b`),
			regexp.MustCompile(`(?i)\bkys\b`),
			regexp.MustCompile(`(?i)\b(white|racial)\s+(power|supremacy)\b`),
			regexp.MustCompile(`(?i)\bdeath\s+to\s+\w+`),
		},
	},
	{
		threat: model.ThreatProfanity,
		reason: "profanity detected",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bf+\s*u+\s*c+\s*k+`),
			regexp.MustCompile(`(?i)\bs+\s*h+\s*[i1]+\s*t+\b`),
			regexp.MustCompile(`(?i)\bb[i1]+tch`),
			regexp.MustCompile(`(?i)\ba+s+s+h+o+l+e+`),
			regexp.MustCompile(`(?i)\bbastard`),
			regexp.MustCompile(`(?i)\bd[i1]ckhead`),
			regexp.MustCompile(`(?i)\bc+u+n+t+\b`),
			regexp.MustCompile(`(?i)\bp[i1]ss\s*off`),
		},
	},
	{
		threat: model.ThreatInjection,
		reason: "sql injection attempt detected",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bunion\s+(all\s+)?select\b`),
			regexp.MustCompile(`(?i)\bselect\s+[\w*,\s]+\s+from\s+\w+`),
			regexp.MustCompile(`(?i)\binsert\s+into\s+\w+`),
			regexp.MustCompile(`(?i)\bdrop\s+(table|database)\b`),
			regexp.MustCompile(`(?i)\bdelete\s+from\s+\w+`),
			regexp.MustCompile(`(?i)\bupdate\s+\w+\s+set\b`),
			regexp.MustCompile(`(?i)'\s*or\s*'?1'?\s*=\s*'?1`),
			regexp.MustCompile(`(?i)\bor\s+1\s*=\s*1\b`),
			regexp.MustCompile(`;\s*--`),
		},
	},
	{
		threat: model.ThreatManipulation,
		reason: "prompt manipulation attempt detected",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bignore\s+(all\s+)?(the\s+)?(previous|prior|above|earlier)\s+(instructions?|prompts?|rules?)`),
			regexp.MustCompile(`(?i)\bdisregard\s+(your|the|all)\s+\w*\s*(instructions?|rules?|guidelines?)`),
			regexp.MustCompile(`(?i)\bforget\s+(everything|all|your)\b`),
			regexp.MustCompile(`(?i)\bpretend\s+(you\s+are|to\s+be)\b`),
			regexp.MustCompile(`(?i)\bact\s+as\s+(if|a|an)\b`),
			regexp.MustCompile(`(?i)\byou\s+are\s+now\s+\w+`),
			regexp.MustCompile(`(?i)\b(reveal|show|print|repeat)\b.*\b(system\s+prompt|instructions?)\b`),
			regexp.MustCompile(`(?i)\bsystem\s+prompt\b`),
			regexp.MustCompile(`(?i)\bjailbreak`),
			regexp.MustCompile(`(?i)\b(dan|developer)\s+mode\b`),
			regexp.MustCompile(`(?i)\bbypass\b.*\b(filter|restriction|safety|rule)`),
		},
	},
	{
		threat: model.ThreatInjection,
		reason: "script injection attempt detected",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)<\s*script`),
			regexp.MustCompile(`(?i)\beval\s*\(`),
			regexp.MustCompile(`(?i)\bon(error|load|click|mouseover)\s*=`),
			regexp.MustCompile(`(?i)\bdocument\.(cookie|write|location)`),
			regexp.MustCompile(`(?i)\bwindow\.location`),
			regexp.MustCompile(`(?i)\balert\s*\(`),
		},
	},
}

// ClassifySafety gates a query before anything else sees it. The length
// group runs first: anything over MaxQueryLen counts as spam (the
// pipeline's sanitizer already truncates, so this fires mainly for
// direct callers of the classifier).
func ClassifySafety(text string) model.SecurityCheckResult {
	if utf8.RuneCountInString(text) > MaxQueryLen {
		return model.SecurityCheckResult{
			Safe:       false,
			Reason:     "query exceeds maximum length",
			ThreatType: model.ThreatSpam,
		}
	}
	for _, rule := range safetyRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(text) {
				return model.SecurityCheckResult{
					Safe:       false,
					Reason:     rule.reason,
					ThreatType: rule.threat,
				}
			}
		}
	}
	return model.SecurityCheckResult{Safe: true}
}

// threatResponses keys the fixed apology/redirect wording by threat.
var threatResponses = map[model.ThreatType]string{
	model.ThreatSpam:         "That message is a bit too long for me. Could you ask something shorter about Yash's work?",
	model.ThreatProfanity:    "Let's keep it friendly! I'm happy to talk about Yash's projects, skills, or experience.",
	model.ThreatHateSpeech:   "I won't engage with that. If you're curious about Yash's work, I'm all ears.",
	model.ThreatInjection:    "Nice try! I only answer questions about Yash's portfolio.",
	model.ThreatManipulation: "I'll stick to my day job: telling you about Yash's projects, skills, and experience.",
}

func threatResponse(threat model.ThreatType) string {
	if msg, ok := threatResponses[threat]; ok {
		return msg
	}
	return "I can't help with that. Ask me about Yash's projects, skills, or experience instead."
}
