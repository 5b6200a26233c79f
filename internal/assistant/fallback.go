package assistant

import (
	"strings"

	"github.com/yashp/portfolio-assistant/internal/knowledge"
	"github.com/yashp/portfolio-assistant/internal/model"
)

// fallbackTrigger maps a broad topic to a prewritten answer. Triggers
// are evaluated in order; the first whose any keyword appears in the
// lowercased query wins. Specific project names come before the broad
// topics so "tell me about aria" gets the aria answer, not the generic
// projects tour.
type fallbackTrigger struct {
	keywords []string
	text     string
	action   *model.Action
}

var fallbackTriggers = []fallbackTrigger{
	{
		keywords: []string{"devfeed"},
		text:     "DevFeed is Yash's LinkedIn-style project feed: a scrolling timeline of his builds, experiments, and write-ups, complete with reactions and an activity graph. It's built with React, TypeScript, and a Go backend, and it powers the feed panel on this very site.",
		action:   openPanel("projects", "project-devfeed"),
	},
	{
		keywords: []string{"aria"},
		text:     "Aria is the assistant you're talking to right now! A voice-enabled chat widget with local retrieval over Yash's portfolio, content-safety filtering, and an LLM behind it for the open-ended questions. Very meta of you to ask.",
		action:   openPanel("projects", "project-aria"),
	},
	{
		keywords: []string{"project", "projects", "built", "building", "portfolio", "made", "created", "developed", "showcase"},
		text:     "Yash has built a bunch of things! Highlights: this portfolio site with its animated canvas background, DevFeed (a LinkedIn-style project feed), and Aria — the voice-enabled assistant you're chatting with. Open the projects panel to explore them all.",
		action:   openPanel("projects", ""),
	},
	{
		keywords: []string{"skill", "skills", "stack", "technologies", "technology", "languages", "frameworks"},
		text:     "Yash's toolkit: TypeScript, React, and Node.js on the front of the stack, Go and PostgreSQL behind it, with a soft spot for real-time features (WebSockets, speech APIs) and clean CI/CD. He picks up new tools the way other people pick up coffee cups.",
		action:   openPanel("skills", ""),
	},
	{
		keywords: []string{"contact", "email", "reach", "hire", "hiring", "linkedin", "github", "resume"},
		text:     "Want to reach Yash? The contact panel has his email, GitHub, and LinkedIn. He's always up for interesting projects, collaborations, or a good conversation about side projects that got out of hand.",
		action:   openPanel("contact", ""),
	},
	{
		keywords: []string{"education", "degree", "college", "university", "study", "studied", "school"},
		text:     "Yash is pursuing a B.Tech in Computer Science, where he's spent as much time building side projects as attending lectures — arguably the right ratio. Coursework favorites: distributed systems, algorithms, and human-computer interaction.",
	},
	{
		keywords: []string{"experience", "job", "intern", "internship", "worked", "career", "company", "freelance"},
		text:     "Yash has interned as a full-stack developer, shipped freelance web projects for small businesses, and maintains his own open-source tools. The common thread: taking things from idea to deployed, not just to demo.",
		action:   openPanel("experience", ""),
	},
	{
		keywords: []string{"about", "yourself", "who is yash", "bio", "introduce"},
		text:     "Yash is a full-stack developer who likes building things that feel alive: animated interfaces, real-time feeds, and talking assistants (hi!). When he's not coding he's probably refactoring something that already worked.",
	},
}

func openPanel(panel, id string) *model.Action {
	payload := map[string]interface{}{"panel": panel}
	if id != "" {
		payload["id"] = id
	}
	return &model.Action{Type: "open_panel", Payload: payload}
}

const fallbackChunkMaxLen = 400

// Fallback produces the locally-computed answer used whenever the
// delegate can't. It never returns an empty string: keyword table first,
// then the top retrieved chunk, then a generic nudge.
func Fallback(query string, top []knowledge.SearchResult) (string, *model.Action) {
	lower := strings.ToLower(query)
	for _, trigger := range fallbackTriggers {
		for _, keyword := range trigger.keywords {
			if strings.Contains(lower, keyword) {
				return trigger.text, trigger.action
			}
		}
	}
	if len(top) > 0 {
		chunk := top[0].Chunk
		text := chunk.Text
		if truncated := truncateRunes(text, fallbackChunkMaxLen); truncated != text {
			text = truncated + "…"
		}
		var action *model.Action
		switch chunk.Metadata.Type {
		case model.ChunkTypeProject:
			action = openPanel("projects", chunk.ID)
		case model.ChunkTypeExperience:
			action = openPanel("experience", chunk.ID)
		}
		return text, action
	}
	return "I'm not sure about that one! Try asking me about Yash's projects, skills, education, or experience.", nil
}
