package generator

import (
	"strings"

	"github.com/clintrovert/nudgebot/pkg/types"
)

// MentionResolver converts ClickUp usernames into Slack mentions using
// the configured user mappings.
type MentionResolver struct {
	mappings types.UserMappings
}

// NewMentionResolver creates a resolver over the given mappings.
func NewMentionResolver(mappings types.UserMappings) *MentionResolver {
	return &MentionResolver{mappings: mappings}
}

// Resolve maps a single ClickUp username to a Slack mention. Mapped
// Slack user IDs (U...) become real <@id> mentions, mapped display
// names become @name, and unmapped users follow the configured
// fallback behavior.
func (r *MentionResolver) Resolve(source string) string {
	if source == "" || source == "everyone" {
		return r.mappings.DefaultMention
	}

	if mapped, ok := r.mappings.Mappings[source]; ok {
		if strings.HasPrefix(mapped, "U") {
			return "<@" + mapped + ">"
		}
		return "@" + mapped
	}

	if r.mappings.FallbackBehavior == types.FallbackDefault {
		return r.mappings.DefaultMention
	}
	// Untagged on purpose: without a mapping there is nobody to ping.
	return source
}

// ResolveAll resolves every assignee and joins the mentions into one
// readable phrase. No assignees at all means the default mention.
func (r *MentionResolver) ResolveAll(sources []string) string {
	if len(sources) == 0 {
		return r.mappings.DefaultMention
	}

	var mentions []string
	seen := map[string]bool{}
	for _, source := range sources {
		mention := r.Resolve(source)
		if !seen[mention] {
			seen[mention] = true
			mentions = append(mentions, mention)
		}
	}

	switch len(mentions) {
	case 1:
		return mentions[0]
	case 2:
		return mentions[0] + " and " + mentions[1]
	default:
		return strings.Join(mentions[:len(mentions)-1], ", ") + ", and " + mentions[len(mentions)-1]
	}
}
