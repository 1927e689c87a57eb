package generator

import (
	"fmt"
	"strings"

	"github.com/clintrovert/nudgebot/pkg/types"
)

// taskFlavor is a rough guess at what a task is about, scanned from
// its title. Only used to pick a fallback one-liner when the model is
// unavailable.
type taskFlavor string

const (
	flavorBug     taskFlavor = "bug"
	flavorTest    taskFlavor = "test"
	flavorDesign  taskFlavor = "design"
	flavorAPI     taskFlavor = "api"
	flavorDeploy  taskFlavor = "deploy"
	flavorDocs    taskFlavor = "docs"
	flavorMeeting taskFlavor = "meeting"
	flavorGeneral taskFlavor = "general"
)

var flavorKeywords = []struct {
	flavor taskFlavor
	words  []string
}{
	{flavorBug, []string{"bug", "fix", "error", "issue", "broken"}},
	{flavorTest, []string{"test", "testing", "qa", "quality"}},
	{flavorDesign, []string{"design", "ui", "ux", "interface", "mockup"}},
	{flavorAPI, []string{"api", "endpoint", "service", "backend"}},
	{flavorDeploy, []string{"deploy", "release", "production", "launch"}},
	{flavorDocs, []string{"document", "docs", "readme", "guide"}},
	{flavorMeeting, []string{"meeting", "call", "discuss", "review"}},
}

func detectFlavor(title string) taskFlavor {
	lower := strings.ToLower(title)
	for _, fk := range flavorKeywords {
		for _, w := range fk.words {
			if strings.Contains(lower, w) {
				return fk.flavor
			}
		}
	}
	return flavorGeneral
}

// fallbackOneLiners are the deterministic replacements for model
// output, keyed by bucket then flavor. %s is the resolved mention.
var fallbackOneLiners = map[types.Bucket]map[taskFlavor]string{
	types.BucketCompleted: {
		flavorBug:     "🐛 %s fixed that bug! Nice work!",
		flavorTest:    "✅ %s tested it! All good!",
		flavorDesign:  "🎨 %s made it look great!",
		flavorAPI:     "🔌 %s connected it! Works now!",
		flavorDeploy:  "🚀 %s put it live! Success!",
		flavorDocs:    "📚 %s wrote it down! Clear!",
		flavorMeeting: "🤝 %s had the meeting! Done!",
		flavorGeneral: "🎉 Great job %s! Task done!",
	},
	types.BucketDueToday: {
		flavorBug:     "🐛 Hey %s, fix that bug today!",
		flavorTest:    "🧪 Hey %s, test it today!",
		flavorDesign:  "🎨 Hey %s, make it pretty today!",
		flavorAPI:     "🔌 Hey %s, connect it today!",
		flavorDeploy:  "🚀 Hey %s, put it live today!",
		flavorDocs:    "📚 Hey %s, write it today!",
		flavorMeeting: "🤝 Hey %s, meeting today!",
		flavorGeneral: "⏰ Hey %s, task due today!",
	},
	types.BucketOverdue: {
		flavorBug:     "🐛 %s, that bug is still there!",
		flavorTest:    "🧪 %s, still need to test it!",
		flavorDesign:  "🎨 %s, still need to design it!",
		flavorAPI:     "🔌 %s, still need to connect it!",
		flavorDeploy:  "🚀 %s, still need to put it live!",
		flavorDocs:    "📚 %s, still need to write it!",
		flavorMeeting: "🤝 %s, still need that meeting!",
		flavorGeneral: "🚨 %s, task is late!",
	},
	types.BucketUnassigned: {
		flavorBug:     "🐛 Who wants to fix this bug? (ping %s)",
		flavorTest:    "🧪 Who wants to test this? (ping %s)",
		flavorDesign:  "🎨 Who wants to design this? (ping %s)",
		flavorAPI:     "🔌 Who wants to connect this? (ping %s)",
		flavorDeploy:  "🚀 Who wants to put this live? (ping %s)",
		flavorDocs:    "📚 Who wants to write this? (ping %s)",
		flavorMeeting: "🤝 Who wants to join this meeting? (ping %s)",
		flavorGeneral: "🤷 Who wants this task? (ping %s)",
	},
	types.BucketNoDueDate: {
		flavorBug:     "🐛 %s, when will you fix this bug?",
		flavorTest:    "🧪 %s, when will you test this?",
		flavorDesign:  "🎨 %s, when will you design this?",
		flavorAPI:     "🔌 %s, when will you connect this?",
		flavorDeploy:  "🚀 %s, when will you put this live?",
		flavorDocs:    "📚 %s, when will you write this?",
		flavorMeeting: "🤝 %s, when is this meeting?",
		flavorGeneral: "📅 %s, when is this due?",
	},
}

// fallbackText produces the deterministic one-liner used when the
// model call fails. Overdue tasks past the joke window get the
// escalating variants instead of the flavored ones.
func fallbackText(task *types.Task, mention string) string {
	if task.Bucket == types.BucketOverdue && task.DaysOverdue > 2 {
		return overdueFallback(mention, task.DaysOverdue)
	}

	flavors, ok := fallbackOneLiners[task.Bucket]
	if !ok {
		return fmt.Sprintf("Task update for %s", mention)
	}
	return fmt.Sprintf(flavors[detectFlavor(task.Title)], mention)
}

func overdueFallback(mention string, days int) string {
	switch {
	case days <= 5:
		return fmt.Sprintf("🔔 %s, %d days late now. Time to catch up!", mention, days)
	case days <= 10:
		return fmt.Sprintf("🚨 %s, this is %d days late. Please finish it soon!", mention, days)
	default:
		return fmt.Sprintf("⚠️ %s, %d days late is too much. We need this done now!", mention, days)
	}
}
