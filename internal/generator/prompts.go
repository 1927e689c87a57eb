package generator

import (
	"fmt"

	"github.com/clintrovert/nudgebot/pkg/types"
)

// promptKey is the two-key dispatch: the bucket picks the intent of
// the message, the list type picks its tone.
type promptKey struct {
	Bucket   types.Bucket
	ListType types.ListType
}

// promptTable holds one user prompt per (bucket, list type) pair.
// %[1]s is the resolved mention, %[2]s the task title. The
// completeness test covers the full cross product, so a new bucket or
// list type shows up as a test failure instead of a silent default.
var promptTable = map[promptKey]string{
	// completed: celebrate.
	{types.BucketCompleted, types.ListTypeSprint}:  "Write a short funny message (max 15 words) praising %[1]s for finishing the sprint task '%[2]s'. Cheer like the sprint just got faster. Use very simple words. Add 1 emoji.",
	{types.BucketCompleted, types.ListTypeFeature}: "Write a short funny message (max 15 words) praising %[1]s for shipping the feature '%[2]s'. Say how happy users will be. Use very simple words. Add 1 emoji.",
	{types.BucketCompleted, types.ListTypeBug}:     "Write a short funny message (max 15 words) praising %[1]s for squashing the bug '%[2]s'. Say things are stable now. Use very simple words. Add 1 emoji.",
	{types.BucketCompleted, types.ListTypeGeneral}: "Write a short funny message (max 15 words) praising %[1]s for finishing the task '%[2]s'. Use very simple words like a 5-year-old would understand. Add 1 emoji.",

	// due_today: remind.
	{types.BucketDueToday, types.ListTypeSprint}:  "Write a short funny reminder (max 15 words) telling %[1]s that the sprint task '%[2]s' is due today. Mention the sprint clock ticking. Use very simple words. Add 1 emoji.",
	{types.BucketDueToday, types.ListTypeFeature}: "Write a short funny reminder (max 15 words) telling %[1]s that the feature '%[2]s' is due today. Say users are waiting for it. Use very simple words. Add 1 emoji.",
	{types.BucketDueToday, types.ListTypeBug}:     "Write a short funny reminder (max 15 words) telling %[1]s that the bug '%[2]s' needs fixing today. Say things wobble until it is fixed. Use very simple words. Add 1 emoji.",
	{types.BucketDueToday, types.ListTypeGeneral}: "Write a short funny reminder (max 15 words) telling %[1]s that their task '%[2]s' is due today. Use very simple words like talking to a friend. Add 1 emoji.",

	// overdue: escalate (severity added separately by overdueClause).
	{types.BucketOverdue, types.ListTypeSprint}:  "Write a message (max 15 words) telling %[1]s that the sprint task '%[2]s' is late and slowing the sprint down. Use very simple words. Add 1 emoji.",
	{types.BucketOverdue, types.ListTypeFeature}: "Write a message (max 15 words) telling %[1]s that the feature '%[2]s' is late and users are still waiting. Use very simple words. Add 1 emoji.",
	{types.BucketOverdue, types.ListTypeBug}:     "Write a message (max 15 words) telling %[1]s that the bug '%[2]s' is still not fixed and things stay shaky. Use very simple words. Add 1 emoji.",
	{types.BucketOverdue, types.ListTypeGeneral}: "Write a message (max 15 words) telling %[1]s that their task '%[2]s' is late. Use very simple words. Add 1 emoji.",

	// unassigned: ask for a volunteer.
	{types.BucketUnassigned, types.ListTypeSprint}:  "Write a short funny message (max 15 words) asking who wants to grab the sprint task '%[2]s' so the sprint keeps moving. Use very simple words. Add 1 emoji.",
	{types.BucketUnassigned, types.ListTypeFeature}: "Write a short funny message (max 15 words) asking who wants to build the feature '%[2]s' and make users smile. Use very simple words. Add 1 emoji.",
	{types.BucketUnassigned, types.ListTypeBug}:     "Write a short funny message (max 15 words) asking who wants to fix the bug '%[2]s' and keep things steady. Use very simple words. Add 1 emoji.",
	{types.BucketUnassigned, types.ListTypeGeneral}: "Write a short funny message (max 15 words) asking who wants to take the task '%[2]s'. Use very simple words like talking to friends. Add 1 emoji.",

	// no_due_date: nudge about the missing deadline.
	{types.BucketNoDueDate, types.ListTypeSprint}:  "Write a short funny message (max 15 words) about %[1]s's sprint task '%[2]s' having no due date. Ask when it lands in the sprint. Use very simple words. Add 1 emoji.",
	{types.BucketNoDueDate, types.ListTypeFeature}: "Write a short funny message (max 15 words) about %[1]s's feature '%[2]s' having no due date. Ask when users get it. Use very simple words. Add 1 emoji.",
	{types.BucketNoDueDate, types.ListTypeBug}:     "Write a short funny message (max 15 words) about %[1]s's bug '%[2]s' having no due date. Ask how long things stay broken. Use very simple words. Add 1 emoji.",
	{types.BucketNoDueDate, types.ListTypeGeneral}: "Write a short funny message (max 15 words) about %[1]s's task '%[2]s' having no due date. Use very simple words everyone knows. Add 1 emoji.",
}

// buildPrompt assembles the user prompt for a classified task.
func buildPrompt(task *types.Task, mention string) string {
	template, ok := promptTable[promptKey{task.Bucket, task.ListType}]
	if !ok {
		// Unknown list types are normalized to general before this
		// point, so this only triggers on an unclassified task.
		template = promptTable[promptKey{task.Bucket, types.ListTypeGeneral}]
	}

	prompt := fmt.Sprintf(template, mention, task.Title)
	if task.Bucket == types.BucketOverdue {
		prompt += overdueClause(task.DaysOverdue)
	}
	return prompt
}

// overdueClause steps up the tone as tasks age. Two days late is still
// a joke, ten is not.
func overdueClause(days int) string {
	switch {
	case days <= 2:
		return fmt.Sprintf(" It is %d days late. Keep it light and funny.", days)
	case days <= 5:
		return fmt.Sprintf(" It is %d days late. Be firmer but not mean.", days)
	case days <= 10:
		return fmt.Sprintf(" It is %d days late. Be serious and direct.", days)
	default:
		return fmt.Sprintf(" It is %d days late. Be stern but professional.", days)
	}
}

const systemPrompt = "You write short, funny messages using very simple English. " +
	"Use words that a 5-year-old can understand. No big words, no jargon, no technical terms. " +
	"Talk like you're chatting with friends. Be funny but keep it simple and friendly."
