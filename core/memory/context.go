package memory

// Context is what the classifier gets to know about the conversation.
type Context struct {
	UserName           string   `json:"user_name,omitempty"`
	RecentConversation []string `json:"recent_conversation,omitempty"`
	PendingIntent      string   `json:"pending_intent,omitempty"`
	CurrentQuestion    string   `json:"current_question,omitempty"`
}

// IsEmpty reports whether there is nothing worth telling the classifier.
func (c Context) IsEmpty() bool {
	return c.UserName == "" && len(c.RecentConversation) == 0 &&
		c.PendingIntent == "" && c.CurrentQuestion == ""
}

// BuildContext combines the most recent historyLines of the session with
// the known facts. History and slot-filling state come from a single
// snapshot so they always agree.
func BuildContext(facts Facts, session *Session, historyLines int) Context {
	ctx := Context{UserName: facts.UserName()}
	if session == nil {
		return ctx
	}

	state := session.Snapshot()
	ctx.RecentConversation = state.RecentLines(historyLines)
	ctx.PendingIntent = state.Slots.PendingIntent
	ctx.CurrentQuestion = state.Slots.CurrentQuestion
	return ctx
}
