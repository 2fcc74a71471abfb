package llm

// EstimatePromptTokens approximates the token cost of a request whose real
// usage counts never arrived, such as a failed call. The character length of
// both prompts deliberately overestimates rather than tokenizing; it keeps
// the usage ledger conservative without pulling in a tokenizer.
func EstimatePromptTokens(systemPrompt, userPrompt string) int {
	return len(systemPrompt) + len(userPrompt)
}
