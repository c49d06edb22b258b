package prompt

import "fmt"

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a text analyst. You must produce one valid JSON object only (no markdown, no commentary). Do not include code fences.

Requirements:
- Output must be a single JSON object.
- "summary" is a 1-2 sentence summary of the text. It is required.
- "title" is a short title if one can be inferred, otherwise null.
- "topics" is an array of up to 3 key topic strings, most important first.
- "sentiment" is exactly one of: positive, neutral, negative.
- "confidence_score" is an integer from 0 to 100 expressing how confident you are in the analysis.

Schema (example with empty values):
{
  "title": "<string or null>",
  "summary": "<string>",
  "topics": ["<string>"],
  "sentiment": "<positive|neutral|negative>",
  "confidence_score": 0
}`
}

// GetUserPrompt builds the user message around the submitted text.
func GetUserPrompt(text string) string {
	return fmt.Sprintf("Analyze the following text and respond with the JSON per schema.\n\nText:\n%s", text)
}
