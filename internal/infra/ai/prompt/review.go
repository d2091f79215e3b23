package prompt

import "fmt"

// ReviewAnalysis matches the JSON schema the system prompt demands.
type ReviewAnalysis struct {
	Sentiment string   `json:"sentiment"`
	Topics    []string `json:"topics"`
	Urgency   string   `json:"urgency"`
	Reasoning string   `json:"reasoning"`
}

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are an expert hotel review analyzer. Analyze reviews and return structured JSON data. You must produce one valid JSON object only (no markdown, no commentary, no code fences).`
}

// GetUserPrompt builds the classification instruction around one review text.
func GetUserPrompt(reviewText string) string {
	return fmt.Sprintf(`Analyze the following hotel review and provide a JSON response with these fields:

1. sentiment: Classify as "Positive", "Negative", or "Neutral"
2. topics: List of topics from: ["Cleanliness", "Service", "Amenities", "Location", "Value"]
3. urgency: Classify as "Critical" or "Standard"
   - Critical: mentions safety concerns, health issues (food poisoning, bed bugs), severe cleanliness problems, theft, discrimination, or violence
   - Standard: everything else
4. reasoning: Brief explanation of your classification

Review text: "%s"

Return ONLY valid JSON in this exact format:
{
    "sentiment": "Positive|Negative|Neutral",
    "topics": ["topic1", "topic2"],
    "urgency": "Critical|Standard",
    "reasoning": "explanation"
}`, reviewText)
}
