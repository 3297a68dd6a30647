package ai

const assistantSystemPrompt = `You are KE-ROUMA's AI Kitchen Assistant, an expert in African cuisine and cooking.
You help users with:
- African recipe recommendations and cooking tips
- Ingredient substitutions and cooking techniques
- Nutritional advice for African dishes
- Cultural context about African food traditions
- Meal planning and ingredient shopping advice

Keep responses helpful, friendly, and focused on African cuisine.
If asked about non-food topics, politely redirect to cooking and recipes.`

// ChatApology is returned to the user when no provider could answer.
const ChatApology = "I'm sorry, I'm having trouble responding right now. Please try asking about African recipes or cooking tips!"

// BuildChatPrompt wraps a user message in the kitchen assistant persona.
func BuildChatPrompt(message string) string {
	return assistantSystemPrompt + "\n\nUser: " + message + "\n\nAssistant:"
}

// ChatSuggestions are starter questions shown in the chat UI.
func ChatSuggestions() []string {
	return []string{
		"What's a good Nigerian breakfast recipe?",
		"How do I make authentic jollof rice?",
		"What are healthy African vegetarian dishes?",
		"Can you suggest a quick Kenyan dinner?",
		"What spices are essential for Ethiopian cooking?",
		"How do I prepare traditional South African bobotie?",
		"What's a good substitute for cassava flour?",
		"Tell me about Moroccan tagine cooking techniques",
	}
}
