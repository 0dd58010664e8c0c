package chatbot

// User-facing texts.
const (
	AskPrompt         = "Please ask me a question about Food Pulse! 🌍"
	WelcomeMessage    = "🌍 Welcome to Food Pulse Chatbot! I'm here to help you understand how we connect surplus food with people in need."
	FollowUpPrompt    = "What would you like to know about Food Pulse?"
	FarewellMessage   = "Thank you for using Food Pulse Chatbot! Together we can reduce food waste and fight hunger. 🌱❤️"
	OffTopicMessage   = "I specialize in Food Pulse, food donations, and hunger relief topics. How can I help you with these?"
	RateLimitMessage  = "I'm receiving many requests right now. Please wait a moment and try again."
	APIErrorMessage   = "I'm having trouble accessing information right now. Please try again in a moment."
	DailyLimitMessage = "I've reached my daily request limit. Please try again tomorrow or contact support."
	ClarifyHint       = "\n\nIf you need more specific details, feel free to ask!"
)

// GreetingReply welcome text followed by the follow-up question.
const GreetingReply = WelcomeMessage + " " + FollowUpPrompt
