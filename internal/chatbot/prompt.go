package chatbot

import "fmt"

// PlatformDocument the only source the remote model may answer from.
const PlatformDocument = `Food Pulse is an innovative digital platform designed to bridge the gap between restaurants with surplus food and NGOs dedicated to feeding the underprivileged, ensuring that no edible food goes to waste. The platform's mission aligns directly with the United Nations Sustainable Development Goals (SDGs) — particularly SDG 2: Zero Hunger, SDG 12: Responsible Consumption and Production, and SDG 17: Partnerships for the Goals.

The process begins with restaurants registering and undergoing admin verification to ensure authenticity and adherence to basic food safety and hygiene standards. Once approved, they can list surplus food items, specifying details such as type (raw or cooked), quantity, best-before time, and pickup location. Verified NGOs can then browse these listings and request the items they require. Every request passes through an admin approval system to maintain transparency and traceability. After approval, NGOs coordinate with restaurants for food pickup or delivery, minimizing logistical confusion and ensuring safe handling.

Food Pulse's unique admin-mediated model ensures trust, accountability, and compliance throughout the process. Future expansions aim to integrate smart logistics partnerships, AI-based food matching, and real-time donation tracking to enhance efficiency. By transforming surplus into sustenance, Food Pulse promotes social responsibility, community welfare, and environmental sustainability.

Ultimately, Food Pulse is not just a platform — it's a movement towards eradicating hunger, reducing food waste, and fostering collaboration across sectors to build a more equitable and sustainable world.`

const systemPromptFormat = `You are a helpful, accurate assistant for Food Pulse platform.

CONTEXT INFORMATION:
%s

GUIDELINES:
- Answer based ONLY on the context provided above
- If information isn't in context, say you don't know
- Keep responses concise (2-3 paragraphs maximum)
- Be factual and helpful
- Focus on Food Pulse operations, registration, food safety, and impact
- If asked about unrelated topics, politely redirect to Food Pulse topics

%s

Current user question: %s`

// SystemPrompt embeds the platform document, the rendered conversation and
// the new question.
func SystemPrompt(history, query string) string {
	return fmt.Sprintf(systemPromptFormat, PlatformDocument, history, query)
}
