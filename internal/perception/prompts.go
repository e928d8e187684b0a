package perception

const analysisPrompt = `You are a sentiment analysis expert. Analyze the following customer text.
Respond with a single JSON object containing:
1. "sentiment": "positive", "negative", or "neutral".
2. "topic": "network_signal", "billing", "customer_service", "app_functionality", or "other".
3. "urgency": "high", "medium", or "low".

Text: %q`
