package sentiment

const classifyPrompt = `Analyze the sentiment of the following text. Respond with exactly one word — one of: positive, negative, neutral.

Text: "%s"`
