package ai

import "strings"

// DefaultEnhanceTemplate is used when neither the business nor the global
// template row resolves. Placeholders are substituted verbatim.
const DefaultEnhanceTemplate = `You are helping a customer of {businessName}, a {businessType} in the {industry} industry, polish their review.

Rewrite the following feedback as a well-written, natural-sounding customer review. Keep the original meaning and tone, fix grammar, and keep it concise.

Feedback: {originalText}

Return only the rewritten review text.`

// AnalyzePrompt asks the model for a strict JSON analysis of the feedback.
const AnalyzePrompt = `Analyze the following customer feedback and respond with ONLY a JSON object of the form {"sentiment":"positive|negative|neutral","keywords":["..."],"improvements":["..."]}. At most 5 keywords and 3 improvements.

Feedback: {originalText}`

// FillTemplate substitutes the named placeholders with plain text, no escaping.
func FillTemplate(template, businessName, businessType, industry, originalText string) string {
	replacer := strings.NewReplacer(
		"{businessName}", businessName,
		"{businessType}", businessType,
		"{industry}", industry,
		"{originalText}", originalText,
	)
	return replacer.Replace(template)
}
