package services

import (
	"fmt"
	"strings"
)

const defaultBankKey = "default"

// fallbackBank holds the questions used when no generator is configured or it fails.
var fallbackBank = map[string][]string{
	"software engineer": {
		"Tell me about yourself and your experience in software development.",
		"Describe a challenging technical problem you solved and your approach.",
		"How do you ensure code quality and maintainability in your projects?",
		"Walk me through your experience with version control and collaborative development.",
		"Explain your process for debugging complex issues in production.",
		"How do you stay updated with new technologies and best practices?",
		"Describe a time when you had to optimize application performance.",
	},
	"data scientist": {
		"Tell me about your background in data science and analytics.",
		"Describe a complex data analysis project you worked on.",
		"How do you approach feature engineering and model selection?",
		"Explain how you validate and evaluate machine learning models.",
		"Walk me through your experience with data visualization and storytelling.",
		"Describe a time when your analysis led to actionable business insights.",
		"How do you handle missing or inconsistent data in your datasets?",
	},
	"product manager": {
		"Tell me about your experience in product management.",
		"How do you prioritize features and manage product roadmaps?",
		"Describe a time when you launched a successful product or feature.",
		"How do you gather and incorporate user feedback into product decisions?",
		"Explain your process for working with cross-functional teams.",
		"Walk me through how you define and measure product success.",
		"Describe a time when you had to make a difficult trade-off decision.",
	},
	"ui/ux designer": {
		"Tell me about your design background and philosophy.",
		"Walk me through your design process from concept to completion.",
		"How do you balance user needs with business requirements?",
		"Describe a project where you significantly improved user experience.",
		"How do you conduct user research and testing?",
		"Explain how you collaborate with developers and product managers.",
		"Describe a time when you had to advocate for design decisions.",
	},
	"marketing manager": {
		"Tell me about your experience in marketing and campaign management.",
		"Describe a successful marketing campaign you led and its results.",
		"How do you measure marketing ROI and track campaign performance?",
		"Walk me through your approach to market research and audience targeting.",
		"How do you stay current with marketing trends and best practices?",
		"Describe a time when you had to adapt your strategy based on data.",
		"How do you manage marketing budgets and allocate resources?",
	},
	defaultBankKey: {
		"Tell me about yourself and your professional background.",
		"What are your key strengths and how do they relate to this role?",
		"Describe a challenging situation you faced at work and how you handled it.",
		"How do you prioritize tasks when managing multiple projects?",
		"Tell me about a time when you worked effectively in a team.",
		"What motivates you in your professional career?",
		"Where do you see yourself in the next 3-5 years?",
	},
}

// fallbackQuestions returns up to count questions for role. Roles without a
// bank of their own use the default bank.
func fallbackQuestions(role string, count int, background *candidateBackground) []string {
	bank, ok := fallbackBank[strings.ToLower(strings.TrimSpace(role))]
	if !ok {
		bank = fallbackBank[defaultBankKey]
	}

	questions := make([]string, min(count, len(bank)))
	copy(questions, bank)

	if background.personalizes() && len(questions) > 0 {
		topic := "your expertise"
		if len(background.Skills) > 0 {
			topic = background.Skills[0]
		}
		questions[0] = fmt.Sprintf("Tell me about yourself and your experience, particularly with %s.", topic)
	}
	return questions
}
