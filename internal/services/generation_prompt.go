package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

const generationSystemPrompt = "You are an expert interviewer generating behavioral and technical questions for job interviews. " +
	"Generate questions that are realistic, role-specific, and vary in difficulty from introductory to advanced."

const generationFormatInstruction = `Return a JSON array of objects with "questionText" and "questionNumber" fields. ` +
	"Questions should be specific to the role and progressively increase in complexity. " +
	`Format your response as: {"questions": [{"questionText": "...", "questionNumber": 1}, ...]}`

var errMalformedQuestions = errors.New("generator returned malformed questions")

// candidateBackground is the part of a parsed résumé that shapes generation.
type candidateBackground struct {
	Skills     []string
	Experience string
	Summary    string
	// HasExperience is true when the experience entry is present and not null.
	HasExperience bool
}

// backgroundFromResume reads skills, experience and summary from a parsed
// résumé document. Skills may be an array or a single string.
func backgroundFromResume(parsed datatypes.JSON) *candidateBackground {
	if len(parsed) == 0 || !gjson.ValidBytes(parsed) {
		return nil
	}
	doc := gjson.ParseBytes(parsed)
	if !doc.IsObject() {
		return nil
	}

	background := &candidateBackground{}
	switch skills := doc.Get("skills"); {
	case skills.IsArray():
		for _, skill := range skills.Array() {
			if s := strings.TrimSpace(skill.String()); s != "" {
				background.Skills = append(background.Skills, s)
			}
		}
	case skills.Type == gjson.String && strings.TrimSpace(skills.Str) != "":
		background.Skills = []string{strings.TrimSpace(skills.Str)}
	}

	if experience := doc.Get("experience"); experience.Exists() && experience.Type != gjson.Null {
		switch {
		case experience.Type == gjson.String:
			background.Experience = strings.TrimSpace(experience.Str)
		case experience.IsArray() && len(experience.Array()) == 0:
		case experience.IsObject() && len(experience.Map()) == 0:
		default:
			background.Experience = experience.Raw
		}
		background.HasExperience = background.Experience != ""
	}
	background.Summary = strings.TrimSpace(doc.Get("summary").String())
	return background
}

// personalizes reports whether the background is rich enough to tailor the first question.
func (b *candidateBackground) personalizes() bool {
	return b != nil && (len(b.Skills) > 0 || b.HasExperience)
}

func buildGenerationPrompt(role string, count int, background *candidateBackground) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Target role: %s\n", role)
	fmt.Fprintf(&sb, "Number of questions to generate: %d\n\n", count)

	if background != nil {
		sb.WriteString("Candidate background:\n")
		if len(background.Skills) > 0 {
			fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(background.Skills, ", "))
		}
		if background.HasExperience {
			fmt.Fprintf(&sb, "Experience: %s\n", background.Experience)
		}
		if background.Summary != "" {
			fmt.Fprintf(&sb, "Summary: %s\n", background.Summary)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(generationFormatInstruction)
	return sb.String()
}

// parseGeneratedQuestions accepts {"questions":[...]} or a bare array, optionally
// wrapped in a markdown code fence. Every item needs a non-empty questionText.
func parseGeneratedQuestions(content string) ([]string, error) {
	content = stripCodeFence(content)
	if !gjson.Valid(content) {
		return nil, fmt.Errorf("%w: response is not JSON", errMalformedQuestions)
	}

	doc := gjson.Parse(content)
	items := doc
	if !doc.IsArray() {
		items = doc.Get("questions")
	}
	if !items.IsArray() || len(items.Array()) == 0 {
		return nil, fmt.Errorf("%w: no questions array", errMalformedQuestions)
	}

	questions := make([]string, 0, len(items.Array()))
	for i, item := range items.Array() {
		text := item.Get("questionText")
		if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
			return nil, fmt.Errorf("%w: item %d has no questionText", errMalformedQuestions, i)
		}
		questions = append(questions, strings.TrimSpace(text.Str))
	}
	return questions, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		content = content[newline+1:]
	} else {
		content = strings.TrimPrefix(content, "json")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
