package resumeparser

import (
	"cmp"
	"encoding/json"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/SAP-F-2025/interview-coach/internal/models"
)

const (
	maxSummaryLength   = 300
	maxSectionLines    = 6
	maxSuggestedRoles  = 5
	minRoleSkillsMatch = 1
)

// knownSkills are matched case-insensitively on word boundaries. The display
// form is what ends up in the parsed document.
var knownSkills = []string{
	"JavaScript", "TypeScript", "React", "Angular", "Vue", "Node.js", "Python", "Go", "Java",
	"C#", "C++", "Ruby", "PHP", "Kotlin", "Swift", "SQL", "PostgreSQL", "MySQL", "MongoDB",
	"Redis", "Docker", "Kubernetes", "AWS", "GCP", "Azure", "Git", "HTML", "CSS", "REST",
	"GraphQL", "Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas",
	"NumPy", "Statistics", "Tableau", "Power BI", "Excel", "Figma", "Sketch", "Adobe XD",
	"User Research", "Prototyping", "Wireframing", "Agile", "Scrum", "Jira", "Roadmapping",
	"A/B Testing", "SEO", "SEM", "Google Analytics", "Content Marketing", "Social Media",
	"Email Marketing", "Copywriting",
}

// roleSkills maps each suggestible role to the skills that point at it.
var roleSkills = []struct {
	Role   string
	Skills []string
}{
	{"Software Engineer", []string{"Go", "Java", "Python", "C#", "C++", "Kotlin", "Git", "SQL", "Docker"}},
	{"Full Stack Developer", []string{"JavaScript", "TypeScript", "React", "Angular", "Vue", "Node.js", "SQL", "PostgreSQL", "MongoDB"}},
	{"Frontend Developer", []string{"JavaScript", "TypeScript", "React", "Angular", "Vue", "HTML", "CSS"}},
	{"Backend Developer", []string{"Node.js", "Go", "Java", "Python", "PostgreSQL", "MySQL", "Redis", "REST", "GraphQL"}},
	{"DevOps Engineer", []string{"Docker", "Kubernetes", "AWS", "GCP", "Azure"}},
	{"Data Scientist", []string{"Python", "Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy", "Statistics", "SQL"}},
	{"Data Analyst", []string{"SQL", "Excel", "Tableau", "Power BI", "Statistics", "Pandas"}},
	{"Product Manager", []string{"Agile", "Scrum", "Jira", "Roadmapping", "A/B Testing", "User Research"}},
	{"UI/UX Designer", []string{"Figma", "Sketch", "Adobe XD", "User Research", "Prototyping", "Wireframing", "CSS"}},
	{"Marketing Manager", []string{"SEO", "SEM", "Google Analytics", "Content Marketing", "Social Media", "Email Marketing", "Copywriting", "A/B Testing"}},
}

var skillPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(knownSkills))
	for _, skill := range knownSkills {
		// \b does not work next to symbols such as "+" or "#", so use explicit boundaries.
		patterns[skill] = regexp.MustCompile(`(?i)(^|[^a-z0-9+#.])` + regexp.QuoteMeta(skill) + `($|[^a-z0-9+#])`)
	}
	return patterns
}()

// Analysis is what the parser derives from a résumé's text.
type Analysis struct {
	Parsed         models.ParsedResume
	SuggestedRoles []string
}

// Analyze scans text for known skills and résumé sections and suggests roles.
func Analyze(text string) Analysis {
	skills := ExtractSkills(text)
	parsed := models.ParsedResume{
		Skills:  skills,
		Summary: Summarize(text),
	}
	if experience := section(text, "experience", "work experience", "employment", "work history"); len(experience) > 0 {
		parsed.Experience = json.RawMessage(models.MustJSON(experience))
	}
	if education := section(text, "education", "academic background"); len(education) > 0 {
		parsed.Education = json.RawMessage(models.MustJSON(education))
	}

	return Analysis{
		Parsed:         parsed,
		SuggestedRoles: SuggestRoles(skills),
	}
}

// ExtractSkills returns known skills found in text, in catalogue order.
func ExtractSkills(text string) []string {
	skills := []string{}
	if strings.TrimSpace(text) == "" {
		return skills
	}
	for _, skill := range knownSkills {
		if skillPatterns[skill].MatchString(text) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// SuggestRoles ranks roles by how many of their skills are present.
func SuggestRoles(skills []string) []string {
	type scored struct {
		role  string
		score int
		order int
	}
	var ranked []scored
	for idx, rs := range roleSkills {
		score := 0
		for _, skill := range rs.Skills {
			if slices.Contains(skills, skill) {
				score++
			}
		}
		if score >= minRoleSkillsMatch {
			ranked = append(ranked, scored{role: rs.Role, score: score, order: idx})
		}
	}

	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	roles := []string{}
	for _, r := range ranked {
		if len(roles) == maxSuggestedRoles {
			break
		}
		roles = append(roles, r.role)
	}
	return roles
}

// Summarize prefers the paragraph under a summary heading and falls back to
// the first paragraph, truncated on a word boundary.
func Summarize(text string) string {
	if lines := section(text, "summary", "professional summary", "profile", "objective", "about me"); len(lines) > 0 {
		return truncate(strings.Join(lines, " "), maxSummaryLength)
	}
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.Join(strings.Fields(paragraph), " ")
		if utf8.RuneCountInString(paragraph) >= 40 {
			return truncate(paragraph, maxSummaryLength)
		}
	}
	return ""
}

// section returns the lines following the first heading that matches one of names,
// up to the next blank line or heading.
func section(text string, names ...string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !isHeading(line, names) {
			continue
		}
		var out []string
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" && len(out) > 0 {
				break
			}
			if next == "" {
				continue
			}
			if isAnyHeading(next) || len(out) == maxSectionLines {
				break
			}
			out = append(out, strings.TrimLeft(next, "-•* "))
		}
		return out
	}
	return nil
}

var allHeadings = []string{
	"summary", "professional summary", "profile", "objective", "about me",
	"experience", "work experience", "employment", "work history",
	"education", "academic background", "skills", "technical skills",
	"projects", "certifications", "languages", "references",
}

func isHeading(line string, names []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line), ":")))
	return slices.Contains(names, normalized)
}

func isAnyHeading(line string) bool {
	return isHeading(line, allHeadings)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)[:max]
	cut := string(runes)
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
