package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/config"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/repositories/postgres"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/SAP-F-2025/interview-coach/pkg"
	"gorm.io/datatypes"
)

type seedUser struct {
	email    string
	fullName string
	role     models.UserRole
	daysAgo  int
}

type seedInterview struct {
	user            int // index into users
	role            string
	timePerQuestion int
	totalDuration   int
	actualDuration  int
	daysAgo         int
	scores          [6]int // communication, confidence, technical, resume, personality, overall
	strengths       []string
	weaknesses      []string
	suggestions     []string
	recommendation  string
}

var users = []seedUser{
	{"admin@interview.ai", "Admin User", models.RoleAdmin, 90},
	{"john.smith@example.com", "John Smith", models.RoleUser, 60},
	{"sarah.johnson@example.com", "Sarah Johnson", models.RoleUser, 45},
	{"michael.chen@example.com", "Michael Chen", models.RoleUser, 30},
}

var resumeSkills = map[int][]string{
	1: {"Go", "TypeScript", "React", "PostgreSQL", "Docker"},
	2: {"Python", "Machine Learning", "Statistics", "SQL"},
	3: {"Figma", "User Research", "Prototyping", "Design Systems"},
}

var interviews = []seedInterview{
	{
		user: 1, role: "Software Engineer", timePerQuestion: 180, totalDuration: 900, actualDuration: 850, daysAgo: 20,
		scores:         [6]int{85, 82, 88, 90, 87, 86},
		strengths:      []string{"Strong technical knowledge", "Clear communication", "Problem-solving skills", "Experience with modern frameworks"},
		weaknesses:     []string{"Could elaborate more on system design", "Limited cloud platform experience"},
		suggestions:    []string{"Practice system design scenarios", "Gain more experience with AWS/Azure", "Work on concise explanations"},
		recommendation: "Excellent fit for Software Engineer role. Strong technical foundation and communication skills.",
	},
	{
		user: 2, role: "Data Scientist", timePerQuestion: 240, totalDuration: 1200, actualDuration: 1150, daysAgo: 15,
		scores:         [6]int{90, 88, 92, 95, 89, 91},
		strengths:      []string{"Exceptional analytical skills", "Deep ML knowledge", "Research-oriented mindset", "Strong statistical foundation"},
		weaknesses:     []string{"Could improve production deployment knowledge", "Limited big data tools experience"},
		suggestions:    []string{"Learn MLOps practices", "Gain experience with Spark/Hadoop", "Practice business communication"},
		recommendation: "Outstanding candidate for Data Scientist role. Excellent technical skills and analytical thinking.",
	},
	{
		user: 3, role: "UI/UX Designer", timePerQuestion: 180, totalDuration: 900, actualDuration: 880, daysAgo: 12,
		scores:         [6]int{92, 90, 85, 93, 91, 90},
		strengths:      []string{"User-centered design approach", "Strong portfolio", "Excellent visual design skills", "Collaborative mindset"},
		weaknesses:     []string{"Limited experience with design systems", "Could improve accessibility knowledge"},
		suggestions:    []string{"Study WCAG guidelines", "Build component libraries", "Practice rapid prototyping"},
		recommendation: "Highly qualified for UI/UX Designer role. Strong design thinking and user empathy.",
	},
	{
		user: 1, role: "Product Manager", timePerQuestion: 240, totalDuration: 1200, actualDuration: 1180, daysAgo: 8,
		scores:         [6]int{88, 85, 80, 78, 86, 83},
		strengths:      []string{"Strategic thinking", "Technical background advantage", "Good stakeholder management", "Data-driven approach"},
		weaknesses:     []string{"Limited product management experience", "Could strengthen market analysis skills", "Needs more leadership examples"},
		suggestions:    []string{"Take product management courses", "Work on customer discovery", "Develop go-to-market strategies"},
		recommendation: "Good potential for Product Manager role with some gaps to address. Technical background is a strong asset.",
	},
	{
		user: 2, role: "Marketing Manager", timePerQuestion: 180, totalDuration: 900, actualDuration: 920, daysAgo: 5,
		scores:         [6]int{87, 83, 82, 75, 85, 82},
		strengths:      []string{"Analytical mindset", "Digital marketing knowledge", "Data interpretation skills", "Creative problem solving"},
		weaknesses:     []string{"Limited traditional marketing experience", "Could improve brand strategy knowledge", "Needs more campaign examples"},
		suggestions:    []string{"Study brand positioning", "Gain experience with marketing automation", "Build portfolio of campaigns"},
		recommendation: "Moderate fit for Marketing Manager role. Strong analytical skills but needs more marketing experience.",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.Environment)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.AutoMigrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	if err := seed(context.Background(), postgres.New(db), time.Now()); err != nil {
		logger.Error("Seeder failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Seed data inserted", "users", len(users), "interviews", len(interviews))
}

func seed(ctx context.Context, repo repositories.Repository, now time.Time) error {
	daysAgo := func(days int) time.Time { return now.AddDate(0, 0, -days) }

	userIDs := make([]uint, len(users))
	for i, u := range users {
		avatar := fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", u.email)
		user := &models.User{
			Email:     u.email,
			FullName:  u.fullName,
			Role:      u.role,
			AvatarURL: &avatar,
			CreatedAt: daysAgo(u.daysAgo),
			UpdatedAt: daysAgo(u.daysAgo),
		}
		if err := repo.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.email, err)
		}
		userIDs[i] = user.ID
	}

	resumeIDs := make(map[int]uint, len(resumeSkills))
	for userIndex := 1; userIndex < len(users); userIndex++ {
		parsed, err := json.Marshal(models.ParsedResume{Skills: resumeSkills[userIndex]})
		if err != nil {
			return err
		}
		resume := &models.Resume{
			UserID:         userIDs[userIndex],
			FileURL:        fmt.Sprintf("/uploads/resumes/%d/resume.pdf", userIDs[userIndex]),
			FileName:       "resume.pdf",
			ParsedData:     datatypes.JSON(parsed),
			SuggestedRoles: datatypes.JSON("[]"),
			UploadedAt:     daysAgo(users[userIndex].daysAgo - 1),
		}
		if err := repo.Resumes().Create(ctx, resume); err != nil {
			return fmt.Errorf("create resume for %s: %w", users[userIndex].email, err)
		}
		resumeIDs[userIndex] = resume.ID
	}

	for _, iv := range interviews {
		started := daysAgo(iv.daysAgo)
		completed := started.Add(time.Duration(iv.actualDuration) * time.Second)
		resumeID := resumeIDs[iv.user]
		actual := iv.actualDuration

		interview := &models.Interview{
			UserID:          userIDs[iv.user],
			ResumeID:        &resumeID,
			Role:            iv.role,
			TimePerQuestion: iv.timePerQuestion,
			TotalDuration:   iv.totalDuration,
			ActualDuration:  &actual,
			Status:          models.InterviewCompleted,
			StartedAt:       started,
			CompletedAt:     &completed,
			CreatedAt:       started,
		}
		if err := repo.Interviews().Create(ctx, interview); err != nil {
			return fmt.Errorf("create %s interview: %w", iv.role, err)
		}

		recommendation := iv.recommendation
		evaluation := &models.Evaluation{
			InterviewID:            interview.ID,
			UserID:                 interview.UserID,
			CommunicationScore:     iv.scores[0],
			ConfidenceScore:        iv.scores[1],
			TechnicalAccuracyScore: iv.scores[2],
			ResumeAlignmentScore:   iv.scores[3],
			PersonalityFitScore:    iv.scores[4],
			OverallScore:           iv.scores[5],
			Strengths:              jsonList(iv.strengths),
			Weaknesses:             jsonList(iv.weaknesses),
			ImprovementSuggestions: jsonList(iv.suggestions),
			RoleFitRecommendation:  &recommendation,
			EvaluationData:         datatypes.JSON(`{"source":"seed"}`),
			CreatedAt:              completed,
		}
		if err := repo.Evaluations().Create(ctx, evaluation); err != nil {
			return fmt.Errorf("create %s evaluation: %w", iv.role, err)
		}
	}
	return nil
}

func jsonList(items []string) datatypes.JSON {
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}
