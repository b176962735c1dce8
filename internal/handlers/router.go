package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/interview-coach/internal/middleware"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/session"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

const serviceName = "interview-coach"

// RouterOptions carries the optional pieces of the HTTP surface.
type RouterOptions struct {
	// RateLimiter guards the expensive endpoints; nil disables limiting.
	RateLimiter *middleware.FixedWindowLimiter
	// UploadsDir is served under UploadsURL when résumés are stored locally.
	UploadsDir string
	UploadsURL string
}

type HandlerManager struct {
	userHandler       *UserHandler
	resumeHandler     *ResumeHandler
	interviewHandler  *InterviewHandler
	questionHandler   *QuestionHandler
	evaluationHandler *EvaluationHandler
	analyticsHandler  *AnalyticsHandler
	sessionHandler    *SessionHandler
	repo              repositories.Repository
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	sessions *session.Manager,
	repo repositories.Repository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		userHandler:       NewUserHandler(serviceManager.Users, serviceManager.Analytics, logger),
		resumeHandler:     NewResumeHandler(serviceManager.Resumes, logger),
		interviewHandler:  NewInterviewHandler(serviceManager.Interviews, serviceManager.Generation, logger),
		questionHandler:   NewQuestionHandler(serviceManager.Questions, logger),
		evaluationHandler: NewEvaluationHandler(serviceManager.Evaluations, logger),
		analyticsHandler:  NewAnalyticsHandler(serviceManager.Analytics, serviceManager.Reports, logger),
		sessionHandler:    NewSessionHandler(sessions, logger),
		repo:              repo,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, opts RouterOptions) {
	router.GET("/health", hm.HealthCheck)

	if opts.UploadsDir != "" && opts.UploadsURL != "" {
		router.Static(opts.UploadsURL, opts.UploadsDir)
	}

	api := router.Group("/api")
	{
		// Resource routes accept the id in the path or as ?id=
		users := api.Group("/users")
		{
			users.GET("", hm.userHandler.ListUsers)
			users.POST("", hm.userHandler.CreateUser)
			users.PUT("", hm.userHandler.UpdateUser)
			users.DELETE("", hm.userHandler.DeleteUser)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id", hm.userHandler.UpdateUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
			users.GET("/:id/performance", hm.userHandler.GetUserPerformance)
		}

		resumes := api.Group("/resumes")
		{
			resumes.GET("", hm.resumeHandler.ListResumes)
			resumes.POST("", hm.resumeHandler.CreateResume)
			resumes.PUT("", hm.resumeHandler.UpdateResume)
			resumes.DELETE("", hm.resumeHandler.DeleteResume)
			resumes.POST("/upload", middleware.RateLimit(opts.RateLimiter, "upload"), hm.resumeHandler.UploadResume)
			resumes.GET("/:id", hm.resumeHandler.GetResume)
			resumes.PUT("/:id", hm.resumeHandler.UpdateResume)
			resumes.DELETE("/:id", hm.resumeHandler.DeleteResume)
		}

		interviews := api.Group("/interviews")
		{
			interviews.GET("", hm.interviewHandler.ListInterviews)
			interviews.POST("", hm.interviewHandler.CreateInterview)
			interviews.PUT("", hm.interviewHandler.UpdateInterview)
			interviews.DELETE("", hm.interviewHandler.DeleteInterview)
			interviews.GET("/:id", hm.interviewHandler.GetInterview)
			interviews.PUT("/:id", hm.interviewHandler.UpdateInterview)
			interviews.DELETE("/:id", hm.interviewHandler.DeleteInterview)
			interviews.POST("/:id/generate-questions", middleware.RateLimit(opts.RateLimiter, "generate"), hm.interviewHandler.GenerateQuestions)
			interviews.POST("/:id/complete", hm.interviewHandler.CompleteInterview)
		}

		questions := api.Group("/questions")
		{
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.PUT("", hm.questionHandler.UpdateQuestion)
			questions.DELETE("", hm.questionHandler.DeleteQuestion)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
		}

		evaluations := api.Group("/evaluations")
		{
			evaluations.GET("", hm.evaluationHandler.ListEvaluations)
			evaluations.POST("", hm.evaluationHandler.CreateEvaluation)
			evaluations.PUT("", hm.evaluationHandler.UpdateEvaluation)
			evaluations.DELETE("", hm.evaluationHandler.DeleteEvaluation)
			evaluations.GET("/:id", hm.evaluationHandler.GetEvaluation)
			evaluations.PUT("/:id", hm.evaluationHandler.UpdateEvaluation)
			evaluations.DELETE("/:id", hm.evaluationHandler.DeleteEvaluation)
		}

		sessions := api.Group("/sessions/:interviewId")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("", hm.sessionHandler.GetSession)
			sessions.DELETE("", hm.sessionHandler.CloseSession)
			sessions.POST("/permissions", middleware.RateLimit(opts.RateLimiter, "generate"), hm.sessionHandler.GrantPermissions)
			sessions.POST("/record", hm.sessionHandler.StartRecording)
			sessions.POST("/pause", hm.sessionHandler.Pause)
			sessions.POST("/resume", hm.sessionHandler.Resume)
			sessions.POST("/next", hm.sessionHandler.Next)
			sessions.POST("/finish", hm.sessionHandler.Finish)
		}

		api.GET("/analytics/overview", hm.analyticsHandler.GetOverview)
		api.GET("/reports/interviews", hm.analyticsHandler.ExportInterviews)
	}
}

// HealthCheck reports liveness and whether a database is configured
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  serviceName,
		"database": hm.repo.Available(),
	})
}
