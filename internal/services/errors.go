package services

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrDatabaseNotConfigured = repositories.ErrDatabaseNotConfigured
	ErrNotFound              = apperrors.NotFound(apperrors.CodeNotFound, "Resource not found")

	// User specific errors
	ErrUserNotFound      = apperrors.NotFound("USER_NOT_FOUND", "User not found")
	ErrUserRefNotFound   = apperrors.BadRequest("USER_NOT_FOUND", "User does not exist")
	ErrEmailExists       = apperrors.BadRequest("EMAIL_EXISTS", "Email already exists")
	ErrInvalidRoleFilter = apperrors.BadRequest("INVALID_ROLE_FILTER", "Role filter must be user or admin")

	// Resume specific errors
	ErrResumeNotFound    = apperrors.NotFound("RESUME_NOT_FOUND", "Resume not found")
	ErrResumeRefNotFound = apperrors.BadRequest("RESUME_NOT_FOUND", "Resume does not exist")
	ErrNoFieldsToUpdate  = apperrors.BadRequest("NO_FIELDS_TO_UPDATE", "No fields provided to update")
	ErrMissingFile       = apperrors.BadRequest("MISSING_FILE", "A résumé file is required")
	ErrInvalidFileType   = apperrors.BadRequest("INVALID_FILE_TYPE", "Only PDF, DOC and DOCX files are accepted")
	ErrFileTooLarge      = apperrors.BadRequest("FILE_TOO_LARGE", "File exceeds the 5 MiB limit")

	// Interview specific errors
	ErrInterviewNotFound       = apperrors.NotFound(apperrors.CodeNotFound, "Interview not found")
	ErrNoUpdates               = apperrors.BadRequest("NO_UPDATES", "No valid fields provided for update")
	ErrInterviewNotInProgress  = apperrors.BadRequest("INTERVIEW_NOT_IN_PROGRESS", "Interview must be in progress to generate questions")
	ErrQuestionsAlreadyCreated = apperrors.BadRequest("QUESTIONS_ALREADY_GENERATED", "Questions have already been generated for this interview")

	// Question specific errors
	ErrQuestionNotFound        = apperrors.NotFound(apperrors.CodeNotFound, "Question not found")
	ErrInvalidInterviewRef     = apperrors.BadRequest("INVALID_FOREIGN_KEY", "Interview does not exist")
	ErrDuplicateQuestionNumber = apperrors.BadRequest("DUPLICATE_QUESTION_NUMBER", "Question number already exists for this interview")
	ErrInvalidInterviewFilter  = apperrors.BadRequest("INVALID_INTERVIEW_ID", "Interview ID must be a positive integer")

	// Evaluation specific errors
	ErrEvaluationNotFound = apperrors.NotFound(apperrors.CodeNotFound, "Evaluation not found")
	ErrEvaluationExists   = apperrors.BadRequest("EVALUATION_EXISTS", "An evaluation already exists for this interview")
	ErrEvaluationRefs     = apperrors.BadRequest("FOREIGN_KEY_VIOLATION", "Referenced interview or user does not exist")
	ErrNoUpdateFields     = apperrors.BadRequest("NO_UPDATE_FIELDS", "No fields provided to update")
	ErrInvalidUserFilter  = apperrors.BadRequest("INVALID_USER_ID", "User ID must be a positive integer")
	ErrInvalidMinScore    = apperrors.BadRequest("INVALID_MIN_SCORE", "minScore must be an integer between 0 and 100")

	// Resume foreign key failures surface at insert time
	ErrResumeForeignKey = apperrors.BadRequest("FOREIGN_KEY_VIOLATION", "Referenced user does not exist")

	// Report errors
	ErrInvalidFormat = apperrors.BadRequest("INVALID_FORMAT", "format must be xlsx or csv")
)

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	apiErr, ok := apperrors.AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsValidation checks if error represents a rejected request
func IsValidation(err error) bool {
	apiErr, ok := apperrors.AsAPIError(err)
	return ok && apiErr.Status == http.StatusBadRequest
}

// IsDatabaseNotConfigured reports whether the repository is disabled
func IsDatabaseNotConfigured(err error) bool {
	return errors.Is(err, ErrDatabaseNotConfigured)
}

// repoError maps repository failures onto the caller's not-found error and
// wraps everything else with the failed operation.
func repoError(err error, notFound *apperrors.APIError, op string) error {
	switch {
	case err == nil:
		return nil
	case IsDatabaseNotConfigured(err):
		return err
	case notFound != nil && repositories.IsNotFound(err):
		return notFound
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
