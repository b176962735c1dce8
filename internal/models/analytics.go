package models

// PerformanceBucket labels an overall score band.
type PerformanceBucket string

const (
	BucketExcellent PerformanceBucket = "Excellent"
	BucketGood      PerformanceBucket = "Good"
	BucketAverage   PerformanceBucket = "Average"
	BucketPoor      PerformanceBucket = "Poor"
)

// PerformanceBuckets lists buckets from best to worst.
var PerformanceBuckets = []PerformanceBucket{BucketExcellent, BucketGood, BucketAverage, BucketPoor}

// BucketFor places an overall score into its band.
func BucketFor(score int) PerformanceBucket {
	switch {
	case score >= 85:
		return BucketExcellent
	case score >= 70:
		return BucketGood
	case score >= 50:
		return BucketAverage
	default:
		return BucketPoor
	}
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type BucketCount struct {
	Name  PerformanceBucket `json:"name"`
	Count int64             `json:"count"`
}

// AnalyticsOverview is the admin dashboard summary.
type AnalyticsOverview struct {
	TotalUsers          int64         `json:"totalUsers"`
	TotalInterviews     int64         `json:"totalInterviews"`
	CompletedInterviews int64         `json:"completedInterviews"`
	TotalEvaluations    int64         `json:"totalEvaluations"`
	AverageDuration     float64       `json:"averageDuration"` // seconds
	CompletionRate      float64       `json:"completionRate"`  // percent
	AverageScore        float64       `json:"averageScore"`
	RoleDistribution    []RoleCount   `json:"roleDistribution"`
	Performance         []BucketCount `json:"performance"`
}

type ScoreAverages struct {
	Communication   int `json:"communication"`
	Confidence      int `json:"confidence"`
	Technical       int `json:"technical"`
	ResumeAlignment int `json:"resumeAlignment"`
	Personality     int `json:"personality"`
	Overall         int `json:"overall"`
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type RolePerformance struct {
	Role       string `json:"role"`
	AvgScore   int    `json:"avgScore"`
	Interviews int    `json:"interviews"`
}

// PerformanceStats summarizes one user's evaluations.
type PerformanceStats struct {
	UserID          uint              `json:"userId"`
	Count           int               `json:"count"`
	Averages        ScoreAverages     `json:"averages"`
	Trend           Trend             `json:"trend"`
	TrendValue      int               `json:"trendValue"`
	TopStrengths    []string          `json:"topStrengths"`
	TopWeaknesses   []string          `json:"topWeaknesses"`
	RolePerformance []RolePerformance `json:"rolePerformance"`
}

// InterviewReportRow is one line of the interview export.
type InterviewReportRow struct {
	InterviewID    uint
	UserEmail      string
	Role           string
	Status         InterviewStatus
	StartedAt      string
	CompletedAt    string
	ActualDuration *int
	QuestionCount  int
	OverallScore   *int
}
