package db

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// Dashboard loads the user's most recent resumes and interviews and summarizes them.
func (db *DB) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	resumes, err := db.ListRecentResumes(ctx, userID, RecentLimit)
	if err != nil {
		return nil, err
	}
	interviews, err := db.ListRecentInterviews(ctx, userID, RecentLimit)
	if err != nil {
		return nil, err
	}
	return NewDashboard(resumes, interviews), nil
}

// NewDashboard computes the stats for an already loaded set of recent rows.
func NewDashboard(resumes []Resume, interviews []Interview) *Dashboard {
	if resumes == nil {
		resumes = []Resume{}
	}
	if interviews == nil {
		interviews = []Interview{}
	}
	return &Dashboard{
		Resumes:    resumes,
		Interviews: interviews,
		Stats: DashboardStats{
			TotalResumes:    len(resumes),
			TotalInterviews: len(interviews),
			AvgScore:        AverageATSScore(resumes),
		},
	}
}

// AverageATSScore sums the resumes that have a score and divides by the number
// of resumes, scored or not, rounding half up. Zero resumes gives 0.
func AverageATSScore(resumes []Resume) int {
	if len(resumes) == 0 {
		return 0
	}
	sum := 0
	for _, r := range resumes {
		if r.ATSScore != nil {
			sum += *r.ATSScore
		}
	}
	return int(math.Floor(float64(sum)/float64(len(resumes)) + 0.5))
}
