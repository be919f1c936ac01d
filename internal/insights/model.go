package insights

import "time"

// RefreshInterval is how long a snapshot stays fresh after it is written.
const RefreshInterval = 7 * 24 * time.Hour

const (
	DemandHigh   = "High"
	DemandMedium = "Medium"
	DemandLow    = "Low"

	OutlookPositive = "Positive"
	OutlookNeutral  = "Neutral"
	OutlookNegative = "Negative"
)

type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// Insight is the shared snapshot for one industry.
type Insight struct {
	ID                string        `json:"id"`
	Industry          string        `json:"industry"`
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
	UpdatedAt         time.Time     `json:"lastUpdated"`
	NextUpdate        time.Time     `json:"nextUpdate"`
}

// Fresh reports whether the snapshot can still be served at now.
func (i Insight) Fresh(now time.Time) bool {
	return i.NextUpdate.After(now)
}

// SweepFailure is one industry the sweep could not refresh.
type SweepFailure struct {
	Industry string `json:"industry"`
	Error    string `json:"error"`
}

type SweepReport struct {
	Industries int            `json:"industries"`
	Refreshed  int            `json:"refreshed"`
	Failed     []SweepFailure `json:"failed"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
}
