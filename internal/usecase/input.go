package usecase

import (
	"fmt"
	"time"

	"github.com/naka-gawa/github-issue-report/internal/domain"
)

// ResolveDateRange parses the optional YYYY-MM-DD bounds.
// An empty from defaults to the day before now, an empty to defaults to now.
func ResolveDateRange(fromStr, toStr string, now time.Time) (domain.DateRange, error) {
	from := now.AddDate(0, 0, -1)
	to := now
	if fromStr != "" {
		t, err := time.Parse(domain.DateLayout, fromStr)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: invalid --from-date %q, please use YYYY-MM-DD: %w", domain.ErrParse, fromStr, err)
		}
		from = t
	}
	if toStr != "" {
		t, err := time.Parse(domain.DateLayout, toStr)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: invalid --to-date %q, please use YYYY-MM-DD: %w", domain.ErrParse, toStr, err)
		}
		to = t
	}
	return domain.NewDateRange(from, to), nil
}

// ReportFileName is the output name for a ranged report.
func ReportFileName(r domain.DateRange) string {
	return fmt.Sprintf("issues_report_%s_to_%s.pdf", r.FromString(), r.ToString())
}

// DailyReportFileName is the fixed output name of the daily report.
const DailyReportFileName = "daily_issues_report.pdf"
