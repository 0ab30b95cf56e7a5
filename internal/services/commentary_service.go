package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

var staticFindings = []string{
	"🔸 Big cities such as Riyadh, Jeddah and Dammam post more jobs than the other regions.",
	"🔸 Experience is in high demand in some sectors, while other jobs require none at all.",
	"🔸 Some jobs are open to both genders, but there is a clear gap between some fields.",
}

const staticClosing = "✅ The analysis shows how much experience matters in the Saudi job market, but there are still opportunities for new job seekers! 🚀"

// StaticCommentary is the fixed text shown under the charts.
func StaticCommentary() dtos.Commentary {
	findings := make([]string, len(staticFindings))
	copy(findings, staticFindings)
	return dtos.Commentary{Findings: findings, Closing: staticClosing}
}

type CommentaryService struct {
	// Client is nil when no API key is configured.
	Client  llms.Model
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewCommentaryService builds a Gemini-backed service. With an empty apiKey
// it only ever returns the static commentary.
func NewCommentaryService(ctx context.Context, apiKey, model string, timeout time.Duration, logger *zap.Logger) (*CommentaryService, error) {
	svc := &CommentaryService{Timeout: timeout, Logger: logger}
	if apiKey == "" {
		logger.Info("commentary: GEMINI_API_KEY not set, AI insight disabled")
		return svc, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	svc.Client = llm
	return svc, nil
}

const insightPrompt = `
You are a labour market analyst. Below are aggregate statistics from a filtered set of Saudi job postings.

### INSTRUCTIONS:
1. Write 2 to 3 plain sentences describing what stands out.
2. Only use the numbers given. Do not invent regions, sectors or figures.
3. Output plain text only. No markdown headings, no lists.

### FILTER:
%s

### STATISTICS:
%s
`

// Insight returns the static commentary, plus an AI paragraph when a client
// is configured. LLM failures are logged and the static text is returned.
func (s *CommentaryService) Insight(ctx context.Context, d *dtos.DashboardResponse) dtos.Commentary {
	out := StaticCommentary()
	if s == nil || s.Client == nil || d.MatchCount == 0 {
		return out
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(insightPrompt, describeSelection(d.Selection), describeStats(d))
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		s.Logger.Warn("commentary: insight generation failed", zap.Error(err))
		return out
	}
	out.AIInsight = strings.TrimSpace(resp)
	return out
}

func describeSelection(sel dtos.FilterSelection) string {
	return fmt.Sprintf("region=%s, gender=%s, experience=%d-%d years", sel.Region, sel.Gender, sel.ExperienceMin, sel.ExperienceMax)
}

// promptRegionLimit caps the regions listed in the prompt.
const promptRegionLimit = 10

func describeStats(d *dtos.DashboardResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "matching postings: %d of %d\n", d.MatchCount, d.TotalCount)

	b.WriteString("postings per region:")
	for i, rc := range d.RegionCounts {
		if i == promptRegionLimit {
			b.WriteString(" ...")
			break
		}
		fmt.Fprintf(&b, " %s=%d;", rc.Region, rc.Count)
	}
	b.WriteString("\n")

	b.WriteString("experience histogram (years: count):")
	for _, bin := range d.Experience.Bins {
		fmt.Fprintf(&b, " %.1f-%.1f: %d;", bin.Min, bin.Max, bin.Count)
	}
	b.WriteString("\n")

	b.WriteString("gender share:")
	for _, gs := range d.GenderShares {
		fmt.Fprintf(&b, " %s=%.1f%%;", gs.Label, gs.Percent)
	}
	b.WriteString("\n")
	return b.String()
}
