package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

type fakeModel struct {
	reply  string
	err    error
	prompt string
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompt += text.Text
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestInsightUsesModel(t *testing.T) {
	model := &fakeModel{reply: "  Riyadh leads the postings.  "}
	svc := &CommentaryService{Client: model, Timeout: time.Second, Logger: zap.NewNop()}

	ds := sampleDataset()
	f, _ := ResolveFilter(dtos.FilterRequest{Region: "Riyadh"}, ds)
	d := Render(ds, f)

	c := svc.Insight(context.Background(), &d)
	if c.AIInsight != "Riyadh leads the postings." {
		t.Errorf("AIInsight = %q", c.AIInsight)
	}
	if len(c.Findings) != 3 {
		t.Errorf("Expected static findings alongside the insight, got %d", len(c.Findings))
	}
	if !strings.Contains(model.prompt, "region=Riyadh") || !strings.Contains(model.prompt, "matching postings: 3 of 7") {
		t.Errorf("Prompt is missing the aggregates:\n%s", model.prompt)
	}
}

func TestInsightFallsBackOnError(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	svc := &CommentaryService{Client: model, Timeout: time.Second, Logger: zap.NewNop()}

	c := svc.Insight(context.Background(), &dtos.DashboardResponse{MatchCount: 2})
	if c.AIInsight != "" || c.Closing == "" {
		t.Errorf("Expected static commentary on LLM error, got %+v", c)
	}
}

func TestInsightSkipsEmptySelection(t *testing.T) {
	model := &fakeModel{reply: "should not be used"}
	svc := &CommentaryService{Client: model, Timeout: time.Second, Logger: zap.NewNop()}

	c := svc.Insight(context.Background(), &dtos.DashboardResponse{MatchCount: 0})
	if c.AIInsight != "" || model.prompt != "" {
		t.Errorf("Expected no model call for an empty selection, got %+v", c)
	}
}

func TestDescribeStatsCapsRegions(t *testing.T) {
	d := &dtos.DashboardResponse{}
	for i := 0; i < promptRegionLimit+2; i++ {
		d.RegionCounts = append(d.RegionCounts, dtos.RegionCount{Region: fmt.Sprintf("R%02d", i), Count: 20 - i})
	}

	text := describeStats(d)
	if !strings.Contains(text, "R09=11;") || strings.Contains(text, "R10=") {
		t.Errorf("Expected exactly %d regions in prompt:\n%s", promptRegionLimit, text)
	}
	if !strings.Contains(text, " ...") {
		t.Errorf("Expected truncation marker:\n%s", text)
	}
}
