//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// Runs against a live server (and its embedding backend):
//
//	go test -tags e2e ./test/e2e/
const (
	defaultBaseURL = "http://localhost:8080"
	e2eUserID      = "e2e_user"
	e2eAnswer      = "In my previous role I solved this by splitting the work into smaller deliverables. " +
		"For example, we shipped the riskiest change behind a feature flag first and watched the metrics for a week before rolling it out fully."
)

var (
	baseURL     string
	interviewID string
	totalQs     int
)

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	os.Exit(m.Run())
}

func TestE2EFlow(t *testing.T) {
	// Step 1: Health check
	t.Run("Health", func(t *testing.T) {
		resp, err := get("/health")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 2: List categories
	t.Run("ListCategories", func(t *testing.T) {
		resp, err := get("/api/v1/categories")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Categories []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"categories"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if len(body.Data.Categories) != 4 {
			t.Fatalf("expected 4 categories, got %d", len(body.Data.Categories))
		}
	})

	// Step 3: Reject an unknown category
	t.Run("CreateUnknownCategory", func(t *testing.T) {
		resp, err := post("/api/v1/interviews", map[string]string{
			"category": "astrology",
			"user_id":  e2eUserID,
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 4: Start an interview
	t.Run("CreateInterview", func(t *testing.T) {
		resp, err := post("/api/v1/interviews", map[string]string{
			"category": "technical",
			"user_id":  e2eUserID,
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				InterviewID string `json:"interview_id"`
				Question    struct {
					ID   string `json:"id"`
					Text string `json:"text"`
				} `json:"question"`
				TotalQuestions int `json:"total_questions"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		interviewID = body.Data.InterviewID
		totalQs = body.Data.TotalQuestions
		if interviewID == "" {
			t.Fatal("interview ID missing")
		}
		if totalQs == 0 {
			t.Fatal("total_questions missing")
		}
		if body.Data.Question.Text == "" {
			t.Fatal("first question missing")
		}
		t.Logf("Interview started: %s (%d questions)", interviewID, totalQs)
	})

	// Step 5: Answer every question; the last response carries the report
	t.Run("SubmitAnswersUntilComplete", func(t *testing.T) {
		for i := 0; i < totalQs; i++ {
			resp, err := post(fmt.Sprintf("/api/v1/interviews/%s/answers", interviewID), map[string]string{
				"answer_text": e2eAnswer,
			})
			if err != nil {
				t.Fatalf("request %d failed: %v", i, err)
			}

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("answer %d: status %d: %s", i, resp.StatusCode, readBody(resp))
			}

			var body struct {
				Data struct {
					InterviewComplete bool `json:"interview_complete"`
					Analysis          struct {
						Overall      float64 `json:"overall_score"`
						QualityLabel string  `json:"quality_label"`
					} `json:"current_response_analysis"`
					Report *struct {
						OverallScore float64 `json:"overall_score"`
					} `json:"report"`
				} `json:"data"`
			}
			decodeJSON(t, resp, &body)
			resp.Body.Close()

			if body.Data.Analysis.QualityLabel == "" {
				t.Fatalf("answer %d: analysis missing", i)
			}

			last := i == totalQs-1
			if body.Data.InterviewComplete != last {
				t.Fatalf("answer %d: interview_complete=%v, want %v", i, body.Data.InterviewComplete, last)
			}
			if last && body.Data.Report == nil {
				t.Fatal("final answer: report missing")
			}
		}
		t.Logf("Interview completed")
	})

	// Step 6: Status shows COMPLETED
	t.Run("StatusCompleted", func(t *testing.T) {
		resp, err := get("/api/v1/interviews/" + interviewID)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				State        string `json:"state"`
				CurrentIndex int    `json:"current_index"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if body.Data.State != "COMPLETED" {
			t.Errorf("expected COMPLETED, got %s", body.Data.State)
		}
		if body.Data.CurrentIndex != totalQs {
			t.Errorf("expected index %d, got %d", totalQs, body.Data.CurrentIndex)
		}
	})

	// Step 7: Fetch the final report
	t.Run("GetReport", func(t *testing.T) {
		resp, err := get(fmt.Sprintf("/api/v1/interviews/%s/report", interviewID))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Report struct {
					OverallScore float64  `json:"overall_score"`
					Strengths    []string `json:"strength_analysis"`
					Summary      string   `json:"detailed_feedback"`
				} `json:"report"`
				Breakdown map[string]float64 `json:"category_breakdown"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if body.Data.Report.Summary == "" {
			t.Error("report summary missing")
		}
		if len(body.Data.Breakdown) != 4 {
			t.Errorf("expected 4 breakdown dimensions, got %d", len(body.Data.Breakdown))
		}
		t.Logf("Overall score: %.1f", body.Data.Report.OverallScore)
	})

	// Step 8: Further answers are rejected
	t.Run("SubmitAfterComplete", func(t *testing.T) {
		resp, err := post(fmt.Sprintf("/api/v1/interviews/%s/answers", interviewID), map[string]string{
			"answer_text": e2eAnswer,
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 9: Unknown interview IDs return 404
	t.Run("UnknownInterview", func(t *testing.T) {
		resp, err := get("/api/v1/interviews/00000000-0000-0000-0000-000000000000")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", resp.StatusCode, readBody(resp))
		}
	})
}

// Helpers

func post(path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest("POST", baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Timeout: 30 * time.Second}
	return client.Do(req)
}

func get(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("json decode: %v", err)
	}
}
