package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// maxPoolBytes caps the size of a downloaded question pool.
const maxPoolBytes = 4 << 20

// HTTPQuestionRepository fetches pools from <baseURL>/lang/<lang>.json.
// Each call makes a single attempt.
type HTTPQuestionRepository struct {
	baseURL string
	client  *http.Client
}

// NewHTTPQuestionRepository creates a repository for baseURL. A zero timeout
// leaves the request bounded only by the caller's context.
func NewHTTPQuestionRepository(baseURL string, timeout time.Duration) *HTTPQuestionRepository {
	return &HTTPQuestionRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Questions downloads and validates the pool for language.
func (r *HTTPQuestionRepository) Questions(ctx context.Context, language string) ([]entities.Question, error) {
	if err := ValidateLanguage(language); err != nil {
		return nil, err
	}

	endpoint := r.baseURL + "/lang/" + url.PathEscape(language) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotFound, language)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch questions: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPoolBytes))
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return ParseQuestions(data, ".json")
}
