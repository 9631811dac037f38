// Package getty talks to the Getty AAT vocabulary web service. The service
// is best effort: callers treat any failure as "no data".
package getty

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openmuseum/museum-map-backend/internal/pkg/httpx"
	"github.com/openmuseum/museum-map-backend/internal/platform/envutil"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
)

const defaultBaseURL = "http://vocabsservices.getty.edu/AATService.asmx"

// Client resolves a term to candidate subject identifiers and a subject
// identifier to its pipe-delimited broader-term hierarchy.
type Client interface {
	TermMatch(ctx context.Context, term string) ([]string, error)
	SubjectHierarchy(ctx context.Context, subjectID string) (string, error)
}

// ServiceError reports a non-200 response from the vocabulary service.
type ServiceError struct {
	Op         string
	StatusCode int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("getty %s: unexpected status %d", e.Op, e.StatusCode)
}

type client struct {
	log     *logger.Logger
	http    *http.Client
	baseURL string
}

func NewClient(log *logger.Logger) Client {
	timeout := envutil.Int("AAT_TIMEOUT_SECONDS", 300)
	return &client{
		log:     log.With("client", "GettyAAT"),
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		baseURL: strings.TrimRight(envutil.String("AAT_BASE_URL", defaultBaseURL), "/"),
	}
}

type termMatchEnvelope struct {
	Subjects []struct {
		ID string `xml:"Subject_ID"`
	} `xml:"Subject"`
}

type subjectEnvelope struct {
	Subjects []struct {
		Hierarchy string `xml:"Hierarchy"`
	} `xml:"Subject"`
}

func (c *client) TermMatch(ctx context.Context, term string) ([]string, error) {
	params := url.Values{}
	params.Set("term", `"`+term+`"`)
	params.Set("logop", "and")
	params.Set("notes", "")
	body, err := c.get(ctx, "/AATGetTermMatch", params)
	if err != nil {
		return nil, err
	}
	var envelope termMatchEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode term match response: %w", err)
	}
	ids := make([]string, 0, len(envelope.Subjects))
	for _, s := range envelope.Subjects {
		if id := strings.TrimSpace(s.ID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (c *client) SubjectHierarchy(ctx context.Context, subjectID string) (string, error) {
	params := url.Values{}
	params.Set("subjectID", subjectID)
	body, err := c.get(ctx, "/AATGetSubject", params)
	if err != nil {
		return "", err
	}
	var envelope subjectEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("decode subject response: %w", err)
	}
	for _, s := range envelope.Subjects {
		if h := strings.TrimSpace(s.Hierarchy); h != "" {
			return h, nil
		}
	}
	return "", nil
}

func (c *client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL := c.baseURL + endpoint + "?" + params.Encode()
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			if !httpx.IsRetryableError(err) {
				return nil, err
			}
			lastErr = err
			c.log.Debug("Vocabulary request failed, retrying", "endpoint", endpoint, "attempt", attempt, "error", err)
			time.Sleep(httpx.JitterSleep(time.Second << attempt))
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			if readErr != nil {
				return nil, readErr
			}
			return body, nil
		}
		lastErr = &ServiceError{Op: endpoint, StatusCode: resp.StatusCode}
		if !httpx.IsRetryableHTTPStatus(resp.StatusCode) {
			return nil, lastErr
		}
		c.log.Debug("Vocabulary request rejected, retrying", "endpoint", endpoint, "attempt", attempt, "status", resp.StatusCode)
		time.Sleep(httpx.RetryAfterDuration(resp, httpx.JitterSleep(time.Second<<attempt), 30*time.Second))
	}
	return nil, lastErr
}
