package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/zenchantlive/marketnews/app/sources"
)

const (
	maxAttempts  = 2
	backoffDelay = 2 * time.Second
)

// Fetcher retrieves and parses one source's feed document. All failures are
// absorbed: the caller gets an empty item list plus the error for logging,
// and the failure tracker is updated. Nothing below this boundary aborts an
// aggregation run.
type Fetcher struct {
	httpClient *http.Client
	parser     *Parser
	tracker    *sources.FailureTracker
	userAgent  string
}

func NewFetcher(httpClient *http.Client, parser *Parser, tracker *sources.FailureTracker, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		parser:     parser,
		tracker:    tracker,
		userAgent:  userAgent,
	}
}

// Run fetches one source and returns at most maxItems raw items. A source
// with an open circuit breaker is skipped without a network call.
func (f *Fetcher) Run(ctx context.Context, source *sources.Source, maxItems int) ([]RawItem, error) {
	if f.tracker.IsOpen(source.Name) {
		slog.Debug("Skipping source, circuit breaker open", "source", source.Name)
		return nil, nil
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		items, err := f.attempt(ctx, source)
		if err == nil {
			f.tracker.RecordSuccess(source.Name)
			if len(items) > maxItems {
				items = items[:maxItems]
			}
			return items, nil
		}

		lastErr = err
		f.tracker.RecordFailure(source.Name)
		slog.Warn("Feed fetch attempt failed", "source", source.Name, "attempt", attempt, "max_attempts", maxAttempts, "error", err)

		if IsUnrecoverable(err) {
			slog.Warn("Unrecoverable feed error, skipping retries", "source", source.Name, "error", err)
			break
		}

		if attempt < maxAttempts {
			select {
			case <-time.After(time.Duration(attempt) * backoffDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("failed to fetch feed %s: %w", source.Name, lastErr)
}

// attempt performs one fetch+parse cycle, with a cleanup pass for malformed
// documents.
func (f *Fetcher) attempt(ctx context.Context, source *sources.Source) ([]RawItem, error) {
	data, err := f.download(ctx, source)
	if err != nil {
		return nil, err
	}

	items, err := f.parser.Run(data)
	if err == nil {
		return items, nil
	}

	if !IsMalformedError(err) {
		return nil, err
	}

	slog.Debug("Malformed feed document, attempting cleanup", "source", source.Name, "error", err)

	cleaned, cleanErr := Sanitize(data)
	if cleanErr != nil {
		return nil, fmt.Errorf("cleanup failed: %w", cleanErr)
	}

	items, reparseErr := f.parser.Run(cleaned)
	if reparseErr != nil {
		return nil, fmt.Errorf("reparse after cleanup failed: %w", reparseErr)
	}

	slog.Info("Recovered malformed feed document", "source", source.Name, "items", len(items))
	return items, nil
}

func (f *Fetcher) download(ctx context.Context, source *sources.Source) ([]byte, error) {
	timeout := time.Duration(source.Settings.Timeout) * time.Second
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Some feed servers reject unbranded clients.
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml;q=0.9, */*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
