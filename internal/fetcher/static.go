package fetcher

import (
	"context"
	"time"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/httpclient"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/rs/zerolog"
)

// StaticFetcher fetches the page with a single plain GET
type StaticFetcher struct {
	client         *httpclient.HTTPClient
	structuralScan bool
	logger         zerolog.Logger
}

// NewStaticFetcher creates a static fetcher. With structuralScan the body is
// parsed so element checks can run against it.
func NewStaticFetcher(client *httpclient.HTTPClient, structuralScan bool, logger zerolog.Logger) *StaticFetcher {
	return &StaticFetcher{
		client:         client,
		structuralScan: structuralScan,
		logger:         logger.With().Str("component", "StaticFetcher").Logger(),
	}
}

func (f *StaticFetcher) Fetch(ctx context.Context, url string) (*models.PageSnapshot, error) {
	result, err := f.client.FetchContent(ctx, url)
	if err != nil {
		return nil, common.NewFetchError("GET", url, models.ModeStatic.String(), err)
	}
	if result.Truncated {
		f.logger.Warn().Str("url", url).Int("bytes", len(result.Content)).Msg("Page body was truncated, keyword past the limit will be missed")
	}

	if f.structuralScan {
		snapshot, err := NewHTMLSnapshot(url, result.Content)
		if err == nil {
			return snapshot, nil
		}
		f.logger.Warn().Err(err).Str("url", url).Msg("Could not parse response, using raw text only")
	}

	return &models.PageSnapshot{
		URL:       url,
		Mode:      models.ModeStatic,
		RawText:   string(result.Content),
		FetchedAt: time.Now(),
	}, nil
}

func (f *StaticFetcher) Mode() models.DetectionMode {
	return models.ModeStatic
}

// Close is a no-op, the HTTP client holds no session
func (f *StaticFetcher) Close() error {
	return nil
}
