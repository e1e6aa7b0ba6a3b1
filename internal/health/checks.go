package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/keicha2025/keicha-shop/internal/config"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "keicha-shop",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:    "master-sheet",
				Timeout: 5 * time.Second,
				// the storefront still serves cached data when Google is down
				SkipOnErr: true,
				Check:     sheetReachable(cfg.Sheets.MasterCSVURL),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// sheetReachable probes the published CSV export with a HEAD-ish GET. Body is
// discarded; only reachability matters here.
func sheetReachable(url string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if url == "" {
			return fmt.Errorf("master sheet url is not configured")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build sheet request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach master sheet: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("master sheet returned status %d", resp.StatusCode)
		}

		return nil
	}
}
