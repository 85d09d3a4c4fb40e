package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/okian/duel/pkg/logger"
)

// Run executes a complete simulated ranking session against a running
// service: create a list, submit comparisons decided by a noisy judge,
// occasionally exercise undo/redo, then measure how well the final
// rankings recover the hidden ordering.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Get().Info(ctx, "starting ranking simulation",
		logger.String("baseURL", config.BaseURL),
		logger.String("list", config.List),
		logger.Int("items", config.Items),
		logger.Int("comparisons", config.Comparisons),
		logger.Float64("noise", config.Noise),
		logger.Float64("tieRate", config.TieRate),
		logger.Any("seed", seed))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	ordering := hiddenOrdering(config.Items)
	if err := createList(ctx, client, config, ordering); err != nil {
		return fmt.Errorf("list creation failed: %w", err)
	}

	j := newJudge(ordering, rng, config.Noise, config.TieRate)
	if err := submitChoices(ctx, client, config, j, rng, stats); err != nil {
		return fmt.Errorf("choice submission failed: %w", err)
	}

	rankings, err := retrieveRankings(ctx, client, config)
	if err != nil {
		return fmt.Errorf("ranking retrieval failed: %w", err)
	}

	stats.Agreement = agreement(ordering, rankings)
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if err := decodeResponse(resp, nil); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// createList registers the simulated list with the service.
func createList(ctx context.Context, client *HTTPClient, config *Config, names []string) error {
	resp, err := client.Post(ctx, config.BaseURL+"/lists", createListRequest{Name: config.List, Items: names})
	if err != nil {
		return err
	}
	if err := decodeResponse(resp, nil); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("list creation failed with status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "list created", logger.String("list", config.List), logger.Int("items", len(names)))
	return nil
}

// submitChoices drives the pair/choice loop, with occasional undo/redo
// rounds to exercise the review path.
func submitChoices(ctx context.Context, client *HTTPClient, config *Config, j *judge, rng *rand.Rand, stats *Stats) error {
	for i := 0; i < config.Comparisons; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pair, err := fetchPair(ctx, client, config)
		if err != nil {
			stats.Failed++
			logger.Get().Warn(ctx, "failed to fetch pair", logger.Error(err))
			continue
		}

		winner, loser, outcome := j.decide(pair.Pair.Left, pair.Pair.Right)
		req := choiceRequest{List: config.List, Winner: winner, Loser: loser, Outcome: outcome}
		resp, err := client.Post(ctx, config.BaseURL+"/choice", req)
		if err != nil {
			stats.Failed++
			continue
		}
		if err := decodeResponse(resp, nil); err != nil || resp.StatusCode != http.StatusOK {
			stats.Failed++
			continue
		}
		stats.ChoicesSubmitted++
		if outcome == "tie" {
			stats.Ties++
		}

		if config.Verbose {
			logger.Get().Debug(ctx, "choice recorded",
				logger.String("winner", winner),
				logger.String("loser", loser),
				logger.String("outcome", outcome))
		}

		if rng.Float64() < config.ReviewRate {
			reviewRound(ctx, client, config, stats)
		}
	}
	logger.Get().Info(ctx, "choices submitted",
		logger.Int("submitted", stats.ChoicesSubmitted),
		logger.Int("ties", stats.Ties),
		logger.Int("failed", stats.Failed))
	return nil
}

// reviewRound undoes the latest comparison and immediately redoes it,
// which must leave ratings unchanged.
func reviewRound(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) {
	url := config.BaseURL + "/undo?list=" + config.List
	if resp, err := client.Post(ctx, url, nil); err == nil {
		_ = decodeResponse(resp, nil)
		if resp.StatusCode == http.StatusOK {
			stats.Undos++
		}
	}
	url = config.BaseURL + "/redo?list=" + config.List
	if resp, err := client.Post(ctx, url, nil); err == nil {
		_ = decodeResponse(resp, nil)
		if resp.StatusCode == http.StatusOK {
			stats.Redos++
		}
	}
}

// fetchPair asks the service for the next pair to compare.
func fetchPair(ctx context.Context, client *HTTPClient, config *Config) (*pairResponse, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/pair?list="+config.List)
	if err != nil {
		return nil, err
	}
	var pair pairResponse
	if err := decodeResponse(resp, &pair); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pair request failed with status: %d", resp.StatusCode)
	}
	return &pair, nil
}

// retrieveRankings fetches the final ordering.
func retrieveRankings(ctx context.Context, client *HTTPClient, config *Config) ([]rankingEntry, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/rankings?list="+config.List)
	if err != nil {
		return nil, err
	}
	var out rankingsResponse
	if err := decodeResponse(resp, &out); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rankings request failed with status: %d", resp.StatusCode)
	}
	return out.Rankings, nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("choicesSubmitted", stats.ChoicesSubmitted),
		logger.Int("ties", stats.Ties),
		logger.Int("undos", stats.Undos),
		logger.Int("redos", stats.Redos),
		logger.Int("failed", stats.Failed),
		logger.Float64("agreement", stats.Agreement),
		logger.String("duration", stats.Duration.String()))
}
