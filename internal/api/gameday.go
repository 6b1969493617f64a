package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jimmy058910/replitballgame-sub004/internal/config"

	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

// GamedayClient talks to the gameday collaborator service, which owns award
// and prize distribution and the daily kickoff slot catalogue. This engine
// only consumes its results.
type GamedayClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
}

func NewGamedayClient(cfg *config.Config) *GamedayClient {
	return &GamedayClient{
		baseURL: cfg.GamedayAPIURL,
		apiKey:  cfg.GamedayAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         cfg.GamedayTimeout,
			WriteTimeout:        cfg.GamedayTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

type AwardsResponse struct {
	Status int        `json:"status"`
	Data   AwardsData `json:"data"`
}

type AwardsData struct {
	AwardsGranted int   `json:"awards_granted"`
	TeamsPaid     int   `json:"teams_paid"`
	PrizeTotal    int64 `json:"prize_total"`
}

type SlotsResponse struct {
	Status int      `json:"status"`
	Data   []string `json:"data"` // ordered "HH:MM" kickoff times
}

// DistributeAwards asks the collaborator to compute end-of-season awards and
// pay out prize money for a season. The response is informational; the
// engine logs counts and amounts but books nothing itself.
func (c *GamedayClient) DistributeAwards(ctx context.Context, seasonID string) (*AwardsResponse, error) {
	url := fmt.Sprintf("%s/v1/seasons/%s/awards", c.baseURL, seasonID)
	return doRequest[AwardsResponse](ctx, c, fasthttp.MethodPost, url)
}

// DailySlots returns the ordered kickoff time slots for a day number.
func (c *GamedayClient) DailySlots(ctx context.Context, day int) ([]string, error) {
	url := fmt.Sprintf("%s/v1/gameday/slots?day=%d", c.baseURL, day)
	resp, err := doRequest[SlotsResponse](ctx, c, fasthttp.MethodGet, url)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func doRequest[T any](ctx context.Context, client *GamedayClient, method, url string) (*T, error) {
	var result T

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(250*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(url)
		req.Header.SetMethod(method)
		if client.apiKey != "" {
			req.Header.Set("Authorization", client.apiKey)
		}

		var doErr error
		if deadline, ok := ctx.Deadline(); ok {
			doErr = client.client.DoDeadline(req, resp, deadline)
		} else {
			doErr = client.client.Do(req, resp)
		}
		if doErr != nil {
			return retry.RetryableError(doErr)
		}

		if code := resp.StatusCode(); code != fasthttp.StatusOK {
			err := fmt.Errorf("gameday API error: %d", code)
			if code >= 500 {
				return retry.RetryableError(err)
			}
			return err
		}

		return json.Unmarshal(resp.Body(), &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
