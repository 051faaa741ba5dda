// Package github fetches contribution calendars from the GitHub GraphQL API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/gravlens/internal/grid"
)

const DefaultEndpoint = "https://api.github.com/graphql"

// notFoundType is the error type GitHub reports for an unknown login.
const notFoundType = "NOT_FOUND"

const contributionQuery = `
query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      contributionCalendar {
        weeks {
          contributionDays {
            date
            contributionCount
            contributionLevel
          }
        }
      }
    }
  }
}
`

type Client struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *zap.Logger
}

type Option func(*Client)

// WithEndpoint points the client at another GraphQL endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchContributions returns the last year of user's calendar, one Day per
// date in week order.
func (c *Client) FetchContributions(ctx context.Context, user string) ([]grid.Day, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}
	if user == "" {
		return nil, ErrMissingUser
	}

	body, err := json.Marshal(graphqlRequest{
		Query:     contributionQuery,
		Variables: map[string]string{"username": user},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(msg)}
	}

	var result graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for _, e := range result.Errors {
		if e.Type == notFoundType {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, user)
		}
	}
	if len(result.Errors) > 0 {
		return nil, &GraphQLError{Message: result.Errors[0].Message}
	}
	if result.Data.User == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, user)
	}

	var days []grid.Day
	for _, week := range result.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, d := range week.ContributionDays {
			days = append(days, grid.Day{
				Date:  d.Date,
				Count: d.ContributionCount,
				Level: MapLevel(d.ContributionLevel),
			})
		}
	}

	c.logger.Debug("fetched contributions",
		zap.String("user", user),
		zap.Int("days", len(days)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return days, nil
}

// MapLevel converts a GraphQL contribution level to 0-4. Unknown levels
// map to 0.
func MapLevel(level string) int {
	switch level {
	case "FIRST_QUARTILE":
		return 1
	case "SECOND_QUARTILE":
		return 2
	case "THIRD_QUARTILE":
		return 3
	case "FOURTH_QUARTILE":
		return 4
	default:
		return 0
	}
}

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
							ContributionLevel string `json:"contributionLevel"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}
