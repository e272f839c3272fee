package infra_tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/humanbelnik/flickswipe/internal/model"
)

// Downloader fetches non-API resources such as poster images.
type Downloader interface {
	Download(ctx context.Context, rawURL string) ([]byte, error)
}

type Client struct {
	fetcher    Fetcher
	downloader Downloader
	imageURL   string
}

func New(fetcher Fetcher, downloader Downloader, imageURL string) *Client {
	return &Client{
		fetcher:    fetcher,
		downloader: downloader,
		imageURL:   strings.TrimRight(imageURL, "/"),
	}
}

// Details comes with the video list appended, so one call is enough to pick
// a trailer.
func (c *Client) Details(ctx context.Context, tmdbID int) (model.MovieDetails, error) {
	var dto detailsDTO
	err := c.get(ctx, fmt.Sprintf("/movie/%d", tmdbID), url.Values{
		"append_to_response": {"videos"},
	}, &dto)
	if err != nil {
		return model.MovieDetails{}, err
	}
	return dto.toDomain(), nil
}

func (c *Client) Credits(ctx context.Context, tmdbID int) (model.Credits, error) {
	var dto creditsDTO
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", tmdbID), nil, &dto); err != nil {
		return model.Credits{}, err
	}
	return dto.toDomain(), nil
}

// Recommendations passes the vote bounds along; the endpoint does not honour
// them, callers filter again.
func (c *Client) Recommendations(ctx context.Context, tmdbID int) ([]model.Recommendation, error) {
	var dto listDTO
	err := c.get(ctx, fmt.Sprintf("/movie/%d/recommendations", tmdbID), url.Values{
		"vote_average.gte": {"5.0"},
		"vote_average.lte": {"8.0"},
		"vote_count.gte":   {"1000"},
	}, &dto)
	if err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *Client) Popular(ctx context.Context, page int) ([]model.Recommendation, error) {
	var dto listDTO
	err := c.get(ctx, "/movie/popular", url.Values{
		"page": {strconv.Itoa(page)},
	}, &dto)
	if err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *Client) Poster(ctx context.Context, posterPath string) ([]byte, error) {
	return c.downloader.Download(ctx, c.PosterURL(posterPath))
}

func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return c.imageURL + posterPath
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.fetcher.Fetch(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("tmdb: decode %s: %w", path, err)
	}
	return nil
}
