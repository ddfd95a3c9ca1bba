package moviemeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient создает клиент каталожного API фильмов
func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status: " + resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Trending возвращает страницу фильмов, популярных за последнюю неделю.
func (c *Client) Trending(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprint(page))

	req, err := c.newRequest(ctx, "/trending/movie/week", params)
	if err != nil {
		return nil, err
	}

	var result MoviePage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Discover возвращает страницу фильмов выбранного жанра.
func (c *Client) Discover(ctx context.Context, genreID int64, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", fmt.Sprint(page))
	params.Set("sort_by", "popularity.desc")
	if genreID != 0 {
		params.Set("with_genres", fmt.Sprint(genreID))
	}

	req, err := c.newRequest(ctx, "/discover/movie", params)
	if err != nil {
		return nil, err
	}

	var result MoviePage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search ищет фильмы по названию.
func (c *Client) Search(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", fmt.Sprint(page))

	req, err := c.newRequest(ctx, "/search/movie", params)
	if err != nil {
		return nil, err
	}

	var result MoviePage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Details возвращает расширенную карточку фильма.
func (c *Client) Details(ctx context.Context, movieID int64) (*MovieDetails, error) {
	req, err := c.newRequest(ctx, fmt.Sprintf("/movie/%d", movieID), nil)
	if err != nil {
		return nil, err
	}

	var result MovieDetails
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Recommendations возвращает фильмы, похожие на указанный.
func (c *Client) Recommendations(ctx context.Context, movieID int64) (*MoviePage, error) {
	req, err := c.newRequest(ctx, fmt.Sprintf("/movie/%d/recommendations", movieID), nil)
	if err != nil {
		return nil, err
	}

	var result MoviePage
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
