// Package remote implements the catalog provider backed by the catalog REST API.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/auth"
	"github.com/yogaland/yogaland/catalog"
	"github.com/yogaland/yogaland/key"
	"github.com/yogaland/yogaland/log"
	"github.com/yogaland/yogaland/network"
	"github.com/yogaland/yogaland/util"
)

// ErrStatus wraps unexpected HTTP status codes.
var ErrStatus = errors.New("unexpected status")

const maxPages = 100

// Options configure a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api
	BaseURL  string
	PageSize int
	// CacheTTL of zero disables the response cache.
	CacheTTL time.Duration
	Token    string
	HTTP     *http.Client
}

// Client talks to the catalog API.
type Client struct {
	base     string
	pageSize int
	token    string
	http     *http.Client

	videos *cacher[[]*catalog.Video]
	ads    *cacher[[]*catalog.Advertisement]
}

// New constructs a client with the given options.
func New(options Options) *Client {
	c := &Client{
		base:     strings.TrimRight(options.BaseURL, "/"),
		pageSize: options.PageSize,
		token:    options.Token,
		http:     options.HTTP,
	}

	if c.pageSize <= 0 {
		c.pageSize = 50
	}

	if c.http == nil {
		c.http = network.Client
	}

	if options.CacheTTL > 0 {
		c.videos = newCacher[[]*catalog.Video]("videos.json", options.CacheTTL)
		c.ads = newCacher[[]*catalog.Advertisement]("ads.json", options.CacheTTL)
	}

	return c
}

// NewFromConfig builds a client from the active configuration and the stored API token.
func NewFromConfig() *Client {
	token, source, err := auth.Token()
	if err != nil {
		log.Debugf("catalog requests are anonymous: %v", err)
	} else {
		log.Debugf("using catalog token from the %s", source)
	}

	return New(Options{
		BaseURL:  viper.GetString(key.CatalogURL),
		PageSize: viper.GetInt(key.CatalogPageSize),
		CacheTTL: time.Duration(viper.GetInt(key.CatalogCacheTTL)) * time.Minute,
		Token:    token,
	})
}

type videoPage struct {
	Data  []*catalog.Video `json:"data"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int              `json:"total"`
}

// Videos collects every page of the catalog.
func (c *Client) Videos(ctx context.Context) ([]*catalog.Video, error) {
	if cached, ok := c.videos.Get(c.base).Get(); ok {
		return cached, nil
	}

	var all []*catalog.Video
	for page := 1; page <= maxPages; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("limit", strconv.Itoa(c.pageSize))

		var resp videoPage
		if err := c.get(ctx, "/videos?"+query.Encode(), &resp); err != nil {
			return nil, err
		}

		all = append(all, resp.Data...)
		if len(resp.Data) == 0 || len(resp.Data) < c.pageSize || (resp.Total > 0 && len(all) >= resp.Total) {
			break
		}
	}

	videos, _, err := catalog.Prepare(all, nil)
	if err != nil {
		log.Warnf("remote catalog: %v", err)
	}

	if err := c.videos.Set(c.base, videos); err != nil {
		log.Warnf("cache videos: %v", err)
	}

	return videos, nil
}

// Video fetches a single video, answering from the cached listing when possible.
func (c *Client) Video(ctx context.Context, id string) (*catalog.Video, error) {
	if cached, ok := c.videos.Get(c.base).Get(); ok {
		if v, found := lo.Find(cached, func(v *catalog.Video) bool { return v.ID == id }); found {
			return v, nil
		}
	}

	var v catalog.Video
	if err := c.get(ctx, "/videos/"+url.PathEscape(id), &v); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, catalog.ErrNotFound)
		}
		return nil, err
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// Ads lists every advertisement the API offers.
func (c *Client) Ads(ctx context.Context) ([]*catalog.Advertisement, error) {
	if cached, ok := c.ads.Get(c.base).Get(); ok {
		return cached, nil
	}

	var raw []*catalog.Advertisement
	if err := c.get(ctx, "/ads", &raw); err != nil {
		return nil, err
	}

	_, ads, err := catalog.Prepare(nil, raw)
	if err != nil {
		log.Warnf("remote ads: %v", err)
	}

	if err := c.ads.Set(c.base, ads); err != nil {
		log.Warnf("cache ads: %v", err)
	}

	return ads, nil
}

// RecordWatch reports a playback start.
func (c *Client) RecordWatch(ctx context.Context, id string) error {
	req, err := c.request(ctx, http.MethodPost, "/videos/"+url.PathEscape(id)+"/watch")
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("record watch: %w", err)
	}
	defer util.Ignore(resp.Body.Close)

	return checkStatus(resp)
}

// Healthy reports whether the API answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) error {
	var health struct {
		Status string `json:"status"`
	}

	if err := c.get(ctx, "/health", &health); err != nil {
		return err
	}

	if health.Status != "" && !strings.EqualFold(health.Status, "ok") {
		return fmt.Errorf("catalog reports status %q", health.Status)
	}
	return nil
}

// Reachable issues a HEAD request against a media locator.
func (c *Client) Reachable(ctx context.Context, locator string) error {
	return Reachable(ctx, c.http, locator)
}

// Reachable reports whether a media locator answers a HEAD request.
func Reachable(ctx context.Context, client *http.Client, locator string) error {
	if client == nil {
		client = network.Client
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, locator, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer util.Ignore(resp.Body.Close)

	return checkStatus(resp)
}

// Invalidate drops cached responses for this API.
func (c *Client) Invalidate() error {
	return errors.Join(c.videos.Delete(c.base), c.ads.Delete(c.base))
}

func (c *Client) request(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := c.request(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer util.Ignore(resp.Body.Close)

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return catalog.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
