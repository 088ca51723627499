// Package catalog reads Pokémon listings and details from a PokéAPI
// compatible HTTP service. Responses are passed through with light shaping
// only.
package catalog

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

	"github.com/dmitrijs2005/pokegate/internal/common"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	DefaultLimit   = 20
	MaxLimit       = 100
	defaultTimeout = 10 * time.Second
	maxBody        = 4 << 20
)

// ErrUpstream wraps any failure of the catalog service other than a
// missing entry.
var ErrUpstream = errors.New("catalog upstream error")

// ErrNotFound is returned when the catalog has no entry by that name.
var ErrNotFound = common.ErrorNotFound

// NamedResource is a list entry.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Page is one slice of the catalog listing.
type Page struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type Stat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type Sprites struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
}

// Pokemon is the subset of the detail document the application uses.
// Height and weight keep the upstream units (decimetres, hectograms).
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	BaseExperience int           `json:"base_experience"`
	Types          []TypeSlot    `json:"types"`
	Abilities      []AbilitySlot `json:"abilities"`
	Stats          []Stat        `json:"stats"`
	Sprites        Sprites       `json:"sprites"`
}

// Catalog is what the web layer needs from a catalog source.
type Catalog interface {
	List(ctx context.Context, limit, offset int) (*Page, error)
	Get(ctx context.Context, name string) (*Pokemon, error)
}

// Client is an HTTP Catalog.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL means the public
// PokéAPI; a nil httpClient gets a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: invalid catalog url %q", common.ErrConfiguration, baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(u.String(), "/"), http: httpClient}, nil
}

// ClampPage normalises paging parameters.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (c *Client) List(ctx context.Context, limit, offset int) (*Page, error) {
	limit, offset = ClampPage(limit, offset)

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var p Page
	if err := c.get(ctx, "/pokemon?"+q.Encode(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Get(ctx context.Context, name string) (*Pokemon, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrNotFound
	}

	var p Pokemon
	if err := c.get(ctx, "/pokemon/"+url.PathEscape(name), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}
	return nil
}
