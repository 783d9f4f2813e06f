// Package kmdb talks to the KMDb open search API and turns its raw
// payloads into MovieRecord values. The API has a few sharp edges this
// package hides: search-highlight markers embedded in names, pipe-joined
// image lists, comma-joined genre/keyword strings, and an envelope that
// nests results one level deeper than you would expect.
package kmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minchan-k/cinelog/internal/models"
)

// ErrDecode marks a malformed API payload. Callers treat it as "zero
// results", never as a fatal condition.
var ErrDecode = errors.New("kmdb: malformed payload")

// ErrTransport marks request construction or network failure. Handled
// identically to ErrDecode from the caller's perspective.
var ErrTransport = errors.New("kmdb: request failed")

// Filter selects which metadata field a search query matches against.
type Filter int

const (
	FilterTitle Filter = iota
	FilterDirector
	FilterActor
	FilterKeyword
)

// Param returns the query-parameter name the API expects for this filter.
func (f Filter) Param() string {
	switch f {
	case FilterTitle:
		return "title"
	case FilterDirector:
		return "director"
	case FilterActor:
		return "actor"
	case FilterKeyword:
		return "keyword"
	}
	return "title"
}

// Label returns the user-facing label for this filter.
func (f Filter) Label() string {
	switch f {
	case FilterTitle:
		return "영화"
	case FilterDirector:
		return "감독"
	case FilterActor:
		return "배우"
	case FilterKeyword:
		return "키워드"
	}
	return "영화"
}

// ParseFilter accepts either the parameter form ("title") or the
// user-facing label ("영화").
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "title", "영화":
		return FilterTitle, nil
	case "director", "감독":
		return FilterDirector, nil
	case "actor", "배우":
		return FilterActor, nil
	case "keyword", "키워드":
		return FilterKeyword, nil
	default:
		return 0, fmt.Errorf("%w: unknown filter %q", ErrDecode, s)
	}
}

// Client issues search requests against the KMDb API.
type Client struct {
	client     *http.Client
	serviceKey string
	baseURL    string
	collection string
}

// Config holds KMDb client configuration.
type Config struct {
	ServiceKey string
	BaseURL    string
	Collection string
}

// NewClient creates a KMDb API client.
func NewClient(cfg Config) *Client {
	collection := cfg.Collection
	if collection == "" {
		collection = "kmdb_new2"
	}
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		serviceKey: cfg.ServiceKey,
		baseURL:    cfg.BaseURL,
		collection: collection,
	}
}

// Raw payload shapes. Containers are pointers so that an absent container
// is distinguishable from an empty one; absent required containers fail
// the decode.
type rawMovie struct {
	Title     string        `json:"title"`
	Directors *rawDirectors `json:"directors"`
	Actors    *rawActors    `json:"actors"`
	Plots     *rawPlots     `json:"plots"`
	Genre     *string       `json:"genre"`
	Keywords  string        `json:"keywords"`
	Posters   string        `json:"posters"`
	Stills    string        `json:"stlls"`
	ProdYear  string        `json:"prodYear"`
}

type rawDirectors struct {
	Director []struct {
		DirectorNm string `json:"directorNm"`
	} `json:"director"`
}

type rawActors struct {
	Actor []struct {
		ActorNm string `json:"actorNm"`
	} `json:"actor"`
}

type rawPlots struct {
	Plot []struct {
		PlotLang string `json:"plotLang"`
		PlotText string `json:"plotText"`
	} `json:"plot"`
}

type envelope struct {
	Data []struct {
		Result []json.RawMessage `json:"Result"`
	} `json:"Data"`
}

// Search queries the API and returns decoded records in API response
// order, flattened across all Data entries. Individual rows that fail to
// decode are skipped; an unreadable envelope fails the whole request.
func (c *Client) Search(ctx context.Context, filter Filter, query string) ([]models.MovieRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	q := url.Values{}
	q.Set(filter.Param(), query)
	q.Set("ServiceKey", c.serviceKey)
	q.Set("detail", "Y")
	q.Set("collection", c.collection)
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var records []models.MovieRecord
	for _, data := range env.Data {
		for _, raw := range data.Result {
			rec, err := DecodeRecord(raw)
			if err != nil {
				continue
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// DecodeRecord parses one raw API movie object into a MovieRecord,
// applying all normalization rules and minting a local identity. The
// API's own id is never reused.
func DecodeRecord(data []byte) (models.MovieRecord, error) {
	var raw rawMovie
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.MovieRecord{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if raw.Directors == nil {
		return models.MovieRecord{}, fmt.Errorf("%w: missing directors", ErrDecode)
	}
	if raw.Actors == nil {
		return models.MovieRecord{}, fmt.Errorf("%w: missing actors", ErrDecode)
	}
	if raw.Plots == nil {
		return models.MovieRecord{}, fmt.Errorf("%w: missing plots", ErrDecode)
	}
	if raw.Genre == nil {
		return models.MovieRecord{}, fmt.Errorf("%w: missing genre", ErrDecode)
	}

	title := stripHighlight(raw.Title)
	if strings.TrimSpace(title) == "" {
		return models.MovieRecord{}, fmt.Errorf("%w: empty title", ErrDecode)
	}

	directors := make([]string, 0, len(raw.Directors.Director))
	for _, d := range raw.Directors.Director {
		directors = append(directors, stripHighlight(d.DirectorNm))
	}
	actors := make([]string, 0, len(raw.Actors.Actor))
	for _, a := range raw.Actors.Actor {
		actors = append(actors, stripHighlight(a.ActorNm))
	}

	// First plot entry wins regardless of language tag.
	var plot *string
	if len(raw.Plots.Plot) > 0 {
		p := raw.Plots.Plot[0].PlotText
		plot = &p
	}

	var year *string
	if raw.ProdYear != "" {
		y := raw.ProdYear
		year = &y
	}

	return models.MovieRecord{
		ID:          uuid.New(),
		Title:       title,
		Directors:   directors,
		Actors:      actors,
		ReleaseYear: year,
		PosterURL:   firstImageURL(raw.Posters),
		StillURL:    firstImageURL(raw.Stills),
		Genres:      strings.Split(*raw.Genre, ","),
		Keywords:    splitKeywords(raw.Keywords),
		PlotText:    plot,
	}, nil
}

// stripHighlight removes the API's search-highlight markers.
func stripHighlight(s string) string {
	s = strings.ReplaceAll(s, " !HS ", "")
	s = strings.ReplaceAll(s, " !HE ", "")
	return s
}

// firstImageURL takes the first entry of a pipe-joined image list and
// upgrades the scheme. The API still serves plain-http URLs.
func firstImageURL(raw string) *string {
	if raw == "" {
		return nil
	}
	first, _, _ := strings.Cut(raw, "|")
	if first == "" {
		return nil
	}
	if rest, ok := strings.CutPrefix(first, "http://"); ok {
		first = "https://" + rest
	}
	return &first
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}
