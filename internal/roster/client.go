package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient fetches roster snapshots over HTTP.
type APIClient struct {
	httpClient *http.Client
	// maxBodyBytes caps the payload size; zero means defaultMaxBodyBytes.
	maxBodyBytes int64
}

const defaultMaxBodyBytes = 10 << 20

// NewClient creates a new roster client. A zero timeout leaves requests
// unbounded.
func NewClient(timeout time.Duration) RosterClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure APIClient implements the RosterClient interface.
var _ RosterClient = (*APIClient)(nil)

// FetchPlayers downloads and decodes the full roster served at source.
func (c *APIClient) FetchPlayers(ctx context.Context, source string) ([]Player, error) {
	u, err := parseSource(source)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "FantaFavGoClient/1.0")

	log.Debug("Requesting roster", "url", u.String())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	limit := c.maxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: payload exceeds %d bytes", ErrDecode, limit)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("Received non-OK HTTP status from roster endpoint", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: received non-OK HTTP status: %d", ErrNetwork, resp.StatusCode)
	}

	players, err := DecodePlayers(body)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully fetched roster", "count", len(players))
	return players, nil
}

func parseSource(source string) (*url.URL, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, source)
	}
	return u, nil
}

// DecodePlayers parses a roster payload. Every field is required, unknown
// fields are rejected, and ids must be unique within the snapshot.
func DecodePlayers(data []byte) ([]Player, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var payload []playerPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrDecode)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after array", ErrDecode)
	}

	players := make([]Player, 0, len(payload))
	seen := make(map[int]struct{}, len(payload))
	for i, p := range payload {
		if p.ID == nil || p.Name == nil || p.ImageURL == nil || p.Team == nil ||
			p.GamesPlayed == nil || p.AverageGrade == nil || p.AverageFantaGrade == nil {
			return nil, fmt.Errorf("%w: player at index %d is missing fields", ErrDecode, i)
		}
		if _, dup := seen[*p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate player id %d", ErrDecode, *p.ID)
		}
		seen[*p.ID] = struct{}{}
		players = append(players, Player{
			ID:                *p.ID,
			Name:              *p.Name,
			ImageURL:          *p.ImageURL,
			Team:              *p.Team,
			GamesPlayed:       *p.GamesPlayed,
			AverageGrade:      *p.AverageGrade,
			AverageFantaGrade: *p.AverageFantaGrade,
		})
	}
	return players, nil
}
