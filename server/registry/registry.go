package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Announcement is what the game server needs to call this player back.
// Port travels as a string, the way the server's registration form expects.
type Announcement struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Port    string `json:"port"`
}

func NewAnnouncement(name, host string, port int) Announcement {
	return Announcement{Name: name, Address: host, Port: strconv.Itoa(port)}
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registration rejected: status %d: %s", e.Code, e.Body)
}

// Register posts the announcement and returns the server's decoded reply.
// Anything other than 200 is an error; callers treat it as fatal.
func Register(ctx context.Context, client *http.Client, url string, a Announcement) (map[string]any, error) {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connect to game server: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	out := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		// Some servers answer with plain text; keep it rather than fail.
		out["raw"] = strings.TrimSpace(string(body))
	}
	return out, nil
}
