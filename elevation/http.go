package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/tidwall/gjson"
)

// HTTP queries an open-elevation compatible endpoint:
// it POSTs {"locations":[{"latitude":..,"longitude":..}]} and reads results.#.elevation.
type HTTP struct {
	Endpoint string
	Client   *http.Client

	// ResultPath is the gjson path of the elevation array in the response.
	ResultPath string
}

func NewHTTP(endpoint string, timeout time.Duration) *HTTP {
	return &HTTP{
		Endpoint:   endpoint,
		Client:     &http.Client{Timeout: timeout},
		ResultPath: "results.#.elevation",
	}
}

type httpLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *HTTP) Elevations(ctx context.Context, points []orb.Point) ([]float64, error) {
	locations := make([]httpLocation, len(points))
	for i, p := range points {
		locations[i] = httpLocation{Latitude: p.Lat(), Longitude: p.Lon()}
	}
	body, err := json.Marshal(map[string]any{"locations": locations})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevation endpoint %s: %s: %s", h.Endpoint, res.Status, bytes.TrimSpace(data))
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("elevation endpoint %s: invalid json", h.Endpoint)
	}
	results := gjson.GetBytes(data, h.ResultPath)
	if !results.IsArray() {
		return nil, fmt.Errorf("elevation endpoint %s: no %s in response", h.Endpoint, h.ResultPath)
	}
	arr := results.Array()
	out := make([]float64, len(arr))
	for i, r := range arr {
		out[i] = r.Float()
	}
	return out, nil
}
