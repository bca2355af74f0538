package weather

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// dtTxtLayout is the layout of the dt_txt field in forecast list entries
const dtTxtLayout = "2006-01-02 15:04:05"

// payload covers both OpenWeatherMap endpoints and the compact schema
// (top-level temp/description/humidity/wind) served by simple proxies.
type payload struct {
	// OpenWeatherMap
	Name    string           `json:"name"`
	City    cityField        `json:"city"`
	Main    *mainBlock       `json:"main"`
	Weather []conditionBlock `json:"weather"`
	Wind    *windField       `json:"wind"`
	List    []listEntry      `json:"list"`

	// Compact
	Temp        *float64       `json:"temp"`
	Humidity    *float64       `json:"humidity"`
	Description string         `json:"description"`
	Forecast    []compactEntry `json:"forecast"`
}

type mainBlock struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
}

type conditionBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type listEntry struct {
	Dt      int64            `json:"dt"`
	DtTxt   string           `json:"dt_txt"`
	Main    mainBlock        `json:"main"`
	Weather []conditionBlock `json:"weather"`
	Wind    *windField       `json:"wind"`
}

type compactEntry struct {
	Date        string   `json:"date"`
	Temp        *float64 `json:"temp"`
	Description string   `json:"description"`
}

// cityField accepts either "London" or {"name":"London"}
type cityField string

func (c *cityField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = cityField(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("city: want string or object: %w", err)
	}
	*c = cityField(obj.Name)
	return nil
}

// windField accepts either 5 or {"speed":5}
type windField struct {
	Speed float64
}

func (w *windField) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		w.Speed = n
		return nil
	}
	var obj struct {
		Speed float64 `json:"speed"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("wind: want number or object: %w", err)
	}
	w.Speed = obj.Speed
	return nil
}

// decodeResult maps a response body onto a Result
func decodeResult(body []byte, city string, mode Mode, units Units) (*Result, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	res := &Result{
		City:     firstNonEmpty(p.Name, string(p.City), city),
		Forecast: []ForecastEntry{},
		Mode:     mode,
		Units:    units,
	}

	var temp, humidity *float64
	switch {
	case p.Main != nil:
		temp, humidity = p.Main.Temp, p.Main.Humidity
		res.Description = firstDescription(p.Weather)
		res.WindSpeed = windSpeed(p.Wind)
	case p.Temp != nil:
		temp, humidity = p.Temp, p.Humidity
		res.Description = p.Description
		res.WindSpeed = windSpeed(p.Wind)
	case len(p.List) > 0:
		// Forecast responses carry no current block; the first slot stands in for it.
		first := p.List[0]
		temp, humidity = first.Main.Temp, first.Main.Humidity
		res.Description = firstDescription(first.Weather)
		res.WindSpeed = windSpeed(first.Wind)
	default:
		return nil, errors.New("response has no temperature")
	}

	if temp == nil {
		return nil, errors.New("response has no temperature")
	}
	if humidity == nil {
		return nil, errors.New("response has no humidity")
	}
	if *humidity < 0 || *humidity > 100 {
		return nil, fmt.Errorf("humidity %v out of range [0,100]", *humidity)
	}
	res.Temperature = *temp
	res.Humidity = *humidity

	if mode != ModeForecast {
		return res, nil
	}

	entries, err := forecastEntries(p)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("response has no forecast entries")
	}
	res.Forecast = entries
	return res, nil
}

func forecastEntries(p payload) ([]ForecastEntry, error) {
	entries := make([]ForecastEntry, 0, len(p.List)+len(p.Forecast))

	for i, item := range p.List {
		date, err := listEntryTime(item)
		if err != nil {
			return nil, fmt.Errorf("forecast entry %d: %w", i, err)
		}
		if item.Main.Temp == nil {
			return nil, fmt.Errorf("forecast entry %d: missing temperature", i)
		}
		entries = append(entries, ForecastEntry{
			Date:        date,
			Temperature: *item.Main.Temp,
			Description: firstDescription(item.Weather),
		})
	}

	for i, item := range p.Forecast {
		date, err := parseDate(item.Date)
		if err != nil {
			return nil, fmt.Errorf("forecast entry %d: %w", i, err)
		}
		if item.Temp == nil {
			return nil, fmt.Errorf("forecast entry %d: missing temperature", i)
		}
		entries = append(entries, ForecastEntry{
			Date:        date,
			Temperature: *item.Temp,
			Description: item.Description,
		})
	}

	return entries, nil
}

func listEntryTime(item listEntry) (time.Time, error) {
	if item.DtTxt != "" {
		return time.ParseInLocation(dtTxtLayout, item.DtTxt, time.UTC)
	}
	if item.Dt != 0 {
		return time.Unix(item.Dt, 0).UTC(), nil
	}
	return time.Time{}, errors.New("missing timestamp")
}

// parseDate accepts RFC 3339, the dt_txt layout and plain dates
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, dtTxtLayout, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func firstDescription(conds []conditionBlock) string {
	if len(conds) == 0 {
		return ""
	}
	if conds[0].Description != "" {
		return conds[0].Description
	}
	return conds[0].Main
}

func windSpeed(w *windField) float64 {
	if w == nil {
		return 0
	}
	return w.Speed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
