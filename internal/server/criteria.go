package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tradelens/importfilter"
)

// criteriaDayLayout is the wire format for range bounds.
const criteriaDayLayout = "2006-01-02"

// decodeCriteria converts the JSON filter payload from the UI into the
// core's tagged criteria. The wire shapes mirror the criterion variants:
//
//	"CHA NAME":     "agarwal"                      → substring match
//	"INDIAN PORT":  ["NHAVA SHEVA", "CHENNAI"]     → exact-set match
//	"DATE_RANGE":   {"start": "...", "end": "..."} → inclusive range
//	"AWP_MACHINES": ["CRANE", "FORKLIFT"]          → keyword-OR match
//
// Null criterion values are dropped (no-op per the filter contract).
func decodeCriteria(payload map[string]json.RawMessage) (importfilter.Criteria, error) {
	criteria := make(importfilter.Criteria, len(payload))
	for key, raw := range payload {
		if string(raw) == "null" {
			continue
		}
		criterion, err := decodeCriterion(key, raw)
		if err != nil {
			return nil, fmt.Errorf("criterion %q: %w", key, err)
		}
		criteria[key] = criterion
	}
	return criteria, nil
}

func decodeCriterion(key string, raw json.RawMessage) (importfilter.Criterion, error) {
	switch key {
	case importfilter.KeyDateRange:
		var bounds struct {
			Start string `json:"start"`
			End   string `json:"end"`
		}
		if err := json.Unmarshal(raw, &bounds); err != nil {
			return importfilter.Criterion{}, err
		}
		if bounds.Start == "" || bounds.End == "" {
			return importfilter.Criterion{}, nil
		}
		start, err := time.Parse(criteriaDayLayout, bounds.Start)
		if err != nil {
			return importfilter.Criterion{}, fmt.Errorf("invalid start date: %w", err)
		}
		end, err := time.Parse(criteriaDayLayout, bounds.End)
		if err != nil {
			return importfilter.Criterion{}, fmt.Errorf("invalid end date: %w", err)
		}
		return importfilter.Between(start, end), nil

	case importfilter.KeyAWPMachines:
		var keywords []string
		if err := json.Unmarshal(raw, &keywords); err != nil {
			return importfilter.Criterion{}, err
		}
		return importfilter.MatchesAny(keywords...), nil
	}

	// Column keys: a string is a substring match, an array an exact set.
	var substring string
	if err := json.Unmarshal(raw, &substring); err == nil {
		return importfilter.Contains(substring), nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err == nil {
		return importfilter.OneOf(values...), nil
	}
	return importfilter.Criterion{}, errors.New("expected a string or an array of strings")
}
