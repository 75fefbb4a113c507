// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package normalize

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/northstar/internal/models"
)

// DefaultPayloadColumn is the event log column holding the JSON payload.
const DefaultPayloadColumn = "other_data"

// Payload failure reasons.
const (
	ReasonInvalidJSON = "invalid json"
	ReasonNotObject   = "payload is not a json object"
	ReasonTrailing    = "trailing data after json value"
)

// Stats counts payload outcomes for one Flatten call.
type Stats struct {
	Parsed  int `json:"parsed"`
	Absent  int `json:"absent"`
	Invalid int `json:"invalid"`
}

// Failure records one payload that could not be flattened. The record itself
// is kept with no payload fields.
type Failure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result is the output of Flatten.
type Result struct {
	// Records mirrors the input order, one output record per input record
	Records []models.EventRecord

	// PayloadColumns is the sorted set of flattened payload field names
	PayloadColumns []string

	Stats    Stats
	Failures []Failure
}

// Flatten parses the JSON payload column of every record and exposes nested
// fields under dotted names ("a.b.c"). Records whose payload is missing,
// empty or unparseable pass through with a nil Payload. Input records are
// not modified.
func Flatten(records []models.EventRecord, payloadColumn string) Result {
	if payloadColumn == "" {
		payloadColumn = DefaultPayloadColumn
	}

	res := Result{Records: make([]models.EventRecord, len(records))}
	columns := make(map[string]struct{})

	for i, rec := range records {
		out := models.EventRecord{Row: rec.Row, Fields: rec.Fields}

		raw := strings.TrimSpace(rec.Fields[payloadColumn])
		if raw == "" {
			res.Stats.Absent++
			res.Records[i] = out
			continue
		}

		payload, reason := parsePayload(raw)
		if reason != "" {
			res.Stats.Invalid++
			res.Failures = append(res.Failures, Failure{Row: rec.Row, Reason: reason})
			res.Records[i] = out
			continue
		}

		res.Stats.Parsed++
		out.Payload = payload
		for k := range payload {
			columns[k] = struct{}{}
		}
		res.Records[i] = out
	}

	res.PayloadColumns = make([]string, 0, len(columns))
	for k := range columns {
		res.PayloadColumns = append(res.PayloadColumns, k)
	}
	sort.Strings(res.PayloadColumns)

	return res
}

// parsePayload decodes one payload. The returned reason is empty on success.
func parsePayload(raw string) (map[string]string, string) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, ReasonInvalidJSON
	}
	var extra interface{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ReasonTrailing
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, ReasonNotObject
	}

	out := make(map[string]string, len(obj))
	flattenInto(out, "", obj)
	return out, ""
}

func flattenInto(out map[string]string, prefix string, obj map[string]interface{}) {
	for k, v := range obj {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}

		switch val := v.(type) {
		case nil:
			// null leaves the field absent
		case map[string]interface{}:
			flattenInto(out, name, val)
		case string:
			out[name] = val
		case json.Number:
			out[name] = val.String()
		case bool:
			if val {
				out[name] = "true"
			} else {
				out[name] = "false"
			}
		default:
			// arrays keep their compact JSON text
			b, err := json.Marshal(val)
			if err == nil {
				out[name] = string(b)
			}
		}
	}
}
