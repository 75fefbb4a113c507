// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package agents

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/northstar/internal/ingest"
	"github.com/tomtom215/northstar/internal/logging"
	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/validation"
)

// yamlAgentsKey is the top-level key holding the agent list in YAML files.
const yamlAgentsKey = "agents"

// Registry holds agent reference data keyed by agent id.
// Lookups never block; Replace swaps the whole set atomically.
type Registry struct {
	entries atomic.Pointer[map[string]models.AgentMetadata]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := map[string]models.AgentMetadata{}
	r.entries.Store(&empty)
	return r
}

// Lookup returns the metadata for agentID.
func (r *Registry) Lookup(agentID string) (models.AgentMetadata, bool) {
	m := r.entries.Load()
	if m == nil {
		return models.AgentMetadata{}, false
	}
	a, ok := (*m)[agentID]
	return a, ok
}

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	m := r.entries.Load()
	if m == nil {
		return 0
	}
	return len(*m)
}

// Replace validates entries and swaps them in as the new reference set.
// Entries without an id are skipped. An entry with an unknown compensation
// type keeps its name and gets an empty type. For duplicate ids the last
// entry wins. It returns the number of agents registered.
func (r *Registry) Replace(ctx context.Context, entries []models.AgentMetadata) int {
	logger := logging.WithComponent(ctx, "agents")
	next := make(map[string]models.AgentMetadata, len(entries))
	for _, e := range entries {
		if e.AgentID == "" {
			logger.Warn().Str("name", e.Name).Msg("Skipping agent entry without an id")
			continue
		}
		if verr := validation.ValidateStruct(&e); verr != nil {
			logger.Warn().
				Str("agent_id", e.AgentID).
				Str("type", e.CompensationType).
				Strs("fields", verr.Fields()).
				Msg("Unknown agent type; reporting it as empty")
			e.CompensationType = ""
		}
		next[e.AgentID] = e
	}
	r.entries.Store(&next)
	return len(next)
}

// LoadFile replaces the registry from a reference file. Files ending in .yaml
// or .yml are read with koanf; anything else is read as CSV through reader.
func (r *Registry) LoadFile(ctx context.Context, path string, reader *ingest.Reader) (int, error) {
	var entries []models.AgentMetadata

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := ingest.CheckInput(ingest.TableAgents, path); err != nil {
			return 0, err
		}
		parsed, err := parseYAML(path)
		if err != nil {
			return 0, err
		}
		entries = parsed
	default:
		if reader == nil {
			return 0, fmt.Errorf("load agents from %s: no CSV reader", path)
		}
		parsed, _, err := reader.LoadAgents(ctx, path)
		if err != nil {
			return 0, fmt.Errorf("load agents: %w", err)
		}
		entries = parsed
	}

	n := r.Replace(ctx, entries)
	logging.WithComponent(ctx, "agents").Info().
		Str("path", path).
		Int("entries", len(entries)).
		Int("registered", n).
		Msg("Agent reference data loaded")
	return n, nil
}

func parseYAML(path string) ([]models.AgentMetadata, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load agents file %s: %w", path, err)
	}

	var entries []models.AgentMetadata
	if err := k.Unmarshal(yamlAgentsKey, &entries); err != nil {
		return nil, fmt.Errorf("decode agents file %s: %w", path, err)
	}

	for i := range entries {
		entries[i].AgentID = strings.TrimSpace(entries[i].AgentID)
		entries[i].CompensationType = strings.ToUpper(strings.TrimSpace(entries[i].CompensationType))
	}
	return entries, nil
}
