package service

import (
	"context"
	"strings"

	"github.com/careerlens/careerlens-server/internal/artifact"
	"github.com/careerlens/careerlens-server/internal/domain"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/roadmap"
)

// Roadmap text sources.
const (
	RoadmapSourceGenerated = "generated"
	RoadmapSourceFallback  = "fallback"
)

// RoadmapService produces career roadmap text for a cluster profile.
// The generator may be nil, in which case every request is served by the
// static fallback.
type RoadmapService struct {
	artifacts *artifact.Store
	generator roadmap.Generator
	log       *logger.Logger
}

// NewRoadmapService creates a new roadmap service.
func NewRoadmapService(artifacts *artifact.Store, generator roadmap.Generator, log *logger.Logger) *RoadmapService {
	return &RoadmapService{
		artifacts: artifacts,
		generator: generator,
		log:       log,
	}
}

// Generative reports whether a generator is configured.
func (s *RoadmapService) Generative() bool {
	return s.generator != nil
}

// RoadmapResult is the generated roadmap and its source.
type RoadmapResult struct {
	Profile domain.ClusterProfile
	Text    string
	Source  string
}

// Generate produces a roadmap for a cluster. The profile is resolved by
// cluster id when given, otherwise by profile name; an unknown name gets
// a synthesized profile so the endpoint still answers. Generator failures
// degrade to the static fallback.
func (s *RoadmapService) Generate(ctx context.Context, clusterID *int, profileName string) (*RoadmapResult, error) {
	profile := s.resolveProfile(clusterID, profileName)

	if s.generator == nil {
		return &RoadmapResult{Profile: profile, Text: roadmap.Fallback(profile), Source: RoadmapSourceFallback}, nil
	}

	text, err := s.generator.Generate(ctx, roadmap.BuildPrompt(profile))
	if err != nil {
		s.log.Warn("Roadmap generation failed, serving fallback", "profile", profile.Name, "error", err)
		return &RoadmapResult{Profile: profile, Text: roadmap.Fallback(profile), Source: RoadmapSourceFallback}, nil
	}

	return &RoadmapResult{Profile: profile, Text: text, Source: RoadmapSourceGenerated}, nil
}

func (s *RoadmapService) resolveProfile(clusterID *int, profileName string) domain.ClusterProfile {
	ms := s.artifacts.Current()

	if clusterID != nil {
		return ms.Profile(*clusterID)
	}

	want := strings.ToLower(strings.TrimSpace(profileName))
	for _, p := range ms.Profiles {
		if strings.ToLower(strings.TrimSpace(p.Name)) == want {
			return p
		}
	}

	s.log.Warn("No trained profile matches the requested name", "name", profileName)
	return domain.ClusterProfile{Name: strings.TrimSpace(profileName)}
}
