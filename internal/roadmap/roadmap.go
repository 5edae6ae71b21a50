// Package roadmap produces career roadmap text for a cluster profile.
// Generation goes through the Gemini API when a key is configured and
// falls back to a static template otherwise, so the endpoint always
// answers.
package roadmap

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/careerlens/careerlens-server/internal/domain"
)

// Generator produces roadmap text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator generates roadmaps with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generative API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("generation returned no text")
	}
	return text, nil
}

// BuildPrompt renders the generation prompt for a cluster profile.
func BuildPrompt(profile domain.ClusterProfile) string {
	var sb strings.Builder
	sb.WriteString("You are a career counselor for engineering students.\n")
	fmt.Fprintf(&sb, "A student has been matched to the career profile %q", profile.Name)
	if len(profile.Roles) > 0 {
		fmt.Fprintf(&sb, " with suggested roles: %s", strings.Join(profile.Roles, ", "))
	}
	sb.WriteString(".\n")
	if profile.Description != "" {
		fmt.Fprintf(&sb, "Profile description: %s\n", profile.Description)
	}
	sb.WriteString("Write a practical 12-month career roadmap for this student. " +
		"Cover skills to learn, projects to build, certifications worth taking, " +
		"and internship or job search milestones. Use short sections per quarter.")
	return sb.String()
}

// Fallback renders a static roadmap when no generator is available.
func Fallback(profile domain.ClusterProfile) string {
	roles := "roles matching your profile"
	if len(profile.Roles) > 0 {
		roles = strings.Join(profile.Roles, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Career roadmap for %s\n\n", profile.Name)
	fmt.Fprintf(&sb, "Target roles: %s\n\n", roles)
	sb.WriteString("Months 1-3: Strengthen fundamentals. Review core computer science ")
	sb.WriteString("and mathematics courses relevant to your target roles, and pick one ")
	sb.WriteString("primary programming language to go deep on.\n\n")
	sb.WriteString("Months 4-6: Build portfolio projects. Complete at least two projects ")
	sb.WriteString("that showcase the skills your target roles require, and publish them ")
	sb.WriteString("with clear documentation.\n\n")
	sb.WriteString("Months 7-9: Earn a recognized certification in your field and start ")
	sb.WriteString("contributing to open source or research work to build visibility.\n\n")
	sb.WriteString("Months 10-12: Apply for internships and entry-level positions. ")
	sb.WriteString("Practice interviews, refine your resume around completed projects, ")
	sb.WriteString("and reach out to professionals working in your target roles.")
	return sb.String()
}
