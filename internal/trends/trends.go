// Package trends picks the (topic, category) pair that drives one article
// run. Selection never fails: an unparseable model answer falls back to a
// deterministic title so the rest of the pipeline always receives a trend.
package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"coolfinds/internal/core"
	"coolfinds/internal/logger"
	"coolfinds/internal/textutil"
)

// Categories is the fixed category set articles are generated for.
var Categories = []string{"Tech", "Gaming", "Home", "Lifestyle", "Auto"}

const trendTemperature = 0.5

const trendPromptTemplate = `Generate ONE highly creative, punchy, and viral listicle title for "Amazing Cool Finds" in the %s category.

CRITICAL RULES:
1. AVOID CLICHES: Do NOT use "Never Knew Existed", "Revolutionizing Tomorrow", "Level Up", or "Game-Changing".
2. VARY THE STRUCTURE: Don't always start with a number. Use questions, direct statements, or intriguing hooks.
3. AUDIENCE: Tech-savvy, curious shoppers looking for "cool" and productive finds.
4. LENGTH: Keep it under 65 characters.

Format: JSON ONLY.
Example: {"topic": "Why Your Desk Setup Is Killing Your Productivity (And How to Fix It)", "category": "%s"}`

// TextGenerator is the slice of the text model the selector needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Selector produces trends from the text model with a deterministic
// fallback.
type Selector struct {
	gen TextGenerator
}

// NewSelector creates a trend selector backed by gen.
func NewSelector(gen TextGenerator) *Selector {
	return &Selector{gen: gen}
}

// Select returns a trend for a uniformly random category. Model errors and
// malformed answers both resolve to the fallback title; Select never fails.
func (s *Selector) Select(ctx context.Context) core.Trend {
	category := Categories[rand.Intn(len(Categories))]

	prompt := fmt.Sprintf(trendPromptTemplate, category, category)
	response, err := s.gen.Generate(ctx, prompt, trendTemperature)
	if err != nil {
		logger.Warn("Trend generation failed, using fallback", "category", category, "error", err.Error())
		return fallbackTrend(category)
	}

	jsonStr, ok := textutil.ExtractJSONObject(response)
	if !ok {
		logger.Warn("Trend response contained no JSON object, using fallback", "category", category)
		return fallbackTrend(category)
	}

	var trend core.Trend
	if err := json.Unmarshal([]byte(jsonStr), &trend); err != nil || trend.Topic == "" {
		logger.Warn("Trend response was not valid JSON, using fallback", "category", category)
		return fallbackTrend(category)
	}

	if trend.Category == "" {
		trend.Category = category
	}
	return trend
}

func fallbackTrend(category string) core.Trend {
	return core.Trend{
		Topic:    fmt.Sprintf("Best %s Finds of %d", category, time.Now().Year()),
		Category: category,
	}
}
