package domain

import (
	"time"

	"axons/internal/apperr"
)

// Memory is a semantic unit written by an agent: the central entity of the
// associative graph. Essential attributes per spec §3.1.
type Memory struct {
	ID            MemoryID
	Content       string
	Summary       string
	Created       time.Time
	LastAccessed  time.Time
	AccessCount   int
	Confidence    float64
	Permeability  Permeability
}

// NewMemory constructs a Memory with full validation, defaulting
// Permeability to Open and AccessCount to 0.
func NewMemory(content, summary string, confidence float64, permeability Permeability) (*Memory, error) {
	if !NonEmpty(content) {
		return nil, apperr.NewMissingRequired("content")
	}
	if !NonEmpty(summary) {
		return nil, apperr.NewMissingRequired("summary")
	}
	if !InRange(confidence, 0, 1) {
		return nil, apperr.NewOutOfRange("confidence", confidence, 0, 1)
	}
	if permeability == "" {
		permeability = Open
	}
	if !permeability.Valid() {
		return nil, apperr.NewOutOfRange("permeability", 0, 0, 0)
	}
	now := time.Now()
	return &Memory{
		ID:           NewMemoryID(),
		Content:      content,
		Summary:      summary,
		Created:      now,
		LastAccessed: now,
		AccessCount:  0,
		Confidence:   confidence,
		Permeability: permeability,
	}, nil
}
