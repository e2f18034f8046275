package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentID_Deterministic(t *testing.T) {
	id1 := NewDocumentID("report.pdf", "quarterly numbers")
	id2 := NewDocumentID("report.pdf", "quarterly numbers")
	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 32) // md5 hex
}

func TestNewDocumentID_VariesWithInputs(t *testing.T) {
	base := NewDocumentID("report.pdf", "quarterly numbers")
	assert.NotEqual(t, base, NewDocumentID("other.pdf", "quarterly numbers"))
	assert.NotEqual(t, base, NewDocumentID("report.pdf", "different text"))
}

func TestNewDocumentID_OnlyLeadingContentCounts(t *testing.T) {
	prefix := strings.Repeat("a", 1000)
	id1 := NewDocumentID("big.txt", prefix+"tail one")
	id2 := NewDocumentID("big.txt", prefix+"completely different tail")
	assert.Equal(t, id1, id2)
}
