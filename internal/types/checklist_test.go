// Package types provides type definitions for structured data used throughout the recruiting pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecklist(t *testing.T) {
	c := NewChecklist()
	require.Len(t, c, len(ChecklistKeys))
	for _, k := range ChecklistKeys {
		v, ok := c[k]
		assert.True(t, ok, "missing key %s", k)
		assert.False(t, v)
	}
}

func TestChecklistValidateRejectsUnknownKeys(t *testing.T) {
	c := Checklist{"consent_form_sent": true}
	assert.NoError(t, c.Validate())

	bad := Checklist{"background_check_done": true}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "background_check_done")
}

func TestChecklistMerge(t *testing.T) {
	c := NewChecklist()
	err := c.Merge(Checklist{"updated_cv_received": true})
	require.NoError(t, err)
	assert.True(t, c["updated_cv_received"])
	assert.False(t, c["consent_form_sent"])
}

func TestChecklistMergeRejectsUnknownKeyWithoutPartialApply(t *testing.T) {
	c := NewChecklist()
	err := c.Merge(Checklist{"updated_cv_received": true, "bogus": true})
	require.Error(t, err)
	// Nothing from the rejected patch may land.
	assert.False(t, c["updated_cv_received"])
	_, ok := c["bogus"]
	assert.False(t, ok)
}

func TestInterviewComplete(t *testing.T) {
	var nilIv *Interview
	assert.False(t, nilIv.Complete())

	assert.False(t, (&Interview{}).Complete())
	assert.True(t, (&Interview{Completed: true}).Complete())
	assert.True(t, (&Interview{Transcription: "full transcript"}).Complete())
	assert.True(t, (&Interview{Summary: "went well"}).Complete())
}

func TestInterviewResponse(t *testing.T) {
	iv := &Interview{Responses: map[string]string{
		"Expected salary": "120k",
		"Notice period":   "",
	}}

	v, ok := iv.Response("Expected salary")
	assert.True(t, ok)
	assert.Equal(t, "120k", v)

	_, ok = iv.Response("Notice period")
	assert.False(t, ok, "empty answers count as absent")

	_, ok = iv.Response("Visa status")
	assert.False(t, ok)

	var nilIv *Interview
	_, ok = nilIv.Response("anything")
	assert.False(t, ok)
}

func TestNormalizeRecommendation(t *testing.T) {
	assert.Equal(t, "yes", NormalizeRecommendation("yes"))
	assert.Equal(t, "no", NormalizeRecommendation("no"))
	assert.Equal(t, "maybe", NormalizeRecommendation("maybe"))
	assert.Equal(t, "maybe", NormalizeRecommendation("strong hire"))
	assert.Equal(t, "maybe", NormalizeRecommendation(""))
}
