package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

func TestJSONStrict(t *testing.T) {
	got, err := JSON(`  {"a": 1}  `)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestJSONFencedBlock(t *testing.T) {
	text := "Here is the analysis you asked for:\n\n```json\n{\"a\": 1}\n```\n\nLet me know if you need more detail."
	got, err := JSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestJSONFencedBlockUntagged(t *testing.T) {
	text := "Sure!\n```\n[{\"keyword\": \"budget widgets\"}]\n```"
	got, err := JSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"keyword":"budget widgets"}]`, string(got))
}

func TestJSONBalancedSubstring(t *testing.T) {
	text := `The result is {"name": "Widget {deluxe}", "tags": ["a", "b"]} which should help.`
	got, err := JSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Widget {deluxe}","tags":["a","b"]}`, string(got))
}

func TestJSONBalancedRespectsStrings(t *testing.T) {
	// The brace inside the string value must not terminate the match early.
	text := `prefix {"note": "unbalanced } inside", "ok": true} suffix`
	got, err := JSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"note":"unbalanced } inside","ok":true}`, string(got))
}

func TestJSONArray(t *testing.T) {
	text := `Issues found: [{"severity": "high"}, {"severity": "low"}] as requested.`
	got, err := JSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"severity":"high"},{"severity":"low"}]`, string(got))
}

func TestJSONPlainProse(t *testing.T) {
	_, err := JSON("I could not produce a structured answer, sorry about that.")
	require.Error(t, err)
	assert.True(t, apperrors.IsExtraction(err))
}

func TestJSONRejectsBareScalars(t *testing.T) {
	_, err := JSON("42")
	require.Error(t, err)
}

func TestTableTwoRows(t *testing.T) {
	text := "Some findings below.\n\n" +
		"| Keyword | Intent |\n" +
		"| --- | --- |\n" +
		"| budget widgets | commercial |\n" +
		"|  widget reviews | informational |\n\n" +
		"Hope this helps."

	rows := Table(text, "Keyword")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"budget widgets", "commercial"}, rows[0])
	assert.Equal(t, []string{"widget reviews", "informational"}, rows[1])
}

func TestTableSkipsSeparatorAndHeader(t *testing.T) {
	text := "| Keyword | Intent |\n|---|---|\n| a | b |"
	rows := Table(text, "Keyword")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestTableNoTable(t *testing.T) {
	assert.Empty(t, Table("no table here at all", "Keyword"))
}

func TestTableTrimsCells(t *testing.T) {
	rows := Table("|   padded   |  cells |", "")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"padded", "cells"}, rows[0])
}
