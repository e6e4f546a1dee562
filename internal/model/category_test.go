package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/textrefine/refinescore/internal/model"
)

func TestCategoryFromLanguageTool(t *testing.T) {
	cases := []struct {
		ltCategory string
		want       model.IssueCategory
	}{
		{"GRAMMAR", model.CategoryGrammarRules},
		{"CASING", model.CategoryGrammarRules},
		{"PUNCTUATION", model.CategoryMechanics},
		{"TYPOGRAPHY", model.CategoryMechanics},
		{"COMPOUNDING", model.CategoryMechanics},
		{"TYPOS", model.CategorySpellingTyping},
		{"CONFUSED_WORDS", model.CategoryWordUsage},
		{"COLLOQUIALISMS", model.CategoryWordUsage},
		{"REDUNDANCY", model.CategoryWordUsage},
		{"FALSE_FRIENDS", model.CategoryMeaningLogic},
		{"REGIONALISMS", model.CategoryMeaningLogic},
		{"STYLE", model.CategoryStylisticIssues},
		{"REPETITIONS_STYLE", model.CategoryStylisticIssues},
		{"REPETITIONS", model.CategoryStylisticIssues},
		{"PLAIN_ENGLISH", model.CategoryStylisticIssues},
		{"MISC", model.CategoryStylisticIssues},
		{"WIKIPEDIA", model.CategoryContextualStyle},
		{"GENDER_NEUTRALITY", model.CategoryContextualStyle},
	}
	for _, tc := range cases {
		t.Run(tc.ltCategory, func(t *testing.T) {
			assert.Equal(t, tc.want, model.CategoryFromLanguageTool(tc.ltCategory))
		})
	}
}

func TestCategoryFromLanguageTool_LowercaseInput(t *testing.T) {
	assert.Equal(t, model.CategorySpellingTyping, model.CategoryFromLanguageTool("typos"))
}

func TestCategoryFromLanguageTool_UnknownFallsThrough(t *testing.T) {
	assert.Equal(t, model.CategoryStylisticIssues, model.CategoryFromLanguageTool("SEMANTICS"))
	assert.Equal(t, model.CategoryStylisticIssues, model.CategoryFromLanguageTool(""))
}

func TestCategorySeverities(t *testing.T) {
	cases := []struct {
		category model.IssueCategory
		severity int
		label    string
	}{
		{model.CategoryGrammarRules, 4, "Grammar Rules"},
		{model.CategoryMechanics, 2, "Mechanics"},
		{model.CategorySpellingTyping, 2, "Spelling & Typos"},
		{model.CategoryWordUsage, 3, "Word Usage"},
		{model.CategoryMeaningLogic, 5, "Meaning & Logic"},
		{model.CategoryStylisticIssues, 2, "Stylistic Issues"},
		{model.CategoryContextualStyle, 1, "Contextual Style"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.severity, tc.category.Severity(), "severity of %s", tc.category)
		assert.Equal(t, tc.label, tc.category.Label(), "label of %s", tc.category)
	}
}
