package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProductInput(t *testing.T) {
	tests := []struct {
		name      string
		input     productInput
		badFields []string
	}{
		{
			name:      "empty submission",
			input:     productInput{},
			badFields: []string{"title", "description", "category"},
		},
		{
			name:      "whitespace title and description",
			input:     productInput{Title: "   ", Description: "\t"},
			badFields: []string{"title", "description", "category"},
		},
		{
			name:      "negative price",
			input:     productInput{Title: "UI Kit", Description: "A kit", Price: -1},
			badFields: []string{"price", "category"},
		},
		{
			name: "both delivery fields set",
			input: productInput{
				Title: "UI Kit", Description: "A kit",
				FileURL: "https://cdn.example.com/kit.zip", ExternalLink: "https://example.com/kit",
			},
			badFields: []string{"category", "external_link"},
		},
		{
			name: "external link without scheme",
			input: productInput{
				Title: "UI Kit", Description: "A kit",
				ExternalLink: "example.com/kit",
			},
			badFields: []string{"category", "external_link"},
		},
		{
			name: "ftp external link",
			input: productInput{
				Title: "UI Kit", Description: "A kit",
				ExternalLink: "ftp://example.com/kit",
			},
			badFields: []string{"category", "external_link"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validateProductInput(tt.input)
			assert.Len(t, fields, len(tt.badFields))
			for _, field := range tt.badFields {
				assert.Contains(t, fields, field)
			}
		})
	}
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Nil(t, nullable("   "))

	got := nullable(" value ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "value", *got)
	}
}
