package service

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateBlogInput(t *testing.T) {
	svc := &BlogService{}

	tests := []struct {
		name    string
		input   CreateBlogInput
		wantErr error
	}{
		{
			name:    "valid",
			input:   CreateBlogInput{Title: "My newest blog about roadbikes", Author: "Shimano Taki", URL: "shimano.bikes.com"},
			wantErr: nil,
		},
		{
			name:    "valid without author",
			input:   CreateBlogInput{Title: "Untitled musings", URL: "example.com/musings"},
			wantErr: nil,
		},
		{
			name:    "missing title",
			input:   CreateBlogInput{URL: "example.com"},
			wantErr: ErrTitleMissing,
		},
		{
			name:    "whitespace title",
			input:   CreateBlogInput{Title: "   ", URL: "example.com"},
			wantErr: ErrTitleMissing,
		},
		{
			name:    "missing url",
			input:   CreateBlogInput{Title: "A title"},
			wantErr: ErrURLMissing,
		},
		{
			name:    "title too long",
			input:   CreateBlogInput{Title: strings.Repeat("t", 201), URL: "example.com"},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "author too long",
			input:   CreateBlogInput{Title: "A title", Author: strings.Repeat("a", 101), URL: "example.com"},
			wantErr: ErrAuthorTooLong,
		},
		{
			name:    "url too long",
			input:   CreateBlogInput{Title: "A title", URL: "example.com/" + strings.Repeat("u", 2048)},
			wantErr: ErrURLTooLong,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := svc.validateBlogInput(test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
