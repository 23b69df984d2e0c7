package api

import (
	"testing"
)

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedMime string
		expectedData string
		expectError  bool
	}{
		{
			name:         "Base64 payload",
			input:        "data:application/pdf;base64,aGVsbG8=",
			expectedMime: "application/pdf",
			expectedData: "hello",
		},
		{
			name:         "Plain payload",
			input:        "data:text/plain,hello%20world",
			expectedMime: "text/plain",
			expectedData: "hello world",
		},
		{
			name:         "Empty media type defaults",
			input:        "data:,hi",
			expectedMime: "text/plain;charset=US-ASCII",
			expectedData: "hi",
		},
		{
			name:        "Not a data URL",
			input:       "https://example.com/file.pdf",
			expectError: true,
		},
		{
			name:        "Missing payload separator",
			input:       "data:text/plain;base64",
			expectError: true,
		},
		{
			name:        "Broken base64",
			input:       "data:text/plain;base64,!!!",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, err := parseDataURL(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mime != tt.expectedMime {
				t.Errorf("Expected media type %q, got %q", tt.expectedMime, mime)
			}
			if string(data) != tt.expectedData {
				t.Errorf("Expected data %q, got %q", tt.expectedData, string(data))
			}
		})
	}
}
