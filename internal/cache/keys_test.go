package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "generation",
			objectType:  "mcq",
			identifier:  "abc123",
			expectedKey: "quizsession:generation:mcq:abc123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "generation",
			objectType:  "mcq",
			identifier:  "abc123",
			paramsKey:   []string{},
			expectedKey: "quizsession:generation:mcq:abc123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "generation",
			objectType:  "mcq",
			identifier:  "abc123",
			paramsKey:   []string{"10"},
			expectedKey: "quizsession:generation:mcq:abc123:10",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "generation",
			objectType:  "mcq",
			identifier:  "abc123",
			paramsKey:   []string{"10", "f00d"},
			expectedKey: "quizsession:generation:mcq:abc123:10_f00d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...); got != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %q, want %q", got, tt.expectedKey)
			}
		})
	}
}
