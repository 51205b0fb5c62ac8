package validation

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRequireFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		fields  []string
		want    []string
	}{
		{
			name:   "all fields present",
			body:   `{"title":"Go","description":"A course","userId":1}`,
			fields: []string{"title", "description", "userId"},
			want:   nil,
		},
		{
			name:   "all fields missing",
			body:   `{}`,
			fields: []string{"title", "description", "userId"},
			want: []string{
				`Please provide a value for "title"`,
				`Please provide a value for "description"`,
				`Please provide a value for "userId"`,
			},
		},
		{
			name:   "empty string is missing",
			body:   `{"title":"","description":"A course","userId":1}`,
			fields: []string{"title", "description", "userId"},
			want:   []string{`Please provide a value for "title"`},
		},
		{
			name:   "null is missing",
			body:   `{"title":null,"description":"A course","userId":1}`,
			fields: []string{"title", "description", "userId"},
			want:   []string{`Please provide a value for "title"`},
		},
		{
			name:   "zero number is missing",
			body:   `{"title":"Go","description":"A course","userId":0}`,
			fields: []string{"title", "description", "userId"},
			want:   []string{`Please provide a value for "userId"`},
		},
		{
			name:   "false is missing",
			body:   `{"flag":false}`,
			fields: []string{"flag"},
			want:   []string{`Please provide a value for "flag"`},
		},
		{
			name:   "messages preserve declared field order",
			body:   `{"lastName":"Doe"}`,
			fields: []string{"firstName", "lastName", "emailAddress", "password"},
			want: []string{
				`Please provide a value for "firstName"`,
				`Please provide a value for "emailAddress"`,
				`Please provide a value for "password"`,
			},
		},
		{
			name:   "non-zero number is present",
			body:   `{"userId":42}`,
			fields: []string{"userId"},
			want:   nil,
		},
		{
			name:   "nested object is present",
			body:   `{"meta":{}}`,
			fields: []string{"meta"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload map[string]any
			if err := json.Unmarshal([]byte(tt.body), &payload); err != nil {
				t.Fatalf("decoding test body: %v", err)
			}

			got := RequireFields(payload, tt.fields)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
