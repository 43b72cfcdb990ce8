package api

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/jackzampolin/userboard/internal/pagination"
	"github.com/jackzampolin/userboard/internal/types"
)

func fixtureUsers() []types.User {
	return []types.User{
		{
			ID:       "u1",
			Name:     "Leanne Graham",
			Username: "Bret",
			Email:    "Sincere@april.biz",
			Phone:    "1-770-736-8031",
			Address: &types.Address{
				ID:      "a1",
				UserID:  "u1",
				Street:  "Kulas Light",
				State:   "Apt. 556",
				City:    "Gwenborough",
				Zipcode: "92998-3874",
			},
		},
		{
			ID:       "u2",
			Name:     "Ervin Howell",
			Username: "Antonette",
			Email:    "Shanna@melissa.tv",
			Phone:    "010-692-6593",
		},
	}
}

func TestOutputTo_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name   string
		format OutputFormat
		data   any
	}{
		{"users_json", OutputFormatJSON, fixtureUsers()},
		{"users_yaml", OutputFormatYAML, fixtureUsers()},
		{"pages_json", OutputFormatJSON, pagination.Dotted(1000, 1, 500, 2)},
		{"pages_text", OutputFormatText, pagination.New(4000, 4, 500)},
		{"users_text_falls_back_to_yaml", OutputFormatText, fixtureUsers()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := OutputTo(&buf, tt.format, tt.data); err != nil {
				t.Fatalf("OutputTo() error = %v", err)
			}
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestOutputTo_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputTo(&buf, OutputFormat("xml"), fixtureUsers()); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSetOutputFormat(t *testing.T) {
	t.Cleanup(func() { SetOutputFormat("yaml") })

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Errorf("expected json, got %s", GetOutputFormat())
	}

	SetOutputFormat("text")
	if GetOutputFormat() != OutputFormatText {
		t.Errorf("expected text, got %s", GetOutputFormat())
	}

	SetOutputFormat("toml")
	if GetOutputFormat() != DefaultOutput {
		t.Errorf("expected default for unknown format, got %s", GetOutputFormat())
	}
}
