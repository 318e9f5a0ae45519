package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestInvalidations_TextGolden(t *testing.T) {
	out, _, err := execute(t, "invalidations")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "invalidations_text", []byte(out))
}

func TestInvalidations_SingleJSONGolden(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "invalidations", "Close-Case", "--id", "c9")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "invalidations_close_case_json", []byte(out))
}

func TestInvalidations_UnknownMutation(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "invalidations", "delete-animal")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeUnknownMutation, resp.Error.Code)
}

func TestTab_AllTextGolden(t *testing.T) {
	out, _, err := execute(t, "tab")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "tab_all_text", []byte(out))
}

func TestTab_UnmappedTextGolden(t *testing.T) {
	out, _, err := execute(t, "tab", "in_progress", " on_hold ")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "tab_unmapped_text", []byte(out))
}

func TestTab_YAML(t *testing.T) {
	out, _, err := execute(t, "--format", "yaml", "tab", "declined")
	require.NoError(t, err)

	var resp struct {
		Status string      `yaml:"status"`
		Data   []TabResult `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, TabResult{
		Status:            "DECLINED",
		Known:             true,
		OwnerTab:          "cancelled",
		AppointmentStatus: "rejected",
	}, resp.Data[0])
}

func TestRoute_JSONGolden(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "route", "--entity-type", "booking", "--entity-id", "b1", "--role", "VET")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "route_vet_booking_json", []byte(out))
}

func TestRoute_ActionURL(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   string
		failed bool
	}{
		{"relative", []string{"--action-url", "/orders/o1"}, "/orders/o1\n", false},
		{"same origin", []string{"--action-url", "https://app.test/records?focusCase=c1", "--origin", "https://app.test"}, "/records?focusCase=c1\n", false},
		{"foreign origin falls back", []string{"--action-url", "https://evil.test/x", "--origin", "https://app.test", "--entity-type", "order", "--related-id", "o2"}, "/orders/o2\n", false},
		{"system", []string{"--entity-type", "system", "--entity-id", "s1"}, "no destination\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"route"}, tt.args...)...)
			assert.Equal(t, tt.want, out)
			if tt.failed {
				require.Error(t, err)
				assert.Equal(t, ExitFailure, GetExitCode(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestVerboseGoesToStderr(t *testing.T) {
	out, errOut, err := execute(t, "-v", "--format", "json", "invalidations", "create-animal")
	require.NoError(t, err)
	assert.Contains(t, errOut, "1 mutation(s)")

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}
