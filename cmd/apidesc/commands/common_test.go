package commands

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopDir = "../../../loader/testdata/shop"

// shopArgs prepends the flags that load the shop fixture.
func shopArgs(args ...string) []string {
	return append([]string{"-dir", shopDir, "-pkg", "."}, args...)
}

// captureStdout redirects command output to a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid yaml", FormatYAML, false},
		{"invalid format", "xml", true},
		{"empty format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestOutputStructured(t *testing.T) {
	data := map[string]string{"test": "value"}

	t.Run("json format", func(t *testing.T) {
		buf := captureStdout(t)
		require.NoError(t, OutputStructured(data, FormatJSON))
		assert.Equal(t, "{\n  \"test\": \"value\"\n}\n", buf.String())
	})

	t.Run("yaml format", func(t *testing.T) {
		buf := captureStdout(t)
		require.NoError(t, OutputStructured(data, FormatYAML))
		assert.Equal(t, "test: value\n", buf.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		err := OutputStructured(data, "invalid")
		assert.Error(t, err)
	})
}

func TestSourceFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default", nil, []string{"./..."}},
		{"single", []string{"-pkg", "./api"}, []string{"./api"}},
		{"list", []string{"-pkg", "./api, ./models ,"}, []string{"./api", "./models"}},
		{"blank", []string{"-pkg", " , "}, []string{"./..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			var s SourceFlags
			s.register(fs)
			require.NoError(t, fs.Parse(tt.args))
			assert.Equal(t, tt.want, s.patterns())
			assert.Equal(t, ".", s.Dir)
		})
	}
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		target     string
		typeName   string
		methodName string
	}{
		{"", "", ""},
		{"Order", "Order", ""},
		{"OrderController.Get", "OrderController", "Get"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			typeName, method := splitTarget(tt.target)
			assert.Equal(t, tt.typeName, typeName)
			assert.Equal(t, tt.methodName, method)
		})
	}
}
