package main

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		input    string
		expected mgl32.Vec3
		wantErr  bool
	}{
		{"1,2,3", mgl32.Vec3{1, 2, 3}, false},
		{"0.5 -1 2", mgl32.Vec3{0.5, -1, 2}, false},
		{"1, 2, 3", mgl32.Vec3{1, 2, 3}, false},
		{"1,2", mgl32.Vec3{}, true},
		{"a,b,c", mgl32.Vec3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := parseVec3(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestCommand(t *testing.T) {
	for _, stream := range []string{"false", "true"} {
		t.Run("stream="+stream, func(t *testing.T) {
			cmd := newCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{
				"--points", "2000",
				"--workers", "3",
				"--min-chunk", "100",
				"--translate", "5,5,5",
				"--euler", "0.1,0.2,0.3",
				"--scale", "2",
				"--verbosity", "off",
				"--metrics",
				"--stream=" + stream,
			})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, out.String(), "center [")
			assert.Contains(t, out.String(), "geokernel_kernel_launches_total{device=cpu,kind=reduce}")
		})
	}
}

func TestCommandRejectsUnknownOrder(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--order", "XXY", "--points", "10"})

	assert.Error(t, cmd.Execute())
}
