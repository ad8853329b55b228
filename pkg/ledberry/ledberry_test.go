package ledberry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	tmpDir := t.TempDir()
	l, err := New(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, FullScale, l.MaxBrightness())

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "max_brightness"), []byte("1\n"), 0644))
	l, err = New(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 1, l.MaxBrightness())
}

func TestLED_Brightness(t *testing.T) {
	tmpDir := t.TempDir()

	l, err := New(tmpDir)
	require.NoError(t, err)

	_, err = l.getBrightness()
	assert.Error(t, err)
	assert.NoError(t, l.SetBrightness(128))
	got, err := l.getBrightness()
	assert.NoError(t, err)
	assert.Equal(t, 128, got)
	content, err := os.ReadFile(filepath.Join(tmpDir, "brightness"))
	require.NoError(t, err)
	assert.Equal(t, "128", string(content))

	assert.NoError(t, l.SetBrightness(-1))
	value, err := l.getBrightness()
	require.NoError(t, err)
	assert.Equal(t, 0, value)

	assert.NoError(t, l.SetBrightness(1000))
	value, err = l.getBrightness()
	require.NoError(t, err)
	assert.Equal(t, 255, value)
}

func TestLED_Brightness_Scaled(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "max_brightness"), []byte("1023"), 0644))

	l, err := New(tmpDir)
	require.NoError(t, err)

	require.NoError(t, l.SetBrightness(255))
	content, err := os.ReadFile(filepath.Join(tmpDir, "brightness"))
	require.NoError(t, err)
	assert.Equal(t, "1023", string(content))

	require.NoError(t, l.SetBrightness(10))
	content, err = os.ReadFile(filepath.Join(tmpDir, "brightness"))
	require.NoError(t, err)
	assert.Equal(t, "40", string(content))
	value, err := l.getBrightness()
	require.NoError(t, err)
	assert.Equal(t, 9, value)
}

func TestLED_GetActiveMode(t *testing.T) {
	tests := []struct {
		name    string
		modes   string
		want    []string
		active  string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "valid",
			modes:   `[none] timer oneshot heartbeat`,
			want:    []string{"none", "timer", "oneshot", "heartbeat"},
			active:  "none",
			wantErr: assert.NoError,
		},
		{
			name:    "heartbeat",
			modes:   "none timer oneshot [heartbeat]\n",
			want:    []string{"none", "timer", "oneshot", "heartbeat"},
			active:  "heartbeat",
			wantErr: assert.NoError,
		},
		{
			name:    "nothing active",
			modes:   `none timer oneshot heartbeat`,
			want:    []string{"none", "timer", "oneshot", "heartbeat"},
			wantErr: assert.NoError,
		},
		{
			name:    "missing",
			wantErr: assert.Error,
		},
		{
			name:    "empty",
			modes:   " ",
			wantErr: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.modes != "" {
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "trigger"), []byte(tt.modes), 0644))
			}

			l, err := New(tmpDir)
			require.NoError(t, err)

			got, _, err := l.readTrigger()
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)

			active, err := l.GetActiveMode()
			tt.wantErr(t, err)
			assert.Equal(t, tt.active, active)
		})
	}
}

func TestLED_SetActiveMode(t *testing.T) {
	tests := []struct {
		name    string
		modes   string
		mode    string
		want    string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "valid mode",
			modes:   `[heartbeat] none`,
			mode:    "none",
			want:    "none",
			wantErr: assert.NoError,
		},
		{
			name:    "already active",
			modes:   `[none] heartbeat`,
			mode:    "none",
			want:    `[none] heartbeat`,
			wantErr: assert.NoError,
		},
		{
			name:    "invalid mode",
			modes:   `[none] heartbeat`,
			mode:    "invalid",
			want:    `[none] heartbeat`,
			wantErr: assert.Error,
		},
		{
			name:    "no trigger file",
			mode:    "none",
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			if tt.modes != "" {
				require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "trigger"), []byte(tt.modes), 0644))
			}

			l, err := New(tmpDir)
			require.NoError(t, err)
			tt.wantErr(t, l.SetActiveMode(tt.mode))

			if tt.modes != "" {
				got, err := os.ReadFile(filepath.Join(tmpDir, "trigger"))
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(got))
			}
		})
	}
}
