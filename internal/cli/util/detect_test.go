// Package util tests the detect and os diagnostic commands.
// Related: internal/cli/util/detect.go, internal/cli/util/os.go
// Tags: util, cli, detect, useragent, capability, os

package util

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/beamscheck/internal/capability"
	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	"github.com/ariel-frischer/beamscheck/internal/osinfo"
)

const (
	windowsChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	iPhoneUA        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
)

func TestBuildDetectReport(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		ua       string
		features capability.Features
		want     DetectReport
	}{
		"desktop chrome supported": {
			ua:       windowsChromeUA,
			features: capability.AllFeatures(),
			want: DetectReport{
				UserAgent: windowsChromeUA, OS: "Windows", OSIcon: "windows",
				Browser: "Chrome", BrowserIcon: "chrome",
				Capability: capability.Result{Supported: true},
			},
		},
		"iphone blocked even with features": {
			ua:       iPhoneUA,
			features: capability.AllFeatures(),
			want: DetectReport{
				UserAgent: iPhoneUA, OS: "iOS", OSIcon: "apple",
				Browser: "Safari", BrowserIcon: "safari",
				Capability: capability.Result{Reason: capability.ReasonMobileRestricted},
			},
		},
		"desktop without push manager": {
			ua:       windowsChromeUA,
			features: capability.Features{ServiceWorker: true},
			want: DetectReport{
				UserAgent: windowsChromeUA, OS: "Windows", OSIcon: "windows",
				Browser: "Chrome", BrowserIcon: "chrome",
				Capability: capability.Result{Reason: capability.ReasonMissingFeatures},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, buildDetectReport(tt.ua, tt.features))
		})
	}
}

func TestRunDetect_Text(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		ua           string
		features     capability.Features
		wantContains []string
	}{
		"supported": {
			ua:           windowsChromeUA,
			features:     capability.AllFeatures(),
			wantContains: []string{"Windows (windows)", "Chrome (chrome)", "Web push notifications are supported in this browser."},
		},
		"mobile": {
			ua:           iPhoneUA,
			features:     capability.AllFeatures(),
			wantContains: []string{"iOS (apple)", "not supported", "iPad, iPhone and iPod"},
		},
		"missing features": {
			ua:           windowsChromeUA,
			wantContains: []string{"not supported", "Service workers and the Push API"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := runDetect(&buf, detectOptions{userAgent: tt.ua, features: tt.features, format: shared.OutputText})
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRunDetect_Structured(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, runDetect(&buf, detectOptions{userAgent: iPhoneUA, features: capability.AllFeatures(), format: shared.OutputJSON}))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "iOS", got["os"])
		assert.Equal(t, "Safari", got["browser"])
		capResult, ok := got["capability"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, false, capResult["supported"])
		assert.Equal(t, "mobile_restricted", capResult["reason"])
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, runDetect(&buf, detectOptions{userAgent: windowsChromeUA, features: capability.AllFeatures(), format: shared.OutputYAML}))

		var got DetectReport
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "Windows", got.OS)
		assert.True(t, got.Capability.Supported)
	})
}

type stubOS struct {
	report osinfo.Report
	err    error
}

func (s stubOS) Collect(context.Context) (osinfo.Report, error) { return s.report, s.err }

func TestRunOS(t *testing.T) {
	t.Parallel()

	report := osinfo.Report{Platform: "linux", Release: "6.8.0-45-generic", Version: "#45-Ubuntu SMP"}

	tests := map[string]struct {
		source       osinfo.Source
		format       shared.OutputFormat
		wantContains []string
		wantErr      bool
	}{
		"text": {
			source:       stubOS{report: report},
			format:       shared.OutputText,
			wantContains: []string{"Platform:", "linux", "Release:", "6.8.0-45-generic", "Version:", "#45-Ubuntu SMP"},
		},
		"json": {
			source:       stubOS{report: report},
			format:       shared.OutputJSON,
			wantContains: []string{`"platform": "linux"`, `"release": "6.8.0-45-generic"`, `"version": "#45-Ubuntu SMP"`},
		},
		"collector failure": {
			source:  stubOS{err: errors.New("uname failed")},
			format:  shared.OutputText,
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := runOS(context.Background(), &buf, tt.source, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "uname failed")
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
