// Package useragent classifies a client from its user-agent string.
// Classification is ordered substring matching against fixed priority tables;
// the first rule whose marker appears in the string wins.
package useragent

import "strings"

// Unknown is the label used when no rule matches
const Unknown = "Unknown"

// Icon selectors understood by the page and the CLI renderer
const (
	IconApple   = "apple"
	IconAndroid = "android"
	IconWindows = "windows"
	IconLinux   = "linux"
	IconChrome  = "chrome"
	IconFirefox = "firefox"
	IconSafari  = "safari"
	IconEdge    = "edge"
	IconOpera   = "opera"
	IconGeneric = "globe"
)

// Rule maps a user-agent substring to a label and icon selector
type Rule struct {
	Marker string `json:"marker" yaml:"marker"`
	Label  string `json:"label" yaml:"label"`
	Icon   string `json:"icon" yaml:"icon"`
}

// Environment is the detector output for one user-agent string
type Environment struct {
	OS          string `json:"os" yaml:"os"`
	Browser     string `json:"browser" yaml:"browser"`
	OSIcon      string `json:"os_icon" yaml:"os_icon"`
	BrowserIcon string `json:"browser_icon" yaml:"browser_icon"`
}

// iPad must precede Mac: iPadOS Safari may report itself as Macintosh, but an
// explicit iPad marker is authoritative.
var osRules = []Rule{
	{Marker: "iPad", Label: "iPadOS", Icon: IconApple},
	{Marker: "iPhone", Label: "iOS", Icon: IconApple},
	{Marker: "iPod", Label: "iOS", Icon: IconApple},
	{Marker: "Android", Label: "Android", Icon: IconAndroid},
	{Marker: "CrOS", Label: "ChromeOS", Icon: IconChrome},
	{Marker: "Macintosh", Label: "macOS", Icon: IconApple},
	{Marker: "Mac", Label: "macOS", Icon: IconApple},
	{Marker: "Windows", Label: "Windows", Icon: IconWindows},
	{Marker: "Linux", Label: "Linux", Icon: IconLinux},
}

// Order is Chrome, Firefox, Safari, Edge, Opera. Chromium-based Edge and Opera
// carry a "Chrome" token and therefore report as Chrome.
var browserRules = []Rule{
	{Marker: "Chrome", Label: "Chrome", Icon: IconChrome},
	{Marker: "Firefox", Label: "Firefox", Icon: IconFirefox},
	{Marker: "Safari", Label: "Safari", Icon: IconSafari},
	{Marker: "Edge", Label: "Edge", Icon: IconEdge},
	{Marker: "Opera", Label: "Opera", Icon: IconOpera},
}

// Detect classifies the operating system and browser family of ua.
// Unmatched input is not an error; it yields Unknown with the generic icon.
func Detect(ua string) Environment {
	osRule := match(osRules, ua)
	browserRule := match(browserRules, ua)

	return Environment{
		OS:          osRule.Label,
		Browser:     browserRule.Label,
		OSIcon:      osRule.Icon,
		BrowserIcon: browserRule.Icon,
	}
}

// OSRules returns a copy of the operating system rules in match order
func OSRules() []Rule {
	return append([]Rule(nil), osRules...)
}

// BrowserRules returns a copy of the browser rules in match order
func BrowserRules() []Rule {
	return append([]Rule(nil), browserRules...)
}

func match(rules []Rule, ua string) Rule {
	for _, r := range rules {
		if strings.Contains(ua, r.Marker) {
			return r
		}
	}
	return Rule{Label: Unknown, Icon: IconGeneric}
}
