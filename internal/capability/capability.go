// Package capability decides whether a client can use standards-based web push.
package capability

import "strings"

// Reason explains why push is unavailable
type Reason string

const (
	// ReasonNone is set when push is supported
	ReasonNone Reason = ""
	// ReasonMobileRestricted marks mobile OS families without standards-compliant push
	ReasonMobileRestricted Reason = "mobile_restricted"
	// ReasonMissingFeatures marks clients lacking service workers or a push manager
	ReasonMissingFeatures Reason = "missing_features"
)

// mobileMarkers are the user-agent substrings of platforms that are treated
// as push-incapable regardless of reported browser features
var mobileMarkers = []string{"iPad", "iPhone", "iPod"}

// Features are the browser capabilities the subscription workflow needs
type Features struct {
	ServiceWorker bool `json:"service_worker" yaml:"service_worker"`
	PushManager   bool `json:"push_manager" yaml:"push_manager"`
}

// AllFeatures reports both capabilities as present
func AllFeatures() Features {
	return Features{ServiceWorker: true, PushManager: true}
}

// Result is the capability flag plus the reason it was cleared
type Result struct {
	Supported bool   `json:"supported" yaml:"supported"`
	Reason    Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// MobileRestricted reports whether ua belongs to a platform family known to
// lack standards-compliant push support
func MobileRestricted(ua string) bool {
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

// Evaluate computes the capability flag for a client
func Evaluate(ua string, f Features) Result {
	if MobileRestricted(ua) {
		return Result{Supported: false, Reason: ReasonMobileRestricted}
	}
	if !f.ServiceWorker || !f.PushManager {
		return Result{Supported: false, Reason: ReasonMissingFeatures}
	}
	return Result{Supported: true}
}
