// Package device classifies a User-Agent string into coarse device, browser
// and OS buckets for watch history records.
package device

import (
	"strings"

	"github.com/zetflix/zetflix-api/internal/models"
)

var mobileMarkers = []string{"mobile", "android", "iphone", "ipod", "blackberry", "iemobile", "opera mini"}
var tabletMarkers = []string{"tablet", "ipad", "playbook", "silk"}

// Detect classifies a User-Agent header. An empty header yields Unknown in
// every field.
func Detect(userAgent string) models.DeviceInfo {
	if userAgent == "" {
		return models.DeviceInfo{
			DeviceType: "Unknown",
			Browser:    "Unknown",
			OS:         "Unknown",
		}
	}

	ua := strings.ToLower(userAgent)

	return models.DeviceInfo{
		UserAgent:  userAgent,
		DeviceType: detectType(ua),
		Browser:    detectBrowser(ua),
		OS:         detectOS(ua),
	}
}

func detectType(ua string) string {
	for _, marker := range tabletMarkers {
		if strings.Contains(ua, marker) {
			return "Tablet"
		}
	}
	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			return "Mobile"
		}
	}
	return "Desktop"
}

func detectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "safari"):
		return "Safari"
	case strings.Contains(ua, "opera"), strings.Contains(ua, "opr"):
		return "Opera"
	default:
		return "Unknown"
	}
}

func detectOS(ua string) string {
	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ios"):
		return "iOS"
	case strings.Contains(ua, "mac"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Unknown"
	}
}
