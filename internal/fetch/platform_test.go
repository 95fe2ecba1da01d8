package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform_HostMarkers(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{"shopify subdomain", "https://comet.myshopify.com", PlatformShopify},
		{"bigcommerce subdomain", "https://store.mybigcommerce.com", PlatformBigCommerce},
		{"squarespace host", "https://comet.squarespace.com", PlatformSquarespace},
		{"custom domain, no markup", "https://wearcomet.com", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url, ""))
		})
	}
}

func TestDetectPlatform_HTMLFingerprints(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected Platform
	}{
		{"shopify cdn", `<link href="https://cdn.shopify.com/s/files/theme.css">`, PlatformShopify},
		{"woocommerce classes", `<body class="woocommerce-page">`, PlatformWooCommerce},
		{"bigcommerce cdn", `<img src="https://cdn11.bigcommerce.com/s-abc/logo.png">`, PlatformBigCommerce},
		{"squarespace cdn", `<script src="https://static1.squarespace.com/static/app.js">`, PlatformSquarespace},
		{"plain page", `<html><body>hello</body></html>`, PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform("https://wearcomet.com", tt.html))
		})
	}
}

func TestPlatformPolicyPaths_NonEmptyAndDeduped(t *testing.T) {
	platforms := []Platform{
		PlatformShopify,
		PlatformWooCommerce,
		PlatformBigCommerce,
		PlatformSquarespace,
		PlatformUnknown,
	}

	for _, platform := range platforms {
		paths := PlatformPolicyPaths(platform)
		assert.NotEmpty(t, paths, "platform %s has no policy paths", platform)

		seen := make(map[string]bool)
		for _, p := range paths {
			assert.False(t, seen[p], "platform %s has duplicate path %s", platform, p)
			seen[p] = true
		}
	}
}

func TestPlatformPolicyPaths_CoversConventionalPaths(t *testing.T) {
	paths := PlatformPolicyPaths(PlatformUnknown)
	assert.Contains(t, paths, "/policies/refund-policy")
	assert.Contains(t, paths, "/pages/return-policy")
	assert.Contains(t, paths, "/policies/shipping-policy")
}
