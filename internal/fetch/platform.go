// Package fetch - platform.go provides storefront platform detection and the
// conventional policy-page paths each platform uses.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known storefront platform.
type Platform string

const (
	// PlatformShopify is the Shopify storefront platform
	PlatformShopify Platform = "shopify"
	// PlatformWooCommerce is the WooCommerce (WordPress) platform
	PlatformWooCommerce Platform = "woocommerce"
	// PlatformBigCommerce is the BigCommerce platform
	PlatformBigCommerce Platform = "bigcommerce"
	// PlatformSquarespace is the Squarespace commerce platform
	PlatformSquarespace Platform = "squarespace"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the storefront platform from a URL and, when
// available, the fetched page HTML. Host markers are checked first, then
// well-known asset/CDN fingerprints in the markup.
func DetectPlatform(urlStr string, html string) Platform {
	parsed, err := url.Parse(urlStr)
	if err == nil {
		host := strings.ToLower(parsed.Host)
		if strings.Contains(host, "myshopify.com") {
			return PlatformShopify
		}
		if strings.Contains(host, "mybigcommerce.com") {
			return PlatformBigCommerce
		}
		if strings.Contains(host, "squarespace.com") {
			return PlatformSquarespace
		}
	}

	lower := strings.ToLower(html)
	switch {
	case strings.Contains(lower, "cdn.shopify.com") || strings.Contains(lower, "shopify.theme"):
		return PlatformShopify
	case strings.Contains(lower, "woocommerce"):
		return PlatformWooCommerce
	case strings.Contains(lower, "bigcommerce.com") || strings.Contains(lower, "cdn11.bigcommerce.com"):
		return PlatformBigCommerce
	case strings.Contains(lower, "static1.squarespace.com") || strings.Contains(lower, "squarespace-cdn.com"):
		return PlatformSquarespace
	}

	return PlatformUnknown
}

// PlatformPolicyPaths returns the conventional policy-page paths for a
// platform, in probe order. Unknown platforms get the union of common paths.
func PlatformPolicyPaths(platform Platform) []string {
	switch platform {
	case PlatformShopify:
		return []string{
			"/policies/refund-policy",
			"/policies/shipping-policy",
			"/pages/return-policy",
			"/pages/returns",
			"/pages/refund-policy",
		}
	case PlatformWooCommerce:
		return []string{
			"/refund_returns",
			"/return-policy",
			"/returns",
			"/refund-policy",
		}
	case PlatformBigCommerce:
		return []string{
			"/returns",
			"/shipping-returns",
			"/return-policy",
		}
	case PlatformSquarespace:
		return []string{
			"/return-policy",
			"/returns",
			"/policies",
		}
	default:
		return []string{
			"/policies/refund-policy",
			"/policies/shipping-policy",
			"/pages/return-policy",
			"/pages/returns",
			"/pages/refund-policy",
			"/return-policy",
			"/returns",
			"/refund_returns",
		}
	}
}
