// Package device derives a client fingerprint from a raw user-agent string.
package device

import (
	"fmt"

	"github.com/J-A-Y2/Big-Money/internal/domain"
	"github.com/mileusna/useragent"
)

// Parse extracts the browser family, platform family, and version from a
// user-agent header. Unrecognized agents come back with empty families rather
// than an error; the session layer treats the fingerprint as advisory.
func Parse(rawUserAgent string) domain.DeviceInfo {
	ua := useragent.Parse(rawUserAgent)

	version := ua.Version
	if version == "" {
		version = fmt.Sprintf("%d.%d.%d", ua.VersionNo.Major, ua.VersionNo.Minor, ua.VersionNo.Patch)
	}

	return domain.DeviceInfo{
		Browser:  ua.Name,
		Platform: ua.OS,
		Version:  version,
	}
}
