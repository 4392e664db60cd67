package config

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InspectBackendKey decodes the access key without verifying it and reports
// problems worth a startup warning. Opaque (non-JWT) keys yield no warnings.
func InspectBackendKey(key string) []string {
	if key == "" || key == PlaceholderBackendKey {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return nil
	}

	var warnings []string
	if role, _ := claims["role"].(string); role == "service_role" {
		warnings = append(warnings, "BACKEND_KEY carries the service_role claim; a public anon key is expected")
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		warnings = append(warnings, "BACKEND_KEY expired at "+exp.Format(time.RFC3339))
	}
	return warnings
}
