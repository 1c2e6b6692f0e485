package availability

import (
	"encoding/json"
	"fmt"
	"os"
)

// Credentials is the cookie bundle the Cortin stock page wants. It is
// harvested from an authenticated browser session and stored as a flat JSON
// object of cookie name to value (PHPSESSID, _identity, _csrf).
type Credentials map[string]string

// LoadCredentials reads the cookie bundle from disk. A missing file is an
// error: without cookies every lookup would just come back auth_expired.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse cookie file %s: %w", path, err)
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("cookie file %s holds no cookies", path)
	}
	return creds, nil
}
