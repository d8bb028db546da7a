package apt

import (
	"fmt"
	"os"
)

// ProxyFromEnv returns the HTTP proxy from the environment, preferring
// HTTP_PROXY over http_proxy. Empty when neither is set.
func ProxyFromEnv() string {
	for _, key := range []string{"HTTP_PROXY", "http_proxy"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// WriteProxyConf writes an apt drop-in at path routing both http and https
// acquisition through proxyURL.
func WriteProxyConf(path, proxyURL string) error {
	if proxyURL == "" {
		return fmt.Errorf("empty proxy URL")
	}

	content := fmt.Sprintf("Acquire::http::Proxy %q;\nAcquire::https::Proxy %q;\n", proxyURL, proxyURL)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
