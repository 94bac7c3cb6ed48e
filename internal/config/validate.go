package config

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures mid-pipeline.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		return fmt.Errorf("config: staging_dir is required")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return fmt.Errorf("config: output_dir is required")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("config: log_dir is required")
	}
	if strings.TrimSpace(c.Paths.DBPath) == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("config: render.fps must be positive, got %d", c.Render.FPS)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("config: render dimensions must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("config: browser viewport must be positive, got %dx%d", c.Browser.ViewportWidth, c.Browser.ViewportHeight)
	}
	if key := strings.TrimSpace(c.Encryption.Key); key != "" {
		decoded, err := hex.DecodeString(key)
		if err != nil {
			return fmt.Errorf("config: encryption.key must be hex: %w", err)
		}
		if len(decoded) != 32 {
			return fmt.Errorf("config: encryption.key must decode to 32 bytes, got %d", len(decoded))
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format %q not supported", c.Logging.Format)
	}
	return nil
}

// EncryptionKey returns the decoded credential sealing key, or nil when
// encryption is not configured.
func (c *Config) EncryptionKey() []byte {
	key := strings.TrimSpace(c.Encryption.Key)
	if key == "" {
		return nil
	}
	decoded, err := hex.DecodeString(key)
	if err != nil || len(decoded) != 32 {
		return nil
	}
	return decoded
}
