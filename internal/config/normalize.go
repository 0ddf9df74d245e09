package config

import "strings"

// normalize expands and cleans all path-valued fields and trims free-text
// values so validation sees canonical data.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Committees.CachePath) != "" {
		if c.Committees.CachePath, err = expandPath(c.Committees.CachePath); err != nil {
			return err
		}
	}
	c.Committees.SourceURL = strings.TrimSpace(c.Committees.SourceURL)
	c.Tools.Pdftotext = strings.TrimSpace(c.Tools.Pdftotext)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
