package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/macko911/nextjs-sitemap-generator/internal/foundation/normalization"
	"github.com/macko911/nextjs-sitemap-generator/internal/sitemap"
	"github.com/macko911/nextjs-sitemap-generator/internal/util/sets"
)

// NormalizationResult captures adjustments and warnings from the normalization pass.
type NormalizationResult struct{ Warnings []string }

func (r *NormalizationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// NormalizeConfig canonicalizes enumerations, lists, URLs and paths before
// defaults are applied. It mutates c in place.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeURLs(c, res)
	normalizePaths(c)
	c.IgnoredPaths = normalizeList(c.IgnoredPaths, nil)
	c.IgnoredExtensions = normalizeList(c.IgnoredExtensions, func(s string) string {
		return strings.TrimLeft(s, ".")
	})
	normalizePagesConfig(c, res)
	normalizeEnums(c, res)
	return res, nil
}

func normalizeURLs(c *Config, res *NormalizationResult) {
	c.BaseURL = trimBaseURL("base_url", c.BaseURL, res)
	for lang, u := range c.AlternateURLs {
		c.AlternateURLs[lang] = trimBaseURL("alternate_urls."+lang, u, res)
	}
}

// trimBaseURL drops surrounding space and trailing slashes so paths can be appended directly.
func trimBaseURL(field, raw string, res *NormalizationResult) string {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed != strings.TrimSpace(raw) {
		res.warn("normalized %s from '%s' to '%s'", field, raw, trimmed)
	}
	return trimmed
}

func normalizePaths(c *Config) {
	c.PagesDirectory = cleanPath(c.PagesDirectory)
	c.TargetDirectory = cleanPath(c.TargetDirectory)
	c.SitemapFile = strings.TrimSpace(c.SitemapFile)
	c.ExportPathMap.File = cleanPath(c.ExportPathMap.File)
	c.ExportPathMap.Dir = cleanPath(c.ExportPathMap.Dir)
	c.Metrics.Textfile = cleanPath(c.Metrics.Textfile)
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// normalizeList trims, optionally rewrites, drops empties, dedupes and sorts.
func normalizeList(in []string, rewrite func(string) string) []string {
	if len(in) == 0 {
		return nil
	}
	out := sets.New[string]()
	for _, s := range in {
		s = strings.TrimSpace(s)
		if rewrite != nil {
			s = rewrite(s)
		}
		if s != "" {
			out.Add(s)
		}
	}
	return sets.Sorted(out)
}

// normalizePagesConfig lowercases path keys so lookups match the lowercased page path.
func normalizePagesConfig(c *Config, res *NormalizationResult) {
	if len(c.PagesConfig) == 0 {
		return
	}
	keys := make([]string, 0, len(c.PagesConfig))
	for k := range c.PagesConfig {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(sitemap.PagesConfig, len(c.PagesConfig))
	for _, k := range keys {
		pc := c.PagesConfig[k]
		pc.ChangeFreq = strings.ToLower(strings.TrimSpace(pc.ChangeFreq))
		key := strings.ToLower(strings.TrimSpace(k))
		if _, dup := out[key]; dup {
			res.warn("pages_config '%s' duplicates '%s' after lowercasing; keeping '%s'", k, key, k)
		}
		out[key] = pc
	}
	c.PagesConfig = out
}

func normalizeEnums(c *Config, res *NormalizationResult) {
	normalizeEnum("logging.level", &c.Logging.Level, logLevelNormalizer, res)
	normalizeEnum("logging.format", &c.Logging.Format, logFormatNormalizer, res)
	normalizeEnum("lastmod.source", &c.LastMod.Source, lastModNormalizer, res)
}

// normalizeEnum canonicalizes *v in place. Empty values are left for applyDefaults.
func normalizeEnum[T ~string](field string, v *T, n *normalization.Normalizer[T], res *NormalizationResult) {
	raw := string(*v)
	if strings.TrimSpace(raw) == "" {
		return
	}
	val, ok := n.Lookup(raw)
	if !ok {
		res.warn("unknown %s '%s' (valid: %s), defaulting to %s",
			field, raw, strings.Join(n.ValidKeys(), ", "), n.Default())
		*v = n.Default()
		return
	}
	if val != *v {
		res.warn("normalized %s from '%s' to '%s'", field, raw, val)
		*v = val
	}
}
