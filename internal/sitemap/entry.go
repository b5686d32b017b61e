package sitemap

import (
	"encoding/xml"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/macko911/nextjs-sitemap-generator/internal/pages"
)

// DateLayout is the lastmod date format (W3C date, day precision).
const DateLayout = "2006-01-02"

// PageConfig overrides the generated fields for one page. When present it
// replaces both priority and change frequency; an unset field is omitted.
type PageConfig struct {
	Priority   *float64 `yaml:"priority,omitempty" validate:"omitempty,gte=0,lte=1"`
	ChangeFreq string   `yaml:"changefreq,omitempty" validate:"omitempty,oneof=always hourly daily weekly monthly yearly never"`
}

// PagesConfig maps a lowercase logical path to its overrides.
type PagesConfig map[string]PageConfig

// AlternateURLs maps a language tag to the base URL of that language's site.
type AlternateURLs map[string]string

// AlternateLink is one xhtml:link element pointing at a translated page.
type AlternateLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// Entry is one <url> element of the sitemap.
type Entry struct {
	XMLName    xml.Name        `xml:"url"`
	Loc        string          `xml:"loc"`
	Alternates []AlternateLink `xml:"xhtml:link"`
	Priority   string          `xml:"priority,omitempty"`
	ChangeFreq string          `xml:"changefreq,omitempty"`
	LastMod    string          `xml:"lastmod"`
}

// Options carries the site-wide inputs to Entries.
type Options struct {
	BaseURL       string
	AlternateURLs AlternateURLs
	PagesConfig   PagesConfig
	// Clock supplies the run date. Nil means time.Now.
	Clock func() time.Time
	// LastMod optionally supplies per-page dates; pages it has no date for use the run date.
	LastMod LastModResolver
}

// StripIndex removes a trailing "/index" segment; the bare root becomes "/".
func StripIndex(path string) string {
	path = strings.TrimSuffix(path, "/index")
	if path == "" {
		return pages.RootPath
	}
	return path
}

// Entries derives the sitemap entries for m in ascending path order. Keys that
// collapse onto the same path after index stripping produce a single entry,
// backed by the first key in sorted order.
func Entries(m pages.PathMap, opts Options) []Entry {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	runDate := clock().Format(DateLayout)

	descriptors := make(map[string]pages.PageDescriptor, len(m))
	paths := make([]string, 0, len(m))
	for _, key := range m.Keys() {
		path := StripIndex(key)
		if _, dup := descriptors[path]; dup {
			continue
		}
		descriptors[path] = m[key]
		paths = append(paths, path)
	}
	sort.Strings(paths)

	langs := make([]string, 0, len(opts.AlternateURLs))
	for lang := range opts.AlternateURLs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		entry := Entry{
			Loc:      opts.BaseURL + path,
			Priority: Priority(path),
			LastMod:  runDate,
		}
		for _, lang := range langs {
			entry.Alternates = append(entry.Alternates, AlternateLink{
				Rel:      "alternate",
				Hreflang: lang,
				Href:     opts.AlternateURLs[lang] + path,
			})
		}
		if cfg, ok := opts.PagesConfig[strings.ToLower(path)]; ok {
			entry.Priority = cfg.priorityText()
			entry.ChangeFreq = cfg.ChangeFreq
		}
		if opts.LastMod != nil {
			if t, ok := opts.LastMod.LastMod(descriptors[path]); ok {
				entry.LastMod = t.Format(DateLayout)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// priorityText renders an override priority in its shortest decimal form.
func (c PageConfig) priorityText() string {
	if c.Priority == nil {
		return ""
	}
	return strconv.FormatFloat(*c.Priority, 'f', -1, 64)
}
