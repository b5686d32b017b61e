// Package sitemap turns a resolved path map into sitemap protocol entries and
// streams them to sitemap.xml.
//
// Entries derives one <url> per logical path: the default priority falls by 0.1
// for every level of depth, per-page configuration may replace priority and
// change frequency, and language alternates are added as xhtml:link elements.
// Writer seals the output atomically: the file is assembled under a temporary
// name in the target directory and only renamed over sitemap.xml once complete.
package sitemap
