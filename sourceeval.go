// Package sourceeval evaluates curated lists of news sources for automated
// scraping. It extracts source links from a document, checks each site's
// robots.txt policy and probes each site with an LLM-driven content extraction
// engine, producing one report row per source.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., pdf/, robots/, gemini/).
package sourceeval
