// Package pagelens classifies web pages and extracts structured records
// from them. Given a snapshot of a page (URL plus HTML), it decides whether
// the page is an e-commerce product page, a professional-network profile,
// or a generic page, and runs a layered extraction pipeline (structured
// data, microdata, platform-specific heuristics, generic fallback) to turn
// the uncontrolled DOM into normalized records suitable for tabular export
// and contact enrichment.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package pagelens
