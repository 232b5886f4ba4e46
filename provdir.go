// Package provdir scrapes a healthcare provider directory rendered inside
// a shadow-DOM widget, persists the extracted provider records with
// upsert-by-profile-URL semantics, and produces an aggregate JSON report
// (shared phone numbers, multi-location providers, rating coverage).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package provdir
