// Package observability records what happens in a vibe-manager workspace.
// Events are appended to a JSON Lines log next to the workspace config;
// activity metrics and attention alerts are derived from that log and from
// report summaries on demand.
package observability
