// Package domain defines the core business entities for tgarchive.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Topic: a named archival destination selectable per user
//   - InboundItem: one unit of content to archive
//   - Batch: a multi-item send grouped into one subfolder
//   - UploadResult: the terminal outcome of one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
