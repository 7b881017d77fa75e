package folio

import "embed"

// EmbeddedAssets contains static assets shipped with folio:
// tocspy.js (loads the table-of-contents tracker) and a fallback favicon.svg.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
