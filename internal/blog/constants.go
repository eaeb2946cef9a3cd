// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package blog

// Validation bounds for authored content.
const (
	// MaxTitleLength caps blog titles. Slugs are derived from titles, so the
	// cap also bounds slug length.
	MaxTitleLength = 200

	// MaxSynopsisLength caps the short teaser shown on list pages.
	MaxSynopsisLength = 500
)
