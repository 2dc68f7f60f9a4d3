// File: utils/constants.go
package utils

import "time"

// PostCachePrefix is the prefix used for cached post documents.
const PostCachePrefix = "post:"

// DraftKeyPrefix is the prefix used for schedule editor drafts.
const DraftKeyPrefix = "schedule:draft:"

// HealthCheckInterval is how often Mongo and Redis are pinged.
const HealthCheckInterval = 60 * time.Second
