// Package storage persists the generated calendar feed.
//
// The feed is the only durable artifact a run produces. Writes go to a temporary file
// in the target directory which is then renamed over the previous feed, so a failed
// write never leaves a truncated calendar behind for subscribers.
package storage
