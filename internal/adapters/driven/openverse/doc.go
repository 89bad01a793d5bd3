// Package openverse provides an ImageSearcher backed by the Openverse API
// (https://api.openverse.org). Results are filtered for children: items
// flagged mature and items whose title contains a blocked word are dropped.
package openverse
