// Package watch reports image files as they appear in a directory.
//
// Files are handed out once they have been quiet for the settle delay, and
// each path at most once per Watcher, so rewrites of an already handled image
// do not trigger it again.
package watch
