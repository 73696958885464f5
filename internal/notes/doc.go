// Package notes orchestrates note browsing, uploads, downloads, and the
// optimistic favorite toggle with snapshot rollback.
package notes
