// Package artist provides read-only access to artist profiles.
package artist
