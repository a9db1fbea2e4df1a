// Package contact implements the contact ingestor and contact queries.
//
// Import reads a CSV or XLSX source (local path or s3://bucket/key),
// normalizes each row into a Record, classifies it into an industry
// category and inserts it unless the email already exists. Imports are
// idempotent: running the same file twice only produces skips.
//
// Repository implementations live in repository/postgres/.
package contact
