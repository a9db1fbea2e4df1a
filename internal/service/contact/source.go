package contact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the slice of the S3 client used for s3:// sources.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// openSource opens a local path or an s3://bucket/key object and returns
// its reader and base name.
func (s *Service) openSource(ctx context.Context, source string) (io.ReadCloser, string, error) {
	if rest, ok := strings.CutPrefix(source, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFile, source)
		}
		if s.objects == nil {
			return nil, "", fmt.Errorf("%w: s3 sources are not configured", ErrUnsupportedFile)
		}
		out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, "", fmt.Errorf("get s3 object: %w", err)
		}
		return out.Body, path.Base(key), nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, "", fmt.Errorf("open source: %w", err)
	}
	return f, baseName(source), nil
}

// parseSource picks the parser from the file extension.
func parseSource(r io.Reader, name string) ([]Record, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx":
		return ParseWorkbook(r)
	default:
		return ParseRecords(r)
	}
}

func baseName(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Base(p)
}
