package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIO stores care-log photo attachments.
type MinIO struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIO creates the client and makes sure the bucket exists. hostPort is
// e.g. "127.0.0.1:9000".
func NewMinIO(hostPort, accessKey, secretKey, bucket string, useSSL bool, publicBase string) (*MinIO, error) {
	c, err := minio.New(hostPort, &minio.Options{Creds: credentials.NewStaticV4(accessKey, secretKey, ""), Secure: useSSL})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinIO{client: c, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// sanitizeFileName keeps object keys to [a-z0-9-_.].
var nonSafe = regexp.MustCompile(`[^a-z0-9\-_.]+`)

func sanitizeFileName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = nonSafe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")
	if name == "" {
		name = "file"
	}
	return name
}

// UploadPhoto stores a multipart upload and returns the object key and its
// public URL.
func (m *MinIO) UploadPhoto(ctx context.Context, fileHeader *multipart.FileHeader, prefix string) (key string, publicURL string, err error) {
	f, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, f); err != nil {
		return "", "", err
	}

	base := sanitizeFileName(prefix)
	ext := path.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".bin"
	}
	key = fmt.Sprintf("%s-%s%s", base, uuid.New().String()[:8], ext)

	_, err = m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")})
	if err != nil {
		return "", "", err
	}

	u, _ := url.Parse(m.publicBase)
	u.Path = path.Join(u.Path, m.bucket, key)
	return key, u.String(), nil
}

func (m *MinIO) DeletePhoto(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

// KeyFromURL recovers the object key from a public URL produced by
// UploadPhoto. Returns "" for URLs that do not point into our bucket.
func (m *MinIO) KeyFromURL(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	prefix := "/" + m.bucket + "/"
	i := strings.Index(u.Path, prefix)
	if i < 0 {
		return ""
	}
	return u.Path[i+len(prefix):]
}
