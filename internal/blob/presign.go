package blob

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"

	"task-backend/internal/store"
)

var _ store.AttachmentStore = (*Presigner)(nil)

const (
	algorithm       = "AWS4-HMAC-SHA256"
	serviceName     = "s3"
	unsignedPayload = "UNSIGNED-PAYLOAD"
)

// Presigner builds attachment URLs against an S3-style object store: a stable
// public read URL, and a SigV4 query-presigned PUT URL for uploads. Presigning
// is pure computation; no request is made to the object store.
type Presigner struct {
	bucket    string
	region    string
	accessKey string
	secretKey string
	expires   int // seconds

	now func() time.Time
}

// Config carries the object-store settings, read once at construction.
type Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Expires   int
}

// New creates a Presigner from config.
func New(cfg Config) *Presigner {
	return &Presigner{
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		accessKey: cfg.AccessKey,
		secretKey: cfg.SecretKey,
		expires:   cfg.Expires,
		now:       time.Now,
	}
}

func (p *Presigner) host() string {
	return p.bucket + ".s3.amazonaws.com"
}

// AttachmentReadURL returns the public object URL for the attachment id.
func (p *Presigner) AttachmentReadURL(attachmentID string) string {
	return "https://" + p.host() + "/" + attachmentID
}

// AttachmentWriteURL returns a presigned PUT URL for the attachment id,
// valid for the configured expiration.
func (p *Presigner) AttachmentWriteURL(ctx context.Context, attachmentID string) (string, error) {
	t := p.now().UTC()
	amzDate := t.Format("20060102T150405Z")
	dateStamp := t.Format("20060102")
	scope := dateStamp + "/" + p.region + "/" + serviceName + "/aws4_request"

	q := url.Values{}
	q.Set("X-Amz-Algorithm", algorithm)
	q.Set("X-Amz-Credential", p.accessKey+"/"+scope)
	q.Set("X-Amz-Date", amzDate)
	q.Set("X-Amz-Expires", strconv.Itoa(p.expires))
	q.Set("X-Amz-SignedHeaders", "host")
	canonicalQuery := q.Encode()

	canonicalRequest := "PUT\n" +
		"/" + attachmentID + "\n" +
		canonicalQuery + "\n" +
		"host:" + p.host() + "\n" +
		"\n" +
		"host\n" +
		unsignedPayload

	hashed := sha256.Sum256([]byte(canonicalRequest))
	stringToSign := algorithm + "\n" +
		amzDate + "\n" +
		scope + "\n" +
		hex.EncodeToString(hashed[:])

	signature := hex.EncodeToString(hmacSHA256(p.signingKey(dateStamp), stringToSign))
	return "https://" + p.host() + "/" + attachmentID + "?" + canonicalQuery +
		"&X-Amz-Signature=" + signature, nil
}

// signingKey derives the SigV4 key chain for the given date stamp.
func (p *Presigner) signingKey(dateStamp string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+p.secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, p.region)
	kService := hmacSHA256(kRegion, serviceName)
	return hmacSHA256(kService, "aws4_request")
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}
