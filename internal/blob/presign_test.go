package blob

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPresigner() *Presigner {
	p := New(Config{
		Bucket:    "attachments-test",
		Region:    "us-east-1",
		AccessKey: "AKIATEST",
		SecretKey: "secret",
		Expires:   300,
	})
	p.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return p
}

func TestAttachmentReadURL(t *testing.T) {
	p := testPresigner()
	got := p.AttachmentReadURL("abc-123")
	assert.Equal(t, "https://attachments-test.s3.amazonaws.com/abc-123", got)
}

func TestAttachmentWriteURLShape(t *testing.T) {
	p := testPresigner()

	raw, err := p.AttachmentWriteURL(context.Background(), "abc-123")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "attachments-test.s3.amazonaws.com", u.Host)
	assert.Equal(t, "/abc-123", u.Path)

	q := u.Query()
	assert.Equal(t, "AWS4-HMAC-SHA256", q.Get("X-Amz-Algorithm"))
	assert.Equal(t, "AKIATEST/20240101/us-east-1/s3/aws4_request", q.Get("X-Amz-Credential"))
	assert.Equal(t, "20240101T120000Z", q.Get("X-Amz-Date"))
	assert.Equal(t, "300", q.Get("X-Amz-Expires"))
	assert.Equal(t, "host", q.Get("X-Amz-SignedHeaders"))
	assert.Len(t, q.Get("X-Amz-Signature"), 64)
}

func TestAttachmentWriteURLDeterministicUnderFixedClock(t *testing.T) {
	p := testPresigner()

	first, err := p.AttachmentWriteURL(context.Background(), "abc-123")
	require.NoError(t, err)
	second, err := p.AttachmentWriteURL(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different key signs differently.
	other, err := p.AttachmentWriteURL(context.Background(), "def-456")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
