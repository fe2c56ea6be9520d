package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidKey(t *testing.T) {
	assert.True(t, validKey("event-1-2.jpg"))
	assert.False(t, validKey(""))
	assert.False(t, validKey(".."))
	assert.False(t, validKey("../etc/passwd"))
	assert.False(t, validKey("a/b.jpg"))
	assert.False(t, validKey(`a\b.jpg`))
}

func TestLocalStorage_SaveDelete(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads", "events")
	s, err := NewLocalStorage(root, "/uploads/events")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "event-1.png", strings.NewReader("png-bytes"), 9, "image/png"))

	data, err := os.ReadFile(filepath.Join(root, "event-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "/uploads/events/event-1.png", s.PublicURL("event-1.png"))

	// never overwrite an existing upload
	assert.Error(t, s.Save(ctx, "event-1.png", strings.NewReader("other"), 5, "image/png"))

	require.NoError(t, s.Delete(ctx, "event-1.png"))
	_, err = os.Stat(filepath.Join(root, "event-1.png"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, s.Save(ctx, "../escape.png", strings.NewReader("x"), 1, "image/png"), ErrInvalidKey)
	assert.ErrorIs(t, s.Delete(ctx, "../escape.png"), ErrInvalidKey)
}

type fakeS3 struct {
	puts    map[string]string
	deletes []string
	putErr  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(in.Body)
	if f.puts == nil {
		f.puts = map[string]string{}
	}
	f.puts[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	client := &fakeS3{}
	s := NewS3Storage(client, "charity-media", "/uploads/events/", "")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "event-1.jpg", strings.NewReader("jpg"), 3, "image/jpeg"))
	assert.Equal(t, "jpg", client.puts["charity-media/uploads/events/event-1.jpg"])

	require.NoError(t, s.Delete(ctx, "event-1.jpg"))
	assert.Equal(t, []string{"charity-media/uploads/events/event-1.jpg"}, client.deletes)

	assert.Equal(t, "https://charity-media.s3.amazonaws.com/uploads/events/event-1.jpg", s.PublicURL("event-1.jpg"))

	custom := NewS3Storage(client, "charity-media", "", "https://cdn.example.org/")
	assert.Equal(t, "https://cdn.example.org/event-1.jpg", custom.PublicURL("event-1.jpg"))
}

func TestS3Storage_PutError(t *testing.T) {
	s := NewS3Storage(&fakeS3{putErr: errors.New("boom")}, "b", "", "")

	err := s.Save(context.Background(), "event-1.jpg", strings.NewReader("x"), 1, "image/jpeg")
	assert.ErrorContains(t, err, "boom")
}
