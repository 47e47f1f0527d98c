package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageKey(t *testing.T) {
	key := ImageKey("Build a Rocket!", "My Drawing.JPG")
	assert.True(t, strings.HasPrefix(key, "solutions/build-a-rocket/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)

	assert.True(t, strings.HasSuffix(ImageKey("x", "noext"), ".png"))
	assert.True(t, strings.HasPrefix(ImageKey("!!!", "a.gif"), "solutions/challenge/"))
}

func TestLocal_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)

	p, err := store.Save(context.Background(), "solutions/mars/a.png", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/solutions/mars/a.png", p)

	data, err := os.ReadFile(filepath.Join(dir, "solutions", "mars", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))

	require.NoError(t, store.Delete(context.Background(), "solutions/mars/a.png"))
	assert.NoFileExists(t, filepath.Join(dir, "solutions", "mars", "a.png"))
	assert.NoError(t, store.Delete(context.Background(), "solutions/mars/a.png"))
}

func TestLocal_RejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../escape.png", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	body    string
	deletes []string
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_SaveAndDelete(t *testing.T) {
	api := &fakeObjectAPI{}
	store := &S3{Client: api, Bucket: "kidspace", PublicURL: "https://cdn.example.com"}

	p, err := store.Save(context.Background(), "solutions/moon/b.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/solutions/moon/b.png", p)
	require.Len(t, api.puts, 1)
	assert.Equal(t, "kidspace", *api.puts[0].Bucket)
	assert.Equal(t, "image/png", *api.puts[0].ContentType)
	assert.Equal(t, "img", api.body)

	require.NoError(t, store.Delete(context.Background(), "solutions/moon/b.png"))
	assert.Equal(t, []string{"solutions/moon/b.png"}, api.deletes)
}
