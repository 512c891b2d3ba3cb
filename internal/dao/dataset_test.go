package dao_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gridform/gridform/internal/dao"
	"github.com/gridform/gridform/internal/model1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records() []model1.Record {
	return []model1.Record{
		{Key: "1", Fields: model1.Fields{"name": "A"}},
		{Key: "7", Fields: model1.Fields{"name": "B"}},
	}
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := dao.NewMemory("people", records())
	assert.Equal(t, "mem://people", m.Location())

	msg, err := m.Delete(ctx, []string{"7", "zorg"})
	require.NoError(t, err)
	assert.Equal(t, "1 row deleted", msg)

	msg, err = m.Delete(ctx, []string{"zorg"})
	require.NoError(t, err)
	assert.Empty(t, msg)

	saved, err := m.Save(ctx, []model1.Record{
		{Key: "1", Fields: model1.Fields{"name": "A2"}},
		{Fields: model1.Fields{"name": "C"}},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "2", saved[1].Key)

	rr, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, rr)
}

func TestFile(t *testing.T) {
	uu := map[string]string{
		"yaml": "people.yaml",
		"json": "people.json",
	}

	for k := range uu {
		name := uu[k]
		t.Run(k, func(t *testing.T) {
			ctx := context.Background()
			f, err := dao.NewFile(filepath.Join(t.TempDir(), "data", name))
			require.NoError(t, err)

			rr, err := f.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, rr)

			_, err = f.Save(ctx, records())
			require.NoError(t, err)

			msg, err := f.Delete(ctx, []string{"1"})
			require.NoError(t, err)
			assert.Equal(t, "1 row deleted", msg)

			rr, err = f.Load(ctx)
			require.NoError(t, err)
			require.Len(t, rr, 1)
			assert.Equal(t, "7", rr[0].Key)
			assert.Equal(t, "B", rr[0].Fields["name"])
		})
	}
}

func TestFileBadFormat(t *testing.T) {
	_, err := dao.NewFile("people.csv")
	assert.Error(t, err)
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("records: [oops"), 0600))

	f, err := dao.NewFile(path)
	require.NoError(t, err)
	_, err = f.Load(context.Background())
	assert.Error(t, err)
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	bb, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(bb))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	bb, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = bb
	return &s3.PutObjectOutput{}, nil
}

func TestS3Object(t *testing.T) {
	ctx := context.Background()
	api := &fakeS3{objects: make(map[string][]byte)}
	o, err := dao.NewS3Object(api, "bucket", "tables/people.yaml")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/tables/people.yaml", o.Location())

	rr, err := o.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rr)

	_, err = o.Save(ctx, append(records(), model1.Record{Fields: model1.Fields{"name": "C"}}))
	require.NoError(t, err)
	assert.Contains(t, api.objects, "bucket/tables/people.yaml")

	msg, err := o.Delete(ctx, []string{"1", "8"})
	require.NoError(t, err)
	assert.Equal(t, "2 rows deleted", msg)

	rr, err = o.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rr, 1)
	assert.Equal(t, "7", rr[0].Key)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	ds, err := dao.Open(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "mem://sample", ds.Location())
	rr, err := ds.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, rr, len(dao.SampleRecords()))

	ds, err = dao.Open(ctx, "mem://scratch", nil)
	require.NoError(t, err)
	rr, err = ds.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rr)

	path := filepath.Join(t.TempDir(), "t.json")
	ds, err = dao.Open(ctx, path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, ds.Location())

	_, err = dao.Open(ctx, "ftp://nope", nil)
	assert.Error(t, err)

	_, err = dao.Open(ctx, "s3://bucket-only", nil)
	assert.Error(t, err)
}
