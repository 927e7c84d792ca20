package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/noteplan/internal/note"
)

type recordingUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (r *recordingUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.input = in
	raw, _ := io.ReadAll(in.Body)
	r.body = string(raw)
	return &manager.UploadOutput{}, nil
}

func TestBuildAndWriteFile(t *testing.T) {
	data, err := Build("Export", []note.Note{{ID: "n1", Title: "Hello", Content: "world"}})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	p := filepath.Join(t.TempDir(), "out", "export.html")
	if err := WriteFile(p, data); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(raw), "<h2>Hello</h2>") {
		t.Fatalf("unexpected export %q", raw)
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 10, 9, 5, 7, 0, time.UTC)
	if got := FileName(at); got != "noteplan-20240310-090507.html" {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "", want: "a.html"},
		{prefix: "exports", want: "exports/a.html"},
		{prefix: "/exports/2024/", want: "exports/2024/a.html"},
	}
	for _, tt := range tests {
		s := &S3{prefix: tt.prefix}
		if got := s.Key("a.html"); got != tt.want {
			t.Errorf("Key with prefix %q = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestUpload(t *testing.T) {
	rec := &recordingUploader{}
	s := &S3{bucket: "notes", prefix: "exports", uploader: rec, log: zerolog.Nop()}

	loc, err := s.Upload(context.Background(), "a.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if loc != "s3://notes/exports/a.html" {
		t.Fatalf("unexpected location %q", loc)
	}
	if aws.ToString(rec.input.Bucket) != "notes" || aws.ToString(rec.input.Key) != "exports/a.html" {
		t.Fatalf("unexpected input %+v", rec.input)
	}
	if aws.ToString(rec.input.ContentType) != contentType || rec.body != "<html></html>" {
		t.Fatalf("unexpected upload body or type")
	}

	rec.err = errors.New("denied")
	if _, err := s.Upload(context.Background(), "a.html", nil); err == nil {
		t.Fatalf("expected upload failure to be returned")
	}
}

func TestNewS3(t *testing.T) {
	if _, err := NewS3(context.Background(), Options{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected a missing bucket to be rejected")
	}

	s, err := NewS3(context.Background(), Options{
		Bucket:          "notes",
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewS3 returned error: %v", err)
	}
	if s.uploader == nil || s.bucket != "notes" {
		t.Fatalf("unexpected exporter %+v", s)
	}
}
