package remote

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/skyla-ma/melody-surprise/progress"
	"github.com/skyla-ma/melody-surprise/util"
)

// FetchCorpus downloads every MIDI object under bucket/prefix into dest.
// Key paths are preserved, so prefixes used as genre folders in the bucket
// become genre directories on disk. Returns how many files landed.
func FetchCorpus(bucket, prefix, region, dest string) (int, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return 0, errors.Wrap(err, "creating aws session")
	}
	svc := s3.New(sess)

	var keys []string
	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	err = svc.ListObjectsV2Pages(input, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			key := aws.StringValue(obj.Key)
			if isMidiKey(key) {
				keys = append(keys, key)
			}
		}
		return true
	})
	if err != nil {
		return 0, errors.Wrapf(err, "listing s3://%v/%v", bucket, prefix)
	}

	rep := progress.New("fetch", len(keys))
	fetched := 0
	for _, key := range keys {
		if err := download(svc, bucket, key, localPath(dest, prefix, key)); err != nil {
			logrus.Warnf("skipping %v: %v", key, err)
			continue
		}
		fetched++
		rep.Inc()
	}
	rep.Done()
	return fetched, nil
}

func download(svc *s3.S3, bucket, key, filename string) error {
	out, err := svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrapf(err, "getting %v", key)
	}
	defer out.Body.Close()

	if err := util.EnsureDir(filepath.Dir(filename)); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating %v", filename)
	}
	defer f.Close()
	_, err = io.Copy(f, out.Body)
	return errors.Wrapf(err, "writing %v", filename)
}

func localPath(dest, prefix, key string) string {
	rel := strings.TrimPrefix(key, prefix)
	rel = strings.TrimPrefix(rel, "/")
	return filepath.Join(dest, filepath.FromSlash(rel))
}

func isMidiKey(key string) bool {
	switch strings.ToLower(path.Ext(key)) {
	case ".mid", ".midi":
		return true
	}
	return false
}
