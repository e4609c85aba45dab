package storage

import (
	"fmt"

	"github.com/fvidal/derivatives-ms-go/internal/usecase/derivative"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return derivative.ErrObjectNotFound
	case "NoSuchBucket":
		return derivative.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return derivative.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", derivative.ErrInternal, err)
	}
}
