package transfer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"

	"github.com/arefyev/sealmsg/internal/common"
)

func TestMapStorageError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want common.TransportStatus
	}{
		{"missing key", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}, common.StatusNotFound},
		{"missing bucket", minio.ErrorResponse{Code: "NoSuchBucket"}, common.StatusNotFound},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}, common.StatusForbidden},
		{"bad credentials", minio.ErrorResponse{Code: "InvalidAccessKeyId"}, common.StatusForbidden},
		{"server error", minio.ErrorResponse{Code: "InternalError", StatusCode: http.StatusInternalServerError}, common.StatusUnavailable},
		{"connection failure", errors.New("dial tcp: connection refused"), common.StatusUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapStorageError(tc.err)
			require.Equal(t, tc.want, common.TransportStatusOf(got))
			require.ErrorIs(t, got, tc.err)
		})
	}
}

func TestObjectKey_ContentAddressed(t *testing.T) {
	meta := Metadata{Digest: []byte{0xab, 0xcd}}
	require.Equal(t, "abcd", objectKey(meta))

	// identical content maps to the same object
	require.Equal(t, objectKey(meta), objectKey(Metadata{Digest: []byte{0xab, 0xcd}}))

	// no digest falls back to a unique key
	a := objectKey(Metadata{})
	b := objectKey(Metadata{})
	require.NotEqual(t, a, b)
}
