package storage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"

	"github.com/responder/responder/internal/config"
)

func TestNewMinIOStorage_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(config.MinIOConfig{Bucket: "responder"})
	require.Error(t, err)
}

func TestMapNotFound(t *testing.T) {
	missing := minio.ErrorResponse{StatusCode: http.StatusNotFound, Code: "NoSuchKey"}
	require.ErrorIs(t, mapNotFound(missing), ErrObjectNotFound)

	denied := minio.ErrorResponse{StatusCode: http.StatusForbidden, Code: "AccessDenied"}
	require.False(t, errors.Is(mapNotFound(denied), ErrObjectNotFound))
}
