package storage

import (
	"errors"
	"net/http"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://files.example.com/APP1_t_1.pdf", PublicURL("https://files.example.com/", "APP1_t_1.pdf"))
	assert.Equal(t, "https://cdn/b/scan%20copy.png", PublicURL("https://cdn/b", "scan copy.png"))
}

func TestMapMinioErr(t *testing.T) {
	err := mapMinioErr(minio.ErrorResponse{Code: "NoSuchKey", Key: "APP1_t_1.pdf", StatusCode: http.StatusNotFound})
	assert.ErrorIs(t, err, ErrNotExist)
	assert.Contains(t, err.Error(), "APP1_t_1.pdf")

	denied := minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}
	assert.Equal(t, error(denied), mapMinioErr(denied))

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, mapMinioErr(plain))
}
