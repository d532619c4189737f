package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateMultipartBody builds a multipart body with one file part and additional text fields.
// It returns the body and the matching Content-Type header.
func CreateMultipartBody(t *testing.T, fileField, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

// CreateEmptyMultipartBody builds a multipart body without parts
func CreateEmptyMultipartBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	return CreateMultipartBody(t, "", "", nil, nil)
}
