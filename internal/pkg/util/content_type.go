package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 嗅探前 512 字节并将读取位置复位
func GetSafeContentType(r io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := r.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}
