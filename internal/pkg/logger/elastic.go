package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const esBodyLimit = 1000

// ESTransport 记录 ES 请求与响应的 RoundTripper
type ESTransport struct {
	Transport http.RoundTripper
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("path", req.URL.Path),
		log.Duration("latency", elapsed),
		log.String("req_body", truncate(string(reqBody), esBodyLimit)),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "ES_QUERY_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	fields = append(fields, log.Int("status", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest && resp.Body != nil {
		resBody, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(resBody))
		fields = append(fields, log.String("res_body", truncate(string(resBody), esBodyLimit)))
	}

	if elapsed > 500*time.Millisecond {
		log.WarnContext(req.Context(), "ES_QUERY_SLOW", fields...)
	} else {
		log.DebugContext(req.Context(), "ES_QUERY", fields...)
	}

	return resp, nil
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit] + "...[truncated]"
	}
	return s
}
